// Package id provides utilities for generating URL-safe identifiers.
//
// Identifiers are generated using UUIDv4 bytes encoded as base32 (RFC 4648)
// with no padding. The resulting strings are 26 characters long, lowercase,
// and safe for use in URLs and file paths.
//
// Skald's own pipelines never mint ids; determinism forbids it. The package
// exists for hosts and test harnesses that need event or session ids to feed
// the narration request.
package id

import (
	"encoding/base32"
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/wrenfield/skald/internal/platform/errors"
)

// NewID generates a URL-safe identifier using UUIDv4 bytes encoded as base32.
// The identifier is 26 characters long, lowercase, and contains no padding.
func NewID() (string, error) {
	raw, err := uuid.NewRandom()
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeIDGenerate, "generate uuid", err)
	}

	encoded := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(raw[:])
	return strings.ToLower(encoded), nil
}
