// Package config loads engine tunables from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	apperrors "github.com/wrenfield/skald/internal/platform/errors"
)

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Defaults holds the engine tunables a host process may override. Narration
// request fields left at their zero value fall back to these.
type Defaults struct {
	// HistoryCap bounds the caller-threaded line history buffer.
	HistoryCap int `env:"SKALD_HISTORY_CAP" envDefault:"24"`
	// SimilarityThreshold is the token-overlap cutoff for near-repeat rejection.
	SimilarityThreshold float64 `env:"SKALD_SIMILARITY_THRESHOLD" envDefault:"0.72"`
	// MaxChars is the default compaction character budget.
	MaxChars int `env:"SKALD_MAX_CHARS" envDefault:"4000"`
}

// LoadDefaults parses and validates engine defaults from the environment.
func LoadDefaults() (Defaults, error) {
	var d Defaults
	if err := ParseEnv(&d); err != nil {
		return Defaults{}, apperrors.Wrap(apperrors.CodeConfigParse, "load engine defaults", err)
	}
	if d.HistoryCap <= 0 {
		return Defaults{}, apperrors.WithMetadata(apperrors.CodeConfigInvalidHistoryCap,
			"history cap must be positive", map[string]string{"cap": fmt.Sprint(d.HistoryCap)})
	}
	if d.SimilarityThreshold <= 0 || d.SimilarityThreshold > 1 {
		return Defaults{}, apperrors.WithMetadata(apperrors.CodeConfigInvalidSimilarity,
			"similarity threshold must be in (0, 1]", map[string]string{"threshold": fmt.Sprint(d.SimilarityThreshold)})
	}
	if d.MaxChars <= 0 {
		return Defaults{}, apperrors.WithMetadata(apperrors.CodeConfigInvalidCharBudget,
			"char budget must be positive", map[string]string{"max_chars": fmt.Sprint(d.MaxChars)})
	}
	return d, nil
}
