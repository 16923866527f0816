// Package history keeps the bounded buffer of previously emitted narration
// lines and decides when a candidate repeats them too closely. The buffer is
// a plain value owned by the caller; every operation returns a new value.
package history

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

const (
	// DefaultCap bounds the buffer when the caller leaves Cap zero.
	DefaultCap = 24
	// DefaultSimilarityThreshold is the Jaccard cutoff when the caller
	// leaves SimilarityThreshold zero.
	DefaultSimilarityThreshold = 0.72
)

// Buffer holds prior lines and their derived fragments. Fragments mirror
// Lines one-to-one; NewBuffer reconciles them when the caller supplies only
// lines. The zero value is an empty history.
type Buffer struct {
	Lines               []string
	Fragments           []string
	Cap                 int
	SimilarityThreshold float64
}

// NewBuffer builds a buffer from caller-supplied state. Fragments are
// recomputed from lines whenever the two slices disagree in length, and
// both are truncated oldest-first to the effective cap.
func NewBuffer(lines, fragments []string, capacity int, threshold float64) Buffer {
	b := Buffer{
		Lines:               append([]string(nil), lines...),
		Cap:                 capacity,
		SimilarityThreshold: threshold,
	}
	if len(fragments) == len(lines) {
		b.Fragments = append([]string(nil), fragments...)
	} else {
		b.Fragments = make([]string, len(lines))
		for i, line := range lines {
			b.Fragments[i] = Fragment(line)
		}
	}
	return b.truncate()
}

// Fragment reduces a line to its canonical token-set form: case-folded,
// punctuation stripped, tokens deduplicated and sorted.
func Fragment(line string) string {
	tokens := tokenSet(line)
	sorted := make([]string, 0, len(tokens))
	for token := range tokens {
		sorted = append(sorted, token)
	}
	sort.Strings(sorted)
	return strings.Join(sorted, " ")
}

// ShouldReject reports whether the candidate is an exact case-folded repeat
// of any prior line, or overlaps any prior line's token set at or above the
// similarity threshold. The metric is Jaccard over case-folded,
// punctuation-stripped token sets.
func (b Buffer) ShouldReject(candidate string) bool {
	folded := fold(candidate)
	for _, line := range b.Lines {
		if fold(line) == folded {
			return true
		}
	}

	candidateTokens := tokenSet(candidate)
	if len(candidateTokens) == 0 {
		return false
	}
	threshold := b.effectiveThreshold()
	for _, fragment := range b.Fragments {
		if jaccard(candidateTokens, tokenSet(fragment)) >= threshold {
			return true
		}
	}
	return false
}

// Append returns a new buffer with the line and its fragment added and both
// slices truncated oldest-first to the effective cap. The receiver is left
// untouched.
func (b Buffer) Append(line string) Buffer {
	next := Buffer{
		Lines:               append(append([]string(nil), b.Lines...), line),
		Fragments:           append(append([]string(nil), b.Fragments...), Fragment(line)),
		Cap:                 b.Cap,
		SimilarityThreshold: b.SimilarityThreshold,
	}
	return next.truncate()
}

func (b Buffer) truncate() Buffer {
	capacity := b.effectiveCap()
	if len(b.Lines) > capacity {
		b.Lines = b.Lines[len(b.Lines)-capacity:]
	}
	if len(b.Fragments) > capacity {
		b.Fragments = b.Fragments[len(b.Fragments)-capacity:]
	}
	return b
}

func (b Buffer) effectiveCap() int {
	if b.Cap <= 0 {
		return DefaultCap
	}
	return b.Cap
}

func (b Buffer) effectiveThreshold() float64 {
	if b.SimilarityThreshold <= 0 || b.SimilarityThreshold > 1 {
		return DefaultSimilarityThreshold
	}
	return b.SimilarityThreshold
}

func fold(s string) string {
	return cases.Fold().String(s)
}

func tokenSet(s string) map[string]struct{} {
	fields := strings.FieldsFunc(fold(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	set := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		set[field] = struct{}{}
	}
	return set
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	intersection := 0
	for token := range a {
		if _, ok := b[token]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}
