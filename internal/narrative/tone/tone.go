// Package tone derives the moment tone and narration tone for one
// composition from board pressure signals, with anti-repeat against the
// caller's previous pick.
package tone

import (
	"strings"

	"github.com/wrenfield/skald/internal/narrative/rng"
	"github.com/wrenfield/skald/internal/narrative/selector"
)

// Moment is the coarse mood of a single narrated beat.
type Moment string

const (
	MomentTactical   Moment = "tactical"
	MomentMythic     Moment = "mythic"
	MomentWhimsical  Moment = "whimsical"
	MomentBrutal     Moment = "brutal"
	MomentMinimalist Moment = "minimalist"
)

// Moments returns the closed moment-tone set in draw order.
func Moments() []Moment {
	out := make([]Moment, len(momentOrder))
	copy(out, momentOrder)
	return out
}

// Narration is the session-level narrative register templates score against.
type Narration string

const (
	NarrationDark        Narration = "dark"
	NarrationComic       Narration = "comic"
	NarrationHeroic      Narration = "heroic"
	NarrationGrim        Narration = "grim"
	NarrationMischievous Narration = "mischievous"
	NarrationTactical    Narration = "tactical"
)

// Narrations returns the closed narration-tone set in draw order.
func Narrations() []Narration {
	out := make([]Narration, len(narrationOrder))
	copy(out, narrationOrder)
	return out
}

// Signals are the pressure inputs the moment-tone weights react to.
// HPPercent is on a 0-100 scale; zero means unreported, not dying.
type Signals struct {
	BoardType     string
	Biome         string
	Tension       int
	BossPresent   bool
	HPPercent     float64
	ThemeKeywords []string
}

// PickMoment draws the moment tone for this beat from the signal-adjusted
// weights, refusing to repeat last when an alternative exists. The key names
// the draw in the debug trace.
func PickMoment(seed int64, journal *rng.Journal, signals Signals, key string, last Moment) Moment {
	picked, ok := selector.WeightedPickWithoutImmediateRepeat(seed, journal, momentEntries(signals), key, string(last), "")
	if !ok {
		return MomentTactical
	}
	return Moment(picked)
}

// NormalizeNarration resolves the caller's tone hint. A hint naming a known
// narration tone is used as-is (case-insensitive); anything else is drawn
// from the base narration weights without repeating last.
func NormalizeNarration(hint string, seed int64, journal *rng.Journal, last Narration) Narration {
	folded := strings.ToLower(strings.TrimSpace(hint))
	for _, n := range narrationOrder {
		if string(n) == folded {
			return n
		}
	}

	entries := make([]selector.Entry, 0, len(narrationOrder))
	for _, n := range narrationOrder {
		entries = append(entries, selector.Entry{Key: string(n), Weight: baseNarrationWeights[n]})
	}
	picked, ok := selector.WeightedPickWithoutImmediateRepeat(seed, journal, entries, "tone.narration", string(last), "")
	if !ok {
		return NarrationHeroic
	}
	return Narration(picked)
}
