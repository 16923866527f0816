// Package voice derives the drifting narrator profile for one composition
// and assembles its atmospheric lines from mood and moment phrase banks.
package voice

import (
	"fmt"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/wrenfield/skald/internal/narrative/rng"
	"github.com/wrenfield/skald/internal/narrative/selector"
	"github.com/wrenfield/skald/internal/narrative/tone"
)

// Narrator moods. Each selects a phrasing bank.
const (
	MoodSomber  = "somber"
	MoodWry     = "wry"
	MoodFervent = "fervent"
	MoodStark   = "stark"
	MoodLyrical = "lyrical"
)

var moodOrder = []string{MoodSomber, MoodWry, MoodFervent, MoodStark, MoodLyrical}

// Moods returns the closed mood set in draw order.
func Moods() []string {
	out := make([]string, len(moodOrder))
	copy(out, moodOrder)
	return out
}

// ToneVector is the world's standing mood, fields on a [0,1] scale.
// Out-of-range values are clamped, never rejected.
type ToneVector struct {
	Darkness  float64
	Whimsy    float64
	Brutality float64
	Wonder    float64
	Levity    float64
}

// Clamped returns the vector with every field forced into [0,1].
func (v ToneVector) Clamped() ToneVector {
	return ToneVector{
		Darkness:  clamp01(v.Darkness),
		Whimsy:    clamp01(v.Whimsy),
		Brutality: clamp01(v.Brutality),
		Wonder:    clamp01(v.Wonder),
		Levity:    clamp01(v.Levity),
	}
}

func (v ToneVector) mass() float64 {
	return (v.Darkness + v.Whimsy + v.Brutality + v.Wonder + v.Levity) / 5
}

// Profile is the narrator state for one composition. Recomputed per call
// from the same inputs it always comes out identical; nothing is persisted.
type Profile struct {
	Verbosity float64
	Mood      string
	Drift     float64
}

// LineCount gates how many voice lines a composition carries.
func (p Profile) LineCount() int {
	switch {
	case p.Verbosity < 0.35:
		return 1
	case p.Verbosity < 0.68:
		return 2
	default:
		return 3
	}
}

// DeriveProfile computes the narrator profile for this seed. Verbosity
// blends the clamped vector's mass with a simplex noise sample taken at
// seed-derived coordinates, so the voice drifts across invocations while
// staying a pure function of the seed. The mood is drawn from tone-biased
// weights without repeating lastMood when an alternative exists.
func DeriveProfile(seed int64, journal *rng.Journal, vector ToneVector, narration tone.Narration, lastMood string) Profile {
	clamped := vector.Clamped()

	noise := opensimplex.NewNormalized(seed)
	x := float64(rng.FoldLabel(seed, "voice.drift.x")) / float64(1<<31)
	y := float64(rng.FoldLabel(seed, "voice.drift.y")) / float64(1<<31)
	drift := noise.Eval2(x*3.7, y*3.7)

	mood, ok := selector.WeightedPickWithoutImmediateRepeat(seed, journal, moodEntries(narration), "voice.mood", lastMood, "")
	if !ok {
		mood = MoodStark
	}

	return Profile{
		Verbosity: clamp01(0.6*clamped.mass() + 0.4*drift),
		Mood:      mood,
		Drift:     drift,
	}
}

// Lines assembles the profile's voice lines, one labeled draw per line from
// the mood and moment phrase pool. The salt varies on guardrail retries so
// rebuilt lines draw from fresh labels.
func Lines(seed int64, journal *rng.Journal, profile Profile, moment tone.Moment, salt string) []string {
	pool := linePool(profile.Mood, moment)
	count := profile.LineCount()
	lines := make([]string, 0, count)
	for i := 0; i < count; i++ {
		label := fmt.Sprintf("voice.line.%d%s", i, salt)
		line := rng.Derive(seed, label, journal).Pick(pool)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// moodEntries builds the weighted mood table for one narration tone, in
// moodOrder.
func moodEntries(narration tone.Narration) []selector.Entry {
	bias := moodBias[narration]
	entries := make([]selector.Entry, 0, len(moodOrder))
	for _, mood := range moodOrder {
		entries = append(entries, selector.Entry{Key: mood, Weight: 1 + bias[mood]})
	}
	return entries
}

// linePool merges the mood and moment banks. Unknown moods or moments
// contribute nothing; an entirely empty pool falls back to the stark bank
// so the voice never goes silent.
func linePool(mood string, moment tone.Moment) []string {
	pool := make([]string, 0, 12)
	pool = append(pool, moodPhrases[mood]...)
	pool = append(pool, momentPhrases[moment]...)
	if len(pool) == 0 {
		pool = append(pool, moodPhrases[MoodStark]...)
	}
	return pool
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
