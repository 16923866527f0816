// Package templates holds the static narration template catalog and the
// scorer that ranks templates against the current tone, biome, and
// intensity. The catalog is closed: data plus pure render closures, no
// dispatch beyond the table itself.
package templates

import (
	"math"

	"github.com/wrenfield/skald/internal/narrative/event"
	"github.com/wrenfield/skald/internal/narrative/rng"
)

// Fillers are the verb/noun pair a render weaves into its prose. They are
// drawn by the caller through labeled streams so renders stay pure.
type Fillers struct {
	Verb string
	Noun string
}

// Template is one tagged prose renderer. Weight is a positive base weight;
// Tags hold tone, biome, intensity, and event-class keywords the scorer
// matches against.
type Template struct {
	ID        string
	EventType event.Type
	Weight    float64
	Tags      []string
	Render    func(ctx event.Context, fill Fillers) string
}

// All returns the full catalog.
func All() []Template {
	out := make([]Template, len(catalog))
	copy(out, catalog)
	return out
}

// ByEventType returns the templates registered for the primary event type.
// When none match it falls back to the full bank so composition always has
// candidates.
func ByEventType(primary event.Type) []Template {
	matched := make([]Template, 0, 8)
	for _, t := range catalog {
		if t.EventType == primary {
			matched = append(matched, t)
		}
	}
	if len(matched) == 0 {
		return All()
	}
	return matched
}

// Score ranks a template against the normalized tone, biome, and intensity.
// The base is max(1, weight); tag matches add fixed bonuses (tone 1.1,
// biome 0.8, intensity 0.7). Scores feed a weighted draw, not an argmax.
func Score(t Template, tone, biome, intensity string) float64 {
	score := math.Max(1, t.Weight)
	if hasTag(t, tone) {
		score += 1.1
	}
	if hasTag(t, biome) {
		score += 0.8
	}
	if hasTag(t, intensity) {
		score += 0.7
	}
	return score
}

// PickScored draws one template proportional to its score using the provided
// stream. Excluded ids (guardrail retries) are skipped entirely. It reports
// false only when every candidate is excluded.
func PickScored(stream *rng.Stream, candidates []Template, tone, biome, intensity string, excluded map[string]bool) (Template, bool) {
	weights := make([]float64, len(candidates))
	for i, t := range candidates {
		if excluded[t.ID] {
			continue
		}
		weights[i] = Score(t, tone, biome, intensity)
	}
	index := stream.WeightedIndex(weights)
	if index < 0 {
		return Template{}, false
	}
	return candidates[index], true
}

// DrawFillers picks the verb/noun pair for this invocation. Labels are part
// of the debug-trace contract.
func DrawFillers(seed int64, journal *rng.Journal) Fillers {
	return Fillers{
		Verb: rng.Derive(seed, "template.verb", journal).Pick(fillerVerbs),
		Noun: rng.Derive(seed, "template.noun", journal).Pick(fillerNouns),
	}
}

func hasTag(t Template, keyword string) bool {
	if keyword == "" {
		return false
	}
	for _, tag := range t.Tags {
		if tag == keyword {
			return true
		}
	}
	return false
}
