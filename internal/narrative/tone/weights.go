package tone

import (
	"strings"

	"github.com/wrenfield/skald/internal/narrative/selector"
)

// Draw order is fixed; weight rows are lookup tables only, never iterated.
var momentOrder = []Moment{
	MomentTactical, MomentMythic, MomentWhimsical, MomentBrutal, MomentMinimalist,
}

var narrationOrder = []Narration{
	NarrationDark, NarrationComic, NarrationHeroic, NarrationGrim, NarrationMischievous, NarrationTactical,
}

// Base moment weights per board mode. Unknown modes use the balanced row.
var baseMomentWeights = map[string]map[Moment]float64{
	"combat": {
		MomentTactical: 2.2, MomentMythic: 1.0, MomentWhimsical: 0.4,
		MomentBrutal: 1.6, MomentMinimalist: 0.8,
	},
	"dungeon": {
		MomentTactical: 1.4, MomentMythic: 1.8, MomentWhimsical: 0.5,
		MomentBrutal: 1.4, MomentMinimalist: 0.9,
	},
	"travel": {
		MomentTactical: 0.9, MomentMythic: 1.6, MomentWhimsical: 1.2,
		MomentBrutal: 0.6, MomentMinimalist: 1.2,
	},
	"town": {
		MomentTactical: 0.7, MomentMythic: 1.0, MomentWhimsical: 2.0,
		MomentBrutal: 0.4, MomentMinimalist: 1.2,
	},
}

var balancedMomentWeights = map[Moment]float64{
	MomentTactical: 1.0, MomentMythic: 1.0, MomentWhimsical: 1.0,
	MomentBrutal: 1.0, MomentMinimalist: 1.0,
}

var baseNarrationWeights = map[Narration]float64{
	NarrationDark: 1.3, NarrationComic: 1.1, NarrationHeroic: 1.6,
	NarrationGrim: 1.2, NarrationMischievous: 1.0, NarrationTactical: 1.4,
}

// momentEntries assembles the weighted table for one draw: base weights for
// the board mode plus pressure bonuses, in momentOrder.
func momentEntries(signals Signals) []selector.Entry {
	base, ok := baseMomentWeights[strings.ToLower(strings.TrimSpace(signals.BoardType))]
	if !ok {
		base = balancedMomentWeights
	}

	bonus := map[Moment]float64{}
	if signals.Tension >= 65 {
		bonus[MomentTactical] += 0.8
		bonus[MomentBrutal] += 0.5
	}
	if signals.BossPresent {
		bonus[MomentMythic] += 1.0
		bonus[MomentBrutal] += 0.6
	}
	if signals.HPPercent > 0 && signals.HPPercent <= 35 {
		bonus[MomentBrutal] += 0.9
		bonus[MomentMinimalist] += 0.5
	}
	if hasAnyKeyword(signals, "town", "market", "festival") {
		bonus[MomentWhimsical] += 0.7
	}
	if hasAnyKeyword(signals, "dungeon", "crypt", "grave") {
		bonus[MomentBrutal] += 0.6
		bonus[MomentMythic] += 0.6
	}

	entries := make([]selector.Entry, 0, len(momentOrder))
	for _, m := range momentOrder {
		entries = append(entries, selector.Entry{Key: string(m), Weight: base[m] + bonus[m]})
	}
	return entries
}

// hasAnyKeyword matches the biome and theme keywords against a word list,
// case-insensitively.
func hasAnyKeyword(signals Signals, words ...string) bool {
	for _, word := range words {
		if strings.EqualFold(strings.TrimSpace(signals.Biome), word) {
			return true
		}
		for _, keyword := range signals.ThemeKeywords {
			if strings.EqualFold(strings.TrimSpace(keyword), word) {
				return true
			}
		}
	}
	return false
}
