// Package compaction folds a campaign's world context into a bounded
// character budget for the upstream model call. Compaction never fails:
// when the full payload exceeds the budget it walks a fixed ladder of
// reduction stages, dropping the least essential sections first, and
// reports honestly when even the smallest form still overflows.
package compaction

import "encoding/json"

// Budget bounds for MaxChars. A zero budget means "no pressure" and
// resolves to the ceiling.
const (
	MinBudget = 700
	MaxBudget = 4000
)

// Input carries the world subtrees to compact. Nil subtrees are simply
// absent from the payload.
type Input struct {
	WorldForgeVersion string
	WorldSeed         *WorldSeed
	WorldContext      *WorldContext
	DMContext         *DMContext
	WorldState        *WorldState
	CampaignContext   *CampaignContext

	// MaxChars is the serialized budget. Values outside [MinBudget,
	// MaxBudget] are clamped; zero selects MaxBudget.
	MaxChars int
}

// Meta describes what compaction did to fit the budget.
type Meta struct {
	// RawChars is the serialized size before any reduction stage ran.
	RawChars int
	// FinalChars is the serialized size of the returned payload. It can
	// exceed MaxChars when every stage has run and the essential seed
	// still overflows.
	FinalChars int
	// MaxChars is the clamped budget the stages worked against.
	MaxChars int
	// Trimmed reports whether any reduction stage ran.
	Trimmed bool
	// DroppedSections lists sections removed outright, in stage order.
	DroppedSections []string
	// Reductions lists sections shrunk in place, in stage order.
	Reductions []string
}

// Result is the compacted payload plus its accounting.
type Result struct {
	Payload Payload
	Meta    Meta
}

// stage is one rung of the reduction ladder. Drop stages remove a
// section outright; shrink stages thin it in place. A stage applies only
// while its section is still present.
type stage struct {
	section string
	drop    bool
	apply   func(*Payload) bool
}

// stages is the reduction ladder, ordered from most expendable to the
// essential seed. Order is fixed: the campaign recap goes before the
// chronicle, the chronicle before the geography, and the seed is only
// ever shrunk, never dropped.
var stages = []stage{
	{section: "campaign_context", drop: true, apply: func(p *Payload) bool {
		if p.CampaignContext == nil {
			return false
		}
		p.CampaignContext = nil
		return true
	}},
	{section: "world_state", apply: func(p *Payload) bool {
		if p.WorldState == nil {
			return false
		}
		p.WorldState.History = headOf(p.WorldState.History, 3)
		p.WorldState.Rumors = headOf(p.WorldState.Rumors, 2)
		p.WorldState.Flags = nil
		return true
	}},
	{section: "world_context", apply: func(p *Payload) bool {
		if p.WorldContext == nil {
			return false
		}
		p.WorldContext.Overview = truncateText(p.WorldContext.Overview, 160)
		if len(p.WorldContext.Factions) > 2 {
			p.WorldContext.Factions = p.WorldContext.Factions[:2]
		}
		for i := range p.WorldContext.Factions {
			p.WorldContext.Factions[i].Agenda = truncateText(p.WorldContext.Factions[i].Agenda, 80)
		}
		if len(p.WorldContext.Biomes) > 2 {
			p.WorldContext.Biomes = p.WorldContext.Biomes[:2]
		}
		p.WorldContext.Landmarks = headOf(p.WorldContext.Landmarks, 2)
		return true
	}},
	{section: "dm_context", apply: func(p *Payload) bool {
		if p.DMContext == nil {
			return false
		}
		p.DMContext.Directives = headOf(p.DMContext.Directives, 2)
		p.DMContext.Threads = headOf(p.DMContext.Threads, 2)
		p.DMContext.Secrets = nil
		return true
	}},
	{section: "world_state", drop: true, apply: func(p *Payload) bool {
		if p.WorldState == nil {
			return false
		}
		p.WorldState = nil
		return true
	}},
	{section: "world_context", drop: true, apply: func(p *Payload) bool {
		if p.WorldContext == nil {
			return false
		}
		p.WorldContext = nil
		return true
	}},
	{section: "dm_context", drop: true, apply: func(p *Payload) bool {
		if p.DMContext == nil {
			return false
		}
		p.DMContext = nil
		return true
	}},
	{section: "world_seed", apply: func(p *Payload) bool {
		if p.WorldSeed == nil {
			return false
		}
		p.WorldSeed = &WorldSeed{
			Name:    p.WorldSeed.Name,
			Genre:   p.WorldSeed.Genre,
			Tone:    p.WorldSeed.Tone,
			Premise: p.WorldSeed.Premise,
		}
		return true
	}},
}

// Compact builds the payload from the input subtrees and reduces it
// until it fits the clamped budget or the ladder is exhausted.
func Compact(input Input) Result {
	budget := clampBudget(input.MaxChars)
	payload := buildPayload(input)

	meta := Meta{
		RawChars: serializedSize(payload),
		MaxChars: budget,
	}

	current := meta.RawChars
	for _, st := range stages {
		if current <= budget {
			break
		}
		if !st.apply(&payload) {
			continue
		}
		if st.drop {
			meta.DroppedSections = append(meta.DroppedSections, st.section)
		} else {
			meta.Reductions = append(meta.Reductions, st.section)
		}
		current = serializedSize(payload)
	}

	meta.FinalChars = current
	meta.Trimmed = len(meta.DroppedSections) > 0 || len(meta.Reductions) > 0
	return Result{Payload: payload, Meta: meta}
}

func clampBudget(maxChars int) int {
	switch {
	case maxChars <= 0:
		return MaxBudget
	case maxChars < MinBudget:
		return MinBudget
	case maxChars > MaxBudget:
		return MaxBudget
	default:
		return maxChars
	}
}

// serializedSize measures the payload as the character budget does: the
// length of its JSON form. Marshaling a payload of strings, slices, and
// string maps cannot fail.
func serializedSize(p Payload) int {
	data, err := json.Marshal(p)
	if err != nil {
		return 0
	}
	return len(data)
}

func headOf(list []string, max int) []string {
	if len(list) <= max {
		return list
	}
	return list[:max]
}
