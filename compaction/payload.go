package compaction

import (
	"sort"
	"strings"
)

// Payload is the compacted world context, JSON-shaped for the upstream
// language-model call. Absent sections are omitted entirely.
type Payload struct {
	WorldForgeVersion string           `json:"world_forge_version,omitempty"`
	WorldSeed         *WorldSeed       `json:"world_seed,omitempty"`
	WorldContext      *WorldContext    `json:"world_context,omitempty"`
	DMContext         *DMContext       `json:"dm_context,omitempty"`
	WorldState        *WorldState      `json:"world_state,omitempty"`
	CampaignContext   *CampaignContext `json:"campaign_context,omitempty"`
}

// WorldSeed is the campaign's founding sketch. Its essential form keeps
// name, genre, tone, and premise.
type WorldSeed struct {
	Name     string   `json:"name,omitempty"`
	Genre    string   `json:"genre,omitempty"`
	Tone     string   `json:"tone,omitempty"`
	Premise  string   `json:"premise,omitempty"`
	Era      string   `json:"era,omitempty"`
	Conflict string   `json:"conflict,omitempty"`
	Regions  []string `json:"regions,omitempty"`
	Factions []string `json:"factions,omitempty"`
	Hooks    []string `json:"hooks,omitempty"`
}

// FactionNote is one faction row in the world context.
type FactionNote struct {
	Name        string `json:"name,omitempty"`
	Agenda      string `json:"agenda,omitempty"`
	Disposition string `json:"disposition,omitempty"`
}

// BiomeNote is one biome row in the world context.
type BiomeNote struct {
	Name   string `json:"name,omitempty"`
	Mood   string `json:"mood,omitempty"`
	Hazard string `json:"hazard,omitempty"`
}

// WorldContext is the settled geography and politics.
type WorldContext struct {
	Overview  string        `json:"overview,omitempty"`
	Factions  []FactionNote `json:"factions,omitempty"`
	Biomes    []BiomeNote   `json:"biomes,omitempty"`
	Landmarks []string      `json:"landmarks,omitempty"`
}

// DMContext is the game master's private steering notes. Secrets are the
// first casualty of reduction.
type DMContext struct {
	Directives []string `json:"directives,omitempty"`
	Threads    []string `json:"threads,omitempty"`
	Secrets    []string `json:"secrets,omitempty"`
}

// WorldState is the running chronicle of the campaign so far.
type WorldState struct {
	Chapter string            `json:"chapter,omitempty"`
	History []string          `json:"history,omitempty"`
	Rumors  []string          `json:"rumors,omitempty"`
	Flags   map[string]string `json:"flags,omitempty"`
}

// CampaignContext is the active party framing.
type CampaignContext struct {
	Objective string   `json:"objective,omitempty"`
	Recap     string   `json:"recap,omitempty"`
	Party     []string `json:"party,omitempty"`
	Themes    []string `json:"themes,omitempty"`
}

// buildPayload copies the input subtrees into their full compacted forms:
// free text truncated to per-field rune caps, lists capped, flag maps
// bounded with keys sorted for stable serialization.
func buildPayload(input Input) Payload {
	return Payload{
		WorldForgeVersion: truncateText(input.WorldForgeVersion, 24),
		WorldSeed:         buildWorldSeed(input.WorldSeed),
		WorldContext:      buildWorldContext(input.WorldContext),
		DMContext:         buildDMContext(input.DMContext),
		WorldState:        buildWorldState(input.WorldState),
		CampaignContext:   buildCampaignContext(input.CampaignContext),
	}
}

func buildWorldSeed(in *WorldSeed) *WorldSeed {
	if in == nil {
		return nil
	}
	return &WorldSeed{
		Name:     truncateText(in.Name, 80),
		Genre:    truncateText(in.Genre, 60),
		Tone:     truncateText(in.Tone, 60),
		Premise:  truncateText(in.Premise, 280),
		Era:      truncateText(in.Era, 80),
		Conflict: truncateText(in.Conflict, 200),
		Regions:  truncateList(in.Regions, 6, 80),
		Factions: truncateList(in.Factions, 6, 80),
		Hooks:    truncateList(in.Hooks, 5, 120),
	}
}

func buildWorldContext(in *WorldContext) *WorldContext {
	if in == nil {
		return nil
	}
	out := &WorldContext{
		Overview:  truncateText(in.Overview, 400),
		Landmarks: truncateList(in.Landmarks, 6, 80),
	}
	factions := in.Factions
	if len(factions) > 5 {
		factions = factions[:5]
	}
	for _, f := range factions {
		out.Factions = append(out.Factions, FactionNote{
			Name:        truncateText(f.Name, 80),
			Agenda:      truncateText(f.Agenda, 160),
			Disposition: truncateText(f.Disposition, 60),
		})
	}
	biomes := in.Biomes
	if len(biomes) > 5 {
		biomes = biomes[:5]
	}
	for _, b := range biomes {
		out.Biomes = append(out.Biomes, BiomeNote{
			Name:   truncateText(b.Name, 80),
			Mood:   truncateText(b.Mood, 80),
			Hazard: truncateText(b.Hazard, 120),
		})
	}
	return out
}

func buildDMContext(in *DMContext) *DMContext {
	if in == nil {
		return nil
	}
	return &DMContext{
		Directives: truncateList(in.Directives, 5, 160),
		Threads:    truncateList(in.Threads, 5, 160),
		Secrets:    truncateList(in.Secrets, 5, 160),
	}
}

func buildWorldState(in *WorldState) *WorldState {
	if in == nil {
		return nil
	}
	out := &WorldState{
		Chapter: truncateText(in.Chapter, 120),
		History: truncateList(in.History, 8, 160),
		Rumors:  truncateList(in.Rumors, 5, 160),
	}
	if len(in.Flags) > 0 {
		keys := make([]string, 0, len(in.Flags))
		for key := range in.Flags {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		if len(keys) > 8 {
			keys = keys[:8]
		}
		out.Flags = make(map[string]string, len(keys))
		for _, key := range keys {
			out.Flags[truncateText(key, 40)] = truncateText(in.Flags[key], 60)
		}
	}
	return out
}

func buildCampaignContext(in *CampaignContext) *CampaignContext {
	if in == nil {
		return nil
	}
	return &CampaignContext{
		Objective: truncateText(in.Objective, 200),
		Recap:     truncateText(in.Recap, 280),
		Party:     truncateList(in.Party, 8, 80),
		Themes:    truncateList(in.Themes, 6, 60),
	}
}

// truncateText trims and hard-cuts free text at a rune cap.
func truncateText(s string, max int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max]))
}

// truncateList caps the list length and each entry's rune length.
func truncateList(list []string, maxItems, maxEach int) []string {
	if len(list) == 0 {
		return nil
	}
	if len(list) > maxItems {
		list = list[:maxItems]
	}
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = truncateText(s, maxEach)
	}
	return out
}
