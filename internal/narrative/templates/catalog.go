package templates

import (
	"fmt"

	"github.com/wrenfield/skald/internal/narrative/event"
)

// Verb fillers - transitive, present tense, drawn at label template.verb.
var fillerVerbs = []string{
	"carves", "drives", "drags", "snaps", "wrenches",
	"threads", "shoulders", "hammers", "sweeps", "levers",
}

// Noun fillers - atmosphere words, drawn at label template.noun.
var fillerNouns = []string{
	"hush", "omen", "gleam", "echo", "tremor",
	"shadow", "spark", "chill", "murmur", "weight",
}

var catalog = []Template{
	// attack_resolved - every entry carries the combat class tag.
	{
		ID:        "attack_cleave",
		EventType: event.TypeAttackResolved,
		Weight:    1.4,
		Tags:      []string{"combat", "tactical", "high"},
		Render: func(ctx event.Context, fill Fillers) string {
			return fmt.Sprintf("%s %s steel through %s's guard for %d.", ctx.Actor, fill.Verb, foe(ctx), ctx.Amount)
		},
	},
	{
		ID:        "attack_grim_toll",
		EventType: event.TypeAttackResolved,
		Weight:    1.2,
		Tags:      []string{"combat", "grim", "dark", "dungeon"},
		Render: func(ctx event.Context, fill Fillers) string {
			return fmt.Sprintf("A %s settles over the exchange; %s strikes %s and the wound counts %d.", fill.Noun, ctx.Actor, foe(ctx), ctx.Amount)
		},
	},
	{
		ID:        "attack_flourish",
		EventType: event.TypeAttackResolved,
		Weight:    1.3,
		Tags:      []string{"combat", "heroic", "high"},
		Render: func(ctx event.Context, fill Fillers) string {
			return fmt.Sprintf("%s turns the exchange with one clean stroke, and %s staggers under %d.", ctx.Actor, foe(ctx), ctx.Amount)
		},
	},
	{
		ID:        "attack_jest",
		EventType: event.TypeAttackResolved,
		Weight:    1.0,
		Tags:      []string{"combat", "comic", "mischievous", "low"},
		Render: func(ctx event.Context, fill Fillers) string {
			return fmt.Sprintf("%s %s the blow in sideways, almost apologetic, and %s still takes %d.", ctx.Actor, fill.Verb, foe(ctx), ctx.Amount)
		},
	},

	// status_tick
	{
		ID:        "status_creep",
		EventType: event.TypeStatusTick,
		Weight:    1.3,
		Tags:      []string{"grim", "dark", "high"},
		Render: func(ctx event.Context, fill Fillers) string {
			return fmt.Sprintf("The %s does its quiet work; %s suffers %s again.", fill.Noun, bearer(ctx), affliction(ctx))
		},
	},
	{
		ID:        "status_field",
		EventType: event.TypeStatusTick,
		Weight:    1.2,
		Tags:      []string{"tactical", "medium"},
		Render: func(ctx event.Context, fill Fillers) string {
			return fmt.Sprintf("%s endures %s, jaw set, watching the count.", bearer(ctx), affliction(ctx))
		},
	},
	{
		ID:        "status_shrug",
		EventType: event.TypeStatusTick,
		Weight:    1.0,
		Tags:      []string{"comic", "low", "town"},
		Render: func(ctx event.Context, fill Fillers) string {
			return fmt.Sprintf("%s shrugs off the worst of %s, mostly by deciding the %s is someone else's problem.", bearer(ctx), affliction(ctx), fill.Noun)
		},
	},

	// loot_dropped
	{
		ID:        "loot_gleam",
		EventType: event.TypeLootDropped,
		Weight:    1.3,
		Tags:      []string{"heroic", "high", "wilds"},
		Render: func(ctx event.Context, fill Fillers) string {
			return fmt.Sprintf("%s lifts %s free of the wreck, turning it to catch what light there is.", ctx.Actor, prize(ctx))
		},
	},
	{
		ID:        "loot_pocket",
		EventType: event.TypeLootDropped,
		Weight:    1.1,
		Tags:      []string{"mischievous", "comic", "town"},
		Render: func(ctx event.Context, fill Fillers) string {
			return fmt.Sprintf("%s %s %s off the floor and out of sight before questions start.", ctx.Actor, fill.Verb, prize(ctx))
		},
	},
	{
		ID:        "loot_dust",
		EventType: event.TypeLootDropped,
		Weight:    1.2,
		Tags:      []string{"grim", "dark", "dungeon"},
		Render: func(ctx event.Context, fill Fillers) string {
			return fmt.Sprintf("%s pries %s from the dust; somewhere deeper, a %s answers.", ctx.Actor, prize(ctx), fill.Noun)
		},
	},

	// travel_step
	{
		ID:        "travel_stride",
		EventType: event.TypeTravelStep,
		Weight:    1.3,
		Tags:      []string{"heroic", "wilds", "medium"},
		Render: func(ctx event.Context, fill Fillers) string {
			return fmt.Sprintf("%s presses toward %s with the easy stride of someone who means to arrive.", ctx.Actor, site(ctx, "the far road"))
		},
	},
	{
		ID:        "travel_watchful",
		EventType: event.TypeTravelStep,
		Weight:    1.2,
		Tags:      []string{"tactical", "grim", "wilds"},
		Render: func(ctx event.Context, fill Fillers) string {
			return fmt.Sprintf("%s moves for %s in short, covered stretches, reading the ground for the next %s.", ctx.Actor, site(ctx, "the far road"), fill.Noun)
		},
	},
	{
		ID:        "travel_mutter",
		EventType: event.TypeTravelStep,
		Weight:    1.0,
		Tags:      []string{"comic", "low", "town"},
		Render: func(ctx event.Context, fill Fillers) string {
			return fmt.Sprintf("%s trudges toward %s, narrating a small grievance about boots.", ctx.Actor, site(ctx, "the far road"))
		},
	},

	// dungeon_room_entered
	{
		ID:        "room_threshold",
		EventType: event.TypeDungeonRoomEntered,
		Weight:    1.4,
		Tags:      []string{"dark", "dungeon", "high"},
		Render: func(ctx event.Context, fill Fillers) string {
			return fmt.Sprintf("%s crosses into %s, and a %s moves through the stale air.", ctx.Actor, site(ctx, "the chamber"), fill.Noun)
		},
	},
	{
		ID:        "room_survey",
		EventType: event.TypeDungeonRoomEntered,
		Weight:    1.2,
		Tags:      []string{"tactical", "dungeon", "medium"},
		Render: func(ctx event.Context, fill Fillers) string {
			return fmt.Sprintf("%s enters %s low and quiet, counting exits before anything else.", ctx.Actor, site(ctx, "the chamber"))
		},
	},
	{
		ID:        "room_whistle",
		EventType: event.TypeDungeonRoomEntered,
		Weight:    1.0,
		Tags:      []string{"comic", "mischievous", "low"},
		Render: func(ctx event.Context, fill Fillers) string {
			return fmt.Sprintf("%s strolls into %s whistling, which has never once gone wrong.", ctx.Actor, site(ctx, "the chamber"))
		},
	},

	// npc_dialogue
	{
		ID:        "dialogue_measure",
		EventType: event.TypeNPCDialogue,
		Weight:    1.2,
		Tags:      []string{"tactical", "town", "medium"},
		Render: func(ctx event.Context, fill Fillers) string {
			return fmt.Sprintf("%s trades careful words with %s, each sentence weighed before it is spent.", ctx.Actor, speaker(ctx))
		},
	},
	{
		ID:        "dialogue_veiled",
		EventType: event.TypeNPCDialogue,
		Weight:    1.2,
		Tags:      []string{"grim", "mischievous", "dark"},
		Render: func(ctx event.Context, fill Fillers) string {
			return fmt.Sprintf("%s speaks with %s, and every answer arrives wrapped in a %s.", ctx.Actor, speaker(ctx), fill.Noun)
		},
	},
	{
		ID:        "dialogue_warm",
		EventType: event.TypeNPCDialogue,
		Weight:    1.1,
		Tags:      []string{"heroic", "comic", "town"},
		Render: func(ctx event.Context, fill Fillers) string {
			return fmt.Sprintf("%s falls into easy talk with %s, and for a moment the road feels shorter.", ctx.Actor, speaker(ctx))
		},
	},

	// level_up
	{
		ID:        "level_surge",
		EventType: event.TypeLevelUp,
		Weight:    1.4,
		Tags:      []string{"heroic", "high"},
		Render: func(ctx event.Context, fill Fillers) string {
			return fmt.Sprintf("A %s of new strength runs through %s.", fill.Noun, ctx.Actor)
		},
	},
	{
		ID:        "level_tempered",
		EventType: event.TypeLevelUp,
		Weight:    1.2,
		Tags:      []string{"grim", "tactical", "medium"},
		Render: func(ctx event.Context, fill Fillers) string {
			return fmt.Sprintf("%s files the lesson away with the scars that taught it, stronger now and quieter about it.", ctx.Actor)
		},
	},
	{
		ID:        "level_brag",
		EventType: event.TypeLevelUp,
		Weight:    1.0,
		Tags:      []string{"comic", "mischievous", "low"},
		Render: func(ctx event.Context, fill Fillers) string {
			return fmt.Sprintf("%s grows visibly stronger and absolutely will not shut up about it.", ctx.Actor)
		},
	},

	// quest_update
	{
		ID:        "quest_turn",
		EventType: event.TypeQuestUpdate,
		Weight:    1.3,
		Tags:      []string{"tactical", "medium"},
		Render: func(ctx event.Context, fill Fillers) string {
			return fmt.Sprintf("The work shifts under them: %s.", site(ctx, "a new thread pulls taut"))
		},
	},
	{
		ID:        "quest_omen",
		EventType: event.TypeQuestUpdate,
		Weight:    1.2,
		Tags:      []string{"dark", "grim", "high"},
		Render: func(ctx event.Context, fill Fillers) string {
			return fmt.Sprintf("A %s threads through the news; %s hears it and says nothing.", fill.Noun, ctx.Actor)
		},
	},
	{
		ID:        "quest_rumor",
		EventType: event.TypeQuestUpdate,
		Weight:    1.1,
		Tags:      []string{"mischievous", "town", "low"},
		Render: func(ctx event.Context, fill Fillers) string {
			return fmt.Sprintf("Word makes its crooked rounds before reaching %s: %s.", ctx.Actor, site(ctx, "the job is not what it was"))
		},
	},

	// board_transition
	{
		ID:        "board_shift",
		EventType: event.TypeBoardTransition,
		Weight:    1.3,
		Tags:      []string{"tactical", "medium"},
		Render: func(ctx event.Context, fill Fillers) string {
			return fmt.Sprintf("The scene resets around %s; new ground, same stakes.", ctx.Actor)
		},
	},
	{
		ID:        "board_plunge",
		EventType: event.TypeBoardTransition,
		Weight:    1.2,
		Tags:      []string{"dark", "dungeon", "high"},
		Render: func(ctx event.Context, fill Fillers) string {
			return fmt.Sprintf("The way opens onto %s, and the %s goes ahead of them.", site(ctx, "lower ground"), fill.Noun)
		},
	},
	{
		ID:        "board_dawn",
		EventType: event.TypeBoardTransition,
		Weight:    1.1,
		Tags:      []string{"heroic", "wilds", "low"},
		Render: func(ctx event.Context, fill Fillers) string {
			return fmt.Sprintf("%s steps out onto %s under a wide and wary sky.", ctx.Actor, site(ctx, "open ground"))
		},
	},
}

func foe(ctx event.Context) string {
	if ctx.Target == "" {
		return "the foe"
	}
	return ctx.Target
}

func speaker(ctx event.Context) string {
	if ctx.Target == "" {
		return "the stranger"
	}
	return ctx.Target
}

func bearer(ctx event.Context) string {
	if ctx.Target != "" {
		return ctx.Target
	}
	return ctx.Actor
}

func affliction(ctx event.Context) string {
	if ctx.Status == "" {
		return "the lingering hurt"
	}
	return ctx.Status
}

func prize(ctx event.Context) string {
	if ctx.Detail == "" {
		return "the spoils"
	}
	return ctx.Detail
}

func site(ctx event.Context, fallback string) string {
	if ctx.Detail == "" {
		return fallback
	}
	return ctx.Detail
}
