package event

import (
	"fmt"
	"strconv"
	"strings"
)

// dispatch is the fixed table from raw journal type strings to narration
// event types. Raw vocabularies differ across board engines; aliases cover
// the ones the gameplay journal emits today. Lookups are case-insensitive.
var dispatch = map[string]Type{
	"attack_resolved": TypeAttackResolved,
	"attack":          TypeAttackResolved,
	"damage":          TypeAttackResolved,
	"hit":             TypeAttackResolved,

	"status_tick": TypeStatusTick,
	"status":      TypeStatusTick,
	"tick":        TypeStatusTick,
	"dot":         TypeStatusTick,
	"poison":      TypeStatusTick,

	"loot_dropped": TypeLootDropped,
	"loot":         TypeLootDropped,
	"drop":         TypeLootDropped,

	"travel_step": TypeTravelStep,
	"travel":      TypeTravelStep,
	"move":        TypeTravelStep,
	"step":        TypeTravelStep,

	"dungeon_room_entered": TypeDungeonRoomEntered,
	"room_entered":         TypeDungeonRoomEntered,
	"enter_room":           TypeDungeonRoomEntered,
	"dungeon_room":         TypeDungeonRoomEntered,
	"room":                 TypeDungeonRoomEntered,

	"npc_dialogue": TypeNPCDialogue,
	"dialogue":     TypeNPCDialogue,
	"say":          TypeNPCDialogue,
	"npc":          TypeNPCDialogue,

	"level_up": TypeLevelUp,
	"levelup":  TypeLevelUp,
	"level":    TypeLevelUp,

	"quest_update": TypeQuestUpdate,
	"quest":        TypeQuestUpdate,
	"objective":    TypeQuestUpdate,

	"board_transition": TypeBoardTransition,
	"transition":       TypeBoardTransition,
}

// MapRecords normalizes raw journal records into narration events. It is
// pure and order-preserving; malformed records are dropped, never surfaced
// as errors. Records without an id receive fallbackID suffixed with their
// input index. Unknown raw types map to TypeBoardTransition.
func MapRecords(records []map[string]any, fallbackID string) []Event {
	events := make([]Event, 0, len(records))
	for i, record := range records {
		if record == nil {
			continue
		}

		rawType := strings.ToLower(strings.TrimSpace(stringField(record, "type", "kind", "event_type")))
		eventType, known := dispatch[rawType]
		if !known {
			eventType = TypeBoardTransition
		}

		id := stringField(record, "id", "event_id")
		if id == "" {
			id = fmt.Sprintf("%s-%d", fallbackID, i)
		}

		actor := stringField(record, "actor", "source", "attacker", "character")
		if actor == "" {
			actor = "You"
		}

		events = append(events, Event{
			ID:   id,
			Type: eventType,
			Context: Context{
				Actor:  actor,
				Target: stringField(record, "target", "defender", "npc"),
				Status: stringField(record, "status", "effect"),
				Detail: stringField(record, "detail", "item", "room", "board", "text", "description"),
				Amount: intField(record, "amount", "value", "damage", "qty"),
			},
		})
	}
	return events
}

// Summary renders a one-clause factual recap of an event, used for the
// composer's secondary line when the caller supplies no state changes.
func Summary(e Event) string {
	ctx := e.Context
	switch e.Type {
	case TypeAttackResolved:
		if ctx.Target == "" {
			return fmt.Sprintf("%s lands a hit for %d.", ctx.Actor, ctx.Amount)
		}
		return fmt.Sprintf("%s hits %s for %d.", ctx.Actor, ctx.Target, ctx.Amount)
	case TypeStatusTick:
		status := ctx.Status
		if status == "" {
			status = "a lingering affliction"
		}
		subject := ctx.Target
		if subject == "" {
			subject = ctx.Actor
		}
		return fmt.Sprintf("%s suffers %s.", subject, status)
	case TypeLootDropped:
		prize := ctx.Detail
		if prize == "" {
			prize = "the spoils"
		}
		return fmt.Sprintf("%s claims %s.", ctx.Actor, prize)
	case TypeTravelStep:
		destination := ctx.Detail
		if destination == "" {
			destination = "the road ahead"
		}
		return fmt.Sprintf("%s presses on toward %s.", ctx.Actor, destination)
	case TypeDungeonRoomEntered:
		room := ctx.Detail
		if room == "" {
			room = "an unlit chamber"
		}
		return fmt.Sprintf("%s enters %s.", ctx.Actor, room)
	case TypeNPCDialogue:
		if ctx.Target == "" {
			return fmt.Sprintf("%s trades words with a stranger.", ctx.Actor)
		}
		return fmt.Sprintf("%s trades words with %s.", ctx.Actor, ctx.Target)
	case TypeLevelUp:
		if ctx.Amount > 0 {
			return fmt.Sprintf("%s reaches level %d.", ctx.Actor, ctx.Amount)
		}
		return fmt.Sprintf("%s grows stronger.", ctx.Actor)
	case TypeQuestUpdate:
		if ctx.Detail == "" {
			return "The quest takes a new turn."
		}
		return fmt.Sprintf("The quest shifts: %s.", ctx.Detail)
	default:
		place := ctx.Detail
		if place == "" {
			place = "unfamiliar ground"
		}
		return fmt.Sprintf("The scene moves to %s.", place)
	}
}

func stringField(record map[string]any, keys ...string) string {
	for _, key := range keys {
		raw, ok := record[key]
		if !ok {
			continue
		}
		if s, ok := raw.(string); ok {
			trimmed := strings.TrimSpace(s)
			if trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}

// intField tolerates the numeric shapes journal decoding produces: Go ints,
// JSON float64s, and numeric strings.
func intField(record map[string]any, keys ...string) int {
	for _, key := range keys {
		raw, ok := record[key]
		if !ok {
			continue
		}
		switch v := raw.(type) {
		case int:
			return v
		case int64:
			return int(v)
		case float64:
			return int(v)
		case string:
			if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				return parsed
			}
		}
	}
	return 0
}
