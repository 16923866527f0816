// Package event defines the normalized narration event model and the mapper
// that produces it from raw gameplay journal records.
package event

// Type identifies the kind of a narration event.
type Type string

const (
	// TypeAttackResolved records a resolved attack with its computed damage.
	TypeAttackResolved Type = "attack_resolved"
	// TypeStatusTick records an ongoing status effect pulsing.
	TypeStatusTick Type = "status_tick"
	// TypeLootDropped records loot changing hands.
	TypeLootDropped Type = "loot_dropped"
	// TypeTravelStep records one step of overland travel.
	TypeTravelStep Type = "travel_step"
	// TypeDungeonRoomEntered records the party entering a dungeon room.
	TypeDungeonRoomEntered Type = "dungeon_room_entered"
	// TypeNPCDialogue records an exchange with a non-player character.
	TypeNPCDialogue Type = "npc_dialogue"
	// TypeLevelUp records a character advancing a level.
	TypeLevelUp Type = "level_up"
	// TypeQuestUpdate records quest progress.
	TypeQuestUpdate Type = "quest_update"
	// TypeBoardTransition records movement between boards. Unknown raw types
	// normalize here so narration always has something to say.
	TypeBoardTransition Type = "board_transition"
)

// Types lists every narration event type. The template catalog is required
// to cover each one so the composer's fallback path always has a candidate.
func Types() []Type {
	return []Type{
		TypeAttackResolved,
		TypeStatusTick,
		TypeLootDropped,
		TypeTravelStep,
		TypeDungeonRoomEntered,
		TypeNPCDialogue,
		TypeLevelUp,
		TypeQuestUpdate,
		TypeBoardTransition,
	}
}

// Context carries the normalized fields templates render from. Missing raw
// fields arrive here already defaulted: empty actor becomes "You", missing
// amounts become 0.
type Context struct {
	Actor  string
	Target string
	Status string
	Detail string
	Amount int
}

// Event is one normalized narration event. Produced once, never mutated.
type Event struct {
	ID      string
	Type    Type
	Context Context
}
