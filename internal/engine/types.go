package engine

import (
	"github.com/KirkDiggler/rpg-shards/internal/entities"
)

// Settings is the immutable shard configuration resolved once at startup
type Settings struct {
	// MaxSlots is the ceiling for any loadout's slot count
	MaxSlots int
	// CursedShards lists shard ids that lock the slot they are equipped to
	CursedShards []int
}

// ResizeResult reports what a resize actually applied
type ResizeResult struct {
	SlotCount int
	Applied   int
	// Evicted holds the items returned to inventory, highest slot first
	Evicted []entities.ItemRef
}

// RemoveTarget matches an occupant either by shard id or by concrete item
type RemoveTarget struct {
	ShardID int
	Item    entities.ItemRef
}

// RemoveResult reports the slot cleared by RemoveByIdentity
type RemoveResult struct {
	Removed  bool
	Slot     int
	Item     entities.ItemRef
	Unlocked bool
}

// LinkResult is the derived adjacency state of a loadout
type LinkResult struct {
	// Abilities granted by linked pairs, deduplicated, in slot scan order
	Abilities []int
	// Linked holds the sorted slot indices that take part in a link
	Linked []int
}

// AbilityDelta is the before/after difference of granted abilities
type AbilityDelta struct {
	Added   []int
	Removed []int
}

// IsEmpty reports whether nothing changed
func (d AbilityDelta) IsEmpty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0
}
