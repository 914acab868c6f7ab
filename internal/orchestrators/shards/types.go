package shards

import (
	"github.com/KirkDiggler/rpg-shards/internal/engine"
	"github.com/KirkDiggler/rpg-shards/internal/entities"
)

// EventAbilitiesChanged is published whenever a mutation changes the granted abilities
const EventAbilitiesChanged = "shards.abilities_changed"

// Event context keys for EventAbilitiesChanged
const (
	EventKeyID         = "event_id"
	EventKeyOccurredAt = "occurred_at"
	EventKeyAdded      = "added"
	EventKeyRemoved    = "removed"
	EventKeyAbilities  = "abilities"
)

// SlotView is one slot of a loadout rendered for display
type SlotView struct {
	Index     int
	Item      entities.ItemRef
	ShardID   int
	Name      string
	IconIndex int
	Locked    bool
	Linked    bool
}

// LoadoutView is a loadout with its derived state
type LoadoutView struct {
	CharacterID   string
	Slots         []SlotView
	SlotCount     int
	EquippedCount int
	MaxSlots      int
	OrbImageID    int
	Abilities     []int
	Stats         map[int]int
}

// MutationOutput is shared by every loadout mutation
type MutationOutput struct {
	Loadout      *LoadoutView
	AbilityDelta engine.AbilityDelta
}

// GetLoadoutInput defines the input for GetLoadout
type GetLoadoutInput struct {
	CharacterID string
}

// GetLoadoutOutput defines the output for GetLoadout
type GetLoadoutOutput struct {
	Loadout *LoadoutView
}

// ResizeSlotsInput defines the input for ResizeSlots
type ResizeSlotsInput struct {
	CharacterID string
	// PartyID receives evicted shards; empty uses the default party
	PartyID string
	Delta   int
}

// ResizeSlotsOutput defines the output for ResizeSlots
type ResizeSlotsOutput struct {
	MutationOutput
	Applied int
	Evicted []entities.ItemRef
}

// SetSlotLockInput defines the input for SetSlotLock
type SetSlotLockInput struct {
	CharacterID string
	// Slot is the zero-based slot; nil addresses every slot
	Slot   *int
	Locked bool
}

// SetSlotLockOutput defines the output for SetSlotLock
type SetSlotLockOutput struct {
	MutationOutput
}

// EquipShardInput defines the input for EquipShard
type EquipShardInput struct {
	CharacterID string
	PartyID     string
	Slot        int
	Item        entities.ItemRef
}

// EquipShardOutput defines the output for EquipShard
type EquipShardOutput struct {
	MutationOutput
	// Replaced is the previous occupant of the slot
	Replaced entities.ItemRef
}

// UnequipShardInput defines the input for UnequipShard
type UnequipShardInput struct {
	CharacterID string
	PartyID     string
	Slot        int
}

// UnequipShardOutput defines the output for UnequipShard
type UnequipShardOutput struct {
	MutationOutput
	Item entities.ItemRef
}

// RemoveShardInput defines the input for RemoveShard
type RemoveShardInput struct {
	CharacterID string
	PartyID     string
	Target      engine.RemoveTarget
	Unlock      bool
}

// RemoveShardOutput defines the output for RemoveShard
type RemoveShardOutput struct {
	MutationOutput
	Result engine.RemoveResult
}

// SetOrbImageInput defines the input for SetOrbImage
type SetOrbImageInput struct {
	CharacterID string
	ImageID     int
}

// SetOrbImageOutput defines the output for SetOrbImage
type SetOrbImageOutput struct {
	MutationOutput
}

// PreviewEquipInput defines the input for PreviewEquip
type PreviewEquipInput struct {
	CharacterID string
	Slot        int
	Item        entities.ItemRef
}

// PreviewEquipOutput defines the output for PreviewEquip
type PreviewEquipOutput struct {
	Current      *LoadoutView
	Preview      *LoadoutView
	StatsDelta   map[int]int
	AbilityDelta engine.AbilityDelta
}

// LevelUpInput defines the input for LevelUp
type LevelUpInput struct {
	CharacterID string
	// PartyID receives shards evicted by a negative grant
	PartyID string
	// ClassID overrides the actor's catalog class when non-zero
	ClassID   int
	FromLevel int
	ToLevel   int
}

// LevelUpOutput defines the output for LevelUp
type LevelUpOutput struct {
	MutationOutput
	// Requested is the sum of the class grants in the level range
	Requested int
	// Applied is the net slot change after clamping
	Applied int
	Evicted []entities.ItemRef
	// Message announces gained slots and is empty when none were gained
	Message string
}

// HasShardInput defines the input for HasShard
type HasShardInput struct {
	CharacterID string
	Target      engine.RemoveTarget
}

// HasShardOutput defines the output for HasShard
type HasShardOutput struct {
	Has bool
}

// PartyHasShardInput defines the input for PartyHasShard
type PartyHasShardInput struct {
	PartyID string
	Target  engine.RemoveTarget
}

// PartyHasShardOutput defines the output for PartyHasShard
type PartyHasShardOutput struct {
	Has bool
	// CharacterID is the first member, in roster order, holding the shard
	CharacterID string
}

// ListShardItemsInput defines the input for ListShardItems
type ListShardItemsInput struct {
	PartyID string
}

// ShardItem is a catalog shard with the quantity the party holds
type ShardItem struct {
	Entry *entities.CatalogEntry
	Count int
}

// ListShardItemsOutput defines the output for ListShardItems
type ListShardItemsOutput struct {
	Items []ShardItem
}
