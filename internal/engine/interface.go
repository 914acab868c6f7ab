// Package engine implements the shard loadout rules: slot storage, locking,
// equip transactions, adjacency links and read-only queries. It is pure and
// synchronous; persistence and serialization belong to the orchestrator.
package engine

import (
	"github.com/KirkDiggler/rpg-shards/internal/entities"
)

// Catalog classifies items. Lookup returns false for unknown items.
type Catalog interface {
	Lookup(item entities.ItemRef) (*entities.CatalogEntry, bool)
}

// Inventory is the shared item pool that shards are exchanged with
type Inventory interface {
	// Count returns how many units of item are held
	Count(item entities.ItemRef) int
	// Take removes qty units or returns an inventory mismatch error
	Take(item entities.ItemRef, qty int) error
	// Give adds qty units
	Give(item entities.ItemRef, qty int)
}

// LoadoutMutator is the mutation surface called by menus and commands
type LoadoutMutator interface {
	Resize(l *entities.Loadout, inv Inventory, delta int) ResizeResult
	Lock(l *entities.Loadout, slot int)
	Unlock(l *entities.Loadout, slot int)
	LockAll(l *entities.Loadout)
	UnlockAll(l *entities.Loadout)
	Equip(l *entities.Loadout, inv Inventory, slot int, item entities.ItemRef, fromInventory bool) error
	Unequip(l *entities.Loadout, inv Inventory, slot int, returnToInventory bool) error
	RemoveByIdentity(l *entities.Loadout, inv Inventory, target RemoveTarget, unlock bool) RemoveResult
}

// LoadoutQuery is the read-only surface used by game logic and display
type LoadoutQuery interface {
	IsLocked(l *entities.Loadout, slot int) bool
	ShardID(item entities.ItemRef) int
	HasShard(l *entities.Loadout, shardID int) bool
	HasItem(l *entities.Loadout, item entities.ItemRef) bool
	Matches(l *entities.Loadout, target RemoveTarget) bool
	Resolve(l *entities.Loadout, rules *Rules) LinkResult
	Stats(l *entities.Loadout) map[int]int
	Preview(l *entities.Loadout, slot int, item entities.ItemRef) (*entities.Loadout, error)
}
