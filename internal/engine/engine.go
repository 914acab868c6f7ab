package engine

import (
	"github.com/KirkDiggler/rpg-shards/internal/entities"
	"github.com/KirkDiggler/rpg-shards/internal/errors"
)

// Config holds the dependencies for the shard engine
type Config struct {
	Settings Settings
	Catalog  Catalog
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	errors.ValidateMin("Settings.MaxSlots", c.Settings.MaxSlots, 0, vb)

	return vb.Build()
}

// Engine applies the shard rules to loadouts it is handed
type Engine struct {
	maxSlots int
	cursed   map[int]struct{}
	catalog  Catalog
}

// New creates a shard engine
func New(cfg *Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	cursed := make(map[int]struct{}, len(cfg.Settings.CursedShards))
	for _, id := range cfg.Settings.CursedShards {
		cursed[id] = struct{}{}
	}

	return &Engine{
		maxSlots: cfg.Settings.MaxSlots,
		cursed:   cursed,
		catalog:  cfg.Catalog,
	}, nil
}

// MaxSlots returns the configured slot ceiling
func (e *Engine) MaxSlots() int {
	return e.maxSlots
}

// IsCursed reports whether a shard id locks its slot when equipped
func (e *Engine) IsCursed(shardID int) bool {
	_, ok := e.cursed[shardID]
	return ok
}

// ShardID returns the shard grouping of an item, 0 when it is not a shard
func (e *Engine) ShardID(item entities.ItemRef) int {
	if item.IsNone() {
		return 0
	}
	entry, ok := e.catalog.Lookup(item)
	if !ok || !entry.IsShard() {
		return 0
	}
	return entry.ShardID
}

// Resize grows or shrinks the slot count by delta, clamped to [0, MaxSlots].
// Shrinking evicts occupants from the highest index down, returning them to inv,
// and drops locks on the removed indices.
func (e *Engine) Resize(l *entities.Loadout, inv Inventory, delta int) ResizeResult {
	count := l.SlotCount()

	switch {
	case delta > 0:
		headroom := e.maxSlots - count
		if headroom < 0 {
			headroom = 0
		}
		if delta > headroom {
			delta = headroom
		}
		for i := 0; i < delta; i++ {
			l.Slots = append(l.Slots, entities.None())
		}
		return ResizeResult{SlotCount: l.SlotCount(), Applied: delta}

	case delta < 0:
		remove := -delta
		if remove > count {
			remove = count
		}
		newCount := count - remove

		var evicted []entities.ItemRef
		for slot := count - 1; slot >= newCount; slot-- {
			if item := l.Slots[slot]; !item.IsNone() {
				inv.Give(item, 1)
				evicted = append(evicted, item)
			}
			l.Slots[slot] = entities.None()
		}
		l.Slots = l.Slots[:newCount]

		kept := l.Locked[:0]
		for _, slot := range l.Locked {
			if slot < newCount {
				kept = append(kept, slot)
			}
		}
		if len(kept) == 0 {
			kept = nil
		}
		l.Locked = kept

		return ResizeResult{SlotCount: newCount, Applied: -remove, Evicted: evicted}
	}

	return ResizeResult{SlotCount: count}
}

// IsLocked reports whether slot is locked
func (e *Engine) IsLocked(l *entities.Loadout, slot int) bool {
	return l.IsLocked(slot)
}

// Lock locks a slot. Locking twice or an out of range slot is a no-op.
func (e *Engine) Lock(l *entities.Loadout, slot int) {
	if !l.InRange(slot) {
		return
	}
	l.AddLock(slot)
}

// Unlock unlocks a slot. Unlocking an unlocked or out of range slot is a no-op.
func (e *Engine) Unlock(l *entities.Loadout, slot int) {
	if !l.InRange(slot) {
		return
	}
	l.RemoveLock(slot)
}

// LockAll locks every open slot
func (e *Engine) LockAll(l *entities.Loadout) {
	for slot := range l.Slots {
		l.AddLock(slot)
	}
}

// UnlockAll clears the lock set
func (e *Engine) UnlockAll(l *entities.Loadout) {
	l.Locked = nil
}

// Equip places item into slot. With fromInventory the item is taken from inv and
// the previous occupant is given back. Equipping None clears the slot. The loadout
// and inventory are untouched when an error is returned.
func (e *Engine) Equip(l *entities.Loadout, inv Inventory, slot int, item entities.ItemRef, fromInventory bool) error {
	if err := e.checkMutable(l, slot); err != nil {
		return err
	}

	if item.IsNone() {
		e.clearSlot(l, inv, slot, fromInventory)
		return nil
	}

	shardID := e.ShardID(item)
	if shardID == 0 {
		return errors.InvalidArgumentf("item %s is not a shard", item).WithMeta("item", item.String())
	}

	// re-equipping the current occupant needs no exchange
	old := l.Slots[slot]
	if fromInventory && old != item {
		if err := inv.Take(item, 1); err != nil {
			return err
		}
		if !old.IsNone() {
			inv.Give(old, 1)
		}
	}

	l.Slots[slot] = item
	if e.IsCursed(shardID) {
		l.AddLock(slot)
	}

	return nil
}

// Unequip clears slot, crediting the occupant back to inv when returnToInventory
// is set. Clearing an empty slot is a no-op.
func (e *Engine) Unequip(l *entities.Loadout, inv Inventory, slot int, returnToInventory bool) error {
	if err := e.checkMutable(l, slot); err != nil {
		return err
	}

	e.clearSlot(l, inv, slot, returnToInventory)
	return nil
}

// RemoveByIdentity clears the first slot, in ascending order, whose occupant matches
// target and returns the item to inv. Locks do not block removal; unlock also
// releases the slot's lock. No match is a no-op.
func (e *Engine) RemoveByIdentity(l *entities.Loadout, inv Inventory, target RemoveTarget, unlock bool) RemoveResult {
	for slot, item := range l.Slots {
		if item.IsNone() || !e.matches(item, target) {
			continue
		}

		e.clearSlot(l, inv, slot, true)

		result := RemoveResult{Removed: true, Slot: slot, Item: item}
		if unlock && l.IsLocked(slot) {
			l.RemoveLock(slot)
			result.Unlocked = true
		}
		return result
	}

	return RemoveResult{Slot: -1}
}

// Preview simulates equipping item into slot on a deep copy, without touching any
// inventory. The returned loadout is disposable.
func (e *Engine) Preview(l *entities.Loadout, slot int, item entities.ItemRef) (*entities.Loadout, error) {
	preview := l.Clone()
	if err := e.Equip(preview, discardInventory{}, slot, item, false); err != nil {
		return nil, err
	}
	return preview, nil
}

func (e *Engine) checkMutable(l *entities.Loadout, slot int) error {
	if !l.InRange(slot) {
		return errors.SlotOutOfRange(slot, l.SlotCount())
	}
	if l.IsLocked(slot) {
		return errors.SlotLocked(slot)
	}
	return nil
}

func (e *Engine) clearSlot(l *entities.Loadout, inv Inventory, slot int, returnToInventory bool) {
	old := l.Slots[slot]
	if old.IsNone() {
		return
	}
	if returnToInventory {
		inv.Give(old, 1)
	}
	l.Slots[slot] = entities.None()
}

func (e *Engine) matches(item entities.ItemRef, target RemoveTarget) bool {
	if !target.Item.IsNone() {
		return item == target.Item
	}
	return target.ShardID > 0 && e.ShardID(item) == target.ShardID
}

// discardInventory backs previews; nothing is ever taken from or given to it
type discardInventory struct{}

func (discardInventory) Count(entities.ItemRef) int      { return 0 }
func (discardInventory) Take(entities.ItemRef, int) error { return nil }
func (discardInventory) Give(entities.ItemRef, int)       {}

var (
	_ LoadoutMutator = (*Engine)(nil)
	_ LoadoutQuery   = (*Engine)(nil)
)
