package entities

import "sort"

// Loadout is a character's magic orb: an ordered run of shard slots plus the
// set of locked slot indices. Len(Slots) is the slot count; an empty slot holds None.
type Loadout struct {
	CharacterID string    `json:"character_id"`
	Slots       []ItemRef `json:"slots"`
	Locked      []int     `json:"locked,omitempty"`
	OrbImageID  int       `json:"orb_image_id"`
}

// NewLoadout returns an empty loadout with no slots
func NewLoadout(characterID string) *Loadout {
	return &Loadout{
		CharacterID: characterID,
		Slots:       []ItemRef{},
	}
}

// SlotCount returns the number of open slots
func (l *Loadout) SlotCount() int {
	return len(l.Slots)
}

// InRange reports whether slot is a valid index
func (l *Loadout) InRange(slot int) bool {
	return slot >= 0 && slot < len(l.Slots)
}

// IsLocked reports whether slot is in the lock set
func (l *Loadout) IsLocked(slot int) bool {
	i := sort.SearchInts(l.Locked, slot)
	return i < len(l.Locked) && l.Locked[i] == slot
}

// AddLock inserts slot into the lock set, keeping it sorted
func (l *Loadout) AddLock(slot int) {
	i := sort.SearchInts(l.Locked, slot)
	if i < len(l.Locked) && l.Locked[i] == slot {
		return
	}
	l.Locked = append(l.Locked, 0)
	copy(l.Locked[i+1:], l.Locked[i:])
	l.Locked[i] = slot
}

// RemoveLock drops slot from the lock set
func (l *Loadout) RemoveLock(slot int) {
	i := sort.SearchInts(l.Locked, slot)
	if i < len(l.Locked) && l.Locked[i] == slot {
		l.Locked = append(l.Locked[:i], l.Locked[i+1:]...)
	}
}

// EquippedCount returns the number of occupied slots
func (l *Loadout) EquippedCount() int {
	n := 0
	for _, item := range l.Slots {
		if !item.IsNone() {
			n++
		}
	}
	return n
}

// Clone returns a deep copy that shares no memory with l
func (l *Loadout) Clone() *Loadout {
	if l == nil {
		return nil
	}
	clone := &Loadout{
		CharacterID: l.CharacterID,
		Slots:       make([]ItemRef, len(l.Slots)),
		OrbImageID:  l.OrbImageID,
	}
	copy(clone.Slots, l.Slots)
	if len(l.Locked) > 0 {
		clone.Locked = make([]int, len(l.Locked))
		copy(clone.Locked, l.Locked)
	}
	return clone
}
