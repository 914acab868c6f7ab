package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/rpg-shards/internal/entities"
)

func TestLoadoutLocks(t *testing.T) {
	l := entities.NewLoadout("actor_1")
	l.Slots = make([]entities.ItemRef, 4)

	l.AddLock(2)
	l.AddLock(0)
	l.AddLock(2)
	l.AddLock(3)
	assert.Equal(t, []int{0, 2, 3}, l.Locked)
	assert.True(t, l.IsLocked(2))
	assert.False(t, l.IsLocked(1))

	l.RemoveLock(2)
	l.RemoveLock(1)
	assert.Equal(t, []int{0, 3}, l.Locked)
}

func TestLoadoutCloneIsDeep(t *testing.T) {
	l := &entities.Loadout{
		CharacterID: "actor_1",
		Slots:       []entities.ItemRef{entities.Weapon(1), entities.None()},
		Locked:      []int{1},
		OrbImageID:  4,
	}

	clone := l.Clone()
	assert.Equal(t, l, clone)

	clone.Slots[1] = entities.Armor(2)
	clone.AddLock(0)
	clone.OrbImageID = 1

	assert.Equal(t, entities.None(), l.Slots[1])
	assert.Equal(t, []int{1}, l.Locked)
	assert.Equal(t, 4, l.OrbImageID)
}

func TestLoadoutCounts(t *testing.T) {
	l := &entities.Loadout{Slots: []entities.ItemRef{entities.Weapon(1), entities.None(), entities.Armor(3)}}
	assert.Equal(t, 3, l.SlotCount())
	assert.Equal(t, 2, l.EquippedCount())
	assert.True(t, l.InRange(2))
	assert.False(t, l.InRange(3))
	assert.False(t, l.InRange(-1))
}

func TestPartyRoster(t *testing.T) {
	p := &entities.Party{ID: "party_1", Members: []string{"actor_1", "actor_4"}}
	assert.Equal(t, "actor_1", p.Leader())

	id, ok := p.MemberAt(1)
	assert.True(t, ok)
	assert.Equal(t, "actor_4", id)

	_, ok = p.MemberAt(2)
	assert.False(t, ok)

	var empty *entities.Party
	assert.Equal(t, "", empty.Leader())
}
