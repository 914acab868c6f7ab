package engine_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-shards/internal/engine"
	"github.com/KirkDiggler/rpg-shards/internal/entities"
	"github.com/KirkDiggler/rpg-shards/internal/errors"
	"github.com/KirkDiggler/rpg-shards/internal/testutils"
)

type EngineTestSuite struct {
	suite.Suite
	engine  *engine.Engine
	loadout *entities.Loadout
	inv     *engine.Ledger
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (s *EngineTestSuite) SetupTest() {
	s.engine = testutils.NewEngine(testutils.MaxSlots)
	s.loadout = entities.NewLoadout("actor_1")
	s.inv = engine.NewLedger(map[entities.ItemRef]int{
		testutils.FireSword:  2,
		testutils.FireAxe:    1,
		testutils.IceBlade:   1,
		testutils.WindArmor:  1,
		testutils.CursedRing: 1,
		testutils.PlainShirt: 1,
	})
}

func (s *EngineTestSuite) withSlots(n int) {
	res := s.engine.Resize(s.loadout, s.inv, n)
	s.Require().Equal(n, res.SlotCount)
}

func (s *EngineTestSuite) total(item entities.ItemRef) int {
	n := s.inv.Count(item)
	for _, occupant := range s.loadout.Slots {
		if occupant == item {
			n++
		}
	}
	return n
}

func (s *EngineTestSuite) TestNewValidatesConfig() {
	_, err := engine.New(nil)
	s.Error(err)

	_, err = engine.New(&engine.Config{})
	s.Error(err)
	s.Contains(err.Error(), "Catalog")

	_, err = engine.New(&engine.Config{
		Settings: engine.Settings{MaxSlots: -1},
		Catalog:  testutils.NewCatalog(),
	})
	s.Error(err)
}

func (s *EngineTestSuite) TestResize() {
	s.Run("grows to the requested count", func() {
		res := s.engine.Resize(s.loadout, s.inv, 2)
		s.Equal(engine.ResizeResult{SlotCount: 2, Applied: 2}, res)
		s.Equal([]entities.ItemRef{entities.None(), entities.None()}, s.loadout.Slots)
	})

	s.Run("clamps growth to max slots", func() {
		res := s.engine.Resize(s.loadout, s.inv, 10)
		s.Equal(testutils.MaxSlots, res.SlotCount)
		s.Equal(2, res.Applied)
	})

	s.Run("growth at the cap is a no-op", func() {
		res := s.engine.Resize(s.loadout, s.inv, 1)
		s.Equal(testutils.MaxSlots, res.SlotCount)
		s.Equal(0, res.Applied)
	})

	s.Run("zero delta is a no-op", func() {
		res := s.engine.Resize(s.loadout, s.inv, 0)
		s.Equal(testutils.MaxSlots, res.SlotCount)
		s.Equal(0, res.Applied)
	})

	s.Run("shrinking past zero clamps to zero", func() {
		res := s.engine.Resize(s.loadout, s.inv, -10)
		s.Equal(0, res.SlotCount)
		s.Equal(-testutils.MaxSlots, res.Applied)
		s.Empty(s.loadout.Slots)
	})
}

func (s *EngineTestSuite) TestCapacityInvariant() {
	deltas := []int{3, -1, 5, -2, 7, -9, 1, 4, -3, 2}
	for _, d := range deltas {
		res := s.engine.Resize(s.loadout, s.inv, d)
		s.GreaterOrEqual(res.SlotCount, 0)
		s.LessOrEqual(res.SlotCount, testutils.MaxSlots)
		s.Equal(res.SlotCount, s.loadout.SlotCount())
	}
}

func (s *EngineTestSuite) TestShrinkEvictsHighestFirst() {
	s.withSlots(4)
	s.Require().NoError(s.engine.Equip(s.loadout, s.inv, 0, testutils.FireSword, true))
	s.Require().NoError(s.engine.Equip(s.loadout, s.inv, 2, testutils.IceBlade, true))
	s.Require().NoError(s.engine.Equip(s.loadout, s.inv, 3, testutils.WindArmor, true))
	s.engine.Lock(s.loadout, 1)
	s.engine.Lock(s.loadout, 3)

	res := s.engine.Resize(s.loadout, s.inv, -3)

	s.Equal(1, res.SlotCount)
	s.Equal([]entities.ItemRef{testutils.WindArmor, testutils.IceBlade}, res.Evicted)
	s.Equal(1, s.inv.Count(testutils.WindArmor))
	s.Equal(1, s.inv.Count(testutils.IceBlade))
	s.Equal([]entities.ItemRef{testutils.FireSword}, s.loadout.Slots)
	s.Empty(s.loadout.Locked)
}

func (s *EngineTestSuite) TestEquip() {
	s.withSlots(2)

	s.Run("takes the item from inventory", func() {
		err := s.engine.Equip(s.loadout, s.inv, 0, testutils.FireSword, true)
		s.Require().NoError(err)
		s.Equal(testutils.FireSword, s.loadout.Slots[0])
		s.Equal(1, s.inv.Count(testutils.FireSword))
	})

	s.Run("swapping returns the previous occupant", func() {
		err := s.engine.Equip(s.loadout, s.inv, 0, testutils.IceBlade, true)
		s.Require().NoError(err)
		s.Equal(testutils.IceBlade, s.loadout.Slots[0])
		s.Equal(2, s.inv.Count(testutils.FireSword))
		s.Equal(0, s.inv.Count(testutils.IceBlade))
	})

	s.Run("re-equipping the same item does not touch inventory", func() {
		err := s.engine.Equip(s.loadout, s.inv, 0, testutils.IceBlade, true)
		s.Require().NoError(err)
		s.Equal(0, s.inv.Count(testutils.IceBlade))
	})

	s.Run("without inventory nothing is exchanged", func() {
		err := s.engine.Equip(s.loadout, s.inv, 1, testutils.FireAxe, false)
		s.Require().NoError(err)
		s.Equal(1, s.inv.Count(testutils.FireAxe))
	})

	s.Run("equipping none clears the slot", func() {
		err := s.engine.Equip(s.loadout, s.inv, 0, entities.None(), true)
		s.Require().NoError(err)
		s.True(s.loadout.Slots[0].IsNone())
		s.Equal(1, s.inv.Count(testutils.IceBlade))
	})

	s.Run("non shard items are rejected", func() {
		err := s.engine.Equip(s.loadout, s.inv, 0, testutils.PlainShirt, true)
		s.Error(err)
		s.True(errors.IsInvalidArgument(err))
		s.Equal(1, s.inv.Count(testutils.PlainShirt))
	})

	s.Run("unknown items are rejected", func() {
		err := s.engine.Equip(s.loadout, s.inv, 0, entities.Weapon(999), false)
		s.True(errors.IsInvalidArgument(err))
	})
}

func (s *EngineTestSuite) TestEquipFailuresLeaveStateUnchanged() {
	s.withSlots(2)
	s.Require().NoError(s.engine.Equip(s.loadout, s.inv, 0, testutils.IceBlade, true))
	s.engine.Lock(s.loadout, 1)

	testCases := []struct {
		name  string
		slot  int
		item  entities.ItemRef
		check func(error) bool
	}{
		{name: "negative slot", slot: -1, item: testutils.FireSword, check: errors.IsSlotOutOfRange},
		{name: "slot past count", slot: 2, item: testutils.FireSword, check: errors.IsSlotOutOfRange},
		{name: "locked slot", slot: 1, item: testutils.FireSword, check: errors.IsSlotLocked},
		{name: "insufficient quantity", slot: 0, item: testutils.FrostBow, check: errors.IsInventoryMismatch},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			before := s.loadout.Clone()
			counts := s.inv.Counts()

			err := s.engine.Equip(s.loadout, s.inv, tc.slot, tc.item, true)

			s.Error(err)
			s.True(tc.check(err), "unexpected error %v", err)
			s.Equal(before, s.loadout)
			s.Equal(counts, s.inv.Counts())
		})
	}
}

func (s *EngineTestSuite) TestOutOfStockSwapKeepsOccupant() {
	s.withSlots(1)
	s.Require().NoError(s.engine.Equip(s.loadout, s.inv, 0, testutils.FireSword, true))
	s.Require().NoError(s.inv.Take(testutils.IceBlade, 1))

	err := s.engine.Equip(s.loadout, s.inv, 0, testutils.IceBlade, true)

	s.True(errors.IsInventoryMismatch(err))
	s.Equal(testutils.FireSword, s.loadout.Slots[0])
	s.Equal(1, s.inv.Count(testutils.FireSword))
}

func (s *EngineTestSuite) TestConservation() {
	s.withSlots(3)
	tracked := []entities.ItemRef{testutils.FireSword, testutils.IceBlade, testutils.WindArmor}
	want := make(map[entities.ItemRef]int)
	for _, item := range tracked {
		want[item] = s.total(item)
	}

	s.Require().NoError(s.engine.Equip(s.loadout, s.inv, 0, testutils.FireSword, true))
	s.Require().NoError(s.engine.Equip(s.loadout, s.inv, 1, testutils.IceBlade, true))
	s.Require().NoError(s.engine.Equip(s.loadout, s.inv, 2, testutils.FireSword, true))
	s.Require().NoError(s.engine.Equip(s.loadout, s.inv, 2, testutils.WindArmor, true))
	s.Require().NoError(s.engine.Unequip(s.loadout, s.inv, 1, true))
	s.engine.RemoveByIdentity(s.loadout, s.inv, engine.RemoveTarget{ShardID: testutils.ShardFire}, false)
	s.engine.Resize(s.loadout, s.inv, -2)

	for _, item := range tracked {
		s.Equal(want[item], s.total(item), "item %s", item)
	}
}

func (s *EngineTestSuite) TestLockRejection() {
	s.withSlots(2)
	s.Require().NoError(s.engine.Equip(s.loadout, s.inv, 0, testutils.FireSword, true))
	s.engine.Lock(s.loadout, 0)

	err := s.engine.Equip(s.loadout, s.inv, 0, testutils.IceBlade, true)
	s.True(errors.IsSlotLocked(err))

	err = s.engine.Unequip(s.loadout, s.inv, 0, true)
	s.True(errors.IsSlotLocked(err))
	s.Equal(testutils.FireSword, s.loadout.Slots[0])

	s.engine.Unlock(s.loadout, 0)
	s.NoError(s.engine.Unequip(s.loadout, s.inv, 0, true))
}

func (s *EngineTestSuite) TestCurseLocksSlot() {
	s.withSlots(2)

	err := s.engine.Equip(s.loadout, s.inv, 1, testutils.CursedRing, true)

	s.Require().NoError(err)
	s.True(s.engine.IsLocked(s.loadout, 1))
	s.False(s.engine.IsLocked(s.loadout, 0))
	s.True(s.engine.IsCursed(testutils.ShardCurse))
}

func (s *EngineTestSuite) TestLockIdempotence() {
	s.withSlots(3)

	s.engine.Lock(s.loadout, 1)
	s.engine.Lock(s.loadout, 1)
	s.Equal([]int{1}, s.loadout.Locked)

	s.engine.Unlock(s.loadout, 1)
	s.engine.Unlock(s.loadout, 1)
	s.Empty(s.loadout.Locked)

	s.engine.Lock(s.loadout, 7)
	s.engine.Lock(s.loadout, -1)
	s.Empty(s.loadout.Locked)

	s.engine.LockAll(s.loadout)
	s.Equal([]int{0, 1, 2}, s.loadout.Locked)
	s.engine.LockAll(s.loadout)
	s.Equal([]int{0, 1, 2}, s.loadout.Locked)

	s.engine.UnlockAll(s.loadout)
	s.Empty(s.loadout.Locked)
}

func (s *EngineTestSuite) TestUnequip() {
	s.withSlots(2)
	s.Require().NoError(s.engine.Equip(s.loadout, s.inv, 0, testutils.IceBlade, true))

	s.Run("empty slot is a no-op", func() {
		s.NoError(s.engine.Unequip(s.loadout, s.inv, 1, true))
	})

	s.Run("out of range", func() {
		s.True(errors.IsSlotOutOfRange(s.engine.Unequip(s.loadout, s.inv, 2, true)))
	})

	s.Run("without return the item leaves play", func() {
		s.NoError(s.engine.Unequip(s.loadout, s.inv, 0, false))
		s.True(s.loadout.Slots[0].IsNone())
		s.Equal(0, s.inv.Count(testutils.IceBlade))
	})
}

func (s *EngineTestSuite) TestRemoveByIdentity() {
	s.withSlots(4)
	s.Require().NoError(s.engine.Equip(s.loadout, s.inv, 1, testutils.FireAxe, true))
	s.Require().NoError(s.engine.Equip(s.loadout, s.inv, 2, testutils.FireSword, true))
	s.Require().NoError(s.engine.Equip(s.loadout, s.inv, 3, testutils.IceBlade, true))
	s.engine.Lock(s.loadout, 1)

	s.Run("by shard id takes the first match and bypasses the lock", func() {
		res := s.engine.RemoveByIdentity(s.loadout, s.inv, engine.RemoveTarget{ShardID: testutils.ShardFire}, false)
		s.Equal(engine.RemoveResult{Removed: true, Slot: 1, Item: testutils.FireAxe}, res)
		s.Equal(1, s.inv.Count(testutils.FireAxe))
		s.True(s.loadout.IsLocked(1))
	})

	s.Run("by item ignores the shard grouping", func() {
		res := s.engine.RemoveByIdentity(s.loadout, s.inv, engine.RemoveTarget{Item: testutils.IceBlade}, true)
		s.True(res.Removed)
		s.Equal(3, res.Slot)
		s.False(res.Unlocked)
	})

	s.Run("unlock releases the slot lock", func() {
		s.engine.Lock(s.loadout, 2)
		res := s.engine.RemoveByIdentity(s.loadout, s.inv, engine.RemoveTarget{Item: testutils.FireSword}, true)
		s.True(res.Removed)
		s.True(res.Unlocked)
		s.False(s.loadout.IsLocked(2))
	})

	s.Run("no match is a no-op", func() {
		before := s.loadout.Clone()
		res := s.engine.RemoveByIdentity(s.loadout, s.inv, engine.RemoveTarget{ShardID: testutils.ShardWind}, true)
		s.False(res.Removed)
		s.Equal(-1, res.Slot)
		s.Equal(before, s.loadout)
	})
}

func (s *EngineTestSuite) TestPreview() {
	s.withSlots(2)
	s.Require().NoError(s.engine.Equip(s.loadout, s.inv, 0, testutils.FireSword, true))
	counts := s.inv.Counts()

	preview, err := s.engine.Preview(s.loadout, 0, testutils.CursedRing)

	s.Require().NoError(err)
	s.Equal(testutils.CursedRing, preview.Slots[0])
	s.True(preview.IsLocked(0))
	s.Equal(testutils.FireSword, s.loadout.Slots[0])
	s.False(s.loadout.IsLocked(0))
	s.Equal(counts, s.inv.Counts())

	_, err = s.engine.Preview(s.loadout, 5, testutils.IceBlade)
	s.True(errors.IsSlotOutOfRange(err))
}

func (s *EngineTestSuite) TestQueries() {
	s.withSlots(3)
	s.Require().NoError(s.engine.Equip(s.loadout, s.inv, 0, testutils.FireSword, true))
	s.Require().NoError(s.engine.Equip(s.loadout, s.inv, 2, testutils.CursedRing, true))

	s.True(s.engine.HasShard(s.loadout, testutils.ShardFire))
	s.False(s.engine.HasShard(s.loadout, testutils.ShardIce))
	s.False(s.engine.HasShard(s.loadout, 0))
	s.False(s.engine.HasShard(nil, testutils.ShardFire))

	s.True(s.engine.HasItem(s.loadout, testutils.FireSword))
	s.False(s.engine.HasItem(s.loadout, testutils.FireAxe))

	s.True(s.engine.Matches(s.loadout, engine.RemoveTarget{ShardID: testutils.ShardCurse}))
	s.False(s.engine.Matches(s.loadout, engine.RemoveTarget{Item: testutils.FireAxe}))

	s.Equal(map[int]int{2: 17, 3: -6}, s.engine.Stats(s.loadout))
	s.Equal(testutils.ShardFire, s.engine.ShardID(testutils.FireAxe))
	s.Equal(0, s.engine.ShardID(testutils.PlainShirt))
}

// Scenario: resize, equip two linked shards, then unequip one.
func (s *EngineTestSuite) TestScenarioLinkThenUnequip() {
	rules := engine.NewRules([]engine.LinkRule{{A: 1, B: 3, Ability: 9}})

	res := s.engine.Resize(s.loadout, s.inv, 2)
	s.Require().Equal(2, res.SlotCount)
	s.Require().NoError(s.engine.Equip(s.loadout, s.inv, 0, testutils.FireSword, true))
	s.Require().NoError(s.engine.Equip(s.loadout, s.inv, 1, testutils.IceBlade, true))

	s.True(s.engine.HasShard(s.loadout, 1))
	links := s.engine.Resolve(s.loadout, rules)
	s.Contains(links.Abilities, 9)
	s.Equal([]int{0, 1}, links.Linked)

	inStock := s.inv.Count(testutils.FireSword)
	s.Require().NoError(s.engine.Unequip(s.loadout, s.inv, 0, true))

	links = s.engine.Resolve(s.loadout, rules)
	s.NotContains(links.Abilities, 9)
	s.Equal(inStock+1, s.inv.Count(testutils.FireSword))
	s.Equal(2, s.loadout.SlotCount())
}

// Scenario: shrink a full two-slot loadout by one.
func (s *EngineTestSuite) TestScenarioShrinkFullLoadout() {
	s.engine = testutils.NewEngine(2)
	s.withSlots(2)
	s.Require().NoError(s.engine.Equip(s.loadout, s.inv, 0, testutils.FireSword, true))
	s.Require().NoError(s.engine.Equip(s.loadout, s.inv, 1, testutils.IceBlade, true))
	s.engine.Lock(s.loadout, 1)

	res := s.engine.Resize(s.loadout, s.inv, -1)

	s.Equal(1, res.SlotCount)
	s.Equal([]entities.ItemRef{testutils.IceBlade}, res.Evicted)
	s.Equal(1, s.inv.Count(testutils.IceBlade))
	s.False(s.loadout.IsLocked(1))
	s.Empty(s.loadout.Locked)
}
