package loadout_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-shards/internal/entities"
	"github.com/KirkDiggler/rpg-shards/internal/errors"
	"github.com/KirkDiggler/rpg-shards/internal/repositories/inventory"
	"github.com/KirkDiggler/rpg-shards/internal/repositories/loadout"
	"github.com/KirkDiggler/rpg-shards/internal/testutils"
)

const (
	testCharacterID = "actor_1"
	testPartyID     = "party_1"
	testLoadoutKey  = "loadout:character:actor_1"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	cleanup func()
	repo    loadout.Repository
	ctx     context.Context
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, mr, cleanup := testutils.CreateTestRedis(s.T())
	s.mr = mr
	s.cleanup = cleanup

	repo, err := loadout.NewRedis(&loadout.Config{Client: client})
	s.Require().NoError(err)
	s.repo = repo
	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisRepositoryTestSuite) seedLoadout(l *entities.Loadout) {
	data, err := json.Marshal(l)
	s.Require().NoError(err)
	s.Require().NoError(s.mr.Set(loadout.Key(l.CharacterID), string(data)))
}

func (s *RedisRepositoryTestSuite) stored() *entities.Loadout {
	out, err := s.repo.Get(s.ctx, loadout.GetInput{CharacterID: testCharacterID})
	s.Require().NoError(err)
	return out.Loadout
}

func (s *RedisRepositoryTestSuite) TestGet() {
	s.Run("not found", func() {
		_, err := s.repo.Get(s.ctx, loadout.GetInput{CharacterID: testCharacterID})
		s.True(errors.IsNotFound(err))
	})

	s.Run("decodes stored loadout", func() {
		s.Require().NoError(s.mr.Set(testLoadoutKey, `{"character_id":"actor_1","slots":["w10","none"],"locked":[1],"orb_image_id":3}`))

		l := s.stored()
		s.Equal([]entities.ItemRef{entities.Weapon(10), entities.None()}, l.Slots)
		s.Equal([]int{1}, l.Locked)
		s.Equal(3, l.OrbImageID)
	})

	s.Run("null slots decode as empty", func() {
		s.Require().NoError(s.mr.Set(testLoadoutKey, `{"character_id":"actor_1","slots":null}`))
		s.NotNil(s.stored().Slots)
	})

	s.Run("requires character id", func() {
		_, err := s.repo.Get(s.ctx, loadout.GetInput{})
		s.True(errors.IsInvalidArgument(err))
	})
}

func (s *RedisRepositoryTestSuite) TestCommitNewLoadout() {
	s.mr.HSet(inventory.Key(testPartyID), "w10", "2")

	next := entities.NewLoadout(testCharacterID)
	next.Slots = []entities.ItemRef{testutils.FireSword}

	out, err := s.repo.Commit(s.ctx, loadout.CommitInput{
		Loadout:        next,
		PartyID:        testPartyID,
		InventoryDelta: map[entities.ItemRef]int{testutils.FireSword: -1},
	})

	s.Require().NoError(err)
	s.Equal(map[entities.ItemRef]int{testutils.FireSword: 1}, out.Counts)
	s.Equal("1", s.mr.HGet(inventory.Key(testPartyID), "w10"))
	s.Equal(next, s.stored())
}

func (s *RedisRepositoryTestSuite) TestCommitSwap() {
	current := entities.NewLoadout(testCharacterID)
	current.Slots = []entities.ItemRef{testutils.FireSword, entities.None()}
	s.seedLoadout(current)
	s.mr.HSet(inventory.Key(testPartyID), "w12", "1")

	next := current.Clone()
	next.Slots[0] = testutils.IceBlade

	_, err := s.repo.Commit(s.ctx, loadout.CommitInput{
		Loadout:  next,
		Expected: current,
		PartyID:  testPartyID,
		InventoryDelta: map[entities.ItemRef]int{
			testutils.IceBlade:  -1,
			testutils.FireSword: 1,
		},
	})

	s.Require().NoError(err)
	s.Equal(next, s.stored())
	s.Equal("1", s.mr.HGet(inventory.Key(testPartyID), "w10"))
	s.Equal("", s.mr.HGet(inventory.Key(testPartyID), "w12"), "emptied counts are removed")
}

func (s *RedisRepositoryTestSuite) TestCommitInsufficientInventoryWritesNothing() {
	current := entities.NewLoadout(testCharacterID)
	current.Slots = []entities.ItemRef{entities.None()}
	s.seedLoadout(current)
	s.mr.HSet(inventory.Key(testPartyID), "w10", "0")

	next := current.Clone()
	next.Slots[0] = testutils.FireSword

	out, err := s.repo.Commit(s.ctx, loadout.CommitInput{
		Loadout:        next,
		Expected:       current,
		PartyID:        testPartyID,
		InventoryDelta: map[entities.ItemRef]int{testutils.FireSword: -1},
	})

	s.Error(err)
	s.Nil(out)
	s.True(errors.IsInventoryMismatch(err))
	s.Equal(current, s.stored())
}

func (s *RedisRepositoryTestSuite) TestCommitConflicts() {
	current := entities.NewLoadout(testCharacterID)
	current.Slots = []entities.ItemRef{entities.None(), entities.None()}

	s.Run("loadout created concurrently", func() {
		s.seedLoadout(current)

		_, err := s.repo.Commit(s.ctx, loadout.CommitInput{Loadout: current.Clone()})
		s.True(errors.IsAborted(err))
	})

	s.Run("loadout changed concurrently", func() {
		changed := current.Clone()
		changed.Locked = []int{0}
		s.seedLoadout(changed)

		next := current.Clone()
		next.OrbImageID = 4
		_, err := s.repo.Commit(s.ctx, loadout.CommitInput{Loadout: next, Expected: current})
		s.True(errors.IsAborted(err))
		s.Equal(changed, s.stored())
	})

	s.Run("loadout removed concurrently", func() {
		s.mr.Del(testLoadoutKey)

		_, err := s.repo.Commit(s.ctx, loadout.CommitInput{Loadout: current.Clone(), Expected: current})
		s.True(errors.IsAborted(err))
		s.False(s.mr.Exists(testLoadoutKey))
	})
}

func (s *RedisRepositoryTestSuite) TestCommitValidation() {
	testCases := []struct {
		name  string
		input loadout.CommitInput
	}{
		{name: "nil loadout", input: loadout.CommitInput{}},
		{name: "missing character", input: loadout.CommitInput{Loadout: &entities.Loadout{}}},
		{
			name: "expected for another character",
			input: loadout.CommitInput{
				Loadout:  entities.NewLoadout(testCharacterID),
				Expected: entities.NewLoadout("actor_2"),
			},
		},
		{
			name: "delta without party",
			input: loadout.CommitInput{
				Loadout:        entities.NewLoadout(testCharacterID),
				InventoryDelta: map[entities.ItemRef]int{testutils.FireSword: 1},
			},
		},
		{
			name: "delta on the empty item",
			input: loadout.CommitInput{
				Loadout:        entities.NewLoadout(testCharacterID),
				PartyID:        testPartyID,
				InventoryDelta: map[entities.ItemRef]int{entities.None(): 1},
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.repo.Commit(s.ctx, tc.input)
			s.True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *RedisRepositoryTestSuite) TestDelete() {
	s.seedLoadout(entities.NewLoadout(testCharacterID))

	out, err := s.repo.Delete(s.ctx, loadout.DeleteInput{CharacterID: testCharacterID})
	s.Require().NoError(err)
	s.True(out.Existed)

	out, err = s.repo.Delete(s.ctx, loadout.DeleteInput{CharacterID: testCharacterID})
	s.Require().NoError(err)
	s.False(out.Existed)
}
