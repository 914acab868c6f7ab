package inventory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-shards/internal/entities"
	"github.com/KirkDiggler/rpg-shards/internal/errors"
	"github.com/KirkDiggler/rpg-shards/internal/repositories/inventory"
	"github.com/KirkDiggler/rpg-shards/internal/testutils"
)

const testPartyID = "party_1"

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	cleanup func()
	repo    inventory.Repository
	ctx     context.Context
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, mr, cleanup := testutils.CreateTestRedis(s.T())
	s.mr = mr
	s.cleanup = cleanup

	repo, err := inventory.NewRedis(&inventory.Config{Client: client})
	s.Require().NoError(err)
	s.repo = repo
	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisRepositoryTestSuite) TestNewRedisRequiresClient() {
	repo, err := inventory.NewRedis(&inventory.Config{})
	s.Error(err)
	s.Nil(repo)
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisRepositoryTestSuite) TestKey() {
	s.Equal("inventory:party:party_1", inventory.Key(testPartyID))
}

func (s *RedisRepositoryTestSuite) TestGet() {
	s.Run("missing inventory is empty", func() {
		out, err := s.repo.Get(s.ctx, inventory.GetInput{PartyID: testPartyID})
		s.Require().NoError(err)
		s.Empty(out.Counts)
	})

	s.Run("skips malformed and empty fields", func() {
		key := inventory.Key(testPartyID)
		s.mr.HSet(key, "w10", "2")
		s.mr.HSet(key, "a4", "1")
		s.mr.HSet(key, "a5", "0")
		s.mr.HSet(key, "bogus", "3")
		s.mr.HSet(key, "w11", "many")

		out, err := s.repo.Get(s.ctx, inventory.GetInput{PartyID: testPartyID})
		s.Require().NoError(err)
		s.Equal(map[entities.ItemRef]int{
			entities.Weapon(10): 2,
			entities.Armor(4):   1,
		}, out.Counts)
	})

	s.Run("requires party id", func() {
		_, err := s.repo.Get(s.ctx, inventory.GetInput{})
		s.True(errors.IsInvalidArgument(err))
	})
}

func (s *RedisRepositoryTestSuite) TestGiveAndTake() {
	item := entities.Weapon(10)

	give, err := s.repo.Give(s.ctx, inventory.GiveInput{PartyID: testPartyID, Item: item, Quantity: 3})
	s.Require().NoError(err)
	s.Equal(3, give.Count)

	take, err := s.repo.Take(s.ctx, inventory.TakeInput{PartyID: testPartyID, Item: item, Quantity: 2})
	s.Require().NoError(err)
	s.Equal(1, take.Count)
	s.Equal("1", s.mr.HGet(inventory.Key(testPartyID), "w10"))

	take, err = s.repo.Take(s.ctx, inventory.TakeInput{PartyID: testPartyID, Item: item, Quantity: 1})
	s.Require().NoError(err)
	s.Equal(0, take.Count)
	s.False(s.mr.Exists(inventory.Key(testPartyID)), "emptied fields are removed")
}

func (s *RedisRepositoryTestSuite) TestTakeInsufficient() {
	item := entities.Armor(4)
	s.mr.HSet(inventory.Key(testPartyID), item.String(), "1")

	out, err := s.repo.Take(s.ctx, inventory.TakeInput{PartyID: testPartyID, Item: item, Quantity: 2})

	s.Error(err)
	s.Nil(out)
	s.True(errors.IsInventoryMismatch(err))
	s.Equal("1", s.mr.HGet(inventory.Key(testPartyID), item.String()))
}

func (s *RedisRepositoryTestSuite) TestValidation() {
	testCases := []struct {
		name  string
		input inventory.GiveInput
	}{
		{name: "missing party", input: inventory.GiveInput{Item: entities.Weapon(1), Quantity: 1}},
		{name: "missing item", input: inventory.GiveInput{PartyID: testPartyID, Quantity: 1}},
		{name: "zero quantity", input: inventory.GiveInput{PartyID: testPartyID, Item: entities.Weapon(1)}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.repo.Give(s.ctx, tc.input)
			s.True(errors.IsInvalidArgument(err))

			_, err = s.repo.Take(s.ctx, inventory.TakeInput(tc.input))
			s.True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *RedisRepositoryTestSuite) TestConcurrentTakesNeverOverdraw() {
	item := entities.Weapon(10)
	s.mr.HSet(inventory.Key(testPartyID), item.String(), "5")

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.repo.Take(s.ctx, inventory.TakeInput{PartyID: testPartyID, Item: item, Quantity: 1})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	s.LessOrEqual(succeeded, 5)
	out, err := s.repo.Get(s.ctx, inventory.GetInput{PartyID: testPartyID})
	s.Require().NoError(err)
	s.Equal(5-succeeded, out.Counts[item])
}

func TestParseCounts(t *testing.T) {
	counts := inventory.ParseCounts(map[string]string{"W3": "4", "none": "1", "a2": "-1"})
	assert.Equal(t, map[entities.ItemRef]int{entities.Weapon(3): 4}, counts)
}
