package app_test

import (
	"strings"

	"github.com/KirkDiggler/rpg-shards/internal/app"
	"github.com/KirkDiggler/rpg-shards/internal/entities"
	"github.com/KirkDiggler/rpg-shards/internal/errors"
	"github.com/KirkDiggler/rpg-shards/internal/orchestrators/shards"
	"github.com/KirkDiggler/rpg-shards/internal/repositories/inventory"
	"github.com/KirkDiggler/rpg-shards/internal/repositories/loadout"
	"github.com/KirkDiggler/rpg-shards/internal/repositories/party"
)

const seedJSON = `{"parties": [
	{"id": "party_1", "members": ["actor_1", "actor_2"], "inventory": {"w10": 2, "W12": 1}}
]}`

func (s *AppTestSuite) counts(a *app.App, partyID string) map[entities.ItemRef]int {
	out, err := a.InventoryRepo.Get(s.ctx, inventory.GetInput{PartyID: partyID})
	s.Require().NoError(err)
	return out.Counts
}

func (s *AppTestSuite) TestLoadSeed() {
	doc, err := app.LoadSeed(strings.NewReader(seedJSON))
	s.Require().NoError(err)
	s.Require().Len(doc.Parties, 1)
	s.Equal([]string{"actor_1", "actor_2"}, doc.Parties[0].Members)
	s.Equal(map[entities.ItemRef]int{entities.Weapon(10): 2, entities.Weapon(12): 1}, doc.Parties[0].Inventory)
}

func (s *AppTestSuite) TestLoadSeedRejectsBadParties() {
	testCases := []struct {
		name string
		doc  string
	}{
		{name: "malformed", doc: `{"parties": [`},
		{name: "missing id", doc: `{"parties": [{"members": ["actor_1"]}]}`},
		{name: "no members", doc: `{"parties": [{"id": "party_1"}]}`},
		{name: "empty member", doc: `{"parties": [{"id": "party_1", "members": [""]}]}`},
		{name: "bad item", doc: `{"parties": [{"id": "party_1", "members": ["a"], "inventory": {"x1": 1}}]}`},
		{name: "negative count", doc: `{"parties": [{"id": "party_1", "members": ["a"], "inventory": {"w1": -1}}]}`},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := app.LoadSeed(strings.NewReader(tc.doc))
			s.Error(err)
		})
	}
}

// Seeding twice converges on the seeded counts instead of adding to them
func (s *AppTestSuite) TestSeedPartySetsCounts() {
	a := s.newApp(nil)
	doc, err := app.LoadSeed(strings.NewReader(seedJSON))
	s.Require().NoError(err)

	first, err := a.SeedParty(s.ctx, doc.Parties[0])
	s.Require().NoError(err)
	s.Equal(map[entities.ItemRef]int{entities.Weapon(10): 2, entities.Weapon(12): 1}, first.Given)
	s.Empty(first.Taken)

	_, err = a.InventoryRepo.Give(s.ctx, inventory.GiveInput{PartyID: "party_1", Item: entities.Weapon(10), Quantity: 3})
	s.Require().NoError(err)

	second, err := a.SeedParty(s.ctx, doc.Parties[0])
	s.Require().NoError(err)
	s.Empty(second.Given)
	s.Equal(map[entities.ItemRef]int{entities.Weapon(10): 3}, second.Taken)

	s.Equal(map[entities.ItemRef]int{entities.Weapon(10): 2, entities.Weapon(12): 1}, s.counts(a, "party_1"))

	stored, err := a.PartyRepo.Get(s.ctx, party.GetInput{ID: "party_1"})
	s.Require().NoError(err)
	s.Equal("actor_1", stored.Party.Leader())
}

func (s *AppTestSuite) TestSeedPartyZeroCountClearsItem() {
	a := s.newApp(nil)
	_, err := a.InventoryRepo.Give(s.ctx, inventory.GiveInput{PartyID: "party_1", Item: entities.Armor(7), Quantity: 2})
	s.Require().NoError(err)

	_, err = a.SeedParty(s.ctx, &app.PartySeed{
		ID:        "party_1",
		Members:   []string{"actor_1"},
		Inventory: map[entities.ItemRef]int{entities.Armor(7): 0},
	})
	s.Require().NoError(err)
	s.Empty(s.counts(a, "party_1"))
}

func (s *AppTestSuite) TestResetParty() {
	a := s.newApp(nil)
	s.Require().NoError(a.LoadRules(s.ctx))

	_, err := a.SeedParty(s.ctx, &app.PartySeed{
		ID:        "party_1",
		Members:   []string{"actor_1", "actor_2"},
		Inventory: map[entities.ItemRef]int{entities.Weapon(10): 2, entities.Weapon(12): 1},
	})
	s.Require().NoError(err)

	_, err = a.Service.ResizeSlots(s.ctx, &shards.ResizeSlotsInput{CharacterID: "actor_1", Delta: 1})
	s.Require().NoError(err)
	_, err = a.Service.EquipShard(s.ctx, &shards.EquipShardInput{CharacterID: "actor_1", Slot: 0, Item: entities.Weapon(10)})
	s.Require().NoError(err)

	result, err := a.ResetParty(s.ctx, "party_1")
	s.Require().NoError(err)
	s.Equal(1, result.LoadoutsPurged)
	s.Equal(2, result.ItemsTaken)

	_, err = a.LoadoutRepo.Get(s.ctx, loadout.GetInput{CharacterID: "actor_1"})
	s.True(errors.IsNotFound(err))
	_, err = a.PartyRepo.Get(s.ctx, party.GetInput{ID: "party_1"})
	s.True(errors.IsNotFound(err))
	s.Empty(s.counts(a, "party_1"))

	_, err = a.ResetParty(s.ctx, "party_1")
	s.True(errors.IsNotFound(err))
}
