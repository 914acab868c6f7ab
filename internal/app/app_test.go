package app_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-shards/internal/app"
	"github.com/KirkDiggler/rpg-shards/internal/commands"
	"github.com/KirkDiggler/rpg-shards/internal/config"
	"github.com/KirkDiggler/rpg-shards/internal/entities"
	"github.com/KirkDiggler/rpg-shards/internal/errors"
	"github.com/KirkDiggler/rpg-shards/internal/orchestrators/shards"
	"github.com/KirkDiggler/rpg-shards/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-shards/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/rpg-shards/internal/redis"
	"github.com/KirkDiggler/rpg-shards/internal/repositories/inventory"
	"github.com/KirkDiggler/rpg-shards/internal/repositories/party"
	"github.com/KirkDiggler/rpg-shards/internal/testutils"
)

const catalogJSON = `{"items": [
	{"item": "w10", "shard_id": 1, "name": "Fire Shard", "icon_index": 64, "params": {"2": 5}},
	{"item": "w12", "shard_id": 3, "name": "Ice Shard", "icon_index": 65, "params": {"3": 4}},
	{"item": "a7", "shard_id": 666, "name": "Cursed Shard", "icon_index": 66},
	{"item": "a1", "name": "Plain Shirt"}
]}`

const linksText = `# fire and ice
1,3,9 # Learn Fire Ice
not a rule
3 5 12
`

type AppTestSuite struct {
	suite.Suite
	ctx      context.Context
	dir      string
	client   redisclient.Client
	cleanup  func()
	settings *config.Config
}

func TestAppSuite(t *testing.T) {
	suite.Run(t, new(AppTestSuite))
}

func (s *AppTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.dir = s.T().TempDir()
	s.client, s.cleanup = testutils.CreateTestRedisClient(s.T())

	s.settings = &config.Config{
		GRPCPort:          50051,
		RedisAddress:      "miniredis",
		LogLevel:          "info",
		MaxSlots:          4,
		CursedShards:      []int{666},
		UseLinks:          true,
		LinksFile:         s.writeFile("links.txt", linksText),
		CatalogFile:       s.writeFile("catalog.json", catalogJSON),
		DefaultPartyID:    "party_1",
		MaxCommitAttempts: 3,
	}
}

func (s *AppTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *AppTestSuite) writeFile(name, content string) string {
	path := filepath.Join(s.dir, name)
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o600))
	return path
}

func (s *AppTestSuite) newApp(bus events.EventBus) *app.App {
	a, err := app.New(&app.Config{
		Settings:    s.settings,
		Redis:       s.client,
		EventBus:    bus,
		IDGenerator: idgen.NewSequential("evt"),
		Clock:       clock.NewFixed(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)),
	})
	s.Require().NoError(err)
	return a
}

func (s *AppTestSuite) TestNewValidatesConfig() {
	_, err := app.New(&app.Config{})
	s.True(errors.IsInvalidArgument(err))

	s.settings.CatalogFile = filepath.Join(s.dir, "missing.json")
	_, err = app.New(&app.Config{Settings: s.settings, Redis: s.client})
	s.Error(err)
}

func (s *AppTestSuite) TestRulesGateOpensAfterLoad() {
	a := s.newApp(nil)

	_, err := a.Rules.Rules()
	s.True(errors.IsUnavailable(err))

	s.Require().NoError(a.LoadRules(s.ctx))
	rules, err := a.Rules.Rules()
	s.Require().NoError(err)
	s.Equal(2, rules.Len())
	ability, ok := rules.Lookup(3, 1)
	s.True(ok)
	s.Equal(9, ability)
}

func (s *AppTestSuite) TestLoadRulesWithLinksDisabled() {
	s.settings.UseLinks = false
	s.settings.LinksFile = ""
	a := s.newApp(nil)

	s.Require().NoError(a.LoadRules(s.ctx))
	rules, err := a.Rules.Rules()
	s.Require().NoError(err)
	s.Equal(0, rules.Len())
}

func (s *AppTestSuite) TestLoadRulesMissingFile() {
	s.settings.LinksFile = filepath.Join(s.dir, "nope.txt")
	a := s.newApp(nil)

	err := a.LoadRules(s.ctx)
	s.True(errors.IsNotFound(err))
	_, err = a.Rules.Rules()
	s.True(errors.IsUnavailable(err))
}

func (s *AppTestSuite) TestCommandScriptEndToEnd() {
	bus := events.NewBus()
	var added []int
	bus.SubscribeFunc(shards.EventAbilitiesChanged, 10, func(_ context.Context, e events.Event) error {
		if v, ok := e.Context().Get(shards.EventKeyAdded); ok {
			ids, _ := v.([]int)
			added = append(added, ids...)
		}
		return nil
	})

	a := s.newApp(bus)
	s.Require().NoError(a.LoadRules(s.ctx))

	_, err := a.PartyRepo.Save(s.ctx, party.SaveInput{
		Party: &entities.Party{ID: "party_1", Members: []string{"actor_1", "actor_2"}},
	})
	s.Require().NoError(err)
	for _, item := range []entities.ItemRef{entities.Weapon(10), entities.Weapon(12)} {
		_, err := a.InventoryRepo.Give(s.ctx, inventory.GiveInput{PartyID: "party_1", Item: item, Quantity: 1})
		s.Require().NoError(err)
	}

	dispatcher, err := a.Dispatcher(commands.MapVariables{})
	s.Require().NoError(err)

	script := strings.Join([]string{
		"MSHARDS SLOTS 0 3",
		"MSHARDS CHANGE 0 1 w10",
		"MSHARDS CHANGE 0 2 w12",
		"MSHARDS LOCK 0 3",
	}, "\n")
	results, err := dispatcher.ExecuteScript(s.ctx, strings.NewReader(script))
	s.Require().NoError(err)
	s.Len(results, 4)

	out, err := a.Service.GetLoadout(s.ctx, &shards.GetLoadoutInput{CharacterID: "actor_1"})
	s.Require().NoError(err)
	s.Equal(3, out.Loadout.SlotCount)
	s.Equal(2, out.Loadout.EquippedCount)
	s.Equal([]int{9}, out.Loadout.Abilities)
	s.True(out.Loadout.Slots[2].Locked)
	s.Equal([]int{9}, added)

	inv, err := a.InventoryRepo.Get(s.ctx, inventory.GetInput{PartyID: "party_1"})
	s.Require().NoError(err)
	s.Empty(inv.Counts)
}
