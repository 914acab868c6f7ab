// Package app wires the shard service components from configuration.
package app

import (
	"context"
	"log/slog"
	"os"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-shards/internal/commands"
	"github.com/KirkDiggler/rpg-shards/internal/config"
	"github.com/KirkDiggler/rpg-shards/internal/engine"
	"github.com/KirkDiggler/rpg-shards/internal/errors"
	"github.com/KirkDiggler/rpg-shards/internal/handlers/shards/v1alpha1"
	"github.com/KirkDiggler/rpg-shards/internal/orchestrators/shards"
	"github.com/KirkDiggler/rpg-shards/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-shards/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/rpg-shards/internal/redis"
	"github.com/KirkDiggler/rpg-shards/internal/repositories/catalog"
	"github.com/KirkDiggler/rpg-shards/internal/repositories/inventory"
	"github.com/KirkDiggler/rpg-shards/internal/repositories/loadout"
	"github.com/KirkDiggler/rpg-shards/internal/repositories/party"
)

// EventIDPrefix prefixes ability change event ids
const EventIDPrefix = "evt"

// Config holds what the app is built from
type Config struct {
	Settings *config.Config
	Redis    redisclient.Client

	// Optional; defaults are a new bus, uuid ids and the wall clock
	EventBus    events.EventBus
	IDGenerator idgen.Generator
	Clock       clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.Settings == nil {
		vb.RequiredField("Settings")
	}
	if c.Redis == nil {
		vb.RequiredField("Redis")
	}
	if err := vb.Build(); err != nil {
		return err
	}

	return c.Settings.Validate()
}

// App is the assembled service
type App struct {
	Service       shards.Service
	Handler       *v1alpha1.Handler
	Rules         *engine.RulesGate
	EventBus      events.EventBus
	Catalog       *catalog.Catalog
	PartyRepo     party.Repository
	InventoryRepo inventory.Repository
	LoadoutRepo   loadout.Repository

	settings *config.Config
}

// New builds every component. Link rules are not loaded; call LoadRules.
func New(cfg *Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	settings := cfg.Settings

	items, err := catalog.LoadFile(settings.CatalogFile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load item catalog")
	}

	shardEngine, err := engine.New(&engine.Config{
		Settings: settings.EngineSettings(),
		Catalog:  items,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create shard engine")
	}

	loadoutRepo, err := loadout.NewRedis(&loadout.Config{Client: cfg.Redis})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create loadout repository")
	}
	inventoryRepo, err := inventory.NewRedis(&inventory.Config{Client: cfg.Redis})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create inventory repository")
	}
	partyRepo, err := party.NewRedis(&party.Config{Client: cfg.Redis})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create party repository")
	}

	bus := cfg.EventBus
	if bus == nil {
		bus = events.NewBus()
	}
	ids := cfg.IDGenerator
	if ids == nil {
		ids = idgen.NewUUID(EventIDPrefix)
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	rules := engine.NewRulesGate()

	svc, err := shards.New(&shards.Config{
		Engine:         shardEngine,
		Catalog:        items,
		LoadoutRepo:    loadoutRepo,
		InventoryRepo:  inventoryRepo,
		PartyRepo:      partyRepo,
		Rules:          rules,
		EventBus:       bus,
		IDGenerator:    ids,
		Clock:          clk,
		DefaultPartyID: settings.DefaultPartyID,
		UseLinks:       settings.UseLinks,
		MaxAttempts:    settings.MaxCommitAttempts,
		LevelUpMessage: settings.LevelUpMessage,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create shard service")
	}

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{ShardService: svc})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create shard handler")
	}

	bus.SubscribeFunc(shards.EventAbilitiesChanged, 0, logAbilityChange)

	return &App{
		Service:       svc,
		Handler:       handler,
		Rules:         rules,
		EventBus:      bus,
		Catalog:       items,
		PartyRepo:     partyRepo,
		InventoryRepo: inventoryRepo,
		LoadoutRepo:   loadoutRepo,
		settings:      settings,
	}, nil
}

// LoadRules reads the link rules file and opens the rules gate. With links
// disabled the gate opens with no rules.
func (a *App) LoadRules(ctx context.Context) error {
	if !a.settings.UseLinks {
		a.Rules.Set(nil)
		return nil
	}

	f, err := os.Open(a.settings.LinksFile) // #nosec G304 -- path comes from operator configuration
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeNotFound, "failed to open link rules file")
	}
	defer func() {
		_ = f.Close()
	}()

	rules, err := engine.ParseRules(f)
	if err != nil {
		return err
	}
	a.Rules.Set(rules)

	slog.InfoContext(ctx, "shard link rules loaded",
		"file", a.settings.LinksFile,
		"pairs", rules.Len())
	return nil
}

// Dispatcher builds a command dispatcher over the service
func (a *App) Dispatcher(vars commands.Variables) (*commands.Dispatcher, error) {
	return commands.New(&commands.Config{
		Service:   a.Service,
		PartyRepo: a.PartyRepo,
		Variables: vars,
		PartyID:   a.settings.DefaultPartyID,
	})
}

func logAbilityChange(ctx context.Context, e events.Event) error {
	added, _ := e.Context().Get(shards.EventKeyAdded)
	removed, _ := e.Context().Get(shards.EventKeyRemoved)
	eventID, _ := e.Context().Get(shards.EventKeyID)

	slog.InfoContext(ctx, "shard abilities changed",
		"event_id", eventID,
		"character_id", e.Source().GetID(),
		"added", added,
		"removed", removed)
	return nil
}
