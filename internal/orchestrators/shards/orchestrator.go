// Package shards implements the shard loadout orchestrator: it loads a character's
// loadout and the party inventory, applies the engine, commits the result and
// announces ability changes.
package shards

//go:generate mockgen -destination=mock/mock_service.go -package=shardsmock github.com/KirkDiggler/rpg-shards/internal/orchestrators/shards Service

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-shards/internal/engine"
	"github.com/KirkDiggler/rpg-shards/internal/entities"
	"github.com/KirkDiggler/rpg-shards/internal/errors"
	"github.com/KirkDiggler/rpg-shards/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-shards/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-shards/internal/repositories/inventory"
	"github.com/KirkDiggler/rpg-shards/internal/repositories/loadout"
	"github.com/KirkDiggler/rpg-shards/internal/repositories/party"
)

// DefaultMaxAttempts bounds how often a conflicting commit is retried
const DefaultMaxAttempts = 3

// Service defines the shard loadout operations
type Service interface {
	GetLoadout(ctx context.Context, input *GetLoadoutInput) (*GetLoadoutOutput, error)
	ResizeSlots(ctx context.Context, input *ResizeSlotsInput) (*ResizeSlotsOutput, error)
	SetSlotLock(ctx context.Context, input *SetSlotLockInput) (*SetSlotLockOutput, error)
	EquipShard(ctx context.Context, input *EquipShardInput) (*EquipShardOutput, error)
	UnequipShard(ctx context.Context, input *UnequipShardInput) (*UnequipShardOutput, error)
	RemoveShard(ctx context.Context, input *RemoveShardInput) (*RemoveShardOutput, error)
	SetOrbImage(ctx context.Context, input *SetOrbImageInput) (*SetOrbImageOutput, error)
	PreviewEquip(ctx context.Context, input *PreviewEquipInput) (*PreviewEquipOutput, error)
	LevelUp(ctx context.Context, input *LevelUpInput) (*LevelUpOutput, error)

	// Queries
	HasShard(ctx context.Context, input *HasShardInput) (*HasShardOutput, error)
	PartyHasShard(ctx context.Context, input *PartyHasShardInput) (*PartyHasShardOutput, error)
	ListShardItems(ctx context.Context, input *ListShardItemsInput) (*ListShardItemsOutput, error)
}

// Engine is the shard rule surface the orchestrator drives
type Engine interface {
	engine.LoadoutMutator
	engine.LoadoutQuery
	MaxSlots() int
}

// Catalog classifies items, lists the shards that exist and holds the class
// and actor tables
type Catalog interface {
	engine.Catalog
	Shards() []*entities.CatalogEntry
	Class(id int) (*entities.Class, bool)
	Actor(id string) (*entities.Actor, bool)
}

// Config holds the dependencies for the shard orchestrator
type Config struct {
	Engine        Engine
	Catalog       Catalog
	LoadoutRepo   loadout.Repository
	InventoryRepo inventory.Repository
	PartyRepo     party.Repository
	Rules         *engine.RulesGate
	EventBus      events.EventBus
	IDGenerator   idgen.Generator
	Clock         clock.Clock

	// DefaultPartyID is used when an input leaves PartyID empty
	DefaultPartyID string
	// UseLinks enables adjacency abilities; when false Rules may be nil
	UseLinks bool
	// MaxAttempts bounds commit retries; 0 means DefaultMaxAttempts
	MaxAttempts int
	// LevelUpMessage announces slots gained by LevelUp; "#" becomes the count
	LevelUpMessage string
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.LoadoutRepo == nil {
		vb.RequiredField("LoadoutRepo")
	}
	if c.InventoryRepo == nil {
		vb.RequiredField("InventoryRepo")
	}
	if c.PartyRepo == nil {
		vb.RequiredField("PartyRepo")
	}
	if c.UseLinks && c.Rules == nil {
		vb.Field("Rules", "is required when UseLinks is set")
	}
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	errors.ValidateMin("MaxAttempts", c.MaxAttempts, 0, vb)

	return vb.Build()
}

type orchestrator struct {
	engine         Engine
	catalog        Catalog
	loadoutRepo    loadout.Repository
	inventoryRepo  inventory.Repository
	partyRepo      party.Repository
	rules          *engine.RulesGate
	eventBus       events.EventBus
	idGen          idgen.Generator
	clock          clock.Clock
	defaultPartyID string
	useLinks       bool
	maxAttempts    int
	levelUpMessage string
	locks          *keyedMutex
}

// New creates a new shard orchestrator with the provided dependencies
func New(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	maxAttempts := cfg.MaxAttempts
	if maxAttempts == 0 {
		maxAttempts = DefaultMaxAttempts
	}

	return &orchestrator{
		engine:         cfg.Engine,
		catalog:        cfg.Catalog,
		loadoutRepo:    cfg.LoadoutRepo,
		inventoryRepo:  cfg.InventoryRepo,
		partyRepo:      cfg.PartyRepo,
		rules:          cfg.Rules,
		eventBus:       cfg.EventBus,
		idGen:          cfg.IDGenerator,
		clock:          cfg.Clock,
		defaultPartyID: cfg.DefaultPartyID,
		useLinks:       cfg.UseLinks,
		maxAttempts:    maxAttempts,
		levelUpMessage: cfg.LevelUpMessage,
		locks:          newKeyedMutex(),
	}, nil
}

// GetLoadout returns a character's loadout with its linked slots, abilities and stats.
// A character without a stored loadout has zero slots.
func (o *orchestrator) GetLoadout(ctx context.Context, input *GetLoadoutInput) (*GetLoadoutOutput, error) {
	if input == nil || input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	rules, err := o.linkRules()
	if err != nil {
		return nil, err
	}

	l, _, err := o.loadLoadout(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	return &GetLoadoutOutput{Loadout: o.view(l, rules)}, nil
}

// ResizeSlots grows or shrinks a loadout, returning evicted shards to the party
func (o *orchestrator) ResizeSlots(ctx context.Context, input *ResizeSlotsInput) (*ResizeSlotsOutput, error) {
	if input == nil || input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	var result engine.ResizeResult
	m, err := o.mutate(ctx, input.CharacterID, o.partyFor(input.PartyID), true,
		func(l *entities.Loadout, inv engine.Inventory) error {
			result = o.engine.Resize(l, inv, input.Delta)
			return nil
		})
	if err != nil {
		return nil, err
	}

	if result.Applied != input.Delta {
		slog.InfoContext(ctx, "slot resize clamped",
			"character_id", input.CharacterID,
			"requested", input.Delta,
			"applied", result.Applied,
			"slot_count", result.SlotCount)
	}

	return &ResizeSlotsOutput{
		MutationOutput: m.output(),
		Applied:        result.Applied,
		Evicted:        result.Evicted,
	}, nil
}

// SetSlotLock locks or unlocks one slot, or every slot when Slot is nil
func (o *orchestrator) SetSlotLock(ctx context.Context, input *SetSlotLockInput) (*SetSlotLockOutput, error) {
	if input == nil || input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	m, err := o.mutate(ctx, input.CharacterID, "", false, func(l *entities.Loadout, _ engine.Inventory) error {
		switch {
		case input.Slot == nil && input.Locked:
			o.engine.LockAll(l)
		case input.Slot == nil:
			o.engine.UnlockAll(l)
		case input.Locked:
			o.engine.Lock(l, *input.Slot)
		default:
			o.engine.Unlock(l, *input.Slot)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &SetSlotLockOutput{MutationOutput: m.output()}, nil
}

// EquipShard places a shard into a slot, exchanging it with the party inventory
func (o *orchestrator) EquipShard(ctx context.Context, input *EquipShardInput) (*EquipShardOutput, error) {
	if input == nil || input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	var replaced entities.ItemRef
	m, err := o.mutate(ctx, input.CharacterID, o.partyFor(input.PartyID), true,
		func(l *entities.Loadout, inv engine.Inventory) error {
			if l.InRange(input.Slot) {
				replaced = l.Slots[input.Slot]
			}
			return o.engine.Equip(l, inv, input.Slot, input.Item, true)
		})
	if err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "shard equipped",
		"character_id", input.CharacterID,
		"slot", input.Slot,
		"item", input.Item.String(),
		"replaced", replaced.String())

	return &EquipShardOutput{MutationOutput: m.output(), Replaced: replaced}, nil
}

// UnequipShard clears a slot, returning its shard to the party inventory
func (o *orchestrator) UnequipShard(ctx context.Context, input *UnequipShardInput) (*UnequipShardOutput, error) {
	if input == nil || input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	var item entities.ItemRef
	m, err := o.mutate(ctx, input.CharacterID, o.partyFor(input.PartyID), true,
		func(l *entities.Loadout, inv engine.Inventory) error {
			if l.InRange(input.Slot) {
				item = l.Slots[input.Slot]
			}
			return o.engine.Unequip(l, inv, input.Slot, true)
		})
	if err != nil {
		return nil, err
	}

	return &UnequipShardOutput{MutationOutput: m.output(), Item: item}, nil
}

// RemoveShard clears the first slot holding the target shard. No match is not an error.
func (o *orchestrator) RemoveShard(ctx context.Context, input *RemoveShardInput) (*RemoveShardOutput, error) {
	if input == nil || input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}
	if input.Target.Item.IsNone() && input.Target.ShardID <= 0 {
		return nil, errors.InvalidArgument("a shard id or item is required")
	}

	var result engine.RemoveResult
	m, err := o.mutate(ctx, input.CharacterID, o.partyFor(input.PartyID), true,
		func(l *entities.Loadout, inv engine.Inventory) error {
			result = o.engine.RemoveByIdentity(l, inv, input.Target, input.Unlock)
			return nil
		})
	if err != nil {
		return nil, err
	}

	return &RemoveShardOutput{MutationOutput: m.output(), Result: result}, nil
}

// SetOrbImage selects the orb artwork shown behind the slots
func (o *orchestrator) SetOrbImage(ctx context.Context, input *SetOrbImageInput) (*SetOrbImageOutput, error) {
	if input == nil || input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}
	if input.ImageID < 0 {
		return nil, errors.InvalidArgumentf("orb image id must not be negative, got %d", input.ImageID)
	}

	m, err := o.mutate(ctx, input.CharacterID, "", false, func(l *entities.Loadout, _ engine.Inventory) error {
		l.OrbImageID = input.ImageID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &SetOrbImageOutput{MutationOutput: m.output()}, nil
}

// PreviewEquip shows what equipping an item would change without storing anything
func (o *orchestrator) PreviewEquip(ctx context.Context, input *PreviewEquipInput) (*PreviewEquipOutput, error) {
	if input == nil || input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	rules, err := o.linkRules()
	if err != nil {
		return nil, err
	}

	current, _, err := o.loadLoadout(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	preview, err := o.engine.Preview(current, input.Slot, input.Item)
	if err != nil {
		return nil, err
	}

	before := o.view(current, rules)
	after := o.view(preview, rules)

	return &PreviewEquipOutput{
		Current:      before,
		Preview:      after,
		StatsDelta:   diffStats(before.Stats, after.Stats),
		AbilityDelta: engine.DiffAbilities(before.Abilities, after.Abilities),
	}, nil
}

// LevelUp applies the class slot grants for every level in (FromLevel, ToLevel],
// one clamped resize per level in order
func (o *orchestrator) LevelUp(ctx context.Context, input *LevelUpInput) (*LevelUpOutput, error) {
	if input == nil || input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}
	if input.FromLevel < 1 || input.ToLevel < input.FromLevel {
		return nil, errors.InvalidArgumentf("invalid level range %d to %d", input.FromLevel, input.ToLevel)
	}

	class, err := o.classFor(input.CharacterID, input.ClassID)
	if err != nil {
		return nil, err
	}

	grants := class.SlotGrants(input.FromLevel, input.ToLevel)
	if len(grants) == 0 {
		rules, err := o.linkRules()
		if err != nil {
			return nil, err
		}
		l, _, err := o.loadLoadout(ctx, input.CharacterID)
		if err != nil {
			return nil, err
		}
		view := o.view(l, rules)
		return &LevelUpOutput{MutationOutput: MutationOutput{Loadout: view}}, nil
	}

	out := &LevelUpOutput{}
	for _, n := range grants {
		out.Requested += n
	}

	m, err := o.mutate(ctx, input.CharacterID, o.partyFor(input.PartyID), true,
		func(l *entities.Loadout, inv engine.Inventory) error {
			out.Applied = 0
			out.Evicted = nil
			for _, n := range grants {
				result := o.engine.Resize(l, inv, n)
				out.Applied += result.Applied
				out.Evicted = append(out.Evicted, result.Evicted...)
			}
			return nil
		})
	if err != nil {
		return nil, err
	}

	out.MutationOutput = m.output()
	if out.Applied > 0 && o.levelUpMessage != "" {
		out.Message = strings.Replace(o.levelUpMessage, "#", strconv.Itoa(out.Applied), 1)
	}

	slog.InfoContext(ctx, "level up slots granted",
		"character_id", input.CharacterID,
		"class_id", class.ID,
		"from_level", input.FromLevel,
		"to_level", input.ToLevel,
		"requested", out.Requested,
		"applied", out.Applied)

	return out, nil
}

// classFor resolves an explicit class id, falling back to the actor's catalog class
func (o *orchestrator) classFor(characterID string, classID int) (*entities.Class, error) {
	if classID == 0 {
		actor, ok := o.catalog.Actor(characterID)
		if !ok || actor.ClassID == 0 {
			return nil, errors.InvalidArgumentf("character %s has no catalog class, a class id is required", characterID)
		}
		classID = actor.ClassID
	}

	class, ok := o.catalog.Class(classID)
	if !ok {
		return nil, errors.NotFoundf("class %d not found", classID)
	}
	return class, nil
}

// HasShard reports whether a character holds the target shard
func (o *orchestrator) HasShard(ctx context.Context, input *HasShardInput) (*HasShardOutput, error) {
	if input == nil || input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	l, _, err := o.loadLoadout(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	return &HasShardOutput{Has: o.engine.Matches(l, input.Target)}, nil
}

// PartyHasShard scans the roster in order and stops at the first member holding the shard
func (o *orchestrator) PartyHasShard(ctx context.Context, input *PartyHasShardInput) (*PartyHasShardOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	p, err := o.loadParty(ctx, o.partyFor(input.PartyID))
	if err != nil {
		return nil, err
	}

	for _, member := range p.Members {
		l, _, err := o.loadLoadout(ctx, member)
		if err != nil {
			return nil, err
		}
		if o.engine.Matches(l, input.Target) {
			return &PartyHasShardOutput{Has: true, CharacterID: member}, nil
		}
	}

	return &PartyHasShardOutput{}, nil
}

// ListShardItems returns the catalog shards the party currently holds
func (o *orchestrator) ListShardItems(ctx context.Context, input *ListShardItemsInput) (*ListShardItemsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	partyID := o.partyFor(input.PartyID)
	if _, err := o.loadParty(ctx, partyID); err != nil {
		return nil, err
	}

	inv, err := o.inventoryRepo.Get(ctx, inventory.GetInput{PartyID: partyID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get party inventory")
	}

	items := []ShardItem{}
	for _, entry := range o.catalog.Shards() {
		if n := inv.Counts[entry.Item]; n > 0 {
			items = append(items, ShardItem{Entry: entry, Count: n})
		}
	}

	return &ListShardItemsOutput{Items: items}, nil
}

// partyFor falls back to the default party
func (o *orchestrator) partyFor(partyID string) string {
	if partyID == "" {
		return o.defaultPartyID
	}
	return partyID
}

func diffStats(before, after map[int]int) map[int]int {
	delta := make(map[int]int)
	for stat, v := range after {
		if d := v - before[stat]; d != 0 {
			delta[stat] = d
		}
	}
	for stat, v := range before {
		if _, ok := after[stat]; !ok && v != 0 {
			delta[stat] = -v
		}
	}
	return delta
}
