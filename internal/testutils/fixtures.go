package testutils

import (
	"github.com/KirkDiggler/rpg-shards/internal/engine"
	"github.com/KirkDiggler/rpg-shards/internal/entities"
	"github.com/KirkDiggler/rpg-shards/internal/repositories/catalog"
)

// Shard ids used across fixtures
const (
	ShardFire  = 1
	ShardIce   = 3
	ShardWind  = 5
	ShardCurse = 666

	AbilityFireIce  = 9
	AbilityIceWind  = 12
	AbilityFireFire = 20

	// MaxSlots is the default slot ceiling for engine fixtures
	MaxSlots = 4

	// ClassMage grants one slot at level 2, two at level 3 and takes one back at level 5
	ClassMage = 1
	// ClassFighter has no slot grants
	ClassFighter = 2

	// MageActor is a catalog actor of ClassMage whose orb starts at MageOrbImage
	MageActor    = "actor_mage"
	MageOrbImage = 2
)

// Catalog items used across fixtures
var (
	FireSword  = entities.Weapon(10)
	FireAxe    = entities.Weapon(11)
	IceBlade   = entities.Weapon(12)
	FrostBow   = entities.Weapon(13)
	WindArmor  = entities.Armor(4)
	CursedRing = entities.Armor(7)
	PlainShirt = entities.Armor(1)
)

// CatalogEntries returns the fixture catalog rows
func CatalogEntries() []*entities.CatalogEntry {
	return []*entities.CatalogEntry{
		{Item: FireSword, ShardID: ShardFire, Name: "Fire Shard", IconIndex: 64, Params: map[int]int{2: 5}},
		{Item: FireAxe, ShardID: ShardFire, Name: "Greater Fire Shard", IconIndex: 65, Params: map[int]int{2: 8}},
		{Item: IceBlade, ShardID: ShardIce, Name: "Ice Shard", IconIndex: 66, Params: map[int]int{3: 4}},
		{Item: FrostBow, ShardID: ShardIce, Name: "Frost Shard", IconIndex: 66, Params: map[int]int{3: 6}},
		{Item: WindArmor, ShardID: ShardWind, Name: "Wind Shard", IconIndex: 67, Params: map[int]int{6: 2}},
		{Item: CursedRing, ShardID: ShardCurse, Name: "Cursed Shard", IconIndex: 68, Params: map[int]int{2: 12, 3: -6}},
		{Item: PlainShirt, Name: "Plain Shirt", IconIndex: 130},
	}
}

// CatalogClasses returns the fixture class table
func CatalogClasses() []*entities.Class {
	return []*entities.Class{
		{ID: ClassMage, Learnings: []entities.ClassLearning{
			{Level: 2, Slots: 1},
			{Level: 3, Slots: 2},
			{Level: 5, Slots: -1},
		}},
		{ID: ClassFighter},
	}
}

// CatalogActors returns the fixture actor defaults
func CatalogActors() []*entities.Actor {
	return []*entities.Actor{
		{ID: MageActor, ClassID: ClassMage, OrbImageID: MageOrbImage},
	}
}

// NewCatalog builds the fixture catalog with items, classes and actors
func NewCatalog() *catalog.Catalog {
	c, err := catalog.FromDocument(&catalog.Document{
		Items:   CatalogEntries(),
		Classes: CatalogClasses(),
		Actors:  CatalogActors(),
	})
	if err != nil {
		panic(err)
	}
	return c
}

// NewRules builds the fixture adjacency rules
func NewRules() *engine.Rules {
	return engine.NewRules([]engine.LinkRule{
		{A: ShardFire, B: ShardIce, Ability: AbilityFireIce},
		{A: ShardWind, B: ShardIce, Ability: AbilityIceWind},
		{A: ShardFire, B: ShardFire, Ability: AbilityFireFire},
	})
}

// NewEngine builds an engine over the fixture catalog with ShardCurse cursed
func NewEngine(maxSlots int) *engine.Engine {
	e, err := engine.New(&engine.Config{
		Settings: engine.Settings{MaxSlots: maxSlots, CursedShards: []int{ShardCurse}},
		Catalog:  NewCatalog(),
	})
	if err != nil {
		panic(err)
	}
	return e
}
