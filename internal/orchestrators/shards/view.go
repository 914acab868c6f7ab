package shards

import (
	"github.com/KirkDiggler/rpg-shards/internal/engine"
	"github.com/KirkDiggler/rpg-shards/internal/entities"
)

func (o *orchestrator) view(l *entities.Loadout, rules *engine.Rules) *LoadoutView {
	links := o.resolve(l, rules)

	linked := make(map[int]bool, len(links.Linked))
	for _, slot := range links.Linked {
		linked[slot] = true
	}

	slots := make([]SlotView, len(l.Slots))
	for i, item := range l.Slots {
		slot := SlotView{
			Index:  i,
			Item:   item,
			Locked: l.IsLocked(i),
			Linked: linked[i],
		}
		if entry, ok := o.catalog.Lookup(item); ok {
			slot.ShardID = entry.ShardID
			slot.Name = entry.Name
			slot.IconIndex = entry.IconIndex
		}
		slots[i] = slot
	}

	return &LoadoutView{
		CharacterID:   l.CharacterID,
		Slots:         slots,
		SlotCount:     l.SlotCount(),
		EquippedCount: l.EquippedCount(),
		MaxSlots:      o.engine.MaxSlots(),
		OrbImageID:    l.OrbImageID,
		Abilities:     links.Abilities,
		Stats:         o.engine.Stats(l),
	}
}
