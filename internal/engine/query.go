package engine

import (
	"github.com/KirkDiggler/rpg-shards/internal/entities"
)

// HasShard reports whether any occupied slot holds an item of the given shard id
func (e *Engine) HasShard(l *entities.Loadout, shardID int) bool {
	if l == nil || shardID <= 0 {
		return false
	}
	for _, item := range l.Slots {
		if !item.IsNone() && e.ShardID(item) == shardID {
			return true
		}
	}
	return false
}

// HasItem reports whether any slot holds exactly item, ignoring shard grouping
func (e *Engine) HasItem(l *entities.Loadout, item entities.ItemRef) bool {
	if l == nil || item.IsNone() {
		return false
	}
	for _, occupant := range l.Slots {
		if occupant == item {
			return true
		}
	}
	return false
}

// Matches applies HasItem when target names an item and HasShard otherwise
func (e *Engine) Matches(l *entities.Loadout, target RemoveTarget) bool {
	if !target.Item.IsNone() {
		return e.HasItem(l, target.Item)
	}
	return e.HasShard(l, target.ShardID)
}

// Stats sums the stat contributions of every equipped item
func (e *Engine) Stats(l *entities.Loadout) map[int]int {
	stats := make(map[int]int)
	for _, item := range l.Slots {
		if item.IsNone() {
			continue
		}
		entry, ok := e.catalog.Lookup(item)
		if !ok {
			continue
		}
		for stat, value := range entry.Params {
			stats[stat] += value
		}
	}
	return stats
}
