package engine

import (
	"github.com/KirkDiggler/rpg-shards/internal/entities"
	"github.com/KirkDiggler/rpg-shards/internal/errors"
)

// Ledger is an in-memory Inventory seeded from stored counts. It records the net
// change per item so a caller can persist the exchange together with the loadout.
type Ledger struct {
	counts map[entities.ItemRef]int
	delta  map[entities.ItemRef]int
}

// NewLedger creates a ledger over a snapshot of counts. The snapshot is copied.
func NewLedger(counts map[entities.ItemRef]int) *Ledger {
	l := &Ledger{
		counts: make(map[entities.ItemRef]int, len(counts)),
		delta:  make(map[entities.ItemRef]int),
	}
	for item, n := range counts {
		l.counts[item] = n
	}
	return l
}

// Count returns how many units of item are held
func (l *Ledger) Count(item entities.ItemRef) int {
	return l.counts[item]
}

// Take removes qty units of item
func (l *Ledger) Take(item entities.ItemRef, qty int) error {
	if qty <= 0 {
		return errors.InvalidArgumentf("quantity must be positive, got %d", qty)
	}
	have := l.counts[item]
	if have < qty {
		return errors.InventoryMismatch(item, qty, have)
	}
	l.counts[item] = have - qty
	l.delta[item] -= qty
	return nil
}

// Give adds qty units of item
func (l *Ledger) Give(item entities.ItemRef, qty int) {
	if qty <= 0 || item.IsNone() {
		return
	}
	l.counts[item] += qty
	l.delta[item] += qty
}

// Delta returns the non-zero net changes since the ledger was created
func (l *Ledger) Delta() map[entities.ItemRef]int {
	out := make(map[entities.ItemRef]int, len(l.delta))
	for item, d := range l.delta {
		if d != 0 {
			out[item] = d
		}
	}
	return out
}

// Counts returns a copy of the current counts, omitting empty entries
func (l *Ledger) Counts() map[entities.ItemRef]int {
	out := make(map[entities.ItemRef]int, len(l.counts))
	for item, n := range l.counts {
		if n > 0 {
			out[item] = n
		}
	}
	return out
}
