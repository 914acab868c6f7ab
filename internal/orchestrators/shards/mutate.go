package shards

import (
	"context"
	"log/slog"
	"sync"

	"github.com/KirkDiggler/rpg-shards/internal/engine"
	"github.com/KirkDiggler/rpg-shards/internal/entities"
	"github.com/KirkDiggler/rpg-shards/internal/errors"
	"github.com/KirkDiggler/rpg-shards/internal/repositories/inventory"
	"github.com/KirkDiggler/rpg-shards/internal/repositories/loadout"
	"github.com/KirkDiggler/rpg-shards/internal/repositories/party"
)

// applyFunc mutates a working copy of the loadout. Returning an error discards the copy.
type applyFunc func(l *entities.Loadout, inv engine.Inventory) error

type mutation struct {
	view  *LoadoutView
	delta engine.AbilityDelta
}

func (m *mutation) output() MutationOutput {
	return MutationOutput{Loadout: m.view, AbilityDelta: m.delta}
}

// mutate runs read, apply and commit for one character. Only one mutation per
// character runs at a time in this process; conflicts with other writers are
// retried from a fresh read.
func (o *orchestrator) mutate(
	ctx context.Context,
	characterID, partyID string,
	needInventory bool,
	apply applyFunc,
) (*mutation, error) {
	rules, err := o.linkRules()
	if err != nil {
		return nil, err
	}

	if needInventory {
		if _, err := o.loadParty(ctx, partyID); err != nil {
			return nil, err
		}
	} else {
		partyID = ""
	}

	unlock := o.locks.Lock(characterID)
	defer unlock()

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeCanceled, "shard mutation canceled")
		}

		current, stored, err := o.loadLoadout(ctx, characterID)
		if err != nil {
			return nil, err
		}

		ledger := engine.NewLedger(nil)
		if partyID != "" {
			inv, err := o.inventoryRepo.Get(ctx, inventory.GetInput{PartyID: partyID})
			if err != nil {
				return nil, errors.Wrap(err, "failed to get party inventory")
			}
			ledger = engine.NewLedger(inv.Counts)
		}

		working := current.Clone()
		if err := apply(working, ledger); err != nil {
			return nil, err
		}

		var expected *entities.Loadout
		if stored {
			expected = current
		}

		_, err = o.loadoutRepo.Commit(ctx, loadout.CommitInput{
			Loadout:        working,
			Expected:       expected,
			PartyID:        partyID,
			InventoryDelta: ledger.Delta(),
		})
		if err != nil {
			if errors.IsAborted(err) && attempt < o.maxAttempts {
				slog.DebugContext(ctx, "loadout commit conflict, retrying",
					"character_id", characterID,
					"attempt", attempt)
				continue
			}
			return nil, errors.Wrap(err, "failed to commit loadout")
		}

		before := o.resolve(current, rules)
		m := &mutation{
			view:  o.view(working, rules),
			delta: engine.DiffAbilities(before.Abilities, o.resolve(working, rules).Abilities),
		}
		o.publishAbilities(ctx, characterID, m)
		return m, nil
	}
}

// loadLoadout returns the stored loadout, or an empty one with stored=false.
// An empty loadout takes its orb image from the actor's catalog defaults.
func (o *orchestrator) loadLoadout(ctx context.Context, characterID string) (*entities.Loadout, bool, error) {
	out, err := o.loadoutRepo.Get(ctx, loadout.GetInput{CharacterID: characterID})
	if err != nil {
		if errors.IsNotFound(err) {
			l := entities.NewLoadout(characterID)
			if actor, ok := o.catalog.Actor(characterID); ok {
				l.OrbImageID = actor.OrbImageID
			}
			return l, false, nil
		}
		return nil, false, errors.Wrapf(err, "failed to get loadout for character %s", characterID)
	}
	return out.Loadout, true, nil
}

func (o *orchestrator) loadParty(ctx context.Context, partyID string) (*entities.Party, error) {
	if partyID == "" {
		return nil, errors.InvalidArgument("party ID is required")
	}

	out, err := o.partyRepo.Get(ctx, party.GetInput{ID: partyID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get party %s", partyID)
	}
	return out.Party, nil
}

// linkRules returns the adjacency rules, or an empty set when links are disabled
func (o *orchestrator) linkRules() (*engine.Rules, error) {
	if !o.useLinks {
		return nil, nil
	}
	return o.rules.Rules()
}

func (o *orchestrator) resolve(l *entities.Loadout, rules *engine.Rules) engine.LinkResult {
	return o.engine.Resolve(l, rules)
}

// keyedMutex hands out one mutex per key and forgets it once nobody holds it
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*refMutex)}
}

// Lock blocks until key is free and returns its unlock function
func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &refMutex{}
		k.locks[key] = m
	}
	m.refs++
	k.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()
		k.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
