package app

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/KirkDiggler/rpg-shards/internal/entities"
	"github.com/KirkDiggler/rpg-shards/internal/errors"
	"github.com/KirkDiggler/rpg-shards/internal/repositories/inventory"
	"github.com/KirkDiggler/rpg-shards/internal/repositories/loadout"
	"github.com/KirkDiggler/rpg-shards/internal/repositories/party"
)

// SeedDocument is a JSON party fixture file
type SeedDocument struct {
	Parties []*PartySeed `json:"parties"`
}

// PartySeed is one party roster and the inventory counts it should hold
type PartySeed struct {
	ID        string                   `json:"id"`
	Members   []string                 `json:"members"`
	Inventory map[entities.ItemRef]int `json:"inventory"`
}

// SeedResult reports what SeedParty changed
type SeedResult struct {
	PartyID string
	// Given and Taken hold the per-item adjustments made to reach the seeded counts
	Given map[entities.ItemRef]int
	Taken map[entities.ItemRef]int
}

// ResetResult reports what ResetParty removed
type ResetResult struct {
	PartyID        string
	LoadoutsPurged int
	ItemsTaken     int
}

// LoadSeed decodes a seed document
func LoadSeed(r io.Reader) (*SeedDocument, error) {
	var doc SeedDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode seed document")
	}
	for i, p := range doc.Parties {
		if err := p.Validate(); err != nil {
			return nil, errors.Wrapf(err, "seed party %d", i)
		}
	}
	return &doc, nil
}

// Validate checks the roster and counts
func (p *PartySeed) Validate() error {
	if p == nil {
		return errors.InvalidArgument("party seed cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("ID", p.ID, vb)
	if len(p.Members) == 0 {
		vb.RequiredField("Members")
	}
	for _, member := range p.Members {
		if member == "" {
			vb.Field("Members", "must not contain empty ids")
			break
		}
	}
	for item, n := range p.Inventory {
		if item.IsNone() || n < 0 {
			vb.Field("Inventory", "needs item refs with counts of zero or more")
			break
		}
	}
	return vb.Build()
}

// SeedParty stores the roster and moves each listed item to its seeded count.
// Items the seed does not list are left alone.
func (a *App) SeedParty(ctx context.Context, seed *PartySeed) (*SeedResult, error) {
	if err := seed.Validate(); err != nil {
		return nil, err
	}

	_, err := a.PartyRepo.Save(ctx, party.SaveInput{
		Party: &entities.Party{ID: seed.ID, Members: seed.Members},
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to save party %s", seed.ID)
	}

	current, err := a.InventoryRepo.Get(ctx, inventory.GetInput{PartyID: seed.ID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get inventory for party %s", seed.ID)
	}

	items := make([]entities.ItemRef, 0, len(seed.Inventory))
	for item := range seed.Inventory {
		items = append(items, item)
	}
	entities.SortItemRefs(items)

	result := &SeedResult{
		PartyID: seed.ID,
		Given:   make(map[entities.ItemRef]int),
		Taken:   make(map[entities.ItemRef]int),
	}
	for _, item := range items {
		diff := seed.Inventory[item] - current.Counts[item]
		switch {
		case diff > 0:
			_, err = a.InventoryRepo.Give(ctx, inventory.GiveInput{PartyID: seed.ID, Item: item, Quantity: diff})
			result.Given[item] = diff
		case diff < 0:
			_, err = a.InventoryRepo.Take(ctx, inventory.TakeInput{PartyID: seed.ID, Item: item, Quantity: -diff})
			result.Taken[item] = -diff
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to seed %s for party %s", item, seed.ID)
		}
	}

	slog.InfoContext(ctx, "party seeded",
		"party_id", seed.ID,
		"members", len(seed.Members),
		"given", len(result.Given),
		"taken", len(result.Taken))
	return result, nil
}

// ResetParty wipes a party: every member loadout, the whole inventory and the
// roster itself. Equipped shards are discarded with their loadouts.
func (a *App) ResetParty(ctx context.Context, partyID string) (*ResetResult, error) {
	if partyID == "" {
		return nil, errors.InvalidArgument("party ID is required")
	}

	p, err := a.PartyRepo.Get(ctx, party.GetInput{ID: partyID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get party %s", partyID)
	}

	result := &ResetResult{PartyID: partyID}
	for _, member := range p.Party.Members {
		out, err := a.LoadoutRepo.Delete(ctx, loadout.DeleteInput{CharacterID: member})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to purge loadout for %s", member)
		}
		if out.Existed {
			result.LoadoutsPurged++
		}
	}

	inv, err := a.InventoryRepo.Get(ctx, inventory.GetInput{PartyID: partyID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get inventory for party %s", partyID)
	}
	items := make([]entities.ItemRef, 0, len(inv.Counts))
	for item := range inv.Counts {
		items = append(items, item)
	}
	entities.SortItemRefs(items)
	for _, item := range items {
		n := inv.Counts[item]
		if _, err := a.InventoryRepo.Take(ctx, inventory.TakeInput{PartyID: partyID, Item: item, Quantity: n}); err != nil {
			return nil, errors.Wrapf(err, "failed to clear %s from party %s", item, partyID)
		}
		result.ItemsTaken += n
	}

	if _, err := a.PartyRepo.Delete(ctx, party.DeleteInput{ID: partyID}); err != nil {
		return nil, errors.Wrapf(err, "failed to delete party %s", partyID)
	}

	slog.InfoContext(ctx, "party reset",
		"party_id", partyID,
		"loadouts_purged", result.LoadoutsPurged,
		"items_taken", result.ItemsTaken)
	return result, nil
}
