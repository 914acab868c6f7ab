// Package loadout provides storage for character shard loadouts
package loadout

import (
	"context"

	"github.com/KirkDiggler/rpg-shards/internal/entities"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=loadoutmock github.com/KirkDiggler/rpg-shards/internal/repositories/loadout Repository

// Repository stores loadouts and commits them together with the matching
// party inventory adjustment
type Repository interface {
	// Get retrieves a character's loadout
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Commit writes a loadout and applies inventory deltas atomically
	Commit(ctx context.Context, input CommitInput) (*CommitOutput, error)

	// Delete removes a character's loadout
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// GetInput defines the input for Get
type GetInput struct {
	CharacterID string
}

// GetOutput defines the output for Get
type GetOutput struct {
	Loadout *entities.Loadout
}

// CommitInput defines the input for Commit
type CommitInput struct {
	// Loadout is the state to store
	Loadout *entities.Loadout

	// Expected is the loadout the change was computed from. Nil means the
	// loadout must not exist yet. A mismatch aborts the commit.
	Expected *entities.Loadout

	// PartyID owns the inventory that InventoryDelta applies to
	PartyID string

	// InventoryDelta holds the net per-item change, negative for items taken
	InventoryDelta map[entities.ItemRef]int
}

// CommitOutput defines the output for Commit
type CommitOutput struct {
	// Counts is the post-commit quantity of every item in the delta
	Counts map[entities.ItemRef]int
}

// DeleteInput defines the input for Delete
type DeleteInput struct {
	CharacterID string
}

// DeleteOutput defines the output for Delete
type DeleteOutput struct {
	Existed bool
}
