// Package inventory provides the shared party inventory that shards are exchanged with
package inventory

import (
	"context"

	"github.com/KirkDiggler/rpg-shards/internal/entities"
)

// Repository stores per-party item counts
type Repository interface {
	// Get returns every positive item count for a party
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Give adds units of an item
	Give(ctx context.Context, input GiveInput) (*GiveOutput, error)

	// Take removes units of an item, failing if not enough are held
	Take(ctx context.Context, input TakeInput) (*TakeOutput, error)
}

// GetInput defines the input for Get
type GetInput struct {
	PartyID string
}

// GetOutput defines the output for Get
type GetOutput struct {
	Counts map[entities.ItemRef]int
}

// GiveInput defines the input for Give
type GiveInput struct {
	PartyID  string
	Item     entities.ItemRef
	Quantity int
}

// GiveOutput defines the output for Give
type GiveOutput struct {
	// Count is the quantity held after the operation
	Count int
}

// TakeInput defines the input for Take
type TakeInput struct {
	PartyID  string
	Item     entities.ItemRef
	Quantity int
}

// TakeOutput defines the output for Take
type TakeOutput struct {
	// Count is the quantity held after the operation
	Count int
}
