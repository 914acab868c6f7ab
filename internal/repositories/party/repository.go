// Package party provides storage for party rosters
package party

import (
	"context"

	"github.com/KirkDiggler/rpg-shards/internal/entities"
)

// Repository stores party rosters
type Repository interface {
	// Get retrieves a party by ID
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Save creates or replaces a party
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Delete removes a party
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// GetInput defines the input for Get
type GetInput struct {
	ID string
}

// GetOutput defines the output for Get
type GetOutput struct {
	Party *entities.Party
}

// SaveInput defines the input for Save
type SaveInput struct {
	Party *entities.Party
}

// SaveOutput defines the output for Save
type SaveOutput struct{}

// DeleteInput defines the input for Delete
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for Delete
type DeleteOutput struct {
	Existed bool
}
