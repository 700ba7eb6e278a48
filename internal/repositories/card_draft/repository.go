// Package carddraft defines the interface for spell card draft persistence
package carddraft

//go:generate mockgen -destination=mock/mock_repository.go -package=carddraftmock github.com/KirkDiggler/spell-cards/internal/repositories/card_draft Repository

import (
	"context"

	"github.com/KirkDiggler/spell-cards/internal/entities/spellcard"
)

// Repository defines the interface for card draft persistence
type Repository interface {
	// Create stores a new draft
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.FailedPrecondition if the ID is already taken
	// Returns errors.Internal for storage failures
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a draft by ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the draft doesn't exist or has expired
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update replaces an existing draft
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.NotFound if the draft doesn't exist
	// Returns errors.Internal for storage failures
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes a draft by ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the draft doesn't exist
	// Returns errors.Internal for storage failures
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// CreateInput defines the input for creating a draft
type CreateInput struct {
	Draft *spellcard.Draft
}

// CreateOutput defines the output for creating a draft
type CreateOutput struct{}

// GetInput defines the input for getting a draft
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a draft
type GetOutput struct {
	Draft *spellcard.Draft
}

// UpdateInput defines the input for updating a draft
type UpdateInput struct {
	Draft *spellcard.Draft
}

// UpdateOutput defines the output for updating a draft
type UpdateOutput struct{}

// DeleteInput defines the input for deleting a draft
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a draft
type DeleteOutput struct{}
