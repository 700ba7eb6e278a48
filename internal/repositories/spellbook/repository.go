// Package spellbook defines persistence for the spell book blob
package spellbook

//go:generate mockgen -destination=mock/mock_repository.go -package=spellbookmock github.com/KirkDiggler/spell-cards/internal/repositories/spellbook Repository

import (
	"context"

	"github.com/KirkDiggler/spell-cards/internal/entities/spellcard"
)

// DefaultKey is the storage key the whole book is kept under
const DefaultKey = "SpellBook"

// Repository stores the spell book as a single JSON blob
type Repository interface {
	// Get loads the stored book
	// Returns errors.NotFound if no book has been saved yet
	// Returns errors.Internal for storage failures or corrupt data
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Save replaces the stored book
	// Returns errors.InvalidArgument for a nil book
	// Returns errors.Internal for storage failures
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Ping checks that the backing store is reachable
	Ping(ctx context.Context) error
}

// GetInput defines the input for loading the book
type GetInput struct{}

// GetOutput defines the output for loading the book
type GetOutput struct {
	Book *spellcard.SpellBook
}

// SaveInput defines the input for saving the book
type SaveInput struct {
	Book *spellcard.SpellBook
}

// SaveOutput defines the output for saving the book
type SaveOutput struct{}
