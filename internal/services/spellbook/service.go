// Package spellbook defines the interface for spell book operations
package spellbook

//go:generate mockgen -destination=mock/mock_service.go -package=spellbookmock github.com/KirkDiggler/spell-cards/internal/services/spellbook Service

import (
	"context"

	"github.com/KirkDiggler/spell-cards/internal/entities/spellcard"
)

// Export formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Service defines the interface for spell book operations. Cards are
// addressed by their position in the book.
type Service interface {
	GetBook(ctx context.Context, input *GetBookInput) (*GetBookOutput, error)
	GetCard(ctx context.Context, input *GetCardInput) (*GetCardOutput, error)

	AddCard(ctx context.Context, input *AddCardInput) (*AddCardOutput, error)
	ReplaceCard(ctx context.Context, input *ReplaceCardInput) (*ReplaceCardOutput, error)
	DeleteCard(ctx context.Context, input *DeleteCardInput) (*DeleteCardOutput, error)
	MoveCard(ctx context.Context, input *MoveCardInput) (*MoveCardOutput, error)

	SearchCards(ctx context.Context, input *SearchCardsInput) (*SearchCardsOutput, error)

	ImportCards(ctx context.Context, input *ImportCardsInput) (*ImportCardsOutput, error)
	ExportBook(ctx context.Context, input *ExportBookInput) (*ExportBookOutput, error)
}

// GetBookInput defines the request for loading the book
type GetBookInput struct{}

// GetBookOutput defines the response for loading the book
type GetBookOutput struct {
	Book *spellcard.SpellBook
}

// GetCardInput defines the request for one card
type GetCardInput struct {
	Index int
}

// GetCardOutput defines the response for one card
type GetCardOutput struct {
	Card *spellcard.SpellCard
}

// AddCardInput defines the request for appending a card
type AddCardInput struct {
	Card *spellcard.SpellCard
}

// AddCardOutput defines the response for appending a card
type AddCardOutput struct {
	Index int
	Book  *spellcard.SpellBook
}

// ReplaceCardInput defines the request for overwriting a card
type ReplaceCardInput struct {
	Index int
	Card  *spellcard.SpellCard
	// IfMatch, when set, is the Fingerprint the card at Index must still
	// have. A mismatch returns errors.FailedPrecondition and changes nothing.
	IfMatch string
}

// ReplaceCardOutput defines the response for overwriting a card
type ReplaceCardOutput struct {
	Book *spellcard.SpellBook
}

// DeleteCardInput defines the request for removing a card
type DeleteCardInput struct {
	Index int
}

// DeleteCardOutput defines the response for removing a card
type DeleteCardOutput struct {
	Book *spellcard.SpellBook
}

// MoveCardInput defines the request for reordering a card
type MoveCardInput struct {
	From int
	To   int
}

// MoveCardOutput defines the response for reordering a card
type MoveCardOutput struct {
	Book *spellcard.SpellBook
}

// SearchCardsInput defines a name search
type SearchCardsInput struct {
	Query string
	// MaxSuggestions caps Suggestions; zero uses the default
	MaxSuggestions int
}

// Match is a card found by a search together with its book position
type Match struct {
	Index int
	Card  *spellcard.SpellCard
}

// SearchCardsOutput holds substring matches, and near-miss names when
// nothing matched
type SearchCardsOutput struct {
	Matches     []Match
	Suggestions []string
}

// ImportCardsInput defines the request for adding many cards
type ImportCardsInput struct {
	Cards []*spellcard.SpellCard
	// Replace discards the current book first
	Replace bool
}

// ImportCardsOutput defines the response for adding many cards
type ImportCardsOutput struct {
	Imported int
	Book     *spellcard.SpellBook
}

// ExportBookInput selects the export format
type ExportBookInput struct {
	// Format is FormatJSON (default) or FormatYAML
	Format string
}

// ExportBookOutput holds the encoded book
type ExportBookOutput struct {
	Data        []byte
	ContentType string
}
