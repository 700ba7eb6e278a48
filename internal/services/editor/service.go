// Package editor defines the interface for editing spell card drafts
package editor

//go:generate mockgen -destination=mock/mock_service.go -package=editormock github.com/KirkDiggler/spell-cards/internal/services/editor Service

import (
	"context"

	"github.com/KirkDiggler/spell-cards/internal/entities/spellcard"
)

// Service defines the interface for the card editor. Every update loads the
// draft, applies one change, stores it and returns the updated draft.
// Select values use the option values listed in the spellcard package.
type Service interface {
	// Draft lifecycle
	CreateDraft(ctx context.Context, input *CreateDraftInput) (*CreateDraftOutput, error)
	GetDraft(ctx context.Context, input *GetDraftInput) (*GetDraftOutput, error)
	DeleteDraft(ctx context.Context, input *DeleteDraftInput) (*DeleteDraftOutput, error)
	SaveDraft(ctx context.Context, input *SaveDraftInput) (*SaveDraftOutput, error)

	// Header
	UpdateName(ctx context.Context, input *UpdateTextInput) (*UpdateOutput, error)
	UpdateLink(ctx context.Context, input *UpdateTextInput) (*UpdateOutput, error)
	UpdateCastTime(ctx context.Context, input *UpdateCastTimeInput) (*UpdateOutput, error)
	UpdateCastTimeLonger(ctx context.Context, input *UpdateTextInput) (*UpdateOutput, error)
	UpdateCastTimeRange(ctx context.Context, input *UpdateCastTimeRangeInput) (*UpdateOutput, error)
	UpdateSpellType(ctx context.Context, input *UpdateSpellTypeInput) (*UpdateOutput, error)
	UpdateLevel(ctx context.Context, input *UpdateNumberInput) (*UpdateOutput, error)
	UpdateTraits(ctx context.Context, input *UpdateTextInput) (*UpdateOutput, error)

	// Overview
	UpdateRange(ctx context.Context, input *UpdateNumberInput) (*UpdateOutput, error)
	UpdateAreaShape(ctx context.Context, input *UpdateAreaShapeInput) (*UpdateOutput, error)
	UpdateAreaSize(ctx context.Context, input *UpdateAreaSizeInput) (*UpdateOutput, error)
	UpdateLineWidth(ctx context.Context, input *UpdateNumberInput) (*UpdateOutput, error)
	UpdateTargets(ctx context.Context, input *UpdateTextInput) (*UpdateOutput, error)
	UpdateDuration(ctx context.Context, input *UpdateTextInput) (*UpdateOutput, error)
	UpdateDefence(ctx context.Context, input *UpdateDefenceInput) (*UpdateOutput, error)

	// Body
	UpdateEffect(ctx context.Context, input *UpdateTextInput) (*UpdateOutput, error)
	UpdateRollOutcome(ctx context.Context, input *UpdateRollOutcomeInput) (*UpdateOutput, error)
	UpdateHeightened(ctx context.Context, input *UpdateHeightenedInput) (*UpdateOutput, error)
	RemoveHeightened(ctx context.Context, input *RemoveHeightenedInput) (*UpdateOutput, error)
}

// CreateDraftInput defines the request to open a draft. With neither source
// set the draft starts from the default card.
type CreateDraftInput struct {
	// FromIndex copies an existing book card; saving replaces it
	FromIndex *int
	// SRDKey prefills the card from an SRD spell, e.g. "fireball"
	SRDKey string
}

// CreateDraftOutput defines the response to opening a draft
type CreateDraftOutput struct {
	Draft *spellcard.Draft
}

// GetDraftInput defines the request to load a draft
type GetDraftInput struct {
	DraftID string
}

// GetDraftOutput defines the response to loading a draft
type GetDraftOutput struct {
	Draft *spellcard.Draft
}

// DeleteDraftInput defines the request to discard a draft
type DeleteDraftInput struct {
	DraftID string
}

// DeleteDraftOutput defines the response to discarding a draft
type DeleteDraftOutput struct{}

// SaveDraftInput defines the request to write a draft into the book
type SaveDraftInput struct {
	DraftID string
}

// SaveDraftOutput defines the response to saving a draft
type SaveDraftOutput struct {
	Card  *spellcard.SpellCard
	Index int
}

// UpdateOutput is returned by every field update
type UpdateOutput struct {
	Draft *spellcard.Draft
}

// UpdateTextInput sets a free text field
type UpdateTextInput struct {
	DraftID string
	Text    string
}

// UpdateNumberInput sets a numeric field
type UpdateNumberInput struct {
	DraftID string
	Value   int
}

// UpdateCastTimeInput selects the cast time kind
type UpdateCastTimeInput struct {
	DraftID  string
	CastTime string
}

// UpdateCastTimeRangeInput sets either end of an action range. Nil leaves
// that end unchanged.
type UpdateCastTimeRangeInput struct {
	DraftID string
	Min     *int
	Max     *int
}

// UpdateSpellTypeInput selects the spell type
type UpdateSpellTypeInput struct {
	DraftID   string
	SpellType string
}

// UpdateAreaShapeInput selects the area shape, "none" removes the area
type UpdateAreaShapeInput struct {
	DraftID string
	Shape   string
}

// UpdateAreaSizeInput resizes the area. Shape is used only when the card has
// no area yet.
type UpdateAreaSizeInput struct {
	DraftID string
	Shape   string
	Size    int
}

// UpdateDefenceInput selects the defence, "none" removes it
type UpdateDefenceInput struct {
	DraftID string
	Defence string
}

// UpdateRollOutcomeInput sets the text of one degree of success
type UpdateRollOutcomeInput struct {
	DraftID string
	Degree  string
	Text    string
}

// UpdateHeightenedInput edits the heightened entry at Index. Index equal to
// the number of entries adds one. Nil fields keep their current value.
type UpdateHeightenedInput struct {
	DraftID string
	Index   int
	Kind    *string
	Level   *int
	Text    *string
}

// RemoveHeightenedInput deletes the heightened entry at Index
type RemoveHeightenedInput struct {
	DraftID string
	Index   int
}
