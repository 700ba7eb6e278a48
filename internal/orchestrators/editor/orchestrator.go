// Package editor implements the card editor orchestrator
package editor

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/spell-cards/internal/clients/srd"
	"github.com/KirkDiggler/spell-cards/internal/entities/spellcard"
	"github.com/KirkDiggler/spell-cards/internal/errors"
	"github.com/KirkDiggler/spell-cards/internal/pkg/clock"
	"github.com/KirkDiggler/spell-cards/internal/pkg/idgen"
	carddraft "github.com/KirkDiggler/spell-cards/internal/repositories/card_draft"
	"github.com/KirkDiggler/spell-cards/internal/services/editor"
	"github.com/KirkDiggler/spell-cards/internal/services/spellbook"
)

// Config holds the dependencies for the editor orchestrator
type Config struct {
	DraftRepo carddraft.Repository
	Book      spellbook.Service
	// SRD is optional; without it drafts cannot be prefilled from the SRD
	SRD         srd.Client
	IDGenerator idgen.Generator
	Clock       clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.DraftRepo == nil {
		vb.RequiredField("DraftRepo")
	}
	if c.Book == nil {
		vb.RequiredField("Book")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

// Orchestrator implements the editor.Service interface
type Orchestrator struct {
	draftRepo carddraft.Repository
	book      spellbook.Service
	srd       srd.Client
	idGen     idgen.Generator
	clock     clock.Clock
}

// New creates a new editor orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	return &Orchestrator{
		draftRepo: cfg.DraftRepo,
		book:      cfg.Book,
		srd:       cfg.SRD,
		idGen:     cfg.IDGenerator,
		clock:     clk,
	}, nil
}

// Ensure Orchestrator implements the Service interface
var _ editor.Service = (*Orchestrator)(nil)

// CreateDraft opens a draft from the default card, a book card or an SRD spell
func (o *Orchestrator) CreateDraft(ctx context.Context, input *editor.CreateDraftInput) (*editor.CreateDraftOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.FromIndex != nil && input.SRDKey != "" {
		return nil, errors.InvalidArgument("only one of book index and SRD key may be set")
	}

	card := spellcard.New()
	var sourceIndex *int
	var fingerprint string

	switch {
	case input.FromIndex != nil:
		output, err := o.book.GetCard(ctx, &spellbook.GetCardInput{Index: *input.FromIndex})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load card %d", *input.FromIndex)
		}
		card = output.Card
		fingerprint = card.Fingerprint()
		index := *input.FromIndex
		sourceIndex = &index

	case input.SRDKey != "":
		if o.srd == nil {
			return nil, errors.FailedPrecondition("SRD import is not configured")
		}
		output, err := o.srd.GetCard(ctx, &srd.GetCardInput{Key: input.SRDKey})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to import SRD spell %s", input.SRDKey)
		}
		card = output.Card
	}

	now := o.clock.Now()
	draft := &spellcard.Draft{
		ID:                o.idGen.Generate(),
		Card:              card,
		SourceIndex:       sourceIndex,
		SourceFingerprint: fingerprint,
		CreatedAt:         now.Unix(),
		UpdatedAt:         now.Unix(),
		ExpiresAt:         now.Add(carddraft.DefaultTTL).Unix(),
	}

	if _, err := o.draftRepo.Create(ctx, carddraft.CreateInput{Draft: draft}); err != nil {
		return nil, errors.Wrap(err, "failed to create draft")
	}

	slog.DebugContext(ctx, "created draft",
		"draft_id", draft.ID,
		"name", card.Name,
		"from_book", sourceIndex != nil,
		"srd_key", input.SRDKey)

	return &editor.CreateDraftOutput{Draft: draft}, nil
}

// GetDraft loads a draft
func (o *Orchestrator) GetDraft(ctx context.Context, input *editor.GetDraftInput) (*editor.GetDraftOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.DraftID == "" {
		return nil, errors.InvalidArgument("draft ID is required")
	}

	output, err := o.draftRepo.Get(ctx, carddraft.GetInput{ID: input.DraftID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get draft")
	}

	return &editor.GetDraftOutput{Draft: output.Draft}, nil
}

// DeleteDraft discards a draft without touching the book
func (o *Orchestrator) DeleteDraft(ctx context.Context, input *editor.DeleteDraftInput) (*editor.DeleteDraftOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.DraftID == "" {
		return nil, errors.InvalidArgument("draft ID is required")
	}

	if _, err := o.draftRepo.Delete(ctx, carddraft.DeleteInput{ID: input.DraftID}); err != nil {
		return nil, errors.Wrap(err, "failed to delete draft")
	}

	return &editor.DeleteDraftOutput{}, nil
}

// SaveDraft writes the draft card into the book, replacing the card it was
// opened from or appending, then deletes the draft
func (o *Orchestrator) SaveDraft(ctx context.Context, input *editor.SaveDraftInput) (*editor.SaveDraftOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.DraftID == "" {
		return nil, errors.InvalidArgument("draft ID is required")
	}

	getOutput, err := o.draftRepo.Get(ctx, carddraft.GetInput{ID: input.DraftID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get draft")
	}
	draft := getOutput.Draft

	if err := draft.Card.Validate(); err != nil {
		return nil, err
	}

	var index int
	if draft.SourceIndex != nil {
		index = *draft.SourceIndex
		_, err = o.book.ReplaceCard(ctx, &spellbook.ReplaceCardInput{
			Index:   index,
			Card:    draft.Card,
			IfMatch: draft.SourceFingerprint,
		})
	} else {
		var added *spellbook.AddCardOutput
		added, err = o.book.AddCard(ctx, &spellbook.AddCardInput{Card: draft.Card})
		if added != nil {
			index = added.Index
		}
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to save card")
	}

	if _, err := o.draftRepo.Delete(ctx, carddraft.DeleteInput{ID: draft.ID}); err != nil && !errors.IsNotFound(err) {
		// The card is already in the book; a leftover draft expires on its own
		slog.WarnContext(ctx, "failed to delete saved draft",
			"draft_id", draft.ID,
			"error", err)
	}

	slog.InfoContext(ctx, "saved card",
		"draft_id", draft.ID,
		"name", draft.Card.Name,
		"index", index)

	return &editor.SaveDraftOutput{Card: draft.Card, Index: index}, nil
}

// mutate loads the draft, applies fn to its card and stores the result
func (o *Orchestrator) mutate(ctx context.Context, draftID string, fn func(card *spellcard.SpellCard) error) (*editor.UpdateOutput, error) {
	return o.mutateDraft(ctx, draftID, func(draft *spellcard.Draft) error {
		return fn(draft.Card)
	})
}

func (o *Orchestrator) mutateDraft(ctx context.Context, draftID string, fn func(draft *spellcard.Draft) error) (*editor.UpdateOutput, error) {
	if draftID == "" {
		return nil, errors.InvalidArgument("draft ID is required")
	}

	getOutput, err := o.draftRepo.Get(ctx, carddraft.GetInput{ID: draftID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get draft")
	}
	draft := getOutput.Draft

	if err := fn(draft); err != nil {
		return nil, err
	}

	now := o.clock.Now()
	draft.UpdatedAt = now.Unix()
	draft.ExpiresAt = now.Add(carddraft.DefaultTTL).Unix()

	if _, err := o.draftRepo.Update(ctx, carddraft.UpdateInput{Draft: draft}); err != nil {
		return nil, errors.Wrap(err, "failed to update draft")
	}

	return &editor.UpdateOutput{Draft: draft}, nil
}

func nonNegative(field string, value int) error {
	if value < 0 {
		return errors.InvalidArgumentf("%s must not be negative, got %d", field, value)
	}
	return nil
}
