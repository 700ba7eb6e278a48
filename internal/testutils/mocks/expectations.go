// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"context"

	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/spell-cards/internal/entities/spellcard"
	carddraft "github.com/KirkDiggler/spell-cards/internal/repositories/card_draft"
	carddraftmock "github.com/KirkDiggler/spell-cards/internal/repositories/card_draft/mock"
)

// StoredDraft receives the draft passed to an expected Update or Create
type StoredDraft struct {
	Draft *spellcard.Draft
}

// ExpectDraftLoad expects one Get of draft by its ID
func ExpectDraftLoad(ctx context.Context, repo *carddraftmock.MockRepository, draft *spellcard.Draft) {
	repo.EXPECT().
		Get(ctx, carddraft.GetInput{ID: draft.ID}).
		Return(&carddraft.GetOutput{Draft: draft}, nil)
}

// ExpectDraftUpdate expects one successful Update and captures the stored draft
func ExpectDraftUpdate(ctx context.Context, repo *carddraftmock.MockRepository) *StoredDraft {
	stored := &StoredDraft{}
	repo.EXPECT().
		Update(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input carddraft.UpdateInput) (*carddraft.UpdateOutput, error) {
			stored.Draft = input.Draft
			return &carddraft.UpdateOutput{}, nil
		})
	return stored
}

// ExpectDraftCreate expects one successful Create and captures the stored draft
func ExpectDraftCreate(ctx context.Context, repo *carddraftmock.MockRepository) *StoredDraft {
	stored := &StoredDraft{}
	repo.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input carddraft.CreateInput) (*carddraft.CreateOutput, error) {
			stored.Draft = input.Draft
			return &carddraft.CreateOutput{}, nil
		})
	return stored
}

// ExpectDraftDelete expects the draft to be removed after a save or cancel
func ExpectDraftDelete(ctx context.Context, repo *carddraftmock.MockRepository, draftID string) {
	repo.EXPECT().
		Delete(ctx, carddraft.DeleteInput{ID: draftID}).
		Return(&carddraft.DeleteOutput{}, nil)
}
