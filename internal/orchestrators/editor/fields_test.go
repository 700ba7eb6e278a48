package editor_test

import (
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/spell-cards/internal/entities/spellcard"
	"github.com/KirkDiggler/spell-cards/internal/errors"
	carddraft "github.com/KirkDiggler/spell-cards/internal/repositories/card_draft"
	editorsvc "github.com/KirkDiggler/spell-cards/internal/services/editor"
	"github.com/KirkDiggler/spell-cards/internal/testutils"
	"github.com/KirkDiggler/spell-cards/internal/testutils/builders"
	"github.com/KirkDiggler/spell-cards/internal/testutils/mocks"
)

const draftID = "draft_1"

func ptr[T any](v T) *T {
	return &v
}

type fieldTestCase struct {
	name          string
	card          *spellcard.SpellCard
	pending       *spellcard.Heightened
	update        func() (*editorsvc.UpdateOutput, error)
	noLoad        bool
	wantErr       func(error) bool
	validate      func(card *spellcard.SpellCard)
	validateDraft func(draft *spellcard.Draft)
}

// runFieldCases loads each case's card as the draft, applies the update and
// checks the card that was stored
func (s *OrchestratorTestSuite) runFieldCases(testCases []fieldTestCase) {
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			card := tc.card
			if card == nil {
				card = spellcard.New()
			}
			draft := testutils.CreateTestDraft(draftID)
			draft.Card = card
			draft.PendingHeightened = tc.pending

			if !tc.noLoad {
				mocks.ExpectDraftLoad(s.ctx, s.mockDraftRepo, draft)
			}

			capture := &mocks.StoredDraft{}
			if tc.wantErr == nil {
				capture = mocks.ExpectDraftUpdate(s.ctx, s.mockDraftRepo)
			}

			output, err := tc.update()
			if tc.wantErr != nil {
				s.Require().Error(err)
				s.True(tc.wantErr(err), "unexpected error: %v", err)
				return
			}
			s.Require().NoError(err)
			stored := capture.Draft
			s.Require().NotNil(stored)
			s.Equal(stored, output.Draft)
			s.Equal(s.now.Unix(), stored.UpdatedAt)
			s.Equal(s.now.Add(carddraft.DefaultTTL).Unix(), stored.ExpiresAt)
			if tc.validate != nil {
				tc.validate(stored.Card)
			}
			if tc.validateDraft != nil {
				tc.validateDraft(stored)
			}
		})
	}
}

func overviewKinds(card *spellcard.SpellCard) []spellcard.OverviewKind {
	kinds := []spellcard.OverviewKind{}
	for _, o := range card.Overview {
		kinds = append(kinds, o.Kind)
	}
	return kinds
}

func (s *OrchestratorTestSuite) TestUpdateHeaderFields() {
	s.runFieldCases([]fieldTestCase{
		{
			name: "name",
			update: func() (*editorsvc.UpdateOutput, error) {
				return s.orchestrator.UpdateName(s.ctx, &editorsvc.UpdateTextInput{DraftID: draftID, Text: "Fireball"})
			},
			validate: func(card *spellcard.SpellCard) {
				s.Equal("Fireball", card.Name)
			},
		},
		{
			name: "link",
			update: func() (*editorsvc.UpdateOutput, error) {
				return s.orchestrator.UpdateLink(s.ctx, &editorsvc.UpdateTextInput{DraftID: draftID, Text: "https://2e.aonprd.com/Spells.aspx?ID=1565"})
			},
			validate: func(card *spellcard.SpellCard) {
				s.Equal("https://2e.aonprd.com/Spells.aspx?ID=1565", card.Link)
			},
		},
		{
			name: "effect",
			update: func() (*editorsvc.UpdateOutput, error) {
				return s.orchestrator.UpdateEffect(s.ctx, &editorsvc.UpdateTextInput{DraftID: draftID, Text: "one\ntwo"})
			},
			validate: func(card *spellcard.SpellCard) {
				s.Equal([]string{"one", "two"}, card.Paragraphs())
			},
		},
		{
			name: "cast time range starts at one to three actions",
			update: func() (*editorsvc.UpdateOutput, error) {
				return s.orchestrator.UpdateCastTime(s.ctx, &editorsvc.UpdateCastTimeInput{DraftID: draftID, CastTime: "range"})
			},
			validate: func(card *spellcard.SpellCard) {
				s.Equal(spellcard.ActionRange(1, 3), card.CastTime)
			},
		},
		{
			name: "cast time longer starts at ten minutes",
			update: func() (*editorsvc.UpdateOutput, error) {
				return s.orchestrator.UpdateCastTime(s.ctx, &editorsvc.UpdateCastTimeInput{DraftID: draftID, CastTime: "longer"})
			},
			validate: func(card *spellcard.SpellCard) {
				s.Equal(spellcard.Longer("10 min"), card.CastTime)
			},
		},
		{
			name:   "unknown cast time",
			noLoad: true,
			update: func() (*editorsvc.UpdateOutput, error) {
				return s.orchestrator.UpdateCastTime(s.ctx, &editorsvc.UpdateCastTimeInput{DraftID: draftID, CastTime: "quadruple"})
			},
			wantErr: errors.IsInvalidArgument,
		},
		{
			name: "longer text",
			update: func() (*editorsvc.UpdateOutput, error) {
				return s.orchestrator.UpdateCastTimeLonger(s.ctx, &editorsvc.UpdateTextInput{DraftID: draftID, Text: "1 hour"})
			},
			validate: func(card *spellcard.SpellCard) {
				s.Equal(spellcard.Longer("1 hour"), card.CastTime)
			},
		},
		{
			name: "range max only",
			card: builders.NewSpellCardBuilder().WithCastTime(spellcard.ActionRange(1, 3)).Build(),
			update: func() (*editorsvc.UpdateOutput, error) {
				return s.orchestrator.UpdateCastTimeRange(s.ctx, &editorsvc.UpdateCastTimeRangeInput{DraftID: draftID, Max: ptr(2)})
			},
			validate: func(card *spellcard.SpellCard) {
				s.Equal(spellcard.ActionRange(1, 2), card.CastTime)
			},
		},
		{
			name: "range on a fixed cast time",
			update: func() (*editorsvc.UpdateOutput, error) {
				return s.orchestrator.UpdateCastTimeRange(s.ctx, &editorsvc.UpdateCastTimeRangeInput{DraftID: draftID, Min: ptr(2)})
			},
			wantErr: errors.IsFailedPrecondition,
		},
		{
			name:   "range out of bounds",
			noLoad: true,
			update: func() (*editorsvc.UpdateOutput, error) {
				return s.orchestrator.UpdateCastTimeRange(s.ctx, &editorsvc.UpdateCastTimeRangeInput{DraftID: draftID, Min: ptr(0)})
			},
			wantErr: errors.IsInvalidArgument,
		},
		{
			name: "spell type",
			update: func() (*editorsvc.UpdateOutput, error) {
				return s.orchestrator.UpdateSpellType(s.ctx, &editorsvc.UpdateSpellTypeInput{DraftID: draftID, SpellType: "focus"})
			},
			validate: func(card *spellcard.SpellCard) {
				s.Equal(spellcard.SpellTypeFocus, card.SpellType)
			},
		},
		{
			name: "level",
			update: func() (*editorsvc.UpdateOutput, error) {
				return s.orchestrator.UpdateLevel(s.ctx, &editorsvc.UpdateNumberInput{DraftID: draftID, Value: 10})
			},
			validate: func(card *spellcard.SpellCard) {
				s.Equal(10, card.Level)
			},
		},
		{
			name:   "level above ten",
			noLoad: true,
			update: func() (*editorsvc.UpdateOutput, error) {
				return s.orchestrator.UpdateLevel(s.ctx, &editorsvc.UpdateNumberInput{DraftID: draftID, Value: 11})
			},
			wantErr: errors.IsInvalidArgument,
		},
		{
			name: "traits split on commas and spaces",
			update: func() (*editorsvc.UpdateOutput, error) {
				return s.orchestrator.UpdateTraits(s.ctx, &editorsvc.UpdateTextInput{DraftID: draftID, Text: "Fire, AoE  Evocation,"})
			},
			validate: func(card *spellcard.SpellCard) {
				s.Equal([]string{"Fire", "AoE", "Evocation"}, card.Traits)
			},
		},
	})
}

func (s *OrchestratorTestSuite) TestUpdateOverviewFields() {
	s.runFieldCases([]fieldTestCase{
		{
			name: "range is inserted before targets",
			card: builders.NewSpellCardBuilder().WithTargets("1 creature").Build(),
			update: func() (*editorsvc.UpdateOutput, error) {
				return s.orchestrator.UpdateRange(s.ctx, &editorsvc.UpdateNumberInput{DraftID: draftID, Value: 30})
			},
			validate: func(card *spellcard.SpellCard) {
				s.Equal([]spellcard.OverviewKind{spellcard.OverviewRange, spellcard.OverviewTargets}, overviewKinds(card))
				s.Equal(30, card.Overview[0].Range)
			},
		},
		{
			name: "zero range removes it",
			card: builders.NewSpellCardBuilder().WithRange(30).Build(),
			update: func() (*editorsvc.UpdateOutput, error) {
				return s.orchestrator.UpdateRange(s.ctx, &editorsvc.UpdateNumberInput{DraftID: draftID, Value: 0})
			},
			validate: func(card *spellcard.SpellCard) {
				s.Empty(card.Overview)
			},
		},
		{
			name:   "negative range",
			noLoad: true,
			update: func() (*editorsvc.UpdateOutput, error) {
				return s.orchestrator.UpdateRange(s.ctx, &editorsvc.UpdateNumberInput{DraftID: draftID, Value: -5})
			},
			wantErr: errors.IsInvalidArgument,
		},
		{
			name: "area shape uses the default size",
			card: builders.NewSpellCardBuilder().WithRange(20).WithDuration("1 minute").Build(),
			update: func() (*editorsvc.UpdateOutput, error) {
				return s.orchestrator.UpdateAreaShape(s.ctx, &editorsvc.UpdateAreaShapeInput{DraftID: draftID, Shape: "cone"})
			},
			validate: func(card *spellcard.SpellCard) {
				s.Equal([]spellcard.OverviewKind{spellcard.OverviewRange, spellcard.OverviewArea, spellcard.OverviewDuration}, overviewKinds(card))
				s.Equal(spellcard.Area{Shape: spellcard.AreaCone, Size: 15}, card.Overview[1].Area)
			},
		},
		{
			name: "area shape none removes the area",
			card: builders.NewSpellCardBuilder().WithArea(spellcard.Area{Shape: spellcard.AreaBurst, Size: 20}).Build(),
			update: func() (*editorsvc.UpdateOutput, error) {
				return s.orchestrator.UpdateAreaShape(s.ctx, &editorsvc.UpdateAreaShapeInput{DraftID: draftID, Shape: "none"})
			},
			validate: func(card *spellcard.SpellCard) {
				s.Empty(card.Overview)
			},
		},
		{
			name: "area size keeps the line width",
			card: builders.NewSpellCardBuilder().WithArea(spellcard.Area{Shape: spellcard.AreaLine, Size: 60, Width: ptr(10)}).Build(),
			update: func() (*editorsvc.UpdateOutput, error) {
				return s.orchestrator.UpdateAreaSize(s.ctx, &editorsvc.UpdateAreaSizeInput{DraftID: draftID, Shape: "burst", Size: 120})
			},
			validate: func(card *spellcard.SpellCard) {
				s.Equal(spellcard.Area{Shape: spellcard.AreaLine, Size: 120, Width: ptr(10)}, card.Overview[0].Area)
			},
		},
		{
			name: "area size without an area uses the given shape",
			update: func() (*editorsvc.UpdateOutput, error) {
				return s.orchestrator.UpdateAreaSize(s.ctx, &editorsvc.UpdateAreaSizeInput{DraftID: draftID, Shape: "eman", Size: 10})
			},
			validate: func(card *spellcard.SpellCard) {
				s.Equal(spellcard.Area{Shape: spellcard.AreaEmanation, Size: 10}, card.Overview[0].Area)
			},
		},
		{
			name: "line width",
			card: builders.NewSpellCardBuilder().WithArea(spellcard.Area{Shape: spellcard.AreaLine, Size: 60}).Build(),
			update: func() (*editorsvc.UpdateOutput, error) {
				return s.orchestrator.UpdateLineWidth(s.ctx, &editorsvc.UpdateNumberInput{DraftID: draftID, Value: 5})
			},
			validate: func(card *spellcard.SpellCard) {
				s.Equal("60ft long and 5ft wide line", card.Overview[0].Area.String())
			},
		},
		{
			name: "line width on a burst",
			card: builders.NewSpellCardBuilder().WithArea(spellcard.Area{Shape: spellcard.AreaBurst, Size: 5}).Build(),
			update: func() (*editorsvc.UpdateOutput, error) {
				return s.orchestrator.UpdateLineWidth(s.ctx, &editorsvc.UpdateNumberInput{DraftID: draftID, Value: 5})
			},
			wantErr: errors.IsFailedPrecondition,
		},
		{
			name: "targets",
			update: func() (*editorsvc.UpdateOutput, error) {
				return s.orchestrator.UpdateTargets(s.ctx, &editorsvc.UpdateTextInput{DraftID: draftID, Text: "1 creature"})
			},
			validate: func(card *spellcard.SpellCard) {
				s.Equal([]spellcard.Overview{spellcard.TargetsOverview("1 creature")}, card.Overview)
			},
		},
		{
			name: "empty duration removes it",
			card: builders.NewSpellCardBuilder().WithDuration("1 minute").Build(),
			update: func() (*editorsvc.UpdateOutput, error) {
				return s.orchestrator.UpdateDuration(s.ctx, &editorsvc.UpdateTextInput{DraftID: draftID, Text: ""})
			},
			validate: func(card *spellcard.SpellCard) {
				s.Empty(card.Overview)
			},
		},
		{
			name: "defence replaces the previous one",
			card: builders.NewSpellCardBuilder().WithDefence(spellcard.DefenceFortitude).Build(),
			update: func() (*editorsvc.UpdateOutput, error) {
				return s.orchestrator.UpdateDefence(s.ctx, &editorsvc.UpdateDefenceInput{DraftID: draftID, Defence: "refl"})
			},
			validate: func(card *spellcard.SpellCard) {
				s.Equal([]spellcard.Overview{spellcard.DefenceOverview(spellcard.DefenceReflex)}, card.Overview)
			},
		},
		{
			name:   "unknown defence",
			noLoad: true,
			update: func() (*editorsvc.UpdateOutput, error) {
				return s.orchestrator.UpdateDefence(s.ctx, &editorsvc.UpdateDefenceInput{DraftID: draftID, Defence: "luck"})
			},
			wantErr: errors.IsInvalidArgument,
		},
	})
}

func (s *OrchestratorTestSuite) TestUpdateBodyFields() {
	s.runFieldCases([]fieldTestCase{
		{
			name: "roll outcomes stay in degree order",
			card: builders.NewSpellCardBuilder().
				WithRoll(spellcard.DegreeCriticalFailure, "double damage").
				Build(),
			update: func() (*editorsvc.UpdateOutput, error) {
				return s.orchestrator.UpdateRollOutcome(s.ctx, &editorsvc.UpdateRollOutcomeInput{
					DraftID: draftID,
					Degree:  "success",
					Text:    "half damage",
				})
			},
			validate: func(card *spellcard.SpellCard) {
				s.Equal([]spellcard.RollResult{
					{Degree: spellcard.DegreeSuccess, Text: "half damage"},
					{Degree: spellcard.DegreeCriticalFailure, Text: "double damage"},
				}, card.Rolls)
			},
		},
		{
			name: "empty roll text removes the outcome",
			card: builders.NewSpellCardBuilder().WithRoll(spellcard.DegreeSuccess, "half damage").Build(),
			update: func() (*editorsvc.UpdateOutput, error) {
				return s.orchestrator.UpdateRollOutcome(s.ctx, &editorsvc.UpdateRollOutcomeInput{DraftID: draftID, Degree: "success"})
			},
			validate: func(card *spellcard.SpellCard) {
				s.Empty(card.Rolls)
			},
		},
		{
			name: "heightened trailing row appends",
			update: func() (*editorsvc.UpdateOutput, error) {
				return s.orchestrator.UpdateHeightened(s.ctx, &editorsvc.UpdateHeightenedInput{
					DraftID: draftID,
					Index:   0,
					Text:    ptr("Increase damage by 1d6"),
				})
			},
			validate: func(card *spellcard.SpellCard) {
				s.Equal([]spellcard.Heightened{
					{Kind: spellcard.HeightenedRepeat, Level: 1, Text: "Increase damage by 1d6"},
				}, card.Heightened)
			},
		},
		{
			name: "heightened trailing row without text is kept pending",
			update: func() (*editorsvc.UpdateOutput, error) {
				return s.orchestrator.UpdateHeightened(s.ctx, &editorsvc.UpdateHeightenedInput{
					DraftID: draftID,
					Index:   0,
					Kind:    ptr("single"),
					Level:   ptr(3),
				})
			},
			validateDraft: func(draft *spellcard.Draft) {
				s.Empty(draft.Card.Heightened)
				s.Equal(&spellcard.Heightened{Kind: spellcard.HeightenedSingle, Level: 3}, draft.PendingHeightened)
				s.Equal(spellcard.Heightened{Kind: spellcard.HeightenedSingle, Level: 3}, draft.NextHeightened())
			},
		},
		{
			name:    "heightened text on the trailing row uses the pending kind and level",
			pending: &spellcard.Heightened{Kind: spellcard.HeightenedSingle, Level: 3},
			update: func() (*editorsvc.UpdateOutput, error) {
				return s.orchestrator.UpdateHeightened(s.ctx, &editorsvc.UpdateHeightenedInput{
					DraftID: draftID,
					Index:   0,
					Text:    ptr("Target up to 3 creatures"),
				})
			},
			validateDraft: func(draft *spellcard.Draft) {
				s.Equal([]spellcard.Heightened{
					{Kind: spellcard.HeightenedSingle, Level: 3, Text: "Target up to 3 creatures"},
				}, draft.Card.Heightened)
				s.Nil(draft.PendingHeightened)
			},
		},
		{
			name:    "heightened trailing row back to the default clears pending",
			pending: &spellcard.Heightened{Kind: spellcard.HeightenedSingle, Level: 1},
			update: func() (*editorsvc.UpdateOutput, error) {
				return s.orchestrator.UpdateHeightened(s.ctx, &editorsvc.UpdateHeightenedInput{
					DraftID: draftID,
					Index:   0,
					Kind:    ptr("repeat"),
				})
			},
			validateDraft: func(draft *spellcard.Draft) {
				s.Empty(draft.Card.Heightened)
				s.Nil(draft.PendingHeightened)
			},
		},
		{
			name:    "heightened edit of an existing row leaves pending alone",
			card:    builders.NewSpellCardBuilder().WithHeightened(spellcard.HeightenedRepeat, 2, "first").Build(),
			pending: &spellcard.Heightened{Kind: spellcard.HeightenedSingle, Level: 4},
			update: func() (*editorsvc.UpdateOutput, error) {
				return s.orchestrator.UpdateHeightened(s.ctx, &editorsvc.UpdateHeightenedInput{
					DraftID: draftID,
					Index:   0,
					Level:   ptr(3),
				})
			},
			validateDraft: func(draft *spellcard.Draft) {
				s.Equal(3, draft.Card.Heightened[0].Level)
				s.Equal(&spellcard.Heightened{Kind: spellcard.HeightenedSingle, Level: 4}, draft.PendingHeightened)
			},
		},
		{
			name:   "heightened level above the spell levels",
			noLoad: true,
			update: func() (*editorsvc.UpdateOutput, error) {
				return s.orchestrator.UpdateHeightened(s.ctx, &editorsvc.UpdateHeightenedInput{
					DraftID: draftID,
					Level:   ptr(11),
				})
			},
			wantErr: errors.IsInvalidArgument,
		},
		{
			name:   "heightened level zero",
			noLoad: true,
			update: func() (*editorsvc.UpdateOutput, error) {
				return s.orchestrator.UpdateHeightened(s.ctx, &editorsvc.UpdateHeightenedInput{
					DraftID: draftID,
					Level:   ptr(0),
				})
			},
			wantErr: errors.IsInvalidArgument,
		},
		{
			name: "heightened edit keeps unset fields",
			card: builders.NewSpellCardBuilder().
				WithHeightened(spellcard.HeightenedRepeat, 2, "Increase damage by 1d4").
				Build(),
			update: func() (*editorsvc.UpdateOutput, error) {
				return s.orchestrator.UpdateHeightened(s.ctx, &editorsvc.UpdateHeightenedInput{
					DraftID: draftID,
					Index:   0,
					Kind:    ptr("single"),
					Level:   ptr(5),
				})
			},
			validate: func(card *spellcard.SpellCard) {
				s.Equal([]spellcard.Heightened{
					{Kind: spellcard.HeightenedSingle, Level: 5, Text: "Increase damage by 1d4"},
				}, card.Heightened)
				s.Equal("Heightened (5th)", card.Heightened[0].Label())
			},
		},
		{
			name: "heightened empty text removes the entry",
			card: builders.NewSpellCardBuilder().
				WithHeightened(spellcard.HeightenedRepeat, 1, "first").
				WithHeightened(spellcard.HeightenedSingle, 3, "second").
				Build(),
			update: func() (*editorsvc.UpdateOutput, error) {
				return s.orchestrator.UpdateHeightened(s.ctx, &editorsvc.UpdateHeightenedInput{
					DraftID: draftID,
					Index:   0,
					Text:    ptr(""),
				})
			},
			validate: func(card *spellcard.SpellCard) {
				s.Len(card.Heightened, 1)
				s.Equal("second", card.Heightened[0].Text)
			},
		},
		{
			name: "heightened index past the trailing row",
			update: func() (*editorsvc.UpdateOutput, error) {
				return s.orchestrator.UpdateHeightened(s.ctx, &editorsvc.UpdateHeightenedInput{
					DraftID: draftID,
					Index:   2,
					Text:    ptr("too far"),
				})
			},
			wantErr: errors.IsOutOfRange,
		},
		{
			name:   "heightened unknown kind",
			noLoad: true,
			update: func() (*editorsvc.UpdateOutput, error) {
				return s.orchestrator.UpdateHeightened(s.ctx, &editorsvc.UpdateHeightenedInput{
					DraftID: draftID,
					Kind:    ptr("sometimes"),
				})
			},
			wantErr: errors.IsInvalidArgument,
		},
		{
			name: "remove heightened",
			card: builders.NewSpellCardBuilder().
				WithHeightened(spellcard.HeightenedRepeat, 1, "first").
				WithHeightened(spellcard.HeightenedSingle, 3, "second").
				Build(),
			update: func() (*editorsvc.UpdateOutput, error) {
				return s.orchestrator.RemoveHeightened(s.ctx, &editorsvc.RemoveHeightenedInput{DraftID: draftID, Index: 1})
			},
			validate: func(card *spellcard.SpellCard) {
				s.Len(card.Heightened, 1)
				s.Equal("first", card.Heightened[0].Text)
			},
		},
	})
}

func (s *OrchestratorTestSuite) TestUpdate_MissingDraftID() {
	_, err := s.orchestrator.UpdateName(s.ctx, &editorsvc.UpdateTextInput{Text: "Fireball"})
	s.Require().Error(err)
	s.Contains(err.Error(), "draft ID is required")
}

func (s *OrchestratorTestSuite) TestUpdate_StoreFailure() {
	s.mockDraftRepo.EXPECT().
		Get(s.ctx, carddraft.GetInput{ID: draftID}).
		Return(&carddraft.GetOutput{Draft: testutils.CreateTestDraft(draftID)}, nil)
	s.mockDraftRepo.EXPECT().
		Update(s.ctx, gomock.Any()).
		Return(nil, errors.Internal("write failed"))

	_, err := s.orchestrator.UpdateName(s.ctx, &editorsvc.UpdateTextInput{DraftID: draftID, Text: "Fireball"})
	s.Require().Error(err)
	s.Contains(err.Error(), "failed to update draft")
}
