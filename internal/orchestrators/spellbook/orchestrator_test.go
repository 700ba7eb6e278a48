package spellbook_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/spell-cards/internal/entities/spellcard"
	"github.com/KirkDiggler/spell-cards/internal/errors"
	"github.com/KirkDiggler/spell-cards/internal/orchestrators/spellbook"
	bookrepo "github.com/KirkDiggler/spell-cards/internal/repositories/spellbook"
	spellbookmock "github.com/KirkDiggler/spell-cards/internal/repositories/spellbook/mock"
	spellbooksvc "github.com/KirkDiggler/spell-cards/internal/services/spellbook"
	"github.com/KirkDiggler/spell-cards/internal/testutils"
)

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockRepo     *spellbookmock.MockRepository
	orchestrator *spellbook.Orchestrator
	ctx          context.Context

	saved *spellcard.SpellBook
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRepo = spellbookmock.NewMockRepository(s.ctrl)
	s.ctx = context.Background()
	s.saved = nil

	var err error
	s.orchestrator, err = spellbook.New(&spellbook.Config{BookRepo: s.mockRepo})
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

// expectBook makes the repository return a fresh copy of the starter book
func (s *OrchestratorTestSuite) expectBook() {
	s.mockRepo.EXPECT().
		Get(s.ctx, bookrepo.GetInput{}).
		Return(&bookrepo.GetOutput{Book: testutils.SeedBook()}, nil)
}

// expectSave captures the book written to the repository
func (s *OrchestratorTestSuite) expectSave() {
	s.mockRepo.EXPECT().
		Save(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input bookrepo.SaveInput) (*bookrepo.SaveOutput, error) {
			s.saved = input.Book
			return &bookrepo.SaveOutput{}, nil
		})
}

func names(book *spellcard.SpellBook) []string {
	out := make([]string, 0, len(book.Spells))
	for _, card := range book.Spells {
		out = append(out, card.Name)
	}
	return out
}

func (s *OrchestratorTestSuite) TestNew() {
	testCases := []struct {
		name    string
		cfg     *spellbook.Config
		wantErr bool
		errMsg  string
	}{
		{
			name:    "nil config",
			cfg:     nil,
			wantErr: true,
			errMsg:  "config is required",
		},
		{
			name:    "missing repository",
			cfg:     &spellbook.Config{},
			wantErr: true,
			errMsg:  "BookRepo",
		},
		{
			name: "valid config",
			cfg:  &spellbook.Config{BookRepo: s.mockRepo},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			orch, err := spellbook.New(tc.cfg)
			if tc.wantErr {
				s.Require().Error(err)
				s.Contains(err.Error(), tc.errMsg)
				s.Nil(orch)
				return
			}
			s.Require().NoError(err)
			s.NotNil(orch)
		})
	}
}

func (s *OrchestratorTestSuite) TestSeedBookMatchesFixtures() {
	book, err := spellbook.SeedBook()
	s.Require().NoError(err)
	s.Equal(testutils.SeedBook(), book)
}

func (s *OrchestratorTestSuite) TestGetBook_SeedsWhenMissing() {
	s.mockRepo.EXPECT().
		Get(s.ctx, bookrepo.GetInput{}).
		Return(nil, errors.NotFound("spell book not found"))
	s.expectSave()

	output, err := s.orchestrator.GetBook(s.ctx, &spellbooksvc.GetBookInput{})
	s.Require().NoError(err)
	s.Equal([]string{"Lightningbolt", "Fireball", "Thunderstorm"}, names(output.Book))
	s.Equal(output.Book, s.saved)
}

func (s *OrchestratorTestSuite) TestGetBook_StoreFailure() {
	s.mockRepo.EXPECT().
		Get(s.ctx, bookrepo.GetInput{}).
		Return(nil, errors.Unavailable("redis down"))

	output, err := s.orchestrator.GetBook(s.ctx, &spellbooksvc.GetBookInput{})
	s.Require().Error(err)
	s.Nil(output)
	s.Equal(errors.CodeUnavailable, errors.GetCode(err))
}

func (s *OrchestratorTestSuite) TestGetBook_NilInput() {
	_, err := s.orchestrator.GetBook(s.ctx, nil)
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestGetCard() {
	testCases := []struct {
		name     string
		index    int
		wantErr  bool
		wantName string
	}{
		{name: "first card", index: 0, wantName: "Lightningbolt"},
		{name: "last card", index: 2, wantName: "Thunderstorm"},
		{name: "negative index", index: -1, wantErr: true},
		{name: "past the end", index: 3, wantErr: true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.expectBook()

			output, err := s.orchestrator.GetCard(s.ctx, &spellbooksvc.GetCardInput{Index: tc.index})
			if tc.wantErr {
				s.Require().Error(err)
				s.True(errors.IsNotFound(err))
				return
			}
			s.Require().NoError(err)
			s.Equal(tc.wantName, output.Card.Name)
		})
	}
}

func (s *OrchestratorTestSuite) TestAddCard() {
	s.expectBook()
	s.expectSave()

	card := spellcard.New()
	card.Name = "Shield"
	card.SpellType = spellcard.SpellTypeCantrip

	output, err := s.orchestrator.AddCard(s.ctx, &spellbooksvc.AddCardInput{Card: card})
	s.Require().NoError(err)
	s.Equal(3, output.Index)
	s.Equal([]string{"Lightningbolt", "Fireball", "Thunderstorm", "Shield"}, names(s.saved))

	// The stored card is a copy
	card.Name = "Changed"
	s.Equal("Shield", s.saved.Spells[3].Name)
}

func (s *OrchestratorTestSuite) TestAddCard_Invalid() {
	testCases := []struct {
		name   string
		input  *spellbooksvc.AddCardInput
		errMsg string
	}{
		{
			name:   "nil input",
			input:  nil,
			errMsg: "input is required",
		},
		{
			name:   "nil card",
			input:  &spellbooksvc.AddCardInput{},
			errMsg: "card is required",
		},
		{
			name:   "missing name",
			input:  &spellbooksvc.AddCardInput{Card: spellcard.New()},
			errMsg: "spell_name",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.orchestrator.AddCard(s.ctx, tc.input)
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err))
			s.Contains(err.Error(), tc.errMsg)
		})
	}
}

func (s *OrchestratorTestSuite) TestReplaceCard() {
	s.expectBook()
	s.expectSave()

	card := testutils.Fireball()
	card.Name = "Greater Fireball"

	_, err := s.orchestrator.ReplaceCard(s.ctx, &spellbooksvc.ReplaceCardInput{Index: 1, Card: card})
	s.Require().NoError(err)
	s.Equal([]string{"Lightningbolt", "Greater Fireball", "Thunderstorm"}, names(s.saved))
}

func (s *OrchestratorTestSuite) TestReplaceCard_IfMatch() {
	testCases := []struct {
		name    string
		ifMatch string
		wantErr bool
	}{
		{name: "card unchanged", ifMatch: testutils.Fireball().Fingerprint()},
		{name: "card at index is a different card", ifMatch: testutils.Thunderstorm().Fingerprint(), wantErr: true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.saved = nil
			s.expectBook()
			if !tc.wantErr {
				s.expectSave()
			}

			card := testutils.Fireball()
			card.Name = "Greater Fireball"

			_, err := s.orchestrator.ReplaceCard(s.ctx, &spellbooksvc.ReplaceCardInput{
				Index:   1,
				Card:    card,
				IfMatch: tc.ifMatch,
			})
			if tc.wantErr {
				s.Require().Error(err)
				s.True(errors.IsFailedPrecondition(err))
				s.Nil(s.saved)
				return
			}
			s.Require().NoError(err)
			s.Equal([]string{"Lightningbolt", "Greater Fireball", "Thunderstorm"}, names(s.saved))
		})
	}
}

func (s *OrchestratorTestSuite) TestReplaceCard_MissingIndex() {
	s.expectBook()

	_, err := s.orchestrator.ReplaceCard(s.ctx, &spellbooksvc.ReplaceCardInput{
		Index: 7,
		Card:  testutils.Fireball(),
	})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestDeleteCard() {
	s.expectBook()
	s.expectSave()

	output, err := s.orchestrator.DeleteCard(s.ctx, &spellbooksvc.DeleteCardInput{Index: 1})
	s.Require().NoError(err)
	s.Equal([]string{"Lightningbolt", "Thunderstorm"}, names(output.Book))
	s.Equal(output.Book, s.saved)
}

func (s *OrchestratorTestSuite) TestDeleteCard_SaveFailure() {
	s.expectBook()
	s.mockRepo.EXPECT().
		Save(s.ctx, gomock.Any()).
		Return(nil, errors.Unavailable("store unreachable"))

	_, err := s.orchestrator.DeleteCard(s.ctx, &spellbooksvc.DeleteCardInput{Index: 0})
	s.Require().Error(err)
	s.Contains(err.Error(), "failed to save spell book")
	s.Equal(errors.CodeUnavailable, errors.GetCode(err))
}

func (s *OrchestratorTestSuite) TestMoveCard() {
	testCases := []struct {
		name    string
		from    int
		to      int
		want    []string
		noSave  bool
		wantErr func(error) bool
	}{
		{
			name: "move first to last",
			from: 0,
			to:   2,
			want: []string{"Fireball", "Thunderstorm", "Lightningbolt"},
		},
		{
			name: "move last to first",
			from: 2,
			to:   0,
			want: []string{"Thunderstorm", "Lightningbolt", "Fireball"},
		},
		{
			name:   "same position",
			from:   1,
			to:     1,
			noSave: true,
			want:   []string{"Lightningbolt", "Fireball", "Thunderstorm"},
		},
		{
			name:    "unknown source",
			from:    5,
			to:      0,
			noSave:  true,
			wantErr: errors.IsNotFound,
		},
		{
			name:    "target out of range",
			from:    0,
			to:      3,
			noSave:  true,
			wantErr: errors.IsInvalidArgument,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.expectBook()
			if !tc.noSave {
				s.expectSave()
			}

			output, err := s.orchestrator.MoveCard(s.ctx, &spellbooksvc.MoveCardInput{From: tc.from, To: tc.to})
			if tc.wantErr != nil {
				s.Require().Error(err)
				s.True(tc.wantErr(err))
				return
			}
			s.Require().NoError(err)
			s.Equal(tc.want, names(output.Book))
		})
	}
}

func (s *OrchestratorTestSuite) TestSearchCards() {
	testCases := []struct {
		name            string
		query           string
		max             int
		wantMatches     []int
		wantSuggestions []string
	}{
		{
			name:            "substring ignores case",
			query:           "BOLT",
			wantMatches:     []int{0},
			wantSuggestions: []string{},
		},
		{
			name:            "empty query matches everything",
			query:           "",
			wantMatches:     []int{0, 1, 2},
			wantSuggestions: []string{},
		},
		{
			name:            "misspelling suggests closest name",
			query:           "firebal1",
			wantMatches:     []int{},
			wantSuggestions: []string{"Fireball"},
		},
		{
			name:            "nothing close",
			query:           "xyz",
			wantMatches:     []int{},
			wantSuggestions: []string{},
		},
		{
			name:            "suggestions are capped",
			query:           "thunderstorn",
			max:             1,
			wantMatches:     []int{},
			wantSuggestions: []string{"Thunderstorm"},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.expectBook()

			output, err := s.orchestrator.SearchCards(s.ctx, &spellbooksvc.SearchCardsInput{
				Query:          tc.query,
				MaxSuggestions: tc.max,
			})
			s.Require().NoError(err)

			indexes := []int{}
			for _, m := range output.Matches {
				indexes = append(indexes, m.Index)
			}
			s.Equal(tc.wantMatches, indexes)
			s.Equal(tc.wantSuggestions, output.Suggestions)
		})
	}
}

func (s *OrchestratorTestSuite) TestImportCards_Append() {
	s.expectBook()
	s.expectSave()

	shield := spellcard.New()
	shield.Name = "Shield"

	output, err := s.orchestrator.ImportCards(s.ctx, &spellbooksvc.ImportCardsInput{
		Cards: []*spellcard.SpellCard{shield},
	})
	s.Require().NoError(err)
	s.Equal(1, output.Imported)
	s.Equal([]string{"Lightningbolt", "Fireball", "Thunderstorm", "Shield"}, names(s.saved))
}

func (s *OrchestratorTestSuite) TestImportCards_Replace() {
	s.expectSave()

	output, err := s.orchestrator.ImportCards(s.ctx, &spellbooksvc.ImportCardsInput{
		Cards:   []*spellcard.SpellCard{testutils.Fireball()},
		Replace: true,
	})
	s.Require().NoError(err)
	s.Equal(1, output.Imported)
	s.Equal([]string{"Fireball"}, names(s.saved))
}

func (s *OrchestratorTestSuite) TestImportCards_RejectsInvalidCard() {
	bad := testutils.Fireball()
	bad.Level = 11

	_, err := s.orchestrator.ImportCards(s.ctx, &spellbooksvc.ImportCardsInput{
		Cards: []*spellcard.SpellCard{testutils.Lightningbolt(), bad},
	})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "card 1 is invalid")
	s.Equal(1, errors.GetMeta(err)["index"])
}

func (s *OrchestratorTestSuite) TestExportBook() {
	s.Run("json by default", func() {
		s.expectBook()

		output, err := s.orchestrator.ExportBook(s.ctx, &spellbooksvc.ExportBookInput{})
		s.Require().NoError(err)
		s.Equal("application/json", output.ContentType)

		var decoded spellcard.SpellBook
		s.Require().NoError(json.Unmarshal(output.Data, &decoded))
		s.Equal([]string{"Lightningbolt", "Fireball", "Thunderstorm"}, names(&decoded))
	})

	s.Run("yaml reads back", func() {
		s.expectBook()

		output, err := s.orchestrator.ExportBook(s.ctx, &spellbooksvc.ExportBookInput{Format: "YAML"})
		s.Require().NoError(err)
		s.Equal("application/yaml", output.ContentType)

		book, err := spellcard.DecodeBookYAML(output.Data)
		s.Require().NoError(err)
		s.Equal(testutils.SeedBook(), book)
	})

	s.Run("unknown format", func() {
		_, err := s.orchestrator.ExportBook(s.ctx, &spellbooksvc.ExportBookInput{Format: "xml"})
		s.Require().Error(err)
		s.True(errors.IsInvalidArgument(err))
	})
}
