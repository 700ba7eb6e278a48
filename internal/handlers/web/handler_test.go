package web_test

import (
	"context"
	"encoding/json"
	"html"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/spell-cards/internal/clients/srd"
	srdmock "github.com/KirkDiggler/spell-cards/internal/clients/srd/mock"
	"github.com/KirkDiggler/spell-cards/internal/entities/spellcard"
	"github.com/KirkDiggler/spell-cards/internal/handlers/web"
	editororch "github.com/KirkDiggler/spell-cards/internal/orchestrators/editor"
	bookorch "github.com/KirkDiggler/spell-cards/internal/orchestrators/spellbook"
	"github.com/KirkDiggler/spell-cards/internal/pkg/clock"
	"github.com/KirkDiggler/spell-cards/internal/pkg/idgen"
	carddraft "github.com/KirkDiggler/spell-cards/internal/repositories/card_draft"
	bookrepo "github.com/KirkDiggler/spell-cards/internal/repositories/spellbook"
	"github.com/KirkDiggler/spell-cards/internal/services/spellbook"
	"github.com/KirkDiggler/spell-cards/internal/testutils"
	"github.com/KirkDiggler/spell-cards/internal/testutils/builders"
)

type HandlerTestSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	cleanup func()
	srd     *srdmock.MockClient
	book    *bookorch.Orchestrator
	editor  *editororch.Orchestrator
	router  http.Handler
	ctx     context.Context
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.srd = srdmock.NewMockClient(s.ctrl)

	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup

	repo, err := bookrepo.NewRedisRepository(&bookrepo.RedisConfig{Client: client})
	s.Require().NoError(err)

	s.book, err = bookorch.New(&bookorch.Config{BookRepo: repo})
	s.Require().NoError(err)

	s.editor, err = editororch.New(&editororch.Config{
		DraftRepo:   carddraft.NewRedisRepository(client),
		Book:        s.book,
		SRD:         s.srd,
		IDGenerator: idgen.NewSequential("draft"),
		Clock:       clock.New(),
	})
	s.Require().NoError(err)

	handler, err := web.NewHandler(&web.HandlerConfig{Book: s.book, Editor: s.editor, SRDImport: true})
	s.Require().NoError(err)
	s.router = handler.Routes()
}

func (s *HandlerTestSuite) TearDownTest() {
	s.cleanup()
	s.ctrl.Finish()
}

func (s *HandlerTestSuite) do(method, target string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}

	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if htmx {
		req.Header.Set("HX-Request", "true")
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerTestSuite) names() []string {
	output, err := s.book.GetBook(s.ctx, &spellbook.GetBookInput{})
	s.Require().NoError(err)
	names := []string{}
	for _, card := range output.Book.Spells {
		names = append(names, card.Name)
	}
	return names
}

// newDraft creates an empty draft through the web interface
func (s *HandlerTestSuite) newDraft() string {
	rec := s.do(http.MethodPost, "/drafts", url.Values{}, false)
	s.Require().Equal(http.StatusSeeOther, rec.Code)
	location := rec.Header().Get("Location")
	s.Require().True(strings.HasPrefix(location, "/drafts/"))
	return strings.TrimPrefix(location, "/drafts/")
}

// editDraft opens a draft of the book card at index
func (s *HandlerTestSuite) editDraft(index string) string {
	rec := s.do(http.MethodPost, "/cards/"+index+"/edit", nil, false)
	s.Require().Equal(http.StatusSeeOther, rec.Code)
	return strings.TrimPrefix(rec.Header().Get("Location"), "/drafts/")
}

var (
	inputPattern    = regexp.MustCompile(`<input type="[^"]*" name="([^"]+)" value="([^"]*)"`)
	textareaPattern = regexp.MustCompile(`<textarea name="([^"]+)"[^>]*>([^<]*)</textarea>`)
	selectPattern   = regexp.MustCompile(`<select name="([^"]+)"[^>]*>(.*?)</select>`)
	selectedPattern = regexp.MustCompile(`<option value="([^"]*)" selected>`)
)

// editorForm builds the body htmx posts from the editor form: every named
// control with its current value
func (s *HandlerTestSuite) editorForm(id string) url.Values {
	rec := s.do(http.MethodGet, "/drafts/"+id, nil, true)
	s.Require().Equal(http.StatusOK, rec.Code)

	body := rec.Body.String()
	start := strings.Index(body, `<form class="editor-form"`)
	end := strings.Index(body, "</form>")
	s.Require().True(start >= 0 && end > start, "editor form not found")
	form := body[start:end]

	values := url.Values{}
	for _, m := range inputPattern.FindAllStringSubmatch(form, -1) {
		values.Add(m[1], html.UnescapeString(m[2]))
	}
	for _, m := range textareaPattern.FindAllStringSubmatch(form, -1) {
		values.Add(m[1], html.UnescapeString(m[2]))
	}
	for _, m := range selectPattern.FindAllStringSubmatch(form, -1) {
		if selected := selectedPattern.FindStringSubmatch(m[2]); selected != nil {
			values.Add(m[1], html.UnescapeString(selected[1]))
		}
	}
	return values
}

func (s *HandlerTestSuite) TestNewHandler_RequiresServices() {
	_, err := web.NewHandler(&web.HandlerConfig{})
	s.Require().Error(err)
	s.Contains(err.Error(), "Book")
}

func (s *HandlerTestSuite) TestHealthz() {
	rec := s.do(http.MethodGet, "/healthz", nil, false)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("ok", rec.Body.String())
}

func (s *HandlerTestSuite) TestStylesheet() {
	rec := s.do(http.MethodGet, "/static/style.css", nil, false)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Header().Get("Content-Type"), "text/css")
	s.Contains(rec.Body.String(), ".spellcard")
}

func (s *HandlerTestSuite) TestShowBook_SeedsStarterBook() {
	rec := s.do(http.MethodGet, "/", nil, false)

	s.Equal(http.StatusOK, rec.Code)
	body := rec.Body.String()
	s.Contains(body, "<h1>My PF2e Spellbook</h1>")
	s.Contains(body, "Lightningbolt")
	s.Contains(body, "Fireball")
	s.Contains(body, "Thunderstorm")
	s.Contains(body, `name="srd"`)
}

func (s *HandlerTestSuite) TestSearch() {
	rec := s.do(http.MethodGet, "/cards/search?q=fire", nil, false)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "Fireball")
	s.NotContains(rec.Body.String(), "Thunderstorm")

	rec = s.do(http.MethodGet, "/cards/search?q=thunderstrom", nil, false)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "Did you mean")
	s.Contains(rec.Body.String(), `q=Thunderstorm`)
}

func (s *HandlerTestSuite) TestSearch_EmptyQueryRedirects() {
	rec := s.do(http.MethodGet, "/cards/search?q=", nil, false)
	s.Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/", rec.Header().Get("Location"))
}

func (s *HandlerTestSuite) TestDeleteCard() {
	rec := s.do(http.MethodPost, "/cards/1/delete", nil, false)
	s.Equal(http.StatusSeeOther, rec.Code)
	s.Equal([]string{"Lightningbolt", "Thunderstorm"}, s.names())
}

func (s *HandlerTestSuite) TestDeleteCard_Errors() {
	testCases := []struct {
		name       string
		target     string
		wantStatus int
	}{
		{name: "not a number", target: "/cards/abc/delete", wantStatus: http.StatusBadRequest},
		{name: "missing card", target: "/cards/9/delete", wantStatus: http.StatusNotFound},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			rec := s.do(http.MethodPost, tc.target, nil, false)
			s.Equal(tc.wantStatus, rec.Code)
		})
	}
}

func (s *HandlerTestSuite) TestMoveCard() {
	rec := s.do(http.MethodPost, "/cards/0/move?to=2", nil, true)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("/", rec.Header().Get("HX-Redirect"))
	s.Equal([]string{"Fireball", "Thunderstorm", "Lightningbolt"}, s.names())
}

func (s *HandlerTestSuite) TestMoveCard_MissingTarget() {
	rec := s.do(http.MethodPost, "/cards/0/move", nil, false)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "target position must be a number")
}

func (s *HandlerTestSuite) TestExportBook() {
	rec := s.do(http.MethodGet, "/book.json", nil, false)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("application/json", rec.Header().Get("Content-Type"))

	var book spellcard.SpellBook
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &book))
	s.Len(book.Spells, 3)

	rec = s.do(http.MethodGet, "/book.json?format=xml", nil, false)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerTestSuite) TestEditorFlow_NewCard() {
	id := s.newDraft()

	rec := s.do(http.MethodGet, "/drafts/"+id, nil, false)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "<!DOCTYPE html>")
	s.Contains(rec.Body.String(), `id="editor"`)

	steps := []struct {
		field string
		value string
		want  string
	}{
		{field: "name", value: "Shield", want: "Shield</a>"},
		{field: "cast_time", value: "range", want: "A to T"},
		{field: "cast_time_max", value: "2", want: "A to D"},
		{field: "spell_type", value: "cantrip", want: "<div>Cantrip 1</div>"},
		{field: "traits", value: "Abjuration, Force", want: `<div class="spell-trait">Force</div>`},
		{field: "range", value: "30", want: "<b>Range: </b>30ft"},
		{field: "area_shape", value: "line", want: "<b>Area: </b>60ft line"},
		{field: "line_width", value: "5", want: "60ft long and 5ft wide line"},
		{field: "defence", value: "refl", want: "<b>Defence: </b>Reflex"},
		{field: "success", value: "half damage", want: "<b>Success: </b>half damage"},
		{field: "critical_failure", value: "double damage", want: "<b>Critical Failure: </b>double damage"},
	}

	for _, step := range steps {
		rec := s.do(http.MethodPost, "/drafts/"+id+"/fields/"+step.field, url.Values{step.field: {step.value}}, true)
		s.Require().Equal(http.StatusOK, rec.Code, step.field)
		body := rec.Body.String()
		s.True(strings.HasPrefix(body, `<div id="editor"`), step.field)
		s.NotContains(body, `role="alert"`, step.field)
		s.Contains(body, step.want, step.field)
	}

	// Kind and level are chosen before the text, each change posting the row
	rec = s.do(http.MethodPost, "/drafts/"+id+"/heightened/0", url.Values{
		"heightened_0_kind":  {"single"},
		"heightened_0_level": {"3"},
		"heightened_0_text":  {""},
	}, true)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `name="heightened_0_level" value="3"`)
	s.Contains(rec.Body.String(), `<option value="single" selected>At level</option>`)

	rec = s.do(http.MethodPost, "/drafts/"+id+"/heightened/0", url.Values{
		"heightened_0_kind":  {"single"},
		"heightened_0_level": {"3"},
		"heightened_0_text":  {"Bigger shield"},
	}, true)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "<b>Heightened (3rd): </b>Bigger shield")

	rec = s.do(http.MethodPost, "/drafts/"+id+"/save", nil, false)
	s.Require().Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/", rec.Header().Get("Location"))
	s.Equal([]string{"Lightningbolt", "Fireball", "Thunderstorm", "Shield"}, s.names())

	// The draft is gone once saved
	rec = s.do(http.MethodGet, "/drafts/"+id, nil, false)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *HandlerTestSuite) TestEditorFlow_EditExistingCard() {
	id := s.editDraft("1")

	rec := s.do(http.MethodPost, "/drafts/"+id+"/fields/name", url.Values{"name": {"Greater Fireball"}}, false)
	s.Require().Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/drafts/"+id, rec.Header().Get("Location"))

	rec = s.do(http.MethodPost, "/drafts/"+id+"/save", nil, false)
	s.Require().Equal(http.StatusSeeOther, rec.Code)
	s.Equal([]string{"Lightningbolt", "Greater Fireball", "Thunderstorm"}, s.names())
}

func (s *HandlerTestSuite) TestEditor_PostsWholeForm() {
	id := s.editDraft("1")

	form := s.editorForm(id)
	s.Equal("Fireball", form.Get("name"))
	s.Equal("https://2e.aonprd.com/Spells.aspx?ID=1565", form.Get("link"))
	s.Equal("burst", form.Get("area_shape"))
	s.Equal("5", form.Get("heightened_1_level"))

	testCases := []struct {
		name   string
		target string
		key    string
		value  string
		want   string
	}{
		{
			name:   "link",
			target: "/fields/link",
			key:    "link",
			value:  "https://2e.aonprd.com/Spells.aspx?ID=9999",
			want:   `href="https://2e.aonprd.com/Spells.aspx?ID=9999" target="blank">Fireball</a>`,
		},
		{
			name:   "roll outcome",
			target: "/fields/failure",
			key:    "failure",
			value:  "The creature takes full damage",
			want:   "<b>Failure: </b>The creature takes full damage",
		},
		{
			name:   "area size keeps the shape",
			target: "/fields/area_size",
			key:    "area_size",
			value:  "30",
			want:   "<b>Area: </b>30ft burst",
		},
		{
			name:   "second heightened row",
			target: "/heightened/1",
			key:    "heightened_1_level",
			value:  "6",
			want:   "<b>Heightened (6th): </b>Increase persistent damage by 1d6",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			form := s.editorForm(id)
			form.Set(tc.key, tc.value)

			rec := s.do(http.MethodPost, "/drafts/"+id+tc.target, form, true)
			s.Require().Equal(http.StatusOK, rec.Code)
			body := rec.Body.String()
			s.NotContains(body, `role="alert"`)
			s.Contains(body, tc.want)
			s.Contains(body, "Fireball</a>")
			s.Contains(body, "<b>Heightened (+1): </b>Increase damage by 1d6")
		})
	}

	rec := s.do(http.MethodPost, "/drafts/"+id+"/save", nil, false)
	s.Require().Equal(http.StatusSeeOther, rec.Code)

	output, err := s.book.GetCard(s.ctx, &spellbook.GetCardInput{Index: 1})
	s.Require().NoError(err)
	s.Equal("Fireball", output.Card.Name)
	s.Equal("https://2e.aonprd.com/Spells.aspx?ID=9999", output.Card.Link)
	s.Equal("The creature takes full damage", output.Card.RollText(spellcard.DegreeFailure))
	s.Equal([]spellcard.Heightened{
		{Kind: spellcard.HeightenedRepeat, Level: 1, Text: "Increase damage by 1d6"},
		{Kind: spellcard.HeightenedSingle, Level: 6, Text: "Increase persistent damage by 1d6"},
	}, output.Card.Heightened)
}

func (s *HandlerTestSuite) TestEditor_RejectedValueShowsError() {
	id := s.newDraft()

	testCases := []struct {
		name   string
		target string
		form   url.Values
		errMsg string
	}{
		{
			name:   "level out of range",
			target: "/fields/level",
			form:   url.Values{"level": {"11"}},
			errMsg: "spell_level: must be between 1 and 10",
		},
		{
			name:   "level not a number",
			target: "/fields/level",
			form:   url.Values{"level": {"three"}},
			errMsg: "level must be a number",
		},
		{
			name:   "unknown cast time",
			target: "/fields/cast_time",
			form:   url.Values{"cast_time": {"quadruple"}},
			errMsg: "unknown cast time",
		},
		{
			name:   "line width without a line",
			target: "/fields/line_width",
			form:   url.Values{"line_width": {"5"}},
			errMsg: "line width requires a line area",
		},
		{
			name:   "heightened level above the spell levels",
			target: "/heightened/0",
			form:   url.Values{"heightened_0_level": {"11"}, "heightened_0_text": {"Too high"}},
			errMsg: "heightened level must be between 1 and 10, got 11",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			rec := s.do(http.MethodPost, "/drafts/"+id+tc.target, tc.form, true)
			s.Equal(http.StatusOK, rec.Code)
			s.Contains(rec.Body.String(), `role="alert"`)
			s.Contains(rec.Body.String(), tc.errMsg)
		})
	}
}

func (s *HandlerTestSuite) TestEditor_UnknownField() {
	id := s.newDraft()

	rec := s.do(http.MethodPost, "/drafts/"+id+"/fields/colour", url.Values{"colour": {"red"}}, true)
	s.Equal(http.StatusNotFound, rec.Code)
	s.Contains(rec.Body.String(), `unknown field "colour"`)
}

func (s *HandlerTestSuite) TestEditor_MissingDraft() {
	rec := s.do(http.MethodPost, "/drafts/draft_404/fields/name", url.Values{"name": {"x"}}, true)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *HandlerTestSuite) TestCreateDraft_FromSRD() {
	card := builders.NewSpellCardBuilder().WithName("Magic Missile").Build()
	s.srd.EXPECT().
		GetCard(gomock.Any(), &srd.GetCardInput{Key: "magic-missile"}).
		Return(&srd.GetCardOutput{Card: card}, nil)

	rec := s.do(http.MethodPost, "/drafts", url.Values{"srd": {" magic-missile "}}, false)
	s.Require().Equal(http.StatusSeeOther, rec.Code)

	rec = s.do(http.MethodGet, rec.Header().Get("Location"), nil, false)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "Magic Missile</a>")
}

func (s *HandlerTestSuite) TestSave_RequiresName() {
	id := s.newDraft()

	rec := s.do(http.MethodPost, "/drafts/"+id+"/save", nil, false)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "spell_name: is required")
	s.Len(s.names(), 3)
}

func (s *HandlerTestSuite) TestSave_SourceCardChanged() {
	id := s.editDraft("1")

	rec := s.do(http.MethodPost, "/drafts/"+id+"/fields/name", url.Values{"name": {"Greater Fireball"}}, true)
	s.Require().Equal(http.StatusOK, rec.Code)

	// Deleting the first card moves Thunderstorm to the draft's index
	rec = s.do(http.MethodPost, "/cards/0/delete", nil, false)
	s.Require().Equal(http.StatusSeeOther, rec.Code)

	rec = s.do(http.MethodPost, "/drafts/"+id+"/save", nil, false)
	s.Equal(http.StatusConflict, rec.Code)
	s.Contains(rec.Body.String(), `role="alert"`)
	s.Contains(rec.Body.String(), "card 1 changed since it was opened for editing")
	s.Equal([]string{"Fireball", "Thunderstorm"}, s.names())

	// The draft is kept so the edit is not lost
	rec = s.do(http.MethodPost, "/drafts/"+id+"/save", nil, true)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "Greater Fireball")
	s.Contains(rec.Body.String(), "changed since it was opened for editing")
}

func (s *HandlerTestSuite) TestRemoveHeightened() {
	id := s.editDraft("1")

	rec := s.do(http.MethodPost, "/drafts/"+id+"/heightened/0/remove", nil, true)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.NotContains(rec.Body.String(), "Heightened (+1)")
	s.Contains(rec.Body.String(), "Heightened (5th)")
}

func (s *HandlerTestSuite) TestCancel() {
	id := s.newDraft()

	rec := s.do(http.MethodPost, "/drafts/"+id+"/cancel", nil, false)
	s.Equal(http.StatusSeeOther, rec.Code)

	rec = s.do(http.MethodGet, "/drafts/"+id, nil, false)
	s.Equal(http.StatusNotFound, rec.Code)

	// Cancelling twice is harmless
	rec = s.do(http.MethodPost, "/drafts/"+id+"/cancel", nil, false)
	s.Equal(http.StatusSeeOther, rec.Code)
}
