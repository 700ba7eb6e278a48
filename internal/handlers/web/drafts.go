package web

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/KirkDiggler/spell-cards/internal/entities/spellcard"
	"github.com/KirkDiggler/spell-cards/internal/errors"
	"github.com/KirkDiggler/spell-cards/internal/render"
	"github.com/KirkDiggler/spell-cards/internal/services/editor"
)

func draftURL(id string) string {
	return "/drafts/" + id
}

func (h *Handler) createDraft(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.writeError(w, r, errors.InvalidArgumentf("invalid form: %v", err))
		return
	}

	output, err := h.editor.CreateDraft(r.Context(), &editor.CreateDraftInput{
		SRDKey: strings.TrimSpace(r.PostForm.Get(render.FieldSRD)),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	redirect(w, r, draftURL(output.Draft.ID))
}

func (h *Handler) showDraft(w http.ResponseWriter, r *http.Request) {
	output, err := h.editor.GetDraft(r.Context(), &editor.GetDraftInput{
		DraftID: chi.URLParam(r, "draftID"),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeEditor(w, r, http.StatusOK, render.EditorView{Draft: output.Draft})
}

func (h *Handler) writeEditor(w http.ResponseWriter, r *http.Request, status int, view render.EditorView) {
	if isHTMX(r) {
		h.writeComponent(w, r, status, render.Editor(view))
		return
	}
	h.writePage(w, r, status, render.Editor(view))
}

// afterUpdate answers a field change: htmx gets the re-rendered editor and
// plain form posts are redirected back to the editor page. Rejected values
// are shown in the editor next to the unchanged draft.
func (h *Handler) afterUpdate(w http.ResponseWriter, r *http.Request, draftID string, output *editor.UpdateOutput, err error) {
	if err == nil {
		if isHTMX(r) {
			h.writeEditor(w, r, http.StatusOK, render.EditorView{Draft: output.Draft})
			return
		}
		http.Redirect(w, r, draftURL(draftID), http.StatusSeeOther)
		return
	}

	status := errors.GetCode(err).HTTPStatus()
	if status >= http.StatusInternalServerError || errors.IsNotFound(err) {
		h.writeError(w, r, err)
		return
	}

	current, getErr := h.editor.GetDraft(r.Context(), &editor.GetDraftInput{DraftID: draftID})
	if getErr != nil {
		h.writeError(w, r, getErr)
		return
	}

	h.logger.DebugContext(r.Context(), "rejected draft change",
		"draft_id", draftID,
		"path", r.URL.Path,
		"error", err)

	// htmx only swaps successful responses
	if isHTMX(r) {
		status = http.StatusOK
	}
	h.writeEditor(w, r, status, render.EditorView{
		Draft: current.Draft,
		Error: userMessage(err),
	})
}

func (h *Handler) updateField(w http.ResponseWriter, r *http.Request) {
	draftID := chi.URLParam(r, "draftID")
	if err := r.ParseForm(); err != nil {
		h.writeError(w, r, errors.InvalidArgumentf("invalid form: %v", err))
		return
	}

	output, err := h.applyField(r.Context(), draftID, chi.URLParam(r, "field"), r)
	h.afterUpdate(w, r, draftID, output, err)
}

// applyField routes one posted editor control to its update. htmx posts the
// whole editor form, so the value is read from the key named by the field.
func (h *Handler) applyField(ctx context.Context, draftID, field string, r *http.Request) (*editor.UpdateOutput, error) {
	value := r.PostForm.Get(field)
	text := &editor.UpdateTextInput{DraftID: draftID, Text: value}

	switch field {
	case render.FieldName:
		return h.editor.UpdateName(ctx, text)
	case render.FieldLink:
		return h.editor.UpdateLink(ctx, text)
	case render.FieldEffect:
		return h.editor.UpdateEffect(ctx, text)
	case render.FieldTraits:
		return h.editor.UpdateTraits(ctx, text)
	case render.FieldTargets:
		return h.editor.UpdateTargets(ctx, text)
	case render.FieldDuration:
		return h.editor.UpdateDuration(ctx, text)
	case render.FieldCastTimeLonger:
		return h.editor.UpdateCastTimeLonger(ctx, text)

	case render.FieldCastTime:
		return h.editor.UpdateCastTime(ctx, &editor.UpdateCastTimeInput{DraftID: draftID, CastTime: value})
	case render.FieldSpellType:
		return h.editor.UpdateSpellType(ctx, &editor.UpdateSpellTypeInput{DraftID: draftID, SpellType: value})
	case render.FieldAreaShape:
		return h.editor.UpdateAreaShape(ctx, &editor.UpdateAreaShapeInput{DraftID: draftID, Shape: value})
	case render.FieldDefence:
		return h.editor.UpdateDefence(ctx, &editor.UpdateDefenceInput{DraftID: draftID, Defence: value})

	case render.FieldCastTimeMin, render.FieldCastTimeMax, render.FieldLevel,
		render.FieldRange, render.FieldAreaSize, render.FieldLineWidth:
		n, err := formNumber(value, field)
		if err != nil {
			return nil, err
		}
		return h.applyNumber(ctx, draftID, field, n, r)
	}

	if _, err := spellcard.ParseDegree(field); err == nil {
		return h.editor.UpdateRollOutcome(ctx, &editor.UpdateRollOutcomeInput{
			DraftID: draftID,
			Degree:  field,
			Text:    value,
		})
	}

	return nil, errors.NotFoundf("unknown field %q", field)
}

func (h *Handler) applyNumber(ctx context.Context, draftID, field string, n int, r *http.Request) (*editor.UpdateOutput, error) {
	number := &editor.UpdateNumberInput{DraftID: draftID, Value: n}

	switch field {
	case render.FieldCastTimeMin:
		return h.editor.UpdateCastTimeRange(ctx, &editor.UpdateCastTimeRangeInput{DraftID: draftID, Min: &n})
	case render.FieldCastTimeMax:
		return h.editor.UpdateCastTimeRange(ctx, &editor.UpdateCastTimeRangeInput{DraftID: draftID, Max: &n})
	case render.FieldLevel:
		return h.editor.UpdateLevel(ctx, number)
	case render.FieldRange:
		return h.editor.UpdateRange(ctx, number)
	case render.FieldAreaSize:
		return h.editor.UpdateAreaSize(ctx, &editor.UpdateAreaSizeInput{
			DraftID: draftID,
			Shape:   r.PostForm.Get(render.FieldAreaShape),
			Size:    n,
		})
	default:
		return h.editor.UpdateLineWidth(ctx, number)
	}
}

func (h *Handler) updateHeightened(w http.ResponseWriter, r *http.Request) {
	draftID := chi.URLParam(r, "draftID")
	if err := r.ParseForm(); err != nil {
		h.writeError(w, r, errors.InvalidArgumentf("invalid form: %v", err))
		return
	}

	output, err := h.heightenedUpdate(r.Context(), draftID, r)
	h.afterUpdate(w, r, draftID, output, err)
}

func (h *Handler) heightenedUpdate(ctx context.Context, draftID string, r *http.Request) (*editor.UpdateOutput, error) {
	index, err := pathIndex(chi.URLParam(r, "index"), "heightened index")
	if err != nil {
		return nil, err
	}

	kindKey := render.HeightenedKey(index, render.PartKind)
	levelKey := render.HeightenedKey(index, render.PartLevel)
	textKey := render.HeightenedKey(index, render.PartText)

	// Only the row at index is read; the rest of the posted form is ignored
	input := &editor.UpdateHeightenedInput{DraftID: draftID, Index: index}
	if r.PostForm.Has(kindKey) {
		kind := r.PostForm.Get(kindKey)
		input.Kind = &kind
	}
	if r.PostForm.Has(levelKey) {
		level, err := formNumber(r.PostForm.Get(levelKey), "heightened level")
		if err != nil {
			return nil, err
		}
		input.Level = &level
	}
	if r.PostForm.Has(textKey) {
		text := r.PostForm.Get(textKey)
		input.Text = &text
	}

	return h.editor.UpdateHeightened(ctx, input)
}

func (h *Handler) removeHeightened(w http.ResponseWriter, r *http.Request) {
	draftID := chi.URLParam(r, "draftID")

	output, err := func() (*editor.UpdateOutput, error) {
		index, err := pathIndex(chi.URLParam(r, "index"), "heightened index")
		if err != nil {
			return nil, err
		}
		return h.editor.RemoveHeightened(r.Context(), &editor.RemoveHeightenedInput{DraftID: draftID, Index: index})
	}()
	h.afterUpdate(w, r, draftID, output, err)
}

func (h *Handler) saveDraft(w http.ResponseWriter, r *http.Request) {
	draftID := chi.URLParam(r, "draftID")

	if _, err := h.editor.SaveDraft(r.Context(), &editor.SaveDraftInput{DraftID: draftID}); err != nil {
		if errors.IsInvalidArgument(err) || errors.IsFailedPrecondition(err) {
			// Keep the user in the editor with the reason shown
			h.afterUpdate(w, r, draftID, nil, err)
			return
		}
		h.writeError(w, r, err)
		return
	}

	redirect(w, r, "/")
}

func (h *Handler) cancelDraft(w http.ResponseWriter, r *http.Request) {
	_, err := h.editor.DeleteDraft(r.Context(), &editor.DeleteDraftInput{DraftID: chi.URLParam(r, "draftID")})
	if err != nil && !errors.IsNotFound(err) {
		h.writeError(w, r, err)
		return
	}

	redirect(w, r, "/")
}
