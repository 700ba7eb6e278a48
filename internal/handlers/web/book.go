package web

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/KirkDiggler/spell-cards/internal/render"
	"github.com/KirkDiggler/spell-cards/internal/services/editor"
	"github.com/KirkDiggler/spell-cards/internal/services/spellbook"
)

func (h *Handler) showBook(w http.ResponseWriter, r *http.Request) {
	output, err := h.book.GetBook(r.Context(), &spellbook.GetBookInput{})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	view := render.IndexView{Total: len(output.Book.Spells), SRDImport: h.srdImport}
	for i, card := range output.Book.Spells {
		view.Entries = append(view.Entries, render.Entry{Index: i, Card: card})
	}

	h.writePage(w, r, http.StatusOK, render.Index(view))
}

func (h *Handler) searchCards(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	output, err := h.book.SearchCards(r.Context(), &spellbook.SearchCardsInput{Query: query})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	book, err := h.book.GetBook(r.Context(), &spellbook.GetBookInput{})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	view := render.IndexView{
		Total:       len(book.Book.Spells),
		Query:       query,
		Suggestions: output.Suggestions,
		SRDImport:   h.srdImport,
	}
	for _, m := range output.Matches {
		view.Entries = append(view.Entries, render.Entry{Index: m.Index, Card: m.Card})
	}

	h.writePage(w, r, http.StatusOK, render.Index(view))
}

func (h *Handler) deleteCard(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(chi.URLParam(r, "index"), "card index")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if _, err := h.book.DeleteCard(r.Context(), &spellbook.DeleteCardInput{Index: index}); err != nil {
		h.writeError(w, r, err)
		return
	}

	redirect(w, r, "/")
}

func (h *Handler) moveCard(w http.ResponseWriter, r *http.Request) {
	from, err := pathIndex(chi.URLParam(r, "index"), "card index")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	to, err := pathIndex(r.URL.Query().Get("to"), "target position")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if _, err := h.book.MoveCard(r.Context(), &spellbook.MoveCardInput{From: from, To: to}); err != nil {
		h.writeError(w, r, err)
		return
	}

	redirect(w, r, "/")
}

func (h *Handler) editCard(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(chi.URLParam(r, "index"), "card index")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	output, err := h.editor.CreateDraft(r.Context(), &editor.CreateDraftInput{FromIndex: &index})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	redirect(w, r, "/drafts/"+output.Draft.ID)
}

func (h *Handler) exportBook(w http.ResponseWriter, r *http.Request) {
	output, err := h.book.ExportBook(r.Context(), &spellbook.ExportBookInput{
		Format: r.URL.Query().Get("format"),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", output.ContentType)
	_, _ = w.Write(output.Data)
}
