package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/KirkDiggler/spell-cards/internal/errors"
	"github.com/KirkDiggler/spell-cards/internal/render"
)

const pageTitle = "My PF2e Spellbook"

// isHTMX reports whether the request came from an htmx control
func isHTMX(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("HX-Request"), "true")
}

// writeComponent renders c as the response body
func (h *Handler) writeComponent(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render response",
			"path", r.URL.Path,
			"error", err)
	}
}

// writePage renders content inside the page layout
func (h *Handler) writePage(w http.ResponseWriter, r *http.Request, status int, content templ.Component) {
	h.writeComponent(w, r, status, render.Page(pageTitle, content))
}

// redirect sends htmx requests an HX-Redirect and everything else a 303
func redirect(w http.ResponseWriter, r *http.Request, url string) {
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", url)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// writeError maps err to its HTTP status and writes a plain text message
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.GetCode(err).HTTPStatus()
	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed",
			"path", r.URL.Path,
			"status", status,
			"error", err)
	} else {
		h.logger.DebugContext(r.Context(), "request rejected",
			"path", r.URL.Path,
			"status", status,
			"error", err)
	}
	http.Error(w, userMessage(err), status)
}

// userMessage returns the message of the innermost coded error, which
// describes the actual problem rather than the layers it passed through
func userMessage(err error) string {
	msg := err.Error()
	var e *errors.Error
	for errors.As(err, &e) {
		msg = e.Message
		if e.Cause == nil {
			break
		}
		err = e.Cause
	}
	return msg
}

// pathIndex parses a numeric path parameter
func pathIndex(value, name string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.InvalidArgumentf("%s must be a number, got %q", name, value)
	}
	return n, nil
}

// formNumber parses a numeric form value. Empty means zero.
func formNumber(value, name string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.InvalidArgumentf("%s must be a number, got %q", name, value)
	}
	return n, nil
}
