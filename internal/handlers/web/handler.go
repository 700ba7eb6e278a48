// Package web serves the spell book and card editor over HTTP
package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/KirkDiggler/spell-cards/internal/errors"
	"github.com/KirkDiggler/spell-cards/internal/render"
	"github.com/KirkDiggler/spell-cards/internal/services/editor"
	"github.com/KirkDiggler/spell-cards/internal/services/spellbook"
)

const defaultRequestTimeout = 30 * time.Second

// HandlerConfig holds dependencies for the handler
type HandlerConfig struct {
	Book   spellbook.Service
	Editor editor.Service
	// SRDImport offers an SRD key on the new card form
	SRDImport bool
	// Logger defaults to slog.Default()
	Logger         *slog.Logger
	RequestTimeout time.Duration
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Book == nil {
		vb.RequiredField("Book")
	}
	if c.Editor == nil {
		vb.RequiredField("Editor")
	}

	return vb.Build()
}

// Handler serves the web interface
type Handler struct {
	book           spellbook.Service
	editor         editor.Service
	srdImport      bool
	logger         *slog.Logger
	requestTimeout time.Duration
}

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	return &Handler{
		book:           cfg.Book,
		editor:         cfg.Editor,
		srdImport:      cfg.SRDImport,
		logger:         logger,
		requestTimeout: timeout,
	}, nil
}

// Routes returns the router for the web interface
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(h.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(h.requestTimeout))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Get(render.StylesheetPath, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
		_, _ = w.Write(render.Stylesheet)
	})

	r.Get("/", h.showBook)
	r.Get("/book.json", h.exportBook)

	r.Route("/cards", func(r chi.Router) {
		r.Get("/search", h.searchCards)
		r.Post("/{index}/delete", h.deleteCard)
		r.Post("/{index}/move", h.moveCard)
		r.Post("/{index}/edit", h.editCard)
	})

	r.Route("/drafts", func(r chi.Router) {
		r.Post("/", h.createDraft)
		r.Route("/{draftID}", func(r chi.Router) {
			r.Get("/", h.showDraft)
			r.Post("/fields/{field}", h.updateField)
			r.Post("/heightened/{index}", h.updateHeightened)
			r.Post("/heightened/{index}/remove", h.removeHeightened)
			r.Post("/save", h.saveDraft)
			r.Post("/cancel", h.cancelDraft)
		})
	})

	return r
}

// requestLogger logs one line per request with the chi request id
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.InfoContext(r.Context(), "http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
				"htmx", isHTMX(r))
		})
	}
}
