package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/spell-cards/internal/clients/srd"
	"github.com/KirkDiggler/spell-cards/internal/config"
	editororch "github.com/KirkDiggler/spell-cards/internal/orchestrators/editor"
	bookorch "github.com/KirkDiggler/spell-cards/internal/orchestrators/spellbook"
	"github.com/KirkDiggler/spell-cards/internal/pkg/clock"
	"github.com/KirkDiggler/spell-cards/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/spell-cards/internal/redis"
	carddraft "github.com/KirkDiggler/spell-cards/internal/repositories/card_draft"
	bookrepo "github.com/KirkDiggler/spell-cards/internal/repositories/spellbook"
)

// app holds the wired services shared by every command
type app struct {
	cfg      *config.Config
	bookRepo bookrepo.Repository
	book     *bookorch.Orchestrator
	editor   *editororch.Orchestrator
	srd      srd.Client
	closers  []func() error
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{cfg: cfg}

	redisClient, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, redisClient.Close)

	switch cfg.Store {
	case config.StoreSQLite:
		db, err := bookrepo.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to open spell book: %w", err)
		}
		a.closers = append(a.closers, db.Close)

		a.bookRepo, err = bookrepo.NewSQLiteRepository(&bookrepo.SQLiteConfig{
			DB:    db,
			Clock: clock.New(),
			Key:   cfg.BookKey,
		})
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to create sqlite repository: %w", err)
		}
	default:
		a.bookRepo, err = bookrepo.NewRedisRepository(&bookrepo.RedisConfig{
			Client: redisClient,
			Key:    cfg.BookKey,
		})
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to create redis repository: %w", err)
		}
	}

	a.book, err = bookorch.New(&bookorch.Config{BookRepo: a.bookRepo})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create spell book orchestrator: %w", err)
	}

	if cfg.SRDEnabled {
		a.srd, err = srd.New(&srd.Config{BaseURL: cfg.SRDBaseURL})
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to create SRD client: %w", err)
		}
	}

	a.editor, err = editororch.New(&editororch.Config{
		DraftRepo:   carddraft.NewRedisRepository(redisClient),
		Book:        a.book,
		SRD:         a.srd,
		IDGenerator: idgen.NewUUID("draft"),
		Clock:       clock.New(),
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create editor orchestrator: %w", err)
	}

	slog.DebugContext(ctx, "services ready",
		"store", cfg.Store,
		"srd", cfg.SRDEnabled)

	return a, nil
}

func newRedisClient(cfg *config.Config) (redisclient.Client, error) {
	client, err := redisclient.Open(&redisclient.Options{
		URL:      cfg.RedisURL,
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create redis client: %w", err)
	}
	return client, nil
}

// Close releases connections in reverse order of creation
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			slog.Warn("failed to close resource", "error", err)
		}
	}
	a.closers = nil
}
