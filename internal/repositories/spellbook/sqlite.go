package spellbook

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"strings"

	// Registers the "sqlite" driver
	_ "modernc.org/sqlite"

	"github.com/KirkDiggler/spell-cards/internal/entities/spellcard"
	"github.com/KirkDiggler/spell-cards/internal/errors"
	"github.com/KirkDiggler/spell-cards/internal/pkg/clock"
)

const createKVTable = `CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at INTEGER NOT NULL
)`

// OpenSQLite opens the database file at path and creates the kv table
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.InvalidArgument("sqlite path is required")
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open sqlite db")
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to ping sqlite db")
	}

	if _, err := db.ExecContext(ctx, createKVTable); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "failed to create kv table")
	}

	return db, nil
}

// SQLiteConfig holds the dependencies for the sqlite repository
type SQLiteConfig struct {
	DB    *sql.DB
	Clock clock.Clock
	// Key defaults to DefaultKey
	Key string
}

// Validate ensures all required dependencies are provided
func (c *SQLiteConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.DB == nil {
		vb.RequiredField("DB")
	}
	return vb.Build()
}

type sqliteRepository struct {
	db    *sql.DB
	clock clock.Clock
	key   string
}

// NewSQLiteRepository creates a spell book repository on a kv table
func NewSQLiteRepository(cfg *SQLiteConfig) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	repo := &sqliteRepository{
		db:    cfg.DB,
		clock: cfg.Clock,
		key:   cfg.Key,
	}
	if repo.clock == nil {
		repo.clock = clock.New()
	}
	if repo.key == "" {
		repo.key = DefaultKey
	}
	return repo, nil
}

func (r *sqliteRepository) Get(ctx context.Context, _ GetInput) (*GetOutput, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, r.key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFoundf("no spell book stored under %s", r.key)
		}
		return nil, errors.Wrapf(err, "failed to get spell book")
	}

	book, err := spellcard.DecodeBookJSON([]byte(value))
	if err != nil {
		slog.ErrorContext(ctx, "stored spell book is corrupt",
			"key", r.key,
			"error", err)
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to decode spell book")
	}

	return &GetOutput{Book: book}, nil
}

func (r *sqliteRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Book == nil {
		return nil, errors.InvalidArgument(errBookNil)
	}

	data, err := json.Marshal(input.Book)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal spell book")
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		r.key, string(data), r.clock.Now().Unix(),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to save spell book")
	}

	slog.DebugContext(ctx, "saved spell book",
		"key", r.key,
		"cards", len(input.Book.Spells))

	return &SaveOutput{}, nil
}

func (r *sqliteRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "sqlite is unreachable")
	}
	return nil
}
