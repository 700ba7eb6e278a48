// Package srd imports spells from the D&D 5e SRD api as spell card drafts
package srd

//go:generate mockgen -destination=mock/mock_client.go -package=srdmock github.com/KirkDiggler/spell-cards/internal/clients/srd Client

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/fadedpez/dnd5e-api/clients/dnd5e"
	"github.com/fadedpez/dnd5e-api/entities"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/spell-cards/internal/entities/spellcard"
	"github.com/KirkDiggler/spell-cards/internal/errors"
)

// DefaultBaseURL is the public SRD api
const DefaultBaseURL = "https://www.dnd5eapi.co/api/2014/"

// maxConcurrentLookups bounds GetCards fan out
const maxConcurrentLookups = 8

// Source is the part of the dnd5e-api client this package calls
type Source interface {
	GetSpell(key string) (*entities.Spell, error)
	ListSpells(input *dnd5e.ListSpellsInput) ([]*entities.ReferenceItem, error)
}

// Client converts SRD spells into spell cards
type Client interface {
	// GetCard converts one spell
	// Returns errors.InvalidArgument for an empty key
	// Returns errors.Unavailable when the api call fails
	GetCard(ctx context.Context, input *GetCardInput) (*GetCardOutput, error)

	// GetCards converts several spells concurrently, preserving key order
	GetCards(ctx context.Context, input *GetCardsInput) (*GetCardsOutput, error)

	// ListSpells lists spell keys and names, optionally filtered by level
	ListSpells(ctx context.Context, input *ListSpellsInput) (*ListSpellsOutput, error)
}

// GetCardInput identifies an SRD spell, e.g. "fireball"
type GetCardInput struct {
	Key string
}

// GetCardOutput holds the converted card
type GetCardOutput struct {
	Card *spellcard.SpellCard
}

// GetCardsInput identifies several SRD spells
type GetCardsInput struct {
	Keys []string
}

// GetCardsOutput holds the converted cards in key order
type GetCardsOutput struct {
	Cards []*spellcard.SpellCard
}

// ListSpellsInput filters the spell list
type ListSpellsInput struct {
	Level *int
}

// SpellReference is a spell key and display name
type SpellReference struct {
	Key  string
	Name string
}

// ListSpellsOutput holds the matching spells
type ListSpellsOutput struct {
	Spells []SpellReference
}

// Config configures the SRD client
type Config struct {
	BaseURL     string
	HTTPTimeout time.Duration
	CacheTTL    time.Duration
	// Source replaces the dnd5e-api client, mainly for tests
	Source Source
}

// Validate sets defaults for unset fields
func (cfg *Config) Validate() error {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(cfg.BaseURL, "/") {
		cfg.BaseURL += "/"
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = 30 * time.Second
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 24 * time.Hour
	}
	return nil
}

type client struct {
	source  Source
	baseURL string
}

// New creates a new SRD client with the given configuration
func New(cfg *Config) (Client, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	source := cfg.Source
	if source == nil {
		baseClient, err := dnd5e.NewDND5eAPI(&dnd5e.DND5eAPIConfig{
			Client:  &http.Client{Timeout: cfg.HTTPTimeout},
			BaseURL: cfg.BaseURL,
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to create dnd5e api client")
		}
		source = dnd5e.NewCachedClient(baseClient, cfg.CacheTTL)
	}

	return &client{
		source:  source,
		baseURL: cfg.BaseURL,
	}, nil
}

func (c *client) GetCard(ctx context.Context, input *GetCardInput) (*GetCardOutput, error) {
	if input == nil || strings.TrimSpace(input.Key) == "" {
		return nil, errors.InvalidArgument("spell key is required")
	}

	card, err := c.getCard(ctx, input.Key)
	if err != nil {
		return nil, err
	}
	return &GetCardOutput{Card: card}, nil
}

func (c *client) getCard(ctx context.Context, key string) (*spellcard.SpellCard, error) {
	key = strings.ToLower(strings.TrimSpace(key))

	spell, err := c.source.GetSpell(key)
	if err != nil {
		slog.ErrorContext(ctx, "srd spell lookup failed",
			"spell", key,
			"error", err)
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to get srd spell "+key)
	}
	if spell == nil {
		return nil, errors.NotFoundf("srd spell %s not found", key)
	}

	card := ToCard(fromEntity(spell))
	card.Link = c.baseURL + "spells/" + key
	return card, nil
}

func (c *client) GetCards(ctx context.Context, input *GetCardsInput) (*GetCardsOutput, error) {
	if input == nil || len(input.Keys) == 0 {
		return nil, errors.InvalidArgument("at least one spell key is required")
	}

	cards := make([]*spellcard.SpellCard, len(input.Keys))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)

	for i, key := range input.Keys {
		i, key := i, key
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			card, err := c.getCard(gctx, key)
			if err != nil {
				return err
			}
			cards[i] = card
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "failed to import srd spells")
	}

	return &GetCardsOutput{Cards: cards}, nil
}

func (c *client) ListSpells(ctx context.Context, input *ListSpellsInput) (*ListSpellsOutput, error) {
	var apiInput *dnd5e.ListSpellsInput
	if input != nil && input.Level != nil {
		level := *input.Level
		apiInput = &dnd5e.ListSpellsInput{Level: &level}
	}

	refs, err := c.source.ListSpells(apiInput)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to list srd spells")
	}
	slog.DebugContext(ctx, "listed srd spells", "count", len(refs))

	spells := make([]SpellReference, 0, len(refs))
	for _, ref := range refs {
		if ref == nil {
			continue
		}
		spells = append(spells, SpellReference{Key: ref.Key, Name: ref.Name})
	}
	return &ListSpellsOutput{Spells: spells}, nil
}
