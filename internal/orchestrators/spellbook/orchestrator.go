// Package spellbook implements the spell book orchestrator
package spellbook

import (
	"context"
	_ "embed"
	"encoding/json"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"

	"github.com/KirkDiggler/spell-cards/internal/entities/spellcard"
	"github.com/KirkDiggler/spell-cards/internal/errors"
	bookrepo "github.com/KirkDiggler/spell-cards/internal/repositories/spellbook"
	"github.com/KirkDiggler/spell-cards/internal/services/spellbook"
)

const defaultMaxSuggestions = 3

//go:embed seed.yaml
var seedYAML []byte

// SeedBook returns a fresh copy of the starter book
func SeedBook() (*spellcard.SpellBook, error) {
	return spellcard.DecodeBookYAML(seedYAML)
}

// Config holds the dependencies for the spell book orchestrator
type Config struct {
	BookRepo bookrepo.Repository
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.BookRepo == nil {
		vb.RequiredField("BookRepo")
	}

	return vb.Build()
}

// Orchestrator implements the spellbook.Service interface
type Orchestrator struct {
	bookRepo bookrepo.Repository

	// mu serializes read-modify-write cycles on the stored blob
	mu sync.Mutex
}

// New creates a new spell book orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Orchestrator{
		bookRepo: cfg.BookRepo,
	}, nil
}

// Ensure Orchestrator implements the Service interface
var _ spellbook.Service = (*Orchestrator)(nil)

// load returns the stored book, writing the starter book first when none is
// stored. Callers must hold o.mu.
func (o *Orchestrator) load(ctx context.Context) (*spellcard.SpellBook, error) {
	output, err := o.bookRepo.Get(ctx, bookrepo.GetInput{})
	if err == nil {
		return output.Book, nil
	}
	if !errors.IsNotFound(err) {
		return nil, errors.Wrap(err, "failed to load spell book")
	}

	book, err := SeedBook()
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode starter book")
	}

	slog.InfoContext(ctx, "no spell book stored, writing starter book",
		"cards", len(book.Spells))

	if err := o.save(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

func (o *Orchestrator) save(ctx context.Context, book *spellcard.SpellBook) error {
	if _, err := o.bookRepo.Save(ctx, bookrepo.SaveInput{Book: book}); err != nil {
		return errors.Wrap(err, "failed to save spell book")
	}
	return nil
}

func checkIndex(book *spellcard.SpellBook, index int) error {
	if index < 0 || index >= len(book.Spells) {
		return errors.NotFoundf("card %d not found", index).
			WithMeta("cards", len(book.Spells))
	}
	return nil
}

func validateCard(card *spellcard.SpellCard) error {
	if card == nil {
		return errors.InvalidArgument("card is required")
	}
	return card.Validate()
}

// GetBook returns the whole book
func (o *Orchestrator) GetBook(ctx context.Context, input *spellbook.GetBookInput) (*spellbook.GetBookOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	book, err := o.load(ctx)
	if err != nil {
		return nil, err
	}

	return &spellbook.GetBookOutput{Book: book}, nil
}

// GetCard returns a copy of one card
func (o *Orchestrator) GetCard(ctx context.Context, input *spellbook.GetCardInput) (*spellbook.GetCardOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	book, err := o.load(ctx)
	if err != nil {
		return nil, err
	}
	if err := checkIndex(book, input.Index); err != nil {
		return nil, err
	}

	return &spellbook.GetCardOutput{Card: book.Spells[input.Index].Clone()}, nil
}

// AddCard appends a card to the end of the book
func (o *Orchestrator) AddCard(ctx context.Context, input *spellbook.AddCardInput) (*spellbook.AddCardOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateCard(input.Card); err != nil {
		return nil, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	book, err := o.load(ctx)
	if err != nil {
		return nil, err
	}

	card := input.Card.Clone()
	card.Normalize()
	book.Spells = append(book.Spells, card)

	if err := o.save(ctx, book); err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "added card",
		"name", card.Name,
		"index", len(book.Spells)-1)

	return &spellbook.AddCardOutput{
		Index: len(book.Spells) - 1,
		Book:  book,
	}, nil
}

// ReplaceCard overwrites the card at an index
func (o *Orchestrator) ReplaceCard(ctx context.Context, input *spellbook.ReplaceCardInput) (*spellbook.ReplaceCardOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateCard(input.Card); err != nil {
		return nil, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	book, err := o.load(ctx)
	if err != nil {
		return nil, err
	}
	if err := checkIndex(book, input.Index); err != nil {
		return nil, err
	}
	if input.IfMatch != "" && book.Spells[input.Index].Fingerprint() != input.IfMatch {
		return nil, errors.FailedPreconditionf("card %d changed since it was opened for editing", input.Index).
			WithMeta("index", input.Index)
	}

	card := input.Card.Clone()
	card.Normalize()
	book.Spells[input.Index] = card

	if err := o.save(ctx, book); err != nil {
		return nil, err
	}

	return &spellbook.ReplaceCardOutput{Book: book}, nil
}

// DeleteCard removes the card at an index
func (o *Orchestrator) DeleteCard(ctx context.Context, input *spellbook.DeleteCardInput) (*spellbook.DeleteCardOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	book, err := o.load(ctx)
	if err != nil {
		return nil, err
	}
	if err := checkIndex(book, input.Index); err != nil {
		return nil, err
	}

	name := book.Spells[input.Index].Name
	book.Spells = slices.Delete(book.Spells, input.Index, input.Index+1)

	if err := o.save(ctx, book); err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "deleted card",
		"name", name,
		"index", input.Index)

	return &spellbook.DeleteCardOutput{Book: book}, nil
}

// MoveCard moves the card at From so that it ends up at To
func (o *Orchestrator) MoveCard(ctx context.Context, input *spellbook.MoveCardInput) (*spellbook.MoveCardOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	book, err := o.load(ctx)
	if err != nil {
		return nil, err
	}
	if err := checkIndex(book, input.From); err != nil {
		return nil, err
	}
	if input.To < 0 || input.To >= len(book.Spells) {
		return nil, errors.InvalidArgumentf("target position %d out of range", input.To)
	}
	if input.From == input.To {
		return &spellbook.MoveCardOutput{Book: book}, nil
	}

	card := book.Spells[input.From]
	book.Spells = slices.Delete(book.Spells, input.From, input.From+1)
	book.Spells = slices.Insert(book.Spells, input.To, card)

	if err := o.save(ctx, book); err != nil {
		return nil, err
	}

	return &spellbook.MoveCardOutput{Book: book}, nil
}

// SearchCards finds cards whose name contains the query, ignoring case. When
// nothing matches, the closest names by edit distance are suggested.
func (o *Orchestrator) SearchCards(ctx context.Context, input *spellbook.SearchCardsInput) (*spellbook.SearchCardsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	book, err := o.load(ctx)
	o.mu.Unlock()
	if err != nil {
		return nil, err
	}

	query := strings.ToLower(strings.TrimSpace(input.Query))
	output := &spellbook.SearchCardsOutput{
		Matches:     []spellbook.Match{},
		Suggestions: []string{},
	}

	for i, card := range book.Spells {
		if strings.Contains(strings.ToLower(card.Name), query) {
			output.Matches = append(output.Matches, spellbook.Match{Index: i, Card: card})
		}
	}
	if len(output.Matches) > 0 || query == "" {
		return output, nil
	}

	limit := input.MaxSuggestions
	if limit <= 0 {
		limit = defaultMaxSuggestions
	}
	output.Suggestions = suggest(query, book.Spells, limit)
	return output, nil
}

// suggest returns up to limit distinct card names within half the query's
// length in edits, closest first
func suggest(query string, cards []*spellcard.SpellCard, limit int) []string {
	type candidate struct {
		name     string
		distance int
	}

	maxDistance := max(len(query)/2, 1)
	seen := map[string]bool{}
	candidates := []candidate{}
	for _, card := range cards {
		if seen[card.Name] {
			continue
		}
		seen[card.Name] = true

		distance := levenshtein.ComputeDistance(query, strings.ToLower(card.Name))
		if distance <= maxDistance {
			candidates = append(candidates, candidate{name: card.Name, distance: distance})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})

	names := []string{}
	for _, c := range candidates {
		if len(names) == limit {
			break
		}
		names = append(names, c.name)
	}
	return names
}

// ImportCards appends cards, or replaces the book when Replace is set. Every
// card is validated before anything is written.
func (o *Orchestrator) ImportCards(ctx context.Context, input *spellbook.ImportCardsInput) (*spellbook.ImportCardsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	cards := make([]*spellcard.SpellCard, 0, len(input.Cards))
	for i, card := range input.Cards {
		if err := validateCard(card); err != nil {
			return nil, errors.Wrapf(err, "card %d is invalid", i).WithMeta("index", i)
		}
		clone := card.Clone()
		clone.Normalize()
		cards = append(cards, clone)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	book := &spellcard.SpellBook{Spells: []*spellcard.SpellCard{}}
	if !input.Replace {
		loaded, err := o.load(ctx)
		if err != nil {
			return nil, err
		}
		book = loaded
	}
	book.Spells = append(book.Spells, cards...)

	if err := o.save(ctx, book); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "imported cards",
		"imported", len(cards),
		"replace", input.Replace,
		"total", len(book.Spells))

	return &spellbook.ImportCardsOutput{
		Imported: len(cards),
		Book:     book,
	}, nil
}

// ExportBook encodes the book as JSON or YAML
func (o *Orchestrator) ExportBook(ctx context.Context, input *spellbook.ExportBookInput) (*spellbook.ExportBookOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	format := strings.ToLower(input.Format)
	if format == "" {
		format = spellbook.FormatJSON
	}
	if format != spellbook.FormatJSON && format != spellbook.FormatYAML {
		return nil, errors.InvalidArgumentf("unsupported export format %q", input.Format)
	}

	o.mu.Lock()
	book, err := o.load(ctx)
	o.mu.Unlock()
	if err != nil {
		return nil, err
	}

	if format == spellbook.FormatYAML {
		data, err := spellcard.EncodeBookYAML(book)
		if err != nil {
			return nil, err
		}
		return &spellbook.ExportBookOutput{Data: data, ContentType: "application/yaml"}, nil
	}

	data, err := json.Marshal(book)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal spell book")
	}
	return &spellbook.ExportBookOutput{Data: data, ContentType: "application/json"}, nil
}
