// Package builders provides test data builders for creating test fixtures
package builders

import (
	"github.com/KirkDiggler/spell-cards/internal/entities/spellcard"
)

// SpellCardBuilder provides a fluent interface for building test SpellCard instances
type SpellCardBuilder struct {
	card *spellcard.SpellCard
}

// NewSpellCardBuilder creates a new builder starting from the editor defaults
func NewSpellCardBuilder() *SpellCardBuilder {
	return &SpellCardBuilder{
		card: spellcard.New(),
	}
}

// WithName sets the spell name
func (b *SpellCardBuilder) WithName(name string) *SpellCardBuilder {
	b.card.Name = name
	return b
}

// WithLink sets the reference link
func (b *SpellCardBuilder) WithLink(link string) *SpellCardBuilder {
	b.card.Link = link
	return b
}

// WithCastTime sets the cast time
func (b *SpellCardBuilder) WithCastTime(castTime spellcard.CastTime) *SpellCardBuilder {
	b.card.CastTime = castTime
	return b
}

// WithType sets the spell type and level
func (b *SpellCardBuilder) WithType(spellType spellcard.SpellType, level int) *SpellCardBuilder {
	b.card.SpellType = spellType
	b.card.Level = level
	return b
}

// WithTraits replaces the traits
func (b *SpellCardBuilder) WithTraits(traits ...string) *SpellCardBuilder {
	b.card.Traits = append([]string{}, traits...)
	return b
}

// WithRange sets the range overview
func (b *SpellCardBuilder) WithRange(feet int) *SpellCardBuilder {
	b.card.SetRange(feet)
	return b
}

// WithArea sets the area overview
func (b *SpellCardBuilder) WithArea(area spellcard.Area) *SpellCardBuilder {
	b.card.SetOverview(spellcard.AreaOverview(area))
	return b
}

// WithTargets sets the targets overview
func (b *SpellCardBuilder) WithTargets(targets string) *SpellCardBuilder {
	b.card.SetTargets(targets)
	return b
}

// WithDefence sets the defence overview
func (b *SpellCardBuilder) WithDefence(defence spellcard.Defence) *SpellCardBuilder {
	b.card.SetDefence(&defence)
	return b
}

// WithDuration sets the duration overview
func (b *SpellCardBuilder) WithDuration(duration string) *SpellCardBuilder {
	b.card.SetDuration(duration)
	return b
}

// WithEffect sets the effect text
func (b *SpellCardBuilder) WithEffect(effect string) *SpellCardBuilder {
	b.card.Effect = effect
	return b
}

// WithRoll sets the text of one degree of success
func (b *SpellCardBuilder) WithRoll(degree spellcard.Degree, text string) *SpellCardBuilder {
	b.card.SetRollResult(degree, text)
	return b
}

// WithHeightened appends a heightened entry
func (b *SpellCardBuilder) WithHeightened(kind spellcard.HeightenedKind, level int, text string) *SpellCardBuilder {
	b.card.Heightened = append(b.card.Heightened, spellcard.Heightened{Kind: kind, Level: level, Text: text})
	return b
}

// Build returns the built card
func (b *SpellCardBuilder) Build() *spellcard.SpellCard {
	return b.card
}
