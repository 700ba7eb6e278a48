package testutils

import (
	"time"

	"github.com/KirkDiggler/spell-cards/internal/entities/spellcard"
	"github.com/KirkDiggler/spell-cards/internal/testutils/builders"
)

// CreateTestDraft creates a draft holding a default card
func CreateTestDraft(id string) *spellcard.Draft {
	now := time.Now().Unix()
	return &spellcard.Draft{
		ID:        id,
		Card:      spellcard.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Lightningbolt returns the first card of the starter book
func Lightningbolt() *spellcard.SpellCard {
	return builders.NewSpellCardBuilder().
		WithName("Lightningbolt").
		WithCastTime(spellcard.Fixed(spellcard.CastReaction)).
		WithType(spellcard.SpellTypeCantrip, 1).
		WithLink("https://2e.aonprd.com/Spells.aspx?ID=1509").
		WithTraits("Lightning").
		WithRange(30).
		WithTargets("1 or 2 creatures").
		WithDefence(spellcard.DefenceFortitude).
		WithEffect("Electric arcs jump between you and the target(s).").
		WithHeightened(spellcard.HeightenedRepeat, 2, "Increase damage by 1d4").
		Build()
}

// Fireball returns the second card of the starter book
func Fireball() *spellcard.SpellCard {
	return builders.NewSpellCardBuilder().
		WithName("Fireball").
		WithCastTime(spellcard.Fixed(spellcard.CastTriple)).
		WithType(spellcard.SpellTypeSpell, 3).
		WithLink("https://2e.aonprd.com/Spells.aspx?ID=1565").
		WithTraits("Fire", "AoE").
		WithRange(20).
		WithArea(spellcard.Area{Shape: spellcard.AreaBurst, Size: 15}).
		WithEffect("Cast a fireball\n" +
			"Try to avoid your friends or they might want to try to kill you until you have died four times\n" +
			"Each creature in the affected area makes a Reflex save").
		WithRoll(spellcard.DegreeCriticalSuccess, "The creature is unaffected").
		WithRoll(spellcard.DegreeSuccess, "The creature takes half damage").
		WithRoll(spellcard.DegreeCriticalFailure, "The creature takes double damage and 3d6 persistent fire damage").
		WithHeightened(spellcard.HeightenedRepeat, 1, "Increase damage by 1d6").
		WithHeightened(spellcard.HeightenedSingle, 5, "Increase persistent damage by 1d6").
		Build()
}

// Thunderstorm returns the third card of the starter book
func Thunderstorm() *spellcard.SpellCard {
	card := Lightningbolt()
	card.Name = "Thunderstorm"
	card.CastTime = spellcard.Fixed(spellcard.CastDouble)
	card.SpellType = spellcard.SpellTypeSpell
	card.Level = 3
	return card
}

// SeedBook returns the starter book written when no book is stored
func SeedBook() *spellcard.SpellBook {
	return &spellcard.SpellBook{
		Spells: []*spellcard.SpellCard{Lightningbolt(), Fireball(), Thunderstorm()},
	}
}
