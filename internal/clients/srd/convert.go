package srd

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/fadedpez/dnd5e-api/entities"

	"github.com/KirkDiggler/spell-cards/internal/entities/spellcard"
)

var feetPattern = regexp.MustCompile(`^(\d+)\s*(feet|foot|ft)`)

// SpellData is the subset of an SRD spell that maps onto a card
type SpellData struct {
	Key           string
	Name          string
	Level         int
	School        string
	CastingTime   string
	Range         string
	Duration      string
	Ritual        bool
	Concentration bool
	// SaveAbility is the saving throw ability, e.g. "DEX"
	SaveAbility string
	// SaveSuccess is what a successful save does: "half" or "none"
	SaveSuccess string
	AreaType    string
	AreaSize    int
}

func fromEntity(spell *entities.Spell) *SpellData {
	data := &SpellData{
		Key:           spell.Key,
		Name:          spell.Name,
		Level:         spell.SpellLevel,
		CastingTime:   spell.CastingTime,
		Range:         spell.Range,
		Duration:      spell.Duration,
		Ritual:        spell.Ritual,
		Concentration: spell.Concentration,
	}

	if spell.SpellSchool != nil {
		data.School = spell.SpellSchool.Name
	}
	if spell.DC != nil {
		if spell.DC.DCType != nil {
			data.SaveAbility = spell.DC.DCType.Name
		}
		data.SaveSuccess = spell.DC.DCSuccess
	}
	if spell.AreaOfEffect != nil {
		data.AreaType = spell.AreaOfEffect.Type
		data.AreaSize = spell.AreaOfEffect.Size
	}

	return data
}

// ToCard converts SRD spell data into a card. 5e actions become two PF2e
// actions and bonus actions become one; anything else is kept as text.
func ToCard(data *SpellData) *spellcard.SpellCard {
	card := spellcard.New()
	card.Name = data.Name

	switch {
	case data.Level <= 0:
		card.SpellType = spellcard.SpellTypeCantrip
		card.Level = spellcard.MinSpellLevel
	case data.Ritual:
		card.SpellType = spellcard.SpellTypeRitual
		card.Level = min(data.Level, spellcard.MaxSpellLevel)
	default:
		card.SpellType = spellcard.SpellTypeSpell
		card.Level = min(data.Level, spellcard.MaxSpellLevel)
	}

	card.CastTime = castTime(data.CastingTime)

	traits := []string{}
	if data.School != "" {
		traits = append(traits, data.School)
	}
	if data.Concentration {
		traits = append(traits, "Concentration")
	}
	card.Traits = traits

	if feet := parseFeet(data.Range); feet > 0 {
		card.SetRange(feet)
	}
	if shape, ok := areaShape(data.AreaType); ok && data.AreaSize > 0 {
		card.SetOverview(spellcard.AreaOverview(spellcard.Area{Shape: shape, Size: data.AreaSize}))
	}
	if defence, ok := saveDefence(data.SaveAbility); ok {
		card.SetDefence(&defence)
		switch strings.ToLower(data.SaveSuccess) {
		case "half":
			card.SetRollResult(spellcard.DegreeSuccess, "Half effect")
		case "none":
			card.SetRollResult(spellcard.DegreeSuccess, "No effect")
		}
	}
	if data.Duration != "" && !strings.EqualFold(data.Duration, "Instantaneous") {
		card.SetDuration(data.Duration)
	}

	return card
}

func castTime(text string) spellcard.CastTime {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "1 action":
		return spellcard.Fixed(spellcard.CastDouble)
	case "1 bonus action":
		return spellcard.Fixed(spellcard.CastSingle)
	case "1 reaction":
		return spellcard.Fixed(spellcard.CastReaction)
	case "":
		return spellcard.Fixed(spellcard.CastSingle)
	}
	return spellcard.Longer(text)
}

func parseFeet(text string) int {
	m := feetPattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(text)))
	if m == nil {
		return 0
	}
	feet, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return feet
}

func areaShape(areaType string) (spellcard.AreaShape, bool) {
	switch strings.ToLower(areaType) {
	case "sphere", "cylinder", "cube":
		return spellcard.AreaBurst, true
	case "cone":
		return spellcard.AreaCone, true
	case "line":
		return spellcard.AreaLine, true
	}
	return 0, false
}

func saveDefence(ability string) (spellcard.Defence, bool) {
	switch strings.ToLower(ability) {
	case "dex", "dexterity":
		return spellcard.DefenceReflex, true
	case "con", "constitution", "str", "strength":
		return spellcard.DefenceFortitude, true
	case "wis", "wisdom", "int", "intelligence", "cha", "charisma":
		return spellcard.DefenceWill, true
	}
	return "", false
}
