package spellcard

import (
	"github.com/KirkDiggler/spell-cards/internal/errors"
)

// Option is a select value paired with its label
type Option struct {
	Value string
	Label string
}

// Editor select values
const (
	OptionNone = "none"
)

// CastTimeOptions lists the cast time select values
var CastTimeOptions = []Option{
	{"free", "Free action"},
	{"reaction", "Reaction"},
	{"single", "Single action"},
	{"double", "Two actions"},
	{"triple", "Three actions"},
	{"range", "Range"},
	{"longer", "Longer, specify"},
}

// SpellTypeOptions lists the spell type select values
var SpellTypeOptions = []Option{
	{"cantrip", "Cantrip"},
	{"spell", "Spell"},
	{"focus", "Focus"},
	{"innate", "Innate"},
	{"ritual", "Ritual"},
}

// AreaShapeOptions lists the area select values
var AreaShapeOptions = []Option{
	{OptionNone, "None"},
	{"burst", "Burst"},
	{"cone", "Cone"},
	{"eman", "Emanation"},
	{"line", "Line"},
}

// DefenceOptions lists the defence select values
var DefenceOptions = []Option{
	{OptionNone, "None"},
	{"ac", "AC"},
	{"fort", "Fortitude"},
	{"refl", "Reflex"},
	{"will", "Will"},
}

// DegreeOptions lists the roll outcome field names
var DegreeOptions = []Option{
	{"critical_success", "Critical success"},
	{"success", "Success"},
	{"failure", "Failure"},
	{"critical_failure", "Critical failure"},
}

// HeightenedKindOptions lists the heightened kind select values
var HeightenedKindOptions = []Option{
	{"repeat", "Every N levels"},
	{"single", "At level"},
}

// ParseCastTime converts a cast time select value into its starting value
func ParseCastTime(value string) (CastTime, error) {
	switch value {
	case "free":
		return Fixed(CastFree), nil
	case "reaction":
		return Fixed(CastReaction), nil
	case "single":
		return Fixed(CastSingle), nil
	case "double":
		return Fixed(CastDouble), nil
	case "triple":
		return Fixed(CastTriple), nil
	case "range":
		return ActionRange(DefaultRangeMin, DefaultRangeMax), nil
	case "longer":
		return Longer(DefaultLonger), nil
	}
	return CastTime{}, errors.InvalidArgumentf("unknown cast time %q", value)
}

// Option returns the select value of the cast time
func (c CastTime) Option() string {
	if c.Kind < 0 || int(c.Kind) >= len(CastTimeOptions) {
		return ""
	}
	return CastTimeOptions[c.Kind].Value
}

// ParseSpellType converts a spell type select value
func ParseSpellType(value string) (SpellType, error) {
	for _, opt := range SpellTypeOptions {
		if opt.Value == value {
			return SpellType(opt.Label), nil
		}
	}
	return "", errors.InvalidArgumentf("unknown spell type %q", value)
}

// Option returns the select value of the spell type
func (t SpellType) Option() string {
	for _, opt := range SpellTypeOptions {
		if opt.Label == string(t) {
			return opt.Value
		}
	}
	return ""
}

var areaShapeValues = map[string]AreaShape{
	"burst": AreaBurst,
	"cone":  AreaCone,
	"eman":  AreaEmanation,
	"line":  AreaLine,
}

// ParseAreaShape converts an area select value. "none" yields nil.
func ParseAreaShape(value string) (*AreaShape, error) {
	if value == OptionNone {
		return nil, nil
	}
	shape, ok := areaShapeValues[value]
	if !ok {
		return nil, errors.InvalidArgumentf("unknown area shape %q", value)
	}
	return &shape, nil
}

// Option returns the select value of the shape
func (s AreaShape) Option() string {
	for value, shape := range areaShapeValues {
		if shape == s {
			return value
		}
	}
	return OptionNone
}

var defenceValues = map[string]Defence{
	"ac":   DefenceArmourClass,
	"fort": DefenceFortitude,
	"refl": DefenceReflex,
	"will": DefenceWill,
}

// ParseDefence converts a defence select value. "none" yields nil.
func ParseDefence(value string) (*Defence, error) {
	if value == OptionNone {
		return nil, nil
	}
	defence, ok := defenceValues[value]
	if !ok {
		return nil, errors.InvalidArgumentf("unknown defence %q", value)
	}
	return &defence, nil
}

// Option returns the select value of the defence
func (d Defence) Option() string {
	for value, defence := range defenceValues {
		if defence == d {
			return value
		}
	}
	return OptionNone
}

// ParseDegree converts a roll outcome field name
func ParseDegree(value string) (Degree, error) {
	for i, opt := range DegreeOptions {
		if opt.Value == value {
			return Degrees[i], nil
		}
	}
	return 0, errors.InvalidArgumentf("unknown roll outcome %q", value)
}

// Option returns the field name of the degree
func (d Degree) Option() string {
	if d < 0 || int(d) >= len(DegreeOptions) {
		return ""
	}
	return DegreeOptions[d].Value
}

// ParseHeightenedKind converts a heightened kind select value
func ParseHeightenedKind(value string) (HeightenedKind, error) {
	switch value {
	case "repeat":
		return HeightenedRepeat, nil
	case "single":
		return HeightenedSingle, nil
	}
	return 0, errors.InvalidArgumentf("unknown heightened kind %q", value)
}

// Option returns the select value of the kind
func (k HeightenedKind) Option() string {
	if k == HeightenedSingle {
		return "single"
	}
	return "repeat"
}
