// Package spellcard contains the spell card data model: the card itself, its
// header descriptors, the ordered overview and roll outcome lists, and the
// book that holds a collection of cards.
package spellcard

import (
	"fmt"
	"strconv"
)

// Limits enforced on card fields
const (
	MinSpellLevel   = 1
	MaxSpellLevel   = 10
	MinActionCount  = 1
	MaxActionCount  = 3
	DefaultLonger   = "10 min"
	DefaultRangeMin = 1
	DefaultRangeMax = 3
)

// CastTimeKind identifies the shape of a cast time
type CastTimeKind int

// Cast time kinds
const (
	CastFree CastTimeKind = iota
	CastReaction
	CastSingle
	CastDouble
	CastTriple
	CastRange
	CastLonger
)

var castTimeNames = map[CastTimeKind]string{
	CastFree:     "Free",
	CastReaction: "Reaction",
	CastSingle:   "Single",
	CastDouble:   "Double",
	CastTriple:   "Triple",
	CastRange:    "Range",
	CastLonger:   "Longer",
}

// String returns the variant name of the kind
func (k CastTimeKind) String() string {
	if name, ok := castTimeNames[k]; ok {
		return name
	}
	return fmt.Sprintf("CastTimeKind(%d)", int(k))
}

// CastTime describes how long a spell takes to cast. Min and Max are only
// meaningful for CastRange, Text only for CastLonger.
type CastTime struct {
	Kind CastTimeKind
	Min  int
	Max  int
	Text string
}

// Fixed returns a cast time without parameters
func Fixed(kind CastTimeKind) CastTime {
	return CastTime{Kind: kind}
}

// ActionRange returns a cast time spanning min to max actions
func ActionRange(minActions, maxActions int) CastTime {
	return CastTime{Kind: CastRange, Min: minActions, Max: maxActions}
}

// Longer returns a free text cast time such as "1 minute"
func Longer(text string) CastTime {
	return CastTime{Kind: CastLonger, Text: text}
}

// Glyph returns the action font glyph for glyph cast times
func (c CastTime) Glyph() string {
	switch c.Kind {
	case CastFree:
		return "F"
	case CastReaction:
		return "R"
	case CastSingle:
		return "A"
	case CastDouble:
		return "D"
	case CastTriple:
		return "T"
	}
	return ""
}

// String renders the cast time as it appears on a card
func (c CastTime) String() string {
	switch c.Kind {
	case CastRange:
		return ActionGlyph(c.Min) + " to " + ActionGlyph(c.Max)
	case CastLonger:
		return c.Text
	}
	return c.Glyph()
}

// ActionGlyph returns the glyph for a number of actions
func ActionGlyph(actions int) string {
	switch actions {
	case 1:
		return "A"
	case 2:
		return "D"
	case 3:
		return "T"
	}
	return strconv.Itoa(actions)
}

// SpellType is the category shown next to the level in the card header
type SpellType string

// Spell types
const (
	SpellTypeCantrip SpellType = "Cantrip"
	SpellTypeFocus   SpellType = "Focus"
	SpellTypeSpell   SpellType = "Spell"
	SpellTypeInnate  SpellType = "Innate"
	SpellTypeRitual  SpellType = "Ritual"
)

// SpellTypes lists every spell type in display order
var SpellTypes = []SpellType{
	SpellTypeCantrip,
	SpellTypeFocus,
	SpellTypeSpell,
	SpellTypeInnate,
	SpellTypeRitual,
}

// String returns the display name
func (t SpellType) String() string {
	return string(t)
}

// AreaShape is the geometry of an area of effect
type AreaShape int

// Area shapes
const (
	AreaBurst AreaShape = iota
	AreaCone
	AreaEmanation
	AreaLine
)

var areaShapeNames = map[AreaShape]string{
	AreaBurst:     "Burst",
	AreaCone:      "Cone",
	AreaEmanation: "Emanation",
	AreaLine:      "Line",
}

// String returns the variant name of the shape
func (s AreaShape) String() string {
	if name, ok := areaShapeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("AreaShape(%d)", int(s))
}

// Area is an area of effect. Width is only used by lines and may be nil.
type Area struct {
	Shape AreaShape
	Size  int
	Width *int
}

// DefaultArea returns the area a shape starts with when first selected
func DefaultArea(shape AreaShape) Area {
	switch shape {
	case AreaCone:
		return Area{Shape: AreaCone, Size: 15}
	case AreaEmanation:
		return Area{Shape: AreaEmanation, Size: 5}
	case AreaLine:
		return Area{Shape: AreaLine, Size: 60}
	}
	return Area{Shape: AreaBurst, Size: 5}
}

// String renders the area as it appears on a card
func (a Area) String() string {
	switch a.Shape {
	case AreaBurst:
		return fmt.Sprintf("%dft burst", a.Size)
	case AreaCone:
		return fmt.Sprintf("%dft cone", a.Size)
	case AreaEmanation:
		return fmt.Sprintf("%dft emanation", a.Size)
	case AreaLine:
		if a.Width != nil {
			return fmt.Sprintf("%dft long and %dft wide line", a.Size, *a.Width)
		}
		return fmt.Sprintf("%dft line", a.Size)
	}
	return fmt.Sprintf("%dft", a.Size)
}

// Defence is the defence a spell targets
type Defence string

// Defences
const (
	DefenceArmourClass Defence = "ArmourClass"
	DefenceFortitude   Defence = "Fortitude"
	DefenceReflex      Defence = "Reflex"
	DefenceWill        Defence = "Will"
)

// String returns the label shown on a card
func (d Defence) String() string {
	if d == DefenceArmourClass {
		return "AC"
	}
	return string(d)
}

// OverviewKind orders overview facts on a card
type OverviewKind int

// Overview kinds, in display order
const (
	OverviewRange OverviewKind = iota
	OverviewArea
	OverviewTargets
	OverviewDefence
	OverviewDuration
)

var overviewKindNames = map[OverviewKind]string{
	OverviewRange:    "Range",
	OverviewArea:     "Area",
	OverviewTargets:  "Targets",
	OverviewDefence:  "Defence",
	OverviewDuration: "Duration",
}

// String returns the label of the kind
func (k OverviewKind) String() string {
	if name, ok := overviewKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("OverviewKind(%d)", int(k))
}

// Overview is one summary fact shown under the card header. Only the field
// matching Kind is populated.
type Overview struct {
	Kind    OverviewKind
	Range   int
	Area    Area
	Text    string
	Defence Defence
}

// RangeOverview returns a range fact in feet
func RangeOverview(feet int) Overview {
	return Overview{Kind: OverviewRange, Range: feet}
}

// AreaOverview returns an area fact
func AreaOverview(area Area) Overview {
	return Overview{Kind: OverviewArea, Area: area}
}

// TargetsOverview returns a targets fact
func TargetsOverview(text string) Overview {
	return Overview{Kind: OverviewTargets, Text: text}
}

// DefenceOverview returns a defence fact
func DefenceOverview(defence Defence) Overview {
	return Overview{Kind: OverviewDefence, Defence: defence}
}

// DurationOverview returns a duration fact
func DurationOverview(text string) Overview {
	return Overview{Kind: OverviewDuration, Text: text}
}

// Value renders the fact without its label
func (o Overview) Value() string {
	switch o.Kind {
	case OverviewRange:
		return fmt.Sprintf("%dft", o.Range)
	case OverviewArea:
		return o.Area.String()
	case OverviewDefence:
		return o.Defence.String()
	}
	return o.Text
}

// Degree is a degree of success of a save or attack roll
type Degree int

// Degrees, in display order
const (
	DegreeCriticalSuccess Degree = iota
	DegreeSuccess
	DegreeFailure
	DegreeCriticalFailure
)

// Degrees lists every degree in display order
var Degrees = []Degree{
	DegreeCriticalSuccess,
	DegreeSuccess,
	DegreeFailure,
	DegreeCriticalFailure,
}

var degreeVariants = map[Degree]string{
	DegreeCriticalSuccess: "CriticalSuccess",
	DegreeSuccess:         "Success",
	DegreeFailure:         "Failure",
	DegreeCriticalFailure: "CriticalFailure",
}

var degreeLabels = map[Degree]string{
	DegreeCriticalSuccess: "Critical Success",
	DegreeSuccess:         "Success",
	DegreeFailure:         "Failure",
	DegreeCriticalFailure: "Critical Failure",
}

// String returns the label of the degree
func (d Degree) String() string {
	if label, ok := degreeLabels[d]; ok {
		return label
	}
	return fmt.Sprintf("Degree(%d)", int(d))
}

// RollResult is the effect of one degree of success
type RollResult struct {
	Degree Degree
	Text   string
}

// HeightenedKind distinguishes scaling every N levels from a fixed level
type HeightenedKind int

// Heightened kinds
const (
	HeightenedRepeat HeightenedKind = iota
	HeightenedSingle
)

// String returns the variant name of the kind
func (k HeightenedKind) String() string {
	if k == HeightenedSingle {
		return "Single"
	}
	return "Repeat"
}

// Heightened describes how a spell changes when cast at a higher level
type Heightened struct {
	Kind  HeightenedKind
	Level int
	Text  string
}

// Label returns "Heightened (+n)" or "Heightened (nth)"
func (h Heightened) Label() string {
	if h.Kind == HeightenedRepeat {
		return fmt.Sprintf("Heightened (+%d)", h.Level)
	}
	return fmt.Sprintf("Heightened (%s)", Ordinal(h.Level))
}

// Ordinal returns 1st, 2nd, 3rd and nth otherwise
func Ordinal(n int) string {
	switch n {
	case 1:
		return "1st"
	case 2:
		return "2nd"
	case 3:
		return "3rd"
	}
	return fmt.Sprintf("%dth", n)
}

// SpellCard is a single spell reference card
type SpellCard struct {
	// Header
	Name      string    `json:"spell_name"`
	CastTime  CastTime  `json:"cast_time"`
	SpellType SpellType `json:"spell_type"`
	Level     int       `json:"spell_level"`
	Link      string    `json:"link"`

	// Middle
	Traits   []string   `json:"traits"`
	Overview []Overview `json:"overview"`

	// Bottom
	Effect     string       `json:"spell_effect"`
	Rolls      []RollResult `json:"roll_effect"`
	Heightened []Heightened `json:"heightened"`
}

// New returns an empty card with the editor defaults
func New() *SpellCard {
	return &SpellCard{
		CastTime:   Fixed(CastSingle),
		SpellType:  SpellTypeSpell,
		Level:      MinSpellLevel,
		Traits:     []string{},
		Overview:   []Overview{},
		Rolls:      []RollResult{},
		Heightened: []Heightened{},
	}
}

// SpellBook is the persisted collection of cards
type SpellBook struct {
	Spells []*SpellCard `json:"spells"`
}
