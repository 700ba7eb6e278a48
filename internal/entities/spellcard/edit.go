package spellcard

import (
	"regexp"
	"slices"
	"sort"
	"strings"

	"github.com/KirkDiggler/spell-cards/internal/errors"
)

var traitSeparator = regexp.MustCompile(`[\s,]+`)

// OverviewOf returns the overview fact of the given kind
func (c *SpellCard) OverviewOf(kind OverviewKind) (Overview, bool) {
	for _, o := range c.Overview {
		if o.Kind == kind {
			return o, true
		}
	}
	return Overview{}, false
}

// RemoveOverview drops any fact of the given kind
func (c *SpellCard) RemoveOverview(kind OverviewKind) {
	c.Overview = slices.DeleteFunc(c.Overview, func(o Overview) bool {
		return o.Kind == kind
	})
}

// SetOverview replaces the fact of o's kind and keeps the list sorted
func (c *SpellCard) SetOverview(o Overview) {
	c.RemoveOverview(o.Kind)
	c.Overview = append(c.Overview, o)
	c.sortOverview()
}

func (c *SpellCard) sortOverview() {
	sort.SliceStable(c.Overview, func(i, j int) bool {
		return c.Overview[i].Kind < c.Overview[j].Kind
	})
}

// SetRange sets the range in feet. Zero or less removes it.
func (c *SpellCard) SetRange(feet int) {
	c.RemoveOverview(OverviewRange)
	if feet > 0 {
		c.SetOverview(RangeOverview(feet))
	}
}

// SetAreaShape switches the area to the default of shape. A nil shape removes
// the area.
func (c *SpellCard) SetAreaShape(shape *AreaShape) {
	c.RemoveOverview(OverviewArea)
	if shape != nil {
		c.SetOverview(AreaOverview(DefaultArea(*shape)))
	}
}

// SetAreaSize resizes the current area, keeping its shape and line width. When
// no area exists yet the fallback shape is used. Zero or less removes it.
func (c *SpellCard) SetAreaSize(fallback AreaShape, size int) {
	area := Area{Shape: fallback}
	if current, ok := c.OverviewOf(OverviewArea); ok {
		area = current.Area
	}
	area.Size = size

	c.RemoveOverview(OverviewArea)
	if size > 0 {
		c.SetOverview(AreaOverview(area))
	}
}

// SetLineWidth sets the width of a line area. Zero or less clears the width.
func (c *SpellCard) SetLineWidth(width int) error {
	current, ok := c.OverviewOf(OverviewArea)
	if !ok || current.Area.Shape != AreaLine {
		return errors.FailedPrecondition("line width requires a line area")
	}

	area := current.Area
	area.Width = nil
	if width > 0 {
		area.Width = &width
	}
	c.SetOverview(AreaOverview(area))
	return nil
}

// SetTargets sets the targets text. Empty text removes it.
func (c *SpellCard) SetTargets(text string) {
	c.setText(OverviewTargets, text)
}

// SetDuration sets the duration text. Empty text removes it.
func (c *SpellCard) SetDuration(text string) {
	c.setText(OverviewDuration, text)
}

func (c *SpellCard) setText(kind OverviewKind, text string) {
	c.RemoveOverview(kind)
	if text != "" {
		c.SetOverview(Overview{Kind: kind, Text: text})
	}
}

// SetDefence sets the targeted defence. A nil defence removes it.
func (c *SpellCard) SetDefence(defence *Defence) {
	c.RemoveOverview(OverviewDefence)
	if defence != nil {
		c.SetOverview(DefenceOverview(*defence))
	}
}

// RollText returns the effect text of a degree, or "" when absent
func (c *SpellCard) RollText(degree Degree) string {
	for _, r := range c.Rolls {
		if r.Degree == degree {
			return r.Text
		}
	}
	return ""
}

// SetRollResult replaces the effect of a degree. Empty text removes it.
func (c *SpellCard) SetRollResult(degree Degree, text string) {
	c.Rolls = slices.DeleteFunc(c.Rolls, func(r RollResult) bool {
		return r.Degree == degree
	})
	if text == "" {
		return
	}
	c.Rolls = append(c.Rolls, RollResult{Degree: degree, Text: text})
	sort.SliceStable(c.Rolls, func(i, j int) bool {
		return c.Rolls[i].Degree < c.Rolls[j].Degree
	})
}

// SetTraits replaces the traits with the words of text, split on whitespace
// and commas
func (c *SpellCard) SetTraits(text string) {
	traits := []string{}
	for _, t := range traitSeparator.Split(text, -1) {
		if t != "" {
			traits = append(traits, t)
		}
	}
	c.Traits = traits
}

// SetHeightened edits the entry at index. An index equal to the number of
// entries appends. Empty text removes an existing entry and skips an append.
func (c *SpellCard) SetHeightened(index int, h Heightened) error {
	if index < 0 || index > len(c.Heightened) {
		return errors.OutOfRangef("heightened index %d out of range", index)
	}

	if index == len(c.Heightened) {
		if h.Text != "" {
			c.Heightened = append(c.Heightened, h)
		}
		return nil
	}

	if h.Text == "" {
		c.Heightened = slices.Delete(c.Heightened, index, index+1)
		return nil
	}
	c.Heightened[index] = h
	return nil
}

// RemoveHeightened deletes the entry at index
func (c *SpellCard) RemoveHeightened(index int) error {
	if index < 0 || index >= len(c.Heightened) {
		return errors.OutOfRangef("heightened index %d out of range", index)
	}
	c.Heightened = slices.Delete(c.Heightened, index, index+1)
	return nil
}

// Paragraphs splits the effect text into its lines
func (c *SpellCard) Paragraphs() []string {
	return strings.Split(c.Effect, "\n")
}

// Normalize restores list invariants on cards read from outside the editor:
// nil lists become empty and overview and rolls are sorted with one entry per
// kind, keeping the last one seen.
func (c *SpellCard) Normalize() {
	if c.Traits == nil {
		c.Traits = []string{}
	}
	if c.Heightened == nil {
		c.Heightened = []Heightened{}
	}

	overview := c.Overview
	c.Overview = []Overview{}
	for _, o := range overview {
		c.SetOverview(o)
	}

	rolls := c.Rolls
	c.Rolls = []RollResult{}
	for _, r := range rolls {
		c.SetRollResult(r.Degree, r.Text)
	}
}

// Clone returns a deep copy of the card
func (c *SpellCard) Clone() *SpellCard {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Traits = slices.Clone(c.Traits)
	clone.Overview = make([]Overview, len(c.Overview))
	for i, o := range c.Overview {
		if o.Area.Width != nil {
			width := *o.Area.Width
			o.Area.Width = &width
		}
		clone.Overview[i] = o
	}
	clone.Rolls = slices.Clone(c.Rolls)
	clone.Heightened = slices.Clone(c.Heightened)
	return &clone
}

// Validate checks the fields a saved card must satisfy
func (c *SpellCard) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("spell_name", c.Name, vb)
	errors.ValidateRange("spell_level", c.Level, MinSpellLevel, MaxSpellLevel, vb)
	if !slices.Contains(SpellTypes, c.SpellType) {
		vb.Fieldf("spell_type", "unknown spell type %q", c.SpellType)
	}

	switch c.CastTime.Kind {
	case CastRange:
		errors.ValidateRange("cast_time_min", c.CastTime.Min, MinActionCount, MaxActionCount, vb)
		errors.ValidateRange("cast_time_max", c.CastTime.Max, MinActionCount, MaxActionCount, vb)
	case CastLonger:
		errors.ValidateRequired("cast_time", c.CastTime.Text, vb)
	}

	for _, h := range c.Heightened {
		if h.Level < MinSpellLevel || h.Level > MaxSpellLevel {
			vb.Fieldf("heightened", "level must be between %d and %d, got %d", MinSpellLevel, MaxSpellLevel, h.Level)
		}
	}

	return vb.Build()
}
