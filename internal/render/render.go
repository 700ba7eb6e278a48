// Package render turns spell cards, books and drafts into HTML components.
// The components are written in the .templ files next to this one; run
// `templ generate` after editing them.
package render

import (
	_ "embed"
	"net/url"
	"strconv"
	"strings"

	"github.com/KirkDiggler/spell-cards/internal/entities/spellcard"
)

//go:generate templ generate

// Stylesheet is served at StylesheetPath
//
//go:embed static/style.css
var Stylesheet []byte

// StylesheetPath is where pages load the stylesheet from
const StylesheetPath = "/static/style.css"

const htmxScript = "https://unpkg.com/htmx.org@1.9.12"

// editorTarget is the hx-target every editor control swaps
const editorTarget = "#" + EditorID

func itoa(n int) string {
	return strconv.Itoa(n)
}

// optionalNumber renders zero as an empty input
func optionalNumber(n int) string {
	if n <= 0 {
		return ""
	}
	return itoa(n)
}

func cardURL(index int, action string) string {
	return "/cards/" + itoa(index) + "/" + action
}

func moveURL(from, to int) string {
	return cardURL(from, "move") + "?to=" + itoa(to)
}

func draftURL(draftID, action string) string {
	return "/drafts/" + draftID + "/" + action
}

func fieldURL(draftID, field string) string {
	return draftURL(draftID, "fields/"+field)
}

func heightenedURL(draftID string, index int) string {
	return draftURL(draftID, "heightened/"+itoa(index))
}

func searchURL(query string) string {
	return "/cards/search?q=" + url.QueryEscape(query)
}

func traitsValue(card *spellcard.SpellCard) string {
	return strings.Join(card.Traits, ", ")
}

func rangeValue(card *spellcard.SpellCard) string {
	if o, ok := card.OverviewOf(spellcard.OverviewRange); ok {
		return optionalNumber(o.Range)
	}
	return ""
}

func areaShapeValue(card *spellcard.SpellCard) string {
	if o, ok := card.OverviewOf(spellcard.OverviewArea); ok {
		return o.Area.Shape.Option()
	}
	return spellcard.OptionNone
}

func lineWidthValue(area spellcard.Area) string {
	if area.Width == nil {
		return ""
	}
	return optionalNumber(*area.Width)
}

func defenceValue(card *spellcard.SpellCard) string {
	if o, ok := card.OverviewOf(spellcard.OverviewDefence); ok {
		return o.Defence.Option()
	}
	return spellcard.OptionNone
}

func overviewText(card *spellcard.SpellCard, kind spellcard.OverviewKind) string {
	o, _ := card.OverviewOf(kind)
	return o.Text
}

// heightenedRows is every entry plus the trailing row for adding one
func heightenedRows(draft *spellcard.Draft) []spellcard.Heightened {
	entries := draft.Card.Heightened
	return append(entries[:len(entries):len(entries)], draft.NextHeightened())
}
