package render

import "github.com/KirkDiggler/spell-cards/internal/entities/spellcard"

// Entry is a card shown on the index with its position in the book
type Entry struct {
	Index int
	Card  *spellcard.SpellCard
}

// IndexView is the content of the book page
type IndexView struct {
	Entries []Entry
	// Total is the number of cards in the book, which differs from
	// len(Entries) while searching
	Total       int
	Query       string
	Suggestions []string
	// SRDImport shows an SRD key input on the new card form
	SRDImport bool
}

// Editor field names, posted to /drafts/{id}/fields/{field}. Each control is
// also named by its field, so the handler reads the value under that key from
// the whole form htmx posts. Roll outcomes use the degree option values.
const (
	FieldName           = "name"
	FieldLink           = "link"
	FieldCastTime       = "cast_time"
	FieldCastTimeLonger = "cast_time_longer"
	FieldCastTimeMin    = "cast_time_min"
	FieldCastTimeMax    = "cast_time_max"
	FieldSpellType      = "spell_type"
	FieldLevel          = "level"
	FieldTraits         = "traits"
	FieldRange          = "range"
	FieldAreaShape      = "area_shape"
	FieldAreaSize       = "area_size"
	FieldLineWidth      = "line_width"
	FieldTargets        = "targets"
	FieldDuration       = "duration"
	FieldDefence        = "defence"
	FieldEffect         = "effect"
)

// FieldSRD is the new card form key holding an SRD spell key
const FieldSRD = "srd"

// Parts of a heightened row
const (
	PartKind  = "kind"
	PartLevel = "level"
	PartText  = "text"
)

// HeightenedKey is the form key of one part of heightened row index
func HeightenedKey(index int, part string) string {
	return "heightened_" + itoa(index) + "_" + part
}

// EditorID is the element id htmx swaps on every change
const EditorID = "editor"

// EditorView is the state shown by the editor
type EditorView struct {
	Draft *spellcard.Draft
	// Error is shown above the form after a rejected change
	Error string
}
