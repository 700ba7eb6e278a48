package spellcard

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/spell-cards/internal/errors"
)

// DecodeBookYAML reads a book written in YAML. The document uses the same
// shape as the stored JSON blob, so it is decoded generically and passed
// through the JSON codec.
func DecodeBookYAML(data []byte) (*SpellBook, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.InvalidArgumentf("invalid yaml: %v", err)
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.InvalidArgumentf("yaml is not representable as json: %v", err)
	}

	return DecodeBookJSON(raw)
}

// EncodeBookYAML writes a book as YAML in the stored blob's shape
func EncodeBookYAML(book *SpellBook) ([]byte, error) {
	raw, err := json.Marshal(book)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal book")
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrap(err, "failed to decode book")
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode yaml")
	}
	return out, nil
}

// DecodeBookJSON reads a stored book blob and normalizes every card
func DecodeBookJSON(data []byte) (*SpellBook, error) {
	var book SpellBook
	if err := json.Unmarshal(data, &book); err != nil {
		return nil, errors.InvalidArgumentf("invalid spell book: %v", err)
	}

	spells := make([]*SpellCard, 0, len(book.Spells))
	for _, card := range book.Spells {
		if card == nil {
			continue
		}
		card.Normalize()
		spells = append(spells, card)
	}
	book.Spells = spells
	return &book, nil
}
