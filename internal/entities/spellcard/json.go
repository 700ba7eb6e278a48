package spellcard

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Cards are stored with externally tagged variants: unit variants are plain
// strings and data variants are single key objects, e.g. {"Longer":"1 min"}.

// decodeVariant splits an externally tagged value into its variant name and
// payload. Unit variants have a nil payload.
func decodeVariant(data []byte) (string, json.RawMessage, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return "", nil, err
		}
		return name, nil, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return "", nil, err
	}
	if len(obj) != 1 {
		return "", nil, fmt.Errorf("expected a single variant, got %d keys", len(obj))
	}
	for name, payload := range obj {
		return name, payload, nil
	}
	return "", nil, nil
}

func isNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}

func encodeVariant(name string, payload any) ([]byte, error) {
	return json.Marshal(map[string]any{name: payload})
}

// MarshalJSON implements json.Marshaler
func (c CastTime) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case CastRange:
		return encodeVariant("Range", [2]int{c.Min, c.Max})
	case CastLonger:
		return encodeVariant("Longer", c.Text)
	case CastFree, CastReaction, CastSingle, CastDouble, CastTriple:
		return json.Marshal(c.Kind.String())
	}
	return nil, fmt.Errorf("unknown cast time kind %d", int(c.Kind))
}

// UnmarshalJSON implements json.Unmarshaler
func (c *CastTime) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	name, payload, err := decodeVariant(data)
	if err != nil {
		return fmt.Errorf("cast_time: %w", err)
	}

	switch name {
	case "Range":
		var bounds [2]int
		if err := json.Unmarshal(payload, &bounds); err != nil {
			return fmt.Errorf("cast_time range: %w", err)
		}
		*c = ActionRange(bounds[0], bounds[1])
		return nil
	case "Longer":
		var text string
		if err := json.Unmarshal(payload, &text); err != nil {
			return fmt.Errorf("cast_time longer: %w", err)
		}
		*c = Longer(text)
		return nil
	}

	for kind, kindName := range castTimeNames {
		if kindName == name && kind != CastRange && kind != CastLonger {
			*c = Fixed(kind)
			return nil
		}
	}
	return fmt.Errorf("cast_time: unknown variant %q", name)
}

// MarshalJSON implements json.Marshaler
func (a Area) MarshalJSON() ([]byte, error) {
	if a.Shape == AreaLine {
		return encodeVariant("Line", []any{a.Size, a.Width})
	}
	name, ok := areaShapeNames[a.Shape]
	if !ok {
		return nil, fmt.Errorf("unknown area shape %d", int(a.Shape))
	}
	return encodeVariant(name, a.Size)
}

// UnmarshalJSON implements json.Unmarshaler
func (a *Area) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	name, payload, err := decodeVariant(data)
	if err != nil {
		return fmt.Errorf("area: %w", err)
	}

	if name == "Line" {
		var line [2]*int
		if err := json.Unmarshal(payload, &line); err != nil {
			return fmt.Errorf("area line: %w", err)
		}
		if line[0] == nil {
			return fmt.Errorf("area line: missing length")
		}
		*a = Area{Shape: AreaLine, Size: *line[0], Width: line[1]}
		return nil
	}

	for shape, shapeName := range areaShapeNames {
		if shapeName != name {
			continue
		}
		var size int
		if err := json.Unmarshal(payload, &size); err != nil {
			return fmt.Errorf("area %s: %w", name, err)
		}
		*a = Area{Shape: shape, Size: size}
		return nil
	}
	return fmt.Errorf("area: unknown variant %q", name)
}

// MarshalJSON implements json.Marshaler
func (o Overview) MarshalJSON() ([]byte, error) {
	switch o.Kind {
	case OverviewRange:
		return encodeVariant("Range", o.Range)
	case OverviewArea:
		return encodeVariant("Area", o.Area)
	case OverviewTargets, OverviewDuration:
		return encodeVariant(o.Kind.String(), o.Text)
	case OverviewDefence:
		return encodeVariant("Defence", o.Defence)
	}
	return nil, fmt.Errorf("unknown overview kind %d", int(o.Kind))
}

// UnmarshalJSON implements json.Unmarshaler
func (o *Overview) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	name, payload, err := decodeVariant(data)
	if err != nil {
		return fmt.Errorf("overview: %w", err)
	}
	if payload == nil {
		return fmt.Errorf("overview: %q has no value", name)
	}

	var decoded Overview
	switch name {
	case "Range":
		decoded.Kind = OverviewRange
		err = json.Unmarshal(payload, &decoded.Range)
	case "Area":
		decoded.Kind = OverviewArea
		err = json.Unmarshal(payload, &decoded.Area)
	case "Targets":
		decoded.Kind = OverviewTargets
		err = json.Unmarshal(payload, &decoded.Text)
	case "Duration":
		decoded.Kind = OverviewDuration
		err = json.Unmarshal(payload, &decoded.Text)
	case "Defence":
		decoded.Kind = OverviewDefence
		err = json.Unmarshal(payload, &decoded.Defence)
		if err == nil && !decoded.Defence.Valid() {
			err = fmt.Errorf("unknown defence %q", decoded.Defence)
		}
	default:
		return fmt.Errorf("overview: unknown variant %q", name)
	}
	if err != nil {
		return fmt.Errorf("overview %s: %w", name, err)
	}

	*o = decoded
	return nil
}

// MarshalJSON implements json.Marshaler
func (r RollResult) MarshalJSON() ([]byte, error) {
	name, ok := degreeVariants[r.Degree]
	if !ok {
		return nil, fmt.Errorf("unknown degree %d", int(r.Degree))
	}
	return encodeVariant(name, r.Text)
}

// UnmarshalJSON implements json.Unmarshaler
func (r *RollResult) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	name, payload, err := decodeVariant(data)
	if err != nil {
		return fmt.Errorf("roll_effect: %w", err)
	}

	for degree, variant := range degreeVariants {
		if variant != name {
			continue
		}
		var text string
		if err := json.Unmarshal(payload, &text); err != nil {
			return fmt.Errorf("roll_effect %s: %w", name, err)
		}
		*r = RollResult{Degree: degree, Text: text}
		return nil
	}
	return fmt.Errorf("roll_effect: unknown variant %q", name)
}

// MarshalJSON implements json.Marshaler
func (h Heightened) MarshalJSON() ([]byte, error) {
	return encodeVariant(h.Kind.String(), []any{h.Level, h.Text})
}

// UnmarshalJSON implements json.Unmarshaler
func (h *Heightened) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	name, payload, err := decodeVariant(data)
	if err != nil {
		return fmt.Errorf("heightened: %w", err)
	}

	var kind HeightenedKind
	switch name {
	case "Repeat":
		kind = HeightenedRepeat
	case "Single":
		kind = HeightenedSingle
	default:
		return fmt.Errorf("heightened: unknown variant %q", name)
	}

	var tuple []json.RawMessage
	if err := json.Unmarshal(payload, &tuple); err != nil {
		return fmt.Errorf("heightened %s: %w", name, err)
	}
	if len(tuple) != 2 {
		return fmt.Errorf("heightened %s: expected [level, text]", name)
	}

	decoded := Heightened{Kind: kind}
	if err := json.Unmarshal(tuple[0], &decoded.Level); err != nil {
		return fmt.Errorf("heightened %s level: %w", name, err)
	}
	if err := json.Unmarshal(tuple[1], &decoded.Text); err != nil {
		return fmt.Errorf("heightened %s text: %w", name, err)
	}

	*h = decoded
	return nil
}

// UnmarshalJSON implements json.Unmarshaler and rejects unknown spell types
func (t *SpellType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("spell_type: %w", err)
	}
	for _, known := range SpellTypes {
		if string(known) == name {
			*t = known
			return nil
		}
	}
	return fmt.Errorf("spell_type: unknown variant %q", name)
}

// Valid reports whether d is a known defence
func (d Defence) Valid() bool {
	switch d {
	case DefenceArmourClass, DefenceFortitude, DefenceReflex, DefenceWill:
		return true
	}
	return false
}

// Fingerprint identifies the card's content as the hex sha256 of its
// normalized stored encoding. Equal cards have equal fingerprints.
func (c *SpellCard) Fingerprint() string {
	if c == nil {
		return ""
	}

	clone := c.Clone()
	clone.Normalize()
	data, err := json.Marshal(clone)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
