package editor

import (
	"context"

	"github.com/KirkDiggler/spell-cards/internal/entities/spellcard"
	"github.com/KirkDiggler/spell-cards/internal/errors"
	"github.com/KirkDiggler/spell-cards/internal/services/editor"
)

// UpdateName sets the spell name
func (o *Orchestrator) UpdateName(ctx context.Context, input *editor.UpdateTextInput) (*editor.UpdateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	return o.mutate(ctx, input.DraftID, func(card *spellcard.SpellCard) error {
		card.Name = input.Text
		return nil
	})
}

// UpdateLink sets the reference link
func (o *Orchestrator) UpdateLink(ctx context.Context, input *editor.UpdateTextInput) (*editor.UpdateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	return o.mutate(ctx, input.DraftID, func(card *spellcard.SpellCard) error {
		card.Link = input.Text
		return nil
	})
}

// UpdateEffect sets the effect text
func (o *Orchestrator) UpdateEffect(ctx context.Context, input *editor.UpdateTextInput) (*editor.UpdateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	return o.mutate(ctx, input.DraftID, func(card *spellcard.SpellCard) error {
		card.Effect = input.Text
		return nil
	})
}

// UpdateCastTime switches the cast time kind. Range and longer start from
// their defaults.
func (o *Orchestrator) UpdateCastTime(ctx context.Context, input *editor.UpdateCastTimeInput) (*editor.UpdateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	castTime, err := spellcard.ParseCastTime(input.CastTime)
	if err != nil {
		return nil, err
	}
	return o.mutate(ctx, input.DraftID, func(card *spellcard.SpellCard) error {
		card.CastTime = castTime
		return nil
	})
}

// UpdateCastTimeLonger sets the free text of a longer cast time
func (o *Orchestrator) UpdateCastTimeLonger(ctx context.Context, input *editor.UpdateTextInput) (*editor.UpdateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	return o.mutate(ctx, input.DraftID, func(card *spellcard.SpellCard) error {
		card.CastTime = spellcard.Longer(input.Text)
		return nil
	})
}

// UpdateCastTimeRange changes either end of an action range
func (o *Orchestrator) UpdateCastTimeRange(ctx context.Context, input *editor.UpdateCastTimeRangeInput) (*editor.UpdateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	if input.Min != nil {
		errors.ValidateRange("cast_time_min", *input.Min, spellcard.MinActionCount, spellcard.MaxActionCount, vb)
	}
	if input.Max != nil {
		errors.ValidateRange("cast_time_max", *input.Max, spellcard.MinActionCount, spellcard.MaxActionCount, vb)
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	return o.mutate(ctx, input.DraftID, func(card *spellcard.SpellCard) error {
		if card.CastTime.Kind != spellcard.CastRange {
			return errors.FailedPrecondition("cast time is not an action range")
		}
		if input.Min != nil {
			card.CastTime.Min = *input.Min
		}
		if input.Max != nil {
			card.CastTime.Max = *input.Max
		}
		return nil
	})
}

// UpdateSpellType sets the spell type
func (o *Orchestrator) UpdateSpellType(ctx context.Context, input *editor.UpdateSpellTypeInput) (*editor.UpdateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	spellType, err := spellcard.ParseSpellType(input.SpellType)
	if err != nil {
		return nil, err
	}
	return o.mutate(ctx, input.DraftID, func(card *spellcard.SpellCard) error {
		card.SpellType = spellType
		return nil
	})
}

// UpdateLevel sets the spell level
func (o *Orchestrator) UpdateLevel(ctx context.Context, input *editor.UpdateNumberInput) (*editor.UpdateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRange("spell_level", input.Value, spellcard.MinSpellLevel, spellcard.MaxSpellLevel, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}
	return o.mutate(ctx, input.DraftID, func(card *spellcard.SpellCard) error {
		card.Level = input.Value
		return nil
	})
}

// UpdateTraits replaces the traits from a comma or space separated list
func (o *Orchestrator) UpdateTraits(ctx context.Context, input *editor.UpdateTextInput) (*editor.UpdateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	return o.mutate(ctx, input.DraftID, func(card *spellcard.SpellCard) error {
		card.SetTraits(input.Text)
		return nil
	})
}

// UpdateRange sets the range in feet, zero removes it
func (o *Orchestrator) UpdateRange(ctx context.Context, input *editor.UpdateNumberInput) (*editor.UpdateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := nonNegative("range", input.Value); err != nil {
		return nil, err
	}
	return o.mutate(ctx, input.DraftID, func(card *spellcard.SpellCard) error {
		card.SetRange(input.Value)
		return nil
	})
}

// UpdateAreaShape switches the area to a shape's default size
func (o *Orchestrator) UpdateAreaShape(ctx context.Context, input *editor.UpdateAreaShapeInput) (*editor.UpdateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	shape, err := spellcard.ParseAreaShape(input.Shape)
	if err != nil {
		return nil, err
	}
	return o.mutate(ctx, input.DraftID, func(card *spellcard.SpellCard) error {
		card.SetAreaShape(shape)
		return nil
	})
}

// UpdateAreaSize resizes the area, zero removes it
func (o *Orchestrator) UpdateAreaSize(ctx context.Context, input *editor.UpdateAreaSizeInput) (*editor.UpdateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := nonNegative("area size", input.Size); err != nil {
		return nil, err
	}

	fallback := spellcard.AreaBurst
	if input.Shape != "" {
		shape, err := spellcard.ParseAreaShape(input.Shape)
		if err != nil {
			return nil, err
		}
		if shape != nil {
			fallback = *shape
		}
	}

	return o.mutate(ctx, input.DraftID, func(card *spellcard.SpellCard) error {
		card.SetAreaSize(fallback, input.Size)
		return nil
	})
}

// UpdateLineWidth sets the width of a line area, zero clears it
func (o *Orchestrator) UpdateLineWidth(ctx context.Context, input *editor.UpdateNumberInput) (*editor.UpdateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := nonNegative("line width", input.Value); err != nil {
		return nil, err
	}
	return o.mutate(ctx, input.DraftID, func(card *spellcard.SpellCard) error {
		return card.SetLineWidth(input.Value)
	})
}

// UpdateTargets sets the targets text, empty removes it
func (o *Orchestrator) UpdateTargets(ctx context.Context, input *editor.UpdateTextInput) (*editor.UpdateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	return o.mutate(ctx, input.DraftID, func(card *spellcard.SpellCard) error {
		card.SetTargets(input.Text)
		return nil
	})
}

// UpdateDuration sets the duration text, empty removes it
func (o *Orchestrator) UpdateDuration(ctx context.Context, input *editor.UpdateTextInput) (*editor.UpdateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	return o.mutate(ctx, input.DraftID, func(card *spellcard.SpellCard) error {
		card.SetDuration(input.Text)
		return nil
	})
}

// UpdateDefence sets the defence, "none" removes it
func (o *Orchestrator) UpdateDefence(ctx context.Context, input *editor.UpdateDefenceInput) (*editor.UpdateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	defence, err := spellcard.ParseDefence(input.Defence)
	if err != nil {
		return nil, err
	}
	return o.mutate(ctx, input.DraftID, func(card *spellcard.SpellCard) error {
		card.SetDefence(defence)
		return nil
	})
}

// UpdateRollOutcome sets the text of one degree of success, empty removes it
func (o *Orchestrator) UpdateRollOutcome(ctx context.Context, input *editor.UpdateRollOutcomeInput) (*editor.UpdateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	degree, err := spellcard.ParseDegree(input.Degree)
	if err != nil {
		return nil, err
	}
	return o.mutate(ctx, input.DraftID, func(card *spellcard.SpellCard) error {
		card.SetRollResult(degree, input.Text)
		return nil
	})
}

// UpdateHeightened edits or appends a heightened entry
func (o *Orchestrator) UpdateHeightened(ctx context.Context, input *editor.UpdateHeightenedInput) (*editor.UpdateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var kind *spellcard.HeightenedKind
	if input.Kind != nil {
		k, err := spellcard.ParseHeightenedKind(*input.Kind)
		if err != nil {
			return nil, err
		}
		kind = &k
	}
	if input.Level != nil && (*input.Level < spellcard.MinSpellLevel || *input.Level > spellcard.MaxSpellLevel) {
		return nil, errors.InvalidArgumentf("heightened level must be between %d and %d, got %d",
			spellcard.MinSpellLevel, spellcard.MaxSpellLevel, *input.Level)
	}

	return o.mutateDraft(ctx, input.DraftID, func(draft *spellcard.Draft) error {
		card := draft.Card
		trailing := input.Index == len(card.Heightened)

		entry := draft.NextHeightened()
		if input.Index >= 0 && input.Index < len(card.Heightened) {
			entry = card.Heightened[input.Index]
		}
		if kind != nil {
			entry.Kind = *kind
		}
		if input.Level != nil {
			entry.Level = *input.Level
		}
		if input.Text != nil {
			entry.Text = *input.Text
		}
		if err := card.SetHeightened(input.Index, entry); err != nil {
			return err
		}

		if !trailing {
			return nil
		}
		// The trailing row keeps its kind and level until text turns it into an entry
		draft.PendingHeightened = nil
		if entry.Text == "" && entry != (spellcard.Heightened{Kind: spellcard.HeightenedRepeat, Level: 1}) {
			pending := entry
			draft.PendingHeightened = &pending
		}
		return nil
	})
}

// RemoveHeightened deletes a heightened entry
func (o *Orchestrator) RemoveHeightened(ctx context.Context, input *editor.RemoveHeightenedInput) (*editor.UpdateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	return o.mutate(ctx, input.DraftID, func(card *spellcard.SpellCard) error {
		return card.RemoveHeightened(input.Index)
	})
}
