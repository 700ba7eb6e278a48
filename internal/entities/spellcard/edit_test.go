package spellcard_test

import (
	"github.com/KirkDiggler/spell-cards/internal/entities/spellcard"
	"github.com/KirkDiggler/spell-cards/internal/errors"
)

func (s *SpellCardTestSuite) kinds(card *spellcard.SpellCard) []spellcard.OverviewKind {
	kinds := make([]spellcard.OverviewKind, 0, len(card.Overview))
	for _, o := range card.Overview {
		kinds = append(kinds, o.Kind)
	}
	return kinds
}

func (s *SpellCardTestSuite) TestOverviewStaysSortedAndUnique() {
	card := spellcard.New()

	card.SetDuration("1 minute")
	card.SetTargets("1 creature")
	card.SetRange(30)
	card.SetDefence(ptr(spellcard.DefenceWill))
	card.SetAreaShape(ptr(spellcard.AreaCone))
	card.SetRange(60)
	card.SetTargets("2 creatures")

	s.Equal([]spellcard.OverviewKind{
		spellcard.OverviewRange,
		spellcard.OverviewArea,
		spellcard.OverviewTargets,
		spellcard.OverviewDefence,
		spellcard.OverviewDuration,
	}, s.kinds(card))

	rng, ok := card.OverviewOf(spellcard.OverviewRange)
	s.True(ok)
	s.Equal(60, rng.Range)
	targets, _ := card.OverviewOf(spellcard.OverviewTargets)
	s.Equal("2 creatures", targets.Text)
}

func (s *SpellCardTestSuite) TestClearingOverviewFacts() {
	card := spellcard.New()
	card.SetRange(30)
	card.SetTargets("1 creature")
	card.SetDuration("sustained")
	card.SetDefence(ptr(spellcard.DefenceReflex))
	card.SetAreaShape(ptr(spellcard.AreaBurst))

	card.SetRange(0)
	card.SetTargets("")
	card.SetDuration("")
	card.SetDefence(nil)
	card.SetAreaShape(nil)

	s.Empty(card.Overview)
}

func (s *SpellCardTestSuite) TestAreaSize() {
	s.Run("new area uses the fallback shape", func() {
		card := spellcard.New()
		card.SetAreaSize(spellcard.AreaEmanation, 10)

		area, ok := card.OverviewOf(spellcard.OverviewArea)
		s.Require().True(ok)
		s.Equal(spellcard.Area{Shape: spellcard.AreaEmanation, Size: 10}, area.Area)
	})

	s.Run("existing line keeps its width", func() {
		card := spellcard.New()
		card.SetAreaShape(ptr(spellcard.AreaLine))
		s.Require().NoError(card.SetLineWidth(10))
		card.SetAreaSize(spellcard.AreaBurst, 120)

		area, _ := card.OverviewOf(spellcard.OverviewArea)
		s.Equal("120ft long and 10ft wide line", area.Value())
	})

	s.Run("zero removes the area", func() {
		card := spellcard.New()
		card.SetAreaShape(ptr(spellcard.AreaCone))
		card.SetAreaSize(spellcard.AreaCone, 0)

		_, ok := card.OverviewOf(spellcard.OverviewArea)
		s.False(ok)
	})
}

func (s *SpellCardTestSuite) TestLineWidth() {
	s.Run("requires a line", func() {
		card := spellcard.New()
		card.SetAreaShape(ptr(spellcard.AreaBurst))

		err := card.SetLineWidth(5)
		s.Error(err)
		s.True(errors.IsFailedPrecondition(err))
	})

	s.Run("zero clears the width", func() {
		card := spellcard.New()
		card.SetAreaShape(ptr(spellcard.AreaLine))
		s.Require().NoError(card.SetLineWidth(5))
		s.Require().NoError(card.SetLineWidth(0))

		area, _ := card.OverviewOf(spellcard.OverviewArea)
		s.Equal("60ft line", area.Value())
	})
}

func (s *SpellCardTestSuite) TestRollResults() {
	card := spellcard.New()
	card.SetRollResult(spellcard.DegreeCriticalFailure, "double damage")
	card.SetRollResult(spellcard.DegreeSuccess, "half damage")
	card.SetRollResult(spellcard.DegreeCriticalSuccess, "no damage")
	card.SetRollResult(spellcard.DegreeSuccess, "half damage, no effect")

	s.Require().Len(card.Rolls, 3)
	s.Equal(spellcard.DegreeCriticalSuccess, card.Rolls[0].Degree)
	s.Equal(spellcard.DegreeSuccess, card.Rolls[1].Degree)
	s.Equal(spellcard.DegreeCriticalFailure, card.Rolls[2].Degree)
	s.Equal("half damage, no effect", card.RollText(spellcard.DegreeSuccess))
	s.Equal("", card.RollText(spellcard.DegreeFailure))

	card.SetRollResult(spellcard.DegreeSuccess, "")
	s.Len(card.Rolls, 2)
}

func (s *SpellCardTestSuite) TestTraits() {
	card := spellcard.New()
	card.SetTraits("Fire, Evocation\n  AoE,,")
	s.Equal([]string{"Fire", "Evocation", "AoE"}, card.Traits)

	card.SetTraits("   ")
	s.Equal([]string{}, card.Traits)
}

func (s *SpellCardTestSuite) TestHeightened() {
	card := spellcard.New()
	repeat := spellcard.Heightened{Kind: spellcard.HeightenedRepeat, Level: 1, Text: "+1d6"}

	s.Run("append with empty text is ignored", func() {
		s.Require().NoError(card.SetHeightened(0, spellcard.Heightened{Kind: spellcard.HeightenedRepeat, Level: 1}))
		s.Empty(card.Heightened)
	})

	s.Run("append and edit", func() {
		s.Require().NoError(card.SetHeightened(0, repeat))
		s.Require().NoError(card.SetHeightened(1, spellcard.Heightened{Kind: spellcard.HeightenedSingle, Level: 5, Text: "persistent"}))
		s.Require().NoError(card.SetHeightened(0, spellcard.Heightened{Kind: spellcard.HeightenedRepeat, Level: 2, Text: "+2d6"}))

		s.Require().Len(card.Heightened, 2)
		s.Equal("Heightened (+2)", card.Heightened[0].Label())
		s.Equal("Heightened (5th)", card.Heightened[1].Label())
	})

	s.Run("empty text removes", func() {
		s.Require().NoError(card.SetHeightened(0, spellcard.Heightened{Kind: spellcard.HeightenedRepeat, Level: 2}))
		s.Require().Len(card.Heightened, 1)
		s.Equal(5, card.Heightened[0].Level)
	})

	s.Run("out of range", func() {
		err := card.SetHeightened(3, repeat)
		s.True(errors.IsOutOfRange(err))
		s.True(errors.IsOutOfRange(card.RemoveHeightened(1)))
	})

	s.Run("remove", func() {
		s.Require().NoError(card.RemoveHeightened(0))
		s.Empty(card.Heightened)
	})
}

func (s *SpellCardTestSuite) TestCloneIsDeep() {
	width := 10
	card := spellcard.New()
	card.Name = "Original"
	card.SetTraits("Fire")
	card.SetOverview(spellcard.AreaOverview(spellcard.Area{Shape: spellcard.AreaLine, Size: 30, Width: &width}))

	clone := card.Clone()
	clone.Traits[0] = "Cold"
	s.Require().NoError(clone.SetLineWidth(20))

	s.Equal("Fire", card.Traits[0])
	area, _ := card.OverviewOf(spellcard.OverviewArea)
	s.Equal(10, *area.Area.Width)
}

func (s *SpellCardTestSuite) TestValidate() {
	testCases := []struct {
		name    string
		mutate  func(*spellcard.SpellCard)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(c *spellcard.SpellCard) { c.Name = "Fireball" },
		},
		{
			name:    "missing name",
			mutate:  func(c *spellcard.SpellCard) {},
			wantErr: "spell_name: is required",
		},
		{
			name: "level too high",
			mutate: func(c *spellcard.SpellCard) {
				c.Name = "Wish"
				c.Level = 11
			},
			wantErr: "spell_level: must be between 1 and 10",
		},
		{
			name: "range out of bounds",
			mutate: func(c *spellcard.SpellCard) {
				c.Name = "Heal"
				c.CastTime = spellcard.ActionRange(1, 4)
			},
			wantErr: "cast_time_max: must be between 1 and 3",
		},
		{
			name: "blank longer cast time",
			mutate: func(c *spellcard.SpellCard) {
				c.Name = "Ritual"
				c.CastTime = spellcard.Longer(" ")
			},
			wantErr: "cast_time: is required",
		},
		{
			name: "heightened level above the spell levels",
			mutate: func(c *spellcard.SpellCard) {
				c.Name = "Fireball"
				c.Heightened = []spellcard.Heightened{{Kind: spellcard.HeightenedSingle, Level: 11, Text: "more"}}
			},
			wantErr: "heightened: level must be between 1 and 10, got 11",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			card := spellcard.New()
			tc.mutate(card)

			err := card.Validate()
			if tc.wantErr == "" {
				s.NoError(err)
				return
			}
			s.Error(err)
			s.True(errors.IsInvalidArgument(err))
			s.Contains(err.Error(), tc.wantErr)
		})
	}
}

func (s *SpellCardTestSuite) TestOptions() {
	for _, opt := range spellcard.CastTimeOptions {
		ct, err := spellcard.ParseCastTime(opt.Value)
		s.Require().NoError(err)
		s.Equal(opt.Value, ct.Option())
	}
	ct, _ := spellcard.ParseCastTime("range")
	s.Equal(spellcard.ActionRange(1, 3), ct)
	ct, _ = spellcard.ParseCastTime("longer")
	s.Equal(spellcard.Longer("10 min"), ct)

	for _, opt := range spellcard.SpellTypeOptions {
		t, err := spellcard.ParseSpellType(opt.Value)
		s.Require().NoError(err)
		s.Equal(opt.Value, t.Option())
	}

	shape, err := spellcard.ParseAreaShape("none")
	s.NoError(err)
	s.Nil(shape)
	shape, err = spellcard.ParseAreaShape("eman")
	s.NoError(err)
	s.Equal(spellcard.AreaEmanation, *shape)
	s.Equal("eman", shape.Option())

	defence, err := spellcard.ParseDefence("fort")
	s.NoError(err)
	s.Equal(spellcard.DefenceFortitude, *defence)
	s.Equal("fort", defence.Option())

	degree, err := spellcard.ParseDegree("critical_failure")
	s.NoError(err)
	s.Equal(spellcard.DegreeCriticalFailure, degree)

	for _, bad := range []func() error{
		func() error { _, err := spellcard.ParseCastTime("slow"); return err },
		func() error { _, err := spellcard.ParseSpellType("prayer"); return err },
		func() error { _, err := spellcard.ParseAreaShape("square"); return err },
		func() error { _, err := spellcard.ParseDefence("luck"); return err },
		func() error { _, err := spellcard.ParseDegree("meh"); return err },
		func() error { _, err := spellcard.ParseHeightenedKind("always"); return err },
	} {
		s.True(errors.IsInvalidArgument(bad()))
	}
}

func (s *SpellCardTestSuite) TestFingerprint() {
	card := spellcard.New()
	card.Name = "Fireball"
	card.SetRange(500)
	card.SetRollResult(spellcard.DegreeSuccess, "half damage")

	s.Len(card.Fingerprint(), 64)
	s.Equal(card.Fingerprint(), card.Clone().Fingerprint())

	// nil lists fingerprint the same as the empty lists they are stored as
	bare := card.Clone()
	bare.Traits = nil
	bare.Heightened = nil
	s.Equal(card.Fingerprint(), bare.Fingerprint())

	renamed := card.Clone()
	renamed.Name = "Greater Fireball"
	s.NotEqual(card.Fingerprint(), renamed.Fingerprint())

	s.Empty((*spellcard.SpellCard)(nil).Fingerprint())
}
