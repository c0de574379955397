package strategy

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/behrlich/deck-sim/pkg/engine"
	"github.com/behrlich/deck-sim/pkg/mana"
	"github.com/behrlich/deck-sim/pkg/registry"
)

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	cost := func(s string) *mana.Cost {
		c, err := mana.ParseCost(s)
		require.NoError(t, err)
		return &c
	}
	pool := func(s string) mana.Pool {
		p, err := mana.ParsePool(s)
		require.NoError(t, err)
		return p
	}

	b := registry.NewBuilder()
	b.Register("Forest", registry.Land, nil)
	b.Annotate("Forest", registry.ProducesKey, registry.ManaValue(pool("{G}")))
	b.Register("Mountain", registry.Land, nil)
	b.Annotate("Mountain", registry.ProducesKey, registry.ManaValue(pool("{R}")))
	b.Register("Lightning Bolt", registry.Instant, cost("{R}"))
	b.Register("Grizzly Bears", registry.Creature, cost("{1}{G}"))
	b.Register("Hill Giant", registry.Creature, cost("{3}{R}"))
	return b.Build()
}

func newState(t *testing.T, reg *registry.Registry) *engine.State {
	t.Helper()
	return engine.New(reg, engine.Deck{}, rand.New(rand.NewSource(3)))
}

func TestMulliganBand(t *testing.T) {
	reg := testRegistry(t)
	forest := reg.MustLookup("Forest")
	bolt := reg.MustLookup("Lightning Bolt")
	g := NewGreedy()

	cases := []struct {
		lands, spells, mulligans int
		want                     bool
	}{
		{lands: 2, spells: 5, mulligans: 0, want: true},
		{lands: 3, spells: 4, mulligans: 0, want: false},
		{lands: 5, spells: 2, mulligans: 0, want: false},
		{lands: 6, spells: 1, mulligans: 0, want: true},
		{lands: 0, spells: 7, mulligans: 3, want: false}, // budget spent, forced keep
	}
	for _, tc := range cases {
		s := newState(t, reg)
		s.Hand.AddN(forest, tc.lands)
		s.Hand.AddN(bolt, tc.spells)
		s.MulligansTaken = tc.mulligans
		assert.Equal(t, tc.want, g.Mulligan(s),
			"lands=%d mulligans=%d", tc.lands, tc.mulligans)
	}
}

func TestCardPlaysPicksTheLandThatEnablesASpell(t *testing.T) {
	reg := testRegistry(t)
	g := NewGreedy()

	s := newState(t, reg)
	s.Hand.Add(reg.MustLookup("Forest"))
	s.Hand.Add(reg.MustLookup("Mountain"))
	s.Hand.Add(reg.MustLookup("Lightning Bolt"))

	plays := g.CardPlays(s)
	require.Len(t, plays, 2, "the mountain plan casts the bolt, the forest plan cannot")
	assert.Equal(t, reg.MustLookup("Mountain"), plays[0].Card)
	assert.Equal(t, reg.MustLookup("Lightning Bolt"), plays[1].Card)
	assert.Equal(t, 1, plays[1].Payment.ManaValue())
}

func TestCardPlaysWithoutALandDropStillCasts(t *testing.T) {
	reg := testRegistry(t)
	g := NewGreedy()

	s := newState(t, reg)
	s.Permanents.Add(reg.MustLookup("Mountain"))
	s.Hand.Add(reg.MustLookup("Lightning Bolt"))

	plays := g.CardPlays(s)
	require.Len(t, plays, 1)
	assert.Equal(t, reg.MustLookup("Lightning Bolt"), plays[0].Card)
}

func TestCardPlaysPrefersHigherUtilitySpells(t *testing.T) {
	reg := testRegistry(t)
	g := NewGreedy()

	// Four mountains on the battlefield pay for either spell, but not
	// both: the giant costs four and the bolt one.
	s := newState(t, reg)
	s.Permanents.AddN(reg.MustLookup("Mountain"), 4)
	s.Hand.Add(reg.MustLookup("Lightning Bolt"))
	s.Hand.Add(reg.MustLookup("Hill Giant"))

	plays := g.CardPlays(s)
	require.Len(t, plays, 1, "after the giant commits all four mountains the bolt is unpayable")
	assert.Equal(t, reg.MustLookup("Hill Giant"), plays[0].Card)
	assert.Equal(t, 4, plays[0].Payment.ManaValue())
}

func TestCardPlaysForcedTapsCommitEveryBasic(t *testing.T) {
	reg := testRegistry(t)
	g := NewGreedy()

	// Four basics could pay for both spells, but the solver's forced-tap
	// pass commits every single-mode source to the first payment, so the
	// bolt finds nothing left to tap.
	s := newState(t, reg)
	s.Permanents.AddN(reg.MustLookup("Mountain"), 2)
	s.Permanents.AddN(reg.MustLookup("Forest"), 2)
	s.Hand.Add(reg.MustLookup("Grizzly Bears"))
	s.Hand.Add(reg.MustLookup("Lightning Bolt"))

	plays := g.CardPlays(s)
	require.Len(t, plays, 1)
	assert.Equal(t, reg.MustLookup("Grizzly Bears"), plays[0].Card, "higher mana value goes first")
	assert.Equal(t, 4, plays[0].Payment.ManaValue())
}

func TestCardPlaysEmptyHand(t *testing.T) {
	reg := testRegistry(t)
	g := NewGreedy()
	s := newState(t, reg)
	assert.Empty(t, g.CardPlays(s))
}

func TestLandDropHook(t *testing.T) {
	reg := testRegistry(t)
	g := NewGreedy()

	s := newState(t, reg)
	_, ok := g.LandDrop(s)
	assert.False(t, ok)

	s.Hand.Add(reg.MustLookup("Forest"))
	drop, ok := g.LandDrop(s)
	require.True(t, ok)
	assert.Equal(t, reg.MustLookup("Forest"), drop.Card)
}

func TestDefaultStrategyDoesNothing(t *testing.T) {
	reg := testRegistry(t)
	s := newState(t, reg)
	s.Hand.AddN(reg.MustLookup("Forest"), 7)

	var d Default
	assert.False(t, d.Mulligan(s))
	assert.Empty(t, d.CardPlays(s))
	_, ok := d.LandDrop(s)
	assert.False(t, ok)
}
