package trial

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/behrlich/deck-sim/pkg/engine"
	"github.com/behrlich/deck-sim/pkg/mana"
	"github.com/behrlich/deck-sim/pkg/metrics"
	"github.com/behrlich/deck-sim/pkg/registry"
	"github.com/behrlich/deck-sim/pkg/strategy"
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
	b.Register("Grizzly Bears", registry.Creature, cost("{1}{G}"))
	b.Register("Misty Rainforest", registry.Land, nil)
	b.Annotate("Misty Rainforest", registry.GameEffectKey, registry.StringValue("fetches"))
	b.Annotate("Misty Rainforest", registry.ProducesKey, registry.ManaValue(pool("{G}")))
	b.Register("Oddity", registry.Enchantment, cost("{G}"))
	b.Annotate("Oddity", registry.GameEffectKey, registry.StringValue("no-such-effect"))
	return b.Build()
}

func testDeck(t *testing.T, reg *registry.Registry, forests, bears int) engine.Deck {
	t.Helper()
	var deck engine.Deck
	deck.Main.AddN(reg.MustLookup("Forest"), forests)
	deck.Main.AddN(reg.MustLookup("Grizzly Bears"), bears)
	return deck
}

// conservationWatcher checks the zone-union invariant at every event.
type conservationWatcher struct {
	metrics.NopWatcher
	t        *testing.T
	expected int
}

func (w *conservationWatcher) check(state *engine.State) {
	if got := state.TotalCards(); got != w.expected {
		w.t.Errorf("conservation violated: have %d cards across zones, want %d", got, w.expected)
	}
}

func (w *conservationWatcher) OpeningHand(state *engine.State, _ *metrics.Data) { w.check(state) }
func (w *conservationWatcher) CardPlay(_ engine.CardPlay, state *engine.State, _ *metrics.Data) {
	w.check(state)
}
func (w *conservationWatcher) TurnEnd(state *engine.State, _ *metrics.Data) { w.check(state) }
func (w *conservationWatcher) GameEnd(state *engine.State, _ *metrics.Data) { w.check(state) }
func (w *conservationWatcher) Clone() metrics.Watcher                       { return w }

func TestTrialConservesCards(t *testing.T) {
	reg := testRegistry(t)
	deck := testDeck(t, reg, 24, 16)

	tr := New(reg, deck, rand.New(rand.NewSource(7)), Props{MaxTurn: 12, NumTrials: 1})
	watcher := &conservationWatcher{t: t, expected: deck.Size()}
	m := tr.Run(strategy.NewGreedy(), watcher)
	assert.Equal(t, 1, m.TrialsSeen)
	assert.Equal(t, deck.Size(), tr.State().TotalCards())
}

func TestTrialGameLossOnSmallDeck(t *testing.T) {
	reg := testRegistry(t)
	deck := testDeck(t, reg, 3, 0)

	tr := New(reg, deck, rand.New(rand.NewSource(1)), Props{MaxTurn: 10, NumTrials: 1})
	tr.State().DrawOnFirstTurn = true
	tr.Run(strategy.Default{}, metrics.NopWatcher{})

	assert.True(t, tr.State().GameLoss)
	// Three cards are gone by the opening hand; the first draw step
	// already empties the library.
	assert.LessOrEqual(t, tr.State().Turn, 4, "loss must land by deck size + 1 turns")
}

func TestTrialMulliganLoopIsBounded(t *testing.T) {
	reg := testRegistry(t)
	deck := testDeck(t, reg, 0, 40) // no lands: the greedy policy always wants a mulligan

	tr := New(reg, deck, rand.New(rand.NewSource(2)), Props{MaxTurn: 1, NumTrials: 1})
	m := tr.Run(strategy.NewGreedy(), metrics.ReferenceWatcher{})
	assert.Equal(t, 3, tr.State().MulligansTaken,
		"the greedy policy stops digging after its voluntary budget")
	assert.Equal(t, 3, m.Total(metrics.NewKey(metrics.KeyMulligansTaken)))
}

func TestTrialRecordsReferenceMetrics(t *testing.T) {
	reg := testRegistry(t)
	deck := testDeck(t, reg, 24, 16)

	tr := New(reg, deck, rand.New(rand.NewSource(9)), Props{MaxTurn: 12, NumTrials: 1})
	m := tr.Run(strategy.NewGreedy(), metrics.ReferenceWatcher{})

	assert.Equal(t, 12, m.Total(metrics.NewKey(metrics.KeyTotalTurns)))
	_, ok := m.Get(metrics.NewKey(metrics.KeyOpeningHandLands))
	assert.True(t, ok)
}

func TestTrialAppliesEffectTagsWithoutFailing(t *testing.T) {
	reg := testRegistry(t)
	var deck engine.Deck
	deck.Main.AddN(reg.MustLookup("Misty Rainforest"), 20)
	deck.Main.AddN(reg.MustLookup("Oddity"), 20)

	tr := New(reg, deck, rand.New(rand.NewSource(3)), Props{MaxTurn: 5, NumTrials: 1})
	m := tr.Run(strategy.NewGreedy(), metrics.ReferenceWatcher{})
	// Both the recognized-but-unimplemented tag and the unknown tag are
	// no-ops; the trial completes and cards still moved zones.
	assert.Equal(t, 1, m.TrialsSeen)
	assert.Positive(t, m.Total(metrics.NewKey(metrics.KeyCardPlays)))
}

func TestRunTrialsReducesAcrossWorkers(t *testing.T) {
	reg := testRegistry(t)
	deck := testDeck(t, reg, 24, 16)

	m, err := RunTrials(context.Background(), reg, deck, strategy.NewGreedy(),
		metrics.ReferenceWatcher{}, Props{MaxTurn: 8, NumTrials: 40}, 123)
	require.NoError(t, err)
	assert.Equal(t, 40, m.TrialsSeen)

	turns, ok := m.Get(metrics.NewKey(metrics.KeyTotalTurns))
	require.True(t, ok)
	assert.Equal(t, 40, turns.TrialsSeen)
}

func TestRunTrialsIsDeterministicPerSeed(t *testing.T) {
	reg := testRegistry(t)
	deck := testDeck(t, reg, 24, 16)
	props := Props{MaxTurn: 8, NumTrials: 30}

	run := func() *metrics.Data {
		m, err := RunTrials(context.Background(), reg, deck, strategy.NewGreedy(),
			metrics.ReferenceWatcher{}, props, 99)
		require.NoError(t, err)
		return m
	}
	a, b := run(), run()

	require.Equal(t, len(a.Keys()), len(b.Keys()))
	for _, key := range a.Keys() {
		ma, _ := a.Get(key)
		mb, ok := b.Get(key)
		require.True(t, ok, "key %s missing from second run", key)
		assert.Equal(t, ma, mb, "key %s", key)
	}
}

func TestRunTrialsHonorsCancellation(t *testing.T) {
	reg := testRegistry(t)
	deck := testDeck(t, reg, 24, 16)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := RunTrials(ctx, reg, deck, strategy.NewGreedy(),
		metrics.ReferenceWatcher{}, Props{MaxTurn: 8, NumTrials: 1000}, 1)
	assert.Error(t, err)
}
