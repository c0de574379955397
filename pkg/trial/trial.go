// Package trial implements the trial driver: one simulated game from
// opening hand to a turn bound or a game loss, and the parallel runner
// that fans trials out across workers and reduces their metrics.
package trial

import (
	"math/rand"

	"github.com/rs/zerolog/log"

	"github.com/behrlich/deck-sim/pkg/engine"
	"github.com/behrlich/deck-sim/pkg/metrics"
	"github.com/behrlich/deck-sim/pkg/registry"
	"github.com/behrlich/deck-sim/pkg/strategy"
)

// maxMulligans is the hard stop on redraws: past six, the hand is kept
// no matter what the strategy wants.
const maxMulligans = 6

// Props bound one run: how deep each trial simulates and how many trials
// the runner fans out.
type Props struct {
	MaxTurn   int
	NumTrials int
}

// DefaultProps are the stock run bounds.
func DefaultProps() Props {
	return Props{MaxTurn: 12, NumTrials: 1000}
}

// Trial is the work for a single simulated game. It owns its state, RNG,
// and metrics exclusively; nothing is shared with other trials except
// the immutable registry.
type Trial struct {
	rng     *rand.Rand
	state   *engine.State
	metrics *metrics.Data
	props   Props
	reg     *registry.Registry
}

// New prepares a trial: state constructed, library shuffled, nothing
// drawn yet.
func New(reg *registry.Registry, deck engine.Deck, rng *rand.Rand, props Props) *Trial {
	return &Trial{
		rng:     rng,
		state:   engine.New(reg, deck, rng),
		metrics: metrics.Empty(),
		props:   props,
		reg:     reg,
	}
}

// State exposes the trial's game state, mostly for tests and debugging.
func (t *Trial) State() *engine.State { return t.state }

// Run plays the trial out: mulligans, then turns until the bound or a
// game loss, consulting the strategy for plays and reporting every event
// to the watcher. Returns the trial's metrics with one trial seen.
func (t *Trial) Run(strat strategy.Strategy, watcher metrics.Watcher) *metrics.Data {
	t.state.DrawHand()
	for strat.Mulligan(t.state) {
		t.state.ShuffleHandIntoLibrary(t.rng)
		t.state.MulligansTaken++
		t.state.DrawHand()
		if t.state.MulligansTaken >= maxMulligans {
			log.Warn().Msg("strategy used up all mulligans")
			break
		}
	}

	watcher.OpeningHand(t.state, t.metrics)

	t.state.Turn = 1
	for t.state.Turn <= t.props.MaxTurn && !t.state.GameLoss {
		if t.state.Turn > 1 || t.state.DrawOnFirstTurn {
			t.state.DrawToHand()
		}

		log.Debug().Int("turn", t.state.Turn).
			Int("hand", t.state.Hand.Size()).
			Int("permanents", t.state.Permanents.Size()).
			Int("graveyard", t.state.Graveyard.Size()).
			Int("library", t.state.Library.Size()).
			Msg("turn begins")

		for _, play := range strat.CardPlays(t.state) {
			watcher.CardPlay(play, t.state, t.metrics)
			rec := t.reg.Record(play.Card)
			for _, tag := range rec.Annotations.GameEffects() {
				t.applyCardEffect(tag)
			}
			t.state.PlayCard(play)
		}

		watcher.TurnEnd(t.state, t.metrics)
		t.state.EndTurn()
	}

	watcher.GameEnd(t.state, t.metrics)
	t.metrics.TrialsSeen = 1
	return t.metrics
}

// applyCardEffect dispatches a core:GameEffect tag. "fetches" is the
// only recognized tag and is not implemented yet; unknown tags are
// no-ops. Both outcomes log at debug so an annotation typo is visible
// without failing a run.
func (t *Trial) applyCardEffect(tag string) {
	switch tag {
	case "fetches":
		log.Debug().Msg("fetches effect recognized but not implemented")
	default:
		log.Debug().Str("tag", tag).Msg("unknown game effect tag, ignoring")
	}
}
