package metrics

import (
	"github.com/behrlich/deck-sim/pkg/engine"
)

// Watcher converts simulation events into metrics updates. The trial
// driver calls it at the four fixed points of a trial; within a trial
// the events arrive in order (opening hand, then per turn any number of
// card plays followed by turn end, then game end).
//
// Each worker gets its own clone, so implementations may keep per-trial
// scratch state without synchronization.
type Watcher interface {
	OpeningHand(state *engine.State, m *Data)
	CardPlay(play engine.CardPlay, state *engine.State, m *Data)
	TurnEnd(state *engine.State, m *Data)
	GameEnd(state *engine.State, m *Data)
	Clone() Watcher
}

// NopWatcher observes nothing. Embed it to implement only the events a
// watcher cares about.
type NopWatcher struct{}

func (NopWatcher) OpeningHand(*engine.State, *Data)               {}
func (NopWatcher) CardPlay(engine.CardPlay, *engine.State, *Data) {}
func (NopWatcher) TurnEnd(*engine.State, *Data)                   {}
func (NopWatcher) GameEnd(*engine.State, *Data)                   {}
func (NopWatcher) Clone() Watcher                                 { return NopWatcher{} }

// Metric names recorded by the reference watcher.
const (
	KeyOpeningHandLands  = "opening_hand::lands"
	KeyCardPlays         = "card_plays"
	KeyTurnFirstPlayed   = "turn_first_played"
	KeyTurnToReach7Plays = "turn_to_reach_7_plays"
	KeyAvailableMana     = "available_mana"
	KeyTotalTurns        = "total_turns"
	KeyMulligansTaken    = "mulligans_taken"
)

// playCountTarget is the cumulative play count whose arrival turn the
// reference watcher records once per trial.
const playCountTarget = 7

// ReferenceWatcher records the report statistics the simulator ships
// with: opening-hand lands, per-card first-played turns, play counts and
// the turn the seventh play lands, per-turn available mana, total turns,
// and mulligans taken.
type ReferenceWatcher struct{}

func (ReferenceWatcher) Clone() Watcher { return ReferenceWatcher{} }

func (ReferenceWatcher) OpeningHand(state *engine.State, m *Data) {
	m.AddCount(NewKey(KeyOpeningHandLands), state.LandsInHand())
}

func (ReferenceWatcher) CardPlay(play engine.CardPlay, state *engine.State, m *Data) {
	m.Add(NewKey(KeyCardPlays))
	m.Set(NewKey(KeyTurnFirstPlayed).WithCard(play.Card), state.Turn)
	if m.Total(NewKey(KeyCardPlays)) == playCountTarget {
		m.Set(NewKey(KeyTurnToReach7Plays), state.Turn)
	}
}

func (ReferenceWatcher) TurnEnd(state *engine.State, m *Data) {
	available := 0
	for _, src := range state.ManaSources() {
		available += src.HighestManaValue()
	}
	m.AddCount(NewKey(KeyAvailableMana).WithTurn(state.Turn), available)
}

func (ReferenceWatcher) GameEnd(state *engine.State, m *Data) {
	m.AddCount(NewKey(KeyTotalTurns), state.Turn-1)
	m.AddCount(NewKey(KeyMulligansTaken), state.MulligansTaken)
}
