// Package strategy implements the policy surface of the simulator: the
// Strategy interface the trial driver consults each turn, a do-nothing
// default, and the shipped greedy policy with one-step land-drop
// lookahead.
package strategy

import (
	"github.com/behrlich/deck-sim/pkg/engine"
)

// Strategy makes the three decisions a trial needs from a policy: keep
// or mulligan the opening hand, which land to drop, and the ordered set
// of plays for the turn. CardPlays may include the land drop itself, as
// the greedy policy's does; LandDrop exists for simpler policies that
// decide it separately.
type Strategy interface {
	Mulligan(state *engine.State) bool
	LandDrop(state *engine.State) (engine.CardPlay, bool)
	CardPlays(state *engine.State) []engine.CardPlay

	// Clone returns an independent copy for a trial worker.
	Clone() Strategy
}

// Default keeps every hand and never plays a card.
type Default struct{}

func (Default) Mulligan(*engine.State) bool { return false }

func (Default) LandDrop(*engine.State) (engine.CardPlay, bool) {
	return engine.CardPlay{}, false
}

func (Default) CardPlays(*engine.State) []engine.CardPlay { return nil }

func (Default) Clone() Strategy { return Default{} }
