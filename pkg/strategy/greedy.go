package strategy

import (
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/behrlich/deck-sim/pkg/engine"
	"github.com/behrlich/deck-sim/pkg/payment"
)

// Mulligan tuning for the greedy policy: keep a hand when its land count
// falls inside [minKeepableLands, maxKeepableLands], and never dig past
// maxVoluntaryMulligans.
const (
	minKeepableLands      = 3
	maxKeepableLands      = 5
	maxVoluntaryMulligans = 3
)

// Greedy is the shipped policy: mulligan hands with too few or too many
// lands, then each turn pick the land drop whose one-step lookahead
// yields the highest total utility, filling the rest of the turn with
// the naive-greedy spell selection.
type Greedy struct {
	Utility UtilityFunc
}

// NewGreedy returns the greedy policy with the default utility function.
func NewGreedy() Greedy {
	return Greedy{Utility: DefaultUtility}
}

// Clone returns an independent copy. The policy itself is stateless, so
// the copy shares the utility function.
func (g Greedy) Clone() Strategy { return g }

// Mulligan sends back hands whose land count falls outside the keepable
// band, until the voluntary mulligan budget is spent.
func (g Greedy) Mulligan(state *engine.State) bool {
	if state.MulligansTaken >= maxVoluntaryMulligans {
		log.Debug().Int("mulligans", state.MulligansTaken).
			Msg("refusing to take another mulligan")
		return false
	}
	lands := state.LandsInHand()
	keepable := lands >= minKeepableLands && lands <= maxKeepableLands
	log.Debug().Int("hand", state.Hand.Size()).Int("lands", lands).
		Int("mulligans", state.MulligansTaken).Bool("keepable", keepable).
		Msg("judging opening hand")
	return !keepable
}

// LandDrop returns the first legal land drop. The full policy in
// CardPlays picks the best one by lookahead; this hook serves simpler
// callers.
func (g Greedy) LandDrop(state *engine.State) (engine.CardPlay, bool) {
	drops := state.LegalLandDrops()
	if len(drops) == 0 {
		return engine.CardPlay{}, false
	}
	return drops[0], true
}

// CardPlays selects this turn's plays: for each legal land drop,
// forecast the turn with that land already in play, score land plus
// spells by total utility, and keep the best plan. Ties keep the first
// plan enumerated. With no land to drop, the spell selection runs on
// the state as it is.
func (g Greedy) CardPlays(state *engine.State) []engine.CardPlay {
	drops := state.LegalLandDrops()
	if len(drops) == 0 {
		return g.playACard(state)
	}

	var best []engine.CardPlay
	bestUtility := Utility(0)
	for _, drop := range drops {
		log.Debug().Str("card", state.Registry().Name(drop.Card)).
			Msg("forecasting land drop")
		next := state.WithCardPlayed(drop)

		plan := make([]engine.CardPlay, 0, 4)
		plan = append(plan, drop)
		plan = append(plan, g.playACard(next)...)

		utility := Utility(0)
		for _, play := range plan {
			utility += g.Utility(state.Registry(), play.Card)
		}
		if best == nil || utility > bestUtility {
			best = plan
			bestUtility = utility
		}
	}
	return best
}

// playACard runs the naive-greedy selection: repeatedly take the
// highest-utility candidate that the autotap solver can pay for with the
// sources not yet committed this turn. A candidate that can't be paid is
// discarded, not retried.
func (g Greedy) playACard(state *engine.State) []engine.CardPlay {
	reg := state.Registry()
	sources := state.ManaSources()
	candidates := state.LegalCardPlays()
	log.Debug().Int("sources", len(sources)).Int("candidates", len(candidates)).
		Msg("begin naive greedy selection")

	var plays []engine.CardPlay
	for len(candidates) > 0 {
		sort.SliceStable(candidates, func(i, j int) bool {
			return g.Utility(reg, candidates[i].Card) < g.Utility(reg, candidates[j].Card)
		})
		candidate := candidates[len(candidates)-1]
		candidates = candidates[:len(candidates)-1]

		cost := reg.Record(candidate.Card).Cost
		if cost == nil {
			log.Debug().Str("card", reg.Name(candidate.Card)).
				Msg("candidate has no cost, cannot play")
			continue
		}

		sol, unused, ok := payment.Autotap(sources, *cost)
		if !ok {
			log.Debug().Str("card", reg.Name(candidate.Card)).Stringer("cost", cost).
				Msg("no way to pay, skipping")
			continue
		}
		sources = unused

		log.Debug().Str("card", reg.Name(candidate.Card)).
			Stringer("payment", sol.ManaUsed).Msg("playing card")
		candidate.Payment = sol.ManaUsed
		plays = append(plays, candidate)
	}
	log.Debug().Int("plays", len(plays)).Msg("end naive greedy selection")
	return plays
}
