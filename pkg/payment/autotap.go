package payment

import (
	"github.com/rs/zerolog/log"

	"github.com/behrlich/deck-sim/pkg/mana"
)

// Commitment is one committed tap: a source and the mode it produced.
type Commitment struct {
	Source   Source
	Produced mana.Pool
}

// Solution describes a successful autotap: which cards to tap, the mode
// each was tapped for, and the total mana those taps produce. Existence
// is the contract; the solver does not promise a minimal set of taps.
type Solution struct {
	CardsToTap []Commitment
	ManaUsed   mana.Pool
}

// Autotap searches for a set of taps over sources whose combined
// production admits a payment for cost. On success it returns the
// solution and the sources left untapped; ok is false when no assignment
// of tap-modes can cover the cost.
//
// Sources with a single tap-mode are committed up front, before the
// search over multi-mode sources begins. This overcommits: a committed
// single-mode source is tapped even when the cost never needed it, and
// the surplus can make an otherwise-payable cost unpayable. The behavior
// is intentional and observable; callers rely on it staying put.
func Autotap(sources []Source, cost mana.Cost) (Solution, []Source, bool) {
	var acc mana.Pool
	var taps []Commitment
	var branching []Source

	for _, src := range sources {
		if len(src.Produces) == 1 {
			acc = acc.Add(src.Produces[0])
			taps = append(taps, Commitment{Source: src, Produced: src.Produces[0]})
			continue
		}
		branching = append(branching, src)
	}

	solved, taps, untapped := autotap(acc, cost, taps, branching)
	if !solved {
		log.Debug().Stringer("cost", cost).Int("sources", len(sources)).
			Msg("autotap found no way to pay")
		return Solution{}, nil, false
	}

	var used mana.Pool
	for _, tap := range taps {
		used = used.Add(tap.Produced)
	}
	return Solution{CardsToTap: taps, ManaUsed: used}, untapped, true
}

// autotap recursively assigns a tap-mode to each remaining source until
// the accumulated pool admits a payment for cost. Returns the committed
// taps and the sources never tapped.
func autotap(acc mana.Pool, cost mana.Cost, taps []Commitment, remaining []Source) (bool, []Commitment, []Source) {
	if mana.CanPay(acc, cost) {
		return true, taps, remaining
	}
	if len(remaining) == 0 {
		return false, nil, nil
	}

	next, rest := remaining[0], remaining[1:]
	for _, mode := range next.Produces {
		committed := make([]Commitment, 0, len(taps)+1)
		committed = append(append(committed, taps...), Commitment{Source: next, Produced: mode})
		if solved, solvedTaps, untapped := autotap(acc.Add(mode), cost, committed, rest); solved {
			return true, solvedTaps, untapped
		}
	}
	return false, nil, nil
}
