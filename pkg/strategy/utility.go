package strategy

import (
	"github.com/behrlich/deck-sim/pkg/registry"
)

// Utility scores how much a policy wants to make a play. Only relative
// order matters.
type Utility = int

// UtilityFunc scores a single card.
type UtilityFunc func(reg *registry.Registry, card registry.Handle) Utility

// DefaultUtility gives a land a fixed score of one and any other card
// its mana value, so the greedy policy curves out: play a land, then the
// biggest spells it can pay for. Cost-less non-lands score zero.
func DefaultUtility(reg *registry.Registry, card registry.Handle) Utility {
	rec := reg.Record(card)
	if rec.Type == registry.Land {
		return 1
	}
	if rec.Cost != nil {
		return rec.Cost.ManaValue()
	}
	return 0
}
