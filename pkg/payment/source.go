// Package payment implements the autotap solver: choosing which mana
// sources to tap, and in which mode, so the produced mana admits a
// payment for a structured cost. The underlying payment enumeration over
// a fixed pool lives in pkg/mana; this package adds the search over tap
// assignments.
package payment

import (
	"github.com/behrlich/deck-sim/pkg/mana"
	"github.com/behrlich/deck-sim/pkg/registry"
)

// Source is a battlefield permanent viewed as a producer of mana. Each
// entry of Produces is one tap-mode: tapping the source yields exactly
// one of its modes.
type Source struct {
	Card     registry.Handle
	Produces []mana.Pool
}

// HighestManaValue returns the largest mana value among the source's
// tap-modes.
func (s Source) HighestManaValue() int {
	best := 0
	for _, p := range s.Produces {
		if mv := p.ManaValue(); mv > best {
			best = mv
		}
	}
	return best
}

// FromRecord views a card record as a mana source via its core:Produces
// annotation. Returns false if the card produces no mana, and also when
// its core:Produces annotation holds a value that is not a mana pool.
func FromRecord(rec registry.Record) (Source, bool) {
	pools, err := rec.Annotations.ManaProduces()
	if err != nil || len(pools) == 0 {
		return Source{}, false
	}
	return Source{Card: rec.Handle, Produces: pools}, true
}
