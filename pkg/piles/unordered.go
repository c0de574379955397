// Package piles implements the two container shapes game zones are built
// from: an unordered pile (hand, battlefield, graveyard, command zone)
// and an ordered pile (library). Both hold card handles, never card data,
// so piles stay cheap to clone for strategy lookahead and per-worker
// deck copies.
package piles

import (
	"math/rand"

	"github.com/behrlich/deck-sim/pkg/registry"
)

// Unordered is a multiset of cards. Positions carry no meaning; they are
// kept only so Remove can swap with the last element instead of shifting.
type Unordered struct {
	cards []registry.Handle
}

// NewUnordered builds a pile from the given handles.
func NewUnordered(cards ...registry.Handle) Unordered {
	return Unordered{cards: append([]registry.Handle{}, cards...)}
}

// Add puts one copy of card into the pile.
func (p *Unordered) Add(card registry.Handle) {
	p.cards = append(p.cards, card)
}

// AddN puts n copies of card into the pile.
func (p *Unordered) AddN(card registry.Handle, n int) {
	for i := 0; i < n; i++ {
		p.Add(card)
	}
}

// Remove takes one copy of card out of the pile, reporting whether a copy
// was present. The removed slot is filled by the last element, so the
// pile's iteration order changes; callers must not rely on it.
func (p *Unordered) Remove(card registry.Handle) bool {
	for i, c := range p.cards {
		if c == card {
			last := len(p.cards) - 1
			p.cards[i] = p.cards[last]
			p.cards = p.cards[:last]
			return true
		}
	}
	return false
}

// Size returns the number of cards (counting copies) in the pile.
func (p *Unordered) Size() int { return len(p.cards) }

// Cards returns the pile's contents. The slice is shared with the pile;
// callers iterate it, they don't keep it.
func (p *Unordered) Cards() []registry.Handle { return p.cards }

// Count returns how many copies of card the pile holds.
func (p *Unordered) Count(card registry.Handle) int {
	n := 0
	for _, c := range p.cards {
		if c == card {
			n++
		}
	}
	return n
}

// Clear empties the pile.
func (p *Unordered) Clear() { p.cards = p.cards[:0] }

// Clone returns an independent copy of the pile.
func (p Unordered) Clone() Unordered {
	return Unordered{cards: append([]registry.Handle{}, p.cards...)}
}

// ShuffleIntoOrdered consumes the pile and deals it into a uniformly
// shuffled ordered pile. The top of the result is the last shuffled
// position.
func (p *Unordered) ShuffleIntoOrdered(rng *rand.Rand) Ordered {
	o := Ordered{cards: p.cards}
	p.cards = nil
	o.Shuffle(rng)
	return o
}
