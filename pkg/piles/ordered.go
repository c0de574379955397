package piles

import (
	"math/rand"

	"github.com/behrlich/deck-sim/pkg/registry"
)

// Ordered is a stack of cards. The last element is the top, so Draw is a
// pop and AddToTop is an append.
type Ordered struct {
	cards []registry.Handle
}

// NewOrdered builds a pile whose top is the last handle given.
func NewOrdered(cards ...registry.Handle) Ordered {
	return Ordered{cards: append([]registry.Handle{}, cards...)}
}

// Size returns the number of cards in the pile.
func (p *Ordered) Size() int { return len(p.cards) }

// Draw removes and returns the top card, reporting false on an empty pile.
func (p *Ordered) Draw() (registry.Handle, bool) {
	if len(p.cards) == 0 {
		return 0, false
	}
	top := p.cards[len(p.cards)-1]
	p.cards = p.cards[:len(p.cards)-1]
	return top, true
}

// DrawN removes up to n cards from the top, stopping early if the pile
// empties. The first card returned is the one that was on top.
func (p *Ordered) DrawN(n int) []registry.Handle {
	drawn := make([]registry.Handle, 0, n)
	for i := 0; i < n; i++ {
		card, ok := p.Draw()
		if !ok {
			break
		}
		drawn = append(drawn, card)
	}
	return drawn
}

// AddToTop pushes every card of other onto the top of this pile.
func (p *Ordered) AddToTop(other *Unordered) {
	p.cards = append(p.cards, other.Cards()...)
}

// Cards returns the pile's contents, bottom first. The slice is shared
// with the pile.
func (p *Ordered) Cards() []registry.Handle { return p.cards }

// Shuffle permutes the pile uniformly in place.
func (p *Ordered) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(p.cards), func(i, j int) {
		p.cards[i], p.cards[j] = p.cards[j], p.cards[i]
	})
}

// Clone returns an independent copy of the pile.
func (p Ordered) Clone() Ordered {
	return Ordered{cards: append([]registry.Handle{}, p.cards...)}
}
