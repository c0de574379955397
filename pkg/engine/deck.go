package engine

import (
	"github.com/behrlich/deck-sim/pkg/mana"
	"github.com/behrlich/deck-sim/pkg/piles"
	"github.com/behrlich/deck-sim/pkg/registry"
)

// Deck is the pre-game configuration of cards: the main deck that will
// become the library, plus the command zone.
type Deck struct {
	CommandZone piles.Unordered
	Main        piles.Unordered
}

// Size returns the number of cards in the main deck.
func (d Deck) Size() int { return d.Main.Size() }

// Clone returns an independent copy, used to hand each trial worker its
// own deck.
func (d Deck) Clone() Deck {
	return Deck{
		CommandZone: d.CommandZone.Clone(),
		Main:        d.Main.Clone(),
	}
}

// CardPlay is everything needed to make one play: the card, the zone it
// is played from, and the mana paid for it. Plays produced by the legal-
// play getters carry an empty payment; the strategy fills it in once the
// autotap solver has picked one.
type CardPlay struct {
	Card    registry.Handle
	Zone    Zone
	Payment mana.Pool
}
