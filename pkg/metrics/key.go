// Package metrics implements the event-to-statistics half of the
// simulator: a keyed aggregator with a commutative, associative merge
// (the reduction step of the parallel runner), and the Watcher interface
// that turns engine events into aggregator updates.
package metrics

import (
	"fmt"

	"github.com/behrlich/deck-sim/pkg/registry"
)

// Key identifies one tracked statistic. The name is always present; a
// key can additionally be scoped to a card ("turn first played" per
// card) or a turn number ("available mana" per turn). Keys are
// comparable values, usable directly as map keys.
type Key struct {
	Name    string
	Card    registry.Handle
	HasCard bool
	Turn    int
	HasTurn bool
}

// NewKey builds a key with just a name.
func NewKey(name string) Key { return Key{Name: name} }

// WithCard returns a copy of the key scoped to a card.
func (k Key) WithCard(card registry.Handle) Key {
	k.Card = card
	k.HasCard = true
	return k
}

// WithTurn returns a copy of the key scoped to a turn number.
func (k Key) WithTurn(turn int) Key {
	k.Turn = turn
	k.HasTurn = true
	return k
}

// String renders the key with handle numbers; Describe resolves card
// names when a registry is at hand.
func (k Key) String() string {
	out := k.Name
	if k.HasCard {
		out += fmt.Sprintf("::%s", k.Card)
	}
	if k.HasTurn {
		out += fmt.Sprintf("::%d", k.Turn)
	}
	return out
}

// Describe renders the key for reports, resolving the card handle to its
// name.
func (k Key) Describe(reg *registry.Registry) string {
	out := k.Name
	if k.HasCard {
		out += fmt.Sprintf("::%s", reg.Name(k.Card))
	}
	if k.HasTurn {
		out += fmt.Sprintf("::%d", k.Turn)
	}
	return out
}

// keyLess orders keys for deterministic report iteration: by name, then
// card, then turn, with unscoped keys before scoped ones.
func keyLess(a, b Key) bool {
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	if a.HasCard != b.HasCard {
		return !a.HasCard
	}
	if a.Card != b.Card {
		return a.Card < b.Card
	}
	if a.HasTurn != b.HasTurn {
		return !a.HasTurn
	}
	return a.Turn < b.Turn
}
