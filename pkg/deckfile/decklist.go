package deckfile

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/behrlich/deck-sim/pkg/engine"
	"github.com/behrlich/deck-sim/pkg/piles"
	"github.com/behrlich/deck-sim/pkg/registry"
)

// Allocation is one deck-list line: a card name and how many copies.
// Repeating a name across allocations is allowed; the quantities sum.
type Allocation struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// DeckList is the parsed deck-list file.
type DeckList struct {
	CommandZone []Allocation `json:"command_zone,omitempty"`
	Decklist    []Allocation `json:"decklist"`
}

// LoadDeckList reads and parses a deck-list file.
func LoadDeckList(path string) (DeckList, error) {
	var list DeckList
	if err := readJSON(path, &list); err != nil {
		return DeckList{}, err
	}
	return list, nil
}

// Count returns the number of cards in the main deck.
func (l DeckList) Count() int {
	total := 0
	for _, a := range l.Decklist {
		total += a.Quantity
	}
	return total
}

// CardNames lists every name the deck references, command zone included,
// in file order. Names repeated across allocations repeat here too; card
// sources resolve each name at most once anyway.
func (l DeckList) CardNames() []string {
	names := make([]string, 0, len(l.Decklist)+len(l.CommandZone))
	for _, a := range l.Decklist {
		names = append(names, a.Name)
	}
	for _, a := range l.CommandZone {
		names = append(names, a.Name)
	}
	return names
}

// MissingCardsError aggregates the deck-list names the registry does not
// know. Each missing name is logged individually; the error carries only
// the count.
type MissingCardsError struct {
	Count int
}

func (e *MissingCardsError) Error() string {
	return fmt.Sprintf("unable to construct deck: %d cards could not be found", e.Count)
}

// ToDeck resolves the deck list against the registry. All missing names
// are collected before failing, so one run reports every problem in the
// file.
func (l DeckList) ToDeck(reg *registry.Registry) (engine.Deck, error) {
	var deck engine.Deck
	missing := 0
	missing += fill(&deck.CommandZone, l.CommandZone, reg)
	missing += fill(&deck.Main, l.Decklist, reg)
	if missing > 0 {
		return engine.Deck{}, &MissingCardsError{Count: missing}
	}
	return deck, nil
}

func fill(pile *piles.Unordered, allocations []Allocation, reg *registry.Registry) int {
	missing := 0
	for _, a := range allocations {
		h, ok := reg.Lookup(a.Name)
		if !ok {
			log.Error().Str("card", a.Name).Msg("could not construct deck, no card with this name")
			missing++
			continue
		}
		pile.AddN(h, a.Quantity)
	}
	return missing
}
