// Package carddb supplies card records to the registry: a remote client
// against the Scryfall card database, a local JSON cache, and the chain
// combinator that consults them in order.
package carddb

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/behrlich/deck-sim/pkg/mana"
	"github.com/behrlich/deck-sim/pkg/registry"
)

// Card is one card record as sources deliver it and the cache stores it.
type Card struct {
	Name string            `json:"name"`
	Type registry.CardType `json:"type"`
	Cost *mana.Cost        `json:"cost,omitempty"`
}

// Source supplies card records by name. A source may return any subset
// of the requested names in any order; a name it cannot resolve is not
// an error.
type Source interface {
	Retrieve(ctx context.Context, names []string) ([]Card, error)

	// String names the source in diagnostics.
	String() string
}

// Chain consults sources in order, asking each only for the names the
// earlier sources did not resolve. Names no source resolves are logged;
// the caller decides whether an incomplete result is fatal.
type Chain struct {
	sources []Source
}

// NewChain builds a chain over the given sources, first one preferred.
func NewChain(sources ...Source) *Chain {
	return &Chain{sources: sources}
}

func (c *Chain) String() string { return "chain" }

// Retrieve implements Source.
func (c *Chain) Retrieve(ctx context.Context, names []string) ([]Card, error) {
	cards := make([]Card, 0, len(names))
	required := append([]string{}, names...)

	for _, source := range c.sources {
		if len(required) == 0 {
			break
		}
		found, err := source.Retrieve(ctx, required)
		if err != nil {
			return nil, err
		}
		log.Info().Str("source", source.String()).Int("cards", len(found)).
			Msg("adding cards to card data")
		cards = append(cards, found...)

		resolved := make(map[string]bool, len(found))
		for _, card := range found {
			resolved[card.Name] = true
		}
		remaining := required[:0]
		for _, name := range required {
			if !resolved[name] {
				remaining = append(remaining, name)
			}
		}
		required = remaining
	}

	for _, name := range required {
		log.Error().Str("card", name).Msg("unable to locate a card with this name")
	}
	return cards, nil
}

// Register pushes retrieved card records into a registry under
// construction.
func Register(b *registry.Builder, cards []Card) {
	for _, card := range cards {
		b.Register(card.Name, card.Type, card.Cost)
	}
}
