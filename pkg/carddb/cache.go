package carddb

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// Cache is a card source backed by a local JSON file. Reads that fail
// for any reason degrade to an empty result, pushing the lookup to the
// next source in the chain; only writes report errors.
type Cache struct {
	Path string
}

// DefaultCachePath puts the card cache under the platform's user cache
// directory.
func DefaultCachePath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("locate cache directory: %w", err)
	}
	return filepath.Join(dir, "decksim", "cards.json"), nil
}

func (c *Cache) String() string { return c.Path }

// Load returns every cached record, an empty result if the cache is
// missing or unreadable.
func (c *Cache) Load() []Card {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		log.Warn().Str("path", c.Path).Err(err).
			Msg("could not read card cache, it will be refreshed")
		return nil
	}

	var cards []Card
	if err := json.Unmarshal(data, &cards); err != nil {
		log.Warn().Str("path", c.Path).Err(err).
			Msg("card cache is unreadable, it will be refreshed")
		return nil
	}
	log.Info().Str("path", c.Path).Int("cards", len(cards)).Msg("read card cache")
	return cards
}

// Retrieve implements Source: the cached records filtered down to the
// requested names.
func (c *Cache) Retrieve(_ context.Context, names []string) ([]Card, error) {
	cards := c.Load()

	requested := make(map[string]bool, len(names))
	for _, name := range names {
		requested[name] = true
	}
	kept := cards[:0]
	for _, card := range cards {
		if requested[card.Name] {
			kept = append(kept, card)
		}
	}
	return kept, nil
}

// Save writes the full card set back to the cache file, creating the
// directory if needed.
func (c *Cache) Save(cards []Card) error {
	if err := os.MkdirAll(filepath.Dir(c.Path), 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}
	data, err := json.MarshalIndent(cards, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.Path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write card cache: %w", err)
	}
	return nil
}
