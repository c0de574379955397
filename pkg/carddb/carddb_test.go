package carddb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/behrlich/deck-sim/pkg/mana"
	"github.com/behrlich/deck-sim/pkg/registry"
)

func card(t *testing.T, name string, ct registry.CardType, cost string) Card {
	t.Helper()
	c := Card{Name: name, Type: ct}
	if cost != "" {
		parsed, err := mana.ParseCost(cost)
		require.NoError(t, err)
		c.Cost = &parsed
	}
	return c
}

// fakeSource resolves a fixed set of cards and records what was asked.
type fakeSource struct {
	name     string
	cards    map[string]Card
	requests [][]string
}

func (f *fakeSource) String() string { return f.name }

func (f *fakeSource) Retrieve(_ context.Context, names []string) ([]Card, error) {
	f.requests = append(f.requests, append([]string{}, names...))
	var found []Card
	for _, name := range names {
		if c, ok := f.cards[name]; ok {
			found = append(found, c)
		}
	}
	return found, nil
}

func TestChainAsksLaterSourcesOnlyForUnresolvedNames(t *testing.T) {
	first := &fakeSource{name: "first", cards: map[string]Card{
		"Forest": card(t, "Forest", registry.Land, ""),
	}}
	second := &fakeSource{name: "second", cards: map[string]Card{
		"Grizzly Bears": card(t, "Grizzly Bears", registry.Creature, "{1}{G}"),
	}}

	chain := NewChain(first, second)
	cards, err := chain.Retrieve(context.Background(), []string{"Forest", "Grizzly Bears", "Ghost"})
	require.NoError(t, err)

	assert.Len(t, cards, 2)
	require.Len(t, second.requests, 1)
	assert.Equal(t, []string{"Grizzly Bears", "Ghost"}, second.requests[0],
		"names the first source resolved are not asked again")
}

func TestChainUnresolvedNamesAreNotAnError(t *testing.T) {
	chain := NewChain(&fakeSource{name: "empty"})
	cards, err := chain.Retrieve(context.Background(), []string{"Ghost"})
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestChainStopsEarlyWhenEverythingResolved(t *testing.T) {
	first := &fakeSource{name: "first", cards: map[string]Card{
		"Forest": card(t, "Forest", registry.Land, ""),
	}}
	second := &fakeSource{name: "second"}

	_, err := NewChain(first, second).Retrieve(context.Background(), []string{"Forest"})
	require.NoError(t, err)
	assert.Empty(t, second.requests)
}

func TestCacheRoundTrip(t *testing.T) {
	cache := &Cache{Path: filepath.Join(t.TempDir(), "nested", "cards.json")}
	saved := []Card{
		card(t, "Forest", registry.Land, ""),
		card(t, "Grizzly Bears", registry.Creature, "{1}{G}"),
	}
	require.NoError(t, cache.Save(saved))

	got, err := cache.Retrieve(context.Background(), []string{"Grizzly Bears"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Grizzly Bears", got[0].Name)
	require.NotNil(t, got[0].Cost)
	assert.Equal(t, "{1}{G}", got[0].Cost.String())
}

func TestCacheMissingFileDegradesToEmpty(t *testing.T) {
	cache := &Cache{Path: filepath.Join(t.TempDir(), "absent.json")}
	got, err := cache.Retrieve(context.Background(), []string{"Forest"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCacheCorruptFileDegradesToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))
	cache := &Cache{Path: path}

	got, err := cache.Retrieve(context.Background(), []string{"Forest"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRemoteRetrieve(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cards/collection", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "data": [
    {"name": "Forest", "type_line": "Basic Land — Forest", "mana_cost": ""},
    {"name": "Grizzly Bears", "type_line": "Creature — Bear", "mana_cost": "{1}{G}"},
    {"name": "Dryad Arbor", "type_line": "Land Creature — Forest Dryad", "mana_cost": ""}
  ],
  "not_found": [{"name": "Ghost"}]
}`))
	}))
	defer server.Close()

	remote := NewRemote(server.URL)
	cards, err := remote.Retrieve(context.Background(),
		[]string{"Forest", "Grizzly Bears", "Dryad Arbor", "Ghost"})
	require.NoError(t, err)
	require.Len(t, cards, 3)

	byName := map[string]Card{}
	for _, c := range cards {
		byName[c.Name] = c
	}
	assert.Equal(t, registry.Land, byName["Forest"].Type)
	assert.Nil(t, byName["Forest"].Cost)
	assert.Equal(t, registry.Creature, byName["Grizzly Bears"].Type)
	assert.Equal(t, registry.Land, byName["Dryad Arbor"].Type,
		"Land outranks Creature when a type line names both")
}

func TestRemoteSurfacesServerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer server.Close()

	remote := NewRemote(server.URL)
	_, err := remote.Retrieve(context.Background(), []string{"Forest"})
	assert.Error(t, err)
}

func TestRegisterPushesCardsIntoBuilder(t *testing.T) {
	b := registry.NewBuilder()
	Register(b, []Card{
		card(t, "Forest", registry.Land, ""),
		card(t, "Grizzly Bears", registry.Creature, "{1}{G}"),
	})
	reg := b.Build()
	assert.Equal(t, 2, reg.Len())
	rec := reg.Record(reg.MustLookup("Grizzly Bears"))
	assert.Equal(t, registry.Creature, rec.Type)
	require.NotNil(t, rec.Cost)
}
