package carddb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/behrlich/deck-sim/pkg/mana"
	"github.com/behrlich/deck-sim/pkg/registry"
)

// DefaultEndpoint is the public Scryfall API.
const DefaultEndpoint = "https://api.scryfall.com"

// Scryfall's collection endpoint accepts at most 75 identifiers per
// request, and its API guidelines ask clients to stay under 10 requests
// per second; we aim for half that.
const (
	maxCardsPerRequest = 75
	requestsPerSecond  = 5
)

// Remote retrieves card records from the Scryfall card database,
// batching names through the collection endpoint with retries on
// transient failures and a client-side rate limit.
type Remote struct {
	endpoint string
	client   *retryablehttp.Client
	limiter  *rate.Limiter
}

// NewRemote builds a client against endpoint; pass DefaultEndpoint
// outside of tests.
func NewRemote(endpoint string) *Remote {
	client := retryablehttp.NewClient()
	client.Logger = nil
	client.RetryMax = 4
	client.HTTPClient.Timeout = 10 * time.Second
	return &Remote{
		endpoint: endpoint,
		client:   client,
		limiter:  rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
}

func (r *Remote) String() string { return r.endpoint }

// collectionRequest and collectionResponse mirror the wire shape of the
// /cards/collection endpoint, trimmed to the fields this simulator
// reads.
type collectionRequest struct {
	Identifiers []nameIdentifier `json:"identifiers"`
}

type nameIdentifier struct {
	Name string `json:"name"`
}

type collectionResponse struct {
	Data []scryfallCard `json:"data"`
}

type scryfallCard struct {
	Name     string `json:"name"`
	TypeLine string `json:"type_line"`
	ManaCost string `json:"mana_cost"`
}

// Retrieve implements Source: the requested names, batched through the
// collection endpoint. Names Scryfall does not know are simply absent
// from the result.
func (r *Remote) Retrieve(ctx context.Context, names []string) ([]Card, error) {
	cards := make([]Card, 0, len(names))
	for start := 0; start < len(names); start += maxCardsPerRequest {
		end := start + maxCardsPerRequest
		if end > len(names) {
			end = len(names)
		}
		batch, err := r.retrieveBatch(ctx, names[start:end])
		if err != nil {
			return nil, err
		}
		cards = append(cards, batch...)
	}
	return cards, nil
}

func (r *Remote) retrieveBatch(ctx context.Context, names []string) ([]Card, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	reqBody := collectionRequest{Identifiers: make([]nameIdentifier, len(names))}
	for i, name := range names {
		reqBody.Identifiers[i] = nameIdentifier{Name: name}
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost,
		r.endpoint+"/cards/collection", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "decksim")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("card database request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("card database returned status %s", resp.Status)
	}

	var parsed collectionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode card database response: %w", err)
	}

	cards := make([]Card, 0, len(parsed.Data))
	for _, raw := range parsed.Data {
		card, err := convert(raw)
		if err != nil {
			log.Warn().Str("card", raw.Name).Err(err).
				Msg("skipping card the database described unusably")
			continue
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// typePriority orders the primary types for type-line scanning: a card
// whose type line names several (an artifact land, an enchantment
// creature) takes the first match.
var typePriority = []struct {
	word string
	t    registry.CardType
}{
	{"Land", registry.Land},
	{"Creature", registry.Creature},
	{"Instant", registry.Instant},
	{"Sorcery", registry.Sorcery},
	{"Planeswalker", registry.Planeswalker},
	{"Artifact", registry.Artifact},
	{"Enchantment", registry.Enchantment},
}

// convert turns a wire card into the record shape the registry stores.
func convert(raw scryfallCard) (Card, error) {
	card := Card{Name: raw.Name}

	matched := false
	for _, p := range typePriority {
		if strings.Contains(raw.TypeLine, p.word) {
			card.Type = p.t
			matched = true
			break
		}
	}
	if !matched {
		return Card{}, fmt.Errorf("unrecognized type line %q", raw.TypeLine)
	}

	if raw.ManaCost != "" {
		cost, err := mana.ParseCost(raw.ManaCost)
		if err != nil {
			return Card{}, fmt.Errorf("mana cost %q: %w", raw.ManaCost, err)
		}
		card.Cost = &cost
	}
	return card, nil
}
