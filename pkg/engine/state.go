package engine

import (
	"math/rand"

	"github.com/rs/zerolog/log"

	"github.com/behrlich/deck-sim/pkg/payment"
	"github.com/behrlich/deck-sim/pkg/piles"
	"github.com/behrlich/deck-sim/pkg/registry"
)

const (
	probOfGoingFirst = 0.5
	handSize         = 7
)

// TurnState is scratch state that resets at cleanup: how many land drops
// have been made this turn, and which permanents have tapped.
type TurnState struct {
	LandDropsMade int
	Tapped        piles.Unordered
}

// Reset clears the turn state for the next turn.
func (ts *TurnState) Reset() {
	ts.LandDropsMade = 0
	ts.Tapped.Clear()
}

// State is the complete game state of one trial. The disjoint union of
// the five zones always equals the original deck multiset plus whatever
// the command zone seeded; this engine never creates or destroys cards,
// only moves them between zones.
type State struct {
	Turn            int
	DrawOnFirstTurn bool
	MulligansTaken  int
	GameLoss        bool

	MaxLandDropsPerTurn int

	Library     piles.Ordered
	Hand        piles.Unordered
	Permanents  piles.Unordered
	Graveyard   piles.Unordered
	CommandZone piles.Unordered

	TurnState TurnState

	reg *registry.Registry
}

// New builds the state for a fresh trial: the main deck shuffled into the
// library, the command zone seeded, and a coin flip for whether this
// player draws on their first turn.
func New(reg *registry.Registry, deck Deck, rng *rand.Rand) *State {
	main := deck.Main.Clone()
	return &State{
		Turn:                0,
		DrawOnFirstTurn:     rng.Float64() < probOfGoingFirst,
		MaxLandDropsPerTurn: 1,
		Library:             main.ShuffleIntoOrdered(rng),
		CommandZone:         deck.CommandZone.Clone(),
		reg:                 reg,
	}
}

// DrawHand draws the opening hand: seven cards less one per mulligan
// taken. Once every mulligan is spent, further calls do nothing.
func (s *State) DrawHand() {
	if s.MulligansTaken >= handSize {
		log.Warn().Int("mulligans", s.MulligansTaken).
			Msg("taking more mulligans than hand size allows, ignoring extras")
		return
	}
	s.Hand = piles.NewUnordered(s.Library.DrawN(handSize - s.MulligansTaken)...)
}

// ShuffleHandIntoLibrary puts the hand back and reshuffles, the first
// half of taking a mulligan.
func (s *State) ShuffleHandIntoLibrary(rng *rand.Rand) {
	s.Library.AddToTop(&s.Hand)
	s.Library.Shuffle(rng)
	s.Hand.Clear()
}

// DrawToHand moves the top card of the library to the hand. Drawing from
// an empty library loses the game.
func (s *State) DrawToHand() {
	card, ok := s.Library.Draw()
	if !ok {
		s.GameLoss = true
		return
	}
	s.Hand.Add(card)
}

// PlayCard moves a card from its origin zone to where its primary type
// sends it: instants and sorceries to the graveyard, everything else to
// the battlefield. Playing from the library is not supported; strategies
// never produce such plays.
func (s *State) PlayCard(play CardPlay) {
	var origin *piles.Unordered
	switch play.Zone {
	case ZoneHand:
		origin = &s.Hand
	case ZoneCommandZone:
		origin = &s.CommandZone
	case ZoneGraveyard:
		origin = &s.Graveyard
	default:
		log.Error().Stringer("zone", play.Zone).Stringer("card", play.Card).
			Msg("cannot play a card from this zone")
		return
	}
	if !origin.Remove(play.Card) {
		log.Error().Stringer("zone", play.Zone).Str("card", s.reg.Name(play.Card)).
			Msg("attempting to play a card that is not present in its origin zone")
		return
	}

	switch s.reg.Record(play.Card).Type {
	case registry.Instant, registry.Sorcery:
		s.Graveyard.Add(play.Card)
	case registry.Land:
		s.Permanents.Add(play.Card)
		s.TurnState.LandDropsMade++
		if s.TurnState.LandDropsMade > s.MaxLandDropsPerTurn {
			log.Warn().Int("land_drops", s.TurnState.LandDropsMade).
				Int("max", s.MaxLandDropsPerTurn).
				Msg("land drop exceeds the per-turn limit")
		}
	default:
		s.Permanents.Add(play.Card)
	}
}

// EndTurn resets the turn scratch state and advances the turn counter.
func (s *State) EndTurn() {
	s.TurnState.Reset()
	s.Turn++
}

// Clone returns a deep copy of the state sharing only the immutable
// registry. Cheap enough that the strategy's one-step lookahead clones
// per candidate land drop.
func (s *State) Clone() *State {
	next := *s
	next.Library = s.Library.Clone()
	next.Hand = s.Hand.Clone()
	next.Permanents = s.Permanents.Clone()
	next.Graveyard = s.Graveyard.Clone()
	next.CommandZone = s.CommandZone.Clone()
	next.TurnState.Tapped = s.TurnState.Tapped.Clone()
	return &next
}

// WithCardPlayed returns a clone of the state in which play has already
// happened. The receiver is untouched.
func (s *State) WithCardPlayed(play CardPlay) *State {
	next := s.Clone()
	next.PlayCard(play)
	return next
}

// Registry returns the card registry this state reads card data through.
func (s *State) Registry() *registry.Registry { return s.reg }

// LegalCardPlays lists every candidate non-land play: hand cards that
// have a cost, plus everything in the command zone. Payments are left
// empty for the payment solver to fill in.
func (s *State) LegalCardPlays() []CardPlay {
	var plays []CardPlay
	for _, card := range s.Hand.Cards() {
		if s.reg.Record(card).Cost == nil {
			continue
		}
		plays = append(plays, CardPlay{Card: card, Zone: ZoneHand})
	}
	for _, card := range s.CommandZone.Cards() {
		plays = append(plays, CardPlay{Card: card, Zone: ZoneCommandZone})
	}
	return plays
}

// LegalLandDrops lists one representative land drop per distinct land
// name in hand, or nothing once this turn's land drop is spent.
func (s *State) LegalLandDrops() []CardPlay {
	if s.TurnState.LandDropsMade >= s.MaxLandDropsPerTurn {
		return nil
	}
	seen := make(map[registry.Handle]bool)
	var drops []CardPlay
	for _, card := range s.Hand.Cards() {
		if s.reg.Record(card).Type != registry.Land || seen[card] {
			continue
		}
		seen[card] = true
		drops = append(drops, CardPlay{Card: card, Zone: ZoneHand})
	}
	return drops
}

// ManaSources views the untapped battlefield through the core:Produces
// annotation. Every copy of a permanent is its own source.
func (s *State) ManaSources() []payment.Source {
	tapped := make(map[registry.Handle]int)
	for _, card := range s.TurnState.Tapped.Cards() {
		tapped[card]++
	}
	var sources []payment.Source
	for _, card := range s.Permanents.Cards() {
		if tapped[card] > 0 {
			tapped[card]--
			continue
		}
		if src, ok := payment.FromRecord(s.reg.Record(card)); ok {
			sources = append(sources, src)
		}
	}
	return sources
}

// LandsInHand counts the lands currently in hand.
func (s *State) LandsInHand() int {
	n := 0
	for _, card := range s.Hand.Cards() {
		if s.reg.Record(card).Type == registry.Land {
			n++
		}
	}
	return n
}

// TotalCards sums every zone. With no card-removing effects in the
// engine, this stays constant for the whole trial.
func (s *State) TotalCards() int {
	return s.Library.Size() + s.Hand.Size() + s.Permanents.Size() +
		s.Graveyard.Size() + s.CommandZone.Size()
}
