package registry

import (
	"encoding/json"
	"fmt"
)

// CardType is a card's primary type. It decides which zone a card goes to
// when played: instants and sorceries go to the graveyard, everything else
// (lands included) stays on the battlefield.
type CardType uint8

const (
	Land CardType = iota
	Instant
	Sorcery
	Creature
	Artifact
	Enchantment
	Planeswalker
)

// cardTypeNames is ordered to match the CardType constants.
var cardTypeNames = []string{
	"Land", "Instant", "Sorcery", "Creature", "Artifact", "Enchantment", "Planeswalker",
}

func (t CardType) String() string {
	if int(t) < len(cardTypeNames) {
		return cardTypeNames[t]
	}
	return fmt.Sprintf("CardType(%d)", uint8(t))
}

// ParseCardType maps a primary-type name back to its CardType.
func ParseCardType(s string) (CardType, error) {
	for i, name := range cardTypeNames {
		if name == s {
			return CardType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown card type %q", s)
}

// MarshalJSON encodes the card type by name, so cache files and reports
// stay readable.
func (t CardType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes a card type from its name.
func (t *CardType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseCardType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
