package mana

import (
	"fmt"
	"strconv"
	"strings"
)

// Cost is a mana cost: a generic (colorless, payable with any mana) amount
// plus a set of required colored pips. {2}{G}{G} is Generic: 2, Colors:
// {Green: 2}.
type Cost struct {
	Generic uint8
	Colors  Pool
}

// EmptyCost is the zero-cost, e.g. a land's mana cost.
func EmptyCost() Cost { return Cost{} }

// ManaValue is the total mana value of the cost: generic plus every
// colored pip.
func (c Cost) ManaValue() int {
	return int(c.Generic) + c.Colors.ManaValue()
}

// String renders the cost canonically: generic first (omitted if zero,
// unless the whole cost is zero, in which case it prints "{0}"), then
// colored pips in the fixed color order.
func (c Cost) String() string {
	var sb strings.Builder
	if c.Generic > 0 || c.ManaValue() == 0 {
		sb.WriteString("{")
		sb.WriteString(strconv.Itoa(int(c.Generic)))
		sb.WriteString("}")
	}
	sb.WriteString(c.Colors.String())
	return sb.String()
}

// ParseCost parses a brace-token string into a Cost. Digit tokens
// accumulate into Generic (multiple numeric tokens add together, matching
// the pip-accumulation semantics of a letter token); letter tokens
// accumulate into Colors. "" and "{0}" both parse to EmptyCost().
func ParseCost(s string) (Cost, error) {
	tokens, err := splitTokens(s)
	if err != nil {
		return Cost{}, err
	}
	var c Cost
	for _, tok := range tokens {
		if isDigits(tok) {
			n, err := strconv.Atoi(tok)
			if err != nil {
				return Cost{}, fmt.Errorf("parse cost %q: token %q: %w: %v", s, tok, ErrFailedToParseGenericCost, err)
			}
			if n < 0 || n > 255 {
				return Cost{}, fmt.Errorf("parse cost %q: token %q: %w", s, tok, ErrFailedToParseGenericCost)
			}
			c.Generic += uint8(n)
			continue
		}
		if len(tok) != 1 {
			return Cost{}, fmt.Errorf("parse cost %q: token %q: %w", s, tok, ErrInvalidManaType)
		}
		t, ok := parseType(tok[0])
		if !ok {
			return Cost{}, fmt.Errorf("parse cost %q: token %q: %w", s, tok, ErrInvalidManaType)
		}
		c.Colors = c.Colors.AddPip(t)
	}
	return c, nil
}
