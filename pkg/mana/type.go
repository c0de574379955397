// Package mana implements the mana pool and mana cost arithmetic used by
// the payment solver and the game engine: the closed six-color type set,
// brace-token parsing/formatting, and pool/cost arithmetic.
package mana

import "fmt"

// Type is one of the six fixed mana colors. The zero value is White; the
// declared order White, Blue, Black, Red, Green, Colorless is the order
// used everywhere iteration or Display needs a deterministic sequence.
type Type uint8

const (
	White Type = iota
	Blue
	Black
	Red
	Green
	Colorless
)

// Types lists every mana type in the fixed, declared order. Code that
// iterates "every color" should range over this slice rather than 0..5,
// so a reordering of the constants (unlikely, but cheap to guard against)
// can't silently desync iteration order from Display order.
var Types = []Type{White, Blue, Black, Red, Green, Colorless}

func (t Type) String() string {
	switch t {
	case White:
		return "W"
	case Blue:
		return "U"
	case Black:
		return "B"
	case Red:
		return "R"
	case Green:
		return "G"
	case Colorless:
		return "C"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// parseType maps a single brace-token letter to its Type. Returns false
// for anything that isn't one of W, U, B, R, G, C.
func parseType(letter byte) (Type, bool) {
	switch letter {
	case 'W':
		return White, true
	case 'U':
		return Blue, true
	case 'B':
		return Black, true
	case 'R':
		return Red, true
	case 'G':
		return Green, true
	case 'C':
		return Colorless, true
	default:
		return 0, false
	}
}
