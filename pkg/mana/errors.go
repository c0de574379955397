package mana

import "errors"

// Sentinel errors returned (wrapped with context via %w) by ParsePool,
// ParseCost, and the
// pool/cost arithmetic. Callers that need to distinguish failure modes
// should use errors.Is against these rather than string-matching.
var (
	// ErrDidNotMatchRegex is returned when the input string isn't a
	// sequence of brace tokens at all.
	ErrDidNotMatchRegex = errors.New("mana: input did not match the brace-token grammar")
	// ErrInvalidManaType is returned when a brace token's contents are
	// neither one of W,U,B,R,G,C nor an all-digit generic amount.
	ErrInvalidManaType = errors.New("mana: invalid mana type in token")
	// ErrFailedToParseGenericCost is returned when a digit token can't be
	// parsed as an integer (practically unreachable given the grammar,
	// but the digit-to-int conversion can still fail on overflow).
	ErrFailedToParseGenericCost = errors.New("mana: failed to parse generic amount")
	// ErrGenericCostInManaPool is returned by ParsePool when the input
	// contains a generic (numeric) token; a Pool has no generic component.
	ErrGenericCostInManaPool = errors.New("mana: a mana pool cannot contain a generic amount")
	// ErrManaUnderflow is returned by Pool.Sub and RemovePip when the
	// subtrahend exceeds the available pips of some color.
	ErrManaUnderflow = errors.New("mana: insufficient pips to subtract")
)
