// Package registry implements the card registry: a dense-integer-handle,
// append-only catalog of card records, plus the annotation system used to
// attach engine- and strategy-relevant metadata (mana production, game
// effects, arbitrary strategy hints) to cards by name.
package registry

import "fmt"

// Handle is a dense integer identifier for a card record. Handles are
// assigned in registration order starting at 0 and are stable for the
// lifetime of a Registry; they are cheap to copy and compare, which is
// why game state and mana sources refer to cards by Handle rather than
// by name or pointer.
type Handle int

func (h Handle) String() string { return fmt.Sprintf("#%d", int(h)) }

// invalidHandle is returned by lookups that fail; -1 can never be a real
// handle since registration starts at 0.
const invalidHandle Handle = -1
