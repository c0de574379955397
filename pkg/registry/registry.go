package registry

import (
	"fmt"

	"github.com/behrlich/deck-sim/pkg/mana"
)

// Record is everything the registry knows about a single card: its name,
// its primary type, its mana cost (nil for lands and other cost-less
// cards), and the annotations attached to it.
type Record struct {
	Handle      Handle
	Name        string
	Type        CardType
	Cost        *mana.Cost
	Annotations AnnotationSet
}

// Registry is the append-only catalog of every card referenced by a deck
// list or its annotation files. Cards are added during deck loading; once
// a trial run begins the registry is treated as immutable (Builder and
// Registry are split precisely to make that boundary explicit in the
// type system rather than by convention).
type Registry struct {
	records []Record
	byName  map[string]Handle
}

// Builder accumulates card records and annotations before a Registry is
// published. It exists because annotation files and deck lists can both
// reference a card before the other has introduced it, and because
// scanning a growing []Record by name on every annotation insert would be
// quadratic in the card count — the byName index is built incrementally
// here instead.
type Builder struct {
	reg Registry
}

// NewBuilder starts an empty registry under construction.
func NewBuilder() *Builder {
	return &Builder{reg: Registry{byName: make(map[string]Handle)}}
}

// Ensure returns the Handle for name, registering a new Record for it if
// this is the first time name has been seen. Safe to call repeatedly for
// the same name; it never creates a second record for an existing name.
func (b *Builder) Ensure(name string) Handle {
	if h, ok := b.reg.byName[name]; ok {
		return h
	}
	h := Handle(len(b.reg.records))
	b.reg.records = append(b.reg.records, Record{Handle: h, Name: name})
	b.reg.byName[name] = h
	return h
}

// Register records a card's primary type and cost, registering the card
// first if it isn't already known. A card introduced by Ensure (say, from
// an annotation file seen before the card database loaded) is filled in
// rather than duplicated; a second Register for the same name overwrites
// type and cost.
func (b *Builder) Register(name string, cardType CardType, cost *mana.Cost) Handle {
	h := b.Ensure(name)
	b.reg.records[h].Type = cardType
	b.reg.records[h].Cost = cost
	return h
}

// Annotate merges values into the named card's annotation set under key,
// registering the card first if it isn't already known.
func (b *Builder) Annotate(name, key string, values ...AnnotationValue) {
	h := b.Ensure(name)
	b.reg.records[h].Annotations.Insert(key, values...)
}

// Build publishes the accumulated records as an immutable Registry. The
// Builder should not be used after Build is called.
func (b *Builder) Build() *Registry {
	return &b.reg
}

// Lookup resolves a card name to its Handle.
func (r *Registry) Lookup(name string) (Handle, bool) {
	h, ok := r.byName[name]
	if !ok {
		return invalidHandle, false
	}
	return h, true
}

// MustLookup resolves a card name to its Handle, panicking if the name
// was never registered. Intended for call sites operating on a deck list
// that has already been validated against this same registry — an
// unresolved name there is a programmer error, not a runtime condition.
func (r *Registry) MustLookup(name string) Handle {
	h, ok := r.Lookup(name)
	if !ok {
		panic(fmt.Sprintf("registry: card %q was never registered", name))
	}
	return h
}

// Record returns the Record for a Handle. Panics on an out-of-range
// handle, since handles are only ever minted by this same Registry's
// Builder and never constructed by callers.
func (r *Registry) Record(h Handle) Record {
	if int(h) < 0 || int(h) >= len(r.records) {
		panic(fmt.Sprintf("registry: handle %s out of range", h))
	}
	return r.records[h]
}

// Name is a convenience accessor for Record(h).Name.
func (r *Registry) Name(h Handle) string {
	return r.Record(h).Name
}

// Len returns the number of distinct cards registered.
func (r *Registry) Len() int {
	return len(r.records)
}
