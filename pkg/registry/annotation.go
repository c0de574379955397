package registry

import (
	"fmt"

	"github.com/behrlich/deck-sim/pkg/mana"
)

// Reserved annotation keys. Keys starting with "core:" are reserved for
// the engine itself; strategy- and reporting-facing keys should avoid
// this prefix to prevent colliding with a future engine-reserved key.
const (
	// ProducesKey holds the tap-mode mana pools a permanent can produce.
	// Its values are Mana-kind AnnotationValues; Insert does not check
	// the kind, and ManaProduces reports an error for any other kind.
	ProducesKey = "core:Produces"
	// GameEffectKey holds string side-effect tags interpreted by the
	// trial driver when a card is played. "fetches" is the only named
	// tag today; it is recognized but not implemented (see pkg/trial).
	// Every other tag, known or not, is a no-op.
	GameEffectKey = "core:GameEffect"
)

// AnnotationValue is a tagged union of either a free-form string or a
// mana pool, matching the two value kinds the engine and strategies
// actually need. Exactly one of the two fields is meaningful, selected by
// IsMana.
type AnnotationValue struct {
	IsMana bool
	Text   string
	Mana   mana.Pool
}

// StringValue builds a string-kind AnnotationValue.
func StringValue(s string) AnnotationValue { return AnnotationValue{Text: s} }

// ManaValue builds a mana-kind AnnotationValue.
func ManaValue(p mana.Pool) AnnotationValue { return AnnotationValue{IsMana: true, Mana: p} }

func (v AnnotationValue) String() string {
	if v.IsMana {
		return v.Mana.String()
	}
	return v.Text
}

func (v AnnotationValue) Equal(o AnnotationValue) bool {
	return v.IsMana == o.IsMana && v.Text == o.Text && v.Mana == o.Mana
}

// Annotation is a single key with its accumulated values.
type Annotation struct {
	Key    string
	Values []AnnotationValue
}

// extend appends values not already present, preserving the order values
// were first seen in (insertion order), rather than sorting — repeated
// annotation of the same key from multiple annotation-file targets is additive
// and order-stable so reports are reproducible across runs.
func (a *Annotation) extend(values []AnnotationValue) {
	for _, v := range values {
		if !a.contains(v) {
			a.Values = append(a.Values, v)
		}
	}
}

func (a *Annotation) contains(v AnnotationValue) bool {
	for _, existing := range a.Values {
		if existing.Equal(v) {
			return true
		}
	}
	return false
}

// AnnotationSet is an ordered collection of Annotations, keyed by key.
// Keys themselves are unique; re-inserting a key unions its values into
// the existing entry instead of creating a duplicate.
type AnnotationSet struct {
	annotations []Annotation
}

// Insert merges an annotation into the set: if the key already exists,
// the new values are unioned (deduplicated, order-preserving) into it,
// otherwise the annotation is appended as a new entry.
func (s *AnnotationSet) Insert(key string, values ...AnnotationValue) {
	if entry := s.getMut(key); entry != nil {
		entry.extend(values)
		return
	}
	s.annotations = append(s.annotations, Annotation{Key: key, Values: append([]AnnotationValue{}, values...)})
}

// Get looks up a key, returning (annotation, true) if present.
func (s *AnnotationSet) Get(key string) (Annotation, bool) {
	for _, a := range s.annotations {
		if a.Key == key {
			return a, true
		}
	}
	return Annotation{}, false
}

func (s *AnnotationSet) getMut(key string) *Annotation {
	for i := range s.annotations {
		if s.annotations[i].Key == key {
			return &s.annotations[i]
		}
	}
	return nil
}

// Keys returns every key present, in insertion order.
func (s *AnnotationSet) Keys() []string {
	keys := make([]string, len(s.annotations))
	for i, a := range s.annotations {
		keys[i] = a.Key
	}
	return keys
}

// ManaProduces returns the tap-mode mana pools recorded under
// core:Produces for this set, or nil if the card produces no mana.
func (s *AnnotationSet) ManaProduces() ([]mana.Pool, error) {
	entry, ok := s.Get(ProducesKey)
	if !ok {
		return nil, nil
	}
	pools := make([]mana.Pool, 0, len(entry.Values))
	for _, v := range entry.Values {
		if !v.IsMana {
			return nil, fmt.Errorf("annotation %s: value %q is not a mana pool", ProducesKey, v.Text)
		}
		pools = append(pools, v.Mana)
	}
	return pools, nil
}

// GameEffects returns the string effect tags recorded under
// core:GameEffect for this set.
func (s *AnnotationSet) GameEffects() []string {
	entry, ok := s.Get(GameEffectKey)
	if !ok {
		return nil
	}
	tags := make([]string, 0, len(entry.Values))
	for _, v := range entry.Values {
		if !v.IsMana {
			tags = append(tags, v.Text)
		}
	}
	return tags
}
