package deckfile

import (
	"fmt"

	"github.com/behrlich/deck-sim/pkg/mana"
	"github.com/behrlich/deck-sim/pkg/registry"
)

// Annotations is the parsed card-annotations file.
type Annotations struct {
	Annotations []Target `json:"annotations"`
}

// Target applies one annotation key (and its values) to a list of cards
// by name.
type Target struct {
	Targets []string `json:"targets"`
	Key     string   `json:"key"`
	Values  []Value  `json:"values,omitempty"`
}

// Value is the tagged union an annotation value is written as: exactly
// one of {"String": "..."} or {"Mana": "{G}"}.
type Value struct {
	String *string    `json:"String,omitempty"`
	Mana   *mana.Pool `json:"Mana,omitempty"`
}

// toAnnotation converts the JSON shape into the registry's value type.
func (v Value) toAnnotation() (registry.AnnotationValue, error) {
	switch {
	case v.String != nil && v.Mana == nil:
		return registry.StringValue(*v.String), nil
	case v.Mana != nil && v.String == nil:
		return registry.ManaValue(*v.Mana), nil
	default:
		return registry.AnnotationValue{}, fmt.Errorf("annotation value must have exactly one of String or Mana")
	}
}

// LoadAnnotations reads and parses an annotations file.
func LoadAnnotations(path string) (Annotations, error) {
	var a Annotations
	if err := readJSON(path, &a); err != nil {
		return Annotations{}, err
	}
	return a, nil
}

// Len returns the number of annotation targets in the file.
func (a Annotations) Len() int { return len(a.Annotations) }

// Apply merges every annotation into the registry under construction.
// Cards mentioned only here are registered so the annotation has
// somewhere to live; a later Register for the same name fills in their
// type and cost.
func (a Annotations) Apply(b *registry.Builder) error {
	for _, target := range a.Annotations {
		values := make([]registry.AnnotationValue, 0, len(target.Values))
		for _, v := range target.Values {
			converted, err := v.toAnnotation()
			if err != nil {
				return fmt.Errorf("annotation %q: %w", target.Key, err)
			}
			values = append(values, converted)
		}
		for _, name := range target.Targets {
			b.Annotate(name, target.Key, values...)
		}
	}
	return nil
}
