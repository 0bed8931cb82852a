// ABOUTME: Choice is a tagged union of "none" or a specific set of options.
// ABOUTME: Replaces sets that carry a magic "none" member with a structural invariant.
package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Choice holds either the explicit "none" answer or a set of specific values.
// The zero value is an unanswered, empty specific set.
type Choice[T ~string] struct {
	none  bool
	items []T
}

// NoneChoice returns the "none" arm.
func NoneChoice[T ~string]() Choice[T] {
	return Choice[T]{none: true}
}

// SpecificChoice returns the specific arm with the given values, deduplicated.
func SpecificChoice[T ~string](values ...T) Choice[T] {
	var c Choice[T]
	for _, v := range values {
		if !c.Has(v) {
			c.items = append(c.items, v)
		}
	}
	return c
}

// IsNone reports whether the "none" arm is selected.
func (c Choice[T]) IsNone() bool {
	return c.none
}

// IsEmpty reports whether nothing at all has been chosen.
func (c Choice[T]) IsEmpty() bool {
	return !c.none && len(c.items) == 0
}

// Items returns the specific values. Empty for the "none" arm.
func (c Choice[T]) Items() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Has reports whether v is among the specific values.
func (c Choice[T]) Has(v T) bool {
	for _, item := range c.items {
		if item == v {
			return true
		}
	}
	return false
}

// SelectNone switches to the "none" arm, dropping every specific value.
func (c Choice[T]) SelectNone() Choice[T] {
	return NoneChoice[T]()
}

// Toggle adds v to the specific set, or removes it if already present.
// Toggling while "none" is active leaves the "none" arm.
func (c Choice[T]) Toggle(v T) Choice[T] {
	if c.none {
		return SpecificChoice(v)
	}
	if c.Has(v) {
		out := Choice[T]{}
		for _, item := range c.items {
			if item != v {
				out.items = append(out.items, item)
			}
		}
		return out
	}
	return SpecificChoice(append(c.Items(), v)...)
}

// Strings renders the choice for the wire, using sentinel for the "none" arm.
func (c Choice[T]) Strings(sentinel string) []string {
	if c.none {
		return []string{sentinel}
	}
	out := make([]string, 0, len(c.items))
	for _, item := range c.items {
		out = append(out, string(item))
	}
	return out
}

type choiceJSON[T ~string] struct {
	None  bool `json:"none,omitempty"`
	Items []T  `json:"items,omitempty"`
}

// MarshalJSON encodes the union with an explicit tag.
func (c Choice[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(choiceJSON[T]{None: c.none, Items: c.items})
}

// UnmarshalJSON accepts the tagged form written by MarshalJSON, or a plain
// list where a "none" entry (any case) selects the none arm.
func (c *Choice[T]) UnmarshalJSON(data []byte) error {
	var list []T
	if err := json.Unmarshal(data, &list); err == nil {
		return c.fromList(list)
	}
	var raw choiceJSON[T]
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode choice: %w", err)
	}
	return c.fromTagged(raw)
}

// MarshalYAML encodes the union for YAML exports.
func (c Choice[T]) MarshalYAML() (interface{}, error) {
	return choiceJSON[T]{None: c.none, Items: c.items}, nil
}

// UnmarshalYAML mirrors UnmarshalJSON for YAML answer files.
func (c *Choice[T]) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var list []T
	if err := unmarshal(&list); err == nil {
		return c.fromList(list)
	}
	var raw choiceJSON[T]
	if err := unmarshal(&raw); err != nil {
		return fmt.Errorf("decode choice: %w", err)
	}
	return c.fromTagged(raw)
}

func (c *Choice[T]) fromList(list []T) error {
	var specific []T
	none := false
	for _, v := range list {
		if strings.EqualFold(string(v), "none") {
			none = true
			continue
		}
		specific = append(specific, v)
	}
	return c.fromTagged(choiceJSON[T]{None: none, Items: specific})
}

func (c *Choice[T]) fromTagged(raw choiceJSON[T]) error {
	if raw.None && len(raw.Items) > 0 {
		return fmt.Errorf("decode choice: none cannot be combined with other options")
	}
	if raw.None {
		*c = NoneChoice[T]()
		return nil
	}
	*c = SpecificChoice(raw.Items...)
	return nil
}
