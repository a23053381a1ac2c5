package widget

import (
	"errors"
	"fmt"

	"github.com/drakos74/polyclass/internal/data"
)

// ErrSelectorRange is returned when addressing an item a selector does not have.
var ErrSelectorRange = errors.New("selector index out of range")

// Item is one entry of a selector.
type Item struct {
	Name string
	Icon string
}

// Selector is an ordered list of unique attribute names, as shown in a combo box.
type Selector struct {
	Label string
	items []Item
}

// NewSelector creates an empty selector with the given label.
func NewSelector(label string) *Selector {
	return &Selector{Label: label}
}

// Clear removes all items.
func (s *Selector) Clear() {
	s.items = nil
}

// Add appends an item if the name is not there yet.
func (s *Selector) Add(name, icon string) {
	if s.Index(name) >= 0 {
		return
	}
	s.items = append(s.items, Item{Name: name, Icon: icon})
}

// AddAttribute appends the given attribute with the icon of its kind.
func (s *Selector) AddAttribute(a data.Attribute) {
	s.Add(a.Name, Icon(a.Kind))
}

// Len returns the number of items.
func (s *Selector) Len() int {
	return len(s.items)
}

// ItemText returns the name of the item at the given index.
func (s *Selector) ItemText(i int) (string, error) {
	if i < 0 || i >= len(s.items) {
		return "", fmt.Errorf("%s item %d of %d: %w", s.Label, i, len(s.items), ErrSelectorRange)
	}
	return s.items[i].Name, nil
}

// Index returns the position of the given name, or -1.
func (s *Selector) Index(name string) int {
	for i, it := range s.items {
		if it.Name == name {
			return i
		}
	}
	return -1
}

// Items returns a copy of the items.
func (s *Selector) Items() []Item {
	return append([]Item{}, s.items...)
}

// Names returns the item names in order.
func (s *Selector) Names() []string {
	nn := make([]string, len(s.items))
	for i, it := range s.items {
		nn[i] = it.Name
	}
	return nn
}

// Icon returns the icon hint for an attribute kind.
func Icon(k data.Kind) string {
	switch k {
	case data.Continuous:
		return "continuous"
	case data.Discrete:
		return "discrete"
	case data.Other:
		return "other"
	}
	return "unknown"
}
