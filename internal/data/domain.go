package data

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownAttribute is returned when a name does not resolve in a domain.
	ErrUnknownAttribute = errors.New("unknown attribute")
)

// Kind defines the value type of an attribute.
type Kind int

const (
	// Continuous attributes hold dense real values.
	Continuous Kind = iota + 1
	// Discrete attributes hold an index into a list of declared values.
	Discrete
	// Other covers everything else e.g. strings or time.
	Other
)

func (k Kind) String() string {
	switch k {
	case Continuous:
		return "continuous"
	case Discrete:
		return "discrete"
	case Other:
		return "other"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Attribute describes one column of a table.
type Attribute struct {
	Name string
	Kind Kind
	// Values are the declared values of a discrete attribute.
	Values []string
}

// NewContinuous creates a continuous attribute.
func NewContinuous(name string) Attribute {
	return Attribute{Name: name, Kind: Continuous}
}

// NewDiscrete creates a discrete attribute with the given declared values.
func NewDiscrete(name string, values ...string) Attribute {
	return Attribute{Name: name, Kind: Discrete, Values: values}
}

// NewOther creates an attribute that is neither continuous nor discrete.
func NewOther(name string) Attribute {
	return Attribute{Name: name, Kind: Other}
}

// IsContinuous returns true for continuous attributes.
func (a Attribute) IsContinuous() bool {
	return a.Kind == Continuous
}

// Value returns the string representation of the given stored value.
func (a Attribute) Value(v float64) string {
	switch a.Kind {
	case Discrete:
		i := int(v)
		if v != v || i < 0 || i >= len(a.Values) {
			return "?"
		}
		return a.Values[i]
	case Continuous, Other:
		if v != v {
			return "?"
		}
		return fmt.Sprintf("%g", v)
	}
	return "?"
}

// Role defines where the values of an attribute are stored within a table.
type Role int

const (
	// Feature is stored in the X matrix.
	Feature Role = iota + 1
	// Target is stored in the Y column.
	Target
	// Meta is stored in the M matrix.
	Meta
)

// Domain is the schema of a table.
type Domain struct {
	Attributes []Attribute
	Class      *Attribute
	Metas      []Attribute
}

// NewDomain creates a new domain with the given features and optional class attribute.
func NewDomain(attributes []Attribute, class *Attribute, metas ...Attribute) Domain {
	return Domain{
		Attributes: attributes,
		Class:      class,
		Metas:      metas,
	}
}

// Variables returns the features followed by the class attribute if there is one.
func (d Domain) Variables() []Attribute {
	vv := make([]Attribute, 0, len(d.Attributes)+1)
	vv = append(vv, d.Attributes...)
	if d.Class != nil {
		vv = append(vv, *d.Class)
	}
	return vv
}

// Continuous returns the continuous features in domain order.
func (d Domain) Continuous() []Attribute {
	cc := make([]Attribute, 0)
	for _, a := range d.Attributes {
		if a.IsContinuous() {
			cc = append(cc, a)
		}
	}
	return cc
}

// Index resolves the role and the position of the attribute with the given name.
func (d Domain) Index(name string) (Role, int, error) {
	for i, a := range d.Attributes {
		if a.Name == name {
			return Feature, i, nil
		}
	}
	if d.Class != nil && d.Class.Name == name {
		return Target, 0, nil
	}
	for i, a := range d.Metas {
		if a.Name == name {
			return Meta, i, nil
		}
	}
	return 0, 0, fmt.Errorf("'%s' not in domain: %w", name, ErrUnknownAttribute)
}

// Attribute returns the attribute with the given name.
func (d Domain) Attribute(name string) (Attribute, error) {
	role, i, err := d.Index(name)
	if err != nil {
		return Attribute{}, err
	}
	switch role {
	case Feature:
		return d.Attributes[i], nil
	case Target:
		return *d.Class, nil
	case Meta:
		return d.Metas[i], nil
	}
	return Attribute{}, fmt.Errorf("'%s' has no role: %w", name, ErrUnknownAttribute)
}
