package data

import (
	"fmt"
)

// Project builds a two feature table out of the given attributes, keeping the class attribute of the source.
// Columns are read from whichever role holds them in the source table.
func Project(t *Table, attrX, attrY string) (*Table, error) {
	if t == nil {
		return nil, fmt.Errorf("no table to project: %w", ErrShape)
	}

	attributes := make([]Attribute, 0, 2)
	cols := make([][]float64, 0, 2)
	for _, name := range []string{attrX, attrY} {
		attr, err := t.Domain.Attribute(name)
		if err != nil {
			return nil, fmt.Errorf("could not project '%s': %w", name, err)
		}
		col, err := t.Column(name)
		if err != nil {
			return nil, fmt.Errorf("could not read column '%s': %w", name, err)
		}
		attributes = append(attributes, attr)
		cols = append(cols, col)
	}

	x := make([][]float64, t.Len())
	for i := range x {
		x[i] = []float64{cols[0][i], cols[1][i]}
	}

	var class *Attribute
	if t.Domain.Class != nil {
		c := *t.Domain.Class
		class = &c
	}

	return NewTable(NewDomain(attributes, class), x, t.Classes(), nil)
}
