package data

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrShape is returned when the rows of a table do not match its domain.
	ErrShape = errors.New("invalid table shape")
)

// Table holds the rows of a dataset split by storage role.
// Discrete values are stored as indexes into the declared values of their attribute,
// missing values are NaN.
type Table struct {
	Domain Domain
	X      [][]float64
	Y      []float64
	M      [][]float64
}

// NewTable creates a new table and checks the shape of the given rows against the domain.
// y can be nil for a domain without class attribute, m can be nil for a domain without metas.
func NewTable(domain Domain, x [][]float64, y []float64, m [][]float64) (*Table, error) {
	for i, row := range x {
		if len(row) != len(domain.Attributes) {
			return nil, fmt.Errorf("row %d has %d values for %d attributes: %w", i, len(row), len(domain.Attributes), ErrShape)
		}
	}
	if domain.Class != nil && len(y) != len(x) {
		return nil, fmt.Errorf("%d class values for %d rows: %w", len(y), len(x), ErrShape)
	}
	if len(domain.Metas) > 0 {
		if len(m) != len(x) {
			return nil, fmt.Errorf("%d meta rows for %d rows: %w", len(m), len(x), ErrShape)
		}
		for i, row := range m {
			if len(row) != len(domain.Metas) {
				return nil, fmt.Errorf("meta row %d has %d values for %d metas: %w", i, len(row), len(domain.Metas), ErrShape)
			}
		}
	}
	return &Table{
		Domain: domain,
		X:      x,
		Y:      y,
		M:      m,
	}, nil
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.X)
}

// Column returns a copy of the values of the given attribute, regardless of the role it is stored in.
func (t *Table) Column(name string) ([]float64, error) {
	role, j, err := t.Domain.Index(name)
	if err != nil {
		return nil, err
	}
	col := make([]float64, t.Len())
	switch role {
	case Feature:
		for i, row := range t.X {
			col[i] = row[j]
		}
	case Target:
		copy(col, t.Y)
	case Meta:
		for i, row := range t.M {
			col[i] = row[j]
		}
	}
	return col, nil
}

// Classes returns the class values in row order.
func (t *Table) Classes() []float64 {
	yy := make([]float64, len(t.Y))
	copy(yy, t.Y)
	return yy
}

// Range returns the min and max of the non-missing values of the given attribute.
func (t *Table) Range(name string) (float64, float64, error) {
	col, err := t.Column(name)
	if err != nil {
		return 0, 0, err
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range col {
		if math.IsNaN(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo > hi {
		return 0, 0, fmt.Errorf("no values for '%s': %w", name, ErrShape)
	}
	return lo, hi, nil
}
