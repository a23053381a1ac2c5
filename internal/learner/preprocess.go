package learner

import (
	"fmt"
	"math"

	"github.com/drakos74/polyclass/internal/data"
)

// sample is the numeric view of a table a model is fitted on.
type sample struct {
	x       [][]float64
	y       []int
	classes int
	// observed counts the rows per class.
	observed map[int]int
}

// prepare drops rows with a missing class and imputes missing feature values with the column mean.
func prepare(t *data.Table) (*sample, error) {
	if t == nil || t.Domain.Class == nil || t.Domain.Class.Kind != data.Discrete {
		return nil, ErrNoClass
	}

	nf := len(t.Domain.Attributes)
	sums := make([]float64, nf)
	counts := make([]int, nf)

	s := &sample{
		x:        make([][]float64, 0, t.Len()),
		y:        make([]int, 0, t.Len()),
		classes:  len(t.Domain.Class.Values),
		observed: make(map[int]int),
	}
	for i, row := range t.X {
		c := t.Y[i]
		if math.IsNaN(c) {
			continue
		}
		r := make([]float64, nf)
		copy(r, row)
		for j, v := range r {
			if !math.IsNaN(v) {
				sums[j] += v
				counts[j]++
			}
		}
		s.x = append(s.x, r)
		s.y = append(s.y, int(c))
		s.observed[int(c)]++
	}

	if len(s.x) == 0 {
		return nil, fmt.Errorf("%d rows without class: %w", t.Len(), ErrEmptyData)
	}

	for j := 0; j < nf; j++ {
		var mean float64
		if counts[j] > 0 {
			mean = sums[j] / float64(counts[j])
		}
		for _, r := range s.x {
			if math.IsNaN(r[j]) {
				r[j] = mean
			}
		}
	}
	return s, nil
}

// binary checks there are two observed classes and returns them in order.
func (s *sample) binary() (int, int, error) {
	if len(s.observed) < 2 {
		return 0, 0, fmt.Errorf("observed %d classes: %w", len(s.observed), ErrSingleClass)
	}
	first, second := -1, -1
	for c := 0; c < s.classes; c++ {
		if s.observed[c] == 0 {
			continue
		}
		if first < 0 {
			first = c
		} else if second < 0 {
			second = c
		}
	}
	return first, second, nil
}

func checkFeatures(x []float64, n int) error {
	if len(x) != n {
		return fmt.Errorf("got %d features instead of %d: %w", len(x), n, ErrFeatures)
	}
	return nil
}
