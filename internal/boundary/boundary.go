// Package boundary fits a learner on a two feature table and derives the decision line
// together with the class that lies on each side of it.
package boundary

import (
	"errors"
	"fmt"
	"math"

	"github.com/drakos74/polyclass/internal/data"
	"github.com/drakos74/polyclass/internal/learner"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/floats"
)

// Samples is the number of points the decision line is evaluated at.
const Samples = 50

// ErrDegenerateBoundary is returned when the boundary cannot be expressed as y(x).
var ErrDegenerateBoundary = errors.New("degenerate boundary")

// Point is an x,y pair in feature space.
type Point [2]float64

// Result holds everything derived from one fit.
type Result struct {
	Model learner.Model
	// Line is empty if the model does not report a linear boundary.
	Line []Point
	// Above and Below are the class value indexes on each side of the line.
	Above int
	Below int
}

// HasLine returns true if a decision line was computed.
func (r Result) HasLine() bool {
	return len(r.Line) > 0
}

// Fit fits the learner on the projected table and computes the boundary over [xMin, xMax].
func Fit(l learner.Learner, projected *data.Table, xMin, xMax float64) (Result, error) {
	model, err := l.Fit(projected)
	if err != nil {
		return Result{}, fmt.Errorf("could not fit '%s': %w", l.Name(), err)
	}

	result := Result{
		Model: model,
		Above: 0,
		Below: 1,
	}

	lb, ok := model.(learner.LinearBoundary)
	if !ok {
		log.Debug().Str("learner", l.Name()).Msg("no linear boundary")
		return result, nil
	}

	theta0, theta1, intercept := lb.Coefficients()
	line, err := Line(theta0, theta1, intercept, xMin, xMax, Samples)
	if err != nil {
		return Result{}, err
	}
	result.Line = line

	above, below, err := Sides(model, line)
	if err != nil {
		return Result{}, err
	}
	result.Above = above
	result.Below = below

	log.Debug().
		Str("learner", l.Name()).
		Float64("theta0", theta0).
		Float64("theta1", theta1).
		Float64("intercept", intercept).
		Int("above", above).
		Int("below", below).
		Msg("computed boundary")
	return result, nil
}

// Line evaluates theta0*x + theta1*y + intercept = 0 for y at n evenly spaced x in [xMin, xMax].
func Line(theta0, theta1, intercept, xMin, xMax float64, n int) ([]Point, error) {
	if theta1 == 0 {
		return nil, fmt.Errorf("y coefficient is zero: %w", ErrDegenerateBoundary)
	}
	if n < 2 {
		return nil, fmt.Errorf("need at least 2 samples, got %d: %w", n, ErrDegenerateBoundary)
	}
	xs := floats.Span(make([]float64, n), xMin, xMax)
	line := make([]Point, n)
	for i, x := range xs {
		y := -(math.Log(1) + theta0*x + intercept) / theta1
		line[i] = Point{x, y}
	}
	return line, nil
}

// Sides asks the model one unit above the first point of the line.
// The predicted class is taken to be above the line, the other one below it.
func Sides(model learner.Model, line []Point) (above, below int, err error) {
	if len(line) == 0 {
		return 0, 1, nil
	}
	point := []float64{line[0][0], line[0][1] + 1}
	c, err := model.Predict(point)
	if err != nil {
		return 0, 0, fmt.Errorf("could not predict %v: %w", point, err)
	}
	if c == 1 {
		return 1, 0, nil
	}
	return 0, 1, nil
}
