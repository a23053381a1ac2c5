package learner

import (
	"errors"
	"fmt"
	"sort"

	"github.com/drakos74/polyclass/internal/data"
)

var (
	// ErrEmptyData is returned when there is nothing left to fit after preprocessing.
	ErrEmptyData = errors.New("no data to fit")
	// ErrSingleClass is returned when the data holds less than two observed classes.
	ErrSingleClass = errors.New("data must contain at least two classes")
	// ErrNoClass is returned for tables without a discrete class attribute.
	ErrNoClass = errors.New("no discrete class attribute")
	// ErrFeatures is returned when a model is asked to predict with the wrong number of features.
	ErrFeatures = errors.New("feature count mismatch")
	// ErrUnknownLearner is returned by Lookup for names that are not registered.
	ErrUnknownLearner = errors.New("unknown learner")
)

// Model is a fitted classifier.
type Model interface {
	// Predict returns the index of the predicted class value for the given features.
	Predict(x []float64) (int, error)
}

// Learner produces a fitted model out of a table.
type Learner interface {
	Name() string
	Fit(t *data.Table) (Model, error)
}

// LinearBoundary is implemented by models that can report a linear decision boundary
// theta0*x + theta1*y + intercept = 0 over their two features.
type LinearBoundary interface {
	Coefficients() (theta0, theta1, intercept float64)
}

// Constructor creates a learner with its default settings.
type Constructor func() Learner

var registry = map[string]Constructor{
	LogRegName: func() Learner { return NewLogisticRegression() },
	ForestName: func() Learner { return NewRandomForest(DefaultTrees) },
	KNNName:    func() Learner { return NewKNN(DefaultNeighbours) },
	NeuralName: func() Learner { return NewNeural(DefaultEpochs) },
}

// Default returns the learner used when none is provided.
func Default() Learner {
	return NewLogisticRegression()
}

// Lookup creates the learner registered under the given name.
func Lookup(name string) (Learner, error) {
	if c, ok := registry[name]; ok {
		return c(), nil
	}
	return nil, fmt.Errorf("'%s' not in %v: %w", name, Names(), ErrUnknownLearner)
}

// Names returns the registered learner names.
func Names() []string {
	nn := make([]string, 0, len(registry))
	for n := range registry {
		nn = append(nn, n)
	}
	sort.Strings(nn)
	return nn
}
