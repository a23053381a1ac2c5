package learner

import (
	"errors"
	"fmt"
	"math"

	"github.com/drakos74/polyclass/internal/data"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"
)

const (
	// LogRegName is the name of the logistic regression learner.
	LogRegName = "logreg"
	// DefaultC is the inverse of the regularisation strength.
	DefaultC = 1.0
)

// ErrNotConverged is returned when the optimiser could not produce a usable solution.
var ErrNotConverged = errors.New("fit did not converge")

// LogisticRegressionLearner fits an L2 regularised binary logistic regression.
type LogisticRegressionLearner struct {
	C float64
}

// NewLogisticRegression creates a logistic regression learner with the default regularisation.
func NewLogisticRegression() *LogisticRegressionLearner {
	return &LogisticRegressionLearner{C: DefaultC}
}

func (l *LogisticRegressionLearner) Name() string {
	return LogRegName
}

// Fit minimises the regularised log loss with BFGS.
// The intercept is not regularised.
func (l *LogisticRegressionLearner) Fit(t *data.Table) (Model, error) {
	s, err := prepare(t)
	if err != nil {
		return nil, err
	}
	negative, positive, err := s.binary()
	if err != nil {
		return nil, err
	}

	nf := len(t.Domain.Attributes)
	yy := make([]float64, len(s.y))
	for i, c := range s.y {
		if c == positive {
			yy[i] = 1
		}
	}

	c := l.C
	if c <= 0 {
		c = DefaultC
	}

	problem := optimize.Problem{
		Func: func(w []float64) float64 {
			var loss float64
			for i, x := range s.x {
				z := linear(w, x)
				loss += softplus(z) - yy[i]*z
			}
			return loss + floats.Dot(w[:nf], w[:nf])/(2*c)
		},
		Grad: func(grad, w []float64) {
			for j := range grad {
				grad[j] = 0
			}
			for i, x := range s.x {
				d := sigmoid(linear(w, x)) - yy[i]
				for j, v := range x {
					grad[j] += d * v
				}
				grad[nf] += d
			}
			for j := 0; j < nf; j++ {
				grad[j] += w[j] / c
			}
		},
	}

	result, err := optimize.Minimize(problem, make([]float64, nf+1), nil, &optimize.BFGS{})
	if result == nil || !finite(result.X) {
		return nil, fmt.Errorf("could not fit logistic regression on %d rows: %v: %w", len(s.x), err, ErrNotConverged)
	}
	if err != nil {
		log.Debug().
			Err(err).
			Str("status", result.Status.String()).
			Floats64("weights", result.X).
			Msg("optimiser stopped early")
	}

	return &LogisticRegression{
		Theta:     append([]float64{}, result.X[:nf]...),
		Intercept: result.X[nf],
		Negative:  negative,
		Positive:  positive,
	}, nil
}

// LogisticRegression is a fitted binary logistic regression model.
// The probability of the positive class is sigmoid(theta.x + intercept).
type LogisticRegression struct {
	Theta     []float64
	Intercept float64
	Negative  int
	Positive  int
}

// Probability returns the probability of the positive class.
func (m *LogisticRegression) Probability(x []float64) (float64, error) {
	if err := checkFeatures(x, len(m.Theta)); err != nil {
		return 0, err
	}
	return sigmoid(floats.Dot(m.Theta, x) + m.Intercept), nil
}

func (m *LogisticRegression) Predict(x []float64) (int, error) {
	p, err := m.Probability(x)
	if err != nil {
		return 0, err
	}
	if p >= 0.5 {
		return m.Positive, nil
	}
	return m.Negative, nil
}

// Coefficients reports the weights of the first two features and the intercept.
func (m *LogisticRegression) Coefficients() (theta0, theta1, intercept float64) {
	if len(m.Theta) > 0 {
		theta0 = m.Theta[0]
	}
	if len(m.Theta) > 1 {
		theta1 = m.Theta[1]
	}
	return theta0, theta1, m.Intercept
}

func linear(w, x []float64) float64 {
	z := w[len(x)]
	for j, v := range x {
		z += w[j] * v
	}
	return z
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

func softplus(z float64) float64 {
	if z > 0 {
		return z + math.Log1p(math.Exp(-z))
	}
	return math.Log1p(math.Exp(z))
}

func finite(xx []float64) bool {
	for _, x := range xx {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
