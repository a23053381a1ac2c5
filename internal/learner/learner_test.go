package learner

import (
	"math"
	"testing"

	"github.com/drakos74/polyclass/internal/data"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
}

// testClusters creates two well separated clusters, class A around (0,0) and class B around (10,10).
func testClusters(t *testing.T, n int) *data.Table {
	class := data.NewDiscrete("class", "A", "B")
	domain := data.NewDomain([]data.Attribute{
		data.NewContinuous("x"),
		data.NewContinuous("y"),
	}, &class)
	x := make([][]float64, 0, 2*n)
	y := make([]float64, 0, 2*n)
	for i := 0; i < n; i++ {
		d := float64(i%5) * 0.2
		x = append(x, []float64{d, 1 - d})
		y = append(y, 0)
		x = append(x, []float64{10 - d, 9 + d})
		y = append(y, 1)
	}
	table, err := data.NewTable(domain, x, y, nil)
	require.NoError(t, err)
	return table
}

func TestLearners_Separable(t *testing.T) {

	type test struct {
		learner Learner
		linear  bool
	}

	tests := map[string]test{
		"logreg": {
			learner: NewLogisticRegression(),
			linear:  true,
		},
		"forest": {
			learner: NewRandomForest(10),
		},
		"knn": {
			learner: NewKNN(3),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			model, err := tt.learner.Fit(testClusters(t, 10))
			require.NoError(t, err)

			c, err := model.Predict([]float64{0.5, 0.5})
			require.NoError(t, err)
			assert.Equal(t, 0, c)

			c, err = model.Predict([]float64{9.5, 9.5})
			require.NoError(t, err)
			assert.Equal(t, 1, c)

			_, ok := model.(LinearBoundary)
			assert.Equal(t, tt.linear, ok)
		})
	}
}

func TestNeural(t *testing.T) {
	model, err := NewNeural(5).Fit(testClusters(t, 10))
	require.NoError(t, err)

	c, err := model.Predict([]float64{0.5, 0.5})
	require.NoError(t, err)
	assert.Contains(t, []int{0, 1}, c)

	_, ok := model.(LinearBoundary)
	assert.False(t, ok)

	_, err = model.Predict([]float64{0.5})
	assert.ErrorIs(t, err, ErrFeatures)
}

func TestLogisticRegression_Coefficients(t *testing.T) {
	model, err := NewLogisticRegression().Fit(testClusters(t, 10))
	require.NoError(t, err)

	lr, ok := model.(*LogisticRegression)
	require.True(t, ok)

	theta0, theta1, intercept := lr.Coefficients()
	// class B lies towards larger x and y
	assert.Greater(t, theta0, 0.0)
	assert.Greater(t, theta1, 0.0)
	assert.Less(t, intercept, 0.0)

	p, err := lr.Probability([]float64{5, 5})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, p, 0.25)
}

func TestLogisticRegression_Predict(t *testing.T) {
	model := &LogisticRegression{
		Theta:     []float64{2, -1},
		Intercept: 0,
		Negative:  0,
		Positive:  1,
	}

	// above the line y = 2x the linear term is negative
	c, err := model.Predict([]float64{1, 3})
	require.NoError(t, err)
	assert.Equal(t, 0, c)

	c, err = model.Predict([]float64{1, 1})
	require.NoError(t, err)
	assert.Equal(t, 1, c)

	theta0, theta1, intercept := model.Coefficients()
	assert.Equal(t, 2.0, theta0)
	assert.Equal(t, -1.0, theta1)
	assert.Equal(t, 0.0, intercept)
}

func TestFit_Errors(t *testing.T) {

	class := data.NewDiscrete("class", "A", "B")
	domain := data.NewDomain([]data.Attribute{
		data.NewContinuous("x"),
		data.NewContinuous("y"),
	}, &class)

	single, err := data.NewTable(domain, [][]float64{{1, 2}, {2, 3}}, []float64{1, 1}, nil)
	require.NoError(t, err)

	missing, err := data.NewTable(domain, [][]float64{{1, 2}, {2, 3}}, []float64{math.NaN(), math.NaN()}, nil)
	require.NoError(t, err)

	noClass, err := data.NewTable(data.NewDomain(domain.Attributes, nil), [][]float64{{1, 2}}, nil, nil)
	require.NoError(t, err)

	type test struct {
		table *data.Table
		err   error
	}

	tests := map[string]test{
		"single-class": {
			table: single,
			err:   ErrSingleClass,
		},
		"missing-class": {
			table: missing,
			err:   ErrEmptyData,
		},
		"no-class": {
			table: noClass,
			err:   ErrNoClass,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			for _, n := range Names() {
				l, err := Lookup(n)
				require.NoError(t, err)
				_, err = l.Fit(tt.table)
				assert.ErrorIs(t, err, tt.err, n)
			}
		})
	}
}

func TestPrepare_Impute(t *testing.T) {
	class := data.NewDiscrete("class", "A", "B")
	domain := data.NewDomain([]data.Attribute{
		data.NewContinuous("x"),
		data.NewContinuous("y"),
	}, &class)
	table, err := data.NewTable(domain, [][]float64{
		{1, math.NaN()},
		{3, 4},
		{5, 6},
		{7, 8},
	}, []float64{0, 1, math.NaN(), 1}, nil)
	require.NoError(t, err)

	s, err := prepare(table)
	require.NoError(t, err)

	assert.Len(t, s.x, 3)
	assert.Equal(t, []int{0, 1, 1}, s.y)
	assert.Equal(t, 6.0, s.x[0][1])
	// the source table is left untouched
	assert.True(t, math.IsNaN(table.X[0][1]))
}

func TestLookup(t *testing.T) {
	l, err := Lookup(LogRegName)
	require.NoError(t, err)
	assert.Equal(t, LogRegName, l.Name())

	_, err = Lookup("svm")
	assert.ErrorIs(t, err, ErrUnknownLearner)

	assert.Equal(t, []string{ForestName, KNNName, LogRegName, NeuralName}, Names())
	assert.Equal(t, LogRegName, Default().Name())
}
