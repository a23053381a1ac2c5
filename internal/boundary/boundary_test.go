package boundary

import (
	"testing"

	"github.com/drakos74/polyclass/internal/data"
	"github.com/drakos74/polyclass/internal/learner"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
}

type fixedModel struct {
	class int
	asked []float64
}

func (m *fixedModel) Predict(x []float64) (int, error) {
	m.asked = x
	return m.class, nil
}

type fixedLearner struct {
	model learner.Model
}

func (l fixedLearner) Name() string { return "fixed" }

func (l fixedLearner) Fit(t *data.Table) (learner.Model, error) {
	return l.model, nil
}

func testTable(t *testing.T) *data.Table {
	class := data.NewDiscrete("class", "A", "B")
	table, err := data.NewTable(data.NewDomain([]data.Attribute{
		data.NewContinuous("x"),
		data.NewContinuous("y"),
	}, &class), [][]float64{{0, 1}, {1, 0}, {5, 6}, {6, 5}}, []float64{0, 0, 1, 1}, nil)
	require.NoError(t, err)
	return table
}

func TestLine(t *testing.T) {
	line, err := Line(2, -1, 0, 0, 10, Samples)
	require.NoError(t, err)
	require.Len(t, line, Samples)

	assert.Equal(t, 0.0, line[0][0])
	assert.Equal(t, 10.0, line[Samples-1][0])
	for _, p := range line {
		assert.InDelta(t, 2*p[0], p[1], 1e-9)
	}
}

func TestLine_Degenerate(t *testing.T) {

	type test struct {
		theta1  float64
		samples int
	}

	tests := map[string]test{
		"zero-theta1": {
			theta1:  0,
			samples: Samples,
		},
		"single-sample": {
			theta1:  1,
			samples: 1,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Line(1, tt.theta1, 0, 0, 1, tt.samples)
			assert.ErrorIs(t, err, ErrDegenerateBoundary)
		})
	}
}

func TestSides(t *testing.T) {
	line := []Point{{1, 2}, {2, 4}}

	model := &fixedModel{class: 1}
	above, below, err := Sides(model, line)
	require.NoError(t, err)
	assert.Equal(t, 1, above)
	assert.Equal(t, 0, below)
	assert.Equal(t, []float64{1, 3}, model.asked)

	model = &fixedModel{class: 0}
	above, below, err = Sides(model, line)
	require.NoError(t, err)
	assert.Equal(t, 0, above)
	assert.Equal(t, 1, below)
}

func TestFit_Linear(t *testing.T) {
	model := &learner.LogisticRegression{
		Theta:     []float64{2, -1},
		Intercept: 0,
		Negative:  0,
		Positive:  1,
	}

	result, err := Fit(fixedLearner{model: model}, testTable(t), 0, 10)
	require.NoError(t, err)

	require.True(t, result.HasLine())
	for _, p := range result.Line {
		assert.InDelta(t, 2*p[0], p[1], 1e-9)
	}
	// above y = 2x the model predicts the negative class
	assert.Equal(t, 0, result.Above)
	assert.Equal(t, 1, result.Below)
}

func TestFit_NoBoundary(t *testing.T) {
	result, err := Fit(fixedLearner{model: &fixedModel{class: 1}}, testTable(t), 0, 10)
	require.NoError(t, err)

	assert.False(t, result.HasLine())
	assert.Equal(t, 0, result.Above)
	assert.Equal(t, 1, result.Below)
}

func TestFit_Degenerate(t *testing.T) {
	model := &learner.LogisticRegression{
		Theta:    []float64{2, 0},
		Positive: 1,
	}
	_, err := Fit(fixedLearner{model: model}, testTable(t), 0, 10)
	assert.ErrorIs(t, err, ErrDegenerateBoundary)
}

func TestFit_LogisticRegression(t *testing.T) {
	result, err := Fit(learner.NewLogisticRegression(), testTable(t), 0, 6)
	require.NoError(t, err)

	require.True(t, result.HasLine())
	// class B sits at larger y, so it is above the line
	assert.Equal(t, 1, result.Above)
	assert.Equal(t, 0, result.Below)
}

func TestFit_Error(t *testing.T) {
	class := data.NewDiscrete("class", "A", "B")
	table, err := data.NewTable(data.NewDomain([]data.Attribute{
		data.NewContinuous("x"),
		data.NewContinuous("y"),
	}, &class), [][]float64{{0, 1}}, []float64{0}, nil)
	require.NoError(t, err)

	_, err = Fit(learner.NewLogisticRegression(), table, 0, 1)
	assert.ErrorIs(t, err, learner.ErrSingleClass)
}
