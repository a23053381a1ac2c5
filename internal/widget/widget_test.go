package widget

import (
	"math"
	"testing"

	"github.com/drakos74/polyclass/internal/boundary"
	"github.com/drakos74/polyclass/internal/chart"
	"github.com/drakos74/polyclass/internal/data"
	"github.com/drakos74/polyclass/internal/learner"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
}

func testTable(t *testing.T, attributes []data.Attribute, class *data.Attribute, rows int) *data.Table {
	x := make([][]float64, rows)
	var y []float64
	if class != nil {
		y = make([]float64, rows)
	}
	for i := 0; i < rows; i++ {
		row := make([]float64, len(attributes))
		for j := range attributes {
			row[j] = float64(i * (j + 1))
		}
		if len(attributes) > 1 {
			// even rows above y = 2x, odd rows below it
			if i%2 == 0 {
				row[1] += 3
			} else {
				row[1] -= 3
			}
		}
		x[i] = row
		if class != nil {
			y[i] = float64(i % 2)
		}
	}
	table, err := data.NewTable(data.NewDomain(attributes, class), x, y, nil)
	require.NoError(t, err)
	return table
}

func xyzTable(t *testing.T) *data.Table {
	class := data.NewDiscrete("class", "A", "B")
	return testTable(t, []data.Attribute{
		data.NewContinuous("x"),
		data.NewContinuous("y"),
		data.NewContinuous("z"),
	}, &class, 10)
}

type fixedModel struct {
	class  int
	theta0 float64
	theta1 float64
}

func (m fixedModel) Predict(x []float64) (int, error) {
	return m.class, nil
}

func (m fixedModel) Coefficients() (float64, float64, float64) {
	return m.theta0, m.theta1, 0
}

type fixedLearner struct {
	model learner.Model
}

func (l fixedLearner) Name() string { return "fixed" }

func (l fixedLearner) Fit(t *data.Table) (learner.Model, error) {
	return l.model, nil
}

func assertEmpty(t *testing.T, w *Widget) {
	assert.True(t, w.Chart().IsEmpty())
	assert.Equal(t, 0, w.SelectorX().Len())
	assert.Equal(t, 0, w.SelectorY().Len())
	assert.Equal(t, "", w.Settings().AttrX)
	assert.Equal(t, "", w.Settings().AttrY)
	assert.Nil(t, w.Projected())
}

func TestWidget_SetData_Invalid(t *testing.T) {

	abc := data.NewDiscrete("class", "A", "B", "C")
	ab := data.NewDiscrete("class", "A", "B")
	continuousClass := data.NewContinuous("class")

	type test struct {
		table   *data.Table
		state   State
		warning string
	}

	tests := map[string]test{
		"nil": {
			state: NoData,
		},
		"no-rows": {
			table: testTable(t, []data.Attribute{data.NewContinuous("x"), data.NewContinuous("y")}, &ab, 0),
			state: NoData,
		},
		"too-few-continuous": {
			table:   testTable(t, []data.Attribute{data.NewContinuous("x"), data.NewDiscrete("d", "a", "b")}, &ab, 5),
			state:   Empty,
			warning: MsgTooFewContinuous,
		},
		"no-class": {
			table:   testTable(t, []data.Attribute{data.NewContinuous("x"), data.NewContinuous("y")}, nil, 5),
			state:   Empty,
			warning: MsgNoClass,
		},
		"continuous-class": {
			table:   testTable(t, []data.Attribute{data.NewContinuous("x"), data.NewContinuous("y")}, &continuousClass, 5),
			state:   Empty,
			warning: MsgNoClass,
		},
		"too-many-classes": {
			table:   testTable(t, []data.Attribute{data.NewContinuous("x"), data.NewContinuous("y")}, &abc, 5),
			state:   Empty,
			warning: MsgTooManyClasses,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			w := New()
			// start from a valid state, so that the reset is visible
			require.NoError(t, w.SetData(xyzTable(t)))
			require.Equal(t, Ready, w.State())

			err := w.SetData(tt.table)
			require.NoError(t, err)

			assert.Equal(t, tt.state, w.State())
			assert.Equal(t, tt.warning, w.Warning(WarningValidation))
			if tt.warning == "" {
				assert.Empty(t, w.Warnings())
			} else {
				assert.Equal(t, []Warning{{ID: WarningValidation, Message: tt.warning}}, w.Warnings())
			}
			assertEmpty(t, w)
		})
	}
}

func TestWidget_SetData_Valid(t *testing.T) {
	w := New()

	abc := data.NewDiscrete("class", "A", "B", "C")
	require.NoError(t, w.SetData(testTable(t, []data.Attribute{data.NewContinuous("x"), data.NewContinuous("y")}, &abc, 5)))
	require.Equal(t, MsgTooManyClasses, w.Warning(WarningValidation))

	table := xyzTable(t)
	require.NoError(t, w.SetData(table))

	assert.Equal(t, Ready, w.State())
	assert.Empty(t, w.Warnings())
	assert.Equal(t, "x", w.Settings().AttrX)
	assert.Equal(t, "y", w.Settings().AttrY)
	assert.Equal(t, []string{"x", "y", "z"}, w.SelectorX().Names())
	assert.Equal(t, []string{"x", "y", "z"}, w.SelectorY().Names())
	assert.Equal(t, "continuous", w.SelectorX().Items()[0].Icon)

	projected := w.Projected()
	require.NotNil(t, projected)
	require.Len(t, projected.Domain.Attributes, 2)
	assert.Equal(t, "x", projected.Domain.Attributes[0].Name)
	assert.Equal(t, "y", projected.Domain.Attributes[1].Name)
	assert.Equal(t, table.Domain.Class, projected.Domain.Class)
	assert.Equal(t, table.Len(), projected.Len())
}

func TestWidget_DomainOrder(t *testing.T) {
	class := data.NewDiscrete("class", "A", "B")
	table := testTable(t, []data.Attribute{
		data.NewDiscrete("d", "a", "b"),
		data.NewContinuous("b"),
		data.NewOther("o"),
		data.NewContinuous("a"),
	}, &class, 10)
	// the discrete column must hold valid indexes
	for _, row := range table.X {
		row[0] = 0
	}

	w := New()
	require.NoError(t, w.SetData(table))
	assert.Equal(t, []string{"b", "a"}, w.SelectorX().Names())
	assert.Equal(t, "b", w.Settings().AttrX)
	assert.Equal(t, "a", w.Settings().AttrY)
}

func TestWidget_Replot(t *testing.T) {
	w := New()
	table := xyzTable(t)
	require.NoError(t, w.SetData(table))

	o := w.Chart().Options()
	require.Len(t, o.Series, 3)

	line := o.Series[0]
	assert.Equal(t, LineSeries, line.ID)
	assert.Equal(t, chart.Line, line.Type)
	assert.Len(t, line.Data, boundary.Samples)
	assert.False(t, *line.ShowInLegend)
	assert.False(t, line.Marker.Enabled)
	assert.False(t, *line.EnableMouseTracking)

	classes := make(map[string]bool)
	points := 0
	for _, sr := range o.Series[1:] {
		assert.Equal(t, chart.Scatter, sr.Type)
		assert.False(t, *sr.ShowInLegend)
		assert.Equal(t, 10.0, sr.ZIndex)
		classes[sr.Name] = true
		points += len(sr.Data)
	}
	assert.Equal(t, 10, points)
	assert.Equal(t, map[string]bool{"A": true, "B": true}, classes)

	// x range is padded by 3% on each side
	assert.Equal(t, "x", o.XAxis.Title.Text)
	assert.Equal(t, "y", o.YAxis.Title.Text)
	assert.InDelta(t, -0.27, *o.XAxis.Min, 1e-9)
	assert.InDelta(t, 9.27, *o.XAxis.Max, 1e-9)
	assert.InDelta(t, -0.27, line.Data[0][0], 1e-9)
	assert.InDelta(t, 9.27, line.Data[len(line.Data)-1][0], 1e-9)

	assert.Equal(t, "", o.Tooltip.HeaderFormat)
	assert.Equal(t, "<strong>x:</strong> {point.x:.2f} <br/><strong>y:</strong> {point.y:.2f}", o.Tooltip.PointFormat)
	assert.Equal(t, chart.PaintFunction, o.Chart.Events.Redraw)
	assert.Equal(t, 0.0, *o.XAxis.GridLineWidth)

	// the redraw fired the shading hook
	assert.Len(t, w.Chart().Regions(), 2)
	assert.Equal(t, 1, w.Chart().Redraws())

	tip, err := w.Chart().Tooltip(1, 0)
	require.NoError(t, err)
	assert.Contains(t, tip, "<strong>x:</strong>")
}

func TestWidget_Sides(t *testing.T) {

	type test struct {
		predict int
		above   string
		below   string
	}

	tests := map[string]test{
		"B-above": {
			predict: 1,
			above:   "B",
			below:   "A",
		},
		"A-above": {
			predict: 0,
			above:   "A",
			below:   "B",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			w := New()
			require.NoError(t, w.SetLearner(fixedLearner{model: fixedModel{class: tt.predict, theta0: 2, theta1: -1}}))
			require.NoError(t, w.SetData(xyzTable(t)))

			o := w.Chart().Options()
			require.Len(t, o.Series, 3)
			assert.Equal(t, tt.above, o.Series[1].Name)
			assert.Equal(t, tt.below, o.Series[2].Name)

			above, ok := w.Chart().Region(chart.AbovePath)
			require.True(t, ok)
			assert.Equal(t, o.Series[1].Color, above.Fill)

			below, ok := w.Chart().Region(chart.BelowPath)
			require.True(t, ok)
			assert.Equal(t, o.Series[2].Color, below.Fill)

			for _, p := range o.Series[0].Data {
				assert.InDelta(t, 2*p[0], p[1], 1e-9)
			}
		})
	}
}

func TestWidget_Selectors(t *testing.T) {
	w := New()

	// without data the change is ignored
	require.NoError(t, w.SelectX("z"))
	assert.Equal(t, "", w.Settings().AttrX)

	require.NoError(t, w.SetData(xyzTable(t)))

	require.NoError(t, w.SelectX("z"))
	assert.Equal(t, "z", w.Settings().AttrX)
	assert.Equal(t, "z", w.Projected().Domain.Attributes[0].Name)
	assert.Equal(t, "z", w.Chart().Options().XAxis.Title.Text)
	first := w.Projected()

	require.NoError(t, w.SelectY("x"))
	assert.Equal(t, "x", w.Projected().Domain.Attributes[1].Name)
	assert.Equal(t, "x", w.Chart().Options().YAxis.Title.Text)

	err := w.SelectY("w")
	assert.ErrorIs(t, err, data.ErrUnknownAttribute)
	assert.Equal(t, "x", w.Settings().AttrY)

	// selecting the same pair again gives the same projection
	require.NoError(t, w.SelectY("y"))
	assert.Equal(t, first, w.Projected())
}

func TestWidget_SetLearner(t *testing.T) {
	w := New()
	require.NoError(t, w.SetLearner(learner.NewRandomForest(10)))
	assert.Equal(t, NoData, w.State())

	require.NoError(t, w.SetData(xyzTable(t)))
	assert.Equal(t, Ready, w.State())

	// no linear boundary, only the two point clouds
	o := w.Chart().Options()
	require.Len(t, o.Series, 2)
	assert.Equal(t, "A", o.Series[0].Name)
	assert.Equal(t, "B", o.Series[1].Name)
	assert.Empty(t, w.Chart().Regions())
	assert.False(t, w.Result().HasLine())

	require.NoError(t, w.SetLearner(nil))
	assert.Equal(t, learner.LogRegName, w.Learner().Name())
	assert.Len(t, w.Chart().Options().Series, 3)
}

func TestWidget_FitErrors(t *testing.T) {

	class := data.NewDiscrete("class", "A", "B")
	single := testTable(t, []data.Attribute{data.NewContinuous("x"), data.NewContinuous("y")}, &class, 6)
	for i := range single.Y {
		single.Y[i] = 0
	}

	type test struct {
		learner learner.Learner
		table   *data.Table
		err     error
	}

	tests := map[string]test{
		"single-class": {
			learner: learner.NewLogisticRegression(),
			table:   single,
			err:     learner.ErrSingleClass,
		},
		"degenerate-boundary": {
			learner: fixedLearner{model: fixedModel{theta0: 1, theta1: 0}},
			table:   xyzTable(t),
			err:     boundary.ErrDegenerateBoundary,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			w := New()
			require.NoError(t, w.SetLearner(tt.learner))

			err := w.SetData(tt.table)
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, Empty, w.State())
			assert.True(t, w.Chart().IsEmpty())
			assert.Nil(t, w.Projected())
			assert.Empty(t, w.Warnings())

			// the default learner recovers the widget unless the data is at fault
			err = w.SetLearner(nil)
			if tt.err == learner.ErrSingleClass {
				assert.ErrorIs(t, err, learner.ErrSingleClass)
				assert.Equal(t, Empty, w.State())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, Ready, w.State())
		})
	}
}

func TestWidget_MissingValues(t *testing.T) {
	table := xyzTable(t)
	table.X[0][1] = math.NaN()

	w := New()
	require.NoError(t, w.SetData(table))

	points := 0
	for _, sr := range w.Chart().Options().Series[1:] {
		points += len(sr.Data)
	}
	assert.Equal(t, 9, points)
}

func TestWidget_Settings(t *testing.T) {
	w := New()
	assert.Equal(t, DefaultSettings(), w.Settings())

	require.NoError(t, w.SetData(xyzTable(t)))
	require.NoError(t, w.Restore(Settings{LearnerName: "restored", AttrX: "z", AttrY: "x"}))
	assert.Equal(t, Settings{LearnerName: "restored", AttrX: "z", AttrY: "x"}, w.Settings())
	assert.Equal(t, "z", w.Projected().Domain.Attributes[0].Name)

	// attributes not in the dataset are ignored
	require.NoError(t, w.Restore(Settings{LearnerName: "restored", AttrX: "q", AttrY: "x"}))
	assert.Equal(t, "z", w.Settings().AttrX)

	b, err := w.Settings().Marshal()
	require.NoError(t, err)
	assert.JSONEq(t, `{"learner_name":"restored","attr_x":"z","attr_y":"x"}`, string(b))

	s, err := UnmarshalSettings([]byte(`{"attr_x":"a"}`))
	require.NoError(t, err)
	assert.Equal(t, Settings{LearnerName: DefaultLearnerName, AttrX: "a"}, s)

	_, err = UnmarshalSettings([]byte(`{`))
	assert.Error(t, err)
}

func TestSelector(t *testing.T) {
	s := NewSelector("X:")
	s.Add("a", "continuous")
	s.Add("b", "continuous")
	s.Add("a", "discrete")

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 1, s.Index("b"))
	assert.Equal(t, -1, s.Index("c"))

	name, err := s.ItemText(1)
	require.NoError(t, err)
	assert.Equal(t, "b", name)

	_, err = s.ItemText(2)
	assert.ErrorIs(t, err, ErrSelectorRange)

	s.Clear()
	assert.Equal(t, 0, s.Len())
}
