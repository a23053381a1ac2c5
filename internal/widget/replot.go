package widget

import (
	"fmt"
	"math"

	"github.com/drakos74/polyclass/internal/boundary"
	"github.com/drakos74/polyclass/internal/chart"
	"github.com/drakos74/polyclass/internal/data"
	"github.com/drakos74/polyclass/internal/metrics"
	"github.com/rs/zerolog/log"
)

const (
	// padding is the share of the x range added on each side of the axis.
	padding = 0.03
	// LineSeries is the id of the boundary series.
	LineSeries = "boundary"
)

// replot fits the learner and rebuilds the whole chart.
// Nothing is assigned to the widget unless every step succeeds.
func (w *Widget) replot(projected *data.Table) error {
	minX, maxX, err := w.data.Range(w.settings.AttrX)
	if err != nil {
		w.fail(err)
		metrics.Observer.Refresh(w.learner.Name(), false)
		return err
	}
	diff := maxX - minX
	minX = minX - padding*diff
	maxX = maxX + padding*diff

	result, err := boundary.Fit(w.learner, projected, minX, maxX)
	if err != nil {
		w.fail(err)
		metrics.Observer.Refresh(w.learner.Name(), false)
		return err
	}

	series := make([]chart.Series, 0, 3)
	if result.HasLine() {
		series = append(series, lineSeries(result.Line))
	}
	// the series above the line comes first, its color fills the region above
	for _, c := range []int{result.Above, result.Below} {
		series = append(series, classSeries(projected, c))
	}

	w.scatter.Chart(series,
		chart.WithXAxis(w.settings.AttrX, minX, maxX),
		chart.WithYTitle(w.settings.AttrY),
		chart.WithRedraw(chart.PaintFunction),
		chart.WithTooltip("", tooltip(w.settings.AttrX, w.settings.AttrY), false),
	)
	w.scatter.Redraw()

	w.projected = projected
	w.result = result
	w.state = Ready
	metrics.Observer.Refresh(w.learner.Name(), true)

	log.Debug().
		Str("widget", w.ID).
		Str("learner", w.learner.Name()).
		Bool("boundary", result.HasLine()).
		Int("series", len(series)).
		Msg("replot")
	return nil
}

func tooltip(attrX, attrY string) string {
	return fmt.Sprintf("<strong>%s:</strong> {point.x:.2f} <br/>"+
		"<strong>%s:</strong> {point.y:.2f}", attrX, attrY)
}

func lineSeries(line []boundary.Point) chart.Series {
	points := make([][2]float64, len(line))
	for i, p := range line {
		points[i] = [2]float64(p)
	}
	return chart.Series{
		ID:                  LineSeries,
		Type:                chart.Line,
		Data:                points,
		ShowInLegend:        chart.Bool(false),
		Marker:              &chart.Marker{Enabled: false},
		EnableMouseTracking: chart.Bool(false),
	}
}

// classSeries holds the points of the given class that have both coordinates.
func classSeries(projected *data.Table, class int) chart.Series {
	name := projected.Domain.Class.Value(float64(class))
	points := make([][2]float64, 0)
	for i, row := range projected.X {
		c := projected.Y[i]
		if math.IsNaN(c) || int(c) != class {
			continue
		}
		if math.IsNaN(row[0]) || math.IsNaN(row[1]) {
			continue
		}
		points = append(points, [2]float64{row[0], row[1]})
	}
	return chart.Series{
		ID:           name,
		Name:         name,
		Type:         chart.Scatter,
		Data:         points,
		ShowInLegend: chart.Bool(false),
		ZIndex:       10,
	}
}
