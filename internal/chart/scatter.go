// Package chart lays out a scatter chart in pixel space and runs hooks after every redraw,
// in the way an interactive charting widget would.
package chart

import (
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
)

const (
	// SelectionEvent is the name of the built-in selection handler.
	SelectionEvent = "selection"
	// NoData is shown by the empty chart.
	NoData = "No data to display"

	defaultWidth  = 600
	defaultHeight = 400

	marginLeft   = 60
	marginRight  = 20
	marginTop    = 20
	marginBottom = 50
)

var (
	// ErrNoSeries is returned when addressing a series the chart does not have.
	ErrNoSeries = errors.New("no such series")
	// ErrNoPoint is returned when addressing a point a series does not have.
	ErrNoPoint = errors.New("no such point")
)

// Palette is the default series color cycle.
var Palette = []string{
	"#7cb5ec", "#434348", "#90ed7d", "#f7a35c", "#8085e9",
	"#f15c80", "#e4d354", "#2b908f", "#f45b5b", "#91e8e1",
}

// Hook is called after the chart has been laid out.
type Hook func(s *Scatterplot)

// SelectionFunc receives the indexes of the selected points for every series.
type SelectionFunc func(selected [][]int)

// Pixel is a position on the chart, relative to the plot area for rendered points
// and absolute for region paths.
type Pixel struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rendered is the laid out state of one series.
type Rendered struct {
	Series Series
	Points []Pixel
}

// Extremes is the visible data range.
type Extremes struct {
	XMin, XMax float64
	YMin, YMax float64
}

// Scatterplot is a chart preconfigured for interactive scatter plots:
// zoom on both axes, rectangle and point selection and scatter as the default series type.
type Scatterplot struct {
	defaults Options
	options  Options
	empty    bool

	hooks      map[string]Hook
	onSelect   SelectionFunc
	regions    map[string]Region
	rendered   []Rendered
	extremes   Extremes
	zoom       *Extremes
	selected   map[int]map[int]bool
	redraws    int
	plotLeft   float64
	plotTop    float64
	plotWidth  float64
	plotHeight float64
}

// NewScatterplot creates a new scatter chart with the given options on top of its defaults.
func NewScatterplot(opts ...Option) *Scatterplot {
	defaults := Options{
		Chart: Chart{
			Type:   Scatter,
			Width:  defaultWidth,
			Height: defaultHeight,
		},
		Lang: Lang{NoData: NoData},
	}
	for _, opt := range append([]Option{WithZoom(), WithSelection(), WithCursor("move")}, opts...) {
		opt(&defaults)
	}
	s := &Scatterplot{
		defaults: defaults,
		hooks:    make(map[string]Hook),
		regions:  make(map[string]Region),
		selected: make(map[int]map[int]bool),
	}
	s.Define(PaintFunction, ShadeHook)
	s.Clear()
	return s
}

// Define registers a hook under the given name, to be referenced from the chart events.
func (s *Scatterplot) Define(name string, hook Hook) {
	s.hooks[name] = hook
}

// OnSelect registers the callback for selection changes.
func (s *Scatterplot) OnSelect(fn SelectionFunc) {
	s.onSelect = fn
}

// Chart replaces the chart content with the given series and options, on top of the defaults.
// Series without a color get one from the palette according to their index.
// Like the first render of an interactive chart, redraw hooks are not called.
func (s *Scatterplot) Chart(series []Series, opts ...Option) {
	options := copyOptions(s.defaults)
	for _, opt := range opts {
		opt(&options)
	}
	options.Series = make([]Series, len(series))
	for i, sr := range series {
		if sr.Color == "" {
			sr.Color = Palette[i%len(Palette)]
		}
		if sr.Type == "" {
			sr.Type = options.Chart.Type
		}
		sr.Data = append([][2]float64{}, sr.Data...)
		options.Series[i] = sr
	}
	s.options = options
	s.empty = len(series) == 0
	s.zoom = nil
	s.selected = make(map[int]map[int]bool)
	s.regions = make(map[string]Region)
	s.layout()
}

// Clear renders the empty chart.
func (s *Scatterplot) Clear() {
	s.Chart(nil)
}

// IsEmpty returns true if the chart holds no series.
func (s *Scatterplot) IsEmpty() bool {
	return s.empty
}

// Options returns a copy of the current option tree.
func (s *Scatterplot) Options() Options {
	return copyOptions(s.options)
}

// Redraw lays out the chart again and fires the redraw event.
func (s *Scatterplot) Redraw() {
	s.layout()
	s.redraws++
	name := s.options.Chart.Events.Redraw
	if name == "" {
		return
	}
	hook, ok := s.hooks[name]
	if !ok {
		log.Warn().Str("hook", name).Msg("redraw event references unknown hook")
		return
	}
	hook(s)
}

// Redraws returns how many times the chart has been redrawn.
func (s *Scatterplot) Redraws() int {
	return s.redraws
}

// Zoom sets the visible range and redraws the chart.
func (s *Scatterplot) Zoom(e Extremes) {
	s.zoom = &e
	s.Redraw()
}

// ResetZoom restores the range defined by the options and redraws the chart.
func (s *Scatterplot) ResetZoom() {
	s.zoom = nil
	s.Redraw()
}

// Extremes returns the visible data range.
func (s *Scatterplot) Extremes() Extremes {
	return s.extremes
}

// Rendered returns the laid out series.
func (s *Scatterplot) Rendered() []Rendered {
	return s.rendered
}

// PlotArea returns the offset and size of the plot area within the chart.
func (s *Scatterplot) PlotArea() (left, top, width, height float64) {
	return s.plotLeft, s.plotTop, s.plotWidth, s.plotHeight
}

// ToPixel maps a data point to a position relative to the plot area.
func (s *Scatterplot) ToPixel(x, y float64) Pixel {
	e := s.extremes
	return Pixel{
		X: (x - e.XMin) / (e.XMax - e.XMin) * s.plotWidth,
		Y: s.plotHeight - (y-e.YMin)/(e.YMax-e.YMin)*s.plotHeight,
	}
}

// FromPixel maps an absolute chart position back to data space.
func (s *Scatterplot) FromPixel(p Pixel) (float64, float64) {
	e := s.extremes
	x := e.XMin + (p.X-s.plotLeft)/s.plotWidth*(e.XMax-e.XMin)
	y := e.YMin + (s.plotHeight-(p.Y-s.plotTop))/s.plotHeight*(e.YMax-e.YMin)
	return x, y
}

// Point returns the data of the given point.
func (s *Scatterplot) Point(series, index int) ([2]float64, error) {
	if series < 0 || series >= len(s.options.Series) {
		return [2]float64{}, fmt.Errorf("series %d of %d: %w", series, len(s.options.Series), ErrNoSeries)
	}
	data := s.options.Series[series].Data
	if index < 0 || index >= len(data) {
		return [2]float64{}, fmt.Errorf("point %d of %d: %w", index, len(data), ErrNoPoint)
	}
	return data[index], nil
}

func (s *Scatterplot) layout() {
	width, height := s.options.Chart.Width, s.options.Chart.Height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	s.plotLeft = marginLeft
	s.plotTop = marginTop
	s.plotWidth = float64(width - marginLeft - marginRight)
	s.plotHeight = float64(height - marginTop - marginBottom)

	if s.zoom != nil {
		s.extremes = *s.zoom
	} else {
		s.extremes = s.dataExtremes()
	}

	s.rendered = make([]Rendered, len(s.options.Series))
	for i, sr := range s.options.Series {
		points := make([]Pixel, len(sr.Data))
		for j, d := range sr.Data {
			points[j] = s.ToPixel(d[0], d[1])
		}
		s.rendered[i] = Rendered{
			Series: sr,
			Points: points,
		}
	}
}

func (s *Scatterplot) dataExtremes() Extremes {
	e := Extremes{
		XMin: math.Inf(1), XMax: math.Inf(-1),
		YMin: math.Inf(1), YMax: math.Inf(-1),
	}
	for _, sr := range s.options.Series {
		for _, d := range sr.Data {
			e.XMin = math.Min(e.XMin, d[0])
			e.XMax = math.Max(e.XMax, d[0])
			e.YMin = math.Min(e.YMin, d[1])
			e.YMax = math.Max(e.YMax, d[1])
		}
	}
	if s.options.XAxis.Min != nil {
		e.XMin = *s.options.XAxis.Min
	}
	if s.options.XAxis.Max != nil {
		e.XMax = *s.options.XAxis.Max
	}
	if s.options.YAxis.Min != nil {
		e.YMin = *s.options.YAxis.Min
	}
	if s.options.YAxis.Max != nil {
		e.YMax = *s.options.YAxis.Max
	}
	e.XMin, e.XMax = span(e.XMin, e.XMax)
	e.YMin, e.YMax = span(e.YMin, e.YMax)
	return e
}

// span makes sure the range is finite and not empty.
func span(lo, hi float64) (float64, float64) {
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return 0, 1
	}
	if lo >= hi {
		return lo - 1, hi + 1
	}
	return lo, hi
}
