package chart

// Kind is the default series type of a chart.
type Kind string

const (
	Scatter Kind = "scatter"
	Line    Kind = "line"
	Bubble  Kind = "bubble"
)

// Options is the option tree of a chart. It serialises to the structure highcharts expects.
type Options struct {
	Chart       Chart       `json:"chart"`
	Title       Title       `json:"title"`
	XAxis       Axis        `json:"xAxis"`
	YAxis       Axis        `json:"yAxis"`
	Tooltip     Tooltip     `json:"tooltip"`
	PlotOptions PlotOptions `json:"plotOptions"`
	Lang        Lang        `json:"lang"`
	Series      []Series    `json:"series"`
}

type Chart struct {
	Type     Kind   `json:"type"`
	ZoomType string `json:"zoomType,omitempty"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	Events   Events `json:"events"`
}

// Events reference hooks registered on the chart by name.
type Events struct {
	Redraw    string `json:"redraw,omitempty"`
	Selection string `json:"selection,omitempty"`
}

type Title struct {
	Text string `json:"text"`
}

type Axis struct {
	Title         Title    `json:"title"`
	Min           *float64 `json:"min,omitempty"`
	Max           *float64 `json:"max,omitempty"`
	GridLineWidth *float64 `json:"gridLineWidth,omitempty"`
}

type Tooltip struct {
	HeaderFormat string `json:"headerFormat"`
	PointFormat  string `json:"pointFormat,omitempty"`
	Shared       bool   `json:"shared"`
}

type PlotOptions struct {
	Series SeriesOptions `json:"series"`
}

type SeriesOptions struct {
	Cursor           string `json:"cursor,omitempty"`
	AllowPointSelect bool   `json:"allowPointSelect"`
}

type Lang struct {
	NoData string `json:"noData,omitempty"`
}

type Marker struct {
	Enabled bool `json:"enabled"`
}

// Series is one data series of the chart.
type Series struct {
	ID                  string       `json:"id,omitempty"`
	Name                string       `json:"name,omitempty"`
	Type                Kind         `json:"type,omitempty"`
	Data                [][2]float64 `json:"data"`
	Color               string       `json:"color,omitempty"`
	ShowInLegend        *bool        `json:"showInLegend,omitempty"`
	Marker              *Marker      `json:"marker,omitempty"`
	EnableMouseTracking *bool        `json:"enableMouseTracking,omitempty"`
	ZIndex              float64      `json:"zIndex,omitempty"`
}

// Tracked returns true if the points of the series react to the mouse.
func (s Series) Tracked() bool {
	return s.EnableMouseTracking == nil || *s.EnableMouseTracking
}

// Bool returns a pointer to the given value, for the optional flags of the option tree.
func Bool(b bool) *bool {
	return &b
}

// Float returns a pointer to the given value, for the optional numbers of the option tree.
func Float(f float64) *float64 {
	return &f
}

// Option modifies the option tree.
type Option func(o *Options)

// WithType sets the default series type.
func WithType(kind Kind) Option {
	return func(o *Options) {
		o.Chart.Type = kind
	}
}

// WithZoom enables zooming on both axes.
func WithZoom() Option {
	return func(o *Options) {
		o.Chart.ZoomType = "xy"
	}
}

// WithSelection enables rectangle and single point selection.
func WithSelection() Option {
	return func(o *Options) {
		o.PlotOptions.Series.AllowPointSelect = true
		o.Chart.Events.Selection = SelectionEvent
	}
}

// WithCursor sets the cursor shown over series.
func WithCursor(cursor string) Option {
	return func(o *Options) {
		o.PlotOptions.Series.Cursor = cursor
	}
}

// WithSize sets the chart size in pixels.
func WithSize(width, height int) Option {
	return func(o *Options) {
		o.Chart.Width = width
		o.Chart.Height = height
	}
}

// WithTitle sets the chart title.
func WithTitle(text string) Option {
	return func(o *Options) {
		o.Title.Text = text
	}
}

// WithGridLines sets the grid line width of both axes.
func WithGridLines(x, y float64) Option {
	return func(o *Options) {
		o.XAxis.GridLineWidth = Float(x)
		o.YAxis.GridLineWidth = Float(y)
	}
}

// WithXAxis sets the title and range of the x axis.
func WithXAxis(title string, min, max float64) Option {
	return func(o *Options) {
		o.XAxis.Title.Text = title
		o.XAxis.Min = Float(min)
		o.XAxis.Max = Float(max)
	}
}

// WithYTitle sets the title of the y axis.
func WithYTitle(title string) Option {
	return func(o *Options) {
		o.YAxis.Title.Text = title
	}
}

// WithTooltip sets the tooltip templates.
func WithTooltip(header, point string, shared bool) Option {
	return func(o *Options) {
		o.Tooltip.HeaderFormat = header
		o.Tooltip.PointFormat = point
		o.Tooltip.Shared = shared
	}
}

// WithRedraw binds the redraw event to the hook registered under the given name.
func WithRedraw(hook string) Option {
	return func(o *Options) {
		o.Chart.Events.Redraw = hook
	}
}

// WithNoData sets the message of the empty chart.
func WithNoData(text string) Option {
	return func(o *Options) {
		o.Lang.NoData = text
	}
}

// copyOptions makes a deep enough copy for the option tree to be modified independently.
func copyOptions(o Options) Options {
	c := o
	c.XAxis = copyAxis(o.XAxis)
	c.YAxis = copyAxis(o.YAxis)
	c.Series = make([]Series, len(o.Series))
	for i, s := range o.Series {
		c.Series[i] = s
		c.Series[i].Data = append([][2]float64{}, s.Data...)
	}
	return c
}

func copyAxis(a Axis) Axis {
	c := a
	if a.Min != nil {
		c.Min = Float(*a.Min)
	}
	if a.Max != nil {
		c.Max = Float(*a.Max)
	}
	if a.GridLineWidth != nil {
		c.GridLineWidth = Float(*a.GridLineWidth)
	}
	return c
}
