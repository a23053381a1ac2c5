package chart

// ConfigKey is the config key of the chart defaults.
const ConfigKey = "scatter"

// Config holds the chart defaults a host can load from its config dir.
type Config struct {
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	GridLineWidth float64 `json:"grid_line_width"`
	Cursor        string  `json:"cursor"`
	NoData        string  `json:"no_data"`
}

// Options maps the config to chart options. Zero values keep the chart defaults.
func (c Config) Options() []Option {
	opts := []Option{WithGridLines(c.GridLineWidth, c.GridLineWidth)}
	if c.Width > 0 && c.Height > 0 {
		opts = append(opts, WithSize(c.Width, c.Height))
	}
	if c.Cursor != "" {
		opts = append(opts, WithCursor(c.Cursor))
	}
	if c.NoData != "" {
		opts = append(opts, WithNoData(c.NoData))
	}
	return opts
}
