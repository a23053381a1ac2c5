package chart

import (
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Render draws the chart with its regions into the given writer.
// format is one of the formats supported by gonum plot e.g. png or svg.
func (s *Scatterplot) Render(w io.Writer, format string) error {
	p := plot.New()
	p.Title.Text = s.options.Title.Text
	p.X.Label.Text = s.options.XAxis.Title.Text
	p.Y.Label.Text = s.options.YAxis.Title.Text

	if s.empty {
		p.Title.Text = s.options.Lang.NoData
		return save(p, s.options.Chart, w, format)
	}

	if width := s.options.XAxis.GridLineWidth; width == nil || *width > 0 {
		p.Add(plotter.NewGrid())
	}

	for _, r := range s.Regions() {
		xys := make(plotter.XYs, len(r.Path))
		for i, px := range r.Path {
			xys[i].X, xys[i].Y = s.FromPixel(px)
		}
		polygon, err := plotter.NewPolygon(xys)
		if err != nil {
			return fmt.Errorf("could not create region '%s': %w", r.ID, err)
		}
		polygon.Color = withOpacity(parseColor(r.Fill), r.FillOpacity)
		polygon.LineStyle.Width = 0
		p.Add(polygon)
	}

	// lower z index first, so that points end up on top of the line
	for _, rendered := range s.byZIndex() {
		sr := rendered.Series
		if len(sr.Data) == 0 {
			continue
		}
		xys := make(plotter.XYs, len(sr.Data))
		for i, d := range sr.Data {
			xys[i].X, xys[i].Y = d[0], d[1]
		}
		switch sr.Type {
		case Line:
			line, err := plotter.NewLine(xys)
			if err != nil {
				return fmt.Errorf("could not create line '%s': %w", sr.ID, err)
			}
			line.LineStyle.Color = parseColor(sr.Color)
			line.LineStyle.Width = vg.Points(2)
			p.Add(line)
		case Scatter, Bubble:
			scatter, err := plotter.NewScatter(xys)
			if err != nil {
				return fmt.Errorf("could not create scatter '%s': %w", sr.ID, err)
			}
			scatter.GlyphStyle.Color = parseColor(sr.Color)
			scatter.GlyphStyle.Radius = vg.Points(3)
			scatter.GlyphStyle.Shape = draw.CircleGlyph{}
			p.Add(scatter)
		default:
			return fmt.Errorf("series '%s' has unsupported type '%s'", sr.ID, sr.Type)
		}
	}

	e := s.Extremes()
	p.X.Min, p.X.Max = e.XMin, e.XMax
	p.Y.Min, p.Y.Max = e.YMin, e.YMax

	return save(p, s.options.Chart, w, format)
}

func (s *Scatterplot) byZIndex() []Rendered {
	rr := append([]Rendered{}, s.rendered...)
	for i := 1; i < len(rr); i++ {
		for j := i; j > 0 && rr[j].Series.ZIndex < rr[j-1].Series.ZIndex; j-- {
			rr[j], rr[j-1] = rr[j-1], rr[j]
		}
	}
	return rr
}

func save(p *plot.Plot, c Chart, w io.Writer, format string) error {
	width, height := c.Width, c.Height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	wt, err := p.WriterTo(vg.Length(width), vg.Length(height), format)
	if err != nil {
		return fmt.Errorf("could not create '%s' writer: %w", format, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("could not write chart: %w", err)
	}
	return nil
}

// parseColor parses a #rrggbb color, falling back to black.
func parseColor(hex string) color.NRGBA {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return color.NRGBA{A: 255}
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{A: 255}
	}
	return color.NRGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 255,
	}
}

func withOpacity(c color.NRGBA, opacity float64) color.NRGBA {
	c.A = uint8(opacity * 255)
	return c
}
