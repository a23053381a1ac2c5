package chart

import (
	"fmt"
	"sort"
	"strings"
)

const (
	// PaintFunction is the name the shading hook is registered under.
	PaintFunction = "paint_function"
	// AbovePath is the id of the region above the line.
	AbovePath = "abovePath"
	// BelowPath is the id of the region below the line.
	BelowPath = "belowPath"

	regionOpacity = 0.2
	regionZIndex  = 0.5
)

// Region is a filled polygon drawn on top of the plot background.
// The first pixel of the path is a move, the rest are line segments.
type Region struct {
	ID          string  `json:"id"`
	Path        []Pixel `json:"path"`
	Fill        string  `json:"fill"`
	FillOpacity float64 `json:"fillOpacity"`
	Stroke      string  `json:"stroke"`
	ZIndex      float64 `json:"zIndex"`
}

// SVG returns the path in svg notation.
func (r Region) SVG() string {
	b := new(strings.Builder)
	for i, p := range r.Path {
		switch i {
		case 0:
			b.WriteString("M")
		case 1:
			b.WriteString(" L")
		}
		b.WriteString(fmt.Sprintf(" %.2f %.2f", p.X, p.Y))
	}
	return b.String()
}

// Regions returns the drawn regions ordered by id.
func (s *Scatterplot) Regions() []Region {
	rr := make([]Region, 0, len(s.regions))
	for _, r := range s.regions {
		rr = append(rr, r)
	}
	sort.Slice(rr, func(i, j int) bool {
		return rr[i].ID < rr[j].ID
	})
	return rr
}

// Region returns the region with the given id.
func (s *Scatterplot) Region(id string) (Region, bool) {
	r, ok := s.regions[id]
	return r, ok
}

// RemoveRegion removes the region with the given id if it exists.
func (s *Scatterplot) RemoveRegion(id string) {
	delete(s.regions, id)
}

// AddRegion draws the given region, replacing any region with the same id.
func (s *Scatterplot) AddRegion(r Region) {
	s.regions[r.ID] = r
}

// ShadeHook shades the areas above and below the line of the first series.
// The region above goes from the top left corner of the plot area along the line to the top right corner,
// the region below does the same from the bottom corners.
// They are filled with the colors of the second and third series.
func ShadeHook(s *Scatterplot) {
	s.RemoveRegion(BelowPath)
	s.RemoveRegion(AbovePath)

	rendered := s.Rendered()
	if len(rendered) < 3 || rendered[0].Series.Type != Line || len(rendered[0].Points) == 0 {
		return
	}

	left, top, width, height := s.PlotArea()

	path := make([]Pixel, len(rendered[0].Points))
	for i, p := range rendered[0].Points {
		path[i] = Pixel{X: p.X + left, Y: p.Y + top}
	}

	above := append([]Pixel{{X: left, Y: top}}, path...)
	above = append(above, Pixel{X: left + width, Y: top})

	below := append([]Pixel{{X: left, Y: top + height}}, path...)
	below = append(below, Pixel{X: left + width, Y: top + height})

	s.AddRegion(Region{
		ID:          AbovePath,
		Path:        above,
		Fill:        rendered[1].Series.Color,
		FillOpacity: regionOpacity,
		Stroke:      "none",
		ZIndex:      regionZIndex,
	})
	s.AddRegion(Region{
		ID:          BelowPath,
		Path:        below,
		Fill:        rendered[2].Series.Color,
		FillOpacity: regionOpacity,
		Stroke:      "none",
		ZIndex:      regionZIndex,
	})
}
