package chart

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
)

var placeholder = regexp.MustCompile(`\{(point\.x|point\.y|series\.name)(?::\.(\d+)f)?\}`)

// Tooltip formats the tooltip of the given point with the header and point templates of the chart.
func (s *Scatterplot) Tooltip(series, index int) (string, error) {
	p, err := s.Point(series, index)
	if err != nil {
		return "", err
	}
	name := s.options.Series[series].Name
	format := func(template string) string {
		return placeholder.ReplaceAllStringFunc(template, func(m string) string {
			groups := placeholder.FindStringSubmatch(m)
			var v float64
			switch groups[1] {
			case "series.name":
				return name
			case "point.x":
				v = p[0]
			case "point.y":
				v = p[1]
			}
			if groups[2] == "" {
				return strconv.FormatFloat(v, 'g', -1, 64)
			}
			precision, _ := strconv.Atoi(groups[2])
			return strconv.FormatFloat(v, 'f', precision, 64)
		})
	}
	return format(s.options.Tooltip.HeaderFormat) + format(s.options.Tooltip.PointFormat), nil
}

// Select selects the points of all tracked series that fall into the given data rectangle,
// replacing the previous selection.
func (s *Scatterplot) Select(e Extremes) [][]int {
	s.selected = make(map[int]map[int]bool)
	for i, sr := range s.options.Series {
		if !sr.Tracked() {
			continue
		}
		for j, d := range sr.Data {
			if d[0] >= e.XMin && d[0] <= e.XMax && d[1] >= e.YMin && d[1] <= e.YMax {
				s.mark(i, j)
			}
		}
	}
	return s.notify()
}

// SelectPoint toggles the selection of a single point.
// With add set the point is added to the current selection, otherwise it replaces it.
func (s *Scatterplot) SelectPoint(series, index int, add bool) ([][]int, error) {
	if !s.options.PlotOptions.Series.AllowPointSelect {
		return s.Selected(), nil
	}
	if _, err := s.Point(series, index); err != nil {
		return nil, err
	}
	if !s.options.Series[series].Tracked() {
		return nil, fmt.Errorf("series %d does not track the mouse: %w", series, ErrNoSeries)
	}
	wasSelected := s.selected[series][index]
	if !add {
		s.selected = make(map[int]map[int]bool)
	}
	if wasSelected {
		delete(s.selected[series], index)
	} else {
		s.mark(series, index)
	}
	return s.notify(), nil
}

// Selected returns the indexes of the selected points for every series.
func (s *Scatterplot) Selected() [][]int {
	selected := make([][]int, len(s.options.Series))
	for i := range s.options.Series {
		selected[i] = make([]int, 0, len(s.selected[i]))
		for j := range s.selected[i] {
			selected[i] = append(selected[i], j)
		}
		sort.Ints(selected[i])
	}
	return selected
}

func (s *Scatterplot) mark(series, index int) {
	if _, ok := s.selected[series]; !ok {
		s.selected[series] = make(map[int]bool)
	}
	s.selected[series][index] = true
}

func (s *Scatterplot) notify() [][]int {
	selected := s.Selected()
	if s.onSelect != nil && s.options.Chart.Events.Selection != "" {
		s.onSelect(selected)
	}
	return selected
}
