// Package widget implements the polynomial classification widget:
// it admits a dataset, lets the user pick two continuous attributes,
// fits a binary classifier on them and plots the points together with the decision boundary.
package widget

import (
	"fmt"
	"sort"

	"github.com/drakos74/polyclass/internal/boundary"
	"github.com/drakos74/polyclass/internal/chart"
	"github.com/drakos74/polyclass/internal/data"
	"github.com/drakos74/polyclass/internal/learner"
	"github.com/drakos74/polyclass/internal/metrics"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Name is the display name of the widget.
const Name = "Polynomial classification"

const (
	// WarningValidation is the slot for dataset validation warnings.
	WarningValidation = 1
	// WarningData is the slot for data warnings.
	WarningData = 2

	MsgTooFewContinuous = "Too few Continuous feature. Min 2 required"
	MsgNoClass          = "No class provided"
	MsgTooManyClasses   = "Too much classes. Max 2 required"
)

// State is the lifecycle state of the widget.
type State int

const (
	// NoData means no dataset has been received.
	NoData State = iota
	// Empty means the last dataset or fit was rejected and the chart is empty.
	Empty
	// Ready means the chart is consistent with the dataset, the selected attributes and the learner.
	Ready
)

func (s State) String() string {
	switch s {
	case NoData:
		return "no-data"
	case Empty:
		return "empty"
	case Ready:
		return "ready"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Warning is a message shown in one of the warning slots.
type Warning struct {
	ID      int
	Message string
}

// Widget holds the state of one widget instance.
// It is not safe for concurrent use, the host calls it from a single goroutine.
type Widget struct {
	ID string

	data      *data.Table
	admitted  bool
	projected *data.Table
	result    boundary.Result
	learner   learner.Learner
	settings  Settings

	cbx     *Selector
	cby     *Selector
	scatter *chart.Scatterplot

	warnings map[int]string
	state    State
}

// New creates a widget with the default learner and an empty chart.
func New(opts ...chart.Option) *Widget {
	defaults := []chart.Option{
		chart.WithGridLines(0, 0),
		chart.WithTitle(""),
		chart.WithTooltip("", "", false),
	}
	w := &Widget{
		ID:       uuid.New().String(),
		learner:  learner.Default(),
		settings: DefaultSettings(),
		cbx:      NewSelector("X:"),
		cby:      NewSelector("Y:"),
		scatter:  chart.NewScatterplot(append(defaults, opts...)...),
		warnings: make(map[int]string),
		state:    NoData,
	}
	w.scatter.OnSelect(func(selected [][]int) {
		n := 0
		for _, s := range selected {
			n += len(s)
		}
		log.Debug().Str("widget", w.ID).Int("points", n).Msg("selection changed")
	})
	return w
}

// SetLearner replaces the learner and refits. A nil learner restores the default one.
func (w *Widget) SetLearner(l learner.Learner) error {
	if l == nil {
		l = learner.Default()
	}
	w.learner = l
	log.Info().Str("widget", w.ID).Str("learner", l.Name()).Msg("set learner")
	return w.Refresh()
}

// SetData admits a new dataset. Invalid datasets leave the widget with an empty chart and a warning.
func (w *Widget) SetData(t *data.Table) error {
	w.data = t
	w.admitted = false

	w.clearWarning(WarningValidation)
	w.clearWarning(WarningData)

	outcome, message := validate(t)
	metrics.Observer.Validation(outcome)

	if outcome != outcomeOK {
		w.reset()
		if message != "" {
			w.warning(WarningValidation, message)
			w.state = Empty
		} else {
			w.state = NoData
		}
		return nil
	}

	w.initCombos(t)
	attrX, err := w.cbx.ItemText(0)
	if err != nil {
		return err
	}
	attrY, err := w.cbx.ItemText(1)
	if err != nil {
		return err
	}
	w.settings.AttrX = attrX
	w.settings.AttrY = attrY
	w.admitted = true

	log.Info().
		Str("widget", w.ID).
		Int("rows", t.Len()).
		Strs("attributes", w.cbx.Names()).
		Str("attr_x", attrX).
		Str("attr_y", attrY).
		Msg("admitted data")

	return w.changeFeatures()
}

// SelectX is the handler for a change of the x selector.
// Without a valid dataset the selector is empty and the change is ignored.
func (w *Widget) SelectX(name string) error {
	if !w.admitted {
		return nil
	}
	if err := w.checkItem(w.cbx, name); err != nil {
		return err
	}
	w.settings.AttrX = name
	return w.Refresh()
}

// SelectY is the handler for a change of the y selector.
// Without a valid dataset the selector is empty and the change is ignored.
func (w *Widget) SelectY(name string) error {
	if !w.admitted {
		return nil
	}
	if err := w.checkItem(w.cby, name); err != nil {
		return err
	}
	w.settings.AttrY = name
	return w.Refresh()
}

// Refresh recomputes the projection, the model and the chart, if a valid dataset is loaded.
func (w *Widget) Refresh() error {
	if !w.admitted {
		return nil
	}
	return w.changeFeatures()
}

// Settings returns the persisted state of the widget.
func (w *Widget) Settings() Settings {
	return w.settings
}

// Restore applies persisted settings.
// The selected attributes are applied only if they are valid for the current dataset,
// a new dataset selects its first two continuous attributes anyway.
func (w *Widget) Restore(s Settings) error {
	w.settings.LearnerName = s.LearnerName
	if !w.admitted {
		return nil
	}
	if w.cbx.Index(s.AttrX) < 0 || w.cby.Index(s.AttrY) < 0 {
		log.Warn().
			Str("widget", w.ID).
			Str("attr_x", s.AttrX).
			Str("attr_y", s.AttrY).
			Msg("ignoring restored attributes not in the dataset")
		return nil
	}
	w.settings.AttrX = s.AttrX
	w.settings.AttrY = s.AttrY
	return w.Refresh()
}

// State returns the lifecycle state.
func (w *Widget) State() State {
	return w.state
}

// Warning returns the message of the given slot.
func (w *Widget) Warning(id int) string {
	return w.warnings[id]
}

// Warnings returns the active warnings ordered by slot.
func (w *Widget) Warnings() []Warning {
	ww := make([]Warning, 0, len(w.warnings))
	for id, msg := range w.warnings {
		ww = append(ww, Warning{ID: id, Message: msg})
	}
	sort.Slice(ww, func(i, j int) bool {
		return ww[i].ID < ww[j].ID
	})
	return ww
}

// Learner returns the current learner.
func (w *Widget) Learner() learner.Learner {
	return w.learner
}

// Projected returns the two attribute table of the last successful refresh.
func (w *Widget) Projected() *data.Table {
	return w.projected
}

// Result returns the fit of the last successful refresh.
func (w *Widget) Result() boundary.Result {
	return w.result
}

// Chart returns the chart surface.
func (w *Widget) Chart() *chart.Scatterplot {
	return w.scatter
}

// SelectorX returns the x selector.
func (w *Widget) SelectorX() *Selector {
	return w.cbx
}

// SelectorY returns the y selector.
func (w *Widget) SelectorY() *Selector {
	return w.cby
}

func (w *Widget) changeFeatures() error {
	projected, err := data.Project(w.data, w.settings.AttrX, w.settings.AttrY)
	if err != nil {
		w.fail(err)
		return err
	}
	return w.replot(projected)
}

func (w *Widget) initCombos(t *data.Table) {
	w.resetCombos()
	for _, a := range t.Domain.Variables() {
		if a.IsContinuous() {
			w.cbx.AddAttribute(a)
			w.cby.AddAttribute(a)
		}
	}
}

func (w *Widget) resetCombos() {
	w.cbx.Clear()
	w.cby.Clear()
}

func (w *Widget) reset() {
	w.resetCombos()
	w.settings.AttrX = ""
	w.settings.AttrY = ""
	w.projected = nil
	w.result = boundary.Result{}
	w.scatter.Clear()
}

// fail puts the widget into the empty state after a failed refresh.
func (w *Widget) fail(err error) {
	log.Error().
		Err(err).
		Str("widget", w.ID).
		Str("learner", w.learner.Name()).
		Str("attr_x", w.settings.AttrX).
		Str("attr_y", w.settings.AttrY).
		Msg("could not refresh")
	w.projected = nil
	w.result = boundary.Result{}
	w.scatter.Clear()
	w.state = Empty
}

func (w *Widget) checkItem(s *Selector, name string) error {
	if s.Index(name) < 0 {
		return fmt.Errorf("'%s' not in %s %v: %w", name, s.Label, s.Names(), data.ErrUnknownAttribute)
	}
	return nil
}

func (w *Widget) warning(id int, message string) {
	log.Warn().Str("widget", w.ID).Int("slot", id).Msg(message)
	w.warnings[id] = message
}

func (w *Widget) clearWarning(id int) {
	delete(w.warnings, id)
}
