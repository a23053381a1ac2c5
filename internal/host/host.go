// Package host delivers the typed input signals to the widget and keeps its settings across sessions.
package host

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/drakos74/polyclass/internal/data"
	"github.com/drakos74/polyclass/internal/learner"
	"github.com/drakos74/polyclass/internal/metrics"
	"github.com/drakos74/polyclass/internal/storage"
	"github.com/drakos74/polyclass/internal/widget"
	"github.com/rs/zerolog/log"
)

// Input is the name of an input channel of the widget.
type Input string

const (
	// DataInput carries the dataset.
	DataInput Input = "Data"
	// LearnerInput carries the learner.
	LearnerInput Input = "Learner"

	// KeyName is the widget name used in the storage key.
	KeyName = "polyclass"
)

// ErrUnknownInput is returned for signals on an input the widget does not declare.
var ErrUnknownInput = errors.New("unknown input")

// Signal is a value arriving on one of the inputs.
type Signal struct {
	Input   Input
	Data    *data.Table
	Learner learner.Learner
}

// DataSignal wraps a dataset, nil meaning the input was disconnected.
func DataSignal(t *data.Table) Signal {
	return Signal{Input: DataInput, Data: t}
}

// LearnerSignal wraps a learner, nil meaning the input was disconnected.
func LearnerSignal(l learner.Learner) Signal {
	return Signal{Input: LearnerInput, Learner: l}
}

// ErrorHandler surfaces a failed signal.
type ErrorHandler func(input Input, err error)

// Host drives a single widget.
type Host struct {
	widget  *widget.Widget
	store   storage.Persistence
	key     storage.Key
	onError ErrorHandler
}

// New creates a host for the given widget, persisting its settings in the given storage.
func New(w *widget.Widget, store storage.Persistence) *Host {
	if store == nil {
		store = storage.NewVoidStorage()
	}
	return &Host{
		widget: w,
		store:  store,
		key: storage.Key{
			Widget: KeyName,
			Label:  storage.SettingsLabel,
		},
		onError: logError,
	}
}

// WithInstance keys the settings by the widget id instead of sharing them across instances.
func (h *Host) WithInstance() *Host {
	h.key.ID = h.widget.ID
	return h
}

// WithErrorHandler replaces the default error surface.
func (h *Host) WithErrorHandler(fn ErrorHandler) *Host {
	h.onError = fn
	return h
}

// Widget returns the hosted widget.
func (h *Host) Widget() *widget.Widget {
	return h.widget
}

// Key returns the storage key of the settings.
func (h *Host) Key() storage.Key {
	return h.key
}

// Send delivers the signal inline and persists the resulting settings.
func (h *Host) Send(s Signal) error {
	var err error
	switch s.Input {
	case DataInput:
		err = h.widget.SetData(s.Data)
	case LearnerInput:
		err = h.widget.SetLearner(s.Learner)
	default:
		err = fmt.Errorf("'%s': %w", s.Input, ErrUnknownInput)
	}
	if err != nil {
		h.onError(s.Input, err)
		return err
	}
	if err := h.Save(); err != nil {
		log.Warn().Err(err).Str("key", h.key.Path()).Msg("could not save settings")
	}
	return nil
}

// Run processes the signals one at a time until the channel is closed or the context is done.
// Failed signals are surfaced through the error handler and do not stop the loop.
func (h *Host) Run(ctx context.Context, signals <-chan Signal) error {
	defer func() {
		log.Info().Str("widget", h.widget.ID).Msg("closing host")
	}()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case s, ok := <-signals:
			if !ok {
				return nil
			}
			log.Debug().Str("input", string(s.Input)).Msg("received signal")
			_ = h.Send(s)
		}
	}
}

// Save stores the current settings of the widget.
func (h *Host) Save() error {
	b, err := h.widget.Settings().Marshal()
	if err != nil {
		return err
	}
	return h.store.Store(h.key, json.RawMessage(b))
}

// Restore loads the stored settings into the widget. Missing settings leave the defaults in place.
// A stored attribute pair only applies to the dataset already admitted,
// every new dataset selects its first two continuous attributes.
func (h *Host) Restore() error {
	var raw json.RawMessage
	err := h.store.Load(h.key, &raw)
	if errors.Is(err, storage.NotFoundErr) {
		log.Debug().Str("key", h.key.Path()).Msg("no stored settings")
		return nil
	}
	if err != nil {
		return fmt.Errorf("could not restore settings: %w", err)
	}
	s, err := widget.UnmarshalSettings(raw)
	if err != nil {
		return fmt.Errorf("could not restore settings: %w", err)
	}
	return h.widget.Restore(s)
}

func logError(input Input, err error) {
	log.Error().Err(err).Str("input", string(input)).Msg("signal failed")
	metrics.Observer.SignalError(string(input))
}
