package widget

import (
	"encoding/json"
	"fmt"
)

// DefaultLearnerName is the descriptive name shown for the learner.
const DefaultLearnerName = "Univariate Classification"

// Settings is the state of the widget that the host persists across sessions.
type Settings struct {
	LearnerName string `json:"learner_name"`
	AttrX       string `json:"attr_x"`
	AttrY       string `json:"attr_y"`
}

// DefaultSettings returns the settings of a fresh widget.
func DefaultSettings() Settings {
	return Settings{LearnerName: DefaultLearnerName}
}

// Marshal serialises the settings.
func (s Settings) Marshal() ([]byte, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("could not marshal settings: %w", err)
	}
	return b, nil
}

// UnmarshalSettings restores settings, keeping defaults for missing fields.
func UnmarshalSettings(b []byte) (Settings, error) {
	s := DefaultSettings()
	if err := json.Unmarshal(b, &s); err != nil {
		return Settings{}, fmt.Errorf("could not unmarshal settings: %w", err)
	}
	return s, nil
}
