package storage

import (
	"errors"
	"fmt"
)

const (
	// SettingsLabel is the label under which widget settings are stored.
	SettingsLabel = "settings"
)

var (
	// DefaultDir is the root dir of the file storage.
	DefaultDir = "file-storage"
)

// Shard creates a new storage implementation for the given shard.
type Shard func(shard string) (Persistence, error)

var (
	NotFoundErr     = errors.New("not found")
	CouldNotLoadErr = errors.New("could not load")
)

// Key is the storage key for the state of a widget.
type Key struct {
	Widget string `json:"widget"`
	ID     string `json:"id"`
	Label  string `json:"label"`
}

// Path returns the file name for the key.
// The instance id is left out when empty, so that settings can be shared across sessions.
func (k Key) Path() string {
	if k.ID == "" {
		return fmt.Sprintf("%s_%s", k.Widget, k.Label)
	}
	return fmt.Sprintf("%s_%s_%s", k.Widget, k.ID, k.Label)
}

// Persistence stores and loads values by key.
type Persistence interface {
	Store(k Key, value interface{}) error
	Load(k Key, value interface{}) error
}
