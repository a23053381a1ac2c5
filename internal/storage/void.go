package storage

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// VoidStorage drops every value, for hosts that do not keep settings across sessions.
type VoidStorage struct{}

// NewVoidStorage creates a storage that never finds anything.
func NewVoidStorage() *VoidStorage {
	return &VoidStorage{}
}

// VoidShard hands out void storages for every shard.
func VoidShard() Shard {
	return func(shard string) (Persistence, error) {
		log.Debug().Str("shard", shard).Msg("settings will not be persisted")
		return NewVoidStorage(), nil
	}
}

func (VoidStorage) Store(Key, interface{}) error {
	return nil
}

func (VoidStorage) Load(k Key, _ interface{}) error {
	return fmt.Errorf("'%s' is never stored: %w", k.Path(), NotFoundErr)
}
