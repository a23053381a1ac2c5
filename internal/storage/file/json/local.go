package json

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/drakos74/polyclass/internal/storage"
)

// LocalShard keeps every shard in memory, for the lifetime of the process.
func LocalShard() storage.Shard {
	return func(shard string) (storage.Persistence, error) {
		return NewLocalStorage(), nil
	}
}

// LocalStorage holds json encoded values in memory.
type LocalStorage struct {
	mutex  *sync.RWMutex
	values map[storage.Key][]byte
}

func NewLocalStorage() *LocalStorage {
	return &LocalStorage{
		mutex:  new(sync.RWMutex),
		values: make(map[storage.Key][]byte),
	}
}

func (l *LocalStorage) Store(k storage.Key, value interface{}) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("could not encode '%s': %w", k.Path(), err)
	}

	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.values[k] = b
	return nil
}

func (l *LocalStorage) Load(k storage.Key, value interface{}) error {
	l.mutex.RLock()
	b, ok := l.values[k]
	l.mutex.RUnlock()

	if !ok {
		return fmt.Errorf("nothing stored for '%s': %w", k.Path(), storage.NotFoundErr)
	}
	if err := json.Unmarshal(b, value); err != nil {
		return fmt.Errorf("could not decode '%s' %s: %w", k.Path(), err.Error(), storage.CouldNotLoadErr)
	}
	return nil
}

// Paths returns the paths of the stored keys in order.
func (l *LocalStorage) Paths() []string {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	pp := make([]string, 0, len(l.values))
	for k := range l.values {
		pp = append(pp, k.Path())
	}
	sort.Strings(pp)
	return pp
}
