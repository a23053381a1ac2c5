package json

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/drakos74/polyclass/internal/storage"
)

// Save saves the given json struct into the given path with the provided filename.
func Save(filePath string, fileName string, value interface{}) error {
	// check if filepath exists
	info, err := os.Stat(filePath)
	if err != nil {
		err := os.MkdirAll(filePath, os.ModePerm)
		if err != nil {
			return fmt.Errorf("could not make dir: %s: %w", filePath, err)
		}
	} else if !info.IsDir() {
		return fmt.Errorf("path given is not a dir: %s", filePath)
	}

	b, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal '%s': %w", fileName, err)
	}

	p := filepath.Join(filePath, fileName)
	if err := ioutil.WriteFile(p, b, 0644); err != nil {
		return fmt.Errorf("could not write file '%s': %w", p, err)
	}
	return nil
}

// Load loads the payload from the given filePath and fileName.
func Load(filePath string, fileName string, value interface{}) error {

	p := filepath.Join(filePath, fileName)

	data, err := ioutil.ReadFile(p)
	if err != nil {
		return fmt.Errorf("could not read file '%s' %s: %w", p, err.Error(), storage.NotFoundErr)
	}

	err = json.Unmarshal(data, value)
	if err != nil {
		return fmt.Errorf("could not unmarshal '%s' %s: %w", p, err.Error(), storage.CouldNotLoadErr)
	}

	return nil
}

// FileShard stores every shard in its own dir under root.
func FileShard(root string) storage.Shard {
	return func(shard string) (storage.Persistence, error) {
		return NewFileStorage(filepath.Join(root, shard)), nil
	}
}

// FileStorage keeps one json file per key.
type FileStorage struct {
	dir string
}

func NewFileStorage(dir string) *FileStorage {
	return &FileStorage{dir: dir}
}

func (f *FileStorage) Store(k storage.Key, value interface{}) error {
	return Save(f.dir, fileName(k), value)
}

func (f *FileStorage) Load(k storage.Key, value interface{}) error {
	return Load(f.dir, fileName(k), value)
}

func fileName(k storage.Key) string {
	return fmt.Sprintf("%s.json", k.Path())
}
