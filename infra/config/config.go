package config

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// Path is the default config dir, relative to the repository root.
const Path = "infra/config"

// Load loads the config for the given key from the given dir.
func Load(dir, key string, v interface{}) ([]byte, error) {

	p := filepath.Join(dir, fmt.Sprintf("%s.json", key))
	b, err := ioutil.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("could not load config for %s: %w", key, err)
	}

	err = json.Unmarshal(b, v)
	if err != nil {
		return nil, fmt.Errorf("could not unmarshal the config for %s: %w", key, err)
	}

	log.Info().Str("key", key).Str("path", p).Msg("loaded config")

	return b, nil
}

// MustLoad loads the config for the given key
func MustLoad(key string, v interface{}) []byte {
	b, err := Load(Path, key, v)
	if err != nil {
		panic(err.Error())
	}
	return b
}
