package config

import (
	"errors"
	"fmt"
	"github.com/spf13/viper"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// KeyRunCount holds a map of generator short name to the number of times it was run.
const KeyRunCount = "generatorRunCount"

// Store is the key-value configuration object shared with route handlers through the navigator.
// It's persisted as TOML when created with a path.
type Store struct {
	path string

	mux sync.RWMutex
	v   *viper.Viper
}

// NewStore creates an in-memory [Store] that is never persisted.
func NewStore() *Store {
	v := viper.New()
	v.SetConfigType("toml")
	return &Store{v: v}
}

// OpenStore loads the [Store] persisted at path, if it exists.
func OpenStore(path string) (*Store, error) {
	s := NewStore()
	s.path = path
	s.v.SetConfigFile(path)
	if err := s.v.ReadInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read insight store '%s': %w", path, err)
	}
	return s, nil
}

// Get returns the value stored under key, or nil.
// Keys are case-insensitive.
func (s *Store) Get(key string) any {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.v.Get(key)
}

// Set stores val under key and persists the [Store].
func (s *Store) Set(key string, val any) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.v.Set(key, val)
	return s.save()
}

// RunCounts returns how many times each generator was run.
func (s *Store) RunCounts() map[string]int {
	return CountsFrom(s.Get(KeyRunCount))
}

// IncrementRunCount records another run of the named generator.
func (s *Store) IncrementRunCount(name string) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	counts := CountsFrom(s.v.Get(KeyRunCount))
	counts[name]++
	s.v.Set(KeyRunCount, counts)
	return s.save()
}

// save must be called with the write lock held.
func (s *Store) save() error {
	if len(s.path) == 0 {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create insight directory: %w", err)
	}
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("failed to write insight store: %w", err)
	}
	return nil
}

// CountsFrom interprets a stored run count value, tolerating the numeric types produced by decoders.
// Unknown shapes result in an empty map.
func CountsFrom(val any) map[string]int {
	counts := map[string]int{}
	switch m := val.(type) {
	case map[string]int:
		for k, v := range m {
			counts[k] = v
		}
	case map[string]any:
		for k, v := range m {
			switch n := v.(type) {
			case int:
				counts[k] = n
			case int64:
				counts[k] = int(n)
			case float64:
				counts[k] = int(n)
			}
		}
	}
	return counts
}
