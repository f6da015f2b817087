// Package globalconfig persists per-generator settings that outlive a single session.
package globalconfig

import (
	"errors"
	"fmt"
	"github.com/BurntSushi/toml"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"sync"
)

// DefaultFileName is the name of the global config file in the user's home directory.
const DefaultFileName = ".genmenu-rc-global.toml"

// Settings is the set of values stored for a single generator.
type Settings = map[string]any

// Store is a global configuration file keyed by generator package name.
// Every mutation is written to disk before returning.
type Store struct {
	path string

	mux  sync.RWMutex
	data map[string]Settings
}

// DefaultPath returns the location of the global config file in the user's home directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, DefaultFileName), nil
}

// Open loads the [Store] at path.
// A missing file results in an empty [Store] that will be created on the first write.
func Open(path string) (*Store, error) {
	s := &Store{path: path, data: map[string]Settings{}}
	raw := map[string]any{}
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read global config '%s': %w", path, err)
	}
	for key, val := range raw {
		settings, ok := val.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("global config '%s': entry '%s' is not a table", path, key)
		}
		s.data[key] = settings
	}
	return s, nil
}

// Path returns the file backing this [Store].
func (s *Store) Path() string {
	return s.path
}

// Get returns the settings stored under key, or nil if there are none.
func (s *Store) Get(key string) Settings {
	s.mux.RLock()
	defer s.mux.RUnlock()
	settings, ok := s.data[key]
	if !ok {
		return nil
	}
	return maps.Clone(settings)
}

// GetAll returns a copy of every entry in the [Store].
func (s *Store) GetAll() map[string]Settings {
	s.mux.RLock()
	defer s.mux.RUnlock()
	all := make(map[string]Settings, len(s.data))
	for key, settings := range s.data {
		all[key] = maps.Clone(settings)
	}
	return all
}

// Set replaces the settings stored under key.
func (s *Store) Set(key string, settings Settings) error {
	if len(key) == 0 {
		return errors.New("empty global config key")
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	next := maps.Clone(s.data)
	next[key] = maps.Clone(settings)
	return s.commit(next)
}

// Remove deletes the entry stored under key.
// Removing a key that doesn't exist is not an error.
func (s *Store) Remove(key string) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	if _, ok := s.data[key]; !ok {
		return nil
	}
	next := maps.Clone(s.data)
	delete(next, key)
	return s.commit(next)
}

// RemoveAll deletes every entry in the [Store].
func (s *Store) RemoveAll() error {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.commit(map[string]Settings{})
}

// commit writes next to disk, and only replaces the in-memory entries once the write succeeds.
// It must be called with the write lock held.
func (s *Store) commit(next map[string]Settings) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create global config directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("failed to write global config: %w", err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()
	if err := toml.NewEncoder(tmp).Encode(next); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to encode global config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write global config: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace global config: %w", err)
	}
	s.data = next
	return nil
}
