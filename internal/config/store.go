package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Store is a load/save capability over one config file. It is passed
// explicitly to anything that needs to persist config state (the
// background update check) instead of sharing ambient globals.
type Store struct {
	path string
}

// NewStore creates a store over an explicit config path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultStore returns a store over ~/.bbq/config.toml.
func DefaultStore() (*Store, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return &Store{path: path}, nil
}

// Load reads the config from the store's path.
func (s *Store) Load() (Config, error) {
	return LoadFrom(s.path)
}

// Save writes the config to the store's path, creating the directory
// if needed. The write is atomic (temp file + rename).
func (s *Store) Save(cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".config-*.toml")
	if err != nil {
		return fmt.Errorf("create temp config: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := toml.NewEncoder(tmp).Encode(cfg); err != nil {
		tmp.Close()
		return fmt.Errorf("encode config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

// SetKnownLatestVersion updates the single field owned by the update
// check and persists the config.
func (s *Store) SetKnownLatestVersion(version string) error {
	cfg, err := s.Load()
	if err != nil {
		return err
	}
	cfg.KnownLatestVersion = version
	return s.Save(cfg)
}
