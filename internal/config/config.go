// Package config persists the user-level settings: where task folders live
// and whether the first-run setup hint has been dismissed.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/pablasso/guia/internal/fsutil"
)

const (
	configDirName  = "guia"
	configFileName = "config.yaml"
)

// Settings is the persisted configuration. An empty TasksRoot means "not
// configured yet"; the workflow refuses to run until one is set.
type Settings struct {
	TasksRoot          string `yaml:"tasks_root"`
	SetupHintDismissed bool   `yaml:"setup_hint_dismissed"`
}

// Store reads and writes Settings. The workflow engine takes a Store rather
// than touching the config file directly so tests can substitute a double.
type Store interface {
	Load() (Settings, error)
	Save(Settings) error
}

// FileStore persists Settings as YAML in the user config directory.
type FileStore struct {
	fsys afero.Fs
	path string
}

// NewFileStore creates a store rooted at the platform's user config
// directory (e.g. ~/.config/guia/config.yaml).
func NewFileStore(fsys afero.Fs) (*FileStore, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return NewFileStoreAt(fsys, filepath.Join(base, configDirName, configFileName)), nil
}

// NewFileStoreAt creates a store backed by an explicit file path.
func NewFileStoreAt(fsys afero.Fs, path string) *FileStore {
	return &FileStore{fsys: fsys, path: path}
}

// Load reads the settings file. A missing file yields zero-value Settings
// and no error; any other failure is reported.
func (s *FileStore) Load() (Settings, error) {
	data, err := afero.ReadFile(s.fsys, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Settings{}, nil
		}
		return Settings{}, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	var cfg Settings
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Settings{}, fmt.Errorf("failed to parse %s: %w", s.path, err)
	}
	return cfg, nil
}

// Save writes the settings file, creating parent directories as needed.
func (s *FileStore) Save(cfg Settings) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := fsutil.WriteFileAtomic(s.fsys, s.path, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	return nil
}
