package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Prefs are user interface preferences changed from inside the app.
type Prefs struct {
	// CursorEnabled highlights the selected menu row with a cursor marker.
	CursorEnabled bool `yaml:"cursor_enabled"`
}

// DefaultPrefs returns the preferences of a fresh install.
func DefaultPrefs() Prefs {
	return Prefs{CursorEnabled: true}
}

// PrefsStore reads and writes the preferences file.
type PrefsStore struct {
	path string
}

// NewPrefsStore stores preferences at path. An empty path means
// prefs.yaml next to the default config file.
func NewPrefsStore(path string) (*PrefsStore, error) {
	if path == "" {
		dir, err := configDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "prefs.yaml")
	}
	return &PrefsStore{path: path}, nil
}

// Path returns the preferences file location.
func (s *PrefsStore) Path() string {
	return s.path
}

// Load returns the stored preferences, or the defaults when none are saved.
func (s *PrefsStore) Load() (Prefs, error) {
	p := DefaultPrefs()
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return p, fmt.Errorf("read prefs: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return DefaultPrefs(), fmt.Errorf("parse prefs %s: %w", s.path, err)
	}
	return p, nil
}

// Save writes p, creating the directory if needed.
func (s *PrefsStore) Save(p Prefs) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode prefs: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return os.Rename(tmp, s.path)
}
