package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	prefsFile = "prefs.yaml"
	keyTheme  = "theme"
)

// ErrInvalidTheme indicates a theme value other than dark or light.
var ErrInvalidTheme = errors.New("storage: theme must be dark or light")

// Store is a small key-value preference file under a base directory.
type Store struct {
	baseDir string
	mu      sync.Mutex
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Path() string { return filepath.Join(s.baseDir, prefsFile) }

// Get returns the stored value and whether the key was present.
func (s *Store) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefs, err := s.load()
	if err != nil {
		return "", false, err
	}
	v, ok := prefs[key]
	return v, ok, nil
}

func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefs, err := s.load()
	if err != nil {
		return err
	}
	prefs[key] = value
	return s.save(prefs)
}

func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefs, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := prefs[key]; !ok {
		return nil
	}
	delete(prefs, key)
	return s.save(prefs)
}

// Theme returns the persisted theme, or "" if none was saved.
func (s *Store) Theme() (string, error) {
	v, ok, err := s.Get(keyTheme)
	if err != nil || !ok {
		return "", err
	}
	return v, nil
}

func (s *Store) SetTheme(theme string) error {
	if theme != "dark" && theme != "light" {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, theme)
	}
	return s.Set(keyTheme, theme)
}

func (s *Store) ClearTheme() error { return s.Delete(keyTheme) }

func (s *Store) load() (map[string]string, error) {
	prefs := make(map[string]string)
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return prefs, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, &prefs); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.Path(), err)
	}
	if prefs == nil {
		prefs = make(map[string]string)
	}
	return prefs, nil
}

func (s *Store) save(prefs map[string]string) error {
	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(prefs)
	if err != nil {
		return err
	}
	tmp := s.Path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.Path())
}
