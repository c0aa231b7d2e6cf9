package leaderboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrNotFound is returned by Store.Load for a key never saved
var ErrNotFound = errors.New("key not found")

// Store persists json values as one file per key under a base directory
type Store struct {
	basePath string
}

// NewStore creates a store rooted at basePath; the directory is created on first Save
func NewStore(basePath string) *Store {
	return &Store{basePath: basePath}
}

// FilePath returns the path for a key
func (s *Store) FilePath(key string) string {
	return filepath.Join(s.basePath, key+".json")
}

// Exists checks if a key has been saved
func (s *Store) Exists(key string) bool {
	_, err := os.Stat(s.FilePath(key))
	return err == nil
}

// Save writes v as json, replacing the previous value atomically
func (s *Store) Save(key string, v any) error {
	if err := os.MkdirAll(s.basePath, 0755); err != nil {
		return fmt.Errorf("store %s: %w", key, err)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store %s: %w", key, err)
	}

	tmp, err := os.CreateTemp(s.basePath, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("store %s: %w", key, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("store %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("store %s: %w", key, err)
	}
	if err := os.Rename(tmpName, s.FilePath(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("store %s: %w", key, err)
	}
	return nil
}

// Load decodes the value saved under key into v
// Returns ErrNotFound when the key was never saved
func (s *Store) Load(key string, v any) error {
	data, err := os.ReadFile(s.FilePath(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("load %s: %w", key, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	return nil
}
