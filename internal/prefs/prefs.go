package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const prefsFile = "preferences.json"

// Store provides durable, process-surviving storage for on-device
// preferences. Read and write failures are surfaced to callers as errors but
// are expected to be treated as non-fatal: the caller keeps working with the
// best in-memory value it has.
type Store struct {
	path string
}

// record is the on-disk shape of the preferences file.
type record struct {
	PreferredLanguage string `json:"preferred_language"`
}

// NewStore creates a new Store and ensures the data directory exists.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dataDir, err)
	}
	return &Store{path: filepath.Join(dataDir, prefsFile)}, nil
}

// Language returns the stored language preference. The second return value
// is false when no preference has been saved yet (first run) or the file
// cannot be read.
func (s *Store) Language() (string, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return "", false
	}
	if rec.PreferredLanguage == "" {
		return "", false
	}
	return rec.PreferredLanguage, true
}

// SetLanguage persists the language preference.
func (s *Store) SetLanguage(language string) error {
	data, err := json.MarshalIndent(record{PreferredLanguage: language}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write preferences file: %w", err)
	}
	return nil
}
