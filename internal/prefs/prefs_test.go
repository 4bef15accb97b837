package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStore(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "prefs_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	store, err := NewStore(tempDir)
	if err != nil {
		t.Fatalf("Failed to create Store: %v", err)
	}

	t.Run("FirstRun", func(t *testing.T) {
		if lang, ok := store.Language(); ok {
			t.Errorf("Expected no stored language on first run, got '%s'", lang)
		}
	})

	t.Run("SetThenGet", func(t *testing.T) {
		if err := store.SetLanguage("Marathi"); err != nil {
			t.Fatalf("Failed to set language: %v", err)
		}

		lang, ok := store.Language()
		if !ok {
			t.Fatal("Expected a stored language, got none")
		}
		if lang != "Marathi" {
			t.Errorf("Expected 'Marathi', got '%s'", lang)
		}
	})

	t.Run("SurvivesReopen", func(t *testing.T) {
		reopened, err := NewStore(tempDir)
		if err != nil {
			t.Fatalf("Failed to reopen store: %v", err)
		}
		lang, ok := reopened.Language()
		if !ok || lang != "Marathi" {
			t.Errorf("Expected 'Marathi' after reopen, got '%s' (ok=%v)", lang, ok)
		}
	})

	t.Run("CorruptFile", func(t *testing.T) {
		if err := os.WriteFile(filepath.Join(tempDir, "preferences.json"), []byte("{not json"), 0644); err != nil {
			t.Fatalf("Failed to corrupt file: %v", err)
		}
		if lang, ok := store.Language(); ok {
			t.Errorf("Expected no language from a corrupt file, got '%s'", lang)
		}
	})
}
