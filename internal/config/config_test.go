package config

import (
	"os"
	"testing"
)

func TestNewFromEnv(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		t.Setenv("API_BASE_URL", "http://api.test/")
		t.Setenv("DATA_DIR", "/tmp/assistant")
		t.Setenv("TELEGRAM_ALLOWED_USER_IDS", "123, 456")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.APIBaseURL != "http://api.test" {
			t.Errorf("Expected APIBaseURL to be 'http://api.test' (trailing slash trimmed), got '%s'", cfg.APIBaseURL)
		}
		if cfg.DataDir != "/tmp/assistant" {
			t.Errorf("Expected DataDir to be '/tmp/assistant', got '%s'", cfg.DataDir)
		}
		if len(cfg.TelegramAllowedUserIDs) != 2 || cfg.TelegramAllowedUserIDs[0] != 123 || cfg.TelegramAllowedUserIDs[1] != 456 {
			t.Errorf("Expected allowed user IDs [123 456], got %v", cfg.TelegramAllowedUserIDs)
		}
	})

	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("API_BASE_URL", "http://api.test")
		os.Unsetenv("DATA_DIR")
		os.Unsetenv("DATABASE_PATH")
		os.Unsetenv("LLM_PROVIDER")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.DataDir != "data" {
			t.Errorf("Expected default DataDir 'data', got '%s'", cfg.DataDir)
		}
		if cfg.DatabasePath != "data/assistant.db" {
			t.Errorf("Expected default DatabasePath 'data/assistant.db', got '%s'", cfg.DatabasePath)
		}
		if cfg.LLMProvider != "gemini" {
			t.Errorf("Expected default LLMProvider 'gemini', got '%s'", cfg.LLMProvider)
		}
	})

	t.Run("MissingAPIBaseURL", func(t *testing.T) {
		os.Unsetenv("API_BASE_URL")

		_, err := NewFromEnv()
		if err == nil {
			t.Fatal("Expected an error for missing API_BASE_URL, got nil")
		}
		expectedError := "API_BASE_URL environment variable not set"
		if err.Error() != expectedError {
			t.Errorf("Expected error '%s', got '%s'", expectedError, err.Error())
		}
	})

	t.Run("BadAllowedUserIDs", func(t *testing.T) {
		t.Setenv("API_BASE_URL", "http://api.test")
		t.Setenv("TELEGRAM_ALLOWED_USER_IDS", "123,abc")

		_, err := NewFromEnv()
		if err == nil {
			t.Fatal("Expected an error for a non-numeric user ID, got nil")
		}
	})
}

func TestRequireServer(t *testing.T) {
	t.Run("GeminiMissingKey", func(t *testing.T) {
		cfg := &Config{LLMProvider: "gemini"}
		if err := cfg.RequireServer(); err == nil {
			t.Fatal("Expected an error for missing GEMINI_API_KEY, got nil")
		}
	})

	t.Run("GroqOK", func(t *testing.T) {
		cfg := &Config{LLMProvider: "groq", GroqAPIKey: "gk"}
		if err := cfg.RequireServer(); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	})

	t.Run("UnknownProvider", func(t *testing.T) {
		cfg := &Config{LLMProvider: "openai"}
		if err := cfg.RequireServer(); err == nil {
			t.Fatal("Expected an error for unknown provider, got nil")
		}
	})
}
