package config

import (
	"testing"
)

func TestNewFromEnv(t *testing.T) {
	// Helper function to set environment variables for a test
	setEnv := func(key, value string) {
		t.Helper()
		t.Setenv(key, value)
	}

	clearAll := func() {
		for _, key := range []string{
			"LLM_PROVIDER", "GEMINI_API_KEY", "GEMINI_MODEL", "GROQ_API_KEY",
			"GROQ_MODEL", "STORAGE_DRIVER", "DATABASE_PATH", "PORT", "GIN_MODE",
		} {
			setEnv(key, "")
		}
	}

	t.Run("Defaults", func(t *testing.T) {
		clearAll()
		setEnv("GEMINI_API_KEY", "gemini_key")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.LLMProvider != ProviderGemini {
			t.Errorf("Expected provider '%s', got '%s'", ProviderGemini, cfg.LLMProvider)
		}
		if cfg.GeminiAPIKey != "gemini_key" {
			t.Errorf("Expected GeminiAPIKey to be 'gemini_key', got '%s'", cfg.GeminiAPIKey)
		}
		if cfg.StorageDriver != StorageSQLite {
			t.Errorf("Expected storage driver '%s', got '%s'", StorageSQLite, cfg.StorageDriver)
		}
		if cfg.DatabasePath != "data/grocery.db" {
			t.Errorf("Expected default database path, got '%s'", cfg.DatabasePath)
		}
		if cfg.Port != "8080" {
			t.Errorf("Expected default port 8080, got '%s'", cfg.Port)
		}
	})

	t.Run("GroqProvider", func(t *testing.T) {
		clearAll()
		setEnv("LLM_PROVIDER", "Groq")
		setEnv("GROQ_API_KEY", "groq_key")
		setEnv("STORAGE_DRIVER", "memory")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.LLMProvider != ProviderGroq {
			t.Errorf("Expected provider '%s', got '%s'", ProviderGroq, cfg.LLMProvider)
		}
		if cfg.StorageDriver != StorageMemory {
			t.Errorf("Expected storage driver '%s', got '%s'", StorageMemory, cfg.StorageDriver)
		}
	})

	t.Run("MissingGeminiAPIKey", func(t *testing.T) {
		clearAll()

		_, err := NewFromEnv()
		if err == nil {
			t.Fatal("Expected an error for missing GEMINI_API_KEY, got nil")
		}
		expectedError := "GEMINI_API_KEY environment variable not set"
		if err.Error() != expectedError {
			t.Errorf("Expected error '%s', got '%s'", expectedError, err.Error())
		}
	})

	t.Run("MissingGroqAPIKey", func(t *testing.T) {
		clearAll()
		setEnv("LLM_PROVIDER", "groq")
		setEnv("GEMINI_API_KEY", "gemini_key")

		_, err := NewFromEnv()
		if err == nil {
			t.Fatal("Expected an error for missing GROQ_API_KEY, got nil")
		}
		expectedError := "GROQ_API_KEY environment variable not set"
		if err.Error() != expectedError {
			t.Errorf("Expected error '%s', got '%s'", expectedError, err.Error())
		}
	})

	t.Run("UnknownStorageDriver", func(t *testing.T) {
		clearAll()
		setEnv("GEMINI_API_KEY", "gemini_key")
		setEnv("STORAGE_DRIVER", "postgres")

		if _, err := NewFromEnv(); err == nil {
			t.Fatal("Expected an error for unsupported STORAGE_DRIVER, got nil")
		}
	})

	t.Run("GinMode", func(t *testing.T) {
		clearAll()
		setEnv("GEMINI_API_KEY", "gemini_key")
		setEnv("GIN_MODE", "Debug")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.GinMode != "debug" {
			t.Errorf("Expected gin mode 'debug', got '%s'", cfg.GinMode)
		}
	})

	t.Run("UnknownGinMode", func(t *testing.T) {
		clearAll()
		setEnv("GEMINI_API_KEY", "gemini_key")
		setEnv("GIN_MODE", "production")

		_, err := NewFromEnv()
		if err == nil {
			t.Fatal("Expected an error for unsupported GIN_MODE, got nil")
		}
		expectedError := `unsupported GIN_MODE "production"`
		if err.Error() != expectedError {
			t.Errorf("Expected error '%s', got '%s'", expectedError, err.Error())
		}
	})
}
