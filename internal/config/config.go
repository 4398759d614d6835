package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const (
	ProviderGemini = "gemini"
	ProviderGroq   = "groq"

	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

// Config holds the configuration for the application.
type Config struct {
	LLMProvider  string
	GeminiAPIKey string
	GeminiModel  string
	GroqAPIKey   string
	GroqModel    string

	StorageDriver string
	DatabasePath  string

	Port    string
	GinMode string
}

// NewFromEnv creates a new Config object from environment variables.
// A .env file in the working directory is loaded first when present;
// variables already set in the environment take precedence.
func NewFromEnv() (*Config, error) {
	_ = godotenv.Load()

	provider := strings.ToLower(getEnv("LLM_PROVIDER", ProviderGemini))

	geminiAPIKey := os.Getenv("GEMINI_API_KEY")
	groqAPIKey := os.Getenv("GROQ_API_KEY")

	switch provider {
	case ProviderGemini:
		if geminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
		}
	case ProviderGroq:
		if groqAPIKey == "" {
			return nil, fmt.Errorf("GROQ_API_KEY environment variable not set")
		}
	default:
		return nil, fmt.Errorf("unsupported LLM_PROVIDER %q", provider)
	}

	storageDriver := strings.ToLower(getEnv("STORAGE_DRIVER", StorageSQLite))
	if storageDriver != StorageSQLite && storageDriver != StorageMemory {
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", storageDriver)
	}

	ginMode := strings.ToLower(getEnv("GIN_MODE", gin.ReleaseMode))
	switch ginMode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		return nil, fmt.Errorf("unsupported GIN_MODE %q", ginMode)
	}

	return &Config{
		LLMProvider:   provider,
		GeminiAPIKey:  geminiAPIKey,
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		GroqAPIKey:    groqAPIKey,
		GroqModel:     getEnv("GROQ_MODEL", "llama-3.3-70b-versatile"),
		StorageDriver: storageDriver,
		DatabasePath:  getEnv("DATABASE_PATH", "data/grocery.db"),
		Port:          getEnv("PORT", "8080"),
		GinMode:       ginMode,
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
