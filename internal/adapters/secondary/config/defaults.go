package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/transudeck/deckd/internal/domain/entities"
)

// GetDefaultConfig returns the default configuration with environment overrides
func GetDefaultConfig() *entities.Config {
	return &entities.Config{
		Server: entities.ServerConfig{
			Host:            getEnvOrDefault("DECKD_HOST", "localhost"),
			Port:            getEnvIntOrDefault("DECKD_PORT", 8001),
			ReadTimeout:     getEnvIntOrDefault("DECKD_READ_TIMEOUT", 30),
			WriteTimeout:    getEnvIntOrDefault("DECKD_WRITE_TIMEOUT", 30),
			ShutdownTimeout: getEnvIntOrDefault("DECKD_SHUTDOWN_TIMEOUT", 5),
			CORSOrigins: getEnvSliceOrDefault("DECKD_CORS_ORIGINS", []string{
				"http://localhost:3000",
				"http://127.0.0.1:3000",
				"http://localhost:8080",
				"http://127.0.0.1:8080",
			}),
		},
		GenAI: entities.GenAIConfig{
			APIKey:         getEnvOrDefault("DECKD_GENAI_API_KEY", ""),
			APIURL:         getEnvOrDefault("DECKD_GENAI_API_URL", ""),
			RequestTimeout: getEnvIntOrDefault("DECKD_GENAI_TIMEOUT", 60),
			MaxRetries:     getEnvIntOrDefault("DECKD_GENAI_MAX_RETRIES", 2),
		},
		Export: entities.ExportConfig{
			OutputDir: getEnvOrDefault("DECKD_OUTPUT_DIR", defaultOutputDir()),
			Theme:     getEnvOrDefault("DECKD_EXPORT_THEME", "default"),
		},
		Logging: entities.LoggingConfig{
			Level:   getEnvOrDefault("DECKD_LOG_LEVEL", "info"),
			Verbose: getEnvBoolOrDefault("DECKD_LOG_VERBOSE", false),
		},
	}
}

// defaultOutputDir is where export artifacts land when unconfigured
func defaultOutputDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "outputs"
	}
	return filepath.Join(homeDir, ".local", "share", "deckd", "outputs")
}

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvIntOrDefault returns environment variable as int or default
func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBoolOrDefault returns environment variable as bool or default
func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvSliceOrDefault returns environment variable as comma-separated slice
// or default
func getEnvSliceOrDefault(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		result := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}
