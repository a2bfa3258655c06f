// Package config provides environment-based configuration for the service.
package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds every runtime setting read from the environment.
type Config struct {
	Host        string
	Port        int
	LogLevel    string
	CORSOrigins []string

	// OpenAIAPIKey enables the remote analyzer; empty means heuristic-only.
	OpenAIAPIKey string
	OpenAIModel  string

	PresetJobFile   string
	PresetResumeDir string
}

// Load reads the configuration from the environment, applying defaults for
// anything unset. It never fails: malformed numeric values fall back to
// their defaults.
func Load() *Config {
	return &Config{
		Host:            envOr("HOST", "0.0.0.0"),
		Port:            envInt("PORT", 3333),
		LogLevel:        envOr("LOG_LEVEL", "info"),
		CORSOrigins:     splitOrigins(envOr("CORS_ORIGIN", "*")),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:     envOr("OPENAI_MATCH_MODEL", "gpt-4o-mini"),
		PresetJobFile:   envOr("PRESET_JOB_FILE", "mocks/jobs/jobdesc_eng_fullstack.json"),
		PresetResumeDir: envOr("PRESET_RESUME_DIR", "mocks/cvs"),
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return origins
}
