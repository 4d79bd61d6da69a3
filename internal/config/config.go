package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// DefaultModel is the generation model used when GEMINI_MODEL is unset.
const DefaultModel = "gemini-1.5-flash"

// placeholderKeys are values shipped in sample .env files that must be
// treated the same as a missing key.
var placeholderKeys = map[string]bool{
	"":                  true,
	"dummy-key":         true,
	"your_api_key_here": true,
	"your-api-key":      true,
}

type Config struct {
	// Server
	Port string
	Env  string

	// Gemini AI
	GeminiAPIKey string
	GeminiModel  string

	// Frontend
	StaticDir  string
	CORSOrigin string

	// Seconds; zero disables the limit.
	ReadTimeout int
	IdleTimeout int
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:         getEnvOrDefault("PORT", "3000"),
		Env:          getEnvOrDefault("ENV", "development"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnvOrDefault("GEMINI_MODEL", DefaultModel),
		StaticDir:    getEnvOrDefault("STATIC_DIR", "./public"),
		CORSOrigin:   getEnvOrDefault("CORS_ORIGIN", "*"),
		ReadTimeout:  getEnvAsIntOrDefault("READ_TIMEOUT_SECONDS", 15),
		IdleTimeout:  getEnvAsIntOrDefault("IDLE_TIMEOUT_SECONDS", 60),
	}

	return cfg
}

// APIKeyConfigured reports whether the Gemini key is present and is not a
// sample placeholder.
func (c *Config) APIKeyConfigured() bool {
	return IsUsableAPIKey(c.GeminiAPIKey)
}

func IsUsableAPIKey(key string) bool {
	return !placeholderKeys[key]
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
