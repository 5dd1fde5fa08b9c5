package cli

import (
	"os"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	APIKey    string
	Output    string
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("FNSTATS_SERVER", "http://localhost:8000"),
		APIKey:    os.Getenv("FNSTATS_API_KEY"),
		Output:    "text",
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
