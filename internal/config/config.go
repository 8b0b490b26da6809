// ABOUTME: Configuration loader for the trackdemic CLI
// ABOUTME: Loads settings from a .env file and environment variables

package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/trackdemic/trackdemic-cli/internal/store"
)

type Config struct {
	APIURL    string // Backend base URL, without the /api suffix
	ConfigDir string // Where credentials and logs live
	Debug     bool   // Enable the TUI debug log file
}

const defaultAPIURL = "http://localhost:8000"

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() *Config {
	godotenv.Load()

	return &Config{
		APIURL:    ensureScheme(getEnv("TRACKDEMIC_API_URL", defaultAPIURL)),
		ConfigDir: getEnv("TRACKDEMIC_CONFIG_DIR", store.DefaultConfigDir()),
		Debug:     getEnvBool("TRACKDEMIC_DEBUG", false),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

// ensureScheme prepends https:// to bare hosts so URL joining works.
func ensureScheme(url string) string {
	if url == "" {
		return url
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return "https://" + url
	}
	return strings.TrimRight(url, "/")
}
