// Package config loads client configuration from the environment,
// with optional .env file support.
package config

import (
	"os"
	"sync"

	"github.com/joho/godotenv"
)

// DefaultAPIBaseURL is used when FEEDBOARD_API_URL is not set.
const DefaultAPIBaseURL = "http://localhost:8080"

var loadOnce sync.Once

// load reads a .env file once if present; real environment wins.
func load() {
	loadOnce.Do(func() { _ = godotenv.Load() })
}

// APIBaseURL returns the backend base URL for the API client.
func APIBaseURL() string {
	load()
	if v := os.Getenv("FEEDBOARD_API_URL"); v != "" {
		return v
	}
	return DefaultAPIBaseURL
}
