// Package envconfig resolves the process-wide default client options from
// environment variables, once per process, after godotenv.Load() has had a
// chance to populate the environment.
package envconfig

import (
	"os"
	"sync"
)

// Snapshot holds the environment-derived defaults for a Gladia client.
type Snapshot struct {
	APIKey string
	APIURL string
	Region string
}

const defaultAPIURL = "https://api.gladia.io"

var resolve = sync.OnceValue(func() Snapshot {
	return Snapshot{
		APIKey: os.Getenv("GLADIA_API_KEY"),
		APIURL: envOr("GLADIA_API_URL", defaultAPIURL),
		Region: os.Getenv("GLADIA_REGION"),
	}
})

// Defaults returns the environment snapshot taken the first time it is
// called. Subsequent calls (and calls from other goroutines) return the same
// values; the process environment is never re-read afterwards.
func Defaults() Snapshot {
	return resolve()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
