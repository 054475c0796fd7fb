package config

import (
	"os"
	"strconv"
	"time"
)

// Service constants with env var override support.
var (
	HTTPAddr         = stringEnv("HTTP_ADDR", ":9400")
	MeiliTimeout     = durationEnv("MEILI_TIMEOUT", 15*time.Second)
	FeedFetchTimeout = durationEnv("FEED_FETCH_TIMEOUT", 30*time.Second)
	ConnectRetries   = intEnv("MEILI_CONNECT_RETRIES", 5)
)

func stringEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func intEnv(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func durationEnv(key string, defaultVal time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return defaultVal
}
