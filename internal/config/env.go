package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// lookup returns def when key is unset, blank or rejected by parse.
func lookup[T any](key string, def T, parse func(string) (T, bool)) T {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	if v, ok := parse(raw); ok {
		return v
	}
	return def
}

func envOrDefault(key, defaultValue string) string {
	return lookup(key, defaultValue, func(s string) (string, bool) { return s, true })
}

// Non-positive durations and ints fall back to the default.
func durationEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	return lookup(key, defaultValue, func(s string) (time.Duration, bool) {
		d, err := time.ParseDuration(s)
		return d, err == nil && d > 0
	})
}

func intEnvOrDefault(key string, defaultValue int) int {
	return lookup(key, defaultValue, func(s string) (int, bool) {
		n, err := strconv.Atoi(s)
		return n, err == nil && n > 0
	})
}

func boolEnvOrDefault(key string, defaultValue bool) bool {
	return lookup(key, defaultValue, func(s string) (bool, bool) {
		switch strings.ToLower(s) {
		case "1", "true", "yes", "on":
			return true, true
		case "0", "false", "no", "off":
			return false, true
		}
		return false, false
	})
}

// listEnvOrDefault splits a comma-separated value, dropping blanks.
func listEnvOrDefault(key string, defaultValue []string) []string {
	return lookup(key, defaultValue, func(s string) ([]string, bool) {
		var out []string
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out, len(out) > 0
	})
}
