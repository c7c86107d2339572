package config

// Package config provides layered configuration management for the trading
// engine: compiled defaults, an optional JSON file overlay, and environment
// variable overrides, validated as a whole before anything else runs.

import (
	"os"

	apperrors "github.com/ahfte/trading-engine/internal/errors"
)

// Section keys as they appear in the configuration file
const (
	SectionTrading = "trading"
	SectionBackend = "backend"
	SectionAPI     = "api"
)

// EnvLookup resolves a named environment variable, returning the empty
// string when unset. Injected into section constructors so tests can
// supply a fake environment without touching process state.
type EnvLookup func(key string) string

// Section is a named, independently validated group of configuration fields
type Section interface {
	// Name returns the section key used in the configuration file
	Name() string

	// ToMap returns the section's fields as a serializable mapping
	ToMap() map[string]interface{}

	// Validate checks the section's values and returns hard failures that
	// must abort initialization plus soft warnings that are logged only
	Validate() (hard []*apperrors.ConfigError, soft []string)
}

func envOrGetenv(env EnvLookup) EnvLookup {
	if env == nil {
		return os.Getenv
	}
	return env
}

// setString assigns v to dst if it is a string, reporting success
func setString(dst *string, v interface{}) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	*dst = s
	return true
}

// setFloat assigns v to dst if it is numeric, reporting success
func setFloat(dst *float64, v interface{}) bool {
	switch n := v.(type) {
	case float64:
		*dst = n
	case int:
		*dst = float64(n)
	default:
		return false
	}
	return true
}

// setInt assigns v to dst if it is numeric, reporting success.
// JSON decoding yields float64 for all numbers, so both forms are accepted.
func setInt(dst *int, v interface{}) bool {
	switch n := v.(type) {
	case int:
		*dst = n
	case float64:
		*dst = int(n)
	default:
		return false
	}
	return true
}
