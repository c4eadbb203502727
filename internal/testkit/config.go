// Package testkit starts the Postgres and Redis containers the integration tests run against.
package testkit

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds environment-driven configuration for integration test infrastructure.
type Config struct {
	PGImage        string
	RedisImage     string
	PGDSN          string        // If set, skip Postgres container.
	RedisAddr      string        // If set, skip Redis container.
	StartupTimeout time.Duration // Max time to wait for containers to become ready.
	KeepContainers bool
}

// LoadConfig reads test infrastructure settings from REFDATA_TEST_* variables.
func LoadConfig() Config {
	return Config{
		PGImage:        envOrDefault("REFDATA_TEST_PG_IMAGE", "postgres:18.1-alpine"),
		RedisImage:     envOrDefault("REFDATA_TEST_REDIS_IMAGE", "redis:8.4.0-alpine"),
		PGDSN:          os.Getenv("REFDATA_TEST_PG_DSN"),
		RedisAddr:      os.Getenv("REFDATA_TEST_REDIS_ADDR"),
		StartupTimeout: envDuration("REFDATA_TEST_STARTUP_TIMEOUT", 90*time.Second),
		KeepContainers: envBool("REFDATA_TEST_KEEP_CONTAINERS"),
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// envDuration accepts a Go duration or plain seconds.
func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	fmt.Fprintf(os.Stderr, "testkit: invalid %s=%q, using %v\n", key, v, def)
	return def
}

func envBool(key string) bool {
	b, _ := strconv.ParseBool(os.Getenv(key))
	return b
}
