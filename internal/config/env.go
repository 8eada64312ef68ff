package config

import (
	"os"
	"strings"
)

// loadFromEnv overrides config from environment variables.
func loadFromEnv(cfg *Config) {
	loadFromEnvHelper(cfg, nil, "")
}

// loadFromEnvWithSources loads environment variables and updates source tracking.
func loadFromEnvWithSources(cfg *Config, sources map[string]ConfigSource) {
	loadFromEnvHelper(cfg, sources, SourceEnv)
}

// loadFromEnvHelper is the shared implementation for env loading.
// If sources is non-nil, it tracks the source of each value.
func loadFromEnvHelper(cfg *Config, sources map[string]ConfigSource, source ConfigSource) {
	setEnv := func(field string) {
		if sources != nil {
			sources[field] = source
		}
	}

	if v := os.Getenv("TODO_SEED"); v != "" {
		cfg.SeedFile = v
		setEnv("seed_file")
	}
	if v := os.Getenv("TODO_LOG_DIR"); v != "" {
		cfg.LogDir = v
		setEnv("log_dir")
	}
	if v := os.Getenv("TODO_PRIORITY"); v != "" {
		cfg.DefaultPriority = v
		setEnv("default_priority")
	}
	if v := os.Getenv("TODO_CATEGORY"); v != "" {
		cfg.DefaultCategory = v
		setEnv("default_category")
	}
	if v := os.Getenv("TODO_FILTER"); v != "" {
		cfg.Filter = v
		setEnv("filter")
	}
	if v := os.Getenv("TODO_SORT"); v != "" {
		cfg.Sort = v
		setEnv("sort")
	}
	if v := os.Getenv("TODO_SESSION_LOG"); v != "" {
		cfg.SessionLog = boolFromString(v)
		setEnv("session_log")
	}

	// Logging configuration
	if v := os.Getenv("TODO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
		setEnv("log_level")
	}
	if v := os.Getenv("TODO_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
		setEnv("log_format")
	}
	if v := os.Getenv("TODO_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
		setEnv("log_timestamps")
	}
	if v := os.Getenv("TODO_LOG_CALLER"); v != "" {
		cfg.LogCaller = boolFromString(v)
		setEnv("log_caller")
	}
}

// boolFromString interprets common truthy strings.
func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
