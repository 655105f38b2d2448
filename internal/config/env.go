package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// envPrefix prefixes every environment variable read by loadFromEnv.
const envPrefix = "REMINDERS_"

// loadFromEnv overrides config from REMINDERS_* environment variables and
// records each override in sources.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) error {
	setEnv := func(field string) {
		if sources != nil {
			sources[field] = SourceEnv
		}
	}

	if v := os.Getenv(envPrefix + "FILE"); v != "" {
		cfg.DataFile = v
		setEnv("data_file")
	}
	if v := os.Getenv(envPrefix + "FORMAT"); v != "" {
		cfg.Format = v
		setEnv("format")
	}
	if v := os.Getenv(envPrefix + "AUTO_SAVE"); v != "" {
		cfg.AutoSave = boolFromString(v)
		setEnv("auto_save")
	}
	if v := os.Getenv(envPrefix + "HOUR_FORMAT"); v != "" {
		i, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%sHOUR_FORMAT: %q is not a number", envPrefix, v)
		}
		cfg.HourFormat = i
		setEnv("hour_format")
	}
	if v := os.Getenv(envPrefix + "HOOK"); v != "" {
		cfg.HookCommand = v
		setEnv("hook_command")
	}

	// Logging configuration
	if v := os.Getenv(envPrefix + "LOG_DIR"); v != "" {
		cfg.LogDir = v
		setEnv("log_dir")
	}
	if v := os.Getenv(envPrefix + "LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
		setEnv("log_level")
	}
	if v := os.Getenv(envPrefix + "LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
		setEnv("log_format")
	}
	if v := os.Getenv(envPrefix + "LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
		setEnv("log_timestamps")
	}
	if v := os.Getenv(envPrefix + "LOG_CALLER"); v != "" {
		cfg.LogCaller = boolFromString(v)
		setEnv("log_caller")
	}
	return nil
}

// boolFromString parses common truthy spellings; anything else is false.
func boolFromString(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on", "y":
		return true
	default:
		return false
	}
}
