package config

import (
	"os"
	"strings"
)

// loadFromEnv overrides config from environment variables and updates source tracking.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	setString := func(field string, target *string, keys ...string) {
		for _, key := range keys {
			if v := os.Getenv(key); v != "" {
				*target = v
				sources[field] = SourceEnv
				return
			}
		}
	}
	setBool := func(field string, target *bool, key string) {
		if v := os.Getenv(key); v != "" {
			*target = boolFromString(v)
			sources[field] = SourceEnv
		}
	}

	setString("root", &cfg.Root, "PM_ROOT")
	setString("dir", &cfg.Dir, "PM_DIR")
	setString("editor", &cfg.Editor, "PM_EDITOR", "VISUAL", "EDITOR")
	setString("hook", &cfg.Hook, "PM_HOOK")
	setString("log_level", &cfg.LogLevel, "PM_LOG_LEVEL")
	setString("log_format", &cfg.LogFormat, "PM_LOG_FORMAT")
	setBool("log_timestamps", &cfg.LogTimestamps, "PM_LOG_TIMESTAMPS")
	setBool("board.show_archived", &cfg.Board.ShowArchived, "PM_SHOW_ARCHIVED")
	setString("board.color", &cfg.Board.Color, "PM_COLOR")

	// NO_COLOR (https://no-color.org) wins over an unset PM_COLOR.
	if os.Getenv("PM_COLOR") == "" && os.Getenv("NO_COLOR") != "" {
		cfg.Board.Color = "never"
		sources["board.color"] = SourceEnv
	}
}

// boolFromString parses a boolean from a string.
func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
