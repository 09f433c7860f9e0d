package config

import (
	"flag"
)

// flagFields maps flag names to config field names.
var flagFields = map[string]string{
	"root":           "root",
	"dir":            "dir",
	"hook":           "hook",
	"log-level":      "log_level",
	"log-format":     "log_format",
	"log-timestamps": "log_timestamps",
	"archived":       "board.show_archived",
	"color":          "board.color",
}

// parseFlags defines the global flags on fs, parses args and records
// which flags were set explicitly.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("pm", flag.ContinueOnError)
	}

	// Path flags
	fs.StringVar(&cfg.Root, "root", cfg.Root, "Project root (default: nearest directory containing .git)")
	fs.StringVar(&cfg.Dir, "dir", cfg.Dir, "Tracking directory name inside the project root")

	// Hook
	fs.StringVar(&cfg.Hook, "hook", cfg.Hook, "Command to run after every saved change")

	// Logging
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text|json|logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Include timestamps in log output")

	// Board
	fs.BoolVar(&cfg.Board.ShowArchived, "archived", cfg.Board.ShowArchived, "Include archived tasks on the board")
	fs.StringVar(&cfg.Board.Color, "color", cfg.Board.Color, "Color output (auto|always|never)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if field, ok := flagFields[f.Name]; ok {
			sources[field] = SourceFlag
		}
	})
	return nil
}
