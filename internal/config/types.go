package config

import (
	"fmt"

	"github.com/nibzard/pm-go/internal/pmdir"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
}

// Default values.
const (
	DefaultDir       = pmdir.Dir
	DefaultEditor    = "vim"
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
	DefaultColor     = "auto"
)

// Config holds the full configuration for pm.
type Config struct {
	// Paths
	Root string `toml:"root"`
	Dir  string `toml:"dir"`

	// Editor used by `pm edit`
	Editor string `toml:"editor"`

	// Command run after every change that is saved
	Hook string `toml:"hook"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`

	// Board rendering
	Board BoardConfig `toml:"board"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`

	// Config files that were read, lowest priority first (computed)
	Files []string `toml:"-"`
}

// BoardConfig controls board output.
type BoardConfig struct {
	ShowArchived bool   `toml:"show_archived"`
	Color        string `toml:"color"` // auto, always or never
}

// RequireRoot returns the project root or an error when none was found.
func (c *Config) RequireRoot() (string, error) {
	if c.ProjectRoot == "" {
		return "", fmt.Errorf("could not find project root (no .git directory found); use --root")
	}
	return c.ProjectRoot, nil
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"root",
		"dir",
		"editor",
		"hook",
		"log_level",
		"log_format",
		"log_timestamps",
		"board.show_archived",
		"board.color",
	}
}

// setDefaults fills cfg with built-in defaults.
func setDefaults(cfg *Config) {
	cfg.Dir = DefaultDir
	cfg.Editor = DefaultEditor
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.Board.Color = DefaultColor
}
