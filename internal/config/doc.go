// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.pm/pm.toml or OS-specific config directory)
// 3. Project config file (pm.toml or .pm.toml in the working directory)
// 4. Environment variables (PM_*, plus EDITOR)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.pm/pm.toml (preferred)
// - Windows: %APPDATA%\pm\pm.toml
// - macOS: ~/Library/Application Support/pm/pm.toml
// - Linux/BSD: $XDG_CONFIG_HOME/pm/pm.toml or ~/.config/pm/pm.toml
//
// The project root is the --root value when given, otherwise the nearest
// directory at or above the working directory that contains .git.
package config
