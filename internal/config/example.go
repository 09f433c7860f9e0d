package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# pm configuration file
# Values can be overridden by environment variables (PM_*) or CLI flags

# Project root (default: nearest directory containing .git)
# root = "~/src/project"

# Tracking directory name inside the project root
dir = "pm"

# Editor for "pm edit" (falls back to $VISUAL, then $EDITOR)
editor = "vim"

# Command run after every saved change as: <hook> <action> <task-id> <status>
# hook = "./scripts/pm-hook.sh"

# Logging: debug, info, warn or error; text, json or logfmt
log_level = "warn"
log_format = "text"
log_timestamps = false

[board]
# Include archived tasks on the board
show_archived = false
# auto, always or never
color = "auto"
`
}
