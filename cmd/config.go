package cmd

import (
	"flag"
	"fmt"

	"github.com/nibzard/pm-go/internal/config"
)

// configCommand prints the effective configuration with the source of each value.
func (a *app) configCommand(args []string) error {
	fs := flag.NewFlagSet("pm config", flag.ContinueOnError)
	example := fs.Bool("example", false, "Print an example config file")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if remaining := fs.Args(); len(remaining) > 0 {
		return fmt.Errorf("unexpected arguments: %v", remaining)
	}

	if *example {
		fmt.Print(config.ExampleConfig())
		return nil
	}

	cfg := a.cfg
	root := cfg.ProjectRoot
	if root == "" {
		root = "(not found)"
	}
	rows := []struct {
		key   string
		value any
	}{
		{"root", root},
		{"dir", cfg.Dir},
		{"editor", cfg.Editor},
		{"log_level", cfg.LogLevel},
		{"log_format", cfg.LogFormat},
		{"log_timestamps", cfg.LogTimestamps},
		{"board.show_archived", cfg.Board.ShowArchived},
		{"board.color", cfg.Board.Color},
	}
	for _, row := range rows {
		fmt.Printf("%-20s %-30v (%s)\n", row.key, row.value, a.sources[row.key])
	}
	for _, f := range cfg.Files {
		fmt.Printf("# read %s\n", f)
	}
	return nil
}
