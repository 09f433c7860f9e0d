package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/nibzard/pm-go/internal/task"
	"github.com/nibzard/pm-go/internal/ui"
)

// boardCommand launches the interactive board.
func (a *app) boardCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("pm board", flag.ContinueOnError)
	archived := fs.Bool("archived", a.cfg.Board.ShowArchived, "Include archived tasks")
	interval := fs.Duration("refresh", 0, "Reload interval (0 for the default)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if remaining := fs.Args(); len(remaining) > 0 {
		return fmt.Errorf("unexpected arguments: %v", remaining)
	}

	// Fail fast on a missing or broken store before taking over the terminal.
	if _, err := a.loadStore(); err != nil {
		return err
	}

	opts := []ui.Option{ui.WithShowArchived(*archived)}
	if *interval > 0 {
		opts = append(opts, ui.WithRefreshInterval(*interval))
	}
	load := func() (*task.Store, error) {
		return a.loadStore()
	}
	return ui.Run(ctx, load, opts...)
}
