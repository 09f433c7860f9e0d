// Package cmd implements the CLI command structure for pm.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/pm-go/internal/board"
	"github.com/nibzard/pm-go/internal/config"
	"github.com/nibzard/pm-go/internal/hooks"
	"github.com/nibzard/pm-go/internal/logging"
	"github.com/nibzard/pm-go/internal/task"
)

// Version is set via ldflags at build time.
var Version = "dev"

// app carries what every command handler needs.
type app struct {
	cfg     *config.Config
	sources map[string]config.ConfigSource
	logger  *log.Logger
}

// Run executes the pm CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("pm", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	cfg := cws.Config
	a := &app{
		cfg:     cfg,
		sources: cws.Sources,
		logger:  logging.FromConfig(os.Stderr, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps),
	}
	a.logger.Debug("config loaded", "root", cfg.ProjectRoot, "dir", cfg.Dir, "files", cfg.Files)

	// With no command, show the board.
	subcommand := "show"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	// Execute the subcommand
	switch subcommand {
	case "init":
		return a.initCommand(remainingArgs)
	case "add":
		return a.addCommand(ctx, remainingArgs)
	case "status", "move":
		return a.statusCommand(ctx, remainingArgs)
	case "start":
		return a.shortcutCommand(ctx, "start", task.StatusDoing, remainingArgs)
	case "finish":
		return a.shortcutCommand(ctx, "finish", task.StatusDone, remainingArgs)
	case "show", "ls":
		return a.showCommand(remainingArgs)
	case "archive", "delete":
		return a.archiveCommand(ctx, remainingArgs)
	case "edit":
		return a.editCommand(ctx, remainingArgs)
	case "check":
		return a.checkCommand(remainingArgs)
	case "board":
		return a.boardCommand(ctx, remainingArgs)
	case "config":
		return a.configCommand(remainingArgs)
	case "completion":
		return completionCommand(remainingArgs)
	case "version":
		return versionCommand()
	case "help":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// storeOptions returns the options every command opens the store with.
func (a *app) storeOptions() []task.Option {
	return []task.Option{
		task.WithDir(a.cfg.Dir),
		task.WithLogger(a.logger),
	}
}

// loadStore loads the store from the project root.
func (a *app) loadStore() (*task.Store, error) {
	root, err := a.cfg.RequireRoot()
	if err != nil {
		return nil, err
	}
	store, err := task.Load(root, a.storeOptions()...)
	if err != nil {
		if errors.Is(err, task.ErrNotInitialized) {
			return nil, fmt.Errorf("loading store: %w (run 'pm init' first)", err)
		}
		return nil, fmt.Errorf("loading store: %w", err)
	}
	a.logger.Debug("loaded store", "index", store.Layout().IndexPath(), "tasks", len(store.Tasks()))
	return store, nil
}

// saveStore saves the store and wraps the error.
func (a *app) saveStore(store *task.Store) error {
	if err := store.Save(); err != nil {
		return fmt.Errorf("saving store: %w", err)
	}
	return nil
}

// runHook runs the configured hook after a saved change. A failing hook
// is reported but does not undo the change.
func (a *app) runHook(ctx context.Context, action string, t *task.Task) {
	if a.cfg.Hook == "" {
		return
	}
	result, err := hooks.Invoke(ctx, hooks.Options{
		Command: a.cfg.Hook,
		Action:  action,
		TaskID:  t.ID,
		Status:  string(t.Status),
		WorkDir: a.cfg.ProjectRoot,
	})
	if result.Ran {
		a.logger.Debug("hook ran", "command", result.Command, "exit_code", result.ExitCode)
	}
	if err != nil {
		a.logger.Warn("hook failed", "action", action, "task", t.ID, "err", err)
	}
}

// printBoard writes the board to stdout.
func (a *app) printBoard(store *task.Store, includeArchived bool) error {
	return board.New(os.Stdout, a.cfg.Board.Color).Board(store.Board(includeArchived))
}

// parseID parses a task id argument.
func parseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid task id %q (expected a positive number)", s)
	}
	return id, nil
}

// singleID parses args that must hold exactly one task id.
func singleID(verb string, args []string) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%s: task id is required", verb)
	}
	if len(args) > 1 {
		return 0, fmt.Errorf("unexpected arguments: %v", args[1:])
	}
	return parseID(args[0])
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Printf("pm version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "pm - a task tracker that lives in your repository")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  pm [options] [command] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  init [--name N] [--description D]  Create the tracking directory")
	fmt.Fprintln(w, "  add <words...> [:label:...]         Add a task (labels as :a: or :a:b:)")
	fmt.Fprintln(w, "  status <id> <todo|doing|done>       Move a task (alias: move)")
	fmt.Fprintln(w, "  start <id>                          Move a task to Doing")
	fmt.Fprintln(w, "  finish <id>                         Move a task to Done")
	fmt.Fprintln(w, "  show [id]                           Show the board or one task (default command)")
	fmt.Fprintln(w, "  archive <id>                        Hide a task from the board (alias: delete)")
	fmt.Fprintln(w, "  edit <id>                           Edit a task file in $EDITOR")
	fmt.Fprintln(w, "  check                               Validate the tracking directory")
	fmt.Fprintln(w, "  board                               Launch the interactive board")
	fmt.Fprintln(w, "  config [--example]                  Show the effective configuration")
	fmt.Fprintln(w, "  completion <shell>                  Print a shell completion script")
	fmt.Fprintln(w, "  version                             Show version information")
	fmt.Fprintln(w, "  help                                Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Edit Options (use with 'edit' command):")
	fmt.Fprintln(w, "  -title string")
	fmt.Fprintln(w, "        Set the title without opening an editor")
	fmt.Fprintln(w, "  -description string")
	fmt.Fprintln(w, "        Set the description without opening an editor")
}
