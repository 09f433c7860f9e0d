package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nibzard/pm-go/internal/board"
	"github.com/nibzard/pm-go/internal/task"
)

// initCommand creates the tracking directory.
func (a *app) initCommand(args []string) error {
	fs := flag.NewFlagSet("pm init", flag.ContinueOnError)
	name := fs.String("name", "", "Project name (default: project root directory name)")
	fs.StringVar(name, "n", "", "Project name (shorthand)")
	description := fs.String("description", "", "Project description")

	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	if len(remaining) == 1 && *name == "" {
		*name = remaining[0]
	}

	root, err := a.cfg.RequireRoot()
	if err != nil {
		return err
	}
	if strings.TrimSpace(*name) == "" {
		*name = filepath.Base(root)
	}

	store, err := task.Init(root, task.Project{Name: *name, Description: *description}, a.storeOptions()...)
	if err != nil {
		return fmt.Errorf("initializing: %w", err)
	}
	fmt.Printf("Initialized %s in %s\n", store.Project.Name, store.Layout().DirPath())
	return nil
}

// addCommand creates a task from the entry words and prints the board.
func (a *app) addCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("pm add", flag.ContinueOnError)
	description := fs.String("description", "", "Task description")
	fs.StringVar(description, "d", "", "Task description (shorthand)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	title, labels := task.ParseEntry(fs.Args())
	if title == "" {
		return fmt.Errorf("add: task title is required")
	}

	store, err := a.loadStore()
	if err != nil {
		return err
	}
	t, err := store.AddTask(title, *description, labels)
	if err != nil {
		return fmt.Errorf("creating task: %w", err)
	}
	if err := a.saveStore(store); err != nil {
		return err
	}
	a.logger.Info("added task", "id", t.ID, "file", t.Slug()+".yml")
	a.runHook(ctx, "add", t)
	return a.printBoard(store, a.cfg.Board.ShowArchived)
}

// statusCommand moves a task to the given status and prints the board.
func (a *app) statusCommand(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("status: expected <id> <status>, got %d arguments", len(args))
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	status, err := task.ParseStatus(args[1])
	if err != nil {
		return err
	}
	return a.moveTask(ctx, id, status)
}

// shortcutCommand moves a task to a fixed status.
func (a *app) shortcutCommand(ctx context.Context, verb string, status task.Status, args []string) error {
	id, err := singleID(verb, args)
	if err != nil {
		return err
	}
	return a.moveTask(ctx, id, status)
}

func (a *app) moveTask(ctx context.Context, id int, status task.Status) error {
	store, err := a.loadStore()
	if err != nil {
		return err
	}
	t, err := store.Transition(id, status)
	if err != nil {
		return fmt.Errorf("moving task: %w", err)
	}
	if err := a.saveStore(store); err != nil {
		return err
	}
	a.runHook(ctx, "status", t)
	return a.printBoard(store, a.cfg.Board.ShowArchived)
}

// showCommand prints the board, or one task when an id is given.
func (a *app) showCommand(args []string) error {
	fs := flag.NewFlagSet("pm show", flag.ContinueOnError)
	archived := fs.Bool("archived", a.cfg.Board.ShowArchived, "Include archived tasks")
	fs.BoolVar(archived, "a", a.cfg.Board.ShowArchived, "Include archived tasks (shorthand)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}

	store, err := a.loadStore()
	if err != nil {
		return err
	}
	if len(remaining) == 0 {
		return a.printBoard(store, *archived)
	}

	id, err := parseID(remaining[0])
	if err != nil {
		return err
	}
	t, err := store.Task(id)
	if err != nil {
		return err
	}
	return board.New(os.Stdout, a.cfg.Board.Color).Detail(t)
}

// archiveCommand hides a task from the board. The task file stays.
func (a *app) archiveCommand(ctx context.Context, args []string) error {
	id, err := singleID("archive", args)
	if err != nil {
		return err
	}
	store, err := a.loadStore()
	if err != nil {
		return err
	}
	t, err := store.Archive(id)
	if err != nil {
		return fmt.Errorf("archiving task: %w", err)
	}
	if err := a.saveStore(store); err != nil {
		return err
	}
	a.runHook(ctx, "archive", t)
	return a.printBoard(store, a.cfg.Board.ShowArchived)
}
