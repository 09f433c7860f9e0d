package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/nibzard/pm-go/internal/task"
)

// editCommand opens a task file in the configured editor, or applies
// --title and --description directly. An edit that leaves the store
// invalid is rolled back.
func (a *app) editCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("pm edit", flag.ContinueOnError)
	var title, description optionalString
	fs.Var(&title, "title", "Set the title without opening an editor")
	fs.Var(&description, "description", "Set the description without opening an editor")

	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := singleID("edit", fs.Args())
	if err != nil {
		return err
	}

	store, err := a.loadStore()
	if err != nil {
		return err
	}

	if title.set || description.set {
		if title.set {
			if err := store.SetTitle(id, title.value); err != nil {
				return fmt.Errorf("editing task: %w", err)
			}
		}
		if description.set {
			if err := store.SetDescription(id, description.value); err != nil {
				return fmt.Errorf("editing task: %w", err)
			}
		}
		if err := a.saveStore(store); err != nil {
			return err
		}
		return a.afterEdit(ctx, store, id)
	}

	path, err := store.TaskPath(id)
	if err != nil {
		return err
	}
	original, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading task file: %w", err)
	}

	if err := a.runEditor(ctx, path); err != nil {
		return err
	}

	// Re-load so a hand edit goes through the same validation as
	// everything else, then save to normalize the file.
	edited, err := a.loadStore()
	if err != nil {
		if restoreErr := atomic.WriteFile(path, bytes.NewReader(original)); restoreErr != nil {
			return fmt.Errorf("%w (restoring %s: %v)", err, path, restoreErr)
		}
		return fmt.Errorf("edit discarded: %w", err)
	}
	if err := a.saveStore(edited); err != nil {
		return err
	}
	return a.afterEdit(ctx, edited, id)
}

func (a *app) afterEdit(ctx context.Context, store *task.Store, id int) error {
	t, err := store.Task(id)
	if err != nil {
		return err
	}
	a.runHook(ctx, "edit", t)
	return nil
}

// runEditor runs the configured editor on path, attached to the terminal.
func (a *app) runEditor(ctx context.Context, path string) error {
	parts := strings.Fields(a.cfg.Editor)
	if len(parts) == 0 {
		return fmt.Errorf("no editor configured (set PM_EDITOR or EDITOR)")
	}

	cmd := exec.CommandContext(ctx, parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	a.logger.Debug("running editor", "editor", parts[0], "path", path)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running editor %s: %w", parts[0], err)
	}
	return nil
}

// optionalString is a flag value that records whether it was set, so
// an explicit empty description can clear the field.
type optionalString struct {
	value string
	set   bool
}

func (o *optionalString) String() string {
	return o.value
}

func (o *optionalString) Set(v string) error {
	o.value = v
	o.set = true
	return nil
}
