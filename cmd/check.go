package cmd

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/nibzard/pm-go/internal/task"
)

// checkCommand validates the project root, config and tracking directory.
func (a *app) checkCommand(args []string) error {
	fs := flag.NewFlagSet("pm check", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "Verbose output")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if remaining := fs.Args(); len(remaining) > 0 {
		return fmt.Errorf("unexpected arguments: %v", remaining)
	}

	fmt.Println("pm check")
	fmt.Println("========")
	fmt.Println()

	allOK := true

	// Check config
	fmt.Println("Config files:")
	if len(a.cfg.Files) == 0 {
		fmt.Println("  (none, using defaults)")
	}
	for _, f := range a.cfg.Files {
		fmt.Printf("  ✅ %s\n", f)
	}
	fmt.Println()

	// Check project root
	root, err := a.cfg.RequireRoot()
	if err != nil {
		fmt.Printf("Project root:\n  ❌ %v\n\n", err)
		fmt.Println("⚠️  Some checks failed.")
		return fmt.Errorf("check failed")
	}
	fmt.Printf("Project root: %s\n", root)
	if _, err := os.Stat(root); err != nil {
		fmt.Printf("  ❌ Error: %v\n", err)
		allOK = false
	} else {
		fmt.Println("  ✅ OK")
	}
	fmt.Println()

	// Check the tracking directory
	store, err := task.Load(root, a.storeOptions()...)
	switch {
	case errors.Is(err, task.ErrNotInitialized):
		fmt.Println("Tracking directory:")
		fmt.Println("  ❌ Not initialized (run 'pm init')")
		allOK = false
	case err != nil:
		fmt.Println("Tracking directory:")
		var corruptErr *task.CorruptStateError
		if errors.As(err, &corruptErr) {
			fmt.Printf("  ❌ %s\n", corruptErr.Path)
			fmt.Printf("     - %v\n", corruptErr.Err)
		} else {
			fmt.Printf("  ❌ %v\n", err)
		}
		allOK = false
	default:
		fmt.Printf("Tracking directory: %s\n", store.Layout().DirPath())
		fmt.Println("  ✅ Valid")
		counts := make(map[task.Status]int)
		archived := 0
		for _, t := range store.Tasks() {
			counts[t.Status]++
			if t.Archived {
				archived++
			}
		}
		fmt.Printf("  Project: %s\n", store.Project.Name)
		fmt.Printf("  Tasks: %d (todo %d, doing %d, done %d, archived %d)\n",
			len(store.Tasks()), counts[task.StatusTodo], counts[task.StatusDoing], counts[task.StatusDone], archived)
		fmt.Printf("  Next id: %d\n", store.NextID())
		if *verbose {
			for _, t := range store.Tasks() {
				path, _ := store.TaskPath(t.ID)
				fmt.Printf("    - [%s] %03d: %s (%s, %d changes)\n", t.Status, t.ID, t.Title, path, len(t.Changes))
			}
		}
	}
	fmt.Println()

	// Overall status
	if allOK {
		fmt.Println("✅ All checks passed!")
		return nil
	}
	fmt.Println("⚠️  Some checks failed.")
	return fmt.Errorf("check failed")
}
