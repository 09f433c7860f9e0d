// Package hooks invokes the external post-change hook.
package hooks

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

// Options configures a hook invocation.
type Options struct {
	Command string
	Action  string // add, status, archive or edit
	TaskID  int
	Status  string
	WorkDir string
}

// Result captures the outcome of a hook invocation.
type Result struct {
	Ran      bool
	Command  []string
	ExitCode int
}

// Invoke runs the hook command as `<command> <action> <task-id> <status>`.
// The same values are exported as PM_ACTION, PM_TASK_ID and PM_STATUS.
// An empty command is a no-op.
func Invoke(ctx context.Context, opts Options) (Result, error) {
	if opts.Command == "" {
		return Result{}, nil
	}
	if opts.Action == "" {
		return Result{}, fmt.Errorf("hook action is empty")
	}

	taskID := ""
	if opts.TaskID > 0 {
		taskID = strconv.Itoa(opts.TaskID)
	}
	args := []string{opts.Action, taskID, opts.Status}

	if ctx == nil {
		ctx = context.Background()
	}

	cmd := command(ctx, opts.Command, args)
	if opts.WorkDir != "" {
		cmd.Dir = opts.WorkDir
	}
	cmd.Env = append(os.Environ(),
		"PM_ACTION="+opts.Action,
		"PM_TASK_ID="+taskID,
		"PM_STATUS="+opts.Status,
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	result := Result{
		Ran:      true,
		Command:  cmd.Args,
		ExitCode: exitCodeFromError(err),
	}
	if err != nil {
		return result, fmt.Errorf("hook command failed: %w", err)
	}
	return result, nil
}

func exitCodeFromError(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
