//go:build windows

package hooks

import (
	"context"
	"os/exec"

	"github.com/nibzard/pm-go/internal/utils"
)

// command runs batch files through cmd.exe, which CreateProcess cannot
// start directly.
func command(ctx context.Context, name string, args []string) *exec.Cmd {
	if utils.IsBatchFile(name) {
		return exec.CommandContext(ctx, "cmd.exe", append([]string{"/c", name}, args...)...)
	}
	return exec.CommandContext(ctx, name, args...)
}
