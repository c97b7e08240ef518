package ssr

import (
	"context"
	"os/exec"
)

// execLauncher starts real OS processes in their own process group.
type execLauncher struct{}

// Launch ignores ctx for the process lifetime: the renderer must outlive the
// startup context and is torn down by Supervisor.Stop.
func (execLauncher) Launch(ctx context.Context, c Command) (Process, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := exec.LookPath(c.Name); err != nil {
		return nil, err
	}
	return startProcess(c)
}
