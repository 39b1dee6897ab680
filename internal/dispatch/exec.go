package dispatch

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"syscall"
	"time"
)

// childWaitDelay bounds how long a child may keep running after it was asked to stop.
var childWaitDelay = 5 * time.Second

// runChild runs path to completion. Cancelling ctx forwards an interrupt to the child
// rather than killing it outright.
func runChild(ctx context.Context, path string, args []string, env []string, stdin io.Reader, stdout io.Writer, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, path, args...) // #nosec G204 -- forwarding the user's own invocation
	cmd.Env = env
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = childWaitDelay
	return cmd.Run()
}

// exitCode maps a child's wait error to a process exit status.
// Children killed by a signal report 128+signal, as shells do.
func exitCode(err error) (int, bool) {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return 0, false
	}
	if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		return 128 + int(status.Signal()), true
	}
	return exitErr.ExitCode(), true
}
