// Package dispatch resolves a usable GN or Ninja binary and runs it with the caller's arguments.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"

	"github.com/fatih/color"

	"github.com/conn-castle/buildtools/internal/messages"
	"github.com/conn-castle/buildtools/internal/tools"
)

// ExitInterrupted is returned when the operator cancels a run.
const ExitInterrupted = 130

// ExitNotFound is returned when the resolved binary cannot be spawned because it does not exist.
const ExitNotFound = 127

// Locator reports whether a binary is usable straight from PATH.
type Locator interface {
	IsLocallyAvailable(name string) bool
}

// Dispatcher forwards one invocation to a managed tool.
type Dispatcher struct {
	Spec    tools.Spec
	Locator Locator
	// Install downloads the managed tools and returns a process exit code.
	Install func(ctx context.Context) int
	System  System
	Stderr  io.Writer
}

// Run resolves the tool binary and runs it with args (program name excluded).
// The result is the child's exit code, 1 when resolution fails, 127 when the binary
// cannot be found at spawn time, or 130 when ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context, args []string) int {
	if err := d.validate(); err != nil {
		_, _ = color.New(color.FgRed).Fprintln(d.stderr(), err)
		return 1
	}
	if ctx.Err() != nil {
		return d.interrupted()
	}

	path, ok := d.resolve(ctx)
	if !ok {
		if ctx.Err() != nil {
			return d.interrupted()
		}
		return 1
	}

	env := mergeEnv(d.System.Environ(), d.Spec.Env)
	err := d.System.Run(ctx, path, args, env)
	if ctx.Err() != nil {
		return d.interrupted()
	}
	if err == nil {
		return 0
	}
	if code, ok := exitCode(err); ok {
		return code
	}
	_, _ = fmt.Fprint(d.stderr(), color.RedString(messages.DispatchSpawnFailedFmt, d.Spec.Binary, path, err))
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return ExitNotFound
	}
	return 1
}

// resolve picks the binary to run: PATH first, then the install directory, then a fresh install.
func (d *Dispatcher) resolve(ctx context.Context) (string, bool) {
	if d.Locator != nil && d.Locator.IsLocallyAvailable(d.Spec.Binary) {
		return d.Spec.Binary, true
	}
	path := d.Spec.BinaryPath()
	if info, err := d.System.Stat(path); err == nil && info.Mode().IsRegular() {
		return path, true
	}
	if d.Install(ctx) != 0 {
		return "", false
	}
	return path, true
}

func (d *Dispatcher) interrupted() int {
	_, _ = color.New(color.FgYellow).Fprintf(d.stderr(), messages.InterruptedFmt, d.Spec.Binary)
	return ExitInterrupted
}

func (d *Dispatcher) validate() error {
	if d.Spec.Binary == "" {
		return errors.New(messages.DispatchSpecRequired)
	}
	if d.System == nil {
		return errors.New(messages.DispatchSystemRequired)
	}
	if d.Install == nil {
		return errors.New(messages.DispatchInstallerRequired)
	}
	return nil
}

func (d *Dispatcher) stderr() io.Writer {
	if d.Stderr == nil {
		return os.Stderr
	}
	return d.Stderr
}
