package dispatch

import (
	"context"
	"io"
	"os"
)

// System abstracts OS operations needed to resolve and run a tool.
// This interface is package-local; install and locate define their own.
type System interface {
	Stat(name string) (os.FileInfo, error)
	Environ() []string
	// Run spawns path with args and env, inheriting stdio, and waits for it to exit.
	Run(ctx context.Context, path string, args []string, env []string) error
}

// RealSystem implements System using the OS.
type RealSystem struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Stat returns a FileInfo describing the named file.
func (RealSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// Environ returns a copy of strings representing the environment.
func (RealSystem) Environ() []string {
	return os.Environ()
}

// Run spawns the tool as a child process.
func (s RealSystem) Run(ctx context.Context, path string, args []string, env []string) error {
	return runChild(ctx, path, args, env, s.stdin(), s.stdout(), s.stderr())
}

func (s RealSystem) stdin() io.Reader {
	if s.Stdin == nil {
		return os.Stdin
	}
	return s.Stdin
}

func (s RealSystem) stdout() io.Writer {
	if s.Stdout == nil {
		return os.Stdout
	}
	return s.Stdout
}

func (s RealSystem) stderr() io.Writer {
	if s.Stderr == nil {
		return os.Stderr
	}
	return s.Stderr
}
