package dispatch

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// errNotMocked is returned when a testSystem method is called without a mock function set.
var errNotMocked = errors.New("testSystem: method not mocked")

// testSystem provides a mock System for unit tests.
//
// Fallback behavior:
//   - Run: returns errNotMocked (fail-fast). Spawning real processes is opt-in.
//   - Stat, Environ: fall back to RealSystem so tests can use t.TempDir() and t.Setenv().
type testSystem struct {
	RealSystem

	StatFunc    func(name string) (os.FileInfo, error)
	EnvironFunc func() []string
	RunFunc     func(ctx context.Context, path string, args []string, env []string) error
}

func (s *testSystem) Stat(name string) (os.FileInfo, error) {
	if s.StatFunc != nil {
		return s.StatFunc(name)
	}
	return s.RealSystem.Stat(name)
}

func (s *testSystem) Environ() []string {
	if s.EnvironFunc != nil {
		return s.EnvironFunc()
	}
	return s.RealSystem.Environ()
}

func (s *testSystem) Run(ctx context.Context, path string, args []string, env []string) error {
	if s.RunFunc != nil {
		return s.RunFunc(ctx, path, args, env)
	}
	return fmt.Errorf("%w: Run", errNotMocked)
}
