package install

import (
	"context"
	"os"
)

// testSystem overrides individual System methods and falls back to RealSystem so tests can
// use t.TempDir fixtures without mocking every call.
type testSystem struct {
	RealSystem

	StatFunc         func(name string) (os.FileInfo, error)
	ChmodFunc        func(name string, mode os.FileMode) error
	MkdirAllFunc     func(path string, perm os.FileMode) error
	RemoveAllFunc    func(path string) error
	QueryVersionFunc func(ctx context.Context, path string, flag string) (string, error)
}

func (s *testSystem) Stat(name string) (os.FileInfo, error) {
	if s.StatFunc != nil {
		return s.StatFunc(name)
	}
	return s.RealSystem.Stat(name)
}

func (s *testSystem) Chmod(name string, mode os.FileMode) error {
	if s.ChmodFunc != nil {
		return s.ChmodFunc(name, mode)
	}
	return s.RealSystem.Chmod(name, mode)
}

func (s *testSystem) MkdirAll(path string, perm os.FileMode) error {
	if s.MkdirAllFunc != nil {
		return s.MkdirAllFunc(path, perm)
	}
	return s.RealSystem.MkdirAll(path, perm)
}

func (s *testSystem) RemoveAll(path string) error {
	if s.RemoveAllFunc != nil {
		return s.RemoveAllFunc(path)
	}
	return s.RealSystem.RemoveAll(path)
}

func (s *testSystem) QueryVersion(ctx context.Context, path string, flag string) (string, error) {
	if s.QueryVersionFunc != nil {
		return s.QueryVersionFunc(ctx, path, flag)
	}
	return s.RealSystem.QueryVersion(ctx, path, flag)
}
