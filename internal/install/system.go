package install

import (
	"context"
	"os"
	"os/exec"
	"strings"
)

// System abstracts the filesystem and process operations needed by the installer.
// Other packages (locate, dispatch) define their own System interfaces for their needs.
type System interface {
	Stat(name string) (os.FileInfo, error)
	Chmod(name string, mode os.FileMode) error
	MkdirAll(path string, perm os.FileMode) error
	RemoveAll(path string) error
	// QueryVersion runs path with flag and returns its trimmed standard output.
	QueryVersion(ctx context.Context, path string, flag string) (string, error)
}

// RealSystem implements System using the OS.
type RealSystem struct{}

// Stat returns a FileInfo describing the named file.
func (RealSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// Chmod changes the mode of the named file.
func (RealSystem) Chmod(name string, mode os.FileMode) error {
	return os.Chmod(name, mode)
}

// MkdirAll creates a directory named path, along with any necessary parents.
func (RealSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// RemoveAll removes path and any children it contains.
func (RealSystem) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

// QueryVersion runs the binary with its version flag.
func (RealSystem) QueryVersion(ctx context.Context, path string, flag string) (string, error) {
	out, err := exec.CommandContext(ctx, path, flag).Output() // #nosec G204 -- path is a managed install location
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
