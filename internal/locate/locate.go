// Package locate answers whether a managed tool is already reachable on PATH.
package locate

import "os/exec"

// System abstracts PATH lookups.
type System interface {
	LookPath(file string) (string, error)
}

// RealSystem implements System using os/exec.
type RealSystem struct{}

// LookPath searches for an executable named file in the directories named by PATH.
func (RealSystem) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Locator checks PATH for usable tool binaries.
type Locator struct {
	// MarkerTool belongs to a toolchain that ships its own pinned copies of the managed
	// tools. When it is on PATH, PATH copies are never used.
	MarkerTool string
	System     System
}

// New returns a Locator backed by the real PATH.
func New(markerTool string) *Locator {
	return &Locator{MarkerTool: markerTool, System: RealSystem{}}
}

// IsLocallyAvailable reports whether name resolves on PATH and the marker tool does not.
func (l *Locator) IsLocallyAvailable(name string) bool {
	if l == nil || l.System == nil || name == "" {
		return false
	}
	if l.MarkerTool != "" {
		if _, err := l.System.LookPath(l.MarkerTool); err == nil {
			return false
		}
	}
	_, err := l.System.LookPath(name)
	return err == nil
}
