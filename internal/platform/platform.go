// Package platform maps the host operating system and CPU architecture to the
// platform identifiers used for prebuilt GN and Ninja downloads.
package platform

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/conn-castle/buildtools/internal/messages"
)

// OS is a supported operating system family.
type OS string

// Arch is a supported CPU architecture.
type Arch string

// Recognized OS families and architectures. Unsupported is a valid value, not an error.
const (
	OSLinux       OS = "linux"
	OSMac         OS = "mac"
	OSUnsupported OS = "unsupported"

	ArchX64         Arch = "x64"
	ArchARM64       Arch = "arm64"
	ArchRISCV64     Arch = "riscv64"
	ArchUnsupported Arch = "unsupported"
)

// ErrUnsupported is returned when a download URL is needed for an unsupported host.
var ErrUnsupported = errors.New("unsupported platform")

// ID identifies a host platform.
type ID struct {
	OS   OS
	Arch Arch
	// Host is the raw goos/goarch pair the ID was resolved from, kept for diagnostics.
	Host string
}

// Resolve maps an operating system and machine architecture to an ID.
// Unrecognized values resolve to the unsupported markers.
func Resolve(goos string, goarch string) ID {
	return ID{
		OS:   resolveOS(goos),
		Arch: resolveArch(goarch),
		Host: goos + "/" + goarch,
	}
}

var current = sync.OnceValue(func() ID {
	return Resolve(runtime.GOOS, runtime.GOARCH)
})

// Current returns the ID of the running host. It is computed once per process.
func Current() ID {
	return current()
}

func resolveOS(goos string) OS {
	switch strings.ToLower(strings.TrimSpace(goos)) {
	case "linux":
		return OSLinux
	case "darwin", "mac", "macos":
		return OSMac
	default:
		return OSUnsupported
	}
}

func resolveArch(goarch string) Arch {
	switch strings.ToLower(strings.TrimSpace(goarch)) {
	case "amd64", "x86_64", "x64":
		return ArchX64
	case "arm64", "aarch64":
		return ArchARM64
	case "riscv64":
		return ArchRISCV64
	default:
		return ArchUnsupported
	}
}

// Supported reports whether both the OS family and the architecture are recognized.
func (id ID) Supported() bool {
	return id.OS != "" && id.Arch != "" && id.OS != OSUnsupported && id.Arch != ArchUnsupported
}

// String returns the canonical identifier, e.g. "linux-x64" or "mac-arm64".
func (id ID) String() string {
	if !id.Supported() {
		return messages.PlatformUnknown
	}
	return string(id.OS) + "-" + string(id.Arch)
}

// DirName returns the per-OS-family install subdirectory name.
func (id ID) DirName() string {
	if id.OS == "" {
		return string(OSUnsupported)
	}
	return string(id.OS)
}

// CIPDPlatform returns the package-service platform key, e.g. "linux-amd64".
func (id ID) CIPDPlatform() (string, error) {
	if !id.Supported() {
		return "", id.Err()
	}
	arch := string(id.Arch)
	if id.Arch == ArchX64 {
		arch = "amd64"
	}
	return string(id.OS) + "-" + arch, nil
}

// Err returns an error wrapping ErrUnsupported that names the host, or nil when supported.
func (id ID) Err() error {
	if id.Supported() {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnsupported, fmt.Sprintf(messages.PlatformUnsupportedFmt, id.Host))
}
