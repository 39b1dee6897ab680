// Package tools defines the managed build tools (GN and Ninja) and how their
// download URLs and install paths are derived for a platform.
package tools

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/conn-castle/buildtools/internal/config"
	"github.com/conn-castle/buildtools/internal/platform"
)

// Names of the managed tools.
const (
	GN    = "gn"
	Ninja = "ninja"
)

// EnvNinjaStatus is the Ninja progress-status format variable.
const EnvNinjaStatus = "NINJA_STATUS"

// Spec describes one managed tool for a specific platform.
type Spec struct {
	// Name is the display name used in progress messages ("GN", "Ninja").
	Name string
	// Binary is the canonical executable file name and zip entry name.
	Binary      string
	URLTemplate string
	InstallDir  string
	VersionFlag string
	// Env entries are set in the child environment, overriding inherited values.
	Env map[string]string

	Platform platform.ID
}

// Specs returns the GN and Ninja specs, in install order.
func Specs(cfg *config.Config, id platform.ID) []Spec {
	dir := cfg.PlatformDir(id)
	return []Spec{
		{
			Name:        "GN",
			Binary:      GN,
			URLTemplate: cfg.GN.URL,
			InstallDir:  dir,
			VersionFlag: "--version",
			Platform:    id,
		},
		{
			Name:        "Ninja",
			Binary:      Ninja,
			URLTemplate: cfg.Ninja.URL,
			InstallDir:  dir,
			VersionFlag: "--version",
			Env:         map[string]string{EnvNinjaStatus: cfg.Ninja.Status},
			Platform:    id,
		},
	}
}

// Lookup returns the spec whose binary name matches name.
func Lookup(specs []Spec, name string) (Spec, bool) {
	for _, spec := range specs {
		if spec.Binary == name {
			return spec, true
		}
	}
	return Spec{}, false
}

// URL renders the download URL for the spec's platform.
func (s Spec) URL() (string, error) {
	key, err := s.Platform.CIPDPlatform()
	if err != nil {
		return "", fmt.Errorf("%s: %w", s.Binary, err)
	}
	return strings.ReplaceAll(s.URLTemplate, config.PlatformPlaceholder, key), nil
}

// BinaryPath returns the installed binary location.
func (s Spec) BinaryPath() string {
	return filepath.Join(s.InstallDir, s.Binary)
}
