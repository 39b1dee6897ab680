// Package config loads buildtools settings from an optional TOML file and the environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"github.com/conn-castle/buildtools/internal/messages"
	"github.com/conn-castle/buildtools/internal/platform"
)

// Environment keys consulted by Load.
const (
	EnvConfigPath  = "BUILDTOOLS_CONFIG"
	EnvInstallRoot = "BUILDTOOLS_HOME"
	EnvMarkerTool  = "BUILDTOOLS_MARKER_TOOL"
)

// Defaults applied when the config file leaves a field unset.
const (
	DefaultGNURL            = "https://chrome-infra-packages.appspot.com/dl/gn/gn/{platform}/+/latest"
	DefaultNinjaURL         = "https://chrome-infra-packages.appspot.com/dl/infra/ninja/{platform}/+/latest"
	DefaultMarkerTool       = "gclient"
	DefaultMaxDownloadBytes = int64(256 * 1024 * 1024) // 256 MiB

	// DefaultNinjaStatus prints finished/total tasks and elapsed seconds before each rule.
	DefaultNinjaStatus = "[%f/%t:%es] "

	// PlatformPlaceholder is substituted with the package-service platform key.
	PlatformPlaceholder = "{platform}"
)

// ErrConfigValidation wraps semantic validation failures (as opposed to TOML syntax or
// filesystem errors).
var ErrConfigValidation = errors.New("config validation failed")

// Config is the resolved buildtools configuration.
type Config struct {
	InstallRoot        string      `toml:"install_root"`
	MarkerTool         string      `toml:"marker_tool"`
	InsecureSkipVerify bool        `toml:"insecure_skip_verify"`
	MaxDownloadBytes   int64       `toml:"max_download_bytes"`
	GN                 ToolConfig  `toml:"gn"`
	Ninja              NinjaConfig `toml:"ninja"`

	// Source is the config file that was read, or empty when defaults were used.
	Source string `toml:"-"`
}

// ToolConfig holds per-tool settings.
type ToolConfig struct {
	URL string `toml:"url"`
}

// NinjaConfig holds Ninja settings.
type NinjaConfig struct {
	URL    string `toml:"url"`
	Status string `toml:"status"`
}

// System abstracts the OS lookups needed to resolve config locations.
type System interface {
	Getenv(key string) string
	ReadFile(name string) ([]byte, error)
	UserConfigDir() (string, error)
	UserCacheDir() (string, error)
}

// RealSystem implements System using the os package.
type RealSystem struct{}

// Getenv returns the value of the environment variable named by key.
func (RealSystem) Getenv(key string) string { return os.Getenv(key) }

// ReadFile reads the named file.
func (RealSystem) ReadFile(name string) ([]byte, error) { return os.ReadFile(name) }

// UserConfigDir returns the default user config directory.
func (RealSystem) UserConfigDir() (string, error) { return os.UserConfigDir() }

// UserCacheDir returns the default user cache directory.
func (RealSystem) UserCacheDir() (string, error) { return os.UserCacheDir() }

// Load resolves the configuration. explicitPath (from --config) wins over BUILDTOOLS_CONFIG,
// which wins over the per-user default location. A missing default file is not an error;
// a missing explicit file is.
func Load(sys System, explicitPath string) (*Config, error) {
	if sys == nil {
		sys = RealSystem{}
	}

	path, required, err := configPath(sys, explicitPath)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if path != "" {
		data, err := sys.ReadFile(path)
		switch {
		case err == nil:
			parsed, err := Parse(data, path)
			if err != nil {
				return nil, err
			}
			cfg = parsed
			cfg.Source = path
		case errors.Is(err, os.ErrNotExist) && !required:
		default:
			return nil, fmt.Errorf(messages.ConfigReadFailedFmt, path, err)
		}
	}

	if override := strings.TrimSpace(sys.Getenv(EnvInstallRoot)); override != "" {
		cfg.InstallRoot = override
	}
	if override := strings.TrimSpace(sys.Getenv(EnvMarkerTool)); override != "" {
		cfg.MarkerTool = override
	}

	if err := cfg.applyDefaults(sys); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes and validates TOML data. source is used in error messages.
// Unknown keys are rejected.
func Parse(data []byte, source string) (*Config, error) {
	var cfg Config
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf(messages.ConfigInvalidFmt, source, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: "+messages.ConfigInvalidFmt, ErrConfigValidation, source, err)
	}
	if cfg.InstallRoot != "" && !filepath.IsAbs(cfg.InstallRoot) && !strings.HasPrefix(cfg.InstallRoot, "~") {
		cfg.InstallRoot = filepath.Join(filepath.Dir(source), cfg.InstallRoot)
	}
	return &cfg, nil
}

// Validate checks explicitly set fields. Zero values are filled in later by defaults.
func (c *Config) Validate() error {
	if c.MaxDownloadBytes < 0 {
		return errors.New(messages.ConfigInvalidMaxBytes)
	}
	if c.GN.URL != "" && !strings.Contains(c.GN.URL, PlatformPlaceholder) {
		return fmt.Errorf(messages.ConfigMissingPlaceholder, "gn", c.GN.URL)
	}
	if c.Ninja.URL != "" && !strings.Contains(c.Ninja.URL, PlatformPlaceholder) {
		return fmt.Errorf(messages.ConfigMissingPlaceholder, "ninja", c.Ninja.URL)
	}
	return nil
}

// PlatformDir returns the install directory for the OS family of id.
func (c *Config) PlatformDir(id platform.ID) string {
	return filepath.Join(c.InstallRoot, id.DirName())
}

func (c *Config) applyDefaults(sys System) error {
	if c.InstallRoot == "" {
		base, err := sys.UserCacheDir()
		if err != nil {
			return fmt.Errorf(messages.ConfigResolveUserDirFmt, "cache", err)
		}
		c.InstallRoot = filepath.Join(base, "buildtools", "bin")
	}
	expanded, err := homedir.Expand(c.InstallRoot)
	if err != nil {
		return fmt.Errorf(messages.ConfigExpandInstallRootFmt, c.InstallRoot, err)
	}
	c.InstallRoot = filepath.Clean(expanded)

	if strings.TrimSpace(c.MarkerTool) == "" {
		c.MarkerTool = DefaultMarkerTool
	}
	if c.MaxDownloadBytes == 0 {
		c.MaxDownloadBytes = DefaultMaxDownloadBytes
	}
	if c.GN.URL == "" {
		c.GN.URL = DefaultGNURL
	}
	if c.Ninja.URL == "" {
		c.Ninja.URL = DefaultNinjaURL
	}
	if c.Ninja.Status == "" {
		c.Ninja.Status = DefaultNinjaStatus
	}
	return nil
}

// configPath returns the config file to read and whether it must exist.
func configPath(sys System, explicitPath string) (string, bool, error) {
	if p := strings.TrimSpace(explicitPath); p != "" {
		return p, true, nil
	}
	if p := strings.TrimSpace(sys.Getenv(EnvConfigPath)); p != "" {
		return p, true, nil
	}
	base, err := sys.UserConfigDir()
	if err != nil {
		// No per-user config location; fall back to defaults.
		return "", false, nil //nolint:nilerr // a missing config dir only disables the optional file
	}
	return filepath.Join(base, "buildtools", "config.toml"), false, nil
}
