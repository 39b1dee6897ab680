// Package app wires configuration, platform detection, the installer and the dispatcher
// together for the buildtools, gn and ninja entry points.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/conn-castle/buildtools/internal/config"
	"github.com/conn-castle/buildtools/internal/dispatch"
	"github.com/conn-castle/buildtools/internal/fetch"
	"github.com/conn-castle/buildtools/internal/install"
	"github.com/conn-castle/buildtools/internal/locate"
	"github.com/conn-castle/buildtools/internal/messages"
	"github.com/conn-castle/buildtools/internal/platform"
	"github.com/conn-castle/buildtools/internal/terminal"
	"github.com/conn-castle/buildtools/internal/tools"
)

// App holds the components built once per process.
type App struct {
	Config    *config.Config
	Platform  platform.ID
	Installer *install.Installer
	Locator   *locate.Locator
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
}

// Options configure New.
type Options struct {
	// ConfigPath is an explicit config file; empty uses the environment and default location.
	ConfigPath string
	// System overrides config lookups; nil uses the real environment.
	System   config.System
	Platform *platform.ID
	Stdin    io.Reader
	Stdout   io.Writer
	Stderr   io.Writer
}

// New loads configuration and builds the installer and locator.
func New(opts Options) (*App, error) {
	// Diagnostics go to stderr, so colour follows stderr rather than stdout.
	if !terminal.IsTerminal(opts.Stderr) {
		color.NoColor = true
	}
	cfg, err := config.Load(opts.System, opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if cfg.InsecureSkipVerify {
		_, _ = color.New(color.FgYellow).Fprint(opts.Stderr, messages.FetchInsecureWarning)
	}

	id := platform.Current()
	if opts.Platform != nil {
		id = *opts.Platform
	}
	return &App{
		Config:    cfg,
		Platform:  id,
		Installer: install.New(cfg, id, fetch.New(cfg), opts.Stdout, opts.Stderr),
		Locator:   locate.New(cfg.MarkerTool),
		Stdin:     opts.Stdin,
		Stdout:    opts.Stdout,
		Stderr:    opts.Stderr,
	}, nil
}

// Dispatcher returns a dispatcher for the named tool. Install progress goes to stderr so the
// tool's own stdout stays clean.
func (a *App) Dispatcher(name string) (*dispatch.Dispatcher, error) {
	spec, ok := tools.Lookup(a.Installer.Specs, name)
	if !ok {
		return nil, fmt.Errorf(messages.ToolsUnknownToolFmt, name)
	}
	installer := *a.Installer
	installer.Out = a.Stderr
	return &dispatch.Dispatcher{
		Spec:    spec,
		Locator: a.Locator,
		Install: func(ctx context.Context) int {
			return installer.InstallAll(ctx, install.Options{Verbose: true})
		},
		System: dispatch.RealSystem{Stdin: a.Stdin, Stdout: a.Stdout, Stderr: a.Stderr},
		Stderr: a.Stderr,
	}, nil
}

// RunTool loads the app and forwards args to the named tool, returning the exit code.
func RunTool(ctx context.Context, name string, args []string, opts Options) int {
	a, err := New(opts)
	if err != nil {
		_, _ = color.New(color.FgRed).Fprintln(opts.Stderr, err)
		return 1
	}
	d, err := a.Dispatcher(name)
	if err != nil {
		_, _ = color.New(color.FgRed).Fprintln(opts.Stderr, err)
		return 1
	}
	return d.Run(ctx, args)
}
