// Package install downloads, marks executable, and verifies the GN and Ninja binaries.
package install

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/conn-castle/buildtools/internal/config"
	"github.com/conn-castle/buildtools/internal/fetch"
	"github.com/conn-castle/buildtools/internal/messages"
	"github.com/conn-castle/buildtools/internal/platform"
	"github.com/conn-castle/buildtools/internal/tools"
)

// Fetcher downloads an archive and extracts one entry.
type Fetcher interface {
	FetchAndExtract(ctx context.Context, url string, destDir string, entry string, skipIfPresent bool) (fetch.Result, error)
}

// Options control a single InstallAll run.
type Options struct {
	// SkipIfPresent avoids the download when the binary already exists.
	SkipIfPresent bool
	// Verbose prints progress and version lines. Errors are always printed.
	Verbose bool
}

// Installer manages the binaries for one platform.
type Installer struct {
	Specs       []tools.Spec
	Platform    platform.ID
	InstallRoot string
	Fetcher     Fetcher
	System      System
	Out         io.Writer
	Err         io.Writer
}

// New returns an Installer for cfg and id using the real filesystem.
func New(cfg *config.Config, id platform.ID, fetcher Fetcher, out io.Writer, errOut io.Writer) *Installer {
	return &Installer{
		Specs:       tools.Specs(cfg, id),
		Platform:    id,
		InstallRoot: cfg.InstallRoot,
		Fetcher:     fetcher,
		System:      RealSystem{},
		Out:         out,
		Err:         errOut,
	}
}

// InstallAll installs every tool, continuing past individual failures.
// It returns 0 only if every tool was installed and answered its version query.
func (i *Installer) InstallAll(ctx context.Context, opts Options) int {
	if !i.Platform.Supported() {
		_, _ = fmt.Fprintln(i.Err, color.RedString(messages.PlatformUnsupportedFmt, i.Platform.Host))
		return 1
	}

	failed := false
	for _, spec := range i.Specs {
		if ctx.Err() != nil {
			break
		}
		if err := i.installOne(ctx, spec, opts); err != nil {
			failed = true
		}
	}
	// The caller reports the interruption.
	if ctx.Err() != nil {
		return 1
	}
	if failed {
		_, _ = fmt.Fprintln(i.Err, color.RedString(messages.InstallFailureSummary))
		_, _ = fmt.Fprintf(i.Err, messages.InstallFailureHintFmt, messages.InstallReadmeURL)
		return 1
	}
	return 0
}

// installOne fetches, marks executable, and verifies one tool. Diagnostics are printed here;
// the returned error only signals failure to the caller.
func (i *Installer) installOne(ctx context.Context, spec tools.Spec, opts Options) error {
	url, err := spec.URL()
	if err != nil {
		i.printErr(err)
		return err
	}
	if err := i.System.MkdirAll(spec.InstallDir, 0o755); err != nil {
		err = fmt.Errorf(messages.InstallCreateDirFmt, spec.InstallDir, err)
		i.printErr(err)
		return err
	}

	err = withFileLock(ctx, i.lockPath(spec), func() error {
		i.announce(spec, opts)
		if _, err := i.Fetcher.FetchAndExtract(ctx, url, spec.InstallDir, spec.Binary, opts.SkipIfPresent); err != nil {
			return err
		}
		return i.setExecutable(spec.BinaryPath())
	})
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		var fetchErr *fetch.Error
		if errors.As(err, &fetchErr) {
			fetch.Report(i.Err, err)
		} else {
			i.printErr(err)
		}
		return err
	}

	version, err := i.System.QueryVersion(ctx, spec.BinaryPath(), spec.VersionFlag)
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		_, _ = fmt.Fprint(i.Err, color.RedString(messages.InstallVersionFailedFmt, spec.BinaryPath(), err))
		return err
	}
	if opts.Verbose {
		_, _ = fmt.Fprintf(i.Out, messages.InstallVersionLineFmt, spec.Binary, version)
	}
	return nil
}

// lockPath keeps lock files in the install root so platform directories hold only binaries.
func (i *Installer) lockPath(spec tools.Spec) string {
	root := i.InstallRoot
	if root == "" {
		root = filepath.Dir(spec.InstallDir)
	}
	return filepath.Join(root, "."+i.Platform.DirName()+"-"+spec.Binary+".lock")
}

func (i *Installer) announce(spec tools.Spec, opts Options) {
	if !opts.Verbose {
		return
	}
	if opts.SkipIfPresent {
		if info, err := i.System.Stat(spec.BinaryPath()); err == nil && info.Mode().IsRegular() {
			_, _ = fmt.Fprintf(i.Out, messages.InstallAlreadyDownloadedFmt, spec.Name, spec.Platform)
			return
		}
	}
	_, _ = fmt.Fprintf(i.Out, messages.InstallDownloadingFmt, spec.Name, spec.Platform)
}

// setExecutable adds the owner-execute bit to the existing mode.
func (i *Installer) setExecutable(path string) error {
	info, err := i.System.Stat(path)
	if err != nil {
		return fmt.Errorf(messages.InstallChmodFmt, path, err)
	}
	if err := i.System.Chmod(path, info.Mode().Perm()|0o100); err != nil {
		return fmt.Errorf(messages.InstallChmodFmt, path, err)
	}
	return nil
}

// PrintVersions prints the version of each installed binary without downloading anything.
func (i *Installer) PrintVersions(ctx context.Context) int {
	code := 0
	for _, spec := range i.Specs {
		version, err := i.System.QueryVersion(ctx, spec.BinaryPath(), spec.VersionFlag)
		if err != nil {
			_, _ = fmt.Fprint(i.Err, color.RedString(messages.InstallVersionFailedFmt, spec.BinaryPath(), err))
			code = 1
			continue
		}
		_, _ = fmt.Fprintf(i.Out, messages.InstallVersionExplicitFmt, spec.Binary, version)
	}
	return code
}

// PrintURLs prints the computed download URLs without fetching them.
func (i *Installer) PrintURLs() int {
	for _, spec := range i.Specs {
		url, err := spec.URL()
		if err != nil {
			i.printErr(err)
			return 1
		}
		_, _ = fmt.Fprintf(i.Out, messages.ToolsURLFmt, spec.Name, url)
	}
	return 0
}

// RemovePlatform deletes the current platform's install directory. It always returns 0.
func (i *Installer) RemovePlatform() int {
	dir := filepath.Join(i.InstallRoot, i.Platform.DirName())
	if len(i.Specs) > 0 {
		dir = i.Specs[0].InstallDir
	}
	i.remove(dir)
	return 0
}

// RemoveAll deletes the whole install root. It always returns 0.
func (i *Installer) RemoveAll() int {
	i.remove(i.InstallRoot)
	return 0
}

func (i *Installer) remove(path string) {
	if path == "" {
		return
	}
	if err := i.System.RemoveAll(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		_, _ = fmt.Fprint(i.Err, color.YellowString(messages.InstallRemoveWarningFmt, path, err))
	}
}

func (i *Installer) printErr(err error) {
	_, _ = color.New(color.FgRed).Fprintln(i.Err, err)
}
