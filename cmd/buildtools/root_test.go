package main

// NOTE: Tests in this file replace the package-level newApp hook.
// Do not use t.Parallel() at the top level; each test restores it via t.Cleanup().

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/conn-castle/buildtools/internal/app"
	"github.com/conn-castle/buildtools/internal/config"
	"github.com/conn-castle/buildtools/internal/platform"
	"github.com/conn-castle/buildtools/internal/testutil"
)

type fixture struct {
	root string
	hits *atomic.Int32
}

type envSystem struct {
	env map[string]string
	dir string
}

func (s envSystem) Getenv(key string) string             { return s.env[key] }
func (s envSystem) ReadFile(name string) ([]byte, error) { return os.ReadFile(name) }
func (s envSystem) UserConfigDir() (string, error)       { return s.dir, nil }
func (s envSystem) UserCacheDir() (string, error)        { return s.dir, nil }

// stubApp points the CLI at a local archive server and a temporary install root on linux-x64.
func stubApp(t *testing.T) fixture {
	t.Helper()
	archives := map[string][]byte{
		"gn":    testutil.ZipArchive(t, map[string]string{"gn": testutil.VersionScript("2168", 4)}),
		"ninja": testutil.ZipArchive(t, map[string]string{"ninja": testutil.VersionScript("1.12.1", 0)}),
	}
	hits := &atomic.Int32{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		tool := strings.Split(strings.TrimPrefix(r.URL.Path, "/"), "/")[0]
		_, _ = w.Write(archives[tool])
	}))
	t.Cleanup(srv.Close)

	root := filepath.Join(t.TempDir(), "bin")
	sys := envSystem{
		env: map[string]string{config.EnvInstallRoot: root},
		dir: t.TempDir(),
	}
	cfgPath := filepath.Join(t.TempDir(), "buildtools.toml")
	body := "[gn]\nurl = \"" + srv.URL + "/gn/{platform}\"\n[ninja]\nurl = \"" + srv.URL + "/ninja/{platform}\"\n"
	if err := os.WriteFile(cfgPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	sys.env[config.EnvConfigPath] = cfgPath

	linux := platform.Resolve("linux", "amd64")
	orig := newApp
	newApp = func(opts app.Options) (*app.App, error) {
		opts.System = sys
		opts.Platform = &linux
		return app.New(opts)
	}
	t.Cleanup(func() { newApp = orig })
	t.Setenv("PATH", t.TempDir())
	return fixture{root: root, hits: hits}
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := execute(context.Background(), append([]string{"buildtools"}, args...), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func exitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	var silent *SilentExitError
	if errors.As(err, &silent) {
		return silent.Code
	}
	return -1
}

func TestRootInstall(t *testing.T) {
	fx := stubApp(t)

	stdout, stderr, err := run(t)
	if err != nil {
		t.Fatalf("install failed: %v\nstderr: %s", err, stderr)
	}
	if !strings.Contains(stdout, "Downloading GN binary for 'linux-x64'") {
		t.Fatalf("expected progress output, got %q", stdout)
	}
	for _, name := range []string{"gn", "ninja"} {
		info, err := os.Stat(filepath.Join(fx.root, "linux", name))
		if err != nil {
			t.Fatalf("stat %s: %v", name, err)
		}
		if info.Mode().Perm()&0o100 == 0 {
			t.Fatalf("%s is not executable", name)
		}
	}
}

func TestRootInstallQuietAndOnlyIfMust(t *testing.T) {
	fx := stubApp(t)

	if _, _, err := run(t, "-i", "-q"); err != nil {
		t.Fatalf("first install: %v", err)
	}
	stdout, _, err := run(t, "--only-download-if-must", "--quiet")
	if err != nil {
		t.Fatalf("second install: %v", err)
	}
	if stdout != "" {
		t.Fatalf("expected quiet output, got %q", stdout)
	}
	if got := fx.hits.Load(); got != 2 {
		t.Fatalf("expected 2 downloads in total, got %d", got)
	}
}

func TestRootURLs(t *testing.T) {
	stubApp(t)

	stdout, _, err := run(t, "--urls")
	if err != nil {
		t.Fatalf("urls: %v", err)
	}
	if !strings.Contains(stdout, "/gn/linux-amd64") || !strings.Contains(stdout, "/ninja/linux-amd64") {
		t.Fatalf("unexpected URL output %q", stdout)
	}
}

func TestRootVersions(t *testing.T) {
	stubApp(t)

	_, _, err := run(t, "-v")
	if exitCodeOf(err) != 1 {
		t.Fatalf("expected exit 1 before install, got %v", err)
	}
	if _, _, err := run(t); err != nil {
		t.Fatalf("install: %v", err)
	}
	stdout, _, err := run(t, "--versions")
	if err != nil {
		t.Fatalf("versions: %v", err)
	}
	if stdout != "gn    : 2168\nninja : 1.12.1\n" {
		t.Fatalf("unexpected versions output %q", stdout)
	}
}

func TestRootRemoveAndRemoveAll(t *testing.T) {
	fx := stubApp(t)
	if _, _, err := run(t); err != nil {
		t.Fatalf("install: %v", err)
	}

	if _, _, err := run(t, "-r"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := os.Stat(filepath.Join(fx.root, "linux")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected platform dir removed, got %v", err)
	}
	if _, err := os.Stat(fx.root); err != nil {
		t.Fatalf("expected install root kept: %v", err)
	}

	if _, _, err := run(t, "--remove-all"); err != nil {
		t.Fatalf("remove-all: %v", err)
	}
	if _, err := os.Stat(fx.root); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected install root removed, got %v", err)
	}
	if _, _, err := run(t, "-R"); err != nil {
		t.Fatalf("remove-all twice: %v", err)
	}
}

func TestRootExclusiveFlags(t *testing.T) {
	stubApp(t)
	_, _, err := run(t, "--versions", "--urls")
	if err == nil || !strings.Contains(err.Error(), "none of the others can be") {
		t.Fatalf("expected mutually exclusive error, got %v", err)
	}
}

func TestRootInterrupted(t *testing.T) {
	stubApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout, stderr bytes.Buffer
	err := execute(ctx, []string{"buildtools"}, &stdout, &stderr)
	if exitCodeOf(err) != 130 {
		t.Fatalf("expected exit 130, got %v", err)
	}
	if !strings.Contains(stderr.String(), "buildtools: Interrupted") {
		t.Fatalf("expected interrupted notice, got %q", stderr.String())
	}
}

func TestToolSubcommandForwardsArgs(t *testing.T) {
	stubApp(t)
	if _, _, err := run(t); err != nil {
		t.Fatalf("install: %v", err)
	}

	// The gn stub answers --version with exit 0 and anything else with exit 4.
	if _, _, err := run(t, "gn", "--version"); err != nil {
		t.Fatalf("gn --version: %v", err)
	}
	_, _, err := run(t, "gn", "gen", "out", "--args=is_debug=true")
	if exitCodeOf(err) != 4 {
		t.Fatalf("expected gn exit code 4, got %v", err)
	}
	if _, _, err := run(t, "ninja", "-C", "out"); err != nil {
		t.Fatalf("ninja: %v", err)
	}
}

func TestToolSubcommandInstallsOnDemand(t *testing.T) {
	fx := stubApp(t)

	_, stderr, err := run(t, "ninja", "--version")
	if err != nil {
		t.Fatalf("ninja --version: %v", err)
	}
	if fx.hits.Load() != 2 {
		t.Fatalf("expected both tools downloaded, got %d", fx.hits.Load())
	}
	if !strings.Contains(stderr, "Downloading Ninja binary") {
		t.Fatalf("expected progress on stderr, got %q", stderr)
	}
}

func TestToolSubcommandConfigError(t *testing.T) {
	orig := newApp
	t.Cleanup(func() { newApp = orig })
	newApp = func(app.Options) (*app.App, error) { return nil, errors.New("bad config") }

	_, _, err := run(t, "gn", "gen")
	if err == nil || err.Error() != "bad config" {
		t.Fatalf("expected config error, got %v", err)
	}
}
