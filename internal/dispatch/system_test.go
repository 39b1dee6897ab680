package dispatch

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRealSystemRunWiresStdio(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "echoer")
	if err := os.WriteFile(script, []byte("#!/bin/sh\nread line\necho \"out:$line\"\necho \"err:$1\" >&2\n"), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}

	var stdout, stderr bytes.Buffer
	sys := RealSystem{Stdin: strings.NewReader("hello\n"), Stdout: &stdout, Stderr: &stderr}
	if err := sys.Run(context.Background(), script, []string{"flag"}, os.Environ()); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if stdout.String() != "out:hello\n" {
		t.Fatalf("unexpected stdout %q", stdout.String())
	}
	if stderr.String() != "err:flag\n" {
		t.Fatalf("unexpected stderr %q", stderr.String())
	}
}

func TestRealSystemDefaultsToProcessStdio(t *testing.T) {
	sys := RealSystem{}
	if sys.stdin() != os.Stdin || sys.stdout() != os.Stdout || sys.stderr() != os.Stderr {
		t.Fatalf("expected process stdio defaults")
	}
}

func TestRealSystemStatAndEnviron(t *testing.T) {
	t.Setenv("BUILDTOOLS_TEST_MARKER", "1")
	sys := RealSystem{}
	if value, ok := GetEnv(sys.Environ(), "BUILDTOOLS_TEST_MARKER"); !ok || value != "1" {
		t.Fatalf("expected marker in environ")
	}
	if _, err := sys.Stat(t.TempDir()); err != nil {
		t.Fatalf("Stat error: %v", err)
	}
}
