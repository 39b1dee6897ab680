// Package testutil holds shell stub and archive helpers shared by package tests.
package testutil

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteStub writes an executable shell stub that exits successfully.
// t is the active test; dir is the output directory; name is the executable file name.
func WriteStub(t *testing.T, dir string, name string) {
	t.Helper()
	WriteStubWithExit(t, dir, name, 0)
}

// WriteStubWithExit writes an executable shell stub that exits with the provided code.
// t is the active test; dir is the output directory; name is the executable file name.
func WriteStubWithExit(t *testing.T, dir string, name string, exitCode int) {
	t.Helper()
	writeScript(t, filepath.Join(dir, name), fmt.Sprintf("#!/bin/sh\nexit %d\n", exitCode), 0o755)
}

// VersionScript returns a shell script that prints version for --version and exits 0,
// and exits exitCode for any other invocation.
func VersionScript(version string, exitCode int) string {
	return fmt.Sprintf("#!/bin/sh\nif [ \"$1\" = \"--version\" ]; then\n  echo %s\n  exit 0\nfi\nexit %d\n", version, exitCode)
}

// RecordScript returns a shell script that appends its arguments (one per line) and the value
// of envKey to recordPath, then exits with exitCode.
func RecordScript(recordPath string, envKey string, exitCode int) string {
	var b strings.Builder
	b.WriteString("#!/bin/sh\n")
	fmt.Fprintf(&b, "for arg in \"$@\"; do echo \"arg:$arg\" >> '%s'; done\n", recordPath)
	if envKey != "" {
		fmt.Fprintf(&b, "echo \"env:$%s\" >> '%s'\n", envKey, recordPath)
	}
	fmt.Fprintf(&b, "exit %d\n", exitCode)
	return b.String()
}

// ZipArchive builds an in-memory zip archive. Entries are written with mode perm
// (no executable bit by default, matching the upstream archives).
func ZipArchive(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range entries {
		header := &zip.FileHeader{Name: name, Method: zip.Deflate}
		header.SetMode(0o644)
		w, err := zw.CreateHeader(header)
		if err != nil {
			t.Fatalf("create zip entry %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("write zip entry %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func writeScript(t *testing.T, path string, content string, perm os.FileMode) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		t.Fatalf("write stub: %v", err)
	}
}
