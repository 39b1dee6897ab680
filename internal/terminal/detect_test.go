package terminal

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestIsTerminalBuffer(t *testing.T) {
	if IsTerminal(&bytes.Buffer{}) {
		t.Fatalf("expected buffer to report false")
	}
}

func TestIsTerminalRegularFile(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "log.txt"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer func() { _ = f.Close() }()
	if IsTerminal(f) {
		t.Fatalf("expected regular file to report false")
	}
}

func TestIsTerminalPipe(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	defer func() { _ = r.Close(); _ = w.Close() }()
	if IsTerminal(w) {
		t.Fatalf("expected pipe to report false")
	}
}
