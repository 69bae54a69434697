package testutil

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteBatchFile writes lines as a batch input file in a temporary
// directory and returns its path.
func WriteBatchFile(t *testing.T, lines ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sentences.txt")
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write batch file %s: %v", path, err)
	}
	return path
}

// AssertClip checks that path holds exactly the audio bytes want.
func AssertClip(t *testing.T, path string, want []byte) {
	t.Helper()

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read clip %s: %v", path, err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Clip %s has %d bytes, want %d", path, len(got), len(want))
	}
}

// AssertNoFile checks that nothing was written at path.
func AssertNoFile(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); err == nil {
		t.Errorf("Expected no file at %s", path)
	}
}

// CaptureStderr returns what f writes to os.Stderr.
func CaptureStderr(t *testing.T, f func()) string {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}

	old := os.Stderr
	os.Stderr = w
	defer func() { os.Stderr = old }()

	done := make(chan []byte)
	go func() {
		data, _ := io.ReadAll(r)
		done <- data
	}()

	f()
	w.Close()
	return string(<-done)
}
