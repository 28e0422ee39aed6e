package sstreamtest

import (
	"io"
	"testing"

	"github.com/spf13/afero"
)

// fixtureDir holds every temporary file the suite creates.
const fixtureDir = "sstreamtest"

// TempFile creates a file holding content on fs and returns its path.
// The file is removed when the test ends.
func TempFile(t *testing.T, fs afero.Fs, content string) string {
	t.Helper()

	if err := fs.MkdirAll(fixtureDir, 0750); err != nil {
		t.Fatalf("MkdirAll %s: %v", fixtureDir, err)
	}
	f, err := afero.TempFile(fs, fixtureDir, "file-*")
	if err != nil {
		t.Fatalf("TempFile: %v", err)
	}
	path := f.Name()
	t.Cleanup(func() { _ = fs.Remove(path) })

	if _, err := io.WriteString(f, content); err != nil {
		_ = f.Close()
		t.Fatalf("Write %s: %v", path, err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close %s: %v", path, err)
	}
	return path
}

// MissingFile returns a path on fs that does not exist.
func MissingFile(t *testing.T, fs afero.Fs) string {
	t.Helper()

	path := TempFile(t, fs, "")
	if err := fs.Remove(path); err != nil {
		t.Fatalf("Remove %s: %v", path, err)
	}
	return path
}

// TempHandle creates a read-write handle holding content on fs, positioned
// at offset relative to whence. The caller hands the handle to the factory
// under test; it is closed at the end of the test if still open.
func TempHandle(t *testing.T, fs afero.Fs, content string, offset int64, whence int) afero.File {
	t.Helper()

	if err := fs.MkdirAll(fixtureDir, 0750); err != nil {
		t.Fatalf("MkdirAll %s: %v", fixtureDir, err)
	}
	f, err := afero.TempFile(fs, fixtureDir, "handle-*")
	if err != nil {
		t.Fatalf("TempFile: %v", err)
	}
	path := f.Name()
	t.Cleanup(func() {
		_ = f.Close()
		_ = fs.Remove(path)
	})

	if _, err := io.WriteString(f, content); err != nil {
		t.Fatalf("Write %s: %v", path, err)
	}
	if _, err := f.Seek(offset, whence); err != nil {
		t.Fatalf("Seek %s: %v", path, err)
	}
	return f
}

// OpenTell opens path read-only on fs and reports the cursor position a
// fresh read handle starts at.
func OpenTell(t *testing.T, fs afero.Fs, path string) int64 {
	t.Helper()

	f, err := fs.Open(path)
	if err != nil {
		t.Fatalf("Open %s: %v", path, err)
	}
	defer func() { _ = f.Close() }()

	pos, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		t.Fatalf("Seek %s: %v", path, err)
	}
	return pos
}
