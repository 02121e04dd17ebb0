// Package ddptest builds DDP zip fixtures for tests.
package ddptest

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

// File is one member to write into a fixture archive.
type File struct {
	Name string
	Body string
}

// WriteZip writes files into a new zip under t.TempDir and returns its path.
func WriteZip(t testing.TB, files ...File) string {
	t.Helper()

	p := filepath.Join(t.TempDir(), "ddp.zip")
	f, err := os.Create(p)
	if err != nil {
		t.Fatalf("create zip: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, file := range files {
		w, err := zw.Create(file.Name)
		if err != nil {
			t.Fatalf("create member %s: %v", file.Name, err)
		}
		if _, err := w.Write([]byte(file.Body)); err != nil {
			t.Fatalf("write member %s: %v", file.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return p
}

// WriteFile writes raw content (not a zip) under t.TempDir and returns its path.
func WriteFile(t testing.TB, name, content string) string {
	t.Helper()

	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}
