package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("# doc\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestDiscoverSingleFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "report.md")
	writeFile(t, input)

	files, err := discoverFiles(input, "")
	if err != nil {
		t.Fatalf("discoverFiles() error = %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("len(files) = %d, want 1", len(files))
	}
	if files[0].BaseName != "report" {
		t.Errorf("BaseName = %q, want report", files[0].BaseName)
	}
	if files[0].OutputDir != dir {
		t.Errorf("OutputDir = %q, want source dir %q", files[0].OutputDir, dir)
	}
}

func TestDiscoverSingleFileWithOutputDir(t *testing.T) {
	input := filepath.Join(t.TempDir(), "report.md")
	writeFile(t, input)

	files, err := discoverFiles(input, "build")
	if err != nil {
		t.Fatalf("discoverFiles() error = %v", err)
	}
	if files[0].OutputDir != "build" {
		t.Errorf("OutputDir = %q, want build", files[0].OutputDir)
	}
}

func TestDiscoverRejectsWrongExtension(t *testing.T) {
	input := filepath.Join(t.TempDir(), "notes.txt")
	writeFile(t, input)

	_, err := discoverFiles(input, "")
	if !errors.Is(err, ErrInvalidExtension) {
		t.Errorf("discoverFiles() error = %v, want ErrInvalidExtension", err)
	}
}

func TestDiscoverMissingInput(t *testing.T) {
	_, err := discoverFiles(filepath.Join(t.TempDir(), "nope"), "")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("discoverFiles() error = %v, want os.ErrNotExist", err)
	}
}

func TestDiscoverDirectoryMirrorsTree(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"))
	writeFile(t, filepath.Join(dir, "sub", "b.markdown"))
	writeFile(t, filepath.Join(dir, "sub", "skip.txt"))

	files, err := discoverFiles(dir, "build")
	if err != nil {
		t.Fatalf("discoverFiles() error = %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("len(files) = %d, want 2", len(files))
	}

	byName := map[string]FileToExport{}
	for _, f := range files {
		byName[f.BaseName] = f
	}

	if got := byName["a"].OutputDir; got != "build" {
		t.Errorf("a OutputDir = %q, want build", got)
	}
	if got := byName["b"].OutputDir; got != filepath.Join("build", "sub") {
		t.Errorf("b OutputDir = %q, want build/sub", got)
	}
}

func TestDiscoverDirectoryWithoutOutputDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "sub", "b.md"))

	files, err := discoverFiles(dir, "")
	if err != nil {
		t.Fatalf("discoverFiles() error = %v", err)
	}
	if got := files[0].OutputDir; got != filepath.Join(dir, "sub") {
		t.Errorf("OutputDir = %q, want source subdir", got)
	}
}
