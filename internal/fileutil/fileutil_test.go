package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteTempFile(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		extension string
		wantErr   error
	}{
		{
			name:      "mermaid source",
			content:   "graph TD\n  A-->B",
			extension: "mmd",
		},
		{
			name:      "markdown content",
			content:   "# Title",
			extension: "md",
		},
		{
			name:      "empty content is valid",
			content:   "",
			extension: "mmd",
		},
		{
			name:      "empty extension rejected",
			content:   "x",
			extension: "",
			wantErr:   ErrExtensionEmpty,
		},
		{
			name:      "path separator rejected",
			content:   "x",
			extension: "mmd/../../etc",
			wantErr:   ErrExtensionPathTraversal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, cleanup, err := WriteTempFile(tt.content, tt.extension)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("WriteTempFile() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("WriteTempFile() unexpected error: %v", err)
			}
			defer cleanup()

			if !strings.HasSuffix(path, "."+tt.extension) {
				t.Errorf("path %q missing extension %q", path, tt.extension)
			}

			got, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("reading temp file: %v", err)
			}
			if string(got) != tt.content {
				t.Errorf("content = %q, want %q", got, tt.content)
			}
		})
	}
}

func TestWriteTempFile_CleanupRemovesFile(t *testing.T) {
	path, cleanup, err := WriteTempFile("graph TD", "mmd")
	if err != nil {
		t.Fatalf("WriteTempFile() error: %v", err)
	}

	cleanup()

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file %q still exists after cleanup", path)
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "exists.md")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{name: "regular file", path: file, want: true},
		{name: "directory is not a file", path: dir, want: false},
		{name: "missing path", path: filepath.Join(dir, "nope.md"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FileExists(tt.path); got != tt.want {
				t.Errorf("FileExists(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "charts")

	if err := EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir() error: %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !info.IsDir() {
		t.Errorf("%q is not a directory", dir)
	}

	// Idempotent on existing directory.
	if err := EnsureDir(dir); err != nil {
		t.Errorf("EnsureDir() on existing dir: %v", err)
	}
}

func TestBaseWithoutExt(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "simple md file", path: "report.md", want: "report"},
		{name: "nested path", path: "docs/guide.md", want: "guide"},
		{name: "markdown extension", path: "notes.markdown", want: "notes"},
		{name: "no extension", path: "README", want: "README"},
		{name: "dotfile keeps name", path: ".config", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BaseWithoutExt(tt.path); got != tt.want {
				t.Errorf("BaseWithoutExt(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestIsFilePath(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "bare name", input: "default", want: false},
		{name: "relative path", input: "./conf.yaml", want: true},
		{name: "absolute path", input: "/etc/md2docx.yaml", want: true},
		{name: "windows path", input: `C:\docs\conf.yaml`, want: true},
		{name: "hyphenated name", input: "my-config", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFilePath(tt.input); got != tt.want {
				t.Errorf("IsFilePath(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
