package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "export.yaml")
	content := `
input:
  defaultDir: docs
output:
  defaultDir: build
  imageDir: diagrams
render:
  format: svg
  width: 1600
  height: 900
  scale: 2
  background: transparent
  theme: dark
docx:
  referenceDoc: styles.docx
  toc: true
  tocDepth: 3
tools:
  mermaid: /usr/local/bin/mmdc
  pandoc: /usr/local/bin/pandoc
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Input.DefaultDir != "docs" {
		t.Errorf("Input.DefaultDir = %q, want %q", cfg.Input.DefaultDir, "docs")
	}
	if cfg.Output.ImageDir != "diagrams" {
		t.Errorf("Output.ImageDir = %q, want %q", cfg.Output.ImageDir, "diagrams")
	}
	if cfg.Render.Format != "svg" {
		t.Errorf("Render.Format = %q, want %q", cfg.Render.Format, "svg")
	}
	if cfg.Render.Width != 1600 {
		t.Errorf("Render.Width = %d, want 1600", cfg.Render.Width)
	}
	if !cfg.Docx.TOC {
		t.Error("Docx.TOC = false, want true")
	}
	if cfg.Tools.Pandoc != "/usr/local/bin/pandoc" {
		t.Errorf("Tools.Pandoc = %q, want %q", cfg.Tools.Pandoc, "/usr/local/bin/pandoc")
	}
}

func TestLoadConfigEmptyName(t *testing.T) {
	_, err := LoadConfig("")
	if !errors.Is(err, ErrEmptyConfigName) {
		t.Errorf("LoadConfig(\"\") error = %v, want ErrEmptyConfigName", err)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.yaml")
	_, err := LoadConfig(path)
	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("LoadConfig() error = %v, want ErrConfigNotFound", err)
	}
}

func TestLoadConfigUnknownField(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("renderr:\n  format: png\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := LoadConfig(path)
	if !errors.Is(err, ErrConfigParse) {
		t.Errorf("LoadConfig() error = %v, want ErrConfigParse", err)
	}
}

func TestLoadConfigMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("render: [unclosed\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := LoadConfig(path)
	if !errors.Is(err, ErrConfigParse) {
		t.Errorf("LoadConfig() error = %v, want ErrConfigParse", err)
	}
}

func TestValidateFieldLengths(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "all empty is valid",
			mutate: func(c *Config) {},
		},
		{
			name: "path at limit",
			mutate: func(c *Config) {
				c.Input.DefaultDir = strings.Repeat("a", MaxPathLength)
			},
		},
		{
			name: "path over limit",
			mutate: func(c *Config) {
				c.Input.DefaultDir = strings.Repeat("a", MaxPathLength+1)
			},
			wantErr: true,
		},
		{
			name: "format over limit",
			mutate: func(c *Config) {
				c.Render.Format = strings.Repeat("x", MaxFormatLength+1)
			},
			wantErr: true,
		},
		{
			name: "theme over limit",
			mutate: func(c *Config) {
				c.Render.Theme = strings.Repeat("x", MaxThemeLength+1)
			},
			wantErr: true,
		},
		{
			name: "tool path over limit",
			mutate: func(c *Config) {
				c.Tools.Mermaid = strings.Repeat("p", MaxPathLength+1)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr && !errors.Is(err, ErrFieldTooLong) {
				t.Errorf("Validate() error = %v, want ErrFieldTooLong", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() error = %v, want nil", err)
			}
		})
	}
}

func TestLoadConfigByNameInCwd(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "proj.yml"), []byte("render:\n  format: png\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Chdir(dir)

	cfg, err := LoadConfig("proj")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Render.Format != "png" {
		t.Errorf("Render.Format = %q, want %q", cfg.Render.Format, "png")
	}
}
