// Package config loads and validates the md2docx YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2docx/internal/fileutil"
	"github.com/alnah/go-md2docx/internal/hints"
	"github.com/alnah/go-md2docx/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
)

// configDirName is the subdirectory under the user config dir searched for
// named configs.
const configDirName = "go-md2docx"

// Field length limits.
const (
	MaxPathLength   = 4096 // directory and file paths
	MaxFormatLength = 10   // "png", "svg"
	MaxColorLength  = 20   // "#888888" or color name
	MaxThemeLength  = 20   // "default", "dark", ...
)

// Config holds all configuration for document export.
type Config struct {
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	Render RenderConfig `yaml:"render"`
	Docx   DocxConfig   `yaml:"docx"`
	Tools  ToolsConfig  `yaml:"tools"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
	ImageDir   string `yaml:"imageDir"`   // Image subdirectory (empty = "charts")
}

// RenderConfig defines diagram rendering options.
type RenderConfig struct {
	Format     string `yaml:"format"`     // "png", "svg" (empty = png)
	Width      int    `yaml:"width"`      // pixels (0 = 1200)
	Height     int    `yaml:"height"`     // pixels (0 = 800)
	Scale      int    `yaml:"scale"`      // 0 = mmdc default
	Background string `yaml:"background"` // "white", "transparent", #hex (empty = white)
	Theme      string `yaml:"theme"`      // empty = mmdc default
}

// DocxConfig defines Pandoc DOCX options.
type DocxConfig struct {
	ReferenceDoc string `yaml:"referenceDoc"` // reference .docx controlling styles
	TOC          bool   `yaml:"toc"`
	TOCDepth     int    `yaml:"tocDepth"` // 0 = Pandoc default
}

// ToolsConfig overrides external tool locations.
type ToolsConfig struct {
	Mermaid string `yaml:"mermaid"` // mmdc path (empty = PATH lookup)
	Pandoc  string `yaml:"pandoc"`  // pandoc path (empty = PATH lookup)
}

// DefaultConfig returns a neutral configuration: everything resolved from
// flags, PATH lookups, and library defaults.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard
// locations. Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks field length limits. Semantic validation (formats,
// dimensions, themes) happens in the library's RenderSettings.Validate.
func (c *Config) Validate() error {
	checks := []struct {
		field string
		value string
		max   int
	}{
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"output.imageDir", c.Output.ImageDir, MaxPathLength},
		{"render.format", c.Render.Format, MaxFormatLength},
		{"render.background", c.Render.Background, MaxColorLength},
		{"render.theme", c.Render.Theme, MaxThemeLength},
		{"docx.referenceDoc", c.Docx.ReferenceDoc, MaxPathLength},
		{"tools.mermaid", c.Tools.Mermaid, MaxPathLength},
		{"tools.pandoc", c.Tools.Pandoc, MaxPathLength},
	}

	for _, ck := range checks {
		if len(ck.value) > ck.max {
			return fmt.Errorf("%w: %s (%d > %d)", ErrFieldTooLong, ck.field, len(ck.value), ck.max)
		}
	}
	return nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-md2docx/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	// Try current directory first (both extensions)
	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	// Try user config directory (both extensions)
	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, configDirName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s%s", ErrConfigNotFound,
		strings.Join(triedPaths, ", "), hints.ForConfigNotFound(triedPaths))
}
