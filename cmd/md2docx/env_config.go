package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-md2docx/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // MD2DOCX_CONFIG: config file path
	Timeout    time.Duration // MD2DOCX_TIMEOUT: per-tool timeout
	Workers    int           // MD2DOCX_WORKERS: parallel workers

	InputDir  string // MD2DOCX_INPUT_DIR: default input directory
	OutputDir string // MD2DOCX_OUTPUT_DIR: default output directory
	ImageDir  string // MD2DOCX_IMAGE_DIR: image subdirectory

	Format     string // MD2DOCX_FORMAT: png, svg
	Background string // MD2DOCX_BACKGROUND: image background
	Theme      string // MD2DOCX_THEME: diagram theme

	ReferenceDoc string // MD2DOCX_REFERENCE_DOC: reference .docx

	MermaidPath string // MD2DOCX_MERMAID: mmdc path
	PandocPath  string // MD2DOCX_PANDOC: pandoc path
}

// knownEnvVars lists valid MD2DOCX_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2DOCX_CONFIG":  true,
	"MD2DOCX_TIMEOUT": true,
	"MD2DOCX_WORKERS": true,

	"MD2DOCX_INPUT_DIR":  true,
	"MD2DOCX_OUTPUT_DIR": true,
	"MD2DOCX_IMAGE_DIR":  true,

	"MD2DOCX_FORMAT":     true,
	"MD2DOCX_BACKGROUND": true,
	"MD2DOCX_THEME":      true,

	"MD2DOCX_REFERENCE_DOC": true,

	"MD2DOCX_MERMAID": true,
	"MD2DOCX_PANDOC":  true,
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized MD2DOCX_* values.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MD2DOCX_CONFIG"),

		InputDir:  os.Getenv("MD2DOCX_INPUT_DIR"),
		OutputDir: os.Getenv("MD2DOCX_OUTPUT_DIR"),
		ImageDir:  os.Getenv("MD2DOCX_IMAGE_DIR"),

		Format:     os.Getenv("MD2DOCX_FORMAT"),
		Background: os.Getenv("MD2DOCX_BACKGROUND"),
		Theme:      os.Getenv("MD2DOCX_THEME"),

		ReferenceDoc: os.Getenv("MD2DOCX_REFERENCE_DOC"),

		MermaidPath: os.Getenv("MD2DOCX_MERMAID"),
		PandocPath:  os.Getenv("MD2DOCX_PANDOC"),
	}

	if timeout := os.Getenv("MD2DOCX_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("MD2DOCX_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MD2DOCX_* variables.
// Helps catch typos like MD2DOCX_FORAMT instead of MD2DOCX_FORMAT.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "MD2DOCX_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty/zero.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.InputDir != "" && cfg.Input.DefaultDir == "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.ImageDir != "" && cfg.Output.ImageDir == "" {
		cfg.Output.ImageDir = env.ImageDir
	}

	if env.Format != "" && cfg.Render.Format == "" {
		cfg.Render.Format = env.Format
	}
	if env.Background != "" && cfg.Render.Background == "" {
		cfg.Render.Background = env.Background
	}
	if env.Theme != "" && cfg.Render.Theme == "" {
		cfg.Render.Theme = env.Theme
	}

	if env.ReferenceDoc != "" && cfg.Docx.ReferenceDoc == "" {
		cfg.Docx.ReferenceDoc = env.ReferenceDoc
	}

	if env.MermaidPath != "" && cfg.Tools.Mermaid == "" {
		cfg.Tools.Mermaid = env.MermaidPath
	}
	if env.PandocPath != "" && cfg.Tools.Pandoc == "" {
		cfg.Tools.Pandoc = env.PandocPath
	}
}
