package md2docx

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Image format constants.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
)

// Mermaid theme constants.
const (
	ThemeDefault = "default"
	ThemeDark    = "dark"
	ThemeForest  = "forest"
	ThemeNeutral = "neutral"
)

// Image dimension bounds in pixels.
const (
	MinDimension      = 64
	MaxDimension      = 10000
	DefaultWidth      = 1200
	DefaultHeight     = 800
	DefaultBackground = "white"
)

// Scale bounds. Zero means "let mmdc decide".
const (
	MinScale = 1
	MaxScale = 5
)

// DefaultImageDir is the directory (relative to OutputDir) that rendered
// diagram images are written to.
const DefaultImageDir = "charts"

// RenderSettings configures diagram image rendering.
type RenderSettings struct {
	Format     string // "png", "svg"
	Width      int    // pixels
	Height     int    // pixels
	Scale      int    // 0 = unset, otherwise 1-5
	Background string // "white", "transparent", or #hex
	Theme      string // "", "default", "dark", "forest", "neutral"
}

// DefaultRenderSettings returns render settings with default values.
func DefaultRenderSettings() *RenderSettings {
	return &RenderSettings{
		Format:     FormatPNG,
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Background: DefaultBackground,
	}
}

// hexColorPattern matches #rgb, #rrggbb, and #rrggbbaa colors.
var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// Validate checks that render settings are valid.
// Returns nil if r is nil (nil means use defaults).
// Does not mutate - uses case-insensitive comparison.
func (r *RenderSettings) Validate() error {
	if r == nil {
		return nil
	}

	if !isValidFormat(r.Format) {
		return fmt.Errorf("%w: %q (must be png or svg)", ErrInvalidImageFormat, r.Format)
	}

	for _, d := range []struct {
		name  string
		value int
	}{{"width", r.Width}, {"height", r.Height}} {
		if d.value < MinDimension || d.value > MaxDimension {
			return fmt.Errorf("%w: %s %d (must be between %d and %d)",
				ErrInvalidDimension, d.name, d.value, MinDimension, MaxDimension)
		}
	}

	if r.Scale != 0 && (r.Scale < MinScale || r.Scale > MaxScale) {
		return fmt.Errorf("%w: %d (must be between %d and %d)", ErrInvalidScale, r.Scale, MinScale, MaxScale)
	}

	if !isValidBackground(r.Background) {
		return fmt.Errorf("%w: %q", ErrInvalidBackground, r.Background)
	}

	if !isValidTheme(r.Theme) {
		return fmt.Errorf("%w: %q (must be default, dark, forest, or neutral)", ErrInvalidTheme, r.Theme)
	}

	return nil
}

// withDefaults returns a copy of r with zero fields replaced by defaults.
// Safe to call on nil.
func (r *RenderSettings) withDefaults() RenderSettings {
	out := RenderSettings{}
	if r != nil {
		out = *r
	}
	if out.Format == "" {
		out.Format = FormatPNG
	}
	if out.Width == 0 {
		out.Width = DefaultWidth
	}
	if out.Height == 0 {
		out.Height = DefaultHeight
	}
	if out.Background == "" {
		out.Background = DefaultBackground
	}
	return out
}

// isValidFormat checks if format is a known image format (case-insensitive).
func isValidFormat(format string) bool {
	switch strings.ToLower(format) {
	case FormatPNG, FormatSVG:
		return true
	}
	return false
}

// isValidBackground accepts named mmdc backgrounds and hex colors.
func isValidBackground(bg string) bool {
	switch strings.ToLower(bg) {
	case "white", "transparent":
		return true
	}
	return hexColorPattern.MatchString(bg)
}

// isValidTheme checks if theme is a known mermaid theme (case-insensitive).
// Empty means "let mmdc decide".
func isValidTheme(theme string) bool {
	switch strings.ToLower(theme) {
	case "", ThemeDefault, ThemeDark, ThemeForest, ThemeNeutral:
		return true
	}
	return false
}

// DocxSettings configures Pandoc DOCX generation.
type DocxSettings struct {
	ReferenceDoc string // path to a reference .docx controlling styles
	TOC          bool   // ask Pandoc for a table of contents
	TOCDepth     int    // 0 = Pandoc default
}

// Input contains export parameters.
type Input struct {
	Markdown   string          // Markdown content (required)
	SourceDir  string          // directory of the source file, for relative image paths (optional)
	BaseName   string          // output base name without extension (required unless ImagesOnly)
	OutputDir  string          // destination directory (default: current directory)
	ImageDir   string          // image subdirectory under OutputDir (default: DefaultImageDir)
	Render     *RenderSettings // render settings (optional, nil = defaults)
	Docx       *DocxSettings   // DOCX settings (optional)
	ImagesOnly bool            // render diagrams only, skip DOCX generation
}

// ImageResult records the outcome of rendering a single diagram.
type ImageResult struct {
	Index int    // 1-based position in document order
	Path  string // output image path (set even on failure)
	Err   error  // nil on success
}

// ExportResult holds the outcome of an export.
type ExportResult struct {
	DocxPath string        // empty when ImagesOnly or zero conversion requested
	Images   []ImageResult // one entry per extracted diagram
	Rendered int           // diagrams rendered successfully
	Failed   int           // diagrams that failed to render
}

// Option configures an Exporter.
type Option func(*Exporter)

// exporterConfig holds internal configuration for Exporter.
type exporterConfig struct {
	timeout     time.Duration
	mermaidPath string // empty = look up "mmdc" on PATH
	pandocPath  string // empty = look up "pandoc" on PATH
}

// DefaultTimeout is used when no timeout is specified. It bounds each
// external tool invocation, not the whole export.
const DefaultTimeout = 30 * time.Second

// WithTimeout sets the per-invocation timeout for external tools.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("md2docx: WithTimeout duration must be positive")
	}
	return func(e *Exporter) {
		e.cfg.timeout = d
	}
}

// WithMermaidPath overrides the mmdc executable path.
func WithMermaidPath(path string) Option {
	return func(e *Exporter) {
		e.cfg.mermaidPath = path
	}
}

// WithPandocPath overrides the pandoc executable path.
func WithPandocPath(path string) Option {
	return func(e *Exporter) {
		e.cfg.pandocPath = path
	}
}

// WithRunner injects a CommandRunner (used by tests to avoid real
// subprocesses).
func WithRunner(r CommandRunner) Option {
	return func(e *Exporter) {
		e.runner = r
	}
}
