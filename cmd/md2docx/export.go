package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	md2docx "github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/config"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrReadMarkdown       = errors.New("failed to read markdown file")
	ErrInvalidExtension   = errors.New("file must have .md or .markdown extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidTimeout     = errors.New("invalid timeout")
)

// runExportCmd parses flags and runs the export (or charts) command,
// returning an exit code.
func runExportCmd(ctx context.Context, args []string, chartsOnly bool, env *Environment) int {
	name := "export"
	if chartsOnly {
		name = "charts"
	}

	flags, positional, err := parseExportFlags(name, args, env.Stderr)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}
	if chartsOnly {
		flags.imagesOnly = true
	}

	warnUnknownEnvVars(env.Stderr)

	if err := runExport(ctx, positional, flags, env); err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runExport orchestrates the export process.
func runExport(ctx context.Context, positionalArgs []string, flags *exportFlags, env *Environment) error {
	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig()

	// Load configuration: flag > env var > defaults
	cfg := config.DefaultConfig()
	configPath := flags.common.config
	if configPath == "" {
		configPath = envCfg.ConfigPath
	}
	if configPath != "" {
		var err error
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	// Env vars fill config gaps, then CLI flags win
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	timeout, err := resolveTimeout(flags.timeout, envCfg.Timeout)
	if err != nil {
		return err
	}

	// Resolve input path
	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}

	// Resolve output directory
	outputDir := resolveOutputDir(flags.output, cfg)

	// Discover files to export
	files, err := discoverFiles(inputPath, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no markdown files found in %s", inputPath)
	}

	// Build and validate settings once for the whole batch
	render := buildRenderSettings(cfg)
	if err := render.Validate(); err != nil {
		return err
	}
	docx := buildDocxSettings(cfg)

	params := &exportParams{
		render:     render,
		docx:       docx,
		imageDir:   cfg.Output.ImageDir,
		imagesOnly: flags.imagesOnly,
	}

	opts := []md2docx.Option{md2docx.WithTimeout(timeout)}
	if cfg.Tools.Mermaid != "" {
		opts = append(opts, md2docx.WithMermaidPath(cfg.Tools.Mermaid))
	}
	if cfg.Tools.Pandoc != "" {
		opts = append(opts, md2docx.WithPandocPath(cfg.Tools.Pandoc))
	}

	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}
	pool := newExporterPool(resolvePoolSize(workers), opts...)
	defer pool.Close()

	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d\n", pool.Size())
	}

	results := exportBatch(ctx, pool, files, params)

	failedCount, firstErr := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if failedCount > 0 {
		// Wrap the first failure so sentinel-based exit codes survive,
		// e.g. a missing tool still exits with ExitTool.
		return fmt.Errorf("%d export(s) failed: %w", failedCount, firstErr)
	}
	return nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *exportFlags, cfg *config.Config) {
	// Output flags
	if flags.render.imageDir != "" {
		cfg.Output.ImageDir = flags.render.imageDir
	}

	// Render flags
	if flags.render.format != "" {
		cfg.Render.Format = flags.render.format
	}
	if flags.render.width != 0 {
		cfg.Render.Width = flags.render.width
	}
	if flags.render.height != 0 {
		cfg.Render.Height = flags.render.height
	}
	if flags.render.scale != 0 {
		cfg.Render.Scale = flags.render.scale
	}
	if flags.render.background != "" {
		cfg.Render.Background = flags.render.background
	}
	if flags.render.theme != "" {
		cfg.Render.Theme = flags.render.theme
	}

	// DOCX flags
	if flags.docx.referenceDoc != "" {
		cfg.Docx.ReferenceDoc = flags.docx.referenceDoc
	}
	if flags.docx.toc {
		cfg.Docx.TOC = true
	}
	if flags.docx.tocDepth != 0 {
		cfg.Docx.TOCDepth = flags.docx.tocDepth
	}

	// Tool flags
	if flags.tools.mermaid != "" {
		cfg.Tools.Mermaid = flags.tools.mermaid
	}
	if flags.tools.pandoc != "" {
		cfg.Tools.Pandoc = flags.tools.pandoc
	}
}

// buildRenderSettings creates md2docx.RenderSettings from config with
// defaults filled in.
func buildRenderSettings(cfg *config.Config) *md2docx.RenderSettings {
	r := md2docx.DefaultRenderSettings()
	if cfg.Render.Format != "" {
		r.Format = cfg.Render.Format
	}
	if cfg.Render.Width != 0 {
		r.Width = cfg.Render.Width
	}
	if cfg.Render.Height != 0 {
		r.Height = cfg.Render.Height
	}
	r.Scale = cfg.Render.Scale
	if cfg.Render.Background != "" {
		r.Background = cfg.Render.Background
	}
	r.Theme = cfg.Render.Theme
	return r
}

// buildDocxSettings creates md2docx.DocxSettings from config.
func buildDocxSettings(cfg *config.Config) *md2docx.DocxSettings {
	if cfg.Docx.ReferenceDoc == "" && !cfg.Docx.TOC {
		return nil
	}
	return &md2docx.DocxSettings{
		ReferenceDoc: cfg.Docx.ReferenceDoc,
		TOC:          cfg.Docx.TOC,
		TOCDepth:     cfg.Docx.TOCDepth,
	}
}

// resolveTimeout resolves the per-tool timeout.
// Priority: CLI flag > env var > library default.
func resolveTimeout(flagTimeout string, envTimeout time.Duration) (time.Duration, error) {
	if flagTimeout != "" {
		d, err := time.ParseDuration(flagTimeout)
		if err != nil || d <= 0 {
			return 0, fmt.Errorf("%w: %q (use values like 30s, 2m)", ErrInvalidTimeout, flagTimeout)
		}
		return d, nil
	}
	if envTimeout > 0 {
		return envTimeout, nil
	}
	return md2docx.DefaultTimeout, nil
}

// resolveInputPath determines the input path from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir determines the output directory from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > md2docx.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, md2docx.MaxPoolSize)
	}
	return nil
}
