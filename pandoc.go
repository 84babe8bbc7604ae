package md2docx

import (
	"context"
	"fmt"
	"strconv"

	"github.com/alnah/go-md2docx/internal/fileutil"
	"github.com/alnah/go-md2docx/internal/hints"
)

// pandocBinary is the Pandoc executable looked up on PATH when no explicit
// path is configured.
const pandocBinary = "pandoc"

// docxConverter abstracts Markdown-to-DOCX conversion to allow test doubles.
type docxConverter interface {
	Lookup() error
	Convert(ctx context.Context, markdown, resourcePath, outputPath string, settings DocxSettings) error
}

// pandocConverter converts Markdown to DOCX by invoking Pandoc. The
// (possibly rewritten) Markdown is written to a temporary file; relative
// image references resolve against resourcePath via --resource-path.
type pandocConverter struct {
	runner CommandRunner
	binary string
}

func newPandocConverter(runner CommandRunner, binaryPath string) *pandocConverter {
	if binaryPath == "" {
		binaryPath = pandocBinary
	}
	return &pandocConverter{runner: runner, binary: binaryPath}
}

// Lookup verifies Pandoc is available.
func (p *pandocConverter) Lookup() error {
	if _, err := p.runner.LookPath(p.binary); err != nil {
		return fmt.Errorf("%w: %q%s", ErrPandocNotFound, p.binary, hints.ForPandocNotFound())
	}
	return nil
}

// Convert writes markdown to a temporary file and converts it to DOCX at
// outputPath.
func (p *pandocConverter) Convert(ctx context.Context, markdown, resourcePath, outputPath string, settings DocxSettings) error {
	tmpPath, cleanup, err := fileutil.WriteTempFile(markdown, "md")
	if err != nil {
		return err
	}
	defer cleanup()

	args := []string{tmpPath, "-o", outputPath}
	if resourcePath != "" {
		args = append(args, "--resource-path", resourcePath)
	}
	if settings.ReferenceDoc != "" {
		args = append(args, "--reference-doc", settings.ReferenceDoc)
	}
	if settings.TOC {
		args = append(args, "--toc")
		if settings.TOCDepth > 0 {
			args = append(args, "--toc-depth", strconv.Itoa(settings.TOCDepth))
		}
	}

	_, stderr, err := p.runner.Run(ctx, p.binary, args...)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %v%s", ErrDocxConversion, ctx.Err(), hints.ForTimeout())
		}
		return fmt.Errorf("%w: %s: %v", ErrDocxConversion, stderr, err)
	}

	return nil
}
