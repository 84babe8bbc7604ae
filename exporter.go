package md2docx

import (
	"context"
	"fmt"
	"path"
	"path/filepath"

	"github.com/alnah/go-md2docx/internal/fileutil"
	"github.com/alnah/go-md2docx/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ CommandRunner   = (*ExecRunner)(nil)
	_ diagramRenderer = (*mermaidRenderer)(nil)
	_ docxConverter   = (*pandocConverter)(nil)
)

// Exporter orchestrates the markdown-to-DOCX export pipeline.
// Create with NewExporter, use Export for conversion, and Close when done.
type Exporter struct {
	cfg       exporterConfig
	runner    CommandRunner
	renderer  diagramRenderer
	converter docxConverter
}

// NewExporter creates an Exporter with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithPandocPath).
func NewExporter(opts ...Option) *Exporter {
	e := &Exporter{
		cfg: exporterConfig{timeout: DefaultTimeout},
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.runner == nil {
		e.runner = &ExecRunner{}
	}
	// Create tool wrappers if not injected (e.g., by tests)
	if e.renderer == nil {
		e.renderer = newMermaidRenderer(e.runner, e.cfg.mermaidPath)
	}
	if e.converter == nil {
		e.converter = newPandocConverter(e.runner, e.cfg.pandocPath)
	}

	return e
}

// Export runs the full pipeline: extract diagram blocks, render each to an
// image, rewrite the Markdown, and convert it to DOCX. The context bounds
// the whole export; each external tool invocation additionally gets the
// configured per-invocation timeout.
//
// A document with no diagram blocks is not an error: no images are written
// and (unless Input.ImagesOnly) Pandoc converts the original document.
// Individual render failures are recorded per image and leave the fence in
// the converted document; Export itself fails only when nothing useful can
// happen (empty input, missing tool, Pandoc failure, I/O error).
func (e *Exporter) Export(ctx context.Context, input Input) (*ExportResult, error) {
	if err := e.validateInput(input); err != nil {
		return nil, err
	}

	render := input.Render.withDefaults()
	outputDir := input.OutputDir
	if outputDir == "" {
		outputDir = "."
	}
	imageDir := input.ImageDir
	if imageDir == "" {
		imageDir = DefaultImageDir
	}

	content := pipeline.NormalizeLineEndings(input.Markdown)
	blocks := pipeline.ExtractDiagrams(content)

	result := &ExportResult{}

	if len(blocks) > 0 {
		if err := e.renderer.Lookup(); err != nil {
			return nil, err
		}
		if err := e.renderDiagrams(ctx, blocks, outputDir, imageDir, render, result); err != nil {
			return nil, err
		}
	}

	if input.ImagesOnly {
		return result, nil
	}

	rendered := indexRendered(result.Images)
	derived := pipeline.ReplaceBlocks(content, blocks, func(b pipeline.DiagramBlock) (string, string, bool) {
		name, ok := rendered[b.Index]
		if !ok {
			return "", "", false
		}
		return fmt.Sprintf("Flowchart %d", b.Index), path.Join(imageDir, name), true
	})

	if err := e.converter.Lookup(); err != nil {
		return nil, err
	}
	if err := fileutil.EnsureDir(outputDir); err != nil {
		return nil, err
	}

	docxPath := filepath.Join(outputDir, input.BaseName+".docx")
	toolCtx, cancel := context.WithTimeout(ctx, e.cfg.timeout)
	defer cancel()
	if err := e.converter.Convert(toolCtx, derived, resourcePath(outputDir, input.SourceDir), docxPath, docxSettings(input.Docx)); err != nil {
		return nil, err
	}

	result.DocxPath = docxPath
	return result, nil
}

// renderDiagrams renders every block into <outputDir>/<imageDir>, recording
// one ImageResult per block. A failed render does not stop the rest; a
// canceled context does.
func (e *Exporter) renderDiagrams(ctx context.Context, blocks []pipeline.DiagramBlock, outputDir, imageDir string, render RenderSettings, result *ExportResult) error {
	absImageDir := filepath.Join(outputDir, imageDir)
	if err := fileutil.EnsureDir(absImageDir); err != nil {
		return err
	}

	for _, b := range blocks {
		if err := ctx.Err(); err != nil {
			return err
		}

		outPath := filepath.Join(absImageDir, imageName(b.Index, render.Format))

		toolCtx, cancel := context.WithTimeout(ctx, e.cfg.timeout)
		err := e.renderer.Render(toolCtx, b.Source, outPath, render)
		cancel()

		result.Images = append(result.Images, ImageResult{Index: b.Index, Path: outPath, Err: err})
		if err != nil {
			result.Failed++
		} else {
			result.Rendered++
		}
	}

	return nil
}

// Close releases resources. It exists for symmetry with ExporterPool and
// future tool wrappers that hold state; today it is a no-op.
func (e *Exporter) Close() error {
	return nil
}

// validateInput checks that required fields are present and valid.
//
// This is the trust boundary for direct library users who build Input
// manually; CLI input converges here too after flag/config merging.
func (e *Exporter) validateInput(input Input) error {
	if input.Markdown == "" {
		return ErrEmptyMarkdown
	}
	if !input.ImagesOnly && input.BaseName == "" {
		return ErrMissingBaseName
	}
	if input.Render != nil {
		settings := input.Render.withDefaults()
		if err := settings.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// imageName builds the ordinal image file name, e.g. "flowchart_2.png".
func imageName(index int, format string) string {
	return fmt.Sprintf("flowchart_%d.%s", index, format)
}

// indexRendered maps block index to image file name for successful renders.
func indexRendered(images []ImageResult) map[int]string {
	rendered := make(map[int]string, len(images))
	for _, img := range images {
		if img.Err == nil {
			rendered[img.Index] = filepath.Base(img.Path)
		}
	}
	return rendered
}

// resourcePath joins the output directory and source directory into a
// Pandoc --resource-path value so both generated images and images already
// referenced by the document resolve.
func resourcePath(outputDir, sourceDir string) string {
	if sourceDir == "" || sourceDir == outputDir {
		return outputDir
	}
	return outputDir + string(filepath.ListSeparator) + sourceDir
}

// docxSettings dereferences optional DOCX settings.
func docxSettings(s *DocxSettings) DocxSettings {
	if s == nil {
		return DocxSettings{}
	}
	return *s
}
