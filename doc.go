// Package md2docx converts Markdown documents to DOCX and renders their
// Mermaid diagrams to images using external command-line tools.
//
// # Quick Start
//
// Create an exporter, export a document, and inspect the result:
//
//	exp := md2docx.NewExporter()
//	defer exp.Close()
//
//	result, err := exp.Export(ctx, md2docx.Input{
//	    Markdown:  content,
//	    BaseName:  "report",
//	    OutputDir: "out",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.DocxPath, result.Rendered)
//
// # Export Pipeline
//
// The export process follows these stages:
//
//  1. Fenced-block extraction (goldmark AST, blocks tagged "mermaid")
//  2. Diagram rendering via the Mermaid CLI (mmdc), one image per block
//  3. Markdown rewriting (each rendered fence becomes an image reference)
//  4. DOCX conversion via Pandoc against the rewritten document
//
// Stages 2 and 4 shell out to external executables; this package renders
// nothing itself. Both tools are located on PATH unless overridden with
// WithMermaidPath or WithPandocPath.
//
// # Configuration
//
// Use functional options to customize the exporter:
//
//	exp := md2docx.NewExporter(
//	    md2docx.WithTimeout(2 * time.Minute),
//	    md2docx.WithPandocPath("/opt/pandoc/bin/pandoc"),
//	)
//
// Per-export options are passed via Input:
//
//	result, err := exp.Export(ctx, md2docx.Input{
//	    Markdown:   content,
//	    BaseName:   "report",
//	    OutputDir:  "out",
//	    ImageDir:   "charts",
//	    Render:     &md2docx.RenderSettings{Width: 1600, Theme: "dark"},
//	    ImagesOnly: true, // skip DOCX generation
//	})
//
// # Failure Semantics
//
// A diagram that fails to render is recorded in the result (ImageResult.Err)
// and left as a fenced code block in the converted document; remaining
// diagrams still render. Export returns an error only when the whole
// operation cannot proceed: empty input, missing external tool, Pandoc
// failure, or an I/O error.
//
// # Parallel Processing
//
// For batch conversion, use ExporterPool to bound concurrent subprocess
// trees:
//
//	pool := md2docx.NewExporterPool(4)
//	defer pool.Close()
//
//	exp := pool.Acquire()
//	defer pool.Release(exp)
//	result, err := exp.Export(ctx, input)
//
// # Tool Requirements
//
// Rendering requires the Mermaid CLI (npm install -g @mermaid-js/mermaid-cli)
// and DOCX conversion requires Pandoc (https://pandoc.org/installing.html).
// Errors for missing tools carry platform-specific installation hints; the
// md2docx CLI's doctor and setup commands automate the checks.
package md2docx
