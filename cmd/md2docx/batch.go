package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fatih/color"

	md2docx "github.com/alnah/go-md2docx"
)

// exportParams groups settings shared across a batch.
type exportParams struct {
	render     *md2docx.RenderSettings
	docx       *md2docx.DocxSettings
	imageDir   string
	imagesOnly bool
}

// FileResult holds the outcome of exporting a single file.
type FileResult struct {
	InputPath string
	Result    *md2docx.ExportResult
	Err       error
	Duration  time.Duration
}

// exportBatch processes files concurrently using the exporter pool.
func exportBatch(ctx context.Context, pool Pool, files []FileToExport, params *exportParams) []FileResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := pool.Size()
	if concurrency > len(files) {
		concurrency = len(files)
	}

	results := make([]FileResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			exp := pool.Acquire()
			defer pool.Release(exp)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = FileResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = exportFile(ctx, exp, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// exportFile processes a single file and returns the result.
func exportFile(ctx context.Context, exp DocExporter, f FileToExport, params *exportParams) FileResult {
	start := time.Now()
	result := FileResult{InputPath: f.InputPath}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadMarkdown, err)
		result.Duration = time.Since(start)
		return result
	}

	result.Result, result.Err = exp.Export(ctx, md2docx.Input{
		Markdown:   string(content),
		SourceDir:  sourceDir(f.InputPath),
		BaseName:   f.BaseName,
		OutputDir:  f.OutputDir,
		ImageDir:   params.imageDir,
		Render:     params.render,
		Docx:       params.docx,
		ImagesOnly: params.imagesOnly,
	})
	result.Duration = time.Since(start)
	return result
}

// sourceDir returns the directory of a markdown file for Pandoc's
// resource path.
func sourceDir(inputPath string) string {
	dir := filepath.Dir(inputPath)
	if dir == "." {
		return ""
	}
	return dir
}

// Status line colors. The color library honors NO_COLOR and disables
// itself on non-TTY output.
var (
	successColor = color.New(color.FgGreen)
	failureColor = color.New(color.FgRed)
	warnColor    = color.New(color.FgYellow)
)

// printResults outputs export results and returns the failed file count
// along with the first failure, so callers can preserve its error chain.
func printResults(results []FileResult, quiet, verbose bool, env *Environment) (int, error) {
	var succeeded, failed int
	var firstErr error

	for _, r := range results {
		if r.Err != nil {
			failed++
			if firstErr == nil {
				firstErr = r.Err
			}
			failureColor.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		succeeded++
		printDiagramFailures(r, env)
		if quiet {
			continue
		}

		target := r.InputPath
		if r.Result != nil && r.Result.DocxPath != "" {
			target = r.Result.DocxPath
		}
		if verbose {
			successColor.Fprintf(env.Stdout, "%s -> %s (%d charts, %v)\n",
				r.InputPath, target, renderedCount(r), r.Duration.Round(time.Millisecond))
		} else {
			successColor.Fprintf(env.Stdout, "Created %s\n", target)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", succeeded, failed)
	}

	return failed, firstErr
}

// printDiagramFailures warns about per-diagram render failures in an
// otherwise successful export.
func printDiagramFailures(r FileResult, env *Environment) {
	if r.Result == nil {
		return
	}
	for _, img := range r.Result.Images {
		if img.Err != nil {
			warnColor.Fprintf(env.Stderr, "WARN %s: chart %d not rendered: %v\n",
				r.InputPath, img.Index, img.Err)
		}
	}
}

func renderedCount(r FileResult) int {
	if r.Result == nil {
		return 0
	}
	return r.Result.Rendered
}
