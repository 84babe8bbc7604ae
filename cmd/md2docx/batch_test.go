package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	md2docx "github.com/alnah/go-md2docx"
)

// fakeExporter records inputs and returns scripted results per input path.
type fakeExporter struct {
	mu      sync.Mutex
	inputs  []md2docx.Input
	failFor map[string]error // BaseName -> error
}

func (f *fakeExporter) Export(ctx context.Context, input md2docx.Input) (*md2docx.ExportResult, error) {
	f.mu.Lock()
	f.inputs = append(f.inputs, input)
	f.mu.Unlock()
	if err := f.failFor[input.BaseName]; err != nil {
		return nil, err
	}
	return &md2docx.ExportResult{
		DocxPath: filepath.Join(input.OutputDir, input.BaseName+".docx"),
		Rendered: 1,
	}, nil
}

func (f *fakeExporter) Close() error { return nil }

// fakePool hands out a single shared exporter.
type fakePool struct {
	exp  *fakeExporter
	size int
}

func (p *fakePool) Acquire() DocExporter { return p.exp }
func (p *fakePool) Release(DocExporter)  {}
func (p *fakePool) Size() int            { return p.size }
func (p *fakePool) Close() error         { return nil }

func writeMarkdownFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("# doc\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestExportBatchProcessesAllFiles(t *testing.T) {
	dir := t.TempDir()
	files := []FileToExport{
		{InputPath: writeMarkdownFile(t, dir, "a.md"), OutputDir: dir, BaseName: "a"},
		{InputPath: writeMarkdownFile(t, dir, "b.md"), OutputDir: dir, BaseName: "b"},
		{InputPath: writeMarkdownFile(t, dir, "c.md"), OutputDir: dir, BaseName: "c"},
	}
	exp := &fakeExporter{}
	pool := &fakePool{exp: exp, size: 2}

	results := exportBatch(context.Background(), pool, files, &exportParams{})

	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
	for i, r := range results {
		if r.Err != nil {
			t.Errorf("results[%d].Err = %v", i, r.Err)
		}
		if r.InputPath != files[i].InputPath {
			t.Errorf("results[%d] out of order: %q", i, r.InputPath)
		}
	}
	if len(exp.inputs) != 3 {
		t.Errorf("exporter called %d times, want 3", len(exp.inputs))
	}
}

func TestExportBatchOneFailureDoesNotAbort(t *testing.T) {
	dir := t.TempDir()
	files := []FileToExport{
		{InputPath: writeMarkdownFile(t, dir, "good.md"), OutputDir: dir, BaseName: "good"},
		{InputPath: writeMarkdownFile(t, dir, "bad.md"), OutputDir: dir, BaseName: "bad"},
	}
	exp := &fakeExporter{failFor: map[string]error{"bad": md2docx.ErrDocxConversion}}
	pool := &fakePool{exp: exp, size: 1}

	results := exportBatch(context.Background(), pool, files, &exportParams{})

	if results[0].Err != nil {
		t.Errorf("good file failed: %v", results[0].Err)
	}
	if !errors.Is(results[1].Err, md2docx.ErrDocxConversion) {
		t.Errorf("bad file error = %v", results[1].Err)
	}
}

func TestExportBatchUnreadableFile(t *testing.T) {
	dir := t.TempDir()
	files := []FileToExport{
		{InputPath: filepath.Join(dir, "missing.md"), OutputDir: dir, BaseName: "missing"},
	}
	pool := &fakePool{exp: &fakeExporter{}, size: 1}

	results := exportBatch(context.Background(), pool, files, &exportParams{})

	if !errors.Is(results[0].Err, ErrReadMarkdown) {
		t.Errorf("error = %v, want ErrReadMarkdown", results[0].Err)
	}
}

func TestExportBatchCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dir := t.TempDir()
	files := []FileToExport{
		{InputPath: writeMarkdownFile(t, dir, "a.md"), OutputDir: dir, BaseName: "a"},
	}
	pool := &fakePool{exp: &fakeExporter{}, size: 1}

	results := exportBatch(ctx, pool, files, &exportParams{})
	if !errors.Is(results[0].Err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", results[0].Err)
	}
}

func TestPrintResults(t *testing.T) {
	env, stdout, stderr := testEnv(&fakeRunner{})

	results := []FileResult{
		{InputPath: "a.md", Result: &md2docx.ExportResult{DocxPath: "a.docx", Rendered: 2}},
		{InputPath: "b.md", Err: errors.New("boom")},
		{InputPath: "c.md", Result: &md2docx.ExportResult{
			DocxPath: "c.docx",
			Images:   []md2docx.ImageResult{{Index: 1, Err: errors.New("parse error")}},
			Failed:   1,
		}},
	}

	failed, firstErr := printResults(results, false, false, env)
	if failed != 1 {
		t.Errorf("failed = %d, want 1", failed)
	}
	if firstErr == nil || !strings.Contains(firstErr.Error(), "boom") {
		t.Errorf("firstErr = %v, want the b.md failure", firstErr)
	}

	out := stdout.String()
	if !strings.Contains(out, "Created a.docx") || !strings.Contains(out, "Created c.docx") {
		t.Errorf("stdout missing created lines:\n%s", out)
	}
	if !strings.Contains(out, "2 succeeded, 1 failed") {
		t.Errorf("stdout missing summary:\n%s", out)
	}

	errOut := stderr.String()
	if !strings.Contains(errOut, "FAILED b.md: boom") {
		t.Errorf("stderr missing failure line:\n%s", errOut)
	}
	if !strings.Contains(errOut, "chart 1 not rendered") {
		t.Errorf("stderr missing chart warning:\n%s", errOut)
	}
}

func TestPrintResultsQuiet(t *testing.T) {
	env, stdout, stderr := testEnv(&fakeRunner{})

	results := []FileResult{
		{InputPath: "a.md", Result: &md2docx.ExportResult{DocxPath: "a.docx"}},
		{InputPath: "b.md", Err: errors.New("boom")},
	}

	_, _ = printResults(results, true, false, env)

	if stdout.Len() != 0 {
		t.Errorf("quiet stdout = %q, want empty", stdout.String())
	}
	if !strings.Contains(stderr.String(), "FAILED") {
		t.Error("quiet mode suppressed the failure line")
	}
}
