package main

import (
	"context"
	"runtime"

	md2docx "github.com/alnah/go-md2docx"
)

// DocExporter is the interface for the export service.
type DocExporter interface {
	Export(ctx context.Context, input md2docx.Input) (*md2docx.ExportResult, error)
	Close() error
}

// Compile-time interface implementation check.
var _ DocExporter = (*md2docx.Exporter)(nil)

// Pool abstracts exporter pool operations for testability.
type Pool interface {
	Acquire() DocExporter
	Release(DocExporter)
	Size() int
	Close() error
}

// exporterPool adapts md2docx.ExporterPool to the Pool interface.
type exporterPool struct {
	inner *md2docx.ExporterPool
}

// Compile-time check that exporterPool implements Pool.
var _ Pool = (*exporterPool)(nil)

func newExporterPool(n int, opts ...md2docx.Option) *exporterPool {
	return &exporterPool{inner: md2docx.NewExporterPool(n, opts...)}
}

func (p *exporterPool) Acquire() DocExporter { return p.inner.Acquire() }

func (p *exporterPool) Release(e DocExporter) {
	if exp, ok := e.(*md2docx.Exporter); ok {
		p.inner.Release(exp)
	}
}

func (p *exporterPool) Size() int { return p.inner.Size() }

func (p *exporterPool) Close() error { return p.inner.Close() }

// maxAutoPoolSize caps the auto-sized pool. Explicit --workers counts may
// go beyond it, up to md2docx.MaxPoolSize (enforced by validateWorkers).
const maxAutoPoolSize = 8

// resolvePoolSize determines the pool size. An explicit worker count wins,
// clamped to md2docx.MaxPoolSize; otherwise half of GOMAXPROCS is used,
// clamped to [1, maxAutoPoolSize].
func resolvePoolSize(workers int) int {
	if workers > 0 {
		if workers > md2docx.MaxPoolSize {
			return md2docx.MaxPoolSize
		}
		return workers
	}

	// GOMAXPROCS is container-aware via automaxprocs.
	n := runtime.GOMAXPROCS(0) / 2
	if n < 1 {
		return 1
	}
	if n > maxAutoPoolSize {
		return maxAutoPoolSize
	}
	return n
}
