package main

import (
	"testing"

	md2docx "github.com/alnah/go-md2docx"
)

func TestResolvePoolSize(t *testing.T) {
	if got := resolvePoolSize(5); got != 5 {
		t.Errorf("resolvePoolSize(5) = %d, want 5", got)
	}

	// Explicit counts above the auto cap are honored up to the hard limit.
	if got := resolvePoolSize(12); got != 12 {
		t.Errorf("resolvePoolSize(12) = %d, want 12", got)
	}
	if got := resolvePoolSize(md2docx.MaxPoolSize + 4); got != md2docx.MaxPoolSize {
		t.Errorf("resolvePoolSize(%d) = %d, want %d",
			md2docx.MaxPoolSize+4, got, md2docx.MaxPoolSize)
	}

	got := resolvePoolSize(0)
	if got < 1 || got > maxAutoPoolSize {
		t.Errorf("resolvePoolSize(0) = %d, want within [1, %d]", got, maxAutoPoolSize)
	}
}

func TestExporterPoolAdapter(t *testing.T) {
	p := newExporterPool(2)
	defer p.Close()

	if p.Size() != 2 {
		t.Errorf("Size() = %d, want 2", p.Size())
	}

	exp := p.Acquire()
	if exp == nil {
		t.Fatal("Acquire() returned nil")
	}
	p.Release(exp)
}
