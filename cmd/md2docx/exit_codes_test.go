package main

import (
	"errors"
	"fmt"
	"os"
	"testing"

	md2docx "github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/config"
)

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"generic", errors.New("boom"), ExitGeneral},
		{"mermaid missing", md2docx.ErrMermaidNotFound, ExitTool},
		{"pandoc missing", md2docx.ErrPandocNotFound, ExitTool},
		{"render failure", fmt.Errorf("chart: %w", md2docx.ErrDiagramRender), ExitTool},
		{"conversion failure", md2docx.ErrDocxConversion, ExitTool},
		{"file not found", os.ErrNotExist, ExitIO},
		{"read failure wrapped", fmt.Errorf("%w: open", ErrReadMarkdown), ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"config missing", config.ErrConfigNotFound, ExitUsage},
		{"config malformed", config.ErrConfigParse, ExitUsage},
		{"empty markdown", md2docx.ErrEmptyMarkdown, ExitUsage},
		{"bad format", md2docx.ErrInvalidImageFormat, ExitUsage},
		{"bad extension", ErrInvalidExtension, ExitUsage},
		{"bad workers", ErrInvalidWorkerCount, ExitUsage},
		{"bad timeout", ErrInvalidTimeout, ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
