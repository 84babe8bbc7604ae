package md2docx

import (
	"context"
	"fmt"
	"strconv"

	"github.com/alnah/go-md2docx/internal/fileutil"
	"github.com/alnah/go-md2docx/internal/hints"
)

// mermaidBinary is the Mermaid CLI executable looked up on PATH when no
// explicit path is configured.
const mermaidBinary = "mmdc"

// diagramRenderer abstracts diagram-to-image rendering to allow test doubles.
type diagramRenderer interface {
	Lookup() error
	Render(ctx context.Context, source, outputPath string, settings RenderSettings) error
}

// mermaidRenderer renders diagram source to an image by invoking the
// Mermaid CLI. The diagram source is written to a temporary .mmd file
// because mmdc only reads from files.
type mermaidRenderer struct {
	runner CommandRunner
	binary string
}

func newMermaidRenderer(runner CommandRunner, binaryPath string) *mermaidRenderer {
	if binaryPath == "" {
		binaryPath = mermaidBinary
	}
	return &mermaidRenderer{runner: runner, binary: binaryPath}
}

// Lookup verifies the Mermaid CLI is available.
func (m *mermaidRenderer) Lookup() error {
	if _, err := m.runner.LookPath(m.binary); err != nil {
		return fmt.Errorf("%w: %q%s", ErrMermaidNotFound, m.binary, hints.ForMermaidNotFound())
	}
	return nil
}

// Render converts diagram source to an image at outputPath.
// Settings must already have defaults applied (see RenderSettings.withDefaults).
func (m *mermaidRenderer) Render(ctx context.Context, source, outputPath string, settings RenderSettings) error {
	tmpPath, cleanup, err := fileutil.WriteTempFile(source, "mmd")
	if err != nil {
		return err
	}
	defer cleanup()

	args := []string{
		"-i", tmpPath,
		"-o", outputPath,
		"-w", strconv.Itoa(settings.Width),
		"-H", strconv.Itoa(settings.Height),
		"--backgroundColor", settings.Background,
	}
	if settings.Scale > 0 {
		args = append(args, "-s", strconv.Itoa(settings.Scale))
	}
	if settings.Theme != "" {
		args = append(args, "-t", settings.Theme)
	}

	_, stderr, err := m.runner.Run(ctx, m.binary, args...)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %v%s", ErrDiagramRender, ctx.Err(), hints.ForTimeout())
		}
		return fmt.Errorf("%w: %s: %v", ErrDiagramRender, stderr, err)
	}

	return nil
}
