package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// renderFlags holds diagram rendering flags.
type renderFlags struct {
	imageDir   string
	format     string
	width      int
	height     int
	scale      int
	background string
	theme      string
}

// docxFlags holds Pandoc DOCX flags.
type docxFlags struct {
	referenceDoc string
	toc          bool
	tocDepth     int
}

// toolFlags holds external tool override flags.
type toolFlags struct {
	mermaid string
	pandoc  string
}

// exportFlags holds all flags for the export and charts commands.
type exportFlags struct {
	common     commonFlags
	output     string
	workers    int
	timeout    string
	imagesOnly bool
	render     renderFlags
	docx       docxFlags
	tools      toolFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addRenderFlags adds diagram rendering flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringVar(&f.imageDir, "image-dir", "", "image subdirectory under output (default: charts)")
	fs.StringVar(&f.format, "image-format", "", "image format: png, svg")
	fs.IntVar(&f.width, "width", 0, "image width in pixels (64-10000)")
	fs.IntVar(&f.height, "height", 0, "image height in pixels (64-10000)")
	fs.IntVar(&f.scale, "scale", 0, "image scale factor (1-5, 0 = tool default)")
	fs.StringVar(&f.background, "background", "", "image background: white, transparent, #hex")
	fs.StringVar(&f.theme, "theme", "", "diagram theme: default, dark, forest, neutral")
}

// addDocxFlags adds DOCX generation flags to a FlagSet.
func addDocxFlags(fs *flag.FlagSet, f *docxFlags) {
	fs.StringVar(&f.referenceDoc, "reference-doc", "", "reference .docx controlling styles")
	fs.BoolVar(&f.toc, "toc", false, "include a table of contents")
	fs.IntVar(&f.tocDepth, "toc-depth", 0, "table of contents depth (1-6)")
}

// addToolFlags adds external tool override flags to a FlagSet.
func addToolFlags(fs *flag.FlagSet, f *toolFlags) {
	fs.StringVar(&f.mermaid, "mermaid-path", "", "path to the mmdc executable")
	fs.StringVar(&f.pandoc, "pandoc-path", "", "path to the pandoc executable")
}

// parseExportFlags parses export/charts command flags and returns positional
// args. name selects the usage message ("export" or "charts").
func parseExportFlags(name string, args []string, errOut io.Writer) (*exportFlags, []string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	f := &exportFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-tool timeout (e.g., 30s, 2m)")
	if name == "export" {
		fs.BoolVar(&f.imagesOnly, "images-only", false, "render diagrams only, skip DOCX")
	}

	addCommonFlags(fs, &f.common)
	addRenderFlags(fs, &f.render)
	addDocxFlags(fs, &f.docx)
	addToolFlags(fs, &f.tools)

	fs.Usage = func() { printExportUsage(errOut, name) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
