package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2docx <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  export     Convert markdown files to DOCX with rendered charts")
	fmt.Fprintln(w, "  charts     Render mermaid charts to images only")
	fmt.Fprintln(w, "  doctor     Check external tool installation")
	fmt.Fprintln(w, "  setup      Install missing external tools")
	fmt.Fprintln(w, "  tui        Launch the interactive terminal UI")
	fmt.Fprintln(w, "  completion Generate shell completion script")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2docx help <command>' for details on a specific command.")
}

// printExportUsage prints usage for the export or charts command.
func printExportUsage(w io.Writer, name string) {
	if name == "charts" {
		fmt.Fprintln(w, "Usage: md2docx charts <input> [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Render mermaid code blocks to chart images, without DOCX output.")
	} else {
		fmt.Fprintln(w, "Usage: md2docx export <input> [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Convert markdown files to DOCX, rendering mermaid code blocks to images.")
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default: next to source)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <dur>       Per-tool timeout (e.g., 30s, 2m)")
	if name == "export" {
		fmt.Fprintln(w, "      --images-only         Render charts only, skip DOCX")
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Charts:")
	fmt.Fprintln(w, "      --image-dir <dir>     Image subdirectory (default: charts)")
	fmt.Fprintln(w, "      --image-format <s>    Image format: png, svg")
	fmt.Fprintln(w, "      --width <n>           Image width in pixels (64-10000)")
	fmt.Fprintln(w, "      --height <n>          Image height in pixels (64-10000)")
	fmt.Fprintln(w, "      --scale <n>           Scale factor (1-5)")
	fmt.Fprintln(w, "      --background <s>      Background: white, transparent, #hex")
	fmt.Fprintln(w, "      --theme <s>           Theme: default, dark, forest, neutral")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "DOCX:")
	fmt.Fprintln(w, "      --reference-doc <p>   Reference .docx controlling styles")
	fmt.Fprintln(w, "      --toc                 Include a table of contents")
	fmt.Fprintln(w, "      --toc-depth <n>       Table of contents depth (1-6)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tools:")
	fmt.Fprintln(w, "      --mermaid-path <p>    Path to the mmdc executable")
	fmt.Fprintln(w, "      --pandoc-path <p>     Path to the pandoc executable")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "export":
		printExportUsage(env.Stdout, "export")
	case "charts":
		printExportUsage(env.Stdout, "charts")
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: md2docx doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check that pandoc, mmdc, node, and npm are installed and report")
		fmt.Fprintln(env.Stdout, "environment diagnostics. --json emits machine-readable output.")
	case "setup":
		fmt.Fprintln(env.Stdout, "Usage: md2docx setup [--yes]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Install missing external tools using the platform package manager.")
		fmt.Fprintln(env.Stdout, "Prompts before each install; --yes skips confirmation.")
	case "tui":
		fmt.Fprintln(env.Stdout, "Usage: md2docx tui")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Launch the interactive terminal UI.")
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2docx version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2docx help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
