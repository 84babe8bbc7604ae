package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-md2docx/internal/hints"
)

// installTimeout bounds each package-manager invocation. npm pulling a
// headless browser for the Mermaid CLI can take a while.
const installTimeout = 10 * time.Minute

// setupTool pairs a binary name with its installation options.
type setupTool struct {
	binary  string
	display string
	options []hints.InstallOption
}

// setupTools returns the tools setup can install, in install order.
func setupTools() []setupTool {
	return []setupTool{
		{binary: "pandoc", display: "Pandoc", options: hints.PandocInstallOptions()},
		{binary: "mmdc", display: "Mermaid CLI", options: hints.MermaidInstallOptions()},
	}
}

// runSetupCmd executes the setup command and returns an exit code.
// Without --yes, each missing tool's install command is confirmed on stdin.
func runSetupCmd(args []string, env *Environment) int {
	assumeYes := false
	for _, arg := range args {
		if arg == "--yes" || arg == "-y" {
			assumeYes = true
		}
	}

	if err := runSetup(assumeYes, env); err != nil {
		fmt.Fprintln(env.Stderr, err)
		return ExitGeneral
	}
	return ExitSuccess
}

// runSetup checks each tool and installs the missing ones.
func runSetup(assumeYes bool, env *Environment) error {
	reader := bufio.NewReader(env.Stdin)
	var failed []string

	for _, tool := range setupTools() {
		if path, err := env.Runner.LookPath(tool.binary); err == nil {
			fmt.Fprintf(env.Stdout, "%s already installed (%s)\n", tool.display, path)
			continue
		}

		fmt.Fprintf(env.Stdout, "%s not found\n", tool.display)
		if !installTool(tool, assumeYes, reader, env) {
			failed = append(failed, tool.display)
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("setup incomplete: %s not installed", strings.Join(failed, ", "))
	}

	fmt.Fprintln(env.Stdout, "All tools ready. Run 'md2docx doctor' to verify.")
	return nil
}

// installTool walks the platform's install options for one tool, prompting
// before each runnable command. Returns true once the binary resolves.
func installTool(tool setupTool, assumeYes bool, reader *bufio.Reader, env *Environment) bool {
	for _, opt := range tool.options {
		if opt.Command == "" {
			fmt.Fprintf(env.Stdout, "Manual installation: %s\n", opt.Manual)
			continue
		}

		if !assumeYes && !confirm(reader, env, fmt.Sprintf("Install %s via %s? [%s]", tool.display, opt.Name, opt.Command)) {
			continue
		}

		fmt.Fprintf(env.Stdout, "Running: %s\n", opt.Command)
		if err := runInstallCommand(opt.Command, env); err != nil {
			fmt.Fprintf(env.Stderr, "%s install via %s failed: %v\n", tool.display, opt.Name, err)
			continue
		}

		if _, err := env.Runner.LookPath(tool.binary); err == nil {
			fmt.Fprintf(env.Stdout, "%s installed\n", tool.display)
			return true
		}
		fmt.Fprintf(env.Stderr, "%s still not found after install; a new shell may be needed\n", tool.display)
	}
	return false
}

// runInstallCommand executes a package-manager command line.
func runInstallCommand(command string, env *Environment) error {
	parts := strings.Fields(command)
	ctx, cancel := context.WithTimeout(context.Background(), installTimeout)
	defer cancel()

	_, stderr, err := env.Runner.Run(ctx, parts[0], parts[1:]...)
	if err != nil {
		if stderr != "" {
			return fmt.Errorf("%s: %w", strings.TrimSpace(stderr), err)
		}
		return err
	}
	return nil
}

// confirm asks a y/n question and returns the answer. EOF counts as no.
func confirm(reader *bufio.Reader, env *Environment, prompt string) bool {
	fmt.Fprintf(env.Stdout, "%s (y/n): ", prompt)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
