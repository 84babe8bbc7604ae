// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to
// error messages. It also owns the per-platform installation command tables
// shared by the doctor and setup commands.
package hints

import (
	"runtime"
	"strings"
)

// goos is swappable in tests to exercise other platforms' guidance.
var goos = runtime.GOOS

// InstallOption is one way to install an external tool on the current
// platform. Command is empty for manual (browser) installs.
type InstallOption struct {
	Name    string // human-readable method, e.g. "Homebrew"
	Command string // shell command to run, empty = manual
	Manual  string // instructions when Command is empty
}

// MermaidInstallOptions returns installation methods for the Mermaid CLI,
// most preferred first. npm works everywhere Node.js does.
func MermaidInstallOptions() []InstallOption {
	opts := []InstallOption{
		{Name: "npm (requires Node.js)", Command: "npm install -g @mermaid-js/mermaid-cli"},
	}
	if goos == "windows" {
		opts = append(opts, InstallOption{Name: "Chocolatey", Command: "choco install mermaid -y"})
	}
	opts = append(opts, InstallOption{
		Name:   "Manual",
		Manual: "install Node.js from https://nodejs.org/ then run: npm install -g @mermaid-js/mermaid-cli",
	})
	return opts
}

// PandocInstallOptions returns installation methods for Pandoc, most
// preferred first for the current platform.
func PandocInstallOptions() []InstallOption {
	var opts []InstallOption
	switch goos {
	case "windows":
		opts = []InstallOption{
			{Name: "Chocolatey", Command: "choco install pandoc -y"},
			{Name: "Winget", Command: "winget install JohnMacFarlane.Pandoc"},
		}
	case "darwin":
		opts = []InstallOption{
			{Name: "Homebrew", Command: "brew install pandoc"},
		}
	default:
		opts = []InstallOption{
			{Name: "APT (Ubuntu/Debian)", Command: "sudo apt-get install -y pandoc"},
			{Name: "DNF (Fedora/RHEL)", Command: "sudo dnf install -y pandoc"},
		}
	}
	return append(opts, InstallOption{
		Name:   "Manual",
		Manual: "visit https://pandoc.org/installing.html",
	})
}

// ForMermaidNotFound returns an install hint for the Mermaid CLI.
func ForMermaidNotFound() string {
	return format(firstCommand(MermaidInstallOptions()) + "; or run: md2docx setup")
}

// ForPandocNotFound returns an install hint for Pandoc.
func ForPandocNotFound() string {
	return format(firstCommand(PandocInstallOptions()) + "; or run: md2docx setup")
}

// ForTimeout returns a hint about increasing timeout for slow renders.
func ForTimeout() string {
	return format("for large diagrams, use --timeout flag")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-md2docx/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Find a user config path (contains .config/go-md2docx) to suggest
	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-md2docx") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// firstCommand returns the first runnable install command, falling back to
// the manual instructions.
func firstCommand(opts []InstallOption) string {
	for _, o := range opts {
		if o.Command != "" {
			return "install with: " + o.Command
		}
	}
	for _, o := range opts {
		if o.Manual != "" {
			return o.Manual
		}
	}
	return ""
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
