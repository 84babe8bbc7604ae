package main

import (
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = fmt.Errorf("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags
}

// commandDef describes a command for completion.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	TakesFiles  bool   // accepts file arguments
	FilePattern string // glob for file arguments (e.g., "*.md")
}

// completionMeta holds completion-specific metadata for flags.
// This is the ONLY place where completion hints are defined.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	// Enum flags
	"image-format": {Values: []string{"png", "svg"}},
	"background":   {Values: []string{"white", "transparent"}},
	"theme":        {Values: []string{"default", "dark", "forest", "neutral"}},

	// File flags with glob patterns
	"config":        {FileGlob: "*.yaml,*.yml"},
	"reference-doc": {FileGlob: "*.docx"},
	"mermaid-path":  {FileGlob: "*"},
	"pandoc-path":   {FileGlob: "*"},

	// Directory flags
	"output":    {IsDir: true},
	"image-dir": {IsDir: true},
}

// buildExportFlagSet creates a FlagSet with all export command flags.
// This reuses the same flag registration as parseExportFlags.
func buildExportFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	f := &exportFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-tool timeout (e.g., 30s, 2m)")
	fs.BoolVar(&f.imagesOnly, "images-only", false, "render diagrams only, skip DOCX")

	addCommonFlags(fs, &f.common)
	addRenderFlags(fs, &f.render)
	addDocxFlags(fs, &f.docx)
	addToolFlags(fs, &f.tools)

	return fs
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		// Override type based on completion metadata
		if meta, ok := flagCompletionMeta[f.Name]; ok {
			if len(meta.Values) > 0 {
				fd.Type = flagEnum
				fd.Values = meta.Values
			} else if meta.FileGlob != "" {
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			} else if meta.IsDir {
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags are extracted from the actual FlagSet - single source of truth.
func getCommands() []commandDef {
	exportFlags := extractFlagsFromFlagSet(buildExportFlagSet())

	// charts shares the export flags minus --images-only.
	chartsFlags := make([]flagDef, 0, len(exportFlags))
	for _, f := range exportFlags {
		if f.Long == "images-only" {
			continue
		}
		chartsFlags = append(chartsFlags, f)
	}

	return []commandDef{
		{
			Name:        "export",
			Desc:        "Convert markdown files to DOCX with rendered charts",
			Flags:       exportFlags,
			TakesFiles:  true,
			FilePattern: "*.md,*.markdown",
		},
		{
			Name:        "charts",
			Desc:        "Render mermaid charts to images only",
			Flags:       chartsFlags,
			TakesFiles:  true,
			FilePattern: "*.md,*.markdown",
		},
		{
			Name:  "doctor",
			Desc:  "Check external tool installation",
			Flags: []flagDef{{Long: "json", Type: flagBool, Desc: "emit machine-readable output"}},
		},
		{
			Name:  "setup",
			Desc:  "Install missing external tools",
			Flags: []flagDef{{Long: "yes", Short: "y", Type: flagBool, Desc: "skip confirmation prompts"}},
		},
		{
			Name:  "tui",
			Desc:  "Launch the interactive terminal UI",
			Flags: nil,
		},
		{
			Name:  "version",
			Desc:  "Show version information",
			Flags: nil,
		},
		{
			Name:  "help",
			Desc:  "Show help for a command",
			Flags: nil,
		},
		{
			Name:  "completion",
			Desc:  "Generate shell completion script",
			Flags: nil,
		},
	}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch shell {
	case ShellBash:
		return generateBash(w)
	case ShellZsh:
		return generateZsh(w)
	case ShellFish:
		return generateFish(w)
	case ShellPowerShell:
		return generatePowerShell(w)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish, powershell)", ErrUnsupportedShell, shell)
	}
}

func generateBash(w io.Writer) error {
	cmds := getCommands()

	var names []string
	for _, c := range cmds {
		names = append(names, c.Name)
	}

	fmt.Fprintln(w, "# bash completion for md2docx")
	fmt.Fprintln(w, "_md2docx() {")
	fmt.Fprintln(w, "    local cur prev words cword")
	fmt.Fprintln(w, "    _init_completion || return")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "    local commands=%q\n", strings.Join(names, " "))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    if [[ $cword -eq 1 ]]; then")
	fmt.Fprintln(w, "        COMPREPLY=($(compgen -W \"$commands\" -- \"$cur\"))")
	fmt.Fprintln(w, "        return")
	fmt.Fprintln(w, "    fi")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    case ${words[1]} in")

	for _, c := range cmds {
		fmt.Fprintf(w, "        %s)\n", c.Name)

		// Value completion for the flag preceding the cursor.
		var enumCases []string
		for _, f := range c.Flags {
			switch f.Type {
			case flagEnum:
				enumCases = append(enumCases, fmt.Sprintf("--%s) COMPREPLY=($(compgen -W %q -- \"$cur\")); return ;;", f.Long, strings.Join(f.Values, " ")))
			case flagFile:
				enumCases = append(enumCases, fmt.Sprintf("--%s) _filedir; return ;;", f.Long))
			case flagDir:
				enumCases = append(enumCases, fmt.Sprintf("--%s) _filedir -d; return ;;", f.Long))
			}
		}
		if len(enumCases) > 0 {
			fmt.Fprintln(w, "            case $prev in")
			for _, ec := range enumCases {
				fmt.Fprintf(w, "                %s\n", ec)
			}
			fmt.Fprintln(w, "            esac")
		}

		var flagWords []string
		for _, f := range c.Flags {
			flagWords = append(flagWords, "--"+f.Long)
			if f.Short != "" {
				flagWords = append(flagWords, "-"+f.Short)
			}
		}
		if c.Name == "help" {
			fmt.Fprintln(w, "            COMPREPLY=($(compgen -W \"$commands\" -- \"$cur\"))")
		} else if len(flagWords) > 0 {
			fmt.Fprintf(w, "            if [[ $cur == -* ]]; then\n")
			fmt.Fprintf(w, "                COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(flagWords, " "))
			if c.TakesFiles {
				fmt.Fprintln(w, "            else")
				fmt.Fprintln(w, "                _filedir")
			}
			fmt.Fprintln(w, "            fi")
		} else if c.Name == "completion" {
			fmt.Fprintln(w, "            COMPREPLY=($(compgen -W \"bash zsh fish powershell\" -- \"$cur\"))")
		}
		fmt.Fprintln(w, "            ;;")
	}

	fmt.Fprintln(w, "    esac")
	fmt.Fprintln(w, "}")
	fmt.Fprintln(w, "complete -F _md2docx md2docx")
	return nil
}

func generateZsh(w io.Writer) error {
	cmds := getCommands()

	fmt.Fprintln(w, "#compdef md2docx")
	fmt.Fprintln(w, "# zsh completion for md2docx")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "_md2docx() {")
	fmt.Fprintln(w, "    local -a commands")
	fmt.Fprintln(w, "    commands=(")
	for _, c := range cmds {
		fmt.Fprintf(w, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	fmt.Fprintln(w, "    )")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    if (( CURRENT == 2 )); then")
	fmt.Fprintln(w, "        _describe 'command' commands")
	fmt.Fprintln(w, "        return")
	fmt.Fprintln(w, "    fi")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    case $words[2] in")

	for _, c := range cmds {
		fmt.Fprintf(w, "        %s)\n", c.Name)
		fmt.Fprintln(w, "            _arguments \\")
		for _, f := range c.Flags {
			fmt.Fprintf(w, "                %s \\\n", zshArgSpec(f))
		}
		if c.TakesFiles {
			fmt.Fprintf(w, "                '*:markdown file:_files -g \"%s\"'\n", strings.ReplaceAll(c.FilePattern, ",", " "))
		} else if c.Name == "completion" {
			fmt.Fprintln(w, "                '1:shell:(bash zsh fish powershell)'")
		} else if c.Name == "help" {
			fmt.Fprintln(w, "                '1:command:($commands)'")
		} else {
			fmt.Fprintln(w, "                '*: :'")
		}
		fmt.Fprintln(w, "            ;;")
	}

	fmt.Fprintln(w, "    esac")
	fmt.Fprintln(w, "}")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "_md2docx \"$@\"")
	return nil
}

// zshArgSpec renders one _arguments spec line for a flag.
func zshArgSpec(f flagDef) string {
	name := "--" + f.Long
	if f.Short != "" {
		name = fmt.Sprintf("(-%s --%s){-%s,--%s}", f.Short, f.Long, f.Short, f.Long)
	}

	desc := zshEscape(f.Desc)
	switch f.Type {
	case flagBool:
		return fmt.Sprintf("'%s[%s]'", name, desc)
	case flagEnum:
		return fmt.Sprintf("'%s[%s]:value:(%s)'", name, desc, strings.Join(f.Values, " "))
	case flagFile:
		return fmt.Sprintf("'%s[%s]:file:_files -g \"%s\"'", name, desc, strings.ReplaceAll(f.FileGlob, ",", " "))
	case flagDir:
		return fmt.Sprintf("'%s[%s]:directory:_files -/'", name, desc)
	default:
		return fmt.Sprintf("'%s[%s]:value:'", name, desc)
	}
}

func zshEscape(s string) string {
	s = strings.ReplaceAll(s, "'", "'\\''")
	return strings.ReplaceAll(s, ":", "\\:")
}

func generateFish(w io.Writer) error {
	cmds := getCommands()

	fmt.Fprintln(w, "# fish completion for md2docx")
	fmt.Fprintln(w, "complete -c md2docx -f")
	fmt.Fprintln(w)

	for _, c := range cmds {
		fmt.Fprintf(w, "complete -c md2docx -n '__fish_use_subcommand' -a %s -d %q\n", c.Name, c.Desc)
	}
	fmt.Fprintln(w)

	for _, c := range cmds {
		cond := fmt.Sprintf("__fish_seen_subcommand_from %s", c.Name)
		for _, f := range c.Flags {
			line := fmt.Sprintf("complete -c md2docx -n '%s' -l %s", cond, f.Long)
			if f.Short != "" {
				line += " -s " + f.Short
			}
			switch f.Type {
			case flagEnum:
				line += fmt.Sprintf(" -x -a '%s'", strings.Join(f.Values, " "))
			case flagFile:
				line += " -r"
			case flagDir:
				line += " -x -a '(__fish_complete_directories)'"
			case flagBool:
				// no argument
			default:
				line += " -x"
			}
			line += fmt.Sprintf(" -d %q", f.Desc)
			fmt.Fprintln(w, line)
		}
		if c.TakesFiles {
			fmt.Fprintf(w, "complete -c md2docx -n '%s' -a '(__fish_complete_suffix .md .markdown)'\n", cond)
		}
		if c.Name == "completion" {
			fmt.Fprintf(w, "complete -c md2docx -n '%s' -x -a 'bash zsh fish powershell'\n", cond)
		}
	}
	return nil
}

func generatePowerShell(w io.Writer) error {
	cmds := getCommands()

	fmt.Fprintln(w, "# PowerShell completion for md2docx")
	fmt.Fprintln(w, "Register-ArgumentCompleter -Native -CommandName md2docx -ScriptBlock {")
	fmt.Fprintln(w, "    param($wordToComplete, $commandAst, $cursorPosition)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    $tokens = $commandAst.CommandElements | ForEach-Object { $_.ToString() }")
	fmt.Fprintln(w, "    $command = if ($tokens.Count -gt 1) { $tokens[1] } else { '' }")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    $completions = switch ($command) {")

	for _, c := range cmds {
		var words []string
		for _, f := range c.Flags {
			words = append(words, "'--"+f.Long+"'")
			if f.Short != "" {
				words = append(words, "'-"+f.Short+"'")
			}
		}
		if c.Name == "completion" {
			words = append(words, "'bash'", "'zsh'", "'fish'", "'powershell'")
		}
		if len(words) > 0 {
			fmt.Fprintf(w, "        '%s' { @(%s) }\n", c.Name, strings.Join(words, ", "))
		}
	}

	var names []string
	for _, c := range cmds {
		names = append(names, "'"+c.Name+"'")
	}
	fmt.Fprintf(w, "        default { @(%s) }\n", strings.Join(names, ", "))
	fmt.Fprintln(w, "    }")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    $completions | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {")
	fmt.Fprintln(w, "        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)")
	fmt.Fprintln(w, "    }")
	fmt.Fprintln(w, "}")
	return nil
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}

	shell := Shell(args[0])
	return GenerateCompletion(env.Stdout, shell)
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2docx completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w, "  powershell  PowerShell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(md2docx completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(md2docx completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    md2docx completion fish > ~/.config/fish/completions/md2docx.fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  PowerShell:")
	fmt.Fprintln(w, "    # Add to $PROFILE:")
	fmt.Fprintln(w, "    md2docx completion powershell | Out-String | Invoke-Expression")
}
