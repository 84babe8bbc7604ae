package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(realMain(os.Args[1:]))
}

func realMain(args []string) int {
	env := DefaultEnv()

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	if len(args) == 0 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	return run(ctx, args[0], args[1:], env)
}

// run dispatches a command and returns its exit code.
func run(ctx context.Context, command string, args []string, env *Environment) int {
	switch command {
	case "export":
		return runExportCmd(ctx, args, false, env)
	case "charts":
		return runExportCmd(ctx, args, true, env)
	case "doctor":
		return runDoctorCmd(args, env)
	case "setup":
		return runSetupCmd(args, env)
	case "tui":
		return runTUICmd(env)
	case "completion":
		if err := runCompletion(args, env); err != nil {
			fmt.Fprintf(env.Stderr, "Error: %v\n", err)
			return ExitUsage
		}
		return ExitSuccess
	case "version":
		fmt.Fprintf(env.Stdout, "md2docx %s\n", Version)
		return ExitSuccess
	case "help", "--help", "-h":
		runHelp(args, env)
		return ExitSuccess
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n\n", command)
		printUsage(env.Stderr)
		return ExitUsage
	}
}
