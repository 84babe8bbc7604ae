package main

import (
	"strings"
	"testing"
)

func TestPrintUsageListsCommands(t *testing.T) {
	env, stdout, _ := testEnv(&fakeRunner{})
	printUsage(env.Stdout)

	out := stdout.String()
	for _, cmd := range []string{"export", "charts", "doctor", "setup", "tui", "version", "help"} {
		if !strings.Contains(out, cmd) {
			t.Errorf("usage missing command %q:\n%s", cmd, out)
		}
	}
}

func TestRunHelpPerCommand(t *testing.T) {
	tests := []struct {
		command string
		want    string
	}{
		{"export", "md2docx export <input>"},
		{"charts", "md2docx charts <input>"},
		{"doctor", "md2docx doctor [--json]"},
		{"setup", "md2docx setup [--yes]"},
		{"tui", "md2docx tui"},
		{"version", "md2docx version"},
		{"help", "md2docx help [command]"},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			env, stdout, _ := testEnv(&fakeRunner{})
			runHelp([]string{tt.command}, env)
			if !strings.Contains(stdout.String(), tt.want) {
				t.Errorf("help %s output missing %q:\n%s", tt.command, tt.want, stdout.String())
			}
		})
	}
}

func TestRunHelpNoArgsShowsUsage(t *testing.T) {
	env, stdout, _ := testEnv(&fakeRunner{})
	runHelp(nil, env)
	if !strings.Contains(stdout.String(), "Usage: md2docx <command>") {
		t.Errorf("output = %q", stdout.String())
	}
}

func TestRunHelpUnknownCommand(t *testing.T) {
	env, _, stderr := testEnv(&fakeRunner{})
	runHelp([]string{"frobnicate"}, env)
	if !strings.Contains(stderr.String(), "Unknown command: frobnicate") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestExportUsageMentionsImagesOnlyOnlyForExport(t *testing.T) {
	env, stdout, _ := testEnv(&fakeRunner{})
	printExportUsage(env.Stdout, "export")
	if !strings.Contains(stdout.String(), "--images-only") {
		t.Error("export usage missing --images-only")
	}

	env2, stdout2, _ := testEnv(&fakeRunner{})
	printExportUsage(env2.Stdout, "charts")
	if strings.Contains(stdout2.String(), "--images-only") {
		t.Error("charts usage mentions --images-only")
	}
}
