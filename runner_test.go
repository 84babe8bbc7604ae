package md2docx

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestExecRunnerCapturesStdoutAndStderr(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires sh")
	}

	r := &ExecRunner{}
	stdout, stderr, err := r.Run(context.Background(), "sh", "-c", "echo out; echo err >&2")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if strings.TrimSpace(stdout) != "out" {
		t.Errorf("stdout = %q, want %q", stdout, "out")
	}
	if strings.TrimSpace(stderr) != "err" {
		t.Errorf("stderr = %q, want %q", stderr, "err")
	}
}

func TestExecRunnerNonZeroExit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires sh")
	}

	r := &ExecRunner{}
	_, stderr, err := r.Run(context.Background(), "sh", "-c", "echo boom >&2; exit 3")
	if err == nil {
		t.Fatal("Run() error = nil, want exit error")
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Run() error = %T, want *exec.ExitError", err)
	}
	if exitErr.ExitCode() != 3 {
		t.Errorf("exit code = %d, want 3", exitErr.ExitCode())
	}
	if strings.TrimSpace(stderr) != "boom" {
		t.Errorf("stderr = %q, want %q", stderr, "boom")
	}
}

func TestExecRunnerContextCancelKills(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires sleep")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	r := &ExecRunner{}
	start := time.Now()
	_, _, err := r.Run(ctx, "sleep", "30")
	if err == nil {
		t.Fatal("Run() error = nil, want kill error")
	}
	if elapsed := time.Since(start); elapsed > 10*time.Second {
		t.Errorf("Run() took %v, process not killed promptly", elapsed)
	}
}

func TestExecRunnerLookPath(t *testing.T) {
	r := &ExecRunner{}

	if _, err := r.LookPath("definitely-not-a-real-binary-12345"); err == nil {
		t.Error("LookPath() error = nil for missing binary")
	}

	shell := "sh"
	if runtime.GOOS == "windows" {
		shell = "cmd"
	}
	path, err := r.LookPath(shell)
	if err != nil {
		t.Fatalf("LookPath(%q) error = %v", shell, err)
	}
	if path == "" {
		t.Error("LookPath() returned empty path")
	}
}
