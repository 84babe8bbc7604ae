package md2docx

import (
	"bytes"
	"context"
	"os/exec"
	"time"

	"github.com/alnah/go-md2docx/internal/process"
)

// CommandRunner abstracts external command execution to enable testing
// without real subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)
	LookPath(name string) (string, error)
}

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct{}

// killGracePeriod bounds how long Wait blocks after context cancellation
// before the whole process group is killed. Some tools (mmdc spawns a
// headless browser) leave children behind when only the parent dies.
const killGracePeriod = 3 * time.Second

// Run executes the command and captures stdout and stderr separately.
// Cancellation of ctx kills the process and, after a grace period, its
// entire process group.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	process.SetGroup(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	cmd.WaitDelay = killGracePeriod
	cmd.Cancel = func() error {
		if cmd.Process != nil {
			process.KillGroup(cmd.Process.Pid)
		}
		return cmd.Process.Kill()
	}

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// LookPath reports the absolute path of an executable found on PATH.
func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
