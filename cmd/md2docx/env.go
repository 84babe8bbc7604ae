package main

import (
	"io"
	"os"
	"time"

	md2docx "github.com/alnah/go-md2docx"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now    func() time.Time
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Runner md2docx.CommandRunner // used by doctor and setup
}

// DefaultEnv returns production dependencies.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Runner: &md2docx.ExecRunner{},
	}
}
