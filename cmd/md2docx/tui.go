package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alnah/go-md2docx/internal/tui"
)

// runTUICmd launches the terminal UI and returns an exit code.
func runTUICmd(env *Environment) int {
	p := tea.NewProgram(tui.NewApp(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(env.Stderr, "tui: %v\n", err)
		return ExitGeneral
	}
	return ExitSuccess
}
