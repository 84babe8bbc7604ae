// Package tui is the interactive terminal UI for md2docx. It follows The
// Elm Architecture used by bubbletea: a model holding all state, an Update
// reacting to messages, and a View rendering the state.
//
// The export itself runs inside a tea.Cmd so the event loop stays
// responsive; completion and log lines arrive back as messages.
package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	md2docx "github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/fileutil"
)

// focusArea identifies which control has keyboard focus.
type focusArea int

const (
	focusInputFile focusArea = iota
	focusOutputDir
	focusExport
	focusChartsOnly
	focusClear
	focusCount // sentinel for cycling
)

// Exporter abstracts the conversion service so tests can inject fakes.
type Exporter interface {
	Export(ctx context.Context, input md2docx.Input) (*md2docx.ExportResult, error)
}

// AppOption customizes App construction for tests.
type AppOption func(*App)

// WithExporter overrides the conversion service used by the TUI.
func WithExporter(e Exporter) AppOption {
	return func(a *App) {
		if e != nil {
			a.exporter = e
		}
	}
}

// exportDoneMsg reports a finished export back to the event loop.
type exportDoneMsg struct {
	result   *md2docx.ExportResult
	err      error
	input    string
	duration time.Duration
}

// App is the TUI model holding all state.
type App struct {
	exporter Exporter

	inputFile textinput.Model
	outputDir textinput.Model
	focus     focusArea

	prog      progress.Model
	percent   float64
	exporting bool

	log      []string
	logView  viewport.Model
	logReady bool

	width  int
	height int
}

// maxLogLines bounds the scrollback kept in memory.
const maxLogLines = 500

// NewApp creates the TUI model with a production exporter.
func NewApp(opts ...AppOption) *App {
	input := textinput.New()
	input.Placeholder = "path/to/document.md"
	input.Prompt = "> "
	input.Focus()

	output := textinput.New()
	output.Placeholder = "output directory (empty = next to source)"
	output.Prompt = "> "

	a := &App{
		exporter:  md2docx.NewExporter(),
		inputFile: input,
		outputDir: output,
		focus:     focusInputFile,
		prog:      progress.New(progress.WithDefaultGradient()),
		log:       []string{"Select a markdown file and press Export."},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout()
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return a, tea.Quit
		case "tab", "down":
			a.setFocus((a.focus + 1) % focusCount)
			return a, nil
		case "shift+tab", "up":
			a.setFocus((a.focus + focusCount - 1) % focusCount)
			return a, nil
		case "enter":
			return a.activate()
		}

	case exportDoneMsg:
		a.exporting = false
		a.percent = 1.0
		a.logExportOutcome(msg)
		return a, nil
	}

	return a, a.updateInputs(msg)
}

// updateInputs forwards messages to the focused text field.
func (a *App) updateInputs(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	a.inputFile, cmd = a.inputFile.Update(msg)
	cmds = append(cmds, cmd)
	a.outputDir, cmd = a.outputDir.Update(msg)
	cmds = append(cmds, cmd)
	a.logView, cmd = a.logView.Update(msg)
	cmds = append(cmds, cmd)

	return tea.Batch(cmds...)
}

// setFocus moves keyboard focus between controls.
func (a *App) setFocus(f focusArea) {
	a.focus = f
	a.inputFile.Blur()
	a.outputDir.Blur()
	switch f {
	case focusInputFile:
		a.inputFile.Focus()
	case focusOutputDir:
		a.outputDir.Focus()
	}
}

// activate runs the action bound to the focused control.
func (a *App) activate() (tea.Model, tea.Cmd) {
	switch a.focus {
	case focusInputFile, focusOutputDir:
		a.setFocus((a.focus + 1) % focusCount)
		return a, nil
	case focusExport:
		return a, a.startExport(false)
	case focusChartsOnly:
		return a, a.startExport(true)
	case focusClear:
		a.inputFile.SetValue("")
		a.outputDir.SetValue("")
		a.percent = 0
		a.appendLog("Cleared.")
		a.setFocus(focusInputFile)
		return a, nil
	}
	return a, nil
}

// startExport validates the form and kicks off the conversion command.
// Validation failures are logged, matching the form-stays-open behavior
// users expect from a GUI.
func (a *App) startExport(imagesOnly bool) tea.Cmd {
	if a.exporting {
		a.appendLog("An export is already running.")
		return nil
	}

	inputPath := strings.TrimSpace(a.inputFile.Value())
	if inputPath == "" {
		a.appendLog("Error: no input file selected.")
		return nil
	}
	if ext := filepath.Ext(inputPath); ext != ".md" && ext != ".markdown" {
		a.appendLog(fmt.Sprintf("Error: %s is not a markdown file.", inputPath))
		return nil
	}
	content, err := os.ReadFile(inputPath) // #nosec G304 -- user-selected path
	if err != nil {
		a.appendLog(fmt.Sprintf("Error: cannot read %s: %v", inputPath, err))
		return nil
	}

	outputDir := strings.TrimSpace(a.outputDir.Value())
	if outputDir == "" {
		outputDir = filepath.Dir(inputPath)
	}
	if err := os.MkdirAll(outputDir, 0o750); err != nil {
		a.appendLog(fmt.Sprintf("Error: cannot create output directory: %v", err))
		return nil
	}

	base := fileutil.BaseWithoutExt(inputPath)
	input := md2docx.Input{
		Markdown:   string(content),
		SourceDir:  filepath.Dir(inputPath),
		BaseName:   base,
		OutputDir:  outputDir,
		ImagesOnly: imagesOnly,
	}

	a.exporting = true
	a.percent = 0.1
	if imagesOnly {
		a.appendLog(fmt.Sprintf("Rendering charts from %s ...", inputPath))
	} else {
		a.appendLog(fmt.Sprintf("Exporting %s ...", inputPath))
	}

	exporter := a.exporter
	return func() tea.Msg {
		start := time.Now()
		result, err := exporter.Export(context.Background(), input)
		return exportDoneMsg{result: result, err: err, input: inputPath, duration: time.Since(start)}
	}
}

// logExportOutcome reports a finished export to the log panel.
func (a *App) logExportOutcome(msg exportDoneMsg) {
	if msg.err != nil {
		a.appendLog(fmt.Sprintf("Failed: %v", msg.err))
		return
	}

	for _, img := range msg.result.Images {
		if img.Err != nil {
			a.appendLog(fmt.Sprintf("Warning: chart %d not rendered: %v", img.Index, img.Err))
		}
	}
	if msg.result.Rendered > 0 {
		a.appendLog(fmt.Sprintf("Rendered %d chart(s).", msg.result.Rendered))
	}
	if msg.result.DocxPath != "" {
		a.appendLog(fmt.Sprintf("Created %s (%v)", msg.result.DocxPath, msg.duration.Round(time.Millisecond)))
	} else {
		a.appendLog(fmt.Sprintf("Done (%v)", msg.duration.Round(time.Millisecond)))
	}
}

// appendLog adds a line to the scrollback and follows the tail.
func (a *App) appendLog(line string) {
	a.log = append(a.log, line)
	if len(a.log) > maxLogLines {
		a.log = a.log[len(a.log)-maxLogLines:]
	}
	if a.logReady {
		a.logView.SetContent(strings.Join(a.log, "\n"))
		a.logView.GotoBottom()
	}
}

// layout sizes the widgets to the terminal.
func (a *App) layout() {
	fieldWidth := a.width - 8
	if fieldWidth < 20 {
		fieldWidth = 20
	}
	a.inputFile.Width = fieldWidth
	a.outputDir.Width = fieldWidth
	a.prog.Width = fieldWidth

	logHeight := a.height - 16
	if logHeight < 3 {
		logHeight = 3
	}
	if !a.logReady {
		a.logView = viewport.New(fieldWidth+4, logHeight)
		a.logReady = true
	} else {
		a.logView.Width = fieldWidth + 4
		a.logView.Height = logHeight
	}
	a.logView.SetContent(strings.Join(a.log, "\n"))
	a.logView.GotoBottom()
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).Padding(0, 1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	buttonStyle = lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color("252"))
	activeStyle = lipgloss.NewStyle().Padding(0, 2).Bold(true).
			Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	panelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View implements tea.Model.
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("md2docx"))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Markdown file"))
	b.WriteString("\n")
	b.WriteString(a.inputFile.View())
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Output directory"))
	b.WriteString("\n")
	b.WriteString(a.outputDir.View())
	b.WriteString("\n\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		a.button("Export DOCX + Charts", focusExport),
		" ",
		a.button("Charts Only", focusChartsOnly),
		" ",
		a.button("Clear", focusClear),
	))
	b.WriteString("\n\n")

	b.WriteString(a.prog.ViewAs(a.percent))
	b.WriteString("\n\n")

	if a.logReady {
		b.WriteString(panelStyle.Render(a.logView.View()))
	} else {
		b.WriteString(panelStyle.Render(strings.Join(a.log, "\n")))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab: next field · enter: activate · esc: quit"))

	return b.String()
}

// button renders an action button, highlighted when focused.
func (a *App) button(label string, f focusArea) string {
	if a.focus == f {
		return activeStyle.Render(label)
	}
	return buttonStyle.Render(label)
}
