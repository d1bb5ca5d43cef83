// Package tui is the interactive terminal form for the playground: four
// inputs, one action, and the rendered report.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lamim/promptlab/internal/orchestrator"
	"github.com/lamim/promptlab/internal/render"
	"github.com/lamim/promptlab/internal/variants"
)

// Runner runs one comparison
type Runner interface {
	Run(ctx context.Context, req orchestrator.Request) *orchestrator.Report
}

// ReportRenderer turns a report into terminal output
type ReportRenderer interface {
	Report(report *orchestrator.Report) (string, error)
}

// used until the first WindowSizeMsg arrives
const (
	defaultWidth  = 100
	defaultHeight = 40
)

type field int

const (
	fieldBasePrompt field = iota
	fieldUseCase
	fieldExamples
	fieldTestInput
	fieldButton
	fieldCount
)

// runFinishedMsg carries a completed report back to the event loop
type runFinishedMsg struct {
	report *orchestrator.Report
}

// Model is the root bubbletea model
type Model struct {
	ctx      context.Context
	runner   Runner
	renderer ReportRenderer

	basePrompt textarea.Model
	examples   textarea.Model
	testInput  textinput.Model
	useCase    int
	focus      field

	spinner     spinner.Model
	viewport    viewport.Model
	running     bool
	showResults bool
	report      *orchestrator.Report
	err         error

	width, height int
}

// New creates the form model
func New(ctx context.Context, runner Runner, renderer ReportRenderer) Model {
	base := textarea.New()
	base.Placeholder = "Describe the task you want to accomplish..."
	base.ShowLineNumbers = false
	base.CharLimit = 0
	base.SetHeight(4)

	examples := textarea.New()
	examples.Placeholder = "Provide 2-3 examples separated by line breaks..."
	examples.ShowLineNumbers = false
	examples.CharLimit = 0
	examples.SetHeight(3)

	testInput := textinput.New()
	testInput.Placeholder = "Input to test all variants against..."
	testInput.CharLimit = 0

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(render.Primary)

	m := Model{
		ctx:        ctx,
		runner:     runner,
		renderer:   renderer,
		basePrompt: base,
		examples:   examples,
		testInput:  testInput,
		spinner:    sp,
		viewport:   viewport.New(defaultWidth, defaultHeight),
	}
	m.setSize(defaultWidth, defaultHeight)
	m.setFocus(fieldBasePrompt)
	return m
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case runFinishedMsg:
		m.running = false
		m.report = msg.report
		m.err = nil
		out, err := m.renderer.Report(msg.report)
		if err != nil {
			m.err = err
			out = render.Raw(msg.report)
		}
		m.viewport.SetContent(out)
		m.viewport.GotoTop()
		m.showResults = true
		return m, nil

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.running {
			return m, nil
		}
		if m.showResults {
			return m.updateResults(msg)
		}
		return m.updateForm(msg)
	}

	return m, nil
}

func (m Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+b":
		m.showResults = false
		return m, m.setFocus(m.focus)
	case "q":
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		return m, m.setFocus((m.focus + 1) % fieldCount)
	case "shift+tab":
		return m, m.setFocus((m.focus + fieldCount - 1) % fieldCount)
	case "ctrl+r":
		return m.startRun()
	}

	var cmd tea.Cmd
	switch m.focus {
	case fieldBasePrompt:
		m.basePrompt, cmd = m.basePrompt.Update(msg)
	case fieldExamples:
		m.examples, cmd = m.examples.Update(msg)
	case fieldTestInput:
		if msg.String() == "enter" {
			return m, m.setFocus(fieldButton)
		}
		m.testInput, cmd = m.testInput.Update(msg)
	case fieldUseCase:
		switch msg.String() {
		case "left", "h", "up", "k":
			m.useCase = (m.useCase + len(variants.UseCases) - 1) % len(variants.UseCases)
		case "right", "l", "down", "j", " ":
			m.useCase = (m.useCase + 1) % len(variants.UseCases)
		case "enter":
			return m, m.setFocus(fieldExamples)
		}
	case fieldButton:
		if msg.String() == "enter" || msg.String() == " " {
			return m.startRun()
		}
	}
	return m, cmd
}

// Request returns the form inputs as an orchestrator request
func (m Model) Request() orchestrator.Request {
	return orchestrator.Request{
		BasePrompt: m.basePrompt.Value(),
		UseCase:    variants.UseCases[m.useCase],
		Examples:   m.examples.Value(),
		TestInput:  m.testInput.Value(),
	}
}

func (m Model) startRun() (tea.Model, tea.Cmd) {
	m.running = true
	m.err = nil
	m.basePrompt.Blur()
	m.examples.Blur()
	m.testInput.Blur()
	return m, tea.Batch(m.spinner.Tick, m.runCmd(m.Request()))
}

func (m Model) runCmd(req orchestrator.Request) tea.Cmd {
	ctx, runner := m.ctx, m.runner
	return func() tea.Msg {
		return runFinishedMsg{report: runner.Run(ctx, req)}
	}
}

func (m *Model) setFocus(f field) tea.Cmd {
	m.focus = f
	m.basePrompt.Blur()
	m.examples.Blur()
	m.testInput.Blur()

	switch f {
	case fieldBasePrompt:
		return m.basePrompt.Focus()
	case fieldExamples:
		return m.examples.Focus()
	case fieldTestInput:
		return m.testInput.Focus()
	}
	return nil
}

func (m *Model) setSize(w, h int) {
	m.width, m.height = w, h
	inputWidth := max(20, w-4)
	m.basePrompt.SetWidth(inputWidth)
	m.examples.SetWidth(inputWidth)
	m.testInput.Width = inputWidth - 2
	m.viewport.Width = w
	m.viewport.Height = max(1, h-4)
}

func (m Model) View() string {
	title := TitleStyle.Render("⚗️  Prompt Engineering Playground")

	if m.showResults {
		help := HelpStyle.Render("↑/↓ scroll  |  esc: back to form  |  q: quit")
		parts := []string{title, m.summary(), m.viewport.View()}
		if m.err != nil {
			parts = append(parts, ErrorStyle.Render(fmt.Sprintf("render failed, showing raw markdown: %v", m.err)))
		}
		parts = append(parts, help)
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	subtitle := SubtitleStyle.Render("Write a prompt. Generate 7 variants. Compare. Optimize.")

	useCase := fmt.Sprintf(" ‹ %s › ", variants.UseCases[m.useCase])
	if m.focus == fieldUseCase {
		useCase = FocusedLabelStyle.Render(useCase)
	}

	button := ButtonStyle.Render("⚡ Generate & Compare 7 Variants")
	if m.focus == fieldButton {
		button = FocusedButtonStyle.Render("⚡ Generate & Compare 7 Variants")
	}

	status := HelpStyle.Render("tab/shift+tab: move  |  ←/→: use case  |  ctrl+r: run  |  ctrl+c: quit")
	if m.running {
		status = fmt.Sprintf(" %s Testing %d variants...", m.spinner.View(), len(variants.Names()))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		subtitle,
		"",
		m.label("Base Prompt", fieldBasePrompt),
		m.basePrompt.View(),
		m.label("Use Case", fieldUseCase),
		useCase,
		m.label("Examples (for Few-Shot, optional)", fieldExamples),
		m.examples.View(),
		m.label("Test Input", fieldTestInput),
		m.testInput.View(),
		"",
		button,
		status,
	)
}

// summary is a one-line status of the last run
func (m Model) summary() string {
	if m.report == nil || len(m.report.Results) == 0 {
		return ""
	}
	failed := 0
	for _, r := range m.report.Results {
		if r.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return ErrorStyle.Render(fmt.Sprintf("✗ %d of %d variants failed", failed, len(m.report.Results)))
	}
	return SuccessStyle.Render(fmt.Sprintf("✓ %d variants tested in %s", len(m.report.Results), m.report.Duration.Round(time.Millisecond)))
}

func (m Model) label(text string, f field) string {
	if m.focus == f {
		return FocusedLabelStyle.Render(text)
	}
	return LabelStyle.Render(text)
}
