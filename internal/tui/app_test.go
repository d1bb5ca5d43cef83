package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lamim/promptlab/internal/orchestrator"
	"github.com/lamim/promptlab/internal/variants"
)

type fakeRunner struct {
	got   orchestrator.Request
	calls int
}

func (f *fakeRunner) Run(ctx context.Context, req orchestrator.Request) *orchestrator.Report {
	f.calls++
	f.got = req
	return &orchestrator.Report{
		Variants:   "## variants for " + req.BasePrompt,
		Comparison: "| table |",
		Optimized:  "optimized",
	}
}

type fakeRenderer struct {
	err error
}

func (f fakeRenderer) Report(report *orchestrator.Report) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "RENDERED " + report.Variants, nil
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model, cmd
}

func newTestModel(r ReportRenderer) (Model, *fakeRunner) {
	runner := &fakeRunner{}
	return New(context.Background(), runner, r), runner
}

func TestFocusCycle(t *testing.T) {
	m, _ := newTestModel(fakeRenderer{})
	if m.focus != fieldBasePrompt {
		t.Fatalf("Expected initial focus on base prompt, got %d", m.focus)
	}

	for i := 1; i <= int(fieldCount); i++ {
		m, _ = send(t, m, key("tab"))
		if want := field(i % int(fieldCount)); m.focus != want {
			t.Fatalf("After %d tabs expected focus %d, got %d", i, want, m.focus)
		}
	}

	m, _ = send(t, m, key("shift+tab"))
	if m.focus != fieldButton {
		t.Errorf("Expected shift+tab to wrap to the button, got %d", m.focus)
	}
}

func TestUseCaseSelector(t *testing.T) {
	m, _ := newTestModel(fakeRenderer{})
	if got := m.Request().UseCase; got != "General" {
		t.Fatalf("Expected default use case General, got %q", got)
	}

	m, _ = send(t, m, key("tab"))
	m, _ = send(t, m, key("right"))
	if got := m.Request().UseCase; got != variants.UseCases[1] {
		t.Errorf("Expected %q after right, got %q", variants.UseCases[1], got)
	}

	m, _ = send(t, m, key("left"))
	m, _ = send(t, m, key("left"))
	if got := m.Request().UseCase; got != variants.UseCases[len(variants.UseCases)-1] {
		t.Errorf("Expected selector to wrap to the last use case, got %q", got)
	}
}

func TestTypingGoesToFocusedInput(t *testing.T) {
	m, _ := newTestModel(fakeRenderer{})
	m, _ = send(t, m, key("Explain DNS"))

	for i := 0; i < 3; i++ {
		m, _ = send(t, m, key("tab"))
	}
	m, _ = send(t, m, key("dig example.com"))

	req := m.Request()
	if req.BasePrompt != "Explain DNS" {
		t.Errorf("Expected base prompt to be typed, got %q", req.BasePrompt)
	}
	if req.TestInput != "dig example.com" {
		t.Errorf("Expected test input to be typed, got %q", req.TestInput)
	}
	if req.Examples != "" {
		t.Errorf("Expected examples to stay empty, got %q", req.Examples)
	}
}

func TestRunFlow(t *testing.T) {
	m, runner := newTestModel(fakeRenderer{})
	m.basePrompt.SetValue("Write a haiku")
	m.testInput.SetValue("autumn")

	m, cmd := send(t, m, key("ctrl+r"))
	if !m.running || cmd == nil {
		t.Fatal("Expected ctrl+r to start a run")
	}

	// keys other than ctrl+c are ignored while a run is in flight
	m, _ = send(t, m, key("tab"))
	if m.focus != fieldBasePrompt {
		t.Errorf("Expected focus to stay put while running, got %d", m.focus)
	}

	msg := m.runCmd(m.Request())()
	if runner.calls != 1 || runner.got.BasePrompt != "Write a haiku" || runner.got.TestInput != "autumn" {
		t.Fatalf("Unexpected runner call: %d %+v", runner.calls, runner.got)
	}

	m, _ = send(t, m, msg)
	if m.running || !m.showResults {
		t.Fatal("Expected results view after the run finished")
	}
	if !strings.Contains(m.View(), "RENDERED ## variants for Write a haiku") {
		t.Errorf("Expected rendered report in view, got:\n%s", m.View())
	}

	m, _ = send(t, m, key("esc"))
	if m.showResults {
		t.Error("Expected esc to return to the form")
	}
	if m.Request().BasePrompt != "Write a haiku" {
		t.Error("Expected form inputs to survive the round trip")
	}
}

func TestRunFromButton(t *testing.T) {
	m, _ := newTestModel(fakeRenderer{})
	m, _ = send(t, m, key("shift+tab"))
	if m.focus != fieldButton {
		t.Fatalf("Expected button focus, got %d", m.focus)
	}
	m, cmd := send(t, m, key("enter"))
	if !m.running || cmd == nil {
		t.Error("Expected enter on the button to start a run")
	}
}

func TestRenderFailureFallsBackToRaw(t *testing.T) {
	m, _ := newTestModel(fakeRenderer{err: errors.New("bad style")})
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	m, _ = send(t, m, runFinishedMsg{report: &orchestrator.Report{Variants: "raw variants"}})
	view := m.View()
	if !strings.Contains(view, "raw variants") {
		t.Errorf("Expected raw markdown fallback, got:\n%s", view)
	}
	if !strings.Contains(view, "bad style") {
		t.Errorf("Expected render error in view, got:\n%s", view)
	}
}

func TestCtrlCQuits(t *testing.T) {
	m, _ := newTestModel(fakeRenderer{})
	m.running = true
	_, cmd := send(t, m, key("ctrl+c"))
	if cmd == nil {
		t.Fatal("Expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected ctrl+c to quit")
	}
}

func TestResultsSummary(t *testing.T) {
	m, _ := newTestModel(fakeRenderer{})
	m, _ = send(t, m, runFinishedMsg{report: &orchestrator.Report{
		Variants: "v",
		Results: []orchestrator.Result{
			{Name: variants.ZeroShot, Output: "fine"},
			{Name: variants.FewShot, Err: errors.New("quota exceeded")},
		},
	}})
	if !strings.Contains(m.View(), "1 of 2 variants failed") {
		t.Errorf("Expected failure summary, got:\n%s", m.View())
	}
}
