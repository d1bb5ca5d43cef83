package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/lamim/promptlab/internal/api"
	"github.com/lamim/promptlab/internal/variants"
)

// stubCompleter answers every request, failing those whose prompt matches failOn
type stubCompleter struct {
	calls   []string
	failOn  string
	panicOn string
}

func (s *stubCompleter) Complete(ctx context.Context, messages []api.Message) (string, error) {
	prompt := messages[0].Content
	s.calls = append(s.calls, prompt)
	if s.panicOn != "" && strings.Contains(prompt, s.panicOn) {
		panic("boom")
	}
	if s.failOn != "" && strings.Contains(prompt, s.failOn) {
		return "", errors.New("model overloaded")
	}
	return fmt.Sprintf("  reply %d  \n", len(s.calls)), nil
}

type recordingObserver struct {
	started  []variants.Name
	finished []variants.Name
}

func (r *recordingObserver) VariantStarted(index int, name variants.Name) {
	r.started = append(r.started, name)
}

func (r *recordingObserver) VariantFinished(index int, result Result) {
	r.finished = append(r.finished, result.Name)
}

func newTestOrchestrator(c Completer) *Orchestrator {
	return New(c, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRun_EmptyBasePrompt(t *testing.T) {
	tests := []string{"", "   ", "\n\t "}

	for _, basePrompt := range tests {
		stub := &stubCompleter{}
		report := newTestOrchestrator(stub).Run(context.Background(), Request{
			BasePrompt: basePrompt,
			UseCase:    "Education",
			Examples:   "x",
			TestInput:  "y",
		})

		if report.Variants != EmptyPromptMessage {
			t.Errorf("Expected %q, got %q", EmptyPromptMessage, report.Variants)
		}
		if report.Comparison != "" || report.Optimized != "" {
			t.Errorf("Expected empty comparison and optimized panels, got %q / %q", report.Comparison, report.Optimized)
		}
		if len(stub.calls) != 0 {
			t.Errorf("Expected no endpoint calls, got %d", len(stub.calls))
		}
	}
}

func TestRun_AllVariantsInOrder(t *testing.T) {
	stub := &stubCompleter{}
	obs := &recordingObserver{}

	report := newTestOrchestrator(stub).RunWithObserver(context.Background(), Request{
		BasePrompt: "Explain photosynthesis",
		UseCase:    "Education",
		TestInput:  "for a 10 year old",
	}, obs)

	names := variants.Names()
	if len(stub.calls) != len(names) {
		t.Fatalf("Expected %d calls, got %d", len(names), len(stub.calls))
	}
	if len(report.Results) != len(names) {
		t.Fatalf("Expected %d results, got %d", len(names), len(report.Results))
	}

	set := variants.Generate("Explain photosynthesis", "Education", "")
	for i, r := range report.Results {
		if r.Name != names[i] {
			t.Errorf("Result %d: expected %q, got %q", i, names[i], r.Name)
		}
		expectedPrompt := set[i].Text + "\n\nTest Input: for a 10 year old"
		if stub.calls[i] != expectedPrompt {
			t.Errorf("Call %d: expected prompt %q, got %q", i, expectedPrompt, stub.calls[i])
		}
		if r.Output != fmt.Sprintf("reply %d", i+1) {
			t.Errorf("Result %d: expected trimmed output, got %q", i, r.Output)
		}
	}

	if len(obs.started) != len(names) || len(obs.finished) != len(names) {
		t.Errorf("Observer saw %d starts and %d finishes", len(obs.started), len(obs.finished))
	}
	if report.RunID == "" {
		t.Error("Expected run ID")
	}
}

func TestRun_FailureIsolatedToVariant(t *testing.T) {
	stub := &stubCompleter{failOn: "You are an expert"}

	report := newTestOrchestrator(stub).Run(context.Background(), Request{
		BasePrompt: "Draft a release note",
		UseCase:    variants.GeneralUseCase,
		TestInput:  "v1.2.0",
	})

	if len(stub.calls) != 7 {
		t.Fatalf("Expected 7 calls despite failure, got %d", len(stub.calls))
	}

	for _, r := range report.Results {
		if r.Name == variants.RoleBased {
			if r.Err == nil {
				t.Error("Expected Role-Based to fail")
			}
			if r.Text() != "Error: model overloaded" {
				t.Errorf("Unexpected error text: %q", r.Text())
			}
			continue
		}
		if r.Err != nil {
			t.Errorf("Variant %q should have succeeded: %v", r.Name, r.Err)
		}
	}

	if !strings.Contains(report.Variants, "### 4. Role-Based\n```\nError: model overloaded\n```") {
		t.Errorf("Variants panel missing Role-Based error:\n%s", report.Variants)
	}

	// Successful outputs keep their original positions
	prev := -1
	for i, r := range report.Results {
		if r.Err != nil {
			continue
		}
		idx := strings.Index(report.Variants, fmt.Sprintf("### %d. %s\n```\n%s\n```", i+1, r.Name, r.Output))
		if idx < 0 {
			t.Errorf("Variants panel missing output for %q", r.Name)
		}
		if idx < prev {
			t.Errorf("Variant %q out of order", r.Name)
		}
		prev = idx
	}
}

func TestRun_PanickingCompleter(t *testing.T) {
	stub := &stubCompleter{panicOn: "Socratic method"}

	report := newTestOrchestrator(stub).Run(context.Background(), Request{
		BasePrompt: "Why is the sky blue?",
		UseCase:    "Research",
	})

	last := report.Results[len(report.Results)-1]
	if last.Name != variants.SocraticMethod || last.Err == nil {
		t.Fatalf("Expected Socratic Method to carry the panic as an error, got %+v", last)
	}
	if !strings.HasPrefix(last.Text(), "Error: completion panicked") {
		t.Errorf("Unexpected text: %q", last.Text())
	}
}

func TestRun_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	completer := completerFunc(func(ctx context.Context, messages []api.Message) (string, error) {
		return "", ctx.Err()
	})

	report := newTestOrchestrator(completer).Run(ctx, Request{BasePrompt: "p"})
	if len(report.Results) != 7 {
		t.Fatalf("Expected 7 results, got %d", len(report.Results))
	}
	for _, r := range report.Results {
		if !errors.Is(r.Err, context.Canceled) {
			t.Errorf("Variant %q: expected context.Canceled, got %v", r.Name, r.Err)
		}
	}
}

func TestRun_ComparisonAndOptimized(t *testing.T) {
	report := newTestOrchestrator(&stubCompleter{}).Run(context.Background(), Request{
		BasePrompt: "Write a SQL query for top customers",
		UseCase:    "Data analysis",
		Examples:   "SELECT 1;",
		TestInput:  "orders table",
	})

	rows := 0
	for _, line := range strings.Split(report.Comparison, "\n") {
		if strings.HasPrefix(line, "| ") && !strings.HasPrefix(line, "| Variant |") {
			rows++
		}
	}
	if rows != 7 {
		t.Errorf("Expected 7 comparison rows, got %d:\n%s", rows, report.Comparison)
	}
	if !strings.Contains(report.Comparison, "| Chain-of-Thought | Complex reasoning | High | Deep analysis |\n") {
		t.Errorf("Comparison missing Chain-of-Thought row:\n%s", report.Comparison)
	}

	if !strings.Contains(report.Optimized, "(**Data analysis**)") {
		t.Errorf("Optimized panel missing use case:\n%s", report.Optimized)
	}
	if !strings.Contains(report.Optimized, "Test Input: orders table") {
		t.Errorf("Optimized panel missing test input:\n%s", report.Optimized)
	}

	cot, _ := variants.Generate("Write a SQL query for top customers", "Data analysis", "SELECT 1;").Get(variants.ChainOfThought)
	if !strings.Contains(report.Optimized, cot) {
		t.Errorf("Optimized panel should embed the Chain-of-Thought variant:\n%s", report.Optimized)
	}
}

func TestFormatComparison_SkipsUnknownVariants(t *testing.T) {
	results := []Result{
		{Name: variants.ZeroShot, Output: "a"},
		{Name: "Tree-of-Thought", Output: "b"},
	}

	table := FormatComparison(results)
	if strings.Contains(table, "Tree-of-Thought") {
		t.Errorf("Unknown variant should be omitted from table:\n%s", table)
	}
	if !strings.Contains(table, "| Zero-Shot | Direct answers | Low | Quick responses |") {
		t.Errorf("Missing Zero-Shot row:\n%s", table)
	}

	listing := FormatVariants(results)
	if !strings.Contains(listing, "### 2. Tree-of-Thought") {
		t.Errorf("Unknown variant should still be listed:\n%s", listing)
	}
}

func TestFenced(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"plain", "```\nplain\n```"},
		{"has ``` inside", "````\nhas ``` inside\n````"},
		{"`one`", "```\n`one`\n```"},
	}

	for _, tt := range tests {
		if got := fenced(tt.input); got != tt.expected {
			t.Errorf("fenced(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildTestPrompt(t *testing.T) {
	if got := BuildTestPrompt("\nAsk\n", "hi"); got != "\nAsk\n\n\nTest Input: hi" {
		t.Errorf("Unexpected test prompt: %q", got)
	}
}

type completerFunc func(ctx context.Context, messages []api.Message) (string, error)

func (f completerFunc) Complete(ctx context.Context, messages []api.Message) (string, error) {
	return f(ctx, messages)
}

func TestFormatVariantSet(t *testing.T) {
	set := variants.Generate("Write a limerick", "Creative Writing", "")
	out := FormatVariantSet(set)

	if !strings.HasPrefix(out, promptsHeading) {
		t.Errorf("Expected heading, got %q", out[:min(len(out), 40)])
	}
	for i, name := range variants.Names() {
		if !strings.Contains(out, fmt.Sprintf("### %d. %s\n", i+1, name)) {
			t.Errorf("Missing section for %s", name)
		}
	}
	if !strings.Contains(out, "expert Creative Writing") {
		t.Error("Expected Role-Based prompt text in output")
	}
	if !strings.Contains(out, "*Deep analysis · High complexity*") {
		t.Error("Expected Chain-of-Thought descriptor line")
	}
}
