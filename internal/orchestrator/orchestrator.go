package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lamim/promptlab/internal/api"
	"github.com/lamim/promptlab/internal/metrics"
	"github.com/lamim/promptlab/internal/variants"
)

// EmptyPromptMessage is returned in the variants panel when no base prompt is given
const EmptyPromptMessage = "Please provide a base prompt."

// Completer issues a single completion request
type Completer interface {
	Complete(ctx context.Context, messages []api.Message) (string, error)
}

// Observer receives per-variant progress during a run
type Observer interface {
	VariantStarted(index int, name variants.Name)
	VariantFinished(index int, result Result)
}

// Request holds the four form inputs
type Request struct {
	BasePrompt string `json:"base_prompt"`
	UseCase    string `json:"use_case"`
	Examples   string `json:"examples"`
	TestInput  string `json:"test_input"`
}

// Result is the outcome of testing one variant
type Result struct {
	Name   variants.Name
	Prompt string
	Output string // trimmed model output, empty on error
	Err    error
}

// Text returns the output, or "Error: {message}" when the request failed
func (r Result) Text() string {
	if r.Err != nil {
		return "Error: " + r.Err.Error()
	}
	return r.Output
}

// Report holds the three display panels of a run
type Report struct {
	RunID      string
	Variants   string
	Comparison string
	Optimized  string
	Results    []Result
	Duration   time.Duration
}

// Orchestrator runs the generate-and-compare cycle. It holds no per-run
// state and is safe for concurrent use.
type Orchestrator struct {
	completer Completer
	metrics   *metrics.Collector
	logger    *slog.Logger
}

// New creates a new orchestrator
func New(completer Completer, collector *metrics.Collector, logger *slog.Logger) *Orchestrator {
	if collector == nil {
		collector = metrics.NewCollector(logger)
	}
	return &Orchestrator{
		completer: completer,
		metrics:   collector,
		logger:    logger.With("component", "orchestrator"),
	}
}

// Run generates the variants, tests each against the endpoint in order and
// assembles the report. Endpoint failures are reported inline and never
// returned as errors.
func (o *Orchestrator) Run(ctx context.Context, req Request) *Report {
	return o.RunWithObserver(ctx, req, nil)
}

// RunWithObserver is Run with progress callbacks; obs may be nil
func (o *Orchestrator) RunWithObserver(ctx context.Context, req Request, obs Observer) *Report {
	start := time.Now()
	report := &Report{RunID: uuid.New().String()}
	logger := o.logger.With("run_id", report.RunID)

	if strings.TrimSpace(req.BasePrompt) == "" {
		logger.Info("Rejected run with empty base prompt")
		report.Variants = EmptyPromptMessage
		o.metrics.RecordRun(metrics.OutcomeEmptyInput, 0)
		return report
	}

	logger.Info("Starting comparison run",
		"use_case", req.UseCase,
		"has_examples", req.Examples != "",
		"prompt_length", len(req.BasePrompt))

	set := variants.Generate(req.BasePrompt, req.UseCase, req.Examples)

	report.Results = make([]Result, 0, len(set))
	failures := 0
	for i, entry := range set {
		if obs != nil {
			obs.VariantStarted(i, entry.Name)
		}

		result := o.testVariant(ctx, logger, entry, req.TestInput)
		if result.Err != nil {
			failures++
		}
		report.Results = append(report.Results, result)

		if obs != nil {
			obs.VariantFinished(i, result)
		}
	}

	report.Variants = FormatVariants(report.Results)
	report.Comparison = FormatComparison(report.Results)
	report.Optimized = FormatOptimized(req)
	report.Duration = time.Since(start)

	o.metrics.RecordRun(metrics.OutcomeCompleted, report.Duration)
	logger.Info("Comparison run complete",
		"variants", len(report.Results),
		"failed", failures,
		"duration", report.Duration)

	return report
}

// testVariant sends one variant followed by the test input
func (o *Orchestrator) testVariant(ctx context.Context, logger *slog.Logger, entry variants.Entry, testInput string) Result {
	prompt := BuildTestPrompt(entry.Text, testInput)
	result := Result{Name: entry.Name, Prompt: prompt}

	callStart := time.Now()
	output, err := o.complete(ctx, prompt)
	duration := time.Since(callStart)
	o.metrics.RecordCompletion(string(entry.Name), duration, err == nil)

	if err != nil {
		logger.Warn("Variant request failed",
			"variant", entry.Name,
			"error", err,
			"duration", duration)
		result.Err = err
		return result
	}

	result.Output = strings.TrimSpace(output)
	logger.Debug("Variant request succeeded",
		"variant", entry.Name,
		"output_length", len(result.Output),
		"duration", duration)
	return result
}

// complete converts a panicking completer into an error so one variant
// cannot take down the run
func (o *Orchestrator) complete(ctx context.Context, prompt string) (output string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("completion panicked: %v", r)
		}
	}()
	return o.completer.Complete(ctx, api.UserMessage(prompt))
}

// BuildTestPrompt appends the test input to a variant prompt
func BuildTestPrompt(variantText, testInput string) string {
	return fmt.Sprintf("%s\n\nTest Input: %s", variantText, testInput)
}
