// Package render turns the markdown panels of a report into terminal output.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/lamim/promptlab/internal/orchestrator"
)

// Renderer renders markdown for the terminal
type Renderer struct {
	term *glamour.TermRenderer
}

// New creates a renderer for the given glamour style ("auto" detects the
// terminal background) and word wrap width
func New(style string, wordWrap int) (*Renderer, error) {
	styleOpt := glamour.WithStandardStyle(style)
	if style == "" || style == "auto" {
		styleOpt = glamour.WithAutoStyle()
	}

	term, err := glamour.NewTermRenderer(
		styleOpt,
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	return &Renderer{term: term}, nil
}

// Markdown renders a single markdown document
func (r *Renderer) Markdown(md string) (string, error) {
	if md == "" {
		return "", nil
	}
	out, err := r.term.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}

// Report renders the three panels of a report, separated by a rule.
// Empty panels are skipped.
func (r *Renderer) Report(report *orchestrator.Report) (string, error) {
	var parts []string
	for _, panel := range Panels(report) {
		if panel == "" {
			continue
		}
		out, err := r.Markdown(panel)
		if err != nil {
			return "", err
		}
		parts = append(parts, out)
	}
	return strings.Join(parts, RuleStyle.Render(strings.Repeat("─", 40))+"\n"), nil
}

// Panels returns the report's panels in display order
func Panels(report *orchestrator.Report) []string {
	return []string{report.Variants, report.Comparison, report.Optimized}
}

// Raw joins the panels as plain markdown
func Raw(report *orchestrator.Report) string {
	var parts []string
	for _, panel := range Panels(report) {
		if panel != "" {
			parts = append(parts, panel)
		}
	}
	return strings.Join(parts, "\n")
}

var (
	Primary = lipgloss.Color("#C864FF") // purple accent
	Muted   = lipgloss.Color("#6B7280") // gray
	Danger  = lipgloss.Color("#EF4444") // red
	Success = lipgloss.Color("#10B981") // green

	RuleStyle = lipgloss.NewStyle().Foreground(Muted)
)
