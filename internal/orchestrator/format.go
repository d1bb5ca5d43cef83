package orchestrator

import (
	"fmt"
	"strings"

	"github.com/lamim/promptlab/internal/variants"
)

const (
	variantsHeading   = "## 📊 7 Prompt Variants\n\n"
	promptsHeading    = "## 📝 Generated Prompt Variants\n\n"
	comparisonHeading = "## 📈 Performance Comparison\n\n"
	comparisonHeader  = "| Variant | Use Case | Complexity | Best For |\n" +
		"|---------|----------|-----------|----------|\n"
)

const optimizedTemplate = `## 🚀 Auto-Optimized Version

Based on your use case (**%s**), here's the recommended optimized prompt:
%s

Test Input: %s

**Why this works:**
- Combines structured thinking with clarity
- Encourages step-by-step reasoning
- Easy to iterate and refine
`

// FormatVariants renders the numbered list of variant results
func FormatVariants(results []Result) string {
	var sb strings.Builder
	sb.WriteString(variantsHeading)
	for i, r := range results {
		fmt.Fprintf(&sb, "### %d. %s\n", i+1, r.Name)
		sb.WriteString(fenced(r.Text()))
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// FormatVariantSet renders the generated variant prompts themselves, before
// any of them has been sent to the endpoint
func FormatVariantSet(set variants.Set) string {
	var sb strings.Builder
	sb.WriteString(promptsHeading)
	for i, e := range set {
		fmt.Fprintf(&sb, "### %d. %s\n", i+1, e.Name)
		if d, ok := variants.Describe(e.Name); ok {
			fmt.Fprintf(&sb, "*%s · %s complexity*\n\n", d.BestFor, d.Complexity)
		}
		sb.WriteString(fenced(e.Text))
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// FormatComparison renders the static comparison table. Variants without a
// descriptor are left out of the table.
func FormatComparison(results []Result) string {
	var sb strings.Builder
	sb.WriteString(comparisonHeading)
	sb.WriteString(comparisonHeader)
	for _, r := range results {
		d, ok := variants.Describe(r.Name)
		if !ok {
			continue
		}
		sb.WriteString(ComparisonRow(r.Name, d))
	}
	return sb.String()
}

// ComparisonRow renders one table row
func ComparisonRow(name variants.Name, d variants.Descriptor) string {
	return fmt.Sprintf("| %s | %s | %s | %s |\n", name, d.UseCase, d.Complexity, d.BestFor)
}

// FormatOptimized renders the auto-optimized suggestion. The Chain-of-Thought
// variant is regenerated from the request rather than reused.
func FormatOptimized(req Request) string {
	cot, _ := variants.Generate(req.BasePrompt, req.UseCase, req.Examples).Get(variants.ChainOfThought)
	return fmt.Sprintf(optimizedTemplate, req.UseCase, cot, req.TestInput)
}

// fenced wraps text in a code fence longer than any backtick run it contains
func fenced(text string) string {
	longest, run := 0, 0
	for _, r := range text {
		if r == '`' {
			run++
			if run > longest {
				longest = run
			}
			continue
		}
		run = 0
	}
	fence := strings.Repeat("`", max(3, longest+1))
	return fence + "\n" + text + "\n" + fence
}
