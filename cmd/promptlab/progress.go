package main

import (
	"io"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/lamim/promptlab/internal/orchestrator"
	"github.com/lamim/promptlab/internal/variants"
)

// barObserver shows per-variant progress of a comparison run
type barObserver struct {
	bar *progressbar.ProgressBar
}

func newBarObserver(w io.Writer, total int) *barObserver {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Testing variants"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
	)
	return &barObserver{bar: bar}
}

func (b *barObserver) VariantStarted(index int, name variants.Name) {
	b.bar.Describe("Testing " + string(name))
}

func (b *barObserver) VariantFinished(index int, result orchestrator.Result) {
	_ = b.bar.Add(1)
	if b.bar.IsFinished() {
		_ = b.bar.Finish()
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
