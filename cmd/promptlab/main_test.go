package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lamim/promptlab/internal/orchestrator"
	"github.com/lamim/promptlab/internal/variants"
)

func TestLoadEnv_MissingFileIsIgnored(t *testing.T) {
	if err := loadEnv(filepath.Join(t.TempDir(), "nope.env")); err != nil {
		t.Errorf("Expected missing env file to be ignored, got: %v", err)
	}
}

func TestLoadEnv_SetsVariables(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("PROMPTLAB_TEST_VAR=\"hello\"\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PROMPTLAB_TEST_VAR", "")

	if err := loadEnv(path); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if got := os.Getenv("PROMPTLAB_TEST_VAR"); got != "hello" {
		t.Errorf("Expected hello, got %q", got)
	}
}

func TestRequest_RejectsUnknownUseCase(t *testing.T) {
	oldUseCase := useCase
	t.Cleanup(func() { useCase = oldUseCase })

	useCase = "Astrology"
	if _, err := request(); err == nil {
		t.Error("Expected error for unknown use case")
	}

	useCase = "Research"
	basePrompt = "Sell socks"
	req, err := request()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if req.UseCase != "Research" || req.BasePrompt != "Sell socks" {
		t.Errorf("Unexpected request: %+v", req)
	}
}

func TestBarObserver(t *testing.T) {
	var buf bytes.Buffer
	obs := newBarObserver(&buf, len(variants.Names()))

	for i, name := range variants.Names() {
		obs.VariantStarted(i, name)
		obs.VariantFinished(i, orchestrator.Result{Name: name, Err: errors.New("x")})
	}

	if !obs.bar.IsFinished() {
		t.Error("Expected bar to be finished after all variants")
	}
	if !strings.Contains(buf.String(), "Testing") {
		t.Errorf("Expected progress output, got %q", buf.String())
	}
}
