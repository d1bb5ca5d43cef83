package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lamim/promptlab/internal/orchestrator"
	"github.com/lamim/promptlab/internal/variants"
)

type variantsRequest struct {
	BasePrompt string `json:"base_prompt"`
	UseCase    string `json:"use_case"`
	Examples   string `json:"examples"`
}

type variantJSON struct {
	Name       variants.Name        `json:"name"`
	Text       string               `json:"text"`
	Descriptor *variants.Descriptor `json:"descriptor,omitempty"`
}

type resultJSON struct {
	Name   variants.Name `json:"name"`
	Output string        `json:"output,omitempty"`
	Error  string        `json:"error,omitempty"`
}

type compareResponse struct {
	RunID              string       `json:"run_id"`
	VariantsMarkdown   string       `json:"variants_markdown"`
	ComparisonMarkdown string       `json:"comparison_markdown"`
	OptimizedMarkdown  string       `json:"optimized_markdown"`
	Results            []resultJSON `json:"results"`
	DurationMS         int64        `json:"duration_ms"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) useCases(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"use_cases": variants.UseCases,
		"default":   variants.UseCases[0],
		"variants":  variants.Names(),
	})
}

func (s *Server) generateVariants(c *gin.Context) {
	var req variantsRequest
	if !s.bind(c, &req) {
		return
	}
	useCase, ok := normalizeUseCase(c, req.UseCase)
	if !ok {
		return
	}

	set := variants.Generate(req.BasePrompt, useCase, req.Examples)
	out := make([]variantJSON, 0, len(set))
	for _, e := range set {
		v := variantJSON{Name: e.Name, Text: e.Text}
		if d, ok := variants.Describe(e.Name); ok {
			v.Descriptor = &d
		}
		out = append(out, v)
	}

	c.JSON(http.StatusOK, gin.H{"variants": out})
}

func (s *Server) compare(c *gin.Context) {
	var req orchestrator.Request
	if !s.bind(c, &req) {
		return
	}
	useCase, ok := normalizeUseCase(c, req.UseCase)
	if !ok {
		return
	}
	req.UseCase = useCase

	report := s.runner.Run(c.Request.Context(), req)

	resp := compareResponse{
		RunID:              report.RunID,
		VariantsMarkdown:   report.Variants,
		ComparisonMarkdown: report.Comparison,
		OptimizedMarkdown:  report.Optimized,
		Results:            make([]resultJSON, 0, len(report.Results)),
		DurationMS:         report.Duration.Milliseconds(),
	}
	for _, r := range report.Results {
		rj := resultJSON{Name: r.Name, Output: r.Output}
		if r.Err != nil {
			rj.Error = r.Text()
		}
		resp.Results = append(resp.Results, rj)
	}

	c.JSON(http.StatusOK, resp)
}

// bind decodes the JSON body, writing a 400 or 413 response on failure
func (s *Server) bind(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
			return false
		}
		s.logger.Debug("Rejected request body", "error", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body: " + err.Error()})
		return false
	}
	return true
}

// normalizeUseCase defaults an empty use case to the general sentinel and
// rejects values outside the offered list
func normalizeUseCase(c *gin.Context, useCase string) (string, bool) {
	if useCase == "" {
		return variants.GeneralUseCase, true
	}
	if !variants.IsKnownUseCase(useCase) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "unknown use_case: " + useCase,
			"use_cases": variants.UseCases,
		})
		return "", false
	}
	return useCase, true
}
