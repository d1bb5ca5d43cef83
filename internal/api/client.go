package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/lamim/promptlab/internal/config"
)

// Client sends chat completion requests to an OpenAI-compatible endpoint.
// Each call is a single request: there is no retry and no rate limiting.
type Client struct {
	httpClient *http.Client
	modelCfg   config.ModelConfig
	apiKey     string
	logger     *slog.Logger
}

// NewClient creates a new API client for the configured model
func NewClient(modelCfg config.ModelConfig, apiKey string, logger *slog.Logger) *Client {
	httpClient := &http.Client{}
	if modelCfg.HTTPTimeoutSeconds > 0 {
		httpClient.Timeout = time.Duration(modelCfg.HTTPTimeoutSeconds) * time.Second
	}

	return &Client{
		httpClient: httpClient,
		modelCfg:   modelCfg,
		apiKey:     apiKey,
		logger:     logger.With("component", "api"),
	}
}

// Model returns the configured model name
func (c *Client) Model() string {
	return c.modelCfg.ModelName
}

// Complete sends messages and returns the content of the first choice
func (c *Client) Complete(ctx context.Context, messages []Message) (string, error) {
	resp, err := c.ChatCompletion(ctx, messages)
	if err != nil {
		return "", err
	}
	return resp.Choices[0].Message.Content, nil
}

// ChatCompletion sends a chat completion request to the configured model
func (c *Client) ChatCompletion(ctx context.Context, messages []Message) (*ChatCompletionResponse, error) {
	req := ChatCompletionRequest{
		Model:       c.modelCfg.ModelName,
		Messages:    messages,
		MaxTokens:   c.modelCfg.MaxOutputTokens,
		Temperature: c.modelCfg.Temperature,
	}

	buf := getBuffer()
	defer putBuffer(buf)
	if err := json.NewEncoder(buf).Encode(req); err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := strings.TrimSuffix(c.modelCfg.BaseURL, "/") + "/chat/completions"

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
		c.logger.Debug("API request", "endpoint", endpoint, "has_key", true, "key_length", len(c.apiKey))
	} else {
		c.logger.Warn("API request without key", "endpoint", endpoint)
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &APIError{Message: fmt.Sprintf("request failed: %v", err)}
	}
	defer func() {
		if err := httpResp.Body.Close(); err != nil {
			c.logger.Warn("Failed to close response body", "error", err)
		}
	}()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		var errResp ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error.Message != "" {
			return nil, &APIError{
				Message:    errResp.Error.Message,
				StatusCode: httpResp.StatusCode,
				Type:       errResp.Error.Type,
				Code:       errResp.Error.Code,
			}
		}

		return nil, &APIError{
			Message:    fmt.Sprintf("API request failed with status %d: %s", httpResp.StatusCode, string(respBody)),
			StatusCode: httpResp.StatusCode,
		}
	}

	var resp ChatCompletionResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices returned in response")
	}

	c.logger.Debug("API response",
		"model", resp.Model,
		"finish_reason", resp.Choices[0].FinishReason,
		"completion_tokens", resp.Usage.CompletionTokens)

	return &resp, nil
}

// APIError represents an error returned by the API
type APIError struct {
	Message    string
	StatusCode int
	Type       string
	Code       string
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error: %s", e.Message)
}
