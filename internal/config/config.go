package config

import (
	"fmt"
	"os"
	"strings"
)

// Config represents the complete application configuration
type Config struct {
	Model  ModelConfig  `toml:"model"`
	Server ServerConfig `toml:"server"`
	UI     UIConfig     `toml:"ui"`
}

// ModelConfig represents the hosted chat-completion endpoint
type ModelConfig struct {
	BaseURL            string  `toml:"base_url"`
	ModelName          string  `toml:"model_name"`
	Temperature        float64 `toml:"temperature"`
	MaxOutputTokens    int     `toml:"max_output_tokens"`
	HTTPTimeoutSeconds int     `toml:"http_timeout_seconds"` // 0 = no client-side timeout
}

// ServerConfig holds settings for the HTTP surface
type ServerConfig struct {
	Addr           string   `toml:"addr"`
	AllowedOrigins []string `toml:"allowed_origins"` // CORS origins ("*" allows all)
	MaxBodyBytes   int64    `toml:"max_body_bytes"`
}

// UIConfig holds terminal rendering settings
type UIConfig struct {
	Style    string `toml:"style"` // auto, dark, light, notty
	WordWrap int    `toml:"word_wrap"`
}

// Secrets holds sensitive credentials loaded from environment variables
type Secrets struct {
	HuggingFaceToken string
}

const (
	// TokenEnvVar is the environment variable holding the endpoint token
	TokenEnvVar = "HUGGINGFACE_API_TOKEN"

	// MaxOutputTokensLimit is the maximum allowed max_output_tokens
	MaxOutputTokensLimit = 32768
	// MaxWordWrap is the maximum allowed ui.word_wrap
	MaxWordWrap = 400
)

var validStyles = []string{"auto", "dark", "light", "notty", "ascii"}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := validateModelConfig(c.Model); err != nil {
		return err
	}

	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Server.MaxBodyBytes < 1 {
		return fmt.Errorf("server.max_body_bytes must be at least 1")
	}

	validStyle := false
	for _, s := range validStyles {
		if c.UI.Style == s {
			validStyle = true
			break
		}
	}
	if !validStyle {
		return fmt.Errorf("ui.style must be one of: %s (got %s)", strings.Join(validStyles, ", "), c.UI.Style)
	}
	if c.UI.WordWrap < 0 || c.UI.WordWrap > MaxWordWrap {
		return fmt.Errorf("ui.word_wrap must be between 0 and %d (got %d)", MaxWordWrap, c.UI.WordWrap)
	}

	return nil
}

func validateModelConfig(mc ModelConfig) error {
	if mc.BaseURL == "" {
		return fmt.Errorf("model.base_url is required")
	}
	if mc.ModelName == "" {
		return fmt.Errorf("model.model_name is required")
	}
	if mc.Temperature < 0 || mc.Temperature > 2 {
		return fmt.Errorf("model.temperature must be between 0 and 2")
	}
	if mc.MaxOutputTokens < 1 {
		return fmt.Errorf("model.max_output_tokens must be at least 1")
	}
	if mc.MaxOutputTokens > MaxOutputTokensLimit {
		return fmt.Errorf("model.max_output_tokens must not exceed %d (got %d)", MaxOutputTokensLimit, mc.MaxOutputTokens)
	}
	if mc.HTTPTimeoutSeconds < 0 {
		return fmt.Errorf("model.http_timeout_seconds must not be negative")
	}
	return nil
}

// LoadSecrets loads sensitive credentials from environment variables.
// A missing token is not an error; requests fail later with an auth error.
func LoadSecrets() *Secrets {
	return &Secrets{
		HuggingFaceToken: os.Getenv(TokenEnvVar),
	}
}
