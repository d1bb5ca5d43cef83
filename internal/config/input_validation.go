package config

import (
	"fmt"
	"net/url"
	"unicode"
)

const (
	// MaxModelNameLength is the maximum allowed length for model names
	MaxModelNameLength = 200
)

// ValidateInputs performs additional validation on user-controllable fields
func (c *Config) ValidateInputs() error {
	if err := validateModelName(c.Model.ModelName); err != nil {
		return err
	}

	if err := validateBaseURL(c.Model.BaseURL); err != nil {
		return err
	}

	for _, origin := range c.Server.AllowedOrigins {
		if origin == "*" {
			continue
		}
		if err := validateOrigin(origin); err != nil {
			return err
		}
	}

	return nil
}

func validateModelName(modelName string) error {
	if len(modelName) > MaxModelNameLength {
		return fmt.Errorf("model name exceeds maximum length of %d (got %d)",
			MaxModelNameLength, len(modelName))
	}

	if containsControlChars(modelName) {
		return fmt.Errorf("model name contains invalid control characters")
	}

	return nil
}

// validateBaseURL checks that the base URL is properly formatted
func validateBaseURL(baseURL string) error {
	u, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("invalid model.base_url: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("model.base_url must use http or https scheme (got %s)", u.Scheme)
	}

	if u.Host == "" {
		return fmt.Errorf("model.base_url must have a host")
	}

	return nil
}

func validateOrigin(origin string) error {
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("server.allowed_origins entry %q must be an http(s) origin", origin)
	}
	return nil
}

// containsControlChars checks if a string contains control characters
// (excluding newlines, tabs, and carriage returns which are acceptable)
func containsControlChars(s string) bool {
	for _, r := range s {
		if unicode.IsControl(r) && r != '\n' && r != '\t' && r != '\r' {
			return true
		}
	}
	return false
}
