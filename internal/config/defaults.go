package config

const (
	// DefaultBaseURL is the OpenAI-compatible Hugging Face inference router
	DefaultBaseURL = "https://router.huggingface.co/v1"
	// DefaultModelName is the instruct model the playground targets
	DefaultModelName = "meta-llama/Meta-Llama-3-8B-Instruct"
	// DefaultTemperature is the sampling temperature for every variant request
	DefaultTemperature = 0.8
	// DefaultMaxOutputTokens is the output length cap for every variant request
	DefaultMaxOutputTokens = 300

	DefaultServerAddr   = ":7860"
	DefaultMaxBodyBytes = 1 << 20 // 1MB
	DefaultUIStyle      = "auto"
	DefaultWordWrap     = 100
)

// Default returns a configuration with every field set to its default
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.Model.BaseURL == "" {
		cfg.Model.BaseURL = DefaultBaseURL
	}
	if cfg.Model.ModelName == "" {
		cfg.Model.ModelName = DefaultModelName
	}
	// NOTE: TOML can't distinguish 0 from unset, so temperature 0 means default
	if cfg.Model.Temperature == 0 {
		cfg.Model.Temperature = DefaultTemperature
	}
	if cfg.Model.MaxOutputTokens == 0 {
		cfg.Model.MaxOutputTokens = DefaultMaxOutputTokens
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = DefaultServerAddr
	}
	if cfg.Server.MaxBodyBytes == 0 {
		cfg.Server.MaxBodyBytes = DefaultMaxBodyBytes
	}

	if cfg.UI.Style == "" {
		cfg.UI.Style = DefaultUIStyle
	}
	if cfg.UI.WordWrap == 0 {
		cfg.UI.WordWrap = DefaultWordWrap
	}
}
