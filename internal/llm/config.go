// Package llm wraps the language-model provider used for server-side CV enhancement.
package llm

import "fmt"

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for cheap passes such as keyword extraction
	TierLite ModelTier = "lite"
	// TierStandard is the default for enhancement
	TierStandard ModelTier = "standard"
	// TierAdvanced is for long CVs or cover letters
	TierAdvanced ModelTier = "advanced"
)

// ParseTier validates a tier name from configuration.
func ParseTier(s string) (ModelTier, error) {
	switch t := ModelTier(s); t {
	case TierLite, TierStandard, TierAdvanced:
		return t, nil
	case "":
		return TierStandard, nil
	}
	return "", fmt.Errorf("unknown model tier %q", s)
}

// Provider represents an LLM provider
type Provider string

// ProviderGemini is the Google Gemini provider
const ProviderGemini Provider = "gemini"

// DefaultTemperature keeps rewrites close to the source text.
const DefaultTemperature float32 = 0.2

// DefaultMaxOutputTokens leaves room for a long CV echoed back with insights.
const DefaultMaxOutputTokens int32 = 8192

// Config holds the model configuration for the application
type Config struct {
	Provider    Provider
	Models      map[ModelTier]string
	Temperature float32
	// MaxOutputTokens caps a reply; zero leaves the provider default.
	MaxOutputTokens int32
}

// DefaultConfig returns the default Gemini configuration
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Temperature:     DefaultTemperature,
		MaxOutputTokens: DefaultMaxOutputTokens,
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	out := &Config{
		Provider:    c.Provider,
		Models:      make(map[ModelTier]string, len(c.Models)+1),
		Temperature: c.Temperature,
	}
	for k, v := range c.Models {
		out.Models[k] = v
	}
	out.Models[tier] = model
	return out
}
