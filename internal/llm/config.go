// Package llm provides the text generation collaborators used to draft resume
// summaries and achievement bullets.
package llm

import (
	"fmt"
	"strings"
)

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for short, cheap drafting such as summaries
	TierLite ModelTier = "lite"
	// TierStandard is for bullet generation
	TierStandard ModelTier = "standard"
	// TierAdvanced is for longer rewrites
	TierAdvanced ModelTier = "advanced"
)

// Provider represents a text generation provider
type Provider string

// Provider constants define supported text generation providers
const (
	// ProviderTemplate fills fixed sentence templates from the profile; it needs no network
	ProviderTemplate Provider = "template"
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// ParseProvider maps a configuration value to a Provider. "mock" is accepted
// as an alias for the template provider.
func ParseProvider(s string) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "template", "mock":
		return ProviderTemplate, nil
	case "gemini":
		return ProviderGemini, nil
	}
	return "", fmt.Errorf("unknown AI provider %q (expected template or gemini)", s)
}

// Config holds the model configuration for the application
type Config struct {
	Provider    Provider
	Models      map[ModelTier]string
	Temperature float32
	// MaxOutputTokens caps response length per tier; zero leaves the provider default.
	MaxOutputTokens map[ModelTier]int32
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Temperature: 0.4,
		MaxOutputTokens: map[ModelTier]int32{
			TierLite:     512,
			TierStandard: 1024,
		},
	}
}

// OutputLimit returns the response token cap for tier, or 0 for none.
func (c *Config) OutputLimit(tier ModelTier) int32 {
	return c.MaxOutputTokens[tier]
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
	return "" // No model configured
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := &Config{
		Provider:        c.Provider,
		Models:          make(map[ModelTier]string),
		Temperature:     c.Temperature,
		MaxOutputTokens: c.MaxOutputTokens,
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return newConfig
}

// WithAllModels returns a new Config that uses model for every tier.
func (c *Config) WithAllModels(model string) *Config {
	out := c
	for _, tier := range []ModelTier{TierLite, TierStandard, TierAdvanced} {
		out = out.WithModel(tier, model)
	}
	return out
}
