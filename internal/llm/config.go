// Package llm provides the model configuration and client abstraction for
// resume extraction and advice generation.
package llm

// ModelTier represents the capability level requested for a task.
type ModelTier string

const (
	// TierLite is for cheap classification and cleanup tasks.
	TierLite ModelTier = "lite"
	// TierStandard is for structured extraction of resume text.
	TierStandard ModelTier = "standard"
	// TierAdvanced is for the advisory analysis, which needs more reasoning.
	TierAdvanced ModelTier = "advanced"
)

// Config holds the model names per tier.
type Config struct {
	Models map[ModelTier]string
}

// DefaultConfig returns the default Gemini model assignments.
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// GetModel returns the model name for a tier, falling back to standard
// then lite when the tier is not configured.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a copy of the config with one tier overridden.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	next := &Config{Models: make(map[ModelTier]string, len(c.Models)+1)}
	for k, v := range c.Models {
		next.Models[k] = v
	}
	next.Models[tier] = model
	return next
}
