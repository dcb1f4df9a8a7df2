package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Session.Secret) < 32 {
		return fmt.Errorf("session.secret must be at least 32 characters (got %d)", len(c.Session.Secret))
	}

	if err := c.LLM.validate(); err != nil {
		return fmt.Errorf("llm: %w", err)
	}

	if c.RateLimit.Enabled && (c.RateLimit.PerMinute <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("rate_limit: per_minute and burst must be > 0 when enabled")
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with '/' (got %q)", c.Metrics.Path)
	}

	return nil
}

func (l *LLMConfig) validate() error {
	l.Provider = strings.ToLower(strings.TrimSpace(l.Provider))
	switch l.Provider {
	case ProviderAnthropic, ProviderGemini:
	default:
		return fmt.Errorf("unknown provider %q (want %s or %s)", l.Provider, ProviderAnthropic, ProviderGemini)
	}

	if l.APIKey() == "" {
		return fmt.Errorf("api key for provider %s is required", l.Provider)
	}

	if l.MaxRetries < 0 {
		return fmt.Errorf("max_retries must be >= 0 (got %d)", l.MaxRetries)
	}

	if l.TermCount < 1 || l.TermCount > 50 {
		return fmt.Errorf("term_count must be in [1,50] (got %d)", l.TermCount)
	}
	if l.ExtendCount < 1 || l.ExtendCount > 50 {
		return fmt.Errorf("extend_count must be in [1,50] (got %d)", l.ExtendCount)
	}

	if l.Generate.Model == "" {
		l.Generate.Model = l.DefaultModel()
	}
	if l.Expand.Model == "" {
		l.Expand.Model = l.DefaultModel()
	}

	if err := checkParams(l.Generate.MaxTokens, l.Generate.Temperature); err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	if err := checkParams(l.Expand.MaxTokens, l.Expand.Temperature); err != nil {
		return fmt.Errorf("expand: %w", err)
	}

	return nil
}

func checkParams(maxTokens int, temperature float64) error {
	if maxTokens <= 0 {
		return fmt.Errorf("max_tokens must be > 0 (got %d)", maxTokens)
	}
	if temperature < 0 || temperature > 1 {
		return fmt.Errorf("temperature must be in [0,1] (got %v)", temperature)
	}
	return nil
}
