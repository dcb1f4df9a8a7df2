package config

import "testing"

func TestLLMConfig_APIKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		provider string
		want     string
	}{
		{name: "anthropic", provider: ProviderAnthropic, want: "ant-key"},
		{name: "gemini", provider: ProviderGemini, want: "gem-key"},
		{name: "gemini mixed case", provider: "Gemini", want: "gem-key"},
		{name: "unknown falls back to anthropic", provider: "other", want: "ant-key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := LLMConfig{Provider: tt.provider, AnthropicAPIKey: "ant-key", GeminiAPIKey: "gem-key"}
			if got := cfg.APIKey(); got != tt.want {
				t.Errorf("APIKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLLMConfig_DefaultModel(t *testing.T) {
	t.Parallel()

	if got := (LLMConfig{Provider: ProviderAnthropic}).DefaultModel(); got != DefaultAnthropicModel {
		t.Errorf("anthropic default = %q, want %q", got, DefaultAnthropicModel)
	}
	if got := (LLMConfig{Provider: ProviderGemini}).DefaultModel(); got != DefaultGeminiModel {
		t.Errorf("gemini default = %q, want %q", got, DefaultGeminiModel)
	}
}

func TestLLMConfig_ValidateNormalizesProvider(t *testing.T) {
	t.Parallel()

	cfg := LLMConfig{
		Provider:     "  GEMINI ",
		GeminiAPIKey: "gem-key",
		TermCount:    12,
		ExtendCount:  10,
		Generate:     GenerateParams{MaxTokens: 100, Temperature: 0.7},
		Expand:       ExpandParams{MaxTokens: 100, Temperature: 0.7},
	}

	if err := cfg.validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if cfg.Provider != ProviderGemini {
		t.Errorf("Provider = %q, want %q", cfg.Provider, ProviderGemini)
	}
	if cfg.Generate.Model != DefaultGeminiModel {
		t.Errorf("Generate.Model = %q, want %q", cfg.Generate.Model, DefaultGeminiModel)
	}
}

func TestLLMConfig_ValidateRejectsNegativeRetries(t *testing.T) {
	t.Parallel()

	cfg := LLMConfig{
		Provider:        ProviderAnthropic,
		AnthropicAPIKey: "ant-key",
		MaxRetries:      -1,
		TermCount:       12,
		ExtendCount:     10,
		Generate:        GenerateParams{MaxTokens: 100, Temperature: 0.7},
		Expand:          ExpandParams{MaxTokens: 100, Temperature: 0.7},
	}

	if err := cfg.validate(); err == nil {
		t.Fatal("expected error for negative max_retries")
	}
}
