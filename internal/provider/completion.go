// Package provider holds the types shared by the model provider adapters.
package provider

// CompletionRequest is a single-turn text completion request.
type CompletionRequest struct {
	Prompt      string
	Model       string
	MaxTokens   int
	Temperature float64
}
