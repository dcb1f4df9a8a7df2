// Package gemini adapts the Google Gemini API to single-prompt text
// completion.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/lularocha/glossary-builder/internal/domain"
	"github.com/lularocha/glossary-builder/internal/provider"
)

// Name is the provider name used in upstream error messages.
const Name = "Gemini"

// Provider sends completion requests to Gemini.
type Provider struct {
	client  *genai.Client
	timeout time.Duration
	log     *slog.Logger
}

// Options configures a Provider. BaseURL is optional.
type Options struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// NewProvider creates a Provider from opts.
func NewProvider(ctx context.Context, opts Options, logger *slog.Logger) (*Provider, error) {
	cc := &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if opts.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	return &Provider{
		client:  client,
		timeout: opts.Timeout,
		log:     logger.With("adapter", "gemini"),
	}, nil
}

// Complete sends the prompt and returns the text parts of the first
// candidate.
func (p *Provider) Complete(ctx context.Context, req provider.CompletionRequest) (string, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	p.log.DebugContext(ctx, "gemini request", slog.String("model", req.Model), slog.Int("max_tokens", req.MaxTokens))

	result, err := p.client.Models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(req.Temperature)),
		MaxOutputTokens: int32(req.MaxTokens),
	})
	if err != nil {
		return "", upstreamError(err)
	}

	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", &domain.UpstreamError{Provider: Name, Message: "Unexpected response format"}
	}

	var b strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			b.WriteString(part.Text)
		}
	}
	if b.Len() == 0 {
		return "", &domain.UpstreamError{Provider: Name, Message: "Unexpected response format"}
	}

	return b.String(), nil
}

func upstreamError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &domain.UpstreamError{Provider: Name, StatusCode: apiErr.Code, Message: apiErr.Message, Err: err}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return &domain.UpstreamError{Provider: Name, StatusCode: apiErrPtr.Code, Message: apiErrPtr.Message, Err: err}
	}
	return &domain.UpstreamError{Provider: Name, Message: err.Error(), Err: err}
}
