// Package anthropic adapts the Anthropic Messages API to single-prompt
// text completion.
package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/lularocha/glossary-builder/internal/domain"
	"github.com/lularocha/glossary-builder/internal/provider"
)

// Name is the provider name used in upstream error messages.
const Name = "Claude"

// Provider sends completion requests to Claude.
type Provider struct {
	client  sdk.Client
	timeout time.Duration
	log     *slog.Logger
}

// Options configures a Provider. BaseURL and MaxRetries are optional.
type Options struct {
	APIKey     string
	BaseURL    string
	Timeout    time.Duration
	MaxRetries *int
}

// NewProvider creates a Provider from opts.
func NewProvider(opts Options, logger *slog.Logger) *Provider {
	clientOpts := []option.RequestOption{option.WithAPIKey(opts.APIKey)}
	if opts.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(opts.BaseURL))
	}
	if opts.MaxRetries != nil {
		clientOpts = append(clientOpts, option.WithMaxRetries(*opts.MaxRetries))
	}

	return &Provider{
		client:  sdk.NewClient(clientOpts...),
		timeout: opts.Timeout,
		log:     logger.With("adapter", "anthropic"),
	}
}

// Complete sends one user message and returns the concatenated text blocks
// of the reply.
func (p *Provider) Complete(ctx context.Context, req provider.CompletionRequest) (string, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	p.log.DebugContext(ctx, "anthropic request",
		slog.String("model", req.Model),
		slog.Int("max_tokens", req.MaxTokens),
	)

	msg, err := p.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:       sdk.Model(req.Model),
		MaxTokens:   int64(req.MaxTokens),
		Temperature: sdk.Float(req.Temperature),
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(req.Prompt)),
		},
	})
	if err != nil {
		return "", upstreamError(err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if b.Len() == 0 {
		return "", &domain.UpstreamError{Provider: Name, Message: "Unexpected response format"}
	}

	p.log.DebugContext(ctx, "anthropic response",
		slog.String("stop_reason", string(msg.StopReason)),
		slog.Int64("output_tokens", msg.Usage.OutputTokens),
	)

	return b.String(), nil
}

type errorBody struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func upstreamError(err error) error {
	var apiErr *sdk.Error
	if errors.As(err, &apiErr) {
		msg := fmt.Sprintf("status %d", apiErr.StatusCode)
		var body errorBody
		if json.Unmarshal([]byte(apiErr.RawJSON()), &body) == nil && body.Error.Message != "" {
			msg = body.Error.Message
		}
		return &domain.UpstreamError{Provider: Name, StatusCode: apiErr.StatusCode, Message: msg, Err: err}
	}
	return &domain.UpstreamError{Provider: Name, Message: err.Error(), Err: err}
}
