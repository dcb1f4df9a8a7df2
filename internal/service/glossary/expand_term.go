package glossary

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lularocha/glossary-builder/internal/domain"
	"github.com/lularocha/glossary-builder/internal/provider"
)

// ExpandTerm produces extra paragraphs and cited sources for one term.
// Results are not cached here.
func (s *Service) ExpandTerm(ctx context.Context, input ExpandInput) (*domain.ExpandedContent, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	input.Term = strings.TrimSpace(input.Term)
	input.Definition = strings.TrimSpace(input.Definition)
	input.SeedWord = strings.TrimSpace(input.SeedWord)
	input.GlossaryTitle = trimmedOrNil(input.GlossaryTitle)

	reply, err := ask(ctx, s, OpExpand, provider.CompletionRequest{
		Prompt:      expandPrompt(input),
		Model:       s.cfg.Expand.Model,
		MaxTokens:   s.cfg.Expand.MaxTokens,
		Temperature: s.cfg.Expand.Temperature,
	}, validateExpand)
	if err != nil {
		return nil, fmt.Errorf("expand term: %w", err)
	}

	sources := make([]domain.Source, 0, len(reply.Sources))
	for _, src := range reply.Sources {
		sources = append(sources, src.toDomain())
	}

	s.log.DebugContext(ctx, "term expanded",
		slog.String("term", input.Term),
		slog.Int("paragraphs", len(reply.Paragraphs)),
		slog.Int("sources", len(sources)),
	)

	return &domain.ExpandedContent{
		Paragraphs: reply.Paragraphs,
		Sources:    sources,
		LoadedAt:   s.now(),
	}, nil
}
