package glossary

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lularocha/glossary-builder/internal/domain"
	"github.com/lularocha/glossary-builder/internal/provider"
)

// ExtendTerms asks for more terms that complement an existing glossary.
// Terms already present in the glossary, and repeats within the reply, are
// dropped (compared case- and whitespace-insensitively). The glossary itself
// is not modified.
func (s *Service) ExtendTerms(ctx context.Context, input ExtendInput) ([]domain.Term, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	reply, err := ask(ctx, s, OpExtend, provider.CompletionRequest{
		Prompt:      extendPrompt(input.Glossary, s.cfg.ExtendCount),
		Model:       s.cfg.Generate.Model,
		MaxTokens:   s.cfg.Generate.MaxTokens,
		Temperature: s.cfg.Generate.Temperature,
	}, validateExtend)
	if err != nil {
		return nil, fmt.Errorf("extend terms: %w", err)
	}

	seen := make(map[string]struct{}, len(input.Glossary.Terms)+len(reply.Terms))
	for _, t := range input.Glossary.Terms {
		seen[domain.NormalizeTerm(t.Term)] = struct{}{}
	}

	added := make([]domain.Term, 0, len(reply.Terms))
	for _, p := range reply.Terms {
		t := p.toDomain()
		key := domain.NormalizeTerm(t.Term)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		added = append(added, t)
	}

	s.log.InfoContext(ctx, "glossary extended",
		slog.String("glossary_id", input.Glossary.ID),
		slog.Int("returned", len(reply.Terms)),
		slog.Int("added", len(added)),
	)

	return added, nil
}
