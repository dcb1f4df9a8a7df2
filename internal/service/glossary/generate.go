package glossary

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/lularocha/glossary-builder/internal/domain"
	"github.com/lularocha/glossary-builder/internal/provider"
)

// Generate builds a new glossary around input.SeedWord with a single model
// call. Terms are returned in the order the model produced them.
func (s *Service) Generate(ctx context.Context, input GenerateInput) (*domain.Glossary, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	seedWord := strings.TrimSpace(input.SeedWord)
	title := trimmedOrNil(input.Title)

	reply, err := ask(ctx, s, OpGenerate, provider.CompletionRequest{
		Prompt:      generatePrompt(seedWord, title, s.cfg.TermCount),
		Model:       s.cfg.Generate.Model,
		MaxTokens:   s.cfg.Generate.MaxTokens,
		Temperature: s.cfg.Generate.Temperature,
	}, validateGenerate)
	if err != nil {
		return nil, fmt.Errorf("generate glossary: %w", err)
	}

	terms := make([]domain.Term, 0, len(reply.Terms))
	for _, t := range reply.Terms {
		terms = append(terms, t.toDomain())
	}

	locale := domain.ResolveLocale(reply.DetectedLanguage, translationsOf(reply.Translations))
	language := locale.Language

	now := s.now()
	g := &domain.Glossary{
		ID:               uuid.NewString(),
		Title:            title,
		Description:      strings.TrimSpace(*reply.Description),
		SeedWord:         seedWord,
		DetectedLanguage: &language,
		Translations:     locale.Labels,
		Terms:            terms,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	s.log.InfoContext(ctx, "glossary generated",
		slog.String("glossary_id", g.ID),
		slog.String("seed_word", seedWord),
		slog.String("language", language),
		slog.Int("terms", len(terms)),
	)

	return g, nil
}
