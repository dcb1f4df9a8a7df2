package rest

import (
	"context"
	"log/slog"
	"strings"

	"github.com/lularocha/glossary-builder/internal/adapter/cache"
	"github.com/lularocha/glossary-builder/internal/domain"
	"github.com/lularocha/glossary-builder/internal/service/glossary"
)

type glossaryService interface {
	Generate(ctx context.Context, input glossary.GenerateInput) (*domain.Glossary, error)
	ExpandTerm(ctx context.Context, input glossary.ExpandInput) (*domain.ExpandedContent, error)
	ExtendTerms(ctx context.Context, input glossary.ExtendInput) ([]domain.Term, error)
}

type expansionCache interface {
	Get(ctx context.Context, key string) (*domain.ExpandedContent, bool, error)
	Set(ctx context.Context, key string, content domain.ExpandedContent) error
}

type cacheObserver interface {
	ObserveCache(hit bool)
}

// cachedExpander puts the expansion cache in front of the model call.
// Cache failures are logged and never fail the request.
type cachedExpander struct {
	svc     glossaryService
	cache   expansionCache
	metrics cacheObserver
	log     *slog.Logger
}

func (e *cachedExpander) expand(ctx context.Context, in glossary.ExpandInput) (*domain.ExpandedContent, error) {
	if e.cache == nil {
		return e.svc.ExpandTerm(ctx, in)
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	lang := ""
	if in.DetectedLanguage != nil {
		lang = *in.DetectedLanguage
	}
	key := cache.Key(in.Term, in.Definition, in.SeedWord, lang)

	cached, ok, err := e.cache.Get(ctx, key)
	if err != nil {
		e.log.WarnContext(ctx, "expansion cache read failed", slog.String("error", err.Error()))
	}
	e.observe(ok)
	if ok {
		return cached, nil
	}

	content, err := e.svc.ExpandTerm(ctx, in)
	if err != nil {
		return nil, err
	}

	if err := e.cache.Set(ctx, key, *content); err != nil {
		e.log.WarnContext(ctx, "expansion cache write failed", slog.String("error", err.Error()))
	}
	return content, nil
}

func (e *cachedExpander) observe(hit bool) {
	if e.metrics != nil {
		e.metrics.ObserveCache(hit)
	}
}

func languageOrNil(lang *string) *string {
	if lang == nil || strings.TrimSpace(*lang) == "" {
		return nil
	}
	return lang
}
