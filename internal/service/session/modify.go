package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lularocha/glossary-builder/internal/domain"
	"github.com/lularocha/glossary-builder/pkg/ctxutil"
)

// AttachExpansion stores content on the named term of the session's
// glossary and returns the updated glossary. The term is matched exactly
// first, then case-insensitively.
func (s *Service) AttachExpansion(ctx context.Context, term string, content domain.ExpandedContent) (*domain.Glossary, error) {
	sessionID, ok := ctxutil.SessionIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	unlock := s.locks.lock(sessionID)
	defer unlock()

	g, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	idx := g.FindTerm(term)
	if idx < 0 {
		return nil, fmt.Errorf("term %q: %w", term, domain.ErrNotFound)
	}

	g.Terms[idx].ExpandedContent = &content
	g.UpdatedAt = s.now()

	if err := s.put(ctx, sessionID, g); err != nil {
		return nil, err
	}
	return g, nil
}

// AppendTerms adds terms to the session's glossary, skipping any whose
// normalized name already exists. Returns the updated glossary and the
// number of terms actually added.
func (s *Service) AppendTerms(ctx context.Context, terms []domain.Term) (*domain.Glossary, int, error) {
	sessionID, ok := ctxutil.SessionIDFromCtx(ctx)
	if !ok {
		return nil, 0, domain.ErrUnauthorized
	}

	unlock := s.locks.lock(sessionID)
	defer unlock()

	g, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, 0, err
	}

	seen := make(map[string]struct{}, len(g.Terms)+len(terms))
	for _, t := range g.Terms {
		seen[domain.NormalizeTerm(t.Term)] = struct{}{}
	}

	added := 0
	for _, t := range terms {
		key := domain.NormalizeTerm(t.Term)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		g.Terms = append(g.Terms, t)
		added++
	}

	if added == 0 {
		return g, 0, nil
	}

	g.UpdatedAt = s.now()
	if err := s.put(ctx, sessionID, g); err != nil {
		return nil, 0, err
	}

	s.log.InfoContext(ctx, "terms appended",
		slog.String("session_id", sessionID.String()),
		slog.Int("added", added),
		slog.Int("total", len(g.Terms)),
	)
	return g, added, nil
}
