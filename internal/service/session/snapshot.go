package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lularocha/glossary-builder/internal/domain"
	"github.com/lularocha/glossary-builder/pkg/ctxutil"
)

// Save replaces the session's snapshot with g.
func (s *Service) Save(ctx context.Context, g *domain.Glossary) error {
	sessionID, ok := ctxutil.SessionIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if !g.IsValid() {
		return domain.NewValidationError("glossary", "missing id, description, seedWord or terms")
	}

	unlock := s.locks.lock(sessionID)
	defer unlock()

	return s.put(ctx, sessionID, g)
}

// Load returns the session's glossary. A snapshot that no longer decodes
// into a valid glossary is deleted and reported as domain.ErrNotFound.
func (s *Service) Load(ctx context.Context) (*domain.Glossary, error) {
	sessionID, ok := ctxutil.SessionIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	unlock := s.locks.lock(sessionID)
	defer unlock()

	return s.load(ctx, sessionID)
}

// Clear deletes the session's snapshot. Clearing an empty session succeeds.
func (s *Service) Clear(ctx context.Context) error {
	sessionID, ok := ctxutil.SessionIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	unlock := s.locks.lock(sessionID)
	defer unlock()

	if err := s.store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}

// PurgeStale removes snapshots of every session not saved within maxAge.
func (s *Service) PurgeStale(ctx context.Context, maxAge time.Duration) (int64, error) {
	if maxAge <= 0 {
		return 0, domain.NewValidationError("olderThan", "must be positive")
	}

	cutoff := s.now().Add(-maxAge)
	n, err := s.store.DeleteStale(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete stale snapshots: %w", err)
	}

	s.log.InfoContext(ctx, "stale snapshots purged",
		slog.Time("cutoff", cutoff),
		slog.Int64("deleted", n),
	)
	return n, nil
}

// ---------------------------------------------------------------------------
// Helpers (caller holds the session lock)
// ---------------------------------------------------------------------------

func (s *Service) load(ctx context.Context, sessionID uuid.UUID) (*domain.Glossary, error) {
	snap, err := s.store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get snapshot: %w", err)
	}

	var g domain.Glossary
	if err := json.Unmarshal(snap.Payload, &g); err != nil || !g.IsValid() {
		s.log.WarnContext(ctx, "discarding invalid snapshot",
			slog.String("session_id", sessionID.String()),
			slog.Any("decode_error", err),
		)
		if delErr := s.store.Delete(ctx, sessionID); delErr != nil {
			return nil, fmt.Errorf("delete invalid snapshot: %w", delErr)
		}
		return nil, domain.ErrNotFound
	}

	return &g, nil
}

func (s *Service) put(ctx context.Context, sessionID uuid.UUID, g *domain.Glossary) error {
	payload, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("marshal glossary: %w", err)
	}

	err = s.store.Put(ctx, domain.Snapshot{
		SessionID:  sessionID,
		GlossaryID: g.ID,
		SeedWord:   g.SeedWord,
		Payload:    payload,
		UpdatedAt:  s.now(),
	})
	if err != nil {
		return fmt.Errorf("put snapshot: %w", err)
	}
	return nil
}
