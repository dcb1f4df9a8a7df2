// Package memstore provides process-local stores used when no database or
// cache server is configured.
package memstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lularocha/glossary-builder/internal/domain"
)

// SnapshotStore keeps snapshots in a map keyed by session ID. Payloads are
// copied on the way in and out so callers cannot alias stored bytes.
type SnapshotStore struct {
	mu    sync.RWMutex
	items map[uuid.UUID]domain.Snapshot
}

// NewSnapshotStore creates an empty store.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{items: make(map[uuid.UUID]domain.Snapshot)}
}

// Get returns the snapshot for sessionID or domain.ErrNotFound.
func (s *SnapshotStore) Get(_ context.Context, sessionID uuid.UUID) (*domain.Snapshot, error) {
	s.mu.RLock()
	snap, ok := s.items[sessionID]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("glossary_snapshot %s: %w", sessionID, domain.ErrNotFound)
	}
	snap.Payload = clone(snap.Payload)
	return &snap, nil
}

// Put inserts or replaces the snapshot for snap.SessionID.
func (s *SnapshotStore) Put(_ context.Context, snap domain.Snapshot) error {
	snap.Payload = clone(snap.Payload)

	s.mu.Lock()
	s.items[snap.SessionID] = snap
	s.mu.Unlock()
	return nil
}

// Delete removes the snapshot for sessionID if present.
func (s *SnapshotStore) Delete(_ context.Context, sessionID uuid.UUID) error {
	s.mu.Lock()
	delete(s.items, sessionID)
	s.mu.Unlock()
	return nil
}

// DeleteStale removes snapshots last updated before the cutoff.
func (s *SnapshotStore) DeleteStale(_ context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, snap := range s.items {
		if snap.UpdatedAt.Before(before) {
			delete(s.items, id)
			n++
		}
	}
	return n, nil
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
