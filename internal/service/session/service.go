package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lularocha/glossary-builder/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type snapshotStore interface {
	Get(ctx context.Context, sessionID uuid.UUID) (*domain.Snapshot, error)
	Put(ctx context.Context, snap domain.Snapshot) error
	Delete(ctx context.Context, sessionID uuid.UUID) error
	DeleteStale(ctx context.Context, before time.Time) (int64, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service keeps one glossary snapshot per session. Every read-modify-write
// runs under a per-session lock so concurrent expansions of different terms
// do not overwrite each other.
type Service struct {
	log   *slog.Logger
	store snapshotStore
	locks *keyedMutex
	now   func() time.Time
}

// NewService creates a new session service.
func NewService(logger *slog.Logger, store snapshotStore) *Service {
	return &Service{
		log:   logger.With("service", "session"),
		store: store,
		locks: newKeyedMutex(),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// ---------------------------------------------------------------------------
// Per-session locking
// ---------------------------------------------------------------------------

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// keyedMutex hands out one mutex per session and forgets it once no
// goroutine holds or waits for it.
type keyedMutex struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*lockEntry
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{entries: make(map[uuid.UUID]*lockEntry)}
}

func (k *keyedMutex) lock(id uuid.UUID) func() {
	k.mu.Lock()
	e, ok := k.entries[id]
	if !ok {
		e = &lockEntry{}
		k.entries[id] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()

		k.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(k.entries, id)
		}
		k.mu.Unlock()
	}
}

func (k *keyedMutex) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.entries)
}
