package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lularocha/glossary-builder/internal/domain"
)

// snapshotStoreMock is a moq-style mock of snapshotStore.
type snapshotStoreMock struct {
	GetFunc         func(ctx context.Context, sessionID uuid.UUID) (*domain.Snapshot, error)
	PutFunc         func(ctx context.Context, snap domain.Snapshot) error
	DeleteFunc      func(ctx context.Context, sessionID uuid.UUID) error
	DeleteStaleFunc func(ctx context.Context, before time.Time) (int64, error)

	mu    sync.Mutex
	calls struct {
		Put         []domain.Snapshot
		Delete      []uuid.UUID
		DeleteStale []time.Time
	}
}

func (m *snapshotStoreMock) Get(ctx context.Context, sessionID uuid.UUID) (*domain.Snapshot, error) {
	if m.GetFunc == nil {
		panic("snapshotStoreMock.GetFunc: method is nil but Get was just called")
	}
	return m.GetFunc(ctx, sessionID)
}

func (m *snapshotStoreMock) Put(ctx context.Context, snap domain.Snapshot) error {
	m.mu.Lock()
	m.calls.Put = append(m.calls.Put, snap)
	m.mu.Unlock()
	if m.PutFunc == nil {
		return nil
	}
	return m.PutFunc(ctx, snap)
}

func (m *snapshotStoreMock) Delete(ctx context.Context, sessionID uuid.UUID) error {
	m.mu.Lock()
	m.calls.Delete = append(m.calls.Delete, sessionID)
	m.mu.Unlock()
	if m.DeleteFunc == nil {
		return nil
	}
	return m.DeleteFunc(ctx, sessionID)
}

func (m *snapshotStoreMock) DeleteStale(ctx context.Context, before time.Time) (int64, error) {
	m.mu.Lock()
	m.calls.DeleteStale = append(m.calls.DeleteStale, before)
	m.mu.Unlock()
	if m.DeleteStaleFunc == nil {
		panic("snapshotStoreMock.DeleteStaleFunc: method is nil but DeleteStale was just called")
	}
	return m.DeleteStaleFunc(ctx, before)
}
