package cache

import (
	"context"
	"sync"
	"time"

	"github.com/lularocha/glossary-builder/internal/domain"
)

// DefaultMemoryEntries bounds the in-memory cache.
const DefaultMemoryEntries = 1024

type memoryEntry struct {
	content   domain.ExpandedContent
	expiresAt time.Time
}

// Memory is a process-local expansion cache with per-entry TTL. When full,
// expired entries are swept first and then the entry closest to expiry is
// evicted.
type Memory struct {
	mu         sync.Mutex
	items      map[string]memoryEntry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// NewMemory creates a cache holding at most maxEntries items for ttl each.
func NewMemory(ttl time.Duration, maxEntries int) *Memory {
	if maxEntries <= 0 {
		maxEntries = DefaultMemoryEntries
	}
	return &Memory{
		items:      make(map[string]memoryEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Get returns the cached expansion for key.
func (m *Memory) Get(_ context.Context, key string) (*domain.ExpandedContent, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.items[key]
	if !ok {
		return nil, false, nil
	}
	if !m.now().Before(e.expiresAt) {
		delete(m.items, key)
		return nil, false, nil
	}
	content := copyContent(e.content)
	return &content, true, nil
}

// Set stores content under key.
func (m *Memory) Set(_ context.Context, key string, content domain.ExpandedContent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if _, exists := m.items[key]; !exists && len(m.items) >= m.maxEntries {
		m.evictLocked(now)
	}
	m.items[key] = memoryEntry{content: copyContent(content), expiresAt: now.Add(m.ttl)}
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

func (m *Memory) evictLocked(now time.Time) {
	var (
		oldestKey string
		oldestAt  time.Time
	)
	for k, e := range m.items {
		if !now.Before(e.expiresAt) {
			delete(m.items, k)
			continue
		}
		if oldestKey == "" || e.expiresAt.Before(oldestAt) {
			oldestKey, oldestAt = k, e.expiresAt
		}
	}
	if len(m.items) >= m.maxEntries && oldestKey != "" {
		delete(m.items, oldestKey)
	}
}

func copyContent(c domain.ExpandedContent) domain.ExpandedContent {
	out := c
	out.Paragraphs = append([]string(nil), c.Paragraphs...)
	out.Sources = append([]domain.Source(nil), c.Sources...)
	return out
}
