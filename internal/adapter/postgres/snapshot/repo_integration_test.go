package snapshot_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lularocha/glossary-builder/internal/adapter/postgres/snapshot"
	"github.com/lularocha/glossary-builder/internal/adapter/postgres/testhelper"
	"github.com/lularocha/glossary-builder/internal/domain"
)

func TestRepo_RoundTrip(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	ctx := context.Background()
	repo := snapshot.New(pool, "it:"+uuid.NewString())

	sessionID := uuid.New()
	first := domain.Snapshot{
		SessionID:  sessionID,
		GlossaryID: "g-1",
		SeedWord:   "kubernetes",
		Payload:    []byte(`{"id":"g-1","terms":[]}`),
		UpdatedAt:  time.Now(),
	}
	require.NoError(t, repo.Put(ctx, first))

	second := first
	second.GlossaryID = "g-2"
	second.Payload = []byte(`{"id":"g-2","terms":[]}`)
	require.NoError(t, repo.Put(ctx, second))

	got, err := repo.Get(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, "g-2", got.GlossaryID)
	assert.JSONEq(t, string(second.Payload), string(got.Payload))

	require.NoError(t, repo.Delete(ctx, sessionID))
	require.NoError(t, repo.Delete(ctx, sessionID))

	_, err = repo.Get(ctx, sessionID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepo_NamespacesAreIsolated(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	ctx := context.Background()
	a := snapshot.New(pool, "it-a:"+uuid.NewString())
	b := snapshot.New(pool, "it-b:"+uuid.NewString())

	sessionID := uuid.New()
	require.NoError(t, a.Put(ctx, domain.Snapshot{
		SessionID:  sessionID,
		GlossaryID: "g-1",
		SeedWord:   "rust",
		Payload:    []byte(`{}`),
		UpdatedAt:  time.Now(),
	}))

	_, err := b.Get(ctx, sessionID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepo_DeleteStale(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	ctx := context.Background()
	repo := snapshot.New(pool, "it:"+uuid.NewString())

	old := uuid.New()
	fresh := uuid.New()
	require.NoError(t, repo.Put(ctx, domain.Snapshot{SessionID: old, GlossaryID: "old", SeedWord: "a", Payload: []byte(`{}`), UpdatedAt: time.Now().Add(-48 * time.Hour)}))
	require.NoError(t, repo.Put(ctx, domain.Snapshot{SessionID: fresh, GlossaryID: "fresh", SeedWord: "b", Payload: []byte(`{}`), UpdatedAt: time.Now()}))

	n, err := repo.DeleteStale(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = repo.Get(ctx, old)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = repo.Get(ctx, fresh)
	assert.NoError(t, err)
}
