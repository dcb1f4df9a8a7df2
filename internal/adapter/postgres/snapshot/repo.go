// Package snapshot persists one glossary snapshot per session in
// PostgreSQL. Rows are scoped by namespace so several deployments can share
// a database. Queries are built with squirrel; the payload column is JSONB
// and is stored and returned verbatim.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/lularocha/glossary-builder/internal/adapter/postgres"
	"github.com/lularocha/glossary-builder/internal/domain"
)

const (
	table  = "glossary_snapshots"
	entity = "glossary_snapshot"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides snapshot persistence backed by PostgreSQL.
type Repo struct {
	q         postgres.Querier
	namespace string
}

// New creates a snapshot repository writing under namespace.
func New(q postgres.Querier, namespace string) *Repo {
	return &Repo{q: q, namespace: namespace}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// Get returns the stored snapshot for sessionID.
// Returns domain.ErrNotFound if nothing has been saved.
func (r *Repo) Get(ctx context.Context, sessionID uuid.UUID) (*domain.Snapshot, error) {
	query, args, err := psql.
		Select("glossary_id", "seed_word", "payload", "updated_at").
		From(table).
		Where(sq.Eq{"namespace": r.namespace, "session_id": sessionID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get query: %w", err)
	}

	snap := &domain.Snapshot{SessionID: sessionID}
	var payload []byte
	err = r.q.QueryRow(ctx, query, args...).Scan(&snap.GlossaryID, &snap.SeedWord, &payload, &snap.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, entity, sessionID.String())
	}
	snap.Payload = payload

	return snap, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Put inserts or replaces the snapshot for snap.SessionID.
func (r *Repo) Put(ctx context.Context, snap domain.Snapshot) error {
	updatedAt := snap.UpdatedAt.UTC().Truncate(time.Microsecond)

	query, args, err := psql.
		Insert(table).
		Columns("namespace", "session_id", "glossary_id", "seed_word", "payload", "created_at", "updated_at").
		Values(r.namespace, snap.SessionID, snap.GlossaryID, snap.SeedWord, json.RawMessage(snap.Payload), updatedAt, updatedAt).
		Suffix(`ON CONFLICT (namespace, session_id) DO UPDATE SET
			glossary_id = EXCLUDED.glossary_id,
			seed_word = EXCLUDED.seed_word,
			payload = EXCLUDED.payload,
			updated_at = EXCLUDED.updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build put query: %w", err)
	}

	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, entity, snap.SessionID.String())
	}
	return nil
}

// Delete removes the snapshot for sessionID. Deleting a missing snapshot
// is not an error.
func (r *Repo) Delete(ctx context.Context, sessionID uuid.UUID) error {
	query, args, err := psql.
		Delete(table).
		Where(sq.Eq{"namespace": r.namespace, "session_id": sessionID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}

	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, entity, sessionID.String())
	}
	return nil
}

// DeleteStale removes snapshots in this namespace not updated since before
// and returns how many were removed.
func (r *Repo) DeleteStale(ctx context.Context, before time.Time) (int64, error) {
	query, args, err := psql.
		Delete(table).
		Where(sq.Eq{"namespace": r.namespace}).
		Where(sq.Lt{"updated_at": before.UTC()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete stale query: %w", err)
	}

	ct, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete stale snapshots: %w", err)
	}
	return ct.RowsAffected(), nil
}
