package domain

import (
	"time"

	"github.com/google/uuid"
)

// Snapshot is the persisted form of a session's glossary. Payload holds the
// glossary JSON exactly as it was saved; stores never interpret it.
type Snapshot struct {
	SessionID  uuid.UUID
	GlossaryID string
	SeedWord   string
	Payload    []byte
	UpdatedAt  time.Time
}
