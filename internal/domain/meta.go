package domain

import (
	"time"

	"github.com/google/uuid"
)

// Meta carries the persistence metadata shared by every stored document.
// The columns on the collection table are authoritative; the copies inside
// the JSONB payload exist only so a document is self-contained when exported.
type Meta struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	IsDeleted bool      `json:"is_deleted"`
}

// SetMeta overwrites the metadata from the backing row.
func (m *Meta) SetMeta(id uuid.UUID, createdAt, updatedAt time.Time, deleted bool) {
	m.ID = id
	m.CreatedAt = createdAt
	m.UpdatedAt = updatedAt
	m.IsDeleted = deleted
}

// DocumentID returns the document identifier.
func (m *Meta) DocumentID() uuid.UUID {
	return m.ID
}
