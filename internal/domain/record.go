package domain

import (
	"time"

	"github.com/google/uuid"
)

// DocumentRecord is a stored document with its ownership and timestamps.
type DocumentRecord struct {
	Document  Document
	OwnerID   uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DocumentSummary is the list view of a stored document.
type DocumentSummary struct {
	ID        string    `json:"id"        db:"id"`
	Name      string    `json:"name"      db:"name"`
	PageCount int       `json:"pageCount" db:"page_count"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Summary builds the list view of r.
func (r DocumentRecord) Summary() DocumentSummary {
	return DocumentSummary{
		ID:        r.Document.ID,
		Name:      r.Document.DocumentName,
		PageCount: len(r.Document.Pages),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// DocumentFilter contains filtering/pagination parameters for document listings.
type DocumentFilter struct {
	Search *string
	Limit  int
	Offset int
}

// AuditAction is what happened to a document.
type AuditAction string

const (
	AuditCreate  AuditAction = "create"
	AuditImport  AuditAction = "import"
	AuditCommand AuditAction = "command"
	AuditDelete  AuditAction = "delete"
)

// AuditRecord is one entry of a document's activity log. Command and
// Version are set for AuditCommand records.
type AuditRecord struct {
	ID         uuid.UUID   `json:"id"         db:"id"`
	UserID     uuid.UUID   `json:"userId"     db:"user_id"`
	DocumentID string      `json:"documentId" db:"document_id"`
	Action     AuditAction `json:"action"     db:"action"`
	Command    string      `json:"command"    db:"command"`
	Version    int64       `json:"version"    db:"version"`
	CreatedAt  time.Time   `json:"createdAt"  db:"created_at"`
}

// NewAuditRecord creates a record stamped with a fresh id and the current time.
func NewAuditRecord(userID uuid.UUID, documentID string, action AuditAction) AuditRecord {
	return AuditRecord{
		ID:         uuid.New(),
		UserID:     userID,
		DocumentID: documentID,
		Action:     action,
		CreatedAt:  time.Now().UTC(),
	}
}
