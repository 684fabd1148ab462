// Package audit implements the document activity log using PostgreSQL.
// It provides append-only operations for audit records.
package audit

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/heartmarshall/queue-backend/internal/adapter/postgres"
	"github.com/heartmarshall/queue-backend/internal/domain"
)

const table = "document_audit"

var columns = []string{"id", "user_id", "document_id", "action", "command", "version", "created_at"}

// Repo provides audit log persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new audit repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Create inserts a new audit record.
func (r *Repo) Create(ctx context.Context, record domain.AuditRecord) (domain.AuditRecord, error) {
	query, args, err := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(record.ID, record.UserID, record.DocumentID, string(record.Action), record.Command, record.Version, record.CreatedAt).
		ToSql()
	if err != nil {
		return domain.AuditRecord{}, fmt.Errorf("build insert: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return domain.AuditRecord{}, postgres.MapError(err, "audit_record", record.ID.String())
	}
	return record, nil
}

// ListByDocument returns the newest records of a document, at most limit.
func (r *Repo) ListByDocument(ctx context.Context, documentID string, limit int) ([]domain.AuditRecord, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(sq.Eq{"document_id": documentID}).
		OrderBy("created_at DESC", "id").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var records []domain.AuditRecord
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &records, query, args...); err != nil {
		return nil, fmt.Errorf("list audit records: %w", err)
	}
	return records, nil
}
