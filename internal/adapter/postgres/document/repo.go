// Package document implements the Document repository using PostgreSQL.
// The document tree is stored as a single JSONB body next to the columns
// needed for listing.
package document

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/heartmarshall/queue-backend/internal/adapter/postgres"
	"github.com/heartmarshall/queue-backend/internal/domain"
)

const table = "documents"

var summaryColumns = []string{"id", "name", "page_count", "created_at", "updated_at"}

// Repo provides document persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new document repository. db is used whenever the context
// carries no transaction.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new document. A clashing id yields domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, rec domain.DocumentRecord) (domain.DocumentRecord, error) {
	body, err := json.Marshal(rec.Document)
	if err != nil {
		return domain.DocumentRecord{}, fmt.Errorf("marshal document: %w", err)
	}

	query, args, err := postgres.Builder().
		Insert(table).
		Columns("id", "owner_id", "name", "page_count", "body", "created_at", "updated_at").
		Values(rec.Document.ID, rec.OwnerID, rec.Document.DocumentName, len(rec.Document.Pages), body, rec.CreatedAt, rec.UpdatedAt).
		ToSql()
	if err != nil {
		return domain.DocumentRecord{}, fmt.Errorf("build insert: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return domain.DocumentRecord{}, postgres.MapError(err, "document", rec.Document.ID)
	}
	return rec, nil
}

// Save replaces the stored body of an existing document.
func (r *Repo) Save(ctx context.Context, ownerID uuid.UUID, doc domain.Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	query, args, err := postgres.Builder().
		Update(table).
		Set("name", doc.DocumentName).
		Set("page_count", len(doc.Pages)).
		Set("body", body).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": doc.ID, "owner_id": ownerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "document", doc.ID)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("document", doc.ID)
	}
	return nil
}

// Delete removes a document owned by ownerID.
func (r *Repo) Delete(ctx context.Context, ownerID uuid.UUID, id string) error {
	query, args, err := postgres.Builder().
		Delete(table).
		Where(sq.Eq{"id": id, "owner_id": ownerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "document", id)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("document", id)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID loads a document owned by ownerID. Documents of other owners are
// reported as not found.
func (r *Repo) GetByID(ctx context.Context, ownerID uuid.UUID, id string) (domain.DocumentRecord, error) {
	query, args, err := postgres.Builder().
		Select("body", "created_at", "updated_at").
		From(table).
		Where(sq.Eq{"id": id, "owner_id": ownerID}).
		ToSql()
	if err != nil {
		return domain.DocumentRecord{}, fmt.Errorf("build select: %w", err)
	}

	var (
		body []byte
		rec  = domain.DocumentRecord{OwnerID: ownerID}
	)
	err = postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).
		Scan(&body, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return domain.DocumentRecord{}, postgres.MapError(err, "document", id)
	}

	rec.Document, err = domain.ParseDocument(body)
	if err != nil {
		return domain.DocumentRecord{}, fmt.Errorf("decode document %s: %w", id, err)
	}
	return rec, nil
}

// List returns one page of the owner's documents, most recently updated
// first, together with the total number of matches.
func (r *Repo) List(ctx context.Context, ownerID uuid.UUID, filter domain.DocumentFilter) ([]domain.DocumentSummary, int, error) {
	where := sq.And{sq.Eq{"owner_id": ownerID}}
	if filter.Search != nil && *filter.Search != "" {
		where = append(where, sq.ILike{"name": "%" + escapeLike(*filter.Search) + "%"})
	}
	q := postgres.QuerierFromCtx(ctx, r.db)

	countSQL, countArgs, err := postgres.Builder().
		Select("count(*)").
		From(table).
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count: %w", err)
	}
	var total int
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count documents: %w", err)
	}

	listSQL, listArgs, err := postgres.Builder().
		Select(summaryColumns...).
		From(table).
		Where(where).
		OrderBy("updated_at DESC", "id").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list: %w", err)
	}

	var items []domain.DocumentSummary
	if err := pgxscan.Select(ctx, q, &items, listSQL, listArgs...); err != nil {
		return nil, 0, fmt.Errorf("list documents: %w", err)
	}
	return items, total, nil
}
