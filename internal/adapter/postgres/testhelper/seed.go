package testhelper

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/queue-backend/internal/domain"
)

// SeedDocument stores a fresh 1920x1080 document for ownerID and returns it.
func SeedDocument(t *testing.T, pool *pgxpool.Pool, ownerID uuid.UUID, name string) domain.DocumentRecord {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	rec := domain.DocumentRecord{
		Document:  domain.NewDocument(name, domain.DocumentRect{Width: 1920, Height: 1080}),
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	body, err := json.Marshal(rec.Document)
	if err != nil {
		t.Fatalf("testhelper: SeedDocument marshal: %v", err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO documents (id, owner_id, name, page_count, body, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rec.Document.ID, rec.OwnerID, rec.Document.DocumentName, len(rec.Document.Pages), body, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedDocument insert: %v", err)
	}
	return rec
}
