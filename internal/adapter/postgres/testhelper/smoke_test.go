package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestSetupTestDB_Smoke(t *testing.T) {
	pool := SetupTestDB(t)

	rec := SeedDocument(t, pool, uuid.New(), "Smoke")

	// Verify the document exists in DB via SELECT.
	var name string
	var pages int
	err := pool.QueryRow(
		context.Background(),
		`SELECT name, page_count FROM documents WHERE id = $1`,
		rec.Document.ID,
	).Scan(&name, &pages)
	if err != nil {
		t.Fatalf("expected document in DB, got error: %v", err)
	}

	if name != "Smoke" || pages != 1 {
		t.Fatalf("expected Smoke with 1 page, got %q with %d", name, pages)
	}
}
