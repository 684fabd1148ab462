package disk

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/queue-backend/internal/config"
	"github.com/heartmarshall/queue-backend/internal/domain"
)

func openStore(t *testing.T, dir string) *Store {
	t.Helper()
	s, err := Open(config.StorageConfig{Driver: config.StorageDriverDisk, DiskPath: dir, DiskCacheBytes: 1 << 20})
	require.NoError(t, err)
	return s
}

func newRecord(owner uuid.UUID, name string, at time.Time) domain.DocumentRecord {
	doc := domain.NewDocument(name, domain.DocumentRect{Width: 1280, Height: 720})
	page := &doc.Pages[0]
	page.Objects = append(page.Objects, domain.NewRect(page.Bounds, 1))
	return domain.DocumentRecord{Document: doc, OwnerID: owner, CreatedAt: at, UpdatedAt: at}
}

func TestOpen_RequiresPath(t *testing.T) {
	t.Parallel()

	_, err := Open(config.StorageConfig{})
	require.Error(t, err)
}

func TestStore_Ping(t *testing.T) {
	t.Parallel()
	s := openStore(t, t.TempDir())

	require.NoError(t, s.Ping(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Ping(ctx), context.Canceled)
}

func TestDocumentRepo_RoundTripSurvivesReopen(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	ctx := context.Background()
	owner := uuid.New()
	rec := newRecord(owner, "Launch", time.Now().UTC())

	_, err := openStore(t, dir).Documents().Create(ctx, rec)
	require.NoError(t, err)

	got, err := openStore(t, dir).Documents().GetByID(ctx, owner, rec.Document.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.Document, got.Document)
	assert.True(t, rec.CreatedAt.Equal(got.CreatedAt), "created_at keeps sub-second precision")
	assert.Equal(t, owner, got.OwnerID)
}

func TestDocumentRepo_OwnerScoped(t *testing.T) {
	t.Parallel()
	repo := openStore(t, t.TempDir()).Documents()
	ctx := context.Background()
	owner := uuid.New()
	rec := newRecord(owner, "Private", time.Now().UTC())
	_, err := repo.Create(ctx, rec)
	require.NoError(t, err)

	stranger := uuid.New()
	_, err = repo.GetByID(ctx, stranger, rec.Document.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, repo.Save(ctx, stranger, rec.Document), domain.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, stranger, rec.Document.ID), domain.ErrNotFound)

	// Ids are unique across owners.
	clash := rec
	clash.OwnerID = stranger
	_, err = repo.Create(ctx, clash)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestDocumentRepo_SaveAndDelete(t *testing.T) {
	t.Parallel()
	repo := openStore(t, t.TempDir()).Documents()
	ctx := context.Background()
	owner := uuid.New()
	rec := newRecord(owner, "Draft", time.Now().Add(-time.Hour).UTC())
	_, err := repo.Create(ctx, rec)
	require.NoError(t, err)

	doc := rec.Document
	doc.DocumentName = "Final"
	require.NoError(t, repo.Save(ctx, owner, doc))

	got, err := repo.GetByID(ctx, owner, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Final", got.Document.DocumentName)
	assert.True(t, got.UpdatedAt.After(rec.UpdatedAt))
	assert.True(t, got.CreatedAt.Equal(rec.CreatedAt))

	require.NoError(t, repo.Delete(ctx, owner, doc.ID))
	_, err = repo.GetByID(ctx, owner, doc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentRepo_List(t *testing.T) {
	t.Parallel()
	repo := openStore(t, t.TempDir()).Documents()
	ctx := context.Background()
	owner := uuid.New()
	base := time.Now().UTC().Add(-time.Hour)

	names := []string{"Sales kickoff", "Hiring plan", "Sales recap"}
	for i, name := range names {
		_, err := repo.Create(ctx, newRecord(owner, name, base.Add(time.Duration(i)*time.Minute)))
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, newRecord(uuid.New(), "Sales elsewhere", base))
	require.NoError(t, err)

	all, total, err := repo.List(ctx, owner, domain.DocumentFilter{Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, all, 3)
	assert.Equal(t, "Sales recap", all[0].Name, "most recently updated first")
	assert.Equal(t, 1, all[0].PageCount)

	search := "SALES"
	page, total, err := repo.List(ctx, owner, domain.DocumentFilter{Search: &search, Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, page, 1)
	assert.Equal(t, "Sales kickoff", page[0].Name)

	empty, total, err := repo.List(ctx, owner, domain.DocumentFilter{Limit: 10, Offset: 10})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Empty(t, empty)
}

func TestAuditRepo_ListByDocument(t *testing.T) {
	t.Parallel()
	repo := openStore(t, t.TempDir()).Audit()
	ctx := context.Background()
	user := uuid.New()
	base := time.Now().UTC()

	for i := 0; i < 3; i++ {
		rec := domain.NewAuditRecord(user, "deck", domain.AuditCommand)
		rec.Version = int64(i + 1)
		rec.CreatedAt = base.Add(time.Duration(i) * time.Second)
		_, err := repo.Create(ctx, rec)
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, domain.NewAuditRecord(user, "other", domain.AuditCreate))
	require.NoError(t, err)

	got, err := repo.ListByDocument(ctx, "deck", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(3), got[0].Version)
	assert.Equal(t, int64(2), got[1].Version)
	assert.Equal(t, domain.AuditCommand, got[0].Action)

	none, err := repo.ListByDocument(ctx, "missing", 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestTxManager_RollsBackOnError(t *testing.T) {
	t.Parallel()
	s := openStore(t, t.TempDir())
	ctx := context.Background()
	owner := uuid.New()

	existing := newRecord(owner, "Existing", time.Now().UTC())
	_, err := s.Documents().Create(ctx, existing)
	require.NoError(t, err)

	fresh := newRecord(owner, "Fresh", time.Now().UTC())
	sentinel := errors.New("audit down")
	err = s.TxManager().RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.Documents().Create(txCtx, fresh); err != nil {
			return err
		}
		changed := existing.Document
		changed.DocumentName = "Changed"
		if err := s.Documents().Save(txCtx, owner, changed); err != nil {
			return err
		}
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	_, err = s.Documents().GetByID(ctx, owner, fresh.Document.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "created document is removed")

	got, err := s.Documents().GetByID(ctx, owner, existing.Document.ID)
	require.NoError(t, err)
	assert.Equal(t, "Existing", got.Document.DocumentName, "saved document is restored")
}

func TestTxManager_RollsBackOnPanic(t *testing.T) {
	t.Parallel()
	s := openStore(t, t.TempDir())
	ctx := context.Background()
	owner := uuid.New()
	rec := newRecord(owner, "Doomed", time.Now().UTC())

	assert.PanicsWithValue(t, "boom", func() {
		_ = s.TxManager().RunInTx(ctx, func(txCtx context.Context) error {
			if _, err := s.Documents().Create(txCtx, rec); err != nil {
				return err
			}
			panic("boom")
		})
	})

	_, err := s.Documents().GetByID(ctx, owner, rec.Document.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTxManager_Commit(t *testing.T) {
	t.Parallel()
	s := openStore(t, t.TempDir())
	ctx := context.Background()
	owner := uuid.New()
	rec := newRecord(owner, "Kept", time.Now().UTC())

	err := s.TxManager().RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.Documents().Create(txCtx, rec); err != nil {
			return err
		}
		_, err := s.Audit().Create(txCtx, domain.NewAuditRecord(owner, rec.Document.ID, domain.AuditCreate))
		return err
	})
	require.NoError(t, err)

	_, err = s.Documents().GetByID(ctx, owner, rec.Document.ID)
	require.NoError(t, err)
	log, err := s.Audit().ListByDocument(ctx, rec.Document.ID, 10)
	require.NoError(t, err)
	assert.Len(t, log, 1)
}

func TestTxManager_NestedJoinsOuter(t *testing.T) {
	t.Parallel()
	s := openStore(t, t.TempDir())
	ctx := context.Background()
	owner := uuid.New()
	rec := newRecord(owner, "Nested", time.Now().UTC())

	sentinel := errors.New("outer fails")
	err := s.TxManager().RunInTx(ctx, func(txCtx context.Context) error {
		inner := s.TxManager().RunInTx(txCtx, func(innerCtx context.Context) error {
			_, err := s.Documents().Create(innerCtx, rec)
			return err
		})
		require.NoError(t, inner)
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	_, err = s.Documents().GetByID(ctx, owner, rec.Document.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "inner write is undone with the outer transaction")
}
