package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/queue-backend/internal/adapter/disk"
	"github.com/heartmarshall/queue-backend/internal/adapter/postgres"
	pgaudit "github.com/heartmarshall/queue-backend/internal/adapter/postgres/audit"
	pgdocument "github.com/heartmarshall/queue-backend/internal/adapter/postgres/document"
	"github.com/heartmarshall/queue-backend/internal/config"
	"github.com/heartmarshall/queue-backend/internal/domain"
)

type documentStore interface {
	Create(ctx context.Context, rec domain.DocumentRecord) (domain.DocumentRecord, error)
	GetByID(ctx context.Context, ownerID uuid.UUID, id string) (domain.DocumentRecord, error)
	Save(ctx context.Context, ownerID uuid.UUID, doc domain.Document) error
	Delete(ctx context.Context, ownerID uuid.UUID, id string) error
	List(ctx context.Context, ownerID uuid.UUID, filter domain.DocumentFilter) ([]domain.DocumentSummary, int, error)
}

type auditStore interface {
	Create(ctx context.Context, rec domain.AuditRecord) (domain.AuditRecord, error)
	ListByDocument(ctx context.Context, documentID string, limit int) ([]domain.AuditRecord, error)
}

type txRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type storagePinger interface {
	Ping(ctx context.Context) error
}

// storage is the set of repositories behind the configured driver.
type storage struct {
	documents documentStore
	audit     auditStore
	tx        txRunner
	pinger    storagePinger
	close     func()
}

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		return &storage{
			documents: pgdocument.New(pool),
			audit:     pgaudit.New(pool),
			tx:        postgres.NewTxManager(pool),
			pinger:    pool,
			close:     pool.Close,
		}, nil

	case config.StorageDriverDisk:
		return openDiskStorage(cfg.Storage)

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func openDiskStorage(cfg config.StorageConfig) (*storage, error) {
	store, err := disk.Open(cfg)
	if err != nil {
		return nil, err
	}
	return &storage{
		documents: store.Documents(),
		audit:     store.Audit(),
		tx:        store.TxManager(),
		pinger:    store,
		close:     func() {},
	}, nil
}
