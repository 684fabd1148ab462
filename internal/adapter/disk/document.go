package disk

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/queue-backend/internal/domain"
)

// envelope is the stored form of a document.
type envelope struct {
	OwnerID   uuid.UUID       `cbor:"ownerId"`
	CreatedAt time.Time       `cbor:"createdAt"`
	UpdatedAt time.Time       `cbor:"updatedAt"`
	Document  domain.Document `cbor:"document"`
}

func (e envelope) record() domain.DocumentRecord {
	return domain.DocumentRecord{
		Document:  e.Document,
		OwnerID:   e.OwnerID,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// DocumentRepo provides document persistence backed by the disk store.
type DocumentRepo struct {
	s *Store
}

// Create stores a new document. Ids are unique across owners.
func (r *DocumentRepo) Create(ctx context.Context, rec domain.DocumentRecord) (domain.DocumentRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := documentKey(rec.Document.ID)
	if r.s.d.Has(key) {
		return domain.DocumentRecord{}, domain.ErrAlreadyExists
	}
	env := envelope{
		OwnerID:   rec.OwnerID,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
		Document:  rec.Document,
	}
	if err := r.s.write(ctx, key, env); err != nil {
		return domain.DocumentRecord{}, err
	}
	return rec, nil
}

// GetByID loads a document owned by ownerID.
func (r *DocumentRepo) GetByID(_ context.Context, ownerID uuid.UUID, id string) (domain.DocumentRecord, error) {
	env, err := r.load(ownerID, id)
	if err != nil {
		return domain.DocumentRecord{}, err
	}
	return env.record(), nil
}

// Save replaces the body of an existing document.
func (r *DocumentRepo) Save(ctx context.Context, ownerID uuid.UUID, doc domain.Document) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	env, err := r.load(ownerID, doc.ID)
	if err != nil {
		return err
	}
	env.Document = doc
	env.UpdatedAt = time.Now().UTC()
	return r.s.write(ctx, documentKey(doc.ID), env)
}

// Delete removes a document owned by ownerID.
func (r *DocumentRepo) Delete(ctx context.Context, ownerID uuid.UUID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, err := r.load(ownerID, id); err != nil {
		return err
	}
	return r.s.erase(ctx, documentKey(id))
}

// List returns one page of the owner's documents, most recently updated
// first. Search matches names case-insensitively.
func (r *DocumentRepo) List(ctx context.Context, ownerID uuid.UUID, filter domain.DocumentFilter) ([]domain.DocumentSummary, int, error) {
	var search string
	if filter.Search != nil {
		search = strings.ToLower(*filter.Search)
	}

	var all []domain.DocumentSummary
	for _, key := range r.s.keys(ctx, "doc"+keySep) {
		var env envelope
		ok, err := r.s.readValue(key, &env)
		if err != nil {
			return nil, 0, err
		}
		if !ok || env.OwnerID != ownerID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(env.Document.DocumentName), search) {
			continue
		}
		all = append(all, env.record().Summary())
	}
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	sort.Slice(all, func(i, j int) bool {
		if !all[i].UpdatedAt.Equal(all[j].UpdatedAt) {
			return all[i].UpdatedAt.After(all[j].UpdatedAt)
		}
		return all[i].ID < all[j].ID
	})

	total := len(all)
	start := min(filter.Offset, total)
	end := total
	if filter.Limit > 0 {
		end = min(start+filter.Limit, total)
	}
	return all[start:end], total, nil
}

func (r *DocumentRepo) load(ownerID uuid.UUID, id string) (envelope, error) {
	var env envelope
	ok, err := r.s.readValue(documentKey(id), &env)
	if err != nil {
		return envelope{}, err
	}
	if !ok || env.OwnerID != ownerID {
		return envelope{}, domain.NewNotFoundError("document", id)
	}
	return env, nil
}
