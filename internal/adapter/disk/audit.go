package disk

import (
	"context"
	"sort"

	"github.com/heartmarshall/queue-backend/internal/domain"
)

// AuditRepo keeps the activity log of documents in the disk store.
type AuditRepo struct {
	s *Store
}

// Create appends a record to the document's log.
func (r *AuditRepo) Create(ctx context.Context, record domain.AuditRecord) (domain.AuditRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := auditPrefix(record.DocumentID) + record.ID.String()
	if r.s.d.Has(key) {
		return domain.AuditRecord{}, domain.ErrAlreadyExists
	}
	if err := r.s.write(ctx, key, record); err != nil {
		return domain.AuditRecord{}, err
	}
	return record, nil
}

// ListByDocument returns the newest records of a document, at most limit.
func (r *AuditRepo) ListByDocument(ctx context.Context, documentID string, limit int) ([]domain.AuditRecord, error) {
	var records []domain.AuditRecord
	for _, key := range r.s.keys(ctx, auditPrefix(documentID)) {
		var rec domain.AuditRecord
		ok, err := r.s.readValue(key, &rec)
		if err != nil {
			return nil, err
		}
		if ok {
			records = append(records, rec)
		}
	}

	sort.Slice(records, func(i, j int) bool {
		if !records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].CreatedAt.After(records[j].CreatedAt)
		}
		return records[i].ID.String() < records[j].ID.String()
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}
