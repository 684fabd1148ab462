package document

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/queue-backend/internal/domain"
	"github.com/heartmarshall/queue-backend/pkg/ctxutil"
)

// Get returns a stored document. If it is open for editing, the live state
// is returned instead of the stored one.
func (s *Service) Get(ctx context.Context, id string) (domain.DocumentRecord, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.DocumentRecord{}, domain.ErrUnauthorized
	}
	rec, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return domain.DocumentRecord{}, err
	}

	s.mu.Lock()
	sess, open := s.sessions[id]
	s.mu.Unlock()
	if open && sess.owner == userID {
		rec.Document = sess.ed.Document()
	}
	return rec, nil
}

// ListResult is one page of document summaries.
type ListResult struct {
	Items []domain.DocumentSummary `json:"items"`
	Total int                      `json:"total"`
}

// List returns the caller's documents, most recently updated first.
func (s *Service) List(ctx context.Context, input ListInput) (ListResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return ListResult{}, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return ListResult{}, err
	}

	items, total, err := s.repo.List(ctx, userID, input.filter())
	if err != nil {
		return ListResult{}, fmt.Errorf("list documents: %w", err)
	}
	if items == nil {
		items = []domain.DocumentSummary{}
	}
	return ListResult{Items: items, Total: total}, nil
}

// Export serializes a document in the template file format.
func (s *Service) Export(ctx context.Context, id string) ([]byte, domain.Document, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return nil, domain.Document{}, err
	}
	data, err := json.MarshalIndent(rec.Document, "", "  ")
	if err != nil {
		return nil, domain.Document{}, fmt.Errorf("marshal document: %w", err)
	}
	return data, rec.Document, nil
}

// Delete removes a stored document and closes its session.
func (s *Service) Delete(ctx context.Context, id string) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Delete(txCtx, userID, id); err != nil {
			return fmt.Errorf("delete document: %w", err)
		}
		if _, err := s.audit.Create(txCtx, domain.NewAuditRecord(userID, id, domain.AuditDelete)); err != nil {
			return fmt.Errorf("create audit record: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.closeSession(id)

	s.publisher.Publish(ctx, domain.ChangeEvent{
		DocumentID: id,
		Command:    domain.EventDocumentDeleted,
		Origin:     ctxutil.ClientIDFromCtx(ctx),
		At:         time.Now().UTC(),
	})
	s.log.InfoContext(ctx, "document deleted",
		slog.String("user_id", userID.String()),
		slog.String("document_id", id),
	)
	return nil
}

// Activity returns the most recent audit records of a document.
func (s *Service) Activity(ctx context.Context, id string, limit int) ([]domain.AuditRecord, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if limit < 0 || limit > MaxLimit {
		return nil, domain.NewValidationError("limit", "must be between 0 and 200")
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	// Ownership check; the audit log itself is keyed by document only.
	if _, err := s.repo.GetByID(ctx, userID, id); err != nil {
		return nil, err
	}
	records, err := s.audit.ListByDocument(ctx, id, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit records: %w", err)
	}
	if records == nil {
		records = []domain.AuditRecord{}
	}
	return records, nil
}
