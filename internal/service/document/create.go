package document

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/queue-backend/internal/domain"
	"github.com/heartmarshall/queue-backend/pkg/ctxutil"
)

// CreateDocument creates a blank document, or one built from a catalogue
// template, and stores it for the caller.
func (s *Service) CreateDocument(ctx context.Context, input CreateDocumentInput) (domain.DocumentRecord, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.DocumentRecord{}, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return domain.DocumentRecord{}, err
	}

	var doc domain.Document
	if input.Template != "" {
		var err error
		doc, err = s.fromTemplate(ctx, input.Template)
		if err != nil {
			return domain.DocumentRecord{}, err
		}
		if name := strings.TrimSpace(input.Name); name != "" {
			doc.DocumentName = name
		}
	} else {
		width, height := input.Width, input.Height
		if width == 0 {
			width = float64(s.editorCfg.DefaultWidth)
		}
		if height == 0 {
			height = float64(s.editorCfg.DefaultHeight)
		}
		doc = domain.NewDocument(input.Name, domain.DocumentRect{Width: width, Height: height, Fill: input.Fill})
	}

	rec, err := s.store(ctx, userID, doc, domain.AuditCreate)
	if err != nil {
		return domain.DocumentRecord{}, err
	}

	s.log.InfoContext(ctx, "document created",
		slog.String("user_id", userID.String()),
		slog.String("document_id", rec.Document.ID),
		slog.String("template", input.Template),
	)
	return rec, nil
}

// Import stores a serialized document as is, keeping its ids. The document
// is stored only if it parses and validates completely.
func (s *Service) Import(ctx context.Context, data []byte) (domain.DocumentRecord, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.DocumentRecord{}, domain.ErrUnauthorized
	}

	doc, err := domain.ParseDocument(data)
	if err != nil {
		return domain.DocumentRecord{}, err
	}

	rec, err := s.store(ctx, userID, doc, domain.AuditImport)
	if err != nil {
		return domain.DocumentRecord{}, err
	}

	s.log.InfoContext(ctx, "document imported",
		slog.String("user_id", userID.String()),
		slog.String("document_id", rec.Document.ID),
		slog.Int("pages", len(doc.Pages)),
	)
	return rec, nil
}

// Templates lists the names of the configured templates.
func (s *Service) Templates() []string {
	names := make([]string, 0, len(s.catalog.Catalog))
	for _, t := range s.catalog.Catalog {
		names = append(names, t.Name)
	}
	return names
}

// fromTemplate fetches a template and gives it fresh ids so every document
// created from it is independent.
func (s *Service) fromTemplate(ctx context.Context, name string) (domain.Document, error) {
	src, ok := s.catalog.Template(name)
	if !ok {
		return domain.Document{}, domain.NewNotFoundError("template", name)
	}
	doc, err := s.templates.Fetch(ctx, src.Location)
	if err != nil {
		return domain.Document{}, fmt.Errorf("fetch template %s: %w", name, err)
	}
	return doc.Reidentify(), nil
}

// store inserts the document and its first audit record in one transaction.
func (s *Service) store(ctx context.Context, userID uuid.UUID, doc domain.Document, action domain.AuditAction) (domain.DocumentRecord, error) {
	now := time.Now().UTC()
	var rec domain.DocumentRecord
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		rec, err = s.repo.Create(txCtx, domain.DocumentRecord{
			Document:  doc,
			OwnerID:   userID,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return fmt.Errorf("create document: %w", err)
		}
		if _, err := s.audit.Create(txCtx, domain.NewAuditRecord(userID, doc.ID, action)); err != nil {
			return fmt.Errorf("create audit record: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.DocumentRecord{}, err
	}
	return rec, nil
}
