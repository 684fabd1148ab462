package document

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/queue-backend/internal/config"
	"github.com/heartmarshall/queue-backend/internal/domain"
	"github.com/heartmarshall/queue-backend/internal/editor"
	"github.com/heartmarshall/queue-backend/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type documentRepo interface {
	Create(ctx context.Context, rec domain.DocumentRecord) (domain.DocumentRecord, error)
	GetByID(ctx context.Context, ownerID uuid.UUID, id string) (domain.DocumentRecord, error)
	Save(ctx context.Context, ownerID uuid.UUID, doc domain.Document) error
	Delete(ctx context.Context, ownerID uuid.UUID, id string) error
	List(ctx context.Context, ownerID uuid.UUID, filter domain.DocumentFilter) ([]domain.DocumentSummary, int, error)
}

type auditRepo interface {
	Create(ctx context.Context, rec domain.AuditRecord) (domain.AuditRecord, error)
	ListByDocument(ctx context.Context, documentID string, limit int) ([]domain.AuditRecord, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type templateProvider interface {
	Fetch(ctx context.Context, location string) (domain.Document, error)
}

type eventPublisher interface {
	Publish(ctx context.Context, ev domain.ChangeEvent)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service manages stored documents and the live editing sessions opened on
// them. A document has at most one session; it is loaded on first use and
// every applied command is saved back and published.
type Service struct {
	log       *slog.Logger
	repo      documentRepo
	audit     auditRepo
	tx        txManager
	templates templateProvider
	publisher eventPublisher
	editorCfg config.EditorConfig
	catalog   config.TemplatesConfig

	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	owner uuid.UUID
	ed    *editor.Editor

	// mu orders execute+save so saves reach storage in command order.
	mu sync.Mutex
}

// NewService creates a new Document service.
func NewService(
	logger *slog.Logger,
	repo documentRepo,
	audit auditRepo,
	tx txManager,
	templates templateProvider,
	publisher eventPublisher,
	editorCfg config.EditorConfig,
	catalog config.TemplatesConfig,
) *Service {
	return &Service{
		log:       logger.With("service", "document"),
		repo:      repo,
		audit:     audit,
		tx:        tx,
		templates: templates,
		publisher: publisher,
		editorCfg: editorCfg,
		catalog:   catalog,
		sessions:  make(map[string]*session),
	}
}

func (s *Service) editorOptions() editor.Options {
	return editor.Options{
		MaxQueueIndex:      s.editorCfg.MaxQueueIndex,
		HistoryLimit:       s.editorCfg.HistoryLimit,
		AllowEmptyDocument: s.editorCfg.AllowEmptyDocument,
	}
}

// ---------------------------------------------------------------------------
// Sessions
// ---------------------------------------------------------------------------

// session returns the open session for id, loading the document from the
// repository when needed. Documents of other users are reported as not found.
func (s *Service) session(ctx context.Context, id string) (*session, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if id == "" {
		return nil, domain.NewValidationError("id", "required")
	}

	s.mu.Lock()
	sess, ok := s.sessions[id]
	s.mu.Unlock()
	if ok {
		if sess.owner != userID {
			return nil, domain.NewNotFoundError("document", id)
		}
		return sess, nil
	}

	rec, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Another request may have opened it while we were loading.
	if sess, ok := s.sessions[id]; ok {
		if sess.owner != userID {
			return nil, domain.NewNotFoundError("document", id)
		}
		return sess, nil
	}
	sess = &session{
		owner: userID,
		ed:    editor.New(s.log, rec.Document, s.editorOptions()),
	}
	s.sessions[id] = sess

	s.log.InfoContext(ctx, "session opened",
		slog.String("user_id", userID.String()),
		slog.String("document_id", id),
	)
	return sess, nil
}

func (s *Service) closeSession(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// OpenSessions reports how many documents are being edited.
func (s *Service) OpenSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
