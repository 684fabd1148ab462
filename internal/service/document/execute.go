package document

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/queue-backend/internal/domain"
	"github.com/heartmarshall/queue-backend/internal/editor"
	"github.com/heartmarshall/queue-backend/internal/timeline"
	"github.com/heartmarshall/queue-backend/pkg/ctxutil"
)

// Execute decodes and applies one command to a document's session. When the
// command changed the document, the new state is saved. A save failure is
// returned, but the session keeps the applied state: subscribers still get
// the change event, marked unsaved, and the next successful save persists
// it.
func (s *Service) Execute(ctx context.Context, id, name string, payload json.RawMessage) (editor.Result, error) {
	cmd, err := editor.Decode(name, payload)
	if err != nil {
		return editor.Result{}, err
	}
	sess, err := s.session(ctx, id)
	if err != nil {
		return editor.Result{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	before := sess.ed.Version()
	res, err := sess.ed.Execute(ctx, cmd)
	if err != nil {
		return editor.Result{}, err
	}

	var saveErr error
	if res.Version != before {
		if saveErr = s.persist(ctx, sess, res); saveErr != nil {
			s.log.ErrorContext(ctx, "save document failed",
				slog.String("document_id", id),
				slog.String("command", name),
				slog.Uint64("version", res.Version),
				slog.String("error", saveErr.Error()),
			)
		}
	}

	if res.Applied {
		s.publisher.Publish(ctx, domain.ChangeEvent{
			DocumentID: id,
			Command:    res.Command,
			Version:    res.Version,
			CanUndo:    res.History.CanUndo,
			CanRedo:    res.History.CanRedo,
			Unsaved:    saveErr != nil,
			Origin:     ctxutil.ClientIDFromCtx(ctx),
			At:         time.Now().UTC(),
		})
	}
	if saveErr != nil {
		return editor.Result{}, saveErr
	}
	return res, nil
}

// persist saves the session's document together with an audit record of
// the command that produced it.
func (s *Service) persist(ctx context.Context, sess *session, res editor.Result) error {
	doc := sess.ed.Document()
	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Save(txCtx, sess.owner, doc); err != nil {
			return fmt.Errorf("save document: %w", err)
		}
		rec := domain.NewAuditRecord(sess.owner, doc.ID, domain.AuditCommand)
		rec.Command = res.Command
		rec.Version = int64(res.Version)
		if _, err := s.audit.Create(txCtx, rec); err != nil {
			return fmt.Errorf("create audit record: %w", err)
		}
		return nil
	})
}

// State returns the session settings, history status and version.
func (s *Service) State(ctx context.Context, id string) (editor.State, error) {
	sess, err := s.session(ctx, id)
	if err != nil {
		return editor.State{}, err
	}
	return sess.ed.State(), nil
}

// PageObjects returns the objects of a page. An empty pageID means the
// session's active page.
func (s *Service) PageObjects(ctx context.Context, id, pageID string) ([]domain.Object, error) {
	sess, err := s.session(ctx, id)
	if err != nil {
		return nil, err
	}
	return sess.ed.PageObjects(pageID)
}

// Selection returns the selected objects.
func (s *Service) Selection(ctx context.Context, id string) ([]domain.Object, error) {
	sess, err := s.session(ctx, id)
	if err != nil {
		return nil, err
	}
	return sess.ed.SelectedObjects(), nil
}

// Timeline returns the tracks of a page.
func (s *Service) Timeline(ctx context.Context, id, pageID string) (timeline.Tracks, error) {
	sess, err := s.session(ctx, id)
	if err != nil {
		return timeline.Tracks{}, err
	}
	return sess.ed.Tracks(pageID)
}

// Frame returns the object states on a page at index, or at the session's
// queue index when index is nil. An empty pageID means the active page.
func (s *Service) Frame(ctx context.Context, id, pageID string, index *int) ([]timeline.State, error) {
	sess, err := s.session(ctx, id)
	if err != nil {
		return nil, err
	}
	return sess.ed.Frame(pageID, index)
}
