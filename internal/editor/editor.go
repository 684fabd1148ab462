// Package editor owns a document being edited. Every change goes through
// Execute, which applies a command to a working copy and commits it
// together with exactly one history entry, or not at all.
package editor

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/heartmarshall/queue-backend/internal/domain"
	"github.com/heartmarshall/queue-backend/internal/timeline"
)

// QueuePosition is the playback state of a session.
type QueuePosition string

const (
	QueuePause QueuePosition = "pause"
	QueuePlay  QueuePosition = "play"
)

// Settings is the per-session view state. It is not part of history.
type Settings struct {
	PageID            string        `json:"pageId"`
	QueueIndex        int           `json:"queueIndex"`
	QueuePosition     QueuePosition `json:"queuePosition"`
	SelectedObjectIDs []string      `json:"selectedObjectIds"`
}

func (s Settings) clone() Settings {
	s.SelectedObjectIDs = slices.Clone(s.SelectedObjectIDs)
	if s.SelectedObjectIDs == nil {
		s.SelectedObjectIDs = []string{}
	}
	return s
}

// Options configures an Editor.
type Options struct {
	// MaxQueueIndex is the display length of the timeline. The model itself
	// accepts any non-negative index.
	MaxQueueIndex int
	// HistoryLimit caps the undo stack; 0 keeps everything.
	HistoryLimit int
	// AllowEmptyDocument lets the last page be removed.
	AllowEmptyDocument bool
}

// DefaultOptions mirrors the configuration defaults.
func DefaultOptions() Options {
	return Options{MaxQueueIndex: 50, HistoryLimit: 100}
}

// Result describes the outcome of one command.
type Result struct {
	Command string        `json:"command"`
	Applied bool          `json:"applied"`
	Value   any           `json:"value,omitempty"`
	Version uint64        `json:"version"`
	History HistoryStatus `json:"history"`
}

// Editor is the single owner of one live document, its session settings
// and its history. It is safe for concurrent use; commands are serialized.
type Editor struct {
	mu       sync.Mutex
	doc      domain.Document
	settings Settings
	history  *History
	version  uint64
	// armed is set while the newest undo point is an explicit capture of
	// the current document; the next recorded mutation reuses it.
	armed  bool
	opts   Options
	tracks *timeline.Cache
	log    *slog.Logger
}

// New creates an editor for doc. The document is copied.
func New(log *slog.Logger, doc domain.Document, opts Options) *Editor {
	e := &Editor{
		doc:      doc.Clone(),
		settings: Settings{QueuePosition: QueuePause, SelectedObjectIDs: []string{}},
		history:  NewHistory(opts.HistoryLimit),
		opts:     opts,
		tracks:   timeline.NewCache(),
		log:      log.With("component", "editor", "document_id", doc.ID),
	}
	e.reconcile()
	return e
}

// Execute applies cmd. Document mutations are all-or-nothing: on error the
// document, settings and history are left exactly as they were.
func (e *Editor) Execute(ctx context.Context, cmd Command) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	res := Result{Command: cmd.Name()}
	var err error

	switch cmd.kind() {
	case kindHistory:
		res.Applied, err = e.runHistory(cmd)
	case kindSession:
		res.Value, err = e.runSession(cmd)
		res.Applied = err == nil
	case kindMutation:
		res.Value, err = e.transact(cmd, true)
		res.Applied = err == nil
	case kindLiveMutation:
		res.Value, err = e.transact(cmd, false)
		res.Applied = err == nil
	default:
		err = fmt.Errorf("execute %s: unknown command kind", cmd.Name())
	}
	if err != nil {
		e.log.DebugContext(ctx, "command rejected", slog.String("command", cmd.Name()), slog.String("error", err.Error()))
		return Result{}, err
	}

	res.Version = e.version
	res.History = e.history.Status()
	e.log.DebugContext(ctx, "command applied",
		slog.String("command", cmd.Name()),
		slog.Bool("applied", res.Applied),
		slog.Uint64("version", e.version),
	)
	return res, nil
}

// transact applies a document mutation to a working copy. The previous
// document is captured only once the mutation has succeeded.
func (e *Editor) transact(cmd Command, capture bool) (any, error) {
	work := e.doc.Clone()
	settings := e.settings.clone()
	t := &tx{doc: &work, settings: &settings, opts: e.opts}

	value, err := cmd.apply(t)
	if err != nil {
		return nil, err
	}
	if capture && !e.armed {
		if err := e.history.Capture(e.doc); err != nil {
			return nil, fmt.Errorf("%s: capture: %w", cmd.Name(), err)
		}
	}
	e.armed = false
	e.doc = work
	e.settings = settings
	e.version++
	e.reconcile()
	return value, nil
}

func (e *Editor) runSession(cmd Command) (any, error) {
	settings := e.settings.clone()
	doc := e.doc
	t := &tx{doc: &doc, settings: &settings, opts: e.opts}
	value, err := cmd.apply(t)
	if err != nil {
		return nil, err
	}
	e.settings = settings
	return value, nil
}

func (e *Editor) runHistory(cmd Command) (bool, error) {
	switch cmd.(type) {
	case CaptureHistory:
		if e.armed {
			return true, nil
		}
		if err := e.history.Capture(e.doc); err != nil {
			return false, fmt.Errorf("%s: %w", cmd.Name(), err)
		}
		e.armed = true
		return true, nil
	case Undo:
		return e.restore(e.history.Undo)
	case Redo:
		return e.restore(e.history.Redo)
	}
	return false, fmt.Errorf("%s: not a history command", cmd.Name())
}

func (e *Editor) restore(step func(domain.Document) (domain.Document, bool, error)) (bool, error) {
	doc, ok, err := step(e.doc)
	if err != nil || !ok {
		return false, err
	}
	e.doc = doc
	e.armed = false
	e.version++
	e.reconcile()
	return true, nil
}

// reconcile keeps settings pointing at things that exist: the active page
// falls back to the first page and the selection drops objects that are
// gone from it.
func (e *Editor) reconcile() {
	if _, ok := e.doc.PageByID(e.settings.PageID); !ok {
		e.settings.PageID = ""
		if len(e.doc.Pages) > 0 {
			e.settings.PageID = e.doc.Pages[0].ID
		}
	}
	e.settings.SelectedObjectIDs = filterSelection(e.doc, e.settings.PageID, e.settings.SelectedObjectIDs)
}

func filterSelection(doc domain.Document, pageID string, ids []string) []string {
	out := []string{}
	i, ok := doc.PageByID(pageID)
	if !ok {
		return out
	}
	page := doc.Pages[i]
	for _, id := range ids {
		if _, ok := page.ObjectByID(id); ok && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// Selectors
// ---------------------------------------------------------------------------

// Document returns a copy of the live document.
func (e *Editor) Document() domain.Document {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc.Clone()
}

// Settings returns a copy of the session settings.
func (e *Editor) Settings() Settings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings.clone()
}

// Version is incremented by every change to the document.
func (e *Editor) Version() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.version
}

// HistoryStatus reports whether undo and redo are available.
func (e *Editor) HistoryStatus() HistoryStatus {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.Status()
}

// State bundles settings, history status and version read under one lock.
type State struct {
	DocumentID string        `json:"documentId"`
	Settings   Settings      `json:"settings"`
	History    HistoryStatus `json:"history"`
	Version    uint64        `json:"version"`
}

// State returns a consistent snapshot of the session state.
func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return State{
		DocumentID: e.doc.ID,
		Settings:   e.settings.clone(),
		History:    e.history.Status(),
		Version:    e.version,
	}
}

// CurrentPage returns the active page.
func (e *Editor) CurrentPage() (domain.Page, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	i, ok := e.doc.PageByID(e.settings.PageID)
	if !ok {
		return domain.Page{}, false
	}
	return e.doc.Pages[i].Clone(), true
}

// PageObjects returns the objects of a page; an empty pageID means the
// active page.
func (e *Editor) PageObjects(pageID string) ([]domain.Object, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	p, err := e.pageLocked(pageID)
	if err != nil {
		return nil, err
	}
	return p.Clone().Objects, nil
}

// SelectedObjects returns the selected objects in selection order.
func (e *Editor) SelectedObjects() []domain.Object {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := []domain.Object{}
	p, err := e.pageLocked("")
	if err != nil {
		return out
	}
	for _, id := range e.settings.SelectedObjectIDs {
		if i, ok := p.ObjectByID(id); ok {
			out = append(out, p.Objects[i].Clone())
		}
	}
	return out
}

// Frame returns the states of the objects present on a page at index. A
// nil index means the session's current queue index.
func (e *Editor) Frame(pageID string, index *int) ([]timeline.State, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	p, err := e.pageLocked(pageID)
	if err != nil {
		return nil, err
	}
	at := e.settings.QueueIndex
	if index != nil {
		if *index < 0 {
			return nil, domain.NewValidationError("index", "must be >= 0")
		}
		at = *index
	}
	return timeline.ResolveStates(p.Objects, at), nil
}

// Tracks returns the timeline tracks of a page, cached per document version.
func (e *Editor) Tracks(pageID string) (timeline.Tracks, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	p, err := e.pageLocked(pageID)
	if err != nil {
		return timeline.Tracks{}, err
	}
	return e.tracks.Get(e.version, p.ID, func() timeline.Tracks {
		return timeline.DeriveTracks(p.Objects, e.opts.MaxQueueIndex)
	}), nil
}

func (e *Editor) pageLocked(pageID string) (domain.Page, error) {
	if pageID == "" {
		pageID = e.settings.PageID
	}
	i, ok := e.doc.PageByID(pageID)
	if !ok {
		return domain.Page{}, domain.NewNotFoundError("page", pageID)
	}
	return e.doc.Pages[i], nil
}
