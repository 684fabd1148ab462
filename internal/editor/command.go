package editor

import (
	"errors"

	"github.com/heartmarshall/queue-backend/internal/domain"
)

type commandKind int

const (
	// kindMutation changes the document and records one history entry.
	kindMutation commandKind = iota + 1
	// kindLiveMutation changes the document without recording history,
	// for continuous edits that were preceded by an explicit capture.
	kindLiveMutation
	// kindSession changes only session settings.
	kindSession
	// kindHistory operates on the history stacks themselves.
	kindHistory
)

// Command is one editor operation. The set of commands is closed; build
// them as values of the exported command types or with Decode.
type Command interface {
	Name() string
	kind() commandKind
	apply(t *tx) (any, error)
}

// tx is the working state a command mutates.
type tx struct {
	doc      *domain.Document
	settings *Settings
	opts     Options
}

// page resolves a page id, defaulting to the active page.
func (t *tx) page(id string) (*domain.Page, error) {
	if id == "" {
		id = t.settings.PageID
	}
	return t.doc.Page(id)
}

// object finds an object anywhere in the document.
func (t *tx) object(id string) (*domain.Page, *domain.Object, error) {
	pageID, ok := t.doc.LocateObject(id)
	if !ok {
		return nil, nil, domain.NewNotFoundError("object", id)
	}
	p, err := t.doc.Page(pageID)
	if err != nil {
		return nil, nil, err
	}
	o, err := p.Object(id)
	if err != nil {
		return nil, nil, err
	}
	return p, o, nil
}

// switchPage makes id the active page and resets playback and selection.
func (t *tx) switchPage(id string) {
	t.settings.PageID = id
	t.settings.QueueIndex = 0
	t.settings.QueuePosition = QueuePause
	t.settings.SelectedObjectIDs = []string{}
}

func (t *tx) queueIndex(explicit *int) (int, error) {
	if explicit == nil {
		return t.settings.QueueIndex, nil
	}
	if *explicit < 0 {
		return 0, domain.NewValidationError("queueIndex", "must be >= 0")
	}
	return *explicit, nil
}

// ---------------------------------------------------------------------------
// History commands
//
// Execute runs these through Editor.runHistory; their apply is never called.
// ---------------------------------------------------------------------------

// CaptureHistory records the current document as an undo point, for a
// series of live UpdateObjects edits that follows. The next recorded
// mutation reuses a capture taken of an unchanged document, so capturing
// before it adds no second entry.
type CaptureHistory struct{}

func (CaptureHistory) Name() string           { return "captureHistory" }
func (CaptureHistory) kind() commandKind      { return kindHistory }
func (CaptureHistory) apply(*tx) (any, error) { return nil, errNotTransactional }

// Undo restores the previous document. With nothing to undo it is a no-op.
type Undo struct{}

func (Undo) Name() string           { return "undo" }
func (Undo) kind() commandKind      { return kindHistory }
func (Undo) apply(*tx) (any, error) { return nil, errNotTransactional }

// Redo re-applies an undone document. With nothing to redo it is a no-op.
type Redo struct{}

func (Redo) Name() string           { return "redo" }
func (Redo) kind() commandKind      { return kindHistory }
func (Redo) apply(*tx) (any, error) { return nil, errNotTransactional }

var errNotTransactional = errors.New("history commands do not run in a transaction")
