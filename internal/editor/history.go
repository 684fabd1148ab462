package editor

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/heartmarshall/queue-backend/internal/domain"
)

var snapshotEncMode = mustEncMode()

func mustEncMode() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("editor: cbor enc mode: %v", err))
	}
	return em
}

// HistoryStatus summarizes the undo/redo stacks.
type HistoryStatus struct {
	CanUndo  bool `json:"canUndo"`
	CanRedo  bool `json:"canRedo"`
	Previous int  `json:"previous"`
	Future   int  `json:"future"`
}

// History holds immutable document snapshots for undo and redo. Snapshots
// are stored CBOR-encoded so later edits to the live document can never
// reach them.
type History struct {
	previous [][]byte
	future   [][]byte
	limit    int
}

// NewHistory creates an empty history keeping at most limit undo entries.
// A limit of 0 keeps everything.
func NewHistory(limit int) *History {
	return &History{limit: limit}
}

// Capture records doc as an undo point and clears the redo stack.
func (h *History) Capture(doc domain.Document) error {
	snap, err := encodeSnapshot(doc)
	if err != nil {
		return err
	}
	h.previous = append(h.previous, snap)
	if h.limit > 0 && len(h.previous) > h.limit {
		h.previous = h.previous[len(h.previous)-h.limit:]
	}
	h.future = nil
	return nil
}

// Undo returns the most recent undo point and records current for redo.
// It reports false and leaves both stacks untouched when there is nothing
// to undo.
func (h *History) Undo(current domain.Document) (domain.Document, bool, error) {
	return h.step(&h.previous, &h.future, current)
}

// Redo is the inverse of Undo.
func (h *History) Redo(current domain.Document) (domain.Document, bool, error) {
	return h.step(&h.future, &h.previous, current)
}

func (h *History) step(from, to *[][]byte, current domain.Document) (domain.Document, bool, error) {
	if len(*from) == 0 {
		return domain.Document{}, false, nil
	}
	top := (*from)[len(*from)-1]
	doc, err := decodeSnapshot(top)
	if err != nil {
		return domain.Document{}, false, err
	}
	snap, err := encodeSnapshot(current)
	if err != nil {
		return domain.Document{}, false, err
	}
	*from = (*from)[:len(*from)-1]
	*to = append(*to, snap)
	return doc, true, nil
}

// Status reports the stack sizes.
func (h *History) Status() HistoryStatus {
	return HistoryStatus{
		CanUndo:  len(h.previous) > 0,
		CanRedo:  len(h.future) > 0,
		Previous: len(h.previous),
		Future:   len(h.future),
	}
}

// Clear drops every snapshot.
func (h *History) Clear() {
	h.previous = nil
	h.future = nil
}

func encodeSnapshot(doc domain.Document) ([]byte, error) {
	b, err := snapshotEncMode.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return b, nil
}

func decodeSnapshot(b []byte) (domain.Document, error) {
	var doc domain.Document
	if err := cbor.Unmarshal(b, &doc); err != nil {
		return domain.Document{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return doc, nil
}
