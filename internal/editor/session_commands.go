package editor

import (
	"github.com/heartmarshall/queue-backend/internal/domain"
)

// SetQueueIndex moves the playhead. Play starts playback from there.
type SetQueueIndex struct {
	Index int  `json:"index"`
	Play  bool `json:"play"`
}

func (SetQueueIndex) Name() string      { return "setQueueIndex" }
func (SetQueueIndex) kind() commandKind { return kindSession }

func (c SetQueueIndex) apply(t *tx) (any, error) {
	if c.Index < 0 {
		return nil, domain.NewValidationError("index", "must be >= 0")
	}
	t.settings.QueueIndex = c.Index
	t.settings.QueuePosition = QueuePause
	if c.Play {
		t.settings.QueuePosition = QueuePlay
	}
	return t.settings.clone(), nil
}

// SelectObjects replaces the selection. Every id must be on the active page.
type SelectObjects struct {
	IDs []string `json:"ids"`
}

func (SelectObjects) Name() string      { return "selectObjects" }
func (SelectObjects) kind() commandKind { return kindSession }

func (c SelectObjects) apply(t *tx) (any, error) {
	p, err := t.page("")
	if err != nil {
		return nil, err
	}
	for _, id := range c.IDs {
		if _, ok := p.ObjectByID(id); !ok {
			return nil, domain.NewNotFoundError("object", id)
		}
	}
	t.settings.SelectedObjectIDs = filterSelection(*t.doc, p.ID, c.IDs)
	return t.settings.clone(), nil
}

// SetPage makes another page active, rewinding the playhead and clearing
// the selection.
type SetPage struct {
	PageID string `json:"pageId"`
}

func (SetPage) Name() string      { return "setPage" }
func (SetPage) kind() commandKind { return kindSession }

func (c SetPage) apply(t *tx) (any, error) {
	if _, ok := t.doc.PageByID(c.PageID); !ok {
		return nil, domain.NewNotFoundError("page", c.PageID)
	}
	t.switchPage(c.PageID)
	return t.settings.clone(), nil
}
