package editor

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/queue-backend/internal/domain"
)

// AddPage inserts an empty page and makes it active.
type AddPage struct {
	DocumentID string `json:"documentId,omitempty"`
	ID         string `json:"id,omitempty"`
	// Index defaults to the end of the document and is clamped to range.
	Index    *int   `json:"index,omitempty"`
	PageName string `json:"pageName,omitempty"`
}

func (AddPage) Name() string      { return "addPage" }
func (AddPage) kind() commandKind { return kindMutation }

func (c AddPage) apply(t *tx) (any, error) {
	if c.DocumentID != "" && c.DocumentID != t.doc.ID {
		return nil, domain.NewNotFoundError("document", c.DocumentID)
	}
	id := c.ID
	if id == "" {
		id = uuid.NewString()
	} else if t.doc.HasID(id) {
		return nil, fmt.Errorf("add page: id %q: %w", id, domain.ErrAlreadyExists)
	}
	name := c.PageName
	if name == "" {
		name = domain.DefaultPageName(len(t.doc.Pages))
	}
	index := len(t.doc.Pages)
	if c.Index != nil {
		index = *c.Index
	}

	p := domain.NewPage(t.doc.ID, name, t.doc.DocumentRect.Bounds())
	p.ID = id
	at := t.doc.InsertPage(index, p)
	t.switchPage(id)
	return t.doc.Pages[at], nil
}

// RemovePageResult reports which page became active after a removal.
type RemovePageResult struct {
	RemovedPageID string `json:"removedPageId"`
	ActivePageID  string `json:"activePageId"`
}

// RemovePage deletes a page with its objects and effects. If it was the
// active page, the page that moved into its position becomes active, or
// the last page when it was the last one.
type RemovePage struct {
	ID string `json:"id"`
}

func (RemovePage) Name() string      { return "removePage" }
func (RemovePage) kind() commandKind { return kindMutation }

func (c RemovePage) apply(t *tx) (any, error) {
	if _, ok := t.doc.PageByID(c.ID); !ok {
		return nil, domain.NewNotFoundError("page", c.ID)
	}
	if len(t.doc.Pages) == 1 && !t.opts.AllowEmptyDocument {
		return nil, domain.NewInvalidOperationError("removePage", "a document must keep at least one page")
	}

	pos, err := t.doc.RemovePage(c.ID)
	if err != nil {
		return nil, err
	}
	if t.settings.PageID == c.ID {
		fallback := ""
		switch {
		case pos < len(t.doc.Pages):
			fallback = t.doc.Pages[pos].ID
		case len(t.doc.Pages) > 0:
			fallback = t.doc.Pages[len(t.doc.Pages)-1].ID
		}
		t.switchPage(fallback)
	}
	return RemovePageResult{RemovedPageID: c.ID, ActivePageID: t.settings.PageID}, nil
}

// UpdatePage renames a page or changes its bounds.
type UpdatePage struct {
	ID      string             `json:"id"`
	Changes domain.PageChanges `json:"changes"`
}

func (UpdatePage) Name() string      { return "updatePage" }
func (UpdatePage) kind() commandKind { return kindMutation }

func (c UpdatePage) apply(t *tx) (any, error) {
	p, err := t.doc.Page(c.ID)
	if err != nil {
		return nil, err
	}
	if err := p.Apply(c.Changes); err != nil {
		return nil, err
	}
	return *p, nil
}

// CopyPage inserts a deep copy of a page with fresh ids. Index defaults to
// right after the source page.
type CopyPage struct {
	FromID string `json:"fromId"`
	Index  *int   `json:"index,omitempty"`
	NewID  string `json:"newId,omitempty"`
}

func (CopyPage) Name() string      { return "copyPage" }
func (CopyPage) kind() commandKind { return kindMutation }

func (c CopyPage) apply(t *tx) (any, error) {
	src, ok := t.doc.PageByID(c.FromID)
	if !ok {
		return nil, domain.NewNotFoundError("page", c.FromID)
	}
	index := src + 1
	if c.Index != nil {
		index = *c.Index
	}
	return t.doc.CopyPage(c.FromID, index, c.NewID)
}

// SwitchPageIndex moves page From to the position currently held by page To.
type SwitchPageIndex struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (SwitchPageIndex) Name() string      { return "switchPageIndex" }
func (SwitchPageIndex) kind() commandKind { return kindMutation }

func (c SwitchPageIndex) apply(t *tx) (any, error) {
	if err := t.doc.MovePage(c.From, c.To); err != nil {
		return nil, err
	}
	ids := make([]string, len(t.doc.Pages))
	for i, p := range t.doc.Pages {
		ids[i] = p.ID
	}
	return ids, nil
}
