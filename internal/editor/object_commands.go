package editor

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/heartmarshall/queue-backend/internal/domain"
)

// CreateObject adds a new object centred on a page, with a create effect at
// the given queue index, and selects it.
type CreateObject struct {
	PageID     string            `json:"pageId,omitempty"`
	Type       domain.ObjectType `json:"type"`
	IconType   string            `json:"iconType,omitempty"`
	Text       string            `json:"text,omitempty"`
	QueueIndex *int              `json:"queueIndex,omitempty"`
}

func (CreateObject) Name() string      { return "createObject" }
func (CreateObject) kind() commandKind { return kindMutation }

func (c CreateObject) apply(t *tx) (any, error) {
	p, err := t.page(c.PageID)
	if err != nil {
		return nil, err
	}
	index, err := t.queueIndex(c.QueueIndex)
	if err != nil {
		return nil, err
	}
	o, err := domain.NewObject(c.Type, p.Bounds, index, domain.ObjectOptions{IconType: c.IconType, Text: c.Text})
	if err != nil {
		return nil, err
	}
	p.Objects = append(p.Objects, o)
	if p.ID == t.settings.PageID {
		t.settings.SelectedObjectIDs = []string{o.ID}
	}
	return o, nil
}

// ObjectUpdate is the change set for one object.
type ObjectUpdate struct {
	ID      string             `json:"id"`
	Changes domain.ObjectPatch `json:"changes"`
}

// UpdateObjects merges property changes into several objects at once. All
// updates apply or none do. With Capture set to false the change is not
// recorded in history; send CaptureHistory first to make it undoable.
type UpdateObjects struct {
	Updates []ObjectUpdate `json:"updates"`
	Capture *bool          `json:"capture,omitempty"`
}

func (UpdateObjects) Name() string { return "updateObjects" }

func (c UpdateObjects) kind() commandKind {
	if c.Capture != nil && !*c.Capture {
		return kindLiveMutation
	}
	return kindMutation
}

func (c UpdateObjects) apply(t *tx) (any, error) {
	if len(c.Updates) == 0 {
		return nil, domain.NewValidationError("updates", "at least one update required")
	}
	updated := make([]domain.Object, 0, len(c.Updates))
	for i, u := range c.Updates {
		_, o, err := t.object(u.ID)
		if err != nil {
			return nil, fmt.Errorf("update %d: %w", i, err)
		}
		if err := o.Apply(u.Changes); err != nil {
			return nil, fmt.Errorf("update %d: %w", i, err)
		}
		updated = append(updated, o.Clone())
	}
	return updated, nil
}

// Duplicate copies objects with fresh ids and places every copy right after
// its original. Duplicating a group copies its members too. The copies of
// the requested objects become the selection. It is one history entry no
// matter how many objects are copied.
type Duplicate struct {
	IDs []string `json:"ids"`
}

func (Duplicate) Name() string      { return "duplicate" }
func (Duplicate) kind() commandKind { return kindMutation }

func (c Duplicate) apply(t *tx) (any, error) {
	if len(c.IDs) == 0 {
		return nil, domain.NewValidationError("ids", "at least one object required")
	}

	byPage := make(map[string][]string)
	var pageOrder []string
	for _, id := range c.IDs {
		pageID, ok := t.doc.LocateObject(id)
		if !ok {
			return nil, domain.NewNotFoundError("object", id)
		}
		if _, seen := byPage[pageID]; !seen {
			pageOrder = append(pageOrder, pageID)
		}
		if !slices.Contains(byPage[pageID], id) {
			byPage[pageID] = append(byPage[pageID], id)
		}
	}

	remap := make(map[string]string)
	for _, pageID := range pageOrder {
		p, err := t.doc.Page(pageID)
		if err != nil {
			return nil, err
		}
		duplicateOnPage(p, withMembers(*p, byPage[pageID]), remap)
	}

	copies := make([]string, 0, len(c.IDs))
	for _, id := range c.IDs {
		if n, ok := remap[id]; ok && !slices.Contains(copies, n) {
			copies = append(copies, n)
		}
	}
	if slices.Contains(pageOrder, t.settings.PageID) {
		t.settings.SelectedObjectIDs = copies
	}
	return copies, nil
}

// withMembers expands group ids to include their members, recursively.
func withMembers(p domain.Page, ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	var add func(id string)
	add = func(id string) {
		if _, ok := set[id]; ok {
			return
		}
		set[id] = struct{}{}
		if i, ok := p.ObjectByID(id); ok {
			for _, child := range p.Objects[i].Children {
				add(child)
			}
		}
	}
	for _, id := range ids {
		add(id)
	}
	return set
}

func duplicateOnPage(p *domain.Page, set map[string]struct{}, remap map[string]string) {
	for id := range set {
		remap[id] = uuid.NewString()
	}
	out := make([]domain.Object, 0, len(p.Objects)+len(set))
	for _, o := range p.Objects {
		out = append(out, o)
		if _, ok := set[o.ID]; !ok {
			continue
		}
		cp := o.Clone()
		cp.ID = remap[o.ID]
		for i, child := range cp.Children {
			if n, ok := remap[child]; ok {
				cp.Children[i] = n
			}
		}
		for i := range cp.Effects {
			cp.Effects[i].ID = uuid.NewString()
			cp.Effects[i].ObjectID = cp.ID
		}
		out = append(out, cp)
	}
	p.Objects = out
}

// RemoveObjects deletes objects and their effects. Groups left with fewer
// than two members are dissolved.
type RemoveObjects struct {
	IDs []string `json:"ids"`
}

func (RemoveObjects) Name() string      { return "removeObjects" }
func (RemoveObjects) kind() commandKind { return kindMutation }

func (c RemoveObjects) apply(t *tx) (any, error) {
	if len(c.IDs) == 0 {
		return nil, domain.NewValidationError("ids", "at least one object required")
	}
	byPage := make(map[string][]string)
	for _, id := range c.IDs {
		pageID, ok := t.doc.LocateObject(id)
		if !ok {
			return nil, domain.NewNotFoundError("object", id)
		}
		byPage[pageID] = append(byPage[pageID], id)
	}
	removed := []string{}
	for _, p := range t.doc.Pages {
		ids, ok := byPage[p.ID]
		if !ok {
			continue
		}
		page, err := t.doc.Page(p.ID)
		if err != nil {
			return nil, err
		}
		removed = append(removed, page.RemoveObjects(ids)...)
	}
	return removed, nil
}

// GroupObjects wraps objects of one page into a new group placed after
// them, and selects the group.
type GroupObjects struct {
	IDs        []string `json:"ids"`
	QueueIndex *int     `json:"queueIndex,omitempty"`
}

func (GroupObjects) Name() string      { return "groupObjects" }
func (GroupObjects) kind() commandKind { return kindMutation }

func (c GroupObjects) apply(t *tx) (any, error) {
	if len(c.IDs) < 2 {
		return nil, domain.NewValidationError("ids", "a group needs at least two objects")
	}
	index, err := t.queueIndex(c.QueueIndex)
	if err != nil {
		return nil, err
	}

	var page *domain.Page
	members := make([]domain.Object, 0, len(c.IDs))
	last := -1
	for _, id := range c.IDs {
		p, o, err := t.object(id)
		if err != nil {
			return nil, err
		}
		if page != nil && p.ID != page.ID {
			return nil, domain.NewInvalidOperationError("groupObjects", "objects must be on the same page")
		}
		page = p
		if g, ok := p.GroupOf(id); ok {
			return nil, domain.NewInvalidOperationError("groupObjects", fmt.Sprintf("object %q already belongs to group %q", id, g))
		}
		if slices.ContainsFunc(members, func(m domain.Object) bool { return m.ID == id }) {
			continue
		}
		members = append(members, o.Clone())
		i, _ := p.ObjectByID(id)
		last = max(last, i)
	}
	g, err := domain.NewGroup(members, index)
	if err != nil {
		return nil, err
	}
	page.Objects = slices.Insert(page.Objects, last+1, g)
	if page.ID == t.settings.PageID {
		t.settings.SelectedObjectIDs = []string{g.ID}
	}
	return g, nil
}

// UngroupObject dissolves a group. Its members stay where they are and
// join the enclosing group, if any.
type UngroupObject struct {
	ID string `json:"id"`
}

func (UngroupObject) Name() string      { return "ungroupObject" }
func (UngroupObject) kind() commandKind { return kindMutation }

func (c UngroupObject) apply(t *tx) (any, error) {
	p, o, err := t.object(c.ID)
	if err != nil {
		return nil, err
	}
	if o.Type != domain.ObjectGroup {
		return nil, domain.NewInvalidOperationError("ungroupObject", fmt.Sprintf("object %q is not a group", c.ID))
	}
	children := slices.Clone(o.Children)
	if parentID, ok := p.GroupOf(c.ID); ok {
		parent, err := p.Object(parentID)
		if err != nil {
			return nil, err
		}
		i := slices.Index(parent.Children, c.ID)
		parent.Children = slices.Replace(parent.Children, i, i+1, children...)
	}
	i, _ := p.ObjectByID(c.ID)
	p.Objects = slices.Delete(p.Objects, i, i+1)
	if p.ID == t.settings.PageID {
		t.settings.SelectedObjectIDs = children
	}
	return children, nil
}
