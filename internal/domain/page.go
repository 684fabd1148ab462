package domain

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Page is an ordered slide of a document. Index always equals the page's
// position in Document.Pages.
type Page struct {
	ID         string   `json:"id"`
	DocumentID string   `json:"documentId"`
	PageName   string   `json:"pageName"`
	Index      int      `json:"index"`
	Bounds     Rect     `json:"bounds"`
	Objects    []Object `json:"objects"`
}

// DefaultPageName is the name given to the page at position n (0-based).
func DefaultPageName(n int) string {
	return fmt.Sprintf("Page-%d", n+1)
}

// NewPage creates an empty page.
func NewPage(documentID, name string, bounds Rect) Page {
	return Page{
		ID:         uuid.NewString(),
		DocumentID: documentID,
		PageName:   name,
		Bounds:     bounds,
		Objects:    []Object{},
	}
}

// PageChanges is a partial update of a page.
type PageChanges struct {
	PageName *string `json:"pageName,omitempty"`
	Bounds   *Rect   `json:"bounds,omitempty"`
}

// Apply merges the changes into p.
func (p *Page) Apply(c PageChanges) error {
	var fe fieldErrors
	name := p.PageName
	if c.PageName != nil {
		name = strings.TrimSpace(*c.PageName)
		if name == "" {
			fe.add("pageName", "required")
		}
	}
	bounds := p.Bounds
	if c.Bounds != nil {
		bounds = *c.Bounds
		fe.merge("bounds", bounds.Validate())
	}
	if err := fe.err(); err != nil {
		return err
	}
	p.PageName = name
	p.Bounds = bounds
	return nil
}

// Clone returns a deep copy of p.
func (p Page) Clone() Page {
	c := p
	if p.Objects != nil {
		c.Objects = make([]Object, len(p.Objects))
		for i, o := range p.Objects {
			c.Objects[i] = o.Clone()
		}
	}
	return c
}

// ObjectByID returns the position of the object with the given id.
func (p Page) ObjectByID(id string) (int, bool) {
	for i, o := range p.Objects {
		if o.ID == id {
			return i, true
		}
	}
	return -1, false
}

// Object returns a pointer into Objects for in-place edits.
func (p *Page) Object(id string) (*Object, error) {
	i, ok := p.ObjectByID(id)
	if !ok {
		return nil, NewNotFoundError("object", id)
	}
	return &p.Objects[i], nil
}

// GroupOf returns the group that lists id among its children.
func (p Page) GroupOf(id string) (string, bool) {
	for _, o := range p.Objects {
		if o.Type == ObjectGroup && slices.Contains(o.Children, id) {
			return o.ID, true
		}
	}
	return "", false
}

// RemoveObjects deletes the given objects and their effects. Removed
// objects are dropped from group children; groups left with fewer than two
// children are dissolved. The ids of every removed object are returned.
func (p *Page) RemoveObjects(ids []string) []string {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	for {
		changed := false
		for i := range p.Objects {
			o := &p.Objects[i]
			if o.Type != ObjectGroup {
				continue
			}
			if _, gone := drop[o.ID]; gone {
				continue
			}
			o.Children = slices.DeleteFunc(o.Children, func(c string) bool {
				_, gone := drop[c]
				return gone
			})
			if len(o.Children) < 2 {
				drop[o.ID] = struct{}{}
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	var removed []string
	p.Objects = slices.DeleteFunc(p.Objects, func(o Object) bool {
		if _, gone := drop[o.ID]; gone {
			removed = append(removed, o.ID)
			return true
		}
		return false
	})
	return removed
}

// Validate checks the page and its objects. documentID is the owning
// document's id.
func (p Page) Validate(documentID string) []FieldError {
	var fe fieldErrors
	if p.ID == "" {
		fe.add("id", "required")
	}
	if p.DocumentID != documentID {
		fe.add("documentId", fmt.Sprintf("must match document id %q", documentID))
	}
	if strings.TrimSpace(p.PageName) == "" {
		fe.add("pageName", "required")
	}
	fe.merge("bounds", p.Bounds.Validate())

	onPage := make(map[string]ObjectType, len(p.Objects))
	for _, o := range p.Objects {
		onPage[o.ID] = o.Type
	}
	member := make(map[string]string)
	for i, o := range p.Objects {
		prefix := fmt.Sprintf("objects[%d]", i)
		fe.merge(prefix, o.Validate())
		if o.Type != ObjectGroup {
			continue
		}
		if len(o.Children) < 2 {
			fe.add(prefix+".children", "a group needs at least two objects")
		}
		for _, c := range o.Children {
			if c == o.ID {
				fe.add(prefix+".children", "a group cannot contain itself")
				continue
			}
			if _, ok := onPage[c]; !ok {
				fe.add(prefix+".children", fmt.Sprintf("object %q is not on this page", c))
				continue
			}
			if g, dup := member[c]; dup {
				fe.add(prefix+".children", fmt.Sprintf("object %q already belongs to group %q", c, g))
				continue
			}
			member[c] = o.ID
		}
	}
	if cycle := groupCycle(p.Objects); cycle != "" {
		fe.add("objects", fmt.Sprintf("group %q contains itself", cycle))
	}
	return fe.errs
}

// groupCycle returns the id of a group that is reachable from itself
// through nested children, or "" when the nesting is acyclic.
func groupCycle(objects []Object) string {
	children := make(map[string][]string)
	for _, o := range objects {
		if o.Type == ObjectGroup {
			children[o.ID] = o.Children
		}
	}
	const (
		visiting = 1
		done     = 2
	)
	state := make(map[string]int, len(children))
	var visit func(id string) bool
	visit = func(id string) bool {
		switch state[id] {
		case visiting:
			return true
		case done:
			return false
		}
		state[id] = visiting
		for _, c := range children[id] {
			if _, isGroup := children[c]; isGroup && visit(c) {
				return true
			}
		}
		state[id] = done
		return false
	}
	for _, o := range objects {
		if o.Type == ObjectGroup && visit(o.ID) {
			return o.ID
		}
	}
	return ""
}
