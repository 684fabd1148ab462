package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// DefaultDocumentName is used when a document is created or loaded without a name.
const DefaultDocumentName = "Untitled"

// Document is the root aggregate: an ordered list of pages sharing a canvas size.
type Document struct {
	ID           string            `json:"id"`
	DocumentName string            `json:"documentName"`
	DocumentRect DocumentRect      `json:"documentRect"`
	Pages        []Page            `json:"pages"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// NewDocument creates a document with a single empty page named Page-1.
func NewDocument(name string, rect DocumentRect) Document {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultDocumentName
	}
	if rect.Fill == "" {
		rect.Fill = "#ffffff"
	}
	d := Document{
		ID:           uuid.NewString(),
		DocumentName: name,
		DocumentRect: rect,
	}
	d.Pages = []Page{NewPage(d.ID, DefaultPageName(0), rect.Bounds())}
	return d
}

// ParseDocument decodes, normalizes and validates a serialized document.
// Nothing is returned unless the whole document is valid.
func ParseDocument(data []byte) (Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.As(err, &syntaxErr):
			return Document{}, NewValidationError("document", fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset))
		case errors.As(err, &typeErr):
			field := typeErr.Field
			if field == "" {
				field = "document"
			}
			return Document{}, NewValidationError(field, fmt.Sprintf("expected %s", typeErr.Type))
		default:
			return Document{}, NewValidationError("document", err.Error())
		}
	}
	d.Normalize()
	if err := d.Validate(); err != nil {
		return Document{}, err
	}
	return d, nil
}

// Normalize fills defaults that older or hand-written documents may omit
// and renumbers page indices.
func (d *Document) Normalize() {
	d.DocumentName = strings.TrimSpace(d.DocumentName)
	if d.DocumentName == "" {
		d.DocumentName = DefaultDocumentName
	}
	if d.Pages == nil {
		d.Pages = []Page{}
	}
	for i := range d.Pages {
		p := &d.Pages[i]
		if p.DocumentID == "" {
			p.DocumentID = d.ID
		}
		p.PageName = strings.TrimSpace(p.PageName)
		if p.PageName == "" {
			p.PageName = DefaultPageName(i)
		}
		if p.Bounds == (Rect{}) {
			p.Bounds = d.DocumentRect.Bounds()
		}
		if p.Objects == nil {
			p.Objects = []Object{}
		}
		for j := range p.Objects {
			o := &p.Objects[j]
			if o.Effects == nil {
				o.Effects = []Effect{}
			}
			for k := range o.Effects {
				e := &o.Effects[k]
				if e.ObjectID == "" {
					e.ObjectID = o.ID
				}
				if e.Timing == "" {
					e.Timing = TimingLinear
				}
			}
		}
	}
	d.ReindexPages()
}

// ReindexPages sets every page's Index to its position.
func (d *Document) ReindexPages() {
	for i := range d.Pages {
		d.Pages[i].Index = i
	}
}

// Validate checks the whole aggregate: id uniqueness across pages, objects
// and effects, ownership links, enum values and property constraints.
func (d Document) Validate() error {
	var fe fieldErrors
	if d.ID == "" {
		fe.add("id", "required")
	}
	fe.merge("documentRect", d.DocumentRect.Validate())

	seen := make(map[string]string)
	claim := func(field, kind, id string) {
		if id == "" {
			return
		}
		if prev, dup := seen[id]; dup {
			fe.add(field, fmt.Sprintf("duplicate id %q (already used by a %s)", id, prev))
			return
		}
		seen[id] = kind
	}
	claim("id", "document", d.ID)

	for i, p := range d.Pages {
		prefix := fmt.Sprintf("pages[%d]", i)
		claim(prefix+".id", "page", p.ID)
		if p.Index != i {
			fe.add(prefix+".index", fmt.Sprintf("must equal position %d", i))
		}
		fe.merge(prefix, p.Validate(d.ID))
		for j, o := range p.Objects {
			oprefix := fmt.Sprintf("%s.objects[%d]", prefix, j)
			claim(oprefix+".id", "object", o.ID)
			for k, e := range o.Effects {
				claim(fmt.Sprintf("%s.effects[%d].id", oprefix, k), "effect", e.ID)
			}
		}
	}
	return fe.err()
}

// Clone returns a deep copy of d.
func (d Document) Clone() Document {
	c := d
	if d.Pages != nil {
		c.Pages = make([]Page, len(d.Pages))
		for i, p := range d.Pages {
			c.Pages[i] = p.Clone()
		}
	}
	if d.Metadata != nil {
		c.Metadata = make(map[string]string, len(d.Metadata))
		for k, v := range d.Metadata {
			c.Metadata[k] = v
		}
	}
	return c
}

// PageByID returns the position of the page with the given id.
func (d Document) PageByID(id string) (int, bool) {
	for i, p := range d.Pages {
		if p.ID == id {
			return i, true
		}
	}
	return -1, false
}

// Page returns a pointer into Pages for in-place edits.
func (d *Document) Page(id string) (*Page, error) {
	i, ok := d.PageByID(id)
	if !ok {
		return nil, NewNotFoundError("page", id)
	}
	return &d.Pages[i], nil
}

// LocateObject returns the page id holding the object.
func (d Document) LocateObject(id string) (string, bool) {
	for _, p := range d.Pages {
		if _, ok := p.ObjectByID(id); ok {
			return p.ID, true
		}
	}
	return "", false
}

// HasID reports whether any page, object or effect uses id.
func (d Document) HasID(id string) bool {
	if d.ID == id {
		return true
	}
	for _, p := range d.Pages {
		if p.ID == id {
			return true
		}
		for _, o := range p.Objects {
			if o.ID == id {
				return true
			}
			for _, e := range o.Effects {
				if e.ID == id {
					return true
				}
			}
		}
	}
	return false
}

// InsertPage inserts p at index, clamped to [0, len(Pages)], and returns
// the position used.
func (d *Document) InsertPage(index int, p Page) int {
	index = max(0, min(index, len(d.Pages)))
	p.DocumentID = d.ID
	d.Pages = slices.Insert(d.Pages, index, p)
	d.ReindexPages()
	return index
}

// RemovePage deletes the page with the given id, cascading to its objects
// and effects. It returns the position the page occupied.
func (d *Document) RemovePage(id string) (int, error) {
	i, ok := d.PageByID(id)
	if !ok {
		return -1, NewNotFoundError("page", id)
	}
	d.Pages = slices.Delete(d.Pages, i, i+1)
	d.ReindexPages()
	return i, nil
}

// MovePage removes page from and reinserts it at the position of page to.
// Other pages keep their relative order.
func (d *Document) MovePage(from, to string) error {
	fi, ok := d.PageByID(from)
	if !ok {
		return NewNotFoundError("page", from)
	}
	ti, ok := d.PageByID(to)
	if !ok {
		return NewNotFoundError("page", to)
	}
	if fi == ti {
		return nil
	}
	p := d.Pages[fi]
	d.Pages = slices.Delete(d.Pages, fi, fi+1)
	d.Pages = slices.Insert(d.Pages, ti, p)
	d.ReindexPages()
	return nil
}

// CopyPage deep-copies the page with id from, assigns fresh ids to the copy
// and its objects and effects, and inserts it at index. newID is used for
// the page when non-empty.
func (d *Document) CopyPage(from string, index int, newID string) (Page, error) {
	src, err := d.Page(from)
	if err != nil {
		return Page{}, err
	}
	if newID == "" {
		newID = uuid.NewString()
	} else if d.HasID(newID) {
		return Page{}, fmt.Errorf("copy page: id %q: %w", newID, ErrAlreadyExists)
	}
	cp := reidentifyPage(src.Clone(), d.ID, newID)
	at := d.InsertPage(index, cp)
	return d.Pages[at], nil
}

// Reidentify returns a deep copy of d where the document, every page,
// object and effect gets a fresh id. References between them are remapped.
func (d Document) Reidentify() Document {
	c := d.Clone()
	c.ID = uuid.NewString()
	for i, p := range c.Pages {
		c.Pages[i] = reidentifyPage(p, c.ID, uuid.NewString())
	}
	return c
}

func reidentifyPage(p Page, documentID, pageID string) Page {
	p.ID = pageID
	p.DocumentID = documentID

	remap := make(map[string]string, len(p.Objects))
	for _, o := range p.Objects {
		remap[o.ID] = uuid.NewString()
	}
	for i := range p.Objects {
		o := &p.Objects[i]
		o.ID = remap[o.ID]
		for j, c := range o.Children {
			if n, ok := remap[c]; ok {
				o.Children[j] = n
			}
		}
		for j := range o.Effects {
			o.Effects[j].ID = uuid.NewString()
			o.Effects[j].ObjectID = o.ID
		}
	}
	return p
}
