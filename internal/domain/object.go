package domain

import (
	"fmt"
	"slices"
)

// ObjectType is the shape variant of an object.
type ObjectType string

const (
	ObjectCircle ObjectType = "circle"
	ObjectRect   ObjectType = "rect"
	ObjectIcon   ObjectType = "icon"
	ObjectLine   ObjectType = "line"
	ObjectText   ObjectType = "text"
	ObjectGroup  ObjectType = "group"
)

func (t ObjectType) String() string { return string(t) }

func (t ObjectType) IsValid() bool {
	_, ok := supportedProperties[t]
	return ok
}

var allProperties = []Property{
	PropertyRect, PropertyStroke, PropertyFill, PropertyFade, PropertyRotate, PropertyScale, PropertyText,
}

// supportedProperties is the variant dispatch table.
var supportedProperties = map[ObjectType][]Property{
	ObjectCircle: allProperties,
	ObjectRect:   allProperties,
	ObjectIcon:   allProperties,
	ObjectText:   {PropertyRect, PropertyFill, PropertyFade, PropertyRotate, PropertyScale, PropertyText},
	ObjectLine:   {PropertyRect, PropertyStroke, PropertyFade, PropertyRotate, PropertyScale},
	ObjectGroup:  {PropertyRect, PropertyFade, PropertyRotate, PropertyScale},
}

// SupportedProperties returns the properties an object type carries.
func (t ObjectType) SupportedProperties() []Property {
	return slices.Clone(supportedProperties[t])
}

// Supports reports whether objects of type t carry property p.
func (t ObjectType) Supports(p Property) bool {
	return slices.Contains(supportedProperties[t], p)
}

// Object is a shape on a page. Property pointers are nil when the object
// does not carry that property.
type Object struct {
	ID       string     `json:"id"`
	Type     ObjectType `json:"type"`
	IconType string     `json:"iconType,omitempty"`
	Children []string   `json:"children,omitempty"`
	Rect     *Rect      `json:"rect,omitempty"`
	Stroke   *Stroke    `json:"stroke,omitempty"`
	Fill     *Fill      `json:"fill,omitempty"`
	Fade     *Fade      `json:"fade,omitempty"`
	Rotate   *Rotate    `json:"rotate,omitempty"`
	Scale    *Scale     `json:"scale,omitempty"`
	Text     *Text      `json:"text,omitempty"`
	Effects  []Effect   `json:"effects"`
}

// ObjectPatch is a partial update of an object's properties. Each property
// patch is shallow-merged into the current value.
type ObjectPatch struct {
	IconType *string      `json:"iconType,omitempty"`
	Rect     *RectPatch   `json:"rect,omitempty"`
	Stroke   *StrokePatch `json:"stroke,omitempty"`
	Fill     *FillPatch   `json:"fill,omitempty"`
	Fade     *FadePatch   `json:"fade,omitempty"`
	Rotate   *RotatePatch `json:"rotate,omitempty"`
	Scale    *ScalePatch  `json:"scale,omitempty"`
	Text     *TextPatch   `json:"text,omitempty"`
}

// Properties lists the properties the patch touches.
func (p ObjectPatch) Properties() []Property {
	var props []Property
	if p.Rect != nil {
		props = append(props, PropertyRect)
	}
	if p.Stroke != nil {
		props = append(props, PropertyStroke)
	}
	if p.Fill != nil {
		props = append(props, PropertyFill)
	}
	if p.Fade != nil {
		props = append(props, PropertyFade)
	}
	if p.Rotate != nil {
		props = append(props, PropertyRotate)
	}
	if p.Scale != nil {
		props = append(props, PropertyScale)
	}
	if p.Text != nil {
		props = append(props, PropertyText)
	}
	return props
}

// Apply merges p into o. Patches for properties the variant does not
// support and merges that produce invalid values are rejected and leave o
// unchanged.
func (o *Object) Apply(p ObjectPatch) error {
	var fe fieldErrors
	for _, prop := range p.Properties() {
		if !o.Type.Supports(prop) {
			fe.add(prop.String(), fmt.Sprintf("not supported by %s objects", o.Type))
		}
	}
	if p.IconType != nil && o.Type != ObjectIcon {
		fe.add("iconType", fmt.Sprintf("not supported by %s objects", o.Type))
	}
	if err := fe.err(); err != nil {
		return err
	}

	next := o.Clone()
	if p.IconType != nil {
		next.IconType = *p.IconType
	}
	if p.Rect != nil {
		next.Rect = Ptr(deref(next.Rect).Merge(*p.Rect))
	}
	if p.Stroke != nil {
		next.Stroke = Ptr(deref(next.Stroke).Merge(*p.Stroke))
	}
	if p.Fill != nil {
		next.Fill = Ptr(deref(next.Fill).Merge(*p.Fill))
	}
	if p.Fade != nil {
		next.Fade = Ptr(deref(next.Fade).Merge(*p.Fade))
	}
	if p.Rotate != nil {
		next.Rotate = Ptr(deref(next.Rotate).Merge(*p.Rotate))
	}
	if p.Scale != nil {
		next.Scale = Ptr(deref(next.Scale).Merge(*p.Scale))
	}
	if p.Text != nil {
		next.Text = Ptr(deref(next.Text).Merge(*p.Text))
	}

	if errs := next.validateProperties(); len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	*o = next
	return nil
}

// Clone returns a deep copy of o. Nil slices and pointers stay nil.
func (o Object) Clone() Object {
	c := o
	c.Children = slices.Clone(o.Children)
	c.Rect = clonePtr(o.Rect)
	c.Stroke = clonePtr(o.Stroke)
	c.Fill = clonePtr(o.Fill)
	c.Fade = clonePtr(o.Fade)
	c.Rotate = clonePtr(o.Rotate)
	c.Scale = clonePtr(o.Scale)
	c.Text = clonePtr(o.Text)
	if o.Effects != nil {
		c.Effects = make([]Effect, len(o.Effects))
		for i, e := range o.Effects {
			c.Effects[i] = e.Clone()
		}
	}
	return c
}

// HasProperty reports whether the object currently carries p.
func (o Object) HasProperty(p Property) bool {
	switch p {
	case PropertyRect:
		return o.Rect != nil
	case PropertyStroke:
		return o.Stroke != nil
	case PropertyFill:
		return o.Fill != nil
	case PropertyFade:
		return o.Fade != nil
	case PropertyRotate:
		return o.Rotate != nil
	case PropertyScale:
		return o.Scale != nil
	case PropertyText:
		return o.Text != nil
	}
	return false
}

// EffectByID returns the position of the effect with the given id.
func (o Object) EffectByID(id string) (int, bool) {
	for i, e := range o.Effects {
		if e.ID == id {
			return i, true
		}
	}
	return -1, false
}

// UpsertEffect stores e keyed by (index, type). The last entry with the same
// key is replaced in place and keeps its id, unless e carries the id of one
// of the matches. Earlier duplicates of the key, which only loaded data can
// hold, are dropped. The stored effect is returned.
func (o *Object) UpsertEffect(e Effect) Effect {
	e.ObjectID = o.ID
	slot, ownID := -1, false
	for i, cur := range o.Effects {
		if cur.Index == e.Index && cur.Type == e.Type {
			slot = i
			ownID = ownID || cur.ID == e.ID
		}
	}
	if slot < 0 {
		o.Effects = append(o.Effects, e)
		return e
	}

	if !ownID {
		e.ID = o.Effects[slot].ID
	}
	kept := o.Effects[:0]
	for i, cur := range o.Effects {
		switch {
		case i == slot:
			kept = append(kept, e)
		case cur.Index != e.Index || cur.Type != e.Type:
			kept = append(kept, cur)
		}
	}
	o.Effects = kept
	return e
}

// RemovedAt returns the index of the object's earliest remove effect. The
// object's lifespan ends there.
func (o Object) RemovedAt() (int, bool) {
	index, found := 0, false
	for _, e := range o.Effects {
		if e.Type == EffectRemove && (!found || e.Index < index) {
			index, found = e.Index, true
		}
	}
	return index, found
}

// RemoveEffect deletes the effect with the given id.
func (o *Object) RemoveEffect(id string) bool {
	i, ok := o.EffectByID(id)
	if !ok {
		return false
	}
	o.Effects = slices.Delete(o.Effects, i, i+1)
	return true
}

// Validate checks the object and its effects. Group children are checked
// against the page by Page.Validate.
func (o Object) Validate() []FieldError {
	var fe fieldErrors
	if o.ID == "" {
		fe.add("id", "required")
	}
	if !o.Type.IsValid() {
		fe.add("type", fmt.Sprintf("unknown object type %q", o.Type))
		return fe.errs
	}
	if o.Type == ObjectIcon && o.IconType == "" {
		fe.add("iconType", "required for icon objects")
	}
	if o.Type != ObjectIcon && o.IconType != "" {
		fe.add("iconType", fmt.Sprintf("not supported by %s objects", o.Type))
	}
	if o.Type != ObjectGroup && len(o.Children) > 0 {
		fe.add("children", fmt.Sprintf("not supported by %s objects", o.Type))
	}
	for _, p := range allProperties {
		if o.HasProperty(p) && !o.Type.Supports(p) {
			fe.add(p.String(), fmt.Sprintf("not supported by %s objects", o.Type))
		}
	}
	fe.errs = append(fe.errs, o.validateProperties()...)

	for i, e := range o.Effects {
		prefix := fmt.Sprintf("effects[%d]", i)
		fe.merge(prefix, e.Validate())
		if e.ObjectID != o.ID {
			fe.add(prefix+".objectId", fmt.Sprintf("must match object id %q", o.ID))
		}
		if p, ok := e.Type.Property(); ok && !o.Type.Supports(p) {
			fe.add(prefix+".type", fmt.Sprintf("%s effects are not supported by %s objects", e.Type, o.Type))
		}
	}
	return fe.errs
}

func (o Object) validateProperties() []FieldError {
	var fe fieldErrors
	if o.Rect != nil {
		fe.merge("rect", o.Rect.Validate())
	}
	if o.Stroke != nil {
		fe.merge("stroke", o.Stroke.Validate())
	}
	if o.Fill != nil {
		fe.merge("fill", o.Fill.Validate())
	}
	if o.Fade != nil {
		fe.merge("fade", o.Fade.Validate())
	}
	if o.Scale != nil {
		fe.merge("scale", o.Scale.Validate())
	}
	if o.Text != nil {
		fe.merge("text", o.Text.Validate())
	}
	return fe.errs
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
