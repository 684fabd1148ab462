// Package timeline derives time-indexed views of objects from their effects:
// which effect is active at a queue index, what an object looks like there,
// and the per-object tracks drawn by the timeline panel.
package timeline

import (
	"github.com/heartmarshall/queue-backend/internal/domain"
)

// ResolveEffect returns the effect of type typ that is in force at index:
// the one with the greatest index not exceeding the query. When several
// effects share that index the one stored last wins.
func ResolveEffect(o domain.Object, typ domain.EffectType, index int) (domain.Effect, bool) {
	best := -1
	for i, e := range o.Effects {
		if e.Type != typ || e.Index > index {
			continue
		}
		if best < 0 || e.Index >= o.Effects[best].Index {
			best = i
		}
	}
	if best < 0 {
		return domain.Effect{}, false
	}
	return o.Effects[best], true
}

// Span returns the first index the object appears at and, when it has a
// remove effect, the index of the earliest one. Without a remove, end is the
// greatest effect index.
func Span(o domain.Object) (start int, end int, terminated bool, ok bool) {
	if len(o.Effects) == 0 {
		return 0, 0, false, false
	}
	start = o.Effects[0].Index
	for _, e := range o.Effects {
		start = min(start, e.Index)
		end = max(end, e.Index)
	}
	if rm, found := o.RemovedAt(); found {
		return start, rm, true, true
	}
	return start, end, false, true
}

// IsActive reports whether the object is present at index. An object is
// present from its first effect up to and including its remove effect.
func IsActive(o domain.Object, index int) bool {
	start, end, terminated, ok := Span(o)
	if !ok || index < start {
		return false
	}
	return !terminated || index <= end
}

// State is an object as it appears at one queue index: base properties
// overlaid with the effects in force there.
type State struct {
	ObjectID string            `json:"objectId"`
	Type     domain.ObjectType `json:"type"`
	IconType string            `json:"iconType,omitempty"`
	Children []string          `json:"children,omitempty"`
	Rect     *domain.Rect      `json:"rect,omitempty"`
	Stroke   *domain.Stroke    `json:"stroke,omitempty"`
	Fill     *domain.Fill      `json:"fill,omitempty"`
	Fade     *domain.Fade      `json:"fade,omitempty"`
	Rotate   *domain.Rotate    `json:"rotate,omitempty"`
	Scale    *domain.Scale     `json:"scale,omitempty"`
	Text     *domain.Text      `json:"text,omitempty"`

	// Transitions are the effects placed exactly at the resolved index.
	Transitions []domain.Effect `json:"transitions"`
}

// ResolveState returns the object's state at index, or false when the
// object is not present there.
func ResolveState(o domain.Object, index int) (State, bool) {
	if !IsActive(o, index) {
		return State{}, false
	}
	c := o.Clone()
	s := State{
		ObjectID:    c.ID,
		Type:        c.Type,
		IconType:    c.IconType,
		Children:    c.Children,
		Rect:        c.Rect,
		Stroke:      c.Stroke,
		Fill:        c.Fill,
		Fade:        c.Fade,
		Rotate:      c.Rotate,
		Scale:       c.Scale,
		Text:        c.Text,
		Transitions: []domain.Effect{},
	}

	if e, ok := ResolveEffect(c, domain.EffectMove, index); ok {
		if r, ok := e.Rect(); ok {
			s.Rect = &r
		}
	}
	if e, ok := ResolveEffect(c, domain.EffectFade, index); ok {
		if f, ok := e.Fade(); ok {
			s.Fade = &f
		}
	}
	if e, ok := ResolveEffect(c, domain.EffectScale, index); ok {
		if sc, ok := e.Scale(); ok {
			s.Scale = &sc
		}
	}
	if e, ok := ResolveEffect(c, domain.EffectRotate, index); ok {
		if r, ok := e.Rotate(); ok {
			s.Rotate = &r
		}
	}

	for _, e := range c.Effects {
		if e.Index == index {
			s.Transitions = append(s.Transitions, e)
		}
	}
	return s, true
}

// ResolveStates returns the states of every object present at index, in
// page order.
func ResolveStates(objects []domain.Object, index int) []State {
	states := make([]State, 0, len(objects))
	for _, o := range objects {
		if s, ok := ResolveState(o, index); ok {
			states = append(states, s)
		}
	}
	return states
}
