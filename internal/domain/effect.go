package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// EffectType is the kind of change an effect applies at its queue index.
type EffectType string

const (
	EffectCreate EffectType = "create"
	EffectFade   EffectType = "fade"
	EffectMove   EffectType = "move"
	EffectScale  EffectType = "scale"
	EffectRotate EffectType = "rotate"
	EffectRemove EffectType = "remove"
)

func (t EffectType) String() string { return string(t) }

func (t EffectType) IsValid() bool {
	switch t {
	case EffectCreate, EffectFade, EffectMove, EffectScale, EffectRotate, EffectRemove:
		return true
	}
	return false
}

// Property returns the object property the effect animates, if any.
// Create and remove effects toggle presence and animate nothing.
func (t EffectType) Property() (Property, bool) {
	switch t {
	case EffectFade:
		return PropertyFade, true
	case EffectMove:
		return PropertyRect, true
	case EffectScale:
		return PropertyScale, true
	case EffectRotate:
		return PropertyRotate, true
	}
	return "", false
}

// Timing is the easing curve of an effect.
type Timing string

const (
	TimingLinear    Timing = "linear"
	TimingEase      Timing = "ease"
	TimingEaseIn    Timing = "ease-in"
	TimingEaseOut   Timing = "ease-out"
	TimingEaseInOut Timing = "ease-in-out"
)

func (t Timing) IsValid() bool {
	switch t {
	case TimingLinear, TimingEase, TimingEaseIn, TimingEaseOut, TimingEaseInOut:
		return true
	}
	return false
}

// DefaultEffectDuration is the duration in milliseconds given to effects
// created without an explicit one.
const DefaultEffectDuration = 1000

// EffectProp is the property payload of an effect. Which fields are set
// depends on the effect type: fade uses Opacity, move uses X/Y/Width/Height,
// scale uses Scale and rotate uses Degree.
type EffectProp struct {
	Opacity *float64 `json:"opacity,omitempty"`
	X       *float64 `json:"x,omitempty"`
	Y       *float64 `json:"y,omitempty"`
	Width   *float64 `json:"width,omitempty"`
	Height  *float64 `json:"height,omitempty"`
	Scale   *float64 `json:"scale,omitempty"`
	Degree  *float64 `json:"degree,omitempty"`
}

// FadeProp builds the prop of a fade effect.
func FadeProp(f Fade) *EffectProp {
	return &EffectProp{Opacity: Ptr(f.Opacity)}
}

// MoveProp builds the prop of a move effect.
func MoveProp(r Rect) *EffectProp {
	return &EffectProp{X: Ptr(r.X), Y: Ptr(r.Y), Width: Ptr(r.Width), Height: Ptr(r.Height)}
}

// ScaleProp builds the prop of a scale effect.
func ScaleProp(s Scale) *EffectProp {
	return &EffectProp{Scale: Ptr(s.Scale)}
}

// RotateProp builds the prop of a rotate effect.
func RotateProp(r Rotate) *EffectProp {
	return &EffectProp{Degree: Ptr(r.Degree)}
}

func (p *EffectProp) clone() *EffectProp {
	if p == nil {
		return nil
	}
	c := EffectProp{}
	c.Opacity = clonePtr(p.Opacity)
	c.X = clonePtr(p.X)
	c.Y = clonePtr(p.Y)
	c.Width = clonePtr(p.Width)
	c.Height = clonePtr(p.Height)
	c.Scale = clonePtr(p.Scale)
	c.Degree = clonePtr(p.Degree)
	return &c
}

// Effect is a time-indexed change applied to one object.
type Effect struct {
	ID       string      `json:"id"`
	Type     EffectType  `json:"type"`
	ObjectID string      `json:"objectId"`
	Index    int         `json:"index"`
	Duration int         `json:"duration"`
	Delay    int         `json:"delay"`
	Timing   Timing      `json:"timing"`
	Prop     *EffectProp `json:"prop,omitempty"`
}

// NewEffect creates an effect with a fresh id and default timing.
func NewEffect(objectID string, typ EffectType, index int, prop *EffectProp) Effect {
	duration := DefaultEffectDuration
	if typ == EffectCreate {
		duration = 0
	}
	return Effect{
		ID:       uuid.NewString(),
		Type:     typ,
		ObjectID: objectID,
		Index:    index,
		Duration: duration,
		Timing:   TimingLinear,
		Prop:     prop,
	}
}

// Fade returns the fade payload of a fade effect.
func (e Effect) Fade() (Fade, bool) {
	if e.Type != EffectFade || e.Prop == nil || e.Prop.Opacity == nil {
		return Fade{}, false
	}
	return Fade{Opacity: *e.Prop.Opacity}, true
}

// Rect returns the target rect of a move effect.
func (e Effect) Rect() (Rect, bool) {
	if e.Type != EffectMove || e.Prop == nil {
		return Rect{}, false
	}
	p := e.Prop
	if p.X == nil || p.Y == nil || p.Width == nil || p.Height == nil {
		return Rect{}, false
	}
	return Rect{X: *p.X, Y: *p.Y, Width: *p.Width, Height: *p.Height}, true
}

// Scale returns the scale payload of a scale effect.
func (e Effect) Scale() (Scale, bool) {
	if e.Type != EffectScale || e.Prop == nil || e.Prop.Scale == nil {
		return Scale{}, false
	}
	return Scale{Scale: *e.Prop.Scale}, true
}

// Rotate returns the rotate payload of a rotate effect.
func (e Effect) Rotate() (Rotate, bool) {
	if e.Type != EffectRotate || e.Prop == nil || e.Prop.Degree == nil {
		return Rotate{}, false
	}
	return Rotate{Degree: *e.Prop.Degree}, true
}

// Clone returns a deep copy of e.
func (e Effect) Clone() Effect {
	e.Prop = e.Prop.clone()
	return e
}

// Validate checks the effect in isolation. The objectId match is checked by
// the owning object.
func (e Effect) Validate() []FieldError {
	var fe fieldErrors
	if e.ID == "" {
		fe.add("id", "required")
	}
	if !e.Type.IsValid() {
		fe.add("type", fmt.Sprintf("unknown effect type %q", e.Type))
	}
	if e.Index < 0 {
		fe.add("index", "must be >= 0")
	}
	if e.Duration < 0 {
		fe.add("duration", "must be >= 0")
	}
	if e.Delay < 0 {
		fe.add("delay", "must be >= 0")
	}
	if !e.Timing.IsValid() {
		fe.add("timing", fmt.Sprintf("unknown timing %q", e.Timing))
	}

	switch e.Type {
	case EffectFade:
		f, ok := e.Fade()
		if !ok {
			fe.add("prop.opacity", "required for fade")
		} else {
			fe.merge("prop", f.Validate())
		}
	case EffectMove:
		r, ok := e.Rect()
		if !ok {
			fe.add("prop", "x, y, width and height are required for move")
		} else {
			fe.merge("prop", r.Validate())
		}
	case EffectScale:
		s, ok := e.Scale()
		if !ok {
			fe.add("prop.scale", "required for scale")
		} else {
			fe.merge("prop", s.Validate())
		}
	case EffectRotate:
		if _, ok := e.Rotate(); !ok {
			fe.add("prop.degree", "required for rotate")
		}
	}
	return fe.errs
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
