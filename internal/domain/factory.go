package domain

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// Default geometry of newly created objects.
const (
	DefaultObjectSize = 300
	DefaultTextHeight = 100
	DefaultFontSize   = 24
	DefaultFontFamily = "Arial"
)

// ObjectOptions carries the variant-specific inputs of NewObject.
type ObjectOptions struct {
	IconType string
	Text     string
}

// NewObject creates an object of the given type centred in bounds, with a
// create effect at queueIndex. Groups are built from existing members with
// NewGroup instead.
func NewObject(typ ObjectType, bounds Rect, queueIndex int, opts ObjectOptions) (Object, error) {
	switch typ {
	case ObjectCircle:
		return NewCircle(bounds, queueIndex), nil
	case ObjectRect:
		return NewRect(bounds, queueIndex), nil
	case ObjectIcon:
		if opts.IconType == "" {
			return Object{}, NewValidationError("iconType", "required for icon objects")
		}
		return NewIcon(bounds, opts.IconType, queueIndex), nil
	case ObjectText:
		return NewText(bounds, opts.Text, queueIndex), nil
	case ObjectLine:
		return NewLine(bounds, queueIndex), nil
	case ObjectGroup:
		return Object{}, NewValidationError("type", "groups are created from existing objects")
	}
	return Object{}, NewValidationError("type", fmt.Sprintf("unknown object type %q", typ))
}

// NewCircle creates a 300x300 white circle with a thin black outline.
func NewCircle(bounds Rect, queueIndex int) Object {
	return newShape(ObjectCircle, bounds, queueIndex, Stroke{Width: 1, Color: "#000000", Dasharray: DashSolid}, Fill{Color: "#ffffff", Opacity: 1})
}

// NewRect creates a 300x300 white rectangle with a thin black outline.
func NewRect(bounds Rect, queueIndex int) Object {
	return newShape(ObjectRect, bounds, queueIndex, Stroke{Width: 1, Color: "#000000", Dasharray: DashSolid}, Fill{Color: "#ffffff", Opacity: 1})
}

// NewIcon creates a 300x300 black icon without an outline.
func NewIcon(bounds Rect, iconType string, queueIndex int) Object {
	o := newShape(ObjectIcon, bounds, queueIndex, Stroke{Width: 0, Color: "#000000"}, Fill{Color: "#000000", Opacity: 1})
	o.IconType = iconType
	return o
}

// NewText creates a transparent text box.
func NewText(bounds Rect, text string, queueIndex int) Object {
	id := uuid.NewString()
	t := defaultText()
	t.Text = text
	return Object{
		ID:      id,
		Type:    ObjectText,
		Rect:    Ptr(bounds.Center(DefaultObjectSize, DefaultTextHeight)),
		Fill:    &Fill{Color: "#ffffff", Opacity: 0},
		Fade:    &Fade{Opacity: 1},
		Rotate:  &Rotate{Degree: 0},
		Scale:   &Scale{Scale: 1},
		Text:    &t,
		Effects: []Effect{NewEffect(id, EffectCreate, queueIndex, nil)},
	}
}

// NewLine creates a horizontal 300 wide line.
func NewLine(bounds Rect, queueIndex int) Object {
	id := uuid.NewString()
	return Object{
		ID:      id,
		Type:    ObjectLine,
		Rect:    Ptr(bounds.Center(DefaultObjectSize, 0)),
		Stroke:  &Stroke{Width: 2, Color: "#000000", Dasharray: DashSolid},
		Fade:    &Fade{Opacity: 1},
		Rotate:  &Rotate{Degree: 0},
		Scale:   &Scale{Scale: 1},
		Effects: []Effect{NewEffect(id, EffectCreate, queueIndex, nil)},
	}
}

// NewGroup creates a group whose rect is the bounding box of its members.
func NewGroup(members []Object, queueIndex int) (Object, error) {
	if len(members) < 2 {
		return Object{}, NewValidationError("children", "a group needs at least two objects")
	}
	id := uuid.NewString()
	children := make([]string, 0, len(members))
	for _, m := range members {
		children = append(children, m.ID)
	}
	return Object{
		ID:       id,
		Type:     ObjectGroup,
		Children: children,
		Rect:     Ptr(BoundingBox(members)),
		Fade:     &Fade{Opacity: 1},
		Rotate:   &Rotate{Degree: 0},
		Scale:    &Scale{Scale: 1},
		Effects:  []Effect{NewEffect(id, EffectCreate, queueIndex, nil)},
	}, nil
}

// BoundingBox returns the smallest rect containing every member rect.
// Members without a rect are ignored.
func BoundingBox(objects []Object) Rect {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, o := range objects {
		if o.Rect == nil {
			continue
		}
		r := *o.Rect
		minX = math.Min(minX, r.X)
		minY = math.Min(minY, r.Y)
		maxX = math.Max(maxX, r.X+r.Width)
		maxY = math.Max(maxY, r.Y+r.Height)
	}
	if math.IsInf(minX, 1) {
		return Rect{}
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

func newShape(typ ObjectType, bounds Rect, queueIndex int, stroke Stroke, fill Fill) Object {
	id := uuid.NewString()
	t := defaultText()
	return Object{
		ID:      id,
		Type:    typ,
		Rect:    Ptr(bounds.Center(DefaultObjectSize, DefaultObjectSize)),
		Stroke:  &stroke,
		Fill:    &fill,
		Fade:    &Fade{Opacity: 1},
		Rotate:  &Rotate{Degree: 0},
		Scale:   &Scale{Scale: 1},
		Text:    &t,
		Effects: []Effect{NewEffect(id, EffectCreate, queueIndex, nil)},
	}
}

func defaultText() Text {
	return Text{
		Text:            "",
		FontSize:        DefaultFontSize,
		FontFamily:      DefaultFontFamily,
		FontColor:       "#000000",
		HorizontalAlign: AlignCenter,
		VerticalAlign:   AlignMiddle,
	}
}
