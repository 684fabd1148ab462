package domain

import (
	"regexp"
)

// Property names a visual property of an object. The values double as JSON keys.
type Property string

const (
	PropertyRect   Property = "rect"
	PropertyStroke Property = "stroke"
	PropertyFill   Property = "fill"
	PropertyFade   Property = "fade"
	PropertyRotate Property = "rotate"
	PropertyScale  Property = "scale"
	PropertyText   Property = "text"
)

func (p Property) String() string { return string(p) }

func (p Property) IsValid() bool {
	switch p {
	case PropertyRect, PropertyStroke, PropertyFill, PropertyFade, PropertyRotate, PropertyScale, PropertyText:
		return true
	}
	return false
}

var colorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// IsValidColor reports whether s is a #rgb, #rrggbb or #rrggbbaa hex colour.
func IsValidColor(s string) bool {
	return colorPattern.MatchString(s)
}

// ---------------------------------------------------------------------------
// Rect
// ---------------------------------------------------------------------------

// Rect is the position and size of an object in page coordinates.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// RectPatch is a partial Rect.
type RectPatch struct {
	X      *float64 `json:"x,omitempty"`
	Y      *float64 `json:"y,omitempty"`
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`
}

// Merge returns r with every field set in p replaced.
func (r Rect) Merge(p RectPatch) Rect {
	if p.X != nil {
		r.X = *p.X
	}
	if p.Y != nil {
		r.Y = *p.Y
	}
	if p.Width != nil {
		r.Width = *p.Width
	}
	if p.Height != nil {
		r.Height = *p.Height
	}
	return r
}

// Validate rejects negative sizes.
func (r Rect) Validate() []FieldError {
	var errs []FieldError
	if r.Width < 0 {
		errs = append(errs, FieldError{Field: "width", Message: "must be >= 0"})
	}
	if r.Height < 0 {
		errs = append(errs, FieldError{Field: "height", Message: "must be >= 0"})
	}
	return errs
}

// Center returns a size x size rect centred inside r.
func (r Rect) Center(width, height float64) Rect {
	return Rect{
		X:      r.X + r.Width/2 - width/2,
		Y:      r.Y + r.Height/2 - height/2,
		Width:  width,
		Height: height,
	}
}

// ---------------------------------------------------------------------------
// Fill
// ---------------------------------------------------------------------------

type Fill struct {
	Color   string  `json:"color"`
	Opacity float64 `json:"opacity"`
}

type FillPatch struct {
	Color   *string  `json:"color,omitempty"`
	Opacity *float64 `json:"opacity,omitempty"`
}

func (f Fill) Merge(p FillPatch) Fill {
	if p.Color != nil {
		f.Color = *p.Color
	}
	if p.Opacity != nil {
		f.Opacity = *p.Opacity
	}
	return f
}

func (f Fill) Validate() []FieldError {
	var errs []FieldError
	if !IsValidColor(f.Color) {
		errs = append(errs, FieldError{Field: "color", Message: "must be a hex colour"})
	}
	if !isUnit(f.Opacity) {
		errs = append(errs, FieldError{Field: "opacity", Message: "must be between 0 and 1"})
	}
	return errs
}

// ---------------------------------------------------------------------------
// Stroke
// ---------------------------------------------------------------------------

// Stroke dash styles.
const (
	DashSolid  = "solid"
	DashDashed = "dashed"
	DashDotted = "dotted"
)

type Stroke struct {
	Width     float64 `json:"width"`
	Color     string  `json:"color"`
	Dasharray string  `json:"dasharray"`
}

type StrokePatch struct {
	Width     *float64 `json:"width,omitempty"`
	Color     *string  `json:"color,omitempty"`
	Dasharray *string  `json:"dasharray,omitempty"`
}

func (s Stroke) Merge(p StrokePatch) Stroke {
	if p.Width != nil {
		s.Width = *p.Width
	}
	if p.Color != nil {
		s.Color = *p.Color
	}
	if p.Dasharray != nil {
		s.Dasharray = *p.Dasharray
	}
	return s
}

func (s Stroke) Validate() []FieldError {
	var errs []FieldError
	if s.Width < 0 {
		errs = append(errs, FieldError{Field: "width", Message: "must be >= 0"})
	}
	if !IsValidColor(s.Color) {
		errs = append(errs, FieldError{Field: "color", Message: "must be a hex colour"})
	}
	switch s.Dasharray {
	case "", DashSolid, DashDashed, DashDotted:
	default:
		errs = append(errs, FieldError{Field: "dasharray", Message: "must be one of solid, dashed, dotted"})
	}
	return errs
}

// ---------------------------------------------------------------------------
// Fade, Rotate, Scale
// ---------------------------------------------------------------------------

type Fade struct {
	Opacity float64 `json:"opacity"`
}

type FadePatch struct {
	Opacity *float64 `json:"opacity,omitempty"`
}

func (f Fade) Merge(p FadePatch) Fade {
	if p.Opacity != nil {
		f.Opacity = *p.Opacity
	}
	return f
}

func (f Fade) Validate() []FieldError {
	if !isUnit(f.Opacity) {
		return []FieldError{{Field: "opacity", Message: "must be between 0 and 1"}}
	}
	return nil
}

type Rotate struct {
	Degree float64 `json:"degree"`
}

type RotatePatch struct {
	Degree *float64 `json:"degree,omitempty"`
}

func (r Rotate) Merge(p RotatePatch) Rotate {
	if p.Degree != nil {
		r.Degree = *p.Degree
	}
	return r
}

type Scale struct {
	Scale float64 `json:"scale"`
}

type ScalePatch struct {
	Scale *float64 `json:"scale,omitempty"`
}

func (s Scale) Merge(p ScalePatch) Scale {
	if p.Scale != nil {
		s.Scale = *p.Scale
	}
	return s
}

func (s Scale) Validate() []FieldError {
	if s.Scale <= 0 {
		return []FieldError{{Field: "scale", Message: "must be > 0"}}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Text
// ---------------------------------------------------------------------------

// Text alignment values.
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"

	AlignTop    = "top"
	AlignMiddle = "middle"
	AlignBottom = "bottom"
)

type Text struct {
	Text            string  `json:"text"`
	FontSize        float64 `json:"fontSize"`
	FontFamily      string  `json:"fontFamily"`
	FontColor       string  `json:"fontColor"`
	HorizontalAlign string  `json:"horizontalAlign"`
	VerticalAlign   string  `json:"verticalAlign"`
}

type TextPatch struct {
	Text            *string  `json:"text,omitempty"`
	FontSize        *float64 `json:"fontSize,omitempty"`
	FontFamily      *string  `json:"fontFamily,omitempty"`
	FontColor       *string  `json:"fontColor,omitempty"`
	HorizontalAlign *string  `json:"horizontalAlign,omitempty"`
	VerticalAlign   *string  `json:"verticalAlign,omitempty"`
}

func (t Text) Merge(p TextPatch) Text {
	if p.Text != nil {
		t.Text = *p.Text
	}
	if p.FontSize != nil {
		t.FontSize = *p.FontSize
	}
	if p.FontFamily != nil {
		t.FontFamily = *p.FontFamily
	}
	if p.FontColor != nil {
		t.FontColor = *p.FontColor
	}
	if p.HorizontalAlign != nil {
		t.HorizontalAlign = *p.HorizontalAlign
	}
	if p.VerticalAlign != nil {
		t.VerticalAlign = *p.VerticalAlign
	}
	return t
}

func (t Text) Validate() []FieldError {
	var errs []FieldError
	if t.FontSize <= 0 {
		errs = append(errs, FieldError{Field: "fontSize", Message: "must be > 0"})
	}
	if !IsValidColor(t.FontColor) {
		errs = append(errs, FieldError{Field: "fontColor", Message: "must be a hex colour"})
	}
	switch t.HorizontalAlign {
	case AlignLeft, AlignCenter, AlignRight:
	default:
		errs = append(errs, FieldError{Field: "horizontalAlign", Message: "must be one of left, center, right"})
	}
	switch t.VerticalAlign {
	case AlignTop, AlignMiddle, AlignBottom:
	default:
		errs = append(errs, FieldError{Field: "verticalAlign", Message: "must be one of top, middle, bottom"})
	}
	return errs
}

// ---------------------------------------------------------------------------
// DocumentRect
// ---------------------------------------------------------------------------

// DocumentRect is the canvas size of a document.
type DocumentRect struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Fill   string  `json:"fill"`
}

// Bounds returns the canvas as a rect anchored at the origin.
func (d DocumentRect) Bounds() Rect {
	return Rect{Width: d.Width, Height: d.Height}
}

func (d DocumentRect) Validate() []FieldError {
	var errs []FieldError
	if d.Width <= 0 {
		errs = append(errs, FieldError{Field: "width", Message: "must be > 0"})
	}
	if d.Height <= 0 {
		errs = append(errs, FieldError{Field: "height", Message: "must be > 0"})
	}
	if d.Fill != "" && !IsValidColor(d.Fill) {
		errs = append(errs, FieldError{Field: "fill", Message: "must be a hex colour"})
	}
	return errs
}

func isUnit(v float64) bool {
	return v >= 0 && v <= 1
}

// Ptr returns a pointer to v. Handy for building patches.
func Ptr[T any](v T) *T {
	return &v
}
