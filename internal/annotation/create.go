package annotation

import (
	"image/color"

	"github.com/ironsheep/image-annotate-mcp/internal/geometry"
)

// Minimum gesture lengths below which no model is created.
const (
	MinArrowLength = 10.0
	MinShapeLength = 5.0
)

// NumberDiameter is the size of a freshly placed marker.
const NumberDiameter = 30.0

// Defaults carries the settings a new annotation is stamped with.
type Defaults struct {
	Color     color.RGBA
	LineWidth float64
	ZPosition float64
	TextStyle TextStyle
}

func (d Defaults) header() Header {
	return Header{ID: NewID(), Color: d.Color, ZPosition: d.ZPosition}
}

// MinLength returns the creation threshold for a shape type.
func MinLength(t Type) float64 {
	if t == TypeArrow {
		return MinArrowLength
	}
	return MinShapeLength
}

// NewArrow creates an arrow unless the endpoints are closer than MinArrowLength.
func NewArrow(from, to geometry.Point, d Defaults) (Arrow, bool) {
	if from.Distance(to) < MinArrowLength {
		return Arrow{}, false
	}
	return Arrow{Header: d.header(), Origin: from, To: to, LineWidth: d.LineWidth}, true
}

// NewRect creates a rect of the given kind unless the corners are closer than MinShapeLength.
func NewRect(from, to geometry.Point, kind RectKind, d Defaults) (Rect, bool) {
	if from.Distance(to) < MinShapeLength {
		return Rect{}, false
	}
	return Rect{Header: d.header(), Origin: from, To: to, LineWidth: d.LineWidth, Kind: kind}, true
}

// NewPen creates a freehand stroke unless it never strays MinShapeLength from its start.
func NewPen(path []geometry.Point, d Defaults) (Pen, bool) {
	if geometry.MaxExtent(path) < MinShapeLength {
		return Pen{}, false
	}
	p := Pen{Header: d.header(), LineWidth: d.LineWidth}
	p.Path = make([]geometry.Point, len(path))
	copy(p.Path, path)
	return p, true
}

// NewNumber places a marker with the given value centered on p.
func NewNumber(center geometry.Point, value int, d Defaults) Number {
	box := geometry.RectAround(center, geometry.Size{Width: NumberDiameter, Height: NumberDiameter})
	return Number{
		Header: d.header(),
		Origin: box.Corner(geometry.BottomLeft),
		To:     box.Corner(geometry.TopRight),
		Value:  value,
	}
}

// NewText starts an empty label whose top-left corner sits at p. The box is
// DefaultTextWidth wide and one line tall for the default style.
func NewText(p geometry.Point, measurer TextMeasurer, d Defaults) Text {
	style := d.TextStyle
	if style.FontSize <= 0 {
		style = DefaultTextStyle
	}
	style.TextColor = d.Color

	t := Text{Header: d.header(), Style: style}
	box := geometry.Rect{X: p.X, Y: p.Y - MinTextHeight, Width: DefaultTextWidth, Height: MinTextHeight}
	t = t.withBox(box)
	return TrimTextHeight(measurer, t)
}

// Create builds a drag-created shape spanning from-to. Number and Text are
// click-created and never come from here.
func Create(t Type, from, to geometry.Point, d Defaults) (Model, bool) {
	switch t {
	case TypeArrow:
		if a, ok := NewArrow(from, to, d); ok {
			return a, true
		}
	case TypeRect:
		if r, ok := NewRect(from, to, RectRegular, d); ok {
			return r, true
		}
	case TypeObfuscate:
		if r, ok := NewRect(from, to, RectObfuscate, d); ok {
			return r, true
		}
	case TypeHighlight:
		if r, ok := NewRect(from, to, RectHighlight, d); ok {
			return r, true
		}
	case TypePen:
		if p, ok := NewPen([]geometry.Point{from, to}, d); ok {
			return p, true
		}
	}
	return nil, false
}

// Extend grows a provisional shape to p: two-point shapes move their far end,
// pens append p.
func Extend(m Model, p geometry.Point) Model {
	switch v := m.(type) {
	case Arrow:
		v.To = p
		return v
	case Rect:
		v.To = p
		return v
	case Number:
		v.To = p
		return v
	case Pen:
		v.Path = append(v.Points(), p)
		return v
	}
	return m
}
