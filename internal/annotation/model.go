package annotation

import (
	"image/color"

	"github.com/google/uuid"

	"github.com/ironsheep/image-annotate-mcp/internal/geometry"
)

// ID is the stable identity of an annotation. IDs are never reused.
type ID string

// NewID returns a fresh random identity.
func NewID() ID {
	return ID(uuid.NewString())
}

// Type names a shape variant. It doubles as the creation mode setting.
type Type string

const (
	TypeNone      Type = ""
	TypeArrow     Type = "arrow"
	TypeRect      Type = "rect"
	TypeObfuscate Type = "obfuscate"
	TypeHighlight Type = "highlight"
	TypePen       Type = "pen"
	TypeNumber    Type = "number"
	TypeText      Type = "text"
)

// Types lists every concrete shape type.
var Types = []Type{TypeArrow, TypeRect, TypeObfuscate, TypeHighlight, TypePen, TypeNumber, TypeText}

// Valid reports whether t is a known type or TypeNone.
func (t Type) Valid() bool {
	if t == TypeNone {
		return true
	}
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// RectKind selects how a Rect renders.
type RectKind int

const (
	RectRegular RectKind = iota
	RectObfuscate
	RectHighlight
)

// Header holds the fields every variant shares.
type Header struct {
	ID        ID         `json:"id"`
	Color     color.RGBA `json:"color"`
	ZPosition float64    `json:"z_position"`
}

// Meta returns the shared header.
func (h Header) Meta() Header { return h }

func (Header) sealed() {}

// Model is the annotation sum type. The set of implementations is closed:
// Arrow, Rect, Pen, Number and Text.
type Model interface {
	Meta() Header
	Type() Type
	// Points returns the control geometry as an ordered list. The slice is a copy.
	Points() []geometry.Point
	sealed()
}

// Arrow points from Origin to To.
type Arrow struct {
	Header
	Origin    geometry.Point `json:"origin"`
	To        geometry.Point `json:"to"`
	LineWidth float64        `json:"line_width"`
}

// Rect spans the box between two opposite corners.
type Rect struct {
	Header
	Origin    geometry.Point `json:"origin"`
	To        geometry.Point `json:"to"`
	LineWidth float64        `json:"line_width"`
	Kind      RectKind       `json:"kind"`
}

// Pen is a freehand polyline.
type Pen struct {
	Header
	Path      []geometry.Point `json:"path"`
	LineWidth float64          `json:"line_width"`
}

// Number is a numbered marker drawn inside the box between Origin and To.
type Number struct {
	Header
	Origin geometry.Point `json:"origin"`
	To     geometry.Point `json:"to"`
	Value  int            `json:"value"`
}

// Text is a text label bounded by the box between Origin and To.
type Text struct {
	Header
	Origin                  geometry.Point `json:"origin"`
	To                      geometry.Point `json:"to"`
	Style                   TextStyle      `json:"style"`
	LegibilityEffectEnabled bool           `json:"legibility_effect_enabled"`
	Text                    string         `json:"text"`
}

func (Arrow) Type() Type  { return TypeArrow }
func (Pen) Type() Type    { return TypePen }
func (Number) Type() Type { return TypeNumber }
func (Text) Type() Type   { return TypeText }

func (r Rect) Type() Type {
	switch r.Kind {
	case RectObfuscate:
		return TypeObfuscate
	case RectHighlight:
		return TypeHighlight
	}
	return TypeRect
}

func (a Arrow) Points() []geometry.Point  { return []geometry.Point{a.Origin, a.To} }
func (r Rect) Points() []geometry.Point   { return []geometry.Point{r.Origin, r.To} }
func (n Number) Points() []geometry.Point { return []geometry.Point{n.Origin, n.To} }
func (t Text) Points() []geometry.Point   { return []geometry.Point{t.Origin, t.To} }

func (p Pen) Points() []geometry.Point {
	out := make([]geometry.Point, len(p.Path))
	copy(out, p.Path)
	return out
}

// Box returns the standardized rectangle of the rect.
func (r Rect) Box() geometry.Rect { return geometry.RectFromPoints(r.Origin, r.To) }

// Box returns the standardized rectangle of the marker.
func (n Number) Box() geometry.Rect { return geometry.RectFromPoints(n.Origin, n.To) }

// Box returns the standardized bounding box of the label.
func (t Text) Box() geometry.Rect { return geometry.RectFromPoints(t.Origin, t.To) }

// withBox stores box with Origin at the bottom-left and To at the top-right.
func (t Text) withBox(box geometry.Rect) Text {
	t.Origin = box.Corner(geometry.BottomLeft)
	t.To = box.Corner(geometry.TopRight)
	return t
}

// WithPoints rebuilds m from a new point list. Variant fields are derived from
// points, so a list of the wrong length leaves m unchanged.
func WithPoints(m Model, points []geometry.Point) Model {
	switch v := m.(type) {
	case Arrow:
		if len(points) == 2 {
			v.Origin, v.To = points[0], points[1]
		}
		return v
	case Rect:
		if len(points) == 2 {
			v.Origin, v.To = points[0], points[1]
		}
		return v
	case Number:
		if len(points) == 2 {
			v.Origin, v.To = points[0], points[1]
		}
		return v
	case Text:
		if len(points) == 2 {
			v.Origin, v.To = points[0], points[1]
		}
		return v
	case Pen:
		v.Path = make([]geometry.Point, len(points))
		copy(v.Path, points)
		return v
	}
	return m
}

// WithHeader returns m with its shared header replaced.
func WithHeader(m Model, h Header) Model {
	switch v := m.(type) {
	case Arrow:
		v.Header = h
		return v
	case Rect:
		v.Header = h
		return v
	case Pen:
		v.Header = h
		return v
	case Number:
		v.Header = h
		return v
	case Text:
		v.Header = h
		return v
	}
	return m
}

// WithZPosition returns m with a new draw-order key.
func WithZPosition(m Model, z float64) Model {
	h := m.Meta()
	h.ZPosition = z
	return WithHeader(m, h)
}

// WithColor returns m recolored. Text labels also take the color as text color.
func WithColor(m Model, c color.RGBA) Model {
	h := m.Meta()
	h.Color = c
	m = WithHeader(m, h)
	if t, ok := m.(Text); ok {
		t.Style.TextColor = c
		return t
	}
	return m
}

// LineWidth returns the stroke width of m, if the variant has one.
func LineWidth(m Model) (float64, bool) {
	switch v := m.(type) {
	case Arrow:
		return v.LineWidth, true
	case Rect:
		return v.LineWidth, true
	case Pen:
		return v.LineWidth, true
	}
	return 0, false
}

// WithLineWidth returns m with a new stroke width. Variants without one are unchanged.
func WithLineWidth(m Model, width float64) Model {
	switch v := m.(type) {
	case Arrow:
		v.LineWidth = width
		return v
	case Rect:
		v.LineWidth = width
		return v
	case Pen:
		v.LineWidth = width
		return v
	}
	return m
}

// BumpsZ reports whether selecting m may raise it to the top of the draw order.
// Highlight and obfuscate rects are exempt.
func BumpsZ(m Model) bool {
	if r, ok := m.(Rect); ok {
		return r.Kind == RectRegular
	}
	return true
}
