package annotation

import "github.com/ironsheep/image-annotate-mcp/internal/geometry"

// Hit-test tuning.
const (
	// KnobSize is the side of the square frame around each knob.
	KnobSize = 12.0
	// SelectionMargin widens thin outlines so they stay easy to click.
	SelectionMargin = 10.0
	// TextSelectionInset expands a label's box into its selection rectangle.
	TextSelectionInset = 8.0
)

// KnobType identifies a draggable control point.
type KnobType int

const (
	KnobNone KnobType = iota
	KnobFrom
	KnobTo
	KnobBottomLeft
	KnobBottomRight
	KnobTopLeft
	KnobTopRight
	KnobResizeLeft
	KnobResizeRight
	KnobScale
)

var knobNames = map[KnobType]string{
	KnobNone:        "none",
	KnobFrom:        "from",
	KnobTo:          "to",
	KnobBottomLeft:  "bottomLeft",
	KnobBottomRight: "bottomRight",
	KnobTopLeft:     "topLeft",
	KnobTopRight:    "topRight",
	KnobResizeLeft:  "resizeLeft",
	KnobResizeRight: "resizeRight",
	KnobScale:       "scale",
}

func (k KnobType) String() string {
	if name, ok := knobNames[k]; ok {
		return name
	}
	return "unknown"
}

// Corner maps a corner knob to its rectangle corner.
func (k KnobType) Corner() (geometry.Corner, bool) {
	switch k {
	case KnobBottomLeft:
		return geometry.BottomLeft, true
	case KnobBottomRight:
		return geometry.BottomRight, true
	case KnobTopLeft:
		return geometry.TopLeft, true
	case KnobTopRight:
		return geometry.TopRight, true
	}
	return 0, false
}

func cornerKnob(c geometry.Corner) KnobType {
	switch c {
	case geometry.BottomLeft:
		return KnobBottomLeft
	case geometry.BottomRight:
		return KnobBottomRight
	case geometry.TopLeft:
		return KnobTopLeft
	}
	return KnobTopRight
}

// Knob is a control point of a selected shape.
type Knob struct {
	Type   KnobType       `json:"type"`
	Center geometry.Point `json:"center"`
}

// Frame returns the square hit area of the knob.
func (k Knob) Frame() geometry.Rect {
	return geometry.RectAround(k.Center, geometry.Size{Width: KnobSize, Height: KnobSize})
}

// Knobs returns the control points of m. Pens have none.
func Knobs(m Model) []Knob {
	switch v := m.(type) {
	case Arrow:
		return []Knob{{Type: KnobFrom, Center: v.Origin}, {Type: KnobTo, Center: v.To}}
	case Rect:
		return cornerKnobs(v.Box())
	case Number:
		return cornerKnobs(v.Box())
	case Text:
		sel := TextSelectionRect(v)
		return []Knob{
			{Type: KnobResizeLeft, Center: geometry.Pt(sel.MinX(), sel.MidY())},
			{Type: KnobResizeRight, Center: geometry.Pt(sel.MaxX(), sel.MidY())},
			{Type: KnobScale, Center: geometry.Pt(sel.MidX(), sel.MinY())},
		}
	case Pen:
		return nil
	}
	return nil
}

// cornerKnobs derives all four corners from the standardized box, so the
// stored points may be in either orientation.
func cornerKnobs(box geometry.Rect) []Knob {
	knobs := make([]Knob, 0, len(geometry.Corners))
	for _, c := range geometry.Corners {
		knobs = append(knobs, Knob{Type: cornerKnob(c), Center: box.Corner(c)})
	}
	return knobs
}

// KnobAt returns the knob of m whose frame contains p.
func KnobAt(m Model, p geometry.Point) (Knob, bool) {
	for _, k := range Knobs(m) {
		if k.Frame().Contains(p) {
			return k, true
		}
	}
	return Knob{}, false
}

// TextSelectionRect is the label's box expanded by TextSelectionInset.
func TextSelectionRect(t Text) geometry.Rect {
	return t.Box().Inset(-TextSelectionInset, -TextSelectionInset)
}
