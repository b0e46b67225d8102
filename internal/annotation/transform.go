package annotation

import (
	"math"

	"github.com/ironsheep/image-annotate-mcp/internal/geometry"
)

// Move translates every control point of m by delta.
func Move(m Model, delta geometry.Point) Model {
	return WithPoints(m, geometry.Translate(m.Points(), delta))
}

// ResizeOptions tunes Resize.
type ResizeOptions struct {
	// KeepSquare forces equal width and height for rects and markers.
	KeepSquare bool
	// Measurer re-fits label text. Without one the label's font is left alone.
	Measurer TextMeasurer
}

// Resize applies the drag of knob by delta to m. The model passed in must be
// the geometry from the start of the drag and delta the total offset since
// then; that keeps the anchor corner exactly where it started. A knob the
// variant does not have leaves m unchanged.
func Resize(m Model, knob KnobType, delta geometry.Point, opts ResizeOptions) Model {
	switch v := m.(type) {
	case Arrow:
		switch knob {
		case KnobFrom:
			v.Origin = v.Origin.Add(delta)
		case KnobTo:
			v.To = v.To.Add(delta)
		}
		return v
	case Rect:
		if origin, to, ok := resizeBox(v.Box(), knob, delta, opts.KeepSquare); ok {
			v.Origin, v.To = origin, to
		}
		return v
	case Number:
		if origin, to, ok := resizeBox(v.Box(), knob, delta, opts.KeepSquare); ok {
			v.Origin, v.To = origin, to
		}
		return v
	case Text:
		return resizeText(v, knob, delta, opts.Measurer)
	case Pen:
		return v
	}
	return m
}

// resizeBox anchors the corner opposite knob and moves the dragged corner by delta.
func resizeBox(box geometry.Rect, knob KnobType, delta geometry.Point, keepSquare bool) (anchor, dragged geometry.Point, ok bool) {
	corner, ok := knob.Corner()
	if !ok {
		return geometry.Point{}, geometry.Point{}, false
	}
	anchor = box.Corner(corner.Opposite())
	dragged = box.Corner(corner).Add(delta)
	if keepSquare {
		v := dragged.Sub(anchor)
		side := math.Max(math.Abs(v.X), math.Abs(v.Y))
		dragged = anchor.Add(geometry.Pt(signOf(v.X)*side, signOf(v.Y)*side))
	}
	return anchor, dragged, true
}

func signOf(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

func resizeText(t Text, knob KnobType, delta geometry.Point, measurer TextMeasurer) Text {
	box := t.Box()
	switch knob {
	case KnobResizeRight:
		box.Width = math.Max(MinTextWidth, box.Width+delta.X)
	case KnobResizeLeft:
		w := math.Max(MinTextWidth, box.Width-delta.X)
		box.X = box.MaxX() - w
		box.Width = w
	case KnobScale:
		h := math.Max(MinTextHeight, box.Height-delta.Y)
		box.Y = box.MaxY() - h
		box.Height = h
		t = t.withBox(box)
		t.Style.FontSize = FitFontSize(measurer, t.Text, t.Style, box.Size())
		return t
	default:
		return t
	}
	return GrowTextToFit(measurer, t.withBox(box))
}
