package annotation

import "github.com/ironsheep/image-annotate-mcp/internal/geometry"

// SelectionPath returns the region used to hit-test m while the pointer hovers.
//
// Regular rect outlines and pen strokes hit-test their stroke widened by
// LineWidth + SelectionMargin. Obfuscate and highlight rects, arrows and
// markers hit-test their filled area. Labels hit-test their selection rectangle.
func SelectionPath(m Model) geometry.Shape {
	switch v := m.(type) {
	case Arrow:
		return geometry.ArrowPolygon(v.Origin, v.To, v.LineWidth)
	case Rect:
		if v.Kind != RectRegular {
			return v.Box()
		}
		return geometry.Stroke{
			Points: v.Box().Outline(),
			Width:  v.LineWidth + SelectionMargin,
			Closed: true,
		}
	case Pen:
		return geometry.Stroke{Points: v.Points(), Width: v.LineWidth + SelectionMargin}
	case Number:
		return geometry.Ellipse{Rect: v.Box()}
	case Text:
		return TextSelectionRect(v)
	}
	return geometry.Polygon(nil)
}

// HitTest returns the topmost model whose selection path contains p.
func HitTest(models []Model, p geometry.Point) (Model, bool) {
	for _, m := range SortedByZ(models, true) {
		if SelectionPath(m).Contains(p) {
			return m, true
		}
	}
	return nil, false
}
