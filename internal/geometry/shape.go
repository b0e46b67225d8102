package geometry

import "math"

// Shape is a region that can be hit-tested.
type Shape interface {
	Contains(p Point) bool
	Bounds() Rect
}

// Polygon is a filled simple polygon. The last vertex connects back to the first.
type Polygon []Point

// Contains tests whether p is inside the polygon using ray casting.
func (poly Polygon) Contains(p Point) bool {
	if len(poly) < 3 {
		return false
	}

	inside := false
	n := len(poly)
	for i := 0; i < n; i++ {
		pi, pj := poly[i], poly[(i+1)%n]
		// Ray from p going right crosses edge pi-pj
		if ((pi.Y > p.Y) != (pj.Y > p.Y)) &&
			(p.X < (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y)+pi.X) {
			inside = !inside
		}
	}
	return inside
}

// Bounds returns the polygon's bounding box.
func (poly Polygon) Bounds() Rect {
	return BoundingBox(poly)
}

// Ellipse is the filled ellipse inscribed in Rect.
type Ellipse struct {
	Rect Rect
}

// Contains reports whether p falls inside the ellipse.
func (e Ellipse) Contains(p Point) bool {
	rx, ry := e.Rect.Width/2, e.Rect.Height/2
	if rx <= 0 || ry <= 0 {
		return false
	}
	c := e.Rect.Center()
	dx := (p.X - c.X) / rx
	dy := (p.Y - c.Y) / ry
	return dx*dx+dy*dy <= 1
}

// Bounds returns the enclosing rectangle.
func (e Ellipse) Bounds() Rect { return e.Rect }

// Stroke is a polyline widened to Width. A closed stroke also joins the last
// point back to the first, which turns an outline into a hollow frame.
type Stroke struct {
	Points []Point
	Width  float64
	Closed bool
}

// Contains reports whether p lies within Width/2 of any segment.
func (s Stroke) Contains(p Point) bool {
	half := s.Width / 2
	switch len(s.Points) {
	case 0:
		return false
	case 1:
		return p.Distance(s.Points[0]) <= half
	}
	for i := 1; i < len(s.Points); i++ {
		if distanceToSegment(p, s.Points[i-1], s.Points[i]) <= half {
			return true
		}
	}
	if s.Closed && len(s.Points) > 2 {
		return distanceToSegment(p, s.Points[len(s.Points)-1], s.Points[0]) <= half
	}
	return false
}

// Bounds returns the widened bounding box.
func (s Stroke) Bounds() Rect {
	return BoundingBox(s.Points).Inset(-s.Width/2, -s.Width/2)
}

// ArrowPolygon builds the outline of an arrow from tail to head: a shaft of
// shaftWidth ending in a triangular head. The head never exceeds the arrow length.
func ArrowPolygon(tail, head Point, shaftWidth float64) Polygon {
	v := head.Sub(tail)
	length := v.Length()
	if length == 0 {
		return nil
	}
	dir := v.Scale(1 / length)
	normal := Point{X: -dir.Y, Y: dir.X}

	headLength := math.Min(length, math.Max(shaftWidth*3, 12))
	headHalf := math.Max(shaftWidth*1.5, 6)
	half := shaftWidth / 2

	neck := head.Sub(dir.Scale(headLength))
	return Polygon{
		tail.Add(normal.Scale(half)),
		neck.Add(normal.Scale(half)),
		neck.Add(normal.Scale(headHalf)),
		head,
		neck.Sub(normal.Scale(headHalf)),
		neck.Sub(normal.Scale(half)),
		tail.Sub(normal.Scale(half)),
	}
}
