package geometry

import "math"

// Point is a 2D point or vector with floating-point coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p + other.
func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns p - other.
func (p Point) Sub(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// Scale returns the point scaled by a factor.
func (p Point) Scale(factor float64) Point {
	return Point{X: p.X * factor, Y: p.Y * factor}
}

// Neg returns the inverse vector.
func (p Point) Neg() Point {
	return Point{X: -p.X, Y: -p.Y}
}

// Length returns the vector magnitude.
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Distance returns the Euclidean distance to another point.
func (p Point) Distance(other Point) float64 {
	return other.Sub(p).Length()
}

// Translate returns a copy of points moved by delta.
func Translate(points []Point, delta Point) []Point {
	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = p.Add(delta)
	}
	return out
}

// MaxExtent returns the largest distance from the first point to any other point.
// It is the measure used to decide whether a polyline is degenerate.
func MaxExtent(points []Point) float64 {
	if len(points) < 2 {
		return 0
	}
	var best float64
	for _, p := range points[1:] {
		if d := points[0].Distance(p); d > best {
			best = d
		}
	}
	return best
}

// distanceToSegment returns the distance from p to the segment a-b.
func distanceToSegment(p, a, b Point) float64 {
	ab := b.Sub(a)
	lenSq := ab.X*ab.X + ab.Y*ab.Y
	if lenSq == 0 {
		return p.Distance(a)
	}
	t := ((p.X-a.X)*ab.X + (p.Y-a.Y)*ab.Y) / lenSq
	t = math.Max(0, math.Min(1, t))
	return p.Distance(a.Add(ab.Scale(t)))
}
