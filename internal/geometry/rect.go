package geometry

import "math"

// Size is a 2D extent.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect is an axis-aligned rectangle. X/Y is the minimum corner (bottom-left).
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Corner names one of the four rectangle corners.
type Corner int

const (
	BottomLeft Corner = iota
	BottomRight
	TopLeft
	TopRight
)

// Corners lists every corner in a fixed order.
var Corners = []Corner{BottomLeft, BottomRight, TopLeft, TopRight}

// Opposite returns the diagonally opposite corner.
func (c Corner) Opposite() Corner {
	switch c {
	case BottomLeft:
		return TopRight
	case BottomRight:
		return TopLeft
	case TopLeft:
		return BottomRight
	default:
		return BottomLeft
	}
}

func (c Corner) String() string {
	switch c {
	case BottomLeft:
		return "bottomLeft"
	case BottomRight:
		return "bottomRight"
	case TopLeft:
		return "topLeft"
	case TopRight:
		return "topRight"
	}
	return "unknown"
}

// RectFromPoints builds the standardized rectangle spanned by two arbitrary points.
func RectFromPoints(a, b Point) Rect {
	return Rect{
		X:      math.Min(a.X, b.X),
		Y:      math.Min(a.Y, b.Y),
		Width:  math.Abs(b.X - a.X),
		Height: math.Abs(b.Y - a.Y),
	}
}

// RectAround builds a rectangle of the given size centered on p.
func RectAround(p Point, size Size) Rect {
	return Rect{X: p.X - size.Width/2, Y: p.Y - size.Height/2, Width: size.Width, Height: size.Height}
}

// MinX returns the left edge.
func (r Rect) MinX() float64 { return r.X }

// MaxX returns the right edge.
func (r Rect) MaxX() float64 { return r.X + r.Width }

// MinY returns the bottom edge.
func (r Rect) MinY() float64 { return r.Y }

// MaxY returns the top edge.
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// MidX returns the horizontal center.
func (r Rect) MidX() float64 { return r.X + r.Width/2 }

// MidY returns the vertical center.
func (r Rect) MidY() float64 { return r.Y + r.Height/2 }

// Center returns the center point.
func (r Rect) Center() Point {
	return Point{X: r.MidX(), Y: r.MidY()}
}

// Size returns the rectangle extent.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Corner returns the position of the given corner.
func (r Rect) Corner(c Corner) Point {
	switch c {
	case BottomLeft:
		return Point{X: r.MinX(), Y: r.MinY()}
	case BottomRight:
		return Point{X: r.MaxX(), Y: r.MinY()}
	case TopLeft:
		return Point{X: r.MinX(), Y: r.MaxY()}
	default:
		return Point{X: r.MaxX(), Y: r.MaxY()}
	}
}

// Inset shrinks the rectangle by dx on each side horizontally and dy vertically.
// Negative values expand it.
func (r Rect) Inset(dx, dy float64) Rect {
	out := Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width - 2*dx, Height: r.Height - 2*dy}
	if out.Width < 0 {
		out.X, out.Width = r.MidX(), 0
	}
	if out.Height < 0 {
		out.Y, out.Height = r.MidY(), 0
	}
	return out
}

// Contains reports whether p lies inside the rectangle, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX() && p.X <= r.MaxX() &&
		p.Y >= r.MinY() && p.Y <= r.MaxY()
}

// Bounds returns the rectangle itself.
func (r Rect) Bounds() Rect { return r }

// Outline returns the closed corner loop, counter-clockwise from bottom-left.
func (r Rect) Outline() []Point {
	return []Point{
		r.Corner(BottomLeft),
		r.Corner(BottomRight),
		r.Corner(TopRight),
		r.Corner(TopLeft),
	}
}

// BoundingBox computes the axis-aligned bounding box of a set of points.
func BoundingBox(points []Point) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
