// Package geometry provides the 2D kernel used by the annotation engine.
//
// It covers point and vector arithmetic, axis-aligned rectangles built from two
// arbitrary points, corner enumeration, and a small set of hit-test shapes.
//
// # Coordinate System
//
// Coordinates are floating-point and follow a y-up convention: "top" refers to
// the larger Y value and "bottom" to the smaller one. A rectangle built from
// (0,0) and (50,50) therefore has its bottom-left corner at (0,0) and its
// top-right corner at (50,50).
//
// # Hit Testing
//
// Every selectable region implements Shape. The concrete shapes are:
//   - Rect: filled axis-aligned rectangle
//   - Polygon: filled simple polygon (ray casting)
//   - Ellipse: filled ellipse inscribed in a rectangle
//   - Stroke: a polyline widened to a given width, optionally closed
//
// All shapes are immutable values and safe for concurrent use.
package geometry
