// Package annotation implements the typed annotation document model.
//
// An annotation is one of a closed set of variants (Arrow, Rect, Pen, Number,
// Text). All variants embed a Header carrying identity, color and draw order,
// and expose their control geometry uniformly through Points.
//
// The per-variant algorithms live beside the model and dispatch with a type
// switch over the variant, never through per-type methods:
//   - Knobs: draggable control points for the selected shape
//   - SelectionPath: the hit-test region, distinct from the visual outline
//   - Resize and Move: geometry transformations driven by pointer drags
//
// ModelsSet is the identity-keyed store used by the model manager.
//
// # Coordinates
//
// Geometry follows the y-up convention of the geometry package. Text boxes are
// stored with Origin at the bottom-left and To at the top-right corner; their
// top edge stays fixed while the box grows or trims to its content.
//
// # Errors
//
// Nothing here returns an error. Degenerate input produces a false ok value
// (creation under the minimum distance), and transformations that do not apply
// to a variant return the model unchanged.
package annotation
