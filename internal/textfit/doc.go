// Package textfit measures label text with real font metrics.
//
// Measurer implements annotation.TextMeasurer on top of the Go Regular
// typeface bundled with golang.org/x/image, so label boxes and font fitting
// agree with what an x/image based renderer would draw. Faces are created per
// font size on first use and cached; Measurer is safe for concurrent use.
package textfit
