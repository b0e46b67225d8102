// Package imaging loads annotation backgrounds and samples their colors.
//
// Screenshots are decoded once and kept in an ImageCache. SamplePalette
// reduces an image to a handful of dominant colors, which the renderer uses to
// fill obfuscate rects with a pattern that blends into the picture instead of
// a flat block.
//
// # Coordinate System
//
// Image pixels use the usual top-left origin with Y growing downward, while the
// annotation canvas puts its origin at the bottom-left with Y growing upward.
// PixelRect converts a canvas rectangle into the pixel rectangle it covers.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. SamplePalette and RegionPalette are
// stateless and may run on any goroutine.
package imaging
