// Package ocr finds words in a background image so they can be covered by
// obfuscate annotations.
//
// It wraps the Tesseract OCR engine through gosseract/v2 and therefore needs
// cgo and the Tesseract libraries at build time:
//   - Ubuntu/Debian: apt-get install libtesseract-dev tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// Word bounds are reported in pixel coordinates of the image passed in
// (origin top-left, y down). Converting them to canvas space is the caller's
// job; see imaging.CanvasRect.
package ocr
