package manager

import (
	"image"
	"image/color"

	"github.com/ironsheep/image-annotate-mcp/internal/imaging"
)

// SampleBackground extracts the dominant colors of img for the palette
// obfuscate pattern. Sampling runs on its own goroutine and the result is
// handed back through the Dispatcher; a result that arrives after a newer
// SampleBackground or ClearBackground call is dropped.
func (m *Manager) SampleBackground(img image.Image) {
	m.paletteGen++
	gen := m.paletteGen
	n := m.paletteSize

	deliver := func(palette []color.RGBA) {
		if gen != m.paletteGen {
			m.logger.Printf("[manager] dropped stale palette (generation %d, current %d)", gen, m.paletteGen)
			return
		}
		m.palette = palette
		m.logger.Printf("[manager] background palette: %d colors", len(palette))
		m.notifyPalette(palette)
	}

	if m.dispatch == nil {
		deliver(imaging.SamplePalette(img, n))
		return
	}
	dispatch := m.dispatch
	go func() {
		palette := imaging.SamplePalette(img, n)
		dispatch(func() { deliver(palette) })
	}()
}

// ClearBackground forgets the palette and invalidates any sampling in flight.
func (m *Manager) ClearBackground() {
	m.paletteGen++
	if m.palette == nil {
		return
	}
	m.palette = nil
	m.notifyPalette(nil)
}

// BackgroundPalette returns the most recent palette.
func (m *Manager) BackgroundPalette() []color.RGBA {
	return append([]color.RGBA(nil), m.palette...)
}
