package manager

import (
	"image/color"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// Count returns the number of committed models.
func (m *Manager) Count() int {
	return m.models.Len()
}

// ShapeTypes returns the distinct type names present, sorted.
func (m *Manager) ShapeTypes() []string {
	seen := make(map[string]bool)
	for _, model := range m.models.All() {
		seen[string(model.Type())] = true
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ColorsInUse returns the entries of palette that some committed model is
// drawn with, compared perceptually so 8-bit rounding does not matter.
func (m *Manager) ColorsInUse(palette []color.RGBA) []color.RGBA {
	var used []colorful.Color
	for _, model := range m.models.All() {
		if c, ok := colorful.MakeColor(model.Meta().Color); ok {
			used = append(used, c)
		}
	}

	var out []color.RGBA
	for _, p := range palette {
		pc, ok := colorful.MakeColor(p)
		if !ok {
			continue
		}
		for _, u := range used {
			if pc.AlmostEqualRgb(u) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}
