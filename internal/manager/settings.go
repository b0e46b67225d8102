package manager

import (
	"image/color"

	"github.com/ironsheep/image-annotate-mcp/internal/annotation"
)

// ObfuscatePattern selects how obfuscate rects are filled by the renderer.
type ObfuscatePattern string

const (
	PatternSolid   ObfuscatePattern = "solid"
	PatternPalette ObfuscatePattern = "palette"
)

// Valid reports whether p is a known pattern.
func (p ObfuscatePattern) Valid() bool {
	return p == PatternSolid || p == PatternPalette
}

// Settings are the drawing preferences the interaction handler reads.
type Settings struct {
	CreationType           annotation.Type      `json:"creation_type"`
	Color                  color.RGBA           `json:"color"`
	LineWidth              float64              `json:"line_width"`
	UserInteractionEnabled bool                 `json:"user_interaction_enabled"`
	ObfuscatePattern       ObfuscatePattern     `json:"obfuscate_pattern"`
	KeepSquare             bool                 `json:"keep_square"`
	TextStyle              annotation.TextStyle `json:"text_style"`
}

// DefaultSettings returns the settings of a fresh session.
func DefaultSettings() Settings {
	return Settings{
		CreationType:           annotation.TypeArrow,
		Color:                  annotation.DefaultTextStyle.TextColor,
		LineWidth:              5,
		UserInteractionEnabled: true,
		ObfuscatePattern:       PatternSolid,
		TextStyle:              annotation.DefaultTextStyle,
	}
}

// Settings returns the current drawing settings.
func (m *Manager) Settings() Settings { return m.settings }

// SetSettings replaces every setting. A color or line width change is applied
// to the committed selection through Update, so it can be undone.
func (m *Manager) SetSettings(s Settings) {
	prev := m.settings
	m.settings = s
	if s.Color != prev.Color {
		m.recolorSelection(s.Color)
	}
	if s.LineWidth != prev.LineWidth {
		m.rewidthSelection(s.LineWidth)
	}
}

// SetColor changes the draw color and re-colors the committed selection.
func (m *Manager) SetColor(c color.RGBA) {
	s := m.settings
	s.Color = c
	m.SetSettings(s)
}

// SetLineWidth changes the stroke width and applies it to the committed selection.
func (m *Manager) SetLineWidth(w float64) {
	s := m.settings
	s.LineWidth = w
	m.SetSettings(s)
}

// SetCreationType changes what the next empty-canvas gesture creates.
func (m *Manager) SetCreationType(t annotation.Type) {
	m.settings.CreationType = t
}

func (m *Manager) committedSelection() (annotation.Model, bool) {
	if m.selected == nil {
		return nil, false
	}
	return m.models.Get(m.selected.Meta().ID)
}

func (m *Manager) recolorSelection(c color.RGBA) {
	sel, ok := m.committedSelection()
	if !ok || sel.Meta().Color == c {
		return
	}
	m.Update(annotation.WithColor(sel, c))
}

func (m *Manager) rewidthSelection(w float64) {
	sel, ok := m.committedSelection()
	if !ok {
		return
	}
	if cur, has := annotation.LineWidth(sel); !has || cur == w {
		return
	}
	m.Update(annotation.WithLineWidth(sel, w))
}
