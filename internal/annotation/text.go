package annotation

import (
	"image/color"
	"math"
	"strings"

	"github.com/ironsheep/image-annotate-mcp/internal/geometry"
)

// Text sizing limits.
const (
	MinFontSize      = 6.0
	MinTextWidth     = 30.0
	MinTextHeight    = 16.0
	DefaultTextWidth = 200.0

	fontFitTolerance = 0.5
)

// TextStyle describes how a label is drawn.
type TextStyle struct {
	FontName     string         `json:"font_name"`
	FontSize     float64        `json:"font_size"`
	TextColor    color.RGBA     `json:"text_color"`
	OutlineWidth float64        `json:"outline_width"`
	OutlineColor color.RGBA     `json:"outline_color"`
	ShadowColor  color.RGBA     `json:"shadow_color"`
	ShadowOffset geometry.Point `json:"shadow_offset"`
	ShadowBlur   float64        `json:"shadow_blur"`
}

// DefaultTextStyle is the style applied to new labels when the host supplies none.
var DefaultTextStyle = TextStyle{
	FontName:     "Go Regular",
	FontSize:     24,
	TextColor:    color.RGBA{R: 255, G: 59, B: 48, A: 255},
	OutlineWidth: 2,
	OutlineColor: color.RGBA{R: 255, G: 255, B: 255, A: 255},
	ShadowColor:  color.RGBA{A: 128},
	ShadowOffset: geometry.Pt(1, -1),
	ShadowBlur:   2,
}

// TextMeasurer reports the size a string occupies when word-wrapped to maxWidth.
// An empty string still measures one line.
type TextMeasurer interface {
	Measure(text string, style TextStyle, maxWidth float64) geometry.Size
}

// WrapLines breaks text into lines no wider than maxWidth using advance to
// measure candidates. Explicit newlines are kept; a single word wider than
// maxWidth occupies its own line.
func WrapLines(text string, maxWidth float64, advance func(string) float64) []string {
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			candidate := line + " " + w
			if advance(candidate) <= maxWidth {
				line = candidate
				continue
			}
			lines = append(lines, line)
			line = w
		}
		lines = append(lines, line)
	}
	return lines
}

// FixedMeasurer measures text with a fixed advance per rune, both expressed as
// fractions of the font size. It needs no font files.
type FixedMeasurer struct {
	Advance    float64
	LineHeight float64
}

// Measure implements TextMeasurer.
func (f FixedMeasurer) Measure(text string, style TextStyle, maxWidth float64) geometry.Size {
	advance := func(s string) float64 {
		return float64(len([]rune(s))) * f.Advance * style.FontSize
	}
	lines := WrapLines(text, maxWidth, advance)
	var width float64
	for _, l := range lines {
		width = math.Max(width, advance(l))
	}
	return geometry.Size{Width: width, Height: float64(len(lines)) * f.LineHeight * style.FontSize}
}

// FitFontSize searches for the largest font size whose wrapped text fits box.
// Without a measurer the current size is kept.
func FitFontSize(measurer TextMeasurer, text string, style TextStyle, box geometry.Size) float64 {
	if measurer == nil {
		return style.FontSize
	}
	fits := func(size float64) bool {
		s := style
		s.FontSize = size
		m := measurer.Measure(text, s, box.Width)
		return m.Width <= box.Width && m.Height <= box.Height
	}

	lo, hi := MinFontSize, math.Max(MinFontSize, box.Height)
	if !fits(lo) {
		return lo
	}
	if fits(hi) {
		return hi
	}
	for hi-lo > fontFitTolerance {
		mid := (lo + hi) / 2
		if fits(mid) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}

// ContentHeight is the height the label's text needs at its current width.
func ContentHeight(measurer TextMeasurer, t Text) float64 {
	if measurer == nil {
		return t.Box().Height
	}
	return math.Max(MinTextHeight, measurer.Measure(t.Text, t.Style, t.Box().Width).Height)
}

// TrimTextHeight sets the box height to exactly what the content needs,
// keeping the top edge in place.
func TrimTextHeight(measurer TextMeasurer, t Text) Text {
	box := t.Box()
	need := ContentHeight(measurer, t)
	box.Y = box.MaxY() - need
	box.Height = need
	return t.withBox(box)
}

// GrowTextToFit extends the box downward when the content needs more height.
func GrowTextToFit(measurer TextMeasurer, t Text) Text {
	box := t.Box()
	need := ContentHeight(measurer, t)
	if box.Height >= need {
		return t
	}
	box.Y = box.MaxY() - need
	box.Height = need
	return t.withBox(box)
}
