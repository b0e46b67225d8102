package textfit

import (
	"fmt"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/ironsheep/image-annotate-mcp/internal/annotation"
	"github.com/ironsheep/image-annotate-mcp/internal/geometry"
)

// sizeStep rounds requested sizes so font fitting does not create a face for
// every bisection step.
const sizeStep = 0.25

// Measurer measures text in a single typeface.
type Measurer struct {
	font *opentype.Font

	mu    sync.RWMutex
	faces map[float64]font.Face
}

// New returns a Measurer using Go Regular.
func New() (*Measurer, error) {
	return NewFromTTF(goregular.TTF)
}

// NewFromTTF returns a Measurer for the TrueType or OpenType font in data.
func NewFromTTF(data []byte) (*Measurer, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &Measurer{font: f, faces: make(map[float64]font.Face)}, nil
}

// Measure implements annotation.TextMeasurer. The outline drawn around
// legible text is included on every side.
func (m *Measurer) Measure(text string, style annotation.TextStyle, maxWidth float64) geometry.Size {
	face := m.face(style.FontSize)
	advance := func(s string) float64 {
		return toFloat(font.MeasureString(face, s))
	}

	lines := annotation.WrapLines(text, maxWidth, advance)
	var width float64
	for _, l := range lines {
		width = math.Max(width, advance(l))
	}
	lineHeight := toFloat(face.Metrics().Height)
	pad := 2 * math.Max(0, style.OutlineWidth)
	return geometry.Size{
		Width:  width + pad,
		Height: float64(len(lines))*lineHeight + pad,
	}
}

// LineHeight returns the distance between baselines at size.
func (m *Measurer) LineHeight(size float64) float64 {
	return toFloat(m.face(size).Metrics().Height)
}

func (m *Measurer) face(size float64) font.Face {
	size = math.Max(annotation.MinFontSize, math.Round(size/sizeStep)*sizeStep)

	m.mu.RLock()
	f, ok := m.faces[size]
	m.mu.RUnlock()
	if ok {
		return f
	}

	f, err := opentype.NewFace(m.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return basicfont.Face7x13
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.faces[size]; ok {
		return existing
	}
	m.faces[size] = f
	return f
}

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
