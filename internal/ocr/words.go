package ocr

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

// DefaultLanguage is the Tesseract language used when none is given.
const DefaultLanguage = "eng"

// Word is one recognized word and where it sits in the image.
type Word struct {
	Text string `json:"text"`
	// Confidence is Tesseract's score scaled to 0.0-1.0.
	Confidence float64         `json:"confidence"`
	Bounds     image.Rectangle `json:"bounds"`
}

// Recognizer runs Tesseract over in-memory images.
type Recognizer struct {
	language string
}

// New returns a recognizer for language. An empty language means DefaultLanguage.
func New(language string) *Recognizer {
	if language == "" {
		language = DefaultLanguage
	}
	return &Recognizer{language: language}
}

// Language returns the Tesseract language code in use.
func (r *Recognizer) Language() string { return r.language }

// Version returns the linked Tesseract version.
func (r *Recognizer) Version() string {
	client := gosseract.NewClient()
	defer client.Close()
	return client.Version()
}

// FindWords recognizes the words of img whose confidence is at least
// minConfidence. Bounds are offset to img's own coordinate space.
func (r *Recognizer) FindWords(img image.Image, minConfidence float64) ([]Word, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, errors.New("no image to recognize")
	}

	// Tesseract does better on grayscale input.
	var buf bytes.Buffer
	if err := png.Encode(&buf, imaging.Grayscale(img)); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(r.language); err != nil {
		return nil, fmt.Errorf("set language %q: %w", r.language, err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}
	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("get bounding boxes: %w", err)
	}

	offset := img.Bounds().Min
	words := make([]Word, 0, len(boxes))
	for _, box := range boxes {
		text := strings.TrimSpace(box.Word)
		confidence := box.Confidence / 100.0
		if text == "" || confidence < minConfidence {
			continue
		}
		words = append(words, Word{
			Text:       text,
			Confidence: confidence,
			Bounds:     box.Box.Add(offset),
		})
	}
	return words, nil
}

// Filter returns the words containing query, ignoring case. An empty query
// keeps every word.
func Filter(words []Word, query string) []Word {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return words
	}
	var out []Word
	for _, w := range words {
		if strings.Contains(strings.ToLower(w.Text), query) {
			out = append(out, w)
		}
	}
	return out
}

// Union returns the smallest rectangle covering every word.
func Union(words []Word) image.Rectangle {
	var r image.Rectangle
	for _, w := range words {
		r = r.Union(w.Bounds)
	}
	return r
}
