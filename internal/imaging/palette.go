package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/image-annotate-mcp/internal/geometry"
)

// Palette sampling parameters.
const (
	// sampleSize bounds the downscaled copy that is actually scanned.
	sampleSize = 64
	// blurRadius smooths JPEG noise and anti-aliasing before quantizing.
	blurRadius = 1.0
	// quantStep groups 8-bit channels into 16 levels.
	quantStep = 16
	// mergeDistance is the CIE94 distance under which two buckets are one color.
	mergeDistance = 0.08
	// minAlpha skips mostly transparent pixels.
	minAlpha = 128
)

type bucket struct {
	key     [3]uint8
	count   int
	r, g, b int
}

func (b bucket) mean() colorful.Color {
	return colorful.Color{
		R: float64(b.r) / float64(b.count) / 255,
		G: float64(b.g) / float64(b.count) / 255,
		B: float64(b.b) / float64(b.count) / 255,
	}
}

type swatch struct {
	color colorful.Color
	count int
}

// SamplePalette returns up to n dominant colors of img, most frequent first.
// It returns nil for a nil image or n <= 0.
//
// The image is downscaled with imaging.Fit, box-blurred, and quantized; buckets
// that are perceptually close are then merged so gradients do not flood the
// palette with near-duplicates.
func SamplePalette(img image.Image, n int) []color.RGBA {
	if img == nil || n <= 0 || img.Bounds().Empty() {
		return nil
	}

	small := imaging.Fit(img, sampleSize, sampleSize, imaging.Box)
	smooth := blur.Box(small, blurRadius)

	buckets := make(map[[3]uint8]*bucket)
	bounds := smooth.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			px := smooth.RGBAAt(x, y)
			if px.A < minAlpha {
				continue
			}
			key := [3]uint8{px.R / quantStep, px.G / quantStep, px.B / quantStep}
			bk, ok := buckets[key]
			if !ok {
				bk = &bucket{key: key}
				buckets[key] = bk
			}
			bk.count++
			bk.r += int(px.R)
			bk.g += int(px.G)
			bk.b += int(px.B)
		}
	}

	ordered := make([]*bucket, 0, len(buckets))
	for _, bk := range buckets {
		ordered = append(ordered, bk)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].count != ordered[j].count {
			return ordered[i].count > ordered[j].count
		}
		return keyLess(ordered[i].key, ordered[j].key)
	})

	var swatches []*swatch
	for _, bk := range ordered {
		c := bk.mean()
		merged := false
		for _, s := range swatches {
			if s.color.DistanceCIE94(c) < mergeDistance {
				s.count += bk.count
				merged = true
				break
			}
		}
		if !merged {
			swatches = append(swatches, &swatch{color: c, count: bk.count})
		}
	}
	sort.SliceStable(swatches, func(i, j int) bool { return swatches[i].count > swatches[j].count })

	if len(swatches) > n {
		swatches = swatches[:n]
	}
	out := make([]color.RGBA, len(swatches))
	for i, s := range swatches {
		out[i] = toRGBA(s.color)
	}
	return out
}

func keyLess(a, b [3]uint8) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// RegionPalette samples only the pixels under region, given in pixel
// coordinates. The region is clipped to the image.
func RegionPalette(img image.Image, region image.Rectangle, n int) ([]color.RGBA, error) {
	if img == nil {
		return nil, fmt.Errorf("no image to sample")
	}
	clipped := region.Intersect(img.Bounds())
	if clipped.Empty() {
		return nil, fmt.Errorf("region %v outside image bounds %v", region, img.Bounds())
	}
	return SamplePalette(imaging.Crop(img, clipped), n), nil
}

// PixelRect converts a canvas rectangle (origin bottom-left, y up) into the
// pixel rectangle of an image with the given bounds (origin top-left, y down).
// Fractional edges are widened to whole pixels.
func PixelRect(r geometry.Rect, bounds image.Rectangle) image.Rectangle {
	h := float64(bounds.Dy())
	x0 := bounds.Min.X + int(math.Floor(r.MinX()))
	x1 := bounds.Min.X + int(math.Ceil(r.MaxX()))
	y0 := bounds.Min.Y + int(math.Floor(h-r.MaxY()))
	y1 := bounds.Min.Y + int(math.Ceil(h-r.MinY()))
	return image.Rect(x0, y0, x1, y1)
}

// CanvasRect converts a pixel rectangle of an image with the given bounds back
// into canvas coordinates. It is the inverse of PixelRect for whole-pixel input.
func CanvasRect(r image.Rectangle, bounds image.Rectangle) geometry.Rect {
	h := float64(bounds.Dy())
	return geometry.Rect{
		X:      float64(r.Min.X - bounds.Min.X),
		Y:      h - float64(r.Max.Y-bounds.Min.Y),
		Width:  float64(r.Dx()),
		Height: float64(r.Dy()),
	}
}
