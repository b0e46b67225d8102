package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/image-annotate-mcp/internal/geometry"
)

// quadrants paints red, green, blue and white quadrants; red covers the
// whole left half so it is the most frequent color.
func quadrants(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.RGBA
			switch {
			case x < width/2:
				c = color.RGBA{255, 0, 0, 255}
			case y < height/4:
				c = color.RGBA{0, 255, 0, 255}
			case y < height/2:
				c = color.RGBA{0, 0, 255, 255}
			default:
				c = color.RGBA{255, 255, 255, 255}
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func near(t *testing.T, got, want color.RGBA) bool {
	t.Helper()
	g, _ := colorful.MakeColor(got)
	w, _ := colorful.MakeColor(want)
	return g.DistanceCIE94(w) < 0.05
}

func TestSamplePalette_Solid(t *testing.T) {
	want := color.RGBA{30, 144, 255, 255}
	got := SamplePalette(solidImage(200, 100, want), 4)

	if len(got) != 1 {
		t.Fatalf("got %d colors %v, want 1", len(got), got)
	}
	if !near(t, got[0], want) {
		t.Errorf("got %s, want %s", Hex(got[0]), Hex(want))
	}
}

func TestSamplePalette_OrderedByFrequency(t *testing.T) {
	got := SamplePalette(quadrants(128, 128), 4)

	if len(got) < 4 {
		t.Fatalf("got %d colors %v, want at least 4", len(got), got)
	}
	if !near(t, got[0], color.RGBA{255, 0, 0, 255}) {
		t.Errorf("most frequent: got %s, want red", Hex(got[0]))
	}
	if !near(t, got[1], color.RGBA{255, 255, 255, 255}) {
		t.Errorf("second: got %s, want white", Hex(got[1]))
	}
}

func TestSamplePalette_Limit(t *testing.T) {
	if got := SamplePalette(quadrants(64, 64), 2); len(got) != 2 {
		t.Errorf("got %d colors, want 2", len(got))
	}
}

func TestSamplePalette_MergesNearColors(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			// Two grays one quantization step apart.
			v := uint8(128)
			if x >= 32 {
				v = 144
			}
			img.Set(x, y, color.RGBA{v, v, v, 255})
		}
	}

	if got := SamplePalette(img, 4); len(got) != 1 {
		t.Errorf("got %d colors %v, want near grays merged into 1", len(got), got)
	}
}

func TestSamplePalette_Degenerate(t *testing.T) {
	tests := []struct {
		name string
		img  image.Image
		n    int
	}{
		{"nil image", nil, 3},
		{"zero count", solidImage(8, 8, color.White), 0},
		{"empty image", image.NewRGBA(image.Rect(0, 0, 0, 0)), 3},
		{"transparent", image.NewRGBA(image.Rect(0, 0, 8, 8)), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SamplePalette(tt.img, tt.n); len(got) != 0 {
				t.Errorf("got %v, want none", got)
			}
		})
	}
}

func TestRegionPalette(t *testing.T) {
	img := quadrants(100, 100)

	got, err := RegionPalette(img, image.Rect(60, 0, 100, 20), 3)
	if err != nil {
		t.Fatalf("RegionPalette failed: %v", err)
	}
	if len(got) == 0 || !near(t, got[0], color.RGBA{0, 255, 0, 255}) {
		t.Errorf("got %v, want green first", got)
	}

	if _, err := RegionPalette(img, image.Rect(200, 200, 300, 300), 3); err == nil {
		t.Error("region outside the image should fail")
	}
	if _, err := RegionPalette(nil, image.Rect(0, 0, 1, 1), 3); err == nil {
		t.Error("nil image should fail")
	}
}

func TestPixelRect(t *testing.T) {
	bounds := image.Rect(0, 0, 200, 100)

	tests := []struct {
		name string
		r    geometry.Rect
		want image.Rectangle
	}{
		{"bottom-left canvas corner", geometry.Rect{X: 0, Y: 0, Width: 20, Height: 10}, image.Rect(0, 90, 20, 100)},
		{"top-right canvas corner", geometry.Rect{X: 180, Y: 90, Width: 20, Height: 10}, image.Rect(180, 0, 200, 10)},
		{"fractional widens", geometry.Rect{X: 1.5, Y: 0.5, Width: 2, Height: 2}, image.Rect(1, 97, 4, 100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PixelRect(tt.r, bounds); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanvasRect(t *testing.T) {
	bounds := image.Rect(0, 0, 200, 100)

	tests := []struct {
		name string
		r    image.Rectangle
		want geometry.Rect
	}{
		{"top-left pixels", image.Rect(0, 0, 20, 10), geometry.Rect{X: 0, Y: 90, Width: 20, Height: 10}},
		{"bottom-right pixels", image.Rect(180, 90, 200, 100), geometry.Rect{X: 180, Y: 0, Width: 20, Height: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanvasRect(tt.r, bounds)
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
			if back := PixelRect(got, bounds); back != tt.r {
				t.Errorf("round trip: got %v, want %v", back, tt.r)
			}
		})
	}

	// Bounds that do not start at the origin.
	shifted := image.Rect(50, 50, 250, 150)
	if got, want := CanvasRect(image.Rect(50, 140, 60, 150), shifted), (geometry.Rect{X: 0, Y: 0, Width: 10, Height: 10}); got != want {
		t.Errorf("shifted: got %+v, want %+v", got, want)
	}
}

func TestHexRoundTrip(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#FF3B30", color.RGBA{255, 59, 48, 255}, false},
		{"#000000", color.RGBA{0, 0, 0, 255}, false},
		{"#ffffff", color.RGBA{255, 255, 255, 255}, false},
		{"red", color.RGBA{}, true},
		{"", color.RGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err: got %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			if tt.in == "#FF3B30" && Hex(got) != tt.in {
				t.Errorf("Hex: got %s, want %s", Hex(got), tt.in)
			}
		})
	}
}
