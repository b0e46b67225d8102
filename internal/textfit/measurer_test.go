package textfit

import (
	"sync"
	"testing"

	"github.com/ironsheep/image-annotate-mcp/internal/annotation"
	"github.com/ironsheep/image-annotate-mcp/internal/geometry"
)

func newMeasurer(t *testing.T) *Measurer {
	t.Helper()
	m, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return m
}

func TestMeasure_Basics(t *testing.T) {
	m := newMeasurer(t)
	style := annotation.TextStyle{FontSize: 20}

	empty := m.Measure("", style, 200)
	if empty.Height <= 0 {
		t.Errorf("empty text should still measure one line, got height %v", empty.Height)
	}
	if empty.Width != 0 {
		t.Errorf("empty text width: got %v, want 0", empty.Width)
	}

	short := m.Measure("hi", style, 1000)
	long := m.Measure("hello there", style, 1000)
	if long.Width <= short.Width {
		t.Errorf("longer text should be wider: %v <= %v", long.Width, short.Width)
	}
	if long.Height != short.Height {
		t.Errorf("single lines differ in height: %v vs %v", long.Height, short.Height)
	}
}

func TestMeasure_Wraps(t *testing.T) {
	m := newMeasurer(t)
	style := annotation.TextStyle{FontSize: 20}
	text := "the quick brown fox jumps over the lazy dog"

	wide := m.Measure(text, style, 10000)
	narrow := m.Measure(text, style, wide.Width/3)

	if narrow.Height <= wide.Height {
		t.Errorf("wrapping should add lines: narrow %v, wide %v", narrow.Height, wide.Height)
	}
	if narrow.Width > wide.Width/3 {
		t.Errorf("wrapped width %v exceeds limit %v", narrow.Width, wide.Width/3)
	}
}

func TestMeasure_ScalesWithSize(t *testing.T) {
	m := newMeasurer(t)
	small := m.Measure("label", annotation.TextStyle{FontSize: 12}, 1000)
	large := m.Measure("label", annotation.TextStyle{FontSize: 48}, 1000)

	if large.Width <= small.Width || large.Height <= small.Height {
		t.Errorf("48pt %+v should exceed 12pt %+v", large, small)
	}
	if m.LineHeight(48) <= m.LineHeight(12) {
		t.Error("line height should grow with size")
	}
}

func TestMeasure_OutlinePadding(t *testing.T) {
	m := newMeasurer(t)
	plain := m.Measure("label", annotation.TextStyle{FontSize: 20}, 1000)
	outlined := m.Measure("label", annotation.TextStyle{FontSize: 20, OutlineWidth: 3}, 1000)

	if outlined.Width != plain.Width+6 || outlined.Height != plain.Height+6 {
		t.Errorf("got %+v, want %+v padded by 6", outlined, plain)
	}
}

func TestFitFontSize_RealMetrics(t *testing.T) {
	m := newMeasurer(t)
	style := annotation.TextStyle{FontSize: 12}
	box := geometry.Size{Width: 300, Height: 80}

	size := annotation.FitFontSize(m, "Fix this button", style, box)

	style.FontSize = size
	got := m.Measure("Fix this button", style, box.Width)
	if got.Width > box.Width || got.Height > box.Height {
		t.Errorf("size %v measures %+v, does not fit %+v", size, got, box)
	}
	if size <= 12 {
		t.Errorf("size %v should grow past the starting 12", size)
	}
}

func TestMeasure_Concurrent(t *testing.T) {
	m := newMeasurer(t)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m.Measure("concurrent", annotation.TextStyle{FontSize: float64(10 + i)}, 500)
		}(i)
	}
	wg.Wait()
}

func TestNewFromTTF_Invalid(t *testing.T) {
	if _, err := NewFromTTF([]byte("not a font")); err == nil {
		t.Error("expected parse error")
	}
}
