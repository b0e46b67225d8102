package annotation

import (
	"testing"

	"github.com/ironsheep/image-annotate-mcp/internal/geometry"
)

func TestNewArrow_Threshold(t *testing.T) {
	tests := []struct {
		name   string
		to     geometry.Point
		wantOK bool
	}{
		{"zero length", geometry.Pt(0, 0), false},
		{"just under", geometry.Pt(9.999, 0), false},
		{"just over", geometry.Pt(10.001, 0), true},
		{"diagonal", geometry.Pt(8, 8), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, ok := NewArrow(geometry.Pt(0, 0), tt.to, testDefaults)
			if ok != tt.wantOK {
				t.Fatalf("ok: got %v, want %v", ok, tt.wantOK)
			}
			if ok && (a.Meta().ID == "" || a.LineWidth != testDefaults.LineWidth) {
				t.Errorf("arrow not stamped with defaults: %+v", a)
			}
		})
	}
}

func TestCreate_Thresholds(t *testing.T) {
	tests := []struct {
		typ    Type
		to     geometry.Point
		wantOK bool
	}{
		{TypeRect, geometry.Pt(4.9, 0), false},
		{TypeRect, geometry.Pt(5.1, 0), true},
		{TypeObfuscate, geometry.Pt(3, 3), false},
		{TypeObfuscate, geometry.Pt(4, 4), true},
		{TypeHighlight, geometry.Pt(0, 6), true},
		{TypePen, geometry.Pt(2, 2), false},
		{TypePen, geometry.Pt(6, 0), true},
		{TypeArrow, geometry.Pt(6, 0), false},
		{TypeNumber, geometry.Pt(50, 50), false},
		{TypeText, geometry.Pt(50, 50), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			m, ok := Create(tt.typ, geometry.Pt(0, 0), tt.to, testDefaults)
			if ok != tt.wantOK {
				t.Fatalf("ok: got %v, want %v", ok, tt.wantOK)
			}
			if ok && m.Type() != tt.typ {
				t.Errorf("type: got %s, want %s", m.Type(), tt.typ)
			}
		})
	}
}

func TestNewNumber_CenteredOnClick(t *testing.T) {
	n := NewNumber(geometry.Pt(100, 100), 3, testDefaults)

	if got := n.Box().Center(); got != geometry.Pt(100, 100) {
		t.Errorf("center: got %v, want (100,100)", got)
	}
	if n.Box().Width != NumberDiameter || n.Box().Height != NumberDiameter {
		t.Errorf("size: got %+v, want %v square", n.Box().Size(), NumberDiameter)
	}
	if n.Value != 3 {
		t.Errorf("value: got %d, want 3", n.Value)
	}
}

func TestNewText_OneLineAtClick(t *testing.T) {
	txt := NewText(geometry.Pt(10, 200), testMeasurer, testDefaults)
	box := txt.Box()

	if !approx(box.MinX(), 10) || !approx(box.MaxY(), 200) {
		t.Errorf("top-left: got (%v,%v), want (10,200)", box.MinX(), box.MaxY())
	}
	if !approx(box.Width, DefaultTextWidth) {
		t.Errorf("width: got %v, want %v", box.Width, DefaultTextWidth)
	}
	wantHeight := 1.2 * DefaultTextStyle.FontSize
	if !approx(box.Height, wantHeight) {
		t.Errorf("height: got %v, want %v", box.Height, wantHeight)
	}
	if txt.Style.TextColor != testDefaults.Color {
		t.Errorf("text color: got %v, want %v", txt.Style.TextColor, testDefaults.Color)
	}
}

func TestExtend(t *testing.T) {
	r := Extend(mustRect(t, geometry.Pt(0, 0), geometry.Pt(10, 10)), geometry.Pt(30, 40)).(Rect)
	if r.To != geometry.Pt(30, 40) || r.Origin != geometry.Pt(0, 0) {
		t.Errorf("rect: got %v-%v", r.Origin, r.To)
	}

	p, _ := NewPen([]geometry.Point{geometry.Pt(0, 0), geometry.Pt(10, 0)}, testDefaults)
	extended := Extend(p, geometry.Pt(20, 5)).(Pen)
	if len(extended.Path) != 3 || extended.Path[2] != geometry.Pt(20, 5) {
		t.Errorf("pen: got %v", extended.Path)
	}
	if len(p.Path) != 2 {
		t.Errorf("original pen mutated: %v", p.Path)
	}
}
