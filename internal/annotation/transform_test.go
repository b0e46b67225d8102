package annotation

import (
	"testing"

	"github.com/ironsheep/image-annotate-mcp/internal/geometry"
)

func TestMove(t *testing.T) {
	delta := geometry.Pt(10, -4)
	models := []Model{
		Arrow{Origin: geometry.Pt(0, 0), To: geometry.Pt(30, 30)},
		Rect{Origin: geometry.Pt(0, 0), To: geometry.Pt(30, 30)},
		Pen{Path: []geometry.Point{geometry.Pt(0, 0), geometry.Pt(3, 4), geometry.Pt(9, 9)}},
		Number{Origin: geometry.Pt(0, 0), To: geometry.Pt(30, 30), Value: 2},
		Text{Origin: geometry.Pt(0, 0), To: geometry.Pt(100, 20), Text: "hi"},
	}

	for _, m := range models {
		t.Run(string(m.Type()), func(t *testing.T) {
			moved := Move(m, delta)
			before, after := m.Points(), moved.Points()
			if len(after) != len(before) {
				t.Fatalf("point count: got %d, want %d", len(after), len(before))
			}
			for i := range before {
				if after[i] != before[i].Add(delta) {
					t.Errorf("point %d: got %v, want %v", i, after[i], before[i].Add(delta))
				}
			}
			if moved.Meta() != m.Meta() {
				t.Errorf("header changed: got %+v, want %+v", moved.Meta(), m.Meta())
			}
		})
	}
}

func TestResize_RectTopRight(t *testing.T) {
	r := Rect{Origin: geometry.Pt(0, 0), To: geometry.Pt(50, 50)}

	got := Resize(r, KnobTopRight, geometry.Pt(20, 0), ResizeOptions{}).(Rect)

	want := geometry.Rect{X: 0, Y: 0, Width: 70, Height: 50}
	if got.Box() != want {
		t.Errorf("got %+v, want %+v", got.Box(), want)
	}
}

func TestResize_AnchorStaysPut(t *testing.T) {
	original := Rect{Origin: geometry.Pt(10, 10), To: geometry.Pt(60, 60)}
	anchor := geometry.Pt(10, 10)

	// Total offsets of one drag, including a pass across the anchor.
	deltas := []geometry.Point{
		geometry.Pt(5, 5),
		geometry.Pt(-20, 30),
		geometry.Pt(-70, -70),
		geometry.Pt(0, 0),
	}

	for _, d := range deltas {
		got := Resize(original, KnobTopRight, d, ResizeOptions{}).(Rect)
		box := got.Box()
		hasAnchor := false
		for _, c := range geometry.Corners {
			if box.Corner(c) == anchor {
				hasAnchor = true
			}
		}
		if !hasAnchor {
			t.Errorf("delta %v: box %+v lost anchor %v", d, box, anchor)
		}
	}
}

func TestResize_KeepSquare(t *testing.T) {
	tests := []struct {
		name  string
		knob  KnobType
		delta geometry.Point
		want  geometry.Rect
	}{
		{"wider than tall", KnobTopRight, geometry.Pt(30, 10), geometry.Rect{X: 0, Y: 0, Width: 80, Height: 80}},
		{"taller than wide", KnobTopRight, geometry.Pt(0, 20), geometry.Rect{X: 0, Y: 0, Width: 70, Height: 70}},
		{"bottom left", KnobBottomLeft, geometry.Pt(-10, 5), geometry.Rect{X: -10, Y: -10, Width: 60, Height: 60}},
	}

	r := Rect{Origin: geometry.Pt(0, 0), To: geometry.Pt(50, 50)}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resize(r, tt.knob, tt.delta, ResizeOptions{KeepSquare: true}).(Rect)
			if got.Box() != tt.want {
				t.Errorf("got %+v, want %+v", got.Box(), tt.want)
			}
		})
	}
}

func TestResize_Number(t *testing.T) {
	n := NewNumber(geometry.Pt(15, 15), 4, testDefaults)

	got := Resize(n, KnobBottomLeft, geometry.Pt(-10, -10), ResizeOptions{}).(Number)

	want := geometry.Rect{X: -10, Y: -10, Width: 40, Height: 40}
	if got.Box() != want {
		t.Errorf("got %+v, want %+v", got.Box(), want)
	}
	if got.Value != 4 {
		t.Errorf("value: got %d, want 4", got.Value)
	}
}

func TestResize_ArrowEndpoints(t *testing.T) {
	a := Arrow{Origin: geometry.Pt(0, 0), To: geometry.Pt(50, 0)}

	to := Resize(a, KnobTo, geometry.Pt(0, 25), ResizeOptions{}).(Arrow)
	if to.Origin != a.Origin || to.To != geometry.Pt(50, 25) {
		t.Errorf("to knob: got %v-%v", to.Origin, to.To)
	}

	from := Resize(a, KnobFrom, geometry.Pt(-5, 5), ResizeOptions{}).(Arrow)
	if from.Origin != geometry.Pt(-5, 5) || from.To != a.To {
		t.Errorf("from knob: got %v-%v", from.Origin, from.To)
	}
}

func TestResize_UnsupportedKnobUnchanged(t *testing.T) {
	r := Rect{Origin: geometry.Pt(0, 0), To: geometry.Pt(50, 50)}
	if got := Resize(r, KnobFrom, geometry.Pt(10, 10), ResizeOptions{}).(Rect); got != r {
		t.Errorf("rect with arrow knob: got %+v", got)
	}

	p := Pen{Path: []geometry.Point{geometry.Pt(0, 0), geometry.Pt(10, 10)}}
	got := Resize(p, KnobTopRight, geometry.Pt(10, 10), ResizeOptions{}).(Pen)
	if got.Path[1] != geometry.Pt(10, 10) {
		t.Errorf("pen should not resize: got %v", got.Path)
	}
}

func TestResize_TextWidthFloor(t *testing.T) {
	txt := Text{
		Origin: geometry.Pt(0, 0),
		To:     geometry.Pt(100, 12),
		Style:  TextStyle{FontSize: 10},
		Text:   "aaaa bbbb cccc",
	}
	opts := ResizeOptions{Measurer: testMeasurer}

	left := Resize(txt, KnobResizeLeft, geometry.Pt(200, 0), opts).(Text)
	if !approx(left.Box().Width, MinTextWidth) || !approx(left.Box().MaxX(), 100) {
		t.Errorf("left: got %+v, want width %v ending at 100", left.Box(), MinTextWidth)
	}

	right := Resize(txt, KnobResizeRight, geometry.Pt(-100, 0), opts).(Text)
	box := right.Box()
	if !approx(box.Width, MinTextWidth) || !approx(box.MinX(), 0) {
		t.Errorf("right: got %+v, want width %v starting at 0", box, MinTextWidth)
	}
	// Three wrapped lines of 12 each, grown downward from the fixed top edge.
	if !approx(box.Height, 36) || !approx(box.MaxY(), 12) {
		t.Errorf("right: got height %v top %v, want 36 and 12", box.Height, box.MaxY())
	}
	if right.Style.FontSize != 10 {
		t.Errorf("width resize changed font size to %v", right.Style.FontSize)
	}
}

func TestResize_TextScale(t *testing.T) {
	txt := Text{
		Origin: geometry.Pt(0, 0),
		To:     geometry.Pt(100, 30),
		Style:  TextStyle{FontSize: 10},
		Text:   "hello",
	}
	opts := ResizeOptions{Measurer: testMeasurer}

	grown := Resize(txt, KnobScale, geometry.Pt(0, -30), opts).(Text)
	box := grown.Box()
	if !approx(box.Height, 60) || !approx(box.MaxY(), 30) {
		t.Errorf("box: got %+v, want height 60 with top at 30", box)
	}
	// Width-bound: five runes at half the size must fit in 100.
	if fs := grown.Style.FontSize; fs <= 39.5 || fs > 40 {
		t.Errorf("font size: got %v, want (39.5, 40]", fs)
	}

	shrunk := Resize(txt, KnobScale, geometry.Pt(0, 100), opts).(Text)
	if !approx(shrunk.Box().Height, MinTextHeight) {
		t.Errorf("height floor: got %v, want %v", shrunk.Box().Height, MinTextHeight)
	}
}
