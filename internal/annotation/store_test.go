package annotation

import (
	"testing"

	"github.com/ironsheep/image-annotate-mcp/internal/geometry"
)

func TestModelsSet_LastWriteWins(t *testing.T) {
	a := Arrow{Header: Header{ID: "a"}, Origin: geometry.Pt(0, 0), To: geometry.Pt(20, 0)}
	s := NewModelsSet(a)

	moved := Move(a, geometry.Pt(5, 5))
	s.Update(moved)

	if s.Len() != 1 {
		t.Fatalf("len: got %d, want 1", s.Len())
	}
	got, ok := s.Get("a")
	if !ok {
		t.Fatal("model a missing")
	}
	if got.(Arrow).Origin != geometry.Pt(5, 5) {
		t.Errorf("origin: got %v, want (5,5)", got.(Arrow).Origin)
	}
}

func TestModelsSet_Remove(t *testing.T) {
	s := NewModelsSet(Number{Header: Header{ID: "n1"}, Value: 1}, Number{Header: Header{ID: "n2"}, Value: 2})

	removed, ok := s.Remove("n1")
	if !ok || removed.(Number).Value != 1 {
		t.Fatalf("remove n1: got (%v, %v)", removed, ok)
	}
	if s.Contains("n1") {
		t.Error("n1 still present")
	}
	if _, ok := s.Remove("n1"); ok {
		t.Error("second remove should report missing")
	}
	if s.Len() != 1 {
		t.Errorf("len: got %d, want 1", s.Len())
	}

	s.Update(nil)
	if s.Len() != 1 {
		t.Errorf("nil update changed len to %d", s.Len())
	}

	s.Clear()
	if s.Len() != 0 || len(s.All()) != 0 {
		t.Errorf("clear left %d models", s.Len())
	}
}

func TestModelsSet_MaxZPosition(t *testing.T) {
	tests := []struct {
		name string
		zs   []float64
		want float64
	}{
		{"empty", nil, 0},
		{"positive", []float64{1, 5, 3}, 5},
		{"all negative", []float64{-3, -1, -7}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewModelsSet()
			for _, z := range tt.zs {
				s.Update(Pen{Header: Header{ID: NewID(), ZPosition: z}})
			}
			if got := s.MaxZPosition(); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSortedByZ(t *testing.T) {
	models := []Model{
		Pen{Header: Header{ID: "c", ZPosition: 2}},
		Pen{Header: Header{ID: "a", ZPosition: 1}},
		Pen{Header: Header{ID: "b", ZPosition: 2}},
	}

	asc := SortedByZ(models, false)
	wantAsc := []ID{"a", "b", "c"}
	for i, m := range asc {
		if m.Meta().ID != wantAsc[i] {
			t.Errorf("ascending[%d]: got %s, want %s", i, m.Meta().ID, wantAsc[i])
		}
	}

	desc := SortedByZ(models, true)
	wantDesc := []ID{"c", "b", "a"}
	for i, m := range desc {
		if m.Meta().ID != wantDesc[i] {
			t.Errorf("descending[%d]: got %s, want %s", i, m.Meta().ID, wantDesc[i])
		}
	}

	if models[0].Meta().ID != "c" {
		t.Error("input slice was reordered")
	}
}
