package annotation

import "sort"

// ModelsSet is an identity-keyed collection of annotations. Replacing a model
// that has the same ID as an existing one overwrites it: the last write wins.
//
// ModelsSet implies no ordering; use SortedByZ for draw or hit-test order.
// It is not safe for concurrent use.
type ModelsSet struct {
	models map[ID]Model
}

// NewModelsSet creates a set holding the given models.
func NewModelsSet(models ...Model) *ModelsSet {
	s := &ModelsSet{models: make(map[ID]Model, len(models))}
	for _, m := range models {
		s.Update(m)
	}
	return s
}

// Contains reports whether a model with id is present.
func (s *ModelsSet) Contains(id ID) bool {
	_, ok := s.models[id]
	return ok
}

// Get returns the model stored under id.
func (s *ModelsSet) Get(id ID) (Model, bool) {
	m, ok := s.models[id]
	return m, ok
}

// Update inserts m or replaces the model with the same ID.
func (s *ModelsSet) Update(m Model) {
	if m == nil {
		return
	}
	s.models[m.Meta().ID] = m
}

// Remove deletes the model stored under id and returns it.
func (s *ModelsSet) Remove(id ID) (Model, bool) {
	m, ok := s.models[id]
	if ok {
		delete(s.models, id)
	}
	return m, ok
}

// Len returns the number of models.
func (s *ModelsSet) Len() int {
	return len(s.models)
}

// All returns a snapshot of every model in unspecified order.
func (s *ModelsSet) All() []Model {
	out := make([]Model, 0, len(s.models))
	for _, m := range s.models {
		out = append(out, m)
	}
	return out
}

// Clear removes every model.
func (s *ModelsSet) Clear() {
	s.models = make(map[ID]Model)
}

// MaxZPosition returns the highest draw-order key, or 0 for an empty set.
func (s *ModelsSet) MaxZPosition() float64 {
	var max float64
	first := true
	for _, m := range s.models {
		if z := m.Meta().ZPosition; first || z > max {
			max = z
			first = false
		}
	}
	return max
}

// SortedByZ orders models by draw order, ties broken by ID so the result is
// deterministic. With descending set, the topmost model comes first.
func SortedByZ(models []Model, descending bool) []Model {
	out := make([]Model, len(models))
	copy(out, models)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Meta(), out[j].Meta()
		if a.ZPosition != b.ZPosition {
			if descending {
				return a.ZPosition > b.ZPosition
			}
			return a.ZPosition < b.ZPosition
		}
		if descending {
			return a.ID > b.ID
		}
		return a.ID < b.ID
	})
	return out
}
