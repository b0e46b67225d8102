package manager

import (
	"image/color"

	"github.com/ironsheep/image-annotate-mcp/internal/annotation"
)

// Observer receives document changes synchronously, in mutation order.
type Observer interface {
	// ModelsChanged reports inserted or replaced models.
	ModelsChanged(models []annotation.Model)
	// ModelsRemoved reports the ids of deleted models.
	ModelsRemoved(ids []annotation.ID)
	// SelectionChanged reports the previous and current selection; either may be nil.
	SelectionChanged(previous, current annotation.Model)
	// PaletteChanged reports a new background palette.
	PaletteChanged(palette []color.RGBA)
}

// ObserverFuncs adapts optional callbacks to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	OnModelsChanged    func([]annotation.Model)
	OnModelsRemoved    func([]annotation.ID)
	OnSelectionChanged func(previous, current annotation.Model)
	OnPaletteChanged   func([]color.RGBA)
}

func (f ObserverFuncs) ModelsChanged(models []annotation.Model) {
	if f.OnModelsChanged != nil {
		f.OnModelsChanged(models)
	}
}

func (f ObserverFuncs) ModelsRemoved(ids []annotation.ID) {
	if f.OnModelsRemoved != nil {
		f.OnModelsRemoved(ids)
	}
}

func (f ObserverFuncs) SelectionChanged(previous, current annotation.Model) {
	if f.OnSelectionChanged != nil {
		f.OnSelectionChanged(previous, current)
	}
}

func (f ObserverFuncs) PaletteChanged(palette []color.RGBA) {
	if f.OnPaletteChanged != nil {
		f.OnPaletteChanged(palette)
	}
}

type observerEntry struct {
	id       int
	observer Observer
}

// Subscribe registers o and returns a func that removes it.
func (m *Manager) Subscribe(o Observer) (unsubscribe func()) {
	id := m.nextObserverID
	m.nextObserverID++
	m.observers = append(m.observers, observerEntry{id: id, observer: o})
	return func() {
		for i, e := range m.observers {
			if e.id == id {
				m.observers = append(m.observers[:i], m.observers[i+1:]...)
				return
			}
		}
	}
}

func (m *Manager) each(fn func(Observer)) {
	for _, e := range append([]observerEntry(nil), m.observers...) {
		fn(e.observer)
	}
}

func (m *Manager) notifyChanged(models []annotation.Model) {
	if len(models) == 0 {
		return
	}
	m.each(func(o Observer) { o.ModelsChanged(models) })
}

func (m *Manager) notifyRemoved(ids []annotation.ID) {
	if len(ids) == 0 {
		return
	}
	m.each(func(o Observer) { o.ModelsRemoved(ids) })
}

func (m *Manager) notifySelection(previous, current annotation.Model) {
	m.each(func(o Observer) { o.SelectionChanged(previous, current) })
}

func (m *Manager) notifyPalette(palette []color.RGBA) {
	m.each(func(o Observer) { o.PaletteChanged(palette) })
}
