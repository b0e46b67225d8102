package manager

import "github.com/ironsheep/image-annotate-mcp/internal/annotation"

// Selected returns the current selection, which may hold uncommitted geometry
// during a drag.
func (m *Manager) Selected() (annotation.Model, bool) {
	return m.selected, m.selected != nil
}

// IsSelected reports whether the model with id is the current selection.
func (m *Manager) IsSelected(id annotation.ID) bool {
	return m.selected != nil && m.selected.Meta().ID == id
}

// Select makes model the selection. It is a no-op when model is not committed.
func (m *Manager) Select(model annotation.Model) {
	if model == nil || !m.models.Contains(model.Meta().ID) {
		return
	}
	m.setSelected(model)
}

// SelectUnchecked makes model the selection even if it is not committed. The
// interaction handler uses it to publish drag previews.
func (m *Manager) SelectUnchecked(model annotation.Model) {
	if model == nil {
		return
	}
	m.setSelected(model)
}

// Deselect clears the selection.
func (m *Manager) Deselect() {
	if m.selected == nil {
		return
	}
	m.setSelected(nil)
}

func (m *Manager) setSelected(model annotation.Model) {
	prev := m.selected
	m.selected = model
	m.notifySelection(prev, model)
}
