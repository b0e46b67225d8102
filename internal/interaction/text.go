package interaction

import (
	"reflect"
	"strings"

	"github.com/ironsheep/image-annotate-mcp/internal/annotation"
)

// editSession tracks one open label editor.
type editSession struct {
	model    annotation.Text
	creating bool
}

// Editing returns the label being edited, including uncommitted text.
func (h *Handler) Editing() (annotation.Text, bool) {
	if h.edit == nil {
		return annotation.Text{}, false
	}
	return h.edit.model, true
}

// EditExisting opens an edit session on a committed label without a click.
func (h *Handler) EditExisting(id annotation.ID) bool {
	m, ok := h.manager.Get(id)
	if !ok {
		return false
	}
	t, ok := m.(annotation.Text)
	if !ok {
		return false
	}
	if h.edit != nil {
		h.finishEditing()
	}
	h.manager.Select(t)
	h.startEditing(t, false)
	return true
}

// SetEditingText replaces the text of the open session, as a renderer's
// onChange callback would. It reports false when no session is open.
func (h *Handler) SetEditingText(text string) bool {
	if h.edit == nil {
		return false
	}
	h.textChanged(h.edit.model.ID, text)
	return true
}

// EndEditing closes the open session, committing it like a click elsewhere.
func (h *Handler) EndEditing() bool {
	if h.edit == nil {
		return false
	}
	h.finishEditing()
	return true
}

func (h *Handler) startEditing(t annotation.Text, creating bool) {
	h.edit = &editSession{model: t, creating: creating}
	h.manager.SelectUnchecked(t)
	id := t.ID
	h.renderer.StartEditingText(t, func(text string) { h.textChanged(id, text) })
	h.logger.Printf("[interaction] editing %s (creating=%v)", id, creating)
}

// textChanged applies an edit from the renderer. Callbacks for a session
// that has already closed, or whose label was removed, are ignored.
func (h *Handler) textChanged(id annotation.ID, text string) {
	if h.edit == nil || h.edit.model.ID != id || h.labelRemoved() {
		return
	}
	t := h.edit.model
	t.Text = text
	t = annotation.GrowTextToFit(h.measurer, t)
	h.edit.model = t
	h.manager.SelectUnchecked(t)
}

// labelRemoved reports whether the existing label of the open session has
// left the store, through an undo or a delete.
func (h *Handler) labelRemoved() bool {
	return !h.edit.creating && !h.manager.Contains(h.edit.model.ID)
}

// finishEditing closes the session. A new label is committed unless it is
// blank. An existing label is committed if it changed, and deleted if it was
// cleared. A session whose label was removed is dropped.
func (h *Handler) finishEditing() {
	removed := h.labelRemoved()
	e := h.edit
	h.edit = nil
	h.renderer.StopEditingText(e.model)

	if removed {
		if h.manager.IsSelected(e.model.ID) {
			h.manager.Deselect()
		}
		h.logger.Printf("[interaction] %s removed while editing, edit dropped", e.model.ID)
		return
	}

	t := annotation.TrimTextHeight(h.measurer, e.model)
	blank := strings.TrimSpace(t.Text) == ""
	id := t.ID

	switch {
	case e.creating && blank:
		if h.manager.IsSelected(id) {
			h.manager.Deselect()
		}
		h.logger.Printf("[interaction] discarded empty label %s", id)
	case blank:
		h.manager.Delete(id)
	default:
		if stored, ok := h.manager.Get(id); ok && reflect.DeepEqual(stored, annotation.Model(e.model)) {
			h.manager.Select(stored)
			return
		}
		h.manager.Update(t)
		if stored, ok := h.manager.Get(id); ok {
			h.manager.Select(stored)
		}
	}
}
