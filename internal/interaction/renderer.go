package interaction

import (
	"github.com/ironsheep/image-annotate-mcp/internal/annotation"
	"github.com/ironsheep/image-annotate-mcp/internal/manager"
)

// CursorHint is advisory pointer feedback.
type CursorHint string

const (
	CursorDefault CursorHint = "default"
	CursorMove    CursorHint = "move"
	CursorResize  CursorHint = "resize"
	CursorScale   CursorHint = "scale"
	CursorEdit    CursorHint = "edit"
)

// Renderer draws the document. The engine never touches pixels itself.
type Renderer interface {
	Render(models []annotation.Model)
	RenderSelection(model annotation.Model, selected bool)
	RenderRemoval(id annotation.ID)
	// StartEditingText opens a text field over model. The renderer reports
	// every edit through onChange until StopEditingText is called.
	StartEditingText(model annotation.Text, onChange func(text string))
	StopEditingText(model annotation.Text)
	SetCursor(hint CursorHint)
}

// NopRenderer ignores every call.
type NopRenderer struct{}

func (NopRenderer) Render([]annotation.Model)                      {}
func (NopRenderer) RenderSelection(annotation.Model, bool)         {}
func (NopRenderer) RenderRemoval(annotation.ID)                    {}
func (NopRenderer) StartEditingText(annotation.Text, func(string)) {}
func (NopRenderer) StopEditingText(annotation.Text)                {}
func (NopRenderer) SetCursor(CursorHint)                           {}

// Bind forwards manager changes to r and returns a func that stops forwarding.
// The current document is rendered once immediately.
func Bind(m *manager.Manager, r Renderer) (unbind func()) {
	if models := m.Models(); len(models) > 0 {
		r.Render(models)
	}
	if sel, ok := m.Selected(); ok {
		r.RenderSelection(sel, true)
	}
	return m.Subscribe(manager.ObserverFuncs{
		OnModelsChanged: r.Render,
		OnModelsRemoved: func(ids []annotation.ID) {
			for _, id := range ids {
				r.RenderRemoval(id)
			}
		},
		OnSelectionChanged: func(previous, current annotation.Model) {
			if previous != nil {
				r.RenderSelection(previous, false)
			}
			if current != nil {
				r.RenderSelection(current, true)
			}
		},
	})
}
