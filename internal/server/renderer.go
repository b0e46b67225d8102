package server

import (
	"github.com/ironsheep/image-annotate-mcp/internal/annotation"
	"github.com/ironsheep/image-annotate-mcp/internal/interaction"
)

// Event is one renderer call, reported back to the client so it can redraw.
type Event struct {
	Kind   string        `json:"kind"`
	ID     annotation.ID `json:"id,omitempty"`
	Detail string        `json:"detail,omitempty"`
}

// eventRenderer records renderer calls between tool invocations.
type eventRenderer struct {
	events   []Event
	onChange func(string)
}

var _ interaction.Renderer = (*eventRenderer)(nil)

func (r *eventRenderer) add(e Event) { r.events = append(r.events, e) }

// take returns the recorded events and starts a new batch.
func (r *eventRenderer) take() []Event {
	events := r.events
	r.events = nil
	if events == nil {
		return []Event{}
	}
	return events
}

func (r *eventRenderer) Render(models []annotation.Model) {
	for _, m := range models {
		r.add(Event{Kind: "render", ID: m.Meta().ID, Detail: string(m.Type())})
	}
}

func (r *eventRenderer) RenderSelection(m annotation.Model, selected bool) {
	kind := "deselect"
	if selected {
		kind = "select"
	}
	r.add(Event{Kind: kind, ID: m.Meta().ID})
}

func (r *eventRenderer) RenderRemoval(id annotation.ID) {
	r.add(Event{Kind: "remove", ID: id})
}

func (r *eventRenderer) StartEditingText(m annotation.Text, onChange func(string)) {
	r.onChange = onChange
	r.add(Event{Kind: "start_editing", ID: m.ID, Detail: m.Text})
}

func (r *eventRenderer) StopEditingText(m annotation.Text) {
	r.onChange = nil
	r.add(Event{Kind: "stop_editing", ID: m.ID, Detail: m.Text})
}

func (r *eventRenderer) SetCursor(hint interaction.CursorHint) {
	r.add(Event{Kind: "cursor", Detail: string(hint)})
}
