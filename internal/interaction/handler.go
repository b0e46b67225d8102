package interaction

import (
	"io"
	"log"

	"github.com/ironsheep/image-annotate-mcp/internal/annotation"
	"github.com/ironsheep/image-annotate-mcp/internal/geometry"
	"github.com/ironsheep/image-annotate-mcp/internal/manager"
)

// State is the gesture the handler is tracking.
type State int

const (
	StateIdle State = iota
	StatePossibleResize
	StatePossibleMove
	StatePossibleCreate
	StateTextEditing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePossibleResize:
		return "possibleResize"
	case StatePossibleMove:
		return "possibleMove"
	case StatePossibleCreate:
		return "possibleCreate"
	case StateTextEditing:
		return "textEditing"
	}
	return "unknown"
}

// Handler is the pointer state machine for one document.
type Handler struct {
	manager  *manager.Manager
	renderer Renderer
	measurer annotation.TextMeasurer
	logger   *log.Logger

	keepSquare bool
	cursor     CursorHint

	state        State
	knob         annotation.KnobType
	createType   annotation.Type
	original     annotation.Model
	provisional  annotation.Model
	path         []geometry.Point
	dragStart    geometry.Point
	lastPoint    geometry.Point
	dragged      bool
	editEligible bool

	edit *editSession
}

// Option configures a Handler.
type Option func(*Handler)

// WithMeasurer sets how label text is measured. Without one, labels keep the
// size they were given and fonts are never re-fitted.
func WithMeasurer(m annotation.TextMeasurer) Option {
	return func(h *Handler) { h.measurer = m }
}

// WithLogger sets the debug logger.
func WithLogger(l *log.Logger) Option {
	return func(h *Handler) { h.logger = l }
}

// New creates a handler driving m. A nil renderer is replaced by NopRenderer.
func New(m *manager.Manager, r Renderer, opts ...Option) *Handler {
	if r == nil {
		r = NopRenderer{}
	}
	h := &Handler{manager: m, renderer: r, cursor: CursorDefault}
	for _, opt := range opts {
		opt(h)
	}
	if h.logger == nil {
		h.logger = log.New(io.Discard, "", 0)
	}
	return h
}

// State returns the current gesture. Between gestures it reports
// StateTextEditing while a label edit session is open.
func (h *Handler) State() State {
	if h.state == StateIdle && h.edit != nil {
		return StateTextEditing
	}
	return h.state
}

// SetKeepSquare toggles the square-constraint modifier for rect and marker resizes.
func (h *Handler) SetKeepSquare(on bool) { h.keepSquare = on }

func (h *Handler) enabled() bool {
	return h.manager.Settings().UserInteractionEnabled
}

// PointerDown starts a gesture at p.
func (h *Handler) PointerDown(p geometry.Point) {
	if !h.enabled() {
		return
	}
	h.abandonDrag()
	h.dragStart, h.lastPoint = p, p
	settings := h.manager.Settings()

	if sel, ok := h.manager.Selected(); ok {
		if k, ok := annotation.KnobAt(sel, p); ok {
			h.original = sel
			h.knob = k.Type
			h.transition(StatePossibleResize)
			return
		}
	}

	if h.edit != nil {
		creating := h.edit.creating
		h.finishEditing()
		if creating && settings.CreationType == annotation.TypeText {
			h.manager.Deselect()
			return
		}
	}

	if hit, ok := annotation.HitTest(h.manager.Models(), p); ok {
		_, isText := hit.(annotation.Text)
		h.editEligible = isText && h.manager.IsSelected(hit.Meta().ID)
		hit = h.manager.BringToFront(hit)
		h.manager.Select(hit)
		h.original = hit
		h.transition(StatePossibleMove)
		return
	}

	h.manager.Deselect()
	switch settings.CreationType {
	case annotation.TypeNone:
	case annotation.TypeNumber:
		n := annotation.NewNumber(p, h.manager.NextNumberValue(), h.manager.Defaults())
		h.manager.Update(n)
		if stored, ok := h.manager.Get(n.ID); ok {
			h.manager.Select(stored)
		}
	case annotation.TypeText:
		t := annotation.NewText(p, h.measurer, h.manager.Defaults())
		h.startEditing(t, true)
	default:
		h.createType = settings.CreationType
		h.path = []geometry.Point{p}
		h.transition(StatePossibleCreate)
	}
}

// PointerDragged continues the gesture at p and publishes a preview.
func (h *Handler) PointerDragged(p geometry.Point) {
	if !h.enabled() || h.state == StateIdle {
		return
	}
	if p != h.lastPoint {
		h.dragged = true
	}
	h.lastPoint = p
	total := p.Sub(h.dragStart)

	switch h.state {
	case StatePossibleCreate:
		h.path = append(h.path, p)
		if h.provisional == nil {
			h.provisional = h.materialize(p)
			if h.provisional == nil {
				return
			}
		} else {
			h.provisional = annotation.Extend(h.provisional, p)
		}
	case StatePossibleMove:
		if h.originalRemoved() {
			h.abandonDrag()
			return
		}
		h.provisional = annotation.Move(h.original, total)
	case StatePossibleResize:
		if h.originalRemoved() {
			h.abandonDrag()
			return
		}
		h.provisional = annotation.Resize(h.original, h.knob, total, annotation.ResizeOptions{
			KeepSquare: h.keepSquare || h.manager.Settings().KeepSquare,
			Measurer:   h.measurer,
		})
	}
	h.manager.SelectUnchecked(h.provisional)
}

// materialize builds the provisional shape once the drag is long enough.
func (h *Handler) materialize(p geometry.Point) annotation.Model {
	d := h.manager.Defaults()
	if h.createType == annotation.TypePen {
		if pen, ok := annotation.NewPen(h.path, d); ok {
			return pen
		}
		return nil
	}
	if m, ok := annotation.Create(h.createType, h.dragStart, p, d); ok {
		return m
	}
	return nil
}

// PointerUp ends the gesture, committing whatever the drag produced.
func (h *Handler) PointerUp(p geometry.Point) {
	if h.state == StateIdle {
		return
	}
	defer h.reset()
	if !h.enabled() {
		return
	}
	if p != h.lastPoint {
		h.PointerDragged(p)
	}

	switch h.state {
	case StatePossibleCreate:
		if h.provisional == nil {
			h.logger.Printf("[interaction] %s gesture below threshold, nothing created", h.createType)
			return
		}
		h.manager.Update(h.provisional)
		h.manager.Select(h.provisional)
	case StatePossibleMove, StatePossibleResize:
		if h.originalRemoved() {
			h.abandonDrag()
			return
		}
		if h.dragged && h.provisional != nil {
			h.commit(h.provisional)
			return
		}
		if t, ok := h.original.(annotation.Text); ok && h.editEligible && h.edit == nil {
			h.startEditing(t, false)
		}
	}
}

// commit stores a moved or resized model. A label mid-edit keeps its session;
// one still being created stays uncommitted until the session ends.
func (h *Handler) commit(m annotation.Model) {
	if h.edit != nil && h.edit.model.ID == m.Meta().ID {
		if t, ok := m.(annotation.Text); ok {
			h.edit.model = t
		}
		if h.edit.creating {
			h.manager.SelectUnchecked(m)
			return
		}
	}
	h.manager.Update(m)
}

// originalRemoved reports whether the model a move or resize started from
// left the store after PointerDown, through an undo or a delete. A label
// still being created was never stored.
func (h *Handler) originalRemoved() bool {
	if h.original == nil {
		return false
	}
	id := h.original.Meta().ID
	if h.edit != nil && h.edit.creating && h.edit.model.ID == id {
		return false
	}
	return !h.manager.Contains(id)
}

// abandonDrag drops a gesture that never saw PointerUp and puts the
// selection back to its committed value.
func (h *Handler) abandonDrag() {
	if h.state == StateIdle {
		return
	}
	if h.provisional != nil && h.manager.IsSelected(h.provisional.Meta().ID) {
		id := h.provisional.Meta().ID
		switch stored, ok := h.manager.Get(id); {
		case h.edit != nil && h.edit.model.ID == id:
			h.manager.SelectUnchecked(h.edit.model)
		case ok:
			h.manager.Select(stored)
		default:
			h.manager.Deselect()
		}
	}
	h.logger.Printf("[interaction] abandoned %s", h.state)
	h.reset()
}

func (h *Handler) reset() {
	h.state = StateIdle
	h.knob = annotation.KnobNone
	h.createType = annotation.TypeNone
	h.original = nil
	h.provisional = nil
	h.path = nil
	h.dragged = false
	h.editEligible = false
}

func (h *Handler) transition(s State) {
	h.logger.Printf("[interaction] %s -> %s", h.state, s)
	h.state = s
}

// PointerMoved updates the cursor hint for a hover at p and returns it.
// It never changes the document.
func (h *Handler) PointerMoved(p geometry.Point) CursorHint {
	if h.state != StateIdle {
		return h.cursor
	}
	hint := h.hintAt(p)
	if hint != h.cursor {
		h.cursor = hint
		h.renderer.SetCursor(hint)
	}
	return hint
}

func (h *Handler) hintAt(p geometry.Point) CursorHint {
	if sel, ok := h.manager.Selected(); ok {
		if _, isText := sel.(annotation.Text); isText {
			if k, ok := annotation.KnobAt(sel, p); ok {
				if k.Type == annotation.KnobScale {
					return CursorScale
				}
				return CursorResize
			}
		}
	}
	hit, ok := annotation.HitTest(h.manager.Models(), p)
	if !ok {
		return CursorDefault
	}
	if _, isText := hit.(annotation.Text); !isText {
		return CursorDefault
	}
	if h.manager.IsSelected(hit.Meta().ID) {
		return CursorEdit
	}
	return CursorMove
}
