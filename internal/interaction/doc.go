// Package interaction turns pointer events into annotation edits.
//
// A Handler is a small state machine driven by PointerDown, PointerDragged
// and PointerUp. A press on a knob of the selected model starts a resize, a
// press on a model starts a move, and a press on empty canvas either creates
// a marker or label immediately or starts a drag-to-create gesture for the
// active creation type. Drags publish uncommitted previews through the
// manager's selection; PointerUp commits the result with one undo entry.
//
// Label editing is a session that outlives the gesture that started it: the
// Renderer hosts the text field and reports edits through a callback, and the
// session ends on the next click or an explicit EndEditing.
//
// Events are handled synchronously on the caller's goroutine. There are no
// timers; a second click without a drag on an already selected label is what
// starts editing.
package interaction
