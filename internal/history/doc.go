// Package history records undo and redo actions for an annotation session.
//
// A Stack holds two lists of inverse closures. Recording a new action while
// neither undoing nor redoing truncates the redo list, so history stays linear.
// An action registered while an undo runs lands on the redo list, and one
// registered while a redo runs lands back on the undo list; callers therefore
// implement undo by performing the inverse mutation through their normal
// recording path.
//
// # Observing
//
// Subscribe delivers the derived CanUndo/CanRedo pair whenever it changes.
//
// # Thread Safety
//
// Stack is not safe for concurrent use. It is owned by the goroutine that
// drives the annotation session.
package history
