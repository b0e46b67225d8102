// Package manager owns the live annotation document: the model store, the
// current selection, the drawing settings and the undo history.
//
// Every committed mutation flows through one internal batch step that applies
// the changes, renumbers Number markers so their values stay 1..n, notifies
// observers, and records a single undo action capturing the values from
// before the mutation. Undoing replays those values through the same step, so
// an undo is itself undoable.
//
// A Manager is not safe for concurrent use. The only background work,
// palette sampling, hands its result back through a Dispatcher supplied by
// the owner of the session goroutine.
package manager
