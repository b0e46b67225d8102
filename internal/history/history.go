package history

// Action restores the state that existed before a recorded mutation.
type Action func()

// State is the observable summary of a Stack.
type State struct {
	CanUndo bool `json:"can_undo"`
	CanRedo bool `json:"can_redo"`
}

type entry struct {
	name   string
	action Action
}

type mode int

const (
	modeIdle mode = iota
	modeUndoing
	modeRedoing
)

type subscriber struct {
	id int
	fn func(State)
}

// Stack is a linear undo/redo history.
type Stack struct {
	undo  []entry
	redo  []entry
	limit int
	mode  mode

	subscribers []subscriber
	nextSubID   int
	last        State
}

// New creates an empty stack keeping at most limit entries per direction.
// A limit of 0 or less keeps everything.
func New(limit int) *Stack {
	return &Stack{limit: limit}
}

// AddUndo records action under name. See the package comment for which list
// receives it.
func (s *Stack) AddUndo(name string, action Action) {
	if action == nil {
		return
	}
	e := entry{name: name, action: action}
	switch s.mode {
	case modeUndoing:
		s.redo = s.push(s.redo, e)
	case modeRedoing:
		s.undo = s.push(s.undo, e)
	default:
		s.undo = s.push(s.undo, e)
		s.redo = nil
	}
	s.publish()
}

func (s *Stack) push(list []entry, e entry) []entry {
	list = append(list, e)
	if s.limit > 0 && len(list) > s.limit {
		list = append(list[:0:0], list[len(list)-s.limit:]...)
	}
	return list
}

// PerformUndo runs the most recent undo action. It reports false when there
// is nothing to undo or an undo or redo is already running.
func (s *Stack) PerformUndo() bool {
	if s.mode != modeIdle || len(s.undo) == 0 {
		return false
	}
	e := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	s.run(modeUndoing, e)
	return true
}

// PerformRedo runs the most recent redo action.
func (s *Stack) PerformRedo() bool {
	if s.mode != modeIdle || len(s.redo) == 0 {
		return false
	}
	e := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	s.run(modeRedoing, e)
	return true
}

func (s *Stack) run(m mode, e entry) {
	s.mode = m
	defer func() {
		s.mode = modeIdle
		s.publish()
	}()
	e.action()
}

// CanUndo reports whether PerformUndo has anything to run.
func (s *Stack) CanUndo() bool { return len(s.undo) > 0 }

// CanRedo reports whether PerformRedo has anything to run.
func (s *Stack) CanRedo() bool { return len(s.redo) > 0 }

// UndoName returns the name of the action PerformUndo would run.
func (s *Stack) UndoName() string {
	if len(s.undo) == 0 {
		return ""
	}
	return s.undo[len(s.undo)-1].name
}

// RedoName returns the name of the action PerformRedo would run.
func (s *Stack) RedoName() string {
	if len(s.redo) == 0 {
		return ""
	}
	return s.redo[len(s.redo)-1].name
}

// IsUndoing reports whether an undo action is running.
func (s *Stack) IsUndoing() bool { return s.mode == modeUndoing }

// IsRedoing reports whether a redo action is running.
func (s *Stack) IsRedoing() bool { return s.mode == modeRedoing }

// Clear empties both lists.
func (s *Stack) Clear() {
	s.undo = nil
	s.redo = nil
	s.publish()
}

// State returns the current CanUndo/CanRedo pair.
func (s *Stack) State() State {
	return State{CanUndo: s.CanUndo(), CanRedo: s.CanRedo()}
}

// Subscribe registers fn for state changes and calls it once with the current
// state. The returned func removes the subscription.
func (s *Stack) Subscribe(fn func(State)) (unsubscribe func()) {
	id := s.nextSubID
	s.nextSubID++
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})
	fn(s.State())
	return func() {
		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}

func (s *Stack) publish() {
	st := s.State()
	if st == s.last {
		return
	}
	s.last = st
	for _, sub := range append([]subscriber(nil), s.subscribers...) {
		sub.fn(st)
	}
}
