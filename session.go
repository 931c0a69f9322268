package inputfield

// Session tracks which field currently owns the native keyboard. One Session
// per application window; it is an explicit object rather than a process
// global so that multi-window hosts and tests stay isolated.
//
// Session lives on the main thread with the engines; it is written only on
// focus transitions.
type Session struct {
	focused *Engine
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{}
}

// Focused returns the engine that owns the keyboard, or nil.
func (s *Session) Focused() *Engine {
	return s.focused
}

// focus hands keyboard ownership to e. The previously focused field ends its
// session first, and any events still queued against it are cleared so they
// cannot replay into the newly focused field.
func (s *Session) focus(e *Engine) {
	if s.focused == e {
		return
	}
	if prev := s.focused; prev != nil {
		s.focused = nil
		prev.finishEdit(EndByFocusLoss)
	}
	s.focused = e
}

// unfocus clears ownership if e still holds it.
func (s *Session) unfocus(e *Engine) {
	if s.focused == e {
		s.focused = nil
	}
}
