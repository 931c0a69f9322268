package keyboard

// State tracks where the native keyboard is in its show/hide lifecycle. The
// pending states cover the window between a request and the platform's
// asynchronous acknowledgement; requests arriving inside that window retarget
// the pending state instead of being dropped.
type State int

const (
	Hidden State = iota
	PendingShow
	Visible
	PendingHide
)

func (s State) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case PendingShow:
		return "pending-show"
	case Visible:
		return "visible"
	case PendingHide:
		return "pending-hide"
	}
	return "unknown"
}

// stateMachine applies the lifecycle transitions. It is not synchronized;
// Keyboard serializes access.
type stateMachine struct {
	state  State
	height float32
}

// requestShow is the engine asking for the keyboard.
func (m *stateMachine) requestShow() {
	switch m.state {
	case Hidden, PendingHide:
		// A show during pending-hide supersedes the hide; the platform ack
		// for the hide, if it still arrives, is reconciled by height.
		m.state = PendingShow
	}
}

// requestHide is the engine dismissing the keyboard.
func (m *stateMachine) requestHide() {
	switch m.state {
	case Visible, PendingShow:
		m.state = PendingHide
	}
}

// platformShown is the native layer acknowledging visibility.
func (m *stateMachine) platformShown() {
	if m.state != PendingHide {
		m.state = Visible
	}
}

// platformHidden is the native layer acknowledging dismissal.
func (m *stateMachine) platformHidden() {
	if m.state != PendingShow {
		m.state = Hidden
	}
}

// heightChanged folds in the occlusion height. Zero height is authoritative:
// whatever the bookkeeping says, a keyboard with no height is not on screen.
func (m *stateMachine) heightChanged(h float32) {
	m.height = h
	if h == 0 {
		m.state = Hidden
		return
	}
	if m.state == PendingShow {
		m.state = Visible
	}
}
