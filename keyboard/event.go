// Package keyboard implements the cross-thread protocol between the input
// engine and a native on-screen keyboard. The native layer runs on its own
// thread and communicates through a bounded event queue drained once per
// engine tick; the engine side pushes text state down through a Backend.
//
// Events carry plain text and rune-index selection bounds rather than engine
// types, so the package stays free of the engine's frame model and can sit
// below it.
package keyboard

// EventKind discriminates queued native events.
type EventKind int

const (
	// EventTextEdit reports the native edit state: the keyboard's view of
	// the text and selection after user input on the native side.
	EventTextEdit EventKind = iota

	// EventShown and EventHidden report the platform's own visibility
	// transitions.
	EventShown
	EventHidden

	// EventHeightChanged reports the keyboard occlusion height. A height of
	// zero is the authoritative "not on screen" signal on every platform.
	EventHeightChanged

	// EventDone, EventNext and EventCancel are terminal: the user dismissed
	// the keyboard, and anything still queued behind them is stale.
	EventDone
	EventNext
	EventCancel

	// EventSpecialKey is a non-text key press routed to the engine.
	EventSpecialKey
)

func (k EventKind) String() string {
	switch k {
	case EventTextEdit:
		return "text-edit"
	case EventShown:
		return "shown"
	case EventHidden:
		return "hidden"
	case EventHeightChanged:
		return "height-changed"
	case EventDone:
		return "done"
	case EventNext:
		return "next"
	case EventCancel:
		return "cancel"
	case EventSpecialKey:
		return "special-key"
	}
	return "unknown"
}

// SpecialKey identifies non-text keys the native layer forwards instead of
// handling itself.
type SpecialKey int

const (
	KeyNone SpecialKey = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyBackspace
	KeyDelete
	KeyEnter
	KeyTab
	KeyEscape
)

// Event is one message from the native keyboard thread. Only the fields
// relevant to its Kind are set.
type Event struct {
	Kind EventKind

	// Text edit state (EventTextEdit).
	Text     string
	SelStart int
	SelEnd   int

	// Occlusion height in native points (EventHeightChanged).
	Height float32

	// Key press detail (EventSpecialKey).
	Key   SpecialKey
	Shift bool
	Ctrl  bool
}
