package keyboard

import (
	"errors"
	"sync"
)

// ErrNoBackend is returned when no native backend is wired. Fields keep
// working without a native keyboard (hardware-keyboard input only).
var ErrNoBackend = errors.New("keyboard: no native backend")

// Backend is the platform side of the protocol. Implementations forward to
// the native layer; calls may be acknowledged asynchronously through pushed
// events.
type Backend interface {
	// Show asks the platform to present the keyboard configured by the JSON
	// payload.
	Show(configJSON string) error

	// Hide asks the platform to dismiss the keyboard.
	Hide() error

	// SyncText pushes the engine's committed text state down to the native
	// editor.
	SyncText(text string, selStart, selEnd int) error

	// Visible reports the platform's own idea of visibility, for
	// reconciliation after missed events.
	Visible() bool
}

// Handler receives drained events on the engine thread.
type Handler interface {
	// HandleTextEdit applies the native edit state to the field.
	HandleTextEdit(text string, selStart, selEnd int)

	// HandleSpecialKey applies a forwarded key press.
	HandleSpecialKey(key SpecialKey, shift, ctrl bool)

	// HandleAction ends the editing session. kind is EventDone, EventNext
	// or EventCancel.
	HandleAction(kind EventKind)

	// HandleHeightChanged reports the occlusion height so the host can
	// scroll the field into view.
	HandleHeightChanged(height float32)
}

// Keyboard owns the engine side of the native keyboard protocol: the
// lifecycle state machine, the bounded cross-thread queue, and the last
// synced text state used to discard stale native echoes.
//
// Push is safe to call from the native thread. Everything else belongs to
// the engine thread.
type Keyboard struct {
	mu      sync.Mutex
	machine stateMachine
	queue   *queue
	backend Backend

	// Last state pushed down with SyncText. A text edit event equal to it
	// is the native layer echoing our own sync back and carries no new
	// information.
	syncedText  string
	syncedStart int
	syncedEnd   int
	hasSynced   bool
}

// New builds a Keyboard over the given backend. A nil backend is allowed;
// Show and Hide then report ErrNoBackend and the state machine stays Hidden.
func New(backend Backend) *Keyboard {
	return &Keyboard{queue: newQueue(0), backend: backend}
}

// State returns the current lifecycle state.
func (k *Keyboard) State() State {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.machine.state
}

// Height returns the last reported occlusion height.
func (k *Keyboard) Height() float32 {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.machine.height
}

// Dropped returns how many native events were refused by the full queue.
func (k *Keyboard) Dropped() uint64 {
	return k.queue.droppedCount()
}

// Show requests the native keyboard with the given configuration.
func (k *Keyboard) Show(cfg Config) error {
	payload, err := cfg.MarshalPayload()
	if err != nil {
		return err
	}
	k.mu.Lock()
	k.machine.requestShow()
	backend := k.backend
	k.mu.Unlock()
	if backend == nil {
		return ErrNoBackend
	}
	return backend.Show(payload)
}

// Hide requests dismissal.
func (k *Keyboard) Hide() error {
	k.mu.Lock()
	k.machine.requestHide()
	backend := k.backend
	k.mu.Unlock()
	if backend == nil {
		return ErrNoBackend
	}
	return backend.Hide()
}

// Push enqueues a native event. It is the one entry point for the native
// thread and reports whether the event was accepted.
func (k *Keyboard) Push(ev Event) bool {
	return k.queue.push(ev)
}

// SyncFrame pushes the committed text state to the native editor, skipping
// the call when nothing changed since the last sync.
func (k *Keyboard) SyncFrame(text string, selStart, selEnd int) error {
	k.mu.Lock()
	if k.hasSynced && text == k.syncedText && selStart == k.syncedStart && selEnd == k.syncedEnd {
		k.mu.Unlock()
		return nil
	}
	k.syncedText = text
	k.syncedStart = selStart
	k.syncedEnd = selEnd
	k.hasSynced = true
	backend := k.backend
	k.mu.Unlock()
	if backend == nil {
		return nil
	}
	return backend.SyncText(text, selStart, selEnd)
}

// ClearQueue discards everything queued, for focus changes: events from the
// previous field must not replay into the next one.
func (k *Keyboard) ClearQueue() {
	k.queue.clear()
}

// Drain processes all queued events in arrival order on the engine thread.
// Lifecycle events feed the state machine; edit and key events go to the
// handler. A terminal action (Done, Next, Cancel) is forwarded and the rest
// of the batch discarded, since it was produced against a session that just
// ended.
func (k *Keyboard) Drain(h Handler) {
	events := k.queue.drain()
	for _, ev := range events {
		switch ev.Kind {
		case EventShown:
			k.mu.Lock()
			k.machine.platformShown()
			k.mu.Unlock()
		case EventHidden:
			k.mu.Lock()
			k.machine.platformHidden()
			k.mu.Unlock()
		case EventHeightChanged:
			k.mu.Lock()
			k.machine.heightChanged(ev.Height)
			k.mu.Unlock()
			if h != nil {
				h.HandleHeightChanged(ev.Height)
			}
		case EventTextEdit:
			if k.staleEcho(ev) {
				continue
			}
			k.mu.Lock()
			k.syncedText = ev.Text
			k.syncedStart = ev.SelStart
			k.syncedEnd = ev.SelEnd
			k.hasSynced = true
			k.mu.Unlock()
			if h != nil {
				h.HandleTextEdit(ev.Text, ev.SelStart, ev.SelEnd)
			}
		case EventSpecialKey:
			if h != nil {
				h.HandleSpecialKey(ev.Key, ev.Shift, ev.Ctrl)
			}
		case EventDone, EventNext, EventCancel:
			if h != nil {
				h.HandleAction(ev.Kind)
			}
			return
		}
	}
}

// staleEcho reports whether a text edit event merely repeats the state we
// last synced down.
func (k *Keyboard) staleEcho(ev Event) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.hasSynced &&
		ev.Text == k.syncedText &&
		ev.SelStart == k.syncedStart &&
		ev.SelEnd == k.syncedEnd
}
