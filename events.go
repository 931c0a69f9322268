package inputfield

import "log"

// BeginReason identifies what started an editing session.
type BeginReason int

const (
	BeginByTap BeginReason = iota + 1
	BeginByKeyboardFocus
	BeginByProgram
)

// EndReason identifies what ended an editing session.
type EndReason int

const (
	EndBySubmit EndReason = iota + 1
	EndByNext
	EndByCancel
	EndByFocusLoss
	EndByProgram
)

// Callbacks are the events the engine surfaces to the host application.
// Unset callbacks are skipped. All callbacks fire on the main thread, during
// the call that caused them.
type Callbacks struct {
	// SelectionChanged fires when the field gains or loses an active selection.
	SelectionChanged func(hasSelection bool)

	// BeginEdit fires when an editing session starts.
	BeginEdit func(reason BeginReason)

	// EndEdit fires when an editing session ends, with the final text.
	EndEdit func(text string, reason EndReason)

	// ValueChanged fires whenever the committed raw text changes.
	ValueChanged func(text string)

	// CaretPositionChanged fires when the caret moves.
	CaretPositionChanged func(pos int)

	// TextSelectionChanged fires when the selection bounds change.
	TextSelectionChanged func(start, end int)

	// SpecialKeyPressed forwards special keys reported by the native keyboard.
	SpecialKeyPressed func(code int)

	// KeyboardHeightChanged reports the native keyboard occlusion height so
	// the host can scroll the field into view.
	KeyboardHeightChanged func(height float32)

	// Warning is the host-visible warning channel. Nothing in the engine is
	// fatal; bad configuration and unsupported operations degrade to
	// last-known-good state and report here. Defaults to log.Printf.
	Warning func(format string, args ...any)
}

func (c *Callbacks) warnf(format string, args ...any) {
	if c.Warning != nil {
		c.Warning(format, args...)
		return
	}
	log.Printf("inputfield: "+format, args...)
}
