package inputfield

import (
	"github.com/glasswing/inputfield/emoji"
	"github.com/glasswing/inputfield/rules"
)

// ============================================================================
// Text manipulation
// ============================================================================

// Manipulator turns editing commands (typed text, deletions, clipboard
// traffic) into new EditFrames. It never mutates frames in place; callers
// commit the returned frame through the engine's apply path.
type Manipulator struct {
	// Validator filters typed and pasted characters. Nil accepts everything.
	Validator *rules.Validator

	// Emoji makes single-character deletions cluster-aware. Nil falls back
	// to one rune per step.
	Emoji EmojiSource

	// Clipboard backs Cut, Copy and Paste. Nil turns them into no-ops
	// (Cut still deletes the selection).
	Clipboard Clipboard

	// EmojisAllowed admits whole grapheme clusters without running them
	// through the validator.
	EmojisAllowed bool

	// Secure marks a password field: Cut and Copy always place the empty
	// string on the clipboard so masked content cannot leak through it.
	Secure bool
}

// limit returns the configured rune cap, 0 for unlimited.
func (m *Manipulator) limit() int {
	if m.Validator == nil {
		return 0
	}
	return m.Validator.Limit
}

// Insert types a chunk at the caret, replacing any active selection. The
// chunk runs through the validator character by character, except that a
// whole emoji cluster is admitted or dropped as a unit when emojis are
// allowed.
func (m *Manipulator) Insert(frame EditFrame, chunk string) EditFrame {
	if chunk == "" {
		return frame.Clamped()
	}
	frame = frame.Clamped()

	if m.EmojisAllowed && isEmojiChunk(chunk) {
		f := frame.Splice(frame.SelStart, frame.SelEnd, "")
		if lim := m.limit(); lim > 0 && f.Len()+len([]rune(chunk)) > lim {
			return f
		}
		return f.Splice(f.SelStart, f.SelStart, chunk)
	}

	if m.Validator == nil {
		f := frame.Splice(frame.SelStart, frame.SelEnd, "")
		return f.Splice(f.SelStart, f.SelStart, chunk)
	}

	text, caret := m.Validator.Validate(frame.Text, chunk, frame.SelEnd, frame.SelStart)
	return NewEditFrame(text, caret, caret)
}

// isEmojiChunk reports whether the chunk is one emoji that the per-character
// validator cannot meaningfully judge: either a single pictographic rune or
// one multi-rune grapheme cluster.
func isEmojiChunk(chunk string) bool {
	runes := []rune(chunk)
	switch len(runes) {
	case 0:
		return false
	case 1:
		return emoji.IsRune(runes[0])
	}
	c, ok := emoji.NextCluster(runes, 0)
	return ok && c.Len() == len(runes)
}

// DeleteSelection removes the selected range. A collapsed selection is a
// no-op.
func (m *Manipulator) DeleteSelection(frame EditFrame) EditFrame {
	frame = frame.Clamped()
	if !frame.HasSelection() {
		return frame
	}
	return frame.Splice(frame.SelStart, frame.SelEnd, "")
}

// Backspace deletes the selection, or the character (whole emoji cluster)
// before the caret.
func (m *Manipulator) Backspace(frame EditFrame) EditFrame {
	frame = frame.Clamped()
	if frame.HasSelection() {
		return m.DeleteSelection(frame)
	}
	caret := frame.SelStart
	if caret == 0 {
		return frame
	}
	from := caret - 1
	if m.Emoji != nil {
		if length, ok := m.Emoji.PrevCluster(frame.Runes(), caret); ok {
			from = caret - length
		}
	}
	return frame.Splice(from, caret, "")
}

// DeleteForward mirrors Backspace for the character after the caret.
func (m *Manipulator) DeleteForward(frame EditFrame) EditFrame {
	frame = frame.Clamped()
	if frame.HasSelection() {
		return m.DeleteSelection(frame)
	}
	caret := frame.SelStart
	if caret >= frame.Len() {
		return frame
	}
	to := caret + 1
	if m.Emoji != nil {
		if length, ok := m.Emoji.NextCluster(frame.Runes(), caret); ok {
			to = caret + length
		}
	}
	return frame.Splice(caret, to, "")
}

// Copy places the selected text on the clipboard and returns it. A secure
// field always publishes the empty string.
func (m *Manipulator) Copy(frame EditFrame) string {
	frame = frame.Clamped()
	text := frame.SelectedText()
	if m.Secure {
		text = ""
	}
	if m.Clipboard != nil {
		m.Clipboard.Set(text)
	}
	return text
}

// Cut is Copy followed by deleting the selection.
func (m *Manipulator) Cut(frame EditFrame) EditFrame {
	m.Copy(frame)
	return m.DeleteSelection(frame)
}

// Paste inserts the clipboard contents at the caret, validated like typed
// text.
func (m *Manipulator) Paste(frame EditFrame) EditFrame {
	if m.Clipboard == nil {
		return frame.Clamped()
	}
	return m.Insert(frame, m.Clipboard.Get())
}

// Replace substitutes the word under a collapsed caret (or the active
// selection) with the chunk. Autocorrect and IME candidate acceptance land
// here.
func (m *Manipulator) Replace(frame EditFrame, chunk string) EditFrame {
	frame = frame.Clamped()
	if !frame.HasSelection() {
		start, end := WordRegionAt(frame.Text, frame.SelStart)
		frame = frame.WithSelection(start, end)
	}
	return m.Insert(frame, chunk)
}
