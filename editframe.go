package inputfield

// EditFrame is an immutable snapshot of the field content: the text plus the
// selection bounds, in rune indices. It is the unit of synchronization between
// the engine, the derived representations, and the native keyboard layer.
// Every committed mutation produces a new EditFrame; nothing mutates a frame
// in place. "Did anything change" is therefore a structural comparison, which
// is what gates re-deriving representations and re-syncing the native layer.
type EditFrame struct {
	Text     string
	SelStart int
	SelEnd   int
}

// NewEditFrame builds a frame with the selection clamped into the text.
func NewEditFrame(text string, selStart, selEnd int) EditFrame {
	return EditFrame{Text: text, SelStart: selStart, SelEnd: selEnd}.Clamped()
}

// CaretFrame builds a frame with a collapsed selection at pos.
func CaretFrame(text string, pos int) EditFrame {
	return NewEditFrame(text, pos, pos)
}

// Len returns the text length in runes.
func (f EditFrame) Len() int {
	return len([]rune(f.Text))
}

// Runes returns the text as a rune slice.
func (f EditFrame) Runes() []rune {
	return []rune(f.Text)
}

// HasSelection reports whether the selection is non-empty.
func (f EditFrame) HasSelection() bool {
	return f.SelStart != f.SelEnd
}

// SelectedText returns the selected run of text, or "" for a collapsed selection.
func (f EditFrame) SelectedText() string {
	if !f.HasSelection() {
		return ""
	}
	r := f.Runes()
	return string(r[f.SelStart:f.SelEnd])
}

// Equal reports whether two frames have identical text and selection.
func (f EditFrame) Equal(o EditFrame) bool {
	return f.Text == o.Text && f.SelStart == o.SelStart && f.SelEnd == o.SelEnd
}

// Clamped returns a frame whose selection satisfies
// 0 <= SelStart <= SelEnd <= Len(). External callers (native layer, host
// application) can hand the engine out-of-range selections; those are clamped
// silently rather than rejected, because a text widget must never fail
// mid-keystroke.
func (f EditFrame) Clamped() EditFrame {
	n := f.Len()
	start, end := f.SelStart, f.SelEnd
	if start < 0 {
		start = 0
	}
	if start > n {
		start = n
	}
	if end < start {
		end = start
	}
	if end > n {
		end = n
	}
	f.SelStart = start
	f.SelEnd = end
	return f
}

// WithSelection returns a copy of the frame with a new, clamped selection.
func (f EditFrame) WithSelection(start, end int) EditFrame {
	f.SelStart = start
	f.SelEnd = end
	return f.Clamped()
}

// WithCaret returns a copy of the frame with a collapsed selection at pos.
func (f EditFrame) WithCaret(pos int) EditFrame {
	return f.WithSelection(pos, pos)
}

// Caret returns the caret position for the given orientation. Directional
// navigation sets the orientation so that extending a selection with shift
// moves the correct end.
func (f EditFrame) Caret(caretIsStart bool) int {
	if caretIsStart {
		return f.SelStart
	}
	return f.SelEnd
}

// Splice returns a frame with runes [start, end) replaced by insert, the
// caret collapsed after the inserted text. Bounds are clamped first.
func (f EditFrame) Splice(start, end int, insert string) EditFrame {
	c := f.WithSelection(start, end)
	r := c.Runes()
	ins := []rune(insert)
	out := make([]rune, 0, len(r)-(c.SelEnd-c.SelStart)+len(ins))
	out = append(out, r[:c.SelStart]...)
	out = append(out, ins...)
	out = append(out, r[c.SelEnd:]...)
	return CaretFrame(string(out), c.SelStart+len(ins))
}
