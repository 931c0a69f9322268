package inputfield

import "strings"

// ============================================================================
// Caret navigation
// ============================================================================

// Word boundaries for ctrl-arrow movement and double-click selection.
const wordSeparators = " \t\r\n.,"

func isWordSeparator(r rune) bool {
	return strings.ContainsRune(wordSeparators, r)
}

// Navigator computes caret movement over an EditFrame. Horizontal movement
// is emoji-cluster aware when an EmojiSource is set; vertical movement and
// hit testing consult the Renderer's glyph geometry.
//
// Movement methods take and return the selection orientation flag: true when
// the caret sits at SelStart rather than SelEnd. The flag only matters while
// shift-extending; collapsed selections ignore it.
type Navigator struct {
	Renderer Renderer
	Emoji    EmojiSource
}

// place moves the caret to pos. Without shift the selection collapses there.
// With shift the anchor (the non-caret end) holds and the caret extends,
// re-anchoring when it crosses to the other side.
func place(frame EditFrame, pos int, shift, caretIsStart bool) (EditFrame, bool) {
	pos = clampInt(pos, 0, frame.Len())
	if !shift {
		return frame.WithCaret(pos), false
	}
	anchor := frame.SelEnd
	if !caretIsStart {
		anchor = frame.SelStart
	}
	if pos <= anchor {
		return frame.WithSelection(pos, anchor), true
	}
	return frame.WithSelection(anchor, pos), false
}

// MoveLeft steps the caret one character (one emoji cluster where the text
// has one) to the left. Without shift a non-empty selection collapses to its
// start instead of moving.
func (n *Navigator) MoveLeft(frame EditFrame, shift, caretIsStart bool) (EditFrame, bool) {
	if !shift && frame.HasSelection() {
		return frame.WithCaret(frame.SelStart), false
	}
	caret := frame.Caret(caretIsStart)
	return place(frame, n.PrevChar(frame.Text, caret), shift, caretIsStart)
}

// MoveRight mirrors MoveLeft.
func (n *Navigator) MoveRight(frame EditFrame, shift, caretIsStart bool) (EditFrame, bool) {
	if !shift && frame.HasSelection() {
		return frame.WithCaret(frame.SelEnd), false
	}
	caret := frame.Caret(caretIsStart)
	return place(frame, n.NextChar(frame.Text, caret), shift, caretIsStart)
}

// MoveWordLeft jumps to the previous word start.
func (n *Navigator) MoveWordLeft(frame EditFrame, shift, caretIsStart bool) (EditFrame, bool) {
	caret := frame.Caret(caretIsStart)
	if !shift && frame.HasSelection() {
		caret = frame.SelStart
	}
	return place(frame, PrevWordStart(frame.Text, caret), shift, caretIsStart)
}

// MoveWordRight jumps to the next word start.
func (n *Navigator) MoveWordRight(frame EditFrame, shift, caretIsStart bool) (EditFrame, bool) {
	caret := frame.Caret(caretIsStart)
	if !shift && frame.HasSelection() {
		caret = frame.SelEnd
	}
	return place(frame, NextWordStart(frame.Text, caret), shift, caretIsStart)
}

// MoveLineStart moves to the start of the caret's line (Home).
func (n *Navigator) MoveLineStart(frame EditFrame, shift, caretIsStart bool) (EditFrame, bool) {
	caret := frame.Caret(caretIsStart)
	return place(frame, n.lineStart(frame.Text, caret), shift, caretIsStart)
}

// MoveLineEnd moves to the end of the caret's line (End).
func (n *Navigator) MoveLineEnd(frame EditFrame, shift, caretIsStart bool) (EditFrame, bool) {
	caret := frame.Caret(caretIsStart)
	return place(frame, n.lineEnd(frame.Text, caret), shift, caretIsStart)
}

// MoveTextStart moves to the start of the document.
func (n *Navigator) MoveTextStart(frame EditFrame, shift, caretIsStart bool) (EditFrame, bool) {
	return place(frame, 0, shift, caretIsStart)
}

// MoveTextEnd moves to the end of the document.
func (n *Navigator) MoveTextEnd(frame EditFrame, shift, caretIsStart bool) (EditFrame, bool) {
	return place(frame, frame.Len(), shift, caretIsStart)
}

// MoveUp moves the caret one visual line up, preserving its horizontal
// position. On the first line the caret goes to the document start.
func (n *Navigator) MoveUp(frame EditFrame, shift, caretIsStart bool) (EditFrame, bool) {
	return n.moveVertical(frame, -1, shift, caretIsStart)
}

// MoveDown mirrors MoveUp; on the last line the caret goes to the document
// end.
func (n *Navigator) MoveDown(frame EditFrame, shift, caretIsStart bool) (EditFrame, bool) {
	return n.moveVertical(frame, +1, shift, caretIsStart)
}

func (n *Navigator) moveVertical(frame EditFrame, dir int, shift, caretIsStart bool) (EditFrame, bool) {
	caret := frame.Caret(caretIsStart)
	if n.Renderer == nil || n.Renderer.LineCount() == 0 {
		// No geometry: degrade to document start/end.
		if dir < 0 {
			return place(frame, 0, shift, caretIsStart)
		}
		return place(frame, frame.Len(), shift, caretIsStart)
	}
	line := n.lineOf(caret)
	target := line + dir
	if target < 0 {
		return place(frame, 0, shift, caretIsStart)
	}
	if target >= n.Renderer.LineCount() {
		return place(frame, frame.Len(), shift, caretIsStart)
	}
	x := n.Renderer.CharacterInfo(caret).X
	info := n.Renderer.LineInfo(target)
	pos := n.CharIndexFromPoint(x, info.TopY+info.Height/2)
	return place(frame, pos, shift, caretIsStart)
}

// PrevChar returns the position one character to the left of pos, stepping
// over a whole grapheme cluster when one ends there.
func (n *Navigator) PrevChar(text string, pos int) int {
	if pos <= 0 {
		return 0
	}
	if n.Emoji != nil {
		if length, ok := n.Emoji.PrevCluster([]rune(text), pos); ok {
			return pos - length
		}
	}
	return pos - 1
}

// NextChar mirrors PrevChar.
func (n *Navigator) NextChar(text string, pos int) int {
	length := len([]rune(text))
	if pos >= length {
		return length
	}
	if n.Emoji != nil {
		if clusterLen, ok := n.Emoji.NextCluster([]rune(text), pos); ok {
			return pos + clusterLen
		}
	}
	return pos + 1
}

// PrevWordStart returns the start of the word before pos: separators are
// skipped first, then the word itself.
func PrevWordStart(text string, pos int) int {
	runes := []rune(text)
	pos = clampInt(pos, 0, len(runes))
	i := pos
	for i > 0 && isWordSeparator(runes[i-1]) {
		i--
	}
	for i > 0 && !isWordSeparator(runes[i-1]) {
		i--
	}
	return i
}

// NextWordStart returns the start of the word after pos.
func NextWordStart(text string, pos int) int {
	runes := []rune(text)
	pos = clampInt(pos, 0, len(runes))
	i := pos
	for i < len(runes) && !isWordSeparator(runes[i]) {
		i++
	}
	for i < len(runes) && isWordSeparator(runes[i]) {
		i++
	}
	return i
}

// WordRegionAt returns the [start, end) word region around pos, for
// double-click selection. A position on a separator snaps to the nearer
// neighboring word; equidistant picks the word on the left. With no word in
// the text the collapsed region (pos, pos) comes back.
func WordRegionAt(text string, pos int) (int, int) {
	runes := []rune(text)
	pos = clampInt(pos, 0, len(runes))

	onWord := func(i int) bool {
		return i >= 0 && i < len(runes) && !isWordSeparator(runes[i])
	}

	anchor := -1
	switch {
	case onWord(pos):
		anchor = pos
	case onWord(pos - 1):
		anchor = pos - 1
	default:
		// Scan both directions for the nearest word character.
		left, right := -1, -1
		for i := pos - 1; i >= 0; i-- {
			if onWord(i) {
				left = i
				break
			}
		}
		for i := pos; i < len(runes); i++ {
			if onWord(i) {
				right = i
				break
			}
		}
		switch {
		case left < 0 && right < 0:
			return pos, pos
		case right < 0:
			anchor = left
		case left < 0:
			anchor = right
		case pos-left <= right-pos+1:
			anchor = left
		default:
			anchor = right
		}
	}

	start := anchor
	for start > 0 && onWord(start-1) {
		start--
	}
	end := anchor + 1
	for end < len(runes) && onWord(end) {
		end++
	}
	return start, end
}

// CharIndexFromPoint hit-tests a point against the renderer's glyph layout
// and returns the nearest caret position. A point between two lines belongs
// to the nearer one; a point past a line's last glyph lands at line end.
func (n *Navigator) CharIndexFromPoint(x, y float32) int {
	r := n.Renderer
	if r == nil || r.LineCount() == 0 {
		return 0
	}
	line := 0
	best := float32(-1)
	for i := 0; i < r.LineCount(); i++ {
		info := r.LineInfo(i)
		center := info.TopY + info.Height/2
		d := y - center
		if d < 0 {
			d = -d
		}
		if best < 0 || d < best {
			best = d
			line = i
		}
	}

	start := r.LineInfo(line).Start
	end := n.lineEndIndex(line)
	for i := start; i < end; i++ {
		ci := r.CharacterInfo(i)
		if x < ci.X+ci.Width/2 {
			return i
		}
	}
	return end
}

// lineOf returns the renderer line containing pos.
func (n *Navigator) lineOf(pos int) int {
	r := n.Renderer
	for i := r.LineCount() - 1; i > 0; i-- {
		if pos >= r.LineInfo(i).Start {
			return i
		}
	}
	return 0
}

// lineEndIndex returns the caret position at the visual end of a renderer
// line, excluding its trailing newline.
func (n *Navigator) lineEndIndex(line int) int {
	r := n.Renderer
	var end int
	if line+1 < r.LineCount() {
		end = r.LineInfo(line + 1).Start
	} else {
		end = len([]rune(r.Text()))
	}
	runes := []rune(r.Text())
	for end > 0 && end-1 < len(runes) && (runes[end-1] == '\n' || runes[end-1] == '\r') {
		end--
	}
	return end
}

// lineStart finds the caret's line start, from glyph geometry when a
// renderer is present and by scanning for newlines otherwise.
func (n *Navigator) lineStart(text string, pos int) int {
	if n.Renderer != nil && n.Renderer.LineCount() > 0 {
		return n.Renderer.LineInfo(n.lineOf(pos)).Start
	}
	runes := []rune(text)
	pos = clampInt(pos, 0, len(runes))
	for pos > 0 && runes[pos-1] != '\n' {
		pos--
	}
	return pos
}

func (n *Navigator) lineEnd(text string, pos int) int {
	if n.Renderer != nil && n.Renderer.LineCount() > 0 {
		return n.lineEndIndex(n.lineOf(pos))
	}
	runes := []rune(text)
	pos = clampInt(pos, 0, len(runes))
	for pos < len(runes) && runes[pos] != '\n' {
		pos++
	}
	return pos
}
