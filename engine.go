package inputfield

import (
	"strings"

	"github.com/glasswing/inputfield/keyboard"
	"github.com/glasswing/inputfield/rules"
)

// Engine is the input field orchestrator: it owns the committed EditFrame,
// keeps the derived representations position-consistent, runs validation and
// navigation, and speaks the native keyboard protocol. One Engine per field;
// all methods belong to the main thread.
type Engine struct {
	cfg       Config
	validator *rules.Validator
	callbacks Callbacks

	frame         EditFrame
	lastEditFrame EditFrame
	caretIsStart  bool

	nav   Navigator
	manip Manipulator
	hist  *history

	renderer Renderer
	filter   DecorationFilter
	rich     RichTextProcessor
	kb       *keyboard.Keyboard
	session  *Session

	liveProcess LiveProcessFunc

	// Derived representations, rebuilt by applyEditFrame.
	processed                string
	procSelStart, procSelEnd int
	richText                 string
	richSelStart, richSelEnd int

	scrollX, scrollY float32

	focused    bool
	beginFrame EditFrame
}

// NewEngine builds an engine for the given field configuration.
func NewEngine(cfg Config) *Engine {
	e := &Engine{cfg: cfg, hist: newHistory(0)}
	e.validator = cfg.buildValidator(e.callbacks.warnf)
	e.manip = Manipulator{
		Validator:     e.validator,
		EmojisAllowed: cfg.EmojisAllowed,
		Secure:        cfg.Secure,
	}
	if cfg.Secure {
		e.filter = NewPasswordCharacterFilter()
	}
	if cfg.RichTextEditing {
		e.rich = NewMarkupProcessor()
	}
	return e
}

// ===== Collaborator wiring =====

// SetCallbacks installs the host event callbacks.
func (e *Engine) SetCallbacks(cb Callbacks) { e.callbacks = cb }

// SetRenderer attaches the layout collaborator and pushes the current
// display text into it.
func (e *Engine) SetRenderer(r Renderer) {
	e.renderer = r
	e.syncRenderer()
}

// SetEmojiSource attaches cluster recognition for caret steps and deletes.
func (e *Engine) SetEmojiSource(src EmojiSource) {
	e.nav.Emoji = src
	e.manip.Emoji = src
}

// SetClipboard attaches the system clipboard.
func (e *Engine) SetClipboard(c Clipboard) { e.manip.Clipboard = c }

// SetDecorationFilter replaces the display filter. Secure fields install a
// password filter at construction; calling this overrides it.
func (e *Engine) SetDecorationFilter(f DecorationFilter) {
	e.filter = f
	e.reapply()
}

// SetRichTextProcessor replaces the rich text processor. Only meaningful
// when rich editing is configured.
func (e *Engine) SetRichTextProcessor(p RichTextProcessor) {
	e.rich = p
	e.reapply()
}

// SetKeyboard attaches the native keyboard protocol front.
func (e *Engine) SetKeyboard(kb *keyboard.Keyboard) { e.kb = kb }

// SetSession attaches the focus registry shared by the window's fields.
func (e *Engine) SetSession(s *Session) { e.session = s }

// SetLiveProcess installs the per-frame rewrite hook.
func (e *Engine) SetLiveProcess(fn LiveProcessFunc) { e.liveProcess = fn }

// SetScrollOffset records the host's scroll position so point hit-testing
// can translate window coordinates into renderer space.
func (e *Engine) SetScrollOffset(x, y float32) {
	e.scrollX = x
	e.scrollY = y
}

// ===== State access =====

// Frame returns the committed edit frame.
func (e *Engine) Frame() EditFrame { return e.frame }

// LastEditFrame returns the frame most recently run through the apply path,
// including no-op applications. Hosts use it to detect settled state.
func (e *Engine) LastEditFrame() EditFrame { return e.lastEditFrame }

// Text returns the committed raw text.
func (e *Engine) Text() string { return e.frame.Text }

// Config returns the field configuration.
func (e *Engine) Config() Config { return e.cfg }

// Validator returns the active character validator.
func (e *Engine) Validator() *rules.Validator { return e.validator }

// Focused reports whether the field owns an editing session.
func (e *Engine) Focused() bool { return e.focused }

// ProcessedText returns the decoration-filtered representation and its
// translated selection. With no filter active it mirrors the raw frame.
func (e *Engine) ProcessedText() (string, int, int) {
	if e.filter == nil {
		return e.frame.Text, e.frame.SelStart, e.frame.SelEnd
	}
	return e.processed, e.procSelStart, e.procSelEnd
}

// RichText returns the markup representation and its translated selection.
// With rich editing off it mirrors the raw frame.
func (e *Engine) RichText() (string, int, int) {
	if !e.cfg.RichTextEditing || e.rich == nil {
		return e.frame.Text, e.frame.SelStart, e.frame.SelEnd
	}
	return e.richText, e.richSelStart, e.richSelEnd
}

// DisplayText returns what the renderer should show: the placeholder while
// the field is empty, otherwise the processed or rich representation.
func (e *Engine) DisplayText() string {
	if e.frame.Text == "" {
		return e.cfg.Placeholder
	}
	if e.filter != nil {
		return e.processed
	}
	if e.cfg.RichTextEditing && e.rich != nil {
		return e.richText
	}
	return e.frame.Text
}

// ===== Program edits =====

// SetText replaces the content programmatically. The text runs through line
// sanitization and character validation like typed input; the caret lands at
// the end.
func (e *Engine) SetText(text string) {
	text = e.sanitizeLineBreaks(text)
	out, caret := e.validator.Validate("", text, 0, 0)
	e.applyEditFrame(NewEditFrame(out, caret, caret))
}

// SetSelection moves the selection programmatically.
func (e *Engine) SetSelection(start, end int) {
	e.caretIsStart = false
	e.applyEditFrame(e.frame.WithSelection(start, end))
}

// SelectAll selects the whole text.
func (e *Engine) SelectAll() {
	e.SetSelection(0, e.frame.Len())
}

// sanitizeLineBreaks enforces the line type on raw input text.
func (e *Engine) sanitizeLineBreaks(text string) string {
	if e.cfg.LineType != SingleLine {
		return strings.ReplaceAll(text, "\r\n", "\n")
	}
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' {
			return -1
		}
		return r
	}, text)
}

// ===== Editing commands =====

// Insert types a chunk at the caret.
func (e *Engine) Insert(chunk string) {
	chunk = e.sanitizeLineBreaks(chunk)
	if chunk == "" {
		return
	}
	e.hist.record(e.snapshot())
	e.applyEditFrame(e.manip.Insert(e.frame, chunk))
}

// InsertNewline handles the return key per the configured line type: either
// a literal newline or a submit.
func (e *Engine) InsertNewline() {
	if e.cfg.LineType == MultiLineNewline {
		e.hist.record(e.snapshot())
		e.applyEditFrame(e.manip.Insert(e.frame, "\n"))
		return
	}
	e.Submit()
}

// Backspace deletes backward one cluster or the selection.
func (e *Engine) Backspace() {
	e.hist.record(e.snapshot())
	e.applyEditFrame(e.manip.Backspace(e.frame))
}

// DeleteForward deletes forward one cluster or the selection.
func (e *Engine) DeleteForward() {
	e.hist.record(e.snapshot())
	e.applyEditFrame(e.manip.DeleteForward(e.frame))
}

// DeleteSelection removes the selected text.
func (e *Engine) DeleteSelection() {
	e.hist.record(e.snapshot())
	e.applyEditFrame(e.manip.DeleteSelection(e.frame))
}

// Cut copies the selection to the clipboard (empty for secure fields) and
// deletes it.
func (e *Engine) Cut() {
	e.hist.record(e.snapshot())
	e.applyEditFrame(e.manip.Cut(e.frame))
}

// Copy copies the selection to the clipboard; secure fields publish "".
func (e *Engine) Copy() string {
	return e.manip.Copy(e.frame)
}

// Paste inserts the clipboard contents.
func (e *Engine) Paste() {
	e.hist.record(e.snapshot())
	e.applyEditFrame(e.manip.Paste(e.frame))
}

// Replace substitutes the selection, or the word under the caret, with the
// chunk.
func (e *Engine) Replace(chunk string) {
	e.hist.record(e.snapshot())
	e.applyEditFrame(e.manip.Replace(e.frame, chunk))
}

// Undo reverts the last atomic edit, including tag toggles.
func (e *Engine) Undo() {
	if snap, ok := e.hist.popUndo(e.snapshot()); ok {
		e.restoreSnapshot(snap)
	}
}

// Redo reapplies the last undone edit.
func (e *Engine) Redo() {
	if snap, ok := e.hist.popRedo(e.snapshot()); ok {
		e.restoreSnapshot(snap)
	}
}

// snapshot captures the current undoable state: the committed frame plus the
// markup tag ranges when the processor exposes them.
func (e *Engine) snapshot() snapshot {
	s := snapshot{frame: e.frame}
	if th, ok := e.rich.(TagHolder); ok {
		s.tags = append([]TagRange(nil), th.Tags()...)
	}
	return s
}

func (e *Engine) restoreSnapshot(snap snapshot) {
	// The frame goes through the apply path first; its splice tracking moves
	// the live tags, which are then overwritten wholesale by the snapshot's.
	// A pure tag toggle leaves the frame untouched and the equality gate
	// skips the rebuild, so the rich representation is re-derived explicitly.
	e.applyEditFrame(snap.frame)
	if th, ok := e.rich.(TagHolder); ok {
		th.SetTags(snap.tags)
		e.reapply()
	}
}

// ===== Rich text commands =====

// ToggleBold toggles bold markup over the selection.
func (e *Engine) ToggleBold() { e.toggleTag("b") }

// ToggleItalic toggles italic markup over the selection.
func (e *Engine) ToggleItalic() { e.toggleTag("i") }

// ToggleUnderline toggles underline markup over the selection.
func (e *Engine) ToggleUnderline() { e.toggleTag("u") }

// ToggleColor toggles a color over the selection. Applying a different value
// to an already colored range restyles it.
func (e *Engine) ToggleColor(value string) { e.toggleTag("color=" + value) }

func (e *Engine) toggleTag(tag string) {
	if !e.cfg.RichTextEditing || e.rich == nil {
		e.callbacks.warnf("tag %q toggled but rich text editing is off", tag)
		return
	}
	if !e.frame.HasSelection() {
		return
	}
	e.hist.record(e.snapshot())
	if !e.rich.ToggleTag(tag, e.frame.SelStart, e.frame.SelEnd) {
		e.callbacks.warnf("unsupported rich text tag %q", tag)
		return
	}
	e.reapply()
}

// ===== Navigation =====

// MoveLeft steps the caret left; shift extends the selection.
func (e *Engine) MoveLeft(shift bool) {
	frame, cis := e.nav.MoveLeft(e.frame, shift, e.caretIsStart)
	e.caretIsStart = cis
	e.applyEditFrame(frame)
}

// MoveRight steps the caret right; shift extends the selection.
func (e *Engine) MoveRight(shift bool) {
	frame, cis := e.nav.MoveRight(e.frame, shift, e.caretIsStart)
	e.caretIsStart = cis
	e.applyEditFrame(frame)
}

// MoveUp moves one visual line up.
func (e *Engine) MoveUp(shift bool) { e.moveVertical(-1, shift) }

// MoveDown moves one visual line down.
func (e *Engine) MoveDown(shift bool) { e.moveVertical(1, shift) }

// moveVertical runs the navigator over the displayed representation. With
// rich editing on, the renderer holds marked-up text, so the selection is
// translated into rich positions for the move and back to raw after.
func (e *Engine) moveVertical(dir int, shift bool) {
	frame := e.frame
	richOn := e.cfg.RichTextEditing && e.rich != nil
	if richOn {
		frame = NewEditFrame(e.richText, e.rich.FromRaw(frame.SelStart), e.rich.FromRaw(frame.SelEnd))
	}

	var moved EditFrame
	var cis bool
	if dir < 0 {
		moved, cis = e.nav.MoveUp(frame, shift, e.caretIsStart)
	} else {
		moved, cis = e.nav.MoveDown(frame, shift, e.caretIsStart)
	}

	if richOn {
		moved = e.frame.WithSelection(e.rich.ToRaw(moved.SelStart), e.rich.ToRaw(moved.SelEnd))
	}
	e.caretIsStart = cis
	e.applyEditFrame(moved)
}

// MoveWordLeft jumps to the previous word start.
func (e *Engine) MoveWordLeft(shift bool) {
	frame, cis := e.nav.MoveWordLeft(e.frame, shift, e.caretIsStart)
	e.caretIsStart = cis
	e.applyEditFrame(frame)
}

// MoveWordRight jumps to the next word start.
func (e *Engine) MoveWordRight(shift bool) {
	frame, cis := e.nav.MoveWordRight(e.frame, shift, e.caretIsStart)
	e.caretIsStart = cis
	e.applyEditFrame(frame)
}

// MoveLineStart moves to the start of the caret's line.
func (e *Engine) MoveLineStart(shift bool) {
	frame, cis := e.nav.MoveLineStart(e.frame, shift, e.caretIsStart)
	e.caretIsStart = cis
	e.applyEditFrame(frame)
}

// MoveLineEnd moves to the end of the caret's line.
func (e *Engine) MoveLineEnd(shift bool) {
	frame, cis := e.nav.MoveLineEnd(e.frame, shift, e.caretIsStart)
	e.caretIsStart = cis
	e.applyEditFrame(frame)
}

// SelectWordAt selects the word at the given raw position (double click).
func (e *Engine) SelectWordAt(pos int) {
	start, end := WordRegionAt(e.frame.Text, pos)
	e.caretIsStart = false
	e.applyEditFrame(e.frame.WithSelection(start, end))
}

// SelectLineAt selects the whole line containing the given raw position
// (triple click). Line bounds come from the raw text's newlines, not the
// rendered wrapping.
func (e *Engine) SelectLineAt(pos int) {
	plain := Navigator{}
	start := plain.lineStart(e.frame.Text, pos)
	end := plain.lineEnd(e.frame.Text, pos)
	e.caretIsStart = false
	e.applyEditFrame(e.frame.WithSelection(start, end))
}

// CharIndexAtPoint maps a window-space point to a raw caret position,
// translating through scroll offset and the displayed representation's
// position maps.
func (e *Engine) CharIndexAtPoint(x, y float32) int {
	idx := e.nav.CharIndexFromPoint(x+e.scrollX, y+e.scrollY)
	switch {
	case e.frame.Text == "":
		return 0
	case e.filter != nil:
		return e.filter.RawCaret(e.frame.Text, e.processed, idx)
	case e.cfg.RichTextEditing && e.rich != nil:
		return e.rich.ToRaw(idx)
	}
	return clampInt(idx, 0, e.frame.Len())
}

// ===== Editing sessions =====

// BeginEdit starts an editing session: takes focus, shows the native
// keyboard, and snapshots the frame for cancel.
func (e *Engine) BeginEdit(reason BeginReason) {
	if e.focused {
		return
	}
	if e.session != nil {
		e.session.focus(e)
	}
	e.focused = true
	e.beginFrame = e.frame
	e.hist.reset()
	if e.kb != nil {
		if err := e.kb.Show(e.cfg.keyboardConfig(e.validator)); err != nil && err != keyboard.ErrNoBackend {
			e.callbacks.warnf("keyboard show: %v", err)
		}
		e.syncKeyboard()
	}
	if e.callbacks.BeginEdit != nil {
		e.callbacks.BeginEdit(reason)
	}
}

// EndEdit ends the session and releases focus.
func (e *Engine) EndEdit(reason EndReason) {
	e.finishEdit(reason)
	if e.session != nil {
		e.session.unfocus(e)
	}
}

// Submit ends the session reporting a submit.
func (e *Engine) Submit() { e.EndEdit(EndBySubmit) }

// finishEdit tears the session down without touching the session registry;
// the registry calls it directly on focus loss.
func (e *Engine) finishEdit(reason EndReason) {
	if !e.focused {
		return
	}
	e.focused = false
	if reason == EndByCancel {
		e.applyEditFrame(e.beginFrame)
	}
	if e.kb != nil {
		e.kb.ClearQueue()
		if err := e.kb.Hide(); err != nil && err != keyboard.ErrNoBackend {
			e.callbacks.warnf("keyboard hide: %v", err)
		}
	}
	if e.callbacks.EndEdit != nil {
		e.callbacks.EndEdit(e.frame.Text, reason)
	}
}

// Tick runs the engine's per-frame work: draining native keyboard events and
// polling time-based decoration filters. Call once per host frame.
func (e *Engine) Tick() {
	if e.kb != nil && e.focused {
		e.kb.Drain(e)
	}
	if uf, ok := e.filter.(UpdatingFilter); ok {
		if changed, processed := uf.UpdateFilter(e.frame.Text); changed {
			e.processed = processed
			e.syncRenderer()
		}
	}
}

// ===== Native keyboard handler =====

// HandleTextEdit implements keyboard.Handler: the native editor's state
// becomes the committed frame.
func (e *Engine) HandleTextEdit(text string, selStart, selEnd int) {
	e.hist.record(e.snapshot())
	e.applyEditFrame(NewEditFrame(e.sanitizeLineBreaks(text), selStart, selEnd))
}

// HandleSpecialKey implements keyboard.Handler.
func (e *Engine) HandleSpecialKey(key keyboard.SpecialKey, shift, ctrl bool) {
	switch key {
	case keyboard.KeyLeft:
		if ctrl {
			e.MoveWordLeft(shift)
		} else {
			e.MoveLeft(shift)
		}
	case keyboard.KeyRight:
		if ctrl {
			e.MoveWordRight(shift)
		} else {
			e.MoveRight(shift)
		}
	case keyboard.KeyUp:
		e.MoveUp(shift)
	case keyboard.KeyDown:
		e.MoveDown(shift)
	case keyboard.KeyHome:
		e.MoveLineStart(shift)
	case keyboard.KeyEnd:
		e.MoveLineEnd(shift)
	case keyboard.KeyBackspace:
		e.Backspace()
	case keyboard.KeyDelete:
		e.DeleteForward()
	case keyboard.KeyEnter:
		e.InsertNewline()
	case keyboard.KeyEscape:
		e.EndEdit(EndByCancel)
	}
	if e.callbacks.SpecialKeyPressed != nil {
		e.callbacks.SpecialKeyPressed(int(key))
	}
}

// HandleAction implements keyboard.Handler.
func (e *Engine) HandleAction(kind keyboard.EventKind) {
	switch kind {
	case keyboard.EventDone:
		e.EndEdit(EndBySubmit)
	case keyboard.EventNext:
		e.EndEdit(EndByNext)
	case keyboard.EventCancel:
		e.EndEdit(EndByCancel)
	}
}

// HandleHeightChanged implements keyboard.Handler.
func (e *Engine) HandleHeightChanged(height float32) {
	if e.callbacks.KeyboardHeightChanged != nil {
		e.callbacks.KeyboardHeightChanged(height)
	}
}

// ===== Frame application =====

// applyEditFrame is the single choke point every mutation funnels through.
// It trims to the line limit, runs the live-process hook, commits the frame,
// rebuilds the derived representations, and fires change callbacks. After it
// returns, every enabled representation maps back to the same raw selection.
func (e *Engine) applyEditFrame(frame EditFrame) {
	frame = frame.Clamped()
	frame = e.trimToLineLimit(frame)
	if e.liveProcess != nil {
		frame = e.liveProcess(frame, e.frame).Clamped()
	}

	prev := e.frame
	if frame.Equal(prev) {
		// The trim loop above measures by writing raw text into the
		// renderer; restore the display text even when nothing changed.
		e.syncRenderer()
		e.lastEditFrame = frame
		return
	}
	textChanged := frame.Text != prev.Text
	e.frame = frame

	if textChanged && e.rich != nil {
		pos, removed, inserted := spliceDiff(prev.Text, frame.Text)
		e.rich.AdjustForEdit(pos, removed, inserted)
	}
	e.rebuildRepresentations(textChanged)
	e.syncRenderer()

	// Markup can inflate the rendered line count past what the raw-text trim
	// measured, so with rich editing on the limit is re-checked against the
	// displayed representation and trailing runes dropped until it fits.
	for e.cfg.RichTextEditing && e.rich != nil && e.cfg.LineLimit > 0 &&
		e.renderer != nil && e.renderer.LineCount() > e.cfg.LineLimit {
		r := e.frame.Runes()
		if len(r) == 0 {
			break
		}
		e.rich.AdjustForEdit(len(r)-1, 1, 0)
		e.frame = NewEditFrame(string(r[:len(r)-1]), e.frame.SelStart, e.frame.SelEnd)
		e.rebuildRepresentations(true)
		e.syncRenderer()
		frame = e.frame
		textChanged = true
	}
	e.lastEditFrame = frame

	if textChanged && e.callbacks.ValueChanged != nil {
		e.callbacks.ValueChanged(frame.Text)
	}
	if frame.SelStart != prev.SelStart || frame.SelEnd != prev.SelEnd {
		if e.callbacks.TextSelectionChanged != nil {
			e.callbacks.TextSelectionChanged(frame.SelStart, frame.SelEnd)
		}
		if e.callbacks.CaretPositionChanged != nil {
			e.callbacks.CaretPositionChanged(frame.Caret(e.caretIsStart))
		}
	}
	if frame.HasSelection() != prev.HasSelection() && e.callbacks.SelectionChanged != nil {
		e.callbacks.SelectionChanged(frame.HasSelection())
	}

	e.syncKeyboard()
}

// reapply rebuilds the derived representations without a frame change, for
// collaborator swaps and tag toggles.
func (e *Engine) reapply() {
	e.rebuildRepresentations(true)
	e.syncRenderer()
}

func (e *Engine) rebuildRepresentations(textChanged bool) {
	if e.filter != nil {
		if textChanged {
			e.processed = e.filter.ProcessText(e.frame.Text, e.frame.SelEnd)
		}
		e.procSelStart = e.filter.ProcessedCaret(e.frame.Text, e.frame.SelStart, e.processed)
		e.procSelEnd = e.filter.ProcessedCaret(e.frame.Text, e.frame.SelEnd, e.processed)
	}
	if e.cfg.RichTextEditing && e.rich != nil {
		e.richText, e.richSelStart, e.richSelEnd = e.rich.Process(e.frame)
	}
}

// trimToLineLimit drops trailing characters until the rendered line count
// fits the configured limit. Needs a renderer to measure; without one the
// limit is not enforced.
func (e *Engine) trimToLineLimit(frame EditFrame) EditFrame {
	if e.cfg.LineLimit <= 0 || e.renderer == nil {
		return frame
	}
	text := frame.Text
	e.renderer.SetText(text)
	for e.renderer.LineCount() > e.cfg.LineLimit {
		r := []rune(text)
		if len(r) == 0 {
			break
		}
		text = string(r[:len(r)-1])
		e.renderer.SetText(text)
	}
	if text == frame.Text {
		return frame
	}
	return NewEditFrame(text, frame.SelStart, frame.SelEnd)
}

// syncRenderer pushes the display text into the renderer and keeps the
// navigator pointed at it.
func (e *Engine) syncRenderer() {
	if e.renderer == nil {
		return
	}
	e.renderer.SetText(e.DisplayText())
	e.nav.Renderer = e.renderer
}

// syncKeyboard pushes the committed frame down to the native editor. The
// keyboard layer skips the call when nothing changed.
func (e *Engine) syncKeyboard() {
	if e.kb == nil || !e.focused {
		return
	}
	if err := e.kb.SyncFrame(e.frame.Text, e.frame.SelStart, e.frame.SelEnd); err != nil {
		e.callbacks.warnf("keyboard sync: %v", err)
	}
}

// spliceDiff describes the text change as a single splice: removed runes at
// [pos, pos+removed) replaced by inserted runes. Multi-span edits collapse
// to the covering span.
func spliceDiff(oldText, newText string) (pos, removed, inserted int) {
	if oldText == newText {
		return 0, 0, 0
	}
	a, b := []rune(oldText), []rune(newText)
	p := 0
	for p < len(a) && p < len(b) && a[p] == b[p] {
		p++
	}
	s := 0
	for s < len(a)-p && s < len(b)-p && a[len(a)-1-s] == b[len(b)-1-s] {
		s++
	}
	return p, len(a) - p - s, len(b) - p - s
}
