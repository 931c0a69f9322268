package inputfield

// ============================================================================
// Collaborator Interfaces
// ============================================================================
//
// The engine never renders; it talks to the pieces around it through the
// narrow interfaces below. Concrete backends (terminal grid, GPU renderer,
// platform clipboard) implement these; the engine never inspects backend
// identity.

// CharacterInfo describes the placement of one rendered character.
type CharacterInfo struct {
	X     float32 // left edge, in the renderer's local space
	Y     float32 // top edge of the character's line
	Width float32
}

// LineInfo describes one rendered line.
type LineInfo struct {
	Start  int // rune index of the first character on the line
	TopY   float32
	Height float32
}

// Renderer is the text-layout collaborator. The engine pushes text into it
// and reads back per-character and per-line metrics for caret navigation.
type Renderer interface {
	Text() string
	SetText(text string)

	// CharacterInfo returns metrics for the character at the given rune index.
	CharacterInfo(index int) CharacterInfo

	// LineInfo returns metrics for the given rendered line.
	LineInfo(index int) LineInfo

	// LineCount returns the number of rendered lines for the current text.
	LineCount() int

	// PreferredSize returns the size the current text wants to occupy.
	PreferredSize() (width, height float32)

	// FontHasCharacter reports whether the active font can display r.
	FontHasCharacter(r rune) bool
}

// EmojiSource recognizes multi-rune emoji clusters so that single-character
// caret steps and deletions never split a surrogate pair or ZWJ sequence.
type EmojiSource interface {
	// PrevCluster returns the length in runes of the emoji cluster ending
	// immediately before pos, if there is one spanning more than one rune.
	PrevCluster(text []rune, pos int) (length int, ok bool)

	// NextCluster returns the length in runes of the emoji cluster starting
	// at pos, if there is one spanning more than one rune.
	NextCluster(text []rune, pos int) (length int, ok bool)
}

// Clipboard abstracts the system clipboard.
type Clipboard interface {
	Get() string
	Set(text string)
}

// DecorationFilter produces a display-only text representation (masked
// password, card-number grouping, ...) that stays position-mapped to the raw
// text. Filters are configuration: queried, never mutated, during an edit.
type DecorationFilter interface {
	// ProcessText derives the processed representation from the raw text.
	ProcessText(raw string, caret int) string

	// ProcessedCaret maps a raw-text caret into the processed representation.
	ProcessedCaret(raw string, caretInRaw int, processed string) int

	// RawCaret maps a position in the processed representation back to raw.
	RawCaret(raw, processed string, posInProcessed int) int
}

// UpdatingFilter is a DecorationFilter whose output can change with time
// alone, e.g. a password filter that reveals the last typed character for a
// moment and then masks it. The engine polls UpdateFilter once per tick.
type UpdatingFilter interface {
	DecorationFilter

	// UpdateFilter reports whether the processed text changed since the last
	// call and, if so, returns the new processed text.
	UpdateFilter(raw string) (changed bool, processed string)
}

// RichTextProcessor derives the markup-annotated representation and keeps it
// position-mapped to the raw text. The default implementation lives in
// richtext.go; hosts can plug their own.
type RichTextProcessor interface {
	// Process re-derives the rich representation for the given frame and
	// translates its selection bounds. The returned mapping stays valid until
	// the next Process or AdjustForEdit call.
	Process(frame EditFrame) (rich string, selStart, selEnd int)

	// ToRaw maps a rich-text position to the raw text.
	ToRaw(pos int) int

	// FromRaw maps a raw-text position into the rich text.
	FromRaw(pos int) int

	// AdjustForEdit shifts internal markup state for a splice of the raw
	// text: removed runes at [pos, pos+removed) replaced by inserted runes.
	AdjustForEdit(pos, removed, inserted int)

	// ToggleTag toggles a markup tag over the raw-text range [start, end).
	// It returns false when the tag is unsupported.
	ToggleTag(tag string, start, end int) bool
}

// TagHolder is implemented by rich text processors whose tag state can be
// snapshotted and restored. The engine uses it to make tag toggles undoable;
// processors without it still work, their tag changes just fall outside undo.
type TagHolder interface {
	Tags() []TagRange
	SetTags(tags []TagRange)
}

// LiveProcessFunc is an optional transform applied to every frame before it
// is committed. It receives the new frame and the previously committed one
// and may rewrite the frame entirely; this is how callers implement custom
// multi-character macros without engine changes.
type LiveProcessFunc func(newFrame, prevFrame EditFrame) EditFrame
