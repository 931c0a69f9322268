package inputfield

import (
	"strings"
	"time"
)

// ============================================================================
// Password masking
// ============================================================================

// PasswordCharacterFilter masks the raw text for display, briefly revealing
// the most recently typed character the way mobile password fields do. The
// processed text always has the same rune length as the raw text, so caret
// positions map one-to-one.
type PasswordCharacterFilter struct {
	// MaskRune replaces each hidden character. Defaults to '*'.
	MaskRune rune

	// CharacterVisibleTime is how long a freshly typed character stays
	// readable before it is masked. Zero means mask immediately.
	CharacterVisibleTime time.Duration

	// Now is the clock; overridable in tests. Defaults to time.Now.
	Now func() time.Time

	lastRaw   string
	revealPos int
	revealedAt time.Time
}

// NewPasswordCharacterFilter returns a filter with the conventional mask and
// a one second reveal window.
func NewPasswordCharacterFilter() *PasswordCharacterFilter {
	return &PasswordCharacterFilter{MaskRune: '*', CharacterVisibleTime: time.Second}
}

func (f *PasswordCharacterFilter) mask() rune {
	if f.MaskRune == 0 {
		return '*'
	}
	return f.MaskRune
}

func (f *PasswordCharacterFilter) now() time.Time {
	if f.Now != nil {
		return f.Now()
	}
	return time.Now()
}

// ProcessText implements DecorationFilter. A text change starts the reveal
// window for the character just before the caret.
func (f *PasswordCharacterFilter) ProcessText(raw string, caret int) string {
	runes := []rune(raw)
	if raw != f.lastRaw {
		grew := len(runes) > len([]rune(f.lastRaw))
		f.lastRaw = raw
		if grew && caret > 0 && f.CharacterVisibleTime > 0 {
			f.revealPos = caret - 1
			f.revealedAt = f.now()
		} else {
			f.revealPos = -1
		}
	}
	return f.render(runes)
}

func (f *PasswordCharacterFilter) render(runes []rune) string {
	out := make([]rune, len(runes))
	reveal := -1
	if f.revealPos >= 0 && f.revealPos < len(runes) &&
		f.now().Sub(f.revealedAt) < f.CharacterVisibleTime {
		reveal = f.revealPos
	}
	for i := range runes {
		if i == reveal {
			out[i] = runes[i]
		} else {
			out[i] = f.mask()
		}
	}
	return string(out)
}

// UpdateFilter implements UpdatingFilter: once the reveal window elapses the
// processed text changes with no edit having happened.
func (f *PasswordCharacterFilter) UpdateFilter(raw string) (bool, string) {
	if f.revealPos < 0 {
		return false, ""
	}
	if f.now().Sub(f.revealedAt) < f.CharacterVisibleTime {
		return false, ""
	}
	f.revealPos = -1
	return true, f.render([]rune(raw))
}

// ProcessedCaret implements DecorationFilter; masking preserves positions.
func (f *PasswordCharacterFilter) ProcessedCaret(raw string, caretInRaw int, processed string) int {
	return clampInt(caretInRaw, 0, len([]rune(processed)))
}

// RawCaret implements DecorationFilter.
func (f *PasswordCharacterFilter) RawCaret(raw, processed string, posInProcessed int) int {
	return clampInt(posInProcessed, 0, len([]rune(raw)))
}

// ============================================================================
// Grouping (e.g. card numbers)
// ============================================================================

// GroupingFilter injects a separator after every GroupSize raw characters,
// for formats like card numbers ("1234 5678 9012"). Separator positions are
// injected spans: a processed position on a separator maps back to the raw
// boundary before it.
type GroupingFilter struct {
	// GroupSize is the run length between separators. Defaults to 4.
	GroupSize int

	// Separator is the injected rune. Defaults to ' '.
	Separator rune
}

func (f *GroupingFilter) size() int {
	if f.GroupSize <= 0 {
		return 4
	}
	return f.GroupSize
}

func (f *GroupingFilter) sep() rune {
	if f.Separator == 0 {
		return ' '
	}
	return f.Separator
}

// ProcessText implements DecorationFilter.
func (f *GroupingFilter) ProcessText(raw string, caret int) string {
	var b strings.Builder
	for i, r := range []rune(raw) {
		if i > 0 && i%f.size() == 0 {
			b.WriteRune(f.sep())
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ProcessedCaret implements DecorationFilter. A caret exactly on a group
// boundary stays before the separator, matching how card inputs behave while
// typing.
func (f *GroupingFilter) ProcessedCaret(raw string, caretInRaw int, processed string) int {
	caretInRaw = clampInt(caretInRaw, 0, len([]rune(raw)))
	if caretInRaw == 0 {
		return 0
	}
	return clampInt(caretInRaw+(caretInRaw-1)/f.size(), 0, len([]rune(processed)))
}

// RawCaret implements DecorationFilter.
func (f *GroupingFilter) RawCaret(raw, processed string, posInProcessed int) int {
	procRunes := []rune(processed)
	posInProcessed = clampInt(posInProcessed, 0, len(procRunes))
	rawPos := 0
	for i := 0; i < posInProcessed; i++ {
		if procRunes[i] != f.sep() {
			rawPos++
		}
	}
	return clampInt(rawPos, 0, len([]rune(raw)))
}
