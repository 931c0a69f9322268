package rules

import (
	"strings"
	"unicode"
)

// Preset identifies a built-in validation mode. Presets are hand-coded
// character classifiers; Custom delegates to a RuleSet.
type Preset int

const (
	None Preset = iota
	Integer
	Decimal
	DecimalForcePoint
	Alphanumeric
	Name
	EmailAddress
	IPAddress
	Sentence
	Custom
)

var presetNames = map[Preset]string{
	None:              "none",
	Integer:           "integer",
	Decimal:           "decimal",
	DecimalForcePoint: "decimal_force_point",
	Alphanumeric:      "alphanumeric",
	Name:              "name",
	EmailAddress:      "email",
	IPAddress:         "ip_address",
	Sentence:          "sentence",
	Custom:            "custom",
}

// String returns the stable wire name of the preset.
func (p Preset) String() string {
	if s, ok := presetNames[p]; ok {
		return s
	}
	return "none"
}

// PresetFromName resolves a wire name back to a Preset. Unknown names map to
// None so that a stale configuration degrades to permissive behavior.
func PresetFromName(name string) Preset {
	for p, s := range presetNames {
		if s == name {
			return p
		}
	}
	return None
}

// Validator validates inserted text chunks character by character. The zero
// value accepts everything. Validators are configuration owned by the field;
// they are queried, never mutated, during validation.
type Validator struct {
	Preset Preset
	// Rules drives validation when Preset is Custom. A nil rule set accepts
	// everything.
	Rules *RuleSet
	// Limit caps the text length in runes; 0 means unlimited.
	Limit int
}

// Validate splices the inserted chunk into the existing text at the caret,
// dropping or replacing characters per the configured mode. An active
// selection [anchor, caret) or [caret, anchor) is deleted first. It returns
// the resulting text and caret. Re-validating a chunk that produced no
// rejections or replacements is a no-op by construction.
func (v *Validator) Validate(existing, chunk string, caret, anchor int) (string, int) {
	text := []rune(existing)
	caret, anchor = clampPair(caret, anchor, len(text))

	// Delete the active selection before anything else.
	lo, hi := caret, anchor
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo != hi {
		text = append(text[:lo:lo], text[hi:]...)
	}
	caret = lo

	in := []rune(chunk)
	if len(in) == 0 {
		return string(text), caret
	}

	accepted := make([]rune, 0, len(in))
	for i, ch := range in {
		// The character limit truncates the remainder of the chunk once the
		// field is full; rejected characters do not count against it.
		if v.Limit > 0 && len(text)+len(accepted) >= v.Limit {
			break
		}
		// The working text the classifiers see is the existing text with
		// everything accepted so far already spliced in at the caret.
		working := spliced(text, caret, accepted)
		pos := caret + len(accepted)
		out, ok := v.validateChar(working, pos, i, ch)
		if ok {
			accepted = append(accepted, out)
		}
	}

	result := spliced(text, caret, accepted)
	return string(result), caret + len(accepted)
}

// validateChar classifies one candidate character. text and pos describe the
// working text and insertion position; index is the character's index within
// the inserted chunk.
func (v *Validator) validateChar(text []rune, pos, index int, ch rune) (rune, bool) {
	switch v.Preset {
	case None:
		return ch, true
	case Integer:
		return validateInteger(text, pos, ch)
	case Decimal:
		return validateDecimal(text, pos, ch, false)
	case DecimalForcePoint:
		return validateDecimal(text, pos, ch, true)
	case Alphanumeric:
		return ch, isAlphanumeric(ch)
	case Name:
		return validateName(text, pos, ch)
	case EmailAddress:
		return validateEmail(text, pos, ch)
	case IPAddress:
		return validateIP(text, ch)
	case Sentence:
		return validateSentence(text, pos, ch)
	case Custom:
		if v.Rules == nil {
			return ch, true
		}
		act := v.Rules.Apply(ch, index, countRune(text, ch))
		switch act.Kind {
		case Reject:
			return 0, false
		case Replace:
			return act.Replacement, true
		default:
			return ch, true
		}
	}
	return ch, true
}

// ============================================================================
// Built-in classifiers
// ============================================================================

func validateInteger(text []rune, pos int, ch rune) (rune, bool) {
	if ch >= '0' && ch <= '9' {
		return ch, true
	}
	// A single leading minus, only at the front and only once.
	if ch == '-' && pos == 0 && (len(text) == 0 || text[0] != '-') {
		return ch, true
	}
	return 0, false
}

func validateDecimal(text []rune, pos int, ch rune, forcePoint bool) (rune, bool) {
	if ch >= '0' && ch <= '9' {
		return ch, true
	}
	if ch == '-' && pos == 0 && (len(text) == 0 || text[0] != '-') {
		return ch, true
	}
	sep := ch
	if forcePoint && ch == ',' {
		sep = '.'
	}
	if sep == '.' && !containsRune(text, '.') && (!forcePoint || !containsRune(text, ',')) {
		return sep, true
	}
	return 0, false
}

func isAlphanumeric(ch rune) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func validateName(text []rune, pos int, ch rune) (rune, bool) {
	if unicode.IsLetter(ch) {
		// Capitalize the first letter of every word.
		if pos == 0 || (pos > 0 && text[pos-1] == ' ') {
			return unicode.ToUpper(ch), true
		}
		return ch, true
	}
	if ch == ' ' || ch == '\'' || ch == '-' {
		// No leading separator and no runs of separators.
		if pos == 0 || text[pos-1] == ' ' || text[pos-1] == '\'' || text[pos-1] == '-' {
			return 0, false
		}
		return ch, true
	}
	return 0, false
}

const emailSpecials = "!#$%&'*+-/=?^_`{|}~."

func validateEmail(text []rune, pos int, ch rune) (rune, bool) {
	if isAlphanumeric(ch) {
		return ch, true
	}
	if ch == '@' && !containsRune(text, '@') {
		return ch, true
	}
	if strings.ContainsRune(emailSpecials, ch) {
		// Dots never double up.
		if ch == '.' && pos > 0 && text[pos-1] == '.' {
			return 0, false
		}
		return ch, true
	}
	return 0, false
}

func validateIP(text []rune, ch rune) (rune, bool) {
	if ch >= '0' && ch <= '9' {
		return ch, true
	}
	// Hex digits and the v6 separator make IPv6 addresses typeable.
	if (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F') || ch == ':' {
		return ch, true
	}
	if ch == '.' && countRune(text, '.') < 3 {
		return ch, true
	}
	return 0, false
}

func validateSentence(text []rune, pos int, ch rune) (rune, bool) {
	if !unicode.IsPrint(ch) && ch != '\n' && ch != '\t' {
		return 0, false
	}
	if unicode.IsLetter(ch) && unicode.IsLower(ch) && startsSentence(text, pos) {
		return unicode.ToUpper(ch), true
	}
	return ch, true
}

// startsSentence reports whether pos is the start of the text or follows a
// sentence terminator plus whitespace.
func startsSentence(text []rune, pos int) bool {
	i := pos - 1
	sawSpace := false
	for i >= 0 && (text[i] == ' ' || text[i] == '\n') {
		i--
		sawSpace = true
	}
	if i < 0 {
		return true
	}
	if !sawSpace {
		return false
	}
	return text[i] == '.' || text[i] == '!' || text[i] == '?'
}

// ============================================================================
// helpers
// ============================================================================

func clampPair(a, b, n int) (int, int) {
	clamp := func(v int) int {
		if v < 0 {
			return 0
		}
		if v > n {
			return n
		}
		return v
	}
	return clamp(a), clamp(b)
}

func spliced(text []rune, pos int, ins []rune) []rune {
	out := make([]rune, 0, len(text)+len(ins))
	out = append(out, text[:pos]...)
	out = append(out, ins...)
	out = append(out, text[pos:]...)
	return out
}

func containsRune(text []rune, ch rune) bool {
	for _, r := range text {
		if r == ch {
			return true
		}
	}
	return false
}

func countRune(text []rune, ch rune) int {
	n := 0
	for _, r := range text {
		if r == ch {
			n++
		}
	}
	return n
}
