package inputfield

import (
	"sort"
	"strings"

	"github.com/glasswing/inputfield/emoji"
)

// ============================================================================
// Default rich text processor
// ============================================================================

// TagRange marks a markup tag over a half-open raw-text rune range.
type TagRange struct {
	Tag   string
	Start int
	End   int
}

// Markup tags controlled by the default processor. Toggling anything else is
// reported as unsupported. "color" carries a value after '=', e.g.
// "color=#ff8800"; its closing tag is the bare name.
var supportedTags = map[string]bool{
	"b":     true,
	"i":     true,
	"u":     true,
	"color": true,
}

// tagName strips a parameterized tag's value: "color=#ff8800" -> "color".
func tagName(tag string) string {
	if i := strings.IndexByte(tag, '='); i >= 0 {
		return tag[:i]
	}
	return tag
}

// MarkupProcessor is the default RichTextProcessor. It renders the rich
// representation by wrapping tagged ranges in <tag>...</tag> markup and
// substituting :name: emoji shortcodes, while maintaining bidirectional
// position maps between raw and rich text. Positions inside an injected span
// (tag text, a substituted shortcode) map to the span's start boundary.
type MarkupProcessor struct {
	tags []TagRange

	// Mapping state from the last Process call.
	rawLen    int
	richLen   int
	rawToRich []int
	richToRaw []int
}

// NewMarkupProcessor returns an empty processor.
func NewMarkupProcessor() *MarkupProcessor {
	return &MarkupProcessor{}
}

// Tags returns the current tag ranges. The slice is shared; treat as
// read-only.
func (p *MarkupProcessor) Tags() []TagRange {
	return p.tags
}

// SetTags replaces the tag ranges, taking its own copy. Callers re-derive the
// rich representation afterwards.
func (p *MarkupProcessor) SetTags(tags []TagRange) {
	p.tags = append(p.tags[:0:0], tags...)
}

// Process implements RichTextProcessor.
func (p *MarkupProcessor) Process(frame EditFrame) (string, int, int) {
	raw := frame.Runes()
	p.rawLen = len(raw)
	p.rawToRich = make([]int, len(raw)+1)

	var rich []rune
	var richToRaw []int

	emit := func(r []rune, rawPos int) {
		for range r {
			richToRaw = append(richToRaw, rawPos)
		}
		rich = append(rich, r...)
	}

	opens, closes := p.boundaryTags()

	i := 0
	for i <= len(raw) {
		// Closing tags come before opening tags at the same boundary so
		// that adjacent ranges nest cleanly.
		for _, t := range closes[i] {
			emit([]rune("</"+tagName(t)+">"), i)
		}
		p.rawToRich[i] = len(rich)
		for _, t := range opens[i] {
			emit([]rune("<"+t+">"), i)
		}
		if i == len(raw) {
			break
		}
		if sub, consumed, ok := shortcodeAt(raw, i); ok {
			emit([]rune(sub), i)
			// Interior shortcode positions collapse to the start boundary.
			for k := 1; k < consumed; k++ {
				p.rawToRich[i+k] = p.rawToRich[i]
			}
			i += consumed
			continue
		}
		emit([]rune{raw[i]}, i)
		i++
	}

	p.richLen = len(rich)
	p.richToRaw = append(richToRaw, len(raw))
	return string(rich), p.FromRaw(frame.SelStart), p.FromRaw(frame.SelEnd)
}

// boundaryTags indexes tag ranges by their raw boundary positions.
func (p *MarkupProcessor) boundaryTags() (opens, closes map[int][]string) {
	opens = make(map[int][]string)
	closes = make(map[int][]string)
	sorted := make([]TagRange, len(p.tags))
	copy(sorted, p.tags)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })
	for _, t := range sorted {
		if t.End <= t.Start {
			continue
		}
		opens[t.Start] = append(opens[t.Start], t.Tag)
		// Close in reverse open order.
		closes[t.End] = append([]string{t.Tag}, closes[t.End]...)
	}
	return opens, closes
}

// ToRaw implements RichTextProcessor.
func (p *MarkupProcessor) ToRaw(pos int) int {
	if len(p.richToRaw) == 0 {
		return clampInt(pos, 0, p.rawLen)
	}
	pos = clampInt(pos, 0, len(p.richToRaw)-1)
	return p.richToRaw[pos]
}

// FromRaw implements RichTextProcessor.
func (p *MarkupProcessor) FromRaw(pos int) int {
	if len(p.rawToRich) == 0 {
		return clampInt(pos, 0, p.richLen)
	}
	pos = clampInt(pos, 0, len(p.rawToRich)-1)
	return p.rawToRich[pos]
}

// AdjustForEdit implements RichTextProcessor: tag ranges follow the text they
// annotate across a splice of the raw text.
func (p *MarkupProcessor) AdjustForEdit(pos, removed, inserted int) {
	delta := inserted - removed
	adjust := func(i int) int {
		switch {
		case i <= pos:
			return i
		case i >= pos+removed:
			return i + delta
		default:
			return pos
		}
	}
	kept := p.tags[:0]
	for _, t := range p.tags {
		t.Start = adjust(t.Start)
		t.End = adjust(t.End)
		if t.End > t.Start {
			kept = append(kept, t)
		}
	}
	p.tags = kept
}

// ToggleTag implements RichTextProcessor. A range already carrying the tag
// loses it; otherwise the tag is added. Only exact range matches toggle off.
// A parameterized tag over a range that already carries the same tag name
// with a different value restyles the range instead of toggling.
func (p *MarkupProcessor) ToggleTag(tag string, start, end int) bool {
	if !supportedTags[tagName(tag)] {
		return false
	}
	if end <= start {
		return true
	}
	for i, t := range p.tags {
		if tagName(t.Tag) == tagName(tag) && t.Start == start && t.End == end {
			if t.Tag == tag {
				p.tags = append(p.tags[:i], p.tags[i+1:]...)
			} else {
				p.tags[i].Tag = tag
			}
			return true
		}
	}
	p.tags = append(p.tags, TagRange{Tag: tag, Start: start, End: end})
	return true
}

// shortcodeAt recognizes a :name: emoji shortcode starting at raw[i].
// Returns the substitution and the number of raw runes consumed.
func shortcodeAt(raw []rune, i int) (string, int, bool) {
	if raw[i] != ':' {
		return "", 0, false
	}
	j := i + 1
	for j < len(raw) && isShortcodeRune(raw[j]) {
		j++
	}
	if j <= i+1 || j >= len(raw) || raw[j] != ':' {
		return "", 0, false
	}
	sub, ok := emoji.Lookup(string(raw[i+1 : j]))
	if !ok {
		return "", 0, false
	}
	return sub, j - i + 1, true
}

func isShortcodeRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_'
}

// StripMarkup removes <tag>/</tag> markup from a rich string, for hosts that
// receive native edits against the rich representation.
func StripMarkup(rich string) string {
	var b strings.Builder
	depth := 0
	for _, r := range rich {
		switch {
		case r == '<':
			depth++
		case r == '>' && depth > 0:
			depth--
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
