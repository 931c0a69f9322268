// Package emoji recognizes multi-rune emoji clusters (surrogate-pair style
// sequences, ZWJ families, skin-tone modifiers, flags) so that caret
// movement and deletion treat them as single characters. Cluster boundaries
// come from Unicode grapheme segmentation via rivo/uniseg.
package emoji

import "github.com/rivo/uniseg"

// Cluster is a grapheme cluster located in a rune slice.
type Cluster struct {
	Start int // rune index of the first rune
	End   int // rune index past the last rune
}

// Len returns the cluster length in runes.
func (c Cluster) Len() int {
	return c.End - c.Start
}

// PrevCluster returns the grapheme cluster ending immediately before pos, if
// that cluster spans more than one rune. Single-rune characters and
// mid-cluster positions return ok=false: callers step over plain characters
// with ordinary arithmetic. The whole text is segmented, never a slice:
// slicing at pos could split the very cluster being asked about.
func PrevCluster(text []rune, pos int) (Cluster, bool) {
	if pos <= 0 || pos > len(text) {
		return Cluster{}, false
	}
	g := uniseg.NewGraphemes(string(text))
	idx := 0
	for g.Next() {
		n := len(g.Runes())
		if idx+n == pos {
			if n < 2 {
				return Cluster{}, false
			}
			return Cluster{Start: idx, End: pos}, true
		}
		if idx+n > pos {
			// pos falls inside this cluster.
			return Cluster{}, false
		}
		idx += n
	}
	return Cluster{}, false
}

// NextCluster returns the grapheme cluster starting at pos, if it spans more
// than one rune.
func NextCluster(text []rune, pos int) (Cluster, bool) {
	if pos < 0 || pos >= len(text) {
		return Cluster{}, false
	}
	g := uniseg.NewGraphemes(string(text))
	idx := 0
	for g.Next() {
		n := len(g.Runes())
		if idx == pos {
			if n < 2 {
				return Cluster{}, false
			}
			return Cluster{Start: pos, End: pos + n}, true
		}
		if idx > pos {
			return Cluster{}, false
		}
		idx += n
	}
	return Cluster{}, false
}

// IsRune reports whether r is an emoji on its own: a single pictographic
// codepoint with no modifiers or joiners. Cluster detection cannot see these
// (a one-rune grapheme looks like any plain character), so callers that admit
// emoji check single runes here and multi-rune sequences via the clusters.
func IsRune(r rune) bool {
	switch {
	case r >= 0x1F300 && r <= 0x1F5FF: // pictographs
		return true
	case r >= 0x1F600 && r <= 0x1F64F: // emoticons
		return true
	case r >= 0x1F680 && r <= 0x1F6FF: // transport and map
		return true
	case r >= 0x1F900 && r <= 0x1F9FF: // supplemental pictographs
		return true
	case r >= 0x1FA70 && r <= 0x1FAFF: // extended pictographs
		return true
	case r >= 0x2600 && r <= 0x26FF: // miscellaneous symbols
		return true
	case r >= 0x2700 && r <= 0x27BF: // dingbats
		return true
	case r >= 0x1F1E6 && r <= 0x1F1FF: // regional indicators
		return true
	}
	return false
}

// Source adapts the package functions to the engine's EmojiSource
// collaborator interface.
type Source struct{}

// PrevCluster implements the collaborator contract.
func (Source) PrevCluster(text []rune, pos int) (int, bool) {
	c, ok := PrevCluster(text, pos)
	if !ok {
		return 0, false
	}
	return c.Len(), true
}

// NextCluster implements the collaborator contract.
func (Source) NextCluster(text []rune, pos int) (int, bool) {
	c, ok := NextCluster(text, pos)
	if !ok {
		return 0, false
	}
	return c.Len(), true
}
