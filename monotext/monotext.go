// Package monotext is a monospace-grid Renderer for terminal hosts and
// tests. Glyph metrics come from go-runewidth cell widths, so wide CJK
// runes and emoji occupy two cells the way terminals draw them.
package monotext

import (
	"github.com/mattn/go-runewidth"

	"github.com/glasswing/inputfield"
)

var _ inputfield.Renderer = (*Renderer)(nil)

// Renderer lays text out on a fixed character grid. The zero value uses
// 1x1 cells and wraps only at newlines.
type Renderer struct {
	// CellWidth and CellHeight scale grid cells into the host's coordinate
	// space. Zero means 1.
	CellWidth  float32
	CellHeight float32

	// WrapWidth soft-wraps lines at the given number of cells; 0 disables
	// wrapping.
	WrapWidth int

	text   []rune
	starts []int
}

func (r *Renderer) cellW() float32 {
	if r.CellWidth <= 0 {
		return 1
	}
	return r.CellWidth
}

func (r *Renderer) cellH() float32 {
	if r.CellHeight <= 0 {
		return 1
	}
	return r.CellHeight
}

// Text returns the current text.
func (r *Renderer) Text() string { return string(r.text) }

// SetText replaces the text and relays it out.
func (r *Renderer) SetText(text string) {
	r.text = []rune(text)
	r.starts = []int{0}
	col := 0
	for i, ch := range r.text {
		if ch == '\n' {
			r.starts = append(r.starts, i+1)
			col = 0
			continue
		}
		w := runewidth.RuneWidth(ch)
		if r.WrapWidth > 0 && col > 0 && col+w > r.WrapWidth {
			r.starts = append(r.starts, i)
			col = 0
		}
		col += w
	}
}

// lineOf returns the layout line containing the rune index.
func (r *Renderer) lineOf(index int) int {
	line := 0
	for i, s := range r.starts {
		if index >= s {
			line = i
		}
	}
	return line
}

// CharacterInfo implements the Renderer collaborator interface.
func (r *Renderer) CharacterInfo(index int) inputfield.CharacterInfo {
	if index < 0 {
		index = 0
	}
	if index > len(r.text) {
		index = len(r.text)
	}
	line := r.lineOf(index)
	col := 0
	for i := r.starts[line]; i < index && i < len(r.text); i++ {
		col += runewidth.RuneWidth(r.text[i])
	}
	width := 0
	if index < len(r.text) && r.text[index] != '\n' {
		width = runewidth.RuneWidth(r.text[index])
	}
	return inputfield.CharacterInfo{
		X:     float32(col) * r.cellW(),
		Y:     float32(line) * r.cellH(),
		Width: float32(width) * r.cellW(),
	}
}

// LineInfo implements the Renderer collaborator interface.
func (r *Renderer) LineInfo(index int) inputfield.LineInfo {
	if index < 0 {
		index = 0
	}
	if index >= len(r.starts) {
		index = len(r.starts) - 1
	}
	return inputfield.LineInfo{
		Start:  r.starts[index],
		TopY:   float32(index) * r.cellH(),
		Height: r.cellH(),
	}
}

// LineCount implements the Renderer collaborator interface.
func (r *Renderer) LineCount() int { return len(r.starts) }

// PreferredSize implements the Renderer collaborator interface.
func (r *Renderer) PreferredSize() (float32, float32) {
	maxCols := 0
	col := 0
	for _, ch := range r.text {
		if ch == '\n' {
			col = 0
			continue
		}
		col += runewidth.RuneWidth(ch)
		if col > maxCols {
			maxCols = col
		}
	}
	return float32(maxCols) * r.cellW(), float32(len(r.starts)) * r.cellH()
}

// FontHasCharacter implements the Renderer collaborator interface: a
// monospace grid can show anything with a nonzero cell width.
func (r *Renderer) FontHasCharacter(ch rune) bool {
	return runewidth.RuneWidth(ch) > 0
}
