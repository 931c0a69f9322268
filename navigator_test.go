package inputfield

import (
	"strings"
	"testing"

	"github.com/glasswing/inputfield/emoji"
)

// gridRenderer lays text out on a fixed 10x20 monospace grid for navigation
// tests.
type gridRenderer struct {
	text string
}

func (g *gridRenderer) Text() string     { return g.text }
func (g *gridRenderer) SetText(t string) { g.text = t }

func (g *gridRenderer) lineStarts() []int {
	starts := []int{0}
	for i, r := range []rune(g.text) {
		if r == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func (g *gridRenderer) CharacterInfo(index int) CharacterInfo {
	starts := g.lineStarts()
	line := 0
	for i, s := range starts {
		if index >= s {
			line = i
		}
	}
	col := index - starts[line]
	return CharacterInfo{X: float32(col) * 10, Y: float32(line) * 20, Width: 10}
}

func (g *gridRenderer) LineInfo(index int) LineInfo {
	return LineInfo{Start: g.lineStarts()[index], TopY: float32(index) * 20, Height: 20}
}

func (g *gridRenderer) LineCount() int { return len(g.lineStarts()) }

func (g *gridRenderer) PreferredSize() (float32, float32) {
	w := 0
	for _, line := range strings.Split(g.text, "\n") {
		if n := len([]rune(line)); n > w {
			w = n
		}
	}
	return float32(w) * 10, float32(g.LineCount()) * 20
}

func (g *gridRenderer) FontHasCharacter(r rune) bool { return true }

func TestWordBoundaries(t *testing.T) {
	const text = "the quick fox"
	tests := []struct {
		name string
		fn   func(string, int) int
		pos  int
		want int
	}{
		{"prev from mid word", PrevWordStart, 7, 4},
		{"prev from word start", PrevWordStart, 4, 0},
		{"prev from separator", PrevWordStart, 3, 0},
		{"prev at origin", PrevWordStart, 0, 0},
		{"next from mid word", NextWordStart, 5, 10},
		{"next from word start", NextWordStart, 4, 10},
		{"next from last word", NextWordStart, 11, 13},
		{"next at end", NextWordStart, 13, 13},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.fn(text, tc.pos); got != tc.want {
				t.Fatalf("pos %d: got %d, want %d", tc.pos, got, tc.want)
			}
		})
	}
}

func TestWordBoundariesPunctuation(t *testing.T) {
	// '.' and ',' separate words just like whitespace.
	if got := NextWordStart("a.b,c", 0); got != 2 {
		t.Fatalf("NextWordStart = %d, want 2", got)
	}
	if got := PrevWordStart("a.b,c", 4); got != 2 {
		t.Fatalf("PrevWordStart = %d, want 2", got)
	}
}

func TestWordRegionAt(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		pos        int
		start, end int
	}{
		{"mid word", "the quick fox", 5, 4, 9},
		{"word start", "the quick fox", 4, 4, 9},
		{"just past word", "the quick fox", 9, 4, 9},
		{"first word", "the quick fox", 1, 0, 3},
		{"text end", "the quick fox", 13, 10, 13},
		{"separator snaps left", "ab  cd", 2, 0, 2},
		{"separator snaps right", "ab  cd", 4, 4, 6},
		{"gap nearer right word", "ab   cd", 4, 5, 7},
		{"gap nearer left word", "ab   cd", 3, 0, 2},
		{"no words", "  ", 1, 1, 1},
		{"empty", "", 0, 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			start, end := WordRegionAt(tc.text, tc.pos)
			if start != tc.start || end != tc.end {
				t.Fatalf("WordRegionAt(%q, %d) = (%d, %d), want (%d, %d)",
					tc.text, tc.pos, start, end, tc.start, tc.end)
			}
		})
	}
}

func TestShiftExtendReanchors(t *testing.T) {
	n := &Navigator{}
	frame := NewEditFrame("abcdefgh", 5, 5)
	caretIsStart := false

	for i := 0; i < 3; i++ {
		frame, caretIsStart = n.MoveRight(frame, true, caretIsStart)
	}
	if frame.SelStart != 5 || frame.SelEnd != 8 {
		t.Fatalf("after 3 right: (%d, %d), want (5, 8)", frame.SelStart, frame.SelEnd)
	}
	for i := 0; i < 5; i++ {
		frame, caretIsStart = n.MoveLeft(frame, true, caretIsStart)
	}
	if frame.SelStart != 3 || frame.SelEnd != 5 {
		t.Fatalf("after 5 left: (%d, %d), want (3, 5)", frame.SelStart, frame.SelEnd)
	}
	if !caretIsStart {
		t.Fatal("caret should sit at the selection start after crossing the anchor")
	}
}

func TestMoveCollapsesSelection(t *testing.T) {
	n := &Navigator{}
	frame := NewEditFrame("abcdef", 2, 4)

	left, _ := n.MoveLeft(frame, false, false)
	if left.SelStart != 2 || left.SelEnd != 2 {
		t.Fatalf("left collapse = (%d, %d), want (2, 2)", left.SelStart, left.SelEnd)
	}
	right, _ := n.MoveRight(frame, false, false)
	if right.SelStart != 4 || right.SelEnd != 4 {
		t.Fatalf("right collapse = (%d, %d), want (4, 4)", right.SelStart, right.SelEnd)
	}
}

func TestMoveStepsOverEmojiCluster(t *testing.T) {
	n := &Navigator{Emoji: emoji.Source{}}
	family := "👨‍👩‍👧‍👦" // 7 runes
	text := "ab" + family + "cd"

	frame := NewEditFrame(text, 2, 2)
	frame, _ = n.MoveRight(frame, false, false)
	if frame.SelStart != 9 {
		t.Fatalf("right over cluster: caret %d, want 9", frame.SelStart)
	}
	frame, _ = n.MoveLeft(frame, false, false)
	if frame.SelStart != 2 {
		t.Fatalf("left over cluster: caret %d, want 2", frame.SelStart)
	}
}

func TestVerticalMovementPreservesColumn(t *testing.T) {
	r := &gridRenderer{text: "hello\nworld wide\nok"}
	n := &Navigator{Renderer: r}

	// Caret at column 3 of line 0.
	frame := NewEditFrame(r.text, 3, 3)
	frame, _ = n.MoveDown(frame, false, false)
	if frame.SelStart != 9 { // line 1 starts at 6, column 3
		t.Fatalf("down: caret %d, want 9", frame.SelStart)
	}
	frame, _ = n.MoveDown(frame, false, false)
	if frame.SelStart != 19 { // line 2 starts at 17, column 3 clamps to line end
		t.Fatalf("down to short line: caret %d, want 19", frame.SelStart)
	}
	// Down on the last line goes to the document end.
	frame, _ = n.MoveDown(frame, false, false)
	if frame.SelStart != frame.Len() {
		t.Fatalf("down at bottom: caret %d, want %d", frame.SelStart, frame.Len())
	}

	frame = NewEditFrame(r.text, 9, 9)
	frame, _ = n.MoveUp(frame, false, false)
	if frame.SelStart != 3 {
		t.Fatalf("up: caret %d, want 3", frame.SelStart)
	}
	frame, _ = n.MoveUp(frame, false, false)
	if frame.SelStart != 0 {
		t.Fatalf("up at top: caret %d, want 0", frame.SelStart)
	}
}

func TestLineStartEnd(t *testing.T) {
	n := &Navigator{}
	frame := NewEditFrame("hello\nworld", 8, 8)

	home, _ := n.MoveLineStart(frame, false, false)
	if home.SelStart != 6 {
		t.Fatalf("home: caret %d, want 6", home.SelStart)
	}
	end, _ := n.MoveLineEnd(frame, false, false)
	if end.SelStart != 11 {
		t.Fatalf("end: caret %d, want 11", end.SelStart)
	}
}

func TestCharIndexFromPoint(t *testing.T) {
	r := &gridRenderer{text: "hello\nworld wide"}
	n := &Navigator{Renderer: r}

	tests := []struct {
		name string
		x, y float32
		want int
	}{
		{"first char", 2, 10, 0},
		{"past glyph midpoint", 8, 10, 1},
		{"second line", 24, 30, 8},
		{"past line end", 500, 10, 5},
		{"above everything", 0, -50, 0},
		{"below everything snaps to nearest line", 0, 500, 6},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := n.CharIndexFromPoint(tc.x, tc.y); got != tc.want {
				t.Fatalf("CharIndexFromPoint(%v, %v) = %d, want %d", tc.x, tc.y, got, tc.want)
			}
		})
	}
}
