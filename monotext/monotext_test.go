package monotext

import "testing"

func TestLayoutLines(t *testing.T) {
	r := &Renderer{}
	r.SetText("hello\nworld")
	if r.LineCount() != 2 {
		t.Fatalf("lines = %d", r.LineCount())
	}
	if got := r.LineInfo(1).Start; got != 6 {
		t.Fatalf("line 1 start = %d", got)
	}
}

func TestSoftWrap(t *testing.T) {
	r := &Renderer{WrapWidth: 4}
	r.SetText("abcdefghij")
	if r.LineCount() != 3 {
		t.Fatalf("lines = %d", r.LineCount())
	}
	if got := r.LineInfo(1).Start; got != 4 {
		t.Fatalf("wrap start = %d", got)
	}
	ci := r.CharacterInfo(5)
	if ci.X != 1 || ci.Y != 1 {
		t.Fatalf("char 5 at (%v, %v), want (1, 1)", ci.X, ci.Y)
	}
}

func TestWideRunesTakeTwoCells(t *testing.T) {
	r := &Renderer{}
	r.SetText("a東b")
	if got := r.CharacterInfo(1).Width; got != 2 {
		t.Fatalf("wide rune width = %v", got)
	}
	if got := r.CharacterInfo(2).X; got != 3 {
		t.Fatalf("char after wide rune at x=%v, want 3", got)
	}
	w, h := r.PreferredSize()
	if w != 4 || h != 1 {
		t.Fatalf("preferred = (%v, %v)", w, h)
	}
}

func TestCellScaling(t *testing.T) {
	r := &Renderer{CellWidth: 8, CellHeight: 16}
	r.SetText("ab\ncd")
	ci := r.CharacterInfo(4)
	if ci.X != 8 || ci.Y != 16 {
		t.Fatalf("char 4 at (%v, %v)", ci.X, ci.Y)
	}
	li := r.LineInfo(1)
	if li.TopY != 16 || li.Height != 16 {
		t.Fatalf("line 1 = %+v", li)
	}
}

func TestFontHasCharacter(t *testing.T) {
	r := &Renderer{}
	if !r.FontHasCharacter('x') {
		t.Fatal("printable rune rejected")
	}
	if r.FontHasCharacter('\x00') {
		t.Fatal("NUL accepted")
	}
}
