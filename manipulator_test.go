package inputfield

import (
	"testing"

	"github.com/glasswing/inputfield/emoji"
	"github.com/glasswing/inputfield/rules"
)

type fakeClipboard struct {
	content string
}

func (c *fakeClipboard) Get() string  { return c.content }
func (c *fakeClipboard) Set(s string) { c.content = s }

func TestInsertRunsValidator(t *testing.T) {
	m := &Manipulator{Validator: &rules.Validator{Preset: rules.Integer}}

	frame := m.Insert(CaretFrame("12", 2), "a3")
	if frame.Text != "123" || frame.SelStart != 3 {
		t.Fatalf("frame = %+v, want text 123 caret 3", frame)
	}
}

func TestInsertReplacesSelection(t *testing.T) {
	m := &Manipulator{}
	frame := m.Insert(NewEditFrame("hello world", 0, 5), "bye")
	if frame.Text != "bye world" || frame.SelStart != 3 || frame.SelEnd != 3 {
		t.Fatalf("frame = %+v", frame)
	}
}

func TestInsertEmojiClusterBypassesValidator(t *testing.T) {
	heart := "❤️" // 2 runes
	m := &Manipulator{
		Validator:     &rules.Validator{Preset: rules.Integer},
		EmojisAllowed: true,
	}

	frame := m.Insert(CaretFrame("42", 2), heart)
	if frame.Text != "42"+heart {
		t.Fatalf("text = %q, want cluster admitted", frame.Text)
	}

	// Without the emoji allowance the validator rejects it rune by rune.
	m.EmojisAllowed = false
	frame = m.Insert(CaretFrame("42", 2), heart)
	if frame.Text != "42" {
		t.Fatalf("text = %q, want cluster rejected", frame.Text)
	}
}

func TestInsertSingleRuneEmojiBypassesValidator(t *testing.T) {
	fire := "🔥" // 1 rune, no joiners or modifiers
	m := &Manipulator{
		Validator:     &rules.Validator{Preset: rules.Integer},
		EmojisAllowed: true,
	}

	frame := m.Insert(CaretFrame("42", 2), fire)
	if frame.Text != "42"+fire {
		t.Fatalf("text = %q, want single-rune emoji admitted", frame.Text)
	}

	m.EmojisAllowed = false
	frame = m.Insert(CaretFrame("42", 2), fire)
	if frame.Text != "42" {
		t.Fatalf("text = %q, want single-rune emoji rejected", frame.Text)
	}

	// An ordinary single character still goes through the validator.
	m.EmojisAllowed = true
	frame = m.Insert(CaretFrame("42", 2), "a")
	if frame.Text != "42" {
		t.Fatalf("text = %q, want plain letter rejected by the integer preset", frame.Text)
	}
}

func TestInsertEmojiClusterHonorsLimit(t *testing.T) {
	family := "👨‍👩‍👧‍👦" // 7 runes
	m := &Manipulator{
		Validator:     &rules.Validator{Limit: 8},
		EmojisAllowed: true,
	}

	frame := m.Insert(CaretFrame("ab", 2), family)
	if frame.Text != "ab" {
		t.Fatalf("text = %q, want cluster dropped whole rather than split", frame.Text)
	}

	m.Validator.Limit = 9
	frame = m.Insert(CaretFrame("ab", 2), family)
	if frame.Text != "ab"+family {
		t.Fatalf("text = %q, want cluster admitted under the cap", frame.Text)
	}
}

func TestInsertPermissiveValidatorHonorsLimit(t *testing.T) {
	m := &Manipulator{Validator: &rules.Validator{Preset: rules.None, Limit: 4}}

	frame := m.Insert(CaretFrame("ab", 2), "cdef")
	if frame.Text != "abcd" || frame.SelStart != 4 {
		t.Fatalf("frame = %+v, want abcd caret 4", frame)
	}
}

func TestBackspaceStepsOverCluster(t *testing.T) {
	family := "👨‍👩‍👧‍👦"
	m := &Manipulator{Emoji: emoji.Source{}}

	frame := m.Backspace(CaretFrame("ab"+family, 9))
	if frame.Text != "ab" || frame.SelStart != 2 {
		t.Fatalf("frame = %+v, want cluster removed whole", frame)
	}

	frame = m.Backspace(CaretFrame("ab", 1))
	if frame.Text != "b" || frame.SelStart != 0 {
		t.Fatalf("frame = %+v", frame)
	}

	frame = m.Backspace(CaretFrame("ab", 0))
	if frame.Text != "ab" {
		t.Fatalf("backspace at origin changed text: %+v", frame)
	}
}

func TestDeleteForward(t *testing.T) {
	family := "👨‍👩‍👧‍👦"
	m := &Manipulator{Emoji: emoji.Source{}}

	frame := m.DeleteForward(CaretFrame(family+"ab", 0))
	if frame.Text != "ab" || frame.SelStart != 0 {
		t.Fatalf("frame = %+v, want cluster removed whole", frame)
	}

	frame = m.DeleteForward(CaretFrame("ab", 2))
	if frame.Text != "ab" {
		t.Fatalf("delete at end changed text: %+v", frame)
	}

	frame = m.DeleteForward(NewEditFrame("abcd", 1, 3))
	if frame.Text != "ad" || frame.SelStart != 1 {
		t.Fatalf("frame = %+v, want selection deleted", frame)
	}
}

func TestCopyCutPaste(t *testing.T) {
	clip := &fakeClipboard{}
	m := &Manipulator{Clipboard: clip}

	frame := NewEditFrame("hello world", 0, 5)
	if got := m.Copy(frame); got != "hello" || clip.content != "hello" {
		t.Fatalf("copy = %q, clipboard %q", got, clip.content)
	}

	cut := m.Cut(frame)
	if cut.Text != " world" || clip.content != "hello" {
		t.Fatalf("cut frame = %+v, clipboard %q", cut, clip.content)
	}

	pasted := m.Paste(CaretFrame(" world", 0))
	if pasted.Text != "hello world" || pasted.SelStart != 5 {
		t.Fatalf("paste frame = %+v", pasted)
	}
}

func TestSecureFieldNeverLeaksToClipboard(t *testing.T) {
	clip := &fakeClipboard{content: "stale"}
	m := &Manipulator{Clipboard: clip, Secure: true}

	frame := NewEditFrame("hunter2", 0, 7)
	if got := m.Copy(frame); got != "" {
		t.Fatalf("secure copy returned %q", got)
	}
	if clip.content != "" {
		t.Fatalf("clipboard = %q, want empty", clip.content)
	}

	clip.content = "stale"
	cut := m.Cut(frame)
	if cut.Text != "" || clip.content != "" {
		t.Fatalf("secure cut: frame %+v, clipboard %q", cut, clip.content)
	}
}

func TestReplaceSelectsWordUnderCaret(t *testing.T) {
	m := &Manipulator{}

	frame := m.Replace(CaretFrame("the quick fox", 5), "slow")
	if frame.Text != "the slow fox" || frame.SelStart != 8 {
		t.Fatalf("frame = %+v, want %q caret 8", frame, "the slow fox")
	}

	// An explicit selection wins over the word region.
	frame = m.Replace(NewEditFrame("the quick fox", 0, 3), "a")
	if frame.Text != "a quick fox" {
		t.Fatalf("frame = %+v", frame)
	}
}
