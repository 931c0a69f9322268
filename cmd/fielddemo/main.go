// Command fielddemo drives a form of live input fields in the terminal:
// validation presets, a secure password field, emoji-aware editing and the
// native keyboard protocol (no-op backend unless a native library is
// present). Tab cycles fields, Esc quits.
package main

import (
	"fmt"
	"log"
	"os"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/glasswing/inputfield"
	"github.com/glasswing/inputfield/emoji"
	"github.com/glasswing/inputfield/internal/ffi"
	"github.com/glasswing/inputfield/keyboard"
	"github.com/glasswing/inputfield/monotext"
	"github.com/glasswing/inputfield/sysclipboard"
)

type field struct {
	label  string
	engine *inputfield.Engine
	kb     *keyboard.Keyboard
}

func buildFields(session *inputfield.Session, clip inputfield.Clipboard, backend keyboard.Backend) []*field {
	specs := []struct {
		label string
		cfg   func() inputfield.Config
	}{
		{"Name", func() inputfield.Config {
			cfg := inputfield.DefaultConfig()
			cfg.Validation = "name"
			cfg.Placeholder = "Jane Doe"
			return cfg
		}},
		{"Amount", func() inputfield.Config {
			cfg := inputfield.DefaultConfig()
			cfg.Validation = "decimal"
			cfg.CharacterLimit = 12
			cfg.KeyboardType = keyboard.TypeDecimalPad
			return cfg
		}},
		{"PIN", func() inputfield.Config {
			cfg := inputfield.DefaultConfig()
			cfg.Validation = "integer"
			cfg.CharacterLimit = 6
			cfg.Secure = true
			cfg.KeyboardType = keyboard.TypeNumberPad
			return cfg
		}},
		{"Notes", func() inputfield.Config {
			cfg := inputfield.DefaultConfig()
			cfg.LineType = inputfield.MultiLineNewline
			cfg.LineLimit = 4
			cfg.EmojisAllowed = true
			cfg.Placeholder = "anything goes"
			return cfg
		}},
	}

	fields := make([]*field, 0, len(specs))
	for i, spec := range specs {
		cfg := spec.cfg()
		cfg.HasNext = i < len(specs)-1
		e := inputfield.NewEngine(cfg)
		e.SetSession(session)
		e.SetClipboard(clip)
		e.SetEmojiSource(emoji.Source{})
		e.SetRenderer(&monotext.Renderer{})

		kb := keyboard.New(backend)
		e.SetKeyboard(kb)
		fields = append(fields, &field{label: spec.label, engine: e, kb: kb})
	}
	return fields
}

func main() {
	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("fielddemo: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("fielddemo: %v", err)
	}
	defer screen.Fini()

	clip, err := sysclipboard.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "clipboard unavailable: %v\n", err)
	}

	// One native backend for the window; events from the native thread are
	// routed to whichever field currently has focus.
	var (
		fields    []*field
		activeIdx atomic.Int32
	)
	backend, err := ffi.NewBackend(func(ev keyboard.Event) bool {
		i := int(activeIdx.Load())
		if i < 0 || i >= len(fields) {
			return false
		}
		return fields[i].kb.Push(ev)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "native keyboard unavailable: %v\n", err)
	}

	session := inputfield.NewSession()
	fields = buildFields(session, clip, backend)
	blinker := inputfield.NewCaretBlinker()

	active := 0
	fields[active].engine.BeginEdit(inputfield.BeginByProgram)

	focusNext := func(delta int) {
		active = (active + delta + len(fields)) % len(fields)
		activeIdx.Store(int32(active))
		fields[active].engine.BeginEdit(inputfield.BeginByTap)
		blinker.Reset()
	}

	for {
		for _, f := range fields {
			f.engine.Tick()
		}
		blinker.Update()
		draw(screen, fields, active, blinker.Visible())

		ev := screen.PollEvent()
		key, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}
		e := fields[active].engine
		shift := key.Modifiers()&tcell.ModShift != 0
		ctrl := key.Modifiers()&tcell.ModCtrl != 0

		switch key.Key() {
		case tcell.KeyEscape:
			e.EndEdit(inputfield.EndByCancel)
			return
		case tcell.KeyTab:
			focusNext(1)
			continue
		case tcell.KeyBacktab:
			focusNext(-1)
			continue
		case tcell.KeyLeft:
			if ctrl {
				e.MoveWordLeft(shift)
			} else {
				e.MoveLeft(shift)
			}
		case tcell.KeyRight:
			if ctrl {
				e.MoveWordRight(shift)
			} else {
				e.MoveRight(shift)
			}
		case tcell.KeyUp:
			e.MoveUp(shift)
		case tcell.KeyDown:
			e.MoveDown(shift)
		case tcell.KeyHome:
			e.MoveLineStart(shift)
		case tcell.KeyEnd:
			e.MoveLineEnd(shift)
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			e.Backspace()
		case tcell.KeyDelete:
			e.DeleteForward()
		case tcell.KeyEnter:
			e.InsertNewline()
			if !e.Focused() {
				focusNext(1)
			}
		case tcell.KeyCtrlA:
			e.SelectAll()
		case tcell.KeyCtrlC:
			e.Copy()
		case tcell.KeyCtrlX:
			e.Cut()
		case tcell.KeyCtrlV:
			e.Paste()
		case tcell.KeyCtrlZ:
			e.Undo()
		case tcell.KeyCtrlY:
			e.Redo()
		case tcell.KeyCtrlB:
			e.ToggleBold()
		case tcell.KeyRune:
			e.Insert(string(key.Rune()))
		}
		blinker.Reset()
	}
}

func draw(screen tcell.Screen, fields []*field, active int, caretVisible bool) {
	screen.Clear()
	base := tcell.StyleDefault
	dim := base.Foreground(tcell.ColorGray)
	caret := base.Reverse(true)
	selected := base.Background(tcell.ColorNavy)

	row := 1
	for i, f := range fields {
		label := fmt.Sprintf("%-7s", f.label)
		for x, r := range label {
			screen.SetContent(1+x, row, r, nil, dim)
		}

		e := f.engine
		display := e.DisplayText()
		selStart, selEnd := 0, 0
		if e.Text() != "" {
			if e.Config().RichTextEditing {
				_, selStart, selEnd = e.RichText()
			} else {
				_, selStart, selEnd = e.ProcessedText()
			}
		}

		style := base
		if e.Text() == "" {
			style = dim
		}
		col, line := 0, 0
		for idx, r := range []rune(display) {
			if r == '\n' {
				col, line = 0, line+1
				continue
			}
			st := style
			if e.Text() != "" && idx >= selStart && idx < selEnd {
				st = selected
			}
			if i == active && caretVisible && idx == selEnd && selStart == selEnd {
				st = caret
			}
			screen.SetContent(9+col, row+line, r, nil, st)
			col++
		}
		if i == active && caretVisible && (e.Text() == "" || selStart == selEnd && selEnd == len([]rune(display))) {
			screen.SetContent(9+col, row+line, ' ', nil, caret)
		}
		row += line + 2
	}
	screen.Show()
}
