package ffi

import (
	"math"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/glasswing/inputfield/keyboard"
)

// Backend adapts the native library to keyboard.Backend. All calls no-op
// when the library (or a symbol) is missing, so a field configured with a
// native backend still works on platforms without one.
type Backend struct{}

// eventSink receives decoded native events. Written once by NewBackend
// before the callback is installed; the native side never calls back before
// that.
var eventSink func(keyboard.Event) bool

// NewBackend loads the native library and installs the event callback that
// feeds the given sink (normally Keyboard.Push). The returned backend is
// usable even on error; it just does nothing.
func NewBackend(sink func(keyboard.Event) bool) (*Backend, error) {
	err := Load()
	eventSink = sink
	if Loaded() {
		KeyboardSetEventCallback(purego.NewCallback(nativeEvent))
	}
	return &Backend{}, err
}

// Show implements keyboard.Backend.
func (*Backend) Show(configJSON string) error {
	KeyboardShow(configJSON)
	return nil
}

// Hide implements keyboard.Backend.
func (*Backend) Hide() error {
	KeyboardHide()
	return nil
}

// SyncText implements keyboard.Backend.
func (*Backend) SyncText(text string, selStart, selEnd int) error {
	KeyboardSyncText(text, selStart, selEnd)
	return nil
}

// Visible implements keyboard.Backend.
func (*Backend) Visible() bool {
	return KeyboardIsVisible()
}

// nativeEvent is the purego callback invoked from the native keyboard
// thread. Argument layout is fixed by the native ABI: event kind, C string
// pointer, selection bounds, float32 height as bits, key code, modifier
// bits (1 shift, 2 ctrl). It does nothing but decode and enqueue.
func nativeEvent(kind, textPtr, selStart, selEnd, heightBits, key, mods uintptr) uintptr {
	if eventSink == nil {
		return 0
	}
	k := keyboard.EventKind(kind)
	if k < keyboard.EventTextEdit || k > keyboard.EventSpecialKey {
		return 0
	}
	ev := keyboard.Event{
		Kind:     k,
		Text:     goString(textPtr),
		SelStart: int(int32(selStart)),
		SelEnd:   int(int32(selEnd)),
		Height:   math.Float32frombits(uint32(heightBits)),
		Key:      keyboard.SpecialKey(int32(key)),
		Shift:    mods&1 != 0,
		Ctrl:     mods&2 != 0,
	}
	eventSink(ev)
	return 0
}

// goString copies a NUL-terminated C string.
func goString(ptr uintptr) string {
	if ptr == 0 {
		return ""
	}
	var buf []byte
	for i := uintptr(0); ; i++ {
		c := *(*byte)(unsafe.Pointer(ptr + i))
		if c == 0 {
			break
		}
		buf = append(buf, c)
	}
	return string(buf)
}
