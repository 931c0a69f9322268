// Package ffi bridges the engine to a platform's native on-screen keyboard
// via purego, without CGo. The native library is optional: when it is absent
// or exports only part of the surface, every call degrades to a safe no-op
// and fields fall back to hardware-keyboard input.
package ffi

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"sync"

	"github.com/ebitengine/purego"
)

var (
	libOnce   sync.Once
	libHandle uintptr
	libErr    error

	// Native keyboard surface. All optional.
	fnKeyboardShow      func(configJSON string)
	fnKeyboardHide      func()
	fnKeyboardIsVisible func() int32
	fnKeyboardSyncText  func(text string, selStart, selEnd int32)
	fnKeyboardSetEvents func(callback uintptr)
)

// libraryPath resolves the native library location. The FIELDKBD_LIB
// environment variable overrides the platform default next to the binary.
func libraryPath() string {
	if p := os.Getenv("FIELDKBD_LIB"); p != "" {
		return p
	}
	switch runtime.GOOS {
	case "darwin", "ios":
		return "libfieldkbd.dylib"
	case "windows":
		return "fieldkbd.dll"
	default:
		return "libfieldkbd.so"
	}
}

// Load opens the native library and binds its symbols. Safe to call more
// than once; only the first call does work.
func Load() error {
	libOnce.Do(func() {
		path := libraryPath()
		libHandle, libErr = openLibrary(path)
		if libErr != nil {
			libErr = fmt.Errorf("native keyboard library %s: %w", path, libErr)
			log.Printf("ffi: %v (native keyboard disabled)", libErr)
			return
		}
		registerOptionalFunc(&fnKeyboardShow, "field_keyboard_show")
		registerOptionalFunc(&fnKeyboardHide, "field_keyboard_hide")
		registerOptionalFunc(&fnKeyboardIsVisible, "field_keyboard_is_visible")
		registerOptionalFunc(&fnKeyboardSyncText, "field_keyboard_sync_text")
		registerOptionalFunc(&fnKeyboardSetEvents, "field_keyboard_set_event_callback")
	})
	return libErr
}

// Loaded reports whether the native library is available.
func Loaded() bool {
	return libHandle != 0
}

// registerOptionalFunc binds a symbol, leaving fn nil when the library does
// not export it.
func registerOptionalFunc[T any](fn *T, name string) {
	defer func() {
		recover()
	}()
	purego.RegisterLibFunc(fn, libHandle, name)
}

// KeyboardShow presents the native keyboard with the given JSON config.
func KeyboardShow(configJSON string) {
	if fnKeyboardShow != nil {
		fnKeyboardShow(configJSON)
	}
}

// KeyboardHide dismisses the native keyboard.
func KeyboardHide() {
	if fnKeyboardHide != nil {
		fnKeyboardHide()
	}
}

// KeyboardIsVisible reports the platform's current visibility.
func KeyboardIsVisible() bool {
	if fnKeyboardIsVisible != nil {
		return fnKeyboardIsVisible() != 0
	}
	return false
}

// KeyboardSyncText pushes the committed text state to the native editor.
func KeyboardSyncText(text string, selStart, selEnd int) {
	if fnKeyboardSyncText != nil {
		fnKeyboardSyncText(text, int32(selStart), int32(selEnd))
	}
}

// KeyboardSetEventCallback installs the native-to-Go event callback. The
// pointer must come from purego.NewCallback and stay alive for the process.
func KeyboardSetEventCallback(callback uintptr) {
	if fnKeyboardSetEvents != nil {
		fnKeyboardSetEvents(callback)
	}
}
