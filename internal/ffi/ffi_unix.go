//go:build darwin || linux || ios || android

package ffi

import "github.com/ebitengine/purego"

// openLibrary loads a dynamic library on Unix-like systems.
func openLibrary(path string) (uintptr, error) {
	const rtldLazy = 0x1
	return purego.Dlopen(path, rtldLazy)
}
