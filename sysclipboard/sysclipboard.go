// Package sysclipboard exposes the system clipboard through the engine's
// Clipboard interface.
package sysclipboard

import (
	"golang.design/x/clipboard"
)

// Clipboard reads and writes the system clipboard's text format. Construct
// with New; a failed initialization (headless CI, missing X11) yields a
// clipboard that reads empty and drops writes, which is the degraded
// behavior fields expect.
type Clipboard struct {
	ok bool
}

// New initializes the system clipboard.
func New() (*Clipboard, error) {
	if err := clipboard.Init(); err != nil {
		return &Clipboard{}, err
	}
	return &Clipboard{ok: true}, nil
}

// Get returns the clipboard text.
func (c *Clipboard) Get() string {
	if !c.ok {
		return ""
	}
	return string(clipboard.Read(clipboard.FmtText))
}

// Set replaces the clipboard text.
func (c *Clipboard) Set(text string) {
	if !c.ok {
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
}
