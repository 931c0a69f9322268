package inputfield

import "time"

// CaretBlinker drives caret blinking for hosts that render their own caret.
// The engine does not own it; hosts tick it alongside Engine.Tick and reset
// it on every edit or caret move.
type CaretBlinker struct {
	visible  bool
	last     time.Time
	interval time.Duration
}

// NewCaretBlinker returns a blinker at the standard cursor blink rate.
func NewCaretBlinker() *CaretBlinker {
	return &CaretBlinker{
		visible:  true,
		last:     time.Now(),
		interval: 530 * time.Millisecond,
	}
}

// Visible reports whether the caret should currently be drawn.
func (b *CaretBlinker) Visible() bool {
	return b.visible
}

// Update toggles the blink phase when the interval elapsed. It reports
// whether visibility changed and a redraw is needed.
func (b *CaretBlinker) Update() bool {
	if time.Since(b.last) < b.interval {
		return false
	}
	b.visible = !b.visible
	b.last = time.Now()
	return true
}

// Reset makes the caret visible and restarts the interval. Call on typing
// and caret movement.
func (b *CaretBlinker) Reset() {
	b.visible = true
	b.last = time.Now()
}

// TimeUntilToggle returns how long until the next phase change, for hosts
// that schedule redraws instead of polling.
func (b *CaretBlinker) TimeUntilToggle() time.Duration {
	elapsed := time.Since(b.last)
	if elapsed >= b.interval {
		return 0
	}
	return b.interval - elapsed
}
