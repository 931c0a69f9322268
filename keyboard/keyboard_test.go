package keyboard

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	shown   []string
	hides   int
	synced  []string
	visible bool
}

func (b *fakeBackend) Show(configJSON string) error {
	b.shown = append(b.shown, configJSON)
	return nil
}

func (b *fakeBackend) Hide() error {
	b.hides++
	return nil
}

func (b *fakeBackend) SyncText(text string, selStart, selEnd int) error {
	b.synced = append(b.synced, text)
	return nil
}

func (b *fakeBackend) Visible() bool { return b.visible }

type recordingHandler struct {
	edits   []string
	keys    []SpecialKey
	actions []EventKind
	heights []float32
}

func (h *recordingHandler) HandleTextEdit(text string, selStart, selEnd int) {
	h.edits = append(h.edits, text)
}

func (h *recordingHandler) HandleSpecialKey(key SpecialKey, shift, ctrl bool) {
	h.keys = append(h.keys, key)
}

func (h *recordingHandler) HandleAction(kind EventKind) {
	h.actions = append(h.actions, kind)
}

func (h *recordingHandler) HandleHeightChanged(height float32) {
	h.heights = append(h.heights, height)
}

func TestStateMachineLifecycle(t *testing.T) {
	k := New(&fakeBackend{})
	require.Equal(t, Hidden, k.State())

	require.NoError(t, k.Show(Config{}))
	assert.Equal(t, PendingShow, k.State())

	k.Push(Event{Kind: EventShown})
	k.Drain(nil)
	assert.Equal(t, Visible, k.State())

	require.NoError(t, k.Hide())
	assert.Equal(t, PendingHide, k.State())

	k.Push(Event{Kind: EventHidden})
	k.Drain(nil)
	assert.Equal(t, Hidden, k.State())
}

func TestShowDuringPendingHide(t *testing.T) {
	k := New(&fakeBackend{})
	require.NoError(t, k.Show(Config{}))
	k.Push(Event{Kind: EventShown})
	k.Drain(nil)
	require.NoError(t, k.Hide())
	require.Equal(t, PendingHide, k.State())

	// Re-showing before the platform acknowledged the hide goes straight
	// back to pending-show; the stale hide ack must not force Hidden.
	require.NoError(t, k.Show(Config{}))
	assert.Equal(t, PendingShow, k.State())

	k.Push(Event{Kind: EventHidden})
	k.Drain(nil)
	assert.Equal(t, PendingShow, k.State())

	k.Push(Event{Kind: EventShown})
	k.Drain(nil)
	assert.Equal(t, Visible, k.State())
}

func TestZeroHeightIsAuthoritative(t *testing.T) {
	for _, start := range []struct {
		name  string
		setup func(k *Keyboard)
	}{
		{"from visible", func(k *Keyboard) {
			k.Show(Config{})
			k.Push(Event{Kind: EventShown})
			k.Drain(nil)
		}},
		{"from pending show", func(k *Keyboard) {
			k.Show(Config{})
		}},
		{"from pending hide", func(k *Keyboard) {
			k.Show(Config{})
			k.Push(Event{Kind: EventShown})
			k.Drain(nil)
			k.Hide()
		}},
	} {
		t.Run(start.name, func(t *testing.T) {
			k := New(&fakeBackend{})
			start.setup(k)

			k.Push(Event{Kind: EventHeightChanged, Height: 0})
			k.Drain(nil)
			assert.Equal(t, Hidden, k.State())
		})
	}
}

func TestHeightConfirmsPendingShow(t *testing.T) {
	k := New(&fakeBackend{})
	require.NoError(t, k.Show(Config{}))

	k.Push(Event{Kind: EventHeightChanged, Height: 301})
	h := &recordingHandler{}
	k.Drain(h)

	assert.Equal(t, Visible, k.State())
	assert.Equal(t, float32(301), k.Height())
	assert.Equal(t, []float32{301}, h.heights)
}

func TestDrainForwardsInOrder(t *testing.T) {
	k := New(&fakeBackend{})
	k.Push(Event{Kind: EventTextEdit, Text: "a", SelStart: 1, SelEnd: 1})
	k.Push(Event{Kind: EventSpecialKey, Key: KeyLeft})
	k.Push(Event{Kind: EventTextEdit, Text: "ab", SelStart: 2, SelEnd: 2})

	h := &recordingHandler{}
	k.Drain(h)

	assert.Equal(t, []string{"a", "ab"}, h.edits)
	assert.Equal(t, []SpecialKey{KeyLeft}, h.keys)

	// A second drain finds the queue empty.
	h2 := &recordingHandler{}
	k.Drain(h2)
	assert.Empty(t, h2.edits)
}

func TestTerminalActionDiscardsRest(t *testing.T) {
	k := New(&fakeBackend{})
	k.Push(Event{Kind: EventTextEdit, Text: "a"})
	k.Push(Event{Kind: EventDone})
	k.Push(Event{Kind: EventTextEdit, Text: "ab"})
	k.Push(Event{Kind: EventSpecialKey, Key: KeyLeft})

	h := &recordingHandler{}
	k.Drain(h)

	assert.Equal(t, []string{"a"}, h.edits)
	assert.Equal(t, []EventKind{EventDone}, h.actions)
	assert.Empty(t, h.keys)

	// The discarded tail does not resurface on the next drain.
	h2 := &recordingHandler{}
	k.Drain(h2)
	assert.Empty(t, h2.edits)
}

func TestStaleEchoDiscarded(t *testing.T) {
	b := &fakeBackend{}
	k := New(b)
	require.NoError(t, k.SyncFrame("hello", 5, 5))
	require.Equal(t, []string{"hello"}, b.synced)

	// The native layer echoes the sync back; nothing new happened.
	k.Push(Event{Kind: EventTextEdit, Text: "hello", SelStart: 5, SelEnd: 5})
	h := &recordingHandler{}
	k.Drain(h)
	assert.Empty(t, h.edits)

	// A genuinely different edit goes through.
	k.Push(Event{Kind: EventTextEdit, Text: "hello!", SelStart: 6, SelEnd: 6})
	k.Drain(h)
	assert.Equal(t, []string{"hello!"}, h.edits)
}

func TestSyncFrameSkipsUnchanged(t *testing.T) {
	b := &fakeBackend{}
	k := New(b)
	require.NoError(t, k.SyncFrame("x", 1, 1))
	require.NoError(t, k.SyncFrame("x", 1, 1))
	assert.Len(t, b.synced, 1)

	require.NoError(t, k.SyncFrame("x", 0, 1))
	assert.Len(t, b.synced, 2)
}

func TestQueueBounded(t *testing.T) {
	k := New(&fakeBackend{})
	for i := 0; i < defaultQueueCap; i++ {
		require.True(t, k.Push(Event{Kind: EventSpecialKey, Key: KeyLeft}))
	}
	assert.False(t, k.Push(Event{Kind: EventSpecialKey, Key: KeyLeft}))
	assert.Equal(t, uint64(1), k.Dropped())

	// Draining frees space again.
	k.Drain(&recordingHandler{})
	assert.True(t, k.Push(Event{Kind: EventSpecialKey, Key: KeyLeft}))
}

func TestClearQueueDropsPendingEvents(t *testing.T) {
	k := New(&fakeBackend{})
	k.Push(Event{Kind: EventTextEdit, Text: "leftover"})
	k.ClearQueue()

	h := &recordingHandler{}
	k.Drain(h)
	assert.Empty(t, h.edits)
}

func TestNoBackend(t *testing.T) {
	k := New(nil)
	assert.ErrorIs(t, k.Show(Config{}), ErrNoBackend)
	assert.ErrorIs(t, k.Hide(), ErrNoBackend)
	assert.NoError(t, k.SyncFrame("x", 0, 0))
}

func TestConfigPayload(t *testing.T) {
	cfg := Config{
		KeyboardType:              TypeNumberPad,
		CharacterValidation:       "custom",
		LineType:                  LineSingle,
		AutocapitalizationType:    AutocapNone,
		ReturnKeyType:             ReturnDone,
		Secure:                    true,
		CharacterLimit:            16,
		CharacterValidatorPayload: json.RawMessage(`{"rules":[]}`),
	}
	payload, err := cfg.MarshalPayload()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(payload), &decoded))
	assert.Equal(t, "number_pad", decoded["keyboardType"])
	assert.Equal(t, "custom", decoded["characterValidation"])
	assert.Equal(t, true, decoded["secure"])
	assert.Equal(t, float64(16), decoded["characterLimit"])
	assert.Contains(t, payload, `"characterValidatorPayload":{"rules":[]}`)
}
