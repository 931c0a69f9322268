package inputfield

// defaultHistoryDepth bounds the undo stack. Editing sessions are short
// lived; a hundred atomic edits is far more than a user backs out of.
const defaultHistoryDepth = 100

// snapshot is one undo entry: the edit frame plus the markup tag ranges in
// force at that moment. Tag toggles mutate only processor state, so without
// the tag slice an undo of ToggleBold would have nothing to revert.
type snapshot struct {
	frame EditFrame
	tags  []TagRange
}

func (s snapshot) equal(o snapshot) bool {
	if !s.frame.Equal(o.frame) || len(s.tags) != len(o.tags) {
		return false
	}
	for i := range s.tags {
		if s.tags[i] != o.tags[i] {
			return false
		}
	}
	return true
}

// history is the engine's undo/redo stack of snapshots. Each atomic mutation
// (insert, delete, cut, paste, tag toggle) records the state it replaced;
// undo and redo swap the committed state through the engine's apply path like
// any other edit.
type history struct {
	undo  []snapshot
	redo  []snapshot
	depth int
}

func newHistory(depth int) *history {
	if depth <= 0 {
		depth = defaultHistoryDepth
	}
	return &history{depth: depth}
}

// record pushes the pre-edit snapshot and invalidates the redo branch.
func (h *history) record(s snapshot) {
	if n := len(h.undo); n > 0 && h.undo[n-1].equal(s) {
		return
	}
	h.undo = append(h.undo, s)
	if len(h.undo) > h.depth {
		h.undo = h.undo[1:]
	}
	h.redo = h.redo[:0]
}

// popUndo exchanges current for the previous snapshot.
func (h *history) popUndo(current snapshot) (snapshot, bool) {
	n := len(h.undo)
	if n == 0 {
		return snapshot{}, false
	}
	s := h.undo[n-1]
	h.undo = h.undo[:n-1]
	h.redo = append(h.redo, current)
	return s, true
}

// popRedo exchanges current for the previously undone snapshot.
func (h *history) popRedo(current snapshot) (snapshot, bool) {
	n := len(h.redo)
	if n == 0 {
		return snapshot{}, false
	}
	s := h.redo[n-1]
	h.redo = h.redo[:n-1]
	h.undo = append(h.undo, current)
	return s, true
}

// reset drops both stacks, for session boundaries.
func (h *history) reset() {
	h.undo = h.undo[:0]
	h.redo = h.redo[:0]
}
