package buffer

import (
	"slices"

	"go.uber.org/zap"
)

// Modification is one history entry: at Begin, OldText was replaced by
// NewText, leaving the buffer at Timestamp.
type Modification struct {
	Begin     Coord
	OldText   string
	NewText   string
	Timestamp int
}

// undoGroup is the unit of undo: every modification of one command.
type undoGroup []Modification

// history holds committed undo groups and the group being built.
// frames[:cursor] are applied; frames[cursor:] can be redone.
type history struct {
	frames    []undoGroup
	cursor    int
	pending   undoGroup
	maxFrames int
}

func (h *history) record(m Modification) {
	h.pending = append(h.pending, m)
}

// savedHistory is a history state a transaction can return to. Frames are
// never modified in place, so sharing their backing array is safe.
type savedHistory struct {
	frames  []undoGroup
	cursor  int
	pending undoGroup
}

func (h *history) save() savedHistory {
	return savedHistory{frames: h.frames, cursor: h.cursor, pending: slices.Clip(h.pending)}
}

func (h *history) restore(s savedHistory) {
	h.frames, h.cursor, h.pending = s.frames, s.cursor, s.pending
}

// CommitUndoGroup closes the group being built, making it one undo frame.
// Redo frames are discarded. Does nothing when no edit is pending.
func (b *Buffer) CommitUndoGroup() {
	h := &b.history
	if len(h.pending) == 0 {
		return
	}

	frames := h.frames[:h.cursor]
	if h.cursor < len(h.frames) {
		// Dropping redo frames must not overwrite a saved history.
		frames = slices.Clip(frames)
	}
	h.frames = append(frames, h.pending)
	h.pending = nil
	if len(h.frames) > h.maxFrames {
		excess := len(h.frames) - h.maxFrames
		h.frames = h.frames[excess:]
	}
	h.cursor = len(h.frames)

	b.logger.Debug("undo group committed",
		zap.Stringer("buffer", b.id),
		zap.String("name", b.name),
		zap.Int("modifications", len(h.frames[h.cursor-1])),
		zap.Int("timestamp", b.Timestamp()))
}

// Undo reverts the most recent undo frame, committing any pending edits
// first. Returns false when there is nothing left to undo.
func (b *Buffer) Undo() bool {
	b.CommitUndoGroup()
	h := &b.history
	if h.cursor == 0 {
		return false
	}

	h.cursor--
	b.revert(h.frames[h.cursor])
	return true
}

// Redo reapplies the next undone frame, committing any pending edits first
// (which discards the redo frames). Returns false when there is nothing
// left to redo.
func (b *Buffer) Redo() bool {
	b.CommitUndoGroup()
	h := &b.history
	if h.cursor == len(h.frames) {
		return false
	}

	for _, m := range h.frames[h.cursor] {
		b.replace(m.Begin, textEnd(m.Begin, m.OldText), m.NewText)
	}
	h.cursor++
	return true
}

// revert applies the inverse of every modification of g, newest first.
// The inverse changes are logged but not recorded as history.
func (b *Buffer) revert(g undoGroup) {
	for i := len(g) - 1; i >= 0; i-- {
		m := g[i]
		b.replace(m.Begin, textEnd(m.Begin, m.NewText), m.OldText)
	}
}

// HistoryCursor returns the number of undo frames currently applied.
// Undo decreases it by exactly one, Redo increases it by one.
func (b *Buffer) HistoryCursor() int {
	return b.history.cursor
}

// HistorySize returns the number of committed undo frames.
func (b *Buffer) HistorySize() int {
	return len(b.history.frames)
}

// HasPendingEdits reports whether edits await CommitUndoGroup.
func (b *Buffer) HasPendingEdits() bool {
	return len(b.history.pending) > 0
}

// ClearHistory drops every undo frame and pending modification.
// The change log is kept so dependents can still resynchronize.
func (b *Buffer) ClearHistory() {
	b.history.frames = nil
	b.history.pending = nil
	b.history.cursor = 0
}
