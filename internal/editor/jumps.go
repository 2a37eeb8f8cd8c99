package editor

import (
	"slices"

	"github.com/google/uuid"

	"github.com/dshills/selcore/internal/engine/selection"
)

// Jump is a saved selection set. Its selections carry the buffer timestamp
// they were taken at and are resynchronized when the jump is revisited.
type Jump struct {
	ID   uuid.UUID
	sels *selection.List
}

// Selections returns the jump's selections, brought up to date.
func (j Jump) Selections() []selection.Selection {
	j.sels.Update()
	return j.sels.All()
}

// MainIndex returns the main selection index of the jump.
func (j Jump) MainIndex() int {
	return j.sels.MainIndex()
}

// Timestamp returns the buffer timestamp the jump was last synchronized at.
func (j Jump) Timestamp() int {
	return j.sels.Timestamp()
}

func (j Jump) equal(l *selection.List) bool {
	j.sels.Update()
	l.Update()
	return j.sels.MainIndex() == l.MainIndex() &&
		slices.EqualFunc(j.sels.All(), l.All(), selection.Selection.Equal)
}

// JumpList is the history of saved selection sets, navigated backward and
// forward.
type JumpList struct {
	jumps   []Jump
	current int
}

// NewJumpList creates an empty jump list.
func NewJumpList() *JumpList {
	return &JumpList{}
}

// Len returns the number of saved jumps.
func (jl *JumpList) Len() int {
	return len(jl.jumps)
}

// Push saves sels and returns the id of the saved jump. Jumps after the
// current position are dropped. An earlier jump equal to sels is moved to
// the end and keeps its id.
func (jl *JumpList) Push(sels *selection.List) uuid.UUID {
	if jl.current < len(jl.jumps) {
		jl.jumps = jl.jumps[:jl.current+1]
	}
	id := uuid.New()
	jl.jumps = slices.DeleteFunc(jl.jumps, func(j Jump) bool {
		if j.equal(sels) {
			id = j.ID
			return true
		}
		return false
	})
	jl.jumps = append(jl.jumps, Jump{ID: id, sels: sels.Clone()})
	jl.current = len(jl.jumps)
	return id
}

// Find returns the jump saved with id.
func (jl *JumpList) Find(id uuid.UUID) (Jump, bool) {
	i := slices.IndexFunc(jl.jumps, func(j Jump) bool { return j.ID == id })
	if i < 0 {
		return Jump{}, false
	}
	return jl.jumps[i], true
}

// Backward returns the jump before the current position. When current
// differs from the jump at the position it is saved first, so that
// Forward can return to it.
func (jl *JumpList) Backward(current *selection.List) (Jump, error) {
	if jl.current == len(jl.jumps) || !jl.jumps[jl.current].equal(current) {
		jl.Push(current)
		jl.current = len(jl.jumps) - 1
	}
	if jl.current == 0 {
		return Jump{}, ErrNoPreviousJump
	}
	jl.current--
	return jl.jumps[jl.current], nil
}

// Forward returns the jump after the current position.
func (jl *JumpList) Forward() (Jump, error) {
	if jl.current+1 >= len(jl.jumps) {
		return Jump{}, ErrNoNextJump
	}
	jl.current++
	return jl.jumps[jl.current], nil
}
