package buffer

import "fmt"

// Change describes one replacement recorded in the change log: the bytes
// in [Begin, OldEnd) were replaced by the bytes now in [Begin, NewEnd).
type Change struct {
	Begin  Coord
	OldEnd Coord
	NewEnd Coord
}

// String returns a human-readable representation of the change.
func (c Change) String() string {
	return fmt.Sprintf("Change%s->%s", Range{c.Begin, c.OldEnd}, Range{c.Begin, c.NewEnd})
}

// IsInsert returns true if nothing was erased.
func (c Change) IsInsert() bool {
	return c.Begin == c.OldEnd
}

// IsErase returns true if nothing was inserted.
func (c Change) IsErase() bool {
	return c.Begin == c.NewEnd
}

// Remap translates a coord valid before the change into the buffer state
// after it:
//
//   - before Begin: unchanged
//   - inside [Begin, OldEnd): clamped to Begin
//   - at or after OldEnd: shifted by the inserted minus erased extent
//
// A coord exactly at the position of a pure insertion is shifted past the
// inserted text.
func (c Change) Remap(pos Coord) Coord {
	if pos.Before(c.Begin) {
		return pos
	}
	if pos.Before(c.OldEnd) {
		return c.Begin
	}
	if pos.Line == c.OldEnd.Line {
		return Coord{Line: c.NewEnd.Line, Column: c.NewEnd.Column + pos.Column - c.OldEnd.Column}
	}
	return Coord{Line: pos.Line + c.NewEnd.Line - c.OldEnd.Line, Column: pos.Column}
}

// RemapAll translates pos through every change in order.
func RemapAll(pos Coord, changes []Change) Coord {
	for _, c := range changes {
		pos = c.Remap(pos)
	}
	return pos
}
