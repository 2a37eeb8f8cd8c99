package selection

import (
	"fmt"
	"slices"

	"github.com/dshills/selcore/internal/engine/buffer"
)

// Coord is an alias for buffer.Coord for convenience.
type Coord = buffer.Coord

// Selection is an inclusive range of codepoints from Anchor to Cursor.
// Captures hold the regex sub-match texts of the operation that produced it.
type Selection struct {
	Anchor   Coord
	Cursor   Coord
	Captures []string
}

// New creates a selection from anchor to cursor.
func New(anchor, cursor Coord) Selection {
	return Selection{Anchor: anchor, Cursor: cursor}
}

// At creates a selection covering the single codepoint at c.
func At(c Coord) Selection {
	return Selection{Anchor: c, Cursor: c}
}

// Min returns the first selected coord.
func (s Selection) Min() Coord {
	return buffer.MinCoord(s.Anchor, s.Cursor)
}

// Max returns the last selected coord.
func (s Selection) Max() Coord {
	return buffer.MaxCoord(s.Anchor, s.Cursor)
}

// IsForward returns true if the cursor is not before the anchor.
func (s Selection) IsForward() bool {
	return !s.Cursor.Before(s.Anchor)
}

// IsSingle returns true if the selection covers exactly one codepoint.
func (s Selection) IsSingle() bool {
	return s.Anchor == s.Cursor
}

// Flip returns the selection with anchor and cursor swapped.
func (s Selection) Flip() Selection {
	s.Anchor, s.Cursor = s.Cursor, s.Anchor
	return s
}

// Collapse returns a selection covering only the cursor codepoint.
func (s Selection) Collapse() Selection {
	s.Anchor = s.Cursor
	return s
}

// Overlaps reports whether s and other share at least one codepoint.
func (s Selection) Overlaps(other Selection) bool {
	return !s.Max().Before(other.Min()) && !other.Max().Before(s.Min())
}

// Contains reports whether c lies within the selection.
func (s Selection) Contains(c Coord) bool {
	return !c.Before(s.Min()) && !c.After(s.Max())
}

// MergeWith extends s the way an extending motion does: the cursor moves to
// other's cursor and the anchor widens to keep covering both anchors on the
// side opposite the cursor.
func (s Selection) MergeWith(other Selection) Selection {
	s.Cursor = other.Cursor
	switch {
	case s.Anchor.Before(s.Cursor):
		s.Anchor = buffer.MinCoord(s.Anchor, other.Anchor)
	case s.Anchor.After(s.Cursor):
		s.Anchor = buffer.MaxCoord(s.Anchor, other.Anchor)
	}
	return s
}

// span returns a selection covering both s and other in the direction of s.
func (s Selection) span(other Selection) Selection {
	lo := buffer.MinCoord(s.Min(), other.Min())
	hi := buffer.MaxCoord(s.Max(), other.Max())
	if s.IsForward() {
		s.Anchor, s.Cursor = lo, hi
	} else {
		s.Anchor, s.Cursor = hi, lo
	}
	return s
}

// Equal reports whether both selections have the same endpoints and
// captures.
func (s Selection) Equal(other Selection) bool {
	return s.Anchor == other.Anchor && s.Cursor == other.Cursor && slices.Equal(s.Captures, other.Captures)
}

// String returns a string representation of the selection.
func (s Selection) String() string {
	return fmt.Sprintf("%s->%s", s.Anchor, s.Cursor)
}

// remap translates both endpoints through changes and clamps them onto
// codepoint starts.
func (s Selection) remap(buf *buffer.Buffer, changes []buffer.Change) Selection {
	s.Anchor = buf.Clamp(buffer.RemapAll(s.Anchor, changes))
	s.Cursor = buf.Clamp(buffer.RemapAll(s.Cursor, changes))
	return s
}

// Content returns the selected text.
func (s Selection) Content(buf *buffer.Buffer) string {
	return buf.Content(s.Min(), buf.CharNext(s.Max()))
}
