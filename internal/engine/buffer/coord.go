package buffer

import "fmt"

// Coord addresses a byte in the buffer by line and byte column.
// Both Line and Column are 0-indexed.
type Coord struct {
	Line   int // 0-indexed line number
	Column int // byte offset within the line
}

// String returns a human-readable representation of the coord.
func (c Coord) String() string {
	return fmt.Sprintf("(%d:%d)", c.Line, c.Column)
}

// Compare returns -1 if c < other, 0 if c == other, 1 if c > other.
func (c Coord) Compare(other Coord) int {
	if c.Line < other.Line {
		return -1
	}
	if c.Line > other.Line {
		return 1
	}
	if c.Column < other.Column {
		return -1
	}
	if c.Column > other.Column {
		return 1
	}
	return 0
}

// Before returns true if c comes before other.
func (c Coord) Before(other Coord) bool {
	return c.Compare(other) < 0
}

// After returns true if c comes after other.
func (c Coord) After(other Coord) bool {
	return c.Compare(other) > 0
}

// IsZero returns true if this is the buffer origin (0:0).
func (c Coord) IsZero() bool {
	return c.Line == 0 && c.Column == 0
}

// MinCoord returns the earlier of a and b.
func MinCoord(a, b Coord) Coord {
	if b.Before(a) {
		return b
	}
	return a
}

// MaxCoord returns the later of a and b.
func MaxCoord(a, b Coord) Coord {
	if b.After(a) {
		return b
	}
	return a
}

// Range is a half-open coord range: [Begin, End).
type Range struct {
	Begin Coord
	End   Coord
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%d:%d-%d:%d)", r.Begin.Line, r.Begin.Column, r.End.Line, r.End.Column)
}

// IsEmpty returns true if the range covers no byte.
func (r Range) IsEmpty() bool {
	return r.Begin == r.End
}

// Contains returns true if c is within the range.
func (r Range) Contains(c Coord) bool {
	return !c.Before(r.Begin) && c.Before(r.End)
}
