package buffer

import "github.com/dshills/selcore/internal/engine/codepoint"

// Buffer is a codepoint.Source addressed by Coord.
var _ codepoint.Source[Coord] = (*Buffer)(nil)

// ByteAt returns the byte at c.
func (b *Buffer) ByteAt(c Coord) byte {
	return b.lines[c.Line].text[c.Column]
}

// NextPos returns the coord of the byte after c.
func (b *Buffer) NextPos(c Coord) Coord {
	if c.Column+1 < len(b.lines[c.Line].text) {
		return Coord{Line: c.Line, Column: c.Column + 1}
	}
	return Coord{Line: c.Line + 1}
}

// PrevPos returns the coord of the byte before c.
func (b *Buffer) PrevPos(c Coord) Coord {
	if c.Column > 0 {
		return Coord{Line: c.Line, Column: c.Column - 1}
	}
	return Coord{Line: c.Line - 1, Column: len(b.lines[c.Line-1].text) - 1}
}

// Begin returns the origin coord.
func (b *Buffer) Begin() Coord {
	return Coord{}
}

// End returns EndCoord.
func (b *Buffer) End() Coord {
	return b.EndCoord()
}

// Compare orders two coords.
func (b *Buffer) Compare(x, y Coord) int {
	return x.Compare(y)
}

// Iterator returns a codepoint iterator positioned at c.
func (b *Buffer) Iterator(c Coord) codepoint.Iterator[Coord] {
	return codepoint.New[Coord](b, c)
}

// CharNext returns the coord of the codepoint after the one at c.
// At EndCoord it returns EndCoord.
func (b *Buffer) CharNext(c Coord) Coord {
	it := b.Iterator(c)
	it.Next()
	return it.Pos()
}

// CharPrev returns the coord of the codepoint before c.
// At the origin it returns the origin.
func (b *Buffer) CharPrev(c Coord) Coord {
	it := b.Iterator(c)
	it.Prev()
	return it.Pos()
}

// CharAt decodes the codepoint at c.
func (b *Buffer) CharAt(c Coord) rune {
	it := b.Iterator(c)
	return it.Rune()
}

// CharLength counts codepoints in [begin, end). Cost is O(end-begin).
func (b *Buffer) CharLength(begin, end Coord) int {
	return codepoint.Distance[Coord](b, begin, end)
}

// CharAdvance moves c forward by n codepoints, or backward for negative n,
// stopping at the buffer boundaries.
func (b *Buffer) CharAdvance(c Coord, n int) Coord {
	it := b.Iterator(c)
	if n >= 0 {
		it.Advance(n, b.EndCoord())
	} else {
		it.Retreat(-n, Coord{})
	}
	return it.Pos()
}

// NextLine returns the start of the line after c, or EndCoord.
func (b *Buffer) NextLine(c Coord) Coord {
	return Coord{Line: c.Line + 1}
}

// LineEnd returns the coord of the newline ending line i.
func (b *Buffer) LineEnd(i int) Coord {
	return Coord{Line: i, Column: len(b.lines[i].text) - 1}
}

// Advance moves c forward by n bytes, crossing line boundaries.
// The result is clamped to EndCoord.
func (b *Buffer) Advance(c Coord, n int) Coord {
	for n > 0 && c.Line < len(b.lines) {
		rest := len(b.lines[c.Line].text) - c.Column
		if n < rest {
			return Coord{Line: c.Line, Column: c.Column + n}
		}
		n -= rest
		c = Coord{Line: c.Line + 1}
	}
	return c
}

// Offset returns the byte offset of c from the buffer origin.
// Cost is O(c.Line).
func (b *Buffer) Offset(c Coord) int {
	off := 0
	for l := 0; l < c.Line && l < len(b.lines); l++ {
		off += len(b.lines[l].text)
	}
	return off + c.Column
}

// CoordAt returns the coord of byte offset off. Cost is O(lines).
func (b *Buffer) CoordAt(off int) Coord {
	return b.Advance(Coord{}, off)
}
