package codepoint

import (
	"cmp"
	"unicode/utf8"
)

// Source is a byte-addressed text an Iterator can walk.
// Positions between Begin and End (exclusive) must be readable with ByteAt;
// NextPos and PrevPos move by exactly one byte.
type Source[P any] interface {
	ByteAt(p P) byte
	NextPos(p P) P
	PrevPos(p P) P
	Begin() P
	End() P
	Compare(a, b P) int
}

// Policy selects how malformed sequences are decoded.
type Policy int

const (
	// Pass decodes malformed sequences as utf8.RuneError without error.
	Pass Policy = iota
	// Strict reports ErrInvalid for malformed sequences.
	Strict
)

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case Pass:
		return "pass"
	case Strict:
		return "strict"
	default:
		return "unknown"
	}
}

// Iterator is a bidirectional codepoint cursor over a Source.
//
// The decoded value is cached in the iterator; every motion clears it.
// Iterators are values and may be copied freely.
type Iterator[P any] struct {
	src    Source[P]
	pos    P
	policy Policy

	// decode cache
	cached bool
	value  rune
	err    error
}

// New creates an iterator over src positioned at pos using the Pass policy.
func New[P any](src Source[P], pos P) Iterator[P] {
	return Iterator[P]{src: src, pos: pos}
}

// WithPolicy returns a copy of the iterator using the given policy.
func (it Iterator[P]) WithPolicy(p Policy) Iterator[P] {
	it.policy = p
	it.cached = false
	return it
}

// Policy returns the iterator's decoding policy.
func (it *Iterator[P]) Policy() Policy {
	return it.policy
}

// Pos returns the byte position of the current codepoint.
func (it *Iterator[P]) Pos() P {
	return it.pos
}

// Seek moves the iterator to pos.
func (it *Iterator[P]) Seek(pos P) {
	it.pos = pos
	it.cached = false
}

// AtBegin reports whether the iterator is at the start of its source.
func (it *Iterator[P]) AtBegin() bool {
	return it.src.Compare(it.pos, it.src.Begin()) <= 0
}

// AtEnd reports whether the iterator is at the end of its source.
func (it *Iterator[P]) AtEnd() bool {
	return it.src.Compare(it.pos, it.src.End()) >= 0
}

// Next moves to the following codepoint.
// Returns false without moving when already at the end.
func (it *Iterator[P]) Next() bool {
	end := it.src.End()
	if it.src.Compare(it.pos, end) >= 0 {
		return false
	}
	p := it.src.NextPos(it.pos)
	for it.src.Compare(p, end) < 0 && IsContinuation(it.src.ByteAt(p)) {
		p = it.src.NextPos(p)
	}
	it.pos = p
	it.cached = false
	return true
}

// Prev moves to the preceding codepoint.
// Returns false without moving when already at the beginning.
func (it *Iterator[P]) Prev() bool {
	begin := it.src.Begin()
	if it.src.Compare(it.pos, begin) <= 0 {
		return false
	}
	p := it.src.PrevPos(it.pos)
	for it.src.Compare(p, begin) > 0 && IsContinuation(it.src.ByteAt(p)) {
		p = it.src.PrevPos(p)
	}
	it.pos = p
	it.cached = false
	return true
}

// Advance moves forward by up to n codepoints without passing limit.
// Returns the number of codepoints actually crossed.
func (it *Iterator[P]) Advance(n int, limit P) int {
	steps := 0
	for steps < n && it.src.Compare(it.pos, limit) < 0 {
		if !it.Next() {
			break
		}
		steps++
	}
	return steps
}

// Retreat moves backward by up to n codepoints without passing limit.
// Returns the number of codepoints actually crossed.
func (it *Iterator[P]) Retreat(n int, limit P) int {
	steps := 0
	for steps < n && it.src.Compare(it.pos, limit) > 0 {
		if !it.Prev() {
			break
		}
		steps++
	}
	return steps
}

// Codepoint decodes the codepoint at the current position.
// At the end of the source it returns utf8.RuneError and ErrAtEnd.
func (it *Iterator[P]) Codepoint() (rune, error) {
	if !it.cached {
		it.value, it.err = it.decode()
		it.cached = true
	}
	return it.value, it.err
}

// Rune is Codepoint without the error.
func (it *Iterator[P]) Rune() rune {
	r, _ := it.Codepoint()
	return r
}

func (it *Iterator[P]) decode() (rune, error) {
	end := it.src.End()
	if it.src.Compare(it.pos, end) >= 0 {
		return utf8.RuneError, ErrAtEnd
	}

	var buf [utf8.UTFMax]byte
	buf[0] = it.src.ByteAt(it.pos)
	want := SequenceLength(buf[0])
	n := 1
	for p := it.pos; n < want; n++ {
		p = it.src.NextPos(p)
		if it.src.Compare(p, end) >= 0 || !IsContinuation(it.src.ByteAt(p)) {
			break
		}
		buf[n] = it.src.ByteAt(p)
	}

	r, size := utf8.DecodeRune(buf[:n])
	if r == utf8.RuneError && size <= 1 {
		if it.policy == Strict {
			return utf8.RuneError, ErrInvalid
		}
		return utf8.RuneError, nil
	}
	return r, nil
}

// Distance counts the codepoints from a to b, negative when b precedes a.
// It walks every codepoint in between: cost is O(distance), so keep it out
// of per-keystroke paths over large spans.
func Distance[P any](src Source[P], a, b P) int {
	if src.Compare(a, b) > 0 {
		return -Distance(src, b, a)
	}
	it := New(src, a)
	n := 0
	for src.Compare(it.pos, b) < 0 && it.Next() {
		n++
	}
	return n
}

// String is a Source over a Go string addressed by byte index.
type String string

// ByteAt returns the byte at index i.
func (s String) ByteAt(i int) byte { return s[i] }

// NextPos returns i+1.
func (s String) NextPos(i int) int { return i + 1 }

// PrevPos returns i-1.
func (s String) PrevPos(i int) int { return i - 1 }

// Begin returns 0.
func (s String) Begin() int { return 0 }

// End returns len(s).
func (s String) End() int { return len(s) }

// Compare orders byte indices.
func (s String) Compare(a, b int) int { return cmp.Compare(a, b) }
