package worddb

import (
	"unicode"
	"unicode/utf8"
)

// UsedLetters is a 64 bit signature of the character classes in a string.
//
// Bits 0-25 stand for the letters a-z with case folded, bits 26-35 for
// the digits, bit 36 for '_', bit 37 for '-' and bit 63 for everything
// else. Non-ASCII runes whose simple case folding reaches an ASCII letter
// use that letter's bit.
type UsedLetters uint64

const (
	digitBase  = 26
	underscore = 36
	dash       = 37
	otherBit   = 63
)

// LettersOf computes the signature of s.
// The signature of a string is a superset of the signature of any of its
// substrings.
func LettersOf(s string) UsedLetters {
	var l UsedLetters
	for _, r := range s {
		l |= 1 << letterBit(r)
	}
	return l
}

// Contains reports whether every class in other is present in l.
func (l UsedLetters) Contains(other UsedLetters) bool {
	return l&other == other
}

func letterBit(r rune) uint {
	if r >= utf8.RuneSelf {
		for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
			if f < utf8.RuneSelf {
				r = f
				break
			}
		}
	}
	switch {
	case r >= 'a' && r <= 'z':
		return uint(r - 'a')
	case r >= 'A' && r <= 'Z':
		return uint(r - 'A')
	case r >= '0' && r <= '9':
		return digitBase + uint(r-'0')
	case r == '_':
		return underscore
	case r == '-':
		return dash
	}
	return otherBit
}
