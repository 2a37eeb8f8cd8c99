package codepoint

// IsContinuation reports whether b is a UTF-8 continuation byte (10xxxxxx).
func IsContinuation(b byte) bool {
	return b&0xC0 == 0x80
}

// IsCharacterStart reports whether b can begin an encoded codepoint.
func IsCharacterStart(b byte) bool {
	return !IsContinuation(b)
}

// SequenceLength returns the number of bytes announced by the lead byte b,
// or 1 for a byte that cannot lead a sequence.
func SequenceLength(b byte) int {
	switch {
	case b < 0x80:
		return 1
	case b&0xE0 == 0xC0:
		return 2
	case b&0xF0 == 0xE0:
		return 3
	case b&0xF8 == 0xF0:
		return 4
	}
	return 1
}

// CharCount returns the number of codepoint steps an Iterator takes to
// cross s. Stray continuation bytes belong to the step before them.
func CharCount(s string) int {
	n := 0
	for i := 0; i < len(s); i = NextStart(s, i) {
		n++
	}
	return n
}

// NextStart returns the byte index of the codepoint following the one
// starting at i in s. It never returns more than len(s).
func NextStart(s string, i int) int {
	if i >= len(s) {
		return len(s)
	}
	i++
	for i < len(s) && IsContinuation(s[i]) {
		i++
	}
	return i
}

// PrevStart returns the byte index of the codepoint preceding i in s.
// It never returns less than 0.
func PrevStart(s string, i int) int {
	if i <= 0 {
		return 0
	}
	i--
	for i > 0 && IsContinuation(s[i]) {
		i--
	}
	return i
}
