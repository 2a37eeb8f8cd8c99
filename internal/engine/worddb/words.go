package worddb

import (
	"strings"
	"unicode"
)

// IsWordChar reports whether r belongs to a word: a letter, a digit or '_'.
func IsWordChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Words splits text into maximal runs of word characters, in order.
func Words(text string) []string {
	var words []string
	start := -1
	for i, r := range text {
		if IsWordChar(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			words = append(words, text[start:i])
			start = -1
		}
	}
	if start >= 0 {
		words = append(words, text[start:])
	}
	return words
}

// MatchFunc is the exact predicate deciding whether word completes pattern.
//
// A MatchFunc must only accept words containing every character of the
// pattern under simple case folding; FindMatching skips the other words
// without calling it.
type MatchFunc func(word, pattern string) bool

// PrefixMatch accepts words starting with pattern, ignoring case.
func PrefixMatch(word, pattern string) bool {
	return len(word) >= len(pattern) && strings.EqualFold(word[:len(pattern)], pattern)
}

// SubsequenceMatch accepts words containing the runes of pattern in order,
// ignoring case.
func SubsequenceMatch(word, pattern string) bool {
	p := []rune(pattern)
	i := 0
	for _, r := range word {
		if i == len(p) {
			break
		}
		if equalFoldRune(r, p[i]) {
			i++
		}
	}
	return i == len(p)
}

func equalFoldRune(a, b rune) bool {
	if a == b {
		return true
	}
	for f := unicode.SimpleFold(a); f != a; f = unicode.SimpleFold(f) {
		if f == b {
			return true
		}
	}
	return false
}
