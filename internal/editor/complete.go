package editor

import (
	"slices"

	"github.com/dshills/selcore/internal/engine/buffer"
	"github.com/dshills/selcore/internal/engine/worddb"
)

// Completion is a set of word candidates for the text before the main
// cursor.
type Completion struct {
	// Prefix is the partial word being completed.
	Prefix string
	// Begin is where the partial word starts.
	Begin buffer.Coord
	// Candidates are the buffer words matching Prefix. Prefix itself is a
	// candidate only when it also occurs elsewhere in the buffer.
	Candidates []string
}

// CompleteWord returns the words of the buffer that match the partial word
// ending before the main cursor. match defaults to prefix matching.
func (c *Context) CompleteWord(match worddb.MatchFunc) Completion {
	if match == nil {
		match = worddb.PrefixMatch
	}
	buf := c.buf
	cursor := c.Selections().Main().Cursor

	begin := cursor
	for begin.Column > 0 {
		prev := buf.CharPrev(begin)
		if !worddb.IsWordChar(buf.CharAt(prev)) {
			break
		}
		begin = prev
	}

	comp := Completion{Prefix: buf.Content(begin, cursor), Begin: begin}
	if comp.Prefix == "" {
		return comp
	}
	for _, w := range c.words.FindMatching(comp.Prefix, match) {
		if w != comp.Prefix || c.words.WordOccurrences(w) > 1 {
			comp.Candidates = append(comp.Candidates, w)
		}
	}
	slices.Sort(comp.Candidates)
	return comp
}
