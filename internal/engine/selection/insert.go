package selection

import "github.com/dshills/selcore/internal/engine/buffer"

// InsertMode selects where Insert places text relative to each selection.
type InsertMode int

const (
	// InsertBefore inserts before the first selected codepoint.
	InsertBefore InsertMode = iota
	// InsertAtCursor inserts before the cursor codepoint.
	InsertAtCursor
	// AppendAfter inserts after the last selected codepoint.
	AppendAfter
	// ReplaceRange replaces the selected text.
	ReplaceRange
	// InsertAtLineBegin inserts at the start of the first selected line.
	InsertAtLineBegin
	// AppendAtLineEnd inserts before the newline of the last selected line.
	AppendAtLineEnd
	// OpenLineAbove inserts on a new line above the first selected line.
	OpenLineAbove
	// OpenLineBelow inserts on a new line below the last selected line.
	OpenLineBelow
	// InsertAtNextLineBegin inserts at the start of the line after the
	// last selected one.
	InsertAtNextLineBegin
)

// String returns the mode name.
func (m InsertMode) String() string {
	switch m {
	case InsertBefore:
		return "insert"
	case InsertAtCursor:
		return "insert-cursor"
	case AppendAfter:
		return "append"
	case ReplaceRange:
		return "replace"
	case InsertAtLineBegin:
		return "insert-line-begin"
	case AppendAtLineEnd:
		return "append-line-end"
	case OpenLineAbove:
		return "open-line-above"
	case OpenLineBelow:
		return "open-line-below"
	case InsertAtNextLineBegin:
		return "insert-next-line-begin"
	default:
		return "unknown"
	}
}

// Insert applies strs at every selection according to mode. Selection i
// receives strs[i]; when there are fewer strings than selections the last
// one is reused. An empty string leaves its selection untouched except in
// ReplaceRange mode, where it erases the selected text.
//
// Edits are applied in list order. Before its own edit, each selection is
// remapped through the edits already applied, so the batch behaves as if
// made left to right on one evolving buffer. Selections keep covering the
// text they covered; replaced selections cover the new text.
func (l *List) Insert(strs []string, mode InsertMode) {
	l.insert(strs, mode, false)
}

// InsertAndSelect is Insert where every selection ends up covering the text
// inserted for it.
func (l *List) InsertAndSelect(strs []string, mode InsertMode) {
	l.insert(strs, mode, true)
}

func (l *List) insert(strs []string, mode InsertMode, selectInserted bool) {
	if len(strs) == 0 {
		return
	}
	l.Update()

	start := l.buf.Timestamp()
	after := make([]int, len(l.sels))
	// Line of the previous insertion's selection and where its text ended.
	prevLine, prevEnd := -1, Coord{}
	for i := range l.sels {
		str := strs[min(i, len(strs)-1)]
		sel := l.sels[i].remap(l.buf, l.buf.ChangesSince(start))

		if str == "" && mode != ReplaceRange {
			l.sels[i] = sel
			after[i] = l.buf.Timestamp()
			continue
		}

		before := l.buf.Timestamp()
		if mode == ReplaceRange {
			pos := sel.Min()
			end, _ := l.buf.ApplyEdit(pos, l.buf.CharNext(sel.Max()), str)
			sel = insertedRange(l.buf, sel, pos, end, str)
		} else {
			var pos Coord
			if line := sel.Max().Line; line == prevLine && insertsBelow(mode) {
				pos = l.prepareInsertAfter(prevEnd, mode)
			} else {
				pos = l.prepareInsert(sel, mode)
			}
			end, _ := l.buf.Insert(pos, str)
			prevLine, prevEnd = sel.Max().Line, end
			if selectInserted {
				sel = insertedRange(l.buf, sel, pos, end, str)
			} else {
				sel = sel.remap(l.buf, l.buf.ChangesSince(before))
			}
		}
		l.sels[i] = sel
		after[i] = l.buf.Timestamp()
	}

	l.finish(after)
}

// insertedRange returns a selection over [pos, end), or a single codepoint
// at pos when nothing was inserted.
func insertedRange(buf *buffer.Buffer, sel Selection, pos, end Coord, str string) Selection {
	sel.Anchor = buf.Clamp(pos)
	if str == "" || !end.After(pos) {
		sel.Cursor = sel.Anchor
	} else {
		sel.Cursor = buf.Clamp(buf.CharPrev(end))
	}
	return sel
}

// prepareInsert returns the insertion point for sel, opening a line first
// for the open-line modes.
func (l *List) prepareInsert(sel Selection, mode InsertMode) Coord {
	switch mode {
	case InsertAtCursor:
		return sel.Cursor
	case AppendAfter:
		return l.buf.CharNext(sel.Max())
	case InsertAtLineBegin:
		return Coord{Line: sel.Min().Line}
	case AppendAtLineEnd:
		return l.buf.LineEnd(sel.Max().Line)
	case InsertAtNextLineBegin:
		return Coord{Line: sel.Max().Line + 1}
	case OpenLineBelow:
		pos := Coord{Line: sel.Max().Line + 1}
		l.buf.Insert(pos, "\n")
		return pos
	case OpenLineAbove:
		pos := Coord{Line: sel.Min().Line}
		l.buf.Insert(pos, "\n")
		return pos
	}
	return sel.Min()
}

func insertsBelow(mode InsertMode) bool {
	return mode == OpenLineBelow || mode == InsertAtNextLineBegin
}

// prepareInsertAfter returns the insertion point for a selection sharing
// its last line with the previous one, so that the texts inserted below the
// line keep the order of the selections.
func (l *List) prepareInsertAfter(prev Coord, mode InsertMode) Coord {
	if mode == InsertAtNextLineBegin {
		return prev
	}
	pos := Coord{Line: prev.Line}
	if prev.Column != 0 {
		pos.Line++
	}
	l.buf.Insert(pos, "\n")
	return pos
}

// Erase deletes the text of every selection, leaving a single codepoint
// selection where each one began. An erase reaching the end of the buffer
// keeps the final newline.
func (l *List) Erase() {
	l.Update()

	start := l.buf.Timestamp()
	after := make([]int, len(l.sels))
	for i := range l.sels {
		sel := l.sels[i].remap(l.buf, l.buf.ChangesSince(start))
		pos := sel.Min()
		l.buf.Erase(pos, l.buf.CharNext(sel.Max()))

		sel.Anchor = l.buf.Clamp(pos)
		sel.Cursor = sel.Anchor
		l.sels[i] = sel
		after[i] = l.buf.Timestamp()
	}

	l.finish(after)
}

// finish remaps every selection through the edits applied after its own,
// adopts the buffer timestamp and restores the list invariants.
func (l *List) finish(after []int) {
	for i := range l.sels {
		if after[i] != l.buf.Timestamp() {
			l.sels[i] = l.sels[i].remap(l.buf, l.buf.ChangesSince(after[i]))
		}
	}
	l.timestamp = l.buf.Timestamp()
	l.SortAndMergeOverlapping()
}
