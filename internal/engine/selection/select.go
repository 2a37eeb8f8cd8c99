package selection

import "github.com/dshills/selcore/internal/engine/buffer"

// SelectMode tells Select how a selector's result combines with the
// selection it was computed from.
type SelectMode int

const (
	// SelectReplace replaces each selection with the result.
	SelectReplace SelectMode = iota
	// SelectExtend extends each selection to the result.
	SelectExtend
	// SelectAppend adds the result for the main selection as a new main
	// selection.
	SelectAppend
)

// String returns the mode name.
func (m SelectMode) String() string {
	switch m {
	case SelectReplace:
		return "replace"
	case SelectExtend:
		return "extend"
	case SelectAppend:
		return "append"
	default:
		return "unknown"
	}
}

// Selector computes a new selection from sel. It returns false when there
// is nothing to select, leaving sel as it is.
type Selector func(buf *buffer.Buffer, sel Selection) (Selection, bool)

// Select applies fn to the list according to mode. A result carrying
// captures replaces the captures of the selection it updates; an appended
// result without captures inherits those of the main selection.
func (l *List) Select(mode SelectMode, fn Selector) {
	l.Update()

	if mode == SelectAppend {
		main := l.Main()
		if res, ok := fn(l.buf, main); ok {
			if len(res.Captures) == 0 {
				res.Captures = main.Captures
			}
			l.PushBack(res)
		}
		return
	}

	for i, sel := range l.sels {
		res, ok := fn(l.buf, sel)
		if !ok {
			continue
		}
		captures := sel.Captures
		if len(res.Captures) > 0 {
			captures = res.Captures
		}
		if mode == SelectExtend {
			sel = sel.MergeWith(res)
		} else {
			sel.Anchor, sel.Cursor = res.Anchor, res.Cursor
		}
		sel.Captures = captures
		l.sels[i] = sel
	}
	l.SortAndMergeOverlapping()
}
