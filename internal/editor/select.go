package editor

import (
	"unicode/utf8"

	"github.com/dshills/selcore/internal/engine/buffer"
	"github.com/dshills/selcore/internal/engine/selection"
)

// SelectAll selects the whole buffer.
func SelectAll(ctx *Context, _ Params) error {
	return ctx.sels.Set([]selection.Selection{
		selection.New(buffer.Coord{}, ctx.buf.BackCoord()),
	}, 0)
}

func selectCommand(mode selection.SelectMode, fn selection.Selector) Command {
	return func(ctx *Context, p Params) error {
		sels := ctx.Selections()
		for range p.repeat() {
			sels.Select(mode, fn)
		}
		return nil
	}
}

// SelectLine selects the line of the cursor, or the next line when the
// cursor rests on a line end that is not the last one.
func SelectLine(buf *buffer.Buffer, sel selection.Selection) (selection.Selection, bool) {
	c := sel.Cursor
	if buf.ByteAt(c) == '\n' && buf.CharNext(c) != buf.EndCoord() {
		c = buf.NextLine(c)
	}
	return selection.New(buffer.Coord{Line: c.Line}, buf.LineEnd(c.Line)), true
}

func selectToCharCommand(mode selection.SelectMode, inclusive bool) Command {
	return func(ctx *Context, p Params) error {
		r, size := utf8.DecodeRuneInString(p.Arg)
		if size == 0 {
			return nil
		}
		ctx.Selections().Select(mode, SelectTo(r, p.repeat(), inclusive))
		return nil
	}
}

// SelectTo returns a selector selecting from the cursor to the count-th
// next occurrence of r, included or not.
func SelectTo(r rune, count int, inclusive bool) selection.Selector {
	return func(buf *buffer.Buffer, sel selection.Selection) (selection.Selection, bool) {
		begin := sel.Cursor
		end := begin
		for range max(count, 1) {
			end = buf.CharNext(end)
			for end != buf.EndCoord() && buf.CharAt(end) != r {
				end = buf.CharNext(end)
			}
			if end == buf.EndCoord() {
				return sel, false
			}
		}
		if !inclusive {
			end = buf.CharPrev(end)
		}
		return selection.New(begin, end), true
	}
}

func moveCommand(mode selection.SelectMode, lines, chars int) Command {
	return func(ctx *Context, p Params) error {
		n := p.repeat()
		sels := ctx.Selections()
		sels.Select(selection.SelectReplace, func(buf *buffer.Buffer, sel selection.Selection) (selection.Selection, bool) {
			var cursor buffer.Coord
			if lines != 0 {
				cursor = offsetLines(buf, sel.Cursor, lines*n)
			} else {
				cursor = offsetChars(buf, sel.Cursor, chars*n)
			}
			if mode == selection.SelectExtend {
				return selection.New(sel.Anchor, cursor), true
			}
			return selection.At(cursor), true
		})
		sels.AvoidEOL()
		return nil
	}
}

// offsetChars moves c by n codepoints, staying on its line.
func offsetChars(buf *buffer.Buffer, c buffer.Coord, n int) buffer.Coord {
	begin := buffer.Coord{Line: c.Line}
	last := buf.CharLength(begin, buffer.Coord{Line: c.Line + 1}) - 1
	idx := min(max(buf.CharLength(begin, c)+n, 0), last)
	return buf.CharAdvance(begin, idx)
}

// offsetLines moves c by n lines, keeping its codepoint column where the
// target line is long enough.
func offsetLines(buf *buffer.Buffer, c buffer.Coord, n int) buffer.Coord {
	col := buf.CharLength(buffer.Coord{Line: c.Line}, c)
	line := min(max(c.Line+n, 0), buf.LineCount()-1)
	begin := buffer.Coord{Line: line}
	last := max(buf.CharLength(begin, buffer.Coord{Line: line + 1})-2, 0)
	return buf.CharAdvance(begin, min(col, last))
}

// GotoLine saves a jump and moves to the beginning of line p.Count
// (1-based, the first line when 0).
func GotoLine(ctx *Context, p Params) error {
	ctx.PushJump()
	line := min(max(p.Count-1, 0), ctx.buf.LineCount()-1)
	return ctx.sels.Set([]selection.Selection{selection.At(buffer.Coord{Line: line})}, 0)
}

// keepDirection orients sel like ref.
func keepDirection(sel, ref selection.Selection) selection.Selection {
	if sel.IsForward() != ref.IsForward() {
		return sel.Flip()
	}
	return sel
}

// SplitLines splits every multi-line selection into one selection per
// line.
func SplitLines(ctx *Context, _ Params) error {
	buf := ctx.buf
	var res []selection.Selection
	for _, sel := range ctx.Selections().All() {
		if sel.Anchor.Line == sel.Cursor.Line {
			res = append(res, sel)
			continue
		}
		lo, hi := sel.Min(), sel.Max()
		res = append(res, keepDirection(selection.New(lo, buf.LineEnd(lo.Line)), sel))
		for line := lo.Line + 1; line < hi.Line; line++ {
			res = append(res, keepDirection(selection.New(buffer.Coord{Line: line}, buf.LineEnd(line)), sel))
		}
		res = append(res, keepDirection(selection.New(buffer.Coord{Line: hi.Line}, hi), sel))
	}
	return ctx.SetSelections(res)
}

// countIndex returns the 0-based selection index a count designates: the
// count-th selection, or the main one when no count was given.
func countIndex(ctx *Context, p Params) int {
	if p.Count > 0 {
		return p.Count - 1
	}
	return ctx.sels.MainIndex()
}

// KeepMain drops every selection but the main one, or the p.Count-th.
func KeepMain(ctx *Context, p Params) error {
	return ctx.Selections().Keep(countIndex(ctx, p))
}

// RemoveMain drops the main selection, or the p.Count-th.
func RemoveMain(ctx *Context, p Params) error {
	return ctx.Selections().Remove(countIndex(ctx, p))
}

// ReduceToCursors collapses every selection onto its cursor.
func ReduceToCursors(ctx *Context, _ Params) error {
	ctx.Selections().ReduceToCursors()
	return nil
}

// FlipSelections swaps anchor and cursor of every selection.
func FlipSelections(ctx *Context, _ Params) error {
	ctx.Selections().Flip()
	return nil
}

func rotateCommand(direction int) Command {
	return func(ctx *Context, p Params) error {
		ctx.Selections().RotateMain(direction * p.repeat())
		return nil
	}
}

func copyOnLinesCommand(direction int) Command {
	return func(ctx *Context, p Params) error {
		return CopySelectionsOnLines(ctx, direction*p.repeat())
	}
}

// CopySelectionsOnLines duplicates every selection onto the |n| following
// lines (preceding lines for negative n), keeping byte columns. Copies
// that would not land on valid positions are skipped.
func CopySelectionsOnLines(ctx *Context, n int) error {
	buf := ctx.buf
	step := 1
	if n < 0 {
		step, n = -1, -n
	}
	valid := func(c buffer.Coord) bool {
		return c.Line < buf.LineCount() && buf.IsValid(c) && buf.Clamp(c) == c
	}

	sels := ctx.Selections()
	var res []selection.Selection
	main := 0
	for i, sel := range sels.All() {
		if i == sels.MainIndex() {
			main = len(res)
		}
		res = append(res, sel)
		for i := 1; i <= n; i++ {
			offset := step * i
			anchor := buffer.Coord{Line: sel.Anchor.Line + offset, Column: sel.Anchor.Column}
			cursor := buffer.Coord{Line: sel.Cursor.Line + offset, Column: sel.Cursor.Column}
			if valid(anchor) && valid(cursor) {
				res = append(res, selection.New(anchor, cursor))
			}
		}
	}
	return sels.Set(res, main)
}

// KeepPipe keeps the selections whose content the shell command p.Arg
// accepts with a zero exit status.
func KeepPipe(ctx *Context, p Params) error {
	if p.Arg == "" {
		return nil
	}
	if ctx.shell == nil {
		return ErrNoShell
	}
	sels := ctx.Selections()
	var perr error
	err := sels.Filter(func(_ int, sel selection.Selection) bool {
		if perr != nil {
			return false
		}
		_, status, err := ctx.shell.Pipe(ctx.goctx, sel.Content(ctx.buf), p.Arg)
		if err != nil {
			perr = err
			return false
		}
		return status == 0
	})
	if perr != nil {
		return perr
	}
	return err
}
