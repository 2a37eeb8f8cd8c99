package editor

import (
	"strings"

	"github.com/dshills/selcore/internal/engine/buffer"
	"github.com/dshills/selcore/internal/engine/selection"
)

// Align pads selections so that their cursors line up. Selections are
// grouped in columns: the n-th selection of each line belongs to column n,
// and every column is aligned on its rightmost cursor. The padding goes
// before each selection.
func Align(ctx *Context, _ Params) error {
	sels := ctx.Selections()
	buf := ctx.buf
	tabstop := ctx.opts.tabStop()

	var columns [][]int
	lastLine, column := -1, 0
	for i, sel := range sels.All() {
		line := sel.Cursor.Line
		if sel.Anchor.Line != line {
			return ErrMultiLineAlign
		}
		if line == lastLine {
			column++
		} else {
			column = 0
		}
		if column >= len(columns) {
			columns = append(columns, nil)
		}
		columns[column] = append(columns[column], i)
		lastLine = line
	}

	for _, col := range columns {
		current := ctx.Selections().All()
		maxcol := 0
		for _, i := range col {
			maxcol = max(maxcol, buf.DisplayColumn(current[i].Cursor, tabstop))
		}
		for _, i := range col {
			sel := current[i]
			insertAt := sel.Min()
			lastcol := buf.DisplayColumn(sel.Cursor, tabstop)

			var pad string
			if !ctx.opts.AlignTab {
				pad = strings.Repeat(" ", maxcol-lastcol)
			} else {
				inscol := buf.DisplayColumn(insertAt, tabstop)
				target := maxcol - (lastcol - inscol)
				tabcol := inscol - inscol%tabstop
				tabs := (target - tabcol) / tabstop
				spaces := target - inscol
				if tabs > 0 {
					spaces = target - (tabcol + tabs*tabstop)
				}
				pad = strings.Repeat("\t", tabs) + strings.Repeat(" ", spaces)
			}
			buf.Insert(insertAt, pad)
		}
	}
	return nil
}

// CopyIndent gives every selected line the indentation of the first line
// of selection p.Count (1-based, the main selection when 0).
func CopyIndent(ctx *Context, p Params) error {
	sels := ctx.Selections()
	all := sels.All()
	if p.Count > len(all) {
		return ErrInvalidSelectionIndex
	}
	idx := p.Count
	if idx == 0 {
		idx = sels.MainIndex() + 1
	}

	var lines []int
	for _, sel := range all {
		for l := sel.Min().Line; l <= sel.Max().Line; l++ {
			lines = append(lines, l)
		}
	}

	buf := ctx.buf
	refLine := all[idx-1].Min().Line
	ref := buf.LineText(refLine)
	indent := ref[:leadingBlanks(ref)]

	for _, l := range lines {
		if l == refLine {
			continue
		}
		n := leadingBlanks(buf.LineText(l))
		buf.ApplyEdit(buffer.Coord{Line: l}, buffer.Coord{Line: l, Column: n}, indent)
	}
	return nil
}

func leadingBlanks(s string) int {
	i := 0
	for i < len(s) && isHorizontalBlank(s[i]) {
		i++
	}
	return i
}

// TabsToSpaces expands the tabs inside the selections to spaces, using
// p.Count as tab width when given.
func TabsToSpaces(ctx *Context, p Params) error {
	buf := ctx.buf
	optTabstop := ctx.opts.tabStop()
	tabstop := optTabstop
	if p.Count > 0 {
		tabstop = p.Count
	}

	var tabs []selection.Selection
	var spaces []string
	for _, sel := range ctx.Selections().All() {
		end := buf.CharNext(sel.Max())
		for it := sel.Min(); it.Before(end); it = buf.CharNext(it) {
			if buf.ByteAt(it) != '\t' {
				continue
			}
			col := buf.DisplayColumn(it, optTabstop)
			endCol := (col/tabstop + 1) * tabstop
			tabs = append(tabs, selection.At(it))
			spaces = append(spaces, strings.Repeat(" ", endCol-col))
		}
	}
	if len(tabs) > 0 {
		selection.NewList(buf, tabs...).Insert(spaces, selection.ReplaceRange)
	}
	return nil
}

// SpacesToTabs replaces the runs of spaces inside the selections that end
// on a tab stop with tabs, using p.Count as tab width when given.
func SpacesToTabs(ctx *Context, p Params) error {
	buf := ctx.buf
	optTabstop := ctx.opts.tabStop()
	tabstop := optTabstop
	if p.Count > 0 {
		tabstop = p.Count
	}

	var runs []selection.Selection
	for _, sel := range ctx.Selections().All() {
		end := buf.CharNext(sel.Max())
		for it := sel.Min(); it.Before(end); {
			if buf.ByteAt(it) != ' ' {
				it = buf.CharNext(it)
				continue
			}
			begin := it
			runEnd := buf.CharNext(begin)
			col := buf.DisplayColumn(runEnd, optTabstop)
			for buf.ByteAt(runEnd) == ' ' && col%tabstop != 0 {
				runEnd = buf.CharNext(runEnd)
				col++
			}
			switch {
			case col%tabstop == 0:
				runs = append(runs, selection.New(begin, buf.CharPrev(runEnd)))
			case buf.ByteAt(runEnd) == '\t':
				runs = append(runs, selection.New(begin, runEnd))
			}
			it = runEnd
		}
	}
	if len(runs) > 0 {
		selection.NewList(buf, runs...).Insert([]string{"\t"}, selection.ReplaceRange)
	}
	return nil
}
