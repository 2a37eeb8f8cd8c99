package editor

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dshills/selcore/internal/engine/buffer"
	"github.com/dshills/selcore/internal/engine/selection"
)

// Yank copies the selection contents into the register.
func Yank(ctx *Context, p Params) error {
	reg := p.register(RegisterDefault)
	sels := ctx.Selections()
	ctx.regs.Set(reg, sels.Contents())
	ctx.logger.Debug("yanked selections",
		zap.Int("selections", sels.Len()),
		zap.String("register", string(reg)))
	return nil
}

// Erase yanks the selections and deletes their text.
func Erase(ctx *Context, p Params) error {
	sels := ctx.Selections()
	ctx.regs.Set(p.register(RegisterDefault), sels.Contents())
	sels.Erase()
	sels.AvoidEOL()
	return nil
}

// Change yanks the selections and replaces their text with p.Arg.
func Change(ctx *Context, p Params) error {
	sels := ctx.Selections()
	ctx.regs.Set(p.register(RegisterDefault), sels.Contents())
	sels.Insert([]string{p.Arg}, selection.ReplaceRange)
	return nil
}

func insertCommand(mode selection.InsertMode) Command {
	return func(ctx *Context, p Params) error {
		ctx.Selections().Insert([]string{p.Arg}, mode)
		return nil
	}
}

// adaptForLinewise returns the mode pasting whole lines uses in place of
// mode.
func adaptForLinewise(mode selection.InsertMode) selection.InsertMode {
	switch mode {
	case selection.AppendAfter:
		return selection.InsertAtNextLineBegin
	case selection.InsertBefore:
		return selection.InsertAtLineBegin
	case selection.ReplaceRange:
		return selection.ReplaceRange
	}
	return selection.InsertBefore
}

func isLinewise(strs []string) bool {
	for _, s := range strs {
		if strings.HasSuffix(s, "\n") {
			return true
		}
	}
	return false
}

func pasteCommand(mode selection.InsertMode) Command {
	return func(ctx *Context, p Params) error {
		return Paste(ctx, p, mode)
	}
}

// Paste inserts the register values, one per selection, according to mode.
// Values ending with a newline are pasted as whole lines. The paste is
// repeated p.Count times except in replace mode.
func Paste(ctx *Context, p Params, mode selection.InsertMode) error {
	strs := ctx.regs.Get(p.register(RegisterDefault))
	if len(strs) == 0 {
		return nil
	}
	effective := mode
	if isLinewise(strs) {
		effective = adaptForLinewise(mode)
	}
	repeat := p.repeat()
	if mode == selection.ReplaceRange {
		repeat = 1
	}
	sels := ctx.Selections()
	for range repeat {
		sels.Insert(strs, effective)
	}
	return nil
}

func pasteAllCommand(mode selection.InsertMode) Command {
	return func(ctx *Context, p Params) error {
		return PasteAll(ctx, p, mode)
	}
}

// PasteAll inserts every register value at each selection and selects each
// pasted value separately.
func PasteAll(ctx *Context, p Params, mode selection.InsertMode) error {
	strs := ctx.regs.Get(p.register(RegisterDefault))
	effective := mode
	if isLinewise(strs) {
		effective = adaptForLinewise(mode)
	}

	var all strings.Builder
	offsets := make([]int, 0, len(strs))
	for _, s := range strs {
		all.WriteString(s)
		offsets = append(offsets, all.Len())
	}
	if all.Len() == 0 {
		return nil
	}

	sels := ctx.Selections()
	sels.InsertAndSelect([]string{all.String()}, effective)

	buf := ctx.buf
	var result []selection.Selection
	for _, sel := range sels.All() {
		pos := 0
		for _, off := range offsets {
			if off == pos {
				continue
			}
			result = append(result, selection.New(
				buf.Advance(sel.Min(), pos),
				buf.CharPrev(buf.Advance(sel.Min(), off))))
			pos = off
		}
	}
	return ctx.SetSelections(result)
}

// ReplaceWithChar replaces every codepoint of the selections with the
// first character of p.Arg.
func ReplaceWithChar(ctx *Context, p Params) error {
	r, size := utf8.DecodeRuneInString(p.Arg)
	if size == 0 {
		return nil
	}
	sels := ctx.Selections()
	strs := make([]string, sels.Len())
	for i, sel := range sels.All() {
		n := ctx.buf.CharLength(sel.Min(), ctx.buf.CharNext(sel.Max()))
		strs[i] = strings.Repeat(string(r), n)
	}
	sels.Insert(strs, selection.ReplaceRange)
	return nil
}

// LowerCase converts the selected text to lower case.
func LowerCase(ctx *Context, _ Params) error {
	caser := cases.Lower(language.Und)
	replaceContents(ctx, caser.String)
	return nil
}

// UpperCase converts the selected text to upper case.
func UpperCase(ctx *Context, _ Params) error {
	caser := cases.Upper(language.Und)
	replaceContents(ctx, caser.String)
	return nil
}

// SwapCase swaps the case of every selected codepoint.
func SwapCase(ctx *Context, _ Params) error {
	lower := cases.Lower(language.Und)
	upper := cases.Upper(language.Und)
	replaceContents(ctx, func(s string) string {
		var sb strings.Builder
		for _, r := range s {
			switch {
			case unicode.IsLower(r):
				sb.WriteString(upper.String(string(r)))
			case unicode.IsUpper(r):
				sb.WriteString(lower.String(string(r)))
			default:
				sb.WriteRune(r)
			}
		}
		return sb.String()
	})
	return nil
}

func replaceContents(ctx *Context, fn func(string) string) {
	sels := ctx.Selections()
	strs := sels.Contents()
	for i, s := range strs {
		strs[i] = fn(s)
	}
	sels.Insert(strs, selection.ReplaceRange)
}

func isHorizontalBlank(b byte) bool {
	return b == ' ' || b == '\t'
}

// JoinLinesSelectSpaces selects the line break and the leading blanks of
// the following line for every line of the selections (or the line after a
// single-line selection), then replaces them with a single space.
func JoinLinesSelectSpaces(ctx *Context, _ Params) error {
	buf := ctx.buf
	var joins []selection.Selection
	for _, sel := range ctx.Selections().All() {
		minLine, maxLine := sel.Min().Line, sel.Max().Line
		endLine := maxLine
		if minLine == maxLine {
			endLine++
		}
		endLine = min(buf.LineCount()-1, endLine)
		for line := minLine; line < endLine; line++ {
			begin := buf.LineEnd(line)
			end := buf.CharNext(begin)
			for end != buf.EndCoord() && isHorizontalBlank(buf.ByteAt(end)) {
				end = buf.CharNext(end)
			}
			joins = append(joins, selection.New(begin, buf.CharPrev(end)))
		}
	}
	if len(joins) == 0 {
		return nil
	}
	if err := ctx.SetSelections(joins); err != nil {
		return err
	}
	ctx.sels.Insert([]string{" "}, selection.ReplaceRange)
	return nil
}

// JoinLines joins the lines of the selections like JoinLinesSelectSpaces
// but keeps the original selections.
func JoinLines(ctx *Context, p Params) error {
	saved := ctx.Selections().Clone()
	defer func() {
		saved.Update()
		_ = ctx.sels.Set(saved.All(), saved.MainIndex())
	}()
	return JoinLinesSelectSpaces(ctx, p)
}

func indentCommand(indentEmpty bool) Command {
	return func(ctx *Context, p Params) error {
		return Indent(ctx, indentEmpty)
	}
}

// Indent inserts one indent level at the beginning of every selected line.
// Empty lines are skipped unless indentEmpty is set. A line covered by
// several selections is indented once.
func Indent(ctx *Context, indentEmpty bool) error {
	indent := "\t"
	if w := ctx.opts.IndentWidth; w > 0 {
		indent = strings.Repeat(" ", w)
	}

	buf := ctx.buf
	var lines []selection.Selection
	lastLine := 0
	for _, sel := range ctx.Selections().All() {
		for line := max(lastLine, sel.Min().Line); line <= sel.Max().Line; line++ {
			if indentEmpty || buf.LineLen(line) > 1 {
				lines = append(lines, selection.At(buffer.Coord{Line: line}))
			}
		}
		lastLine = sel.Max().Line + 1
	}
	if len(lines) == 0 {
		return nil
	}
	selection.NewList(buf, lines...).Insert([]string{indent}, selection.InsertBefore)
	return nil
}

func deindentCommand(incomplete bool) Command {
	return func(ctx *Context, p Params) error {
		return Deindent(ctx, incomplete)
	}
}

// Deindent removes one indent level from the beginning of every selected
// line. When incomplete is set, a line indented by less than one level
// loses its whole indentation.
func Deindent(ctx *Context, incomplete bool) error {
	tabstop := ctx.opts.tabStop()
	indentWidth := ctx.opts.IndentWidth
	if indentWidth <= 0 {
		indentWidth = tabstop
	}

	buf := ctx.buf
	var ranges []selection.Selection
	lastLine := 0
	for _, sel := range ctx.Selections().All() {
		for line := max(sel.Min().Line, lastLine); line <= sel.Max().Line; line++ {
			width := 0
			text := buf.LineText(line)
		scan:
			for column := 0; column < len(text); column++ {
				switch text[column] {
				case '\t':
					width = (width/tabstop + 1) * tabstop
				case ' ':
					width++
				default:
					if incomplete && width != 0 {
						ranges = append(ranges, selection.New(
							buffer.Coord{Line: line},
							buffer.Coord{Line: line, Column: column - 1}))
					}
					break scan
				}
				if width == indentWidth {
					ranges = append(ranges, selection.New(
						buffer.Coord{Line: line},
						buffer.Coord{Line: line, Column: column}))
					break
				}
			}
		}
		lastLine = sel.Max().Line + 1
	}
	if len(ranges) == 0 {
		return nil
	}
	selection.NewList(buf, ranges...).Erase()
	return nil
}

// RotateContents rotates the selection contents one step forward within
// groups of p.Count selections (all selections when p.Count is 0), then
// moves the main selection along.
func RotateContents(ctx *Context, p Params) error {
	sels := ctx.Selections()
	strs := sels.Contents()
	group := p.Count
	if group == 0 || group > len(strs) {
		group = len(strs)
	}
	count := 1 % group

	rotated := make([]string, 0, len(strs))
	for i := 0; i < len(strs); i += group {
		seg := strs[i:min(len(strs), i+group)]
		k := len(seg) - count
		rotated = append(rotated, seg[k:]...)
		rotated = append(rotated, seg[:k]...)
	}
	sels.Insert(rotated, selection.ReplaceRange)
	sels.RotateMain(count)
	return nil
}

// pipeCommand runs every selection through the shell command p.Arg (the
// pipe register when empty). With replace set the output replaces the
// selection.
func pipeCommand(replace bool) Command {
	return func(ctx *Context, p Params) error {
		cmd := shellCommand(ctx, p)
		if cmd == "" {
			return nil
		}
		if ctx.shell == nil {
			return ErrNoShell
		}

		sels := ctx.Selections()
		contents := sels.Contents()
		if !replace {
			for _, s := range contents {
				if _, _, err := ctx.shell.Pipe(ctx.goctx, s, cmd); err != nil {
					return err
				}
			}
			return nil
		}

		for i, s := range contents {
			insertEOL := !strings.HasSuffix(s, "\n")
			if insertEOL {
				s += "\n"
			}
			out, _, err := ctx.shell.Pipe(ctx.goctx, s, cmd)
			if err != nil {
				return err
			}
			if insertEOL {
				out = strings.TrimSuffix(out, "\n")
			}
			contents[i] = out
		}
		sels.Insert(contents, selection.ReplaceRange)
		return nil
	}
}

func insertOutputCommand(mode selection.InsertMode) Command {
	return func(ctx *Context, p Params) error {
		cmd := shellCommand(ctx, p)
		if cmd == "" {
			return nil
		}
		if ctx.shell == nil {
			return ErrNoShell
		}
		out, err := ctx.shell.Eval(ctx.goctx, cmd)
		if err != nil {
			return err
		}
		ctx.Selections().Insert([]string{out}, mode)
		return nil
	}
}

// shellCommand returns the command to run: p.Arg, remembered in the pipe
// register, or the pipe register value when p.Arg is empty.
func shellCommand(ctx *Context, p Params) string {
	if p.Arg == "" {
		return ctx.mainRegisterValue(RegisterPipe)
	}
	ctx.regs.Set(RegisterPipe, []string{p.Arg})
	return p.Arg
}
