package editor

import (
	"fmt"
	"slices"

	"github.com/dshills/selcore/internal/engine/buffer"
	"github.com/dshills/selcore/internal/engine/selection"
	"github.com/dshills/selcore/internal/engine/worddb"
	"github.com/dshills/selcore/internal/regex"
)

// Direction is a search direction.
type Direction int

const (
	// Forward searches towards the end of the buffer.
	Forward Direction = iota
	// Backward searches towards the beginning of the buffer.
	Backward
)

// compilePattern compiles pattern, reporting failures as ErrRegex.
func compilePattern(pattern string) (*regex.Regex, error) {
	re, err := regex.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRegex, err)
	}
	return re, nil
}

// textIndex converts between buffer coords and byte offsets into a
// snapshot of the buffer text. starts[i] is the offset of line i.
type textIndex struct {
	buf    *buffer.Buffer
	text   string
	starts []int
}

func newTextIndex(buf *buffer.Buffer) *textIndex {
	starts := make([]int, buf.LineCount()+1)
	for i := range buf.LineCount() {
		starts[i+1] = starts[i] + buf.LineLen(i)
	}
	return &textIndex{buf: buf, text: buf.Text(), starts: starts}
}

func (t *textIndex) offset(c buffer.Coord) int {
	return t.starts[min(c.Line, len(t.starts)-1)] + c.Column
}

func (t *textIndex) coordAt(off int) buffer.Coord {
	line, found := slices.BinarySearch(t.starts, off)
	if !found {
		line--
	}
	return buffer.Coord{Line: line, Column: off - t.starts[line]}
}

// span returns the byte span of sel's content.
func (t *textIndex) span(sel selection.Selection) (int, int) {
	return t.offset(sel.Min()), t.offset(t.buf.CharNext(sel.Max()))
}

// selectionOf returns the selection covering m: from its first to its
// last codepoint, or the single codepoint at an empty match.
func (t *textIndex) selectionOf(m regex.Match) selection.Selection {
	begin := t.coordAt(m.Begin)
	end := begin
	if m.End > m.Begin {
		end = t.buf.CharPrev(t.coordAt(m.End))
	}
	sel := selection.New(t.buf.Clamp(begin), t.buf.Clamp(end))
	sel.Captures = m.Captures
	return sel
}

// SelectMatches replaces every selection with the matches of re inside it.
func SelectMatches(ctx *Context, re regex.Matcher) error {
	idx := newTextIndex(ctx.buf)
	var res []selection.Selection
	for _, sel := range ctx.Selections().All() {
		begin, end := idx.span(sel)
		for _, m := range re.All(idx.text, begin, end) {
			if m.Begin == end {
				continue
			}
			res = append(res, keepDirection(idx.selectionOf(m), sel))
		}
	}
	if len(res) == 0 {
		return ErrNothingSelected
	}
	return ctx.SetSelections(res)
}

// SplitMatches splits every selection on the matches of re, keeping the
// text between them.
func SplitMatches(ctx *Context, re regex.Matcher) error {
	buf := ctx.buf
	idx := newTextIndex(buf)
	var res []selection.Selection
	for _, sel := range ctx.Selections().All() {
		begin, end := idx.span(sel)
		piece := begin
		for _, m := range re.All(idx.text, begin, end) {
			if m.Begin == m.End {
				continue
			}
			if m.Begin > piece {
				res = append(res, keepDirection(selection.New(
					idx.coordAt(piece),
					buf.CharPrev(idx.coordAt(m.Begin))), sel))
			}
			piece = m.End
		}
		if piece < end {
			res = append(res, keepDirection(selection.New(idx.coordAt(piece), sel.Max()), sel))
		}
	}
	if len(res) == 0 {
		return ErrNothingSelected
	}
	return ctx.SetSelections(res)
}

// KeepMatching keeps the selections in which re finds a match, or those
// in which it finds none when matching is false.
func KeepMatching(ctx *Context, re regex.Matcher, matching bool) error {
	idx := newTextIndex(ctx.buf)
	return ctx.Selections().Filter(func(_ int, sel selection.Selection) bool {
		begin, end := idx.span(sel)
		_, found := re.First(idx.text, begin, end)
		return found == matching
	})
}

// findNextMatch returns the match of re after sel (before it when
// searching backward), wrapping around the buffer. A backward match is
// returned with its cursor on its first codepoint.
func findNextMatch(idx *textIndex, sel selection.Selection, re regex.Matcher, dir Direction) (selection.Selection, bool) {
	var m regex.Match
	var ok bool
	if dir == Forward {
		from := idx.offset(idx.buf.CharNext(sel.Max()))
		m, ok = re.First(idx.text, from, len(idx.text))
		if !ok || m.Begin == len(idx.text) {
			m, ok = re.First(idx.text, 0, len(idx.text))
		}
	} else {
		to := idx.offset(sel.Min())
		m, ok = regex.Last(re, idx.text, 0, to)
		if !ok {
			m, ok = regex.Last(re, idx.text, 0, len(idx.text))
		}
	}
	if !ok || m.Begin == len(idx.text) {
		return selection.Selection{}, false
	}
	res := idx.selectionOf(m)
	if dir == Backward {
		res = res.Flip()
	}
	return res, true
}

// SelectNextMatch moves to the next match of re. In replace mode every
// selection is replaced by its next match, in extend mode extended to it;
// in append mode the match after the main selection is added as the new
// main selection.
func SelectNextMatch(ctx *Context, re regex.Matcher, mode selection.SelectMode, dir Direction) error {
	idx := newTextIndex(ctx.buf)
	sels := ctx.Selections()

	if mode == selection.SelectAppend {
		main := sels.Main()
		res, ok := findNextMatch(idx, main, re, dir)
		if !ok {
			return fmt.Errorf("%q: %w", re.String(), ErrNoMatch)
		}
		sels.PushBack(keepDirection(res, main))
		return nil
	}

	all := sels.All()
	for i, sel := range all {
		res, ok := findNextMatch(idx, sel, re, dir)
		if !ok {
			return fmt.Errorf("%q: %w", re.String(), ErrNoMatch)
		}
		if mode == selection.SelectExtend {
			all[i] = sel.MergeWith(res)
		} else {
			all[i] = keepDirection(res, sel)
		}
	}
	return sels.Set(all, sels.MainIndex())
}

// RegexFunc applies a regex to the context on behalf of a prompt. re is
// nil when the prompt text is empty.
type RegexFunc func(ctx *Context, re *regex.Regex, event PromptEvent) error

// withSearchRegister falls back to the search register when the prompt is
// empty and records the pattern in it on validation.
func withSearchRegister(fn func(*Context, *regex.Regex) error) RegexFunc {
	return func(ctx *Context, re *regex.Regex, event PromptEvent) error {
		if re == nil {
			pattern := ctx.mainRegisterValue(RegisterSearch)
			if pattern == "" {
				return nil
			}
			var err error
			if re, err = compilePattern(pattern); err != nil {
				return err
			}
		} else if event == PromptValidate {
			ctx.regs.Set(RegisterSearch, []string{re.String()})
		}
		return fn(ctx, re)
	}
}

func searchFunc(mode selection.SelectMode, dir Direction) RegexFunc {
	return withSearchRegister(func(ctx *Context, re *regex.Regex) error {
		return SelectNextMatch(ctx, re, mode, dir)
	})
}

func selectMatchesFunc() RegexFunc {
	return withSearchRegister(func(ctx *Context, re *regex.Regex) error {
		return SelectMatches(ctx, re)
	})
}

func splitMatchesFunc() RegexFunc {
	return withSearchRegister(func(ctx *Context, re *regex.Regex) error {
		return SplitMatches(ctx, re)
	})
}

func keepFunc(matching bool) RegexFunc {
	return func(ctx *Context, re *regex.Regex, _ PromptEvent) error {
		if re == nil {
			return nil
		}
		return KeepMatching(ctx, re, matching)
	}
}

// runValidated applies fn to pattern the way a validated prompt does.
func runValidated(ctx *Context, pattern string, fn RegexFunc) error {
	ctx.PushJump()
	var re *regex.Regex
	if pattern != "" {
		var err error
		if re, err = compilePattern(pattern); err != nil {
			return err
		}
	}
	return fn(ctx, re, PromptValidate)
}

func searchCommand(mode selection.SelectMode, dir Direction) Command {
	return func(ctx *Context, p Params) error {
		return runValidated(ctx, p.Arg, searchFunc(mode, dir))
	}
}

func regexCommand(fn func(*Context, regex.Matcher) error) Command {
	apply := withSearchRegister(func(ctx *Context, re *regex.Regex) error {
		return fn(ctx, re)
	})
	return func(ctx *Context, p Params) error {
		return runValidated(ctx, p.Arg, apply)
	}
}

func keepCommand(matching bool) Command {
	return func(ctx *Context, p Params) error {
		return runValidated(ctx, p.Arg, keepFunc(matching))
	}
}

func searchNextCommand(mode selection.SelectMode, dir Direction) Command {
	return func(ctx *Context, p Params) error {
		return SearchNext(ctx, p, mode, dir)
	}
}

// SearchNext repeats the search held in the search register p.Count
// times.
func SearchNext(ctx *Context, p Params, mode selection.SelectMode, dir Direction) error {
	pattern := ctx.mainRegisterValue(RegisterSearch)
	if pattern == "" {
		return ErrNoSearchPattern
	}
	re, err := compilePattern(pattern)
	if err != nil {
		return err
	}
	for range p.repeat() {
		if err := SelectNextMatch(ctx, re, mode, dir); err != nil {
			return err
		}
	}
	return nil
}

// UseSelectionAsSearch stores the selection contents, quoted, as search
// patterns. Word boundaries are required where a selection starts or ends
// on a word edge.
func UseSelectionAsSearch(ctx *Context, _ Params) error {
	buf := ctx.buf
	sels := ctx.Selections()
	patterns := make([]string, 0, sels.Len())
	for _, sel := range sels.All() {
		begin := sel.Min()
		end := buf.CharNext(sel.Max())
		pattern := regex.Quote(buf.Content(begin, end))

		first := buf.CharAt(begin)
		if worddb.IsWordChar(first) && (begin.IsZero() || !worddb.IsWordChar(buf.CharAt(buf.CharPrev(begin)))) {
			pattern = `\b` + pattern
		}
		last := buf.CharAt(buf.CharPrev(end))
		if worddb.IsWordChar(last) && (end == buf.EndCoord() || !worddb.IsWordChar(buf.CharAt(end))) {
			pattern += `\b`
		}
		patterns = append(patterns, pattern)
	}
	ctx.regs.Set(RegisterSearch, patterns)
	return nil
}
