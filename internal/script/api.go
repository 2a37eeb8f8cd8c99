package script

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/dshills/selcore/internal/editor"
	"github.com/dshills/selcore/internal/engine/buffer"
	"github.com/dshills/selcore/internal/engine/selection"
	"github.com/dshills/selcore/internal/engine/worddb"
)

// register installs the sel module.
func (e *Engine) register() {
	mod := e.L.SetFuncs(e.L.NewTable(), map[string]lua.LGFunction{
		"exec":         e.exec,
		"text":         e.text,
		"line":         e.line,
		"line_count":   e.lineCount,
		"timestamp":    e.timestamp,
		"buffer_id":    e.bufferID,
		"complete":     e.complete,
		"save_jump":    e.saveJump,
		"restore_jump": e.restoreJump,
		"selections":   e.selections,
		"select":       e.selectRanges,
		"main":         e.main,
		"contents":     e.contents,
		"register":     e.getRegister,
		"set_register": e.setRegister,
		"commands":     e.commands,
		"log":          e.log,
	})
	e.L.SetGlobal("sel", mod)
}

// exec(name [, arg | opts]) -> nil
// Runs a registered command. opts may hold arg, count and register.
func (e *Engine) exec(L *lua.LState) int {
	name := L.CheckString(1)

	var p editor.Params
	switch v := L.Get(2).(type) {
	case *lua.LNilType:
	case lua.LString:
		p.Arg = string(v)
	case *lua.LTable:
		p.Arg = lua.LVAsString(L.GetField(v, "arg"))
		p.Count = int(lua.LVAsNumber(L.GetField(v, "count")))
		if reg := lua.LVAsString(L.GetField(v, "register")); reg != "" {
			p.Register, _ = utf8.DecodeRuneInString(reg)
		}
	default:
		L.ArgError(2, "string or table expected")
		return 0
	}

	if err := e.guard(func() error { return e.ctx.Run(name, p) }); err != nil {
		e.cause = err
		L.RaiseError("%s: %v", name, err)
	}
	return 0
}

// text() -> string
func (e *Engine) text(L *lua.LState) int {
	L.Push(lua.LString(e.ctx.Buffer().Text()))
	return 1
}

// line(n) -> string
// Returns line n (1-indexed) without its newline.
func (e *Engine) line(L *lua.LState) int {
	n := L.CheckInt(1)
	buf := e.ctx.Buffer()
	if n < 1 || n > buf.LineCount() {
		L.ArgError(1, "line out of range")
		return 0
	}
	L.Push(lua.LString(buf.LineText(n - 1)))
	return 1
}

// line_count() -> number
func (e *Engine) lineCount(L *lua.LState) int {
	L.Push(lua.LNumber(e.ctx.Buffer().LineCount()))
	return 1
}

// buffer_id() -> string
func (e *Engine) bufferID(L *lua.LState) int {
	L.Push(lua.LString(e.ctx.Buffer().ID().String()))
	return 1
}

// timestamp() -> number
func (e *Engine) timestamp(L *lua.LState) int {
	L.Push(lua.LNumber(e.ctx.Buffer().Timestamp()))
	return 1
}

func coordTable(L *lua.LState, c buffer.Coord) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("line", lua.LNumber(c.Line+1))
	t.RawSetString("col", lua.LNumber(c.Column+1))
	return t
}

// checkCoord reads a {line=, col=} table, raising an argument error for
// arg when it does not address a codepoint of buf.
func checkCoord(L *lua.LState, buf *buffer.Buffer, v lua.LValue, arg int) buffer.Coord {
	t, ok := v.(*lua.LTable)
	if !ok {
		L.ArgError(arg, "coordinate table expected")
		return buffer.Coord{}
	}
	c := buffer.Coord{
		Line:   int(lua.LVAsNumber(t.RawGetString("line"))) - 1,
		Column: int(lua.LVAsNumber(t.RawGetString("col"))) - 1,
	}
	if !buf.IsValid(c) || c == buf.EndCoord() {
		L.ArgError(arg, "coordinate out of buffer")
		return buffer.Coord{}
	}
	return buf.Clamp(c)
}

// selections() -> table
func (e *Engine) selections(L *lua.LState) int {
	res := L.NewTable()
	for _, sel := range e.ctx.Selections().All() {
		t := L.NewTable()
		t.RawSetString("anchor", coordTable(L, sel.Anchor))
		t.RawSetString("cursor", coordTable(L, sel.Cursor))
		res.Append(t)
	}
	L.Push(res)
	return 1
}

// select(list) -> nil
// Replaces the selections. An entry without cursor selects its anchor.
func (e *Engine) selectRanges(L *lua.LState) int {
	list := L.CheckTable(1)
	buf := e.ctx.Buffer()

	var sels []selection.Selection
	for i := 1; i <= list.Len(); i++ {
		entry, ok := list.RawGetInt(i).(*lua.LTable)
		if !ok {
			L.ArgError(1, "selection table expected")
			return 0
		}
		anchor := checkCoord(L, buf, entry.RawGetString("anchor"), 1)
		cursor := anchor
		if v := entry.RawGetString("cursor"); v != lua.LNil {
			cursor = checkCoord(L, buf, v, 1)
		}
		sels = append(sels, selection.New(anchor, cursor))
	}
	if err := e.guard(func() error { return e.ctx.SetSelections(sels) }); err != nil {
		e.cause = err
		L.RaiseError("select: %v", err)
	}
	return 0
}

// main() -> number
func (e *Engine) main(L *lua.LState) int {
	L.Push(lua.LNumber(e.ctx.Selections().MainIndex() + 1))
	return 1
}

func stringList(L *lua.LState, strs []string) *lua.LTable {
	t := L.NewTable()
	for _, s := range strs {
		t.Append(lua.LString(s))
	}
	return t
}

// contents() -> table
func (e *Engine) contents(L *lua.LState) int {
	L.Push(stringList(L, e.ctx.Selections().Contents()))
	return 1
}

func checkRegister(L *lua.LState, arg int) rune {
	name := L.CheckString(arg)
	r, size := utf8.DecodeRuneInString(name)
	if size == 0 || size != len(name) {
		L.ArgError(arg, "single character register name expected")
	}
	return r
}

// register(name) -> table
func (e *Engine) getRegister(L *lua.LState) int {
	L.Push(stringList(L, e.ctx.Registers().Get(checkRegister(L, 1))))
	return 1
}

// set_register(name, values) -> nil
func (e *Engine) setRegister(L *lua.LState) int {
	name := checkRegister(L, 1)
	values := L.CheckTable(2)

	strs := make([]string, 0, values.Len())
	for i := 1; i <= values.Len(); i++ {
		strs = append(strs, lua.LVAsString(values.RawGetInt(i)))
	}
	e.ctx.Registers().Set(name, strs)
	return 0
}

// complete([mode]) -> {prefix=, begin={line=, col=}, candidates={...}}
// Completes the word before the main cursor. mode is "prefix" (default)
// or "subsequence".
func (e *Engine) complete(L *lua.LState) int {
	var match worddb.MatchFunc
	switch mode := L.OptString(1, "prefix"); mode {
	case "prefix":
		match = worddb.PrefixMatch
	case "subsequence":
		match = worddb.SubsequenceMatch
	default:
		L.ArgError(1, "unknown match mode "+mode)
		return 0
	}

	comp := e.ctx.CompleteWord(match)
	t := L.NewTable()
	t.RawSetString("prefix", lua.LString(comp.Prefix))
	t.RawSetString("begin", coordTable(L, comp.Begin))
	t.RawSetString("candidates", stringList(L, comp.Candidates))
	L.Push(t)
	return 1
}

// save_jump() -> string
// Saves the selections in the jump list and returns their jump id.
func (e *Engine) saveJump(L *lua.LState) int {
	L.Push(lua.LString(e.ctx.PushJump().String()))
	return 1
}

// restore_jump(id) -> nil
func (e *Engine) restoreJump(L *lua.LState) int {
	id, err := uuid.Parse(L.CheckString(1))
	if err != nil {
		L.ArgError(1, "invalid jump id")
		return 0
	}
	if err := e.guard(func() error { return e.ctx.RestoreJump(id) }); err != nil {
		e.cause = err
		L.RaiseError("restore_jump: %v", err)
	}
	return 0
}

// commands() -> table
func (e *Engine) commands(L *lua.LState) int {
	L.Push(stringList(L, editor.Names()))
	return 1
}

// log(msg) -> nil
func (e *Engine) log(L *lua.LState) int {
	e.ctx.Logger().Info(L.CheckString(1), zap.String("source", "script"))
	return 0
}

// print replaces the base print: output goes to the context logger.
func (e *Engine) print(L *lua.LState) int {
	n := L.GetTop()
	parts := make([]string, n)
	for i := 1; i <= n; i++ {
		parts[i-1] = L.ToStringMeta(L.Get(i)).String()
	}
	if e.ctx != nil {
		e.ctx.Logger().Info("script output", zap.String("text", strings.Join(parts, "\t")))
	}
	return 0
}
