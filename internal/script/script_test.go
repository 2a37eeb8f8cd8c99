package script

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/selcore/internal/editor"
	"github.com/dshills/selcore/internal/engine/buffer"
	"github.com/dshills/selcore/internal/engine/invariant"
	"github.com/dshills/selcore/internal/engine/selection"
)

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	e := NewEngine(opts...)
	t.Cleanup(func() {
		_ = e.Close()
	})
	return e
}

func newTestContext(text string, e *Engine) *editor.Context {
	return editor.NewContext(buffer.New(text), editor.WithMacroRunner(e))
}

func TestRunIsOneCommand(t *testing.T) {
	e := newTestEngine(t)
	ctx := newTestContext("abc\n", e)

	err := e.Run(ctx, `
sel.exec("edit.insert", "x")
sel.exec("edit.appendLineEnd", ";")
`)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := ctx.Buffer().Text(); got != "xabc;\n" {
		t.Errorf("expected %q, got %q", "xabc;\n", got)
	}
	if ctx.Buffer().HistorySize() != 1 {
		t.Errorf("expected one undo frame, got %d", ctx.Buffer().HistorySize())
	}

	if err := ctx.Run(editor.ActionUndo, editor.Params{}); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if got := ctx.Buffer().Text(); got != "abc\n" {
		t.Errorf("expected undo to restore %q, got %q", "abc\n", got)
	}
}

func TestRunRollsBack(t *testing.T) {
	e := newTestEngine(t)
	ctx := newTestContext("abc\n", e)

	err := e.Run(ctx, `
sel.exec("edit.insert", "x")
error("boom")
`)
	var serr *Error
	if !errors.As(err, &serr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if got := ctx.Buffer().Text(); got != "abc\n" {
		t.Errorf("expected rollback to %q, got %q", "abc\n", got)
	}
	if ctx.Buffer().HistorySize() != 0 {
		t.Errorf("expected no undo frame, got %d", ctx.Buffer().HistorySize())
	}
}

func TestCaughtMacroFailureKeepsEdits(t *testing.T) {
	e := newTestEngine(t)
	ctx := newTestContext("abc\n", e)
	ctx.Registers().Set('a', []string{`sel.exec("edit.insert", "q"); error("boom")`})

	err := e.Run(ctx, `
sel.exec("edit.insert", "x")
pcall(sel.exec, "macro.replay", {register = "a"})
sel.exec("edit.appendLineEnd", ";")
`)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := ctx.Buffer().Text(); got != "xabc;\n" {
		t.Errorf("expected %q, got %q", "xabc;\n", got)
	}
	if ctx.Buffer().HistorySize() != 1 {
		t.Errorf("expected one undo frame, got %d", ctx.Buffer().HistorySize())
	}
}

func TestRunRollsBackUndo(t *testing.T) {
	e := newTestEngine(t)
	ctx := newTestContext("abc\n", e)

	if err := e.Run(ctx, `sel.exec("edit.insert", "x")`); err != nil {
		t.Fatalf("Run: %v", err)
	}
	err := e.Run(ctx, `
sel.exec("history.undo")
error("boom")
`)
	if err == nil {
		t.Fatal("expected an error")
	}
	if got := ctx.Buffer().Text(); got != "xabc\n" {
		t.Errorf("expected %q, got %q", "xabc\n", got)
	}
	if got := ctx.Buffer().HistoryCursor(); got != 1 {
		t.Errorf("expected history cursor 1, got %d", got)
	}
}

func TestExecErrors(t *testing.T) {
	e := newTestEngine(t)
	ctx := newTestContext("abc\n", e)

	err := e.Run(ctx, `sel.exec("history.undo")`)
	if !errors.Is(err, editor.ErrNothingToUndo) {
		t.Errorf("expected ErrNothingToUndo, got %v", err)
	}
	if !editor.IsUserError(err) {
		t.Error("expected a user error")
	}

	err = e.Run(ctx, `
local ok = pcall(sel.exec, "history.undo")
assert(not ok)
sel.exec("edit.insert", {arg = "y", count = 1})
`)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := ctx.Buffer().Text(); got != "yabc\n" {
		t.Errorf("expected %q, got %q", "yabc\n", got)
	}

	err = e.Run(ctx, `sel.exec("edit.nope")`)
	if !errors.Is(err, editor.ErrUnknownCommand) {
		t.Errorf("expected ErrUnknownCommand, got %v", err)
	}
}

func TestSelectionsAPI(t *testing.T) {
	e := newTestEngine(t)
	ctx := newTestContext("hello world\n", e)

	err := e.Run(ctx, `
sel.select({
  {anchor = {line = 1, col = 1}, cursor = {line = 1, col = 5}},
  {anchor = {line = 1, col = 7}},
})
local s = sel.selections()
count = #s
first_cursor = s[1].cursor.col
main = sel.main()
contents = sel.contents()
`)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []selection.Selection{
		selection.New(buffer.Coord{}, buffer.Coord{Column: 4}),
		selection.At(buffer.Coord{Column: 6}),
	}
	got := ctx.Selections().All()
	if len(got) != len(want) || got[0].Cursor != want[0].Cursor || got[1].Anchor != want[1].Anchor {
		t.Errorf("expected %v, got %v", want, got)
	}
	if v := e.GetGlobal("count"); v != lua.LNumber(2) {
		t.Errorf("expected 2 selections, got %v", v)
	}
	if v := e.GetGlobal("first_cursor"); v != lua.LNumber(5) {
		t.Errorf("expected cursor column 5, got %v", v)
	}
	if v := e.GetGlobal("main"); v != lua.LNumber(2) {
		t.Errorf("expected main 2, got %v", v)
	}
	contents, ok := e.GetGlobal("contents").(*lua.LTable)
	if !ok || contents.RawGetInt(1) != lua.LString("hello") || contents.RawGetInt(2) != lua.LString("w") {
		t.Errorf("expected contents {hello, w}, got %v", e.GetGlobal("contents"))
	}
}

func TestSelectRejectsInvalidCoord(t *testing.T) {
	e := newTestEngine(t)
	ctx := newTestContext("ab\n", e)

	err := e.Run(ctx, `sel.select({{anchor = {line = 3, col = 1}}})`)
	if err == nil {
		t.Fatal("expected an error")
	}
	if got := ctx.Selections().Main(); got.Anchor != (buffer.Coord{}) || got.Cursor != (buffer.Coord{}) {
		t.Errorf("expected selections unchanged, got %v", got)
	}
}

func TestBufferAPI(t *testing.T) {
	e := newTestEngine(t)
	ctx := newTestContext("one\ntwo\n", e)

	err := e.Run(ctx, `
lines = sel.line_count()
second = sel.line(2)
all = sel.text()
ts = sel.timestamp()
id = sel.buffer_id()
`)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	tests := []struct {
		name string
		want lua.LValue
	}{
		{"lines", lua.LNumber(2)},
		{"second", lua.LString("two")},
		{"all", lua.LString("one\ntwo\n")},
		{"ts", lua.LNumber(0)},
		{"id", lua.LString(ctx.Buffer().ID().String())},
	}
	for _, tt := range tests {
		if got := e.GetGlobal(tt.name); got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}

	if err := e.Run(ctx, `sel.line(3)`); err == nil {
		t.Error("expected out of range error")
	}
}

func TestRegistersAPI(t *testing.T) {
	e := newTestEngine(t)
	ctx := newTestContext("ab\n", e)

	err := e.Run(ctx, `
sel.set_register("a", {"x", "y"})
second = sel.register("a")[2]
ncommands = #sel.commands()
`)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := ctx.Registers().Get('a'); !slices.Equal(got, []string{"x", "y"}) {
		t.Errorf("expected [x y], got %v", got)
	}
	if v := e.GetGlobal("second"); v != lua.LString("y") {
		t.Errorf("expected y, got %v", v)
	}
	if v := e.GetGlobal("ncommands"); v != lua.LNumber(len(editor.Names())) {
		t.Errorf("expected %d commands, got %v", len(editor.Names()), v)
	}
}

func TestJumpAPI(t *testing.T) {
	e := newTestEngine(t)
	ctx := newTestContext("one\ntwo\n", e)

	err := e.Run(ctx, `
sel.select({{anchor = {line = 2, col = 1}, cursor = {line = 2, col = 3}}})
local id = sel.save_jump()
sel.select({{anchor = {line = 1, col = 1}}})
sel.restore_jump(id)
ok = pcall(sel.restore_jump, "not-an-id")
`)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := ctx.Selections().Main()
	if got.Anchor != (buffer.Coord{Line: 1}) || got.Cursor != (buffer.Coord{Line: 1, Column: 2}) {
		t.Errorf("expected the saved selection, got %v", got)
	}
	if v := e.GetGlobal("ok"); v != lua.LFalse {
		t.Errorf("expected invalid id to fail, got %v", v)
	}
}

func TestSandbox(t *testing.T) {
	e := newTestEngine(t)
	ctx := newTestContext("ab\n", e)

	tests := []string{
		`dofile("/etc/passwd")`,
		`loadstring("return 1")()`,
		`os.exit(1)`,
		`io.write("x")`,
	}
	for _, src := range tests {
		if err := e.Run(ctx, src); err == nil {
			t.Errorf("expected %q to fail", src)
		}
	}

	if err := e.Run(ctx, `print("hello", 1)`); err != nil {
		t.Errorf("expected print to work, got %v", err)
	}
}

func TestReplayMacro(t *testing.T) {
	e := newTestEngine(t)
	ctx := newTestContext("z\n", e)
	ctx.Registers().Set('q', []string{`sel.exec("edit.insert", "ab")`})

	if err := ctx.Run(editor.ActionReplayMacro, editor.Params{Register: 'q', Count: 2}); err != nil {
		t.Fatalf("replay: %v", err)
	}
	if got := ctx.Buffer().Text(); got != "ababz\n" {
		t.Errorf("expected %q, got %q", "ababz\n", got)
	}
	if ctx.Buffer().HistorySize() != 1 {
		t.Errorf("expected one undo frame, got %d", ctx.Buffer().HistorySize())
	}
}

func TestRecursiveMacroFromScript(t *testing.T) {
	e := newTestEngine(t)
	ctx := newTestContext("z\n", e)
	ctx.Registers().Set('q', []string{`sel.exec("edit.insert", "a"); sel.exec("macro.replay", {register = "q"})`})

	err := ctx.Run(editor.ActionReplayMacro, editor.Params{Register: 'q'})
	if !errors.Is(err, editor.ErrRecursiveMacro) {
		t.Errorf("expected ErrRecursiveMacro, got %v", err)
	}
	if got := ctx.Buffer().Text(); got != "z\n" {
		t.Errorf("expected rollback to %q, got %q", "z\n", got)
	}
}

func TestTimeout(t *testing.T) {
	e := newTestEngine(t, WithTimeout(50*time.Millisecond))
	ctx := newTestContext("ab\n", e)

	err := e.Run(ctx, `while true do end`)
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("expected ErrTimeout, got %v", err)
	}
}

func TestRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "upper.lua")
	src := `
sel.exec("selection.all")
sel.exec("edit.upperCase")
`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	e := newTestEngine(t)
	ctx := newTestContext("abc\ndef\n", e)
	if err := e.RunFile(ctx, path); err != nil {
		t.Fatalf("RunFile: %v", err)
	}
	if got := ctx.Buffer().Text(); got != "ABC\nDEF\n" {
		t.Errorf("expected %q, got %q", "ABC\nDEF\n", got)
	}

	err := e.RunFile(ctx, filepath.Join(t.TempDir(), "missing.lua"))
	var serr *Error
	if !errors.As(err, &serr) {
		t.Errorf("expected *Error, got %v", err)
	}
}

func TestClosedEngine(t *testing.T) {
	e := NewEngine()
	ctx := newTestContext("ab\n", e)
	if err := e.Close(); err != nil {
		t.Fatal(err)
	}
	if err := e.Run(ctx, `x = 1`); !errors.Is(err, ErrEngineClosed) {
		t.Errorf("expected ErrEngineClosed, got %v", err)
	}
}

func TestCompleteAPI(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		mode   string
		prefix string
		want   []string
	}{
		{"prefix", "foobar foobaz\nfo\n", `"prefix"`, "fo", []string{"foobar", "foobaz"}},
		{"default", "foobar foobaz\nfo\n", "", "fo", []string{"foobar", "foobaz"}},
		{"subsequence", "foobar fbr\nfb\n", `"subsequence"`, "fb", []string{"fbr", "foobar"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t)
			ctx := newTestContext(tt.text, e)

			err := e.Run(ctx, `
sel.select({{anchor = {line = 2, col = 3}}})
local c = sel.complete(`+tt.mode+`)
prefix = c.prefix
begin_col = c.begin.col
candidates = c.candidates
`)
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if v := e.GetGlobal("prefix"); v != lua.LString(tt.prefix) {
				t.Errorf("expected prefix %q, got %v", tt.prefix, v)
			}
			if v := e.GetGlobal("begin_col"); v != lua.LNumber(1) {
				t.Errorf("expected begin column 1, got %v", v)
			}
			tbl, ok := e.GetGlobal("candidates").(*lua.LTable)
			if !ok {
				t.Fatalf("expected a table, got %v", e.GetGlobal("candidates"))
			}
			var got []string
			for i := 1; i <= tbl.Len(); i++ {
				got = append(got, lua.LVAsString(tbl.RawGetInt(i)))
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}

	e := newTestEngine(t)
	ctx := newTestContext("ab\n", e)
	if err := e.Run(ctx, `sel.complete("fuzzy")`); err == nil {
		t.Error("expected an unknown mode error")
	}
}

func TestViolationEscapesLua(t *testing.T) {
	if !invariant.Enabled {
		t.Skip("assertions disabled")
	}
	e := newTestEngine(t)
	ctx := newTestContext("ab\n", e)
	e.L.SetGlobal("violate", e.L.NewFunction(func(*lua.LState) int {
		_ = e.guard(func() error {
			invariant.Check(false, "broken %s", "state")
			return nil
		})
		return 0
	}))

	defer func() {
		r := recover()
		if _, ok := r.(invariant.Violation); !ok {
			t.Errorf("expected invariant.Violation panic, got %v", r)
		}
		if e.violation != nil {
			t.Error("expected recorded violation to be cleared")
		}
	}()
	_ = e.Run(ctx, `pcall(violate)`)
	t.Error("expected Run to panic")
}
