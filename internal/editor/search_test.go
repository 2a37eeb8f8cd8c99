package editor

import (
	"errors"
	"slices"
	"testing"

	"github.com/dshills/selcore/internal/engine/buffer"
	"github.com/dshills/selcore/internal/engine/selection"
	"github.com/dshills/selcore/internal/regex"
)

func TestSelectRegex(t *testing.T) {
	ctx := newTestContext(t, "foo bar foo\n")
	run(t, ctx, ActionSelectAll, Params{})
	run(t, ctx, ActionSelectRegex, Params{Arg: "foo"})
	assertSelections(t, ctx, sel(0, 0, 0, 2), sel(0, 8, 0, 10))
	if got := ctx.Registers().Get(RegisterSearch); !slices.Equal(got, []string{"foo"}) {
		t.Errorf("expected search register [foo], got %v", got)
	}
}

func TestSelectRegexErrors(t *testing.T) {
	ctx := newTestContext(t, "foo bar foo\n")
	run(t, ctx, ActionSelectAll, Params{})

	err := ctx.Run(ActionSelectRegex, Params{Arg: "zzz"})
	if !errors.Is(err, ErrNothingSelected) {
		t.Errorf("expected ErrNothingSelected, got %v", err)
	}
	assertSelections(t, ctx, sel(0, 0, 0, 11))

	err = ctx.Run(ActionSelectRegex, Params{Arg: "a("})
	if !errors.Is(err, ErrRegex) {
		t.Errorf("expected ErrRegex, got %v", err)
	}
	var perr *regex.PatternError
	if !errors.As(err, &perr) {
		t.Fatalf("expected a PatternError, got %T", err)
	}
	if perr.Pattern != "a(" {
		t.Errorf("expected pattern a(, got %q", perr.Pattern)
	}
}

func TestSelectRegexCaptures(t *testing.T) {
	ctx := newTestContext(t, "k=v\n")
	run(t, ctx, ActionSelectAll, Params{})
	run(t, ctx, ActionSelectRegex, Params{Arg: `(\w)=(\w)`})
	got := ctx.Selections().Main().Captures
	if !slices.Equal(got, []string{"k=v", "k", "v"}) {
		t.Errorf("expected captures [k=v k v], got %v", got)
	}
}

func TestSplitRegex(t *testing.T) {
	ctx := newTestContext(t, "a,b,,c\n", sel(0, 0, 0, 5))
	run(t, ctx, ActionSplitRegex, Params{Arg: ","})
	assertSelections(t, ctx, at(0, 0), at(0, 2), at(0, 5))
}

func TestKeepMatching(t *testing.T) {
	lines := []selection.Selection{sel(0, 0, 0, 2), sel(1, 0, 1, 2), sel(2, 0, 2, 2)}
	tests := []struct {
		name   string
		action string
		arg    string
		want   []selection.Selection
	}{
		{"matching", ActionKeepMatching, "ba", lines[1:]},
		{"not matching", ActionKeepNotMatch, "ba", lines[:1]},
		{"single", ActionKeepMatching, "z", lines[2:]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newTestContext(t, "foo\nbar\nbaz\n", lines...)
			run(t, ctx, tt.action, Params{Arg: tt.arg})
			assertSelections(t, ctx, tt.want...)
		})
	}

	ctx := newTestContext(t, "foo\nbar\nbaz\n", lines...)
	err := ctx.Run(ActionKeepMatching, Params{Arg: "q"})
	if !errors.Is(err, ErrNoSelectionsRemain) {
		t.Errorf("expected ErrNoSelectionsRemain, got %v", err)
	}
	assertSelections(t, ctx, lines...)
}

func TestSearch(t *testing.T) {
	ctx := newTestContext(t, "foo bar foo bar\n")

	run(t, ctx, ActionSearch, Params{Arg: "bar"})
	assertSelections(t, ctx, sel(0, 4, 0, 6))
	if ctx.Jumps().Len() != 1 {
		t.Errorf("expected a saved jump, got %d", ctx.Jumps().Len())
	}

	run(t, ctx, ActionSearchNext, Params{})
	assertSelections(t, ctx, sel(0, 12, 0, 14))

	run(t, ctx, ActionSearchNext, Params{})
	assertSelections(t, ctx, sel(0, 4, 0, 6))

	run(t, ctx, ActionSearchPrevious, Params{})
	assertSelections(t, ctx, sel(0, 12, 0, 14))

	run(t, ctx, ActionSearchNext, Params{Count: 2})
	assertSelections(t, ctx, sel(0, 12, 0, 14))
}

func TestSearchAppend(t *testing.T) {
	ctx := newTestContext(t, "foo bar foo bar\n")
	run(t, ctx, ActionSearch, Params{Arg: "bar"})
	run(t, ctx, ActionSearchAppend, Params{})
	assertSelections(t, ctx, sel(0, 4, 0, 6), sel(0, 12, 0, 14))
	if got := ctx.Selections().MainIndex(); got != 1 {
		t.Errorf("expected main 1, got %d", got)
	}
}

func TestSearchExtend(t *testing.T) {
	ctx := newTestContext(t, "foo bar foo bar\n")
	run(t, ctx, ActionSearchExtend, Params{Arg: "foo"})
	assertSelections(t, ctx, sel(0, 0, 0, 10))
}

func TestSearchErrors(t *testing.T) {
	ctx := newTestContext(t, "foo\n")
	err := ctx.Run(ActionSearchNext, Params{})
	if !errors.Is(err, ErrNoSearchPattern) {
		t.Errorf("expected ErrNoSearchPattern, got %v", err)
	}

	err = ctx.Run(ActionSearch, Params{Arg: "zzz"})
	if !errors.Is(err, ErrNoMatch) {
		t.Errorf("expected ErrNoMatch, got %v", err)
	}
	if !IsUserError(err) {
		t.Error("expected a user error")
	}
	assertSelections(t, ctx, at(0, 0))
}

func TestUseSelectionAsSearch(t *testing.T) {
	ctx := newTestContext(t, "foo.bar foo\n", sel(0, 0, 0, 2), at(0, 3))
	run(t, ctx, ActionSearchSelected, Params{})
	want := []string{`\bfoo\b`, `\.`}
	if got := ctx.Registers().Get(RegisterSearch); !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	ctx = newTestContext(t, "foo.bar foo\n", sel(0, 0, 0, 2))
	run(t, ctx, ActionSearchSelected, Params{})
	run(t, ctx, ActionSearchNext, Params{})
	assertSelections(t, ctx, sel(0, 8, 0, 10))
}

func TestRegexPrompt(t *testing.T) {
	ctx := newTestContext(t, "foo bar baz\n")
	prompt := ctx.NewSearchPrompt(selection.SelectReplace, Forward)

	steps := []struct {
		text  string
		event PromptEvent
		state PromptState
		want  selection.Selection
	}{
		{"ba", PromptChange, PromptNormal, sel(0, 4, 0, 5)},
		{"baz", PromptChange, PromptNormal, sel(0, 8, 0, 10)},
		{"(", PromptChange, PromptError, at(0, 0)},
		{"", PromptChange, PromptNormal, at(0, 0)},
		{"bar", PromptAbort, PromptNormal, at(0, 0)},
	}
	for _, step := range steps {
		if err := prompt.Handle(step.text, step.event); err != nil {
			t.Fatalf("%s %q: unexpected error: %v", step.event, step.text, err)
		}
		if prompt.State() != step.state {
			t.Errorf("%s %q: expected state %d, got %d", step.event, step.text, step.state, prompt.State())
		}
		assertSelections(t, ctx, step.want)
	}
	if ctx.Buffer().Timestamp() != 0 {
		t.Errorf("expected no edits, got timestamp %d", ctx.Buffer().Timestamp())
	}

	if err := prompt.Handle("bar", PromptValidate); err != nil {
		t.Fatalf("validate: unexpected error: %v", err)
	}
	assertSelections(t, ctx, sel(0, 4, 0, 6))
	if got := ctx.Registers().Get(RegisterSearch); !slices.Equal(got, []string{"bar"}) {
		t.Errorf("expected search register [bar], got %v", got)
	}
	if ctx.Jumps().Len() != 1 {
		t.Errorf("expected a saved jump, got %d", ctx.Jumps().Len())
	}
}

func TestRegexPromptValidateError(t *testing.T) {
	ctx := newTestContext(t, "foo\n")
	prompt := ctx.NewSelectPrompt()
	err := prompt.Handle("(", PromptValidate)
	if !errors.Is(err, ErrRegex) {
		t.Errorf("expected ErrRegex, got %v", err)
	}
	assertSelections(t, ctx, at(0, 0))
}

func TestRegexPromptWithoutIncSearch(t *testing.T) {
	ctx := newTestContext(t, "foo bar\n")
	opts := DefaultOptions()
	opts.IncSearch = false
	ctx.SetOptions(opts)

	prompt := ctx.NewSearchPrompt(selection.SelectReplace, Forward)
	if err := prompt.Handle("bar", PromptChange); err != nil {
		t.Fatal(err)
	}
	assertSelections(t, ctx, at(0, 0))
}

func TestTextIndexRoundTrip(t *testing.T) {
	buf := buffer.New("héllo\n\nwörld\n")
	idx := newTextIndex(buf)

	for off := len(idx.text); off >= 0; off-- {
		pos := idx.coordAt(off)
		if got := idx.offset(pos); got != off {
			t.Errorf("offset %d: round trip through %s gave %d", off, pos, got)
		}
		if got := buf.Offset(pos); got != off {
			t.Errorf("offset %d: expected buffer offset to agree, got %d", off, got)
		}
	}
	if got := idx.coordAt(len(idx.text)); got != buf.EndCoord() {
		t.Errorf("expected %s, got %s", buf.EndCoord(), got)
	}
	if got := idx.coordAt(7); got != c(1, 0) {
		t.Errorf("expected %s, got %s", c(1, 0), got)
	}
}
