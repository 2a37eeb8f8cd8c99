package editor

import (
	"errors"

	"go.uber.org/zap"

	"github.com/dshills/selcore/internal/engine/selection"
	"github.com/dshills/selcore/internal/regex"
)

// PromptEvent is an event delivered to a prompt by its owner.
type PromptEvent int

const (
	// PromptChange reports that the prompt text was edited.
	PromptChange PromptEvent = iota
	// PromptValidate reports that the user accepted the prompt text.
	PromptValidate
	// PromptAbort reports that the user dismissed the prompt.
	PromptAbort
)

// String returns the event name.
func (e PromptEvent) String() string {
	switch e {
	case PromptChange:
		return "change"
	case PromptValidate:
		return "validate"
	case PromptAbort:
		return "abort"
	default:
		return "unknown"
	}
}

// PromptState is the state a prompt should be rendered in.
type PromptState int

const (
	// PromptNormal renders the prompt normally.
	PromptNormal PromptState = iota
	// PromptError marks the prompt text as erroneous.
	PromptError
)

// RegexPrompt drives a regex-taking command from prompt events. The
// selections present when the prompt opened are restored before every
// event, so incremental previews never accumulate and an abort leaves the
// selections untouched.
type RegexPrompt struct {
	ctx   *Context
	name  string
	saved selection.Snapshot
	apply RegexFunc
	state PromptState
	err   error
}

// NewRegexPrompt opens a prompt applying fn to the context.
func (c *Context) NewRegexPrompt(name string, fn RegexFunc) *RegexPrompt {
	return &RegexPrompt{
		ctx:   c,
		name:  name,
		saved: c.Selections().Snapshot(),
		apply: fn,
	}
}

// NewSearchPrompt opens a prompt searching for the next match.
func (c *Context) NewSearchPrompt(mode selection.SelectMode, dir Direction) *RegexPrompt {
	name := ActionSearch
	switch {
	case dir == Backward:
		name = ActionSearchBackward
	case mode == selection.SelectExtend:
		name = ActionSearchExtend
	}
	return c.NewRegexPrompt(name, searchFunc(mode, dir))
}

// NewSelectPrompt opens a prompt selecting regex matches in the selections.
func (c *Context) NewSelectPrompt() *RegexPrompt {
	return c.NewRegexPrompt(ActionSelectRegex, selectMatchesFunc())
}

// NewSplitPrompt opens a prompt splitting the selections on regex matches.
func (c *Context) NewSplitPrompt() *RegexPrompt {
	return c.NewRegexPrompt(ActionSplitRegex, splitMatchesFunc())
}

// NewKeepPrompt opens a prompt keeping the selections that match, or those
// that do not when matching is false.
func (c *Context) NewKeepPrompt(matching bool) *RegexPrompt {
	name := ActionKeepMatching
	if !matching {
		name = ActionKeepNotMatch
	}
	return c.NewRegexPrompt(name, keepFunc(matching))
}

// State returns the state the prompt should be rendered in.
func (p *RegexPrompt) State() PromptState {
	return p.state
}

// Err returns the error that put the prompt in the error state.
func (p *RegexPrompt) Err() error {
	return p.err
}

// Handle processes one prompt event for text. Only validation reports
// errors; during incremental changes a failure marks the prompt as
// erroneous and restores the selections.
func (p *RegexPrompt) Handle(text string, event PromptEvent) error {
	ctx := p.ctx
	ctx.sels.Restore(p.saved)
	p.state, p.err = PromptNormal, nil

	if event == PromptAbort {
		return nil
	}
	if event == PromptChange && (text == "" || !ctx.opts.IncSearch) {
		return nil
	}
	if event == PromptValidate {
		ctx.PushJump()
	}

	err := p.run(text, event)
	if err == nil {
		return nil
	}
	ctx.sels.Restore(p.saved)
	if event == PromptValidate {
		return err
	}

	p.state, p.err = PromptError, err
	var perr *regex.PatternError
	if !errors.As(err, &perr) {
		ctx.logger.Debug("incremental prompt failed",
			zap.String("prompt", p.name),
			zap.Error(err))
	}
	return nil
}

func (p *RegexPrompt) run(text string, event PromptEvent) error {
	var re *regex.Regex
	if text != "" {
		var err error
		if re, err = compilePattern(text); err != nil {
			return err
		}
	}
	if event != PromptValidate {
		return p.apply(p.ctx, re, event)
	}
	return p.ctx.Execute(p.name, func(ctx *Context) error {
		return p.apply(ctx, re, event)
	})
}
