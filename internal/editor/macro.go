package editor

import (
	"fmt"
	"unicode"

	"go.uber.org/zap"
)

// ReplayMacro runs the macro held in register p.Register p.Count times as
// a single undo frame. Macro names are case insensitive letters; a macro
// replaying itself, directly or not, is refused.
func ReplayMacro(ctx *Context, p Params) error {
	name := unicode.ToLower(p.Register)
	if name < 'a' || name > 'z' {
		return fmt.Errorf("%w: %q", ErrInvalidMacroName, p.Register)
	}
	if ctx.running[name] {
		return ErrRecursiveMacro
	}

	values := ctx.regs.Get(name)
	if len(values) == 0 {
		return nil
	}
	if ctx.macros == nil {
		return ErrNoMacroRunner
	}

	ctx.running[name] = true
	defer delete(ctx.running, name)

	tx := ctx.buf.BeginTransaction()
	defer tx.End()
	for range p.repeat() {
		if err := ctx.macros.RunMacro(ctx, values[0]); err != nil {
			tx.Rollback()
			return err
		}
	}
	ctx.logger.Debug("macro replayed",
		zap.String("register", string(name)),
		zap.Int("count", p.repeat()))
	return nil
}
