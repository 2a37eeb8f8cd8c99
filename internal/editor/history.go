package editor

import (
	"slices"

	"go.uber.org/zap"

	"github.com/dshills/selcore/internal/engine/buffer"
	"github.com/dshills/selcore/internal/engine/selection"
)

// Undo reverts the last undo frame and selects the regions it modified.
// When the frame only removed text, the selections are remapped instead,
// which puts back the ones the reverted insertion had moved.
func Undo(ctx *Context, _ Params) error {
	return revertHistory(ctx, ctx.buf.Undo, ErrNothingToUndo)
}

// Redo reapplies the last undone frame and selects the regions it
// modified, with the same fallback as Undo.
func Redo(ctx *Context, _ Params) error {
	return revertHistory(ctx, ctx.buf.Redo, ErrNothingToRedo)
}

func revertHistory(ctx *Context, step func() bool, nothing error) error {
	buf := ctx.buf
	ts := buf.Timestamp()
	if !step() {
		return nothing
	}

	ranges := slices.DeleteFunc(buf.ModifiedRanges(ts), buffer.Range.IsEmpty)
	if len(ranges) > 0 {
		if err := ctx.SetSelections(rangesToSelections(buf, ranges)); err != nil {
			return err
		}
	}
	ctx.Selections().AvoidEOL()
	ctx.logger.Debug("history moved",
		zap.Stringer("buffer", buf.ID()),
		zap.Int("cursor", buf.HistoryCursor()),
		zap.Int("frames", buf.HistorySize()))
	return nil
}

// rangesToSelections selects each non-empty modified range.
func rangesToSelections(buf *buffer.Buffer, ranges []buffer.Range) []selection.Selection {
	sels := make([]selection.Selection, len(ranges))
	for i, r := range ranges {
		sels[i] = selection.New(buf.Clamp(r.Begin), buf.Clamp(buf.CharPrev(r.End)))
	}
	return sels
}

// SaveSelections records the current selections in the jump list.
func SaveSelections(ctx *Context, _ Params) error {
	id := ctx.PushJump()
	ctx.logger.Debug("selections saved",
		zap.Stringer("jump", id),
		zap.Int("selections", ctx.sels.Len()))
	return nil
}

// JumpBackward restores the previous selections of the jump list.
func JumpBackward(ctx *Context, _ Params) error {
	j, err := ctx.jumps.Backward(ctx.Selections())
	if err != nil {
		return err
	}
	ctx.logger.Debug("jump", zap.Stringer("jump", j.ID), zap.Int("timestamp", j.Timestamp()))
	return ctx.sels.Set(j.Selections(), j.MainIndex())
}

// JumpForward restores the next selections of the jump list.
func JumpForward(ctx *Context, _ Params) error {
	j, err := ctx.jumps.Forward()
	if err != nil {
		return err
	}
	ctx.logger.Debug("jump", zap.Stringer("jump", j.ID), zap.Int("timestamp", j.Timestamp()))
	return ctx.sels.Set(j.Selections(), j.MainIndex())
}
