package editor

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dshills/selcore/internal/engine/buffer"
	"github.com/dshills/selcore/internal/engine/selection"
	"github.com/dshills/selcore/internal/engine/worddb"
)

// Shell runs external commands on behalf of the pipe commands.
type Shell interface {
	// Pipe runs command with input on its stdin and returns its stdout
	// and exit status.
	Pipe(ctx context.Context, input, command string) (string, int, error)
	// Eval runs command and returns its stdout.
	Eval(ctx context.Context, command string) (string, error)
}

// MacroRunner executes the content of a macro register against a context.
type MacroRunner interface {
	RunMacro(ctx *Context, source string) error
}

// Context is the state a command executes against. It is not safe for
// concurrent use.
type Context struct {
	buf     *buffer.Buffer
	sels    *selection.List
	regs    Registers
	opts    Options
	logger  *zap.Logger
	jumps   *JumpList
	words   *worddb.DB
	shell   Shell
	macros  MacroRunner
	running map[rune]bool
	goctx   context.Context
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithRegisters sets the register store.
func WithRegisters(r Registers) ContextOption {
	return func(c *Context) {
		c.regs = r
	}
}

// WithOptions sets the editing options.
func WithOptions(o Options) ContextOption {
	return func(c *Context) {
		c.opts = o
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) ContextOption {
	return func(c *Context) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithShell sets the shell used by the pipe commands.
func WithShell(s Shell) ContextOption {
	return func(c *Context) {
		c.shell = s
	}
}

// WithMacroRunner sets the runner used to replay macros.
func WithMacroRunner(m MacroRunner) ContextOption {
	return func(c *Context) {
		c.macros = m
	}
}

// WithGoContext sets the context.Context passed to the shell.
func WithGoContext(ctx context.Context) ContextOption {
	return func(c *Context) {
		c.goctx = ctx
	}
}

// NewContext creates a context over buf with a single selection at the
// buffer origin.
func NewContext(buf *buffer.Buffer, opts ...ContextOption) *Context {
	c := &Context{
		buf:     buf,
		sels:    selection.NewListAt(buf, buffer.Coord{}),
		regs:    NewRegisterMap(),
		opts:    DefaultOptions(),
		logger:  zap.NewNop(),
		jumps:   NewJumpList(),
		words:   worddb.New(buf),
		running: make(map[rune]bool),
		goctx:   context.Background(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Buffer returns the buffer being edited.
func (c *Context) Buffer() *buffer.Buffer {
	return c.buf
}

// Selections returns the selection list, brought up to date.
func (c *Context) Selections() *selection.List {
	c.sels.Update()
	return c.sels
}

// Registers returns the register store.
func (c *Context) Registers() Registers {
	return c.regs
}

// Options returns the editing options.
func (c *Context) Options() Options {
	return c.opts
}

// SetOptions replaces the editing options.
func (c *Context) SetOptions(o Options) {
	c.opts = o
}

// Logger returns the context logger.
func (c *Context) Logger() *zap.Logger {
	return c.logger
}

// Jumps returns the jump list.
func (c *Context) Jumps() *JumpList {
	return c.jumps
}

// Words returns the word index of the buffer.
func (c *Context) Words() *worddb.DB {
	return c.words
}

// GoContext returns the context.Context blocking collaborators run under.
func (c *Context) GoContext() context.Context {
	return c.goctx
}

// SetSelections replaces the selections; the last one becomes main.
func (c *Context) SetSelections(sels []selection.Selection) error {
	return c.sels.Set(sels, len(sels)-1)
}

// PushJump records the current selections in the jump list and returns
// the id they were saved under.
func (c *Context) PushJump() uuid.UUID {
	return c.jumps.Push(c.Selections())
}

// RestoreJump selects the selections saved under id, brought up to date
// with the buffer. The jump list position does not move.
func (c *Context) RestoreJump(id uuid.UUID) error {
	j, ok := c.jumps.Find(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownJump, id)
	}
	return c.sels.Set(j.Selections(), j.MainIndex())
}

// Execute runs fn as one command named name inside a buffer transaction.
// On error the command's edits, undo and redo included, are rolled back and
// the selections restored, so a failed command leaves no trace. Only the
// outermost Execute logs and wraps the error; a nested one returns it as is.
func (c *Context) Execute(name string, fn func(*Context) error) error {
	nested := c.buf.InTransaction()
	snap := c.Selections().Snapshot()
	tx := c.buf.BeginTransaction()

	err := fn(c)
	if err == nil {
		tx.End()
		c.sels.Update()
		c.logger.Debug("command executed",
			zap.String("command", name),
			zap.Stringer("buffer", c.buf.ID()),
			zap.Int("selections", c.sels.Len()),
			zap.Int("timestamp", c.buf.Timestamp()))
		return nil
	}

	tx.Rollback()
	c.sels.Restore(snap)
	if nested {
		return err
	}
	if IsUserError(err) {
		c.logger.Debug("command refused", zap.String("command", name), zap.Error(err))
	} else {
		c.logger.Warn("command failed", zap.String("command", name), zap.Error(err))
	}
	return fmt.Errorf("%s: %w", name, err)
}

// Run looks up the command registered as name and executes it.
func (c *Context) Run(name string, p Params) error {
	cmd, ok := Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	return c.Execute(name, func(c *Context) error {
		return cmd(c, p)
	})
}

// mainRegisterValue returns the value of register name for the main
// selection: the value at the main index, or the last one when there are
// fewer values than selections.
func (c *Context) mainRegisterValue(name rune) string {
	values := c.regs.Get(name)
	if len(values) == 0 {
		return ""
	}
	return values[min(c.sels.MainIndex(), len(values)-1)]
}
