package script

import (
	"context"
	"fmt"
	"time"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/dshills/selcore/internal/editor"
	"github.com/dshills/selcore/internal/engine/invariant"
)

// DefaultTimeout bounds the run time of one script.
const DefaultTimeout = 5 * time.Second

// Engine holds a Lua state bound to the editor. It is not goroutine-safe:
// gopher-lua states must be used from one goroutine at a time.
type Engine struct {
	L       *lua.LState
	timeout time.Duration

	// ctx is the context of the innermost running script.
	ctx   *editor.Context
	cause error
	depth int

	// violation is an invariant failure raised under Lua. Lua error
	// handling must not absorb it, so do panics with it again.
	violation *invariant.Violation

	closed bool
}

var _ editor.MacroRunner = (*Engine)(nil)

// Option configures an Engine.
type Option func(*Engine)

// WithTimeout sets the time limit of a script run; 0 disables it.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d >= 0 {
			e.timeout = d
		}
	}
}

// NewEngine creates an engine with a fresh sandboxed state.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(e)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}
	L.SetGlobal("print", L.NewFunction(e.print))
	e.L = L

	e.register()
	return e
}

// Run executes source against ctx as one command named "script".
func (e *Engine) Run(ctx *editor.Context, source string) error {
	return ctx.Execute("script", func(ctx *editor.Context) error {
		return e.do(ctx, "script", func() error {
			return e.L.DoString(source)
		})
	})
}

// RunFile executes the script at path against ctx as one command.
func (e *Engine) RunFile(ctx *editor.Context, path string) error {
	return ctx.Execute("script", func(ctx *editor.Context) error {
		return e.do(ctx, path, func() error {
			return e.L.DoFile(path)
		})
	})
}

// RunMacro executes the macro source against ctx. The editor calls it
// inside the macro's own transaction.
func (e *Engine) RunMacro(ctx *editor.Context, source string) error {
	return e.do(ctx, "macro", func() error {
		return e.L.DoString(source)
	})
}

// GetGlobal returns a global variable value.
func (e *Engine) GetGlobal(name string) lua.LValue {
	if e.closed {
		return lua.LNil
	}
	return e.L.GetGlobal(name)
}

// Close releases the Lua state.
func (e *Engine) Close() error {
	if e.closed {
		return nil
	}
	e.L.Close()
	e.closed = true
	return nil
}

// do runs fn with ctx as the current context. Only the outermost run is
// bounded by the timeout; scripts started from a script share its budget.
func (e *Engine) do(ctx *editor.Context, chunk string, fn func() error) error {
	if e.closed {
		return ErrEngineClosed
	}

	prev := e.ctx
	e.ctx, e.cause = ctx, nil
	e.depth++
	defer func() {
		if e.depth == 1 {
			e.violation = nil
		}
		e.ctx = prev
		e.depth--
	}()

	var deadline context.Context
	if e.depth == 1 && e.timeout > 0 {
		var cancel context.CancelFunc
		deadline, cancel = context.WithTimeout(ctx.GoContext(), e.timeout)
		e.L.SetContext(deadline)
		defer func() {
			e.L.RemoveContext()
			cancel()
		}()
	}

	err := e.doWithRecovery(fn)
	if v := e.violation; v != nil {
		panic(*v)
	}
	if err == nil {
		return nil
	}
	serr := &Error{Chunk: chunk, Err: err, Cause: e.cause}
	if deadline != nil && deadline.Err() == context.DeadlineExceeded {
		serr.Cause = ErrTimeout
	}
	ctx.Logger().Debug("script failed", zap.String("chunk", chunk), zap.Error(err))
	return serr
}

func (e *Engine) doWithRecovery(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if v, ok := r.(invariant.Violation); ok {
				panic(v)
			}
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// guard runs fn from a Go function called by Lua, recording an invariant
// violation before gopher-lua turns the panic into a Lua error.
func (e *Engine) guard(fn func() error) error {
	defer func() {
		if r := recover(); r != nil {
			if v, ok := r.(invariant.Violation); ok && e.violation == nil {
				e.violation = &v
			}
			panic(r)
		}
	}()
	return fn()
}
