package script

import (
	"errors"
	"fmt"
)

// Errors returned by the engine.
var (
	// ErrEngineClosed is returned when running a script on a closed engine.
	ErrEngineClosed = errors.New("script engine is closed")

	// ErrTimeout is returned when a script runs past its time limit.
	ErrTimeout = errors.New("script execution timeout")
)

// Error is a failed script run.
type Error struct {
	// Chunk names the script: a file path or "script".
	Chunk string
	// Err is the Lua error.
	Err error
	// Cause is the editor error the script failed on, if any.
	Cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Chunk, e.Err)
}

// Unwrap returns the Lua error and the editor cause.
func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Cause, e.Err}
}
