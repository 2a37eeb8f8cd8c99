package editor

import (
	"errors"

	"github.com/dshills/selcore/internal/engine/selection"
)

// User errors. These report that a command could not apply to the current
// state; they are shown to the user rather than logged as failures.
var (
	// ErrNoSelectionsRemain indicates a filter would drop every selection.
	ErrNoSelectionsRemain = selection.ErrNoSelectionsRemain

	// ErrInvalidSelectionIndex indicates a count addressing no selection.
	ErrInvalidSelectionIndex = selection.ErrInvalidIndex

	// ErrMultiLineAlign indicates align was given a multi-line selection.
	ErrMultiLineAlign = errors.New("align cannot work with multi line selections")

	// ErrNoSearchPattern indicates the search register is empty.
	ErrNoSearchPattern = errors.New("no search pattern")

	// ErrNoMatch indicates a search found no match anywhere in the buffer.
	ErrNoMatch = errors.New("no matches found")

	// ErrNothingSelected indicates a regex selection produced no selection.
	ErrNothingSelected = errors.New("nothing selected")

	// ErrNothingToUndo indicates the history has no frame to undo.
	ErrNothingToUndo = errors.New("nothing left to undo")

	// ErrNothingToRedo indicates the history has no frame to redo.
	ErrNothingToRedo = errors.New("nothing left to redo")

	// ErrRecursiveMacro indicates a macro replaying itself.
	ErrRecursiveMacro = errors.New("recursive macros call detected")

	// ErrInvalidMacroName indicates a macro register outside a-z.
	ErrInvalidMacroName = errors.New("invalid macro name")

	// ErrNoPreviousJump indicates the jump list has no earlier entry.
	ErrNoPreviousJump = errors.New("no previous jump")

	// ErrNoNextJump indicates the jump list has no later entry.
	ErrNoNextJump = errors.New("no next jump")

	// ErrUnknownJump indicates no saved jump has the requested id.
	ErrUnknownJump = errors.New("unknown jump")

	// ErrRegex wraps a pattern that failed to compile at validation.
	ErrRegex = errors.New("regex error")
)

// Internal errors.
var (
	// ErrUnknownCommand indicates Run was given an unregistered name.
	ErrUnknownCommand = errors.New("editor: unknown command")

	// ErrNoShell indicates a shell command without a Shell configured.
	ErrNoShell = errors.New("editor: no shell configured")

	// ErrNoMacroRunner indicates a macro replay without a MacroRunner.
	ErrNoMacroRunner = errors.New("editor: no macro runner configured")
)

var userErrors = []error{
	ErrNoSelectionsRemain,
	ErrInvalidSelectionIndex,
	ErrMultiLineAlign,
	ErrNoSearchPattern,
	ErrNoMatch,
	ErrNothingSelected,
	ErrNothingToUndo,
	ErrNothingToRedo,
	ErrRecursiveMacro,
	ErrInvalidMacroName,
	ErrNoPreviousJump,
	ErrNoNextJump,
	ErrUnknownJump,
	ErrRegex,
}

// IsUserError reports whether err is caused by the state the command ran
// on rather than by a fault.
func IsUserError(err error) bool {
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
