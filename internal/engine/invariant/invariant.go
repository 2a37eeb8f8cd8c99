// Package invariant provides internal consistency assertions for the
// editing engine.
//
// Assertions are active in normal builds and panic with the formatted
// message when violated. Building with the "release" tag compiles them
// down to no-ops.
package invariant

import "fmt"

// Violation is the panic value raised by a failed assertion.
type Violation struct {
	Message string
}

func (v Violation) Error() string {
	return "invariant violated: " + v.Message
}

// Check panics with a Violation when cond is false and assertions are enabled.
func Check(cond bool, format string, args ...any) {
	if !Enabled || cond {
		return
	}
	panic(Violation{Message: fmt.Sprintf(format, args...)})
}
