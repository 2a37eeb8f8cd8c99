package selection

import "errors"

// Errors returned by list operations. They are user errors: the list is
// left unchanged when one is returned.
var (
	// ErrNoSelectionsRemain indicates an operation would empty the list.
	ErrNoSelectionsRemain = errors.New("no selections remaining")

	// ErrInvalidIndex indicates a selection index outside the list.
	ErrInvalidIndex = errors.New("invalid selection index")
)
