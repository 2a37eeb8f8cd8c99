package codepoint

import "errors"

// Errors returned by codepoint decoding.
var (
	// ErrInvalid indicates a malformed UTF-8 sequence under the Strict policy.
	ErrInvalid = errors.New("invalid utf-8 sequence")

	// ErrAtEnd indicates a decode was attempted at the end of the source.
	ErrAtEnd = errors.New("no codepoint at end of text")
)
