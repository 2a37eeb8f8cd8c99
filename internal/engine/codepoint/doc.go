// Package codepoint adapts byte-addressed text to codepoint granularity.
//
// An Iterator walks any Source of bytes one UTF-8 encoded codepoint at a
// time, in either direction. Positions are opaque to the iterator: a plain
// string is addressed by byte index (see String), while the editing buffer
// addresses bytes by line and column. Both satisfy Source.
//
// Decoding is lazy. The codepoint under the iterator is decoded on first
// access and cached in the iterator until the next motion.
//
// Motion follows continuation-byte rules only, so malformed input never
// stops iteration. Under the default Pass policy a malformed sequence
// decodes as utf8.RuneError; the Strict policy reports ErrInvalid from
// Codepoint instead.
//
// Basic usage:
//
//	it := codepoint.New[int](codepoint.String("héllo"), 0)
//	it.Advance(2, len("héllo"))
//	r, _ := it.Codepoint() // 'l'
package codepoint
