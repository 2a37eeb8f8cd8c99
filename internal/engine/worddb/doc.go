// Package worddb maintains an incremental index of the words of a buffer
// for completion.
//
// The index is refreshed lazily: every query compares the buffer timestamp
// with the one the index was built at and, when they differ, rescans only
// the lines whose identity changed. Each word carries a reference count
// (number of occurrences across the buffer) and a UsedLetters signature used
// to reject impossible candidates before the match function runs.
package worddb
