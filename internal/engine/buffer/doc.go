// Package buffer provides the text store of the editing engine: an ordered
// sequence of immutable newline-terminated lines together with an edit
// history, an append-only change log and a monotonically increasing
// timestamp.
//
// The buffer package provides:
//
//   - Line/column byte addressing (Coord) with codepoint aware motions
//   - A single mutation primitive, ApplyEdit, returning the Change it made
//   - The canonical coordinate remap rule (Change.Remap)
//   - Undo groups, undo/redo and modified range computation
//   - Nestable transactions grouping a command's edits into one undo frame
//
// Basic usage:
//
//	buf := buffer.New("hello world\nfoo bar\n")
//
//	tx := buf.BeginTransaction()
//	buf.ApplyEdit(buffer.Coord{Line: 0, Column: 0}, buffer.Coord{Line: 0, Column: 5}, "HELLO")
//	tx.End()
//
//	buf.Undo() // "hello world\nfoo bar\n"
//
// Line Identity:
//
// Lines are never mutated in place. An edit replaces only the lines it
// touches, so every other *Line keeps its pointer identity across edits,
// undo and redo. Dependents use that identity to find unchanged lines
// without comparing content.
//
// Staleness:
//
// Timestamp increases by one for every recorded change, including the
// changes undo and redo apply. A dependent holding coordinates remembers
// the timestamp they were valid at and replays ChangesSince(ts) through
// Change.Remap before trusting them again.
//
// Buffers are not safe for concurrent use.
package buffer
