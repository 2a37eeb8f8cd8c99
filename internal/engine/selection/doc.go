// Package selection provides the ordered multi-selection list of the
// editing engine and the batched edit protocol applying one logical edit at
// every selection.
//
// Selection Model:
//
// A Selection has an anchor and a cursor and is inclusive at both ends:
// the codepoint under the cursor is part of it. Min and Max return the
// ordered endpoints regardless of direction. A selection whose anchor equals
// its cursor still covers one codepoint.
//
// List Invariants:
//
// After every public List operation the list is non-empty, sorted by Min,
// free of selections sharing a codepoint (those are merged), and its main
// index is in range. Violations are caller bugs and fail loudly.
//
// Staleness:
//
// A List remembers the buffer timestamp its coordinates are valid at.
// Update replays the buffer changes made since through buffer.Change.Remap;
// every edit operation starts by calling it.
//
// Basic usage:
//
//	buf := buffer.New("hello world\n")
//	list := selection.NewList(buf, selection.New(buffer.Coord{}, buffer.Coord{Column: 4}))
//	list.Insert([]string{"HELLO"}, selection.ReplaceRange)
package selection
