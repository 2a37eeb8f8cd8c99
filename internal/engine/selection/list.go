package selection

import (
	"fmt"
	"slices"

	"github.com/dshills/selcore/internal/engine/buffer"
	"github.com/dshills/selcore/internal/engine/invariant"
)

// List is an ordered, non-overlapping set of selections over one buffer.
// It holds a non-owning reference to the buffer.
type List struct {
	buf       *buffer.Buffer
	sels      []Selection
	main      int
	timestamp int
}

// NewList creates a list over buf from sels. The last selection becomes
// the main one. At least one selection is required.
func NewList(buf *buffer.Buffer, sels ...Selection) *List {
	invariant.Check(len(sels) > 0, "selection list created empty")
	l := &List{
		buf:       buf,
		sels:      slices.Clone(sels),
		main:      len(sels) - 1,
		timestamp: buf.Timestamp(),
	}
	l.SortAndMergeOverlapping()
	return l
}

// NewListAt creates a list holding a single selection at c.
func NewListAt(buf *buffer.Buffer, c Coord) *List {
	return NewList(buf, At(c))
}

// Clone returns an independent copy of the list.
func (l *List) Clone() *List {
	c := *l
	c.sels = slices.Clone(l.sels)
	return &c
}

// Buffer returns the buffer the list selects in.
func (l *List) Buffer() *buffer.Buffer {
	return l.buf
}

// Timestamp returns the buffer timestamp the coordinates are valid at.
func (l *List) Timestamp() int {
	return l.timestamp
}

// Len returns the number of selections.
func (l *List) Len() int {
	return len(l.sels)
}

// At returns selection i.
func (l *List) At(i int) Selection {
	return l.sels[i]
}

// All returns a copy of the selections.
func (l *List) All() []Selection {
	return slices.Clone(l.sels)
}

// Main returns the main selection.
func (l *List) Main() Selection {
	return l.sels[l.main]
}

// MainIndex returns the index of the main selection.
func (l *List) MainIndex() int {
	return l.main
}

// SetMainIndex makes selection i the main one.
func (l *List) SetMainIndex(i int) error {
	if i < 0 || i >= len(l.sels) {
		return fmt.Errorf("%w: %d", ErrInvalidIndex, i)
	}
	l.main = i
	return nil
}

// Set replaces every selection. main indexes into sels.
func (l *List) Set(sels []Selection, main int) error {
	if len(sels) == 0 {
		return ErrNoSelectionsRemain
	}
	if main < 0 || main >= len(sels) {
		return fmt.Errorf("%w: %d", ErrInvalidIndex, main)
	}
	l.sels = slices.Clone(sels)
	l.main = main
	l.timestamp = l.buf.Timestamp()
	l.SortAndMergeOverlapping()
	return nil
}

// Replace swaps selection i for sel.
func (l *List) Replace(i int, sel Selection) {
	l.sels[i] = sel
	l.SortAndMergeOverlapping()
}

// PushBack adds sel and makes it the main selection.
func (l *List) PushBack(sel Selection) {
	l.sels = append(l.sels, sel)
	l.main = len(l.sels) - 1
	l.SortAndMergeOverlapping()
}

// Remove drops selection i.
func (l *List) Remove(i int) error {
	if i < 0 || i >= len(l.sels) {
		return fmt.Errorf("%w: %d", ErrInvalidIndex, i)
	}
	if len(l.sels) == 1 {
		return ErrNoSelectionsRemain
	}
	l.sels = slices.Delete(l.sels, i, i+1)
	if l.main > i || l.main == len(l.sels) {
		l.main--
	}
	l.checkInvariant()
	return nil
}

// Keep drops every selection but i.
func (l *List) Keep(i int) error {
	if i < 0 || i >= len(l.sels) {
		return fmt.Errorf("%w: %d", ErrInvalidIndex, i)
	}
	l.sels = []Selection{l.sels[i]}
	l.main = 0
	return nil
}

// Filter keeps the selections for which keep returns true. When none would
// remain the list is left unchanged and ErrNoSelectionsRemain is returned.
// If the main selection is dropped, the nearest earlier survivor becomes
// main.
func (l *List) Filter(keep func(i int, sel Selection) bool) error {
	kept := make([]Selection, 0, len(l.sels))
	main := 0
	for i, sel := range l.sels {
		if !keep(i, sel) {
			continue
		}
		if i <= l.main {
			main = len(kept)
		}
		kept = append(kept, sel)
	}
	if len(kept) == 0 {
		return ErrNoSelectionsRemain
	}
	l.sels = kept
	l.main = main
	return nil
}

// RotateMain moves the main index by n, wrapping around.
func (l *List) RotateMain(n int) {
	size := len(l.sels)
	l.main = ((l.main+n)%size + size) % size
}

// Flip swaps anchor and cursor of every selection.
func (l *List) Flip() {
	for i := range l.sels {
		l.sels[i] = l.sels[i].Flip()
	}
}

// ReduceToCursors collapses every selection onto its cursor.
func (l *List) ReduceToCursors() {
	for i := range l.sels {
		l.sels[i] = l.sels[i].Collapse()
	}
	l.SortAndMergeOverlapping()
}

// Contents returns the text of every selection, in list order.
func (l *List) Contents() []string {
	l.Update()
	out := make([]string, len(l.sels))
	for i, sel := range l.sels {
		out[i] = sel.Content(l.buf)
	}
	return out
}

// Update brings the coordinates up to date with the buffer by remapping
// them through every change made since the list's timestamp.
func (l *List) Update() {
	if l.timestamp == l.buf.Timestamp() {
		return
	}
	changes := l.buf.ChangesSince(l.timestamp)
	for i := range l.sels {
		l.sels[i] = l.sels[i].remap(l.buf, changes)
	}
	l.timestamp = l.buf.Timestamp()
	l.SortAndMergeOverlapping()
}

// SortAndMergeOverlapping orders the selections by Min and merges those
// sharing a codepoint. A merged selection keeps the direction and captures
// of the earlier one; the main index follows the selection it designated.
func (l *List) SortAndMergeOverlapping() {
	if len(l.sels) > 1 {
		order := make([]int, len(l.sels))
		for i := range order {
			order[i] = i
		}
		slices.SortStableFunc(order, func(a, b int) int {
			return l.sels[a].Min().Compare(l.sels[b].Min())
		})

		sorted := make([]Selection, 0, len(l.sels))
		main := 0
		for _, idx := range order {
			sel := l.sels[idx]
			if n := len(sorted); n > 0 && !sorted[n-1].Max().Before(sel.Min()) {
				sorted[n-1] = sorted[n-1].span(sel)
			} else {
				sorted = append(sorted, sel)
			}
			if idx == l.main {
				main = len(sorted) - 1
			}
		}
		l.sels = sorted
		l.main = main
	}
	l.checkInvariant()
}

// AvoidEOL steps every anchor and cursor resting on a line's newline back
// one codepoint, unless the line is empty.
func (l *List) AvoidEOL() {
	l.Update()
	for i := range l.sels {
		l.sels[i].Anchor = l.avoidEOL(l.sels[i].Anchor)
		l.sels[i].Cursor = l.avoidEOL(l.sels[i].Cursor)
	}
	l.SortAndMergeOverlapping()
}

func (l *List) avoidEOL(c Coord) Coord {
	if c.Column != 0 && c.Column == l.buf.LineLen(c.Line)-1 {
		return l.buf.CharPrev(c)
	}
	return c
}

// Snapshot captures the selections and main index.
type Snapshot struct {
	sels []Selection
	main int
}

// Snapshot returns the current selections for a later Restore.
func (l *List) Snapshot() Snapshot {
	l.Update()
	return Snapshot{sels: slices.Clone(l.sels), main: l.main}
}

// Restore puts back the selections of s. The buffer content must be the
// one s was taken on; the restored coordinates are adopted as current.
func (l *List) Restore(s Snapshot) {
	l.sels = slices.Clone(s.sels)
	l.main = s.main
	l.timestamp = l.buf.Timestamp()
	l.checkInvariant()
}

// CheckInvariant returns an error describing the first violated list
// invariant, or nil.
func (l *List) CheckInvariant() error {
	if len(l.sels) == 0 {
		return ErrNoSelectionsRemain
	}
	if l.main < 0 || l.main >= len(l.sels) {
		return fmt.Errorf("%w: main %d of %d", ErrInvalidIndex, l.main, len(l.sels))
	}
	for i, sel := range l.sels {
		if !l.buf.IsValid(sel.Anchor) || !l.buf.IsValid(sel.Cursor) {
			return fmt.Errorf("selection %d %s out of buffer", i, sel)
		}
		if i > 0 && !l.sels[i-1].Max().Before(sel.Min()) {
			return fmt.Errorf("selections %d and %d overlap or are unordered", i-1, i)
		}
	}
	return nil
}

func (l *List) checkInvariant() {
	if !invariant.Enabled {
		return
	}
	err := l.CheckInvariant()
	invariant.Check(err == nil, "%v", err)
}
