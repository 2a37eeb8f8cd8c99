package buffer

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dshills/selcore/internal/engine/invariant"
)

// DefaultMaxHistory is the default number of undo frames kept.
const DefaultMaxHistory = 1000

// Buffer owns a sequence of lines, their edit history and the change log
// dependents resynchronize against.
type Buffer struct {
	id   uuid.UUID
	name string

	lines []*Line

	// changes[i] is the change that moved the timestamp from i to i+1.
	changes []Change

	history history
	tx      txState

	logger *zap.Logger
}

// New creates a buffer holding content.
// CRLF line endings are normalized to LF and a final newline is added when
// missing, so an empty content yields a single empty line.
func New(content string, opts ...Option) *Buffer {
	b := &Buffer{
		id:      uuid.New(),
		history: history{maxFrames: DefaultMaxHistory},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	b.lines = splitLines(content)
	return b
}

// NewFromReader creates a buffer from everything read from r.
func NewFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read buffer content: %w", err)
	}
	return New(string(data), opts...), nil
}

// ID returns the buffer's unique identifier.
func (b *Buffer) ID() uuid.UUID {
	return b.id
}

// Name returns the buffer's display name.
func (b *Buffer) Name() string {
	return b.name
}

// Timestamp returns the number of changes applied so far.
// It never decreases.
func (b *Buffer) Timestamp() int {
	return len(b.changes)
}

// ChangesSince returns the changes applied after timestamp ts, oldest first.
// The returned slice must not be modified.
func (b *Buffer) ChangesSince(ts int) []Change {
	invariant.Check(ts >= 0 && ts <= len(b.changes), "timestamp %d outside [0, %d]", ts, len(b.changes))
	return b.changes[ts:]
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Line returns line i.
func (b *Buffer) Line(i int) *Line {
	return b.lines[i]
}

// LineText returns line i without its newline.
func (b *Buffer) LineText(i int) string {
	return b.lines[i].Content()
}

// LineLen returns the byte length of line i, newline included.
func (b *Buffer) LineLen(i int) int {
	return len(b.lines[i].text)
}

// Lines returns a snapshot of the current line sequence.
func (b *Buffer) Lines() []*Line {
	lines := make([]*Line, len(b.lines))
	copy(lines, b.lines)
	return lines
}

// Text returns the whole buffer content.
func (b *Buffer) Text() string {
	var sb strings.Builder
	for _, l := range b.lines {
		sb.WriteString(l.text)
	}
	return sb.String()
}

// Content returns the text in [begin, end).
func (b *Buffer) Content(begin, end Coord) string {
	if !begin.Before(end) {
		return ""
	}
	if begin.Line == end.Line {
		return b.lines[begin.Line].text[begin.Column:end.Column]
	}

	var sb strings.Builder
	sb.WriteString(b.lines[begin.Line].text[begin.Column:])
	for l := begin.Line + 1; l < end.Line && l < len(b.lines); l++ {
		sb.WriteString(b.lines[l].text)
	}
	if end.Line < len(b.lines) {
		sb.WriteString(b.lines[end.Line].text[:end.Column])
	}
	return sb.String()
}

// EndCoord returns the coord one past the last byte: (LineCount:0).
func (b *Buffer) EndCoord() Coord {
	return Coord{Line: len(b.lines)}
}

// BackCoord returns the coord of the final newline.
func (b *Buffer) BackCoord() Coord {
	last := len(b.lines) - 1
	return Coord{Line: last, Column: len(b.lines[last].text) - 1}
}

// IsValid reports whether c addresses a byte of the buffer or is EndCoord.
func (b *Buffer) IsValid(c Coord) bool {
	if c.Line == len(b.lines) {
		return c.Column == 0
	}
	return c.Line >= 0 && c.Line < len(b.lines) && c.Column >= 0 && c.Column < len(b.lines[c.Line].text)
}

// Clamp returns the nearest coord that addresses the first byte of a
// codepoint. Coords past the last line clamp to the final newline, so the
// result is never EndCoord.
func (b *Buffer) Clamp(c Coord) Coord {
	if c.Line < 0 {
		c.Line = 0
	}
	if c.Line >= len(b.lines) {
		return b.BackCoord()
	}
	text := b.lines[c.Line].text
	if c.Column < 0 {
		c.Column = 0
	}
	if c.Column >= len(text) {
		c.Column = len(text) - 1
	}
	for c.Column > 0 && text[c.Column]&0xC0 == 0x80 {
		c.Column--
	}
	return c
}

// ApplyEdit replaces [begin, end) with content and returns the coord just
// past the inserted text together with the recorded change.
//
// The buffer keeps its final newline: an edit reaching EndCoord is cut back
// to the final newline, which then stands in for a trailing newline of
// content, unless it starts at the beginning of a line other than the
// first; content inserted at EndCoord gains a trailing newline when it
// lacks one. An edit that would change nothing records nothing.
//
// Coordinates must be valid; an invalid coord is a caller bug.
func (b *Buffer) ApplyEdit(begin, end Coord, content string) (Coord, Change) {
	invariant.Check(b.IsValid(begin), "edit begin %s out of range", begin)
	invariant.Check(b.IsValid(end), "edit end %s out of range", end)
	invariant.Check(!end.Before(begin), "edit end %s before begin %s", end, begin)

	if end == b.EndCoord() {
		if begin.Column != 0 || begin.IsZero() {
			end = b.BackCoord()
			content = strings.TrimSuffix(content, "\n")
		}
		if end == b.EndCoord() && content != "" && !strings.HasSuffix(content, "\n") {
			content += "\n"
		}
	}

	if begin == end && content == "" {
		return begin, Change{Begin: begin, OldEnd: begin, NewEnd: begin}
	}

	old := b.Content(begin, end)
	change := b.replace(begin, end, content)
	b.history.record(Modification{
		Begin:     begin,
		OldText:   old,
		NewText:   content,
		Timestamp: b.Timestamp(),
	})
	return change.NewEnd, change
}

// Insert inserts content at pos.
func (b *Buffer) Insert(pos Coord, content string) (Coord, Change) {
	return b.ApplyEdit(pos, pos, content)
}

// Erase removes [begin, end).
func (b *Buffer) Erase(begin, end Coord) (Coord, Change) {
	return b.ApplyEdit(begin, end, "")
}

// replace swaps [begin, end) for content in the line sequence and appends
// the change to the log, and to the transaction journal when one is open.
// Only the touched lines are rebuilt; a line starting exactly at end is
// kept when the new text before it is newline-terminated.
func (b *Buffer) replace(begin, end Coord, content string) Change {
	if b.tx.depth > 0 {
		b.tx.journal = append(b.tx.journal, Modification{
			Begin:   begin,
			OldText: b.Content(begin, end),
			NewText: content,
		})
	}

	var prefix, suffix string
	last := len(b.lines)
	if begin.Line < last {
		prefix = b.lines[begin.Line].text[:begin.Column]
	}
	endLine := end.Line
	head := prefix + content
	if end.Line < last && (end.Column != 0 || (head != "" && !strings.HasSuffix(head, "\n"))) {
		suffix = b.lines[end.Line].text[end.Column:]
		endLine++
	}

	text := head + suffix
	invariant.Check(text == "" || strings.HasSuffix(text, "\n"), "edit at %s leaves an unterminated line", begin)

	replacement := splitLines(text)
	lines := make([]*Line, 0, len(b.lines)-(endLine-begin.Line)+len(replacement))
	lines = append(lines, b.lines[:begin.Line]...)
	lines = append(lines, replacement...)
	lines = append(lines, b.lines[endLine:]...)
	invariant.Check(len(lines) > 0, "edit at %s empties the buffer", begin)
	b.lines = lines

	change := Change{Begin: begin, OldEnd: end, NewEnd: textEnd(begin, content)}
	b.changes = append(b.changes, change)
	return change
}

// ModifiedRanges returns the regions that differ between the buffer state
// at timestamp since and now, merged and in buffer order. An erased region
// appears as an empty range at the erase position.
func (b *Buffer) ModifiedRanges(since int) []Range {
	var ranges []Range
	for _, c := range b.ChangesSince(since) {
		for i := range ranges {
			ranges[i].Begin = c.Remap(ranges[i].Begin)
			ranges[i].End = c.Remap(ranges[i].End)
		}
		ranges = append(ranges, Range{Begin: c.Begin, End: c.NewEnd})
	}
	return mergeRanges(ranges)
}

func mergeRanges(ranges []Range) []Range {
	if len(ranges) < 2 {
		return ranges
	}
	slices.SortStableFunc(ranges, func(a, c Range) int {
		return a.Begin.Compare(c.Begin)
	})
	merged := ranges[:1]
	for _, r := range ranges[1:] {
		top := &merged[len(merged)-1]
		if !r.Begin.After(top.End) {
			top.End = MaxCoord(top.End, r.End)
			continue
		}
		merged = append(merged, r)
	}
	return merged
}
