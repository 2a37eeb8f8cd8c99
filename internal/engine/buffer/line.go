package buffer

import "strings"

// Line is an immutable run of bytes terminated by a newline.
// Lines are shared between buffer states; compare pointers to detect an
// unchanged line.
type Line struct {
	text string
}

// Text returns the line content including its trailing newline.
func (l *Line) Text() string {
	return l.text
}

// Content returns the line content without its trailing newline.
func (l *Line) Content() string {
	return l.text[:len(l.text)-1]
}

// Len returns the line length in bytes, newline included.
func (l *Line) Len() int {
	return len(l.text)
}

// splitLines cuts newline-terminated text into lines.
func splitLines(text string) []*Line {
	if text == "" {
		return nil
	}
	lines := make([]*Line, 0, strings.Count(text, "\n"))
	for len(text) > 0 {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			i = len(text) - 1
		}
		lines = append(lines, &Line{text: text[:i+1]})
		text = text[i+1:]
	}
	return lines
}

// textEnd returns the coord just past text when inserted at begin.
func textEnd(begin Coord, text string) Coord {
	nl := strings.Count(text, "\n")
	if nl == 0 {
		return Coord{Line: begin.Line, Column: begin.Column + len(text)}
	}
	return Coord{Line: begin.Line + nl, Column: len(text) - strings.LastIndexByte(text, '\n') - 1}
}
