package buffer

import "github.com/rivo/uniseg"

// DisplayWidth returns the number of terminal cells s occupies when it
// starts at cell column start. Tabs advance to the next multiple of
// tabstop; other grapheme clusters use their East Asian width.
func DisplayWidth(s string, tabstop, start int) int {
	if tabstop <= 0 {
		tabstop = 1
	}
	col := start
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		if g.Str() == "\t" {
			col += tabstop - col%tabstop
			continue
		}
		col += g.Width()
	}
	return col - start
}

// DisplayColumn returns the display column of c within its line.
func (b *Buffer) DisplayColumn(c Coord, tabstop int) int {
	return DisplayWidth(b.lines[c.Line].text[:c.Column], tabstop, 0)
}

// CoordAtDisplayColumn returns the coord on line whose display span covers
// column, or the line's newline when the line is shorter.
func (b *Buffer) CoordAtDisplayColumn(line, column, tabstop int) Coord {
	text := b.lines[line].text
	col := 0
	offset := 0
	g := uniseg.NewGraphemes(text[:len(text)-1])
	for g.Next() {
		w := DisplayWidth(g.Str(), tabstop, col)
		if col+w > column {
			break
		}
		col += w
		offset += len(g.Str())
	}
	return Coord{Line: line, Column: offset}
}
