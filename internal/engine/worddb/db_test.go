package worddb

import (
	"slices"
	"testing"

	"github.com/dshills/selcore/internal/engine/buffer"
)

func coord(line, col int) buffer.Coord {
	return buffer.Coord{Line: line, Column: col}
}

func TestWordOccurrencesScenario(t *testing.T) {
	buf := buffer.New("cat dog\ndog cat\n")
	db := New(buf)

	if n := db.WordOccurrences("dog"); n != 2 {
		t.Fatalf("expected 2 occurrences of dog, got %d", n)
	}

	buf.Erase(coord(1, 0), buf.EndCoord())

	if n := db.WordOccurrences("dog"); n != 1 {
		t.Errorf("expected 1 occurrence of dog, got %d", n)
	}
	if n := db.WordOccurrences("cat"); n != 1 {
		t.Errorf("expected 1 occurrence of cat, got %d", n)
	}
}

func TestWordOccurrencesInsertRemoveLine(t *testing.T) {
	buf := buffer.New("alpha beta\ngamma\n")
	db := New(buf)

	before := db.WordOccurrences("beta")
	buf.Insert(coord(1, 0), "beta delta\n")
	if n := db.WordOccurrences("beta"); n != before+1 {
		t.Errorf("expected %d, got %d", before+1, n)
	}
	if n := db.WordOccurrences("delta"); n != 1 {
		t.Errorf("expected 1 delta, got %d", n)
	}

	buf.Erase(coord(1, 0), coord(2, 0))
	if n := db.WordOccurrences("beta"); n != before {
		t.Errorf("expected %d, got %d", before, n)
	}
	if n := db.WordOccurrences("delta"); n != 0 {
		t.Errorf("expected delta evicted, got %d", n)
	}
}

func TestUpdateAfterUndo(t *testing.T) {
	buf := buffer.New("one two\nthree\n")
	db := New(buf)
	if db.Len() != 3 {
		t.Fatalf("expected 3 words, got %d", db.Len())
	}

	buf.ApplyEdit(coord(0, 4), coord(0, 7), "four")
	buf.CommitUndoGroup()
	if db.WordOccurrences("two") != 0 || db.WordOccurrences("four") != 1 {
		t.Error("edit not reflected in index")
	}

	buf.Undo()
	if db.WordOccurrences("two") != 1 || db.WordOccurrences("four") != 0 {
		t.Error("undo not reflected in index")
	}
}

func TestUpdateDistantEdits(t *testing.T) {
	buf := buffer.New("a1\nb2\nc3\nd4\ne5\n")
	db := New(buf)
	db.Len()

	buf.ApplyEdit(coord(0, 0), coord(0, 2), "x1")
	buf.ApplyEdit(coord(4, 0), coord(4, 2), "y5")

	for _, w := range []string{"b2", "c3", "d4", "x1", "y5"} {
		if db.WordOccurrences(w) != 1 {
			t.Errorf("expected %s indexed once, got %d", w, db.WordOccurrences(w))
		}
	}
	for _, w := range []string{"a1", "e5"} {
		if db.WordOccurrences(w) != 0 {
			t.Errorf("expected %s evicted", w)
		}
	}
}

func TestDuplicateLines(t *testing.T) {
	buf := buffer.New("same\nsame\nsame\n")
	db := New(buf)
	if n := db.WordOccurrences("same"); n != 3 {
		t.Fatalf("expected 3, got %d", n)
	}

	buf.Erase(coord(1, 0), coord(2, 0))
	if n := db.WordOccurrences("same"); n != 2 {
		t.Errorf("expected 2, got %d", n)
	}
}

func TestFindMatching(t *testing.T) {
	buf := buffer.New("foobar foobaz Food\nqux fob\n")
	db := New(buf)

	got := db.FindMatching("foo", PrefixMatch)
	slices.Sort(got)
	want := []string{"Food", "foobar", "foobaz"}
	if !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	got = db.FindMatching("fb", SubsequenceMatch)
	slices.Sort(got)
	want = []string{"fob", "foobar", "foobaz"}
	if !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestFindMatchingPrefilter(t *testing.T) {
	buf := buffer.New("apple banana cherry\n")
	db := New(buf)

	var called []string
	match := func(word, pattern string) bool {
		called = append(called, word)
		return true
	}

	got := db.FindMatching("an", match)
	if !slices.Equal(got, []string{"banana"}) {
		t.Errorf("expected [banana], got %v", got)
	}
	if !slices.Equal(called, []string{"banana"}) {
		t.Errorf("expected match called only for banana, got %v", called)
	}
}

func TestWords(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"", nil},
		{"hello world", []string{"hello", "world"}},
		{"  snake_case, x1-y2 ", []string{"snake_case", "x1", "y2"}},
		{"héllo wörld", []string{"héllo", "wörld"}},
		{"a.b(c)", []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		if got := Words(tt.text); !slices.Equal(got, tt.want) {
			t.Errorf("Words(%q): expected %v, got %v", tt.text, tt.want, got)
		}
	}
}

func TestMatchFuncs(t *testing.T) {
	if !PrefixMatch("Hello", "he") {
		t.Error("expected case-insensitive prefix match")
	}
	if PrefixMatch("he", "hello") {
		t.Error("pattern longer than word should not match")
	}
	if !SubsequenceMatch("snake_case", "skc") {
		t.Error("expected subsequence match")
	}
	if SubsequenceMatch("abc", "cb") {
		t.Error("out of order subsequence should not match")
	}
}
