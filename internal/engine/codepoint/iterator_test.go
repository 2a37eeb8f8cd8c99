package codepoint

import (
	"errors"
	"testing"
	"unicode/utf8"
)

func TestIteratorNext(t *testing.T) {
	s := "aé€😀b"
	it := New[int](String(s), 0)

	want := []struct {
		pos int
		r   rune
	}{
		{0, 'a'},
		{1, 'é'},
		{3, '€'},
		{6, '😀'},
		{10, 'b'},
	}

	for i, w := range want {
		if it.Pos() != w.pos {
			t.Fatalf("step %d: expected pos %d, got %d", i, w.pos, it.Pos())
		}
		r, err := it.Codepoint()
		if err != nil {
			t.Fatalf("step %d: unexpected error: %v", i, err)
		}
		if r != w.r {
			t.Errorf("step %d: expected %q, got %q", i, w.r, r)
		}
		it.Next()
	}

	if !it.AtEnd() {
		t.Error("expected iterator at end")
	}
	if it.Next() {
		t.Error("Next at end should return false")
	}
	if _, err := it.Codepoint(); !errors.Is(err, ErrAtEnd) {
		t.Errorf("expected ErrAtEnd, got %v", err)
	}
}

func TestIteratorPrev(t *testing.T) {
	s := "aé€😀b"
	it := New[int](String(s), len(s))

	var got []rune
	for it.Prev() {
		got = append(got, it.Rune())
	}

	want := []rune{'b', '😀', '€', 'é', 'a'}
	if len(got) != len(want) {
		t.Fatalf("expected %d codepoints, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: expected %q, got %q", i, want[i], got[i])
		}
	}
	if !it.AtBegin() {
		t.Error("expected iterator at begin")
	}
}

func TestIteratorRoundTrip(t *testing.T) {
	texts := []string{
		"hello",
		"héllo wörld",
		"日本語テキスト",
		"a\xffb\x80\x80c",
		"\xe2\x82",
		"",
	}

	for _, s := range texts {
		total := CharCount(s)
		for start := 0; start <= total; start++ {
			for k := 0; k <= total-start; k++ {
				it := New[int](String(s), 0)
				it.Advance(start, len(s))
				origin := it.Pos()

				if n := it.Advance(k, len(s)); n != k {
					t.Fatalf("%q: advance %d from %d moved %d", s, k, start, n)
				}
				if n := it.Retreat(k, 0); n != k {
					t.Fatalf("%q: retreat %d moved %d", s, k, n)
				}
				if it.Pos() != origin {
					t.Errorf("%q: start %d k %d: expected pos %d, got %d", s, start, k, origin, it.Pos())
				}
			}
		}
	}
}

func TestIteratorAdvanceStopsAtLimit(t *testing.T) {
	s := "abcdef"
	it := New[int](String(s), 0)

	if n := it.Advance(10, 3); n != 3 {
		t.Errorf("expected 3 steps, got %d", n)
	}
	if it.Pos() != 3 {
		t.Errorf("expected pos 3, got %d", it.Pos())
	}
	if n := it.Retreat(10, 1); n != 2 {
		t.Errorf("expected 2 steps, got %d", n)
	}
}

func TestIteratorPolicy(t *testing.T) {
	s := "a\xffb"

	pass := New[int](String(s), 1)
	r, err := pass.Codepoint()
	if err != nil {
		t.Errorf("pass policy should not fail, got %v", err)
	}
	if r != utf8.RuneError {
		t.Errorf("expected RuneError, got %q", r)
	}
	pass.Next()
	if pass.Rune() != 'b' {
		t.Errorf("expected iteration to continue to 'b', got %q", pass.Rune())
	}

	strict := New[int](String(s), 1).WithPolicy(Strict)
	if _, err := strict.Codepoint(); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
	if strict.Policy() != Strict {
		t.Errorf("expected strict policy, got %v", strict.Policy())
	}
}

func TestIteratorTruncatedSequence(t *testing.T) {
	it := New[int](String("\xe2\x82"), 0).WithPolicy(Strict)
	if _, err := it.Codepoint(); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid for truncated sequence, got %v", err)
	}
	it.Next()
	if !it.AtEnd() {
		t.Errorf("expected truncated sequence to be one step, pos %d", it.Pos())
	}
}

func TestIteratorCacheInvalidation(t *testing.T) {
	it := New[int](String("xy"), 0)
	if it.Rune() != 'x' {
		t.Fatalf("expected 'x', got %q", it.Rune())
	}
	it.Next()
	if it.Rune() != 'y' {
		t.Errorf("expected 'y' after motion, got %q", it.Rune())
	}
	it.Seek(0)
	if it.Rune() != 'x' {
		t.Errorf("expected 'x' after seek, got %q", it.Rune())
	}
}

func TestDistance(t *testing.T) {
	s := String("aé€😀b")
	tests := []struct {
		a, b int
		want int
	}{
		{0, 0, 0},
		{0, 1, 1},
		{0, 3, 2},
		{0, 11, 5},
		{11, 0, -5},
		{3, 10, 2},
	}

	for _, tt := range tests {
		if got := Distance[int](s, tt.a, tt.b); got != tt.want {
			t.Errorf("Distance(%d, %d): expected %d, got %d", tt.a, tt.b, tt.want, got)
		}
	}
}

func TestCharCount(t *testing.T) {
	tests := []struct {
		s    string
		want int
	}{
		{"", 0},
		{"abc", 3},
		{"héllo", 5},
		{"a\x80\x80", 1},
		{"\xffz", 2},
	}

	for _, tt := range tests {
		if got := CharCount(tt.s); got != tt.want {
			t.Errorf("CharCount(%q): expected %d, got %d", tt.s, tt.want, got)
		}
	}
}

func TestNextPrevStart(t *testing.T) {
	s := "aé"
	if got := NextStart(s, 1); got != 3 {
		t.Errorf("expected 3, got %d", got)
	}
	if got := PrevStart(s, 3); got != 1 {
		t.Errorf("expected 1, got %d", got)
	}
	if got := PrevStart(s, 0); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
	if got := NextStart(s, 3); got != 3 {
		t.Errorf("expected 3, got %d", got)
	}
}
