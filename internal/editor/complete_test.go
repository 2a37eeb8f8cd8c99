package editor

import (
	"slices"
	"testing"

	"github.com/dshills/selcore/internal/engine/worddb"
)

func TestCompleteWord(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		cursor [2]int
		match  worddb.MatchFunc
		prefix string
		want   []string
	}{
		{"prefix", "foobar foobaz\nfo\n", [2]int{1, 2}, nil, "fo", []string{"foobar", "foobaz"}},
		{"repeated prefix", "fo fo\nfo\n", [2]int{1, 2}, nil, "fo", []string{"fo"}},
		{"subsequence", "foobar fbr\nfb\n", [2]int{1, 2}, worddb.SubsequenceMatch, "fb", []string{"fbr", "foobar"}},
		{"no word", "foo \n", [2]int{0, 4}, nil, "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newTestContext(t, tt.text, at(tt.cursor[0], tt.cursor[1]))
			comp := ctx.CompleteWord(tt.match)
			if comp.Prefix != tt.prefix {
				t.Errorf("expected prefix %q, got %q", tt.prefix, comp.Prefix)
			}
			if !slices.Equal(comp.Candidates, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, comp.Candidates)
			}
		})
	}
}
