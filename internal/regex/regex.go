// Package regex adapts Go's regexp engine to the narrow matching contract
// the editor needs: first or all matches of a compiled pattern within a
// half-open byte span of a text.
package regex

import (
	"fmt"
	"regexp"
)

// Match is one match. Begin and End are byte offsets into the searched text.
// Captures holds the whole match followed by every submatch; submatches that
// did not participate are empty.
type Match struct {
	Begin    int
	End      int
	Captures []string
}

// Matcher finds pattern matches in text restricted to [begin, end).
type Matcher interface {
	First(text string, begin, end int) (Match, bool)
	All(text string, begin, end int) []Match
	String() string
}

// PatternError reports a pattern that failed to compile.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

// Regex is a compiled pattern.
type Regex struct {
	re *regexp.Regexp
}

var _ Matcher = (*Regex)(nil)

// Compile parses pattern. Patterns use RE2 syntax with multi-line mode on,
// so ^ and $ match at line boundaries.
func Compile(pattern string) (*Regex, error) {
	re, err := regexp.Compile("(?m)" + pattern)
	if err != nil {
		return nil, &PatternError{Pattern: pattern, Err: err}
	}
	return &Regex{re: re}, nil
}

// MustCompile is Compile that panics on error.
func MustCompile(pattern string) *Regex {
	r, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return r
}

// Quote returns a pattern matching s literally.
func Quote(s string) string {
	return regexp.QuoteMeta(s)
}

// String returns the source pattern.
func (r *Regex) String() string {
	return r.re.String()[len("(?m)"):]
}

// First returns the leftmost match in [begin, end).
func (r *Regex) First(text string, begin, end int) (Match, bool) {
	loc := r.re.FindStringSubmatchIndex(text[begin:end])
	if loc == nil {
		return Match{}, false
	}
	return r.match(text, begin, loc), true
}

// All returns every non-overlapping match in [begin, end), in order.
func (r *Regex) All(text string, begin, end int) []Match {
	locs := r.re.FindAllStringSubmatchIndex(text[begin:end], -1)
	if len(locs) == 0 {
		return nil
	}
	matches := make([]Match, len(locs))
	for i, loc := range locs {
		matches[i] = r.match(text, begin, loc)
	}
	return matches
}

// Last returns the rightmost match in [begin, end).
func Last(m Matcher, text string, begin, end int) (Match, bool) {
	all := m.All(text, begin, end)
	if len(all) == 0 {
		return Match{}, false
	}
	return all[len(all)-1], true
}

func (r *Regex) match(text string, base int, loc []int) Match {
	m := Match{Begin: base + loc[0], End: base + loc[1]}
	m.Captures = make([]string, len(loc)/2)
	for i := range m.Captures {
		if loc[2*i] >= 0 {
			m.Captures[i] = text[base+loc[2*i] : base+loc[2*i+1]]
		}
	}
	return m
}
