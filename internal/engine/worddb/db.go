package worddb

import (
	"github.com/dshills/selcore/internal/engine/buffer"
	"github.com/dshills/selcore/internal/engine/invariant"
)

type wordInfo struct {
	letters  UsedLetters
	refcount int
}

// DB indexes the words of one buffer. It holds a non-owning reference to
// the buffer and must not be used once the buffer is discarded.
type DB struct {
	buf       *buffer.Buffer
	timestamp int
	lines     []*buffer.Line
	words     map[string]*wordInfo
	built     bool
}

// New creates an index over buf. The buffer is scanned on first query.
func New(buf *buffer.Buffer) *DB {
	return &DB{
		buf:   buf,
		words: make(map[string]*wordInfo),
	}
}

// FindMatching returns the indexed words accepted by match for pattern.
// Words whose signature lacks a class used by pattern are skipped without
// calling match. The result order is unspecified.
func (db *DB) FindMatching(pattern string, match MatchFunc) []string {
	db.update()

	letters := LettersOf(pattern)
	var res []string
	for word, info := range db.words {
		if info.letters.Contains(letters) && match(word, pattern) {
			res = append(res, word)
		}
	}
	return res
}

// WordOccurrences returns how many times word occurs in the buffer.
func (db *DB) WordOccurrences(word string) int {
	db.update()
	if info, ok := db.words[word]; ok {
		return info.refcount
	}
	return 0
}

// Len returns the number of distinct words indexed.
func (db *DB) Len() int {
	db.update()
	return len(db.words)
}

// update brings the index in line with the buffer. Lines are compared by
// identity: the common head and tail are skipped, and in between only lines
// absent from the previous snapshot are scanned for added words, only lines
// absent from the new one for removed words.
func (db *DB) update() {
	if db.built && db.timestamp == db.buf.Timestamp() {
		return
	}

	lines := db.buf.Lines()
	if !db.built {
		for _, l := range lines {
			db.addWords(l)
		}
		db.lines = lines
		db.timestamp = db.buf.Timestamp()
		db.built = true
		return
	}

	old := db.lines
	prefix := 0
	for prefix < len(old) && prefix < len(lines) && old[prefix] == lines[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(old)-prefix && suffix < len(lines)-prefix &&
		old[len(old)-1-suffix] == lines[len(lines)-1-suffix] {
		suffix++
	}

	oldMid := old[prefix : len(old)-suffix]
	newMid := lines[prefix : len(lines)-suffix]

	kept := make(map[*buffer.Line]int, len(oldMid))
	for _, l := range oldMid {
		kept[l]++
	}
	for _, l := range newMid {
		if kept[l] > 0 {
			kept[l]--
			continue
		}
		db.addWords(l)
	}
	for l, n := range kept {
		for ; n > 0; n-- {
			db.removeWords(l)
		}
	}

	db.lines = lines
	db.timestamp = db.buf.Timestamp()
}

func (db *DB) addWords(l *buffer.Line) {
	for _, w := range Words(l.Content()) {
		if info, ok := db.words[w]; ok {
			info.refcount++
			continue
		}
		db.words[w] = &wordInfo{letters: LettersOf(w), refcount: 1}
	}
}

func (db *DB) removeWords(l *buffer.Line) {
	for _, w := range Words(l.Content()) {
		info, ok := db.words[w]
		invariant.Check(ok, "removing unindexed word %q", w)
		if !ok {
			continue
		}
		info.refcount--
		if info.refcount <= 0 {
			delete(db.words, w)
		}
	}
}
