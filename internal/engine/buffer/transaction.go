package buffer

import (
	"slices"

	"go.uber.org/zap"
)

// txState tracks the transactions open on a buffer. journal holds every
// replacement made while one is open, undo and redo included, so a
// transaction can put the text back to what it was when it opened.
type txState struct {
	depth   int
	journal []Modification
}

// Transaction groups every edit made while it is open into one undo frame.
// Transactions nest; only the outermost one commits.
//
//	tx := buf.BeginTransaction()
//	defer tx.End()
type Transaction struct {
	buf     *Buffer
	outer   bool
	start   int
	journal int
	saved   savedHistory
	done    bool
}

// BeginTransaction opens a transaction.
// Opening the outermost transaction commits edits made outside of any
// transaction so they do not join its frame.
func (b *Buffer) BeginTransaction() *Transaction {
	if b.tx.depth == 0 {
		b.CommitUndoGroup()
	}
	b.tx.depth++
	return &Transaction{
		buf:     b,
		outer:   b.tx.depth == 1,
		start:   b.Timestamp(),
		journal: len(b.tx.journal),
		saved:   b.history.save(),
	}
}

// InTransaction reports whether a transaction is open.
func (b *Buffer) InTransaction() bool {
	return b.tx.depth > 0
}

// Start returns the buffer timestamp captured when the transaction opened.
func (t *Transaction) Start() int {
	return t.start
}

// Modified reports whether the buffer changed since the transaction opened.
func (t *Transaction) Modified() bool {
	return t.buf.Timestamp() != t.start
}

// End closes the transaction. Closing the outermost transaction commits
// its edits as a single undo frame. Calling End more than once, or after
// Rollback, has no effect.
func (t *Transaction) End() {
	if t.done {
		return
	}
	t.done = true

	b := t.buf
	b.tx.depth--
	if t.outer {
		b.tx.journal = nil
		b.CommitUndoGroup()
	}
}

// Rollback closes the transaction and restores the text and the history
// to their state when it opened, undoing any undo or redo run inside it.
// Edits made before it opened, in an enclosing transaction, are kept.
func (t *Transaction) Rollback() {
	if t.done {
		return
	}

	b := t.buf
	edits := slices.Clone(b.tx.journal[t.journal:])
	b.revert(edits)
	b.tx.journal = b.tx.journal[:t.journal]
	b.history.restore(t.saved)
	if len(edits) > 0 {
		b.logger.Debug("transaction rolled back",
			zap.Stringer("buffer", b.id),
			zap.Int("modifications", len(edits)),
			zap.Bool("nested", !t.outer))
	}
	t.End()
}
