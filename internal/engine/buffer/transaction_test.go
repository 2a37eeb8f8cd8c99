package buffer

import "testing"

func TestTransactionCommitsOneFrame(t *testing.T) {
	b := New("abc")

	tx := b.BeginTransaction()
	b.Insert(c(0, 0), "x")
	b.Insert(c(0, 0), "y")
	tx.End()

	if b.HistorySize() != 1 {
		t.Fatalf("expected 1 frame, got %d", b.HistorySize())
	}
	b.Undo()
	if b.Text() != "abc\n" {
		t.Errorf("expected %q, got %q", "abc\n", b.Text())
	}
}

func TestTransactionNested(t *testing.T) {
	b := New("abc")

	outer := b.BeginTransaction()
	b.Insert(c(0, 0), "1")
	inner := b.BeginTransaction()
	b.Insert(c(0, 0), "2")
	inner.End()

	if b.HistorySize() != 0 {
		t.Errorf("inner transaction should not commit, got %d frames", b.HistorySize())
	}
	if !b.InTransaction() {
		t.Error("expected outer transaction to be open")
	}

	b.Insert(c(0, 0), "3")
	outer.End()

	if b.HistorySize() != 1 {
		t.Fatalf("expected 1 frame, got %d", b.HistorySize())
	}
	if b.InTransaction() {
		t.Error("expected no open transaction")
	}
	b.Undo()
	if b.Text() != "abc\n" {
		t.Errorf("expected %q, got %q", "abc\n", b.Text())
	}
}

func TestTransactionEmpty(t *testing.T) {
	b := New("abc")
	tx := b.BeginTransaction()
	if tx.Modified() {
		t.Error("fresh transaction should not be modified")
	}
	tx.End()
	tx.End()

	if b.HistorySize() != 0 {
		t.Errorf("expected no frame, got %d", b.HistorySize())
	}
}

func TestTransactionCommitsPriorEditsSeparately(t *testing.T) {
	b := New("abc")
	b.Insert(c(0, 0), "x")

	tx := b.BeginTransaction()
	b.Insert(c(0, 0), "y")
	tx.End()

	if b.HistorySize() != 2 {
		t.Errorf("expected 2 frames, got %d", b.HistorySize())
	}
}

func TestTransactionRollback(t *testing.T) {
	b := New("hello\nworld\n")
	b.Insert(c(0, 0), ">")
	b.CommitUndoGroup()

	tx := b.BeginTransaction()
	b.Insert(c(1, 0), "A")
	b.Erase(c(0, 0), c(1, 0))
	tx.Rollback()

	if b.Text() != ">hello\nworld\n" {
		t.Errorf("expected %q, got %q", ">hello\nworld\n", b.Text())
	}
	if b.HistorySize() != 1 {
		t.Errorf("expected rollback to leave history untouched, got %d frames", b.HistorySize())
	}
	if b.HasPendingEdits() {
		t.Error("expected no pending edits after rollback")
	}

	b.Undo()
	if b.Text() != "hello\nworld\n" {
		t.Errorf("expected %q, got %q", "hello\nworld\n", b.Text())
	}
}

func TestTransactionNestedRollbackKeepsOuterEdits(t *testing.T) {
	b := New("hello\nworld\n")

	outer := b.BeginTransaction()
	b.Insert(c(1, 0), "A")
	inner := b.BeginTransaction()
	b.Erase(c(0, 0), c(1, 0))
	inner.Rollback()
	b.Insert(c(0, 0), "B")
	outer.End()

	if b.Text() != "Bhello\nAworld\n" {
		t.Errorf("expected %q, got %q", "Bhello\nAworld\n", b.Text())
	}
	if b.HistorySize() != 1 {
		t.Errorf("expected 1 frame, got %d", b.HistorySize())
	}

	b.Undo()
	if b.Text() != "hello\nworld\n" {
		t.Errorf("expected %q, got %q", "hello\nworld\n", b.Text())
	}
}

func TestTransactionRollbackRevertsUndo(t *testing.T) {
	b := New("abc")
	b.Insert(c(0, 0), "x")
	b.CommitUndoGroup()
	b.Insert(c(0, 0), "y")
	b.CommitUndoGroup()

	tx := b.BeginTransaction()
	b.Undo()
	b.Undo()
	b.Insert(c(0, 0), "z")
	tx.Rollback()

	if b.Text() != "yxabc\n" {
		t.Errorf("expected %q, got %q", "yxabc\n", b.Text())
	}
	if b.HistoryCursor() != 2 || b.HistorySize() != 2 {
		t.Errorf("expected cursor 2 of 2, got %d of %d", b.HistoryCursor(), b.HistorySize())
	}

	b.Undo()
	if b.Text() != "xabc\n" {
		t.Errorf("expected %q, got %q", "xabc\n", b.Text())
	}
}

func TestTransactionRollbackRevertsRedo(t *testing.T) {
	b := New("abc")
	b.Insert(c(0, 0), "x")
	b.CommitUndoGroup()
	b.Undo()

	tx := b.BeginTransaction()
	if !b.Redo() {
		t.Fatal("expected redo")
	}
	tx.Rollback()

	if b.Text() != "abc\n" {
		t.Errorf("expected %q, got %q", "abc\n", b.Text())
	}
	if b.HistoryCursor() != 0 {
		t.Errorf("expected cursor 0, got %d", b.HistoryCursor())
	}
	if !b.Redo() || b.Text() != "xabc\n" {
		t.Errorf("expected redo to still apply, got %q", b.Text())
	}
}

func TestTransactionRollbackThenEnd(t *testing.T) {
	b := New("abc")
	tx := b.BeginTransaction()
	b.Insert(c(0, 0), "x")
	tx.Rollback()
	tx.End()

	if b.Text() != "abc\n" {
		t.Errorf("expected %q, got %q", "abc\n", b.Text())
	}

	tx = b.BeginTransaction()
	b.Insert(c(0, 0), "y")
	tx.End()
	if b.HistorySize() != 1 {
		t.Errorf("expected 1 frame, got %d", b.HistorySize())
	}
}
