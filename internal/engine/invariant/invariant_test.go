package invariant

import (
	"errors"
	"testing"
)

func TestCheckPasses(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("unexpected panic: %v", r)
		}
	}()
	Check(true, "never %s", "raised")
}

func TestCheckPanics(t *testing.T) {
	if !Enabled {
		t.Skip("assertions disabled in release builds")
	}

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		var v Violation
		err, ok := r.(error)
		if !ok || !errors.As(err, &v) {
			t.Fatalf("expected Violation, got %T", r)
		}
		if v.Message != "count 3 < 4" {
			t.Errorf("expected message 'count 3 < 4', got %q", v.Message)
		}
	}()
	Check(false, "count %d < %d", 3, 4)
}
