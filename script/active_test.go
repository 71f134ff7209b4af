package script

import "testing"

func TestActiveResolvesCursor(t *testing.T) {
	t.Parallel()
	stmts := Split("SELECT 1; SELECT 2;")

	s, ok := Active(stmts, 5)
	if !ok || s.Text != "SELECT 1;" {
		t.Errorf("cursor 5: got %#v ok=%v", s, ok)
	}

	s, ok = Active(stmts, 12)
	if !ok || s.Text != "SELECT 2;" {
		t.Errorf("cursor 12: got %#v ok=%v", s, ok)
	}
}

func TestActiveOnSemicolonSelectsItsStatement(t *testing.T) {
	t.Parallel()
	stmts := Split("SELECT 1; SELECT 2;")
	// Index 8 is the first ';'.
	s, ok := Active(stmts, 8)
	if !ok || s.Text != "SELECT 1;" {
		t.Errorf("got %#v ok=%v", s, ok)
	}
}

func TestActiveBoundaryPrefersFirstStatement(t *testing.T) {
	t.Parallel()
	stmts := Split("SELECT 1; SELECT 2;")
	// Index 9 is both the end of the first statement and the start of the
	// second; both ends are inclusive, so the first match wins.
	s, ok := Active(stmts, 9)
	if !ok || s.Text != "SELECT 1;" {
		t.Errorf("got %#v ok=%v", s, ok)
	}
}

func TestActiveNoMatch(t *testing.T) {
	t.Parallel()
	if _, ok := Active(nil, 0); ok {
		t.Error("expected no match on empty statement list")
	}
	stmts := Split("SELECT 1;")
	if _, ok := Active(stmts, 100); ok {
		t.Error("expected no match past the last statement")
	}
}
