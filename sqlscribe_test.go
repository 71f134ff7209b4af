package sqlscribe

import "testing"

func TestActiveStatementResolution(t *testing.T) {
	t.Parallel()
	buf := "SELECT 1; SELECT 2;"

	s, ok := ActiveStatement(buf, 5)
	if !ok || s.Text != "SELECT 1;" {
		t.Errorf("cursor 5: got %#v ok=%v", s, ok)
	}
	s, ok = ActiveStatement(buf, 12)
	if !ok || s.Text != "SELECT 2;" {
		t.Errorf("cursor 12: got %#v ok=%v", s, ok)
	}
}

func TestActiveStatementWholeBufferFallback(t *testing.T) {
	t.Parallel()
	s, ok := ActiveStatement("  SELECT 1;   ", 13)
	if !ok || s.Text != "SELECT 1;" {
		t.Errorf("got %#v ok=%v", s, ok)
	}
	if _, ok := ActiveStatement("   ", 1); ok {
		t.Error("blank buffer should not resolve")
	}
}

func TestSplitStatementsDollarQuote(t *testing.T) {
	t.Parallel()
	stmts := SplitStatements("CREATE FUNCTION f() RETURNS int AS $$ BEGIN RETURN 1; END; $$ LANGUAGE plpgsql;")
	if len(stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(stmts))
	}
}

func TestBuildDeleteQuerySingleRow(t *testing.T) {
	t.Parallel()
	got := BuildDeleteQuery("users", "public", []string{"id"}, []string{"id", "name"},
		[][]any{{1, "Alice"}})
	want := "DELETE FROM public.users\nWHERE (id = 1);"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBuildUpdateQueryCompositeKey(t *testing.T) {
	t.Parallel()
	got := BuildUpdateQuery("order_items", "sales",
		[]string{"order_id", "product_id"},
		[]string{"order_id", "product_id", "quantity"},
		[]RowEdit{{RowIndex: 0, Original: []any{100, 5, 2},
			Changes: []ColumnChange{{Column: 2, Value: 10}}}})
	want := "UPDATE sales.order_items SET quantity = 10 WHERE order_id = 100 AND product_id = 5;"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFormatValueEscaping(t *testing.T) {
	t.Parallel()
	if got := FormatAssignedValue("O'Brien"); got != "'O''Brien'" {
		t.Errorf("assigned: got %q", got)
	}
	if got := FormatPredicateValue("O'Brien"); got != "= 'O''Brien'" {
		t.Errorf("predicate: got %q", got)
	}
}

func TestMergeDeleteQueryIdempotent(t *testing.T) {
	t.Parallel()
	existing := BuildDeleteQuery("users", "public", []string{"id"}, []string{"id"},
		[][]any{{1}})
	conds := []string{"(id = 2)"}
	once, ok := MergeDeleteQuery(existing, conds)
	if !ok {
		t.Fatal("merge failed")
	}
	twice, ok := MergeDeleteQuery(once, conds)
	if !ok {
		t.Fatal("second merge failed")
	}
	if once != twice {
		t.Errorf("merge not idempotent:\n%s\nvs\n%s", once, twice)
	}
	if p := ParseDeleteQuery(once); p == nil || len(p.Conditions) != 2 {
		t.Errorf("parse of merged: %#v", p)
	}
}
