package dml

import (
	"testing"

	"github.com/avelaine/sqlscribe/internal/testutil"
)

func TestPredicateValue(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"nil", nil, "IS NULL"},
		{"string", "Alice", "= 'Alice'"},
		{"string with quote", "O'Brien", "= 'O''Brien'"},
		{"empty string", "", "= ''"},
		{"int", 42, "= 42"},
		{"negative int", -7, "= -7"},
		{"float", 2.5, "= 2.5"},
		{"bool true", true, "= true"},
		{"bool false", false, "= false"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, PredicateValue(tt.input), tt.want)
		})
	}
}

func TestAssignedValue(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"nil", nil, "NULL"},
		{"string", "Alice", "'Alice'"},
		{"string with quote", "O'Brien", "'O''Brien'"},
		{"int", 42, "42"},
		{"float", 2.5, "2.5"},
		{"bool true", true, "true"},
		{"bool false", false, "false"},
		{"slice", []any{1, 2}, "'[1,2]'"},
		{"map", map[string]any{"a": 1}, `'{"a":1}'`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, AssignedValue(tt.input), tt.want)
		})
	}
}

func TestAssignedValueEscapesQuotesInsideJSON(t *testing.T) {
	t.Parallel()
	got := AssignedValue(map[string]any{"note": "it's"})
	testutil.AssertEqual(t, got, `'{"note":"it''s"}'`)
}
