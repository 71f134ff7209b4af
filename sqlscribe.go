// Package sqlscribe is the SQL script engine behind a desktop database
// browser's query editor: it splits multi-statement buffers into individual
// statements, resolves the statement under the cursor, and turns selected or
// edited result-grid rows into DELETE and UPDATE statements that can be
// merged into an already-generated DELETE.
//
// This package re-exports the engine API from its subpackages for
// convenience. Advanced users can import subpackages directly:
//   - github.com/avelaine/sqlscribe/script (statement splitting, cursor resolution)
//   - github.com/avelaine/sqlscribe/dml (DML generation and merging)
//   - github.com/avelaine/sqlscribe/exec (query execution and schema introspection)
//   - github.com/avelaine/sqlscribe/history (query history store)
//   - github.com/avelaine/sqlscribe/store (saved connections)
//
// The engine packages (script, dml) are pure text transformation: no I/O,
// no shared state, safe for concurrent use.
package sqlscribe

import (
	"strings"

	"github.com/avelaine/sqlscribe/dml"
	"github.com/avelaine/sqlscribe/script"
)

// Statement is one semicolon-delimited unit of SQL text plus its offsets
// into the original buffer.
type Statement = script.Statement

// RowEdit is a sparse record of per-column value changes for one
// originally-fetched row.
type RowEdit = dml.RowEdit

// ColumnChange is one column assignment inside a RowEdit.
type ColumnChange = dml.ColumnChange

// ParsedDelete is the structured form of a generated DELETE statement.
type ParsedDelete = dml.ParsedDelete

// SplitStatements splits a multi-statement SQL buffer into its statements,
// ignoring semicolons inside single-quoted and dollar-quoted literals.
func SplitStatements(buffer string) []Statement {
	return script.Split(buffer)
}

// ActiveStatement returns the statement containing cursor. When no split
// statement contains the cursor but the buffer holds content, the whole
// trimmed buffer is returned as a single statement. Reports false only for
// blank buffers.
func ActiveStatement(buffer string, cursor int) (Statement, bool) {
	stmts := script.Split(buffer)
	if s, ok := script.Active(stmts, cursor); ok {
		return s, true
	}
	text := strings.TrimSpace(buffer)
	if text == "" {
		return Statement{}, false
	}
	return Statement{Text: text, Start: 0, End: len(buffer)}, true
}

// BuildDeleteQuery builds one DELETE statement for schema.table covering
// every given row, using the primary key when it is fully non-NULL across
// the batch and the full row image otherwise.
func BuildDeleteQuery(table, schema string, pkColumns, columns []string, rows [][]any) string {
	return dml.BuildDelete(table, schema, pkColumns, columns, rows)
}

// BuildUpdateQuery builds one UPDATE statement per edit, newline-joined.
func BuildUpdateQuery(table, schema string, pkColumns, columns []string, edits []RowEdit) string {
	return dml.BuildUpdate(table, schema, pkColumns, columns, edits)
}

// ParseDeleteQuery parses a previously generated DELETE back into structured
// form, returning nil for any other statement shape.
func ParseDeleteQuery(text string) *ParsedDelete {
	return dml.ParseDelete(text)
}

// MergeDeleteQuery folds new conditions into an existing generated DELETE
// with exact-text deduplication. Reports false when the existing text is not
// a recognizable generated DELETE.
func MergeDeleteQuery(existing string, conditions []string) (string, bool) {
	return dml.MergeDelete(existing, conditions)
}

// FormatPredicateValue renders a value as the tail of a WHERE predicate
// ("= 'x'", "IS NULL").
func FormatPredicateValue(v any) string {
	return dml.PredicateValue(v)
}

// FormatAssignedValue renders a value as a SET-clause literal.
func FormatAssignedValue(v any) string {
	return dml.AssignedValue(v)
}
