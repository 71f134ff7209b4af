package dml

import "strings"

// RowEdit is a sparse record of per-column changes for one fetched row.
// Original is the snapshot taken before editing; WHERE predicates are always
// built from it, never from the edited values.
type RowEdit struct {
	RowIndex int
	Original []any
	Changes  []ColumnChange
}

// ColumnChange assigns a new value to the column at position Column in the
// column list. Changes keep their order so the generated SET clause is
// deterministic.
type ColumnChange struct {
	Column int
	Value  any
}

// BuildUpdate builds one single-line UPDATE statement per edit, joined by
// newlines. The SET clause lists only the changed columns; the WHERE clause
// uses the same predicate-column policy as BuildDelete, evaluated across the
// original rows of the whole batch so every statement identifies its row the
// same way. Edits with an empty change set are skipped rather than emitting
// an UPDATE with no SET clause.
func BuildUpdate(table, schema string, pkColumns, columns []string, edits []RowEdit) string {
	originals := make([][]any, len(edits))
	for i, e := range edits {
		originals[i] = e.Original
	}
	predCols := predicateColumns(pkColumns, columns, originals)

	stmts := make([]string, 0, len(edits))
	for _, e := range edits {
		if len(e.Changes) == 0 {
			continue
		}
		sets := make([]string, len(e.Changes))
		for i, ch := range e.Changes {
			sets[i] = columns[ch.Column] + " = " + AssignedValue(ch.Value)
		}
		wheres := make([]string, len(predCols))
		for i, col := range predCols {
			wheres[i] = col.name + " " + PredicateValue(e.Original[col.index])
		}
		stmts = append(stmts,
			"UPDATE "+schema+"."+table+
				" SET "+strings.Join(sets, ", ")+
				" WHERE "+strings.Join(wheres, " AND ")+";")
	}
	return strings.Join(stmts, "\n")
}
