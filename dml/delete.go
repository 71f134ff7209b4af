package dml

import "strings"

// predicateColumn pairs a column name with its position in the row.
type predicateColumn struct {
	name  string
	index int
}

// predicateColumns chooses the columns used to identify rows in a generated
// WHERE clause. The primary key is used only when one is known and every PK
// value across every row is non-NULL; otherwise the full column list stands
// in, since a partially NULL key cannot be trusted to identify a single row.
//
// The choice is made once per batch so all generated conditions share the
// same shape. Every name in pkColumns must appear in columns.
func predicateColumns(pkColumns, columns []string, rows [][]any) []predicateColumn {
	all := make([]predicateColumn, len(columns))
	for i, name := range columns {
		all[i] = predicateColumn{name: name, index: i}
	}
	if len(pkColumns) == 0 {
		return all
	}

	pk := make([]predicateColumn, 0, len(pkColumns))
	for _, name := range pkColumns {
		for i, col := range columns {
			if col == name {
				pk = append(pk, predicateColumn{name: name, index: i})
				break
			}
		}
	}

	for _, row := range rows {
		for _, col := range pk {
			if col.index < len(row) && row[col.index] == nil {
				return all
			}
		}
	}
	return pk
}

// Conditions renders one parenthesized AND-joined predicate per row, using
// the predicate-column policy above. Each condition is independently usable
// as an OR-branch of a DELETE and is compared as opaque text when merging.
func Conditions(pkColumns, columns []string, rows [][]any) []string {
	predCols := predicateColumns(pkColumns, columns, rows)
	conditions := make([]string, 0, len(rows))
	for _, row := range rows {
		parts := make([]string, len(predCols))
		for i, col := range predCols {
			parts[i] = col.name + " " + PredicateValue(row[col.index])
		}
		conditions = append(conditions, "("+strings.Join(parts, " AND ")+")")
	}
	return conditions
}

// BuildDelete builds one DELETE statement for schema.table covering every
// given row. Rows are matched by their primary key values, falling back to
// the full row image when the key is absent or contains NULLs. Returns the
// empty string for an empty row set: an unconditional DELETE is never
// generated.
func BuildDelete(table, schema string, pkColumns, columns []string, rows [][]any) string {
	if len(rows) == 0 {
		return ""
	}
	return renderDelete(schema, table, Conditions(pkColumns, columns, rows))
}

// renderDelete lays out a DELETE with one OR-branch per line:
//
//	DELETE FROM schema.table
//	WHERE (cond1)
//	   OR (cond2);
func renderDelete(schema, table string, conditions []string) string {
	var b strings.Builder
	b.WriteString("DELETE FROM ")
	b.WriteString(schema)
	b.WriteByte('.')
	b.WriteString(table)
	b.WriteString("\nWHERE ")
	b.WriteString(strings.Join(conditions, "\n   OR "))
	b.WriteByte(';')
	return b.String()
}
