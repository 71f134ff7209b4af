package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/avelaine/sqlscribe"
	"github.com/avelaine/sqlscribe/dml"
)

// cmdSelectFrom fetches a table's rows and snapshots them as the result grid
// the delete/update commands operate on.
func (s *Session) cmdSelectFrom(args string) error {
	if s.conn == nil {
		return errNotConnected
	}
	table := strings.TrimSpace(args)
	if table == "" {
		return errors.New("usage: select from <table>")
	}

	schema := s.conn.CurrentSchema()
	stmt := fmt.Sprintf("SELECT * FROM %s.%s", schema, table)
	start := time.Now()
	res, err := s.conn.Query(stmt)
	s.recordHistory(stmt, time.Since(start), res, err)
	if err != nil {
		return err
	}

	s.last = &resultContext{
		schema:  schema,
		table:   table,
		columns: res.Columns,
		pks:     s.conn.PrimaryKeys(table),
		rows:    res.Rows,
	}
	_, _ = fmt.Fprint(s.out, formatTable(res.Columns, res.Rows))
	if res.Message != "" {
		_, _ = fmt.Fprintf(s.out, "  %s\n", res.Message)
	}
	return nil
}

// cmdDeleteRows generates a DELETE for the given 1-based row numbers of the
// last fetched grid. When the statement under the cursor is a generated
// DELETE for the same table, the new conditions are merged into it in place;
// otherwise a fresh DELETE is appended to the buffer.
func (s *Session) cmdDeleteRows(args string) error {
	if s.last == nil {
		return errNoResult
	}

	var subset [][]any
	for _, tok := range strings.Split(args, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		n, err := strconv.Atoi(tok)
		if err != nil || n < 1 || n > len(s.last.rows) {
			return fmt.Errorf("row number %q out of range (1-%d)", tok, len(s.last.rows))
		}
		subset = append(subset, s.last.rows[n-1])
	}
	if len(subset) == 0 {
		return errors.New("usage: delete rows <n>[,<n>...]")
	}

	if st, ok := sqlscribe.ActiveStatement(s.buffer, s.cursor); ok {
		parsed := dml.ParseDelete(st.Text)
		if parsed != nil && parsed.Schema == s.last.schema && parsed.Table == s.last.table {
			conditions := dml.Conditions(s.last.pks, s.last.columns, subset)
			merged, ok := dml.MergeDelete(st.Text, conditions)
			if ok {
				s.buffer = s.buffer[:st.Start] + merged + s.buffer[st.End:]
				s.cursor = st.Start + len(merged)
				_, _ = fmt.Fprintf(s.out, "  %s\n", merged)
				return nil
			}
		}
	}

	stmt := dml.BuildDelete(s.last.table, s.last.schema, s.last.pks, s.last.columns, subset)
	s.appendToBuffer(stmt)
	_, _ = fmt.Fprintf(s.out, "  %s\n", stmt)
	return nil
}

// cmdUpdateRow generates an UPDATE for one 1-based row number of the last
// fetched grid and appends it to the buffer.
func (s *Session) cmdUpdateRow(args string) error {
	if s.last == nil {
		return errNoResult
	}

	lower := strings.ToLower(args)
	setIdx := strings.Index(lower, " set ")
	if setIdx < 0 {
		return errors.New("usage: update row <n> set <col> = <value>[, ...]")
	}
	n, err := strconv.Atoi(strings.TrimSpace(args[:setIdx]))
	if err != nil || n < 1 || n > len(s.last.rows) {
		return fmt.Errorf("row number out of range (1-%d)", len(s.last.rows))
	}

	edit := dml.RowEdit{RowIndex: n - 1, Original: s.last.rows[n-1]}
	for _, part := range splitAssignments(args[setIdx+5:]) {
		eq := strings.IndexByte(part, '=')
		if eq < 0 {
			return fmt.Errorf("expected <col> = <value>, got %q", strings.TrimSpace(part))
		}
		col := strings.TrimSpace(part[:eq])
		idx := columnIndex(s.last.columns, col)
		if idx < 0 {
			return fmt.Errorf("unknown column %q", col)
		}
		val, err := parseValue(strings.TrimSpace(part[eq+1:]))
		if err != nil {
			return err
		}
		edit.Changes = append(edit.Changes, dml.ColumnChange{Column: idx, Value: val})
	}
	if len(edit.Changes) == 0 {
		return errors.New("no assignments given")
	}

	stmt := dml.BuildUpdate(s.last.table, s.last.schema, s.last.pks, s.last.columns, []dml.RowEdit{edit})
	s.appendToBuffer(stmt)
	_, _ = fmt.Fprintf(s.out, "  %s\n", stmt)
	return nil
}

// splitAssignments splits a SET clause on commas outside single-quoted
// literals, so values like 'a, b' stay intact.
func splitAssignments(s string) []string {
	var parts []string
	var cur strings.Builder
	inQuote := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch == '\'':
			inQuote = !inQuote
			cur.WriteByte(ch)
		case ch == ',' && !inQuote:
			parts = append(parts, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(ch)
		}
	}
	if strings.TrimSpace(cur.String()) != "" {
		parts = append(parts, cur.String())
	}
	return parts
}

func columnIndex(columns []string, name string) int {
	for i, c := range columns {
		if c == name {
			return i
		}
	}
	return -1
}

// parseValue converts a typed token into a Go value for the DML builders.
func parseValue(token string) (any, error) {
	lower := strings.ToLower(token)
	if lower == "true" {
		return true, nil
	}
	if lower == "false" {
		return false, nil
	}
	if lower == "null" {
		return nil, nil
	}
	if strings.HasPrefix(token, "'") && strings.HasSuffix(token, "'") && len(token) >= 2 {
		inner := token[1 : len(token)-1]
		return strings.ReplaceAll(inner, "''", "'"), nil
	}
	if i, err := strconv.Atoi(token); err == nil {
		return i, nil
	}
	if f, err := strconv.ParseFloat(token, 64); err == nil {
		return f, nil
	}
	return nil, fmt.Errorf("cannot parse value: %s", token)
}
