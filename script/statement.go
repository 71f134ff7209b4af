// Package script splits multi-statement SQL buffers into individual
// statements and resolves the statement under an editor cursor.
//
// The splitter is a best-effort tokenizer, not a SQL parser: it understands
// just enough quoting (single quotes with '' escapes and PostgreSQL-style
// dollar quotes) to know which semicolons are real statement boundaries.
package script

// Statement is one semicolon-delimited unit of SQL text plus its source
// offsets. Text is trimmed and includes the terminating semicolon when one
// was present; Start and End index into the original buffer (Start
// inclusive, End one past the terminating semicolon or the buffer length).
type Statement struct {
	Text  string
	Start int
	End   int
}
