// Package quoting provides shared SQL quoting and escaping utilities.
package quoting

import "strings"

// DoubleQuote quotes a SQL identifier using double quotes (PostgreSQL, SQLite, ANSI SQL).
// Internal double quotes are escaped by doubling them.
func DoubleQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Backtick quotes a SQL identifier using backticks (MySQL).
// Internal backticks are escaped by doubling them.
func Backtick(s string) string {
	return "`" + strings.ReplaceAll(s, "`", "``") + "`"
}

// EscapeString escapes a string for use inside a single-quoted SQL literal
// by doubling single quotes. Generated statements are review text handed
// back to the editor, not wire-bound queries, so the escaping stays
// dialect-agnostic: backslashes pass through unchanged.
func EscapeString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// QuoteLiteral renders s as a single-quoted SQL string literal.
func QuoteLiteral(s string) string {
	return "'" + EscapeString(s) + "'"
}

// EscapeLikePattern escapes LIKE wildcard characters (%, _) in a string
// so they are matched literally. The backslash is used as the escape character.
func EscapeLikePattern(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
