package dml

import (
	"strings"
	"unicode"
)

// ParsedDelete is the structured form of a DELETE statement produced by
// BuildDelete. Conditions hold the exact parenthesized text of each
// OR-branch; they are deduplicated as opaque strings, so textual variants
// of the same predicate count as distinct.
type ParsedDelete struct {
	Schema     string
	Table      string
	Conditions []string
}

// ParseDelete parses text back into a ParsedDelete. Only the shape emitted
// by BuildDelete is recognized: case-insensitive DELETE FROM and WHERE
// keywords, a bare schema.table target (no identifier quoting), one or more
// parenthesized OR-branches, optional trailing semicolon, and surrounding
// whitespace. Anything else returns nil; callers fall back to building a
// fresh DELETE.
func ParseDelete(text string) *ParsedDelete {
	s := strings.TrimSpace(text)
	s = strings.TrimSuffix(s, ";")

	s, ok := expectKeyword(s, "DELETE")
	if !ok {
		return nil
	}
	s, ok = expectKeyword(s, "FROM")
	if !ok {
		return nil
	}

	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	cut := strings.IndexFunc(s, unicode.IsSpace)
	if cut < 0 {
		return nil
	}
	schema, table, ok := splitQualified(s[:cut])
	if !ok {
		return nil
	}

	s, ok = expectKeyword(s[cut:], "WHERE")
	if !ok {
		return nil
	}

	conditions, ok := scanConditions(s)
	if !ok || len(conditions) == 0 {
		return nil
	}
	return &ParsedDelete{Schema: schema, Table: table, Conditions: conditions}
}

// MergeDelete folds conditions into an existing generated DELETE, dropping
// any condition textually identical to one already present. Existing
// conditions keep their order and come first. Reports false when existing
// is not a recognizable generated DELETE. Merging is idempotent: repeating
// the call with the same conditions returns the same statement.
func MergeDelete(existing string, conditions []string) (string, bool) {
	parsed := ParseDelete(existing)
	if parsed == nil {
		return "", false
	}

	seen := make(map[string]struct{}, len(parsed.Conditions)+len(conditions))
	merged := make([]string, 0, len(parsed.Conditions)+len(conditions))
	add := func(c string) {
		if _, dup := seen[c]; dup {
			return
		}
		seen[c] = struct{}{}
		merged = append(merged, c)
	}
	for _, c := range parsed.Conditions {
		add(c)
	}
	for _, c := range conditions {
		add(c)
	}
	return renderDelete(parsed.Schema, parsed.Table, merged), true
}

// expectKeyword consumes leading whitespace and the given keyword
// (case-insensitive), requiring a whitespace or end-of-input boundary after
// it.
func expectKeyword(s, keyword string) (string, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	if len(s) < len(keyword) || !strings.EqualFold(s[:len(keyword)], keyword) {
		return "", false
	}
	rest := s[len(keyword):]
	if rest != "" && !unicode.IsSpace(rune(rest[0])) {
		return "", false
	}
	return rest, true
}

// splitQualified splits a bare schema.table target.
func splitQualified(s string) (schema, table string, ok bool) {
	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		return "", "", false
	}
	schema, table = s[:dot], s[dot+1:]
	if !isBareIdent(schema) || !isBareIdent(table) {
		return "", "", false
	}
	return schema, table, true
}

// isBareIdent reports whether s is an unquoted identifier word:
// a letter or underscore followed by letters, digits, or underscores.
func isBareIdent(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return len(s) > 0
}

// scanConditions extracts the top-level parenthesized groups of a WHERE
// clause body. Parenthesis depth is tracked explicitly so nested parens
// inside a condition (function calls) stay within their group, and
// single-quoted literals are opaque so quoted parens or keywords cannot
// derail the scan. Between groups only OR separators may appear.
func scanConditions(s string) ([]string, bool) {
	var conditions []string
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case unicode.IsSpace(rune(c)):
			i++
		case c == '(':
			end, ok := matchGroup(s, i)
			if !ok {
				return nil, false
			}
			conditions = append(conditions, s[i:end])
			i = end
		default:
			if len(conditions) == 0 || i+2 > len(s) || !strings.EqualFold(s[i:i+2], "OR") {
				return nil, false
			}
			i += 2
			if i < len(s) && !unicode.IsSpace(rune(s[i])) && s[i] != '(' {
				return nil, false
			}
		}
	}
	return conditions, true
}

// matchGroup returns the index one past the balanced parenthesized group
// opening at s[i].
func matchGroup(s string, i int) (int, bool) {
	depth := 0
	inQuote := false
	for j := i; j < len(s); j++ {
		c := s[j]
		if inQuote {
			if c == '\'' {
				if j+1 < len(s) && s[j+1] == '\'' {
					j++
					continue
				}
				inQuote = false
			}
			continue
		}
		switch c {
		case '\'':
			inQuote = true
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return j + 1, true
			}
		}
	}
	return 0, false
}
