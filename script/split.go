package script

import "strings"

// quoteState tracks the active quoting context during a scan. At most one
// context is active at a time; dollar-quote tags do not nest.
type quoteState int

const (
	stateNormal quoteState = iota
	stateSingleQuote
	stateDollarQuote
)

// Split scans buffer left to right and returns its statements in order.
// Semicolons inside single-quoted or dollar-quoted literals do not split.
// An unterminated quote at the end of the buffer is not an error: the final
// statement simply closes at EOF. Empty and whitespace-only segments produce
// no statements.
//
// The scan tracks offsets into buffer and slices only when a statement is
// emitted, so it allocates nothing per character and runs in O(n).
func Split(buffer string) []Statement {
	var stmts []Statement
	state := stateNormal
	tag := "" // active dollar-quote delimiter, including both $ markers
	start := 0

	for i := 0; i < len(buffer); {
		ch := buffer[i]
		switch state {
		case stateNormal:
			switch ch {
			case '$':
				if t, ok := dollarTag(buffer, i); ok {
					tag = t
					state = stateDollarQuote
					i += len(t)
					continue
				}
				i++
			case '\'':
				state = stateSingleQuote
				i++
			case ';':
				if s, ok := statementAt(buffer, start, i+1); ok {
					stmts = append(stmts, s)
				}
				start = i + 1
				i++
			default:
				i++
			}
		case stateSingleQuote:
			if ch == '\'' {
				if i+1 < len(buffer) && buffer[i+1] == '\'' {
					// Escaped quote: both characters are literal content.
					i += 2
					continue
				}
				state = stateNormal
			}
			i++
		case stateDollarQuote:
			if ch == '$' && strings.HasPrefix(buffer[i:], tag) {
				state = stateNormal
				i += len(tag)
				continue
			}
			i++
		}
	}

	if s, ok := statementAt(buffer, start, len(buffer)); ok {
		stmts = append(stmts, s)
	}
	return stmts
}

// statementAt builds the statement spanning buffer[start:end], reporting
// false when the span holds no content beyond whitespace and a semicolon.
func statementAt(buffer string, start, end int) (Statement, bool) {
	text := strings.TrimSpace(buffer[start:end])
	if text == "" || text == ";" {
		return Statement{}, false
	}
	return Statement{Text: text, Start: start, End: end}, true
}

// dollarTag returns the dollar-quote delimiter opening at buffer[i]
// (e.g. "$$" or "$body$"): a $, zero or more tag characters, and another $.
func dollarTag(buffer string, i int) (string, bool) {
	j := i + 1
	for j < len(buffer) && isTagChar(buffer[j]) {
		j++
	}
	if j < len(buffer) && buffer[j] == '$' {
		return buffer[i : j+1], true
	}
	return "", false
}

func isTagChar(c byte) bool {
	return c == '_' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9')
}
