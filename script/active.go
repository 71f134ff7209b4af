package script

// Active returns the first statement whose span contains cursor. Both
// boundaries are inclusive, so a cursor sitting exactly on a terminating
// semicolon still selects that statement. Reports false when no statement
// contains the cursor; callers typically fall back to treating the whole
// trimmed buffer as one statement.
func Active(statements []Statement, cursor int) (Statement, bool) {
	for _, s := range statements {
		if cursor >= s.Start && cursor <= s.End {
			return s, true
		}
	}
	return Statement{}, false
}
