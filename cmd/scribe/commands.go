package main

import (
	"sort"
	"strings"
)

// commandEntry maps a shell prefix to its handler and optional tab-completer.
type commandEntry struct {
	prefix    string
	handler   func(args string) error
	completer func(args string) (completionContext, string) // nil = no arg completion
}

// initCommands builds the command registry and sorts by prefix length
// descending so longest prefixes match first.
func (s *Session) initCommands() {
	s.commands = []commandEntry{
		// --- buffer ---
		{prefix: "load ", handler: func(a string) error { return s.cmdLoad(a) }},
		{prefix: "append ", handler: func(a string) error { return s.cmdAppend(a) }},
		{prefix: "show", handler: func(_ string) error { return s.cmdShow() }},
		{prefix: "clear", handler: func(_ string) error { return s.cmdClear() }},
		{prefix: "cursor ", handler: func(a string) error { return s.cmdCursor(a) }},
		{prefix: "statements", handler: func(_ string) error { return s.cmdStatements() }},

		// --- execution ---
		{prefix: "run all", handler: func(_ string) error { return s.cmdRunAll() }},
		{prefix: "run", handler: func(_ string) error { return s.cmdRun() }},

		// --- result grid / DML generation ---
		{prefix: "select from ", handler: func(a string) error { return s.cmdSelectFrom(a) }, completer: completeTableArgs},
		{prefix: "delete rows ", handler: func(a string) error { return s.cmdDeleteRows(a) }},
		{prefix: "update row ", handler: func(a string) error { return s.cmdUpdateRow(a) }},

		// --- connectivity ---
		{prefix: "connect ", handler: func(a string) error { return s.cmdConnect(a) }},
		{prefix: "connect", handler: func(_ string) error { return s.cmdConnect("") }},
		{prefix: "disconnect", handler: func(_ string) error { return s.cmdDisconnect() }},
		{prefix: "save connection ", handler: func(a string) error { return s.cmdSaveConnection(a) }},
		{prefix: "connections", handler: func(_ string) error { return s.cmdConnections() }},
		{prefix: "use ", handler: func(a string) error { return s.cmdUse(a) }, completer: completeConnectionArgs},

		// --- history ---
		{prefix: "history clear", handler: func(_ string) error { return s.cmdHistoryClear() }},
		{prefix: "history ", handler: func(a string) error { return s.cmdHistory(a) }},
		{prefix: "history", handler: func(_ string) error { return s.cmdHistory("") }},

		{prefix: "help", handler: func(_ string) error { s.cmdHelp(); return nil }},
	}

	sort.Slice(s.commands, func(i, j int) bool {
		return len(s.commands[i].prefix) > len(s.commands[j].prefix)
	})
}

// commandNames derives the command name list from the registry for tab
// completion.
func (s *Session) commandNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, cmd := range s.commands {
		name := strings.TrimRight(cmd.prefix, " ")
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	// exit/quit are handled by the shell loop, not Execute().
	for _, extra := range []string{"exit", "quit"} {
		if !seen[extra] {
			names = append(names, extra)
		}
	}
	sort.Strings(names)
	return names
}

// completeTableArgs completes table names for 'select from'.
func completeTableArgs(args string) (completionContext, string) {
	return contextTableName, strings.TrimSpace(args)
}

// completeConnectionArgs completes saved connection names for 'use'.
func completeConnectionArgs(args string) (completionContext, string) {
	return contextConnectionName, strings.TrimSpace(args)
}
