package main

import (
	"sort"
	"strings"

	"github.com/avelaine/sqlscribe/store"
)

// completionContext describes what kind of completion is appropriate.
type completionContext int

const (
	contextCommand        completionContext = iota // start of line or partial command
	contextTableName                               // after select from
	contextConnectionName                          // after use
)

// scribeCompleter implements readline's AutoCompleter interface.
type scribeCompleter struct {
	sess *Session
}

// Do returns completion candidates for the current line/cursor position.
func (c *scribeCompleter) Do(line []rune, pos int) (newLine [][]rune, length int) {
	lineStr := string(line[:pos])
	ctx, prefix := c.parseContext(lineStr)

	var candidates []string
	switch ctx {
	case contextCommand:
		candidates = filterPrefix(c.sess.commandNames(), prefix)
	case contextTableName:
		candidates = c.tableNames(prefix)
	case contextConnectionName:
		candidates = c.connectionNames(prefix)
	}

	for _, cand := range candidates {
		newLine = append(newLine, []rune(cand[len(prefix):]+" "))
	}
	length = len([]rune(prefix))
	return
}

// parseContext examines the line up to the cursor and determines what kind
// of completion is needed and the prefix being typed.
func (c *scribeCompleter) parseContext(line string) (completionContext, string) {
	lower := strings.ToLower(line)
	for _, cmd := range c.sess.commands {
		if !strings.HasSuffix(cmd.prefix, " ") {
			continue // exact-match commands have no arg completion
		}
		if strings.HasPrefix(lower, cmd.prefix) && cmd.completer != nil {
			return cmd.completer(line[len(cmd.prefix):])
		}
	}
	return contextCommand, strings.TrimSpace(line)
}

func (c *scribeCompleter) tableNames(prefix string) []string {
	if c.sess.conn == nil {
		return nil
	}
	names := append([]string(nil), c.sess.conn.Tables()...)
	sort.Strings(names)
	return filterPrefix(names, prefix)
}

func (c *scribeCompleter) connectionNames(prefix string) []string {
	conns, err := store.LoadConnections(c.sess.configDir)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(conns))
	for _, conn := range conns {
		names = append(names, conn.Name)
	}
	sort.Strings(names)
	return filterPrefix(names, prefix)
}

// filterPrefix returns items that start with prefix (case-insensitive).
func filterPrefix(items []string, prefix string) []string {
	if prefix == "" {
		result := make([]string, len(items))
		copy(result, items)
		return result
	}
	lowerPrefix := strings.ToLower(prefix)
	var result []string
	for _, item := range items {
		if strings.HasPrefix(strings.ToLower(item), lowerPrefix) {
			result = append(result, item)
		}
	}
	return result
}
