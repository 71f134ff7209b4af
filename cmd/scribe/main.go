// Interactive shell for the sqlscribe engine: edit a multi-statement SQL
// buffer, run the statement under the cursor, and turn result-grid rows
// into DELETE and UPDATE statements.
//
// Configuration (env vars):
//
//	SCRIBE_ENGINE=postgres|mysql|sqlite  (optional, inferred from DSN if absent)
//	DATABASE_URL=<dsn>                    (optional, auto-connects if set)
//
// Usage:
//
//	go run ./cmd/scribe
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ergochat/readline"

	"github.com/avelaine/sqlscribe/history"
)

func main() {
	rl, err := readline.NewFromConfig(&readline.Config{
		Prompt:          "scribe> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "readline init: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = rl.Close() }()

	configDir := defaultConfigDir()
	sess := NewSession(engineFromEnv(), configDir, rl)

	comp := &scribeCompleter{sess: sess}
	_ = rl.SetConfig(&readline.Config{
		Prompt:          "scribe> ",
		HistoryFile:     filepath.Join(configDir, "readline_history"),
		HistoryLimit:    500,
		AutoComplete:    comp,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})

	if h, err := history.Open(filepath.Join(configDir, "history.db")); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: query history unavailable: %v\n", err)
	} else {
		sess.history = h
		defer func() { _ = h.Close() }()
	}

	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		fmt.Println("Connecting via DATABASE_URL...")
		if err := sess.Execute("connect " + dsn); err != nil {
			fmt.Fprintf(os.Stderr, "  Warning: DATABASE_URL connect failed: %v\n", err)
		}
	}

	fmt.Println()
	fmt.Println("sqlscribe — type 'help' for commands, 'exit' to quit")
	fmt.Println()

	for {
		line, err := rl.ReadLine()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) || err != nil {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		if lower == "exit" || lower == "quit" {
			break
		}
		if err := sess.Execute(line); err != nil {
			fmt.Fprintf(os.Stderr, "  Error: %v\n", err)
		}
	}
	if sess.conn != nil {
		_ = sess.conn.Close()
	}
	fmt.Println()
}

// engineFromEnv reads SCRIBE_ENGINE, returning "" (infer from the DSN) when
// it is unset or invalid.
func engineFromEnv() string {
	engine := strings.TrimSpace(strings.ToLower(os.Getenv("SCRIBE_ENGINE")))
	switch engine {
	case "":
		return ""
	case "postgres", "mysql", "sqlite":
		return engine
	}
	fmt.Fprintf(os.Stderr, "Warning: invalid SCRIBE_ENGINE=%q, inferring from DSN instead\n", engine)
	return ""
}

func defaultConfigDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	dir := filepath.Join(base, "sqlscribe")
	_ = os.MkdirAll(dir, 0o700)
	return dir
}
