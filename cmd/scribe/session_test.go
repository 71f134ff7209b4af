package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/avelaine/sqlscribe/history"
	"github.com/avelaine/sqlscribe/internal/testutil"
)

func newTestSession(t *testing.T) (*Session, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	sess := NewSession("", t.TempDir(), nil)
	sess.out = out
	return sess, out
}

// mustExec runs commands, failing the test on the first error.
func mustExec(t *testing.T, s *Session, commands ...string) {
	t.Helper()
	for _, cmd := range commands {
		if err := s.Execute(cmd); err != nil {
			t.Fatalf("command %q failed: %v", cmd, err)
		}
	}
}

func connectSQLite(t *testing.T, s *Session) {
	t.Helper()
	mustExec(t, s, "connect "+filepath.Join(t.TempDir(), "test.db"))
	t.Cleanup(func() {
		if s.conn != nil {
			_ = s.conn.Close()
		}
	})
}

func TestBufferCommands(t *testing.T) {
	t.Parallel()
	sess, out := newTestSession(t)

	mustExec(t, sess,
		"append SELECT 1;",
		"append SELECT 2;",
	)
	testutil.AssertEqual(t, sess.buffer, "SELECT 1;\nSELECT 2;")
	testutil.AssertEqual(t, sess.cursor, len(sess.buffer))

	out.Reset()
	mustExec(t, sess, "statements")
	if !strings.Contains(out.String(), "*[2]") {
		t.Errorf("second statement should be active:\n%s", out.String())
	}

	out.Reset()
	mustExec(t, sess, "cursor 3", "statements")
	if !strings.Contains(out.String(), "*[1]") {
		t.Errorf("first statement should be active after moving the cursor:\n%s", out.String())
	}

	mustExec(t, sess, "clear")
	testutil.AssertEqual(t, sess.buffer, "")
	testutil.AssertEqual(t, sess.cursor, 0)
}

func TestUnknownCommand(t *testing.T) {
	t.Parallel()
	sess, _ := newTestSession(t)
	testutil.AssertError(t, sess.Execute("frobnicate now"))
}

func TestRunRequiresConnection(t *testing.T) {
	t.Parallel()
	sess, _ := newTestSession(t)
	mustExec(t, sess, "append SELECT 1;")
	testutil.AssertError(t, sess.Execute("run"))
}

func TestRunAndSelectFrom(t *testing.T) {
	t.Parallel()
	sess, out := newTestSession(t)
	connectSQLite(t, sess)

	mustExec(t, sess,
		"append CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT);",
		"run",
		"clear",
		"append INSERT INTO users (id, name) VALUES (1, 'Alice'), (2, NULL);",
		"run",
		"clear",
	)

	out.Reset()
	mustExec(t, sess, "select from users")
	if !strings.Contains(out.String(), "Alice") || !strings.Contains(out.String(), "(2 rows)") {
		t.Errorf("grid output:\n%s", out.String())
	}

	if sess.last == nil {
		t.Fatal("select from should snapshot the result grid")
	}
	testutil.AssertEqual(t, sess.last.schema, "main")
	testutil.AssertEqual(t, sess.last.table, "users")
	if len(sess.last.pks) != 1 || sess.last.pks[0] != "id" {
		t.Errorf("pks: %#v", sess.last.pks)
	}
}

func TestDeleteRowsMergesIntoActiveDelete(t *testing.T) {
	t.Parallel()
	sess, out := newTestSession(t)
	connectSQLite(t, sess)

	mustExec(t, sess,
		"append CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT);",
		"run",
		"clear",
		"append INSERT INTO users (id, name) VALUES (1, 'Alice'), (2, 'Carol');",
		"run",
		"clear",
		"select from users",
	)

	mustExec(t, sess, "delete rows 1")
	testutil.AssertEqual(t, sess.buffer, "DELETE FROM main.users\nWHERE (id = 1);")

	mustExec(t, sess, "delete rows 2")
	want := "DELETE FROM main.users\nWHERE (id = 1)\n   OR (id = 2);"
	testutil.AssertEqual(t, sess.buffer, want)

	// Merging the same row again is a no-op.
	mustExec(t, sess, "delete rows 2")
	testutil.AssertEqual(t, sess.buffer, want)

	out.Reset()
	mustExec(t, sess, "run", "select from users")
	if !strings.Contains(out.String(), "(0 rows)") {
		t.Errorf("both rows should be deleted:\n%s", out.String())
	}
}

func TestDeleteRowsAppendsWhenBufferUnrelated(t *testing.T) {
	t.Parallel()
	sess, _ := newTestSession(t)
	connectSQLite(t, sess)

	mustExec(t, sess,
		"append CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT);",
		"run",
		"clear",
		"append INSERT INTO users (id, name) VALUES (1, 'Alice');",
		"run",
		"select from users",
		"delete rows 1",
	)
	if !strings.HasSuffix(sess.buffer, "DELETE FROM main.users\nWHERE (id = 1);") {
		t.Errorf("DELETE should be appended after the INSERT:\n%s", sess.buffer)
	}
	if !strings.HasPrefix(sess.buffer, "INSERT INTO users") {
		t.Errorf("existing buffer content should be kept:\n%s", sess.buffer)
	}
}

func TestUpdateRow(t *testing.T) {
	t.Parallel()
	sess, out := newTestSession(t)
	connectSQLite(t, sess)

	mustExec(t, sess,
		"append CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT);",
		"run",
		"clear",
		"append INSERT INTO users (id, name) VALUES (1, 'Alice');",
		"run",
		"clear",
		"select from users",
		"update row 1 set name = 'Bob'",
	)
	testutil.AssertEqual(t, sess.buffer, "UPDATE main.users SET name = 'Bob' WHERE id = 1;")

	out.Reset()
	mustExec(t, sess, "run", "select from users")
	if !strings.Contains(out.String(), "Bob") {
		t.Errorf("row should be renamed:\n%s", out.String())
	}

	testutil.AssertError(t, sess.Execute("update row 9 set name = 'x'"))
	testutil.AssertError(t, sess.Execute("update row 1 set nope = 'x'"))
}

func TestSaveAndUseConnection(t *testing.T) {
	t.Parallel()
	sess, out := newTestSession(t)

	path := filepath.Join(t.TempDir(), "test.db")
	mustExec(t, sess,
		"connect "+path,
		"save connection local",
		"disconnect",
		"use local",
	)
	t.Cleanup(func() {
		if sess.conn != nil {
			_ = sess.conn.Close()
		}
	})

	if sess.conn == nil {
		t.Fatal("use should reconnect")
	}
	if sess.connID == "" {
		t.Error("use should adopt the saved connection's ID")
	}

	out.Reset()
	mustExec(t, sess, "connections")
	if !strings.Contains(out.String(), "local") {
		t.Errorf("saved connection should be listed:\n%s", out.String())
	}

	testutil.AssertError(t, sess.Execute("use nosuch"))
}

func TestHistoryRecording(t *testing.T) {
	t.Parallel()
	sess, _ := newTestSession(t)
	connectSQLite(t, sess)

	h, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	testutil.AssertNoError(t, err)
	t.Cleanup(func() { _ = h.Close() })
	sess.history = h

	mustExec(t, sess,
		"append CREATE TABLE t (x INTEGER);",
		"run",
	)

	entries, err := h.Search(history.Filter{})
	testutil.AssertNoError(t, err)
	if len(entries) != 1 || !entries[0].Success {
		t.Fatalf("history: %#v", entries)
	}
	testutil.AssertEqual(t, entries[0].Query, "CREATE TABLE t (x INTEGER);")
}

func TestParseValue(t *testing.T) {
	t.Parallel()
	tests := []struct {
		token string
		want  any
	}{
		{"true", true},
		{"false", false},
		{"null", nil},
		{"'hello'", "hello"},
		{"'it''s'", "it's"},
		{"42", 42},
		{"4.5", 4.5},
	}
	for _, tt := range tests {
		got, err := parseValue(tt.token)
		if err != nil {
			t.Errorf("parseValue(%q): %v", tt.token, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseValue(%q) = %#v, want %#v", tt.token, got, tt.want)
		}
	}

	if _, err := parseValue("bareword"); err == nil {
		t.Error("bare words should not parse")
	}
}

func TestSplitAssignments(t *testing.T) {
	t.Parallel()
	parts := splitAssignments("name = 'a, b', age = 3")
	if len(parts) != 2 {
		t.Fatalf("parts: %#v", parts)
	}
	testutil.AssertEqual(t, strings.TrimSpace(parts[0]), "name = 'a, b'")
	testutil.AssertEqual(t, strings.TrimSpace(parts[1]), "age = 3")
}
