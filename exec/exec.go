// Package exec runs SQL statements against a connected database and
// introspects its schema. It wraps database/sql over the postgres, mysql,
// and sqlite drivers and returns results in the grid shape the script
// engine's DML builders consume (columns, rows, row count).
package exec

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/avelaine/sqlscribe/internal/quoting"
)

var driverName = map[string]string{
	"postgres": "pgx",
	"mysql":    "mysql",
	"sqlite":   "sqlite",
}

// MaxRows caps the number of rows buffered from a single query.
const MaxRows = 1000

// Result is the outcome of one executed statement. Rows hold nil for NULL
// cells; text and blob cells arrive as strings.
type Result struct {
	Columns  []string
	Rows     [][]any
	RowCount int
	Message  string
}

type schemaCache struct {
	tables   []string
	columns  map[string][]string
	pks      map[string][]string
	database string // mysql current database, resolved lazily
}

// Conn is a live database connection plus a best-effort schema cache used
// for autocomplete and DML generation.
type Conn struct {
	db     *sql.DB
	engine string
	dsn    string
	schema schemaCache
}

// Open connects to the database behind dsn using the driver registered for
// engine ("postgres", "mysql", or "sqlite") and verifies the connection
// with a ping.
func Open(engine, dsn string) (*Conn, error) {
	driver, ok := driverName[engine]
	if !ok {
		return nil, fmt.Errorf("no driver for engine %q", engine)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	c := &Conn{db: db, engine: engine, dsn: dsn}
	c.schema.columns = make(map[string][]string)
	c.schema.pks = make(map[string][]string)
	return c, nil
}

// Engine returns the engine name the connection was opened with.
func (c *Conn) Engine() string { return c.engine }

// DSN returns the raw DSN. Use SanitizeDSN before displaying it.
func (c *Conn) DSN() string { return c.dsn }

// Close releases the underlying connection pool.
func (c *Conn) Close() error { return c.db.Close() }

// Run executes stmt, dispatching to Query or Exec by its leading keyword.
func (c *Conn) Run(stmt string) (*Result, error) {
	if ReturnsRows(stmt) {
		return c.Query(stmt)
	}
	return c.Exec(stmt)
}

// Query runs a statement that produces a result set. At most MaxRows rows
// are buffered; truncation is noted in the result message.
func (c *Conn) Query(stmt string) (*Result, error) {
	rows, err := c.db.Query(stmt)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}

	result := &Result{Columns: columns}
	truncated := false
	for rows.Next() {
		if len(result.Rows) >= MaxRows {
			truncated = true
			break
		}
		vals := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		for i, v := range vals {
			if b, ok := v.([]byte); ok {
				vals[i] = string(b)
			}
		}
		result.Rows = append(result.Rows, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	result.RowCount = len(result.Rows)
	if truncated {
		result.Message = fmt.Sprintf("truncated at %d rows", MaxRows)
	}
	return result, nil
}

// Exec runs a statement that does not produce a result set.
func (c *Conn) Exec(stmt string) (*Result, error) {
	res, err := c.db.Exec(stmt)
	if err != nil {
		return nil, fmt.Errorf("exec: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		// Some drivers cannot report this; the statement still succeeded.
		return &Result{Message: "ok"}, nil
	}
	return &Result{RowCount: int(n), Message: fmt.Sprintf("%d row(s) affected", n)}, nil
}

// ReturnsRows reports whether stmt is expected to produce a result set,
// judged by its leading keyword.
func ReturnsRows(stmt string) bool {
	fields := strings.Fields(stmt)
	if len(fields) == 0 {
		return false
	}
	switch strings.ToLower(fields[0]) {
	case "select", "with", "show", "explain", "pragma", "values", "table":
		return true
	}
	return false
}

// QuoteIdent quotes an identifier for the connection's dialect.
func (c *Conn) QuoteIdent(name string) string {
	if c.engine == "mysql" {
		return quoting.Backtick(name)
	}
	return quoting.DoubleQuote(name)
}
