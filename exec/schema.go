package exec

import "fmt"

// LoadSchema refreshes the table list. Column and key lookups are cached
// lazily per table; this only primes the table names used for completion.
func (c *Conn) LoadSchema() error {
	var query string
	switch c.engine {
	case "postgres":
		query = "SELECT table_name FROM information_schema.tables WHERE table_schema = 'public' ORDER BY table_name"
	case "mysql":
		query = "SELECT table_name FROM information_schema.tables WHERE table_schema = DATABASE() ORDER BY table_name"
	case "sqlite":
		query = "SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name"
	default:
		return fmt.Errorf("unsupported engine: %s", c.engine)
	}
	tables, err := c.queryStringColumn(query)
	if err != nil {
		return err
	}
	c.schema.tables = tables
	c.schema.columns = make(map[string][]string)
	c.schema.pks = make(map[string][]string)
	return nil
}

// Tables returns the cached table names. Call LoadSchema first.
func (c *Conn) Tables() []string {
	return c.schema.tables
}

// Columns returns the ordered column names of table, caching the lookup.
// Returns nil when introspection fails; completion and generation degrade
// gracefully.
func (c *Conn) Columns(table string) []string {
	if cols, ok := c.schema.columns[table]; ok {
		return cols
	}
	var query string
	switch c.engine {
	case "postgres":
		query = "SELECT column_name FROM information_schema.columns WHERE table_schema = 'public' AND table_name = $1 ORDER BY ordinal_position"
	case "mysql":
		query = "SELECT column_name FROM information_schema.columns WHERE table_schema = DATABASE() AND table_name = ? ORDER BY ordinal_position"
	case "sqlite":
		query = "SELECT name FROM pragma_table_info(?)"
	default:
		return nil
	}
	cols, err := c.queryStringColumn(query, table)
	if err != nil {
		return nil
	}
	c.schema.columns[table] = cols
	return cols
}

// PrimaryKeys returns the ordered primary-key column names of table, caching
// the lookup. An empty slice means no declared key: the DML builders then
// fall back to full-row predicates.
func (c *Conn) PrimaryKeys(table string) []string {
	if pks, ok := c.schema.pks[table]; ok {
		return pks
	}
	var query string
	switch c.engine {
	case "postgres":
		query = `SELECT kcu.column_name
			FROM information_schema.table_constraints tc
			JOIN information_schema.key_column_usage kcu
			  ON kcu.constraint_name = tc.constraint_name
			 AND kcu.table_schema = tc.table_schema
			WHERE tc.constraint_type = 'PRIMARY KEY'
			  AND tc.table_schema = 'public'
			  AND tc.table_name = $1
			ORDER BY kcu.ordinal_position`
	case "mysql":
		query = `SELECT column_name
			FROM information_schema.key_column_usage
			WHERE table_schema = DATABASE()
			  AND table_name = ?
			  AND constraint_name = 'PRIMARY'
			ORDER BY ordinal_position`
	case "sqlite":
		query = "SELECT name FROM pragma_table_info(?) WHERE pk > 0 ORDER BY pk"
	default:
		return nil
	}
	pks, err := c.queryStringColumn(query, table)
	if err != nil {
		return nil
	}
	c.schema.pks[table] = pks
	return pks
}

// CurrentSchema returns the schema name used to qualify generated DML:
// "public" for postgres, "main" for sqlite, and the current database for
// mysql (empty when none is selected).
func (c *Conn) CurrentSchema() string {
	switch c.engine {
	case "mysql":
		if c.schema.database == "" {
			var db *string
			if err := c.db.QueryRow("SELECT DATABASE()").Scan(&db); err == nil && db != nil {
				c.schema.database = *db
			}
		}
		return c.schema.database
	case "sqlite":
		return "main"
	default:
		return "public"
	}
}

func (c *Conn) queryStringColumn(query string, params ...any) ([]string, error) {
	rows, err := c.db.Query(query, params...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var result []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
