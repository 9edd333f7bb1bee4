package dbx

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Dialect identifies the SQL flavour spoken by the connected database.
// Repositories write queries with '?' placeholders and let the dialect
// rebind them.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
	DialectMySQL    Dialect = "mysql"
)

// ParseDialect maps a database/sql driver name to its dialect.
func ParseDialect(driver string) (Dialect, error) {
	switch strings.ToLower(driver) {
	case "sqlite", "sqlite3":
		return DialectSQLite, nil
	case "pgx", "postgres", "postgresql":
		return DialectPostgres, nil
	case "mysql":
		return DialectMySQL, nil
	}
	return "", fmt.Errorf("unsupported database driver %q", driver)
}

// Rebind rewrites '?' placeholders into the dialect's native form.
// Only Postgres needs rewriting ($1, $2, ...). Question marks inside
// single-quoted literals are left alone.
func (d Dialect) Rebind(query string) string {
	if d != DialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	quoted := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			quoted = !quoted
			b.WriteByte(c)
		case c == '?' && !quoted:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// SupportsReturning reports whether INSERT ... RETURNING is available.
func (d Dialect) SupportsReturning() bool {
	return d == DialectPostgres || d == DialectSQLite
}

// InsertID executes an INSERT written with '?' placeholders and returns the
// generated primary key. It uses RETURNING id where the dialect has it and
// LastInsertId otherwise.
func (d Dialect) InsertID(ctx context.Context, db DBTX, query string, args ...any) (int64, error) {
	if d.SupportsReturning() {
		var id int64
		if err := db.QueryRowContext(ctx, d.Rebind(query+" RETURNING id"), args...).Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}

	res, err := db.ExecContext(ctx, d.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
