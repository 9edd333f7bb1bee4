// Package repomanager provides a concrete RepositoryManager for SQL
// databases, wiring together repository constructors and database
// migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/recordkeeper/internal/dbx"
	"github.com/dmitrijs2005/recordkeeper/internal/server/migrations"
	"github.com/dmitrijs2005/recordkeeper/internal/server/repositories/notes"
	"github.com/dmitrijs2005/recordkeeper/internal/server/repositories/records"
	"github.com/dmitrijs2005/recordkeeper/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

// SQLRepositoryManager vends repositories speaking one SQL dialect and
// exposes a schema migration hook.
type SQLRepositoryManager struct {
	dialect dbx.Dialect
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLRepository(db, m.dialect)
}

// Records returns a records.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Records(db dbx.DBTX) records.Repository {
	return records.NewSQLRepository(db, m.dialect)
}

// Notes returns a notes.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Notes(db dbx.DBTX) notes.Repository {
	return notes.NewSQLRepository(db, m.dialect)
}

// Dialect reports the SQL dialect of the vended repositories.
func (m *SQLRepositoryManager) Dialect() dbx.Dialect {
	return m.dialect
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// gooseDialects maps our dialect to goose's name and the embedded
// directory holding its migrations.
var gooseDialects = map[dbx.Dialect]struct{ name, dir string }{
	dbx.DialectSQLite:   {"sqlite3", "sqlite"},
	dbx.DialectPostgres: {"postgres", "postgres"},
	dbx.DialectMySQL:    {"mysql", "mysql"},
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	gd, ok := gooseDialects[m.dialect]
	if !ok {
		return fmt.Errorf("no migrations for dialect %q", m.dialect)
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(gd.name); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, gd.dir); err != nil {
		return err
	}
	return nil
}

// NewSQLRepositoryManager constructs a RepositoryManager for dialect.
func NewSQLRepositoryManager(dialect dbx.Dialect) (RepositoryManager, error) {
	if _, ok := gooseDialects[dialect]; !ok {
		return nil, fmt.Errorf("unsupported dialect %q", dialect)
	}
	return &SQLRepositoryManager{dialect: dialect}, nil
}
