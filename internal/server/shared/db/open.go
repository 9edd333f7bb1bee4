// Package db opens the configured SQL database.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/recordkeeper/internal/dbx"
	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// driverNames maps a dialect to the database/sql driver registered for it.
var driverNames = map[dbx.Dialect]string{
	dbx.DialectSQLite:   "sqlite",
	dbx.DialectPostgres: "pgx",
	dbx.DialectMySQL:    "mysql",
}

// Open connects to dsn with the named driver and verifies the connection.
// SQLite is limited to a single open connection.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, dbx.Dialect, error) {
	dialect, err := dbx.ParseDialect(driver)
	if err != nil {
		return nil, "", err
	}

	if dialect == dbx.DialectMySQL {
		if dsn, err = mysqlDSN(dsn); err != nil {
			return nil, "", err
		}
	}

	db, err := sql.Open(driverNames[dialect], dsn)
	if err != nil {
		return nil, "", fmt.Errorf("db open error: %w", err)
	}

	if dialect == dbx.DialectSQLite {
		db.SetMaxOpenConns(1)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, "", fmt.Errorf("db ping error: %w", err)
	}

	return db, dialect, nil
}

// mysqlDSN forces parseTime so DATE and DATETIME columns scan into time.Time.
func mysqlDSN(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("mysql dsn: %w", err)
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	return cfg.FormatDSN(), nil
}
