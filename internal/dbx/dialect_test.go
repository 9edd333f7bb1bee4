package dbx

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDialect(t *testing.T) {
	tests := []struct {
		driver  string
		want    Dialect
		wantErr bool
	}{
		{driver: "sqlite", want: DialectSQLite},
		{driver: "sqlite3", want: DialectSQLite},
		{driver: "pgx", want: DialectPostgres},
		{driver: "Postgres", want: DialectPostgres},
		{driver: "mysql", want: DialectMySQL},
		{driver: "oracle", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			got, err := ParseDialect(tt.driver)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRebind(t *testing.T) {
	q := `SELECT id FROM notas WHERE title = ? AND body <> '?' AND id > ?`

	assert.Equal(t, q, DialectSQLite.Rebind(q))
	assert.Equal(t, q, DialectMySQL.Rebind(q))
	assert.Equal(t,
		`SELECT id FROM notas WHERE title = $1 AND body <> '?' AND id > $2`,
		DialectPostgres.Rebind(q))
}

func TestInsertID_Returning(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO users (username) VALUES ($1) RETURNING id`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	id, err := DialectPostgres.InsertID(context.Background(), db, `INSERT INTO users (username) VALUES (?)`, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertID_LastInsertID(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO users (username) VALUES (?)`).
		WithArgs("alice").
		WillReturnResult(sqlmock.NewResult(11, 1))

	id, err := DialectMySQL.InsertID(context.Background(), db, `INSERT INTO users (username) VALUES (?)`, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}
