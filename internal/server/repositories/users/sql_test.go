package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/recordkeeper/internal/common"
	"github.com/dmitrijs2005/recordkeeper/internal/dbx"
	"github.com/dmitrijs2005/recordkeeper/internal/server/models"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T, dialect dbx.Dialect) (*SQLRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewSQLRepository(db, dialect), mock, func() { _ = db.Close() }
}

func TestCreate_Returning(t *testing.T) {
	repo, mock, done := newRepoWithMock(t, dbx.DialectPostgres)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users (username, password_hash) VALUES ($1, $2) RETURNING id`)).
		WithArgs("alice", "hash").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	u, err := repo.Create(context.Background(), &models.User{UserName: "alice", PasswordHash: "hash"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), u.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_LastInsertID(t *testing.T) {
	repo, mock, done := newRepoWithMock(t, dbx.DialectMySQL)
	defer done()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users (username, password_hash) VALUES (?, ?)`)).
		WithArgs("bob", "hash").
		WillReturnResult(sqlmock.NewResult(3, 1))

	u, err := repo.Create(context.Background(), &models.User{UserName: "bob", PasswordHash: "hash"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), u.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateIsConflict(t *testing.T) {
	repo, mock, done := newRepoWithMock(t, dbx.DialectMySQL)
	defer done()

	mock.ExpectExec(`INSERT INTO users`).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	_, err := repo.Create(context.Background(), &models.User{UserName: "bob", PasswordHash: "hash"})
	assert.ErrorIs(t, err, common.ErrorConflict)
}

func TestCreate_OtherErrorWrapped(t *testing.T) {
	repo, mock, done := newRepoWithMock(t, dbx.DialectMySQL)
	defer done()

	mock.ExpectExec(`INSERT INTO users`).WillReturnError(errors.New("boom"))

	_, err := repo.Create(context.Background(), &models.User{UserName: "bob"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error")
	assert.NotErrorIs(t, err, common.ErrorConflict)
}

func TestGetUserByLogin(t *testing.T) {
	repo, mock, done := newRepoWithMock(t, dbx.DialectSQLite)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, username, password_hash FROM users WHERE username = ?`)).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash"}).AddRow(int64(1), "alice", "h"))

	u, err := repo.GetUserByLogin(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, &models.User{ID: 1, UserName: "alice", PasswordHash: "h"}, u)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, done := newRepoWithMock(t, dbx.DialectPostgres)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE id = $1`)).
		WithArgs(int64(9)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 9)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestList(t *testing.T) {
	repo, mock, done := newRepoWithMock(t, dbx.DialectSQLite)
	defer done()

	mock.ExpectQuery(`SELECT id, username, password_hash FROM users ORDER BY id`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash"}).
			AddRow(int64(1), "a", "x").
			AddRow(int64(2), "b", "y"))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[1].UserName)
}

func TestList_Empty(t *testing.T) {
	repo, mock, done := newRepoWithMock(t, dbx.DialectSQLite)
	defer done()

	mock.ExpectQuery(`FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash"}))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{"deleted", 1, nil},
		{"missing", 0, common.ErrorNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, done := newRepoWithMock(t, dbx.DialectPostgres)
			defer done()

			mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM users WHERE id = $1`)).
				WithArgs(int64(4)).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			err := repo.Delete(context.Background(), 4)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
