package db

import (
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/recordkeeper/internal/dbx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_SQLite(t *testing.T) {
	db, dialect, err := Open(context.Background(), "sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, dbx.DialectSQLite, dialect)
	assert.Equal(t, 1, db.Stats().MaxOpenConnections)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, _, err := Open(context.Background(), "oracle", "x")
	assert.Error(t, err)
}

func TestMySQLDSN_ForcesParseTime(t *testing.T) {
	dsn, err := mysqlDSN("user:pw@tcp(localhost:3306)/app")
	require.NoError(t, err)
	assert.True(t, strings.Contains(dsn, "parseTime=true"), dsn)

	_, err = mysqlDSN("::not a dsn")
	assert.Error(t, err)
}
