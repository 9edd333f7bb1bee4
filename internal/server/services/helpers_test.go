package services

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/recordkeeper/internal/dbx"
	"github.com/dmitrijs2005/recordkeeper/internal/server/auth"
	"github.com/dmitrijs2005/recordkeeper/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// newTestDB returns a migrated in-memory SQLite database private to t.
func newTestDB(t *testing.T) (*sql.DB, repomanager.RepositoryManager) {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := sql.Open("sqlite", "file:"+name+"?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	m, err := repomanager.NewSQLRepositoryManager(dbx.DialectSQLite)
	require.NoError(t, err)
	require.NoError(t, m.RunMigrations(context.Background(), db))

	return db, m
}

func testHasher() *auth.Argon2Hasher {
	return auth.NewArgon2Hasher(auth.Argon2Params{Memory: 8 * 1024, Time: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32})
}

func testIssuer() *auth.Issuer {
	return auth.NewIssuer([]byte("k"), time.Hour, 2*time.Hour)
}
