package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/recordkeeper/internal/common"
	"github.com/dmitrijs2005/recordkeeper/internal/dbx"
	"github.com/dmitrijs2005/recordkeeper/internal/server/auth"
	"github.com/dmitrijs2005/recordkeeper/internal/server/models"
	"github.com/dmitrijs2005/recordkeeper/internal/server/repositories/notes"
	"github.com/dmitrijs2005/recordkeeper/internal/server/repositories/records"
	usersrepo "github.com/dmitrijs2005/recordkeeper/internal/server/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T) *UserService {
	t.Helper()
	db, m := newTestDB(t)
	return NewUserService(db, m, testHasher(), testIssuer())
}

func TestRegister_HashesPassword(t *testing.T) {
	s := newUserService(t)
	ctx := context.Background()

	u, err := s.Register(ctx, "a", "pw")
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.NotEqual(t, "pw", u.PasswordHash)

	stored, err := s.FindByUsername(ctx, "a")
	require.NoError(t, err)
	assert.True(t, s.Verify(stored, "pw"))
	assert.False(t, s.Verify(stored, "wrong"))
}

func TestRegister_DuplicateKeepsOriginal(t *testing.T) {
	s := newUserService(t)
	ctx := context.Background()

	first, err := s.Register(ctx, "a", "one")
	require.NoError(t, err)

	_, err = s.Register(ctx, "a", "two")
	assert.ErrorIs(t, err, common.ErrorConflict)

	stored, err := s.FindByUsername(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, first.PasswordHash, stored.PasswordHash)
	assert.True(t, s.Verify(stored, "one"))
	assert.False(t, s.Verify(stored, "two"))
}

func TestRegister_Validation(t *testing.T) {
	s := newUserService(t)

	_, err := s.Register(context.Background(), "  ", "pw")
	assert.ErrorIs(t, err, common.ErrorValidation)

	_, err = s.Register(context.Background(), "a", "")
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestVerify_MalformedHash(t *testing.T) {
	s := newUserService(t)
	assert.False(t, s.Verify(&models.User{PasswordHash: "pw"}, "pw"))
}

func TestListGetDelete(t *testing.T) {
	s := newUserService(t)
	ctx := context.Background()

	a, err := s.Register(ctx, "a", "pw")
	require.NoError(t, err)
	b, err := s.Register(ctx, "b", "pw")
	require.NoError(t, err)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, []string{"a", "b"}, []string{list[0].UserName, list[1].UserName})

	got, err := s.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "b", got.UserName)

	require.NoError(t, s.Delete(ctx, a.ID))
	assert.ErrorIs(t, s.Delete(ctx, a.ID), common.ErrorNotFound)

	_, err = s.GetByID(ctx, a.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestLogin_Flows(t *testing.T) {
	s := newUserService(t)
	ctx := context.Background()

	_, err := s.Register(ctx, "a", "pw")
	require.NoError(t, err)

	_, err = s.Login(ctx, "nobody", "pw")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = s.Login(ctx, "a", "bad")
	assert.ErrorIs(t, err, common.ErrorInvalidCredentials)

	pair, err := s.Login(ctx, "a", "pw")
	require.NoError(t, err)

	sub, err := s.issuer.Validate(pair.AccessToken, auth.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "a", sub)

	sub, err = s.issuer.Validate(pair.RefreshToken, auth.TokenTypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, "a", sub)

	access, err := s.RefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	sub, err = s.issuer.Validate(access, auth.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "a", sub)

	_, err = s.RefreshToken(pair.AccessToken)
	assert.ErrorIs(t, err, common.ErrTokenTypeMismatch)
}

// --- failure paths against a mocked connection ---

type fakeUsersRepo struct {
	getErr    error
	createErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	u.ID = 1
	return u, nil
}
func (f *fakeUsersRepo) GetUserByLogin(context.Context, string) (*models.User, error) {
	return nil, f.getErr
}
func (f *fakeUsersRepo) GetByID(context.Context, int64) (*models.User, error) {
	return nil, f.getErr
}
func (f *fakeUsersRepo) List(context.Context) ([]*models.User, error) { return nil, f.getErr }
func (f *fakeUsersRepo) Delete(context.Context, int64) error          { return nil }

type fakeRepoManager struct {
	u *fakeUsersRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) usersrepo.Repository         { return m.u }
func (m *fakeRepoManager) Records(dbx.DBTX) records.Repository         { return nil }
func (m *fakeRepoManager) Notes(dbx.DBTX) notes.Repository             { return nil }

func TestRegister_RollsBackOnCreateError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	rm := &fakeRepoManager{u: &fakeUsersRepo{getErr: common.ErrorNotFound, createErr: errors.New("boom")}}
	s := NewUserService(db, rm, testHasher(), testIssuer())

	_, err = s.Register(context.Background(), "a", "pw")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_LookupErrorIsNotConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	rm := &fakeRepoManager{u: &fakeUsersRepo{getErr: errors.New("db down")}}
	s := NewUserService(db, rm, testHasher(), testIssuer())

	_, err = s.Register(context.Background(), "a", "pw")
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_CommitsOnSuccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	rm := &fakeRepoManager{u: &fakeUsersRepo{getErr: common.ErrorNotFound}}
	s := NewUserService(db, rm, testHasher(), testIssuer())

	u, err := s.Register(context.Background(), "a", "pw")
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
