package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/recordkeeper/internal/common"
	"github.com/dmitrijs2005/recordkeeper/internal/dbx"
	"github.com/dmitrijs2005/recordkeeper/internal/server/auth"
	"github.com/dmitrijs2005/recordkeeper/internal/server/models"
	"github.com/dmitrijs2005/recordkeeper/internal/server/repositories/repomanager"
)

// PasswordHasher hashes and checks passwords. auth.Argon2Hasher
// implements it.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      PasswordHasher
	issuer      *auth.Issuer
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher PasswordHasher, issuer *auth.Issuer) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		issuer:      issuer,
	}
}

// Register stores a new user with a hashed password. A taken username
// yields common.ErrorConflict and leaves the existing account untouched.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, common.NewValidationError("username", "is required")
	}
	if password == "" {
		return nil, common.NewValidationError("password", "is required")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var user *models.User
	err = dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		_, err := repo.GetUserByLogin(ctx, username)
		switch {
		case err == nil:
			return fmt.Errorf("username %q: %w", username, common.ErrorConflict)
		case !errors.Is(err, common.ErrorNotFound):
			return err
		}

		user, err = repo.Create(ctx, &models.User{UserName: username, PasswordHash: hash})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

func (s *UserService) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user *models.User
	err := dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		user, err = s.repomanager.Users(tx).GetUserByLogin(ctx, username)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var user *models.User
	err := dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		user, err = s.repomanager.Users(tx).GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	var result []*models.User
	err := dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		result, err = s.repomanager.Users(tx).List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	return dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)
		if _, err := repo.GetByID(ctx, id); err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
}

// Verify reports whether password matches the stored hash of user.
// A malformed stored hash never matches.
func (s *UserService) Verify(user *models.User, password string) bool {
	ok, err := s.hasher.Verify(password, user.PasswordHash)
	return err == nil && ok
}

// Login checks the credentials and issues an access/refresh pair.
// An unknown username yields common.ErrorNotFound, a wrong password
// common.ErrorInvalidCredentials.
func (s *UserService) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	user, err := s.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if !s.Verify(user, password) {
		return nil, common.ErrorInvalidCredentials
	}

	return s.generateTokenPair(user.UserName)
}

// RefreshToken mints a new access token from a valid refresh token.
func (s *UserService) RefreshToken(refreshToken string) (string, error) {
	return s.issuer.Refresh(refreshToken)
}

func (s *UserService) generateTokenPair(subject string) (*TokenPair, error) {
	accessToken, err := s.issuer.IssueAccessToken(subject)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.issuer.IssueRefreshToken(subject)
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
