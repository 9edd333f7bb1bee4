// Package auth mints and validates session tokens and hashes passwords.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/recordkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenType distinguishes access tokens from refresh tokens.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Claims are the registered JWT claims plus the token type.
type Claims struct {
	jwt.RegisteredClaims
	Type TokenType `json:"type"`
}

// Issuer mints and validates HS256 tokens. It does no I/O; validity is
// signature, expiry and type only, so logout cannot invalidate a token
// before it expires.
type Issuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

type Option func(*Issuer)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) { i.now = now }
}

func NewIssuer(secret []byte, accessTTL, refreshTTL time.Duration, opts ...Option) *Issuer {
	i := &Issuer{
		secret:     secret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
	for _, o := range opts {
		o(i)
	}
	return i
}

func (i *Issuer) IssueAccessToken(subject string) (string, error) {
	return i.issue(subject, TokenTypeAccess, i.accessTTL)
}

func (i *Issuer) IssueRefreshToken(subject string) (string, error) {
	return i.issue(subject, TokenTypeRefresh, i.refreshTTL)
}

func (i *Issuer) issue(subject string, typ TokenType, ttl time.Duration) (string, error) {
	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
		Type: typ,
	})

	s, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return s, nil
}

// Validate checks tokenString and returns its subject. It fails with
// common.ErrTokenExpired once now reaches exp, common.ErrTokenTypeMismatch
// when the type claim is not want, and common.ErrInvalidToken otherwise.
func (i *Issuer) Validate(tokenString string, want TokenType) (string, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
		jwt.WithExpirationRequired(),
	)

	claims := &Claims{}
	_, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if claims.Type != want {
		return "", common.ErrTokenTypeMismatch
	}
	if claims.Subject == "" {
		return "", common.ErrInvalidToken
	}
	return claims.Subject, nil
}

// Refresh validates a refresh token and mints a new access token for its
// subject. The refresh token itself stays valid.
func (i *Issuer) Refresh(refreshToken string) (string, error) {
	subject, err := i.Validate(refreshToken, TokenTypeRefresh)
	if err != nil {
		return "", err
	}
	return i.IssueAccessToken(subject)
}
