// Package config handles configuration for the server component,
// including defaults, JSON overlay, and command-line flags.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/recordkeeper/internal/dbx"
)

// Token carriers.
const (
	TokenLocationHeaders = "headers"
	TokenLocationCookies = "cookies"
)

// Config holds runtime settings for the recordkeeper server. It is built
// once at start-up and passed by pointer to the constructors that need it.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the HTTP API.
//   - DatabaseDriver: "sqlite", "pgx" or "mysql".
//   - DatabaseDSN: driver-specific DSN; parseTime is forced on for mysql.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use the default in prod.
//   - AccessTokenValidityDuration / RefreshTokenValidityDuration: token lifetimes.
//   - TokenLocation: "headers" (bearer token) or "cookies".
//   - CookieSecure: set the Secure attribute on token cookies.
//   - LogBackend: "slog" or "zerolog".
type Config struct {
	EndpointAddrHTTP             string
	DatabaseDriver               string
	DatabaseDSN                  string
	SecretKey                    string
	AccessTokenValidityDuration  time.Duration
	RefreshTokenValidityDuration time.Duration
	TokenLocation                string
	CookieSecure                 bool
	LogBackend                   string
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret key is insecure and must be overridden in production.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8000"
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = "recordkeeper.db"
	c.SecretKey = "secret_key"
	c.AccessTokenValidityDuration = 15 * time.Minute
	c.RefreshTokenValidityDuration = 30 * 24 * time.Hour
	c.TokenLocation = TokenLocationHeaders
	c.CookieSecure = false
	c.LogBackend = "slog"
}

// Validate checks that the combination of settings is usable.
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return errors.New("secret key must not be empty")
	}
	if c.AccessTokenValidityDuration <= 0 || c.RefreshTokenValidityDuration <= 0 {
		return errors.New("token validity durations must be positive")
	}
	if c.TokenLocation != TokenLocationHeaders && c.TokenLocation != TokenLocationCookies {
		return fmt.Errorf("unknown token location %q", c.TokenLocation)
	}
	if _, err := dbx.ParseDialect(c.DatabaseDriver); err != nil {
		return err
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
// args are the process arguments without the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
