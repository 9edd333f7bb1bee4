package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/recordkeeper/internal/flagx"
)

var serverFlags = []string{"-a", "-D", "-d", "-s", "-t", "-r", "-l", "-secure-cookie", "-log-backend"}

// parseFlags overlays selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string        HTTP bind address (e.g. ":8000")
//	-D string        database driver: sqlite, pgx, mysql
//	-d string        database DSN
//	-s string        JWT HMAC secret key
//	-t int           access token validity, minutes
//	-r int           refresh token validity, minutes
//	-l string        token location: headers or cookies
//	-secure-cookie   mark token cookies Secure
//	-log-backend     slog or zerolog
//
// Unrecognised arguments (such as -c) are filtered out first.
func parseFlags(config *Config, args []string) error {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDriver, "D", config.DatabaseDriver, "database driver")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessMinutes := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	refreshMinutes := fs.Int("r", int(config.RefreshTokenValidityDuration.Minutes()), "refresh token validity (in minutes)")

	fs.StringVar(&config.TokenLocation, "l", config.TokenLocation, "token location: headers or cookies")
	fs.BoolVar(&config.CookieSecure, "secure-cookie", config.CookieSecure, "set Secure on token cookies")
	fs.StringVar(&config.LogBackend, "log-backend", config.LogBackend, "log backend: slog or zerolog")

	if err := fs.Parse(flagx.FilterArgs(args, serverFlags)); err != nil {
		return err
	}

	// JSON durations may be sub-minute; overwrite only flags actually given.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.AccessTokenValidityDuration = time.Duration(*accessMinutes) * time.Minute
		case "r":
			config.RefreshTokenValidityDuration = time.Duration(*refreshMinutes) * time.Minute
		}
	})
	return nil
}
