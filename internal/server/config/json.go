package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/recordkeeper/internal/flagx"
	"github.com/dmitrijs2005/recordkeeper/internal/timex"
)

// JSONConfig is the on-disk shape of the optional config file. Durations
// are written as Go duration strings ("15m", "720h"). Absent fields keep
// the values already present in Config.
type JSONConfig struct {
	EndpointAddrHTTP             *string         `json:"endpoint_addr_http"`
	DatabaseDriver               *string         `json:"database_driver"`
	DatabaseDSN                  *string         `json:"database_dsn"`
	SecretKey                    *string         `json:"secret_key"`
	AccessTokenValidityDuration  *timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration *timex.Duration `json:"refresh_token_validity_duration"`
	TokenLocation                *string         `json:"token_location"`
	CookieSecure                 *bool           `json:"cookie_secure"`
	LogBackend                   *string         `json:"log_backend"`
}

// parseJSON loads the file named by -c / -config, if any, into config.
func parseJSON(config *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var c JSONConfig
	if err := json.Unmarshal(data, &c); err != nil {
		return err
	}

	setIf(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setIf(&config.DatabaseDriver, c.DatabaseDriver)
	setIf(&config.DatabaseDSN, c.DatabaseDSN)
	setIf(&config.SecretKey, c.SecretKey)
	setIf(&config.TokenLocation, c.TokenLocation)
	setIf(&config.CookieSecure, c.CookieSecure)
	setIf(&config.LogBackend, c.LogBackend)
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RefreshTokenValidityDuration != nil {
		config.RefreshTokenValidityDuration = c.RefreshTokenValidityDuration.Duration
	}
	return nil
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
