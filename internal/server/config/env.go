package config

import (
	"os"
	"time"
)

// parseEnv overlays Config fields from environment variables. Deployments
// provision the signing key this way; an unset variable leaves the current
// value untouched.
//
//	ADDRESS                  HTTP bind address
//	DATABASE_DSN             PostgreSQL DSN
//	JWT_SECRET               HMAC secret for signing tokens
//	TOKEN_VALIDITY_DURATION  lifetime in time.ParseDuration format ("30m")
func parseEnv(config *Config) {

	if v, ok := os.LookupEnv("ADDRESS"); ok {
		config.EndpointAddr = v
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("JWT_SECRET"); ok {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv("TOKEN_VALIDITY_DURATION"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.TokenValidityDuration = d
		}
	}
}
