package jwtmw

import (
	"os"
	"time"
)

const (
	EnvKeyJWTSecret     = "JWT_SECRET"
	EnvKeyJWTExpiration = "JWT_EXPIRATION"

	defaultExpiration = 24 * time.Hour
)

// Config holds the signing secret and token lifetime.
type Config struct {
	Secret     string
	Expiration time.Duration
}

// LoadConfig reads JWT_SECRET and JWT_EXPIRATION (a Go duration such as "12h").
func LoadConfig() Config {
	cfg := Config{Secret: os.Getenv(EnvKeyJWTSecret), Expiration: defaultExpiration}
	if d, err := time.ParseDuration(os.Getenv(EnvKeyJWTExpiration)); err == nil && d > 0 {
		cfg.Expiration = d
	}
	return cfg
}
