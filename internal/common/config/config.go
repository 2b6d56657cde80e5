package config

import (
	"fmt"
	"os"
	"time"

	"sitehost/internal/common/constants"
	commonerrors "sitehost/internal/common/errors"
)

type Config struct {
	HTTPPort       string
	UsersFile      string
	StaticDir      string
	JWTSecret      string
	TokenTTL       time.Duration
	RequestTimeout time.Duration
}

// Load reads the process configuration from the environment. The JWT
// secret has no fallback: the service refuses to start without an
// explicit secret of at least 32 bytes.
func Load() (Config, error) {
	jwtSecret, err := mustEnv("JWT_SECRET")
	if err != nil {
		return Config{}, err
	}

	if err := validateJWTSecret(jwtSecret); err != nil {
		return Config{}, err
	}

	return Config{
		HTTPPort:       getEnv("HTTP_PORT", "3000"),
		UsersFile:      getEnv("USERS_FILE", "data/users.json"),
		StaticDir:      getEnv("STATIC_DIR", "public"),
		JWTSecret:      jwtSecret,
		TokenTTL:       getDurationEnv("TOKEN_TTL", constants.DefaultTokenTTL),
		RequestTimeout: getDurationEnv("REQUEST_TIMEOUT", constants.DefaultRequestTimeout),
	}, nil
}

func validateJWTSecret(secret string) error {
	if len(secret) < constants.MinJWTSecretLength {
		return commonerrors.ErrInvalidJWTSecret.WithCause(
			fmt.Errorf("got %d bytes", len(secret)),
		)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func mustEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", commonerrors.ErrMissingRequiredEnv.WithCause(fmt.Errorf("%s", key))
	}
	return v, nil
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
