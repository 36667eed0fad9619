package herokupg

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// EnvDatabaseURL is the config var Heroku sets on every app with an attached
// Postgres instance.
const EnvDatabaseURL = "DATABASE_URL"

// DatabaseURLFromEnv returns the DATABASE_URL config var. A .env file in the
// working directory is loaded first (the heroku local convention); values
// already present in the environment win over the file.
func DatabaseURLFromEnv() (string, error) {
	_ = godotenv.Load()

	raw := strings.TrimSpace(os.Getenv(EnvDatabaseURL))
	if raw == "" {
		return "", fmt.Errorf("herokupg: %s is not set", EnvDatabaseURL)
	}
	return raw, nil
}

// AttachmentDatabaseURL returns the config var for a named attachment:
// AttachmentDatabaseURL("AMBER") reads HEROKU_POSTGRESQL_AMBER_URL. Heroku
// names additional attachments by color; DATABASE_URL aliases the primary
// one.
func AttachmentDatabaseURL(color string) (string, error) {
	_ = godotenv.Load()

	key := "HEROKU_POSTGRESQL_" + strings.ToUpper(strings.TrimSpace(color)) + "_URL"
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return "", fmt.Errorf("herokupg: %s is not set", key)
	}
	return raw, nil
}

// GetClientFromEnv is GetClient over the DATABASE_URL config var.
func GetClientFromEnv(ctx context.Context, opts ...Option) (*Client, error) {
	databaseURL, err := DatabaseURLFromEnv()
	if err != nil {
		return nil, err
	}
	return GetClient(ctx, databaseURL, opts...)
}

// GetPoolFromEnv is GetPool over the DATABASE_URL config var.
func GetPoolFromEnv(ctx context.Context, maxConns int32, opts ...Option) (*Pool, error) {
	databaseURL, err := DatabaseURLFromEnv()
	if err != nil {
		return nil, err
	}
	return GetPool(ctx, databaseURL, maxConns, opts...)
}
