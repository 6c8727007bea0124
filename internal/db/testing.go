package db

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v4/pgxpool"
)

// SkipWithoutTestDB skips integration tests when no test database is
// configured.
func SkipWithoutTestDB(t *testing.T) {
	t.Helper()
	if os.Getenv("TEST_POSTGRESQL_URL") == "" || os.Getenv("TEST_MIGRATIONS_PATH") == "" {
		t.Skip("TEST_POSTGRESQL_URL and TEST_MIGRATIONS_PATH must be set to run DB tests.")
	}
}

func CreateTestPool() *pgxpool.Pool {
	connString := os.Getenv("TEST_POSTGRESQL_URL")
	if connString == "" {
		panic("TEST_POSTGRESQL_URL must be set.")
	}
	if err := ApplyMigrations(connString, os.Getenv("TEST_MIGRATIONS_PATH")); err != nil {
		panic(err.Error())
	}

	pool, err := pgxpool.Connect(context.Background(), connString)
	if err != nil {
		panic("Could not connect to the database.")
	}
	return pool
}

func TruncateTables(pool *pgxpool.Pool) {
	_, err := pool.Exec(context.Background(), `TRUNCATE password_reset_token, session, "user"`)
	if err != nil {
		panic("Could not truncate DB tables.")
	}
}
