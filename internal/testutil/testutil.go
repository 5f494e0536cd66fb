// Package testutil provides shared helpers for tests.
package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/homelist/marketplace/internal/repository"
)

// dbLockKey serializes integration tests from different packages that share
// one database.
const dbLockKey int64 = 6001_6000

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

// OpenRepository connects to DATABASE_URL, takes the shared advisory lock
// for the rest of the test and recreates empty users and listings tables.
// The test is skipped when DATABASE_URL is unset.
func OpenRepository(t testing.TB) (context.Context, *repository.Repository) {
	t.Helper()

	databaseURL := RequireEnv(t, "DATABASE_URL")
	ctx := context.Background()

	repo, err := repository.New(ctx, databaseURL, repository.PoolOptions{MaxConns: 10})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(repo.Close)

	lockDB(t, ctx, repo.Pool())

	if err := ResetSchema(ctx, repo); err != nil {
		t.Fatalf("reset schema: %v", err)
	}
	return ctx, repo
}

// lockDB holds a session advisory lock on a dedicated connection until the
// test ends.
func lockDB(t testing.TB, ctx context.Context, pool *pgxpool.Pool) {
	t.Helper()

	conn, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("acquire connection: %v", err)
	}
	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", dbLockKey); err != nil {
		conn.Release()
		t.Fatalf("advisory lock: %v", err)
	}
	t.Cleanup(func() {
		defer conn.Release()
		if _, err := conn.Exec(context.Background(), "SELECT pg_advisory_unlock($1)", dbLockKey); err != nil {
			t.Logf("advisory unlock: %v", err)
		}
	})
}

// ResetSchema drops and recreates the users and listings tables.
func ResetSchema(ctx context.Context, repo *repository.Repository) error {
	if _, err := repo.Pool().Exec(ctx, "DROP TABLE IF EXISTS users, listings"); err != nil {
		return err
	}
	if err := repo.EnsureUsersSchema(ctx); err != nil {
		return err
	}
	return repo.EnsureListingsSchema(ctx)
}
