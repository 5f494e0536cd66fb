package repository

import (
	"context"
	"fmt"
)

// Table names.
const (
	usersTable    = "users"
	listingsTable = "listings"
)

// usersNameKey is the constraint that enforces globally unique user names.
const usersNameKey = "users_name_key"

const usersSchema = `
CREATE TABLE IF NOT EXISTS users (
	id         BIGSERIAL PRIMARY KEY,
	name       TEXT   NOT NULL,
	created_at BIGINT NOT NULL,
	updated_at BIGINT NOT NULL,
	CONSTRAINT users_name_key UNIQUE (name)
);
CREATE INDEX IF NOT EXISTS users_created_at_idx ON users (created_at DESC, id DESC);
`

const listingsSchema = `
CREATE TABLE IF NOT EXISTS listings (
	id           BIGSERIAL PRIMARY KEY,
	user_id      BIGINT           NOT NULL,
	listing_type TEXT             NOT NULL,
	price        DOUBLE PRECISION NOT NULL,
	created_at   BIGINT           NOT NULL,
	updated_at   BIGINT           NOT NULL
);
CREATE INDEX IF NOT EXISTS listings_created_at_idx ON listings (created_at DESC, id DESC);
CREATE INDEX IF NOT EXISTS listings_user_id_idx ON listings (user_id);
`

// EnsureUsersSchema creates the users table if it does not exist.
func (r *Repository) EnsureUsersSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, usersSchema); err != nil {
		return fmt.Errorf("failed to ensure users schema: %w", err)
	}
	return nil
}

// EnsureListingsSchema creates the listings table if it does not exist.
func (r *Repository) EnsureListingsSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, listingsSchema); err != nil {
		return fmt.Errorf("failed to ensure listings schema: %w", err)
	}
	return nil
}
