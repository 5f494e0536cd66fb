package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestSelectPage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		where    string
		argCount int
		want     string
	}{
		{
			name: "unfiltered",
			want: `SELECT id, name FROM "users" ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`,
		},
		{
			name:     "filtered",
			where:    "user_id = $1",
			argCount: 1,
			want:     `SELECT id, name FROM "users" WHERE user_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := selectPage("users", []string{"id", "name"}, tt.where, tt.argCount)
			if got != tt.want {
				t.Errorf("selectPage() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestSelectByID_QuotesTable(t *testing.T) {
	t.Parallel()

	got := selectByID("listings", []string{"id", "price"})
	want := `SELECT id, price FROM "listings" WHERE id = $1`
	if got != want {
		t.Errorf("selectByID() = %s, want %s", got, want)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	nameDup := &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: usersNameKey}
	otherDup := &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "users_pkey"}
	notNull := &pgconn.PgError{Code: "23502"}

	tests := []struct {
		name       string
		err        error
		constraint string
		want       bool
	}{
		{"nil", nil, "", false},
		{"plain error", errors.New("unique"), "", false},
		{"name violation", nameDup, usersNameKey, true},
		{"wrapped name violation", fmt.Errorf("insert: %w", nameDup), usersNameKey, true},
		{"other constraint", otherDup, usersNameKey, false},
		{"any constraint", otherDup, "", true},
		{"different sqlstate", notNull, "", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := isUniqueViolation(tt.err, tt.constraint); got != tt.want {
				t.Errorf("isUniqueViolation() = %v, want %v", got, tt.want)
			}
		})
	}
}
