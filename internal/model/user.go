// Package model defines domain entities for the application.
package model

import "time"

// User is a marketplace account. Names are globally unique.
type User struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}

// NewUser builds an unsaved user stamped with the given creation time.
func NewUser(name string, now time.Time) *User {
	ts := EpochMicros(now)
	return &User{
		Name:      name,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}

// EpochMicros converts t to microseconds since the Unix epoch.
func EpochMicros(t time.Time) int64 {
	return t.UnixMicro()
}
