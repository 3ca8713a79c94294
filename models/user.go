package models

import (
	"time"
)

// User represents a casino account with a balance.
//
// Password is stored and compared as an opaque string for compatibility with
// the existing frontend; see service.CredentialComparer for the seam where a
// hashed comparison can be introduced.
type User struct {
	ID        int64     `db:"id"`
	Username  string    `db:"username"`
	Password  string    `db:"password"`
	Balance   int64     `db:"balance"`
	Banned    bool      `db:"banned"`
	LuckyMode bool      `db:"lucky_mode"`
	IPAddress string    `db:"ip_address"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// LoginResult is returned to a successfully authenticated user.
type LoginResult struct {
	Balance   int64
	LuckyMode bool
}
