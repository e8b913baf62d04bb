// Package models defines the persisted entities of the listkeeper server.
package models

import "time"

// User is a registered account. Username and Email are unique across the
// users table; PasswordHash holds the hex SHA-256 digest of the password.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
