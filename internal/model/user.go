// Package model defines domain entities for the application.
package model

import "time"

// User represents a registered account.
// Usernames are unique across the store; the password hash is never
// serialized to clients.
type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
