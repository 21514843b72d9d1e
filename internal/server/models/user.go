// Package models defines the rows the server persists.
package models

// User is a registered account. PasswordHash is a bcrypt hash and never
// leaves the server.
type User struct {
	ID           string
	Login        string
	PasswordHash string
}
