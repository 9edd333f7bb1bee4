// Package models defines server-side data models persisted in the database.
package models

// User is a registered account. PasswordHash holds an encoded argon2id
// hash, never plaintext.
type User struct {
	ID           int64
	UserName     string
	PasswordHash string
}
