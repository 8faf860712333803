// Package models provides data models for the quantum ledger backend.
package models

import "time"

// UserRecord represents a registered user held by the credential store.
// Records are immutable after creation and are never deleted; there is no
// account-management flow.
type UserRecord struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// PublicUser is the redacted view of a user returned across the auth
// boundary. The password hash never leaves the auth service.
type PublicUser struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Public returns the redacted view of the record.
func (u *UserRecord) Public() PublicUser {
	return PublicUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}
