// Package storage provides the in-process data stores for the backend.
package storage

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/quantum-ledger/quantum-backend/internal/models"
)

// ErrEmailExists is returned when appending a record whose normalized email
// is already registered.
var ErrEmailExists = errors.New("email already registered")

// ErrUserNotFound is returned when no record matches a lookup.
var ErrUserNotFound = errors.New("user not found")

// CredentialStore holds user records in process memory. It is append-only:
// records are never mutated or deleted once inserted, and nothing survives a
// restart. The uniqueness check, id assignment and append happen under one
// lock so two concurrent registrations with the same email cannot both
// succeed.
type CredentialStore struct {
	mu      sync.RWMutex
	users   []models.UserRecord
	byEmail map[string]int // normalized email -> index into users
	nextID  int
}

// NewCredentialStore creates an empty store.
func NewCredentialStore() *CredentialStore {
	return &CredentialStore{
		byEmail: make(map[string]int),
		nextID:  1,
	}
}

// Append inserts a new record with the next monotonic id. The email must
// already be normalized to lower case. Returns ErrEmailExists when the email
// is taken.
func (s *CredentialStore) Append(ctx context.Context, name, email, passwordHash string) (models.UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[email]; exists {
		return models.UserRecord{}, ErrEmailExists
	}

	record := models.UserRecord{
		ID:           s.nextID,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	s.nextID++

	s.users = append(s.users, record)
	s.byEmail[email] = len(s.users) - 1

	return record, nil
}

// FindByEmail retrieves a record by normalized email. Returns
// ErrUserNotFound when absent.
func (s *CredentialStore) FindByEmail(ctx context.Context, email string) (models.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return models.UserRecord{}, ErrUserNotFound
	}
	return s.users[idx], nil
}

// Count returns the number of registered users.
func (s *CredentialStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}
