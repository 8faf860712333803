package auth

import (
	"context"
	stderrors "errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/quantum-ledger/quantum-backend/internal/errors"
	"github.com/quantum-ledger/quantum-backend/internal/logging"
	"github.com/quantum-ledger/quantum-backend/internal/models"
	"github.com/quantum-ledger/quantum-backend/internal/storage"
)

// UserStore is the credential store surface the service depends on.
type UserStore interface {
	Append(ctx context.Context, name, email, passwordHash string) (models.UserRecord, error)
	FindByEmail(ctx context.Context, email string) (models.UserRecord, error)
}

// Session is the result of a successful registration or login.
type Session struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// Service registers users, verifies credentials, and issues and validates
// bearer tokens.
type Service struct {
	store      UserStore
	tokens     *TokenManager
	bcryptCost int
	logger     *logging.Logger
}

// NewService creates the auth service.
func NewService(store UserStore, tokens *TokenManager, bcryptCost int) *Service {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		store:      store,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     logging.GetGlobalLogger().WithField("component", "auth"),
	}
}

// invalidCredentials is shared by the account-absent and password-mismatch
// paths so the response never leaks whether an account exists.
func invalidCredentials() *errors.CategorizedError {
	return errors.NewAuthError("invalid email or password")
}

// Register creates a user record and issues a session token.
func (s *Service) Register(ctx context.Context, name, email, password string) (*Session, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	password = strings.TrimSpace(password)

	if name == "" || email == "" || password == "" {
		return nil, errors.NewValidationError("name, email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	record, err := s.store.Append(ctx, name, email, string(hash))
	if err != nil {
		if stderrors.Is(err, storage.ErrEmailExists) {
			return nil, errors.NewConflictError("user with this email already exists")
		}
		return nil, errors.NewInternalError(err)
	}

	token, err := s.tokens.Issue(record.Public())
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	s.logger.WithFields(map[string]interface{}{
		"userId": record.ID,
		"email":  record.Email,
	}).Info("User registered")

	return &Session{Token: token, User: record.Public()}, nil
}

// Login verifies credentials and issues a fresh session token.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	password = strings.TrimSpace(password)

	if email == "" || password == "" {
		return nil, errors.NewValidationError("email and password are required")
	}

	record, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return nil, invalidCredentials()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte(password)); err != nil {
		return nil, invalidCredentials()
	}

	token, err := s.tokens.Issue(record.Public())
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	s.logger.WithField("userId", record.ID).Info("User logged in")

	return &Session{Token: token, User: record.Public()}, nil
}

// VerifyToken validates a bearer token and returns the embedded claims.
func (s *Service) VerifyToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, errors.NewAuthError("missing token")
	}

	claims, err := s.tokens.Verify(tokenString)
	if err != nil {
		return nil, errors.NewAuthError("invalid or expired token")
	}

	return claims, nil
}
