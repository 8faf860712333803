package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/quantum-ledger/quantum-backend/internal/models"
)

func TestTokenManager_IssueAndVerify(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	user := models.PublicUser{ID: 7, Name: "Ada", Email: "ada@example.com"}

	token, err := tm.Issue(user)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	claims, err := tm.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	if claims.UserID != 7 || claims.Name != "Ada" || claims.Email != "ada@example.com" {
		t.Errorf("Claims do not match issued user: %+v", claims)
	}

	issued := claims.IssuedAt.Time
	expires := claims.ExpiresAt.Time
	if got := expires.Sub(issued); got != time.Hour {
		t.Errorf("Expected 1h lifetime, got %v", got)
	}
}

func TestTokenManager_TamperedToken(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, err := tm.Issue(models.PublicUser{ID: 1, Name: "Ada", Email: "ada@example.com"})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	// Flip a character in the payload segment
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("Expected 3 token segments, got %d", len(parts))
	}
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := tm.Verify(tampered); err == nil {
		t.Error("Expected tampered token to fail verification")
	}
}

func TestTokenManager_WrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Hour)
	verifier := NewTokenManager("secret-b", time.Hour)

	token, err := issuer.Issue(models.PublicUser{ID: 1, Name: "Ada", Email: "ada@example.com"})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := verifier.Verify(token); err == nil {
		t.Error("Expected token signed with a different secret to fail")
	}
}

func TestTokenManager_ExpiredToken(t *testing.T) {
	tm := NewTokenManager("test-secret", -time.Minute)

	token, err := tm.Issue(models.PublicUser{ID: 1, Name: "Ada", Email: "ada@example.com"})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := tm.Verify(token); err == nil {
		t.Error("Expected expired token to fail verification")
	}
}
