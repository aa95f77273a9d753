package auth

import (
	"strings"
	"testing"
	"time"

	"pizzeria/internal/entity"
)

func TestNewManagerAndTokenLifecycle(t *testing.T) {
	mgr, err := NewManager("test-secret", "issuer", time.Minute*30)
	if err != nil {
		t.Fatalf("unexpected error creating manager: %v", err)
	}

	user := &entity.DbUser{ID: 42, Email: "user@example.com", Role: entity.UserRoleUser}
	token, expiresAt, err := mgr.GenerateToken(user)
	if err != nil {
		t.Fatalf("unexpected error generating token: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
	if expiresAt.Before(time.Now()) {
		t.Fatal("expected future expiry time")
	}

	claims, err := mgr.ParseToken(token)
	if err != nil {
		t.Fatalf("unexpected error parsing token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("expected user id %d, got %d", user.ID, claims.UserID)
	}
	if !strings.EqualFold(claims.Email, user.Email) {
		t.Fatalf("expected email %s, got %s", user.Email, claims.Email)
	}
	if claims.Role != user.Role {
		t.Fatalf("expected role %s, got %s", user.Role, claims.Role)
	}
}

func TestNewManagerRequiresSecret(t *testing.T) {
	if _, err := NewManager("   ", "", time.Hour); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestParseTokenRejectsForeignSignature(t *testing.T) {
	issuing, err := NewManager("secret-a", "pizzeria", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	verifying, err := NewManager("secret-b", "pizzeria", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, _, err := issuing.GenerateToken(&entity.DbUser{ID: 1, Email: "user@example.com", Role: entity.UserRoleUser})
	if err != nil {
		t.Fatalf("unexpected error generating token: %v", err)
	}

	if _, err := verifying.ParseToken(token); err == nil {
		t.Fatal("expected error for token signed with a different secret")
	}
}

func TestGenerateTokenRequiresUser(t *testing.T) {
	mgr, err := NewManager("test-secret", "", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := mgr.GenerateToken(nil); err == nil {
		t.Fatal("expected error for nil user")
	}
	if _, _, err := mgr.GenerateToken(&entity.DbUser{}); err == nil {
		t.Fatal("expected error for user without id")
	}
}
