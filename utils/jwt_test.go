package utils

import (
	"testing"
	"time"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("round trip keeps user id and role", func(t *testing.T) {
		token, err := GenerateToken("user-123", "admin")
		if err != nil {
			t.Fatalf("GenerateToken failed: %v", err)
		}

		claims, err := VerifyToken(token)
		if err != nil {
			t.Fatalf("VerifyToken failed: %v", err)
		}
		if claims.UserID != "user-123" {
			t.Errorf("expected user id %q, got %q", "user-123", claims.UserID)
		}
		if claims.Role != "admin" {
			t.Errorf("expected role %q, got %q", "admin", claims.Role)
		}
		if claims.ExpiresAt == nil || time.Until(claims.ExpiresAt.Time) <= 0 {
			t.Errorf("expected future expiry, got %v", claims.ExpiresAt)
		}
	})

	t.Run("rejects tampered token", func(t *testing.T) {
		token, err := GenerateToken("user-123", "user")
		if err != nil {
			t.Fatalf("GenerateToken failed: %v", err)
		}

		if _, err := VerifyToken(token + "x"); err == nil {
			t.Errorf("expected error for tampered token")
		}
	})

	t.Run("rejects token signed with another secret", func(t *testing.T) {
		token, err := GenerateToken("user-123", "user")
		if err != nil {
			t.Fatalf("GenerateToken failed: %v", err)
		}

		t.Setenv("JWT_SECRET", "other-secret")
		if _, err := VerifyToken(token); err == nil {
			t.Errorf("expected signature mismatch error")
		}
	})

	t.Run("fails without secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		if _, err := GenerateToken("user-123", "user"); err == nil {
			t.Errorf("expected error when JWT_SECRET is missing")
		}
	})
}
