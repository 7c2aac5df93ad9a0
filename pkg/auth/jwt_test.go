package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/tigersos/tigersos-api/pkg/auth"
)

const secret = "test-secret"

func TestAccessToken_RoundTrip(t *testing.T) {
	token, err := auth.NewAccessToken("user-123", "user", secret, 24*time.Hour)
	if err != nil {
		t.Fatalf("Failed to create token: %v", err)
	}

	claims, err := auth.Parse(token, secret)
	if err != nil {
		t.Fatalf("Failed to parse token: %v", err)
	}

	if claims.Sub != "user-123" {
		t.Fatalf("Expected sub 'user-123', got %q", claims.Sub)
	}
	if claims.Role != "user" {
		t.Fatalf("Expected role 'user', got %q", claims.Role)
	}
}

func TestParse_WrongSecret(t *testing.T) {
	token, err := auth.NewAccessToken("user-123", "user", secret, 24*time.Hour)
	if err != nil {
		t.Fatalf("Failed to create token: %v", err)
	}

	if _, err := auth.Parse(token, "another-secret"); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("Expected ErrInvalidToken, got %v", err)
	}
}

func TestParse_Expired(t *testing.T) {
	token, err := auth.NewAccessToken("user-123", "user", secret, -time.Minute)
	if err != nil {
		t.Fatalf("Failed to create token: %v", err)
	}

	if _, err := auth.Parse(token, secret); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("Expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestParse_Garbage(t *testing.T) {
	if _, err := auth.Parse("not.a.token", secret); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("Expected ErrInvalidToken, got %v", err)
	}
}
