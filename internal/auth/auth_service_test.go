package auth

import (
	"testing"
	"time"
)

func newTestService(t *testing.T, ttl time.Duration) *AuthService {
	t.Helper()
	service, err := NewAuthService("test-secret", ttl)
	if err != nil {
		t.Fatalf("new auth service: %v", err)
	}
	return service
}

func TestNewAuthService_RequiresSecret(t *testing.T) {
	if _, err := NewAuthService("", time.Hour); err == nil {
		t.Fatal("expected error for empty secret")
	}
	if _, err := NewAuthService("secret", 0); err == nil {
		t.Fatal("expected error for zero ttl")
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	s := newTestService(t, time.Hour)

	hash, err := s.HashPassword("hunter22")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if hash == "hunter22" {
		t.Fatal("hash must not equal plaintext")
	}
	if !s.CheckPasswordHash("hunter22", hash) {
		t.Fatal("expected matching password to verify")
	}
	if s.CheckPasswordHash("hunter23", hash) {
		t.Fatal("expected wrong password to fail")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	s := newTestService(t, 24*time.Hour)

	token, err := s.GenerateToken(42)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	claims, err := s.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("expected user id 42, got %d", claims.UserID)
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining < 23*time.Hour || remaining > 24*time.Hour {
		t.Fatalf("expected ~24h expiry, got %s", remaining)
	}
}

func TestValidateToken_RejectsWrongSecret(t *testing.T) {
	s := newTestService(t, time.Hour)
	other, err := NewAuthService("other-secret", time.Hour)
	if err != nil {
		t.Fatalf("new auth service: %v", err)
	}

	token, err := other.GenerateToken(1)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if _, err := s.ValidateToken(token); err == nil {
		t.Fatal("expected validation to fail for foreign secret")
	}
}

func TestValidateToken_RejectsExpired(t *testing.T) {
	s := newTestService(t, time.Nanosecond)

	token, err := s.GenerateToken(1)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	time.Sleep(10 * time.Millisecond)
	if _, err := s.ValidateToken(token); err == nil {
		t.Fatal("expected validation to fail for expired token")
	}
}

func TestValidateToken_RejectsEmpty(t *testing.T) {
	s := newTestService(t, time.Hour)
	if _, err := s.ValidateToken(""); err == nil {
		t.Fatal("expected validation to fail for empty token")
	}
}
