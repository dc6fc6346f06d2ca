package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestService(ttl time.Duration) *TokenService {
	return NewTokenService([]byte("test-secret-at-least-32-bytes-long"), "wealthlog", "wealthlog-api", ttl)
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newTestService(time.Hour)
	userID := uuid.New()

	token, err := svc.Generate(userID, "user@example.com")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("expected user ID %s, got %s", userID, claims.UserID)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("expected email user@example.com, got %s", claims.Email)
	}
}

func TestTTLDefaultsOnlyWhenUnset(t *testing.T) {
	if got := newTestService(0).TTL(); got != DefaultTokenTTL {
		t.Errorf("expected default TTL %v for unset lifetime, got %v", DefaultTokenTTL, got)
	}
	// A negative lifetime is kept as-is so already-expired tokens can be minted
	if got := newTestService(-time.Minute).TTL(); got != -time.Minute {
		t.Errorf("expected TTL -1m to be preserved, got %v", got)
	}
}

func TestValidateExpiredToken(t *testing.T) {
	svc := newTestService(-time.Minute)

	token, err := svc.Generate(uuid.New(), "user@example.com")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := svc.Validate(token); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestValidateWrongSecret(t *testing.T) {
	svc := newTestService(time.Hour)
	other := NewTokenService([]byte("a-completely-different-signing-key"), "wealthlog", "wealthlog-api", time.Hour)

	token, err := svc.Generate(uuid.New(), "user@example.com")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := other.Validate(token); err == nil {
		t.Error("expected error for token signed with a different secret")
	}
}

func TestValidateWrongIssuer(t *testing.T) {
	svc := newTestService(time.Hour)
	other := NewTokenService([]byte("test-secret-at-least-32-bytes-long"), "someone-else", "wealthlog-api", time.Hour)

	token, err := svc.Generate(uuid.New(), "user@example.com")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := other.Validate(token); err == nil {
		t.Error("expected error for mismatched issuer")
	}
}

func TestValidateGarbage(t *testing.T) {
	svc := newTestService(time.Hour)

	if _, err := svc.Validate("not.a.token"); err == nil {
		t.Error("expected error for malformed token")
	}
}
