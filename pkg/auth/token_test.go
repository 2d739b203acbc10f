package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/orgware/staffd/pkg/domain"
)

func testTokenService(ttl time.Duration) *TokenService {
	return NewTokenService(TokenConfig{
		Secret: []byte("test-secret-at-least-32-characters!!"),
		Issuer: "staffd-test",
		TTL:    ttl,
	})
}

func TestTokenService_IssueAndValidate(t *testing.T) {
	svc := testTokenService(time.Hour)
	userID := uuid.New()
	orgID := uuid.New()

	token, expiresAt, err := svc.Issue(userID, orgID, "admin@acme.test")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if time.Until(expiresAt) > time.Hour || time.Until(expiresAt) < 59*time.Minute {
		t.Errorf("expiresAt = %v, want roughly 1h from now", expiresAt)
	}

	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	if claims.Subject != userID.String() {
		t.Errorf("Subject = %q, want %q", claims.Subject, userID)
	}
	if claims.OrgID != orgID.String() {
		t.Errorf("OrgID = %q, want %q", claims.OrgID, orgID)
	}
	if claims.Email != "admin@acme.test" {
		t.Errorf("Email = %q, want %q", claims.Email, "admin@acme.test")
	}
}

func TestTokenService_DefaultTTL(t *testing.T) {
	svc := testTokenService(0)
	if svc.TTL() != 8*time.Hour {
		t.Errorf("TTL = %v, want %v", svc.TTL(), 8*time.Hour)
	}
}

func TestTokenService_RejectsExpired(t *testing.T) {
	svc := testTokenService(-time.Minute)
	token, _, err := svc.Issue(uuid.New(), uuid.New(), "admin@acme.test")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	_, err = svc.Validate(token)
	if !errors.Is(err, domain.ErrTokenExpired) {
		t.Errorf("Validate error = %v, want ErrTokenExpired", err)
	}
}

func TestTokenService_RejectsWrongSecret(t *testing.T) {
	svc := testTokenService(time.Hour)
	token, _, err := svc.Issue(uuid.New(), uuid.New(), "admin@acme.test")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	other := NewTokenService(TokenConfig{
		Secret: []byte("a-completely-different-signing-key!!"),
		Issuer: "staffd-test",
		TTL:    time.Hour,
	})

	_, err = other.Validate(token)
	if !errors.Is(err, domain.ErrInvalidToken) {
		t.Errorf("Validate error = %v, want ErrInvalidToken", err)
	}
}

func TestTokenService_RejectsGarbage(t *testing.T) {
	svc := testTokenService(time.Hour)

	if _, err := svc.Validate("not.a.token"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Errorf("Validate error = %v, want ErrInvalidToken", err)
	}
}
