package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/orgware/staffd/pkg/auth"
)

func newGuard(t *testing.T, ttl time.Duration) (*auth.TokenService, func(http.Handler) http.Handler) {
	t.Helper()
	tokens := auth.NewTokenService(auth.TokenConfig{
		Secret: []byte("test-secret-at-least-32-characters!!"),
		Issuer: "staffd-test",
		TTL:    ttl,
	})
	return tokens, Auth(tokens)
}

func TestAuth_MissingToken(t *testing.T) {
	_, guard := newGuard(t, time.Hour)

	handler := guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached without a token")
	}))

	req := httptest.NewRequest("GET", "/api/employees", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestAuth_MalformedHeader(t *testing.T) {
	_, guard := newGuard(t, time.Hour)

	handler := guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached with a malformed header")
	}))

	for _, header := range []string{"Token abc", "Bearer", "garbage"} {
		req := httptest.NewRequest("GET", "/api/employees", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want %d", header, w.Code, http.StatusUnauthorized)
		}
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	tokens, _ := newGuard(t, -time.Minute)
	_, guard := newGuard(t, time.Hour)

	// Signed with the same secret but already expired.
	token, _, err := tokens.Issue(uuid.New(), uuid.New(), "admin@acme.test")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	handler := guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached with an expired token")
	}))

	req := httptest.NewRequest("GET", "/api/employees", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestAuth_InjectsCallerContext(t *testing.T) {
	tokens, guard := newGuard(t, time.Hour)

	userID := uuid.New()
	orgID := uuid.New()
	token, _, err := tokens.Issue(userID, orgID, "admin@acme.test")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	var called bool
	handler := guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true

		gotUser, ok := GetUserID(r.Context())
		if !ok || gotUser != userID {
			t.Errorf("GetUserID = %v/%v, want %v", gotUser, ok, userID)
		}
		gotOrg, ok := GetOrgID(r.Context())
		if !ok || gotOrg != orgID {
			t.Errorf("GetOrgID = %v/%v, want %v", gotOrg, ok, orgID)
		}
		gotEmail, ok := GetEmail(r.Context())
		if !ok || gotEmail != "admin@acme.test" {
			t.Errorf("GetEmail = %q/%v, want %q", gotEmail, ok, "admin@acme.test")
		}
	}))

	req := httptest.NewRequest("GET", "/api/employees", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if !called {
		t.Fatal("handler was not reached with a valid token")
	}
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestAuth_CaseInsensitiveBearer(t *testing.T) {
	tokens, guard := newGuard(t, time.Hour)
	token, _, err := tokens.Issue(uuid.New(), uuid.New(), "admin@acme.test")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	handler := guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/employees", nil)
	req.Header.Set("Authorization", "bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}
