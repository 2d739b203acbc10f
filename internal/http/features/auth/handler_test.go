package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		expectedError string
	}{
		{
			name:          "invalid json",
			body:          `{invalid}`,
			expectedError: "invalid request body",
		},
		{
			name:          "missing org name",
			body:          `{"adminName":"Jane","email":"jane@acme.test","password":"secret1"}`,
			expectedError: "all fields are required",
		},
		{
			name:          "missing email",
			body:          `{"orgName":"Acme","adminName":"Jane","password":"secret1"}`,
			expectedError: "all fields are required",
		},
		{
			name:          "short password",
			body:          `{"orgName":"Acme","adminName":"Jane","email":"jane@acme.test","password":"12345"}`,
			expectedError: "password must be at least 6 characters",
		},
	}

	// Validation must reject these before the service is touched.
	handler := &Handler{}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			handler.Register(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}

			var response map[string]string
			json.NewDecoder(rec.Body).Decode(&response)
			if response["error"] != tt.expectedError {
				t.Errorf("error = %q, want %q", response["error"], tt.expectedError)
			}
		})
	}
}

func TestLogin_Validation(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		expectedError string
	}{
		{
			name:          "invalid json",
			body:          `{invalid}`,
			expectedError: "invalid request body",
		},
		{
			name:          "missing password",
			body:          `{"email":"jane@acme.test"}`,
			expectedError: "email and password are required",
		},
		{
			name:          "missing email",
			body:          `{"password":"secret1"}`,
			expectedError: "email and password are required",
		},
	}

	handler := &Handler{}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			handler.Login(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}

			var response map[string]string
			json.NewDecoder(rec.Body).Decode(&response)
			if response["error"] != tt.expectedError {
				t.Errorf("error = %q, want %q", response["error"], tt.expectedError)
			}
		})
	}
}
