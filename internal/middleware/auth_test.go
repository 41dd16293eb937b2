package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"barangay-backend/internal/auth"
	"barangay-backend/internal/config"
	"barangay-backend/internal/models"
)

func testSetup() (*auth.JWTManager, *AuthMiddleware) {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpirationHours = 1
	cfg.JWT.Issuer = "barangay-backend"
	jm := auth.NewJWTManager(cfg)
	return jm, NewAuthMiddleware(jm)
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate(t *testing.T) {
	jm, mw := testSetup()
	user := &models.User{ID: 7, Email: "staff@example.com", Role: "staff"}

	session, err := jm.GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	pending, err := jm.GenerateTempToken(user)
	if err != nil {
		t.Fatalf("GenerateTempToken() error = %v", err)
	}

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"session token accepted", "Bearer " + session, http.StatusOK},
		{"2fa pending token rejected", "Bearer " + pending, http.StatusUnauthorized},
		{"missing header rejected", "", http.StatusUnauthorized},
		{"malformed header rejected", "Token abc", http.StatusUnauthorized},
	}

	handler := mw.Authenticate(okHandler())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/residents", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	_, mw := testSetup()

	tests := []struct {
		name       string
		role       string
		wantStatus int
	}{
		{"admin allowed", "admin", http.StatusOK},
		{"staff forbidden", "staff", http.StatusForbidden},
		{"no role forbidden", "", http.StatusForbidden},
	}

	handler := mw.RequireAdmin(okHandler())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, "/admin/residents/1", nil)
			if tt.role != "" {
				req = req.WithContext(context.WithValue(req.Context(), RoleKey, tt.role))
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
