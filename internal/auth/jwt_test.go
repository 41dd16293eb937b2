package auth

import (
	"testing"

	"barangay-backend/internal/config"
	"barangay-backend/internal/models"
)

func testJWTManager() *JWTManager {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpirationHours = 1
	cfg.JWT.Issuer = "barangay-backend"
	return NewJWTManager(cfg)
}

func TestSessionTokenRoundTrip(t *testing.T) {
	m := testJWTManager()
	user := &models.User{ID: 3, Email: "admin@example.com", Role: "admin"}

	token, err := m.GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != user.ID || claims.Email != user.Email || claims.Role != user.Role {
		t.Errorf("claims = %+v, want user %d %s %s", claims, user.ID, user.Email, user.Role)
	}
}

func TestPendingTokenRejectedAsSession(t *testing.T) {
	// The short-lived token issued before TOTP verification must never
	// pass full session validation, even though both share the secret
	m := testJWTManager()
	user := &models.User{ID: 7, Email: "staff@example.com", TOTPEnabled: true}

	temp, err := m.GenerateTempToken(user)
	if err != nil {
		t.Fatalf("GenerateTempToken() error = %v", err)
	}

	if claims, err := m.ValidateToken(temp); err == nil {
		t.Fatalf("2FA-pending token validated as session token: claims = %+v", claims)
	}
}

func TestSessionTokenRejectedAsPending(t *testing.T) {
	m := testJWTManager()
	user := &models.User{ID: 3, Email: "admin@example.com", Role: "admin"}

	token, err := m.GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err := m.ValidateTempToken(token); err == nil {
		t.Fatal("session token validated as 2FA-pending token")
	}
}

func TestTempTokenRoundTrip(t *testing.T) {
	m := testJWTManager()
	user := &models.User{ID: 7, Email: "staff@example.com"}

	temp, err := m.GenerateTempToken(user)
	if err != nil {
		t.Fatalf("GenerateTempToken() error = %v", err)
	}

	claims, err := m.ValidateTempToken(temp)
	if err != nil {
		t.Fatalf("ValidateTempToken() error = %v", err)
	}
	if claims.UserID != user.ID || claims.Email != user.Email {
		t.Errorf("claims = %+v, want user %d %s", claims, user.ID, user.Email)
	}
}
