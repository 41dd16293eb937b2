package models

import "time"

type User struct {
	ID           int       `json:"id"`
	FirstName    string    `json:"first_name"`
	MiddleName   string    `json:"middle_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Position     string    `json:"position"`
	Address      string    `json:"address"`
	BirthDate    string    `json:"birth_date"` // YYYY-MM-DD, optional
	PhotoURL     string    `json:"photo_url"`
	Bio          string    `json:"bio"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	Role         string    `json:"role"` // admin or staff
	IsActive     bool      `json:"is_active"`
	TOTPSecret   string    `json:"-"`
	TOTPEnabled  bool      `json:"totp_enabled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SignupRequest represents the request body for signup
type SignupRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents the response after successful authentication.
// When the account has 2FA enabled, Token is empty and TempToken carries
// the short-lived token for the verification step.
type AuthResponse struct {
	Token       string `json:"token,omitempty"`
	Requires2FA bool   `json:"requires_2fa,omitempty"`
	TempToken   string `json:"temp_token,omitempty"`
	User        *User  `json:"user,omitempty"`
}

// UpdateProfileRequest represents the request body for profile edits
type UpdateProfileRequest struct {
	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Position   string `json:"position"`
	Address    string `json:"address"`
	BirthDate  string `json:"birth_date"`
	PhotoURL   string `json:"photo_url"`
	Bio        string `json:"bio"`
	Password   string `json:"password,omitempty"` // Optional
}

// ProfileResponse wraps a user with the derived completion percentage
type ProfileResponse struct {
	User              *User `json:"user"`
	CompletionPercent int   `json:"completion_percent"`
}
