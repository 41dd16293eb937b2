package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image/png"

	"barangay-backend/internal/auth"
	"barangay-backend/internal/models"
	"barangay-backend/internal/repositories"

	"github.com/pquerna/otp/totp"
)

var ErrInvalidTOTPCode = errors.New("invalid verification code")

type TOTPService struct {
	users  *repositories.UserRepository
	issuer string
}

func NewTOTPService(users *repositories.UserRepository, issuer string) *TOTPService {
	return &TOTPService{users: users, issuer: issuer}
}

// GenerateSetup creates a new TOTP secret for the user and returns it
// with a QR code for authenticator apps. The secret stays pending until
// the user verifies a code.
func (s *TOTPService) GenerateSetup(ctx context.Context, userID int) (*models.TOTPSetupResponse, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.TOTPEnabled {
		return nil, errors.New("two-factor authentication is already enabled")
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.issuer,
		AccountName: user.Email,
	})
	if err != nil {
		return nil, err
	}

	img, err := key.Image(200, 200)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}

	if err := s.users.SetTOTPSecret(ctx, userID, key.Secret()); err != nil {
		return nil, err
	}

	return &models.TOTPSetupResponse{
		Secret:      key.Secret(),
		OTPAuthURL:  key.URL(),
		QRCode:      base64.StdEncoding.EncodeToString(buf.Bytes()),
		Issuer:      s.issuer,
		AccountName: user.Email,
	}, nil
}

// VerifyAndEnable confirms the pending secret with a live code and
// turns 2FA on
func (s *TOTPService) VerifyAndEnable(ctx context.Context, userID int, code string) error {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return err
	}
	if user.TOTPSecret == "" {
		return errors.New("no pending two-factor setup")
	}
	if !totp.Validate(code, user.TOTPSecret) {
		return ErrInvalidTOTPCode
	}
	return s.users.EnableTOTP(ctx, userID)
}

// VerifyLogin checks a code during the second login step
func (s *TOTPService) VerifyLogin(ctx context.Context, userID int, code string) (*models.User, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.TOTPEnabled || user.TOTPSecret == "" {
		return nil, errors.New("two-factor authentication is not enabled")
	}
	if !totp.Validate(code, user.TOTPSecret) {
		return nil, ErrInvalidTOTPCode
	}
	return user, nil
}

// Disable turns 2FA off after re-verifying both password and a code
func (s *TOTPService) Disable(ctx context.Context, userID int, password, code string) error {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.VerifyPassword(user.PasswordHash, password) {
		return ErrInvalidCredentials
	}
	if !totp.Validate(code, user.TOTPSecret) {
		return ErrInvalidTOTPCode
	}
	return s.users.DisableTOTP(ctx, userID)
}
