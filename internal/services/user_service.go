package services

import (
	"context"
	"errors"
	"log"
	"math"
	"strings"

	"barangay-backend/internal/auth"
	"barangay-backend/internal/models"
	"barangay-backend/internal/repositories"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidPhone       = errors.New("invalid Philippine mobile number")
)

type UserService struct {
	users      *repositories.UserRepository
	jwtManager *auth.JWTManager
}

func NewUserService(users *repositories.UserRepository, jwtManager *auth.JWTManager) *UserService {
	return &UserService{users: users, jwtManager: jwtManager}
}

func (s *UserService) Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error) {
	if req.FirstName == "" || req.LastName == "" || req.Email == "" {
		return nil, errors.New("first name, last name and email are required")
	}
	if len(req.Password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}

	if existing, err := s.users.GetByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Role:         "staff",
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.jwtManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	log.Printf("[UserService] New staff account registered: %s", user.Email)
	return &models.AuthResponse{Token: token, User: user}, nil
}

// Login authenticates a staff user. Accounts with 2FA enabled get a
// short-lived temp token instead of a session token; the client must
// complete the verification step.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, errors.New("account is deactivated")
	}
	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	if user.TOTPEnabled {
		tempToken, err := s.jwtManager.GenerateTempToken(user)
		if err != nil {
			return nil, err
		}
		return &models.AuthResponse{Requires2FA: true, TempToken: tempToken}, nil
	}

	token, err := s.jwtManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: user}, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID int) (*models.ProfileResponse, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.ProfileResponse{
		User:              user,
		CompletionPercent: CompletionPercent(user),
	}, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID int, req *models.UpdateProfileRequest) (*models.ProfileResponse, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName == "" || req.LastName == "" || req.Email == "" {
		return nil, errors.New("first name, last name and email are required")
	}
	if !strings.Contains(req.Email, "@") {
		return nil, errors.New("invalid email address")
	}

	phone := req.Phone
	if phone != "" {
		phone, err = NormalizePhone(phone)
		if err != nil {
			return nil, err
		}
	}

	user.FirstName = req.FirstName
	user.MiddleName = req.MiddleName
	user.LastName = req.LastName
	user.Email = strings.ToLower(strings.TrimSpace(req.Email))
	user.Phone = phone
	user.Position = req.Position
	user.Address = req.Address
	user.BirthDate = req.BirthDate
	user.PhotoURL = req.PhotoURL
	user.Bio = req.Bio

	if err := s.users.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	if req.Password != "" {
		if len(req.Password) < 8 {
			return nil, errors.New("password must be at least 8 characters")
		}
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
			return nil, err
		}
	}

	return &models.ProfileResponse{
		User:              user,
		CompletionPercent: CompletionPercent(user),
	}, nil
}

// Profile field groups and their weights. Core identity fields carry
// half the score, contact details a third, the rest is nice-to-have.
var completionGroups = []struct {
	weight float64
	fields func(u *models.User) []string
}{
	{50, func(u *models.User) []string {
		return []string{u.FirstName, u.LastName, u.Email, u.Phone}
	}},
	{35, func(u *models.User) []string {
		return []string{u.Position, u.Address, u.BirthDate}
	}},
	{15, func(u *models.User) []string {
		return []string{u.MiddleName, u.PhotoURL, u.Bio}
	}},
}

// CompletionPercent scores how complete a profile is. Filling any field
// never lowers the score, and 100 requires every field.
func CompletionPercent(u *models.User) int {
	var score float64
	for _, g := range completionGroups {
		fields := g.fields(u)
		filled := 0
		for _, f := range fields {
			if strings.TrimSpace(f) != "" {
				filled++
			}
		}
		score += g.weight * float64(filled) / float64(len(fields))
	}
	return int(math.Round(score))
}

// NormalizePhone canonicalizes a Philippine mobile number to the local
// 09XXXXXXXXX form. Accepts +63, 63 and bare 9 prefixes, with spaces
// and dashes stripped.
func NormalizePhone(phone string) (string, error) {
	var digits strings.Builder
	for _, c := range strings.TrimPrefix(strings.TrimSpace(phone), "+") {
		switch {
		case c >= '0' && c <= '9':
			digits.WriteRune(c)
		case c == ' ' || c == '-' || c == '(' || c == ')':
			// separators are ignored
		default:
			return "", ErrInvalidPhone
		}
	}

	d := digits.String()
	switch {
	case len(d) == 12 && strings.HasPrefix(d, "639"):
		d = "0" + d[2:]
	case len(d) == 10 && strings.HasPrefix(d, "9"):
		d = "0" + d
	}

	if len(d) != 11 || !strings.HasPrefix(d, "09") {
		return "", ErrInvalidPhone
	}
	return d, nil
}
