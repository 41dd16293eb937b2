package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"barangay-backend/internal/auth"
	"barangay-backend/internal/models"
	"barangay-backend/internal/services"
	"barangay-backend/pkg/utils"
)

type AuthHandler struct {
	users      *services.UserService
	totp       *services.TOTPService
	jwtManager *auth.JWTManager
}

func NewAuthHandler(users *services.UserService, totp *services.TOTPService, jwtManager *auth.JWTManager) *AuthHandler {
	return &AuthHandler{users: users, totp: totp, jwtManager: jwtManager}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.users.Signup(r.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			utils.Error(w, http.StatusConflict, err.Error())
			return
		}
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.JSON(w, http.StatusCreated, resp)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.users.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.Error(w, http.StatusUnauthorized, err.Error())
			return
		}
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

// Verify2FA completes a login for accounts with 2FA enabled
func (h *AuthHandler) Verify2FA(w http.ResponseWriter, r *http.Request) {
	var req models.TOTPVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	claims, err := h.jwtManager.ValidateTempToken(req.TempToken)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "Invalid or expired temporary token")
		return
	}

	user, err := h.totp.VerifyLogin(r.Context(), claims.UserID, req.Code)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, err.Error())
		return
	}

	token, err := h.jwtManager.GenerateToken(user)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to issue session token")
		return
	}
	utils.JSON(w, http.StatusOK, &models.AuthResponse{Token: token, User: user})
}
