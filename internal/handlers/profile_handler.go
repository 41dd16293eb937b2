package handlers

import (
	"encoding/json"
	"net/http"

	"barangay-backend/internal/middleware"
	"barangay-backend/internal/models"
	"barangay-backend/internal/services"
	"barangay-backend/pkg/utils"
)

type ProfileHandler struct {
	users    *services.UserService
	totp     *services.TOTPService
	activity *services.ActivityService
}

func NewProfileHandler(users *services.UserService, totp *services.TOTPService, activity *services.ActivityService) *ProfileHandler {
	return &ProfileHandler{users: users, totp: totp, activity: activity}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	profile, err := h.users.GetProfile(r.Context(), userID)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Profile not found")
		return
	}
	utils.JSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	profile, err := h.users.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	h.activity.Record(r.Context(), userID, "update", "profile", userID, "Updated own profile")
	utils.JSON(w, http.StatusOK, profile)
}

// TOTPSetup starts 2FA enrollment for the signed-in user
func (h *ProfileHandler) TOTPSetup(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	setup, err := h.totp.GenerateSetup(r.Context(), userID)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, setup)
}

func (h *ProfileHandler) TOTPEnable(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req models.TOTPEnableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.totp.VerifyAndEnable(r.Context(), userID, req.Code); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	h.activity.Record(r.Context(), userID, "update", "profile", userID, "Enabled two-factor authentication")
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Two-factor authentication enabled"})
}

func (h *ProfileHandler) TOTPDisable(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req models.TOTPDisableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.totp.Disable(r.Context(), userID, req.Password, req.Code); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	h.activity.Record(r.Context(), userID, "update", "profile", userID, "Disabled two-factor authentication")
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Two-factor authentication disabled"})
}
