package handlers

import (
	"net/http"

	"barangay-backend/internal/services"
	"barangay-backend/pkg/utils"
)

type DashboardHandler struct {
	dashboard *services.DashboardService
	activity  *services.ActivityService
}

func NewDashboardHandler(dashboard *services.DashboardService, activity *services.ActivityService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, activity: activity}
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboard.Stats(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to build dashboard")
		return
	}
	utils.JSON(w, http.StatusOK, stats)
}

// ActivityLogs returns the recent audit trail
func (h *DashboardHandler) ActivityLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.activity.Recent(r.Context(), queryInt(r, "limit", 50))
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to list activity")
		return
	}
	utils.JSON(w, http.StatusOK, logs)
}
