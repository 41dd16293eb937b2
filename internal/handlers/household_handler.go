package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"barangay-backend/internal/middleware"
	"barangay-backend/internal/models"
	"barangay-backend/internal/services"
	"barangay-backend/pkg/utils"
)

// saveErrorStatus distinguishes membership conflicts from plain
// validation failures
func saveErrorStatus(err error) int {
	if errors.Is(err, services.ErrMembershipConflict) {
		return http.StatusConflict
	}
	return http.StatusBadRequest
}

type HouseholdHandler struct {
	households *services.HouseholdService
	reports    *services.ReportService
	activity   *services.ActivityService
}

func NewHouseholdHandler(households *services.HouseholdService, reports *services.ReportService, activity *services.ActivityService) *HouseholdHandler {
	return &HouseholdHandler{households: households, reports: reports, activity: activity}
}

func (h *HouseholdHandler) List(w http.ResponseWriter, r *http.Request) {
	households, err := h.households.List(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to list households")
		return
	}
	utils.JSON(w, http.StatusOK, households)
}

func (h *HouseholdHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.SaveHouseholdRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	household, err := h.households.Save(r.Context(), 0, &req)
	if err != nil {
		utils.Error(w, saveErrorStatus(err), err.Error())
		return
	}

	if actorID, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		h.activity.Record(r.Context(), actorID, "create", "household", household.ID,
			fmt.Sprintf("Created household %s", household.Code))
	}
	utils.JSON(w, http.StatusCreated, household)
}

func (h *HouseholdHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid household id")
		return
	}

	detail, err := h.households.Detail(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Household not found")
		return
	}
	utils.JSON(w, http.StatusOK, detail)
}

func (h *HouseholdHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid household id")
		return
	}

	var req models.SaveHouseholdRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	household, err := h.households.Save(r.Context(), id, &req)
	if err != nil {
		utils.Error(w, saveErrorStatus(err), err.Error())
		return
	}

	if actorID, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		h.activity.Record(r.Context(), actorID, "update", "household", id,
			fmt.Sprintf("Updated household %s", household.Code))
	}
	utils.JSON(w, http.StatusOK, household)
}

func (h *HouseholdHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid household id")
		return
	}

	if err := h.households.Delete(r.Context(), id); err != nil {
		utils.Error(w, http.StatusNotFound, "Household not found")
		return
	}

	if actorID, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		h.activity.Record(r.Context(), actorID, "delete", "household", id, "Deleted household")
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Household deleted"})
}

// SyncMembers recounts a household's members against resident records
func (h *HouseholdHandler) SyncMembers(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid household id")
		return
	}

	household, err := h.households.SyncMembers(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Household not found")
		return
	}

	if actorID, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		h.activity.Record(r.Context(), actorID, "sync", "household", id,
			fmt.Sprintf("Synced member count for %s", household.Code))
	}
	utils.JSON(w, http.StatusOK, household)
}

// ExportStatements bundles per-household statement PDFs into a zip
func (h *HouseholdHandler) ExportStatements(w http.ResponseWriter, r *http.Request) {
	data, err := h.reports.HouseholdStatementsZip(r.Context())
	if err != nil {
		utils.Error(w, http.StatusNotFound, err.Error())
		return
	}
	utils.File(w, "application/zip", "household-statements.zip", data)
}
