package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"barangay-backend/internal/middleware"
	"barangay-backend/internal/models"
	"barangay-backend/internal/services"
	"barangay-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type ResidentHandler struct {
	residents *services.ResidentService
	reports   *services.ReportService
	activity  *services.ActivityService
}

func NewResidentHandler(residents *services.ResidentService, reports *services.ReportService, activity *services.ActivityService) *ResidentHandler {
	return &ResidentHandler{residents: residents, reports: reports, activity: activity}
}

func (h *ResidentHandler) List(w http.ResponseWriter, r *http.Request) {
	residents, err := h.residents.List(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to list residents")
		return
	}
	utils.JSON(w, http.StatusOK, residents)
}

func (h *ResidentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateResidentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := h.residents.Create(r.Context(), &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if actorID, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		h.activity.Record(r.Context(), actorID, "create", "resident", res.ID,
			fmt.Sprintf("Registered resident %s", res.FullName()))
	}
	utils.JSON(w, http.StatusCreated, res)
}

func (h *ResidentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid resident id")
		return
	}

	res, err := h.residents.Get(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Resident not found")
		return
	}
	utils.JSON(w, http.StatusOK, res)
}

func (h *ResidentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid resident id")
		return
	}

	var req models.UpdateResidentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := h.residents.Update(r.Context(), id, &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if actorID, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		h.activity.Record(r.Context(), actorID, "update", "resident", id,
			fmt.Sprintf("Updated resident %s", res.FullName))
	}
	utils.JSON(w, http.StatusOK, res)
}

func (h *ResidentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid resident id")
		return
	}

	if err := h.residents.Delete(r.Context(), id); err != nil {
		utils.Error(w, http.StatusNotFound, "Resident not found")
		return
	}

	if actorID, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		h.activity.Record(r.Context(), actorID, "delete", "resident", id, "Deleted resident record")
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Resident deleted"})
}

func (h *ResidentHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.residents.Analytics(r.Context(), r.URL.Query().Get("period"))
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to build analytics")
		return
	}
	utils.JSON(w, http.StatusOK, analytics)
}

// ExportCSV streams the roster export
func (h *ResidentHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	data, err := h.reports.ResidentsCSVExport(r.Context())
	if err != nil {
		if errors.Is(err, services.ErrNoResidents) {
			utils.Error(w, http.StatusNotFound, err.Error())
			return
		}
		utils.Error(w, http.StatusInternalServerError, "Failed to build export")
		return
	}
	utils.File(w, "text/csv", "residents.csv", data)
}

func pathID(r *http.Request, key string) (int, error) {
	return strconv.Atoi(mux.Vars(r)[key])
}
