package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"barangay-backend/internal/middleware"
	"barangay-backend/internal/models"
	"barangay-backend/internal/services"
	"barangay-backend/pkg/utils"
)

type DisbursementHandler struct {
	disbursements *services.DisbursementService
	activity      *services.ActivityService
}

func NewDisbursementHandler(disbursements *services.DisbursementService, activity *services.ActivityService) *DisbursementHandler {
	return &DisbursementHandler{disbursements: disbursements, activity: activity}
}

func (h *DisbursementHandler) List(w http.ResponseWriter, r *http.Request) {
	disbursements, err := h.disbursements.List(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to list disbursements")
		return
	}
	utils.JSON(w, http.StatusOK, disbursements)
}

func (h *DisbursementHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, 0)
}

func (h *DisbursementHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid disbursement id")
		return
	}
	h.save(w, r, id)
}

func (h *DisbursementHandler) save(w http.ResponseWriter, r *http.Request, id int) {
	var req models.SaveDisbursementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	d, err := h.disbursements.Save(r.Context(), id, &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if actorID, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		action := "update"
		if id == 0 {
			action = "create"
		}
		h.activity.Record(r.Context(), actorID, action, "disbursement", d.ID,
			fmt.Sprintf("Disbursed %.2f to %s", d.Amount, d.BeneficiaryName))
	}

	status := http.StatusOK
	if id == 0 {
		status = http.StatusCreated
	}
	utils.JSON(w, status, d)
}

func (h *DisbursementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid disbursement id")
		return
	}

	if err := h.disbursements.Delete(r.Context(), id); err != nil {
		utils.Error(w, http.StatusNotFound, "Disbursement not found")
		return
	}

	if actorID, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		h.activity.Record(r.Context(), actorID, "delete", "disbursement", id, "Deleted disbursement")
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Disbursement deleted"})
}

func (h *DisbursementHandler) ListBeneficiaries(w http.ResponseWriter, r *http.Request) {
	beneficiaries, err := h.disbursements.ListBeneficiaries(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to list beneficiaries")
		return
	}
	utils.JSON(w, http.StatusOK, beneficiaries)
}
