package handlers

import (
	"encoding/json"
	"net/http"

	"barangay-backend/internal/middleware"
	"barangay-backend/internal/models"
	"barangay-backend/internal/services"
	"barangay-backend/pkg/utils"
)

type FinancialHandler struct {
	financial *services.FinancialService
	reports   *services.ReportService
	activity  *services.ActivityService
}

func NewFinancialHandler(financial *services.FinancialService, reports *services.ReportService, activity *services.ActivityService) *FinancialHandler {
	return &FinancialHandler{financial: financial, reports: reports, activity: activity}
}

func (h *FinancialHandler) ListReceipts(w http.ResponseWriter, r *http.Request) {
	receipts, err := h.financial.ListReceipts(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to list receipts")
		return
	}
	utils.JSON(w, http.StatusOK, receipts)
}

// GenerateDocumentReceipt issues a receipt for document request fees
func (h *FinancialHandler) GenerateDocumentReceipt(w http.ResponseWriter, r *http.Request) {
	h.generate(w, r, models.ReceiptTypeDocument)
}

// GenerateAssetReceipt issues a receipt for asset rental fees
func (h *FinancialHandler) GenerateAssetReceipt(w http.ResponseWriter, r *http.Request) {
	h.generate(w, r, models.ReceiptTypeAsset)
}

func (h *FinancialHandler) generate(w http.ResponseWriter, r *http.Request, receiptType string) {
	var req models.GenerateReceiptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rec, err := h.financial.GenerateReceipt(r.Context(), receiptType, &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if actorID, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		h.activity.Record(r.Context(), actorID, "create", "receipt", rec.ID,
			"Issued receipt "+rec.ReceiptNumber)
	}
	utils.JSON(w, http.StatusCreated, rec)
}

func (h *FinancialHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.financial.GetSummary(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to build summary")
		return
	}
	utils.JSON(w, http.StatusOK, summary)
}

func (h *FinancialHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	data, err := h.reports.FinancialCSVExport(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to build export")
		return
	}
	utils.File(w, "text/csv", "financial-report.csv", data)
}

func (h *FinancialHandler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	data, err := h.reports.FinancialPDFExport(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to build report")
		return
	}
	utils.File(w, "application/pdf", "financial-report.pdf", data)
}
