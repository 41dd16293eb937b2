package router

import (
	"net/http"

	"barangay-backend/internal/handlers"
	"barangay-backend/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers bundles everything the router mounts
type Handlers struct {
	Auth         *handlers.AuthHandler
	Profile      *handlers.ProfileHandler
	Resident     *handlers.ResidentHandler
	Household    *handlers.HouseholdHandler
	Financial    *handlers.FinancialHandler
	Project      *handlers.ProjectHandler
	Disbursement *handlers.DisbursementHandler
	Dashboard    *handlers.DashboardHandler
	Health       *handlers.HealthHandler
}

// New builds the API router. Auth, health, metrics and the resident
// engagement endpoints are public; everything else requires a valid
// staff token, and destructive routes additionally require the admin
// role.
func New(h *Handlers, authMw *middleware.AuthMiddleware) *mux.Router {
	r := mux.NewRouter()

	// Public
	r.HandleFunc("/auth/signup", h.Auth.Signup).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)
	r.HandleFunc("/auth/verify-2fa", h.Auth.Verify2FA).Methods(http.MethodPost)

	r.HandleFunc("/health", h.Health.Check).Methods(http.MethodGet)
	r.HandleFunc("/health/ready", h.Health.Check).Methods(http.MethodGet)
	r.HandleFunc("/health/check", h.Health.Full).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	// Resident-facing engagement on published projects
	r.HandleFunc("/projects/{id:[0-9]+}/reactions", h.Project.Reactions).Methods(http.MethodGet)
	r.HandleFunc("/projects/{id:[0-9]+}/reactions", h.Project.AddReaction).Methods(http.MethodPost)
	r.HandleFunc("/projects/{id:[0-9]+}/feedbacks", h.Project.AddFeedback).Methods(http.MethodPost)

	// Staff-only
	s := r.NewRoute().Subrouter()
	s.Use(authMw.Authenticate)

	s.HandleFunc("/admin/dashboard", h.Dashboard.Stats).Methods(http.MethodGet)
	s.HandleFunc("/admin/activity-logs", h.Dashboard.ActivityLogs).Methods(http.MethodGet)

	s.HandleFunc("/admin/profile", h.Profile.Get).Methods(http.MethodGet)
	s.HandleFunc("/staff/profile/update", h.Profile.Update).Methods(http.MethodPut)
	s.HandleFunc("/admin/profile/2fa/setup", h.Profile.TOTPSetup).Methods(http.MethodPost)
	s.HandleFunc("/admin/profile/2fa/verify", h.Profile.TOTPEnable).Methods(http.MethodPost)
	s.HandleFunc("/admin/profile/2fa/disable", h.Profile.TOTPDisable).Methods(http.MethodPost)

	s.HandleFunc("/admin/residents", h.Resident.List).Methods(http.MethodGet)
	s.HandleFunc("/admin/residents", h.Resident.Create).Methods(http.MethodPost)
	s.HandleFunc("/admin/residents/analytics", h.Resident.Analytics).Methods(http.MethodGet)
	s.HandleFunc("/admin/residents/export", h.Resident.ExportCSV).Methods(http.MethodGet)
	s.HandleFunc("/admin/residents/{id:[0-9]+}", h.Resident.Get).Methods(http.MethodGet)
	s.HandleFunc("/admin/residents/{id:[0-9]+}", h.Resident.Update).Methods(http.MethodPut)
	s.Handle("/admin/residents/{id:[0-9]+}", authMw.RequireAdmin(http.HandlerFunc(h.Resident.Delete))).Methods(http.MethodDelete)

	s.HandleFunc("/admin/households", h.Household.List).Methods(http.MethodGet)
	s.HandleFunc("/admin/households", h.Household.Create).Methods(http.MethodPost)
	s.HandleFunc("/admin/households/statements", h.Household.ExportStatements).Methods(http.MethodGet)
	s.HandleFunc("/admin/households/{id:[0-9]+}", h.Household.Get).Methods(http.MethodGet)
	s.HandleFunc("/admin/households/{id:[0-9]+}", h.Household.Update).Methods(http.MethodPut)
	s.Handle("/admin/households/{id:[0-9]+}", authMw.RequireAdmin(http.HandlerFunc(h.Household.Delete))).Methods(http.MethodDelete)
	s.HandleFunc("/admin/households/{id:[0-9]+}/sync-members", h.Household.SyncMembers).Methods(http.MethodPost)

	s.HandleFunc("/document-requests/generate-receipt", h.Financial.GenerateDocumentReceipt).Methods(http.MethodPost)
	s.HandleFunc("/asset-requests/generate-receipt", h.Financial.GenerateAssetReceipt).Methods(http.MethodPost)
	s.HandleFunc("/financial-records/receipts/all", h.Financial.ListReceipts).Methods(http.MethodGet)
	s.HandleFunc("/financial-records/summary", h.Financial.Summary).Methods(http.MethodGet)
	s.HandleFunc("/financial-records/export", h.Financial.ExportCSV).Methods(http.MethodGet)
	s.HandleFunc("/financial-records/report", h.Financial.ExportPDF).Methods(http.MethodGet)

	s.HandleFunc("/admin/projects", h.Project.List).Methods(http.MethodGet)
	s.HandleFunc("/admin/projects", h.Project.Create).Methods(http.MethodPost)
	s.HandleFunc("/admin/projects/{id:[0-9]+}", h.Project.Get).Methods(http.MethodGet)
	s.HandleFunc("/admin/projects/{id:[0-9]+}", h.Project.Update).Methods(http.MethodPut)
	s.Handle("/admin/projects/{id:[0-9]+}", authMw.RequireAdmin(http.HandlerFunc(h.Project.Delete))).Methods(http.MethodDelete)
	s.HandleFunc("/admin/projects/{id:[0-9]+}/publish", h.Project.Publish).Methods(http.MethodPatch)
	s.HandleFunc("/admin/projects/{id:[0-9]+}/complete", h.Project.Complete).Methods(http.MethodPatch)
	s.HandleFunc("/admin/projects/{id:[0-9]+}/files", h.Project.ListFiles).Methods(http.MethodGet)
	s.HandleFunc("/admin/projects/{id:[0-9]+}/files", h.Project.UploadFile).Methods(http.MethodPost)
	s.HandleFunc("/admin/projects/{id:[0-9]+}/feedbacks", h.Project.ListProjectFeedback).Methods(http.MethodGet)
	s.HandleFunc("/admin/projects/{id:[0-9]+}/report", h.Project.Report).Methods(http.MethodGet)
	s.HandleFunc("/admin/feedbacks", h.Project.ListFeedback).Methods(http.MethodGet)

	s.HandleFunc("/disbursements", h.Disbursement.List).Methods(http.MethodGet)
	s.HandleFunc("/disbursements", h.Disbursement.Create).Methods(http.MethodPost)
	s.HandleFunc("/disbursements/{id:[0-9]+}", h.Disbursement.Update).Methods(http.MethodPut)
	s.Handle("/disbursements/{id:[0-9]+}", authMw.RequireAdmin(http.HandlerFunc(h.Disbursement.Delete))).Methods(http.MethodDelete)
	s.HandleFunc("/beneficiaries", h.Disbursement.ListBeneficiaries).Methods(http.MethodGet)

	return r
}
