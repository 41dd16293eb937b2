package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"barangay-backend/internal/auth"
	"barangay-backend/internal/cache"
	"barangay-backend/internal/config"
	"barangay-backend/internal/database"
	"barangay-backend/internal/db"
	"barangay-backend/internal/handlers"
	"barangay-backend/internal/health"
	"barangay-backend/internal/middleware"
	"barangay-backend/internal/monitoring"
	"barangay-backend/internal/repositories"
	"barangay-backend/internal/router"
	"barangay-backend/internal/services"
	"barangay-backend/internal/storage"
	"barangay-backend/migrations"
)

func main() {
	cfg := config.Load()

	pool := db.Connect(cfg)
	defer pool.Close()

	migrator := database.NewMigrator(pool, migrations.FS)
	if err := migrator.Run(context.Background()); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	if err := cache.Init(cfg); err != nil {
		log.Printf("[Main] Redis unavailable, caching disabled: %v", err)
	}

	store, err := storage.New(cfg)
	if err != nil {
		log.Printf("[Main] Object storage disabled: %v", err)
		store = nil
	}

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	residentRepo := repositories.NewResidentRepository(pool)
	householdRepo := repositories.NewHouseholdRepository(pool)
	receiptRepo := repositories.NewReceiptRepository(pool)
	projectRepo := repositories.NewProjectRepository(pool)
	feedbackRepo := repositories.NewFeedbackRepository(pool)
	disbursementRepo := repositories.NewDisbursementRepository(pool)
	activityRepo := repositories.NewActivityLogRepository(pool)

	// Services
	jwtManager := auth.NewJWTManager(cfg)
	activitySvc := services.NewActivityService(activityRepo)
	userSvc := services.NewUserService(userRepo, jwtManager)
	totpSvc := services.NewTOTPService(userRepo, cfg.JWT.Issuer)
	residentSvc := services.NewResidentService(residentRepo)
	householdSvc := services.NewHouseholdService(householdRepo, residentRepo)
	financialSvc := services.NewFinancialService(receiptRepo)
	projectSvc := services.NewProjectService(projectRepo, feedbackRepo, store)
	disbursementSvc := services.NewDisbursementService(disbursementRepo)
	dashboardSvc := services.NewDashboardService(residentRepo, householdRepo, projectRepo, receiptRepo, disbursementRepo, activitySvc)
	reportSvc := services.NewReportService(residentRepo, householdRepo, receiptRepo, disbursementRepo)

	checker := health.NewHealthChecker(pool, store)

	// Handlers
	h := &router.Handlers{
		Auth:         handlers.NewAuthHandler(userSvc, totpSvc, jwtManager),
		Profile:      handlers.NewProfileHandler(userSvc, totpSvc, activitySvc),
		Resident:     handlers.NewResidentHandler(residentSvc, reportSvc, activitySvc),
		Household:    handlers.NewHouseholdHandler(householdSvc, reportSvc, activitySvc),
		Financial:    handlers.NewFinancialHandler(financialSvc, reportSvc, activitySvc),
		Project:      handlers.NewProjectHandler(projectSvc, reportSvc, activitySvc),
		Disbursement: handlers.NewDisbursementHandler(disbursementSvc, activitySvc),
		Dashboard:    handlers.NewDashboardHandler(dashboardSvc, activitySvc),
		Health:       handlers.NewHealthHandler(checker),
	}

	authMw := middleware.NewAuthMiddleware(jwtManager)
	r := router.New(h, authMw)

	// Monitoring server on its own port
	go func() {
		monitor := monitoring.NewServer(pool)
		if err := monitor.Start(cfg.Server.MonitoringPort); err != nil {
			log.Printf("[Main] Monitoring server stopped: %v", err)
		}
	}()

	corsHandler := middleware.NewCORS(cfg)
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsHandler(r)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("[Main] Barangay backend listening on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
