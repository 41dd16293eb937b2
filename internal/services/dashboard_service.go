package services

import (
	"context"
	"encoding/json"

	"barangay-backend/internal/cache"
	"barangay-backend/internal/models"
	"barangay-backend/internal/repositories"
)

type DashboardService struct {
	residents     *repositories.ResidentRepository
	households    *repositories.HouseholdRepository
	projects      *repositories.ProjectRepository
	receipts      *repositories.ReceiptRepository
	disbursements *repositories.DisbursementRepository
	activity      *ActivityService
}

func NewDashboardService(
	residents *repositories.ResidentRepository,
	households *repositories.HouseholdRepository,
	projects *repositories.ProjectRepository,
	receipts *repositories.ReceiptRepository,
	disbursements *repositories.DisbursementRepository,
	activity *ActivityService,
) *DashboardService {
	return &DashboardService{
		residents:     residents,
		households:    households,
		projects:      projects,
		receipts:      receipts,
		disbursements: disbursements,
		activity:      activity,
	}
}

// DashboardStats is the admin landing page payload
type DashboardStats struct {
	Residents       int                   `json:"residents"`
	Households      int                   `json:"households"`
	ProjectsByState map[string]int        `json:"projects_by_status"`
	TotalIncome     float64               `json:"total_income"`
	TotalDisbursed  float64               `json:"total_disbursed"`
	RecentActivity  []*models.ActivityLog `json:"recent_activity"`
}

// Stats assembles the dashboard aggregates, served from cache when fresh
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	if data, ok := cache.GetDashboardStats(ctx); ok {
		var stats DashboardStats
		if err := json.Unmarshal(data, &stats); err == nil {
			return &stats, nil
		}
	}

	residents, err := s.residents.Count(ctx)
	if err != nil {
		return nil, err
	}
	households, err := s.households.Count(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.projects.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	income, err := s.receipts.TotalAmount(ctx)
	if err != nil {
		return nil, err
	}
	disbursed, err := s.disbursements.TotalAmount(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.activity.Recent(ctx, 10)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		Residents:       residents,
		Households:      households,
		ProjectsByState: byStatus,
		TotalIncome:     income,
		TotalDisbursed:  disbursed,
		RecentActivity:  recent,
	}

	if data, err := json.Marshal(stats); err == nil {
		cache.SetDashboardStats(ctx, data)
	}
	return stats, nil
}
