package services

import (
	"context"
	"log"

	"barangay-backend/internal/models"
	"barangay-backend/internal/repositories"
)

// ActivityService records staff actions for the audit trail. Recording
// never fails a request; write errors are logged and swallowed.
type ActivityService struct {
	logs *repositories.ActivityLogRepository
}

func NewActivityService(logs *repositories.ActivityLogRepository) *ActivityService {
	return &ActivityService{logs: logs}
}

func (s *ActivityService) Record(ctx context.Context, actorID int, action, entityType string, entityID int, detail string) {
	l := &models.ActivityLog{
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		Detail:     detail,
	}
	if entityID > 0 {
		l.EntityID = &entityID
	}
	if err := s.logs.Create(ctx, l); err != nil {
		log.Printf("[ActivityService] Failed to record %s %s: %v", action, entityType, err)
	}
}

func (s *ActivityService) Recent(ctx context.Context, limit int) ([]*models.ActivityLog, error) {
	return s.logs.List(ctx, limit)
}
