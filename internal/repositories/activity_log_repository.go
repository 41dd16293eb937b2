package repositories

import (
	"context"

	"barangay-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ActivityLogRepository struct {
	DB *pgxpool.Pool
}

func NewActivityLogRepository(db *pgxpool.Pool) *ActivityLogRepository {
	return &ActivityLogRepository{DB: db}
}

func (r *ActivityLogRepository) Create(ctx context.Context, l *models.ActivityLog) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO activity_logs(actor_id, action, entity_type, entity_id, detail)
         VALUES($1, $2, $3, $4, $5)
         RETURNING id, created_at`,
		l.ActorID, l.Action, l.EntityType, l.EntityID, l.Detail,
	).Scan(&l.ID, &l.CreatedAt)
}

// List returns the most recent activity entries with actor names joined in
func (r *ActivityLogRepository) List(ctx context.Context, limit int) ([]*models.ActivityLog, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.DB.Query(ctx,
		`SELECT l.id, l.actor_id, CONCAT(u.first_name, ' ', u.last_name),
		 l.action, l.entity_type, l.entity_id, COALESCE(l.detail, ''), l.created_at
         FROM activity_logs l
         JOIN users u ON u.id = l.actor_id
         ORDER BY l.created_at DESC
         LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*models.ActivityLog
	for rows.Next() {
		var l models.ActivityLog
		err := rows.Scan(&l.ID, &l.ActorID, &l.ActorName, &l.Action,
			&l.EntityType, &l.EntityID, &l.Detail, &l.CreatedAt)
		if err != nil {
			return nil, err
		}
		logs = append(logs, &l)
	}
	return logs, rows.Err()
}
