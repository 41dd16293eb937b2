package repositories

import (
	"context"

	"barangay-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type FeedbackRepository struct {
	DB *pgxpool.Pool
}

func NewFeedbackRepository(db *pgxpool.Pool) *FeedbackRepository {
	return &FeedbackRepository{DB: db}
}

func (r *FeedbackRepository) Create(ctx context.Context, f *models.Feedback) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO feedbacks(project_id, resident_name, message, rating)
         VALUES($1, $2, $3, $4)
         RETURNING id, created_at`,
		f.ProjectID, f.ResidentName, f.Message, f.Rating,
	).Scan(&f.ID, &f.CreatedAt)
}

// ListAll returns all feedback entries with the project name joined in,
// newest first
func (r *FeedbackRepository) ListAll(ctx context.Context) ([]*models.Feedback, error) {
	return r.queryMany(ctx,
		`SELECT f.id, f.project_id, p.name, f.resident_name, f.message, f.rating, f.created_at
         FROM feedbacks f
         JOIN projects p ON p.id = f.project_id
         ORDER BY f.created_at DESC`)
}

func (r *FeedbackRepository) ListByProject(ctx context.Context, projectID int) ([]*models.Feedback, error) {
	return r.queryMany(ctx,
		`SELECT f.id, f.project_id, p.name, f.resident_name, f.message, f.rating, f.created_at
         FROM feedbacks f
         JOIN projects p ON p.id = f.project_id
         WHERE f.project_id=$1
         ORDER BY f.created_at DESC`, projectID)
}

func (r *FeedbackRepository) queryMany(ctx context.Context, sql string, args ...any) ([]*models.Feedback, error) {
	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var feedbacks []*models.Feedback
	for rows.Next() {
		var f models.Feedback
		err := rows.Scan(&f.ID, &f.ProjectID, &f.ProjectName, &f.ResidentName,
			&f.Message, &f.Rating, &f.CreatedAt)
		if err != nil {
			return nil, err
		}
		feedbacks = append(feedbacks, &f)
	}
	return feedbacks, rows.Err()
}
