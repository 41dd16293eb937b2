package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"barangay-backend/internal/models"
	"barangay-backend/internal/repositories"
	"barangay-backend/internal/storage"
	"barangay-backend/internal/timeutil"
)

var (
	ErrProjectNotPublished = errors.New("project is not published")
	ErrStorageUnavailable  = errors.New("file storage is not configured")
)

// Reaction types residents can leave on a published project
var validReactions = map[string]bool{
	"like":      true,
	"heart":     true,
	"celebrate": true,
}

type ProjectService struct {
	projects  *repositories.ProjectRepository
	feedbacks *repositories.FeedbackRepository
	store     *storage.ObjectStore
}

func NewProjectService(projects *repositories.ProjectRepository, feedbacks *repositories.FeedbackRepository, store *storage.ObjectStore) *ProjectService {
	return &ProjectService{projects: projects, feedbacks: feedbacks, store: store}
}

func (s *ProjectService) Create(ctx context.Context, req *models.CreateProjectRequest) (*models.Project, error) {
	if req.Name == "" || req.Owner == "" {
		return nil, errors.New("name and owner are required")
	}

	deadline, err := timeutil.ParseInPHT(timeutil.DateLayout, req.Deadline)
	if err != nil {
		return nil, fmt.Errorf("invalid deadline: %w", err)
	}

	status := req.Status
	if status == "" {
		status = models.ProjectStatusPlanned
	}
	if err := validateProjectStatus(status); err != nil {
		return nil, err
	}

	p := &models.Project{
		Name:     req.Name,
		Owner:    req.Owner,
		Deadline: deadline,
		Status:   status,
	}
	if err := s.projects.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProjectService) Get(ctx context.Context, id int) (*models.Project, error) {
	return s.projects.Get(ctx, id)
}

// List returns one page of projects with paging metadata
func (s *ProjectService) List(ctx context.Context, q *models.ProjectListQuery) (*models.ProjectPage, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = 10
	}
	if q.PageSize > 100 {
		q.PageSize = 100
	}
	if q.Status != "" {
		if err := validateProjectStatus(q.Status); err != nil {
			return nil, err
		}
	}

	projects, total, err := s.projects.List(ctx, q)
	if err != nil {
		return nil, err
	}

	totalPages := (total + q.PageSize - 1) / q.PageSize
	return &models.ProjectPage{
		Projects:   projects,
		Total:      total,
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *ProjectService) Update(ctx context.Context, id int, req *models.UpdateProjectRequest) (*models.Project, error) {
	p, err := s.projects.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name == "" || req.Owner == "" {
		return nil, errors.New("name and owner are required")
	}
	if err := validateProjectStatus(req.Status); err != nil {
		return nil, err
	}

	deadline, err := timeutil.ParseInPHT(timeutil.DateLayout, req.Deadline)
	if err != nil {
		return nil, fmt.Errorf("invalid deadline: %w", err)
	}

	p.Name = req.Name
	p.Owner = req.Owner
	p.Deadline = deadline
	p.Status = req.Status
	p.Remarks = req.Remarks

	if err := s.projects.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Complete marks a project finished with closing remarks and a
// completion timestamp
func (s *ProjectService) Complete(ctx context.Context, id int, remarks string) (*models.Project, error) {
	if _, err := s.projects.Get(ctx, id); err != nil {
		return nil, err
	}

	completedAt := timeutil.Now()
	if err := s.projects.Complete(ctx, id, remarks, completedAt); err != nil {
		return nil, err
	}
	return s.projects.Get(ctx, id)
}

// SetPublished toggles public visibility. The flag persists across
// restarts; it lives on the project row.
func (s *ProjectService) SetPublished(ctx context.Context, id int, published bool) (*models.Project, error) {
	if _, err := s.projects.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.projects.SetPublished(ctx, id, published); err != nil {
		return nil, err
	}
	return s.projects.Get(ctx, id)
}

func (s *ProjectService) Delete(ctx context.Context, id int) error {
	p, err := s.projects.Get(ctx, id)
	if err != nil {
		return err
	}

	// Best effort cleanup of stored files; the rows go either way
	if s.store != nil {
		for _, f := range p.Files {
			if err := s.store.Delete(ctx, f.ObjectKey); err != nil {
				log.Printf("[ProjectService] Failed to delete object %s: %v", f.ObjectKey, err)
			}
		}
	}
	return s.projects.Delete(ctx, id)
}

// UploadFile stores a project document in object storage and records it
func (s *ProjectService) UploadFile(ctx context.Context, projectID int, fileName, contentType string, size int64, body io.Reader) (*models.ProjectFile, error) {
	if s.store == nil {
		return nil, ErrStorageUnavailable
	}
	if _, err := s.projects.Get(ctx, projectID); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("projects/%d/%d_%s", projectID, time.Now().UnixNano(), fileName)
	url, err := s.store.Upload(ctx, key, contentType, body)
	if err != nil {
		return nil, err
	}

	f := &models.ProjectFile{
		ProjectID:   projectID,
		FileName:    fileName,
		ObjectKey:   key,
		Size:        size,
		ContentType: contentType,
		URL:         url,
	}
	if err := s.projects.AddFile(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// AddFeedback records resident feedback against a published project
func (s *ProjectService) AddFeedback(ctx context.Context, projectID int, req *models.CreateFeedbackRequest) (*models.Feedback, error) {
	p, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !p.Published {
		return nil, ErrProjectNotPublished
	}
	if req.Message == "" {
		return nil, errors.New("message is required")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, errors.New("rating must be between 1 and 5")
	}

	f := &models.Feedback{
		ProjectID:    projectID,
		ResidentName: req.ResidentName,
		Message:      req.Message,
		Rating:       req.Rating,
	}
	if err := s.feedbacks.Create(ctx, f); err != nil {
		return nil, err
	}
	f.ProjectName = p.Name
	return f, nil
}

func (s *ProjectService) ListFeedback(ctx context.Context) ([]*models.Feedback, error) {
	return s.feedbacks.ListAll(ctx)
}

func (s *ProjectService) ListProjectFeedback(ctx context.Context, projectID int) ([]*models.Feedback, error) {
	if _, err := s.projects.Get(ctx, projectID); err != nil {
		return nil, err
	}
	return s.feedbacks.ListByProject(ctx, projectID)
}

// AddReaction records a reaction on a published project and returns the
// updated tallies
func (s *ProjectService) AddReaction(ctx context.Context, projectID int, reactionType string) (*models.ReactionCounts, error) {
	if !validReactions[reactionType] {
		return nil, fmt.Errorf("unknown reaction type %q", reactionType)
	}

	p, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !p.Published {
		return nil, ErrProjectNotPublished
	}

	if err := s.projects.AddReaction(ctx, projectID, reactionType); err != nil {
		return nil, err
	}
	return s.projects.ReactionCounts(ctx, projectID)
}

func (s *ProjectService) Reactions(ctx context.Context, projectID int) (*models.ReactionCounts, error) {
	if _, err := s.projects.Get(ctx, projectID); err != nil {
		return nil, err
	}
	return s.projects.ReactionCounts(ctx, projectID)
}

func validateProjectStatus(status string) error {
	switch status {
	case models.ProjectStatusPlanned, models.ProjectStatusInProgress, models.ProjectStatusCompleted:
		return nil
	}
	return fmt.Errorf("unknown project status %q", status)
}
