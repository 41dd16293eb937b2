package models

import "time"

// Project lifecycle statuses
const (
	ProjectStatusPlanned    = "Planned"
	ProjectStatusInProgress = "In Progress"
	ProjectStatusCompleted  = "Completed"
)

type Project struct {
	ID          int            `json:"id"`
	Name        string         `json:"name"`
	Owner       string         `json:"owner"`
	Deadline    time.Time      `json:"deadline"`
	Status      string         `json:"status"`
	Published   bool           `json:"published"`
	Remarks     string         `json:"remarks"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	Files       []*ProjectFile `json:"files,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// ProjectFile describes a document uploaded against a project and stored
// in object storage.
type ProjectFile struct {
	ID          int       `json:"id"`
	ProjectID   int       `json:"project_id"`
	FileName    string    `json:"file_name"`
	ObjectKey   string    `json:"object_key"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	URL         string    `json:"url"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// CreateProjectRequest represents the request body for creating a project
type CreateProjectRequest struct {
	Name     string `json:"name"`
	Owner    string `json:"owner"`
	Deadline string `json:"deadline"` // YYYY-MM-DD
	Status   string `json:"status"`
}

// UpdateProjectRequest represents the request body for updating a project
type UpdateProjectRequest struct {
	Name     string `json:"name"`
	Owner    string `json:"owner"`
	Deadline string `json:"deadline"`
	Status   string `json:"status"`
	Remarks  string `json:"remarks"`
}

// CompleteProjectRequest marks a project completed with closing remarks
type CompleteProjectRequest struct {
	Remarks string `json:"remarks"`
}

// PublishProjectRequest toggles public visibility
type PublishProjectRequest struct {
	Published bool `json:"published"`
}

// ProjectListQuery carries list pagination, sorting and filtering
type ProjectListQuery struct {
	Page     int
	PageSize int
	SortBy   string // deadline, name, created
	Status   string
}

// ProjectPage is one page of projects plus paging metadata
type ProjectPage struct {
	Projects   []*Project `json:"projects"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int        `json:"total_pages"`
}
