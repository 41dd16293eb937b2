package models

import "time"

type Feedback struct {
	ID           int       `json:"id"`
	ProjectID    int       `json:"project_id"`
	ProjectName  string    `json:"project_name,omitempty"` // joined for the admin list
	ResidentName string    `json:"resident_name"`
	Message      string    `json:"message"`
	Rating       int       `json:"rating"` // 1-5
	CreatedAt    time.Time `json:"created_at"`
}

// CreateFeedbackRequest represents the request body for submitting feedback
type CreateFeedbackRequest struct {
	ResidentName string `json:"resident_name"`
	Message      string `json:"message"`
	Rating       int    `json:"rating"`
}

// ReactionCounts aggregates reactions for a project by type
type ReactionCounts struct {
	ProjectID int            `json:"project_id"`
	Counts    map[string]int `json:"counts"`
	Total     int            `json:"total"`
}

// AddReactionRequest represents the request body for reacting to a project
type AddReactionRequest struct {
	Type string `json:"type"` // like, heart, celebrate
}
