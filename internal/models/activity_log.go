package models

import "time"

type ActivityLog struct {
	ID         int       `json:"id"`
	ActorID    int       `json:"actor_id"`
	ActorName  string    `json:"actor_name,omitempty"` // joined from users table
	Action     string    `json:"action"`               // create, update, delete, sync
	EntityType string    `json:"entity_type"`          // resident, household, project, ...
	EntityID   *int      `json:"entity_id,omitempty"`
	Detail     string    `json:"detail"`
	CreatedAt  time.Time `json:"created_at"`
}
