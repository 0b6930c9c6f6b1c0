package models

import "time"

// Job statuses.
const (
	JobStatusPending    = 1
	JobStatusInProgress = 2
	JobStatusCompleted  = 3
)

// Job represents an inspection job created by a field owner.
type Job struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Status      int       `json:"status"`
	ImageURL    string    `json:"image_url,omitempty"`
	OwnerID     int64     `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
