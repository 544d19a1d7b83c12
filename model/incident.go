package model

import "time"

// Status is the lifecycle state of an incident.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusClosed     Status = "closed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusClosed:
		return true
	}
	return false
}

type Incident struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	UserID      int       `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// DetailedIncident is the gateway's hydrated view: the incident plus the full
// owner record fetched from the users service. Owner is null when the batch
// lookup did not return that user.
type DetailedIncident struct {
	Incident
	Owner *User `json:"owner"`
}
