package model

// CreateUserRequest defines the payload for registering a new user.
// Validation tags keep bad data out at the entry point.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=4"`
}

// RefreshRequest defines the payload for minting a new access token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// BatchUsersRequest defines the payload for the internal batch lookup used by
// the gateway.
type BatchUsersRequest struct {
	IDs []int `json:"ids" validate:"required,min=1,dive,gt=0"`
}

// CreateIncidentRequest defines the payload for opening an incident. The
// owner is never part of the payload; it is taken from the verified token.
type CreateIncidentRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"required,min=1,max=200"`
	Status      Status `json:"status" validate:"omitempty,oneof=open in_progress closed"`
}

// UpdateIncidentRequest defines the partial-update payload for an incident.
type UpdateIncidentRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,min=1,max=200"`
	Status      *Status `json:"status" validate:"omitempty,oneof=open in_progress closed"`
}
