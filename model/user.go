package model

import "time"

// User is the identity record owned by the users service. The password hash
// never leaves the service: it is excluded from every JSON response.
type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
