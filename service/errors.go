package service

import "errors"

// Sentinel errors returned by the service layer. Handlers translate these to
// HTTP statuses; every token-related failure collapses to the same 401 body
// at the boundary so that callers learn nothing about why a token failed.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token expired")

	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")

	ErrIncidentNotFound = errors.New("incident not found")
	ErrDuplicateTitle   = errors.New("incident with this title already exists")
	ErrNotOwner         = errors.New("incident belongs to another user")
)
