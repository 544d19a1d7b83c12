package service

import (
	"database/sql"
	"errors"

	"incident-hub/logger"
	"incident-hub/model"
	"incident-hub/repository"
)

// IncidentService handles incident business logic. The owner of an incident
// is always the verified token subject; it never comes from the payload.
type IncidentService struct {
	repo repository.IIncidentRepository
}

func NewIncidentService(repo repository.IIncidentRepository) *IncidentService {
	return &IncidentService{repo: repo}
}

// Create opens a new incident owned by ownerID. Titles are unique.
func (s *IncidentService) Create(ownerID int, req *model.CreateIncidentRequest) (*model.Incident, error) {
	if _, err := s.repo.GetByTitle(req.Title); err == nil {
		return nil, ErrDuplicateTitle
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = model.StatusOpen
	}

	incident := &model.Incident{
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		UserID:      ownerID,
	}
	if err := s.repo.Create(incident); err != nil {
		return nil, err
	}

	logger.Log.WithField("incident_id", incident.ID).Info("Incident created")
	return incident, nil
}

func (s *IncidentService) Get(id int) (*model.Incident, error) {
	incident, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrIncidentNotFound
		}
		return nil, err
	}
	return incident, nil
}

// List returns a page of incidents. The limit is clamped to 1..1000.
func (s *IncidentService) List(limit, offset int) ([]*model.Incident, error) {
	if limit < 1 {
		limit = 100
	}
	if limit > 1000 {
		limit = 1000
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(limit, offset)
}

// Update applies a partial update. Only the owner may modify an incident.
func (s *IncidentService) Update(id, actorID int, req *model.UpdateIncidentRequest) (*model.Incident, error) {
	incident, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if incident.UserID != actorID {
		return nil, ErrNotOwner
	}

	if req.Title != nil {
		incident.Title = *req.Title
	}
	if req.Description != nil {
		incident.Description = *req.Description
	}
	if req.Status != nil {
		incident.Status = *req.Status
	}

	if err := s.repo.Update(incident); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrIncidentNotFound
		}
		return nil, err
	}
	return incident, nil
}

// Delete removes an incident. Only the owner may delete it.
func (s *IncidentService) Delete(id, actorID int) error {
	incident, err := s.Get(id)
	if err != nil {
		return err
	}
	if incident.UserID != actorID {
		return ErrNotOwner
	}

	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrIncidentNotFound
		}
		return err
	}
	logger.Log.WithField("incident_id", id).Info("Incident deleted")
	return nil
}
