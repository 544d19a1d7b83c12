package repository

import (
	"database/sql"

	"incident-hub/logger"
	"incident-hub/model"
)

// IIncidentRepository defines the contract for incident database operations.
type IIncidentRepository interface {
	Create(incident *model.Incident) error
	GetByID(id int) (*model.Incident, error)
	GetByTitle(title string) (*model.Incident, error)
	List(limit, offset int) ([]*model.Incident, error)
	Update(incident *model.Incident) error
	Delete(id int) error
}

// IncidentRepository implements IIncidentRepository on Postgres.
type IncidentRepository struct {
	DB *sql.DB
}

func NewIncidentRepository(db *sql.DB) *IncidentRepository {
	return &IncidentRepository{DB: db}
}

func (r *IncidentRepository) Create(incident *model.Incident) error {
	query := `INSERT INTO incidents (title, description, status, user_id) VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	err := r.DB.QueryRow(query, incident.Title, incident.Description, incident.Status, incident.UserID).
		Scan(&incident.ID, &incident.CreatedAt)
	if err != nil {
		logger.Log.WithError(err).WithField("title", incident.Title).Error("Failed to execute create incident query")
		return err
	}
	return nil
}

func (r *IncidentRepository) GetByID(id int) (*model.Incident, error) {
	incident := &model.Incident{}
	query := `SELECT id, title, description, status, user_id, created_at FROM incidents WHERE id = $1`
	err := r.DB.QueryRow(query, id).
		Scan(&incident.ID, &incident.Title, &incident.Description, &incident.Status, &incident.UserID, &incident.CreatedAt)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Log.WithError(err).WithField("incident_id", id).Error("Failed to execute get incident query")
		}
		return nil, err
	}
	return incident, nil
}

func (r *IncidentRepository) GetByTitle(title string) (*model.Incident, error) {
	incident := &model.Incident{}
	query := `SELECT id, title, description, status, user_id, created_at FROM incidents WHERE title = $1`
	err := r.DB.QueryRow(query, title).
		Scan(&incident.ID, &incident.Title, &incident.Description, &incident.Status, &incident.UserID, &incident.CreatedAt)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Log.WithError(err).Error("Failed to execute get incident by title query")
		}
		return nil, err
	}
	return incident, nil
}

func (r *IncidentRepository) List(limit, offset int) ([]*model.Incident, error) {
	query := `SELECT id, title, description, status, user_id, created_at FROM incidents ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := r.DB.Query(query, limit, offset)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute list incidents query")
		return nil, err
	}
	defer rows.Close()

	var incidents []*model.Incident
	for rows.Next() {
		incident := &model.Incident{}
		if err := rows.Scan(&incident.ID, &incident.Title, &incident.Description, &incident.Status, &incident.UserID, &incident.CreatedAt); err != nil {
			return nil, err
		}
		incidents = append(incidents, incident)
	}
	return incidents, rows.Err()
}

func (r *IncidentRepository) Update(incident *model.Incident) error {
	query := `UPDATE incidents SET title = $1, description = $2, status = $3 WHERE id = $4`
	result, err := r.DB.Exec(query, incident.Title, incident.Description, incident.Status, incident.ID)
	if err != nil {
		logger.Log.WithError(err).WithField("incident_id", incident.ID).Error("Failed to execute update incident query")
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *IncidentRepository) Delete(id int) error {
	result, err := r.DB.Exec(`DELETE FROM incidents WHERE id = $1`, id)
	if err != nil {
		logger.Log.WithError(err).WithField("incident_id", id).Error("Failed to execute delete incident query")
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
