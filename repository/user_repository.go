package repository

import (
	"database/sql"

	"incident-hub/logger"
	"incident-hub/model"

	"github.com/lib/pq"
)

// IUserRepository defines the contract for user database operations.
type IUserRepository interface {
	Create(user *model.User) error
	GetByEmail(email string) (*model.User, error)
	GetByID(id int) (*model.User, error)
	GetByIDs(ids []int) ([]*model.User, error)
	List(limit, offset int) ([]*model.User, error)
	Delete(id int) error
}

// UserRepository implements IUserRepository on Postgres.
type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	query := `INSERT INTO users (name, email, password_hash) VALUES ($1, $2, $3) RETURNING id, created_at`
	err := r.DB.QueryRow(query, user.Name, user.Email, user.PasswordHash).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		logger.Log.WithError(err).WithField("email", user.Email).Error("Failed to execute create user query")
		return err
	}
	return nil
}

func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT id, name, email, password_hash, created_at FROM users WHERE email = $1`
	err := r.DB.QueryRow(query, email).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Log.WithError(err).Error("Failed to execute get user by email query")
		}
		return nil, err // sql.ErrNoRows when the email is unknown
	}
	return user, nil
}

func (r *UserRepository) GetByID(id int) (*model.User, error) {
	user := &model.User{}
	query := `SELECT id, name, email, password_hash, created_at FROM users WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Log.WithError(err).WithField("user_id", id).Error("Failed to execute get user by id query")
		}
		return nil, err
	}
	return user, nil
}

// GetByIDs fetches all users whose IDs appear in the list, in one query.
// Missing IDs are simply absent from the result.
func (r *UserRepository) GetByIDs(ids []int) ([]*model.User, error) {
	query := `SELECT id, name, email, password_hash, created_at FROM users WHERE id = ANY($1) ORDER BY id`
	rows, err := r.DB.Query(query, pq.Array(ids))
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute batch get users query")
		return nil, err
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		user := &model.User{}
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *UserRepository) List(limit, offset int) ([]*model.User, error) {
	query := `SELECT id, name, email, password_hash, created_at FROM users ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := r.DB.Query(query, limit, offset)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute list users query")
		return nil, err
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		user := &model.User{}
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *UserRepository) Delete(id int) error {
	result, err := r.DB.Exec(`DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", id).Error("Failed to execute delete user query")
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
