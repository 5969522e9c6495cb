package postgres

import (
	"database/sql"
	"errors"
	"relay-server/internal/domain"

	"github.com/lib/pq"
)

// UserRepository handles database operations for user accounts.
type UserRepository struct {
	DB *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// CreateUser inserts a new account row. A primary key conflict surfaces as
// domain.ErrDuplicateUser.
func (r *UserRepository) CreateUser(user *domain.User) error {
	query := `INSERT INTO users (id, password) VALUES ($1, $2)`
	_, err := r.DB.Exec(query, user.ID, user.Password)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return domain.ErrDuplicateUser
	}
	return err
}

// GetUserByCredentials retrieves the account matching both id and password.
func (r *UserRepository) GetUserByCredentials(id, password string) (*domain.User, error) {
	user := &domain.User{}
	query := `SELECT id, password FROM users WHERE id = $1 AND password = $2`
	err := r.DB.QueryRow(query, id, password).Scan(&user.ID, &user.Password)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // No match is not a repository error
		}
		return nil, err
	}
	return user, nil
}
