package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/LeoR1u/ProyectoLegos/internal/models"
	"github.com/LeoR1u/ProyectoLegos/internal/utils"
	"github.com/lib/pq"
)

var ErrDuplicateUsername = errors.New("username already taken")

const uniqueViolation = pq.ErrorCode("23505")

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepo(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO users (username, credential)
		VALUES ($1, $2)
		RETURNING user_id, created_at`

	err := r.DB.QueryRowContext(dbCtx, query, user.Username, user.Credential).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrDuplicateUsername
		}

		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetUserByUsername wraps sql.ErrNoRows when no user matches.
func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	user := &models.User{}

	query := `
		SELECT user_id, username, credential, created_at
		FROM users
		WHERE username = $1`

	err := r.DB.QueryRowContext(dbCtx, query, username).Scan(&user.ID, &user.Username, &user.Credential, &user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}

	return user, nil
}
