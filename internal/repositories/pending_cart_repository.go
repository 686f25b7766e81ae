package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/LeoR1u/ProyectoLegos/internal/models"
	"github.com/LeoR1u/ProyectoLegos/internal/utils"
	"github.com/google/uuid"
)

// PendingCartRepository keeps at most one saved cart per user.
type PendingCartRepository interface {
	// Upsert replaces any cart already saved for userID.
	Upsert(ctx context.Context, userID uuid.UUID, items []models.LineItem) error
	// Take reads and removes the saved cart in one transaction. found is false
	// when nothing was saved. A cart that cannot be decoded stays stored.
	Take(ctx context.Context, userID uuid.UUID) (items []models.LineItem, found bool, err error)
}

type pendingCartRepository struct {
	DB *sql.DB
}

func NewPendingCartRepo(db *sql.DB) PendingCartRepository {
	return &pendingCartRepository{DB: db}
}

func (r *pendingCartRepository) Upsert(ctx context.Context, userID uuid.UUID, items []models.LineItem) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	cartJSON, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart items: %w", err)
	}

	query := `
		INSERT INTO pending_carts (user_id, cart_data, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET cart_data = EXCLUDED.cart_data, updated_at = NOW()
	`

	if _, err := r.DB.ExecContext(dbCtx, query, userID, cartJSON); err != nil {
		return fmt.Errorf("failed to save pending cart: %w", err)
	}

	return nil
}

func (r *pendingCartRepository) Take(ctx context.Context, userID uuid.UUID) ([]models.LineItem, bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		SELECT cart_data FROM pending_carts
		WHERE user_id = $1
		FOR UPDATE
	`

	var cartJSON []byte

	err = tx.QueryRowContext(dbCtx, query, userID).Scan(&cartJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}

		return nil, false, fmt.Errorf("failed to read pending cart: %w", err)
	}

	var items []models.LineItem
	if err := json.Unmarshal(cartJSON, &items); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal pending cart: %w", err)
	}

	if _, err := tx.ExecContext(dbCtx, `DELETE FROM pending_carts WHERE user_id = $1`, userID); err != nil {
		return nil, false, fmt.Errorf("failed to delete pending cart: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("failed to commit pending cart take: %w", err)
	}

	return items, true, nil
}
