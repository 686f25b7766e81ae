package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/LeoR1u/ProyectoLegos/internal/models"
	"github.com/LeoR1u/ProyectoLegos/internal/utils"
	"github.com/google/uuid"
)

type OrderRepository interface {
	// CreateOrder writes the header and every line in one transaction and
	// fills in the generated id and timestamp.
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
	// ListOrderSummaries returns the user's orders newest first.
	ListOrderSummaries(ctx context.Context, userID uuid.UUID) ([]models.OrderSummary, error)
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) (err error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = errors.Join(err, fmt.Errorf("failed to roll back: %w", rbErr))
			}
		}
	}()

	query := `
		INSERT INTO orders (user_id, total)
		VALUES ($1, $2)
		RETURNING order_id, created_at
	`

	if err = tx.QueryRowContext(dbCtx, query, order.UserID, order.Total).Scan(&order.ID, &order.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	lineQuery := `
		INSERT INTO order_items (order_id, product_name, quantity, price)
		VALUES ($1, $2, $3, $4)
	`

	for i := range order.Lines {
		order.Lines[i].OrderID = order.ID

		line := order.Lines[i]
		if _, err = tx.ExecContext(dbCtx, lineQuery, order.ID, line.ProductName, line.Quantity, line.UnitPrice); err != nil {
			return fmt.Errorf("failed to insert an order item: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}

	return nil
}

// GetOrderByID wraps sql.ErrNoRows when the order does not exist.
func (r *orderRepository) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	order := &models.Order{}

	query := `
		SELECT order_id, user_id, total, created_at
		FROM orders
		WHERE order_id = $1
	`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&order.ID, &order.UserID, &order.Total, &order.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get the order: %w", err)
	}

	query = `
		SELECT product_name, quantity, price
		FROM order_items
		WHERE order_id = $1
		ORDER BY order_item_id
	`

	rows, err := r.DB.QueryContext(dbCtx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get the order items: %w", err)
	}

	defer rows.Close()

	for rows.Next() {
		line := models.OrderLine{OrderID: order.ID}

		if err := rows.Scan(&line.ProductName, &line.Quantity, &line.UnitPrice); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}

		order.Lines = append(order.Lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return order, nil
}

func (r *orderRepository) ListOrderSummaries(ctx context.Context, userID uuid.UUID) ([]models.OrderSummary, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT o.order_id, o.total, o.created_at,
		       string_agg(oi.product_name || ' (' || oi.quantity || ')', ', ' ORDER BY oi.order_item_id) AS items
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.order_id
		WHERE o.user_id = $1
		GROUP BY o.order_id, o.total, o.created_at
		ORDER BY o.created_at DESC, o.order_id DESC
	`

	rows, err := r.DB.QueryContext(dbCtx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	defer rows.Close()

	summaries := []models.OrderSummary{}

	for rows.Next() {
		var summary models.OrderSummary

		if err := rows.Scan(&summary.OrderID, &summary.Total, &summary.CreatedAt, &summary.Items); err != nil {
			return nil, fmt.Errorf("failed to scan the orders: %w", err)
		}

		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}
