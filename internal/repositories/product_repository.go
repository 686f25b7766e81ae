package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/LeoR1u/ProyectoLegos/internal/models"
	"github.com/LeoR1u/ProyectoLegos/internal/utils"
)

type ProductRepository interface {
	ListProducts(ctx context.Context) ([]*models.Product, error)
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

func (r *productRepository) ListProducts(ctx context.Context) ([]*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT product_id, name, price, image, created_at
		FROM products
		ORDER BY product_id
	`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}

	defer rows.Close()

	products := []*models.Product{}

	for rows.Next() {
		product := &models.Product{}

		if err := rows.Scan(&product.ID, &product.Name, &product.Price, &product.Image, &product.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

// GetProductByID wraps sql.ErrNoRows when the product does not exist.
func (r *productRepository) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	product := &models.Product{}

	query := `
		SELECT product_id, name, price, image, created_at
		FROM products
		WHERE product_id = $1
	`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&product.ID, &product.Name, &product.Price, &product.Image, &product.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("querying database: %w", err)
	}

	return product, nil
}
