package service

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/LeoR1u/ProyectoLegos/internal/api/middleware"
	"github.com/LeoR1u/ProyectoLegos/internal/cache"
	"github.com/LeoR1u/ProyectoLegos/internal/errors"
	"github.com/LeoR1u/ProyectoLegos/internal/models"
	repository "github.com/LeoR1u/ProyectoLegos/internal/repositories"
)

type ProductService interface {
	ListProducts(ctx context.Context) ([]*models.Product, error)
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
}

// productService reads through the cache. Cache failures are logged and the
// database answers instead.
type productService struct {
	repo  repository.ProductRepository
	cache cache.Cache
	ttl   time.Duration
}

func NewProductService(repo repository.ProductRepository, c cache.Cache, ttl time.Duration) ProductService {
	return &productService{repo: repo, cache: c, ttl: ttl}
}

func (s *productService) ListProducts(ctx context.Context) ([]*models.Product, error) {
	logger := middleware.LoggerFromContext(ctx)

	var cached []*models.Product

	found, err := s.cache.Get(ctx, cache.ProductListKey, &cached)
	if err != nil {
		logger.Warn("Product cache read failed", slog.String("key", cache.ProductListKey), slog.Any("error", err))
	} else if found {
		return cached, nil
	}

	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch products").WithError(err)
	}

	if err := s.cache.Set(ctx, cache.ProductListKey, products, s.ttl); err != nil {
		logger.Warn("Product cache write failed", slog.String("key", cache.ProductListKey), slog.Any("error", err))
	}

	return products, nil
}

func (s *productService) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	logger := middleware.LoggerFromContext(ctx)
	key := cache.Key(cache.ProductKeyPrefix, strconv.FormatInt(id, 10))

	var cached models.Product

	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		logger.Warn("Product cache read failed", slog.String("key", key), slog.Any("error", err))
	} else if found {
		return &cached, nil
	}

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Product not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to get product").WithError(err)
	}

	if err := s.cache.Set(ctx, key, product, s.ttl); err != nil {
		logger.Warn("Product cache write failed", slog.String("key", key), slog.Any("error", err))
	}

	return product, nil
}
