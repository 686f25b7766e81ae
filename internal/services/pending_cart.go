package service

import (
	"context"
	"log/slog"

	"github.com/LeoR1u/ProyectoLegos/internal/api/middleware"
	"github.com/LeoR1u/ProyectoLegos/internal/errors"
	"github.com/LeoR1u/ProyectoLegos/internal/metrics"
	"github.com/LeoR1u/ProyectoLegos/internal/models"
	repository "github.com/LeoR1u/ProyectoLegos/internal/repositories"
	"github.com/google/uuid"
)

// PendingCartService carries a signed-in user's cart from logout to their
// next login.
type PendingCartService interface {
	// Save stores cart for userID, replacing any earlier one. Empty carts are
	// not stored.
	Save(ctx context.Context, userID uuid.UUID, cart *models.Cart) error
	// RestoreAndClear moves the saved cart into cart and removes it from the
	// store. It reports whether a saved cart was found; when none was, cart
	// is left untouched.
	RestoreAndClear(ctx context.Context, userID uuid.UUID, cart *models.Cart) (bool, error)
}

type pendingCartService struct {
	repo repository.PendingCartRepository
}

func NewPendingCartService(repo repository.PendingCartRepository) PendingCartService {
	return &pendingCartService{repo: repo}
}

func (s *pendingCartService) Save(ctx context.Context, userID uuid.UUID, cart *models.Cart) error {
	if cart.IsEmpty() {
		return nil
	}

	if err := s.repo.Upsert(ctx, userID, cart.Snapshot()); err != nil {
		metrics.PendingCartOps.WithLabelValues("save", "error").Inc()
		return errors.DatabaseError("Failed to save pending cart").WithError(err)
	}

	metrics.PendingCartOps.WithLabelValues("save", "ok").Inc()

	middleware.LoggerFromContext(ctx).Info("Pending cart saved",
		slog.String("userId", userID.String()),
		slog.Int("count", cart.ItemCount()),
	)

	return nil
}

func (s *pendingCartService) RestoreAndClear(ctx context.Context, userID uuid.UUID, cart *models.Cart) (bool, error) {
	items, found, err := s.repo.Take(ctx, userID)
	if err != nil {
		metrics.PendingCartOps.WithLabelValues("restore", "error").Inc()
		return false, errors.DatabaseError("Failed to restore pending cart").WithError(err)
	}

	if !found {
		metrics.PendingCartOps.WithLabelValues("restore", "none").Inc()
		return false, nil
	}

	cart.Replace(items)

	metrics.PendingCartOps.WithLabelValues("restore", "ok").Inc()

	middleware.LoggerFromContext(ctx).Info("Pending cart restored",
		slog.String("userId", userID.String()),
		slog.Int("count", cart.ItemCount()),
	)

	return true, nil
}
