package service

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"log/slog"

	"github.com/LeoR1u/ProyectoLegos/internal/api/middleware"
	"github.com/LeoR1u/ProyectoLegos/internal/errors"
	"github.com/LeoR1u/ProyectoLegos/internal/metrics"
	"github.com/LeoR1u/ProyectoLegos/internal/models"
	repository "github.com/LeoR1u/ProyectoLegos/internal/repositories"
)

type OrderService interface {
	// Checkout turns cart into an order for user. The cart is cleared only
	// after the order is stored; on any failure it is left as it was.
	Checkout(ctx context.Context, user *models.User, cart *models.Cart) (*models.Order, error)
	// GetOrder returns one of user's orders with its lines.
	GetOrder(ctx context.Context, user *models.User, id int64) (*models.Order, error)
	History(ctx context.Context, user *models.User) (*models.OrderHistoryResponse, error)
}

type orderService struct {
	repo repository.OrderRepository
}

func NewOrderService(repo repository.OrderRepository) OrderService {
	return &orderService{repo: repo}
}

func (s *orderService) Checkout(ctx context.Context, user *models.User, cart *models.Cart) (*models.Order, error) {
	logger := middleware.LoggerFromContext(ctx)

	if user == nil {
		metrics.Checkouts.WithLabelValues("rejected").Inc()
		return nil, errors.UnauthorizedError("Login required to check out")
	}

	if cart == nil || cart.IsEmpty() {
		metrics.Checkouts.WithLabelValues("rejected").Inc()
		return nil, errors.BadRequestError("Cannot create order with empty cart")
	}

	items := cart.Snapshot()
	lines := make([]models.OrderLine, 0, len(items))

	for _, item := range items {
		lines = append(lines, models.OrderLine{
			ProductName: item.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}

	order := &models.Order{
		UserID: user.ID,
		Total:  cart.Total(),
		Lines:  lines,
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		metrics.Checkouts.WithLabelValues("error").Inc()
		logger.Error("Checkout failed, cart kept", slog.String("userId", user.ID.String()), slog.Any("error", err))

		return nil, errors.DatabaseError("Failed to create order").WithError(err)
	}

	cart.Clear()

	metrics.Checkouts.WithLabelValues("ok").Inc()
	logger.Info("Order created",
		slog.Int64("orderId", order.ID),
		slog.String("userId", user.ID.String()),
		slog.String("total", order.Total.StringFixed(2)),
	)

	return order, nil
}

// Orders of other users are reported as not found.
func (s *orderService) GetOrder(ctx context.Context, user *models.User, id int64) (*models.Order, error) {
	order, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Order not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to get order").WithError(err)
	}

	if order.UserID != user.ID {
		middleware.LoggerFromContext(ctx).Warn("Order requested by another user",
			slog.Int64("orderId", id),
			slog.String("userId", user.ID.String()),
		)

		return nil, errors.NotFoundError("Order not found")
	}

	return order, nil
}

func (s *orderService) History(ctx context.Context, user *models.User) (*models.OrderHistoryResponse, error) {
	summaries, err := s.repo.ListOrderSummaries(ctx, user.ID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list orders").WithError(err)
	}

	return &models.OrderHistoryResponse{
		Orders: summaries,
		Total:  len(summaries),
	}, nil
}
