package mocks

import (
	"context"

	"github.com/LeoR1u/ProyectoLegos/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type OrderRepository struct {
	mock.Mock
}

func (m *OrderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)

	return args.Error(0)
}

func (m *OrderRepository) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	args := m.Called(ctx, id)

	var order *models.Order
	if v := args.Get(0); v != nil {
		order = v.(*models.Order)
	}

	return order, args.Error(1)
}

func (m *OrderRepository) ListOrderSummaries(ctx context.Context, userID uuid.UUID) ([]models.OrderSummary, error) {
	args := m.Called(ctx, userID)

	var summaries []models.OrderSummary
	if v := args.Get(0); v != nil {
		summaries = v.([]models.OrderSummary)
	}

	return summaries, args.Error(1)
}
