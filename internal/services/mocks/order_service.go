package mocks

import (
	"context"

	"github.com/LeoR1u/ProyectoLegos/internal/models"
	"github.com/stretchr/testify/mock"
)

type OrderService struct {
	mock.Mock
}

func (m *OrderService) Checkout(ctx context.Context, user *models.User, cart *models.Cart) (*models.Order, error) {
	args := m.Called(ctx, user, cart)

	var order *models.Order
	if v := args.Get(0); v != nil {
		order = v.(*models.Order)
	}

	return order, args.Error(1)
}

func (m *OrderService) GetOrder(ctx context.Context, user *models.User, id int64) (*models.Order, error) {
	args := m.Called(ctx, user, id)

	var order *models.Order
	if v := args.Get(0); v != nil {
		order = v.(*models.Order)
	}

	return order, args.Error(1)
}

func (m *OrderService) History(ctx context.Context, user *models.User) (*models.OrderHistoryResponse, error) {
	args := m.Called(ctx, user)

	var history *models.OrderHistoryResponse
	if v := args.Get(0); v != nil {
		history = v.(*models.OrderHistoryResponse)
	}

	return history, args.Error(1)
}
