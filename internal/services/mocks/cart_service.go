package mocks

import (
	"context"

	"github.com/LeoR1u/ProyectoLegos/internal/models"
	"github.com/stretchr/testify/mock"
)

type CartService struct {
	mock.Mock
}

func (m *CartService) AddItem(ctx context.Context, cart *models.Cart, req *models.AddItemRequest) (*models.CartResult, error) {
	args := m.Called(ctx, cart, req)

	var result *models.CartResult
	if v := args.Get(0); v != nil {
		result = v.(*models.CartResult)
	}

	return result, args.Error(1)
}

func (m *CartService) UpdateQuantity(ctx context.Context, cart *models.Cart, req *models.UpdateCartRequest) (*models.CartResult, error) {
	args := m.Called(ctx, cart, req)

	var result *models.CartResult
	if v := args.Get(0); v != nil {
		result = v.(*models.CartResult)
	}

	return result, args.Error(1)
}

func (m *CartService) View(cart *models.Cart) *models.CartView {
	args := m.Called(cart)

	var view *models.CartView
	if v := args.Get(0); v != nil {
		view = v.(*models.CartView)
	}

	return view
}
