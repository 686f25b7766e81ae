package mocks

import (
	"context"

	"github.com/LeoR1u/ProyectoLegos/internal/models"
	"github.com/stretchr/testify/mock"
)

type ProductService struct {
	mock.Mock
}

func (m *ProductService) ListProducts(ctx context.Context) ([]*models.Product, error) {
	args := m.Called(ctx)

	var products []*models.Product
	if v := args.Get(0); v != nil {
		products = v.([]*models.Product)
	}

	return products, args.Error(1)
}

func (m *ProductService) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	args := m.Called(ctx, id)

	var product *models.Product
	if v := args.Get(0); v != nil {
		product = v.(*models.Product)
	}

	return product, args.Error(1)
}
