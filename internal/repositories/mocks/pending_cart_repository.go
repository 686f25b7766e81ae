package mocks

import (
	"context"

	"github.com/LeoR1u/ProyectoLegos/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type PendingCartRepository struct {
	mock.Mock
}

func (m *PendingCartRepository) Upsert(ctx context.Context, userID uuid.UUID, items []models.LineItem) error {
	args := m.Called(ctx, userID, items)

	return args.Error(0)
}

func (m *PendingCartRepository) Take(ctx context.Context, userID uuid.UUID) ([]models.LineItem, bool, error) {
	args := m.Called(ctx, userID)

	var items []models.LineItem
	if v := args.Get(0); v != nil {
		items = v.([]models.LineItem)
	}

	return items, args.Bool(1), args.Error(2)
}
