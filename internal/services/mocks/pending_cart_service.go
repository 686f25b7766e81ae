package mocks

import (
	"context"

	"github.com/LeoR1u/ProyectoLegos/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type PendingCartService struct {
	mock.Mock
}

func (m *PendingCartService) Save(ctx context.Context, userID uuid.UUID, cart *models.Cart) error {
	args := m.Called(ctx, userID, cart)

	return args.Error(0)
}

func (m *PendingCartService) RestoreAndClear(ctx context.Context, userID uuid.UUID, cart *models.Cart) (bool, error) {
	args := m.Called(ctx, userID, cart)

	return args.Bool(0), args.Error(1)
}
