package mocks

import (
	"context"

	"github.com/LeoR1u/ProyectoLegos/internal/models"
	"github.com/stretchr/testify/mock"
)

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

func (m *UserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)

	var user *models.User
	if v := args.Get(0); v != nil {
		user = v.(*models.User)
	}

	return user, args.Error(1)
}
