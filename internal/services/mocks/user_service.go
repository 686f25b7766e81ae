package mocks

import (
	"context"

	"github.com/LeoR1u/ProyectoLegos/internal/models"
	"github.com/stretchr/testify/mock"
)

type UserService struct {
	mock.Mock
}

func (m *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	args := m.Called(ctx, req)

	var user *models.User
	if v := args.Get(0); v != nil {
		user = v.(*models.User)
	}

	return user, args.Error(1)
}

func (m *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, error) {
	args := m.Called(ctx, req)

	var user *models.User
	if v := args.Get(0); v != nil {
		user = v.(*models.User)
	}

	return user, args.Error(1)
}
