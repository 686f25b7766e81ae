package service

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"fmt"
	"log/slog"

	"github.com/LeoR1u/ProyectoLegos/internal/api/middleware"
	"github.com/LeoR1u/ProyectoLegos/internal/errors"
	"github.com/LeoR1u/ProyectoLegos/internal/models"
	repository "github.com/LeoR1u/ProyectoLegos/internal/repositories"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.User, error)
}

type userService struct {
	repo      repository.UserRepository
	rateLimit repository.RateLimitRepository
	policy    *bluemonday.Policy
}

func NewUserService(repo repository.UserRepository, rateLimit repository.RateLimitRepository) UserService {
	return &userService{
		repo:      repo,
		rateLimit: rateLimit,
		policy:    bluemonday.StrictPolicy(),
	}
}

// Register rejects usernames carrying markup; they are shown on tickets and
// history pages.
func (s *userService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	if s.policy.Sanitize(req.Username) != req.Username {
		return nil, errors.AddValidationError("username", "must not contain markup")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.InternalError("Failed to secure password").WithError(err)
	}

	user := &models.User{
		Username:   req.Username,
		Credential: string(hashedPassword),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if stdErrors.Is(err, repository.ErrDuplicateUsername) {
			return nil, errors.DuplicateEntryError("Username already registered").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to create user").WithError(err)
	}

	middleware.LoggerFromContext(ctx).Info("User registered", slog.String("userId", user.ID.String()))

	return user, nil
}

func (s *userService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, error) {
	logger := middleware.LoggerFromContext(ctx)

	allowed, remaining, retryAfter, err := s.rateLimit.CheckLoginRateLimit(ctx, req.Username)
	if err != nil {
		return nil, errors.DatabaseError("Rate limit check failed").WithError(err)
	}

	if !allowed {
		return nil, errors.TooManyRequestsError("Too many login attempts. Please try again later.").
			WithDetail(fmt.Sprintf("retry after %d seconds", retryAfter))
	}

	user, err := s.repo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if !stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.DatabaseError("Failed to look up user").WithError(err)
		}

		logger.Info("Login with unknown username", slog.Int("remainingTries", remaining))

		return nil, invalidCredentials(remaining)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Credential), []byte(req.Password)); err != nil {
		logger.Info("Login with wrong password", slog.String("userId", user.ID.String()), slog.Int("remainingTries", remaining))

		return nil, invalidCredentials(remaining)
	}

	if err := s.rateLimit.ResetLoginAttempts(ctx, req.Username); err != nil {
		logger.Warn("Failed to reset login attempts", slog.String("userId", user.ID.String()), slog.Any("error", err))
	}

	return user, nil
}

func invalidCredentials(remaining int) *errors.AppError {
	return errors.UnauthorizedError("Invalid username or password").
		WithDetail(fmt.Sprintf("%d attempts remaining", remaining))
}
