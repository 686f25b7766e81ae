package handlers

import (
	"log/slog"
	"net/http"

	"github.com/LeoR1u/ProyectoLegos/internal/api/middleware"
	"github.com/LeoR1u/ProyectoLegos/internal/models"
	service "github.com/LeoR1u/ProyectoLegos/internal/services"
	"github.com/LeoR1u/ProyectoLegos/internal/utils"
	"github.com/LeoR1u/ProyectoLegos/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type UserHandler struct {
	userService  service.UserService
	pendingCarts service.PendingCartService
	validator    *validator.Validate
}

func NewUserHandler(userService service.UserService, pendingCarts service.PendingCartService) *UserHandler {
	return &UserHandler{
		userService:  userService,
		pendingCarts: pendingCarts,
		validator:    validator.New(),
	}
}

// Register godoc
//	@Summary		Register a new user
//	@Tags			Users
//	@Accept			json
//	@Param			user	body	models.RegisterRequest	true	"Username and password"
//	@Success		303		"Redirect to /login"
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Failure		409		{object}	response.ErrorResponse	"Username already registered"
//	@Failure		500		{object}	response.ErrorResponse	"Internal server error"
//	@Router			/register [post]
func (h *UserHandler) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.RegisterRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid registration input")
			return
		}

		user, err := h.userService.Register(r.Context(), &req)
		if err != nil {
			logger.Warn("Registration failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("User registered successfully", slog.String("userId", user.ID.String()))
		redirect(w, r, middleware.LoginPath)
	}
}

// Login godoc
//	@Summary		Log in
//	@Description	Signs the session in. A cart saved at the user's last logout replaces the session cart.
//	@Tags			Users
//	@Accept			json
//	@Param			credentials	body	models.LoginRequest	true	"Username and password"
//	@Success		303			"Redirect to /"
//	@Failure		400			{object}	response.ErrorResponse	"Validation error"
//	@Failure		401			{object}	response.ErrorResponse	"Invalid username or password"
//	@Failure		429			{object}	response.ErrorResponse	"Too many login attempts"
//	@Failure		500			{object}	response.ErrorResponse	"Internal server error"
//	@Router			/login [post]
func (h *UserHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		sess, ok := currentSession(w, r)
		if !ok {
			return
		}

		var req models.LoginRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid login input")
			return
		}

		user, err := h.userService.Login(r.Context(), &req)
		if err != nil {
			logger.Warn("Login failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		sess.Login(user)
		logger = logger.With(slog.String("userId", user.ID.String()))

		restored, err := h.pendingCarts.RestoreAndClear(r.Context(), user.ID, sess.Cart)
		if err != nil {
			logger.Error("Failed to restore pending cart", slog.Any("error", err))
		} else if restored {
			logger.Info("Pending cart restored", slog.Int("count", sess.Cart.ItemCount()))
		}

		logger.Info("User logged in")
		redirect(w, r, HomePath)
	}
}

// Logout godoc
//	@Summary		Log out
//	@Description	Ends the session. A signed-in user's non-empty cart is kept for their next login.
//	@Tags			Users
//	@Success		303	"Redirect to /"
//	@Router			/logout [post]
func (h *UserHandler) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		sess, ok := currentSession(w, r)
		if !ok {
			return
		}

		if sess.IsAuthenticated() && !sess.Cart.IsEmpty() {
			if err := h.pendingCarts.Save(r.Context(), sess.User.ID, sess.Cart); err != nil {
				logger.Error("Failed to save pending cart", slog.String("userId", sess.User.ID.String()), slog.Any("error", err))
			}
		}

		sess.Destroy()

		logger.Info("Session ended")
		redirect(w, r, HomePath)
	}
}
