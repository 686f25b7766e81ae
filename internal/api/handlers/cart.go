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

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validator:   validator.New(),
	}
}

// ViewCart godoc
//	@Summary		View the cart
//	@Description	Returns the session cart with its total and item count.
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{object}	models.CartView			"Cart"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Router			/cart [get]
func (h *CartHandler) ViewCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sess, ok := currentSession(w, r)
		if !ok {
			return
		}

		response.Success(w, http.StatusOK, h.cartService.View(sess.Cart))
	}
}

// AddToCart godoc
//	@Summary		Add a product to the cart
//	@Description	Adds one unit of a catalog product. Adding a product already in the cart increments its quantity.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.AddItemRequest	true	"Product to add"
//	@Success		200		{object}	models.CartResult		"Updated cart"
//	@Failure		400		{object}	response.ErrorResponse	"Invalid body or quantity limit reached"
//	@Failure		404		{object}	response.ErrorResponse	"Product not found"
//	@Failure		500		{object}	response.ErrorResponse	"Internal server error"
//	@Router			/add-to-cart [post]
func (h *CartHandler) AddToCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		sess, ok := currentSession(w, r)
		if !ok {
			return
		}

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid add to cart input")
			return
		}

		result, err := h.cartService.AddItem(r.Context(), sess.Cart, &req)
		if err != nil {
			logger.Warn("Failed to add item", slog.Int64("productId", req.ProductID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		_ = response.WriteJson(w, http.StatusOK, result)
	}
}

// UpdateCart godoc
//	@Summary		Change a cart line
//	@Description	Increases, decreases or removes a product. A product not in the cart yields success=false with the unchanged cart.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			update	body		models.UpdateCartRequest	true	"Product and action"
//	@Success		200		{object}	models.CartResult			"Updated cart"
//	@Failure		400		{object}	response.ErrorResponse		"Invalid body or quantity limit reached"
//	@Failure		500		{object}	response.ErrorResponse		"Internal server error"
//	@Router			/update-cart [post]
func (h *CartHandler) UpdateCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		sess, ok := currentSession(w, r)
		if !ok {
			return
		}

		var req models.UpdateCartRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid cart update input")
			return
		}

		result, err := h.cartService.UpdateQuantity(r.Context(), sess.Cart, &req)
		if err != nil {
			logger.Warn("Failed to update cart", slog.Int64("productId", req.ProductID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		_ = response.WriteJson(w, http.StatusOK, result)
	}
}
