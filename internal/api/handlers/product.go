package handlers

import (
	"log/slog"
	"net/http"

	"github.com/LeoR1u/ProyectoLegos/internal/api/middleware"
	"github.com/LeoR1u/ProyectoLegos/internal/models"
	service "github.com/LeoR1u/ProyectoLegos/internal/services"
	"github.com/LeoR1u/ProyectoLegos/internal/utils"
	"github.com/LeoR1u/ProyectoLegos/internal/utils/response"
)

type ProductHandler struct {
	productService service.ProductService
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// Index godoc
//	@Summary		Storefront
//	@Description	Lists the catalog together with the visitor's cart count and username.
//	@Tags			Products
//	@Produce		json
//	@Success		200	{object}	models.Storefront		"Catalog and cart count"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Router			/ [get]
func (h *ProductHandler) Index() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		sess, ok := currentSession(w, r)
		if !ok {
			return
		}

		products, err := h.productService.ListProducts(r.Context())
		if err != nil {
			logger.Error("Failed to list products", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		page := models.Storefront{
			Products:  products,
			CartCount: sess.Cart.ItemCount(),
		}
		if sess.IsAuthenticated() {
			page.Username = sess.User.Username
		}

		response.Success(w, http.StatusOK, page)
	}
}

// ListProducts godoc
//	@Summary		List products
//	@Description	Returns the full catalog ordered by product id.
//	@Tags			Products
//	@Produce		json
//	@Success		200	{array}		models.Product			"Catalog"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Router			/api/v1/products [get]
func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		products, err := h.productService.ListProducts(r.Context())
		if err != nil {
			logger.Error("Failed to list products", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Products listed", slog.Int("count", len(products)))
		response.Success(w, http.StatusOK, products)
	}
}

// GetProduct godoc
//	@Summary		Get a product
//	@Tags			Products
//	@Produce		json
//	@Param			id	path		int						true	"Product ID"
//	@Success		200	{object}	models.Product			"Product"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid product ID"
//	@Failure		404	{object}	response.ErrorResponse	"Product not found"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Router			/api/v1/products/{id} [get]
func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid product id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		product, err := h.productService.GetProductByID(r.Context(), id)
		if err != nil {
			logger.Warn("Failed to get product", slog.Int64("productId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, product)
	}
}
