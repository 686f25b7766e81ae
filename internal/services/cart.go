package service

import (
	"context"
	stdErrors "errors"
	"fmt"
	"log/slog"

	"github.com/LeoR1u/ProyectoLegos/internal/api/middleware"
	"github.com/LeoR1u/ProyectoLegos/internal/errors"
	"github.com/LeoR1u/ProyectoLegos/internal/models"
)

type CartService interface {
	// AddItem looks the product up in the catalog and merges one unit of it
	// into cart.
	AddItem(ctx context.Context, cart *models.Cart, req *models.AddItemRequest) (*models.CartResult, error)
	// UpdateQuantity reports an unknown product as Success=false, not as an
	// error.
	UpdateQuantity(ctx context.Context, cart *models.Cart, req *models.UpdateCartRequest) (*models.CartResult, error)
	View(cart *models.Cart) *models.CartView
}

type cartService struct {
	products ProductService
}

func NewCartService(products ProductService) CartService {
	return &cartService{products: products}
}

func (s *cartService) AddItem(ctx context.Context, cart *models.Cart, req *models.AddItemRequest) (*models.CartResult, error) {
	product, err := s.products.GetProductByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	if err := cart.AddItem(product.LineItem()); err != nil {
		if stdErrors.Is(err, models.ErrQuantityLimit) {
			return nil, quantityLimitError(req.ProductID)
		}

		return nil, errors.InternalError("Failed to add item").WithError(err)
	}

	middleware.LoggerFromContext(ctx).Info("Item added to cart",
		slog.Int64("productId", req.ProductID),
		slog.Int("count", cart.ItemCount()),
	)

	return models.NewCartResult(true, cart), nil
}

func (s *cartService) UpdateQuantity(ctx context.Context, cart *models.Cart, req *models.UpdateCartRequest) (*models.CartResult, error) {
	found, err := cart.UpdateQuantity(req.ProductID, req.Action)
	if err != nil {
		if stdErrors.Is(err, models.ErrQuantityLimit) {
			return nil, quantityLimitError(req.ProductID)
		}

		return nil, errors.InternalError("Failed to update cart").WithError(err)
	}

	if !found {
		middleware.LoggerFromContext(ctx).Info("Cart update for a product not in the cart", slog.Int64("productId", req.ProductID))
		return models.NewCartResult(false, cart), nil
	}

	return models.NewCartResult(true, cart), nil
}

func (s *cartService) View(cart *models.Cart) *models.CartView {
	return &models.CartView{
		Items: cart.Snapshot(),
		Total: cart.Total(),
		Count: cart.ItemCount(),
	}
}

func quantityLimitError(productID int64) *errors.AppError {
	return errors.ValidationError(fmt.Sprintf("Quantity for product %d cannot exceed %d", productID, models.MaxItemQuantity)).
		WithError(models.ErrQuantityLimit)
}
