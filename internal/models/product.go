package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID        int64           `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	CreatedAt time.Time       `json:"created_at"`
}

// LineItem captures the catalog fields a cart keeps for the product.
func (p *Product) LineItem() LineItem {
	return LineItem{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		ImageRef:  p.Image,
		Quantity:  1,
	}
}

// Storefront is the index page payload: the catalog plus the visitor's cart
// count.
type Storefront struct {
	Products  []*Product `json:"products"`
	CartCount int        `json:"cart_count"`
	Username  string     `json:"username,omitempty"`
}
