package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderLine copies the product name and price by value so later catalog
// changes do not alter past orders.
type OrderLine struct {
	OrderID     int64           `json:"order_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"price"`
}

func (l OrderLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Order struct {
	ID        int64           `json:"order_id"`
	UserID    uuid.UUID       `json:"user_id"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
	Lines     []OrderLine     `json:"lines"`
}

// OrderSummary is one row of the order history.
type OrderSummary struct {
	OrderID   int64           `json:"order_id"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"date"`
	Items     string          `json:"items"`
}

type OrderHistoryResponse struct {
	Orders []OrderSummary `json:"orders"`
	Total  int            `json:"total"`
}
