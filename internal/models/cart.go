package models

import (
	"errors"
	"slices"

	"github.com/shopspring/decimal"
)

// MaxItemQuantity bounds the quantity of a single line item.
const MaxItemQuantity = 99

var ErrQuantityLimit = errors.New("item quantity limit reached")

type CartAction string

const (
	CartActionIncrease CartAction = "increase"
	CartActionDecrease CartAction = "decrease"
	CartActionRemove   CartAction = "remove"
)

type LineItem struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"price"`
	ImageRef  string          `json:"image"`
	Quantity  int             `json:"quantity"`
}

func (i LineItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is the ordered, product-unique set of line items owned by one session.
// Totals are never stored; they are computed from the items on every call.
type Cart struct {
	Items []LineItem `json:"items"`
}

func NewCart() *Cart {
	return &Cart{Items: []LineItem{}}
}

func (c *Cart) find(productID int64) int {
	return slices.IndexFunc(c.Items, func(i LineItem) bool { return i.ProductID == productID })
}

// AddItem merges by product id: an existing line gains one unit and keeps the
// name and price it was first added with. New lines start at quantity 1.
func (c *Cart) AddItem(item LineItem) error {
	if idx := c.find(item.ProductID); idx >= 0 {
		if c.Items[idx].Quantity >= MaxItemQuantity {
			return ErrQuantityLimit
		}
		c.Items[idx].Quantity++
		return nil
	}

	item.Quantity = 1
	c.Items = append(c.Items, item)

	return nil
}

// UpdateQuantity applies action to the line for productID and reports whether
// the line existed. A line whose quantity drops to zero is removed.
func (c *Cart) UpdateQuantity(productID int64, action CartAction) (bool, error) {
	idx := c.find(productID)
	if idx < 0 {
		return false, nil
	}

	switch action {
	case CartActionIncrease:
		if c.Items[idx].Quantity >= MaxItemQuantity {
			return true, ErrQuantityLimit
		}
		c.Items[idx].Quantity++
	case CartActionDecrease:
		c.Items[idx].Quantity--
	case CartActionRemove:
		c.Items[idx].Quantity = 0
	}

	if c.Items[idx].Quantity <= 0 {
		c.Items = slices.Delete(c.Items, idx, idx+1)
	}

	return true, nil
}

func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.LineTotal())
	}

	return total
}

func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}

	return count
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Clear is called only once an order built from the cart has been committed.
func (c *Cart) Clear() {
	c.Items = []LineItem{}
}

// Replace swaps the whole content, used when a pending cart is restored.
// Lines with a non-positive quantity are dropped and duplicates are merged.
func (c *Cart) Replace(items []LineItem) {
	replaced := make([]LineItem, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}
		if idx := slices.IndexFunc(replaced, func(i LineItem) bool { return i.ProductID == item.ProductID }); idx >= 0 {
			replaced[idx].Quantity = min(replaced[idx].Quantity+item.Quantity, MaxItemQuantity)
			continue
		}
		item.Quantity = min(item.Quantity, MaxItemQuantity)
		replaced = append(replaced, item)
	}

	c.Items = replaced
}

// Snapshot returns a copy of the items that later cart mutations cannot reach.
func (c *Cart) Snapshot() []LineItem {
	return slices.Clone(c.Items)
}

type AddItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
}

type UpdateCartRequest struct {
	ProductID int64      `json:"product_id" validate:"required,gt=0"`
	Action    CartAction `json:"action" validate:"required,oneof=increase decrease remove"`
}

// CartResult is the body returned by the cart mutation endpoints.
type CartResult struct {
	Success bool            `json:"success"`
	Total   decimal.Decimal `json:"total"`
	Count   int             `json:"count"`
	Cart    []LineItem      `json:"cart"`
}

func NewCartResult(success bool, cart *Cart) *CartResult {
	return &CartResult{
		Success: success,
		Total:   cart.Total(),
		Count:   cart.ItemCount(),
		Cart:    cart.Snapshot(),
	}
}

type CartView struct {
	Items []LineItem      `json:"items"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}
