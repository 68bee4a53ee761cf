package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus describes checkout outcome.
type OrderStatus string

const (
	OrderStatusCompleted OrderStatus = "COMPLETED"
)

// Order is the header of one completed checkout.
type Order struct {
	ID          int64
	UserID      int64
	TotalAmount decimal.Decimal
	Status      OrderStatus
	CreatedAt   time.Time
}

// PurchaseLine is one product entry of an order with the price frozen at checkout.
type PurchaseLine struct {
	ID              int64
	OrderID         int64
	ProductID       int64
	UserID          int64
	Quantity        int
	PriceAtPurchase decimal.Decimal
	CreatedAt       time.Time
}

// Subtotal returns price at purchase multiplied by quantity.
func (l PurchaseLine) Subtotal() decimal.Decimal {
	return l.PriceAtPurchase.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Receipt groups an order with the lines written in the same commit.
// Products holds the display fields read under the commit lock, keyed by product id.
type Receipt struct {
	Order    Order
	Lines    []PurchaseLine
	Products map[int64]ProductSnapshot
}
