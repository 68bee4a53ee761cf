package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// OrderRepository describes read operations over order headers.
type OrderRepository interface {
	ListRecent(ctx context.Context, limit int) ([]model.Order, error)
	CountSince(ctx context.Context, since *time.Time) (int64, error)
	SumRevenueSince(ctx context.Context, since *time.Time, status model.OrderStatus) (decimal.Decimal, error)
}

// PurchaseLineRepository describes read operations over purchase lines.
type PurchaseLineRepository interface {
	// ListByUser returns the user's lines newest first.
	ListByUser(ctx context.Context, userID int64) ([]model.PurchaseLine, error)
	ListByOrder(ctx context.Context, orderID int64) ([]model.PurchaseLine, error)
	// SalesByProduct aggregates sold quantity and revenue per product,
	// ordered by quantity descending then product id ascending.
	SalesByProduct(ctx context.Context, since *time.Time) ([]model.ProductSales, error)
	TotalItemsSold(ctx context.Context, since *time.Time) (int64, error)
}

// CheckoutRepository commits an order, its lines and the stock debits as one unit.
//
// Implementations must re-verify stock at commit time so that concurrent
// checkouts never drive a product quantity below zero.
type CheckoutRepository interface {
	Checkout(ctx context.Context, userID int64, drafts []model.LineDraft) (*model.Receipt, error)
}
