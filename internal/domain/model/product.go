package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// LowStockThreshold is the stock level below which a product is reported as low.
const LowStockThreshold = 10

// UncategorizedLabel is shown for products without a resolvable category.
const UncategorizedLabel = "Uncategorized"

// Product is a catalog entry with its stock counter.
type Product struct {
	ID          int64
	Title       string
	Description string
	ImageURL    string
	Price       decimal.Decimal
	Quantity    int
	CategoryID  *int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Category groups products for reporting.
type Category struct {
	ID   int64
	Name string
}
