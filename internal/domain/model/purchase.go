package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnavailableProductTitle replaces the title of a product removed from the catalog.
const UnavailableProductTitle = "Product not available"

// PurchaseItem is one requested product and quantity.
type PurchaseItem struct {
	ProductID int64
	Quantity  int
}

// LineDraft is a validated item ready to be committed.
// The committed unit price is read by the store under lock.
type LineDraft struct {
	ProductID int64
	Title     string
	Quantity  int
}

// ProductSnapshot holds product display fields as seen by the buyer.
type ProductSnapshot struct {
	Title       string
	Description string
	Price       decimal.Decimal
	ImageURL    string
}

// LineResult is the purchase view returned to callers.
type LineResult struct {
	LineID      int64
	OrderID     int64
	ProductID   int64
	Product     ProductSnapshot
	Quantity    int
	PurchasedAt time.Time
}
