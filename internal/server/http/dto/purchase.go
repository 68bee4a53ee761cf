package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseRequest describes a single product purchase.
type PurchaseRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// BulkPurchaseRequest describes a multi-product purchase.
type BulkPurchaseRequest struct {
	Products []PurchaseRequest `json:"products"`
}

// PurchaseResponse describes one purchased line.
type PurchaseResponse struct {
	ID                 int64           `json:"id"`
	OrderID            int64           `json:"order_id"`
	ProductID          int64           `json:"product_id"`
	ProductTitle       string          `json:"product_title"`
	ProductDescription string          `json:"product_description"`
	ProductPrice       decimal.Decimal `json:"product_price"`
	ProductURL         string          `json:"product_url"`
	Quantity           int             `json:"quantity"`
	PurchasedAt        time.Time       `json:"purchased_at"`
}
