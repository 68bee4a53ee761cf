package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnknownLabel is shown when a referenced user or product no longer resolves.
const UnknownLabel = "Unknown"

// ProductSales is the aggregated sales of a single product.
type ProductSales struct {
	ProductID int64
	Quantity  int64
	Revenue   decimal.Decimal
}

// OverviewStats aggregates totals for the all-time, today, 7 day and 30 day windows.
type OverviewStats struct {
	TotalRevenue   decimal.Decimal
	RevenueToday   decimal.Decimal
	RevenueWeek    decimal.Decimal
	RevenueMonth   decimal.Decimal
	TotalOrders    int64
	OrdersToday    int64
	OrdersWeek     int64
	OrdersMonth    int64
	TotalUsers     int64
	NewUsersToday  int64
	NewUsersWeek   int64
	NewUsersMonth  int64
	TotalProducts  int64
	LowStockCount  int64
	OutOfStock     int64
	TotalItemsSold int64
}

// ProductRanking is one row of the top selling products list.
type ProductRanking struct {
	ProductID    int64
	Title        string
	ImageURL     string
	Price        decimal.Decimal
	Category     string
	TotalSold    int64
	TotalRevenue decimal.Decimal
}

// CategoryStat summarises sales of one category.
type CategoryStat struct {
	CategoryID   int64
	Name         string
	ProductCount int64
	TotalSold    int64
	TotalRevenue decimal.Decimal
}

// LowStockEntry is a product that needs restocking.
type LowStockEntry struct {
	ProductID    int64
	Title        string
	ImageURL     string
	CurrentStock int
	Price        decimal.Decimal
	Category     string
}

// OrderItemSummary is one line of a recent order.
type OrderItemSummary struct {
	ProductID       int64
	Title           string
	Quantity        int
	PriceAtPurchase decimal.Decimal
}

// OrderSummary is a recent order with purchaser and items.
type OrderSummary struct {
	OrderID     int64
	UserID      int64
	UserEmail   string
	UserName    string
	TotalAmount decimal.Decimal
	Status      OrderStatus
	CreatedAt   time.Time
	Items       []OrderItemSummary
}

// ItemCount returns the number of lines in the order.
func (s OrderSummary) ItemCount() int { return len(s.Items) }

// Dashboard combines every analytics view.
type Dashboard struct {
	Overview      OverviewStats
	TopProducts   []ProductRanking
	CategoryStats []CategoryStat
	LowStock      []LowStockEntry
	RecentOrders  []OrderSummary
}
