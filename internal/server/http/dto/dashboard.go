package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OverviewResponse describes store wide totals.
type OverviewResponse struct {
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	RevenueToday   decimal.Decimal `json:"revenue_today"`
	RevenueWeek    decimal.Decimal `json:"revenue_this_week"`
	RevenueMonth   decimal.Decimal `json:"revenue_this_month"`
	TotalOrders    int64           `json:"total_orders"`
	OrdersToday    int64           `json:"orders_today"`
	OrdersWeek     int64           `json:"orders_this_week"`
	OrdersMonth    int64           `json:"orders_this_month"`
	TotalUsers     int64           `json:"total_users"`
	NewUsersToday  int64           `json:"new_users_today"`
	NewUsersWeek   int64           `json:"new_users_this_week"`
	NewUsersMonth  int64           `json:"new_users_this_month"`
	TotalProducts  int64           `json:"total_products"`
	LowStockCount  int64           `json:"low_stock_products"`
	OutOfStock     int64           `json:"out_of_stock_products"`
	TotalItemsSold int64           `json:"total_items_sold"`
}

// TopProductResponse describes one top selling product.
type TopProductResponse struct {
	ProductID    int64           `json:"product_id"`
	Title        string          `json:"title"`
	ImageURL     string          `json:"image_url"`
	Price        decimal.Decimal `json:"price"`
	Category     string          `json:"category"`
	TotalSold    int64           `json:"total_sold"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// CategoryStatResponse describes sales of one category.
type CategoryStatResponse struct {
	CategoryID   int64           `json:"category_id"`
	Name         string          `json:"category_name"`
	ProductCount int64           `json:"product_count"`
	TotalSold    int64           `json:"total_sold"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// LowStockResponse describes a product that needs restocking.
type LowStockResponse struct {
	ProductID    int64           `json:"product_id"`
	Title        string          `json:"title"`
	ImageURL     string          `json:"image_url"`
	CurrentStock int             `json:"current_stock"`
	Price        decimal.Decimal `json:"price"`
	Category     string          `json:"category"`
}

// OrderItemResponse describes one line of a recent order.
type OrderItemResponse struct {
	ProductID       int64           `json:"product_id"`
	Title           string          `json:"product_title"`
	Quantity        int             `json:"quantity"`
	PriceAtPurchase decimal.Decimal `json:"price_at_purchase"`
}

// RecentOrderResponse describes a recent order.
type RecentOrderResponse struct {
	OrderID     int64               `json:"order_id"`
	UserID      int64               `json:"user_id"`
	UserEmail   string              `json:"user_email"`
	UserName    string              `json:"user_name"`
	TotalAmount decimal.Decimal     `json:"total_amount"`
	Status      string              `json:"status"`
	ItemCount   int                 `json:"item_count"`
	CreatedAt   time.Time           `json:"created_at"`
	Items       []OrderItemResponse `json:"items"`
}

// DashboardResponse combines every dashboard view.
type DashboardResponse struct {
	Overview      OverviewResponse       `json:"overview"`
	TopProducts   []TopProductResponse   `json:"top_products"`
	CategoryStats []CategoryStatResponse `json:"category_stats"`
	LowStock      []LowStockResponse     `json:"low_stock_products"`
	RecentOrders  []RecentOrderResponse  `json:"recent_orders"`
}
