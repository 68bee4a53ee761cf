package handlers

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/server/http/middleware"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, in model.RegisterInput) (*model.User, string, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, string, error)
}

// PurchaseFacade exposes the purchase engine.
type PurchaseFacade interface {
	PurchaseOne(ctx context.Context, token string, productID int64, quantity int) (*model.LineResult, error)
	PurchaseMany(ctx context.Context, token string, items []model.PurchaseItem) ([]model.LineResult, error)
	History(ctx context.Context, token string) ([]model.LineResult, error)
}

// AnalyticsFacade exposes the dashboard views.
type AnalyticsFacade interface {
	Overview(ctx context.Context) (*model.OverviewStats, error)
	TopProducts(ctx context.Context, limit int) ([]model.ProductRanking, error)
	CategoryStats(ctx context.Context) ([]model.CategoryStat, error)
	LowStock(ctx context.Context) ([]model.LowStockEntry, error)
	RecentOrders(ctx context.Context, limit int) ([]model.OrderSummary, error)
	Dashboard(ctx context.Context) (*model.Dashboard, error)
}

// HealthFacade reports backing store health.
type HealthFacade interface {
	HealthCheck(ctx context.Context) error
}

// StorefrontFacade aggregates the full set of operations used across handlers.
type StorefrontFacade interface {
	AuthFacade
	PurchaseFacade
	AnalyticsFacade
	HealthFacade
	middleware.AdminAuthorizer
}
