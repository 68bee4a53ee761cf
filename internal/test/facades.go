package test

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// FacadeStub implements every facade contract used by the HTTP layer.
// Unset functions return zero values.
type FacadeStub struct {
	RegisterFn       func(context.Context, model.RegisterInput) (*model.User, string, error)
	AuthenticateFn   func(context.Context, string, string) (*model.User, string, error)
	AuthorizeAdminFn func(context.Context, string) (int64, error)

	PurchaseOneFn  func(context.Context, string, int64, int) (*model.LineResult, error)
	PurchaseManyFn func(context.Context, string, []model.PurchaseItem) ([]model.LineResult, error)
	HistoryFn      func(context.Context, string) ([]model.LineResult, error)

	OverviewFn      func(context.Context) (*model.OverviewStats, error)
	TopProductsFn   func(context.Context, int) ([]model.ProductRanking, error)
	CategoryStatsFn func(context.Context) ([]model.CategoryStat, error)
	LowStockFn      func(context.Context) ([]model.LowStockEntry, error)
	RecentOrdersFn  func(context.Context, int) ([]model.OrderSummary, error)
	DashboardFn     func(context.Context) (*model.Dashboard, error)

	HealthErr error
}

func (s FacadeStub) Register(ctx context.Context, in model.RegisterInput) (*model.User, string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, in)
	}
	return &model.User{ID: 1, Email: in.Email}, "token", nil
}

func (s FacadeStub) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	return &model.User{ID: 1, Email: email}, "token", nil
}

func (s FacadeStub) AuthorizeAdmin(ctx context.Context, token string) (int64, error) {
	if s.AuthorizeAdminFn != nil {
		return s.AuthorizeAdminFn(ctx, token)
	}
	return 1, nil
}

func (s FacadeStub) PurchaseOne(ctx context.Context, token string, productID int64, quantity int) (*model.LineResult, error) {
	if s.PurchaseOneFn != nil {
		return s.PurchaseOneFn(ctx, token, productID, quantity)
	}
	return &model.LineResult{ProductID: productID, Quantity: quantity}, nil
}

func (s FacadeStub) PurchaseMany(ctx context.Context, token string, items []model.PurchaseItem) ([]model.LineResult, error) {
	if s.PurchaseManyFn != nil {
		return s.PurchaseManyFn(ctx, token, items)
	}
	return nil, nil
}

func (s FacadeStub) History(ctx context.Context, token string) ([]model.LineResult, error) {
	if s.HistoryFn != nil {
		return s.HistoryFn(ctx, token)
	}
	return nil, nil
}

func (s FacadeStub) Overview(ctx context.Context) (*model.OverviewStats, error) {
	if s.OverviewFn != nil {
		return s.OverviewFn(ctx)
	}
	return &model.OverviewStats{}, nil
}

func (s FacadeStub) TopProducts(ctx context.Context, limit int) ([]model.ProductRanking, error) {
	if s.TopProductsFn != nil {
		return s.TopProductsFn(ctx, limit)
	}
	return nil, nil
}

func (s FacadeStub) CategoryStats(ctx context.Context) ([]model.CategoryStat, error) {
	if s.CategoryStatsFn != nil {
		return s.CategoryStatsFn(ctx)
	}
	return nil, nil
}

func (s FacadeStub) LowStock(ctx context.Context) ([]model.LowStockEntry, error) {
	if s.LowStockFn != nil {
		return s.LowStockFn(ctx)
	}
	return nil, nil
}

func (s FacadeStub) RecentOrders(ctx context.Context, limit int) ([]model.OrderSummary, error) {
	if s.RecentOrdersFn != nil {
		return s.RecentOrdersFn(ctx, limit)
	}
	return nil, nil
}

func (s FacadeStub) Dashboard(ctx context.Context) (*model.Dashboard, error) {
	if s.DashboardFn != nil {
		return s.DashboardFn(ctx)
	}
	return &model.Dashboard{}, nil
}

func (s FacadeStub) HealthCheck(context.Context) error {
	return s.HealthErr
}
