package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/metrics"
	"github.com/polkiloo/storefront/internal/usecase"
)

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// StorefrontFacade is the single entry point used by handlers and the worker.
type StorefrontFacade struct {
	auth      *usecase.AuthUseCase
	purchases *usecase.PurchaseUseCase
	analytics *usecase.AnalyticsUseCase
	metrics   *metrics.Recorder
	health    HealthChecker
	logger    *slog.Logger
}

// NewStorefrontFacade composes the use cases behind one facade.
func NewStorefrontFacade(
	auth *usecase.AuthUseCase,
	purchases *usecase.PurchaseUseCase,
	analytics *usecase.AnalyticsUseCase,
	recorder *metrics.Recorder,
	health HealthChecker,
	logger *slog.Logger,
) *StorefrontFacade {
	if logger == nil {
		logger = slog.Default()
	}
	return &StorefrontFacade{
		auth:      auth,
		purchases: purchases,
		analytics: analytics,
		metrics:   recorder,
		health:    health,
		logger:    logger,
	}
}

func (f *StorefrontFacade) Register(ctx context.Context, in model.RegisterInput) (*model.User, string, error) {
	return f.auth.Register(ctx, in)
}

func (f *StorefrontFacade) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	return f.auth.Authenticate(ctx, email, password)
}

func (f *StorefrontFacade) ResolveIdentity(ctx context.Context, token string) (int64, error) {
	return f.auth.ResolveIdentity(ctx, token)
}

func (f *StorefrontFacade) AuthorizeAdmin(ctx context.Context, token string) (int64, error) {
	return f.auth.AuthorizeAdmin(ctx, token)
}

// PurchaseOne buys a single product and records the attempt.
func (f *StorefrontFacade) PurchaseOne(ctx context.Context, token string, productID int64, quantity int) (*model.LineResult, error) {
	start := time.Now()
	result, err := f.purchases.PurchaseOne(ctx, token, productID, quantity)
	if err != nil {
		f.observeFailure(metrics.KindSingle, start, err, slog.Int64("product_id", productID))
		return nil, err
	}
	f.observeCommit(metrics.KindSingle, start, []model.LineResult{*result})
	return result, nil
}

// PurchaseMany buys every item in one order and records the attempt.
func (f *StorefrontFacade) PurchaseMany(ctx context.Context, token string, items []model.PurchaseItem) ([]model.LineResult, error) {
	start := time.Now()
	results, err := f.purchases.PurchaseMany(ctx, token, items)
	if err != nil {
		f.observeFailure(metrics.KindBulk, start, err, slog.Int("items", len(items)))
		return nil, err
	}
	f.observeCommit(metrics.KindBulk, start, results)
	return results, nil
}

func (f *StorefrontFacade) History(ctx context.Context, token string) ([]model.LineResult, error) {
	return f.purchases.History(ctx, token)
}

func (f *StorefrontFacade) observeCommit(kind string, start time.Time, results []model.LineResult) {
	units := 0
	for _, r := range results {
		units += r.Quantity
	}
	f.metrics.ObservePurchase(kind, metrics.OutcomeCommitted, time.Since(start))
	f.metrics.AddItemsSold(units)

	var orderID int64
	if len(results) > 0 {
		orderID = results[0].OrderID
	}
	f.logger.Info("purchase committed",
		slog.String("kind", kind),
		slog.Int64("order_id", orderID),
		slog.Int("items", len(results)),
		slog.Int("units", units),
	)
}

func (f *StorefrontFacade) observeFailure(kind string, start time.Time, err error, attrs ...slog.Attr) {
	outcome := purchaseOutcome(err)
	f.metrics.ObservePurchase(kind, outcome, time.Since(start))

	attrs = append(attrs, slog.String("kind", kind), slog.String("outcome", outcome), slog.String("error", err.Error()))
	level := slog.LevelWarn
	if outcome == metrics.OutcomeError {
		level = slog.LevelError
	}
	f.logger.LogAttrs(context.Background(), level, "purchase failed", attrs...)
}

func purchaseOutcome(err error) string {
	switch {
	case errors.Is(err, domainErrors.ErrUnauthenticated):
		return metrics.OutcomeUnauthorized
	case errors.Is(err, domainErrors.ErrConflict):
		return metrics.OutcomeConflict
	case errors.Is(err, domainErrors.ErrInsufficientStock),
		errors.Is(err, domainErrors.ErrNotFound),
		errors.Is(err, domainErrors.ErrInvalidRequest):
		return metrics.OutcomeRejected
	default:
		return metrics.OutcomeError
	}
}

func (f *StorefrontFacade) Overview(ctx context.Context) (*model.OverviewStats, error) {
	return f.analytics.Overview(ctx)
}

func (f *StorefrontFacade) TopProducts(ctx context.Context, limit int) ([]model.ProductRanking, error) {
	return f.analytics.TopProducts(ctx, limit)
}

func (f *StorefrontFacade) CategoryStats(ctx context.Context) ([]model.CategoryStat, error) {
	return f.analytics.CategoryStats(ctx)
}

func (f *StorefrontFacade) LowStock(ctx context.Context) ([]model.LowStockEntry, error) {
	return f.analytics.LowStock(ctx)
}

func (f *StorefrontFacade) RecentOrders(ctx context.Context, limit int) ([]model.OrderSummary, error) {
	return f.analytics.RecentOrders(ctx, limit)
}

func (f *StorefrontFacade) Dashboard(ctx context.Context) (*model.Dashboard, error) {
	return f.analytics.Dashboard(ctx)
}

// HealthCheck pings the backing store.
func (f *StorefrontFacade) HealthCheck(ctx context.Context) error {
	if f.health == nil {
		return nil
	}
	return f.health.HealthCheck(ctx)
}

