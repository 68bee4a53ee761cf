package usecase

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// DashboardLimit bounds every list produced for the dashboard.
const DashboardLimit = 10

// Clock returns the current time.
type Clock func() time.Time

// AnalyticsUseCase computes read-only aggregates over the store.
type AnalyticsUseCase struct {
	users      repository.UserRepository
	products   repository.ProductRepository
	categories repository.CategoryRepository
	orders     repository.OrderRepository
	lines      repository.PurchaseLineRepository
	now        Clock
}

// NewAnalyticsUseCase constructs AnalyticsUseCase.
func NewAnalyticsUseCase(
	users repository.UserRepository,
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	orders repository.OrderRepository,
	lines repository.PurchaseLineRepository,
	clock Clock,
) *AnalyticsUseCase {
	if clock == nil {
		clock = time.Now
	}
	return &AnalyticsUseCase{
		users:      users,
		products:   products,
		categories: categories,
		orders:     orders,
		lines:      lines,
		now:        clock,
	}
}

type windows struct {
	today, week, month time.Time
}

func (u *AnalyticsUseCase) windows() windows {
	now := u.now()
	y, m, d := now.Date()
	return windows{
		today: time.Date(y, m, d, 0, 0, 0, 0, now.Location()),
		week:  now.AddDate(0, 0, -7),
		month: now.AddDate(0, 0, -30),
	}
}

// Overview returns revenue, order, user and inventory totals.
func (u *AnalyticsUseCase) Overview(ctx context.Context) (*model.OverviewStats, error) {
	var (
		stats model.OverviewStats
		err   error
	)
	w := u.windows()
	since := []*time.Time{nil, &w.today, &w.week, &w.month}

	revenue := []*decimal.Decimal{&stats.TotalRevenue, &stats.RevenueToday, &stats.RevenueWeek, &stats.RevenueMonth}
	for i, dst := range revenue {
		if *dst, err = u.orders.SumRevenueSince(ctx, since[i], model.OrderStatusCompleted); err != nil {
			return nil, err
		}
	}

	orders := []*int64{&stats.TotalOrders, &stats.OrdersToday, &stats.OrdersWeek, &stats.OrdersMonth}
	for i, dst := range orders {
		if *dst, err = u.orders.CountSince(ctx, since[i]); err != nil {
			return nil, err
		}
	}

	users := []*int64{&stats.TotalUsers, &stats.NewUsersToday, &stats.NewUsersWeek, &stats.NewUsersMonth}
	for i, dst := range users {
		if *dst, err = u.users.CountSince(ctx, since[i]); err != nil {
			return nil, err
		}
	}

	if stats.TotalProducts, err = u.products.Count(ctx); err != nil {
		return nil, err
	}
	if stats.LowStockCount, err = u.products.CountBelowStock(ctx, model.LowStockThreshold); err != nil {
		return nil, err
	}
	if stats.OutOfStock, err = u.products.CountOutOfStock(ctx); err != nil {
		return nil, err
	}
	if stats.TotalItemsSold, err = u.lines.TotalItemsSold(ctx, nil); err != nil {
		return nil, err
	}

	return &stats, nil
}

// categoryNames memoizes category lookups for one call.
type categoryNames struct {
	repo  repository.CategoryRepository
	names map[int64]string
}

func newCategoryNames(repo repository.CategoryRepository) *categoryNames {
	return &categoryNames{repo: repo, names: make(map[int64]string)}
}

func (c *categoryNames) lookup(ctx context.Context, id *int64) (string, error) {
	if id == nil {
		return model.UncategorizedLabel, nil
	}
	if name, ok := c.names[*id]; ok {
		return name, nil
	}
	name := model.UncategorizedLabel
	cat, err := c.repo.GetByID(ctx, *id)
	switch {
	case err == nil:
		name = cat.Name
	case !errors.Is(err, domainErrors.ErrNotFound):
		return "", err
	}
	c.names[*id] = name
	return name, nil
}

// TopProducts ranks products by total quantity sold.
// Sales of products that no longer exist are skipped.
func (u *AnalyticsUseCase) TopProducts(ctx context.Context, limit int) ([]model.ProductRanking, error) {
	if limit <= 0 {
		return []model.ProductRanking{}, nil
	}

	sales, err := u.lines.SalesByProduct(ctx, nil)
	if err != nil {
		return nil, err
	}

	names := newCategoryNames(u.categories)
	result := make([]model.ProductRanking, 0, min(limit, len(sales)))
	for _, s := range sales {
		if len(result) == limit {
			break
		}
		p, err := u.products.GetByID(ctx, s.ProductID)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				continue
			}
			return nil, err
		}
		category, err := names.lookup(ctx, p.CategoryID)
		if err != nil {
			return nil, err
		}
		result = append(result, model.ProductRanking{
			ProductID:    p.ID,
			Title:        p.Title,
			ImageURL:     p.ImageURL,
			Price:        p.Price,
			Category:     category,
			TotalSold:    s.Quantity,
			TotalRevenue: s.Revenue,
		})
	}
	return result, nil
}

// CategoryStats summarises every category, best sellers first.
func (u *AnalyticsUseCase) CategoryStats(ctx context.Context) ([]model.CategoryStat, error) {
	categories, err := u.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	products, err := u.products.List(ctx)
	if err != nil {
		return nil, err
	}
	sales, err := u.lines.SalesByProduct(ctx, nil)
	if err != nil {
		return nil, err
	}

	byProduct := make(map[int64]model.ProductSales, len(sales))
	for _, s := range sales {
		byProduct[s.ProductID] = s
	}

	index := make(map[int64]int, len(categories))
	result := make([]model.CategoryStat, len(categories))
	for i, c := range categories {
		index[c.ID] = i
		result[i] = model.CategoryStat{CategoryID: c.ID, Name: c.Name, TotalRevenue: decimal.Zero}
	}

	for _, p := range products {
		if p.CategoryID == nil {
			continue
		}
		i, ok := index[*p.CategoryID]
		if !ok {
			continue
		}
		stat := &result[i]
		stat.ProductCount++
		if s, ok := byProduct[p.ID]; ok {
			stat.TotalSold += s.Quantity
			stat.TotalRevenue = stat.TotalRevenue.Add(s.Revenue)
		}
	}

	slices.SortStableFunc(result, func(a, b model.CategoryStat) int {
		return cmp.Compare(b.TotalSold, a.TotalSold)
	})
	return result, nil
}

// LowStock lists products below the restock threshold, scarcest first.
func (u *AnalyticsUseCase) LowStock(ctx context.Context) ([]model.LowStockEntry, error) {
	products, err := u.products.ListBelowStock(ctx, model.LowStockThreshold)
	if err != nil {
		return nil, err
	}

	names := newCategoryNames(u.categories)
	result := make([]model.LowStockEntry, 0, len(products))
	for _, p := range products {
		category, err := names.lookup(ctx, p.CategoryID)
		if err != nil {
			return nil, err
		}
		result = append(result, model.LowStockEntry{
			ProductID:    p.ID,
			Title:        p.Title,
			ImageURL:     p.ImageURL,
			CurrentStock: p.Quantity,
			Price:        p.Price,
			Category:     category,
		})
	}
	return result, nil
}

// RecentOrders returns the newest orders with purchaser and line details.
func (u *AnalyticsUseCase) RecentOrders(ctx context.Context, limit int) ([]model.OrderSummary, error) {
	if limit <= 0 {
		return []model.OrderSummary{}, nil
	}

	orders, err := u.orders.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}

	users := make(map[int64]*model.User)
	titles := make(map[int64]string)
	result := make([]model.OrderSummary, 0, len(orders))
	for _, o := range orders {
		usr, ok := users[o.UserID]
		if !ok {
			usr, err = u.users.GetByID(ctx, o.UserID)
			if err != nil && !errors.Is(err, domainErrors.ErrNotFound) {
				return nil, err
			}
			users[o.UserID] = usr
		}

		summary := model.OrderSummary{
			OrderID:     o.ID,
			UserID:      o.UserID,
			UserEmail:   model.UnknownLabel,
			UserName:    model.UnknownLabel,
			TotalAmount: o.TotalAmount,
			Status:      o.Status,
			CreatedAt:   o.CreatedAt,
		}
		if usr != nil {
			summary.UserEmail = usr.Email
			summary.UserName = usr.DisplayName()
		}

		lines, err := u.lines.ListByOrder(ctx, o.ID)
		if err != nil {
			return nil, err
		}
		summary.Items = make([]model.OrderItemSummary, 0, len(lines))
		for _, l := range lines {
			title, ok := titles[l.ProductID]
			if !ok {
				title = model.UnknownLabel
				p, err := u.products.GetByID(ctx, l.ProductID)
				switch {
				case err == nil:
					title = p.Title
				case !errors.Is(err, domainErrors.ErrNotFound):
					return nil, err
				}
				titles[l.ProductID] = title
			}
			summary.Items = append(summary.Items, model.OrderItemSummary{
				ProductID:       l.ProductID,
				Title:           title,
				Quantity:        l.Quantity,
				PriceAtPurchase: l.PriceAtPurchase,
			})
		}

		result = append(result, summary)
	}
	return result, nil
}

// Dashboard combines every view using DashboardLimit for the lists.
func (u *AnalyticsUseCase) Dashboard(ctx context.Context) (*model.Dashboard, error) {
	overview, err := u.Overview(ctx)
	if err != nil {
		return nil, err
	}
	top, err := u.TopProducts(ctx, DashboardLimit)
	if err != nil {
		return nil, err
	}
	categories, err := u.CategoryStats(ctx)
	if err != nil {
		return nil, err
	}
	low, err := u.LowStock(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := u.RecentOrders(ctx, DashboardLimit)
	if err != nil {
		return nil, err
	}
	return &model.Dashboard{
		Overview:      *overview,
		TopProducts:   top,
		CategoryStats: categories,
		LowStock:      low,
		RecentOrders:  recent,
	}, nil
}
