package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/server/http/dto"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// DashboardHandler serves the admin analytics views.
type DashboardHandler struct {
	facade AnalyticsFacade
}

// NewDashboardHandler constructs DashboardHandler.
func NewDashboardHandler(facade AnalyticsFacade) *DashboardHandler {
	return &DashboardHandler{facade: facade}
}

// parseLimit reads ?limit=, defaulting to 10 and clamping to [1, 100].
func parseLimit(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return defaultLimit, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return min(max(limit, 1), maxLimit), true
}

// Dashboard handles GET /api/admin/dashboard.
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	dash, err := h.facade.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Success("dashboard retrieved successfully", dto.DashboardResponse{
		Overview:      toOverviewResponse(dash.Overview),
		TopProducts:   toTopProducts(dash.TopProducts),
		CategoryStats: toCategoryStats(dash.CategoryStats),
		LowStock:      toLowStock(dash.LowStock),
		RecentOrders:  toRecentOrders(dash.RecentOrders),
	}))
}

// Overview handles GET /api/admin/dashboard/overview.
func (h *DashboardHandler) Overview(c *gin.Context) {
	stats, err := h.facade.Overview(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Success("overview retrieved successfully", toOverviewResponse(*stats)))
}

// TopProducts handles GET /api/admin/dashboard/top-products.
func (h *DashboardHandler) TopProducts(c *gin.Context) {
	limit, ok := parseLimit(c)
	if !ok {
		badRequest(c, "limit must be an integer")
		return
	}
	top, err := h.facade.TopProducts(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Success("top products retrieved successfully", toTopProducts(top)))
}

// CategoryStats handles GET /api/admin/dashboard/category-stats.
func (h *DashboardHandler) CategoryStats(c *gin.Context) {
	stats, err := h.facade.CategoryStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Success("category statistics retrieved successfully", toCategoryStats(stats)))
}

// LowStock handles GET /api/admin/dashboard/low-stock.
func (h *DashboardHandler) LowStock(c *gin.Context) {
	low, err := h.facade.LowStock(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Success("low stock products retrieved successfully", toLowStock(low)))
}

// RecentOrders handles GET /api/admin/dashboard/recent-orders.
func (h *DashboardHandler) RecentOrders(c *gin.Context) {
	limit, ok := parseLimit(c)
	if !ok {
		badRequest(c, "limit must be an integer")
		return
	}
	orders, err := h.facade.RecentOrders(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Success("recent orders retrieved successfully", toRecentOrders(orders)))
}

func toOverviewResponse(s model.OverviewStats) dto.OverviewResponse {
	return dto.OverviewResponse{
		TotalRevenue:   s.TotalRevenue,
		RevenueToday:   s.RevenueToday,
		RevenueWeek:    s.RevenueWeek,
		RevenueMonth:   s.RevenueMonth,
		TotalOrders:    s.TotalOrders,
		OrdersToday:    s.OrdersToday,
		OrdersWeek:     s.OrdersWeek,
		OrdersMonth:    s.OrdersMonth,
		TotalUsers:     s.TotalUsers,
		NewUsersToday:  s.NewUsersToday,
		NewUsersWeek:   s.NewUsersWeek,
		NewUsersMonth:  s.NewUsersMonth,
		TotalProducts:  s.TotalProducts,
		LowStockCount:  s.LowStockCount,
		OutOfStock:     s.OutOfStock,
		TotalItemsSold: s.TotalItemsSold,
	}
}

func toTopProducts(items []model.ProductRanking) []dto.TopProductResponse {
	resp := make([]dto.TopProductResponse, 0, len(items))
	for _, p := range items {
		resp = append(resp, dto.TopProductResponse{
			ProductID:    p.ProductID,
			Title:        p.Title,
			ImageURL:     p.ImageURL,
			Price:        p.Price,
			Category:     p.Category,
			TotalSold:    p.TotalSold,
			TotalRevenue: p.TotalRevenue,
		})
	}
	return resp
}

func toCategoryStats(items []model.CategoryStat) []dto.CategoryStatResponse {
	resp := make([]dto.CategoryStatResponse, 0, len(items))
	for _, s := range items {
		resp = append(resp, dto.CategoryStatResponse{
			CategoryID:   s.CategoryID,
			Name:         s.Name,
			ProductCount: s.ProductCount,
			TotalSold:    s.TotalSold,
			TotalRevenue: s.TotalRevenue,
		})
	}
	return resp
}

func toLowStock(items []model.LowStockEntry) []dto.LowStockResponse {
	resp := make([]dto.LowStockResponse, 0, len(items))
	for _, p := range items {
		resp = append(resp, dto.LowStockResponse{
			ProductID:    p.ProductID,
			Title:        p.Title,
			ImageURL:     p.ImageURL,
			CurrentStock: p.CurrentStock,
			Price:        p.Price,
			Category:     p.Category,
		})
	}
	return resp
}

func toRecentOrders(orders []model.OrderSummary) []dto.RecentOrderResponse {
	resp := make([]dto.RecentOrderResponse, 0, len(orders))
	for _, o := range orders {
		items := make([]dto.OrderItemResponse, 0, len(o.Items))
		for _, it := range o.Items {
			items = append(items, dto.OrderItemResponse{
				ProductID:       it.ProductID,
				Title:           it.Title,
				Quantity:        it.Quantity,
				PriceAtPurchase: it.PriceAtPurchase,
			})
		}
		resp = append(resp, dto.RecentOrderResponse{
			OrderID:     o.OrderID,
			UserID:      o.UserID,
			UserEmail:   o.UserEmail,
			UserName:    o.UserName,
			TotalAmount: o.TotalAmount,
			Status:      string(o.Status),
			ItemCount:   o.ItemCount(),
			CreatedAt:   o.CreatedAt,
			Items:       items,
		})
	}
	return resp
}
