package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/metrics"
	"github.com/polkiloo/storefront/internal/server/http/handlers"
	"github.com/polkiloo/storefront/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StorefrontFacade, recorder *metrics.Recorder, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Metrics(recorder))
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.Compression())

	authHandler := handlers.NewAuthHandler(facade)
	purchaseHandler := handlers.NewPurchaseHandler(facade)
	dashboardHandler := handlers.NewDashboardHandler(facade)
	healthHandler := handlers.NewHealthHandler(facade)

	engine.GET("/healthz", healthHandler.Check)
	engine.GET("/metrics", gin.WrapH(recorder.Handler()))

	api := engine.Group("/api")
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	purchases := api.Group("/purchases")
	purchases.Use(middleware.TokenRequired())
	purchases.GET("", purchaseHandler.List)
	purchases.POST("", purchaseHandler.Purchase)
	purchases.POST("/bulk", purchaseHandler.Bulk)

	dashboard := api.Group("/admin/dashboard")
	dashboard.Use(middleware.AdminRequired(facade))
	dashboard.GET("", dashboardHandler.Dashboard)
	dashboard.GET("/overview", dashboardHandler.Overview)
	dashboard.GET("/top-products", dashboardHandler.TopProducts)
	dashboard.GET("/category-stats", dashboardHandler.CategoryStats)
	dashboard.GET("/low-stock", dashboardHandler.LowStock)
	dashboard.GET("/recent-orders", dashboardHandler.RecentOrders)

	return engine
}
