package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/wealthlog/wealthlog-backend/internal/middleware"
)

// Handlers groups every HTTP handler for route registration
type Handlers struct {
	Auth        *AuthHandler
	Category    *CategoryHandler
	Transaction *TransactionHandler
	Goal        *GoalHandler
	Dashboard   *DashboardHandler
	WebSocket   *WebSocketHandler
}

// RegisterRoutes mounts every route on the echo instance
func RegisterRoutes(e *echo.Echo, h *Handlers, authMW *middleware.AuthMiddleware, rateLimiter *middleware.RateLimiter) {
	api := e.Group("/api/v1")

	// Public
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)

	// Everything below requires a valid bearer token
	protected := api.Group("", authMW.Authenticate(), middleware.RateLimitMiddleware(rateLimiter))

	protected.GET("/auth/me", h.Auth.Me)
	protected.PUT("/auth/profile", h.Auth.UpdateProfile)
	protected.GET("/auth/check", h.Auth.Check)

	categories := protected.Group("/categories")
	categories.POST("", h.Category.Create)
	categories.GET("", h.Category.List)
	categories.GET("/search", h.Category.Search)
	categories.POST("/defaults", h.Category.SeedDefaults)
	categories.GET("/:id", h.Category.Get)
	categories.PUT("/:id", h.Category.Update)
	categories.DELETE("/:id", h.Category.Delete)

	transactions := protected.Group("/transactions")
	transactions.POST("", h.Transaction.Create)
	transactions.GET("", h.Transaction.List)
	transactions.GET("/search", h.Transaction.Search)
	transactions.GET("/summary", h.Transaction.Summary)
	transactions.GET("/:id", h.Transaction.Get)
	transactions.PUT("/:id", h.Transaction.Update)
	transactions.DELETE("/:id", h.Transaction.Delete)

	goals := protected.Group("/goals")
	goals.POST("", h.Goal.Create)
	goals.GET("", h.Goal.List)
	goals.GET("/summary", h.Goal.Summary)
	goals.GET("/:id", h.Goal.Get)
	goals.PUT("/:id", h.Goal.Update)
	goals.PATCH("/:id/progress", h.Goal.AddProgress)
	goals.PATCH("/:id/complete", h.Goal.Complete)
	goals.PATCH("/:id/pause", h.Goal.Pause)
	goals.PATCH("/:id/resume", h.Goal.Resume)
	goals.PATCH("/:id/cancel", h.Goal.Cancel)
	goals.DELETE("/:id", h.Goal.Delete)

	dashboard := protected.Group("/dashboard")
	dashboard.GET("/expenses-pie", h.Dashboard.ExpensesPie)
	dashboard.GET("/income-line", h.Dashboard.IncomeLine)
	dashboard.GET("/category-bar", h.Dashboard.CategoryBar)
	dashboard.GET("/goals-progress", h.Dashboard.GoalsProgress)
	dashboard.GET("/overview", h.Dashboard.Overview)
	dashboard.GET("/stats", h.Dashboard.Stats)

	// WebSocket authenticates via query token, not the middleware chain
	api.GET("/ws", h.WebSocket.Serve)
}
