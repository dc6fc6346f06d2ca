package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wealthlog/wealthlog-backend/internal/domain"
	"github.com/wealthlog/wealthlog-backend/internal/middleware"
	"github.com/wealthlog/wealthlog-backend/internal/service"
)

// DashboardHandler handles dashboard chart endpoints
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// ExpensesPie handles GET /api/v1/dashboard/expenses-pie
func (h *DashboardHandler) ExpensesPie(c echo.Context) error {
	year, month, err := parseMonthParams(c)
	if err != nil {
		return respondDomainError(c, err)
	}

	chart, err := h.dashboardService.ExpensesPie(middleware.GetUserID(c), year, month)
	if err != nil {
		return respondDomainError(c, err)
	}

	return respond(c, http.StatusOK, "expense breakdown retrieved", chart)
}

// IncomeLine handles GET /api/v1/dashboard/income-line
func (h *DashboardHandler) IncomeLine(c echo.Context) error {
	months := service.DefaultTrendMonths
	if raw := c.QueryParam("months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return respondDomainError(c, domain.ValidationErrors{}.Add("months", domain.ErrInvalidMonths))
		}
		months = parsed
	}

	chart, err := h.dashboardService.IncomeLine(middleware.GetUserID(c), months)
	if err != nil {
		return respondDomainError(c, err)
	}

	return respond(c, http.StatusOK, "income trend retrieved", chart)
}

// CategoryBar handles GET /api/v1/dashboard/category-bar
func (h *DashboardHandler) CategoryBar(c echo.Context) error {
	year, month, err := parseMonthParams(c)
	if err != nil {
		return respondDomainError(c, err)
	}

	chart, err := h.dashboardService.CategoryBar(middleware.GetUserID(c), year, month)
	if err != nil {
		return respondDomainError(c, err)
	}

	return respond(c, http.StatusOK, "category comparison retrieved", chart)
}

// GoalsProgress handles GET /api/v1/dashboard/goals-progress
func (h *DashboardHandler) GoalsProgress(c echo.Context) error {
	entries, err := h.dashboardService.GoalsProgress(middleware.GetUserID(c))
	if err != nil {
		return respondDomainError(c, err)
	}

	return respond(c, http.StatusOK, "goal progress retrieved", entries)
}

// Overview handles GET /api/v1/dashboard/overview
func (h *DashboardHandler) Overview(c echo.Context) error {
	overview, err := h.dashboardService.Overview(middleware.GetUserID(c))
	if err != nil {
		return respondDomainError(c, err)
	}

	return respond(c, http.StatusOK, "dashboard overview retrieved", overview)
}

// Stats handles GET /api/v1/dashboard/stats
func (h *DashboardHandler) Stats(c echo.Context) error {
	stats, err := h.dashboardService.Stats(middleware.GetUserID(c))
	if err != nil {
		return respondDomainError(c, err)
	}

	return respond(c, http.StatusOK, "dashboard stats retrieved", stats)
}

// parseMonthParams reads month and year, defaulting to the current month
func parseMonthParams(c echo.Context) (year, month int, err error) {
	now := time.Now().UTC()
	year, month = now.Year(), int(now.Month())

	if raw := c.QueryParam("month"); raw != "" {
		month, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, domain.ValidationErrors{}.Add("month", domain.ErrInvalidMonth)
		}
	}
	if raw := c.QueryParam("year"); raw != "" {
		year, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, domain.ValidationErrors{}.Add("year", domain.ErrInvalidYear)
		}
	}

	return year, month, nil
}
