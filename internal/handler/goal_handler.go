package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/wealthlog/wealthlog-backend/internal/domain"
	"github.com/wealthlog/wealthlog-backend/internal/middleware"
	"github.com/wealthlog/wealthlog-backend/internal/service"
)

// GoalHandler handles savings goal endpoints
type GoalHandler struct {
	goalService *service.GoalService
}

// NewGoalHandler creates a new GoalHandler
func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

type createGoalRequest struct {
	Title         string               `json:"title"`
	TargetAmount  decimal.Decimal      `json:"targetAmount"`
	CurrentAmount *decimal.Decimal     `json:"currentAmount"`
	StartDate     *time.Time           `json:"startDate"`
	EndDate       time.Time            `json:"endDate"`
	Priority      *domain.GoalPriority `json:"priority"`
	Currency      *domain.Currency     `json:"currency"`
}

// Create handles POST /api/v1/goals
func (h *GoalHandler) Create(c echo.Context) error {
	var req createGoalRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, KindValidation, "invalid request body", nil)
	}

	goal, err := h.goalService.CreateGoal(middleware.GetUserID(c), service.CreateGoalInput{
		Title:         req.Title,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Priority:      req.Priority,
		Currency:      req.Currency,
	})
	if err != nil {
		return respondDomainError(c, err)
	}

	return respond(c, http.StatusCreated, "goal created", goal)
}

// List handles GET /api/v1/goals
// The status filter accepts a goal status or "all"
func (h *GoalHandler) List(c echo.Context) error {
	var status *domain.GoalStatus
	if raw := c.QueryParam("status"); raw != "" && raw != "all" {
		s := domain.GoalStatus(raw)
		status = &s
	}

	goals, err := h.goalService.ListGoals(middleware.GetUserID(c), status)
	if err != nil {
		return respondDomainError(c, err)
	}

	return respond(c, http.StatusOK, "goals retrieved", goals)
}

// Summary handles GET /api/v1/goals/summary
func (h *GoalHandler) Summary(c echo.Context) error {
	summary, err := h.goalService.GoalsSummary(middleware.GetUserID(c))
	if err != nil {
		return respondDomainError(c, err)
	}

	return respond(c, http.StatusOK, "goal summary retrieved", summary)
}

// Get handles GET /api/v1/goals/:id
func (h *GoalHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, KindValidation, "invalid goal id", nil)
	}

	goal, err := h.goalService.GetGoal(middleware.GetUserID(c), id)
	if err != nil {
		return respondDomainError(c, err)
	}

	return respond(c, http.StatusOK, "goal retrieved", goal)
}

type updateGoalRequest struct {
	Title         *string              `json:"title"`
	TargetAmount  *decimal.Decimal     `json:"targetAmount"`
	CurrentAmount *decimal.Decimal     `json:"currentAmount"`
	StartDate     *time.Time           `json:"startDate"`
	EndDate       *time.Time           `json:"endDate"`
	Priority      *domain.GoalPriority `json:"priority"`
	Currency      *domain.Currency     `json:"currency"`
}

// Update handles PUT /api/v1/goals/:id
func (h *GoalHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, KindValidation, "invalid goal id", nil)
	}

	var req updateGoalRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, KindValidation, "invalid request body", nil)
	}

	goal, err := h.goalService.UpdateGoal(middleware.GetUserID(c), id, service.UpdateGoalInput{
		Title:         req.Title,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Priority:      req.Priority,
		Currency:      req.Currency,
	})
	if err != nil {
		return respondDomainError(c, err)
	}

	return respond(c, http.StatusOK, "goal updated", goal)
}

type goalProgressRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// AddProgress handles PATCH /api/v1/goals/:id/progress
func (h *GoalHandler) AddProgress(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, KindValidation, "invalid goal id", nil)
	}

	var req goalProgressRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, KindValidation, "invalid request body", nil)
	}

	goal, err := h.goalService.AddProgress(middleware.GetUserID(c), id, req.Amount)
	if err != nil {
		return respondDomainError(c, err)
	}

	return respond(c, http.StatusOK, "goal progress updated", goal)
}

// Complete handles PATCH /api/v1/goals/:id/complete
func (h *GoalHandler) Complete(c echo.Context) error {
	return h.patchStatus(c, h.goalService.CompleteGoal, "goal completed")
}

// Pause handles PATCH /api/v1/goals/:id/pause
func (h *GoalHandler) Pause(c echo.Context) error {
	return h.patchStatus(c, h.goalService.PauseGoal, "goal paused")
}

// Resume handles PATCH /api/v1/goals/:id/resume
func (h *GoalHandler) Resume(c echo.Context) error {
	return h.patchStatus(c, h.goalService.ResumeGoal, "goal resumed")
}

// Cancel handles PATCH /api/v1/goals/:id/cancel
func (h *GoalHandler) Cancel(c echo.Context) error {
	return h.patchStatus(c, h.goalService.CancelGoal, "goal cancelled")
}

func (h *GoalHandler) patchStatus(c echo.Context, transition func(uuid.UUID, uuid.UUID) (*domain.Goal, error), message string) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, KindValidation, "invalid goal id", nil)
	}

	goal, err := transition(middleware.GetUserID(c), id)
	if err != nil {
		return respondDomainError(c, err)
	}

	return respond(c, http.StatusOK, message, goal)
}

// Delete handles DELETE /api/v1/goals/:id
func (h *GoalHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, KindValidation, "invalid goal id", nil)
	}

	if err := h.goalService.DeleteGoal(middleware.GetUserID(c), id); err != nil {
		return respondDomainError(c, err)
	}

	return respond(c, http.StatusOK, "goal deleted", nil)
}
