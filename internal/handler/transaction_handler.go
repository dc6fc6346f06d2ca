package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/wealthlog/wealthlog-backend/internal/domain"
	"github.com/wealthlog/wealthlog-backend/internal/middleware"
	"github.com/wealthlog/wealthlog-backend/internal/service"
)

// TransactionHandler handles transaction endpoints
type TransactionHandler struct {
	transactionService *service.TransactionService
	summaryService     *service.SummaryService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService, summaryService *service.SummaryService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		summaryService:     summaryService,
	}
}

type createTransactionRequest struct {
	CategoryID  uuid.UUID              `json:"categoryId"`
	Description string                 `json:"description"`
	Amount      decimal.Decimal        `json:"amount"`
	Type        domain.TransactionType `json:"type"`
	Date        *time.Time             `json:"date"`
	Currency    *domain.Currency       `json:"currency"`
	Notes       *string                `json:"notes"`
}

// Create handles POST /api/v1/transactions
func (h *TransactionHandler) Create(c echo.Context) error {
	var req createTransactionRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, KindValidation, "invalid request body", nil)
	}

	transaction, err := h.transactionService.CreateTransaction(middleware.GetUserID(c), service.CreateTransactionInput{
		CategoryID:  req.CategoryID,
		Description: req.Description,
		Amount:      req.Amount,
		Type:        req.Type,
		Date:        req.Date,
		Currency:    req.Currency,
		Notes:       req.Notes,
	})
	if err != nil {
		return respondDomainError(c, err)
	}

	return respond(c, http.StatusCreated, "transaction created", transaction)
}

// List handles GET /api/v1/transactions
func (h *TransactionHandler) List(c echo.Context) error {
	input, err := parseListInput(c)
	if err != nil {
		return respondDomainError(c, err)
	}

	result, err := h.transactionService.ListTransactions(middleware.GetUserID(c), *input)
	if err != nil {
		return respondDomainError(c, err)
	}

	return respond(c, http.StatusOK, "transactions retrieved", result)
}

// Search handles GET /api/v1/transactions/search
func (h *TransactionHandler) Search(c echo.Context) error {
	input, err := parseListInput(c)
	if err != nil {
		return respondDomainError(c, err)
	}
	input.Search = c.QueryParam("q")

	result, err := h.transactionService.ListTransactions(middleware.GetUserID(c), *input)
	if err != nil {
		return respondDomainError(c, err)
	}

	return respond(c, http.StatusOK, "transactions retrieved", result)
}

// Summary handles GET /api/v1/transactions/summary
// Accepts month+year params or a period keyword (week|month|year)
func (h *TransactionHandler) Summary(c echo.Context) error {
	userID := middleware.GetUserID(c)

	monthParam := c.QueryParam("month")
	yearParam := c.QueryParam("year")
	if monthParam != "" || yearParam != "" {
		month, err := strconv.Atoi(monthParam)
		if err != nil {
			return respondDomainError(c, domain.ValidationErrors{}.Add("month", domain.ErrInvalidMonth))
		}
		year, err := strconv.Atoi(yearParam)
		if err != nil {
			return respondDomainError(c, domain.ValidationErrors{}.Add("year", domain.ErrInvalidYear))
		}

		summary, err := h.summaryService.MonthSummary(userID, year, month)
		if err != nil {
			return respondDomainError(c, err)
		}
		return respond(c, http.StatusOK, "summary retrieved", summary)
	}

	summary, err := h.summaryService.PeriodSummary(userID, c.QueryParam("period"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, http.StatusOK, "summary retrieved", summary)
}

// Get handles GET /api/v1/transactions/:id
func (h *TransactionHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, KindValidation, "invalid transaction id", nil)
	}

	transaction, err := h.transactionService.GetTransaction(middleware.GetUserID(c), id)
	if err != nil {
		return respondDomainError(c, err)
	}

	return respond(c, http.StatusOK, "transaction retrieved", transaction)
}

type updateTransactionRequest struct {
	CategoryID  *uuid.UUID              `json:"categoryId"`
	Description *string                 `json:"description"`
	Amount      *decimal.Decimal        `json:"amount"`
	Type        *domain.TransactionType `json:"type"`
	Date        *time.Time              `json:"date"`
	Currency    *domain.Currency        `json:"currency"`
	Notes       *string                 `json:"notes"`
}

// Update handles PUT /api/v1/transactions/:id
func (h *TransactionHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, KindValidation, "invalid transaction id", nil)
	}

	var req updateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, KindValidation, "invalid request body", nil)
	}

	transaction, err := h.transactionService.UpdateTransaction(middleware.GetUserID(c), id, service.UpdateTransactionInput{
		CategoryID:  req.CategoryID,
		Description: req.Description,
		Amount:      req.Amount,
		Type:        req.Type,
		Date:        req.Date,
		Currency:    req.Currency,
		Notes:       req.Notes,
	})
	if err != nil {
		return respondDomainError(c, err)
	}

	return respond(c, http.StatusOK, "transaction updated", transaction)
}

// Delete handles DELETE /api/v1/transactions/:id
func (h *TransactionHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, KindValidation, "invalid transaction id", nil)
	}

	if err := h.transactionService.DeleteTransaction(middleware.GetUserID(c), id); err != nil {
		return respondDomainError(c, err)
	}

	return respond(c, http.StatusOK, "transaction deleted", nil)
}

func parseListInput(c echo.Context) (*service.ListTransactionsInput, error) {
	input := &service.ListTransactionsInput{}

	if raw := c.QueryParam("categoryId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, domain.ValidationErrors{}.Add("categoryId", domain.ErrInvalidID)
		}
		input.CategoryID = &id
	}

	if raw := c.QueryParam("type"); raw != "" {
		t := domain.TransactionType(raw)
		input.Type = &t
	}

	if raw := c.QueryParam("startDate"); raw != "" {
		start, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			start, err = time.Parse("2006-01-02", raw)
		}
		if err != nil {
			return nil, domain.ValidationErrors{}.Add("startDate", domain.ErrDateOutOfRange)
		}
		input.StartDate = &start
	}

	if raw := c.QueryParam("endDate"); raw != "" {
		end, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			end, err = time.Parse("2006-01-02", raw)
		}
		if err != nil {
			return nil, domain.ValidationErrors{}.Add("endDate", domain.ErrDateOutOfRange)
		}
		input.EndDate = &end
	}

	if raw := c.QueryParam("page"); raw != "" {
		page, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || page < 1 {
			return nil, domain.ValidationErrors{}.Add("page", domain.ErrInvalidPagination)
		}
		input.Page = int32(page)
	}

	if raw := c.QueryParam("pageSize"); raw != "" {
		size, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || size < 1 {
			return nil, domain.ValidationErrors{}.Add("pageSize", domain.ErrInvalidPagination)
		}
		input.PageSize = int32(size)
	}

	return input, nil
}
