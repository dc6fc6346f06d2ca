package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wealthlog/wealthlog-backend/internal/domain"
	"github.com/wealthlog/wealthlog-backend/internal/websocket"
)

// TransactionService handles transaction-related business logic
type TransactionService struct {
	transactionRepo domain.TransactionRepository
	categoryRepo    domain.CategoryRepository
	publisher       websocket.EventPublisher
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(transactionRepo domain.TransactionRepository, categoryRepo domain.CategoryRepository, publisher websocket.EventPublisher) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		publisher:       publisher,
	}
}

// CreateTransactionInput holds the input for creating a transaction
type CreateTransactionInput struct {
	CategoryID  uuid.UUID
	Description string
	Amount      decimal.Decimal
	Type        domain.TransactionType
	Date        *time.Time
	Currency    *domain.Currency
	Notes       *string
}

// CreateTransaction creates a new transaction with validation
func (s *TransactionService) CreateTransaction(userID uuid.UUID, input CreateTransactionInput) (*domain.Transaction, error) {
	var verrs domain.ValidationErrors

	description := strings.TrimSpace(input.Description)
	if description == "" {
		verrs = verrs.Add("description", domain.ErrNameRequired)
	} else if len(description) > domain.MaxDescriptionLength {
		verrs = verrs.Add("description", domain.ErrDescriptionTooLong)
	}

	if input.Amount.LessThanOrEqual(decimal.Zero) {
		verrs = verrs.Add("amount", domain.ErrInvalidAmount)
	} else if input.Amount.Exponent() < -2 && !input.Amount.Equal(input.Amount.Round(2)) {
		verrs = verrs.Add("amount", domain.ErrAmountPrecision)
	}

	if input.Type != domain.TransactionTypeIncome && input.Type != domain.TransactionTypeExpense {
		verrs = verrs.Add("type", domain.ErrInvalidTransactionType)
	}

	// Default to today, bound creation dates to one year either side of now
	now := time.Now().UTC()
	date := now.Truncate(24 * time.Hour)
	if input.Date != nil {
		date = input.Date.UTC()
		window := time.Duration(domain.TransactionDateWindowDays) * 24 * time.Hour
		if date.Before(now.Add(-window)) || date.After(now.Add(window)) {
			verrs = verrs.Add("date", domain.ErrDateOutOfRange)
		}
	}

	currency := domain.CurrencyUSD
	if input.Currency != nil {
		if !domain.ValidCurrency(*input.Currency) {
			verrs = verrs.Add("currency", domain.ErrInvalidCurrency)
		} else {
			currency = *input.Currency
		}
	}

	var notes *string
	if input.Notes != nil {
		trimmed := strings.TrimSpace(*input.Notes)
		if len(trimmed) > domain.MaxNotesLength {
			verrs = verrs.Add("notes", domain.ErrNotesTooLong)
		} else if trimmed != "" {
			notes = &trimmed
		}
	}

	if err := verrs.OrNil(); err != nil {
		return nil, err
	}

	// Category must be visible to the user and match the transaction type
	category, err := s.categoryRepo.GetByID(userID, input.CategoryID)
	if err != nil {
		return nil, err
	}
	if string(category.Type) != string(input.Type) {
		return nil, domain.ErrCategoryTypeMismatch
	}

	transaction, err := s.transactionRepo.Create(&domain.Transaction{
		UserID:      userID,
		CategoryID:  input.CategoryID,
		Description: description,
		Amount:      input.Amount,
		Type:        input.Type,
		Date:        date,
		Currency:    currency,
		Notes:       notes,
	})
	if err != nil {
		return nil, err
	}

	s.publisher.PublishTransactionEvent(userID, websocket.EventTypeCreated, transaction)
	return transaction, nil
}

// GetTransaction returns a single transaction owned by the user
func (s *TransactionService) GetTransaction(userID uuid.UUID, id uuid.UUID) (*domain.Transaction, error) {
	return s.transactionRepo.GetByID(userID, id)
}

// ListTransactionsInput holds the filter and pagination options
type ListTransactionsInput struct {
	CategoryID *uuid.UUID
	Type       *domain.TransactionType
	StartDate  *time.Time
	EndDate    *time.Time
	Search     string
	Page       int32
	PageSize   int32
}

// ListTransactions returns a filtered, paginated list of the user's transactions
func (s *TransactionService) ListTransactions(userID uuid.UUID, input ListTransactionsInput) (*domain.PaginatedTransactions, error) {
	if input.Type != nil && *input.Type != domain.TransactionTypeIncome && *input.Type != domain.TransactionTypeExpense {
		return nil, domain.ValidationErrors{}.Add("type", domain.ErrInvalidTransactionType)
	}
	if input.StartDate != nil && input.EndDate != nil && input.EndDate.Before(*input.StartDate) {
		return nil, domain.ValidationErrors{}.Add("endDate", domain.ErrDateOutOfRange)
	}

	page := input.Page
	if page < 1 {
		page = 1
	}
	pageSize := input.PageSize
	if pageSize < 1 {
		pageSize = domain.DefaultPageSize
	}
	if pageSize > domain.MaxPageSize {
		pageSize = domain.MaxPageSize
	}

	return s.transactionRepo.GetByUser(userID, &domain.TransactionFilters{
		CategoryID: input.CategoryID,
		Type:       input.Type,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		Search:     strings.TrimSpace(input.Search),
		Page:       page,
		PageSize:   pageSize,
	})
}

// UpdateTransactionInput holds the updatable transaction fields
type UpdateTransactionInput struct {
	CategoryID  *uuid.UUID
	Description *string
	Amount      *decimal.Decimal
	Type        *domain.TransactionType
	Date        *time.Time
	Currency    *domain.Currency
	Notes       *string
}

// UpdateTransaction applies partial updates to a transaction
func (s *TransactionService) UpdateTransaction(userID uuid.UUID, id uuid.UUID, input UpdateTransactionInput) (*domain.Transaction, error) {
	existing, err := s.transactionRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}

	// Merge partial input over the current row, then write back in full
	var verrs domain.ValidationErrors
	data := &domain.UpdateTransactionData{
		CategoryID:  existing.CategoryID,
		Description: existing.Description,
		Amount:      existing.Amount,
		Type:        existing.Type,
		Date:        existing.Date,
		Currency:    existing.Currency,
		Notes:       existing.Notes,
	}

	if input.Description != nil {
		description := strings.TrimSpace(*input.Description)
		if description == "" {
			verrs = verrs.Add("description", domain.ErrNameRequired)
		} else if len(description) > domain.MaxDescriptionLength {
			verrs = verrs.Add("description", domain.ErrDescriptionTooLong)
		} else {
			data.Description = description
		}
	}

	if input.Amount != nil {
		if input.Amount.LessThanOrEqual(decimal.Zero) {
			verrs = verrs.Add("amount", domain.ErrInvalidAmount)
		} else if input.Amount.Exponent() < -2 && !input.Amount.Equal(input.Amount.Round(2)) {
			verrs = verrs.Add("amount", domain.ErrAmountPrecision)
		} else {
			data.Amount = *input.Amount
		}
	}

	if input.Type != nil {
		if *input.Type != domain.TransactionTypeIncome && *input.Type != domain.TransactionTypeExpense {
			verrs = verrs.Add("type", domain.ErrInvalidTransactionType)
		} else {
			data.Type = *input.Type
		}
	}

	if input.Date != nil {
		date := input.Date.UTC()
		now := time.Now().UTC()
		window := time.Duration(domain.TransactionDateWindowDays) * 24 * time.Hour
		if date.Before(now.Add(-window)) || date.After(now.Add(window)) {
			verrs = verrs.Add("date", domain.ErrDateOutOfRange)
		} else {
			data.Date = date
		}
	}

	if input.Currency != nil {
		if !domain.ValidCurrency(*input.Currency) {
			verrs = verrs.Add("currency", domain.ErrInvalidCurrency)
		} else {
			data.Currency = *input.Currency
		}
	}

	if input.Notes != nil {
		trimmed := strings.TrimSpace(*input.Notes)
		if len(trimmed) > domain.MaxNotesLength {
			verrs = verrs.Add("notes", domain.ErrNotesTooLong)
		} else if trimmed == "" {
			data.Notes = nil
		} else {
			data.Notes = &trimmed
		}
	}

	if err := verrs.OrNil(); err != nil {
		return nil, err
	}

	// Revalidate the category pairing when either side changes
	if input.CategoryID != nil {
		data.CategoryID = *input.CategoryID
	}
	if input.CategoryID != nil || input.Type != nil {
		category, err := s.categoryRepo.GetByID(userID, data.CategoryID)
		if err != nil {
			return nil, err
		}
		if string(category.Type) != string(data.Type) {
			return nil, domain.ErrCategoryTypeMismatch
		}
	}

	transaction, err := s.transactionRepo.Update(userID, id, data)
	if err != nil {
		return nil, err
	}

	s.publisher.PublishTransactionEvent(userID, websocket.EventTypeUpdated, transaction)
	return transaction, nil
}

// DeleteTransaction soft deletes a transaction
func (s *TransactionService) DeleteTransaction(userID uuid.UUID, id uuid.UUID) error {
	if _, err := s.transactionRepo.GetByID(userID, id); err != nil {
		return err
	}

	if err := s.transactionRepo.SoftDelete(userID, id); err != nil {
		return err
	}

	s.publisher.PublishTransactionEvent(userID, websocket.EventTypeDeleted, map[string]string{"id": id.String()})
	return nil
}
