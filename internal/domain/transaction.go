package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

type Transaction struct {
	ID           uuid.UUID       `json:"id"`
	UserID       uuid.UUID       `json:"userId"`
	CategoryID   uuid.UUID       `json:"categoryId"`
	CategoryName *string         `json:"categoryName,omitempty"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Type         TransactionType `json:"type"`
	Date         time.Time       `json:"date"`
	Currency     Currency        `json:"currency"`
	Notes        *string         `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
	DeletedAt    *time.Time      `json:"deletedAt,omitempty"`
}

type TransactionFilters struct {
	CategoryID *uuid.UUID
	Type       *TransactionType
	StartDate  *time.Time
	EndDate    *time.Time
	Search     string
	Page       int32
	PageSize   int32
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type PaginatedTransactions struct {
	Data       []*Transaction `json:"data"`
	Page       int32          `json:"page"`
	PageSize   int32          `json:"pageSize"`
	TotalItems int64          `json:"totalItems"`
	TotalPages int32          `json:"totalPages"`
}

// UpdateTransactionData holds the fields applied on update
type UpdateTransactionData struct {
	CategoryID  uuid.UUID
	Description string
	Amount      decimal.Decimal
	Type        TransactionType
	Date        time.Time
	Currency    Currency
	Notes       *string
}

type TransactionRepository interface {
	Create(transaction *Transaction) (*Transaction, error)
	GetByID(userID uuid.UUID, id uuid.UUID) (*Transaction, error)
	GetByUser(userID uuid.UUID, filters *TransactionFilters) (*PaginatedTransactions, error)
	// ListByDateRange returns every live transaction dated within [start, end]
	ListByDateRange(userID uuid.UUID, start, end time.Time) ([]*Transaction, error)
	Update(userID uuid.UUID, id uuid.UUID, data *UpdateTransactionData) (*Transaction, error)
	SoftDelete(userID uuid.UUID, id uuid.UUID) error
	// Stats returns all-time count and the first/last live transaction dates
	Stats(userID uuid.UUID) (count int64, first, last *time.Time, err error)
}
