package domain

import (
	"errors"
	"strings"
)

// Domain errors
var (
	ErrNotFound            = errors.New("resource not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrGoalNotFound        = errors.New("goal not found")

	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountInactive    = errors.New("account is inactive")

	ErrNameRequired       = errors.New("name is required")
	ErrNameTooLong        = errors.New("name exceeds maximum length")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrInvalidCurrency    = errors.New("invalid currency code")
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrAmountPrecision    = errors.New("amount exceeds two decimal places")
	ErrDateOutOfRange     = errors.New("date outside the accepted window")
	ErrDescriptionTooLong = errors.New("description exceeds maximum length")
	ErrNotesTooLong       = errors.New("notes exceed maximum length")

	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidCategoryType    = errors.New("invalid category type")
	ErrCategoryTypeMismatch   = errors.New("category type does not match transaction type")
	ErrCategoryTypeImmutable  = errors.New("category type cannot change after creation")
	ErrDuplicateCategory      = errors.New("category with this name and type already exists")
	ErrDefaultCategory        = errors.New("default categories cannot be modified")
	ErrInvalidColor           = errors.New("invalid color code")

	ErrInvalidGoalStatus       = errors.New("invalid goal status")
	ErrInvalidGoalPriority     = errors.New("invalid goal priority")
	ErrInvalidGoalAmount       = errors.New("target amount must be positive")
	ErrGoalAmountExceedsTarget = errors.New("current amount exceeds target amount")
	ErrInvalidGoalDates        = errors.New("end date must be after start date")
	ErrGoalNotActive           = errors.New("goal is not active")
	ErrGoalNotPaused           = errors.New("goal is not paused")

	ErrInvalidID         = errors.New("invalid identifier")
	ErrInvalidPagination = errors.New("page parameters must be positive integers")

	ErrInvalidMonth  = errors.New("month must be between 1 and 12")
	ErrInvalidYear   = errors.New("year must be between 2000 and 2100")
	ErrInvalidPeriod = errors.New("invalid period keyword")
	ErrInvalidMonths = errors.New("months must be between 1 and 24")
)

// FieldError describes a validation failure on a single input field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors aggregates every field-level failure for one request
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, fe := range v {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add appends a field failure and returns the updated list
func (v ValidationErrors) Add(field string, err error) ValidationErrors {
	return append(v, FieldError{Field: field, Message: err.Error()})
}

// OrNil returns the list as an error, or nil when no failures were recorded
func (v ValidationErrors) OrNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// Validation constants
const (
	MinPasswordLength         = 8
	MaxNameLength             = 100
	MaxCategoryNameLength     = 50
	MaxGoalTitleLength        = 100
	MaxDescriptionLength      = 255
	MaxNotesLength            = 1000
	MinAggregationYear        = 2000
	MaxAggregationYear        = 2100
	TransactionDateWindowDays = 365
)
