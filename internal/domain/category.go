package domain

import (
	"time"

	"github.com/google/uuid"
)

type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

// Category is a named income/expense bucket transactions are classified under.
// A nil UserID marks a system default category, readable by everyone and
// immutable.
type Category struct {
	ID        uuid.UUID    `json:"id"`
	UserID    *uuid.UUID   `json:"userId,omitempty"`
	Name      string       `json:"name"`
	Type      CategoryType `json:"type"`
	Color     string       `json:"color"`
	Icon      string       `json:"icon"`
	IsDefault bool         `json:"isDefault"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
	DeletedAt *time.Time   `json:"deletedAt,omitempty"`
}

// CategoryFilters narrows category listings
type CategoryFilters struct {
	Type   *CategoryType
	Search string
}

// UpdateCategoryData holds the mutable category fields. Type is deliberately
// absent: it cannot change after creation.
type UpdateCategoryData struct {
	Name  *string
	Color *string
	Icon  *string
}

// DefaultCategories returns the system default seed set
func DefaultCategories() []*Category {
	return []*Category{
		{Name: "Salary", Type: CategoryTypeIncome, Color: "#2e7d32", Icon: "briefcase", IsDefault: true},
		{Name: "Freelance", Type: CategoryTypeIncome, Color: "#388e3c", Icon: "laptop", IsDefault: true},
		{Name: "Investments", Type: CategoryTypeIncome, Color: "#43a047", Icon: "trending-up", IsDefault: true},
		{Name: "Other Income", Type: CategoryTypeIncome, Color: "#66bb6a", Icon: "plus-circle", IsDefault: true},
		{Name: "Food", Type: CategoryTypeExpense, Color: "#e53935", Icon: "utensils", IsDefault: true},
		{Name: "Housing", Type: CategoryTypeExpense, Color: "#d81b60", Icon: "home", IsDefault: true},
		{Name: "Transport", Type: CategoryTypeExpense, Color: "#8e24aa", Icon: "car", IsDefault: true},
		{Name: "Utilities", Type: CategoryTypeExpense, Color: "#5e35b1", Icon: "zap", IsDefault: true},
		{Name: "Healthcare", Type: CategoryTypeExpense, Color: "#3949ab", Icon: "heart", IsDefault: true},
		{Name: "Entertainment", Type: CategoryTypeExpense, Color: "#1e88e5", Icon: "film", IsDefault: true},
		{Name: "Shopping", Type: CategoryTypeExpense, Color: "#00897b", Icon: "shopping-bag", IsDefault: true},
		{Name: "Other Expense", Type: CategoryTypeExpense, Color: "#6d4c41", Icon: "more-horizontal", IsDefault: true},
	}
}

// CategoryRepository defines the interface for category persistence operations
type CategoryRepository interface {
	Create(category *Category) (*Category, error)
	// GetByID returns a category visible to the user: their own or a default
	GetByID(userID uuid.UUID, id uuid.UUID) (*Category, error)
	// GetByUser returns the user's categories plus defaults, filtered
	GetByUser(userID uuid.UUID, filters *CategoryFilters) ([]*Category, error)
	Update(userID uuid.UUID, id uuid.UUID, data *UpdateCategoryData) (*Category, error)
	SoftDelete(userID uuid.UUID, id uuid.UUID) error
	// ExistsByNameType reports a live (name, type) duplicate for the owner
	ExistsByNameType(userID *uuid.UUID, name string, categoryType CategoryType) (bool, error)
	// SeedDefaults inserts missing system default categories, idempotently
	SeedDefaults(defaults []*Category) (int, error)
}
