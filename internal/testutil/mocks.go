package testutil

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wealthlog/wealthlog-backend/internal/domain"
)

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	ByID    map[uuid.UUID]*domain.User
	ByEmail map[string]*domain.User
	Err     error
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		ByID:    make(map[uuid.UUID]*domain.User),
		ByEmail: make(map[string]*domain.User),
	}
}

// AddUser registers a user in the mock
func (m *MockUserRepository) AddUser(user *domain.User) *domain.User {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	m.ByID[user.ID] = user
	m.ByEmail[user.Email] = user
	return user
}

// Create creates a new user
func (m *MockUserRepository) Create(user *domain.User) (*domain.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if _, ok := m.ByEmail[user.Email]; ok {
		return nil, domain.ErrEmailTaken
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	m.ByID[user.ID] = user
	m.ByEmail[user.Email] = user
	return user, nil
}

// GetByID retrieves a user by ID
func (m *MockUserRepository) GetByID(id uuid.UUID) (*domain.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if user, ok := m.ByID[id]; ok && user.DeletedAt == nil {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetByEmail retrieves a user by email
func (m *MockUserRepository) GetByEmail(email string) (*domain.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if user, ok := m.ByEmail[email]; ok && user.DeletedAt == nil {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// Update applies partial updates to a user
func (m *MockUserRepository) Update(id uuid.UUID, data *domain.UpdateUserData) (*domain.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	user, ok := m.ByID[id]
	if !ok || user.DeletedAt != nil {
		return nil, domain.ErrUserNotFound
	}
	if data.Name != nil {
		user.Name = *data.Name
	}
	if data.Currency != nil {
		user.Currency = *data.Currency
	}
	user.UpdatedAt = time.Now().UTC()
	return user, nil
}

// UpdateLastLogin records a login time
func (m *MockUserRepository) UpdateLastLogin(id uuid.UUID, at time.Time) error {
	if m.Err != nil {
		return m.Err
	}
	user, ok := m.ByID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.LastLoginAt = &at
	return nil
}

// SoftDelete marks a user deleted
func (m *MockUserRepository) SoftDelete(id uuid.UUID) error {
	if m.Err != nil {
		return m.Err
	}
	user, ok := m.ByID[id]
	if !ok || user.DeletedAt != nil {
		return domain.ErrUserNotFound
	}
	now := time.Now().UTC()
	user.DeletedAt = &now
	return nil
}

// MockCategoryRepository is a mock implementation of domain.CategoryRepository
type MockCategoryRepository struct {
	Categories map[uuid.UUID]*domain.Category
	Err        error
}

// NewMockCategoryRepository creates a new MockCategoryRepository
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{Categories: make(map[uuid.UUID]*domain.Category)}
}

// AddCategory registers a category in the mock
func (m *MockCategoryRepository) AddCategory(category *domain.Category) *domain.Category {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	m.Categories[category.ID] = category
	return category
}

// Create creates a new category
func (m *MockCategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	category.ID = uuid.New()
	category.CreatedAt = time.Now().UTC()
	category.UpdatedAt = category.CreatedAt
	m.Categories[category.ID] = category
	return category, nil
}

func (m *MockCategoryRepository) visible(userID uuid.UUID, c *domain.Category) bool {
	if c.DeletedAt != nil {
		return false
	}
	return c.UserID == nil || *c.UserID == userID
}

// GetByID retrieves a category visible to the user
func (m *MockCategoryRepository) GetByID(userID uuid.UUID, id uuid.UUID) (*domain.Category, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if c, ok := m.Categories[id]; ok && m.visible(userID, c) {
		return c, nil
	}
	return nil, domain.ErrCategoryNotFound
}

// GetByUser retrieves the user's categories plus defaults
func (m *MockCategoryRepository) GetByUser(userID uuid.UUID, filters *domain.CategoryFilters) ([]*domain.Category, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []*domain.Category
	for _, c := range m.Categories {
		if !m.visible(userID, c) {
			continue
		}
		if filters != nil && filters.Type != nil && c.Type != *filters.Type {
			continue
		}
		if filters != nil && filters.Search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(filters.Search)) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Update applies partial updates to a user-owned category
func (m *MockCategoryRepository) Update(userID uuid.UUID, id uuid.UUID, data *domain.UpdateCategoryData) (*domain.Category, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	c, ok := m.Categories[id]
	if !ok || c.DeletedAt != nil || c.UserID == nil || *c.UserID != userID {
		return nil, domain.ErrCategoryNotFound
	}
	if data.Name != nil {
		c.Name = *data.Name
	}
	if data.Color != nil {
		c.Color = *data.Color
	}
	if data.Icon != nil {
		c.Icon = *data.Icon
	}
	c.UpdatedAt = time.Now().UTC()
	return c, nil
}

// SoftDelete marks a user-owned category deleted
func (m *MockCategoryRepository) SoftDelete(userID uuid.UUID, id uuid.UUID) error {
	if m.Err != nil {
		return m.Err
	}
	c, ok := m.Categories[id]
	if !ok || c.DeletedAt != nil || c.UserID == nil || *c.UserID != userID {
		return domain.ErrCategoryNotFound
	}
	now := time.Now().UTC()
	c.DeletedAt = &now
	return nil
}

// ExistsByNameType reports a live duplicate for the owner
func (m *MockCategoryRepository) ExistsByNameType(userID *uuid.UUID, name string, categoryType domain.CategoryType) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	for _, c := range m.Categories {
		if c.DeletedAt != nil || c.Type != categoryType || !strings.EqualFold(c.Name, name) {
			continue
		}
		if userID == nil && c.UserID == nil {
			return true, nil
		}
		if userID != nil && c.UserID != nil && *c.UserID == *userID {
			return true, nil
		}
	}
	return false, nil
}

// SeedDefaults inserts missing default categories
func (m *MockCategoryRepository) SeedDefaults(defaults []*domain.Category) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	inserted := 0
	for _, d := range defaults {
		exists, _ := m.ExistsByNameType(nil, d.Name, d.Type)
		if exists {
			continue
		}
		d.ID = uuid.New()
		m.Categories[d.ID] = d
		inserted++
	}
	return inserted, nil
}

// MockTransactionRepository is a mock implementation of domain.TransactionRepository
type MockTransactionRepository struct {
	Transactions map[uuid.UUID]*domain.Transaction
	Err          error
}

// NewMockTransactionRepository creates a new MockTransactionRepository
func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{Transactions: make(map[uuid.UUID]*domain.Transaction)}
}

// AddTransaction registers a transaction in the mock
func (m *MockTransactionRepository) AddTransaction(t *domain.Transaction) *domain.Transaction {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	m.Transactions[t.ID] = t
	return t
}

// Create creates a new transaction
func (m *MockTransactionRepository) Create(t *domain.Transaction) (*domain.Transaction, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	t.ID = uuid.New()
	t.CreatedAt = time.Now().UTC()
	t.UpdatedAt = t.CreatedAt
	m.Transactions[t.ID] = t
	return t, nil
}

// GetByID retrieves a live transaction owned by the user
func (m *MockTransactionRepository) GetByID(userID uuid.UUID, id uuid.UUID) (*domain.Transaction, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if t, ok := m.Transactions[id]; ok && t.DeletedAt == nil && t.UserID == userID {
		return t, nil
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) listOwned(userID uuid.UUID) []*domain.Transaction {
	var out []*domain.Transaction
	for _, t := range m.Transactions {
		if t.DeletedAt == nil && t.UserID == userID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

// GetByUser retrieves a filtered, paginated transaction list
func (m *MockTransactionRepository) GetByUser(userID uuid.UUID, filters *domain.TransactionFilters) (*domain.PaginatedTransactions, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	var matched []*domain.Transaction
	for _, t := range m.listOwned(userID) {
		if filters.CategoryID != nil && t.CategoryID != *filters.CategoryID {
			continue
		}
		if filters.Type != nil && t.Type != *filters.Type {
			continue
		}
		if filters.StartDate != nil && t.Date.Before(*filters.StartDate) {
			continue
		}
		if filters.EndDate != nil && t.Date.After(*filters.EndDate) {
			continue
		}
		if filters.Search != "" {
			q := strings.ToLower(filters.Search)
			notes := ""
			if t.Notes != nil {
				notes = strings.ToLower(*t.Notes)
			}
			if !strings.Contains(strings.ToLower(t.Description), q) && !strings.Contains(notes, q) {
				continue
			}
		}
		matched = append(matched, t)
	}

	page := filters.Page
	if page < 1 {
		page = 1
	}
	pageSize := filters.PageSize
	if pageSize < 1 {
		pageSize = domain.DefaultPageSize
	}

	total := int64(len(matched))
	totalPages := int32((total + int64(pageSize) - 1) / int64(pageSize))

	start := int((page - 1) * pageSize)
	if start > len(matched) {
		start = len(matched)
	}
	end := start + int(pageSize)
	if end > len(matched) {
		end = len(matched)
	}

	return &domain.PaginatedTransactions{
		Data:       matched[start:end],
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}

// ListByDateRange retrieves live transactions within a window
func (m *MockTransactionRepository) ListByDateRange(userID uuid.UUID, start, end time.Time) ([]*domain.Transaction, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []*domain.Transaction
	for _, t := range m.listOwned(userID) {
		if t.Date.Before(start) || t.Date.After(end) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// Update writes the full transaction row
func (m *MockTransactionRepository) Update(userID uuid.UUID, id uuid.UUID, data *domain.UpdateTransactionData) (*domain.Transaction, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	t, ok := m.Transactions[id]
	if !ok || t.DeletedAt != nil || t.UserID != userID {
		return nil, domain.ErrTransactionNotFound
	}
	t.CategoryID = data.CategoryID
	t.Description = data.Description
	t.Amount = data.Amount
	t.Type = data.Type
	t.Date = data.Date
	t.Currency = data.Currency
	t.Notes = data.Notes
	t.UpdatedAt = time.Now().UTC()
	return t, nil
}

// SoftDelete marks a transaction deleted
func (m *MockTransactionRepository) SoftDelete(userID uuid.UUID, id uuid.UUID) error {
	if m.Err != nil {
		return m.Err
	}
	t, ok := m.Transactions[id]
	if !ok || t.DeletedAt != nil || t.UserID != userID {
		return domain.ErrTransactionNotFound
	}
	now := time.Now().UTC()
	t.DeletedAt = &now
	return nil
}

// Stats returns the all-time count and first/last dates
func (m *MockTransactionRepository) Stats(userID uuid.UUID) (int64, *time.Time, *time.Time, error) {
	if m.Err != nil {
		return 0, nil, nil, m.Err
	}
	owned := m.listOwned(userID)
	if len(owned) == 0 {
		return 0, nil, nil, nil
	}
	first, last := owned[0].Date, owned[0].Date
	for _, t := range owned {
		if t.Date.Before(first) {
			first = t.Date
		}
		if t.Date.After(last) {
			last = t.Date
		}
	}
	return int64(len(owned)), &first, &last, nil
}

// MockGoalRepository is a mock implementation of domain.GoalRepository
type MockGoalRepository struct {
	Goals map[uuid.UUID]*domain.Goal
	Err   error
}

// NewMockGoalRepository creates a new MockGoalRepository
func NewMockGoalRepository() *MockGoalRepository {
	return &MockGoalRepository{Goals: make(map[uuid.UUID]*domain.Goal)}
}

// AddGoal registers a goal in the mock
func (m *MockGoalRepository) AddGoal(g *domain.Goal) *domain.Goal {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	m.Goals[g.ID] = g
	return g
}

// Create creates a new goal
func (m *MockGoalRepository) Create(g *domain.Goal) (*domain.Goal, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	g.ID = uuid.New()
	g.CreatedAt = time.Now().UTC()
	g.UpdatedAt = g.CreatedAt
	m.Goals[g.ID] = g
	return g, nil
}

// GetByID retrieves a live goal owned by the user
func (m *MockGoalRepository) GetByID(userID uuid.UUID, id uuid.UUID) (*domain.Goal, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if g, ok := m.Goals[id]; ok && g.DeletedAt == nil && g.UserID == userID {
		return g, nil
	}
	return nil, domain.ErrGoalNotFound
}

// GetByUser retrieves the user's live goals, optionally filtered by status
func (m *MockGoalRepository) GetByUser(userID uuid.UUID, status *domain.GoalStatus) ([]*domain.Goal, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []*domain.Goal
	for _, g := range m.Goals {
		if g.DeletedAt != nil || g.UserID != userID {
			continue
		}
		if status != nil && g.Status != *status {
			continue
		}
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EndDate.Before(out[j].EndDate) })
	return out, nil
}

// Update writes the full goal state
func (m *MockGoalRepository) Update(g *domain.Goal) (*domain.Goal, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	stored, ok := m.Goals[g.ID]
	if !ok || stored.DeletedAt != nil {
		return nil, domain.ErrGoalNotFound
	}
	g.UpdatedAt = time.Now().UTC()
	m.Goals[g.ID] = g
	return g, nil
}

// SoftDelete marks a goal deleted
func (m *MockGoalRepository) SoftDelete(userID uuid.UUID, id uuid.UUID) error {
	if m.Err != nil {
		return m.Err
	}
	g, ok := m.Goals[id]
	if !ok || g.DeletedAt != nil || g.UserID != userID {
		return domain.ErrGoalNotFound
	}
	now := time.Now().UTC()
	g.DeletedAt = &now
	return nil
}

// MustDecimal parses a decimal or panics, for test fixtures
func MustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}
