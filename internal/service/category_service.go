package service

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/wealthlog/wealthlog-backend/internal/domain"
	"github.com/wealthlog/wealthlog-backend/internal/websocket"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// CategoryService handles category-related business logic
type CategoryService struct {
	categoryRepo domain.CategoryRepository
	publisher    websocket.EventPublisher
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo domain.CategoryRepository, publisher websocket.EventPublisher) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		publisher:    publisher,
	}
}

// CreateCategoryInput holds the input for creating a category
type CreateCategoryInput struct {
	Name  string
	Type  domain.CategoryType
	Color *string
	Icon  *string
}

// CreateCategory creates a user-owned category with validation
func (s *CategoryService) CreateCategory(userID uuid.UUID, input CreateCategoryInput) (*domain.Category, error) {
	var verrs domain.ValidationErrors

	name := strings.TrimSpace(input.Name)
	if name == "" {
		verrs = verrs.Add("name", domain.ErrNameRequired)
	} else if len(name) > domain.MaxCategoryNameLength {
		verrs = verrs.Add("name", domain.ErrNameTooLong)
	}

	if input.Type != domain.CategoryTypeIncome && input.Type != domain.CategoryTypeExpense {
		verrs = verrs.Add("type", domain.ErrInvalidCategoryType)
	}

	color := "#6B7280"
	if input.Color != nil {
		if !hexColorPattern.MatchString(*input.Color) {
			verrs = verrs.Add("color", domain.ErrInvalidColor)
		} else {
			color = *input.Color
		}
	}

	icon := "tag"
	if input.Icon != nil && strings.TrimSpace(*input.Icon) != "" {
		icon = strings.TrimSpace(*input.Icon)
	}

	if err := verrs.OrNil(); err != nil {
		return nil, err
	}

	exists, err := s.categoryRepo.ExistsByNameType(&userID, name, input.Type)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateCategory
	}

	category, err := s.categoryRepo.Create(&domain.Category{
		UserID: &userID,
		Name:   name,
		Type:   input.Type,
		Color:  color,
		Icon:   icon,
	})
	if err != nil {
		return nil, err
	}

	s.publisher.PublishCategoryEvent(userID, websocket.EventTypeCreated, category)
	return category, nil
}

// GetCategory returns a single category visible to the user
func (s *CategoryService) GetCategory(userID uuid.UUID, id uuid.UUID) (*domain.Category, error) {
	return s.categoryRepo.GetByID(userID, id)
}

// ListCategories returns the user's categories plus the system defaults
func (s *CategoryService) ListCategories(userID uuid.UUID, categoryType *domain.CategoryType, search string) ([]*domain.Category, error) {
	if categoryType != nil && *categoryType != domain.CategoryTypeIncome && *categoryType != domain.CategoryTypeExpense {
		return nil, domain.ValidationErrors{}.Add("type", domain.ErrInvalidCategoryType)
	}
	return s.categoryRepo.GetByUser(userID, &domain.CategoryFilters{
		Type:   categoryType,
		Search: strings.TrimSpace(search),
	})
}

// UpdateCategoryInput holds the updatable category fields
// Type is absent: a category's type is fixed at creation
type UpdateCategoryInput struct {
	Name  *string
	Color *string
	Icon  *string
}

// UpdateCategory applies partial updates to a user-owned category
func (s *CategoryService) UpdateCategory(userID uuid.UUID, id uuid.UUID, input UpdateCategoryInput) (*domain.Category, error) {
	existing, err := s.categoryRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	if existing.IsDefault {
		return nil, domain.ErrDefaultCategory
	}

	var verrs domain.ValidationErrors
	data := &domain.UpdateCategoryData{}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			verrs = verrs.Add("name", domain.ErrNameRequired)
		} else if len(name) > domain.MaxCategoryNameLength {
			verrs = verrs.Add("name", domain.ErrNameTooLong)
		} else {
			data.Name = &name
		}
	}

	if input.Color != nil {
		if !hexColorPattern.MatchString(*input.Color) {
			verrs = verrs.Add("color", domain.ErrInvalidColor)
		} else {
			data.Color = input.Color
		}
	}

	if input.Icon != nil {
		icon := strings.TrimSpace(*input.Icon)
		if icon != "" {
			data.Icon = &icon
		}
	}

	if err := verrs.OrNil(); err != nil {
		return nil, err
	}

	if data.Name != nil && !strings.EqualFold(*data.Name, existing.Name) {
		exists, err := s.categoryRepo.ExistsByNameType(&userID, *data.Name, existing.Type)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrDuplicateCategory
		}
	}

	category, err := s.categoryRepo.Update(userID, id, data)
	if err != nil {
		return nil, err
	}

	s.publisher.PublishCategoryEvent(userID, websocket.EventTypeUpdated, category)
	return category, nil
}

// DeleteCategory soft deletes a user-owned category
func (s *CategoryService) DeleteCategory(userID uuid.UUID, id uuid.UUID) error {
	existing, err := s.categoryRepo.GetByID(userID, id)
	if err != nil {
		return err
	}
	if existing.IsDefault {
		return domain.ErrDefaultCategory
	}

	if err := s.categoryRepo.SoftDelete(userID, id); err != nil {
		return err
	}

	s.publisher.PublishCategoryEvent(userID, websocket.EventTypeDeleted, map[string]string{"id": id.String()})
	return nil
}

// SeedDefaults ensures the system default categories exist
// Called once at startup; reruns are no-ops
func (s *CategoryService) SeedDefaults() (int, error) {
	return s.categoryRepo.SeedDefaults(domain.DefaultCategories())
}
