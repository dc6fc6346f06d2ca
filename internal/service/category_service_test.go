package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/wealthlog/wealthlog-backend/internal/domain"
	"github.com/wealthlog/wealthlog-backend/internal/testutil"
	"github.com/wealthlog/wealthlog-backend/internal/websocket"
)

func newCategoryService(repo *testutil.MockCategoryRepository) *CategoryService {
	return NewCategoryService(repo, websocket.NoOpPublisher{})
}

func TestCreateCategory(t *testing.T) {
	repo := testutil.NewMockCategoryRepository()
	svc := newCategoryService(repo)
	userID := uuid.New()

	color := "#FF5733"
	category, err := svc.CreateCategory(userID, CreateCategoryInput{
		Name:  "  Groceries ",
		Type:  domain.CategoryTypeExpense,
		Color: &color,
	})
	if err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}

	if category.Name != "Groceries" {
		t.Errorf("expected trimmed name, got %q", category.Name)
	}
	if category.Color != "#FF5733" {
		t.Errorf("unexpected color: %s", category.Color)
	}
	if category.UserID == nil || *category.UserID != userID {
		t.Error("category should belong to the user")
	}
	if category.IsDefault {
		t.Error("user categories must not be defaults")
	}
}

func TestCreateCategoryValidation(t *testing.T) {
	badColor := "red"
	tests := []struct {
		name  string
		input CreateCategoryInput
	}{
		{"empty name", CreateCategoryInput{Name: "", Type: domain.CategoryTypeExpense}},
		{"bad type", CreateCategoryInput{Name: "X", Type: domain.CategoryType("weird")}},
		{"bad color", CreateCategoryInput{Name: "X", Type: domain.CategoryTypeIncome, Color: &badColor}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newCategoryService(testutil.NewMockCategoryRepository())

			_, err := svc.CreateCategory(uuid.New(), tt.input)
			var verrs domain.ValidationErrors
			if !errors.As(err, &verrs) {
				t.Errorf("expected validation errors, got %v", err)
			}
		})
	}
}

func TestCreateCategoryDuplicate(t *testing.T) {
	repo := testutil.NewMockCategoryRepository()
	svc := newCategoryService(repo)
	userID := uuid.New()

	if _, err := svc.CreateCategory(userID, CreateCategoryInput{Name: "Food", Type: domain.CategoryTypeExpense}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	// Same name, case-insensitive, same type and owner
	_, err := svc.CreateCategory(userID, CreateCategoryInput{Name: "food", Type: domain.CategoryTypeExpense})
	if !errors.Is(err, domain.ErrDuplicateCategory) {
		t.Errorf("expected ErrDuplicateCategory, got %v", err)
	}

	// Same name but different type is allowed
	if _, err := svc.CreateCategory(userID, CreateCategoryInput{Name: "Food", Type: domain.CategoryTypeIncome}); err != nil {
		t.Errorf("same name with different type should be allowed, got %v", err)
	}
}

func TestUpdateCategoryDefaultRefused(t *testing.T) {
	repo := testutil.NewMockCategoryRepository()
	svc := newCategoryService(repo)
	userID := uuid.New()

	def := repo.AddCategory(&domain.Category{
		Name:      "Salary",
		Type:      domain.CategoryTypeIncome,
		Color:     "#10B981",
		Icon:      "banknote",
		IsDefault: true,
	})

	name := "My Salary"
	if _, err := svc.UpdateCategory(userID, def.ID, UpdateCategoryInput{Name: &name}); !errors.Is(err, domain.ErrDefaultCategory) {
		t.Errorf("expected ErrDefaultCategory on update, got %v", err)
	}
	if err := svc.DeleteCategory(userID, def.ID); !errors.Is(err, domain.ErrDefaultCategory) {
		t.Errorf("expected ErrDefaultCategory on delete, got %v", err)
	}
}

func TestUpdateCategoryForeignRefused(t *testing.T) {
	repo := testutil.NewMockCategoryRepository()
	svc := newCategoryService(repo)

	ownerID := uuid.New()
	foreign := repo.AddCategory(&domain.Category{
		UserID: &ownerID,
		Name:   "Private",
		Type:   domain.CategoryTypeExpense,
	})

	name := "Hijacked"
	_, err := svc.UpdateCategory(uuid.New(), foreign.ID, UpdateCategoryInput{Name: &name})
	if !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Errorf("foreign categories must be invisible, got %v", err)
	}
}

func TestListCategoriesIncludesDefaults(t *testing.T) {
	repo := testutil.NewMockCategoryRepository()
	svc := newCategoryService(repo)
	userID := uuid.New()

	repo.AddCategory(&domain.Category{Name: "Salary", Type: domain.CategoryTypeIncome, IsDefault: true})
	repo.AddCategory(&domain.Category{UserID: &userID, Name: "Side Hustle", Type: domain.CategoryTypeIncome})

	otherID := uuid.New()
	repo.AddCategory(&domain.Category{UserID: &otherID, Name: "Hidden", Type: domain.CategoryTypeIncome})

	categories, err := svc.ListCategories(userID, nil, "")
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	if len(categories) != 2 {
		t.Errorf("expected defaults plus own categories (2), got %d", len(categories))
	}
}

func TestListCategoriesSearch(t *testing.T) {
	repo := testutil.NewMockCategoryRepository()
	svc := newCategoryService(repo)
	userID := uuid.New()

	repo.AddCategory(&domain.Category{UserID: &userID, Name: "Groceries", Type: domain.CategoryTypeExpense})
	repo.AddCategory(&domain.Category{UserID: &userID, Name: "Rent", Type: domain.CategoryTypeExpense})

	categories, err := svc.ListCategories(userID, nil, "groc")
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	if len(categories) != 1 || categories[0].Name != "Groceries" {
		t.Errorf("unexpected search result: %+v", categories)
	}
}

func TestSeedDefaultsIdempotent(t *testing.T) {
	repo := testutil.NewMockCategoryRepository()
	svc := newCategoryService(repo)

	first, err := svc.SeedDefaults()
	if err != nil {
		t.Fatalf("SeedDefaults failed: %v", err)
	}
	if first != len(domain.DefaultCategories()) {
		t.Errorf("expected %d inserts, got %d", len(domain.DefaultCategories()), first)
	}

	second, err := svc.SeedDefaults()
	if err != nil {
		t.Fatalf("second SeedDefaults failed: %v", err)
	}
	if second != 0 {
		t.Errorf("reseeding should insert nothing, got %d", second)
	}
}
