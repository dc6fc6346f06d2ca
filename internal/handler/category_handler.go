package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/wealthlog/wealthlog-backend/internal/domain"
	"github.com/wealthlog/wealthlog-backend/internal/middleware"
	"github.com/wealthlog/wealthlog-backend/internal/service"
)

// CategoryHandler handles category endpoints
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

type createCategoryRequest struct {
	Name  string              `json:"name"`
	Type  domain.CategoryType `json:"type"`
	Color *string             `json:"color"`
	Icon  *string             `json:"icon"`
}

// Create handles POST /api/v1/categories
func (h *CategoryHandler) Create(c echo.Context) error {
	var req createCategoryRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, KindValidation, "invalid request body", nil)
	}

	category, err := h.categoryService.CreateCategory(middleware.GetUserID(c), service.CreateCategoryInput{
		Name:  req.Name,
		Type:  req.Type,
		Color: req.Color,
		Icon:  req.Icon,
	})
	if err != nil {
		return respondDomainError(c, err)
	}

	return respond(c, http.StatusCreated, "category created", category)
}

// List handles GET /api/v1/categories
func (h *CategoryHandler) List(c echo.Context) error {
	var categoryType *domain.CategoryType
	if raw := c.QueryParam("type"); raw != "" {
		t := domain.CategoryType(raw)
		categoryType = &t
	}

	categories, err := h.categoryService.ListCategories(middleware.GetUserID(c), categoryType, "")
	if err != nil {
		return respondDomainError(c, err)
	}

	return respond(c, http.StatusOK, "categories retrieved", categories)
}

// Search handles GET /api/v1/categories/search
func (h *CategoryHandler) Search(c echo.Context) error {
	categories, err := h.categoryService.ListCategories(middleware.GetUserID(c), nil, c.QueryParam("q"))
	if err != nil {
		return respondDomainError(c, err)
	}

	return respond(c, http.StatusOK, "categories retrieved", categories)
}

// Get handles GET /api/v1/categories/:id
func (h *CategoryHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, KindValidation, "invalid category id", nil)
	}

	category, err := h.categoryService.GetCategory(middleware.GetUserID(c), id)
	if err != nil {
		return respondDomainError(c, err)
	}

	return respond(c, http.StatusOK, "category retrieved", category)
}

type updateCategoryRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
	Icon  *string `json:"icon"`
	Type  *string `json:"type"`
}

// Update handles PUT /api/v1/categories/:id
func (h *CategoryHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, KindValidation, "invalid category id", nil)
	}

	var req updateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, KindValidation, "invalid request body", nil)
	}
	if req.Type != nil {
		return respondDomainError(c, domain.ErrCategoryTypeImmutable)
	}

	category, err := h.categoryService.UpdateCategory(middleware.GetUserID(c), id, service.UpdateCategoryInput{
		Name:  req.Name,
		Color: req.Color,
		Icon:  req.Icon,
	})
	if err != nil {
		return respondDomainError(c, err)
	}

	return respond(c, http.StatusOK, "category updated", category)
}

// Delete handles DELETE /api/v1/categories/:id
func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, KindValidation, "invalid category id", nil)
	}

	if err := h.categoryService.DeleteCategory(middleware.GetUserID(c), id); err != nil {
		return respondDomainError(c, err)
	}

	return respond(c, http.StatusOK, "category deleted", nil)
}

// SeedDefaults handles POST /api/v1/categories/defaults
func (h *CategoryHandler) SeedDefaults(c echo.Context) error {
	inserted, err := h.categoryService.SeedDefaults()
	if err != nil {
		return respondDomainError(c, err)
	}

	return respond(c, http.StatusOK, "default categories seeded", map[string]int{"inserted": inserted})
}
