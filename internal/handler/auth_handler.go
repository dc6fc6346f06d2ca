package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wealthlog/wealthlog-backend/internal/domain"
	"github.com/wealthlog/wealthlog-backend/internal/middleware"
	"github.com/wealthlog/wealthlog-backend/internal/service"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Name     string           `json:"name"`
	Email    string           `json:"email"`
	Password string           `json:"password"`
	Currency *domain.Currency `json:"currency"`
}

type authResponse struct {
	User      *domain.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, KindValidation, "invalid request body", nil)
	}

	result, err := h.authService.Register(service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Currency: req.Currency,
	})
	if err != nil {
		return respondDomainError(c, err)
	}

	return respond(c, http.StatusCreated, "account created", authResponse{
		User:      result.User,
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, KindValidation, "invalid request body", nil)
	}

	result, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		return respondDomainError(c, err)
	}

	return respond(c, http.StatusOK, "login successful", authResponse{
		User:      result.User,
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
	})
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := h.authService.GetProfile(middleware.GetUserID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, http.StatusOK, "profile retrieved", user)
}

type updateProfileRequest struct {
	Name     *string          `json:"name"`
	Currency *domain.Currency `json:"currency"`
}

// UpdateProfile handles PUT /api/v1/auth/profile
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, KindValidation, "invalid request body", nil)
	}

	user, err := h.authService.UpdateProfile(middleware.GetUserID(c), service.UpdateProfileInput{
		Name:     req.Name,
		Currency: req.Currency,
	})
	if err != nil {
		return respondDomainError(c, err)
	}

	return respond(c, http.StatusOK, "profile updated", user)
}

// Check handles GET /api/v1/auth/check
// Reaching this handler means the token already passed the auth middleware
func (h *AuthHandler) Check(c echo.Context) error {
	return respond(c, http.StatusOK, "token valid", map[string]string{
		"userId": middleware.GetUserID(c).String(),
		"email":  middleware.GetEmail(c),
	})
}
