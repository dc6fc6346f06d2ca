package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/wealthlog/wealthlog-backend/internal/auth"
	"github.com/wealthlog/wealthlog-backend/internal/domain"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// UserIDKey is the context key for the authenticated user's ID
	UserIDKey contextKey = "user_id"
	// EmailKey is the context key for the authenticated user's email
	EmailKey contextKey = "email"
)

// UserProvider looks up users during authentication
type UserProvider interface {
	GetByID(id uuid.UUID) (*domain.User, error)
}

// AuthMiddleware provides bearer token validation middleware
type AuthMiddleware struct {
	tokens *auth.TokenService
	users  UserProvider
}

// NewAuthMiddleware creates an AuthMiddleware around the token service
func NewAuthMiddleware(tokens *auth.TokenService, users UserProvider) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
		users:  users,
	}
}

// Authenticate returns an Echo middleware that validates bearer tokens and
// injects the user identity into the request context
func (m *AuthMiddleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			// Check Bearer prefix
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header format")
			}

			claims, err := m.tokens.Validate(parts[1])
			if err != nil {
				log.Debug().Err(err).Msg("Token validation failed")
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			// The token may outlive the account
			if m.users != nil {
				user, err := m.users.GetByID(claims.UserID)
				if err != nil {
					log.Debug().Err(err).Str("user_id", claims.UserID.String()).Msg("User lookup failed")
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
				}
				if !user.IsActive {
					return echo.NewHTTPError(http.StatusForbidden, "account is inactive")
				}
			}

			ctx := context.WithValue(c.Request().Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, EmailKey, claims.Email)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// GetUserID extracts the authenticated user's ID from the context
func GetUserID(c echo.Context) uuid.UUID {
	if id, ok := c.Request().Context().Value(UserIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// GetEmail extracts the authenticated user's email from the context
func GetEmail(c echo.Context) string {
	if email, ok := c.Request().Context().Value(EmailKey).(string); ok {
		return email
	}
	return ""
}
