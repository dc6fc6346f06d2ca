package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimitedContext(rl *RateLimiter, userID uuid.UUID) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if userID != uuid.Nil {
		ctx := context.WithValue(req.Context(), UserIDKey, userID)
		req = req.WithContext(ctx)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RateLimitMiddleware(rl)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return rec, handler(c)
}

func TestAllowWithinBurst(t *testing.T) {
	rl := NewRateLimiterWithConfig(60, 3)
	defer rl.Stop()

	userID := uuid.New()
	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow(userID), "request %d should be allowed", i+1)
	}
	assert.False(t, rl.Allow(userID))
}

func TestAllowIsolatesUsers(t *testing.T) {
	rl := NewRateLimiterWithConfig(60, 1)
	defer rl.Stop()

	first := uuid.New()
	second := uuid.New()

	assert.True(t, rl.Allow(first))
	assert.False(t, rl.Allow(first))
	assert.True(t, rl.Allow(second))
}

func TestGetStateUnknownUser(t *testing.T) {
	rl := NewRateLimiterWithConfig(60, 20)
	defer rl.Stop()

	remaining, reset := rl.GetState(uuid.New())
	assert.Equal(t, 20, remaining)
	assert.False(t, reset.IsZero())
}

func TestMiddlewareSetsHeaders(t *testing.T) {
	rl := NewRateLimiterWithConfig(60, 5)
	defer rl.Stop()

	rec, err := newLimitedContext(rl, uuid.New())
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Limit"))
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Reset"))
}

func TestMiddlewareRejectsWhenExhausted(t *testing.T) {
	rl := NewRateLimiterWithConfig(60, 1)
	defer rl.Stop()

	userID := uuid.New()

	rec, err := newLimitedContext(rl, userID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, err = newLimitedContext(rl, userID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, float64(http.StatusTooManyRequests), body["statusCode"])

	errBody, ok := body["error"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "rate_limited", errBody["kind"])
}

func TestMiddlewareSkipsAnonymous(t *testing.T) {
	rl := NewRateLimiterWithConfig(60, 1)
	defer rl.Stop()

	// No user ID in context: the limiter never engages
	for i := 0; i < 5; i++ {
		rec, err := newLimitedContext(rl, uuid.Nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}
