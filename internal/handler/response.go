package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/wealthlog/wealthlog-backend/internal/domain"
)

// ErrorKind classifies envelope errors for clients
type ErrorKind string

const (
	KindValidation     ErrorKind = "validation"
	KindAuthentication ErrorKind = "authentication"
	KindAuthorization  ErrorKind = "authorization"
	KindNotFound       ErrorKind = "not_found"
	KindConflict       ErrorKind = "conflict"
	KindRateLimited    ErrorKind = "rate_limited"
	KindInternal       ErrorKind = "internal"
)

// Envelope is the uniform response shape for every endpoint
type Envelope struct {
	Success    bool        `json:"success"`
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message"`
	Timestamp  time.Time   `json:"timestamp"`
	Data       interface{} `json:"data,omitempty"`
	Error      *ErrorBody  `json:"error,omitempty"`
}

// ErrorBody describes a failed request
type ErrorBody struct {
	Kind    ErrorKind           `json:"kind"`
	Message string              `json:"message"`
	Fields  []domain.FieldError `json:"fields,omitempty"`
}

// respond writes a success envelope
func respond(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, Envelope{
		Success:    true,
		StatusCode: status,
		Message:    message,
		Timestamp:  time.Now().UTC(),
		Data:       data,
	})
}

// respondError writes a failure envelope
func respondError(c echo.Context, status int, kind ErrorKind, message string, fields []domain.FieldError) error {
	return c.JSON(status, Envelope{
		Success:    false,
		StatusCode: status,
		Message:    message,
		Timestamp:  time.Now().UTC(),
		Error: &ErrorBody{
			Kind:    kind,
			Message: message,
			Fields:  fields,
		},
	})
}

// respondDomainError maps a service error onto the envelope.
// Unknown errors are logged and masked as internal.
func respondDomainError(c echo.Context, err error) error {
	var verrs domain.ValidationErrors
	if errors.As(err, &verrs) {
		return respondError(c, http.StatusBadRequest, KindValidation, "validation failed", verrs)
	}

	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrTransactionNotFound),
		errors.Is(err, domain.ErrGoalNotFound),
		errors.Is(err, domain.ErrNotFound):
		return respondError(c, http.StatusNotFound, KindNotFound, err.Error(), nil)

	case errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrDuplicateCategory):
		return respondError(c, http.StatusConflict, KindConflict, err.Error(), nil)

	case errors.Is(err, domain.ErrInvalidCredentials):
		return respondError(c, http.StatusUnauthorized, KindAuthentication, err.Error(), nil)

	case errors.Is(err, domain.ErrAccountInactive),
		errors.Is(err, domain.ErrDefaultCategory):
		return respondError(c, http.StatusForbidden, KindAuthorization, err.Error(), nil)

	case errors.Is(err, domain.ErrCategoryTypeMismatch),
		errors.Is(err, domain.ErrCategoryTypeImmutable),
		errors.Is(err, domain.ErrGoalNotActive),
		errors.Is(err, domain.ErrGoalNotPaused),
		errors.Is(err, domain.ErrInvalidTransactionType),
		errors.Is(err, domain.ErrInvalidCategoryType),
		errors.Is(err, domain.ErrInvalidGoalStatus),
		errors.Is(err, domain.ErrInvalidPeriod),
		errors.Is(err, domain.ErrInvalidMonth),
		errors.Is(err, domain.ErrInvalidYear):
		return respondError(c, http.StatusBadRequest, KindValidation, err.Error(), nil)
	}

	log.Error().
		Err(err).
		Str("request_id", requestID(c)).
		Str("path", c.Path()).
		Msg("Unhandled error")
	return respondError(c, http.StatusInternalServerError, KindInternal, "internal server error", nil)
}

func requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

// HTTPErrorHandler converts echo-level errors (routing misses, panics,
// middleware rejections) into the envelope shape
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "internal server error"

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		status = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		} else {
			message = http.StatusText(status)
		}
	}

	kind := KindInternal
	switch status {
	case http.StatusUnauthorized:
		kind = KindAuthentication
	case http.StatusForbidden:
		kind = KindAuthorization
	case http.StatusNotFound:
		kind = KindNotFound
	case http.StatusMethodNotAllowed, http.StatusBadRequest:
		kind = KindValidation
	case http.StatusTooManyRequests:
		kind = KindRateLimited
	}

	if kind == KindInternal {
		log.Error().
			Err(err).
			Str("request_id", requestID(c)).
			Str("path", c.Request().URL.Path).
			Msg("Unhandled error")
		message = "internal server error"
	}

	if respErr := respondError(c, status, kind, message, nil); respErr != nil {
		log.Error().Err(respErr).Msg("Failed to write error response")
	}
}
